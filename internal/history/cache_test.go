package history_test

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/ademuri/spotify-history-tools/internal/history"
	"github.com/ademuri/spotify-history-tools/internal/store"
	"github.com/spf13/afero"
)

func zipOf(t *testing.T, name, content string) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	w, err := zw.Create(name)
	if err != nil {
		t.Fatalf("zip Create: %v", err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatalf("zip Write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip Close: %v", err)
	}
	return buf.Bytes()
}

func TestLoadWithSqliteCache(t *testing.T) {
	cache, err := store.New(store.InMemory)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	defer cache.Close()

	fs := afero.NewMemMapFs()
	loader := history.NewLoader(fs, cache, history.LoaderConfig{WorkDir: "/work"}, nil)
	archive := zipOf(t, "history/Streaming_History_Audio_2024.json", `[
	  {"ts": "2024-12-31T23:00:00Z", "ms_played": 180000, "master_metadata_track_name": "Song", "master_metadata_album_artist_name": "Artist", "spotify_track_uri": "spotify:track:x"},
	  {"ts": "2024-10-02T00:00:00Z", "ms_played": 90000, "master_metadata_track_name": "Other", "master_metadata_album_artist_name": "Artist"}
	]`)

	first, err := loader.Load(context.Background(), archive)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	digest, err := cache.Digest()
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	if digest != history.Digest(archive) {
		t.Fatalf("cache holds %q, want %q", digest, history.Digest(archive))
	}

	// The second load must come from the cache: make extraction impossible.
	readOnly := history.NewLoader(afero.NewReadOnlyFs(afero.NewMemMapFs()), cache, history.LoaderConfig{WorkDir: "/work"}, nil)
	second, err := readOnly.Load(context.Background(), archive)
	if err != nil {
		t.Fatalf("Load (cached): %v", err)
	}

	if len(first) != 2 || len(second) != len(first) {
		t.Fatalf("Expected 2 plays from both loads, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Timestamp.Equal(second[i].Timestamp) || first[i].TrackName != second[i].TrackName {
			t.Errorf("play %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
	if first[0].TrackName.String != "Other" {
		t.Errorf("Expected plays in chronological order, first is %q", first[0].TrackName.String)
	}
}
