/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"github.com/ademuri/spotify-history-tools/internal/history"
)

const testHistory = `[
  {"ts": "2022-03-01T10:00:00Z", "ms_played": 240000, "master_metadata_track_name": "Song A", "master_metadata_album_artist_name": "Artist A", "episode_name": null, "spotify_track_uri": "spotify:track:a"},
  {"ts": "2022-05-01T10:00:00Z", "ms_played": 120000, "master_metadata_track_name": "Song A", "master_metadata_album_artist_name": "Artist A", "episode_name": null, "spotify_track_uri": "spotify:track:a"},
  {"ts": "2022-05-02T10:00:00Z", "ms_played": 5000, "master_metadata_track_name": "Song D", "master_metadata_album_artist_name": "Artist D", "episode_name": null, "spotify_track_uri": "spotify:track:d"},
  {"ts": "2023-01-15T10:00:00Z", "ms_played": 600000, "master_metadata_track_name": null, "master_metadata_album_artist_name": null, "episode_name": "Episode 1", "spotify_track_uri": null}
]`

const testHistory2023 = `[
  {"ts": "2023-02-01T10:00:00Z", "ms_played": 180000, "master_metadata_track_name": "Song B", "master_metadata_album_artist_name": "Artist B", "episode_name": null, "spotify_track_uri": "spotify:track:b"},
  {"ts": "2023-02-02T10:00:00Z", "ms_played": 60000, "master_metadata_track_name": "Song C", "master_metadata_album_artist_name": "Artist B", "episode_name": null, "spotify_track_uri": "spotify:track:c"},
  {"ts": "2023-02-03T10:00:00Z", "ms_played": 60000, "master_metadata_track_name": "Song C", "master_metadata_album_artist_name": "Artist B", "episode_name": null, "spotify_track_uri": "spotify:track:c"}
]`

// createTestArchive writes a streaming history export the way Spotify ships
// it, with everything inside one top-level folder.
func createTestArchive(t *testing.T) string {
	t.Helper()
	viper.Set("work_dir", t.TempDir())

	path := filepath.Join(t.TempDir(), "my_spotify_data.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	files := []struct{ name, body string }{
		{"Spotify Extended Streaming History/Streaming_History_Audio_2022.json", testHistory},
		{"Spotify Extended Streaming History/Streaming_History_Audio_2023.json", testHistory2023},
	}
	for _, file := range files {
		w, err := zw.Create(file.name)
		if err != nil {
			t.Fatalf("zip Create(%q): %v", file.name, err)
		}
		if _, err := w.Write([]byte(file.body)); err != nil {
			t.Fatalf("zip Write(%q): %v", file.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip Close: %v", err)
	}
	return path
}

func loadTestSongs(t *testing.T) []history.Play {
	t.Helper()
	songs, err := loadSongs(context.Background(), createTestArchive(t))
	if err != nil {
		t.Fatalf("loadSongs: %v", err)
	}
	return songs
}
