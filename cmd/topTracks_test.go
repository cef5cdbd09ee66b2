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
	"bytes"
	"strings"
	"testing"
)

func TestPrintTopTracks(t *testing.T) {
	songs := loadTestSongs(t)

	out := new(bytes.Buffer)
	if err := printTopTracks(out, songs, nil, "minutes", "all", 25); err != nil {
		t.Fatalf("printTopTracks: %v", err)
	}

	got := out.String()
	if strings.Contains(got, "Song D") {
		t.Errorf("Plays of 10 seconds or less should be ignored:\n%s", got)
	}
	if strings.Contains(got, "Episode 1") {
		t.Errorf("Podcast episodes should not be listed:\n%s", got)
	}
	a, b, c := strings.Index(got, "Song A"), strings.Index(got, "Song B"), strings.Index(got, "Song C")
	if a < 0 || b < 0 || c < 0 || !(a < b && b < c) {
		t.Errorf("Expected Song A, Song B, Song C in that order:\n%s", got)
	}
	want := "Found 3 tracks and 5 plays from 2022-03-01 to 2023-02-03, sorted by minutes"
	if !strings.Contains(got, want) {
		t.Errorf("Expected summary %q in:\n%s", want, got)
	}
}

func TestPrintTopTracksByPlayCount(t *testing.T) {
	songs := loadTestSongs(t)

	out := new(bytes.Buffer)
	if err := printTopTracks(out, songs, nil, "plays", "all", 25); err != nil {
		t.Fatalf("printTopTracks: %v", err)
	}

	got := out.String()
	if strings.Index(got, "Song C") > strings.Index(got, "Song B") {
		t.Errorf("Song C has more plays than Song B and should come first:\n%s", got)
	}
}

func TestPrintTopTracksDateArgs(t *testing.T) {
	songs := loadTestSongs(t)

	out := new(bytes.Buffer)
	if err := printTopTracks(out, songs, []string{"2023"}, "minutes", "all", 1); err != nil {
		t.Fatalf("printTopTracks: %v", err)
	}

	got := out.String()
	if strings.Contains(got, "Song A") {
		t.Errorf("Song A was played in 2022 and should be filtered out:\n%s", got)
	}
	if strings.Contains(got, "Song C") {
		t.Errorf("Only one track was requested:\n%s", got)
	}
	if !strings.Contains(got, "Found 2 tracks and 3 plays from 2023-01-01 to 2023-12-31") {
		t.Errorf("Unexpected summary:\n%s", got)
	}
}

func TestPrintTopTracksIncompleteRange(t *testing.T) {
	songs := loadTestSongs(t)

	out := new(bytes.Buffer)
	if err := printTopTracks(out, songs, []string{"2023", "2022"}, "minutes", "all", 25); err != nil {
		t.Fatalf("An inverted range should not be an error, got %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != incompleteRangeMessage {
		t.Errorf("Expected %q, got %q", incompleteRangeMessage, got)
	}
}

func TestPrintTopTracksInvalidArgs(t *testing.T) {
	songs := loadTestSongs(t)

	if err := printTopTracks(new(bytes.Buffer), songs, nil, "loudness", "all", 25); err == nil {
		t.Errorf("printTopTracks should have errored with an unknown sort order")
	}
	if err := printTopTracks(new(bytes.Buffer), songs, []string{"derp"}, "minutes", "all", 25); err == nil {
		t.Errorf("printTopTracks should have errored with an invalid date string")
	}
}
