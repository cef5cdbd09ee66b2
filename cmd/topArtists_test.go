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

func TestPrintTopArtists(t *testing.T) {
	songs := loadTestSongs(t)

	out := new(bytes.Buffer)
	if err := printTopArtists(out, songs, nil, "all", 20); err != nil {
		t.Fatalf("printTopArtists: %v", err)
	}

	got := out.String()
	a, b := strings.Index(got, "Artist A"), strings.Index(got, "Artist B")
	if a < 0 || b < 0 || a > b {
		t.Errorf("Expected Artist A before Artist B:\n%s", got)
	}
	want := "Found 2 artists and 11 minutes from 2022-03-01 to 2023-02-03"
	if !strings.Contains(got, want) {
		t.Errorf("Expected summary %q in:\n%s", want, got)
	}
}

func TestPrintTopArtistsInvalidDateString(t *testing.T) {
	songs := loadTestSongs(t)

	err := printTopArtists(new(bytes.Buffer), songs, []string{"derp"}, "all", 20)
	if err == nil {
		t.Fatalf("printTopArtists should have errored with an invalid date string")
	}
}

func TestPrintTopArtistsMonth(t *testing.T) {
	songs := loadTestSongs(t)

	out := new(bytes.Buffer)
	if err := printTopArtists(out, songs, []string{"2022-05"}, "all", 20); err != nil {
		t.Fatalf("printTopArtists: %v", err)
	}
	if !strings.Contains(out.String(), "Found 1 artists and 2 minutes from 2022-05-01 to 2022-05-31") {
		t.Errorf("Unexpected output:\n%s", out.String())
	}
}
