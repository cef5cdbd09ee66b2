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
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ademuri/spotify-history-tools/internal/history"
)

func TestFormatError(t *testing.T) {
	err := fmt.Errorf("loading x.zip: %w", history.ErrInvalidArchive)
	got := formatError(err)
	if !strings.HasPrefix(got, "Error: loading x.zip") || !strings.Contains(got, "Suggestion:") {
		t.Errorf("formatError(%v) = %q", err, got)
	}

	parseErr := &history.ParseError{File: "Streaming_History_Audio_2022.json", Err: errors.New("bad ts")}
	if got := formatError(parseErr); !strings.Contains(got, "Streaming_History_Audio_2022.json") || !strings.Contains(got, "Suggestion:") {
		t.Errorf("formatError(%v) = %q", parseErr, got)
	}

	plain := errors.New("boom")
	if got := formatError(plain); got != "Error: boom" {
		t.Errorf("formatError(%v) = %q", plain, got)
	}
}

func TestLoadSongsMissingArchive(t *testing.T) {
	_, err := loadSongs(t.Context(), "does-not-exist.zip")
	if !errors.Is(err, history.ErrInvalidArchive) {
		t.Errorf("loadSongs on a missing file = %v, want ErrInvalidArchive", err)
	}
}
