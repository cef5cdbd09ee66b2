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

	"github.com/ademuri/spotify-history-tools/internal/analysis"
	"github.com/ademuri/spotify-history-tools/internal/history"
)

const incompleteRangeMessage = "Please select a complete date range."

// formatError adds a hint on how to fix the errors users can do something
// about.
func formatError(err error) string {
	var suggestion string
	switch {
	case errors.Is(err, history.ErrInvalidArchive):
		suggestion = "Pass the ZIP file from Spotify's privacy settings page (\"Download your data\", extended streaming history) as it was sent"
	case errors.Is(err, history.ErrParse):
		suggestion = "One of the JSON files in the archive isn't streaming history; remove it and zip the folder again"
	case errors.Is(err, history.ErrSetup):
		suggestion = "Check that --work_dir exists and is writable"
	case errors.Is(err, analysis.ErrNoPlays):
		suggestion = "The archive has no songs played for longer than --min_play_ms"
	}

	if suggestion == "" {
		return fmt.Sprintf("Error: %v", err)
	}
	return fmt.Sprintf("Error: %v\n\nSuggestion: %s", err, suggestion)
}
