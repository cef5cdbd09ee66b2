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
	"io"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/ademuri/spotify-history-tools/internal/analysis"
	"github.com/ademuri/spotify-history-tools/internal/history"
)

const customRange = "custom"

var exploreCmd = &cobra.Command{
	Use:   "explore [archive]",
	Short: "Interactively browse your top tracks and artists",
	Long: `Prints the summary, then asks for a sort order and a date range and shows
the matching top tracks and artists. Repeats until you stop.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := runExplore(cmd, args[0])
		if err != nil {
			fmt.Println(formatError(err))
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}

// exploreChoices is what the user picked in one round of the form.
type exploreChoices struct {
	sortBy string
	preset string
	start  string
	end    string
}

func runExplore(cmd *cobra.Command, archivePath string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("explore needs an interactive terminal; use summary, top-tracks or top-artists instead")
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()
	songs, err := s.loadSongs(cmd.Context(), archivePath)
	if err != nil {
		return err
	}
	if err := printSummary(out, songs); err != nil {
		return err
	}

	choices := exploreChoices{
		sortBy: string(analysis.MetricMinutes),
		preset: string(analysis.PresetAll),
	}
	for {
		if err := exploreForm(&choices).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("explore: %w", err)
		}

		// The archive is re-read each round so edits on disk are picked up.
		songs, err = s.loadSongs(cmd.Context(), archivePath)
		if err != nil {
			return err
		}
		s.logger.Debug("explore round",
			zap.String("sort", choices.sortBy),
			zap.String("range", choices.preset))

		if err := printExploreTables(out, songs, choices); err != nil {
			return err
		}

		again := true
		confirm := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("Explore another range?").
				Affirmative("Yes").
				Negative("No").
				Value(&again),
		))
		if err := confirm.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("explore: %w", err)
		}
		if !again {
			return nil
		}
	}
}

func exploreForm(choices *exploreChoices) *huh.Form {
	var presetOptions []huh.Option[string]
	for _, p := range analysis.Presets {
		presetOptions = append(presetOptions, huh.NewOption(p.Label(), string(p)))
	}
	presetOptions = append(presetOptions, huh.NewOption("Custom range", customRange))

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Sort tracks by").
				Options(
					huh.NewOption("Minutes listened", string(analysis.MetricMinutes)),
					huh.NewOption("Play count", string(analysis.MetricPlayCount)),
				).
				Value(&choices.sortBy),
			huh.NewSelect[string]().
				Title("Date range").
				Options(presetOptions...).
				Value(&choices.preset),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("From").
				Placeholder(dateInputFormat).
				Validate(validateDateInput).
				Value(&choices.start),
			huh.NewInput().
				Title("To").
				Placeholder(dateInputFormat).
				Validate(validateDateInput).
				Value(&choices.end),
		).WithHideFunc(func() bool {
			return choices.preset != customRange
		}),
	)
}

const dateInputFormat = "2006-01-02"

// validateDateInput accepts an empty field so a half-filled range can be
// reported instead of blocking the form.
func validateDateInput(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(dateInputFormat, s); err != nil {
		return fmt.Errorf("dates look like %s", dateInputFormat)
	}
	return nil
}

// exploreRange turns the choices into a date range. Empty custom fields leave
// the range incomplete.
func exploreRange(songs []history.Play, choices exploreChoices) (analysis.DateRange, error) {
	if choices.preset != customRange {
		return resolveDateRange(songs, nil, choices.preset)
	}

	var start, end time.Time
	var err error
	if choices.start != "" {
		if start, err = time.Parse(dateInputFormat, choices.start); err != nil {
			return analysis.DateRange{}, err
		}
	}
	if choices.end != "" {
		if end, err = time.Parse(dateInputFormat, choices.end); err != nil {
			return analysis.DateRange{}, err
		}
	}
	return analysis.NewDateRange(start, end), nil
}

func printExploreTables(out io.Writer, songs []history.Play, choices exploreChoices) error {
	metric, err := analysis.ParseMetric(choices.sortBy)
	if err != nil {
		return err
	}

	rng, err := exploreRange(songs, choices)
	if err != nil {
		return err
	}
	if !rng.Complete() {
		fmt.Fprintln(out, incompleteRangeMessage)
		return nil
	}

	analysers := []Analyser{
		TopTracksAnalyzer{}.SetConfig(AnalyserConfig{NumToReturn: analysis.DefaultTopTracks, Metric: metric}),
		TopArtistsAnalyzer{}.SetConfig(AnalyserConfig{NumToReturn: analysis.DefaultTopArtists}),
	}
	for _, a := range analysers {
		if err := printAnalysis(out, a, songs, rng); err != nil {
			return err
		}
	}
	return nil
}
