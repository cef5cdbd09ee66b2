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
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ademuri/spotify-history-tools/internal/analysis"
	"github.com/ademuri/spotify-history-tools/internal/history"
)

var topTracksNumber int
var topTracksSort string
var topTracksRange string
var topTracksCmd = &cobra.Command{
	Use:   "top-tracks [archive] [from (optional)] [to (optional)]",
	Short: "Gets your most listened tracks",
	Long: `Uses the specified date or date range, or --range when no dates are given.
Date strings look like 'yyyy', 'yyyy-mm', or 'yyyy-mm-dd'.`,
	Args: cobra.RangeArgs(1, 3),
	Run: func(cmd *cobra.Command, args []string) {
		songs, err := loadSongs(cmd.Context(), args[0])
		if err == nil {
			err = printTopTracks(cmd.OutOrStdout(), songs, args[1:], topTracksSort, topTracksRange, topTracksNumber)
		}
		if err != nil {
			fmt.Println(formatError(err))
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topTracksCmd)

	topTracksCmd.Flags().IntVarP(&topTracksNumber, "number", "n", analysis.DefaultTopTracks, "number of results to return")
	topTracksCmd.Flags().StringVar(&topTracksSort, "sort", string(analysis.MetricMinutes), "rank by 'minutes' or 'plays'")
	topTracksCmd.Flags().StringVar(&topTracksRange, "range", string(analysis.PresetAll), "preset range: last-90-days, last-180-days, last-365-days or all")
}

func printTopTracks(out io.Writer, songs []history.Play, dateArgs []string, sortBy string, preset string, numToReturn int) error {
	metric, err := analysis.ParseMetric(sortBy)
	if err != nil {
		return err
	}

	rng, err := resolveDateRange(songs, dateArgs, preset)
	if err != nil {
		return err
	}

	config := AnalyserConfig{NumToReturn: numToReturn, Metric: metric}
	return printAnalysis(out, TopTracksAnalyzer{}.SetConfig(config), songs, rng)
}

// printAnalysis writes one analyser's table. An incomplete range is reported
// to the user rather than treated as a failure.
func printAnalysis(out io.Writer, analyser Analyser, songs []history.Play, rng analysis.DateRange) error {
	result, err := analyser.GetResults(songs, rng)
	if errors.Is(err, analysis.ErrIncompleteDateRange) {
		fmt.Fprintln(out, incompleteRangeMessage)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", analyser.GetName(), err)
	}
	fmt.Fprintln(out, headingStyle.Render(analyser.GetName()))
	fmt.Fprintln(out, result)
	return nil
}

type TopTracksAnalyzer struct {
	Config AnalyserConfig
}

func (t TopTracksAnalyzer) SetConfig(config AnalyserConfig) TopTracksAnalyzer {
	t.Config = config
	return t
}

func (t TopTracksAnalyzer) GetName() string {
	return "Top tracks"
}

func (t TopTracksAnalyzer) GetResults(songs []history.Play, rng analysis.DateRange) (result Analysis, err error) {
	filtered, err := analysis.FilterByDate(songs, rng)
	if err != nil {
		return
	}

	metric := t.Config.Metric
	if metric == "" {
		metric = analysis.MetricMinutes
	}

	all := analysis.TopTracks(filtered, metric, 0)
	result.results = [][]string{{"Track", "Artist", "Minutes Listened", "Play Count"}}
	for i, track := range all {
		if t.Config.NumToReturn != 0 && i >= t.Config.NumToReturn {
			break
		}
		result.results = append(result.results, []string{
			track.Track,
			track.Artist,
			strconv.FormatInt(track.Minutes, 10),
			strconv.FormatInt(track.PlayCount, 10),
		})
	}

	result.summary = fmt.Sprintf("Found %s tracks and %s plays from %s, sorted by %s",
		humanize.Comma(int64(len(all))), humanize.Comma(int64(len(filtered))), rng, metric)
	return
}
