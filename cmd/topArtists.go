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
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ademuri/spotify-history-tools/internal/analysis"
	"github.com/ademuri/spotify-history-tools/internal/history"
)

var topArtistsNumber int
var topArtistsRange string
var topArtistsCmd = &cobra.Command{
	Use:   "top-artists [archive] [from (optional)] [to (optional)]",
	Short: "Gets the artists you listened to the most",
	Long: `Uses the specified date or date range, or --range when no dates are given.
Date strings look like 'yyyy', 'yyyy-mm', or 'yyyy-mm-dd'.`,
	Args: cobra.RangeArgs(1, 3),
	Run: func(cmd *cobra.Command, args []string) {
		songs, err := loadSongs(cmd.Context(), args[0])
		if err == nil {
			err = printTopArtists(cmd.OutOrStdout(), songs, args[1:], topArtistsRange, topArtistsNumber)
		}
		if err != nil {
			fmt.Println(formatError(err))
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topArtistsCmd)

	topArtistsCmd.Flags().IntVarP(&topArtistsNumber, "number", "n", analysis.DefaultTopArtists, "number of results to return")
	topArtistsCmd.Flags().StringVar(&topArtistsRange, "range", string(analysis.PresetAll), "preset range: last-90-days, last-180-days, last-365-days or all")
}

func printTopArtists(out io.Writer, songs []history.Play, dateArgs []string, preset string, numToReturn int) error {
	rng, err := resolveDateRange(songs, dateArgs, preset)
	if err != nil {
		return err
	}

	config := AnalyserConfig{NumToReturn: numToReturn}
	return printAnalysis(out, TopArtistsAnalyzer{}.SetConfig(config), songs, rng)
}

type TopArtistsAnalyzer struct {
	Config AnalyserConfig
}

func (t TopArtistsAnalyzer) SetConfig(config AnalyserConfig) TopArtistsAnalyzer {
	t.Config = config
	return t
}

func (t TopArtistsAnalyzer) GetName() string {
	return "Top artists"
}

func (t TopArtistsAnalyzer) GetResults(songs []history.Play, rng analysis.DateRange) (result Analysis, err error) {
	filtered, err := analysis.FilterByDate(songs, rng)
	if err != nil {
		return
	}

	all := analysis.TopArtists(filtered, 0)
	var minutes int64
	result.results = [][]string{{"Artist", "Minutes Listened"}}
	for i, artist := range all {
		if t.Config.NumToReturn == 0 || i < t.Config.NumToReturn {
			result.results = append(result.results, []string{artist.Artist, strconv.FormatInt(artist.Minutes, 10)})
		}
		minutes += artist.Minutes
	}

	result.summary = fmt.Sprintf("Found %s artists and %s minutes from %s",
		humanize.Comma(int64(len(all))), humanize.Comma(minutes), rng)
	return
}
