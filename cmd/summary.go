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

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ademuri/spotify-history-tools/internal/analysis"
	"github.com/ademuri/spotify-history-tools/internal/history"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [archive]",
	Short: "Prints total songs, total minutes and minutes per year",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := printSummaryFromArchive(cmd, args[0])
		if err != nil {
			fmt.Println(formatError(err))
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func printSummaryFromArchive(cmd *cobra.Command, archivePath string) error {
	songs, err := loadSongs(cmd.Context(), archivePath)
	if err != nil {
		return err
	}
	return printSummary(cmd.OutOrStdout(), songs)
}

func printSummary(out io.Writer, songs []history.Play) error {
	if len(songs) == 0 {
		return analysis.ErrNoPlays
	}

	fmt.Fprintf(out, "You have listened to %s different songs and %s minutes on Spotify.\n\n",
		humanize.Comma(int64(analysis.TotalDistinctTracks(songs))),
		humanize.Comma(analysis.TotalMinutes(songs)))
	fmt.Fprintln(out, renderYearlyChart(analysis.YearlyMinutes(songs), chartWidth))
	return nil
}
