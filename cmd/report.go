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

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ademuri/spotify-history-tools/internal/analysis"
	"github.com/ademuri/spotify-history-tools/internal/history"
)

var reportSort string
var reportRange string
var reportCmd = &cobra.Command{
	Use:   "report [archive] [from (optional)] [to (optional)]",
	Short: "Generate a YAML report of your listening history",
	Long:  `Analyzes your streaming history to generate a YAML report with totals, the yearly trend, and top tracks and artists for the selected period.`,
	Args:  cobra.RangeArgs(1, 3),
	Run: func(cmd *cobra.Command, args []string) {
		songs, err := loadSongs(cmd.Context(), args[0])
		if err == nil {
			err = runReport(cmd.OutOrStdout(), songs, args[1:], reportSort, reportRange)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating report: %s\n", formatError(err))
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportSort, "sort", string(analysis.MetricMinutes), "rank tracks by 'minutes' or 'plays'")
	reportCmd.Flags().StringVar(&reportRange, "range", string(analysis.PresetAll), "preset range: last-90-days, last-180-days, last-365-days or all")
}

func runReport(out io.Writer, songs []history.Play, dateArgs []string, sortBy string, preset string) error {
	metric, err := analysis.ParseMetric(sortBy)
	if err != nil {
		return err
	}

	rng, err := resolveDateRange(songs, dateArgs, preset)
	if err != nil {
		return err
	}

	report, err := analysis.GenerateReport(songs, rng, metric, analysis.DefaultTopTracks, analysis.DefaultTopArtists)
	if errors.Is(err, analysis.ErrIncompleteDateRange) {
		fmt.Fprintln(out, incompleteRangeMessage)
		return nil
	}
	if err != nil {
		return fmt.Errorf("analyzing data: %w", err)
	}

	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return encoder.Close()
}
