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
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/ademuri/spotify-history-tools/internal/analysis"
)

const chartWidth = 40

var (
	spotifyGreen = lipgloss.Color("#1DB954")
	spotifyGray  = lipgloss.Color("#B3B3B3")

	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(spotifyGreen)
	barStyle     = lipgloss.NewStyle().Foreground(spotifyGreen)
	axisStyle    = lipgloss.NewStyle().Foreground(spotifyGray)
	valueStyle   = lipgloss.NewStyle().Bold(true).Foreground(spotifyGray)
)

// renderYearlyChart draws one bar per year, scaled to the busiest year, with
// the rounded minutes next to it.
func renderYearlyChart(years []analysis.YearMinutes, width int) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Minutes listened per year"))
	b.WriteString("\n")

	var max float64
	for _, y := range years {
		max = math.Max(max, y.Minutes)
	}

	for _, y := range years {
		bar := 0
		if max > 0 {
			bar = int(math.Round(y.Minutes / max * float64(width)))
		}
		if bar == 0 && y.Minutes > 0 {
			bar = 1
		}
		fmt.Fprintf(&b, "%s %s %s\n",
			axisStyle.Render(strconv.Itoa(y.Year)),
			barStyle.Render(strings.Repeat("█", bar)),
			valueStyle.Render(humanize.Comma(int64(math.Round(y.Minutes)))))
	}
	return b.String()
}
