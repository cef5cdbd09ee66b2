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
	"regexp"
	"time"

	"github.com/ademuri/spotify-history-tools/internal/analysis"
	"github.com/ademuri/spotify-history-tools/internal/history"
)

// ParsedDate is a date string along with the precision it was given in.
type ParsedDate struct {
	Date  time.Time
	Year  bool
	Month bool
	Day   bool
}

// last returns the final day covered by the date.
func (d ParsedDate) last() time.Time {
	switch {
	case d.Year:
		return d.Date.AddDate(1, 0, -1)
	case d.Month:
		return d.Date.AddDate(0, 1, -1)
	default:
		return d.Date
	}
}

// resolveDateRange picks the range for a command: explicit date arguments
// win over the named preset.
func resolveDateRange(songs []history.Play, args []string, preset string) (analysis.DateRange, error) {
	if len(args) > 0 {
		return parseDateRangeFromArgs(args)
	}

	p, err := analysis.ParsePreset(preset)
	if err != nil {
		return analysis.DateRange{}, err
	}
	return p.Range(songs)
}

func parseDateRangeFromArgs(args []string) (rng analysis.DateRange, err error) {
	switch len(args) {
	case 1:
		rng, err = getImplicitDateRange(args[0])

	case 2:
		rng, err = getExplicitDateRange(args[0], args[1])

	default:
		err = fmt.Errorf("Expected one or two date arguments")
	}
	return
}

func getImplicitDateRange(ds string) (rng analysis.DateRange, err error) {
	date, err := parseSingleDatestring(ds)
	if err != nil {
		return
	}

	rng = analysis.NewDateRange(date.Date, date.last())
	return
}

func getExplicitDateRange(startString, endString string) (rng analysis.DateRange, err error) {
	startParsed, err := parseSingleDatestring(startString)
	if err != nil {
		return
	}

	endParsed, err := parseSingleDatestring(endString)
	if err != nil {
		return
	}

	rng = analysis.NewDateRange(startParsed.Date, endParsed.last())
	return
}

var (
	yearPattern  = regexp.MustCompile(`^\d{4}$`)
	monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)
	dayPattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

func parseSingleDatestring(ds string) (date ParsedDate, err error) {
	switch {
	case yearPattern.MatchString(ds):
		date.Date, err = time.Parse("2006", ds)
		if err != nil {
			err = fmt.Errorf("Parsing datestring as year: %w", err)
			return
		}
		date.Year = true

	case monthPattern.MatchString(ds):
		date.Date, err = time.Parse("2006-01", ds)
		if err != nil {
			err = fmt.Errorf("Parsing datestring as month: %w", err)
			return
		}
		date.Month = true

	case dayPattern.MatchString(ds):
		date.Date, err = time.Parse("2006-01-02", ds)
		if err != nil {
			err = fmt.Errorf("Parsing datestring as day: %w", err)
			return
		}
		date.Day = true

	default:
		err = fmt.Errorf("Invalid format: %q", ds)
	}
	return
}
