package analysis

import (
	"fmt"
	"time"

	"github.com/ademuri/spotify-history-tools/internal/history"
)

// GenerateReport summarizes the songs in plays. Totals and the yearly trend
// cover the whole history; the top lists only cover rng.
func GenerateReport(plays []history.Play, rng DateRange, metric Metric, numTracks, numArtists int) (*Report, error) {
	songs := SongsOnly(plays)
	if len(songs) == 0 {
		return nil, ErrNoPlays
	}

	filtered, err := FilterByDate(songs, rng)
	if err != nil {
		return nil, err
	}

	full, err := PresetAll.Range(songs)
	if err != nil {
		return nil, fmt.Errorf("computing history span: %w", err)
	}

	return &Report{
		Metadata: ReportMetadata{
			GeneratedDate:  time.Now().Format(dateFormat),
			FirstPlay:      full.Start.Format(dateFormat),
			LastPlay:       full.End.Format(dateFormat),
			Period:         rng.String(),
			SortedBy:       metric,
			DistinctTracks: TotalDistinctTracks(songs),
			TotalMinutes:   TotalMinutes(songs),
		},
		YearlyMinutes: YearlyMinutes(songs),
		TopTracks:     TopTracks(filtered, metric, numTracks),
		TopArtists:    TopArtists(filtered, numArtists),
	}, nil
}
