package history

import (
	"fmt"
	"sort"
	"time"
)

// DefaultMinPlayMs is the listening time a play must exceed to be counted.
const DefaultMinPlayMs = 10000

// Normalize parses timestamps, derives the year, drops plays of
// minPlayMs or less and sorts the rest chronologically. Plays with equal
// timestamps keep their input order.
func Normalize(records []Record, minPlayMs int64) ([]Play, error) {
	plays := make([]Play, 0, len(records))
	for _, rec := range records {
		ts, err := time.Parse(time.RFC3339, rec.Ts)
		if err != nil {
			return nil, &ParseError{File: rec.File, Err: fmt.Errorf("invalid ts %q: %w", rec.Ts, err)}
		}
		if rec.MsPlayed <= minPlayMs {
			continue
		}

		ts = ts.UTC()
		plays = append(plays, Play{
			Timestamp:   ts,
			Year:        ts.Year(),
			TrackName:   rec.TrackName,
			ArtistName:  rec.ArtistName,
			EpisodeName: rec.EpisodeName,
			MsPlayed:    rec.MsPlayed,
			TrackURI:    rec.TrackURI,
		})
	}

	sort.SliceStable(plays, func(i, j int) bool {
		return plays[i].Timestamp.Before(plays[j].Timestamp)
	})
	return plays, nil
}
