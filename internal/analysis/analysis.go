package analysis

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ademuri/spotify-history-tools/internal/history"
)

const (
	msPerMinute = 60 * 1000

	DefaultTopTracks  = 25
	DefaultTopArtists = 20
)

// Metric selects how top tracks are ranked.
type Metric string

const (
	MetricMinutes   Metric = "minutes"
	MetricPlayCount Metric = "plays"
)

var ErrNoPlays = errors.New("no song plays in dataset")

func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricMinutes, MetricPlayCount:
		return Metric(s), nil
	}
	return "", fmt.Errorf("unknown sort criterion %q, want %q or %q", s, MetricMinutes, MetricPlayCount)
}

type trackKey struct {
	track  string
	artist string
}

// SongsOnly drops podcast episodes.
func SongsOnly(plays []history.Play) []history.Play {
	songs := make([]history.Play, 0, len(plays))
	for _, p := range plays {
		if p.IsSong() {
			songs = append(songs, p)
		}
	}
	return songs
}

// TotalDistinctTracks counts distinct (track, artist) pairs. Plays missing
// either name belong to no pair.
func TotalDistinctTracks(plays []history.Play) int {
	seen := make(map[trackKey]struct{})
	for _, p := range plays {
		if key, ok := keyOf(p); ok {
			seen[key] = struct{}{}
		}
	}
	return len(seen)
}

// TotalMinutes returns the listening time in whole minutes.
func TotalMinutes(plays []history.Play) int64 {
	var ms int64
	for _, p := range plays {
		ms += p.MsPlayed
	}
	return ms / msPerMinute
}

// YearlyMinutes returns the minutes listened per year, oldest year first.
func YearlyMinutes(plays []history.Play) []YearMinutes {
	byYear := make(map[int]int64)
	for _, p := range plays {
		byYear[p.Year] += p.MsPlayed
	}

	years := make([]YearMinutes, 0, len(byYear))
	for year, ms := range byYear {
		years = append(years, YearMinutes{Year: year, Minutes: float64(ms) / msPerMinute})
	}
	sort.Slice(years, func(i, j int) bool {
		return years[i].Year < years[j].Year
	})
	return years
}

// FilterByDate keeps the plays whose UTC calendar date lies within rng, both
// ends included.
func FilterByDate(plays []history.Play, rng DateRange) ([]history.Play, error) {
	if !rng.Complete() {
		return nil, ErrIncompleteDateRange
	}

	filtered := make([]history.Play, 0, len(plays))
	for _, p := range plays {
		if rng.Contains(p.Timestamp) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// TopTracks ranks (track, artist) pairs by metric, descending. Ties fall back
// to the other metric, then track name, then artist. n <= 0 returns every
// track.
func TopTracks(plays []history.Play, metric Metric, n int) []TrackStat {
	index := make(map[trackKey]int)
	var stats []TrackStat
	for _, p := range plays {
		key, ok := keyOf(p)
		if !ok {
			continue
		}
		i, found := index[key]
		if !found {
			i = len(stats)
			index[key] = i
			stats = append(stats, TrackStat{
				Track:    key.track,
				Artist:   key.artist,
				TrackURI: p.TrackURI.String,
			})
		}
		stats[i].msPlayed += p.MsPlayed
		stats[i].PlayCount++
	}

	for i := range stats {
		stats[i].Minutes = stats[i].msPlayed / msPerMinute
	}

	sort.Slice(stats, func(i, j int) bool {
		a, b := stats[i], stats[j]
		primaryA, secondaryA := a.msPlayed, a.PlayCount
		primaryB, secondaryB := b.msPlayed, b.PlayCount
		if metric == MetricPlayCount {
			primaryA, secondaryA = secondaryA, primaryA
			primaryB, secondaryB = secondaryB, primaryB
		}
		if primaryA != primaryB {
			return primaryA > primaryB
		}
		if secondaryA != secondaryB {
			return secondaryA > secondaryB
		}
		if a.Track != b.Track {
			return a.Track < b.Track
		}
		return a.Artist < b.Artist
	})

	return limit(stats, n)
}

// TopArtists ranks artists by minutes listened, descending, ties by name.
func TopArtists(plays []history.Play, n int) []ArtistStat {
	index := make(map[string]int)
	var stats []ArtistStat
	for _, p := range plays {
		if !p.ArtistName.Valid {
			continue
		}
		i, found := index[p.ArtistName.String]
		if !found {
			i = len(stats)
			index[p.ArtistName.String] = i
			stats = append(stats, ArtistStat{Artist: p.ArtistName.String})
		}
		stats[i].msPlayed += p.MsPlayed
	}

	for i := range stats {
		stats[i].Minutes = stats[i].msPlayed / msPerMinute
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].msPlayed != stats[j].msPlayed {
			return stats[i].msPlayed > stats[j].msPlayed
		}
		return stats[i].Artist < stats[j].Artist
	})

	return limit(stats, n)
}

func keyOf(p history.Play) (trackKey, bool) {
	if !p.TrackName.Valid || !p.ArtistName.Valid {
		return trackKey{}, false
	}
	return trackKey{track: p.TrackName.String, artist: p.ArtistName.String}, true
}

func limit[T any](stats []T, n int) []T {
	if n > 0 && len(stats) > n {
		return stats[:n]
	}
	return stats
}
