package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ademuri/spotify-history-tools/internal/history"
)

// Lookup returns the cached plays if digest is the archive currently held.
func (s *Store) Lookup(digest string) ([]history.Play, bool, error) {
	var count int
	err := s.db.QueryRow("SELECT plays FROM Archive WHERE digest = ?", digest).Scan(&count)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("looking up archive: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT ts, year, track, artist, episode, ms_played, track_uri
		FROM Play
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, false, fmt.Errorf("querying plays: %w", err)
	}
	defer rows.Close()

	plays := make([]history.Play, 0, count)
	for rows.Next() {
		var p history.Play
		var ts int64
		if err := rows.Scan(&ts, &p.Year, &p.TrackName, &p.ArtistName, &p.EpisodeName, &p.MsPlayed, &p.TrackURI); err != nil {
			return nil, false, fmt.Errorf("scanning play: %w", err)
		}
		p.Timestamp = time.Unix(0, ts).UTC()
		plays = append(plays, p)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("reading plays: %w", err)
	}
	return plays, true, nil
}

// Digest returns the digest of the cached archive, or "" when empty.
func (s *Store) Digest() (string, error) {
	var digest string
	err := s.db.QueryRow("SELECT digest FROM Archive").Scan(&digest)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading digest: %w", err)
	}
	return digest, nil
}
