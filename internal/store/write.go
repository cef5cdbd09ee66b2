package store

import (
	"fmt"
	"time"

	"github.com/ademuri/spotify-history-tools/internal/history"
)

// Replace evicts the cached archive and stores plays under digest, in one
// transaction.
func (s *Store) Replace(digest string, plays []history.Play) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM Play"); err != nil {
		return fmt.Errorf("evicting plays: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM Archive"); err != nil {
		return fmt.Errorf("evicting archive: %w", err)
	}

	if _, err := tx.Exec("INSERT INTO Archive (digest, loaded_at, plays) VALUES (?, ?, ?)", digest, time.Now(), len(plays)); err != nil {
		return fmt.Errorf("inserting archive %s: %w", digest, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO Play (ts, year, track, artist, episode, ms_played, track_uri)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range plays {
		_, err := stmt.Exec(p.Timestamp.UnixNano(), p.Year, p.TrackName, p.ArtistName, p.EpisodeName, p.MsPlayed, p.TrackURI)
		if err != nil {
			return fmt.Errorf("inserting play at %s: %w", p.Timestamp.Format(time.RFC3339), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
