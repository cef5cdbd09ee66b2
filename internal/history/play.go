package history

import (
	"database/sql"
	"time"
)

// Play is one listening event from the streaming history.
type Play struct {
	Timestamp   time.Time
	Year        int
	TrackName   sql.NullString
	ArtistName  sql.NullString
	EpisodeName sql.NullString
	MsPlayed    int64
	TrackURI    sql.NullString
}

// IsSong reports whether the play is a song rather than a podcast episode.
func (p Play) IsSong() bool {
	return !p.EpisodeName.Valid
}

// rawRecord mirrors one object of a Streaming_History_*.json file. Only the
// fields we use are declared; everything else is ignored by the decoder.
type rawRecord struct {
	Ts          *string `json:"ts"`
	MsPlayed    *int64  `json:"ms_played"`
	TrackName   *string `json:"master_metadata_track_name"`
	ArtistName  *string `json:"master_metadata_album_artist_name"`
	EpisodeName *string `json:"episode_name"`
	TrackURI    *string `json:"spotify_track_uri"`
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
