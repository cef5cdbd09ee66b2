package analysis

// Report is the YAML document produced by the report command.
type Report struct {
	Metadata      ReportMetadata `yaml:"metadata"`
	YearlyMinutes []YearMinutes  `yaml:"yearly_minutes"`
	TopTracks     []TrackStat    `yaml:"top_tracks"`
	TopArtists    []ArtistStat   `yaml:"top_artists"`
}

type ReportMetadata struct {
	GeneratedDate  string `yaml:"generated_date"`
	FirstPlay      string `yaml:"first_play"`
	LastPlay       string `yaml:"last_play"`
	Period         string `yaml:"period"`
	SortedBy       Metric `yaml:"sorted_by"`
	DistinctTracks int    `yaml:"distinct_tracks"`
	TotalMinutes   int64  `yaml:"total_minutes"`
}

// YearMinutes is one point of the listening trend.
type YearMinutes struct {
	Year    int     `yaml:"year"`
	Minutes float64 `yaml:"minutes"`
}

type TrackStat struct {
	Track     string `yaml:"track"`
	Artist    string `yaml:"artist"`
	Minutes   int64  `yaml:"minutes"`
	PlayCount int64  `yaml:"play_count"`
	TrackURI  string `yaml:"track_uri,omitempty"`

	msPlayed int64
}

type ArtistStat struct {
	Artist  string `yaml:"artist"`
	Minutes int64  `yaml:"minutes"`

	msPlayed int64
}
