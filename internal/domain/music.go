package domain

import "context"

// TrackPerformance is one row of the track sales report.
type TrackPerformance struct {
	TrackName       string  `json:"track_name"`
	ArtistName      string  `json:"artist_name"`
	AlbumTitle      string  `json:"album_title"`
	Genre           string  `json:"genre"`
	TimesPurchased  int64   `json:"times_purchased"`
	TotalRevenue    float64 `json:"total_revenue"`
	AvgPrice        float64 `json:"avg_price"`
	DurationMinutes float64 `json:"duration_minutes"`
}

// GenreStats is one row of the genre popularity report.
type GenreStats struct {
	Genre         string  `json:"genre"`
	TracksSold    int64   `json:"tracks_sold"`
	Revenue       float64 `json:"revenue"`
	AvgPrice      float64 `json:"avg_price"`
	UniqueTracks  int64   `json:"unique_tracks"`
	UniqueArtists int64   `json:"unique_artists"`
}

// ArtistInsight is one row of the artist performance report.
type ArtistInsight struct {
	ArtistName       string  `json:"artist_name"`
	AlbumCount       int64   `json:"album_count"`
	TrackCount       int64   `json:"track_count"`
	TotalTracksSold  int64   `json:"total_tracks_sold"`
	TotalRevenue     float64 `json:"total_revenue"`
	AvgPrice         float64 `json:"avg_price"`
	AvgTrackDuration float64 `json:"avg_track_duration"`
}

// AlbumAnalytics is one row of the album performance report.
type AlbumAnalytics struct {
	AlbumTitle       string  `json:"album_title"`
	ArtistName       string  `json:"artist_name"`
	TrackCount       int64   `json:"track_count"`
	TotalSales       int64   `json:"total_sales"`
	AlbumRevenue     float64 `json:"album_revenue"`
	AvgTrackPrice    float64 `json:"avg_track_price"`
	AvgTrackDuration float64 `json:"avg_track_duration"`
	TotalDuration    float64 `json:"total_duration_minutes"`
}

// PlaylistStats is one row of the playlist composition report.
type PlaylistStats struct {
	PlaylistName     string  `json:"playlist_name"`
	TrackCount       int64   `json:"track_count"`
	AvgTrackDuration float64 `json:"avg_track_duration"`
	TotalHours       float64 `json:"total_duration_hours"`
	GenreDiversity   int64   `json:"genre_diversity"`
	ArtistDiversity  int64   `json:"artist_diversity"`
}

// TrackDiscovery correlates playlist placement with sales for one track.
type TrackDiscovery struct {
	TrackName           string `json:"track_name"`
	ArtistName          string `json:"artist_name"`
	PlaylistAppearances int64  `json:"playlist_appearances"`
	TotalSales          int64  `json:"total_sales"`
}

// GenreRevenue is one row of the revenue-by-genre breakdown.
type GenreRevenue struct {
	Genre         string  `json:"genre"`
	UnitsSold     int64   `json:"units_sold"`
	TotalRevenue  float64 `json:"total_revenue"`
	AvgPrice      float64 `json:"avg_price"`
	UniqueTracks  int64   `json:"unique_tracks"`
	UniqueArtists int64   `json:"unique_artists"`
	AvgDuration   float64 `json:"avg_duration"`
}

// TrackFilter bounds the track performance report.
type TrackFilter struct {
	MinSales int
	Limit    int
}

// ArtistFilter bounds the artist insight report.
type ArtistFilter struct {
	MinAlbums int
	Limit     int
}

// DiscoveryFilter bounds the content discovery report.
type DiscoveryFilter struct {
	MinPlaylists int
	Limit        int
}

// MusicRepository serves the music analytics page reports.
type MusicRepository interface {
	TrackPerformance(ctx context.Context, r DateRange, f TrackFilter) ([]TrackPerformance, error)
	GenreAnalysis(ctx context.Context, r DateRange) ([]GenreStats, error)
	ArtistInsights(ctx context.Context, r DateRange, f ArtistFilter) ([]ArtistInsight, error)
	AlbumAnalytics(ctx context.Context, r DateRange) ([]AlbumAnalytics, error)
	PlaylistPerformance(ctx context.Context) ([]PlaylistStats, error)
	ContentDiscovery(ctx context.Context, f DiscoveryFilter) ([]TrackDiscovery, error)
	RevenueByGenre(ctx context.Context, r DateRange) ([]GenreRevenue, error)
}
