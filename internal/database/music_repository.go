package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/razdine10/Groovify/internal/domain"
)

// MusicRepo implements domain.MusicRepository backed by PostgreSQL.
type MusicRepo struct {
	db *pgxpool.Pool
}

func NewMusicRepo(db *pgxpool.Pool) *MusicRepo {
	return &MusicRepo{db: db}
}

const trackPerformanceQuery = `
	SELECT t.name AS track_name
	     , ar.name AS artist_name
	     , al.title AS album_title
	     , g.name AS genre
	     , COUNT(il.invoice_line_id) AS times_purchased
	     , ROUND(SUM(il.unit_price * il.quantity), 2) AS total_revenue
	     , ROUND(AVG(il.unit_price), 2) AS avg_price
	     , ROUND(t.milliseconds/1000.0/60.0, 2) AS duration_minutes
	FROM track t
	JOIN album al ON t.album_id = al.album_id
	JOIN artist ar ON al.artist_id = ar.artist_id
	JOIN genre g ON t.genre_id = g.genre_id
	JOIN invoice_line il ON t.track_id = il.track_id
	JOIN invoice i ON il.invoice_id = i.invoice_id
	WHERE i.invoice_date::date BETWEEN $1 AND $2
	GROUP BY t.track_id, t.name, ar.name, al.title, g.name, t.milliseconds
	HAVING COUNT(il.invoice_line_id) >= $3
	ORDER BY times_purchased DESC
	LIMIT $4`

func (r *MusicRepo) TrackPerformance(ctx context.Context, rng domain.DateRange, f domain.TrackFilter) ([]domain.TrackPerformance, error) {
	defer observeQuery("music_tracks")()

	rows, err := r.db.Query(ctx, trackPerformanceQuery, rng.From, rng.To, f.MinSales, f.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query track performance: %w", err)
	}
	defer rows.Close()

	var result []domain.TrackPerformance
	for rows.Next() {
		var t domain.TrackPerformance
		if err := rows.Scan(&t.TrackName, &t.ArtistName, &t.AlbumTitle, &t.Genre,
			&t.TimesPurchased, &t.TotalRevenue, &t.AvgPrice, &t.DurationMinutes); err != nil {
			return nil, fmt.Errorf("failed to scan track performance: %w", err)
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

const genreAnalysisQuery = `
	SELECT g.name AS genre
	     , COUNT(il.invoice_line_id) AS tracks_sold
	     , ROUND(SUM(il.unit_price * il.quantity), 2) AS revenue
	     , ROUND(AVG(il.unit_price), 2) AS avg_price
	     , COUNT(DISTINCT t.track_id) AS unique_tracks
	     , COUNT(DISTINCT ar.artist_id) AS unique_artists
	FROM genre g
	JOIN track t ON g.genre_id = t.genre_id
	JOIN invoice_line il ON t.track_id = il.track_id
	JOIN invoice i ON il.invoice_id = i.invoice_id
	JOIN album al ON t.album_id = al.album_id
	JOIN artist ar ON al.artist_id = ar.artist_id
	WHERE i.invoice_date::date BETWEEN $1 AND $2
	GROUP BY g.genre_id, g.name
	ORDER BY tracks_sold DESC`

func (r *MusicRepo) GenreAnalysis(ctx context.Context, rng domain.DateRange) ([]domain.GenreStats, error) {
	defer observeQuery("music_genres")()

	rows, err := r.db.Query(ctx, genreAnalysisQuery, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query genre analysis: %w", err)
	}
	defer rows.Close()

	var result []domain.GenreStats
	for rows.Next() {
		var g domain.GenreStats
		if err := rows.Scan(&g.Genre, &g.TracksSold, &g.Revenue, &g.AvgPrice,
			&g.UniqueTracks, &g.UniqueArtists); err != nil {
			return nil, fmt.Errorf("failed to scan genre stats: %w", err)
		}
		result = append(result, g)
	}
	return result, rows.Err()
}

const artistInsightsQuery = `
	SELECT ar.name AS artist_name
	     , COUNT(DISTINCT al.album_id) AS album_count
	     , COUNT(DISTINCT t.track_id) AS track_count
	     , COUNT(il.invoice_line_id) AS total_tracks_sold
	     , ROUND(SUM(il.unit_price * il.quantity), 2) AS total_revenue
	     , ROUND(AVG(il.unit_price), 2) AS avg_price
	     , ROUND(AVG(t.milliseconds)/1000.0/60.0, 2) AS avg_track_duration
	FROM artist ar
	JOIN album al ON ar.artist_id = al.artist_id
	JOIN track t ON al.album_id = t.album_id
	JOIN invoice_line il ON t.track_id = il.track_id
	JOIN invoice i ON il.invoice_id = i.invoice_id
	WHERE i.invoice_date::date BETWEEN $1 AND $2
	GROUP BY ar.artist_id, ar.name
	HAVING COUNT(DISTINCT al.album_id) >= $3
	ORDER BY total_revenue DESC
	LIMIT $4`

func (r *MusicRepo) ArtistInsights(ctx context.Context, rng domain.DateRange, f domain.ArtistFilter) ([]domain.ArtistInsight, error) {
	defer observeQuery("music_artists")()

	rows, err := r.db.Query(ctx, artistInsightsQuery, rng.From, rng.To, f.MinAlbums, f.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query artist insights: %w", err)
	}
	defer rows.Close()

	var result []domain.ArtistInsight
	for rows.Next() {
		var a domain.ArtistInsight
		if err := rows.Scan(&a.ArtistName, &a.AlbumCount, &a.TrackCount, &a.TotalTracksSold,
			&a.TotalRevenue, &a.AvgPrice, &a.AvgTrackDuration); err != nil {
			return nil, fmt.Errorf("failed to scan artist insight: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

const albumAnalyticsQuery = `
	SELECT al.title AS album_title
	     , ar.name AS artist_name
	     , COUNT(DISTINCT t.track_id) AS track_count
	     , COUNT(il.invoice_line_id) AS total_sales
	     , ROUND(SUM(il.unit_price * il.quantity), 2) AS album_revenue
	     , ROUND(AVG(il.unit_price), 2) AS avg_track_price
	     , ROUND(AVG(t.milliseconds)/1000.0/60.0, 2) AS avg_track_duration
	     , ROUND(SUM(t.milliseconds)/1000.0/60.0, 2) AS total_duration_minutes
	FROM album al
	JOIN artist ar ON al.artist_id = ar.artist_id
	JOIN track t ON al.album_id = t.album_id
	JOIN invoice_line il ON t.track_id = il.track_id
	JOIN invoice i ON il.invoice_id = i.invoice_id
	WHERE i.invoice_date::date BETWEEN $1 AND $2
	GROUP BY al.album_id, al.title, ar.name
	ORDER BY album_revenue DESC`

func (r *MusicRepo) AlbumAnalytics(ctx context.Context, rng domain.DateRange) ([]domain.AlbumAnalytics, error) {
	defer observeQuery("music_albums")()

	rows, err := r.db.Query(ctx, albumAnalyticsQuery, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query album analytics: %w", err)
	}
	defer rows.Close()

	var result []domain.AlbumAnalytics
	for rows.Next() {
		var a domain.AlbumAnalytics
		if err := rows.Scan(&a.AlbumTitle, &a.ArtistName, &a.TrackCount, &a.TotalSales,
			&a.AlbumRevenue, &a.AvgTrackPrice, &a.AvgTrackDuration, &a.TotalDuration); err != nil {
			return nil, fmt.Errorf("failed to scan album analytics: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

const playlistPerformanceQuery = `
	WITH playlist_stats AS (
		SELECT p.playlist_id
		     , p.name AS playlist_name
		     , COUNT(pt.track_id) AS track_count
		     , ROUND(AVG(t.milliseconds)/1000.0/60.0, 2) AS avg_track_duration
		     , ROUND(SUM(t.milliseconds)/1000.0/60.0/60.0, 2) AS total_duration_hours
		     , COUNT(DISTINCT g.genre_id) AS genre_diversity
		     , COUNT(DISTINCT ar.artist_id) AS artist_diversity
		FROM playlist p
		JOIN playlist_track pt ON p.playlist_id = pt.playlist_id
		JOIN track t ON pt.track_id = t.track_id
		JOIN album al ON t.album_id = al.album_id
		JOIN artist ar ON al.artist_id = ar.artist_id
		JOIN genre g ON t.genre_id = g.genre_id
		GROUP BY p.playlist_id, p.name
	),
	dedup AS (
		SELECT *
		     , ROW_NUMBER() OVER (
		           PARTITION BY playlist_name
		           ORDER BY playlist_id
		       ) AS rn
		FROM playlist_stats
	)
	SELECT playlist_name
	     , track_count
	     , avg_track_duration
	     , total_duration_hours
	     , genre_diversity
	     , artist_diversity
	FROM dedup
	WHERE rn = 1
	ORDER BY track_count DESC`

func (r *MusicRepo) PlaylistPerformance(ctx context.Context) ([]domain.PlaylistStats, error) {
	defer observeQuery("music_playlists")()

	rows, err := r.db.Query(ctx, playlistPerformanceQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlist performance: %w", err)
	}
	defer rows.Close()

	var result []domain.PlaylistStats
	for rows.Next() {
		var p domain.PlaylistStats
		if err := rows.Scan(&p.PlaylistName, &p.TrackCount, &p.AvgTrackDuration,
			&p.TotalHours, &p.GenreDiversity, &p.ArtistDiversity); err != nil {
			return nil, fmt.Errorf("failed to scan playlist stats: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

const contentDiscoveryQuery = `
	SELECT t.name AS track_name
	     , ar.name AS artist_name
	     , COUNT(DISTINCT pt.playlist_id) AS playlist_appearances
	     , COALESCE(sales.total_sales, 0) AS total_sales
	FROM track t
	JOIN album al ON t.album_id = al.album_id
	JOIN artist ar ON al.artist_id = ar.artist_id
	JOIN playlist_track pt ON t.track_id = pt.track_id
	LEFT JOIN (
		SELECT il.track_id
		     , COUNT(il.invoice_line_id) AS total_sales
		FROM invoice_line il
		GROUP BY il.track_id
	) sales ON t.track_id = sales.track_id
	GROUP BY t.track_id, t.name, ar.name, sales.total_sales
	HAVING COUNT(DISTINCT pt.playlist_id) > $1
	ORDER BY playlist_appearances DESC, total_sales DESC
	LIMIT $2`

func (r *MusicRepo) ContentDiscovery(ctx context.Context, f domain.DiscoveryFilter) ([]domain.TrackDiscovery, error) {
	defer observeQuery("music_discovery")()

	rows, err := r.db.Query(ctx, contentDiscoveryQuery, f.MinPlaylists, f.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query content discovery: %w", err)
	}
	defer rows.Close()

	var result []domain.TrackDiscovery
	for rows.Next() {
		var t domain.TrackDiscovery
		if err := rows.Scan(&t.TrackName, &t.ArtistName, &t.PlaylistAppearances, &t.TotalSales); err != nil {
			return nil, fmt.Errorf("failed to scan track discovery: %w", err)
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

const revenueByGenreQuery = `
	SELECT g.name AS genre
	     , COUNT(il.invoice_line_id) AS units_sold
	     , ROUND(SUM(il.unit_price * il.quantity), 2) AS total_revenue
	     , ROUND(AVG(il.unit_price), 2) AS avg_price
	     , COUNT(DISTINCT t.track_id) AS unique_tracks
	     , COUNT(DISTINCT ar.artist_id) AS unique_artists
	     , ROUND(AVG(t.milliseconds)/1000.0/60.0, 2) AS avg_duration
	FROM invoice_line il
	JOIN invoice i ON il.invoice_id = i.invoice_id
	JOIN track t ON il.track_id = t.track_id
	JOIN album al ON t.album_id = al.album_id
	JOIN artist ar ON al.artist_id = ar.artist_id
	JOIN genre g ON t.genre_id = g.genre_id
	WHERE i.invoice_date::date BETWEEN $1 AND $2
	GROUP BY g.genre_id, g.name
	ORDER BY total_revenue DESC`

func (r *MusicRepo) RevenueByGenre(ctx context.Context, rng domain.DateRange) ([]domain.GenreRevenue, error) {
	defer observeQuery("music_revenue")()

	rows, err := r.db.Query(ctx, revenueByGenreQuery, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query revenue by genre: %w", err)
	}
	defer rows.Close()

	var result []domain.GenreRevenue
	for rows.Next() {
		var g domain.GenreRevenue
		if err := rows.Scan(&g.Genre, &g.UnitsSold, &g.TotalRevenue, &g.AvgPrice,
			&g.UniqueTracks, &g.UniqueArtists, &g.AvgDuration); err != nil {
			return nil, fmt.Errorf("failed to scan genre revenue: %w", err)
		}
		result = append(result, g)
	}
	return result, rows.Err()
}
