package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/razdine10/Groovify/internal/domain"
)

func TestMusicTrackPerformance(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewMusicRepo(pool)
	ctx := context.Background()

	tracks, err := repo.TrackPerformance(ctx, fullRange(), domain.TrackFilter{MinSales: 1, Limit: 100})
	require.NoError(t, err)
	require.Len(t, tracks, 3)

	// Most purchased first
	top := tracks[0]
	assert.Equal(t, "Stack Overflow", top.TrackName)
	assert.Equal(t, "The Rolling Codes", top.ArtistName)
	assert.Equal(t, "Rock", top.Genre)
	assert.Equal(t, int64(3), top.TimesPurchased)
	assert.InDelta(t, 70.89, top.TotalRevenue, 0.01)
}

func TestMusicTrackPerformance_MinSalesFilter(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewMusicRepo(pool)
	ctx := context.Background()

	tracks, err := repo.TrackPerformance(ctx, fullRange(), domain.TrackFilter{MinSales: 2, Limit: 100})
	require.NoError(t, err)

	for _, tr := range tracks {
		assert.GreaterOrEqual(t, tr.TimesPurchased, int64(2))
	}
}

func TestMusicGenreAnalysis(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewMusicRepo(pool)
	ctx := context.Background()

	genres, err := repo.GenreAnalysis(ctx, fullRange())
	require.NoError(t, err)
	require.Len(t, genres, 2)

	assert.Equal(t, "Rock", genres[0].Genre)
	assert.Equal(t, int64(4), genres[0].TracksSold)
	assert.InDelta(t, 74.85, genres[0].Revenue, 0.01)
	assert.Equal(t, int64(2), genres[0].UniqueTracks)
	assert.Equal(t, int64(1), genres[0].UniqueArtists)
}

func TestMusicArtistInsights(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewMusicRepo(pool)
	ctx := context.Background()

	artists, err := repo.ArtistInsights(ctx, fullRange(), domain.ArtistFilter{MinAlbums: 1, Limit: 50})
	require.NoError(t, err)
	require.Len(t, artists, 2)

	// Highest revenue first
	top := artists[0]
	assert.Equal(t, "The Rolling Codes", top.ArtistName)
	assert.Equal(t, int64(1), top.AlbumCount)
	assert.Equal(t, int64(2), top.TrackCount)
	assert.InDelta(t, 74.85, top.TotalRevenue, 0.01)
}

func TestMusicAlbumAnalytics(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewMusicRepo(pool)
	ctx := context.Background()

	albums, err := repo.AlbumAnalytics(ctx, fullRange())
	require.NoError(t, err)
	require.Len(t, albums, 2)

	assert.Equal(t, "Infinite Loop", albums[0].AlbumTitle)
	assert.InDelta(t, 74.85, albums[0].AlbumRevenue, 0.01)
	assert.Equal(t, int64(2), albums[0].TrackCount)
}

func TestMusicPlaylistPerformance(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewMusicRepo(pool)
	ctx := context.Background()

	playlists, err := repo.PlaylistPerformance(ctx)
	require.NoError(t, err)
	require.Len(t, playlists, 2)

	// Largest playlist first
	assert.Equal(t, "Top Hits", playlists[0].PlaylistName)
	assert.Equal(t, int64(2), playlists[0].TrackCount)
	assert.Equal(t, int64(1), playlists[0].GenreDiversity)
	assert.Equal(t, int64(1), playlists[0].ArtistDiversity)
}

func TestMusicContentDiscovery(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewMusicRepo(pool)
	ctx := context.Background()

	tracks, err := repo.ContentDiscovery(ctx, domain.DiscoveryFilter{MinPlaylists: 0, Limit: 50})
	require.NoError(t, err)
	require.Len(t, tracks, 2)

	// Most placed first
	assert.Equal(t, "Stack Overflow", tracks[0].TrackName)
	assert.Equal(t, int64(2), tracks[0].PlaylistAppearances)
	assert.Equal(t, int64(3), tracks[0].TotalSales)
}

func TestMusicContentDiscovery_MinPlaylistsFilter(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewMusicRepo(pool)
	ctx := context.Background()

	tracks, err := repo.ContentDiscovery(ctx, domain.DiscoveryFilter{MinPlaylists: 1, Limit: 50})
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, "Stack Overflow", tracks[0].TrackName)
}

func TestMusicRevenueByGenre(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewMusicRepo(pool)
	ctx := context.Background()

	genres, err := repo.RevenueByGenre(ctx, fullRange())
	require.NoError(t, err)
	require.Len(t, genres, 2)

	assert.Equal(t, "Rock", genres[0].Genre)
	assert.Equal(t, int64(4), genres[0].UnitsSold)
	assert.InDelta(t, 74.85, genres[0].TotalRevenue, 0.01)
}
