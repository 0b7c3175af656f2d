package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/razdine10/Groovify/internal/domain"
)

func (s *Server) handleMusicTracks(c echo.Context) error {
	rng, err := parseRange(c)
	if err != nil {
		return err
	}

	minSales, err := intParam(c, "min_sales", 0)
	if err != nil {
		return err
	}
	limit, err := intParam(c, "limit", 0)
	if err != nil {
		return err
	}

	tracks, err := s.app.MusicTracks(c.Request().Context(), rng, domain.TrackFilter{
		MinSales: minSales,
		Limit:    limit,
	})
	if err != nil {
		return reportError("music_tracks", err)
	}
	return c.JSON(http.StatusOK, tracks)
}

func (s *Server) handleMusicGenres(c echo.Context) error {
	rng, err := parseRange(c)
	if err != nil {
		return err
	}

	genres, err := s.app.MusicGenres(c.Request().Context(), rng)
	if err != nil {
		return reportError("music_genres", err)
	}
	return c.JSON(http.StatusOK, genres)
}

func (s *Server) handleMusicArtists(c echo.Context) error {
	rng, err := parseRange(c)
	if err != nil {
		return err
	}

	minAlbums, err := intParam(c, "min_albums", 0)
	if err != nil {
		return err
	}
	limit, err := intParam(c, "limit", 0)
	if err != nil {
		return err
	}

	artists, err := s.app.MusicArtists(c.Request().Context(), rng, domain.ArtistFilter{
		MinAlbums: minAlbums,
		Limit:     limit,
	})
	if err != nil {
		return reportError("music_artists", err)
	}
	return c.JSON(http.StatusOK, artists)
}

func (s *Server) handleMusicAlbums(c echo.Context) error {
	rng, err := parseRange(c)
	if err != nil {
		return err
	}

	albums, err := s.app.MusicAlbums(c.Request().Context(), rng)
	if err != nil {
		return reportError("music_albums", err)
	}
	return c.JSON(http.StatusOK, albums)
}

func (s *Server) handleMusicPlaylists(c echo.Context) error {
	playlists, err := s.app.MusicPlaylists(c.Request().Context())
	if err != nil {
		return reportError("music_playlists", err)
	}
	return c.JSON(http.StatusOK, playlists)
}

func (s *Server) handleMusicDiscovery(c echo.Context) error {
	minPlaylists, err := intParam(c, "min_playlists", 0)
	if err != nil {
		return err
	}
	limit, err := intParam(c, "limit", 0)
	if err != nil {
		return err
	}

	tracks, err := s.app.MusicDiscovery(c.Request().Context(), domain.DiscoveryFilter{
		MinPlaylists: minPlaylists,
		Limit:        limit,
	})
	if err != nil {
		return reportError("music_discovery", err)
	}
	return c.JSON(http.StatusOK, tracks)
}

func (s *Server) handleMusicRevenueByGenre(c echo.Context) error {
	rng, err := parseRange(c)
	if err != nil {
		return err
	}

	genres, err := s.app.MusicRevenueByGenre(c.Request().Context(), rng)
	if err != nil {
		return reportError("music_revenue_by_genre", err)
	}
	return c.JSON(http.StatusOK, genres)
}
