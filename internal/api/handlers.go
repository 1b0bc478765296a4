package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"video_catalog/internal/domain"
)

type videoJSON struct {
	ID    int64    `json:"id"`
	Title string   `json:"title"`
	URL   string   `json:"url"`
	Tags  []string `json:"tags"`
}

func (s *Server) handleListVideos(ec echo.Context) error {
	videos, err := s.service.ListVideos(ec.Request().Context())
	if err != nil {
		return s.mapError(err)
	}

	out := make([]videoJSON, 0, len(videos))
	for _, v := range videos {
		out = append(out, videoJSON{
			ID:    v.ID,
			Title: v.Title,
			URL:   v.URL,
			Tags:  v.Tags(),
		})
	}

	return ec.JSON(http.StatusOK, echo.Map{"videos": out})
}

func (s *Server) handleUpdateTags(ec echo.Context) error {
	var req struct {
		ID       *int64 `json:"id"`
		TagsText string `json:"tagsText"`
	}
	if err := ec.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ID == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}

	changed, err := s.service.UpdateTags(ec.Request().Context(), *req.ID, req.TagsText)
	if err != nil {
		return s.mapError(err)
	}

	return ec.JSON(http.StatusOK, echo.Map{"ok": true, "changed": changed})
}

func (s *Server) handleAdminLogin(ec echo.Context) error {
	var req struct {
		Password string `json:"password"`
	}
	if err := ec.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "password is required")
	}

	if !s.auth.CheckPassword(req.Password) {
		return echo.NewHTTPError(http.StatusUnauthorized, "wrong password")
	}

	if err := s.auth.IssueCookie(ec); err != nil {
		s.logger.Error("issue admin cookie", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return ec.JSON(http.StatusOK, echo.Map{"ok": true})
}

func (s *Server) handleAdminLogout(ec echo.Context) error {
	s.auth.ClearCookie(ec)
	return ec.JSON(http.StatusOK, echo.Map{"ok": true})
}

func (s *Server) handleAdminStatus(ec echo.Context) error {
	return ec.JSON(http.StatusOK, echo.Map{"isAdmin": s.auth.IsAdmin(ec)})
}

func (s *Server) handleRegisterVideo(ec echo.Context) error {
	var req struct {
		VideoURL string `json:"videoUrl"`
	}
	if err := ec.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.VideoURL == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "videoUrl is required")
	}

	result, err := s.service.RegisterVideo(ec.Request().Context(), req.VideoURL)
	if err != nil {
		return s.mapError(err)
	}

	return ec.JSON(http.StatusOK, echo.Map{
		"ok":             true,
		"alreadyExisted": result.AlreadyExisted,
		"id":             result.Video.ID,
		"title":          result.Video.Title,
	})
}

func (s *Server) handleRegisterPlaylist(ec echo.Context) error {
	var req struct {
		PlaylistURL string `json:"playlistUrl"`
	}
	if err := ec.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.PlaylistURL == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "playlistUrl is required")
	}

	stats, err := s.service.ImportPlaylist(ec.Request().Context(), req.PlaylistURL)
	if err != nil {
		return s.mapError(err)
	}

	return ec.JSON(http.StatusOK, echo.Map{
		"ok":       true,
		"fetched":  stats.Fetched,
		"inserted": stats.Inserted,
		"skipped":  stats.Skipped,
	})
}

// mapError translates the error taxonomy onto status codes: caller-input
// problems become 400s, environment problems 500s.
func (s *Server) mapError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidReference):
		return echo.NewHTTPError(http.StatusBadRequest, "not a recognizable YouTube URL")
	case errors.Is(err, domain.ErrNotFound):
		return echo.NewHTTPError(http.StatusBadRequest, "video not found")
	default:
		s.logger.Error("request failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
