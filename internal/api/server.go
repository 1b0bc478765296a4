package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"video_catalog/internal/config"
	"video_catalog/internal/domain"
)

// Service is the slice of the catalog the HTTP surface needs.
type Service interface {
	ImportPlaylist(ctx context.Context, playlistURL string) (*domain.ImportStats, error)
	RegisterVideo(ctx context.Context, videoURL string) (*domain.RegisterResult, error)
	ListVideos(ctx context.Context) ([]domain.Video, error)
	UpdateTags(ctx context.Context, id int64, tagsText string) (bool, error)
}

type Server struct {
	ec      *echo.Echo
	config  config.ServerConfig
	service Service
	auth    *adminAuth
	logger  *slog.Logger
}

func NewServer(cfg config.ServerConfig, service Service, logger *slog.Logger) *Server {
	ec := echo.New()
	ec.HideBanner = true
	ec.HidePort = true

	s := &Server{
		ec:      ec,
		config:  cfg,
		service: service,
		auth:    newAdminAuth(cfg.SessionSecret, cfg.AdminPassword),
		logger:  logger.With("component", "api"),
	}

	ec.Use(middleware.Recover())

	ec.GET("/api/videos", s.handleListVideos)
	ec.POST("/api/videos/update-tags", s.handleUpdateTags)

	ec.POST("/api/admin/login", s.handleAdminLogin)
	ec.POST("/api/admin/logout", s.handleAdminLogout)
	ec.GET("/api/admin/status", s.handleAdminStatus)

	register := ec.Group("/api/register", s.auth.RequireAdmin)
	register.POST("/video", s.handleRegisterVideo)
	register.POST("/playlist", s.handleRegisterPlaylist)

	if cfg.PublicDir != "" {
		ec.Static("/", cfg.PublicDir)
	}

	return s
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.ec.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown", "error", err)
		}
	}()

	s.logger.Info("http server listening", "addr", s.config.Addr)

	err := s.ec.Start(s.config.Addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
