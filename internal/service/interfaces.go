package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"video_catalog/internal/domain"
)

type VideoStore interface {
	FindByURL(ctx context.Context, url string) (*domain.Video, error)
	Insert(ctx context.Context, title, url, tagsText string) (*domain.Video, bool, error)
	List(ctx context.Context) ([]domain.Video, error)
	UpdateTags(ctx context.Context, id int64, tagsText string) (bool, error)
}

type ImportStateStore interface {
	Get(ctx context.Context, playlistID string) (*domain.ImportState, error)
	Upsert(ctx context.Context, state *domain.ImportState) error
	List(ctx context.Context) ([]domain.ImportState, error)
}

type Source interface {
	FetchPlaylistPage(ctx context.Context, playlistID, pageToken string) (*domain.PlaylistPage, error)
	FetchVideo(ctx context.Context, videoID string) (*domain.VideoSnippet, error)
}

type Publisher interface {
	Publish(ctx context.Context, video *domain.Video) error
	Close() error
}
