package service

import (
	"context"
	"fmt"
	"strings"

	"video_catalog/internal/domain"
)

// ListVideos returns the whole catalog ordered by id.
func (s *CatalogService) ListVideos(ctx context.Context) ([]domain.Video, error) {
	videos, err := s.videos.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return videos, nil
}

// UpdateTags replaces a video's tag text and reports whether the video
// exists. Tag text is trimmed as a whole; individual tags are normalized on
// read (see domain.Video.Tags).
func (s *CatalogService) UpdateTags(ctx context.Context, id int64, tagsText string) (bool, error) {
	changed, err := s.videos.UpdateTags(ctx, id, strings.TrimSpace(tagsText))
	if err != nil {
		return false, fmt.Errorf("update tags: %w", err)
	}
	return changed, nil
}
