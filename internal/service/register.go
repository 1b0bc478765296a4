package service

import (
	"context"
	"fmt"

	"video_catalog/internal/domain"
	"video_catalog/internal/source/youtube"
)

// RegisterVideo catalogs a single video URL. A URL already present is a
// success: the existing record comes back with AlreadyExisted set. The URL
// is stored as given, so the same video reached through different URL shapes
// yields distinct records, matching the bulk path's canonical-url dedup only
// when the input is already canonical.
func (s *CatalogService) RegisterVideo(ctx context.Context, videoURL string) (*domain.RegisterResult, error) {
	videoID, ok := youtube.ExtractVideoID(videoURL)
	if !ok {
		return nil, fmt.Errorf("resolve video id from %q: %w", videoURL, domain.ErrInvalidReference)
	}

	snippet, err := s.source.FetchVideo(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("fetch video %s: %w", videoID, err)
	}

	existing, err := s.videos.FindByURL(ctx, videoURL)
	if err != nil {
		return nil, fmt.Errorf("find video: %w", err)
	}
	if existing != nil {
		return &domain.RegisterResult{Video: *existing, AlreadyExisted: true}, nil
	}

	video, created, err := s.videos.Insert(ctx, snippet.Title, videoURL, "")
	if err != nil {
		return nil, fmt.Errorf("insert video: %w", err)
	}
	if !created {
		// Lost a race on the unique index; the winner's record is the result.
		existing, err := s.videos.FindByURL(ctx, videoURL)
		if err != nil {
			return nil, fmt.Errorf("find video after conflict: %w", err)
		}
		if existing == nil {
			return nil, fmt.Errorf("video %q vanished after insert conflict", videoURL)
		}
		return &domain.RegisterResult{Video: *existing, AlreadyExisted: true}, nil
	}

	s.publish(ctx, video)

	s.logger.Info("registered video",
		"video_id", video.ID,
		"external_id", videoID,
		"title", video.Title,
	)

	return &domain.RegisterResult{Video: *video, AlreadyExisted: false}, nil
}
