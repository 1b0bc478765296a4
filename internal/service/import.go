package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"video_catalog/internal/config"
	"video_catalog/internal/domain"
	"video_catalog/internal/source/youtube"
)

type CatalogService struct {
	source      Source
	videos      VideoStore
	importState ImportStateStore
	publisher   Publisher
	logger      *slog.Logger
	config      config.ImportConfig
}

func NewCatalogService(
	source Source,
	videos VideoStore,
	importState ImportStateStore,
	publisher Publisher,
	logger *slog.Logger,
	cfg config.ImportConfig,
) *CatalogService {
	return &CatalogService{
		source:      source,
		videos:      videos,
		importState: importState,
		publisher:   publisher,
		logger:      logger.With("component", "catalog"),
		config:      cfg,
	}
}

// ImportPlaylist registers every video of a playlist URL, reporting how many
// entries were fetched, inserted, and skipped as already present.
func (s *CatalogService) ImportPlaylist(ctx context.Context, playlistURL string) (*domain.ImportStats, error) {
	playlistID, ok := youtube.ExtractPlaylistID(playlistURL)
	if !ok {
		return nil, fmt.Errorf("resolve playlist id from %q: %w", playlistURL, domain.ErrInvalidReference)
	}
	return s.ImportPlaylistByID(ctx, playlistID)
}

// ImportPlaylistByID pages through the playlist and reconciles each page.
// Pages are fetched strictly sequentially (each fetch needs the previous
// page's continuation token); items within a page are reconciled
// concurrently. A source or store failure aborts the run and discards the
// partial tally; inserts already made stay in the store.
func (s *CatalogService) ImportPlaylistByID(ctx context.Context, playlistID string) (*domain.ImportStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.RunTimeout)
	defer cancel()

	startTime := time.Now()
	s.logger.Info("starting playlist import", "playlist_id", playlistID)

	stats := &domain.ImportStats{PlaylistID: playlistID}
	pageToken := ""

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		page, err := s.source.FetchPlaylistPage(ctx, playlistID, pageToken)
		if err != nil {
			return nil, fmt.Errorf("fetch playlist page: %w", err)
		}

		if len(page.Items) == 0 {
			break
		}

		inserted, skipped, err := s.reconcilePage(ctx, page.Items)
		if err != nil {
			return nil, fmt.Errorf("reconcile page: %w", err)
		}

		stats.Fetched += len(page.Items)
		stats.Inserted += inserted
		stats.Skipped += skipped

		s.logger.Debug("page reconciled",
			"playlist_id", playlistID,
			"items", len(page.Items),
			"inserted", inserted,
			"skipped", skipped,
		)

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	stats.Duration = time.Since(startTime)

	if err := s.recordImport(ctx, stats); err != nil {
		s.logger.Warn("record import state", "playlist_id", playlistID, "error", err)
	}

	s.logger.Info("playlist import completed",
		"playlist_id", playlistID,
		"fetched", stats.Fetched,
		"inserted", stats.Inserted,
		"skipped", stats.Skipped,
		"duration", stats.Duration,
	)

	return stats, nil
}

// reconcilePage fans one goroutine out per item and folds the outcomes into
// counts only after every task has finished, so no counter is shared across
// goroutines. Any item error cancels the remaining items and fails the page.
func (s *CatalogService) reconcilePage(ctx context.Context, items []domain.PlaylistItem) (inserted, skipped int, err error) {
	outcomes := make(chan domain.Outcome, len(items))

	g, gctx := errgroup.WithContext(ctx)
	for _, item := range items {
		g.Go(func() error {
			outcome, err := s.reconcileItem(gctx, item)
			if err != nil {
				return err
			}
			outcomes <- outcome
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, 0, err
	}
	close(outcomes)

	for outcome := range outcomes {
		switch outcome {
		case domain.OutcomeInserted:
			inserted++
		case domain.OutcomeSkipped:
			skipped++
		}
	}

	return inserted, skipped, nil
}

func (s *CatalogService) reconcileItem(ctx context.Context, item domain.PlaylistItem) (domain.Outcome, error) {
	if item.Kind != domain.ItemKindVideo {
		return domain.OutcomeIgnored, nil
	}

	video, created, err := s.videos.Insert(ctx, item.Title, youtube.WatchURL(item.VideoID), "")
	if err != nil {
		return domain.OutcomeIgnored, fmt.Errorf("insert video: %w", err)
	}
	if !created {
		return domain.OutcomeSkipped, nil
	}

	s.publish(ctx, video)
	return domain.OutcomeInserted, nil
}

func (s *CatalogService) recordImport(ctx context.Context, stats *domain.ImportStats) error {
	state, err := s.importState.Get(ctx, stats.PlaylistID)
	if err != nil {
		return err
	}

	state.LastImportedAt = time.Now()
	state.TotalImported += int64(stats.Inserted)

	return s.importState.Upsert(ctx, state)
}

// RefreshTracked re-imports every playlist that has been imported before.
// Failures are logged per playlist so one broken playlist does not stall
// the rest.
func (s *CatalogService) RefreshTracked(ctx context.Context) error {
	states, err := s.importState.List(ctx)
	if err != nil {
		return fmt.Errorf("list tracked playlists: %w", err)
	}

	for _, state := range states {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := s.ImportPlaylistByID(ctx, state.PlaylistID); err != nil {
			s.logger.Error("refresh playlist failed",
				"playlist_id", state.PlaylistID,
				"error", err,
			)
		}
	}

	return nil
}

func (s *CatalogService) publish(ctx context.Context, video *domain.Video) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, video); err != nil {
		s.logger.Warn("publish registered video", "video_id", video.ID, "error", err)
	}
}
