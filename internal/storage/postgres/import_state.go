package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"video_catalog/internal/domain"
)

type ImportStateStore struct {
	db *sqlx.DB
}

func NewImportStateStore(db *sqlx.DB) *ImportStateStore {
	return &ImportStateStore{db: db}
}

func (s *ImportStateStore) Get(ctx context.Context, playlistID string) (*domain.ImportState, error) {
	var state domain.ImportState
	query := `
		SELECT id, playlist_id, last_imported_at, total_imported
		FROM import_state
		WHERE playlist_id = $1`

	err := s.db.GetContext(ctx, &state, query, playlistID)
	if errors.Is(err, sql.ErrNoRows) {
		// Empty state for playlists imported for the first time.
		return &domain.ImportState{
			PlaylistID:     playlistID,
			LastImportedAt: time.Time{},
		}, nil
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get import state", Err: err}
	}
	return &state, nil
}

func (s *ImportStateStore) Upsert(ctx context.Context, state *domain.ImportState) error {
	query := `
		INSERT INTO import_state (playlist_id, last_imported_at, total_imported)
		VALUES ($1, $2, $3)
		ON CONFLICT (playlist_id) DO UPDATE SET
			last_imported_at = EXCLUDED.last_imported_at,
			total_imported = EXCLUDED.total_imported`

	_, err := s.db.ExecContext(ctx, query,
		state.PlaylistID,
		state.LastImportedAt,
		state.TotalImported,
	)
	if err != nil {
		return &domain.StorageError{Op: "upsert import state", Err: err}
	}
	return nil
}

// List returns every tracked playlist, oldest import first.
func (s *ImportStateStore) List(ctx context.Context) ([]domain.ImportState, error) {
	var states []domain.ImportState
	query := `
		SELECT id, playlist_id, last_imported_at, total_imported
		FROM import_state
		ORDER BY last_imported_at`

	if err := s.db.SelectContext(ctx, &states, query); err != nil {
		return nil, &domain.StorageError{Op: "list import state", Err: err}
	}
	return states, nil
}
