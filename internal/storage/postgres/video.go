package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"video_catalog/internal/domain"
)

type VideoStore struct {
	db *sqlx.DB
}

func NewVideoStore(db *sqlx.DB) *VideoStore {
	return &VideoStore{db: db}
}

// FindByURL looks a video up by its natural key. A missing row is not an
// error; it returns (nil, nil).
func (s *VideoStore) FindByURL(ctx context.Context, url string) (*domain.Video, error) {
	var video domain.Video
	query := `
		SELECT id, title, url, tags_text, created_at
		FROM videos
		WHERE url = $1`

	err := s.db.GetContext(ctx, &video, query, url)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "find video by url", Err: err}
	}
	return &video, nil
}

// Insert creates a video unless its url is already taken. The unique index
// on url makes the check-then-act race harmless: the losing writer sees no
// returned row and reports inserted=false.
func (s *VideoStore) Insert(ctx context.Context, title, url, tagsText string) (*domain.Video, bool, error) {
	query := `
		INSERT INTO videos (title, url, tags_text)
		VALUES ($1, $2, $3)
		ON CONFLICT (url) DO NOTHING
		RETURNING id, title, url, tags_text, created_at`

	var video domain.Video
	err := s.db.GetContext(ctx, &video, query, title, url, tagsText)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &domain.StorageError{Op: "insert video", Err: err}
	}

	return &video, true, nil
}

// List returns all cataloged videos ordered by id.
func (s *VideoStore) List(ctx context.Context) ([]domain.Video, error) {
	var videos []domain.Video
	query := `
		SELECT id, title, url, tags_text, created_at
		FROM videos
		ORDER BY id`

	if err := s.db.SelectContext(ctx, &videos, query); err != nil {
		return nil, &domain.StorageError{Op: "list videos", Err: err}
	}
	return videos, nil
}

// UpdateTags replaces a video's tag text and reports whether a row matched.
func (s *VideoStore) UpdateTags(ctx context.Context, id int64, tagsText string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE videos SET tags_text = $1 WHERE id = $2",
		tagsText, id,
	)
	if err != nil {
		return false, &domain.StorageError{Op: "update tags", Err: err}
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, &domain.StorageError{Op: "update tags", Err: err}
	}
	return affected > 0, nil
}
