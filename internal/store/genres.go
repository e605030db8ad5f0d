package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"game-store/internal/models"
)

// ListGenres returns every genre in store order.
func (s *Store) ListGenres(ctx context.Context) ([]models.Genre, error) {
	genres := []models.Genre{}
	if err := s.db.SelectContext(ctx, &genres, `SELECT id, name FROM genres`); err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	return genres, nil
}

// genreName returns nil, not an error, when the genre does not exist.
func (s *Store) genreName(ctx context.Context, id int) (*string, error) {
	var name string
	err := s.db.GetContext(ctx, &name, `SELECT name FROM genres WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load genre %d: %w", id, err)
	}
	return &name, nil
}
