package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"game-store/internal/models"
)

const selectGameWithGenre = `
SELECT g.id, g.name, g.genre_id, g.price, g.release_date, ge.name AS genre_name
FROM games g
LEFT JOIN genres ge ON ge.id = g.genre_id`

// ListGames returns every game joined to its genre, in store order.
func (s *Store) ListGames(ctx context.Context) ([]models.GameWithGenre, error) {
	games := []models.GameWithGenre{}
	if err := s.db.SelectContext(ctx, &games, selectGameWithGenre); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

// GetGame returns one game joined to its genre, or ErrNotFound.
func (s *Store) GetGame(ctx context.Context, id int) (models.GameWithGenre, error) {
	var game models.GameWithGenre
	err := s.db.GetContext(ctx, &game, selectGameWithGenre+` WHERE g.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.GameWithGenre{}, ErrNotFound
	}
	if err != nil {
		return models.GameWithGenre{}, fmt.Errorf("get game %d: %w", id, err)
	}
	return game, nil
}

// CreateGame inserts a game, ignoring game.ID, and returns the stored row
// with the genre name loaded.
func (s *Store) CreateGame(ctx context.Context, game models.Game) (models.GameWithGenre, error) {
	err := s.db.QueryRowxContext(ctx,
		`INSERT INTO games (name, genre_id, price, release_date) VALUES ($1, $2, $3, $4) RETURNING id`,
		game.Name, game.GenreID, game.Price, game.ReleaseDate,
	).Scan(&game.ID)
	if err != nil {
		return models.GameWithGenre{}, fmt.Errorf("insert game: %w", err)
	}

	created := models.GameWithGenre{Game: game}
	created.GenreName, err = s.genreName(ctx, game.GenreID)
	if err != nil {
		return models.GameWithGenre{}, err
	}
	return created, nil
}

// UpdateGame overwrites the mutable fields of the game with game.ID.
// It returns ErrNotFound and changes nothing when no such game exists.
func (s *Store) UpdateGame(ctx context.Context, game models.Game) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE games SET name = $1, genre_id = $2, price = $3, release_date = $4 WHERE id = $5`,
		game.Name, game.GenreID, game.Price, game.ReleaseDate, game.ID,
	)
	if err != nil {
		return fmt.Errorf("update game %d: %w", game.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update game %d: %w", game.ID, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteGame removes the game with the given id. Deleting a missing game is not an error.
func (s *Store) DeleteGame(ctx context.Context, id int) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete game %d: %w", id, err)
	}
	return nil
}

// CountGames returns the number of stored games.
func (s *Store) CountGames(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM games`); err != nil {
		return 0, fmt.Errorf("count games: %w", err)
	}
	return n, nil
}

// DeleteAllGames empties the games table and reports how many rows were removed.
func (s *Store) DeleteAllGames(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM games`)
	if err != nil {
		return 0, fmt.Errorf("delete games: %w", err)
	}
	return res.RowsAffected()
}
