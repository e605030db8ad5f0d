package client

import (
	"context"
	"fmt"
	"net/http"

	"game-store/internal/models"

	"github.com/shopspring/decimal"
)

const (
	gamesPath  = "/games"
	genresPath = "/genres"
)

// GameSummary is an entry of the games list.
type GameSummary struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Genre       *string         `json:"genre"`
	Price       decimal.Decimal `json:"price"`
	ReleaseDate models.Date     `json:"releaseDate"`
}

// Game is the full view of a single game.
type Game struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	GenreID     int             `json:"genreId"`
	GenreName   *string         `json:"genreName"`
	Price       decimal.Decimal `json:"price"`
	ReleaseDate models.Date     `json:"releaseDate"`
}

// GameInput is the body sent to create or replace a game.
type GameInput struct {
	Name        string          `json:"name"`
	GenreID     int             `json:"genreId"`
	Price       decimal.Decimal `json:"price"`
	ReleaseDate models.Date     `json:"releaseDate"`
}

// GamesAPI wraps the /games endpoints. Its methods never touch the cache;
// call CachedGames().Revalidate after a mutation.
type GamesAPI struct {
	c *Client
}

// List fetches every game, bypassing the cache.
func (g *GamesAPI) List(ctx context.Context) ([]GameSummary, error) {
	var games []GameSummary
	if err := g.c.do(ctx, http.MethodGet, gamesPath, nil, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// Get fetches one game. A missing game is an *APIError with IsNotFound true.
func (g *GamesAPI) Get(ctx context.Context, id int) (Game, error) {
	var game Game
	err := g.c.do(ctx, http.MethodGet, gamePath(id), nil, &game)
	return game, err
}

// Create stores a new game and returns it as the API saved it.
func (g *GamesAPI) Create(ctx context.Context, in GameInput) (Game, error) {
	var game Game
	err := g.c.do(ctx, http.MethodPost, gamesPath, in, &game)
	return game, err
}

// Update replaces every mutable field of the game with the given id.
func (g *GamesAPI) Update(ctx context.Context, id int, in GameInput) error {
	return g.c.do(ctx, http.MethodPut, gamePath(id), in, nil)
}

// Delete removes a game. Deleting a missing game succeeds.
func (g *GamesAPI) Delete(ctx context.Context, id int) error {
	return g.c.do(ctx, http.MethodDelete, gamePath(id), nil, nil)
}

func gamePath(id int) string {
	return fmt.Sprintf("%s/%d", gamesPath, id)
}
