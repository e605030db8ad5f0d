package handler

import (
	"context"
	"errors"
	"sort"
	"sync"

	"game-store/internal/models"
	"game-store/internal/store"
)

// memStore mimics the Postgres store's semantics, including the left join on genres.
type memStore struct {
	mu     sync.Mutex
	nextID int
	games  map[int]models.Game
	genres []models.Genre
	err    error
}

func newMemStore(genres ...models.Genre) *memStore {
	return &memStore{nextID: 1, games: map[int]models.Game{}, genres: genres}
}

func (s *memStore) join(g models.Game) models.GameWithGenre {
	out := models.GameWithGenre{Game: g}
	for _, genre := range s.genres {
		if genre.ID == g.GenreID {
			name := genre.Name
			out.GenreName = &name
		}
	}
	return out
}

func (s *memStore) ListGames(ctx context.Context) ([]models.GameWithGenre, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	ids := make([]int, 0, len(s.games))
	for id := range s.games {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]models.GameWithGenre, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.join(s.games[id]))
	}
	return out, nil
}

func (s *memStore) GetGame(ctx context.Context, id int) (models.GameWithGenre, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return models.GameWithGenre{}, s.err
	}
	g, ok := s.games[id]
	if !ok {
		return models.GameWithGenre{}, store.ErrNotFound
	}
	return s.join(g), nil
}

func (s *memStore) CreateGame(ctx context.Context, game models.Game) (models.GameWithGenre, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return models.GameWithGenre{}, s.err
	}
	game.ID = s.nextID
	s.nextID++
	s.games[game.ID] = game
	return s.join(game), nil
}

func (s *memStore) UpdateGame(ctx context.Context, game models.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.games[game.ID]; !ok {
		return store.ErrNotFound
	}
	s.games[game.ID] = game
	return nil
}

func (s *memStore) DeleteGame(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	delete(s.games, id)
	return nil
}

func (s *memStore) ListGenres(ctx context.Context) ([]models.Genre, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]models.Genre(nil), s.genres...), nil
}

var errBroken = errors.New("connection refused")
