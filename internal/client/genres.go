package client

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

// Genre is a selectable game genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenresAPI wraps the read-only /genres endpoint.
type GenresAPI struct {
	c *Client
}

// List fetches every genre, bypassing the cache.
func (g *GenresAPI) List(ctx context.Context) ([]Genre, error) {
	var genres []Genre
	if err := g.c.do(ctx, http.MethodGet, genresPath, nil, &genres); err != nil {
		return nil, err
	}
	return genres, nil
}

// GenreIDByName finds a genre by name, ignoring case.
func GenreIDByName(genres []Genre, name string) (int, bool) {
	for _, g := range genres {
		if strings.EqualFold(g.Name, name) {
			return g.ID, true
		}
	}
	return 0, false
}

// ResolveGenre accepts either a numeric genre id or a genre name.
func ResolveGenre(genres []Genre, ref string) (int, bool) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.Atoi(ref); err == nil {
		for _, g := range genres {
			if g.ID == id {
				return id, true
			}
		}
		return 0, false
	}
	return GenreIDByName(genres, ref)
}
