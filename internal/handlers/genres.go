package handler

import (
	"context"
	"log/slog"
	"net/http"

	"game-store/internal/models"
)

// GenreStore is the persistence the genre endpoint needs.
type GenreStore interface {
	ListGenres(ctx context.Context) ([]models.Genre, error)
}

// GenreHandler serves the read-only genre list.
type GenreHandler struct {
	Store GenreStore
}

// GenreResponse is a genre as it crosses the API.
type GenreResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ListGenres returns every genre.
func (h *GenreHandler) ListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.Store.ListGenres(r.Context())
	if err != nil {
		slog.Error("failed to list genres", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	genreResponses := make([]GenreResponse, len(genres))
	for i, genre := range genres {
		genreResponses[i] = GenreResponse{ID: genre.ID, Name: genre.Name}
	}

	writeJSON(w, http.StatusOK, genreResponses)
}
