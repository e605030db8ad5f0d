package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"game-store/internal/decoder"
	"game-store/internal/models"
	"game-store/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// GameStore is the persistence the game endpoints need.
type GameStore interface {
	ListGames(ctx context.Context) ([]models.GameWithGenre, error)
	GetGame(ctx context.Context, id int) (models.GameWithGenre, error)
	CreateGame(ctx context.Context, game models.Game) (models.GameWithGenre, error)
	UpdateGame(ctx context.Context, game models.Game) error
	DeleteGame(ctx context.Context, id int) error
}

// GameHandler holds dependencies for game-related handlers.
type GameHandler struct {
	Store GameStore
}

// GameRequest is the body of both create and update requests.
type GameRequest struct {
	Name        string          `json:"name" validate:"required,notblank,max=50"`
	GenreID     int             `json:"genreId" validate:"min=1"`
	Price       decimal.Decimal `json:"price" validate:"price,cents"`
	ReleaseDate models.Date     `json:"releaseDate" validate:"required"`
}

// GameSummaryResponse is the list projection: the genre appears by name only.
type GameSummaryResponse struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Genre       *string         `json:"genre"`
	Price       decimal.Decimal `json:"price"`
	ReleaseDate models.Date     `json:"releaseDate"`
}

// GameDetailsResponse is the single-game projection.
type GameDetailsResponse struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	GenreID     int             `json:"genreId"`
	GenreName   *string         `json:"genreName"`
	Price       decimal.Decimal `json:"price"`
	ReleaseDate models.Date     `json:"releaseDate"`
}

func (req GameRequest) toGame(id int) models.Game {
	return models.Game{
		ID:          id,
		Name:        req.Name,
		GenreID:     req.GenreID,
		Price:       req.Price,
		ReleaseDate: req.ReleaseDate,
	}
}

func toSummary(g models.GameWithGenre) GameSummaryResponse {
	return GameSummaryResponse{
		ID:          g.ID,
		Name:        g.Name,
		Genre:       g.GenreName,
		Price:       g.Price,
		ReleaseDate: g.ReleaseDate,
	}
}

func toDetails(g models.GameWithGenre) GameDetailsResponse {
	return GameDetailsResponse{
		ID:          g.ID,
		Name:        g.Name,
		GenreID:     g.GenreID,
		GenreName:   g.GenreName,
		Price:       g.Price,
		ReleaseDate: g.ReleaseDate,
	}
}

// ListGames returns every game as a summary.
func (h *GameHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.Store.ListGames(r.Context())
	if err != nil {
		slog.Error("failed to list games", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	gameResponses := make([]GameSummaryResponse, len(games))
	for i, game := range games {
		gameResponses[i] = toSummary(game)
	}

	writeJSON(w, http.StatusOK, gameResponses)
}

// GetGame returns one game with its genre id and name.
func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDParam(w, r)
	if !ok {
		return
	}

	game, err := h.Store.GetGame(r.Context(), gameID)
	if errors.Is(err, store.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to get game", "game_id", gameID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, toDetails(game))
}

// AddGame validates and stores a new game, answering 201 with its location.
func (h *GameHandler) AddGame(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if err := decoder.DecodeJSONBody(w, r, &req); err != nil {
		slog.Debug("failed to decode add game request", "error", err)
		decoder.WriteError(w, err)
		return
	}

	if problems := validateRequest(req); problems != nil {
		writeValidationProblem(w, problems)
		return
	}

	created, err := h.Store.CreateGame(r.Context(), req.toGame(0))
	if err != nil {
		slog.Error("failed to create game", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	slog.Info("game added", "game_id", created.ID, "name", created.Name)
	w.Header().Set("Location", "/games/"+strconv.Itoa(created.ID))
	writeJSON(w, http.StatusCreated, toDetails(created))
}

// UpdateGame replaces every mutable field of an existing game.
func (h *GameHandler) UpdateGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDParam(w, r)
	if !ok {
		return
	}

	var req GameRequest
	if err := decoder.DecodeJSONBody(w, r, &req); err != nil {
		slog.Debug("failed to decode update game request", "game_id", gameID, "error", err)
		decoder.WriteError(w, err)
		return
	}

	if problems := validateRequest(req); problems != nil {
		writeValidationProblem(w, problems)
		return
	}

	err := h.Store.UpdateGame(r.Context(), req.toGame(gameID))
	if errors.Is(err, store.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to update game", "game_id", gameID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteGame removes a game. Deleting an unknown id still answers 204.
func (h *GameHandler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDParam(w, r)
	if !ok {
		return
	}

	if err := h.Store.DeleteGame(r.Context(), gameID); err != nil {
		slog.Error("failed to delete game", "game_id", gameID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func gameIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	gameID, err := strconv.Atoi(chi.URLParam(r, "gameID"))
	if err != nil {
		http.Error(w, "Invalid game ID format", http.StatusBadRequest)
		return 0, false
	}
	return gameID, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
