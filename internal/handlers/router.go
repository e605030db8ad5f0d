package handler

import (
	"net/http"

	api_middleware "game-store/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig carries what NewRouter wires together.
type RouterConfig struct {
	Games          GameStore
	Genres         GenreStore
	AllowedOrigins []string
}

// NewRouter builds the full HTTP surface of the API.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(api_middleware.CORS(cfg.AllowedOrigins))
	r.Use(api_middleware.Telemetry)

	gameHandler := &GameHandler{Store: cfg.Games}
	genreHandler := &GenreHandler{Store: cfg.Genres}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("API is running"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/games", func(r chi.Router) {
		r.Get("/", gameHandler.ListGames)
		r.Post("/", gameHandler.AddGame)
		r.Get("/{gameID}", gameHandler.GetGame)
		r.Put("/{gameID}", gameHandler.UpdateGame)
		r.Delete("/{gameID}", gameHandler.DeleteGame)
	})
	r.Get("/genres", genreHandler.ListGenres)

	return r
}
