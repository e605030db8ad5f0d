/*
 * main.go
 * Entry point for the Game Store API.
 */

package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"game-store/internal/config"
	handler "game-store/internal/handlers"
	"game-store/internal/migrations"
	"game-store/internal/store"
)

func main() {

	/* Configuration *************************************************************/

	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatal(err)
	}
	slog.SetDefault(cfg.NewLogger())

	/* Database Init ************************************************************/

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(ctx, cfg.DBSource)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	log.Println("Successfully connected to the database!")

	// The schema must be current before the first request is served.
	if err := migrations.Apply(db.DB); err != nil {
		log.Fatal(err)
	}
	log.Println("Database migrations applied.")

	/* Server and Routes Init ************************************************************/

	catalog := store.New(db)
	router := handler.NewRouter(handler.RouterConfig{
		Games:          catalog,
		Genres:         catalog,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("Go API server starting on %s", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
