package main

import (
	"context"
	"log"

	"game-store/internal/config"
	"game-store/internal/store"
)

func main() {
	log.Println("--- Starting Database Reset ---")

	cfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatal(err)
	}

	db, err := store.Open(context.Background(), cfg.DBSource)
	if err != nil {
		log.Fatalf("failed opening connection to postgres: %v", err)
	}
	defer db.Close()

	// Genres come from migrations and stay; only games are removed.
	deleted, err := store.New(db).DeleteAllGames(context.Background())
	if err != nil {
		log.Fatalf("failed to delete games: %v", err)
	}
	log.Printf("✅ Deleted %d games.", deleted)

	log.Println("--- ✅ Database Reset Complete. Genres remain. ---")
}
