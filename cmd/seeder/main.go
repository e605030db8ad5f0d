package main

import (
	"context"
	"log"
	"time"

	"game-store/internal/config"
	"game-store/internal/models"
	"game-store/internal/store"

	"github.com/shopspring/decimal"
)

// sampleGames is the starter catalog; genre ids match the seeded genres.
var sampleGames = []models.Game{
	{Name: "Street Fighter V", GenreID: 1, Price: decimal.RequireFromString("19.99"), ReleaseDate: models.NewDate(1992, time.July, 15)},
	{Name: "The Witcher 3: Wild Hunt", GenreID: 2, Price: decimal.RequireFromString("39.99"), ReleaseDate: models.NewDate(2015, time.May, 19)},
	{Name: "Minecraft", GenreID: 6, Price: decimal.RequireFromString("26.95"), ReleaseDate: models.NewDate(2011, time.November, 18)},
}

func main() {
	log.Println("Starting database seeder...")

	cfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	db, err := store.Open(ctx, cfg.DBSource)
	if err != nil {
		log.Fatalf("failed opening connection to postgres: %v", err)
	}
	defer db.Close()

	catalog := store.New(db)

	count, err := catalog.CountGames(ctx)
	if err != nil {
		log.Fatalf("failed counting games: %v", err)
	}
	if count > 0 {
		log.Printf("Catalog already has %d games. Seeder finished.", count)
		return
	}

	for _, game := range sampleGames {
		created, err := catalog.CreateGame(ctx, game)
		if err != nil {
			log.Fatalf("failed creating %q: %v", game.Name, err)
		}
		log.Printf("Created game %d: %s", created.ID, created.Name)
	}

	log.Println("Sample games created successfully.")
}
