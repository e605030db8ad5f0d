package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"game-store/internal/config"
	"game-store/internal/migrations"
	"game-store/internal/store"

	"github.com/golang-migrate/migrate/v4"
)

func main() {
	flag.Usage = func() {
		log.Println("usage: migrate [up|down|version]")
	}
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	cfg, err := config.LoadDatabase()
	if err != nil {
		log.Fatal(err)
	}

	db, err := store.Open(context.Background(), cfg.DBSource)
	if err != nil {
		log.Fatalf("failed opening connection to postgres: %v", err)
	}
	defer db.Close()

	m, err := migrations.New(db.DB)
	if err != nil {
		log.Fatal(err)
	}

	switch command {
	case "up":
		log.Println("Starting database migration...")
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("failed applying migrations: %v", err)
		}
		log.Println("Database migration completed successfully.")
	case "down":
		log.Println("Rolling back the last migration...")
		if err := m.Steps(-1); err != nil {
			log.Fatalf("failed rolling back: %v", err)
		}
		log.Println("Rollback completed.")
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			log.Println("No migrations applied yet.")
			return
		}
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("Schema version %d (dirty: %t)", version, dirty)
	default:
		flag.Usage()
		log.Fatalf("unknown command %q", command)
	}
}
