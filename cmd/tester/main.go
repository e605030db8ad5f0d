package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"game-store/internal/client"
	"game-store/internal/config"
	"game-store/internal/models"

	"github.com/anandvarma/namegen"
	"github.com/shopspring/decimal"
)

// --- Configuration Constants ---
const (
	defaultGames       = 50 // Games created during the run
	defaultConcurrency = 10 // Requests in flight at once
	readersPerPhase    = 25 // Concurrent cached list reads
)

func main() {
	log.Println("--- Starting API Load Test ---")

	cfg, err := config.LoadClient()
	if err != nil {
		log.Fatal(err)
	}

	apiURL := flag.String("api-url", cfg.APIURL, "base URL of the game store API")
	numGames := flag.Int("games", defaultGames, "number of games to create")
	concurrency := flag.Int("concurrency", defaultConcurrency, "parallel requests")
	flag.Parse()

	ctx := context.Background()
	c := client.New(*apiURL)
	log.Printf("🎯 Target API: %s", c.BaseURL())

	// --- Step 1: Load Genres ---
	log.Println("🔹 [Phase 1] Genres")
	genres, err := c.CachedGenres().Get(ctx)
	if err != nil || len(genres) == 0 {
		log.Fatalf("❌ Failed to load genres: %v", err)
	}
	log.Printf("✅ Loaded %d genres.", len(genres))

	// --- Step 2: Create Games Concurrently ---
	log.Printf("🔹 [Phase 2] Creating %d games, %d at a time", *numGames, *concurrency)
	before, err := c.Games.List(ctx)
	if err != nil {
		log.Fatalf("❌ Failed to list games: %v", err)
	}
	ids := createGames(ctx, c, genres, *numGames, *concurrency)
	log.Printf("✅ Created %d games.", len(ids))

	// --- Step 3: Cached Reads ---
	log.Printf("🔹 [Phase 3] %d concurrent cached list reads", readersPerPhase)
	games, err := c.CachedGames().Revalidate(ctx)
	if err != nil {
		log.Fatalf("❌ Failed to revalidate games: %v", err)
	}
	if len(games) != len(before)+len(ids) {
		log.Fatalf("❌ Expected %d games, got %d", len(before)+len(ids), len(games))
	}
	readCached(ctx, c)
	log.Printf("✅ Listed %d games through the cache.", len(games))

	// --- Step 4: Updates ---
	log.Println("🔹 [Phase 4] Updating prices")
	updated := updateGames(ctx, c, ids, *concurrency)
	log.Printf("✅ Updated %d games.", updated)

	// --- Step 5: Deletes, Twice ---
	log.Println("🔹 [Phase 5] Deleting created games twice")
	deleteGames(ctx, c, ids, *concurrency)
	deleteGames(ctx, c, ids, *concurrency)

	after, err := c.CachedGames().Revalidate(ctx)
	if err != nil {
		log.Fatalf("❌ Failed to list games: %v", err)
	}
	if len(after) != len(before) {
		log.Fatalf("❌ Expected %d games after cleanup, got %d", len(before), len(after))
	}

	log.Println("\n--- ✅ Load Test Finished Successfully ---")
}

// --- Test Logic Functions ---

// createGames posts n games with generated names and returns their ids.
func createGames(ctx context.Context, c *client.Client, genres []client.Genre, n, concurrency int) []int {
	ngen := namegen.NewWithPostfixId([]namegen.DictType{namegen.Adjectives, namegen.Colors, namegen.Animals}, namegen.Numeric, 4)

	ids := make([]int, 0, n)
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)

	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(name string) {
			defer wg.Done()
			defer func() { <-sem }()

			in := randomInput(name, genres)
			game, err := c.Games.Create(ctx, in)
			if err != nil {
				log.Printf("❌ Create %q failed: %v", name, err)
				return
			}

			mu.Lock()
			ids = append(ids, game.ID)
			mu.Unlock()
		}(ngen.Get())
	}
	wg.Wait()
	return ids
}

// readCached hammers the cached list; the dedup window keeps this to one request.
func readCached(ctx context.Context, c *client.Client) {
	var wg sync.WaitGroup
	for range readersPerPhase {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.CachedGames().Get(ctx); err != nil {
				log.Printf("❌ Cached read failed: %v", err)
			}
		}()
	}
	wg.Wait()
}

func updateGames(ctx context.Context, c *client.Client, ids []int, concurrency int) int32 {
	var updated int32
	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)

	for _, id := range ids {
		wg.Add(1)
		sem <- struct{}{}
		go func(id int) {
			defer wg.Done()
			defer func() { <-sem }()

			game, err := c.Games.Get(ctx, id)
			if err != nil {
				log.Printf("❌ Get %d failed: %v", id, err)
				return
			}
			in := client.GameInput{
				Name:        game.Name,
				GenreID:     game.GenreID,
				Price:       randomPrice(),
				ReleaseDate: game.ReleaseDate,
			}
			if err := c.Games.Update(ctx, id, in); err != nil {
				log.Printf("❌ Update %d failed: %v", id, err)
				return
			}
			atomic.AddInt32(&updated, 1)
		}(id)
	}
	wg.Wait()
	return updated
}

func deleteGames(ctx context.Context, c *client.Client, ids []int, concurrency int) {
	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)

	for _, id := range ids {
		wg.Add(1)
		sem <- struct{}{}
		go func(id int) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := c.Games.Delete(ctx, id); err != nil {
				log.Printf("❌ Delete %d failed: %v", id, err)
			}
		}(id)
	}
	wg.Wait()
}

func randomInput(name string, genres []client.Genre) client.GameInput {
	if len(name) > models.MaxGameNameLength {
		name = name[:models.MaxGameNameLength]
	}
	days := rand.Intn(40 * 365)
	return client.GameInput{
		Name:        name,
		GenreID:     genres[rand.Intn(len(genres))].ID,
		Price:       randomPrice(),
		ReleaseDate: models.DateOf(time.Date(1985, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)),
	}
}

// randomPrice is between 0.01 and 1000 with two decimals.
func randomPrice() decimal.Decimal {
	return decimal.New(int64(rand.Intn(100000)+1), -2)
}
