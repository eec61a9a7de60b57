package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/woodgrain-labs/furnplan-backend/config"
	"github.com/woodgrain-labs/furnplan-backend/internal/bootstrap"
	"github.com/woodgrain-labs/furnplan-backend/internal/pricing"
)

// Price feed worker. "fetch" runs one fetch + import cycle and exits;
// "schedule" stays up and refreshes nightly.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: worker fetch|schedule")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Pricing.FeedURL == "" {
		log.Fatal("PRICE_FEED_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := bootstrap.OpenDB(ctx, &cfg.Database, bootstrap.DBOptions{})
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	scheduler := pricing.NewScheduler(pricing.NewFetcher(cfg.Pricing.FeedURL), pricing.NewStore(pool))

	switch os.Args[1] {
	case "fetch":
		scheduler.RunOnce()
	case "schedule":
		scheduler.Start()
		select {}
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}
