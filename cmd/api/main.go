package main

import (
	"context"
	"log"
	"time"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/woodgrain-labs/furnplan-backend/config"
	"github.com/woodgrain-labs/furnplan-backend/internal/auth"
	"github.com/woodgrain-labs/furnplan-backend/internal/bootstrap"
	"github.com/woodgrain-labs/furnplan-backend/internal/design/llm"
	"github.com/woodgrain-labs/furnplan-backend/internal/design/planner"
	"github.com/woodgrain-labs/furnplan-backend/internal/pricing"
	"github.com/woodgrain-labs/furnplan-backend/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := bootstrap.OpenDB(ctx, &cfg.Database, bootstrap.DBOptions{})
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	catalogDB, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("catalog db: %v", err)
	}
	defer catalogDB.Close()

	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	var authClient *fbauth.Client
	if cfg.Firebase.CredentialsPath != "" {
		authClient, err = auth.InitializeFirebase(&cfg.Firebase)
		if err != nil {
			log.Fatalf("firebase: %v", err)
		}
	} else {
		log.Println("FIREBASE_CREDENTIALS_PATH not set, all requests run as anonymous")
	}

	model := llm.New(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model)
	plannerSvc := planner.NewService(model, cfg.AI.AllowMock)

	priceStore := pricing.NewStore(pool)
	estimator := pricing.NewEstimator(priceStore)

	if cfg.Pricing.Enabled && cfg.Pricing.FeedURL != "" {
		scheduler := pricing.NewScheduler(pricing.NewFetcher(cfg.Pricing.FeedURL), priceStore)
		scheduler.Start()
		defer scheduler.Stop()
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    "furnplan-backend",
		Version:        cfg.App.Version,
		SceneScale:     cfg.App.SceneScale,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		DB:             pool,
		CatalogDB:      catalogDB,
		Redis:          rdb,
		AuthClient:     authClient,
		Planner:        plannerSvc,
		Estimator:      estimator,
	})

	addr := ":" + cfg.Server.Port
	log.Printf("listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
