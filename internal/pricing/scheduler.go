package pricing

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler refreshes the lumber price table nightly.
type Scheduler struct {
	fetcher *Fetcher
	store   *Store
	cron    *cron.Cron
}

func NewScheduler(fetcher *Fetcher, store *Store) *Scheduler {
	return &Scheduler{fetcher: fetcher, store: store}
}

// Start initializes cron tasks
func (s *Scheduler) Start() {
	c := cron.New(cron.WithSeconds())

	// (12:00 AM)
	_, err := c.AddFunc("0 0 0 * * *", func() {
		s.RunOnce()
	})
	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Println("Price feed scheduler started (running nightly at 12:00AM)")
	c.Start()
	s.cron = c
}

// Stop halts the schedule, waiting for a running job to finish
func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// RunOnce performs one fetch + import cycle
func (s *Scheduler) RunOnce() {
	log.Println("Nightly price job started (fetch + import)...")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	entries, err := s.fetcher.Fetch(ctx)
	if err != nil {
		log.Printf("Price fetch failed: %v", err)
		return
	}

	if err := s.store.UpsertBatch(ctx, entries); err != nil {
		log.Printf("Price import failed: %v", err)
		return
	}

	log.Printf("Nightly price job completed (%d entries) at: %s", len(entries), time.Now().Format(time.RFC1123))
}
