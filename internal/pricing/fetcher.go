package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PriceEntry is one row of the lumber price feed.
type PriceEntry struct {
	Species           string    `json:"species"`
	Grade             string    `json:"grade"`
	PricePerBoardFoot float64   `json:"price_per_board_foot"`
	Currency          string    `json:"currency"`
	Unit              string    `json:"unit"`
	FetchedAt         time.Time `json:"fetched_at"`
}

// Fetcher pulls current lumber prices from an external feed.
type Fetcher struct {
	feedURL string
	http    *http.Client
}

func NewFetcher(feedURL string) *Fetcher {
	return &Fetcher{
		feedURL: feedURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch downloads the feed. Entries without a species or a positive price are
// dropped; FetchedAt is stamped here.
func (f *Fetcher) Fetch(ctx context.Context) ([]PriceEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch price feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("price feed returned %d: %s", resp.StatusCode, body)
	}

	var entries []PriceEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode price feed: %w", err)
	}

	now := time.Now().UTC()
	out := make([]PriceEntry, 0, len(entries))
	for _, e := range entries {
		if e.Species == "" || e.PricePerBoardFoot <= 0 {
			continue
		}
		if e.Currency == "" {
			e.Currency = "USD"
		}
		if e.Unit == "" {
			e.Unit = "board foot"
		}
		e.FetchedAt = now
		out = append(out, e)
	}
	return out, nil
}
