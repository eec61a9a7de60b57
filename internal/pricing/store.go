package pricing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists fetched lumber prices and serves lookups for the cost
// estimator.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// UpsertBatch writes a feed snapshot, one upsert per (species, grade).
func (s *Store) UpsertBatch(ctx context.Context, entries []PriceEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin price import: %w", err)
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO lumber_prices
  (species, grade, price_per_board_foot, currency, unit, fetched_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now(), now())
ON CONFLICT (species, grade) DO UPDATE
  SET price_per_board_foot = EXCLUDED.price_per_board_foot,
      currency = EXCLUDED.currency,
      unit = EXCLUDED.unit,
      fetched_at = EXCLUDED.fetched_at,
      updated_at = now()
;`
	for _, e := range entries {
		if _, err := tx.Exec(ctx, q,
			strings.ToLower(e.Species), e.Grade, e.PricePerBoardFoot,
			e.Currency, e.Unit, e.FetchedAt.UTC(),
		); err != nil {
			return fmt.Errorf("upsert price %s/%s: %w", e.Species, e.Grade, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit price import: %w", err)
	}
	return nil
}

// UnitPrice returns the latest price per board foot for a species, any
// grade, preferring the most recently fetched row. Returns (0, false) when
// the species is unknown.
func (s *Store) UnitPrice(ctx context.Context, species string) (float64, bool, error) {
	const q = `
SELECT price_per_board_foot
FROM lumber_prices
WHERE species = $1
ORDER BY fetched_at DESC
LIMIT 1;
`
	var price float64
	err := s.db.QueryRow(ctx, q, strings.ToLower(strings.TrimSpace(species))).Scan(&price)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("lookup price: %w", err)
	}
	return price, true, nil
}
