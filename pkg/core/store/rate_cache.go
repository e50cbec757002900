package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RateCache persists exchange rates observed at runtime.
// Hybrid storage: DB (primary) + file system (fallback/local).
// If pool is nil the cache writes one JSON file per currency pair; if dir is
// also empty it defaults to .cache/fx/rates.
type RateCache struct {
	pool    *pgxpool.Pool
	fileDir string
}

// NewRateCache creates a rate cache instance.
func NewRateCache(pool *pgxpool.Pool, dir string) *RateCache {
	if pool == nil && dir == "" {
		dir = filepath.Join(".cache", "fx", "rates")
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Printf("[WARNING] Check RateCache dir: %v\n", err)
		}
	}
	return &RateCache{pool: pool, fileDir: dir}
}

// RateEntry is one observed exchange rate.
type RateEntry struct {
	ID           string    `json:"id"`
	FromCurrency string    `json:"from_currency"`
	ToCurrency   string    `json:"to_currency"`
	Rate         float64   `json:"rate"`
	Source       string    `json:"source"`
	ObservedAt   time.Time `json:"observed_at"`
}

// Get retrieves the most recently observed rate for a currency pair.
// A miss is (0, false), never an error: the resolver falls back to its
// static table on any storage trouble.
func (c *RateCache) Get(ctx context.Context, from, to string) (float64, bool) {
	if c.pool != nil {
		query := `
			SELECT rate
			FROM fx_rates
			WHERE from_currency = $1 AND to_currency = $2
			ORDER BY observed_at DESC
			LIMIT 1
		`
		var rate float64
		if err := c.pool.QueryRow(ctx, query, from, to).Scan(&rate); err != nil {
			return 0, false
		}
		return rate, true
	}

	if c.fileDir != "" {
		entry, err := c.loadFromFile(c.pairPath(from, to))
		if err != nil || entry == nil {
			return 0, false
		}
		return entry.Rate, true
	}

	return 0, false
}

// Put records an observed rate in whichever layer is configured.
func (c *RateCache) Put(ctx context.Context, from, to string, rate float64, source string) error {
	entry := RateEntry{
		ID:           uuid.NewString(),
		FromCurrency: from,
		ToCurrency:   to,
		Rate:         rate,
		Source:       source,
		ObservedAt:   time.Now().UTC(),
	}

	if c.pool != nil {
		query := `
			INSERT INTO fx_rates (id, from_currency, to_currency, rate, source, observed_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		_, err := c.pool.Exec(ctx, query,
			entry.ID, entry.FromCurrency, entry.ToCurrency, entry.Rate, entry.Source, entry.ObservedAt)
		if err != nil {
			return fmt.Errorf("failed to store rate %s→%s: %w", from, to, err)
		}
		return nil
	}

	if c.fileDir != "" {
		return c.saveToFile(c.pairPath(from, to), entry)
	}

	return nil
}

func (c *RateCache) pairPath(from, to string) string {
	return filepath.Join(c.fileDir, fmt.Sprintf("%s_%s.json", from, to))
}

func (c *RateCache) loadFromFile(path string) (*RateEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read rate file: %w", err)
	}
	var entry RateEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached rate: %w", err)
	}
	return &entry, nil
}

func (c *RateCache) saveToFile(path string, entry RateEntry) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rate entry: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write rate file: %w", err)
	}
	return nil
}
