// Package fx resolves exchange rates between the currencies the financial
// engine supports. Rates are USD-anchored: a static table carries USD→X
// rates, cross rates between two non-USD currencies are composed through
// USD, and a currency entirely unknown to the table silently resolves to
// 1.0. The silent fallback is deliberate: "no conversion" beats "no result"
// for a caller that still has to render amounts.
package fx

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// usdRates is the static fallback table of USD→X rates.
var usdRates = map[string]float64{
	"INR": 83.0,
	"EUR": 0.92,
	"GBP": 0.79,
	"AED": 3.67,
	"OMR": 0.38,
	"SAR": 3.75,
	"JPY": 148.0,
	"CAD": 1.35,
	"AUD": 1.50,
}

// Persister is an optional durable layer behind the runtime cache,
// implemented by store.RateCache.
type Persister interface {
	Get(ctx context.Context, from, to string) (float64, bool)
	Put(ctx context.Context, from, to string, rate float64, source string) error
}

// Resolver answers rate lookups from a runtime cache of observed rates,
// falling back to the static USD-anchored table. Safe for concurrent use.
type Resolver struct {
	mu      sync.RWMutex
	cache   map[string]float64
	persist Persister
	log     *logrus.Logger
}

// NewResolver creates a resolver. persist may be nil for in-memory-only use.
func NewResolver(persist Persister, log *logrus.Logger) *Resolver {
	if log == nil {
		log = logrus.New()
	}
	return &Resolver{
		cache:   make(map[string]float64),
		persist: persist,
		log:     log,
	}
}

func rateKey(from, to string) string {
	return fmt.Sprintf("%s_%s", from, to)
}

// Rate resolves the conversion rate from one currency to another.
// Identity conversions are 1.0. Observed rates win over the static table.
func (r *Resolver) Rate(from, to string) float64 {
	if from == to {
		return 1.0
	}

	r.mu.RLock()
	cached, ok := r.cache[rateKey(from, to)]
	r.mu.RUnlock()
	if ok {
		return cached
	}

	if r.persist != nil {
		if rate, ok := r.persist.Get(context.Background(), from, to); ok {
			r.mu.Lock()
			r.cache[rateKey(from, to)] = rate
			r.mu.Unlock()
			return rate
		}
	}

	return staticRate(from, to)
}

// staticRate composes a rate from the USD-anchored table.
func staticRate(from, to string) float64 {
	switch {
	case from == to:
		return 1.0
	case from == "USD":
		return lookupUSD(to)
	case to == "USD":
		return 1.0 / lookupUSD(from)
	default:
		// Cross rate through USD.
		return (1.0 / lookupUSD(from)) * lookupUSD(to)
	}
}

// lookupUSD degrades to 1.0 for unknown currencies (see package comment).
func lookupUSD(code string) float64 {
	if rate, ok := usdRates[code]; ok {
		return rate
	}
	return 1.0
}

// Observe records a rate seen at runtime (live fetch, operator input) in the
// cache and, when configured, the durable store.
func (r *Resolver) Observe(ctx context.Context, from, to string, rate float64, source string) {
	if rate <= 0 {
		return
	}

	r.mu.Lock()
	r.cache[rateKey(from, to)] = rate
	r.mu.Unlock()

	if r.persist != nil {
		if err := r.persist.Put(ctx, from, to, rate, source); err != nil {
			r.log.WithError(err).Warn("failed to persist exchange rate")
		}
	}
}
