package fx_test

import (
	"context"
	"math"
	"testing"

	"github.com/sirupsen/logrus"

	"solar_finance/pkg/core/fx"
)

func newResolver(persist fx.Persister) *fx.Resolver {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return fx.NewResolver(persist, log)
}

func TestRate_Identity(t *testing.T) {
	r := newResolver(nil)
	if got := r.Rate("USD", "USD"); got != 1.0 {
		t.Errorf("identity rate = %v, want 1.0", got)
	}
	if got := r.Rate("XYZ", "XYZ"); got != 1.0 {
		t.Errorf("identity rate for unknown code = %v, want 1.0", got)
	}
}

func TestRate_USDAnchored(t *testing.T) {
	r := newResolver(nil)
	if got := r.Rate("USD", "INR"); got != 83.0 {
		t.Errorf("USD→INR = %v, want 83.0", got)
	}
	if got := r.Rate("INR", "USD"); math.Abs(got-1.0/83.0) > 1e-12 {
		t.Errorf("INR→USD = %v, want %v", got, 1.0/83.0)
	}
}

func TestRate_CrossThroughUSD(t *testing.T) {
	r := newResolver(nil)
	want := (1.0 / 0.92) * 83.0
	if got := r.Rate("EUR", "INR"); math.Abs(got-want) > 1e-9 {
		t.Errorf("EUR→INR = %v, want %v", got, want)
	}
}

// Unknown currencies silently resolve to 1.0 instead of failing. This is a
// documented limitation of the static table, pinned here so nobody "fixes"
// it into an error path without noticing the contract change.
func TestRate_UnknownCurrencyFallsBackToOne(t *testing.T) {
	r := newResolver(nil)
	if got := r.Rate("USD", "XXX"); got != 1.0 {
		t.Errorf("USD→unknown = %v, want 1.0", got)
	}
	if got := r.Rate("XXX", "EUR"); math.Abs(got-0.92) > 1e-12 {
		t.Errorf("unknown→EUR = %v, want 0.92 (unknown leg treated as 1.0)", got)
	}
}

func TestObserve_WinsOverStaticTable(t *testing.T) {
	r := newResolver(nil)
	r.Observe(context.Background(), "USD", "EUR", 0.95, "test")
	if got := r.Rate("USD", "EUR"); got != 0.95 {
		t.Errorf("observed rate = %v, want 0.95", got)
	}
	// The reverse pair was not observed; static table still answers it.
	if got := r.Rate("EUR", "USD"); math.Abs(got-1.0/0.92) > 1e-9 {
		t.Errorf("EUR→USD = %v, want static %v", got, 1.0/0.92)
	}
}

func TestObserve_RejectsNonPositiveRates(t *testing.T) {
	r := newResolver(nil)
	r.Observe(context.Background(), "USD", "EUR", 0, "test")
	r.Observe(context.Background(), "USD", "EUR", -1, "test")
	if got := r.Rate("USD", "EUR"); got != 0.92 {
		t.Errorf("rate after bad observations = %v, want static 0.92", got)
	}
}

type memPersister struct {
	rates map[string]float64
	puts  int
}

func (m *memPersister) Get(_ context.Context, from, to string) (float64, bool) {
	rate, ok := m.rates[from+"_"+to]
	return rate, ok
}

func (m *memPersister) Put(_ context.Context, from, to string, rate float64, _ string) error {
	m.rates[from+"_"+to] = rate
	m.puts++
	return nil
}

func TestResolver_PersistedRatesSurvive(t *testing.T) {
	persist := &memPersister{rates: map[string]float64{"USD_EUR": 0.93}}
	r := newResolver(persist)

	if got := r.Rate("USD", "EUR"); got != 0.93 {
		t.Errorf("persisted rate = %v, want 0.93", got)
	}

	r.Observe(context.Background(), "USD", "GBP", 0.80, "test")
	if persist.puts != 1 {
		t.Errorf("observation should persist once, got %d puts", persist.puts)
	}
	if persist.rates["USD_GBP"] != 0.80 {
		t.Errorf("persisted GBP rate = %v, want 0.80", persist.rates["USD_GBP"])
	}
}
