package observability_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/xraph/costing"
	"github.com/xraph/costing/item"
	"github.com/xraph/costing/observability"
	"github.com/xraph/costing/store/memory"
)

type counter struct {
	mu sync.Mutex
	v  float64
}

func (c *counter) Inc() { c.Add(1) }

func (c *counter) Add(d float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.v += d
}

type histogram struct {
	mu  sync.Mutex
	obs []float64
}

func (h *histogram) Observe(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.obs = append(h.obs, v)
}

type factory struct {
	counters   map[string]*counter
	histograms map[string]*histogram
}

func newFactory() *factory {
	return &factory{
		counters:   make(map[string]*counter),
		histograms: make(map[string]*histogram),
	}
}

func (f *factory) Counter(name string) observability.Counter {
	c := &counter{}
	f.counters[name] = c
	return c
}

func (f *factory) Histogram(name string) observability.Histogram {
	h := &histogram{}
	f.histograms[name] = h
	return h
}

func TestMetricsExtension(t *testing.T) {
	ctx := context.Background()
	f := newFactory()
	l := costing.New(memory.New(),
		costing.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		costing.WithPlugin(observability.NewMetricsExtension(f)),
	)
	if err := l.Start(ctx); err != nil {
		t.Fatal(err)
	}

	flour, _ := l.Add(ctx, item.Input{Name: "Flour", CostPerUnit: "20", QuantityUsed: "2.5", Unit: "kg"})
	_, _ = l.Add(ctx, item.Input{Name: "Sugar", CostPerUnit: "15", QuantityUsed: "1", Unit: "kg"})
	_, _ = l.Add(ctx, item.Input{Name: "Bad", CostPerUnit: "-1", QuantityUsed: "1"})
	_, _ = l.Remove(ctx, flour.ID)
	_ = l.Clear(ctx)

	counts := map[string]float64{
		"costing.ledger.loaded":          1,
		"costing.item.added":             2,
		"costing.item.removed":           1,
		"costing.item.validation_failed": 1,
		"costing.ledger.cleared":         1,
		"costing.store.corrupt":          0,
		"costing.store.save.errors":      0,
	}
	for name, want := range counts {
		if got := f.counters[name].v; got != want {
			t.Errorf("%s: got %v, want %v", name, got, want)
		}
	}

	costs := f.histograms["costing.item.total_cost"].obs
	if len(costs) != 2 || costs[0] != 50 || costs[1] != 15 {
		t.Errorf("line cost observations: got %v", costs)
	}
	if cleared := f.histograms["costing.ledger.cleared.items"].obs; len(cleared) != 1 || cleared[0] != 1 {
		t.Errorf("cleared items: got %v", cleared)
	}
}

func TestPersistFailedSplitsByOp(t *testing.T) {
	ctx := context.Background()
	f := newFactory()
	m := observability.NewMetricsExtension(f)

	_ = m.OnPersistFailed(ctx, "save", "kitchen", costing.ErrPersistFailed)
	_ = m.OnPersistFailed(ctx, "erase", "kitchen", costing.ErrPersistFailed)
	_ = m.OnPersistFailed(ctx, "erase", "kitchen", costing.ErrPersistFailed)

	if got := f.counters["costing.store.save.errors"].v; got != 1 {
		t.Errorf("save errors: got %v", got)
	}
	if got := f.counters["costing.store.erase.errors"].v; got != 2 {
		t.Errorf("erase errors: got %v", got)
	}
}
