// Package game wires the ledger, the statistics and the settings together
// and exposes them to the presentation layer.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/fastprodman/billionspend/internal/catalog"
	"github.com/fastprodman/billionspend/internal/gesture"
	"github.com/fastprodman/billionspend/internal/services/ledger"
	"github.com/fastprodman/billionspend/internal/services/settings"
	"github.com/fastprodman/billionspend/internal/services/stats"
)

var (
	ErrUnknownItem       = errors.New("unknown item")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrItemNotHeld       = errors.New("item not held")
)

// Writer is the persistence the components share.
type Writer interface {
	Save(key string, v any)
	Load(ctx context.Context, key string, dst any) (bool, error)
	Clear(ctx context.Context, keys ...string) error
}

// Game is built once at startup and passed to every consumer.
type Game struct {
	Ledger   *ledger.Ledger
	Stats    *stats.Aggregator
	Settings *settings.Store

	writer Writer
	shake  *gesture.ShakeDetector
	now    func() time.Time

	mu      sync.Mutex
	current catalog.Item
}

type config struct {
	now    func() time.Time
	rnd    *rand.Rand
	detect *gesture.ShakeDetector
}

type Option func(*config)

func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

func WithRand(r *rand.Rand) Option {
	return func(c *config) { c.rnd = r }
}

func WithShakeDetector(d *gesture.ShakeDetector) Option {
	return func(c *config) { c.detect = d }
}

func New(w Writer, opts ...Option) *Game {
	cfg := config{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.detect == nil {
		cfg.detect = gesture.NewShakeDetector(gesture.DefaultShakeThreshold, gesture.DefaultShakeCooldown)
	}

	ledgerOpts := []ledger.Option{ledger.WithClock(cfg.now)}
	if cfg.rnd != nil {
		ledgerOpts = append(ledgerOpts, ledger.WithRand(cfg.rnd))
	}

	st := stats.New(w)

	return &Game{
		Stats:    st,
		Ledger:   ledger.New(w, st, ledgerOpts...),
		Settings: settings.New(w),
		writer:   w,
		shake:    cfg.detect,
		now:      cfg.now,
		current:  catalog.First(),
	}
}

// Load restores all components from storage. Failures are logged and the
// affected component keeps its defaults.
func (g *Game) Load(ctx context.Context) {
	loaders := []struct {
		name string
		load func(context.Context) error
	}{
		{name: "game state", load: g.Ledger.Load},
		{name: "statistics", load: g.Stats.Load},
		{name: "settings", load: g.Settings.Load},
	}

	var wg sync.WaitGroup

	for _, l := range loaders {
		wg.Add(1)

		go func() {
			defer wg.Done()

			err := l.load(ctx)
			if err != nil {
				slog.Error("failed to load", "component", l.name, "error", err)
				return
			}

			slog.Info("loaded", "component", l.name)
		}()
	}

	wg.Wait()
}

// ClearAll removes every stored record and resets all components to their
// defaults. In-memory state is reset even when the store fails.
func (g *Game) ClearAll(ctx context.Context) error {
	err := g.writer.Clear(ctx, ledger.Key, stats.Key, settings.Key)

	g.Ledger.Discard()
	g.Stats.Discard()
	g.Settings.Discard()

	g.mu.Lock()
	g.current = catalog.First()
	g.mu.Unlock()

	if err != nil {
		slog.Error("failed to clear data", "error", err)
		return fmt.Errorf("clear all: %w", err)
	}

	slog.Info("all data cleared")

	return nil
}

// Purchase buys the catalog item with id and reports whether that
// completed the game.
func (g *Game) Purchase(id string) (bool, error) {
	it, ok := catalog.ByID(id)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}

	if !g.Ledger.Purchase(it) {
		return false, fmt.Errorf("purchase %q: %w", id, ErrInsufficientFunds)
	}

	return g.Ledger.IsCompleted(), nil
}

// Sell returns one held copy of the catalog item with id.
func (g *Game) Sell(id string) error {
	it, ok := catalog.ByID(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}

	if !g.Ledger.Sell(it) {
		return fmt.Errorf("sell %q: %w", id, ErrItemNotHeld)
	}

	return nil
}

// Current is the item on offer.
func (g *Game) Current() catalog.Item {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.current
}

func (g *Game) next() catalog.Item {
	it := g.Ledger.RandomItem()

	g.mu.Lock()
	g.current = it
	g.mu.Unlock()

	return it
}

type SwipeResult struct {
	Direction string       `json:"direction"`
	Item      catalog.Item `json:"item"`
	Purchased bool         `json:"purchased"`
	Completed bool         `json:"completed"`
}

// Swipe handles a finished horizontal pan: right buys the item on offer,
// left offers a random one, anything shorter does nothing.
func (g *Game) Swipe(translationX float64) (SwipeResult, error) {
	dir := gesture.ClassifySwipe(translationX)
	res := SwipeResult{Direction: dir.String(), Item: g.Current()}

	switch dir {
	case gesture.SwipeRight:
		completed, err := g.Purchase(res.Item.ID)
		if err != nil {
			return res, err
		}

		res.Purchased = true
		res.Completed = completed
	case gesture.SwipeLeft:
		res.Item = g.next()
	case gesture.SwipeNone:
	}

	return res, nil
}

// Shake feeds one accelerometer sample. When it counts as a shake a random
// item is put on offer and returned with true.
func (g *Game) Shake(x, y, z float64) (catalog.Item, bool) {
	if !g.shake.Sample(x, y, z, g.now()) {
		return g.Current(), false
	}

	return g.next(), true
}
