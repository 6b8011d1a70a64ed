// Package ledger owns the budget of the game in progress.
//
// A game starts with InitialBudget and is completed when a purchase brings
// the budget to exactly zero. A purchase that costs more than the remaining
// budget is refused, so the budget never goes negative and can only reach
// zero exactly. Selling any held item reopens a completed game.
package ledger

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fastprodman/billionspend/internal/catalog"
	"github.com/fastprodman/billionspend/internal/notify"
)

type Persister interface {
	Save(key string, v any)
	Load(ctx context.Context, key string, dst any) (bool, error)
}

// StatsRecorder receives every change to the holdings. held is always the
// holdings after the change.
type StatsRecorder interface {
	RecordPurchase(item catalog.Item, held []catalog.Item)
	RecordSale(item catalog.Item, held []catalog.Item)
	RecordCompletion(elapsedSeconds int64)
}

type Ledger struct {
	store   Persister
	stats   StatsRecorder
	now     func() time.Time
	changes notify.Broadcaster

	// op serializes mutations end to end, including the statistics update.
	op sync.Mutex

	mu     sync.Mutex
	state  GameState
	loaded bool
	rnd    *rand.Rand
}

type Option func(*Ledger)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithRand sets the source used by RandomItem.
func WithRand(r *rand.Rand) Option {
	return func(l *Ledger) { l.rnd = r }
}

func New(store Persister, stats StatsRecorder, opts ...Option) *Ledger {
	l := &Ledger{
		store: store,
		stats: stats,
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	l.state = newGameState(l.timestamp())

	return l
}

func (l *Ledger) timestamp() time.Time {
	return l.now().UTC().Truncate(time.Millisecond)
}

// Subscribe registers fn to be called after every change.
func (l *Ledger) Subscribe(fn func()) func() {
	return l.changes.Subscribe(fn)
}

// Purchase buys item if the remaining budget covers its price.
// It reports false, changing nothing, when funds are insufficient.
func (l *Ledger) Purchase(item catalog.Item) bool {
	l.op.Lock()
	defer l.op.Unlock()

	l.mu.Lock()

	if l.state.CurrentBudget < item.Price {
		l.mu.Unlock()
		return false
	}

	wasCompleted := l.state.GameCompleted

	l.state.CurrentBudget -= item.Price
	l.state.TotalSpent += item.Price
	l.state.PurchasedItems = append(l.state.PurchasedItems, item)

	var elapsed int64

	// a zero-price buy on a finished game must not finish it again
	completed := !wasCompleted && l.state.CurrentBudget == 0
	if completed {
		end := l.timestamp()
		l.state.GameCompleted = true
		l.state.EndTime = &end
		elapsed = int64(end.Sub(l.state.StartTime).Round(time.Second) / time.Second)
	}

	held := l.state.clone().PurchasedItems
	l.store.Save(Key, l.state.clone())

	l.mu.Unlock()

	l.stats.RecordPurchase(item, held)

	if completed {
		l.stats.RecordCompletion(elapsed)
	}

	l.changes.Notify()

	return true
}

// Sell gives back the first held item with item's id and refunds its price.
// It reports false when no such item is held.
func (l *Ledger) Sell(item catalog.Item) bool {
	l.op.Lock()
	defer l.op.Unlock()

	l.mu.Lock()

	idx := -1

	for i, it := range l.state.PurchasedItems {
		if it.ID == item.ID {
			idx = i
			break
		}
	}

	if idx == -1 {
		l.mu.Unlock()
		return false
	}

	sold := l.state.PurchasedItems[idx]

	l.state.CurrentBudget += sold.Price
	l.state.TotalSpent -= sold.Price
	l.state.PurchasedItems = append(l.state.PurchasedItems[:idx], l.state.PurchasedItems[idx+1:]...)
	l.state.GameCompleted = false
	l.state.EndTime = nil

	held := l.state.clone().PurchasedItems
	l.store.Save(Key, l.state.clone())

	l.mu.Unlock()

	l.stats.RecordSale(sold, held)
	l.changes.Notify()

	return true
}

// Reset starts a new game. Statistics are left alone.
func (l *Ledger) Reset() {
	l.op.Lock()
	defer l.op.Unlock()

	l.mu.Lock()
	l.state = newGameState(l.timestamp())
	l.store.Save(Key, l.state.clone())
	l.mu.Unlock()

	l.changes.Notify()
}

// Discard starts a new game in memory without scheduling a write.
func (l *Ledger) Discard() {
	l.op.Lock()
	defer l.op.Unlock()

	l.mu.Lock()
	l.state = newGameState(l.timestamp())
	l.mu.Unlock()

	l.changes.Notify()
}

// Load replaces the game in progress with the stored one, if any. A stored
// state that fails validation is rejected and the current game kept.
// The ledger counts as loaded afterwards either way.
func (l *Ledger) Load(ctx context.Context) error {
	l.op.Lock()
	defer l.op.Unlock()

	var loaded GameState

	found, err := l.store.Load(ctx, Key, &loaded)
	if err == nil && found {
		err = loaded.validate()
	}

	l.mu.Lock()

	if err == nil && found {
		l.state = loaded
	}

	l.loaded = true

	l.mu.Unlock()

	l.changes.Notify()

	if err != nil {
		return fmt.Errorf("load game state: %w", err)
	}

	return nil
}

// IsLoaded reports whether Load has run.
func (l *Ledger) IsLoaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.loaded
}

// State returns a copy of the game in progress.
func (l *Ledger) State() GameState {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.state.clone()
}

func (l *Ledger) RemainingBudget() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.state.CurrentBudget
}

func (l *Ledger) TotalSpent() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.state.TotalSpent
}

func (l *Ledger) IsCompleted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.state.GameCompleted
}

// OwnedCount is the number of held copies of the item with id.
func (l *Ledger) OwnedCount(id string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0

	for _, it := range l.state.PurchasedItems {
		if it.ID == id {
			n++
		}
	}

	return n
}

func (l *Ledger) CanAfford(item catalog.Item) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.state.CurrentBudget >= item.Price
}

// RandomItem picks a catalog entry uniformly at random.
func (l *Ledger) RandomItem() catalog.Item {
	l.mu.Lock()
	defer l.mu.Unlock()

	return catalog.Random(l.rnd)
}

// CurrentItem is the item offered before the player shakes or swipes.
func (l *Ledger) CurrentItem() catalog.Item {
	return catalog.First()
}

func (l *Ledger) AllItems() []catalog.Item {
	return catalog.All()
}

func (l *Ledger) ItemsByCategory(c catalog.Category) []catalog.Item {
	return catalog.ByCategory(c)
}

type Analytics struct {
	TotalItems           int                `json:"totalItems"`
	UniqueCategories     []catalog.Category `json:"uniqueCategories"`
	AverageItemPrice     decimal.Decimal    `json:"averageItemPrice"`
	MostExpensiveOwned   *catalog.Item      `json:"mostExpensiveOwned,omitempty"`
	CompletionPercentage decimal.Decimal    `json:"completionPercentage"`
}

var hundred = decimal.NewFromInt(100)

// Analytics summarizes the current holdings.
func (l *Ledger) Analytics() Analytics {
	s := l.State()

	out := Analytics{
		TotalItems:       len(s.PurchasedItems),
		UniqueCategories: []catalog.Category{},
		AverageItemPrice: decimal.Zero,
		CompletionPercentage: decimal.NewFromInt(s.TotalSpent).
			Mul(hundred).
			Div(decimal.NewFromInt(InitialBudget)),
	}

	seen := make(map[catalog.Category]bool)

	for i, it := range s.PurchasedItems {
		if !seen[it.Category] {
			seen[it.Category] = true
			out.UniqueCategories = append(out.UniqueCategories, it.Category)
		}

		if out.MostExpensiveOwned == nil || it.Price > out.MostExpensiveOwned.Price {
			out.MostExpensiveOwned = &s.PurchasedItems[i]
		}
	}

	if out.TotalItems > 0 {
		out.AverageItemPrice = decimal.NewFromInt(s.TotalSpent).Div(decimal.NewFromInt(int64(out.TotalItems)))
	}

	return out
}
