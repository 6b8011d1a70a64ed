package stats

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/fastprodman/billionspend/internal/catalog"
	"github.com/fastprodman/billionspend/internal/format"
	"github.com/fastprodman/billionspend/internal/notify"
)

const Key = "@gameStatistics"

type Persister interface {
	Save(key string, v any)
	Load(ctx context.Context, key string, dst any) (bool, error)
}

// Aggregator owns the cross-game Statistics. Favourite category and most
// expensive item are derived from the items the player currently holds;
// the counters are running totals adjusted by purchases and sales.
type Aggregator struct {
	store   Persister
	changes notify.Broadcaster

	mu    sync.Mutex
	stats Statistics
}

func New(store Persister) *Aggregator {
	return &Aggregator{store: store}
}

// Subscribe registers fn to be called after every change.
func (a *Aggregator) Subscribe(fn func()) func() {
	return a.changes.Subscribe(fn)
}

// Stats returns a copy of the current statistics.
func (a *Aggregator) Stats() Statistics {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.stats.clone()
}

func (a *Aggregator) mutate(fn func(s *Statistics)) {
	a.mu.Lock()
	fn(&a.stats)
	a.stats.AverageItemsPerGame = averageItems(a.stats.TotalItemsPurchased, a.stats.GamesPlayed)
	a.store.Save(Key, a.stats.clone())
	a.mu.Unlock()

	a.changes.Notify()
}

// RecordPurchase accounts for item having been bought. held is the player's
// holdings after the purchase.
func (a *Aggregator) RecordPurchase(item catalog.Item, held []catalog.Item) {
	a.mutate(func(s *Statistics) {
		s.TotalMoneySpent += item.Price
		s.TotalItemsPurchased++

		if s.MostExpensiveItem == nil || item.Price > s.MostExpensiveItem.Price {
			it := item
			s.MostExpensiveItem = &it
		}

		s.FavoriteCategory = favoriteCategory(held)
	})
}

// RecordSale accounts for item having been sold. held is the player's
// holdings after the sale.
func (a *Aggregator) RecordSale(item catalog.Item, held []catalog.Item) {
	a.mutate(func(s *Statistics) {
		s.TotalMoneySpent -= item.Price
		s.TotalItemsPurchased--

		s.FavoriteCategory = favoriteCategory(held)

		if s.MostExpensiveItem != nil && s.MostExpensiveItem.ID == item.ID {
			s.MostExpensiveItem = mostExpensive(held)
		}
	})
}

// RecordCompletion counts a finished game that took elapsedSeconds.
func (a *Aggregator) RecordCompletion(elapsedSeconds int64) {
	a.mutate(func(s *Statistics) {
		s.GamesPlayed++

		if s.FastestCompletion == nil || elapsedSeconds < *s.FastestCompletion {
			v := elapsedSeconds
			s.FastestCompletion = &v
		}
	})
}

// Reset zeroes every statistic.
func (a *Aggregator) Reset() {
	a.mutate(func(s *Statistics) {
		*s = Statistics{}
	})
}

// Discard zeroes every statistic in memory without scheduling a write.
func (a *Aggregator) Discard() {
	a.mu.Lock()
	a.stats = Statistics{}
	a.mu.Unlock()

	a.changes.Notify()
}

// Load replaces the in-memory statistics with the stored ones, if any.
// The stored average is recomputed from the counters. On error the current
// statistics are kept.
func (a *Aggregator) Load(ctx context.Context) error {
	var loaded Statistics

	found, err := a.store.Load(ctx, Key, &loaded)
	if err != nil {
		return fmt.Errorf("load statistics: %w", err)
	}

	if found {
		err = loaded.validate()
		if err != nil {
			return fmt.Errorf("load statistics: %w", err)
		}

		loaded.AverageItemsPerGame = averageItems(loaded.TotalItemsPurchased, loaded.GamesPlayed)

		a.mu.Lock()
		a.stats = loaded
		a.mu.Unlock()

		a.changes.Notify()
	}

	return nil
}

func (a *Aggregator) Formatted() Formatted {
	s := a.Stats()

	out := Formatted{
		GamesPlayed:         strconv.FormatInt(s.GamesPlayed, 10),
		FastestCompletion:   format.Seconds(s.FastestCompletion),
		AverageItemsPerGame: format.OneDecimal(decimal.NewFromFloat(s.AverageItemsPerGame)),
		FavoriteCategory:    "N/A",
		TotalMoneySpent:     format.Full(s.TotalMoneySpent),
		TotalItemsPurchased: strconv.FormatInt(s.TotalItemsPurchased, 10),
		MostExpensiveItem:   "N/A",
	}

	if s.FavoriteCategory != nil {
		out.FavoriteCategory = string(*s.FavoriteCategory)
	}

	if s.MostExpensiveItem != nil {
		out.MostExpensiveItem = s.MostExpensiveItem.Name
	}

	return out
}

func (a *Aggregator) Analytics() Analytics {
	s := a.Stats()

	out := Analytics{
		AverageSpendingPerGame: decimal.Zero,
		AverageItemsPerGame:    decimal.Zero,
	}

	if s.GamesPlayed > 0 {
		games := decimal.NewFromInt(s.GamesPlayed)
		out.AverageSpendingPerGame = decimal.NewFromInt(s.TotalMoneySpent).Div(games)
		out.AverageItemsPerGame = decimal.NewFromInt(s.TotalItemsPurchased).Div(games)
	}

	if s.FastestCompletion != nil {
		out.FastestCompletion = *s.FastestCompletion
	}

	return out
}
