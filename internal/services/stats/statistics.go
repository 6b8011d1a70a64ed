package stats

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fastprodman/billionspend/internal/catalog"
)

// Statistics are cumulative across games and survive a game reset.
type Statistics struct {
	GamesPlayed         int64             `json:"gamesPlayed"`
	FastestCompletion   *int64            `json:"fastestCompletion,omitempty"` // seconds
	AverageItemsPerGame float64           `json:"averageItemsPerGame"`
	FavoriteCategory    *catalog.Category `json:"favoriteCategory,omitempty"`
	TotalMoneySpent     int64             `json:"totalMoneySpent"`
	TotalItemsPurchased int64             `json:"totalItemsPurchased"`
	MostExpensiveItem   *catalog.Item     `json:"mostExpensiveItem,omitempty"`
}

func (s Statistics) clone() Statistics {
	out := s

	if s.FastestCompletion != nil {
		v := *s.FastestCompletion
		out.FastestCompletion = &v
	}

	if s.FavoriteCategory != nil {
		v := *s.FavoriteCategory
		out.FavoriteCategory = &v
	}

	if s.MostExpensiveItem != nil {
		v := *s.MostExpensiveItem
		out.MostExpensiveItem = &v
	}

	return out
}

var ErrCorruptStatistics = errors.New("corrupt statistics")

// validate checks the counters that only ever grow. The running totals may
// dip below zero when statistics are reset while items are still held and
// those items are sold afterwards, so they are not checked.
func (s Statistics) validate() error {
	if s.GamesPlayed < 0 {
		return fmt.Errorf("%w: gamesPlayed %d", ErrCorruptStatistics, s.GamesPlayed)
	}

	if s.FastestCompletion != nil && *s.FastestCompletion < 0 {
		return fmt.Errorf("%w: fastestCompletion %d", ErrCorruptStatistics, *s.FastestCompletion)
	}

	if s.MostExpensiveItem != nil && s.MostExpensiveItem.Price < 0 {
		return fmt.Errorf("%w: mostExpensiveItem price %d", ErrCorruptStatistics, s.MostExpensiveItem.Price)
	}

	return nil
}

func averageItems(totalItems, games int64) float64 {
	if games == 0 {
		return 0
	}

	return float64(totalItems) / float64(games)
}

// favoriteCategory returns the most frequent category among held items.
// On a tie the category seen first in held wins; nil when held is empty.
func favoriteCategory(held []catalog.Item) *catalog.Category {
	counts := make(map[catalog.Category]int, len(held))
	order := make([]catalog.Category, 0, len(held))

	for _, it := range held {
		if counts[it.Category] == 0 {
			order = append(order, it.Category)
		}

		counts[it.Category]++
	}

	if len(order) == 0 {
		return nil
	}

	best := order[0]
	for _, c := range order[1:] {
		if counts[c] > counts[best] {
			best = c
		}
	}

	return &best
}

// mostExpensive returns a copy of the first held item with the highest price.
func mostExpensive(held []catalog.Item) *catalog.Item {
	if len(held) == 0 {
		return nil
	}

	best := held[0]
	for _, it := range held[1:] {
		if it.Price > best.Price {
			best = it
		}
	}

	return &best
}

// Formatted holds the statistics as display strings.
type Formatted struct {
	GamesPlayed         string `json:"gamesPlayed"`
	FastestCompletion   string `json:"fastestCompletion"`
	AverageItemsPerGame string `json:"averageItemsPerGame"`
	FavoriteCategory    string `json:"favoriteCategory"`
	TotalMoneySpent     string `json:"totalMoneySpent"`
	TotalItemsPurchased string `json:"totalItemsPurchased"`
	MostExpensiveItem   string `json:"mostExpensiveItem"`
}

type Analytics struct {
	AverageSpendingPerGame decimal.Decimal `json:"averageSpendingPerGame"`
	AverageItemsPerGame    decimal.Decimal `json:"averageItemsPerGame"`
	FastestCompletion      int64           `json:"fastestCompletionSeconds"`
}
