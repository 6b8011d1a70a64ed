package ledger

import (
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/fastprodman/billionspend/internal/catalog"
)

const (
	Key           = "@gameState"
	InitialBudget = int64(100_000_000_000)

	// isoLayout matches JavaScript's Date.prototype.toISOString.
	isoLayout = "2006-01-02T15:04:05.000Z07:00"
)

var ErrCorruptState = errors.New("corrupt game state")

// GameState is the budget and holdings of the game in progress.
// CurrentBudget + TotalSpent always equals InitialBudget.
type GameState struct {
	CurrentBudget  int64
	PurchasedItems []catalog.Item
	TotalSpent     int64
	GameCompleted  bool
	StartTime      time.Time
	EndTime        *time.Time
}

func newGameState(start time.Time) GameState {
	return GameState{
		CurrentBudget:  InitialBudget,
		PurchasedItems: []catalog.Item{},
		StartTime:      start,
	}
}

func (s GameState) clone() GameState {
	out := s

	out.PurchasedItems = make([]catalog.Item, len(s.PurchasedItems))
	copy(out.PurchasedItems, s.PurchasedItems)

	if s.EndTime != nil {
		v := *s.EndTime
		out.EndTime = &v
	}

	return out
}

func (s GameState) validate() error {
	if s.CurrentBudget < 0 || s.TotalSpent < 0 {
		return fmt.Errorf("%w: negative budget or spend", ErrCorruptState)
	}

	if s.CurrentBudget+s.TotalSpent != InitialBudget {
		return fmt.Errorf("%w: budget %d + spent %d != %d", ErrCorruptState, s.CurrentBudget, s.TotalSpent, InitialBudget)
	}

	var held int64
	for _, it := range s.PurchasedItems {
		held += it.Price
	}

	if held != s.TotalSpent {
		return fmt.Errorf("%w: held items worth %d, spent %d", ErrCorruptState, held, s.TotalSpent)
	}

	if s.GameCompleted != (s.CurrentBudget == 0) {
		return fmt.Errorf("%w: completed=%t with budget %d", ErrCorruptState, s.GameCompleted, s.CurrentBudget)
	}

	return nil
}

type gameStateJSON struct {
	CurrentBudget  int64          `json:"currentBudget"`
	PurchasedItems []catalog.Item `json:"purchasedItems"`
	TotalSpent     int64          `json:"totalSpent"`
	GameCompleted  bool           `json:"gameCompleted"`
	StartTime      string         `json:"startTime"`
	EndTime        string         `json:"endTime,omitempty"`
}

func (s GameState) MarshalJSON() ([]byte, error) {
	w := gameStateJSON{
		CurrentBudget:  s.CurrentBudget,
		PurchasedItems: s.PurchasedItems,
		TotalSpent:     s.TotalSpent,
		GameCompleted:  s.GameCompleted,
		StartTime:      s.StartTime.UTC().Format(isoLayout),
	}

	if w.PurchasedItems == nil {
		w.PurchasedItems = []catalog.Item{}
	}

	if s.EndTime != nil {
		w.EndTime = s.EndTime.UTC().Format(isoLayout)
	}

	return json.Marshal(w)
}

func (s *GameState) UnmarshalJSON(data []byte) error {
	var w gameStateJSON

	err := json.Unmarshal(data, &w)
	if err != nil {
		return fmt.Errorf("decode game state: %w", err)
	}

	start, err := time.Parse(time.RFC3339Nano, w.StartTime)
	if err != nil {
		return fmt.Errorf("parse startTime: %w", err)
	}

	out := GameState{
		CurrentBudget:  w.CurrentBudget,
		PurchasedItems: w.PurchasedItems,
		TotalSpent:     w.TotalSpent,
		GameCompleted:  w.GameCompleted,
		StartTime:      start.UTC(),
	}

	if out.PurchasedItems == nil {
		out.PurchasedItems = []catalog.Item{}
	}

	if w.EndTime != "" {
		end, err := time.Parse(time.RFC3339Nano, w.EndTime)
		if err != nil {
			return fmt.Errorf("parse endTime: %w", err)
		}

		end = end.UTC()
		out.EndTime = &end
	}

	*s = out

	return nil
}
