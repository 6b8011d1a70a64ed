package ledger

import (
	"errors"
	"math/rand/v2"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastprodman/billionspend/internal/catalog"
	"github.com/fastprodman/billionspend/internal/persist/persisttest"
)

type statsCall struct {
	kind    string
	itemID  string
	held    int
	elapsed int64
}

type fakeStats struct {
	mu    sync.Mutex
	calls []statsCall
}

func (f *fakeStats) RecordPurchase(item catalog.Item, held []catalog.Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, statsCall{kind: "purchase", itemID: item.ID, held: len(held)})
}

func (f *fakeStats) RecordSale(item catalog.Item, held []catalog.Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, statsCall{kind: "sale", itemID: item.ID, held: len(held)})
}

func (f *fakeStats) RecordCompletion(elapsed int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, statsCall{kind: "completion", elapsed: elapsed})
}

// stepClock starts at a fixed instant and advances by step on every call.
func stepClock(step time.Duration) func() time.Time {
	var (
		mu  sync.Mutex
		cur = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	)

	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()

		t := cur
		cur = cur.Add(step)

		return t
	}
}

func item(t *testing.T, id string) catalog.Item {
	t.Helper()

	it, ok := catalog.ByID(id)
	require.Truef(t, ok, "catalog has no %q", id)

	return it
}

func newLedger(t *testing.T, opts ...Option) (*Ledger, *persisttest.Recorder, *fakeStats) {
	t.Helper()

	rec := persisttest.New()
	fs := &fakeStats{}

	return New(rec, fs, opts...), rec, fs
}

// spendDown buys the most expensive affordable item until nothing more fits.
func spendDown(t *testing.T, l *Ledger) int {
	t.Helper()

	items := catalog.All()
	slices.SortFunc(items, func(a, b catalog.Item) int {
		switch {
		case a.Price > b.Price:
			return -1
		case a.Price < b.Price:
			return 1
		default:
			return 0
		}
	})

	n := 0

	for _, it := range items {
		for l.CanAfford(it) && l.RemainingBudget() > 0 {
			require.True(t, l.Purchase(it))
			n++
		}
	}

	return n
}

func TestLedger_InitialState(t *testing.T) {
	t.Parallel()

	l, _, _ := newLedger(t, WithClock(stepClock(time.Second)))

	s := l.State()
	assert.Equal(t, InitialBudget, s.CurrentBudget)
	assert.Equal(t, int64(100_000_000_000), s.CurrentBudget)
	assert.Zero(t, s.TotalSpent)
	assert.Empty(t, s.PurchasedItems)
	assert.False(t, s.GameCompleted)
	assert.Nil(t, s.EndTime)
	assert.Equal(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), s.StartTime)
	assert.False(t, l.IsLoaded())
}

func TestLedger_Purchase(t *testing.T) {
	t.Parallel()

	l, rec, fs := newLedger(t)

	notified := 0
	l.Subscribe(func() { notified++ })

	lambo := item(t, "lamborghini_aventador")

	ok := l.Purchase(lambo)
	require.True(t, ok)

	s := l.State()
	assert.Equal(t, int64(99_999_500_000), s.CurrentBudget)
	assert.Equal(t, int64(500_000), s.TotalSpent)
	assert.False(t, s.GameCompleted)
	assert.Equal(t, []catalog.Item{lambo}, s.PurchasedItems)
	assert.Equal(t, 1, l.OwnedCount(lambo.ID))

	assert.Equal(t, 1, notified)
	assert.Equal(t, 1, rec.Saves(Key))
	assert.Equal(t, []statsCall{{kind: "purchase", itemID: lambo.ID, held: 1}}, fs.calls)
}

func TestLedger_PurchaseInsufficientFunds(t *testing.T) {
	t.Parallel()

	l, rec, fs := newLedger(t)

	notified := 0
	l.Subscribe(func() { notified++ })

	before := l.State()
	expensive := catalog.Item{ID: "moon", Name: "The Moon", Price: InitialBudget + 1, Category: catalog.CategoryRealEstate}

	assert.False(t, l.CanAfford(expensive))
	assert.False(t, l.Purchase(expensive))

	assert.Equal(t, before, l.State())
	assert.Zero(t, notified)
	assert.Zero(t, rec.Saves(Key))
	assert.Empty(t, fs.calls)
}

func TestLedger_PurchaseSucceedsIffAffordable(t *testing.T) {
	t.Parallel()

	l, _, _ := newLedger(t)
	spendDown(t, l)
	require.Zero(t, l.RemainingBudget())

	// after completion nothing with a positive price fits
	for _, it := range catalog.All() {
		assert.False(t, l.Purchase(it), it.ID)
	}

	free := catalog.Item{ID: "free_sample", Name: "Free Sample", Price: 0, Category: catalog.CategoryFood}
	assert.True(t, l.Purchase(free), "a zero price always fits")
}

func TestLedger_CompletionAtExactlyZero(t *testing.T) {
	t.Parallel()

	l, rec, fs := newLedger(t, WithClock(stepClock(10*time.Second)))

	require.True(t, l.Purchase(item(t, "lamborghini_aventador")))
	assert.Equal(t, int64(99_999_500_000), l.RemainingBudget())
	assert.False(t, l.IsCompleted())

	n := spendDown(t, l)

	s := l.State()
	assert.Zero(t, s.CurrentBudget)
	assert.Equal(t, InitialBudget, s.TotalSpent)
	assert.True(t, s.GameCompleted)
	require.NotNil(t, s.EndTime)
	assert.Equal(t, s.StartTime.Add(10*time.Second), *s.EndTime)
	assert.Len(t, s.PurchasedItems, n+1)

	last := fs.calls[len(fs.calls)-1]
	assert.Equal(t, statsCall{kind: "completion", elapsed: 10}, last)

	completions := 0
	for _, c := range fs.calls {
		if c.kind == "completion" {
			completions++
		}
	}

	assert.Equal(t, 1, completions)
	assert.Equal(t, n+1, rec.Saves(Key))
}

func TestLedger_FreePurchaseAfterCompletion(t *testing.T) {
	t.Parallel()

	l, _, fs := newLedger(t, WithClock(stepClock(10*time.Second)))
	spendDown(t, l)
	require.True(t, l.IsCompleted())

	before := l.State()
	require.NotNil(t, before.EndTime)

	free := catalog.Item{ID: "free_sample", Name: "Free Sample", Price: 0, Category: catalog.CategoryFood}
	require.True(t, l.Purchase(free))

	s := l.State()
	assert.True(t, s.GameCompleted)
	assert.Zero(t, s.CurrentBudget)
	assert.Equal(t, *before.EndTime, *s.EndTime, "end time stays at the first completion")
	assert.Len(t, s.PurchasedItems, len(before.PurchasedItems)+1)

	completions := 0
	for _, c := range fs.calls {
		if c.kind == "completion" {
			completions++
		}
	}

	assert.Equal(t, 1, completions)

	last := fs.calls[len(fs.calls)-1]
	assert.Equal(t, statsCall{kind: "purchase", itemID: "free_sample", held: len(s.PurchasedItems)}, last)
}

func TestLedger_Sell(t *testing.T) {
	t.Parallel()

	l, _, fs := newLedger(t)

	tesla := item(t, "tesla")
	kitten := item(t, "kitten")

	before := l.State()

	require.True(t, l.Purchase(tesla))
	require.True(t, l.Purchase(kitten))
	require.True(t, l.Purchase(tesla))

	require.True(t, l.Sell(tesla))

	s := l.State()
	assert.Equal(t, []catalog.Item{kitten, tesla}, s.PurchasedItems, "first matching copy is removed")
	assert.Equal(t, InitialBudget-tesla.Price-kitten.Price, s.CurrentBudget)

	require.True(t, l.Sell(kitten))
	require.True(t, l.Sell(tesla))

	after := l.State()
	assert.Equal(t, before.CurrentBudget, after.CurrentBudget)
	assert.Equal(t, before.TotalSpent, after.TotalSpent)
	assert.Empty(t, after.PurchasedItems)

	last := fs.calls[len(fs.calls)-1]
	assert.Equal(t, statsCall{kind: "sale", itemID: tesla.ID, held: 0}, last)
}

func TestLedger_SellNotHeld(t *testing.T) {
	t.Parallel()

	l, rec, fs := newLedger(t)
	require.True(t, l.Purchase(item(t, "book")))

	notified := 0
	l.Subscribe(func() { notified++ })

	before := l.State()
	savesBefore := rec.Saves(Key)
	callsBefore := len(fs.calls)

	assert.False(t, l.Sell(item(t, "yacht")))

	assert.Equal(t, before, l.State())
	assert.Zero(t, notified)
	assert.Equal(t, savesBefore, rec.Saves(Key))
	assert.Len(t, fs.calls, callsBefore)
}

func TestLedger_SellReopensCompletedGame(t *testing.T) {
	t.Parallel()

	l, _, _ := newLedger(t)
	spendDown(t, l)
	require.True(t, l.IsCompleted())

	held := l.State().PurchasedItems
	last := held[len(held)-1]
	require.True(t, l.Sell(last))

	s := l.State()
	assert.False(t, s.GameCompleted)
	assert.Nil(t, s.EndTime)
	assert.Equal(t, last.Price, s.CurrentBudget)

	// buying it back completes the game again
	require.True(t, l.Purchase(last))
	assert.True(t, l.IsCompleted())
}

func TestLedger_Reset(t *testing.T) {
	t.Parallel()

	l, rec, fs := newLedger(t, WithClock(stepClock(time.Minute)))
	start := l.State().StartTime

	require.True(t, l.Purchase(item(t, "mansion")))
	callsBefore := len(fs.calls)

	notified := 0
	l.Subscribe(func() { notified++ })

	l.Reset()

	s := l.State()
	assert.Equal(t, InitialBudget, s.CurrentBudget)
	assert.Zero(t, s.TotalSpent)
	assert.Empty(t, s.PurchasedItems)
	assert.False(t, s.GameCompleted)
	assert.True(t, s.StartTime.After(start))

	assert.Equal(t, 1, notified)
	assert.Equal(t, 2, rec.Saves(Key))
	assert.Len(t, fs.calls, callsBefore, "reset leaves statistics alone")
}

func TestLedger_DiscardDoesNotPersist(t *testing.T) {
	t.Parallel()

	l, rec, _ := newLedger(t)
	require.True(t, l.Purchase(item(t, "drone")))

	l.Discard()

	assert.Equal(t, InitialBudget, l.RemainingBudget())
	assert.Equal(t, 1, rec.Saves(Key))
}

func TestLedger_StateIsDefensiveCopy(t *testing.T) {
	t.Parallel()

	l, _, _ := newLedger(t)
	spendDown(t, l)

	s := l.State()
	s.PurchasedItems[0].Price = 1
	*s.EndTime = time.Time{}

	again := l.State()
	assert.NotEqual(t, int64(1), again.PurchasedItems[0].Price)
	assert.False(t, again.EndTime.IsZero())
}

func TestLedger_PersistedShapeAndRoundTrip(t *testing.T) {
	t.Parallel()

	l, rec, _ := newLedger(t, WithClock(stepClock(1500*time.Millisecond)))
	require.True(t, l.Purchase(item(t, "big_mac")))

	assert.JSONEq(t, `{
		"currentBudget": 99999999998,
		"purchasedItems": [{"id":"big_mac","name":"Big Mac","price":2,"category":"food","description":"McDonald's signature burger"}],
		"totalSpent": 2,
		"gameCompleted": false,
		"startTime": "2025-03-01T12:00:00.000Z"
	}`, rec.Raw(Key))

	spendDown(t, l)
	require.True(t, l.IsCompleted())

	restored := New(rec, &fakeStats{})
	require.NoError(t, restored.Load(t.Context()))

	assert.True(t, restored.IsLoaded())
	assert.Equal(t, l.State(), restored.State())
	assert.Contains(t, rec.Raw(Key), `"endTime":"2025-03-01T12:00:01.500Z"`)
}

func TestLedger_LoadMissingKeepsDefaults(t *testing.T) {
	t.Parallel()

	l, _, _ := newLedger(t)

	notified := 0
	l.Subscribe(func() { notified++ })

	require.NoError(t, l.Load(t.Context()))
	assert.True(t, l.IsLoaded())
	assert.Equal(t, InitialBudget, l.RemainingBudget())
	assert.Equal(t, 1, notified)
}

func TestLedger_LoadRejectsBadState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		loadErr error
		wantErr error
	}{
		{
			name:    "budget_does_not_add_up",
			raw:     `{"currentBudget":5,"purchasedItems":[],"totalSpent":0,"gameCompleted":false,"startTime":"2025-03-01T12:00:00.000Z"}`,
			wantErr: ErrCorruptState,
		},
		{
			name:    "completed_with_budget_left",
			raw:     `{"currentBudget":100000000000,"purchasedItems":[],"totalSpent":0,"gameCompleted":true,"startTime":"2025-03-01T12:00:00.000Z"}`,
			wantErr: ErrCorruptState,
		},
		{
			name: "bad_timestamp",
			raw:  `{"currentBudget":100000000000,"purchasedItems":[],"totalSpent":0,"gameCompleted":false,"startTime":"yesterday"}`,
		},
		{
			name:    "storage_error",
			loadErr: errors.New("storage offline"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := persisttest.New()
			rec.LoadErr = tt.loadErr

			if tt.raw != "" {
				rec.Put(Key, tt.raw)
			}

			l := New(rec, &fakeStats{})
			require.True(t, l.Purchase(item(t, "rolex")))

			err := l.Load(t.Context())
			require.Error(t, err)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}

			assert.True(t, l.IsLoaded())
			assert.Equal(t, 1, l.OwnedCount("rolex"), "current game is kept")
		})
	}
}

func TestLedger_RandomItem(t *testing.T) {
	t.Parallel()

	a, _, _ := newLedger(t, WithRand(rand.New(rand.NewPCG(7, 7))))
	b, _, _ := newLedger(t, WithRand(rand.New(rand.NewPCG(7, 7))))

	for range 10 {
		x := a.RandomItem()
		assert.Equal(t, x, b.RandomItem())

		_, ok := catalog.ByID(x.ID)
		assert.True(t, ok)
	}

	assert.Equal(t, "big_mac", a.CurrentItem().ID)
	assert.Equal(t, catalog.All(), a.AllItems())
	assert.Len(t, a.ItemsByCategory(catalog.CategoryMilitary), 2)
}

func TestLedger_Analytics(t *testing.T) {
	t.Parallel()

	l, _, _ := newLedger(t)

	an := l.Analytics()
	assert.Zero(t, an.TotalItems)
	assert.Empty(t, an.UniqueCategories)
	assert.Nil(t, an.MostExpensiveOwned)
	assert.True(t, an.AverageItemPrice.IsZero())
	assert.True(t, an.CompletionPercentage.IsZero())

	require.True(t, l.Purchase(item(t, "kitten")))
	require.True(t, l.Purchase(item(t, "puppy")))
	require.True(t, l.Purchase(item(t, "skyscraper")))

	an = l.Analytics()
	assert.Equal(t, 3, an.TotalItems)
	assert.Equal(t, []catalog.Category{catalog.CategoryPets, catalog.CategoryRealEstate}, an.UniqueCategories)
	assert.Equal(t, "283334333.3333333333333333", an.AverageItemPrice.String())
	require.NotNil(t, an.MostExpensiveOwned)
	assert.Equal(t, "skyscraper", an.MostExpensiveOwned.ID)
	assert.Equal(t, "0.850003", an.CompletionPercentage.String())
}
