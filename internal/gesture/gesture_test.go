package gesture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShakeDetector_ThresholdAndCooldown(t *testing.T) {
	t.Parallel()

	d := NewShakeDetector(15, time.Second)
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.False(t, d.Sample(0, 0, 9.81, t0), "gravity alone is not a shake")
	assert.False(t, d.Sample(15, 0, 0, t0), "threshold is exclusive")

	assert.True(t, d.Sample(12, 9, 3, t0))
	assert.False(t, d.Sample(20, 0, 0, t0.Add(100*time.Millisecond)), "inside cooldown")
	assert.False(t, d.Sample(20, 0, 0, t0.Add(999*time.Millisecond)), "inside cooldown")
	assert.True(t, d.Sample(20, 0, 0, t0.Add(time.Second)))
}

func TestShakeDetector_Defaults(t *testing.T) {
	t.Parallel()

	d := NewShakeDetector(0, -1)
	assert.InDelta(t, DefaultShakeThreshold, d.Threshold, 1e-9)
	assert.Equal(t, DefaultShakeCooldown, d.Cooldown)

	noCooldown := NewShakeDetector(15, 0)
	t0 := time.Now()
	assert.True(t, noCooldown.Sample(0, 20, 0, t0))
	assert.True(t, noCooldown.Sample(0, 20, 0, t0))
}

func TestClassifySwipe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dx   float64
		want Swipe
	}{
		{dx: 0, want: SwipeNone},
		{dx: 100, want: SwipeNone},
		{dx: -100, want: SwipeNone},
		{dx: 100.5, want: SwipeRight},
		{dx: 340, want: SwipeRight},
		{dx: -101, want: SwipeLeft},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifySwipe(tt.dx), "dx=%v", tt.dx)
	}

	assert.Equal(t, "right", SwipeRight.String())
	assert.Equal(t, "left", SwipeLeft.String())
	assert.Equal(t, "none", SwipeNone.String())
}
