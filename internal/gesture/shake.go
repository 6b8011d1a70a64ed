package gesture

import (
	"math"
	"sync"
	"time"
)

const (
	DefaultShakeThreshold = 15.0 // m/s², magnitude of the accelerometer vector
	DefaultShakeCooldown  = time.Second
)

// ShakeDetector turns accelerometer samples into shake events. After an
// accepted shake, further samples are ignored until Cooldown has passed, so
// one physical shake yields one event.
type ShakeDetector struct {
	Threshold float64
	Cooldown  time.Duration

	mu   sync.Mutex
	last time.Time
}

func NewShakeDetector(threshold float64, cooldown time.Duration) *ShakeDetector {
	if threshold <= 0 {
		threshold = DefaultShakeThreshold
	}

	if cooldown < 0 {
		cooldown = DefaultShakeCooldown
	}

	return &ShakeDetector{Threshold: threshold, Cooldown: cooldown}
}

// Sample reports whether the reading taken at at counts as a new shake.
func (d *ShakeDetector) Sample(x, y, z float64, at time.Time) bool {
	magnitude := math.Sqrt(x*x + y*y + z*z)
	if magnitude <= d.Threshold {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.last.IsZero() && at.Sub(d.last) < d.Cooldown {
		return false
	}

	d.last = at

	return true
}
