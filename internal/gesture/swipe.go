package gesture

import "math"

// MinSwipeDistance is how far (in points) a pan must travel to count.
const MinSwipeDistance = 100.0

type Swipe int

const (
	SwipeNone Swipe = iota
	SwipeRight      // buy the item on screen
	SwipeLeft       // skip to another item
)

func (s Swipe) String() string {
	switch s {
	case SwipeRight:
		return "right"
	case SwipeLeft:
		return "left"
	default:
		return "none"
	}
}

// ClassifySwipe maps the horizontal translation of a finished pan.
func ClassifySwipe(translationX float64) Swipe {
	if math.Abs(translationX) <= MinSwipeDistance {
		return SwipeNone
	}

	if translationX > 0 {
		return SwipeRight
	}

	return SwipeLeft
}
