package selection

import "time"

// HoldDuration is how long the clear-all gesture must be held continuously
// before it completes.
const HoldDuration = 3 * time.Second

// HoldTracker tracks one press-and-hold gesture. Progress is the elapsed
// fraction of HoldDuration; releasing before completion resets it to zero.
// The tracker belongs to a single session and is not safe for concurrent use.
type HoldTracker struct {
	start  time.Time
	active bool
}

// Start begins a hold at now. Starting while a hold is active is a no-op.
func (h *HoldTracker) Start(now time.Time) {
	if h.active {
		return
	}
	h.active = true
	h.start = now
}

// Active reports whether a hold is in progress.
func (h *HoldTracker) Active() bool {
	return h.active
}

// Progress returns the hold progress in [0, 1] at the given instant.
// An inactive tracker reports 0.
func (h *HoldTracker) Progress(now time.Time) float64 {
	if !h.active {
		return 0
	}
	p := float64(now.Sub(h.start)) / float64(HoldDuration)
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return p
}

// Release ends the hold and reports whether it ran to completion. The
// tracker is reset either way.
func (h *HoldTracker) Release(now time.Time) bool {
	if !h.active {
		return false
	}
	completed := h.Progress(now) >= 1
	h.active = false
	h.start = time.Time{}
	return completed
}
