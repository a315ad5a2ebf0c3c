// Package delivery orchestrates what happens after contracts are generated:
// preview, per-date download, and the follow-up email prompt.
package delivery

import "github.com/spacehash/portal/internal/errl"

// Delivery flow states. A contract set moves through them strictly forward,
// except that closing any screen returns to idle.
const (
	StateIdle          = "idle"
	StatePreviewing    = "previewing"
	StateDownloaded    = "downloaded"
	StateEmailPrompted = "email_prompted"
)

var transitions = map[string]map[string]struct{}{
	StateIdle:          {StatePreviewing: {}},
	StatePreviewing:    {StateDownloaded: {}, StateIdle: {}},
	StateDownloaded:    {StateEmailPrompted: {}, StateIdle: {}},
	StateEmailPrompted: {StateIdle: {}},
}

// CanTransition reports whether the flow may move from one state to another.
func CanTransition(from, to string) bool {
	next, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = next[to]
	return ok
}

// Transition validates and applies a state change.
func Transition(current *string, to string) error {
	if !CanTransition(*current, to) {
		return errl.Errorf("invalid delivery transition %s -> %s", *current, to)
	}
	*current = to
	return nil
}
