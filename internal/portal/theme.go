package portal

import "sync"

// Theme is the explicit appearance configuration threaded through the
// presentation layer at construction time. There is exactly one toggle
// function for the whole process.
type Theme struct {
	mu   sync.Mutex
	mode string
}

// NewTheme creates a theme starting in the given mode ("dark" or "light").
func NewTheme(mode string) *Theme {
	if mode != "light" {
		mode = "dark"
	}
	return &Theme{mode: mode}
}

// Mode returns the current mode.
func (t *Theme) Mode() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

// Toggle flips between light and dark and returns the new mode.
func (t *Theme) Toggle() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.mode == "light" {
		t.mode = "dark"
	} else {
		t.mode = "light"
	}
	return t.mode
}
