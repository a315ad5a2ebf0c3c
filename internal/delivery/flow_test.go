package delivery

import (
	"testing"

	"github.com/spacehash/portal/internal/contract"
)

func TestTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{StateIdle, StatePreviewing, true},
		{StatePreviewing, StateDownloaded, true},
		{StateDownloaded, StateEmailPrompted, true},
		{StateEmailPrompted, StateIdle, true},

		// Closing from any non-idle screen
		{StatePreviewing, StateIdle, true},
		{StateDownloaded, StateIdle, true},

		// No skipping forward or moving backward
		{StateIdle, StateDownloaded, false},
		{StatePreviewing, StateEmailPrompted, false},
		{StateDownloaded, StatePreviewing, false},
		{StateEmailPrompted, StateDownloaded, false},
		{StateIdle, StateIdle, false},
		{"bogus", StateIdle, false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.ok {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestTransitionMutatesOnlyWhenLegal(t *testing.T) {
	state := StatePreviewing

	if err := Transition(&state, StateEmailPrompted); err == nil {
		t.Fatal("illegal transition must error")
	}
	if state != StatePreviewing {
		t.Errorf("state must be unchanged after a rejected transition, got %s", state)
	}

	if err := Transition(&state, StateDownloaded); err != nil {
		t.Fatalf("legal transition failed: %v", err)
	}
	if state != StateDownloaded {
		t.Errorf("state = %s, want %s", state, StateDownloaded)
	}
}

func TestContractSetLifecycle(t *testing.T) {
	docs := []contract.Generated{
		{Date: day(2026, 9, 5), Data: []byte("a")},
		{Date: day(2026, 9, 8), Data: []byte("b")},
	}
	lines := []SummaryLine{{Name: "SM58", Qty: 1, Cost: 10}}

	set := NewContractSet("Alice Doe", docs, lines, 10, "")

	if set.State != StatePreviewing {
		t.Fatalf("new set must start previewing, got %s", set.State)
	}
	if len(set.Dates) != 2 || !set.Dates[1].Equal(day(2026, 9, 8)) {
		t.Errorf("set dates must mirror document dates: %v", set.Dates)
	}
	if set.Total() != 20 {
		t.Errorf("Total = %v, want per-day rate x dates = 20", set.Total())
	}

	if err := set.Advance(StateDownloaded); err != nil {
		t.Fatalf("previewing -> downloaded: %v", err)
	}
	if err := set.Advance(StateEmailPrompted); err != nil {
		t.Fatalf("downloaded -> email_prompted: %v", err)
	}
	if err := set.Advance(StateIdle); err != nil {
		t.Fatalf("email_prompted -> idle: %v", err)
	}
}

func TestContractSetDocumentAccess(t *testing.T) {
	set := NewContractSet("O'Brien & Co.", []contract.Generated{
		{Date: day(2026, 9, 5), Data: []byte("a")},
	}, nil, 0, "")

	if _, ok := set.Document(1); ok {
		t.Error("out-of-range document index must not resolve")
	}
	if _, ok := set.Document(-1); ok {
		t.Error("negative document index must not resolve")
	}

	if got := set.DownloadNameAt(0); got != "contract-O-Brien-Co-2026-09-05.pdf" {
		t.Errorf("DownloadNameAt = %q", got)
	}
	if got := set.DownloadNameAt(3); got != "" {
		t.Errorf("DownloadNameAt out of range = %q, want empty", got)
	}
}
