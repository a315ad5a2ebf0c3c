package errl

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorAnnotatesLocation(t *testing.T) {
	base := errors.New("boom")

	err := Error(base)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("original message lost: %v", err)
	}
	if !strings.Contains(err.Error(), "errl_test.go") {
		t.Errorf("caller location missing: %v", err)
	}
	if !errors.Is(err, base) {
		t.Error("wrapped error must unwrap to the original")
	}
}

func TestErrorNil(t *testing.T) {
	if err := Error(nil); err != nil {
		t.Errorf("Error(nil) = %v, want nil", err)
	}
}

func TestErrorf(t *testing.T) {
	base := errors.New("boom")

	err := Errorf("filling contract: %w", base)
	if !strings.Contains(err.Error(), "filling contract: boom") {
		t.Errorf("formatted message wrong: %v", err)
	}
	if !errors.Is(err, base) {
		t.Error("%w verb must wrap")
	}
}
