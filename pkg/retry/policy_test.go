package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errTransient = errors.New("transient")
var errPermanent = errors.New("permanent")

func fastPolicy() Policy {
	return Policy{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Retryable:    func(err error) bool { return errors.Is(err, errTransient) },
	}
}

func TestDoRetriesTransientErrors(t *testing.T) {
	attempts := 0
	got, err := Do(context.Background(), fastPolicy(), func() (string, error) {
		attempts++
		if attempts < 3 {
			return "", errTransient
		}
		return "ok", nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Errorf("got %q, want ok", got)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestDoStopsAtAttemptCap(t *testing.T) {
	attempts := 0
	_, err := Do(context.Background(), fastPolicy(), func() (string, error) {
		attempts++
		return "", errTransient
	})

	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestDoSurfacesPermanentErrorImmediately(t *testing.T) {
	attempts := 0
	_, err := Do(context.Background(), fastPolicy(), func() (string, error) {
		attempts++
		return "", errPermanent
	})

	if !errors.Is(err, errPermanent) {
		t.Fatalf("expected permanent error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}
