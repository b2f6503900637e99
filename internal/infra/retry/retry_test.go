package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

var fast = Options{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

func TestDo_RetriesTransientErrors(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fast, func() error {
		calls++
		if calls < 3 {
			return &StatusError{Code: 503}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestDo_StopsOnPermanentError(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fast, func() error {
		calls++
		return &StatusError{Code: 403, Message: "forbidden"}
	})
	var se *StatusError
	if !errors.As(err, &se) || se.Code != 403 {
		t.Fatalf("expected 403, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestDo_GivesUpAfterMaxRetries(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fast, func() error {
		calls++
		return &StatusError{Code: 429, RetryAfter: time.Hour}
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if calls != 1+fast.MaxRetries {
		t.Fatalf("expected %d calls, got %d", 1+fast.MaxRetries, calls)
	}
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := Do(ctx, fast, func() error {
		called = true
		return nil
	})
	if !errors.Is(err, context.Canceled) || called {
		t.Fatalf("expected context.Canceled without calling fn, got %v (called=%v)", err, called)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("plain"), false},
		{&StatusError{Code: 400}, false},
		{&StatusError{Code: 429}, true},
		{&StatusError{Code: 500}, true},
		{&StatusError{Code: 504}, true},
	}
	for _, tt := range tests {
		if got := IsRetryable(tt.err); got != tt.want {
			t.Fatalf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestFullJitterSleep_Bounds(t *testing.T) {
	for attempt := 0; attempt < 50; attempt++ {
		d := FullJitterSleep(attempt, 10*time.Millisecond, 80*time.Millisecond)
		if d < 0 || d > 80*time.Millisecond {
			t.Fatalf("attempt %d: sleep %v out of bounds", attempt, d)
		}
	}
	if FullJitterSleep(3, 0, time.Second) != 0 {
		t.Fatalf("zero base delay must not sleep")
	}
}
