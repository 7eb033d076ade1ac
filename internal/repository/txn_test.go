package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

func transientErr() error {
	return mongo.CommandError{
		Code:    112,
		Name:    "WriteConflict",
		Message: "write conflict",
		Labels:  []string{TransientTxnLabel},
	}
}

func instantPolicy(attempts int) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: attempts,
		Backoff:     func(int) time.Duration { return 0 },
	}
}

func TestIsTransientTxn(t *testing.T) {
	if !IsTransientTxn(transientErr()) {
		t.Error("labelled command error should be transient")
	}
	if IsTransientTxn(mongo.CommandError{Code: 11000, Name: "DuplicateKey"}) {
		t.Error("unlabelled command error is not transient")
	}
	if IsTransientTxn(errors.New("boom")) {
		t.Error("plain error is not transient")
	}
	if IsTransientTxn(nil) {
		t.Error("nil is not transient")
	}
}

func TestRunRetryable(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds_first_try", func(t *testing.T) {
		calls := 0
		err := RunRetryable(ctx, instantPolicy(3), func(context.Context) error {
			calls++
			return nil
		})
		if err != nil || calls != 1 {
			t.Fatalf("err=%v calls=%d", err, calls)
		}
	})

	t.Run("retries_transient_then_succeeds", func(t *testing.T) {
		calls := 0
		err := RunRetryable(ctx, instantPolicy(3), func(context.Context) error {
			calls++
			if calls < 3 {
				return transientErr()
			}
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if calls != 3 {
			t.Fatalf("calls = %d, want 3", calls)
		}
	})

	t.Run("non_transient_aborts_immediately", func(t *testing.T) {
		boom := errors.New("boom")
		calls := 0
		err := RunRetryable(ctx, instantPolicy(3), func(context.Context) error {
			calls++
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("err = %v, want boom", err)
		}
		if calls != 1 {
			t.Fatalf("calls = %d, want 1", calls)
		}
	})

	t.Run("exhaustion_returns_last_transient", func(t *testing.T) {
		calls := 0
		err := RunRetryable(ctx, instantPolicy(3), func(context.Context) error {
			calls++
			return transientErr()
		})
		if calls != 3 {
			t.Fatalf("calls = %d, want 3", calls)
		}
		if !IsTransientTxn(err) {
			t.Fatalf("expected the last transient error back, got %v", err)
		}
	})

	t.Run("cancelled_context_stops_backoff", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		policy := RetryPolicy{
			MaxAttempts: 3,
			Backoff:     func(int) time.Duration { return time.Minute },
		}
		calls := 0
		done := make(chan error, 1)
		go func() {
			done <- RunRetryable(cctx, policy, func(context.Context) error {
				calls++
				return transientErr()
			})
		}()
		cancel()
		select {
		case err := <-done:
			if !errors.Is(err, context.Canceled) {
				t.Fatalf("err = %v, want context.Canceled", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("RunRetryable did not honor cancellation")
		}
		if calls != 1 {
			t.Fatalf("calls = %d, want 1", calls)
		}
	})
}

func TestDefaultRetryPolicy(t *testing.T) {
	p := DefaultRetryPolicy()
	if p.MaxAttempts != 3 {
		t.Fatalf("MaxAttempts = %d, want 3", p.MaxAttempts)
	}
	for attempt, want := range map[int]time.Duration{1: time.Second, 2: 2 * time.Second} {
		if got := p.Backoff(attempt); got != want {
			t.Errorf("Backoff(%d) = %v, want %v", attempt, got, want)
		}
	}
}
