package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// TransientTxnLabel marks transaction conflicts the server considers safe
// to retry as a whole.
const TransientTxnLabel = "TransientTransactionError"

type RetryPolicy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
}

// DefaultRetryPolicy: 3 attempts total, waiting attempt*1s between them.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Backoff:     func(attempt int) time.Duration { return time.Duration(attempt) * time.Second },
	}
}

func IsTransientTxn(err error) bool {
	var se mongo.ServerError
	if errors.As(err, &se) {
		return se.HasErrorLabel(TransientTxnLabel)
	}
	return false
}

// RunRetryable executes op, retrying only on transient transaction errors.
// Any other error aborts immediately; exhausting the attempts re-raises the
// last transient error.
func RunRetryable(ctx context.Context, policy RetryPolicy, op func(context.Context) error) error {
	var last error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if !IsTransientTxn(err) {
			return err
		}
		last = err
		if attempt < policy.MaxAttempts {
			select {
			case <-time.After(policy.Backoff(attempt)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return last
}

// WithTxnRetry runs fn inside a multi-document transaction, retrying the
// whole transaction per DefaultRetryPolicy. The session is always ended,
// whatever path we leave on.
func WithTxnRetry(ctx context.Context, client *mongo.Client, fn func(sc context.Context) error) error {
	return WithTxnRetryPolicy(ctx, client, DefaultRetryPolicy(), fn)
}

func WithTxnRetryPolicy(ctx context.Context, client *mongo.Client, policy RetryPolicy, fn func(sc context.Context) error) error {
	sess, err := client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	return RunRetryable(ctx, policy, func(ctx context.Context) error {
		if err := sess.StartTransaction(); err != nil {
			return err
		}
		if err := mongo.WithSession(ctx, sess, fn); err != nil {
			_ = sess.AbortTransaction(ctx)
			return err
		}
		return sess.CommitTransaction(ctx)
	})
}
