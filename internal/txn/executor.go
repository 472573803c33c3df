// Package txn runs a mutation inside one store transaction.
//
// Every write in the service layer goes through Executor.Run: the closure gets
// repositories bound to a fresh transaction, does its semantic checks and its
// writes there, and the executor commits only if the closure returned nil.
//
//	Acquire → Begin → fn(ctx, tx) → Commit
//	                       ↘ error → Rollback, return the error as-is
//	Release (always, also on panic)
package txn

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/habitrack/internal/metrics"
	"github.com/sakif/habitrack/internal/repository"
)

// DefaultTimeout bounds a transaction when none is configured.
const DefaultTimeout = 10 * time.Second

// Func is the unit of work. It must use only the repositories it is given.
type Func func(ctx context.Context, repos repository.Repositories) error

// Executor owns the store handle; services never open transactions themselves.
type Executor struct {
	store   repository.Store
	timeout time.Duration
	logger  *slog.Logger
}

// New creates an Executor. A timeout <= 0 means DefaultTimeout.
func New(store repository.Store, timeout time.Duration, logger *slog.Logger) *Executor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Executor{
		store:   store,
		timeout: timeout,
		logger:  logger,
	}
}

// Run executes fn in a transaction named op (used for logs and metrics).
//
// If fn returns an error the transaction is rolled back and that same error is
// returned, unwrapped, so callers can still match apperror sentinels. Acquire,
// Begin and Commit failures are wrapped.
func (e *Executor) Run(ctx context.Context, op string, fn Func) error {
	start := time.Now()
	log := e.logger.With(
		slog.String("tx", xid.New().String()),
		slog.String("op", op),
	)

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	sess, err := e.store.Acquire(ctx)
	if err != nil {
		metrics.ObserveTx(op, metrics.OutcomeAcquireErr, time.Since(start))
		log.Error("acquiring session failed", slog.Any("error", err))
		return fmt.Errorf("txn: %s: %w", op, err)
	}
	defer func() {
		if err := sess.Release(); err != nil {
			log.Warn("releasing session failed", slog.Any("error", err))
		}
	}()

	tx, err := sess.Begin(ctx)
	if err != nil {
		metrics.ObserveTx(op, metrics.OutcomeBeginErr, time.Since(start))
		log.Error("beginning transaction failed", slog.Any("error", err))
		return fmt.Errorf("txn: %s: %w", op, err)
	}

	defer func() {
		if p := recover(); p != nil {
			rollback(log, tx)
			metrics.ObserveTx(op, metrics.OutcomePanic, time.Since(start))
			log.Error("transaction panicked", slog.Any("panic", p))
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		rollback(log, tx)
		metrics.ObserveTx(op, metrics.OutcomeRollback, time.Since(start))
		log.Debug("transaction rolled back",
			slog.Any("error", err),
			slog.Duration("duration", time.Since(start)),
		)
		return err
	}

	if err := tx.Commit(); err != nil {
		metrics.ObserveTx(op, metrics.OutcomeCommitErr, time.Since(start))
		log.Error("commit failed", slog.Any("error", err))
		return fmt.Errorf("txn: committing %s: %w", op, err)
	}

	metrics.ObserveTx(op, metrics.OutcomeCommit, time.Since(start))
	log.Debug("transaction committed", slog.Duration("duration", time.Since(start)))
	return nil
}

// Do is Run for closures that produce a value. On error the zero T is returned.
func Do[T any](ctx context.Context, e *Executor, op string, fn func(context.Context, repository.Repositories) (T, error)) (T, error) {
	var out T
	err := e.Run(ctx, op, func(ctx context.Context, repos repository.Repositories) error {
		v, err := fn(ctx, repos)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// rollback failures are logged only; the caller's error wins.
func rollback(log *slog.Logger, tx repository.Tx) {
	if err := tx.Rollback(); err != nil {
		log.Warn("rollback failed", slog.Any("error", err))
	}
}
