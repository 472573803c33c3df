package sqldb

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sakif/habitrack/internal/repository"
)

var (
	_ repository.Store   = (*DB)(nil)
	_ repository.Session = (*session)(nil)
	_ repository.Tx      = (*tx)(nil)
)

// Pool-bound repositories, for reads outside a transaction.

func (db *DB) Users() repository.UserRepository     { return userRepo{q: db.x} }
func (db *DB) Results() repository.ResultRepository { return resultRepo{q: db.x} }
func (db *DB) Habits() repository.HabitRepository   { return habitRepo{q: db.x} }
func (db *DB) Actions() repository.ActionRepository { return actionRepo{q: db.x} }

// Acquire reserves one connection from the pool. It blocks until a connection
// is free or ctx is done.
func (db *DB) Acquire(ctx context.Context) (repository.Session, error) {
	conn, err := db.x.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("sqldb: acquiring connection: %w", err)
	}
	return &session{conn: conn}, nil
}

type session struct {
	conn *sqlx.Conn
}

// Begin starts a transaction on the reserved connection. If ctx is cancelled
// before Commit, database/sql rolls the transaction back.
func (s *session) Begin(ctx context.Context) (repository.Tx, error) {
	t, err := s.conn.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqldb: beginning transaction: %w", err)
	}
	return &tx{tx: t}, nil
}

func (s *session) Release() error {
	return s.conn.Close()
}

type tx struct {
	tx *sqlx.Tx
}

func (t *tx) Users() repository.UserRepository     { return userRepo{q: t.tx} }
func (t *tx) Results() repository.ResultRepository { return resultRepo{q: t.tx} }
func (t *tx) Habits() repository.HabitRepository   { return habitRepo{q: t.tx} }
func (t *tx) Actions() repository.ActionRepository { return actionRepo{q: t.tx} }

func (t *tx) Commit() error   { return t.tx.Commit() }
func (t *tx) Rollback() error { return t.tx.Rollback() }
