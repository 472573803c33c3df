package txn

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/habitrack/internal/apperror"
	"github.com/sakif/habitrack/internal/model"
	"github.com/sakif/habitrack/internal/repository"
	"github.com/sakif/habitrack/internal/repository/sqldb"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newMockExecutor wires an Executor to a sqlmock-backed store. sqlmock's
// driver name is unknown to sqlx, so `?` placeholders reach it unchanged.
func newMockExecutor(t *testing.T) (*Executor, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	store := sqldb.Wrap(sqlx.NewDb(mockDB, "sqlmock"), sqldb.SQLite)
	return New(store, time.Second, discardLogger()), mock
}

func TestRun_CommitsOnSuccess(t *testing.T) {
	exec, mock := newMockExecutor(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE users SET deleted_at`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := exec.Run(context.Background(), "user.delete", func(ctx context.Context, repos repository.Repositories) error {
		return repos.Users().SoftDelete(ctx, "u1")
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_RollsBackAndReturnsSameError(t *testing.T) {
	exec, mock := newMockExecutor(t)
	want := apperror.Conflict("username", apperror.MsgUsernameTaken)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := exec.Run(context.Background(), "user.create", func(context.Context, repository.Repositories) error {
		return want
	})

	assert.Same(t, want, err)
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_RepositoryNotFoundRollsBack(t *testing.T) {
	exec, mock := newMockExecutor(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE users SET deleted_at`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := exec.Run(context.Background(), "user.delete", func(ctx context.Context, repos repository.Repositories) error {
		return repos.Users().SoftDelete(ctx, "missing")
	})

	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.EqualError(t, err, "User not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_RollbackFailureKeepsOriginalError(t *testing.T) {
	exec, mock := newMockExecutor(t)
	want := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(errors.New("connection lost"))

	err := exec.Run(context.Background(), "op", func(context.Context, repository.Repositories) error {
		return want
	})

	assert.Same(t, want, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_BeginError(t *testing.T) {
	exec, mock := newMockExecutor(t)
	mock.ExpectBegin().WillReturnError(errors.New("database is locked"))

	called := false
	err := exec.Run(context.Background(), "op", func(context.Context, repository.Repositories) error {
		called = true
		return nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
	assert.False(t, called, "fn must not run without a transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_CommitError(t *testing.T) {
	exec, mock := newMockExecutor(t)
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

	err := exec.Run(context.Background(), "op", func(context.Context, repository.Repositories) error {
		return nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "committing op")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_PanicRollsBackAndRepanics(t *testing.T) {
	exec, mock := newMockExecutor(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "kaboom", func() {
		_ = exec.Run(context.Background(), "op", func(context.Context, repository.Repositories) error {
			panic("kaboom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_ContextHasDeadline(t *testing.T) {
	exec, mock := newMockExecutor(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	err := exec.Run(context.Background(), "op", func(ctx context.Context, _ repository.Repositories) error {
		deadline, ok := ctx.Deadline()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Second), deadline, time.Second)
		return nil
	})
	require.NoError(t, err)
}

func TestDo_ReturnsValue(t *testing.T) {
	exec, mock := newMockExecutor(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO results`).
		WithArgs("u1", "Test result", "", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectCommit()

	id, err := Do(context.Background(), exec, "result.create", func(ctx context.Context, repos repository.Repositories) (int64, error) {
		r := &model.Result{UserID: "u1", Name: "Test result"}
		if err := repos.Results().Create(ctx, r); err != nil {
			return 0, err
		}
		return r.ID, nil
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_ZeroValueOnError(t *testing.T) {
	exec, mock := newMockExecutor(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	got, err := Do(context.Background(), exec, "op", func(context.Context, repository.Repositories) (*model.User, error) {
		return &model.User{ID: "partial"}, apperror.NotFound(apperror.ResourceUser)
	})

	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

// =========================================================================
// HAND-WRITTEN STORE FAKE
// =========================================================================

type fakeStore struct {
	repository.Repositories
	acquireErr error
	sess       *fakeSession
}

func (f *fakeStore) Acquire(context.Context) (repository.Session, error) {
	if f.acquireErr != nil {
		return nil, f.acquireErr
	}
	return f.sess, nil
}

type fakeSession struct {
	released int
}

func (s *fakeSession) Begin(context.Context) (repository.Tx, error) {
	return nil, errors.New("begin refused")
}

func (s *fakeSession) Release() error {
	s.released++
	return nil
}

func TestRun_AcquireError(t *testing.T) {
	store := &fakeStore{acquireErr: context.DeadlineExceeded}
	exec := New(store, 0, discardLogger())

	err := exec.Run(context.Background(), "op", func(context.Context, repository.Repositories) error {
		t.Fatal("fn must not run")
		return nil
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRun_ReleasesSessionWhenBeginFails(t *testing.T) {
	sess := &fakeSession{}
	exec := New(&fakeStore{sess: sess}, 0, discardLogger())

	err := exec.Run(context.Background(), "op", func(context.Context, repository.Repositories) error {
		return nil
	})

	assert.Error(t, err)
	assert.Equal(t, 1, sess.released)
}

func TestNew_DefaultTimeout(t *testing.T) {
	exec := New(&fakeStore{}, 0, discardLogger())
	assert.Equal(t, DefaultTimeout, exec.timeout)
}
