package sqldb

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/sakif/habitrack/internal/apperror"
)

// newPostgresDB starts a throwaway PostgreSQL container. Needs Docker, so it
// only runs with TEST_POSTGRES=1.
func newPostgresDB(t *testing.T) *DB {
	t.Helper()
	if os.Getenv("TEST_POSTGRES") == "" {
		t.Skip("set TEST_POSTGRES=1 to run PostgreSQL integration tests")
	}
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("habitrack"),
		postgres.WithUsername("habitrack"),
		postgres.WithPassword("habitrack"),
		postgres.BasicWaitStrategies(),
	)
	t.Cleanup(func() {
		if ctr != nil {
			assert.NoError(t, ctr.Terminate(context.Background()))
		}
	})
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := Open(ctx, Postgres, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPostgres_UserLifecycle(t *testing.T) {
	db := newPostgresDB(t)
	ctx := context.Background()

	u := newUserModel("fakeUser", "fakeUser@gmail.com")
	require.NoError(t, db.Users().Create(ctx, u))

	err := db.Users().Create(ctx, newUserModel("fakeUser", "other@gmail.com"))
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.EqualError(t, err, "Username already exists")

	err = db.Users().Create(ctx, newUserModel("otherUser", "fakeUser@gmail.com"))
	assert.EqualError(t, err, "Email already exists")

	require.NoError(t, db.Users().SoftDelete(ctx, u.ID))
	_, err = db.Users().GetByID(ctx, u.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	// The partial index lets the name be reused once the holder is deleted.
	require.NoError(t, db.Users().Create(ctx, newUserModel("fakeUser", "fakeUser@gmail.com")))
}

func TestPostgres_CascadeAndRebind(t *testing.T) {
	db := newPostgresDB(t)
	ctx := context.Background()

	u := newUserModel("fakeUser", "fakeUser@gmail.com")
	require.NoError(t, db.Users().Create(ctx, u))
	r := createTestResult(t, db, u.ID, "Test result")
	h := createTestHabit(t, db, r.ID)
	createTestAction(t, db, h.ID)

	taken, err := db.Users().UsernameTaken(ctx, "fakeUser", "")
	require.NoError(t, err)
	assert.True(t, taken)

	require.NoError(t, db.Results().DeleteByUser(ctx, u.ID))
	habits, err := db.Habits().ListByResult(ctx, r.ID)
	require.NoError(t, err)
	assert.Empty(t, habits)
}
