package service

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sakif/habitrack/internal/auth"
	"github.com/sakif/habitrack/internal/model"
	"github.com/sakif/habitrack/internal/repository/sqldb"
	"github.com/sakif/habitrack/internal/txn"
)

// testEnv bundles every service over one in-memory SQLite database.
type testEnv struct {
	db      *sqldb.DB
	users   *UserService
	results *ResultService
	habits  *HabitService
	actions *ActionService
	auth    *AuthService
	tokens  *auth.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvAt(t, ":memory:")
}

// newFileTestEnv backs the services with a SQLite file, so the database
// outlives any single connection.
func newFileTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvAt(t, filepath.Join(t.TempDir(), "habitrack.db"))
}

func newTestEnvAt(t *testing.T, dsn string) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := sqldb.Open(ctx, sqldb.SQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	exec := txn.New(db, 5*time.Second, logger)
	// Cost 4 keeps bcrypt fast in tests.
	passwords := auth.NewPasswordServiceForTest(4)
	tokens, err := auth.NewTokenService("test-secret-at-least-16", time.Minute)
	require.NoError(t, err)

	return &testEnv{
		db:      db,
		users:   NewUserService(db, exec, passwords, logger),
		results: NewResultService(db, exec, logger),
		habits:  NewHabitService(db, exec, logger),
		actions: NewActionService(db, exec, logger),
		auth:    NewAuthService(db.Users(), tokens, passwords, logger),
		tokens:  tokens,
	}
}

func validUser() model.CreateUserRequest {
	return model.CreateUserRequest{
		Username:  "fakeUser",
		Email:     "fakeUser@gmail.com",
		Password:  "fakePassword",
		FirstName: "Fake",
		LastName:  "User",
	}
}

func (e *testEnv) mustCreateUser(t *testing.T, req model.CreateUserRequest) string {
	t.Helper()
	id, err := e.users.Create(context.Background(), req)
	require.NoError(t, err)
	return id
}

func (e *testEnv) mustCreateResult(t *testing.T, userID string) int64 {
	t.Helper()
	id, err := e.results.Create(context.Background(), model.CreateResultRequest{
		UserID:      userID,
		Name:        "Test result",
		Description: "Hello World!",
	})
	require.NoError(t, err)
	return id
}

func (e *testEnv) mustCreateHabit(t *testing.T, resultID int64) int64 {
	t.Helper()
	id, err := e.habits.Create(context.Background(), model.CreateHabitRequest{
		ResultID: resultID,
		Name:     "Running",
		Color:    "#FABEBA",
	})
	require.NoError(t, err)
	return id
}

func ptr(s string) *string { return &s }
