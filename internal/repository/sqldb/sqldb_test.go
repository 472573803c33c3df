package sqldb

import (
	"context"
	"testing"

	"github.com/sakif/habitrack/internal/model"
)

// newTestDB opens a fresh in-memory SQLite database with the full schema.
// Each test gets its own database; t.Cleanup closes it.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), SQLite, ":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newUserModel(username, email string) *model.User {
	return &model.User{
		Username:     username,
		Email:        email,
		FirstName:    "Fake",
		LastName:     "User",
		PasswordHash: "$2a$04$abcdefghijklmnopqrstuuvwxyz0123456789ABCDEFGHIJKLMNOPQ",
		PasswordSalt: "abcdefghijklmnopqrstuu",
	}
}

func createTestUser(t *testing.T, db *DB, username, email string) *model.User {
	t.Helper()
	u := newUserModel(username, email)
	if err := db.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

func createTestResult(t *testing.T, db *DB, userID, name string) *model.Result {
	t.Helper()
	r := &model.Result{UserID: userID, Name: name, Description: "Hello World!"}
	if err := db.Results().Create(context.Background(), r); err != nil {
		t.Fatalf("failed to create test result: %v", err)
	}
	return r
}

func createTestHabit(t *testing.T, db *DB, resultID int64) *model.Habit {
	t.Helper()
	h := &model.Habit{ResultID: resultID, Name: "Run", Color: "#FABEBA"}
	if err := db.Habits().Create(context.Background(), h); err != nil {
		t.Fatalf("failed to create test habit: %v", err)
	}
	return h
}

func createTestAction(t *testing.T, db *DB, habitID int64) *model.Action {
	t.Helper()
	a := &model.Action{HabitID: habitID, Name: "5k", Color: "#00FF00"}
	if err := db.Actions().Create(context.Background(), a); err != nil {
		t.Fatalf("failed to create test action: %v", err)
	}
	return a
}

// =========================================================================
// OPEN / MIGRATE
// =========================================================================

func TestOpen_MigrateIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	if err := db.migrate(context.Background()); err != nil {
		t.Fatalf("second migrate() error = %v", err)
	}
}

func TestOpen_UnknownDialect(t *testing.T) {
	if _, err := Open(context.Background(), Dialect("oracle"), "x"); err == nil {
		t.Fatal("Open() should reject an unknown dialect")
	}
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ":memory:?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"},
		{":memory:", ":memory:?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"},
		{"data/habitrack.db", "data/habitrack.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"},
		{"x.db?_pragma=foreign_keys(0)", "x.db?_pragma=foreign_keys(0)"},
	}
	for _, tt := range tests {
		if got := sqliteDSN(tt.in); got != tt.want {
			t.Errorf("sqliteDSN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	db := newTestDB(t)

	err := db.Results().Create(context.Background(), &model.Result{
		UserID: "3f2504e0-4f89-41d3-9a0c-0305e82c3301",
		Name:   "orphan",
	})
	if err == nil {
		t.Fatal("inserting a result for a missing user should violate the foreign key")
	}
}
