package sqldb

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/sakif/habitrack/internal/apperror"
)

const pgUniqueViolation = "23505"

// uniqueViolation reports whether err is a unique-constraint failure and, if
// so, which users column it hit ("username", "email" or "").
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolation {
			return "", false
		}
		return uniqueColumn(pgErr.ConstraintName), true
	}

	// SQLite: "UNIQUE constraint failed: users.username"
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		if liteErr.Code()&0xff != sqlite3.SQLITE_CONSTRAINT ||
			!strings.Contains(liteErr.Error(), "UNIQUE constraint failed") {
			return "", false
		}
		return uniqueColumn(liteErr.Error()), true
	}

	return "", false
}

func uniqueColumn(s string) string {
	switch {
	case strings.Contains(s, "username"):
		return "username"
	case strings.Contains(s, "email"):
		return "email"
	}
	return ""
}

// userWriteErr maps a failed users INSERT/UPDATE to the same Conflict the
// application-level check produces, so a lost race looks identical to the
// client.
func userWriteErr(err error, op string) error {
	if field, ok := uniqueViolation(err); ok {
		switch field {
		case "username":
			return apperror.Conflict("username", apperror.MsgUsernameTaken)
		case "email":
			return apperror.Conflict("email", apperror.MsgEmailTaken)
		}
	}
	return fmt.Errorf("sqldb: %s: %w", op, err)
}

// getErr maps a single-row lookup failure.
func getErr(err error, resource, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.NotFound(resource)
	}
	return fmt.Errorf("sqldb: %s: %w", op, err)
}

// mustAffect turns a zero-row UPDATE/DELETE into NotFound.
func mustAffect(res sql.Result, resource, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqldb: %s: checking rows affected: %w", op, err)
	}
	if n == 0 {
		return apperror.NotFound(resource)
	}
	return nil
}
