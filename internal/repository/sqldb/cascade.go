package sqldb

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Child-first delete statements. Each takes a single parameter (the parent id)
// and removes everything below the parent but not the parent itself. They must
// run inside the caller's transaction to be atomic with the parent delete.

var cascadeAction = []string{
	`DELETE FROM metrics WHERE action_id = ?`,
}

var cascadeHabit = []string{
	`DELETE FROM metrics WHERE action_id IN (SELECT id FROM actions WHERE habit_id = ?)`,
	`DELETE FROM actions WHERE habit_id = ?`,
}

var cascadeResult = []string{
	`DELETE FROM metrics WHERE action_id IN (
		SELECT a.id FROM actions a JOIN habits h ON h.id = a.habit_id WHERE h.result_id = ?)`,
	`DELETE FROM actions WHERE habit_id IN (SELECT id FROM habits WHERE result_id = ?)`,
	`DELETE FROM habits WHERE result_id = ?`,
}

var cascadeUser = []string{
	`DELETE FROM metrics WHERE action_id IN (
		SELECT a.id FROM actions a
		JOIN habits h ON h.id = a.habit_id
		JOIN results r ON r.id = h.result_id
		WHERE r.user_id = ?)`,
	`DELETE FROM actions WHERE habit_id IN (
		SELECT h.id FROM habits h JOIN results r ON r.id = h.result_id WHERE r.user_id = ?)`,
	`DELETE FROM habits WHERE result_id IN (SELECT id FROM results WHERE user_id = ?)`,
	`DELETE FROM results WHERE user_id = ?`,
}

func execAll(ctx context.Context, q sqlx.ExtContext, stmts []string, arg any) error {
	for _, stmt := range stmts {
		if _, err := q.ExecContext(ctx, q.Rebind(stmt), arg); err != nil {
			return err
		}
	}
	return nil
}
