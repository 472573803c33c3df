package sqldb

// Schema statements, run in order by migrate. Every statement is idempotent.
//
// The partial unique indexes on users are the authoritative uniqueness guard:
// two concurrent signups can both pass the application-level check, but only
// one insert survives the index.

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL,
		email         TEXT NOT NULL,
		first_name    TEXT NOT NULL,
		last_name     TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		password_salt TEXT NOT NULL DEFAULT '',
		created_at    DATETIME NOT NULL,
		updated_at    DATETIME NOT NULL,
		deleted_at    DATETIME
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_username_live_idx ON users(username) WHERE deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_live_idx ON users(email) WHERE deleted_at IS NULL`,
	`CREATE TABLE IF NOT EXISTS results (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id     TEXT NOT NULL REFERENCES users(id),
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  DATETIME NOT NULL,
		updated_at  DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS results_user_id_idx ON results(user_id)`,
	`CREATE TABLE IF NOT EXISTS habits (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		result_id   INTEGER NOT NULL REFERENCES results(id),
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		color       TEXT NOT NULL,
		created_at  DATETIME NOT NULL,
		updated_at  DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS habits_result_id_idx ON habits(result_id)`,
	`CREATE TABLE IF NOT EXISTS actions (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		habit_id   INTEGER NOT NULL REFERENCES habits(id),
		name       TEXT NOT NULL,
		color      TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS actions_habit_id_idx ON actions(habit_id)`,
	// Legacy table kept for schema compatibility; no API writes to it.
	`CREATE TABLE IF NOT EXISTS metrics (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		action_id INTEGER NOT NULL REFERENCES actions(id),
		name      TEXT NOT NULL
	)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      VARCHAR(20) NOT NULL,
		email         VARCHAR(255) NOT NULL,
		first_name    VARCHAR(64) NOT NULL,
		last_name     VARCHAR(64) NOT NULL,
		password_hash TEXT NOT NULL,
		password_salt TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL,
		deleted_at    TIMESTAMPTZ
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_username_live_idx ON users(username) WHERE deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_live_idx ON users(email) WHERE deleted_at IS NULL`,
	`CREATE TABLE IF NOT EXISTS results (
		id          BIGSERIAL PRIMARY KEY,
		user_id     TEXT NOT NULL REFERENCES users(id),
		name        VARCHAR(100) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS results_user_id_idx ON results(user_id)`,
	`CREATE TABLE IF NOT EXISTS habits (
		id          BIGSERIAL PRIMARY KEY,
		result_id   BIGINT NOT NULL REFERENCES results(id),
		name        VARCHAR(100) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		color       VARCHAR(7) NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS habits_result_id_idx ON habits(result_id)`,
	`CREATE TABLE IF NOT EXISTS actions (
		id         BIGSERIAL PRIMARY KEY,
		habit_id   BIGINT NOT NULL REFERENCES habits(id),
		name       VARCHAR(32) NOT NULL,
		color      VARCHAR(7) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS actions_habit_id_idx ON actions(habit_id)`,
	`CREATE TABLE IF NOT EXISTS metrics (
		id        BIGSERIAL PRIMARY KEY,
		action_id BIGINT NOT NULL REFERENCES actions(id),
		name      VARCHAR(100) NOT NULL
	)`,
}

func schema(d Dialect) []string {
	if d == Postgres {
		return postgresSchema
	}
	return sqliteSchema
}
