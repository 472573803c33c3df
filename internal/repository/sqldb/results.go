package sqldb

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sakif/habitrack/internal/apperror"
	"github.com/sakif/habitrack/internal/model"
	"github.com/sakif/habitrack/internal/repository"
)

var _ repository.ResultRepository = resultRepo{}

const resultColumns = `id, user_id, name, description, created_at, updated_at`

type resultRepo struct {
	q sqlx.ExtContext
}

func (r resultRepo) Create(ctx context.Context, result *model.Result) error {
	now := time.Now().UTC()
	result.CreatedAt = now
	result.UpdatedAt = now

	err := sqlx.GetContext(ctx, r.q, &result.ID, r.q.Rebind(
		`INSERT INTO results (user_id, name, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING id`),
		result.UserID,
		result.Name,
		result.Description,
		result.CreatedAt,
		result.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqldb: creating result: %w", err)
	}
	return nil
}

func (r resultRepo) GetByID(ctx context.Context, id int64) (*model.Result, error) {
	var res model.Result
	err := sqlx.GetContext(ctx, r.q, &res, r.q.Rebind(
		`SELECT `+resultColumns+` FROM results WHERE id = ?`), id)
	if err != nil {
		return nil, getErr(err, apperror.ResourceResult, fmt.Sprintf("getting result %d", id))
	}
	return &res, nil
}

func (r resultRepo) ListByUser(ctx context.Context, userID string) ([]model.Result, error) {
	results := []model.Result{}
	err := sqlx.SelectContext(ctx, r.q, &results, r.q.Rebind(
		`SELECT `+resultColumns+` FROM results WHERE user_id = ? ORDER BY id`), userID)
	if err != nil {
		return nil, fmt.Errorf("sqldb: listing results of user %s: %w", userID, err)
	}
	return results, nil
}

func (r resultRepo) Update(ctx context.Context, result *model.Result) error {
	result.UpdatedAt = time.Now().UTC()

	res, err := r.q.ExecContext(ctx, r.q.Rebind(
		`UPDATE results SET name = ?, description = ?, updated_at = ? WHERE id = ?`),
		result.Name,
		result.Description,
		result.UpdatedAt,
		result.ID,
	)
	if err != nil {
		return fmt.Errorf("sqldb: updating result %d: %w", result.ID, err)
	}
	return mustAffect(res, apperror.ResourceResult, fmt.Sprintf("updating result %d", result.ID))
}

func (r resultRepo) Delete(ctx context.Context, id int64) error {
	if err := execAll(ctx, r.q, cascadeResult, id); err != nil {
		return fmt.Errorf("sqldb: deleting children of result %d: %w", id, err)
	}
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM results WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("sqldb: deleting result %d: %w", id, err)
	}
	return mustAffect(res, apperror.ResourceResult, fmt.Sprintf("deleting result %d", id))
}

func (r resultRepo) DeleteByUser(ctx context.Context, userID string) error {
	if err := execAll(ctx, r.q, cascadeUser, userID); err != nil {
		return fmt.Errorf("sqldb: deleting results of user %s: %w", userID, err)
	}
	return nil
}
