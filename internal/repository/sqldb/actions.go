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

var _ repository.ActionRepository = actionRepo{}

const actionColumns = `id, habit_id, name, color, created_at, updated_at`

type actionRepo struct {
	q sqlx.ExtContext
}

func (r actionRepo) Create(ctx context.Context, action *model.Action) error {
	now := time.Now().UTC()
	action.CreatedAt = now
	action.UpdatedAt = now

	err := sqlx.GetContext(ctx, r.q, &action.ID, r.q.Rebind(
		`INSERT INTO actions (habit_id, name, color, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING id`),
		action.HabitID,
		action.Name,
		action.Color,
		action.CreatedAt,
		action.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqldb: creating action: %w", err)
	}
	return nil
}

func (r actionRepo) GetByID(ctx context.Context, id int64) (*model.Action, error) {
	var a model.Action
	err := sqlx.GetContext(ctx, r.q, &a, r.q.Rebind(
		`SELECT `+actionColumns+` FROM actions WHERE id = ?`), id)
	if err != nil {
		return nil, getErr(err, apperror.ResourceAction, fmt.Sprintf("getting action %d", id))
	}
	return &a, nil
}

func (r actionRepo) ListByHabit(ctx context.Context, habitID int64) ([]model.Action, error) {
	actions := []model.Action{}
	err := sqlx.SelectContext(ctx, r.q, &actions, r.q.Rebind(
		`SELECT `+actionColumns+` FROM actions WHERE habit_id = ? ORDER BY id`), habitID)
	if err != nil {
		return nil, fmt.Errorf("sqldb: listing actions of habit %d: %w", habitID, err)
	}
	return actions, nil
}

func (r actionRepo) Update(ctx context.Context, action *model.Action) error {
	action.UpdatedAt = time.Now().UTC()

	res, err := r.q.ExecContext(ctx, r.q.Rebind(
		`UPDATE actions SET name = ?, color = ?, updated_at = ? WHERE id = ?`),
		action.Name,
		action.Color,
		action.UpdatedAt,
		action.ID,
	)
	if err != nil {
		return fmt.Errorf("sqldb: updating action %d: %w", action.ID, err)
	}
	return mustAffect(res, apperror.ResourceAction, fmt.Sprintf("updating action %d", action.ID))
}

func (r actionRepo) Delete(ctx context.Context, id int64) error {
	if err := execAll(ctx, r.q, cascadeAction, id); err != nil {
		return fmt.Errorf("sqldb: deleting metrics of action %d: %w", id, err)
	}
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM actions WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("sqldb: deleting action %d: %w", id, err)
	}
	return mustAffect(res, apperror.ResourceAction, fmt.Sprintf("deleting action %d", id))
}
