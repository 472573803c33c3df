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

var _ repository.HabitRepository = habitRepo{}

const habitColumns = `id, result_id, name, description, color, created_at, updated_at`

type habitRepo struct {
	q sqlx.ExtContext
}

func (r habitRepo) Create(ctx context.Context, habit *model.Habit) error {
	now := time.Now().UTC()
	habit.CreatedAt = now
	habit.UpdatedAt = now

	err := sqlx.GetContext(ctx, r.q, &habit.ID, r.q.Rebind(
		`INSERT INTO habits (result_id, name, description, color, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 RETURNING id`),
		habit.ResultID,
		habit.Name,
		habit.Description,
		habit.Color,
		habit.CreatedAt,
		habit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqldb: creating habit: %w", err)
	}
	return nil
}

func (r habitRepo) GetByID(ctx context.Context, id int64) (*model.Habit, error) {
	var h model.Habit
	err := sqlx.GetContext(ctx, r.q, &h, r.q.Rebind(
		`SELECT `+habitColumns+` FROM habits WHERE id = ?`), id)
	if err != nil {
		return nil, getErr(err, apperror.ResourceHabit, fmt.Sprintf("getting habit %d", id))
	}
	return &h, nil
}

func (r habitRepo) ListByResult(ctx context.Context, resultID int64) ([]model.Habit, error) {
	habits := []model.Habit{}
	err := sqlx.SelectContext(ctx, r.q, &habits, r.q.Rebind(
		`SELECT `+habitColumns+` FROM habits WHERE result_id = ? ORDER BY id`), resultID)
	if err != nil {
		return nil, fmt.Errorf("sqldb: listing habits of result %d: %w", resultID, err)
	}
	return habits, nil
}

func (r habitRepo) Update(ctx context.Context, habit *model.Habit) error {
	habit.UpdatedAt = time.Now().UTC()

	res, err := r.q.ExecContext(ctx, r.q.Rebind(
		`UPDATE habits SET name = ?, description = ?, color = ?, updated_at = ? WHERE id = ?`),
		habit.Name,
		habit.Description,
		habit.Color,
		habit.UpdatedAt,
		habit.ID,
	)
	if err != nil {
		return fmt.Errorf("sqldb: updating habit %d: %w", habit.ID, err)
	}
	return mustAffect(res, apperror.ResourceHabit, fmt.Sprintf("updating habit %d", habit.ID))
}

func (r habitRepo) Delete(ctx context.Context, id int64) error {
	if err := execAll(ctx, r.q, cascadeHabit, id); err != nil {
		return fmt.Errorf("sqldb: deleting children of habit %d: %w", id, err)
	}
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM habits WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("sqldb: deleting habit %d: %w", id, err)
	}
	return mustAffect(res, apperror.ResourceHabit, fmt.Sprintf("deleting habit %d", id))
}
