package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"meal-guide/internal/domain"
)

// MealPlanRepository define el contrato de persistencia para planes de
// comida semanales.
type MealPlanRepository interface {
	// Create inserta el plan y sus detalles en una transacción.
	Create(ctx context.Context, plan domain.MealPlan) error
	ListByFamily(ctx context.Context, familyID string) ([]domain.MealPlan, error)
}

// PgMealPlanRepository implementa MealPlanRepository usando pgxpool.
type PgMealPlanRepository struct {
	pool *pgxpool.Pool
}

func NewPgMealPlanRepository(pool *pgxpool.Pool) *PgMealPlanRepository {
	return &PgMealPlanRepository{pool: pool}
}

func (r *PgMealPlanRepository) Create(ctx context.Context, plan domain.MealPlan) error {
	const insertPlan = `
		INSERT INTO meal_plans (id, family_id, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	const insertDetail = `
		INSERT INTO meal_plan_details (id, meal_plan_id, meal_id, meal_time, weekday, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, insertPlan,
		plan.ID,
		plan.FamilyID,
		plan.StartDate,
		plan.EndDate,
		plan.CreatedAt,
		plan.UpdatedAt,
	); err != nil {
		return err
	}

	for _, detail := range plan.Details {
		if _, err := tx.Exec(ctx, insertDetail,
			detail.ID,
			plan.ID,
			detail.MealID,
			detail.MealTime,
			detail.Weekday,
			detail.CreatedAt,
			detail.UpdatedAt,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PgMealPlanRepository) ListByFamily(ctx context.Context, familyID string) ([]domain.MealPlan, error) {
	const planQuery = `
		SELECT id, family_id, start_date, end_date, created_at, updated_at
		FROM meal_plans
		WHERE family_id = $1
		ORDER BY start_date DESC
	`
	const detailQuery = `
		SELECT id, meal_plan_id, meal_id, meal_time, weekday, created_at, updated_at
		FROM meal_plan_details
		WHERE meal_plan_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, planQuery, familyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := []domain.MealPlan{}
	for rows.Next() {
		var p domain.MealPlan
		if err := rows.Scan(
			&p.ID,
			&p.FamilyID,
			&p.StartDate,
			&p.EndDate,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range plans {
		detailRows, err := r.pool.Query(ctx, detailQuery, plans[i].ID)
		if err != nil {
			return nil, err
		}
		details := []domain.MealPlanDetail{}
		for detailRows.Next() {
			var d domain.MealPlanDetail
			if err := detailRows.Scan(
				&d.ID,
				&d.MealPlanID,
				&d.MealID,
				&d.MealTime,
				&d.Weekday,
				&d.CreatedAt,
				&d.UpdatedAt,
			); err != nil {
				detailRows.Close()
				return nil, err
			}
			details = append(details, d)
		}
		detailRows.Close()
		if err := detailRows.Err(); err != nil {
			return nil, err
		}
		plans[i].Details = details
	}

	return plans, nil
}
