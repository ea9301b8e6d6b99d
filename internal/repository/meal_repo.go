package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"meal-guide/internal/domain"
)

// MealRepository define el contrato de persistencia para comidas.
type MealRepository interface {
	// Create inserta la comida y sus vínculos a platos en una transacción.
	Create(ctx context.Context, meal domain.Meal) error
	GetByID(ctx context.Context, id string) (domain.Meal, error)
	ListByFamily(ctx context.Context, familyID string) ([]domain.Meal, error)
}

// PgMealRepository implementa MealRepository usando pgxpool.
type PgMealRepository struct {
	pool *pgxpool.Pool
}

func NewPgMealRepository(pool *pgxpool.Pool) *PgMealRepository {
	return &PgMealRepository{pool: pool}
}

func (r *PgMealRepository) Create(ctx context.Context, meal domain.Meal) error {
	const insertMeal = `
		INSERT INTO meals (id, name, meal_time, family_id, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	const insertMealDish = `
		INSERT INTO meal_dishes (id, meal_id, dish_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, insertMeal,
		meal.ID,
		meal.Name,
		meal.MealTime,
		meal.FamilyID,
		meal.CreatedBy,
		meal.CreatedAt,
		meal.UpdatedAt,
	); err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, dishID := range meal.DishIDs {
		if _, err := tx.Exec(ctx, insertMealDish,
			uuid.NewString(),
			meal.ID,
			dishID,
			now,
			now,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PgMealRepository) GetByID(ctx context.Context, id string) (domain.Meal, error) {
	const query = `
		SELECT id, name, meal_time, family_id, created_by, created_at, updated_at, deleted_at
		FROM meals
		WHERE id = $1 AND deleted_at IS NULL
	`
	var m domain.Meal
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID,
		&m.Name,
		&m.MealTime,
		&m.FamilyID,
		&m.CreatedBy,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.DeletedAt,
	)
	if err != nil {
		return domain.Meal{}, err
	}
	m.DishIDs, err = r.listDishIDs(ctx, m.ID)
	return m, err
}

func (r *PgMealRepository) ListByFamily(ctx context.Context, familyID string) ([]domain.Meal, error) {
	const query = `
		SELECT id, name, meal_time, family_id, created_by, created_at, updated_at, deleted_at
		FROM meals
		WHERE family_id = $1 AND deleted_at IS NULL
		ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, familyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meals := []domain.Meal{}
	for rows.Next() {
		var m domain.Meal
		if err := rows.Scan(
			&m.ID,
			&m.Name,
			&m.MealTime,
			&m.FamilyID,
			&m.CreatedBy,
			&m.CreatedAt,
			&m.UpdatedAt,
			&m.DeletedAt,
		); err != nil {
			return nil, err
		}
		meals = append(meals, m)
	}
	return meals, rows.Err()
}

func (r *PgMealRepository) listDishIDs(ctx context.Context, mealID string) ([]string, error) {
	const query = `
		SELECT dish_id
		FROM meal_dishes
		WHERE meal_id = $1
		ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, mealID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
