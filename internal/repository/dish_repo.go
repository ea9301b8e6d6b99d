package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"meal-guide/internal/domain"
)

// DishRepository define el contrato de persistencia para platos.
type DishRepository interface {
	Create(ctx context.Context, dish domain.Dish) error
	GetByID(ctx context.Context, id string) (domain.Dish, error)
	ListByFamily(ctx context.Context, familyID string) ([]domain.Dish, error)
}

// PgDishRepository implementa DishRepository usando pgxpool.
type PgDishRepository struct {
	pool *pgxpool.Pool
}

func NewPgDishRepository(pool *pgxpool.Pool) *PgDishRepository {
	return &PgDishRepository{pool: pool}
}

// Create inserta un plato; el índice único sobre (lower(name), family_id)
// rechaza nombres duplicados dentro de la familia.
func (r *PgDishRepository) Create(ctx context.Context, dish domain.Dish) error {
	const query = `
		INSERT INTO dishes (id, name, description, family_id, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		dish.ID,
		dish.Name,
		dish.Description,
		dish.FamilyID,
		dish.CreatedBy,
		dish.CreatedAt,
		dish.UpdatedAt,
	)
	return err
}

func (r *PgDishRepository) GetByID(ctx context.Context, id string) (domain.Dish, error) {
	const query = `
		SELECT id, name, COALESCE(description, ''), family_id, created_by, created_at, updated_at, deleted_at
		FROM dishes
		WHERE id = $1 AND deleted_at IS NULL
	`
	var d domain.Dish
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&d.ID,
		&d.Name,
		&d.Description,
		&d.FamilyID,
		&d.CreatedBy,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.DeletedAt,
	)
	return d, err
}

func (r *PgDishRepository) ListByFamily(ctx context.Context, familyID string) ([]domain.Dish, error) {
	const query = `
		SELECT id, name, COALESCE(description, ''), family_id, created_by, created_at, updated_at, deleted_at
		FROM dishes
		WHERE family_id = $1 AND deleted_at IS NULL
		ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, familyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dishes := []domain.Dish{}
	for rows.Next() {
		var d domain.Dish
		if err := rows.Scan(
			&d.ID,
			&d.Name,
			&d.Description,
			&d.FamilyID,
			&d.CreatedBy,
			&d.CreatedAt,
			&d.UpdatedAt,
			&d.DeletedAt,
		); err != nil {
			return nil, err
		}
		dishes = append(dishes, d)
	}
	return dishes, rows.Err()
}
