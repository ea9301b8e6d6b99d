package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"meal-guide/internal/domain"
)

// FamilyRepository define el contrato de persistencia para familias y
// membresías.
type FamilyRepository interface {
	// CreateWithHead inserta la familia y la membresía del head en una
	// transacción, para no dejar familias sin miembros ante fallas parciales.
	CreateWithHead(ctx context.Context, family domain.Family) (domain.Family, error)
	GetByID(ctx context.Context, id string) (domain.Family, error)
	AddMember(ctx context.Context, familyID, userID string) (domain.FamilyMember, error)
	ListIDsByUser(ctx context.Context, userID string) ([]string, error)
}

// PgFamilyRepository implementa FamilyRepository usando pgxpool.
type PgFamilyRepository struct {
	pool *pgxpool.Pool
}

func NewPgFamilyRepository(pool *pgxpool.Pool) *PgFamilyRepository {
	return &PgFamilyRepository{pool: pool}
}

func (r *PgFamilyRepository) CreateWithHead(ctx context.Context, family domain.Family) (domain.Family, error) {
	const insertFamily = `
		INSERT INTO families (id, name, head_of_family, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	const insertMember = `
		INSERT INTO family_members (id, family_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Family{}, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, insertFamily,
		family.ID,
		family.Name,
		family.HeadOfFamily,
		family.CreatedAt,
		family.UpdatedAt,
	); err != nil {
		return domain.Family{}, err
	}

	now := time.Now().UTC()
	if _, err := tx.Exec(ctx, insertMember,
		uuid.NewString(),
		family.ID,
		family.HeadOfFamily,
		now,
		now,
	); err != nil {
		return domain.Family{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Family{}, err
	}
	return family, nil
}

func (r *PgFamilyRepository) GetByID(ctx context.Context, id string) (domain.Family, error) {
	const query = `
		SELECT id, name, head_of_family, created_at, updated_at, deleted_at
		FROM families
		WHERE id = $1 AND deleted_at IS NULL
	`
	var f domain.Family
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&f.ID,
		&f.Name,
		&f.HeadOfFamily,
		&f.CreatedAt,
		&f.UpdatedAt,
		&f.DeletedAt,
	)
	return f, err
}

func (r *PgFamilyRepository) AddMember(ctx context.Context, familyID, userID string) (domain.FamilyMember, error) {
	const query = `
		INSERT INTO family_members (id, family_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	now := time.Now().UTC()
	member := domain.FamilyMember{
		ID:        uuid.NewString(),
		FamilyID:  familyID,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := r.pool.Exec(ctx, query,
		member.ID,
		member.FamilyID,
		member.UserID,
		member.CreatedAt,
		member.UpdatedAt,
	)
	if err != nil {
		return domain.FamilyMember{}, err
	}
	return member, nil
}

// ListIDsByUser devuelve los ids de familia en orden de inserción; la
// primera es la familia primaria del usuario.
func (r *PgFamilyRepository) ListIDsByUser(ctx context.Context, userID string) ([]string, error) {
	const query = `
		SELECT family_id
		FROM family_members
		WHERE user_id = $1
		ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, userID)
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
