package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"meal-guide/internal/domain"
	"meal-guide/internal/repository"
)

var (
	ErrFamilyNameRequired = errors.New("family name required")
)

// FamilyService coordina reglas de negocio para familias.
type FamilyService struct {
	logger   *zap.Logger
	families repository.FamilyRepository
}

func NewFamilyService(logger *zap.Logger, families repository.FamilyRepository) *FamilyService {
	return &FamilyService{logger: logger, families: families}
}

// CreateFamily crea la familia con headUserID como head y miembro, más los
// miembros adicionales indicados.
func (s *FamilyService) CreateFamily(ctx context.Context, name, headUserID string, memberIDs []string) (domain.Family, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Family{}, ErrFamilyNameRequired
	}

	now := time.Now().UTC()
	family := domain.Family{
		ID:           uuid.NewString(),
		Name:         name,
		HeadOfFamily: headUserID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.families.CreateWithHead(ctx, family)
	if err != nil {
		return domain.Family{}, err
	}

	// Miembros extra fuera de la transacción; una falla deja la familia
	// creada con el head como único miembro, que es un estado usable.
	for _, memberID := range memberIDs {
		memberID = strings.TrimSpace(memberID)
		if memberID == "" || memberID == headUserID {
			continue
		}
		if _, err := s.families.AddMember(ctx, created.ID, memberID); err != nil {
			s.logger.Warn("add family member failed",
				zap.String("family_id", created.ID),
				zap.String("user_id", memberID),
				zap.Error(err),
			)
		}
	}

	return created, nil
}

// FamilyIDs devuelve los ids de familia del usuario en orden de inserción.
func (s *FamilyService) FamilyIDs(ctx context.Context, userID string) ([]string, error) {
	return s.families.ListIDsByUser(ctx, userID)
}
