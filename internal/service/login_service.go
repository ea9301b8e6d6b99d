package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"meal-guide/internal/auth0"
	"meal-guide/internal/domain"
	"meal-guide/internal/email"
	"meal-guide/internal/repository"
)

var ErrRateLimited = errors.New("rate limited")

// LoginService intercambia un access token del proveedor de identidad por
// un app token propio: verificar token externo, resolver o crear el usuario
// por email, juntar membresías y emitir.
type LoginService struct {
	logger      *zap.Logger
	verifier    auth0.TokenVerifier
	userinfo    auth0.UserInfoClient
	users       repository.UserRepository
	families    repository.FamilyRepository
	tokens      *TokenService
	emailSender email.Sender
	limiter     LoginRateLimiter
}

func NewLoginService(
	logger *zap.Logger,
	verifier auth0.TokenVerifier,
	userinfo auth0.UserInfoClient,
	users repository.UserRepository,
	families repository.FamilyRepository,
	tokens *TokenService,
	emailSender email.Sender,
	limiter LoginRateLimiter,
) *LoginService {
	if limiter == nil {
		limiter = NewLoginRateLimiter(time.Minute, 10)
	}
	return &LoginService{
		logger:      logger,
		verifier:    verifier,
		userinfo:    userinfo,
		users:       users,
		families:    families,
		tokens:      tokens,
		emailSender: emailSender,
		limiter:     limiter,
	}
}

// LoginResult es el resultado de un intercambio de tokens exitoso.
type LoginResult struct {
	IsNew       bool
	User        domain.User
	AccessToken string
	FamilyIDs   []string
}

// Login ejecuta el flujo completo de intercambio. Las fallas de verificación
// salen como auth0.ErrTokenInvalid, las del userinfo como auth0.ErrUpstream.
func (s *LoginService) Login(ctx context.Context, externalToken string) (LoginResult, error) {
	claims, err := s.verifier.Verify(externalToken)
	if err != nil {
		return LoginResult{}, err
	}
	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return LoginResult{}, fmt.Errorf("%w: missing subject", auth0.ErrTokenInvalid)
	}

	if !s.limiter.Allow(subject) {
		return LoginResult{}, ErrRateLimited
	}

	profile, err := s.userinfo.UserInfo(ctx, externalToken)
	if err != nil {
		return LoginResult{}, err
	}

	user, isNew, err := s.findOrCreateUser(ctx, profile.Email)
	if err != nil {
		return LoginResult{}, err
	}

	// Las membresías sólo se consultan para usuarios existentes; un usuario
	// recién creado no puede tener filas en family_members.
	familyIDs := []string{}
	if !isNew {
		familyIDs, err = s.families.ListIDsByUser(ctx, user.ID)
		if err != nil {
			return LoginResult{}, err
		}
	}

	accessToken, err := s.tokens.Issue(user, familyIDs)
	if err != nil {
		return LoginResult{}, err
	}

	if isNew && s.emailSender != nil {
		if err := s.emailSender.SendWelcome(ctx, user.Email); err != nil {
			s.logger.Warn("welcome email failed", zap.String("email", user.Email), zap.Error(err))
		}
	}

	return LoginResult{
		IsNew:       isNew,
		User:        user,
		AccessToken: accessToken,
		FamilyIDs:   familyIDs,
	}, nil
}

// Validate verifica un app token y devuelve sus claims.
func (s *LoginService) Validate(token string) (AppClaims, error) {
	return s.tokens.Verify(token)
}

// findOrCreateUser busca por email exacto y crea la fila si no existe. Dos
// logins concurrentes del mismo email nuevo compiten en el insert; el
// perdedor cae a la lectura gracias al índice único sobre email.
func (s *LoginService) findOrCreateUser(ctx context.Context, emailAddr string) (domain.User, bool, error) {
	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, false, err
	}

	now := time.Now().UTC()
	user = domain.User{
		ID:        uuid.NewString(),
		Email:     emailAddr,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			existing, readErr := s.users.GetByEmail(ctx, emailAddr)
			if readErr != nil {
				return domain.User{}, false, readErr
			}
			return existing, false, nil
		}
		return domain.User{}, false, err
	}
	return user, true, nil
}
