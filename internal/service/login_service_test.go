package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"meal-guide/internal/auth0"
	"meal-guide/internal/domain"
)

func newLoginService(t *testing.T, verifier stubVerifier, userinfo stubUserInfo, users *mockUserRepo, families *mockFamilyRepo, sender *mockEmailSender, limiter LoginRateLimiter) *LoginService {
	t.Helper()
	tokens := newTestTokenService(t)
	if limiter == nil {
		limiter = allowAllLimiter{}
	}
	return NewLoginService(zap.NewNop(), verifier, userinfo, users, families, tokens, sender, limiter)
}

func validStubVerifier() stubVerifier {
	return stubVerifier{claims: jwt.MapClaims{"sub": "auth0|abc123"}}
}

func TestLoginService_FirstLoginCreatesUser(t *testing.T) {
	users := newMockUserRepo()
	families := newMockFamilyRepo()
	sender := &mockEmailSender{}
	svc := newLoginService(t, validStubVerifier(), stubUserInfo{profile: auth0.Profile{Sub: "auth0|abc123", Email: "new@example.com"}}, users, families, sender, nil)

	result, err := svc.Login(context.Background(), "external-token")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !result.IsNew {
		t.Fatalf("expected is_new for first login")
	}
	if result.User.Email != "new@example.com" || result.User.ID == "" {
		t.Fatalf("unexpected user: %+v", result.User)
	}
	if result.AccessToken == "" {
		t.Fatalf("expected access token")
	}
	if len(result.FamilyIDs) != 0 {
		t.Fatalf("expected no families for new user, got %v", result.FamilyIDs)
	}
	if sender.calls != 1 || sender.lastTo != "new@example.com" {
		t.Fatalf("expected welcome email, got %d calls to %q", sender.calls, sender.lastTo)
	}
}

func TestLoginService_SecondLoginIsIdempotent(t *testing.T) {
	users := newMockUserRepo()
	families := newMockFamilyRepo()
	svc := newLoginService(t, validStubVerifier(), stubUserInfo{profile: auth0.Profile{Sub: "auth0|abc123", Email: "new@example.com"}}, users, families, &mockEmailSender{}, nil)

	first, err := svc.Login(context.Background(), "external-token")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	second, err := svc.Login(context.Background(), "external-token")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if second.IsNew {
		t.Fatalf("expected is_new false on second login")
	}
	if second.User.ID != first.User.ID {
		t.Fatalf("expected same user id, got %q and %q", first.User.ID, second.User.ID)
	}
	if users.createCalls != 1 {
		t.Fatalf("expected exactly one user creation, got %d", users.createCalls)
	}
}

func TestLoginService_ExistingUserGetsFamilies(t *testing.T) {
	users := newMockUserRepo()
	existing := domain.User{ID: "u1", Email: "user@example.com"}
	users.usersByID["u1"] = existing
	users.usersByEmail["user@example.com"] = "u1"
	families := newMockFamilyRepo()
	families.idsByUser["u1"] = []string{"f1", "f2"}

	svc := newLoginService(t, validStubVerifier(), stubUserInfo{profile: auth0.Profile{Sub: "auth0|abc123", Email: "user@example.com"}}, users, families, &mockEmailSender{}, nil)

	result, err := svc.Login(context.Background(), "external-token")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.IsNew {
		t.Fatalf("expected existing user")
	}
	if len(result.FamilyIDs) != 2 || result.FamilyIDs[0] != "f1" {
		t.Fatalf("unexpected family ids: %v", result.FamilyIDs)
	}

	claims, err := svc.Validate(result.AccessToken)
	if err != nil {
		t.Fatalf("validate issued token: %v", err)
	}
	if claims.PrimaryFamily() != "f1" {
		t.Fatalf("expected primary family f1, got %q", claims.PrimaryFamily())
	}
}

func TestLoginService_RejectsInvalidExternalToken(t *testing.T) {
	svc := newLoginService(t, stubVerifier{err: auth0.ErrTokenInvalid}, stubUserInfo{}, newMockUserRepo(), newMockFamilyRepo(), &mockEmailSender{}, nil)

	if _, err := svc.Login(context.Background(), "bad-token"); !errors.Is(err, auth0.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestLoginService_RejectsTokenWithoutSubject(t *testing.T) {
	svc := newLoginService(t, stubVerifier{claims: jwt.MapClaims{}}, stubUserInfo{}, newMockUserRepo(), newMockFamilyRepo(), &mockEmailSender{}, nil)

	if _, err := svc.Login(context.Background(), "token"); !errors.Is(err, auth0.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for missing subject, got %v", err)
	}
}

func TestLoginService_SurfacesUpstreamFailure(t *testing.T) {
	svc := newLoginService(t, validStubVerifier(), stubUserInfo{err: auth0.ErrUpstream}, newMockUserRepo(), newMockFamilyRepo(), &mockEmailSender{}, nil)

	if _, err := svc.Login(context.Background(), "token"); !errors.Is(err, auth0.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestLoginService_RateLimited(t *testing.T) {
	svc := newLoginService(t, validStubVerifier(), stubUserInfo{}, newMockUserRepo(), newMockFamilyRepo(), &mockEmailSender{}, denyAllLimiter{})

	if _, err := svc.Login(context.Background(), "token"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestLoginService_UniqueViolationFallsBackToRead(t *testing.T) {
	users := newMockUserRepo()
	// Simula la carrera: entre la lectura y el insert, un login concurrente
	// crea la fila y el insert pierde con violación de unicidad.
	winner := domain.User{ID: "u-winner", Email: "race@example.com"}
	users.createErr = &pgconn.PgError{Code: "23505"}
	users.onCreate = func() {
		users.usersByID[winner.ID] = winner
		users.usersByEmail[winner.Email] = winner.ID
	}

	svc := newLoginService(t, validStubVerifier(), stubUserInfo{profile: auth0.Profile{Sub: "auth0|abc123", Email: "race@example.com"}}, users, newMockFamilyRepo(), &mockEmailSender{}, nil)

	result, err := svc.Login(context.Background(), "token")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.IsNew {
		t.Fatalf("expected is_new false when falling back to read")
	}
	if result.User.ID != "u-winner" {
		t.Fatalf("expected winner row, got %+v", result.User)
	}
}
