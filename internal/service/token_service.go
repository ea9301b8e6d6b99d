package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"meal-guide/internal/domain"
)

// Issuer fijo de app tokens; los tokens externos usan el issuer del tenant.
const appTokenIssuer = "urn:meal.guide:issuer"

// Los app tokens expiran a las 24 horas; no hay refresh ni revocación, el
// cliente descarta y vuelve a hacer login.
const appTokenTTL = 24 * time.Hour

// AppClaims son los claims tipados de un app token. Families es la foto de
// membresías al momento de emisión y no se actualiza hasta re-login.
type AppClaims struct {
	Email    string   `json:"email"`
	Families []string `json:"families,omitempty"`
	jwt.RegisteredClaims
}

// PrimaryFamily devuelve la familia que limita las escrituras del usuario:
// siempre la primera de la lista, aunque el token lleve varias.
func (c AppClaims) PrimaryFamily() string {
	if len(c.Families) == 0 {
		return ""
	}
	return c.Families[0]
}

var (
	ErrTokenInvalid = errors.New("app token invalid")
	ErrTokenExpired = errors.New("app token expired")
)

// TokenService emite y valida app tokens firmados con HMAC-SHA256.
type TokenService struct {
	secret   []byte
	audience string
	ttl      time.Duration
}

// NewTokenService falla si el secreto está vacío; es un error de
// configuración fatal, no un estado operable.
func NewTokenService(secret, audience string) (*TokenService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("token service: signing secret is required")
	}
	if strings.TrimSpace(audience) == "" {
		return nil, errors.New("token service: audience is required")
	}
	return &TokenService{
		secret:   []byte(secret),
		audience: audience,
		ttl:      appTokenTTL,
	}, nil
}

// Issue firma un token con sub=user id, email y la lista de familias.
func (s *TokenService) Issue(user domain.User, familyIDs []string) (string, error) {
	now := time.Now().UTC()
	claims := AppClaims{
		Email:    user.Email,
		Families: familyIDs,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    appTokenIssuer,
			Subject:   user.ID,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify valida firma, issuer, audience y expiración, y exige subject.
func (s *TokenService) Verify(tokenString string) (AppClaims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return AppClaims{}, ErrTokenInvalid
	}

	var claims AppClaims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(appTokenIssuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return AppClaims{}, ErrTokenExpired
		}
		return AppClaims{}, ErrTokenInvalid
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return AppClaims{}, ErrTokenInvalid
	}
	return claims, nil
}
