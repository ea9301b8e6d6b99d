package auth0

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenInvalid cubre firma, audience, issuer, expiración o formato.
	ErrTokenInvalid = errors.New("auth0 token invalid")
)

// TokenVerifier valida access tokens emitidos por el proveedor de identidad.
type TokenVerifier interface {
	Verify(token string) (jwt.MapClaims, error)
}

// Verifier implementa TokenVerifier contra el JWKS remoto del tenant.
// El key set se cachea y refresca en background; un kid desconocido fuerza
// un refresh inmediato para tolerar rotación de llaves.
type Verifier struct {
	jwks   *keyfunc.JWKS
	parser *jwt.Parser
}

// NewVerifier construye un Verifier para el dominio del tenant.
func NewVerifier(domain, audience string) (*Verifier, error) {
	return newVerifierWithURL(JWKSURL(domain), IssuerURL(domain), audience)
}

func newVerifierWithURL(jwksURL, issuer, audience string) (*Verifier, error) {
	if strings.TrimSpace(audience) == "" {
		return nil, fmt.Errorf("auth0 audience is required")
	}

	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch jwks: %w", err)
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)

	return &Verifier{jwks: jwks, parser: parser}, nil
}

// Verify valida firma, audience, issuer y expiración, y devuelve los claims
// decodificados.
func (v *Verifier) Verify(tokenString string) (jwt.MapClaims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrTokenInvalid
	}

	claims := jwt.MapClaims{}
	if _, err := v.parser.ParseWithClaims(tokenString, claims, v.jwks.Keyfunc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	return claims, nil
}

// Close detiene el refresco en background del JWKS.
func (v *Verifier) Close() {
	if v.jwks != nil {
		v.jwks.EndBackground()
	}
}
