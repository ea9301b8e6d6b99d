package auth0

import "strings"

// Los endpoints del proveedor de identidad se derivan del dominio del tenant.
func normalizeDomain(domain string) string {
	d := strings.TrimSpace(domain)
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")
	return strings.TrimRight(d, "/")
}

// JWKSURL devuelve el endpoint well-known del key set del tenant.
func JWKSURL(domain string) string {
	return "https://" + normalizeDomain(domain) + "/.well-known/jwks.json"
}

// IssuerURL devuelve el issuer esperado en tokens del tenant. Auth0 emite
// issuer con slash final.
func IssuerURL(domain string) string {
	return "https://" + normalizeDomain(domain) + "/"
}

// BaseURL devuelve la URL base para llamadas API al tenant (userinfo).
func BaseURL(domain string) string {
	return "https://" + normalizeDomain(domain)
}
