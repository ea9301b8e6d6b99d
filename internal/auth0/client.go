package auth0

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrUpstream indica que el proveedor de identidad no respondió correctamente.
var ErrUpstream = errors.New("identity provider unavailable")

// Profile son los datos de perfil devueltos por el endpoint userinfo.
type Profile struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	Name          string `json:"name,omitempty"`
	EmailVerified bool   `json:"email_verified,omitempty"`
}

// UserInfoClient obtiene el perfil del usuario detrás de un access token.
type UserInfoClient interface {
	UserInfo(ctx context.Context, accessToken string) (Profile, error)
}

// Client implementa UserInfoClient contra la API del tenant.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient construye un cliente apuntando a la URL base del tenant.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// UserInfo llama GET /userinfo presentando el access token del usuario.
func (c *Client) UserInfo(ctx context.Context, accessToken string) (Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/userinfo", nil)
	if err != nil {
		return Profile{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return Profile{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Profile{}, fmt.Errorf("%w: read response: %w", ErrUpstream, err)
	}

	if resp.StatusCode >= 400 {
		return Profile{}, fmt.Errorf("%w: userinfo status=%d", ErrUpstream, resp.StatusCode)
	}

	var profile Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		return Profile{}, fmt.Errorf("%w: unmarshal userinfo: %w", ErrUpstream, err)
	}
	if profile.Email == "" {
		return Profile{}, fmt.Errorf("%w: userinfo without email", ErrUpstream)
	}
	return profile, nil
}
