package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"sitecms/internal/config"
)

// GoTrue talks to a GoTrue-compatible identity API (the auth service behind
// hosted Postgres platforms). Token verification happens locally.
type GoTrue struct {
	*TokenVerifier
	baseURL        string
	anonKey        string
	serviceRoleKey string
	client         *http.Client
}

var _ Provider = (*GoTrue)(nil)

// NewGoTrue creates a provider client from configuration.
func NewGoTrue(cfg config.AuthConfig) (*GoTrue, error) {
	if cfg.ProviderURL == "" {
		return nil, fmt.Errorf("auth provider url is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("auth jwt secret is required")
	}
	return &GoTrue{
		TokenVerifier:  NewTokenVerifier(cfg.JWTSecret, cfg.Audience),
		baseURL:        cfg.ProviderURL,
		anonKey:        cfg.AnonKey,
		serviceRoleKey: cfg.ServiceRoleKey,
		client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

// SignIn uses the password grant.
func (g *GoTrue) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	var sess Session
	status, err := g.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", g.anonKey, body, &sess)
	if err != nil {
		return nil, err
	}
	if status == http.StatusBadRequest || status == http.StatusUnauthorized {
		return nil, ErrInvalidCredentials
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: sign in returned %d", ErrProviderUnavailable, status)
	}
	return &sess, nil
}

// SignOut revokes the caller's session. An already invalid token counts as signed out.
func (g *GoTrue) SignOut(ctx context.Context, accessToken string) error {
	status, err := g.do(ctx, http.MethodPost, "/auth/v1/logout", accessToken, nil, nil)
	if err != nil {
		return err
	}
	switch status {
	case http.StatusOK, http.StatusNoContent, http.StatusUnauthorized, http.StatusNotFound:
		return nil
	default:
		return fmt.Errorf("%w: logout returned %d", ErrProviderUnavailable, status)
	}
}

// UpdatePassword changes a user's password with the service role key.
func (g *GoTrue) UpdatePassword(ctx context.Context, providerUserID, password string) error {
	if g.serviceRoleKey == "" {
		return fmt.Errorf("auth service role key is required to update passwords")
	}
	path := "/auth/v1/admin/users/" + url.PathEscape(providerUserID)
	status, err := g.do(ctx, http.MethodPut, path, g.serviceRoleKey, map[string]string{"password": password}, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: update password returned %d", ErrProviderUnavailable, status)
	}
	return nil
}

// do sends a JSON request and decodes a 200 response into out. Non-2xx statuses are returned, not errors.
func (g *GoTrue) do(ctx context.Context, method, path, bearer string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.anonKey != "" {
		req.Header.Set("apikey", g.anonKey)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK && out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return 0, fmt.Errorf("decode response: %w", err)
		}
	} else {
		_, _ = io.Copy(io.Discard, resp.Body)
	}
	return resp.StatusCode, nil
}
