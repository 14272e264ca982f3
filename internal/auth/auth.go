package auth

import (
	"context"
	"errors"
)

var (
	// ErrInvalidCredentials is returned when the provider rejects an email/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned for malformed, expired or foreign access tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrProviderUnavailable wraps transport or 5xx failures talking to the provider.
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)

// Claims are the verified claims of a provider access token.
type Claims struct {
	Subject string
	Email   string
	Role    string
}

// Identity is the provider-side user returned on sign in.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is an issued provider session.
type Session struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int      `json:"expires_in"`
	User         Identity `json:"user"`
}

// Provider is the third-party identity service. Passwords and sessions are owned by it.
type Provider interface {
	// SignIn exchanges an email/password pair for a session.
	SignIn(ctx context.Context, email, password string) (*Session, error)
	// SignOut revokes the session that issued accessToken.
	SignOut(ctx context.Context, accessToken string) error
	// UpdatePassword sets a new password for the provider user, with admin privileges.
	UpdatePassword(ctx context.Context, providerUserID, password string) error
	// VerifyToken validates an access token and returns its claims.
	VerifyToken(ctx context.Context, token string) (*Claims, error)
}

// Principal represents the authenticated backoffice caller.
type Principal struct {
	UserID     string
	ProviderID string
	Email      string
	Role       string
	IPAddress  string
}

// HasRole reports whether the principal holds one of roles.
func (p *Principal) HasRole(roles ...string) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

type principalKey struct{}

// WithPrincipal stores the principal in context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext retrieves the principal from context (if any).
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok
}
