package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"sitecms/internal/auth"
	"sitecms/internal/service"
)

const (
	// PrincipalLocalKey is the Fiber locals key holding the *auth.Principal.
	PrincipalLocalKey = "principal"
	// AccessTokenCookie is accepted when no Authorization header is sent.
	AccessTokenCookie = "access_token"
)

// BearerToken extracts the access token from the Authorization header or the session cookie.
func BearerToken(c *fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return ""
		}
		return strings.TrimSpace(token)
	}
	return c.Cookies(AccessTokenCookie)
}

// RequireAuth rejects requests without a valid access token for an active user.
// The principal is put in the request's user context and in locals.
func RequireAuth(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := BearerToken(c)
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		p, err := svc.Authenticate(c.UserContext(), token, c.IP())
		switch {
		case errors.Is(err, service.ErrUnauthorized):
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		case errors.Is(err, service.ErrForbidden):
			return fiber.NewError(fiber.StatusForbidden, "access denied")
		case err != nil:
			return err
		}

		c.Locals(PrincipalLocalKey, p)
		c.SetUserContext(auth.WithPrincipal(c.UserContext(), p))
		return c.Next()
	}
}

// RequireRole allows only principals holding one of roles. It must run after RequireAuth.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := auth.FromContext(c.UserContext())
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		if !p.HasRole(roles...) {
			return fiber.NewError(fiber.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}
