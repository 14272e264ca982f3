package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"sitecms/internal/http/middleware"
	"sitecms/internal/service"
)

// sessionCookie builds the access token cookie. A zero maxAge with an empty value clears it.
func sessionCookie(c *fiber.Ctx, value string, maxAge int) *fiber.Cookie {
	ck := &fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		Secure:   c.Protocol() == "https",
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if value == "" {
		ck.Expires = time.Unix(0, 0)
		ck.MaxAge = -1
	} else {
		ck.MaxAge = maxAge
	}
	return ck
}

// Login signs in a backoffice user. The access token is returned in the body and
// also set as an HttpOnly cookie.
//
// @Summary  Sign in
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body service.LoginInput true "credentials"
// @Success  200 {object} service.LoginResult
// @Failure  401 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /api/auth/login [post]
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.LoginInput
		if !bindJSON(c, &in) {
			return nil
		}
		res, err := svc.Login(c.UserContext(), in, c.IP())
		if err != nil {
			return handleServiceError(c, err)
		}
		c.Cookie(sessionCookie(c, res.AccessToken, res.ExpiresIn))
		return c.JSON(res)
	}
}

// Logout revokes the session at the provider and clears the cookie.
//
// @Summary  Sign out
// @Tags     auth
// @Security BearerAuth
// @Success  204
// @Failure  401 {object} errorPayload
// @Router   /api/auth/logout [post]
func Logout(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Logout(c.UserContext(), middleware.BearerToken(c)); err != nil {
			return handleServiceError(c, err)
		}
		c.Cookie(sessionCookie(c, "", 0))
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// Me returns the signed-in user with its role.
//
// @Summary  Current user
// @Tags     auth
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} model.User
// @Failure  401 {object} errorPayload
// @Router   /api/auth/me [get]
func Me(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := svc.Me(c.UserContext())
		if err != nil {
			return handleServiceError(c, err)
		}
		return c.JSON(user)
	}
}

// ForgotPassword always answers 202 so the endpoint cannot be used to enumerate accounts.
//
// @Summary  Request a password reset code
// @Tags     auth
// @Accept   json
// @Param    body body service.ForgotPasswordInput true "email"
// @Success  202
// @Failure  400 {object} errorPayload
// @Router   /api/auth/password/forgot [post]
func ForgotPassword(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ForgotPasswordInput
		if !bindJSON(c, &in) {
			return nil
		}
		if err := svc.RequestPasswordReset(c.UserContext(), in); err != nil {
			return handleServiceError(c, err)
		}
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "sent"})
	}
}

// ResetPassword sets a new password using an emailed code.
//
// @Summary  Reset a password
// @Tags     auth
// @Accept   json
// @Param    body body service.ResetPasswordInput true "email, code and new password"
// @Success  204
// @Failure  400 {object} errorPayload
// @Failure  503 {object} errorPayload
// @Router   /api/auth/password/reset [post]
func ResetPassword(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ResetPasswordInput
		if !bindJSON(c, &in) {
			return nil
		}
		if err := svc.ResetPassword(c.UserContext(), in); err != nil {
			return handleServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
