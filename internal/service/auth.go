package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"sitecms/internal/auth"
	"sitecms/internal/mailer"
	"sitecms/internal/model"
	"sitecms/internal/repository"
)

const (
	// ResetCodeTTL is how long a mailed reset code stays valid.
	ResetCodeTTL = 15 * time.Minute
	// MaxResetAttempts is how many wrong guesses burn a code.
	MaxResetAttempts = 5
)

// LoginResult is the session handed to the backoffice after sign in.
type LoginResult struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    int         `json:"expires_in"`
	User         *model.User `json:"user"`
}

// AuthService authenticates backoffice users against the identity provider
// and keeps the local user table in step with it.
type AuthService interface {
	// Login signs in with the provider and returns its session with the local user.
	// Unknown emails are only provisioned when listed as bootstrap admins.
	Login(ctx context.Context, in LoginInput, ip string) (*LoginResult, error)

	// Logout revokes the provider session of accessToken.
	Logout(ctx context.Context, accessToken string) error

	// Authenticate verifies a bearer token and resolves the active local user behind it.
	Authenticate(ctx context.Context, token, ip string) (*auth.Principal, error)

	// Me returns the user of the principal in ctx.
	Me(ctx context.Context) (*model.User, error)

	// RequestPasswordReset mails a one-time code. It succeeds for unknown emails too.
	RequestPasswordReset(ctx context.Context, in ForgotPasswordInput) error

	// ResetPassword redeems a code and sets the new password at the provider.
	ResetPassword(ctx context.Context, in ResetPasswordInput) error
}

// ErrInvalidResetCode is returned for wrong, expired, used or exhausted reset codes.
var ErrInvalidResetCode = &ValidationError{Fields: map[string]string{"code": "invalid"}}

type authService struct {
	provider    auth.Provider
	users       repository.Store[model.User]
	roles       repository.Store[model.Role]
	codes       repository.ResetCodeRepository
	mail        mailer.Mailer
	adminEmails map[string]bool
	hooks       changeHooks

	hashCost int
	genCode  func() (string, error)
}

// NewAuthService constructs a new AuthService.
func NewAuthService(
	provider auth.Provider,
	users repository.Store[model.User],
	roles repository.Store[model.Role],
	codes repository.ResetCodeRepository,
	mail mailer.Mailer,
	adminEmails []string,
	deps Deps,
) AuthService {
	admins := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		admins[strings.ToLower(e)] = true
	}
	return &authService{
		provider:    provider,
		users:       users,
		roles:       roles,
		codes:       codes,
		mail:        mail,
		adminEmails: admins,
		hooks:       deps.hooks("auth"),
		hashCost:    bcrypt.DefaultCost,
		genCode:     randomCode,
	}
}

func (s *authService) Login(ctx context.Context, in LoginInput, ip string) (*LoginResult, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	sess, err := s.provider.SignIn(ctx, email, in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
		}
		return nil, err
	}

	user, err := s.ensureUser(ctx, sess.User.ID, email)
	if err == nil && !user.IsActive {
		err = fmt.Errorf("%w: user is disabled", ErrForbidden)
	}
	if err != nil {
		if outErr := s.provider.SignOut(ctx, sess.AccessToken); outErr != nil {
			s.hooks.lggr.Warn("provider_sign_out_failed", zap.Error(outErr))
		}
		return nil, err
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	if _, err := s.users.Update(ctx, user); err != nil {
		return nil, mapRepoErr(err)
	}

	actx := auth.WithPrincipal(ctx, &auth.Principal{UserID: user.ID, Email: user.Email, Role: user.RoleName(), IPAddress: ip})
	s.hooks.changed(actx, model.AuditLogin, "user", user.ID, nil)

	return &LoginResult{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		TokenType:    sess.TokenType,
		ExpiresIn:    sess.ExpiresIn,
		User:         user,
	}, nil
}

// ensureUser finds the local user for a provider identity, linking by email or
// provisioning bootstrap admins when needed.
func (s *authService) ensureUser(ctx context.Context, providerID, email string) (*model.User, error) {
	user, err := s.users.FindOne(ctx, map[string]any{"provider_id": providerID}, "Role")
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	user, err = s.users.FindOne(ctx, map[string]any{"email": email}, "Role")
	if err == nil {
		user.ProviderID = providerID
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if !s.adminEmails[email] {
		return nil, fmt.Errorf("%w: no backoffice account for %s", ErrForbidden, email)
	}
	role, err := s.roles.FindOne(ctx, map[string]any{"name": model.RoleAdmin})
	if err != nil {
		return nil, fmt.Errorf("find admin role: %w", err)
	}
	created, err := s.users.Create(ctx, &model.User{
		ProviderID: providerID,
		Email:      email,
		RoleID:     role.ID,
		IsActive:   true,
	})
	if err != nil {
		return nil, mapRepoErr(err)
	}
	created.Role = role
	s.hooks.lggr.Info("bootstrap_admin_created", zap.String("user_id", created.ID), zap.String("email", email))
	return created, nil
}

func (s *authService) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return ErrUnauthorized
	}
	if err := s.provider.SignOut(ctx, accessToken); err != nil {
		return err
	}
	if p, ok := auth.FromContext(ctx); ok {
		s.hooks.changed(ctx, model.AuditLogout, "user", p.UserID, nil)
	}
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token, ip string) (*auth.Principal, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	claims, err := s.provider.VerifyToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	user, err := s.users.FindOne(ctx, map[string]any{"provider_id": claims.Subject}, "Role")
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: no backoffice account", ErrForbidden)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: user is disabled", ErrForbidden)
	}
	return &auth.Principal{
		UserID:     user.ID,
		ProviderID: user.ProviderID,
		Email:      user.Email,
		Role:       user.RoleName(),
		IPAddress:  ip,
	}, nil
}

func (s *authService) Me(ctx context.Context) (*model.User, error) {
	p, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	user, err := s.users.FindByID(ctx, p.UserID, "Role")
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return user, nil
}

func (s *authService) RequestPasswordReset(ctx context.Context, in ForgotPasswordInput) error {
	if err := Validate(in); err != nil {
		return err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	user, err := s.users.FindOne(ctx, map[string]any{"email": email})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.hooks.lggr.Debug("password_reset_unknown_email")
			return nil
		}
		return err
	}
	if !user.IsActive {
		return nil
	}

	code, err := s.genCode()
	if err != nil {
		return fmt.Errorf("generate reset code: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), s.hashCost)
	if err != nil {
		return fmt.Errorf("hash reset code: %w", err)
	}
	if _, err := s.codes.Create(ctx, &model.PasswordResetCode{
		UserID:    user.ID,
		CodeHash:  string(hash),
		ExpiresAt: time.Now().UTC().Add(ResetCodeTTL),
	}); err != nil {
		return mapRepoErr(err)
	}

	if s.mail != nil {
		msg, err := mailer.ResetCode(user.Email, code, ResetCodeTTL)
		if err == nil {
			err = s.mail.Send(ctx, msg)
		}
		if err != nil {
			s.hooks.lggr.Warn("password_reset_mail_failed", zap.String("user_id", user.ID), zap.Error(err))
		}
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	if err := Validate(in); err != nil {
		return err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	now := time.Now().UTC()

	user, err := s.users.FindOne(ctx, map[string]any{"email": email})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidResetCode
		}
		return err
	}
	code, err := s.codes.LatestActive(ctx, user.ID, now)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidResetCode
		}
		return err
	}
	if !code.Usable(now, MaxResetAttempts) {
		return ErrInvalidResetCode
	}
	if bcrypt.CompareHashAndPassword([]byte(code.CodeHash), []byte(in.Code)) != nil {
		if err := s.codes.IncrementAttempts(ctx, code.ID); err != nil {
			return err
		}
		return ErrInvalidResetCode
	}

	if err := s.provider.UpdatePassword(ctx, user.ProviderID, in.Password); err != nil {
		return fmt.Errorf("update provider password: %w", err)
	}
	if err := s.codes.MarkUsed(ctx, code, now); err != nil {
		return err
	}
	s.hooks.changed(ctx, model.AuditPasswordReset, "user", user.ID, nil)
	return nil
}

// randomCode returns a uniformly random 6-digit code.
func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
