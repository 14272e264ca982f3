package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sitecms/internal/auth"
	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// UserService lets admins manage backoffice accounts. Credentials stay at the identity provider.
type UserService interface {
	// List returns users with their roles. Supported filters: role_id, is_active.
	List(ctx context.Context, params ListParams) (*ListResult[model.User], error)
	Get(ctx context.Context, id string) (*model.User, error)

	// Update changes a user's name, role and active flag. Admins cannot demote or disable themselves.
	Update(ctx context.Context, id string, in UserUpdateInput) (*model.User, error)

	// Delete soft-deletes a user. Admins cannot delete themselves.
	Delete(ctx context.Context, id string) error

	Roles(ctx context.Context) ([]model.Role, error)
}

type userService struct {
	users repository.Store[model.User]
	roles repository.Store[model.Role]
	hooks changeHooks
}

// NewUserService constructs a new UserService.
func NewUserService(users repository.Store[model.User], roles repository.Store[model.Role], deps Deps) UserService {
	return &userService{users: users, roles: roles, hooks: deps.hooks("user")}
}

func (s *userService) List(ctx context.Context, params ListParams) (*ListResult[model.User], error) {
	q := params.query([]string{"role_id", "is_active"}, []string{"email", "name"})
	q.Preload = []string{"Role"}
	res, err := s.users.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return toResult(res), nil
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	u, err := s.users.FindByID(ctx, id, "Role")
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return u, nil
}

func (s *userService) Update(ctx context.Context, id string, in UserUpdateInput) (*model.User, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if err := Validate(in); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, id, "Role")
	if err != nil {
		return nil, mapRepoErr(err)
	}
	active := boolOr(in.IsActive, user.IsActive)
	if self(ctx, id) && (in.Role != model.RoleAdmin || !active) {
		return nil, fmt.Errorf("%w: cannot demote or disable yourself", ErrForbidden)
	}

	role, err := s.roles.FindOne(ctx, map[string]any{"name": in.Role})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalidField("role", "exists")
		}
		return nil, err
	}

	before := map[string]any{"role": user.RoleName(), "is_active": user.IsActive}
	user.Name = strings.TrimSpace(in.Name)
	user.RoleID = role.ID
	user.Role = role
	user.IsActive = active
	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	s.hooks.changed(ctx, model.AuditUpdate, "user", id, map[string]any{
		"before": before,
		"after":  map[string]any{"role": role.Name, "is_active": active},
	})
	return updated, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if self(ctx, id) {
		return fmt.Errorf("%w: cannot delete yourself", ErrForbidden)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return mapRepoErr(err)
	}
	s.hooks.changed(ctx, model.AuditDelete, "user", id, nil)
	return nil
}

func (s *userService) Roles(ctx context.Context) ([]model.Role, error) {
	res, err := s.roles.List(ctx, repository.ListQuery{Order: "name ASC"})
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

func self(ctx context.Context, id string) bool {
	p, ok := auth.FromContext(ctx)
	return ok && p.UserID == id
}
