package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sitecms/internal/auth"
	"sitecms/internal/model"
	"sitecms/internal/repository"
	repoMocks "sitecms/internal/repository/mocks"
)

func TestUserService_Update(t *testing.T) {
	adminCtx := auth.WithPrincipal(context.Background(), &auth.Principal{UserID: testID, Role: model.RoleAdmin})
	editorRole := &model.Role{Base: model.Base{ID: serviceID}, Name: model.RoleEditor}
	otherID := "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"

	tests := []struct {
		name       string
		id         string
		in         UserUpdateInput
		setupMocks func(users *repoMocks.MockStore[model.User], roles *repoMocks.MockStore[model.Role])
		wantErr    error
		wantFields map[string]string
	}{
		{
			name: "change role of another user",
			id:   otherID,
			in:   UserUpdateInput{Name: "Ed", Role: model.RoleEditor, IsActive: ptr(true)},
			setupMocks: func(users *repoMocks.MockStore[model.User], roles *repoMocks.MockStore[model.Role]) {
				users.On("FindByID", adminCtx, otherID).Return(&model.User{Base: model.Base{ID: otherID}, IsActive: true}, nil)
				roles.On("FindOne", adminCtx, map[string]any{"name": model.RoleEditor}).Return(editorRole, nil)
				users.On("Update", adminCtx, mock.MatchedBy(func(u *model.User) bool {
					return u.RoleID == serviceID && u.Name == "Ed"
				})).Return(&model.User{Base: model.Base{ID: otherID}, Role: editorRole}, nil)
			},
		},
		{
			name: "cannot demote yourself",
			id:   testID,
			in:   UserUpdateInput{Role: model.RoleEditor},
			setupMocks: func(users *repoMocks.MockStore[model.User], roles *repoMocks.MockStore[model.Role]) {
				users.On("FindByID", adminCtx, testID).Return(&model.User{Base: model.Base{ID: testID}, IsActive: true}, nil)
			},
			wantErr: ErrForbidden,
		},
		{
			name: "cannot disable yourself",
			id:   testID,
			in:   UserUpdateInput{Role: model.RoleAdmin, IsActive: ptr(false)},
			setupMocks: func(users *repoMocks.MockStore[model.User], roles *repoMocks.MockStore[model.Role]) {
				users.On("FindByID", adminCtx, testID).Return(&model.User{Base: model.Base{ID: testID}, IsActive: true}, nil)
			},
			wantErr: ErrForbidden,
		},
		{
			name:       "unknown role name",
			id:         otherID,
			in:         UserUpdateInput{Role: "owner"},
			setupMocks: func(*repoMocks.MockStore[model.User], *repoMocks.MockStore[model.Role]) {},
			wantFields: map[string]string{"role": "oneof"},
		},
		{
			name: "missing user",
			id:   otherID,
			in:   UserUpdateInput{Role: model.RoleEditor},
			setupMocks: func(users *repoMocks.MockStore[model.User], roles *repoMocks.MockStore[model.Role]) {
				users.On("FindByID", adminCtx, otherID).Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, a, r := testDeps()
			allowHooks(a, r)
			users := new(repoMocks.MockStore[model.User])
			roles := new(repoMocks.MockStore[model.Role])
			tt.setupMocks(users, roles)

			svc := NewUserService(users, roles, deps)
			_, err := svc.Update(adminCtx, tt.id, tt.in)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantFields != nil:
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.wantFields, ve.Fields)
			default:
				require.NoError(t, err)
			}
			users.AssertExpectations(t)
			roles.AssertExpectations(t)
		})
	}
}

func TestUserService_Delete(t *testing.T) {
	ctx := auth.WithPrincipal(context.Background(), &auth.Principal{UserID: testID})
	deps, a, r := testDeps()
	allowHooks(a, r)
	users := new(repoMocks.MockStore[model.User])
	users.On("Delete", ctx, serviceID).Return(nil)

	svc := NewUserService(users, new(repoMocks.MockStore[model.Role]), deps)
	assert.ErrorIs(t, svc.Delete(ctx, testID), ErrForbidden)
	assert.NoError(t, svc.Delete(ctx, serviceID))
	users.AssertNumberOfCalls(t, "Delete", 1)
}

func TestUserService_Roles(t *testing.T) {
	ctx := context.Background()
	deps, _, _ := testDeps()
	roles := new(repoMocks.MockStore[model.Role])
	roles.On("List", ctx, repository.ListQuery{Order: "name ASC"}).
		Return(&repository.PageResult[model.Role]{Items: []model.Role{{Name: "admin"}, {Name: "editor"}}, Total: 2}, nil)

	out, err := NewUserService(new(repoMocks.MockStore[model.User]), roles, deps).Roles(ctx)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}
