package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sitecms/internal/auth"
	"sitecms/internal/model"
	"sitecms/internal/service"
	serviceMocks "sitecms/internal/service/mocks"
)

type routeMocks struct {
	services *serviceMocks.MockContentService[model.Service, service.ServiceInput]
	authSvc  *serviceMocks.MockAuthService
	users    *serviceMocks.MockUserService
	contacts *serviceMocks.MockContactService
	seo      *serviceMocks.MockSEOService
}

// all wires the tracked mocks plus fresh mocks for every other service.
func (m *routeMocks) all() Services {
	return Services{
		Services:   m.services,
		Packages:   new(serviceMocks.MockContentService[model.Package, service.PackageInput]),
		Projects:   new(serviceMocks.MockProjectService),
		Reviews:    new(serviceMocks.MockReviewService),
		Gallery:    new(serviceMocks.MockGalleryService),
		Stats:      new(serviceMocks.MockContentService[model.Stat, service.StatInput]),
		FAQs:       new(serviceMocks.MockContentService[model.FAQ, service.FAQInput]),
		SEO:        m.seo,
		About:      new(serviceMocks.MockAboutService),
		Settings:   new(serviceMocks.MockSettingService),
		Contacts:   m.contacts,
		Newsletter: new(serviceMocks.MockNewsletterService),
		Media:      new(serviceMocks.MockMediaService),
		Auth:       m.authSvc,
		Users:      m.users,
		Audit:      new(serviceMocks.MockAuditService),
		Dashboard:  new(serviceMocks.MockDashboardService),
	}
}

func newRoutedApp(t *testing.T) (*routeMocks, func(method, path, token string) *http.Response) {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	m := &routeMocks{
		services: new(serviceMocks.MockContentService[model.Service, service.ServiceInput]),
		authSvc:  new(serviceMocks.MockAuthService),
		users:    new(serviceMocks.MockUserService),
		contacts: new(serviceMocks.MockContactService),
		seo:      new(serviceMocks.MockSEOService),
	}
	m.authSvc.On("Authenticate", mock.Anything, "admin-token", mock.Anything).
		Return(&auth.Principal{UserID: "a", Role: model.RoleAdmin}, nil).Maybe()
	m.authSvc.On("Authenticate", mock.Anything, "editor-token", mock.Anything).
		Return(&auth.Principal{UserID: "e", Role: model.RoleEditor}, nil).Maybe()

	app := newTestApp()
	RegisterRoutes(app, db, m.all())

	do := func(method, path, token string) *http.Response {
		req := httptest.NewRequest(method, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}
	return m, do
}

func TestRoutes_PublicNeedsNoAuth(t *testing.T) {
	m, do := newRoutedApp(t)
	m.services.On("ListPublic", mock.Anything, mock.Anything).
		Return(&service.ListResult[model.Service]{}, nil).Once()

	resp := do(http.MethodGet, "/api/services", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	m.authSvc.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything, mock.Anything)
}

func TestRoutes_AdminRequiresToken(t *testing.T) {
	_, do := newRoutedApp(t)

	resp := do(http.MethodGet, "/api/admin/services", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", decodeError(t, resp).Error.Code)

	resp = do(http.MethodGet, "/api/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoutes_EditorAccess(t *testing.T) {
	m, do := newRoutedApp(t)
	m.contacts.On("List", mock.Anything, mock.Anything).
		Return(&service.ListResult[model.ContactSubmission]{}, nil).Once()

	resp := do(http.MethodGet, "/api/admin/contacts", "editor-token")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	for _, path := range []string{"/api/admin/users", "/api/admin/roles", "/api/admin/audit-logs"} {
		resp = do(http.MethodGet, path, "editor-token")
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)
	}
	m.users.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestRoutes_AdminOnly(t *testing.T) {
	m, do := newRoutedApp(t)
	m.users.On("List", mock.Anything, mock.Anything).Return(&service.ListResult[model.User]{}, nil).Once()

	resp := do(http.MethodGet, "/api/admin/users", "admin-token")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	m.users.AssertExpectations(t)
}

func TestRoutes_PrincipalReachesService(t *testing.T) {
	m, do := newRoutedApp(t)
	m.seo.On("Delete", mock.Anything, testID).Run(func(args mock.Arguments) {
		p, ok := auth.FromContext(args.Get(0).(context.Context))
		assert.True(t, ok)
		assert.Equal(t, "e", p.UserID)
	}).Return(nil).Once()

	resp := do(http.MethodDelete, "/api/admin/seo/"+testID, "editor-token")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	m.seo.AssertExpectations(t)
}
