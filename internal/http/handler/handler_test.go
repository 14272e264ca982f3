package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sitecms/internal/http/middleware"
	"sitecms/internal/model"
	"sitecms/internal/service"
	serviceMocks "sitecms/internal/service/mocks"
)

const testID = "3f6c2a4e-8b1d-4c2e-9a77-0d5e4b1f2c3a"

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(nil)})
	app.Use(middleware.RequestID())
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			r = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			r = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var body errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		body := decodeError(t, resp)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestErrorHandler(t *testing.T) {
	app := newTestApp()
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("pq: connection refused") })
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusMethodNotAllowed) })

	resp := doJSON(t, app, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decodeError(t, resp)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.NotContains(t, body.Error.Message, "connection refused")
	assert.NotEmpty(t, body.RequestID)

	resp = doJSON(t, app, http.MethodGet, "/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)

	resp = doJSON(t, app, http.MethodGet, "/teapot", nil)
	assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, resp).Error.Code)
}

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", &service.ValidationError{Fields: map[string]string{"title": "required"}}, 400, "VALIDATION_FAILED"},
		{"not found", service.ErrNotFound, 404, "NOT_FOUND"},
		{"conflict", fmt.Errorf("%w: slug", service.ErrConflict), 409, "CONFLICT"},
		{"unauthorized", service.ErrUnauthorized, 401, "UNAUTHORIZED"},
		{"forbidden", service.ErrForbidden, 403, "FORBIDDEN"},
		{"id required", service.ErrIDRequired, 400, "INVALID_ID"},
		{"unknown", errors.New("boom"), 500, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp()
			app.Get("/", func(c *fiber.Ctx) error { return handleServiceError(c, tt.err) })

			resp := doJSON(t, app, http.MethodGet, "/", nil)
			assert.Equal(t, tt.status, resp.StatusCode)
			body := decodeError(t, resp)
			assert.Equal(t, tt.code, body.Error.Code)
			if tt.code == "VALIDATION_FAILED" {
				assert.Equal(t, "required", body.Error.Fields["title"])
			}
		})
	}
}

func TestContentHandler_ListPublic(t *testing.T) {
	svc := new(serviceMocks.MockContentService[model.Service, service.ServiceInput])
	h := NewContentHandler[model.Service, service.ServiceInput](svc)
	app := newTestApp()
	app.Get("/services", h.ListPublic())

	t.Run("success with search and filters", func(t *testing.T) {
		want := service.ListParams{Limit: 5, Offset: 10, Search: "web", Filters: map[string]string{"category": "design"}}
		svc.On("ListPublic", mock.Anything, want).
			Return(&service.ListResult[model.Service]{Items: []model.Service{{Title: "Web"}}, Total: 11}, nil).Once()

		resp := doJSON(t, app, http.MethodGet, "/services?limit=5&offset=10&q=web&category=design", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Data  []model.Service `json:"data"`
			Total int             `json:"total"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, 11, body.Total)
		assert.Equal(t, "Web", body.Data[0].Title)
	})

	t.Run("invalid limit", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/services?limit=abc", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_LIMIT", decodeError(t, resp).Error.Code)
	})

	t.Run("negative offset", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/services?offset=-1", nil)
		assert.Equal(t, "INVALID_OFFSET", decodeError(t, resp).Error.Code)
	})

	svc.AssertExpectations(t)
}

func TestContentHandler_GetBySlug(t *testing.T) {
	svc := new(serviceMocks.MockContentService[model.Service, service.ServiceInput])
	app := newTestApp()
	app.Get("/services/:slug", NewContentHandler[model.Service, service.ServiceInput](svc).GetBySlug())

	svc.On("GetBySlug", mock.Anything, "web-design").Return(&model.Service{Slug: "web-design"}, nil).Once()
	svc.On("GetBySlug", mock.Anything, "hidden").Return(nil, service.ErrNotFound).Once()

	resp := doJSON(t, app, http.MethodGet, "/services/web-design", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/services/hidden", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestContentHandler_CRUD(t *testing.T) {
	svc := new(serviceMocks.MockContentService[model.FAQ, service.FAQInput])
	h := NewContentHandler[model.FAQ, service.FAQInput](svc)
	app := newTestApp()
	h.mount(app.Group("/faqs"), true)

	in := service.FAQInput{Question: "Price?", Answer: "Ask us."}

	t.Run("create", func(t *testing.T) {
		svc.On("Create", mock.Anything, in).Return(&model.FAQ{Question: "Price?"}, nil).Once()

		resp := doJSON(t, app, http.MethodPost, "/faqs", in)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("create malformed body", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/faqs", `{"question":`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_BODY", decodeError(t, resp).Error.Code)
	})

	t.Run("create validation failure", func(t *testing.T) {
		bad := service.FAQInput{Answer: "x"}
		svc.On("Create", mock.Anything, bad).
			Return(nil, &service.ValidationError{Fields: map[string]string{"question": "required"}}).Once()

		resp := doJSON(t, app, http.MethodPost, "/faqs", bad)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
		assert.Equal(t, map[string]string{"question": "required"}, body.Error.Fields)
	})

	t.Run("get invalid id", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/faqs/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
	})

	t.Run("get", func(t *testing.T) {
		svc.On("Get", mock.Anything, testID).Return(&model.FAQ{Question: "Price?"}, nil).Once()
		resp := doJSON(t, app, http.MethodGet, "/faqs/"+testID, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("update", func(t *testing.T) {
		svc.On("Update", mock.Anything, testID, in).Return(&model.FAQ{Question: "Price?"}, nil).Once()
		resp := doJSON(t, app, http.MethodPut, "/faqs/"+testID, in)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("delete missing", func(t *testing.T) {
		svc.On("Delete", mock.Anything, testID).Return(service.ErrNotFound).Once()
		resp := doJSON(t, app, http.MethodDelete, "/faqs/"+testID, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("delete", func(t *testing.T) {
		svc.On("Delete", mock.Anything, testID).Return(nil).Once()
		resp := doJSON(t, app, http.MethodDelete, "/faqs/"+testID, nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("reorder is not shadowed by /:id", func(t *testing.T) {
		ids := []string{testID}
		svc.On("Reorder", mock.Anything, ids).Return(nil).Once()
		resp := doJSON(t, app, http.MethodPut, "/faqs/reorder", service.ReorderInput{IDs: ids})
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("internal error", func(t *testing.T) {
		svc.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()
		resp := doJSON(t, app, http.MethodGet, "/faqs", nil)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "INTERNAL_ERROR", decodeError(t, resp).Error.Code)
	})

	svc.AssertExpectations(t)
}

func TestContentHandler_NotSortable(t *testing.T) {
	svc := new(serviceMocks.MockSEOService)
	app := newTestApp()
	NewSEOHandler(svc).mount(app.Group("/seo"), false)

	// Without a reorder route the request reaches PUT /:id and fails id parsing.
	resp := doJSON(t, app, http.MethodPut, "/seo/reorder", service.ReorderInput{IDs: []string{testID}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
}

func TestSEOHandler_GetByPath(t *testing.T) {
	svc := new(serviceMocks.MockSEOService)
	app := newTestApp()
	app.Get("/seo", NewSEOHandler(svc).GetByPath())

	svc.On("GetByPath", mock.Anything, "/services").Return(&model.SEO{PagePath: "/services"}, nil).Once()

	resp := doJSON(t, app, http.MethodGet, "/seo?path=/services", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/seo", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "required", decodeError(t, resp).Error.Fields["path"])
}

func TestReviewHandler_Submit(t *testing.T) {
	svc := new(serviceMocks.MockReviewService)
	app := newTestApp()
	app.Post("/reviews", NewReviewHandler(svc).Submit())

	in := service.ReviewSubmission{AuthorName: "Ana", Content: "Great", Rating: 5}
	svc.On("Submit", mock.Anything, in).Return(&model.Review{AuthorName: "Ana"}, nil).Once()

	resp := doJSON(t, app, http.MethodPost, "/reviews", in)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	svc.AssertExpectations(t)
}
