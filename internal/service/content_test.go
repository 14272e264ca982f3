package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sitecms/internal/model"
	"sitecms/internal/repository"
	repoMocks "sitecms/internal/repository/mocks"
	"sitecms/internal/revalidate"
)

const testID = "3f1c2a9e-6b7d-4e8f-9a0b-1c2d3e4f5a6b"

func validServiceInput() ServiceInput {
	return ServiceInput{Title: "Web Design", Slug: "web-design", Summary: "Sites that convert"}
}

func TestContentService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		in         ServiceInput
		setupMocks func(mRepo *repoMocks.MockStore[model.Service], a *fakeAudit)
		wantErr    error
		wantFields map[string]string
	}{
		{
			name: "happy path",
			in:   validServiceInput(),
			setupMocks: func(mRepo *repoMocks.MockStore[model.Service], a *fakeAudit) {
				mRepo.On("Create", ctx, mock.MatchedBy(func(s *model.Service) bool {
					return s.Slug == "web-design" && s.IsActive
				})).Return(&model.Service{Base: model.Base{ID: testID}, Slug: "web-design"}, nil)
				a.On("Record", ctx, model.AuditCreate, "service", testID, map[string]any(nil)).Return(nil)
			},
		},
		{
			name: "explicit inactive flag is kept",
			in:   ServiceInput{Title: "Web Design", Slug: "web-design", IsActive: ptr(false)},
			setupMocks: func(mRepo *repoMocks.MockStore[model.Service], a *fakeAudit) {
				mRepo.On("Create", ctx, mock.MatchedBy(func(s *model.Service) bool {
					return !s.IsActive
				})).Return(&model.Service{Base: model.Base{ID: testID}}, nil)
				a.On("Record", ctx, model.AuditCreate, "service", testID, map[string]any(nil)).Return(nil)
			},
		},
		{
			name:       "validation error - bad slug and missing title",
			in:         ServiceInput{Slug: "Web Design"},
			setupMocks: func(*repoMocks.MockStore[model.Service], *fakeAudit) {},
			wantFields: map[string]string{"title": "required", "slug": "slug"},
		},
		{
			name:       "validation error - bad image url",
			in:         ServiceInput{Title: "x", Slug: "x", ImageURL: "not a url"},
			setupMocks: func(*repoMocks.MockStore[model.Service], *fakeAudit) {},
			wantFields: map[string]string{"image_url": "url"},
		},
		{
			name: "duplicate slug",
			in:   validServiceInput(),
			setupMocks: func(mRepo *repoMocks.MockStore[model.Service], a *fakeAudit) {
				mRepo.On("Create", ctx, mock.Anything).
					Return(nil, fmt.Errorf("%w: idx_services_slug", repository.ErrDuplicate))
			},
			wantErr: ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, a, r := testDeps()
			r.On("Revalidate", ctx, []string{revalidate.TagServices}).Return(nil).Maybe()
			mRepo := new(repoMocks.MockStore[model.Service])
			tt.setupMocks(mRepo, a)

			svc := NewContentService[model.Service, ServiceInput](mRepo, ServiceContent, deps)
			out, err := svc.Create(ctx, tt.in)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantFields != nil:
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.wantFields, ve.Fields)
			default:
				require.NoError(t, err)
				assert.Equal(t, testID, out.ID)
				r.AssertCalled(t, "Revalidate", ctx, []string{revalidate.TagServices})
			}
			mRepo.AssertExpectations(t)
			a.AssertExpectations(t)
		})
	}
}

func TestContentService_CreateSurvivesHookFailures(t *testing.T) {
	ctx := context.Background()
	deps, a, r := testDeps()
	a.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("audit down"))
	r.On("Revalidate", mock.Anything, mock.Anything).Return(errors.New("frontend down"))

	mRepo := new(repoMocks.MockStore[model.FAQ])
	mRepo.On("Create", ctx, mock.Anything).Return(&model.FAQ{Base: model.Base{ID: testID}}, nil)

	svc := NewContentService[model.FAQ, FAQInput](mRepo, FAQContent, deps)
	out, err := svc.Create(ctx, FAQInput{Question: "Do you host?", Answer: "Yes"})
	require.NoError(t, err)
	assert.Equal(t, testID, out.ID)
}

func TestContentService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("full replace", func(t *testing.T) {
		deps, a, r := testDeps()
		allowHooks(a, r)
		mRepo := new(repoMocks.MockStore[model.Service])
		existing := &model.Service{Base: model.Base{ID: testID}, Title: "Old", Slug: "old", Icon: "star", IsActive: false}
		mRepo.On("FindByID", ctx, testID).Return(existing, nil)
		mRepo.On("Update", ctx, mock.MatchedBy(func(s *model.Service) bool {
			return s.Title == "Web Design" && s.Icon == "" && s.IsActive
		})).Return(existing, nil)

		svc := NewContentService[model.Service, ServiceInput](mRepo, ServiceContent, deps)
		out, err := svc.Update(ctx, testID, validServiceInput())
		require.NoError(t, err)
		assert.Equal(t, "web-design", out.Slug)
		a.AssertCalled(t, "Record", ctx, model.AuditUpdate, "service", testID, map[string]any(nil))
	})

	t.Run("not found", func(t *testing.T) {
		deps, _, _ := testDeps()
		mRepo := new(repoMocks.MockStore[model.Service])
		mRepo.On("FindByID", ctx, testID).Return(nil, repository.ErrNotFound)

		svc := NewContentService[model.Service, ServiceInput](mRepo, ServiceContent, deps)
		_, err := svc.Update(ctx, testID, validServiceInput())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("id required", func(t *testing.T) {
		deps, _, _ := testDeps()
		svc := NewContentService[model.Service, ServiceInput](new(repoMocks.MockStore[model.Service]), ServiceContent, deps)
		_, err := svc.Update(ctx, "", validServiceInput())
		assert.ErrorIs(t, err, ErrIDRequired)
	})
}

func TestContentService_ListPublic(t *testing.T) {
	ctx := context.Background()
	deps, _, _ := testDeps()
	mRepo := new(repoMocks.MockStore[model.FAQ])

	mRepo.On("List", ctx, repository.ListQuery{
		PageQuery:     repository.PageQuery{Limit: MaxLimit, Offset: 0},
		Where:         map[string]any{"category": "billing", "is_active": true},
		SearchColumns: FAQContent.SearchColumns,
	}).Return(&repository.PageResult[model.FAQ]{Items: []model.FAQ{{Question: "q"}}, Total: 1}, nil)

	svc := NewContentService[model.FAQ, FAQInput](mRepo, FAQContent, deps)
	res, err := svc.ListPublic(ctx, ListParams{
		Limit:   500,
		Offset:  -3,
		Filters: map[string]string{"category": "billing", "is_active": "false", "secret": "x"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	mRepo.AssertExpectations(t)
}

func TestContentService_List(t *testing.T) {
	ctx := context.Background()
	deps, _, _ := testDeps()
	mRepo := new(repoMocks.MockStore[model.Service])

	mRepo.On("List", ctx, repository.ListQuery{
		PageQuery:     repository.PageQuery{Limit: DefaultLimit},
		Where:         map[string]any{"is_active": false},
		Search:        "web",
		SearchColumns: ServiceContent.SearchColumns,
	}).Return(&repository.PageResult[model.Service]{Items: []model.Service{}, Total: 0}, nil)

	svc := NewContentService[model.Service, ServiceInput](mRepo, ServiceContent, deps)
	res, err := svc.List(ctx, ListParams{Search: "  web ", Filters: map[string]string{"is_active": "false"}})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	mRepo.AssertExpectations(t)
}

func TestContentService_GetBySlug(t *testing.T) {
	ctx := context.Background()
	deps, _, _ := testDeps()
	mRepo := new(repoMocks.MockStore[model.Service])
	mRepo.On("FindOne", ctx, map[string]any{"slug": "web-design", "is_active": true}).
		Return(&model.Service{Slug: "web-design"}, nil)
	mRepo.On("FindOne", ctx, map[string]any{"slug": "gone", "is_active": true}).
		Return(nil, repository.ErrNotFound)

	svc := NewContentService[model.Service, ServiceInput](mRepo, ServiceContent, deps)

	out, err := svc.GetBySlug(ctx, "web-design")
	require.NoError(t, err)
	assert.Equal(t, "web-design", out.Slug)

	_, err = svc.GetBySlug(ctx, "gone")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("soft delete", func(t *testing.T) {
		deps, a, r := testDeps()
		allowHooks(a, r)
		mRepo := new(repoMocks.MockStore[model.Stat])
		mRepo.On("Delete", ctx, testID).Return(nil)

		svc := NewContentService[model.Stat, StatInput](mRepo, StatContent, deps)
		require.NoError(t, svc.Delete(ctx, testID))
		a.AssertCalled(t, "Record", ctx, model.AuditDelete, "stat", testID, map[string]any(nil))
		r.AssertCalled(t, "Revalidate", ctx, []string{revalidate.TagStats})
	})

	t.Run("missing row", func(t *testing.T) {
		deps, _, _ := testDeps()
		mRepo := new(repoMocks.MockStore[model.Stat])
		mRepo.On("Delete", ctx, testID).Return(repository.ErrNotFound)

		svc := NewContentService[model.Stat, StatInput](mRepo, StatContent, deps)
		assert.ErrorIs(t, svc.Delete(ctx, testID), ErrNotFound)
	})
}

func TestContentService_Reorder(t *testing.T) {
	ctx := context.Background()
	other := "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"

	tests := []struct {
		name       string
		opts       ContentOptions
		ids        []string
		setupMocks func(mRepo *repoMocks.MockStore[model.Service])
		wantFields map[string]string
		wantErr    error
	}{
		{
			name: "happy path",
			opts: ServiceContent,
			ids:  []string{testID, other},
			setupMocks: func(mRepo *repoMocks.MockStore[model.Service]) {
				mRepo.On("Reorder", ctx, []string{testID, other}).Return(nil)
			},
		},
		{
			name:       "empty list",
			opts:       ServiceContent,
			ids:        nil,
			setupMocks: func(*repoMocks.MockStore[model.Service]) {},
			wantFields: map[string]string{"ids": "required"},
		},
		{
			name:       "duplicate ids",
			opts:       ServiceContent,
			ids:        []string{testID, testID},
			setupMocks: func(*repoMocks.MockStore[model.Service]) {},
			wantFields: map[string]string{"ids": "unique"},
		},
		{
			name:       "malformed id",
			opts:       ServiceContent,
			ids:        []string{"nope"},
			setupMocks: func(*repoMocks.MockStore[model.Service]) {},
			wantFields: map[string]string{"ids[0]": "uuid"},
		},
		{
			name:       "not sortable",
			opts:       ContentOptions{Entity: "service"},
			ids:        []string{testID},
			setupMocks: func(*repoMocks.MockStore[model.Service]) {},
			wantFields: map[string]string{"ids": "not_sortable"},
		},
		{
			name: "unknown id",
			opts: ServiceContent,
			ids:  []string{testID},
			setupMocks: func(mRepo *repoMocks.MockStore[model.Service]) {
				mRepo.On("Reorder", ctx, []string{testID}).Return(repository.ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, a, r := testDeps()
			allowHooks(a, r)
			mRepo := new(repoMocks.MockStore[model.Service])
			tt.setupMocks(mRepo)

			svc := NewContentService[model.Service, ServiceInput](mRepo, tt.opts, deps)
			err := svc.Reorder(ctx, tt.ids)

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
			mRepo.AssertExpectations(t)
		})
	}
}
