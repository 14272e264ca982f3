package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sitecms/internal/model"
	"sitecms/internal/service"
)

type MockContentService[T any, I service.Input[T]] struct {
	mock.Mock
}

func (m *MockContentService[T, I]) List(ctx context.Context, params service.ListParams) (*service.ListResult[T], error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[T]), args.Error(1)
}

func (m *MockContentService[T, I]) ListPublic(ctx context.Context, params service.ListParams) (*service.ListResult[T], error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[T]), args.Error(1)
}

func (m *MockContentService[T, I]) Get(ctx context.Context, id string) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockContentService[T, I]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockContentService[T, I]) Create(ctx context.Context, in I) (*T, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockContentService[T, I]) Update(ctx context.Context, id string, in I) (*T, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockContentService[T, I]) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContentService[T, I]) Reorder(ctx context.Context, ids []string) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

type MockProjectService struct {
	MockContentService[model.Project, service.ProjectInput]
}

func (m *MockProjectService) AddImage(ctx context.Context, projectID string, in service.ProjectImageInput) (*model.ProjectImage, error) {
	args := m.Called(ctx, projectID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectImage), args.Error(1)
}

func (m *MockProjectService) UploadImage(ctx context.Context, projectID string, up service.Upload, caption string) (*model.ProjectImage, error) {
	args := m.Called(ctx, projectID, up, caption)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectImage), args.Error(1)
}

func (m *MockProjectService) RemoveImage(ctx context.Context, projectID, imageID string) error {
	args := m.Called(ctx, projectID, imageID)
	return args.Error(0)
}

func (m *MockProjectService) ReorderImages(ctx context.Context, projectID string, ids []string) error {
	args := m.Called(ctx, projectID, ids)
	return args.Error(0)
}

type MockGalleryService struct {
	MockContentService[model.GalleryItem, service.GalleryInput]
}

func (m *MockGalleryService) Upload(ctx context.Context, up service.Upload, in service.GalleryUploadInput) (*model.GalleryItem, error) {
	args := m.Called(ctx, up, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GalleryItem), args.Error(1)
}

type MockReviewService struct {
	MockContentService[model.Review, service.ReviewInput]
}

func (m *MockReviewService) Submit(ctx context.Context, in service.ReviewSubmission) (*model.Review, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

type MockSEOService struct {
	MockContentService[model.SEO, service.SEOInput]
}

func (m *MockSEOService) GetByPath(ctx context.Context, path string) (*model.SEO, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SEO), args.Error(1)
}
