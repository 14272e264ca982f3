package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

type MockProjectRepository struct {
	MockStore[model.Project]
}

func (m *MockProjectRepository) FindWithImages(ctx context.Context, where map[string]any) (*model.Project, error) {
	args := m.Called(ctx, where)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) ListByService(ctx context.Context, serviceSlug string, q repository.ListQuery) (*repository.PageResult[model.Project], error) {
	args := m.Called(ctx, serviceSlug, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Project]), args.Error(1)
}

type MockSettingRepository struct {
	mock.Mock
}

func (m *MockSettingRepository) List(ctx context.Context, publicOnly bool) ([]model.Setting, error) {
	args := m.Called(ctx, publicOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Setting), args.Error(1)
}

func (m *MockSettingRepository) FindByKey(ctx context.Context, key string) (*model.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Setting), args.Error(1)
}

func (m *MockSettingRepository) Upsert(ctx context.Context, settings []model.Setting) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

type MockNewsletterRepository struct {
	MockStore[model.NewsletterSubscription]
}

func (m *MockNewsletterRepository) FindByEmailWithDeleted(ctx context.Context, email string) (*model.NewsletterSubscription, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NewsletterSubscription), args.Error(1)
}

func (m *MockNewsletterRepository) Restore(ctx context.Context, sub *model.NewsletterSubscription) (*model.NewsletterSubscription, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NewsletterSubscription), args.Error(1)
}

func (m *MockNewsletterRepository) ListAll(ctx context.Context, status string) ([]model.NewsletterSubscription, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.NewsletterSubscription), args.Error(1)
}

type MockResetCodeRepository struct {
	mock.Mock
}

func (m *MockResetCodeRepository) Create(ctx context.Context, code *model.PasswordResetCode) (*model.PasswordResetCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PasswordResetCode), args.Error(1)
}

func (m *MockResetCodeRepository) LatestActive(ctx context.Context, userID string, now time.Time) (*model.PasswordResetCode, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PasswordResetCode), args.Error(1)
}

func (m *MockResetCodeRepository) IncrementAttempts(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockResetCodeRepository) MarkUsed(ctx context.Context, code *model.PasswordResetCode, now time.Time) error {
	args := m.Called(ctx, code, now)
	return args.Error(0)
}
