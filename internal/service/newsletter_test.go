package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sitecms/internal/mailer"
	mailMocks "sitecms/internal/mailer/mocks"
	"sitecms/internal/model"
	"sitecms/internal/repository"
	repoMocks "sitecms/internal/repository/mocks"
)

func TestNewsletterService_Subscribe(t *testing.T) {
	ctx := context.Background()
	welcome := mock.MatchedBy(func(m mailer.Message) bool {
		return m.To[0] == "a@example.com" && bytes.Contains([]byte(m.Body), []byte("https://site.test/newsletter/unsubscribe?token="))
	})

	tests := []struct {
		name       string
		setupMocks func(mRepo *repoMocks.MockNewsletterRepository, mMail *mailMocks.MockMailer)
		wantStatus string
	}{
		{
			name: "new email",
			setupMocks: func(mRepo *repoMocks.MockNewsletterRepository, mMail *mailMocks.MockMailer) {
				mRepo.On("FindByEmailWithDeleted", ctx, "a@example.com").Return(nil, repository.ErrNotFound)
				mRepo.On("Create", ctx, mock.MatchedBy(func(s *model.NewsletterSubscription) bool {
					return s.Email == "a@example.com" && len(s.UnsubscribeToken) == 32 && s.Status == model.NewsletterSubscribed
				})).Return(&model.NewsletterSubscription{Email: "a@example.com", Status: model.NewsletterSubscribed, UnsubscribeToken: "tok"}, nil)
				mMail.On("Send", ctx, welcome).Return(nil)
			},
			wantStatus: model.NewsletterSubscribed,
		},
		{
			name: "already subscribed is a no-op",
			setupMocks: func(mRepo *repoMocks.MockNewsletterRepository, mMail *mailMocks.MockMailer) {
				mRepo.On("FindByEmailWithDeleted", ctx, "a@example.com").
					Return(&model.NewsletterSubscription{Email: "a@example.com", Status: model.NewsletterSubscribed}, nil)
			},
			wantStatus: model.NewsletterSubscribed,
		},
		{
			name: "unsubscribed email is reactivated",
			setupMocks: func(mRepo *repoMocks.MockNewsletterRepository, mMail *mailMocks.MockMailer) {
				gone := time.Now().Add(-time.Hour)
				mRepo.On("FindByEmailWithDeleted", ctx, "a@example.com").
					Return(&model.NewsletterSubscription{Email: "a@example.com", Status: model.NewsletterUnsubscribed, UnsubscribedAt: &gone}, nil)
				mRepo.On("Restore", ctx, mock.MatchedBy(func(s *model.NewsletterSubscription) bool {
					return s.Status == model.NewsletterSubscribed && s.UnsubscribedAt == nil
				})).Return(&model.NewsletterSubscription{Email: "a@example.com", Status: model.NewsletterSubscribed}, nil)
				mMail.On("Send", ctx, welcome).Return(nil)
			},
			wantStatus: model.NewsletterSubscribed,
		},
		{
			name: "deleted email is restored",
			setupMocks: func(mRepo *repoMocks.MockNewsletterRepository, mMail *mailMocks.MockMailer) {
				mRepo.On("FindByEmailWithDeleted", ctx, "a@example.com").
					Return(&model.NewsletterSubscription{
						Email:      "a@example.com",
						Status:     model.NewsletterSubscribed,
						SoftDelete: model.SoftDelete{DeletedAt: gorm.DeletedAt{Time: time.Now(), Valid: true}},
					}, nil)
				mRepo.On("Restore", ctx, mock.Anything).
					Return(&model.NewsletterSubscription{Email: "a@example.com", Status: model.NewsletterSubscribed}, nil)
				mMail.On("Send", ctx, welcome).Return(nil)
			},
			wantStatus: model.NewsletterSubscribed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, _, _ := testDeps()
			mRepo := new(repoMocks.MockNewsletterRepository)
			mMail := new(mailMocks.MockMailer)
			tt.setupMocks(mRepo, mMail)

			svc := NewNewsletterService(mRepo, mMail, "https://site.test/", deps)
			out, err := svc.Subscribe(ctx, SubscribeInput{Email: " A@Example.com "})
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, out.Status)
			mRepo.AssertExpectations(t)
			mMail.AssertExpectations(t)
		})
	}
}

func TestNewsletterService_Unsubscribe(t *testing.T) {
	ctx := context.Background()
	deps, _, _ := testDeps()
	mRepo := new(repoMocks.MockNewsletterRepository)
	mRepo.On("FindOne", ctx, map[string]any{"unsubscribe_token": "tok"}).
		Return(&model.NewsletterSubscription{Status: model.NewsletterSubscribed}, nil)
	mRepo.On("Update", ctx, mock.MatchedBy(func(s *model.NewsletterSubscription) bool {
		return s.Status == model.NewsletterUnsubscribed && s.UnsubscribedAt != nil
	})).Return(&model.NewsletterSubscription{}, nil)
	mRepo.On("FindOne", ctx, map[string]any{"unsubscribe_token": "bad"}).Return(nil, repository.ErrNotFound)

	svc := NewNewsletterService(mRepo, nil, "", deps)
	require.NoError(t, svc.Unsubscribe(ctx, UnsubscribeInput{Token: "tok"}))
	assert.ErrorIs(t, svc.Unsubscribe(ctx, UnsubscribeInput{Token: "bad"}), ErrNotFound)
	mRepo.AssertExpectations(t)
}

func TestNewsletterService_Export(t *testing.T) {
	ctx := context.Background()
	deps, _, _ := testDeps()
	mRepo := new(repoMocks.MockNewsletterRepository)
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mRepo.On("ListAll", ctx, model.NewsletterSubscribed).Return([]model.NewsletterSubscription{
		{Email: "a@example.com", Status: model.NewsletterSubscribed, SubscribedAt: at},
		{Email: "b@example.com", Status: model.NewsletterSubscribed, SubscribedAt: at, UnsubscribedAt: &at},
	}, nil)

	var buf bytes.Buffer
	svc := NewNewsletterService(mRepo, nil, "", deps)
	require.NoError(t, svc.Export(ctx, model.NewsletterSubscribed, &buf))

	want := "email,status,subscribed_at,unsubscribed_at\n" +
		"a@example.com,subscribed,2024-05-01T10:00:00Z,\n" +
		"b@example.com,subscribed,2024-05-01T10:00:00Z,2024-05-01T10:00:00Z\n"
	assert.Equal(t, want, buf.String())
}
