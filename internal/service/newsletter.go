package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sitecms/internal/mailer"
	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// NewsletterService manages the mailing list.
type NewsletterService interface {
	// Subscribe adds an email, or reactivates it if it unsubscribed or was deleted.
	// Subscribing an already active email is a no-op that returns the existing row.
	Subscribe(ctx context.Context, in SubscribeInput) (*model.NewsletterSubscription, error)

	// Unsubscribe deactivates the subscription owning token.
	Unsubscribe(ctx context.Context, in UnsubscribeInput) error

	// List returns subscriptions. Supported filter: status.
	List(ctx context.Context, params ListParams) (*ListResult[model.NewsletterSubscription], error)

	Delete(ctx context.Context, id string) error

	// Export writes every subscription with the given status ("" for any) as CSV.
	Export(ctx context.Context, status string, w io.Writer) error
}

type newsletterService struct {
	repo    repository.NewsletterRepository
	mail    mailer.Mailer
	siteURL string
	hooks   changeHooks
}

// NewNewsletterService constructs a new NewsletterService. siteURL is used to build unsubscribe links.
func NewNewsletterService(repo repository.NewsletterRepository, mail mailer.Mailer, siteURL string, deps Deps) NewsletterService {
	return &newsletterService{
		repo:    repo,
		mail:    mail,
		siteURL: strings.TrimRight(siteURL, "/"),
		hooks:   deps.hooks("newsletter"),
	}
}

func (s *newsletterService) Subscribe(ctx context.Context, in SubscribeInput) (*model.NewsletterSubscription, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	now := time.Now().UTC()

	existing, err := s.repo.FindByEmailWithDeleted(ctx, email)
	switch {
	case err == nil:
		if existing.Status == model.NewsletterSubscribed && !existing.DeletedAt.Valid {
			return existing, nil
		}
		existing.Status = model.NewsletterSubscribed
		existing.SubscribedAt = now
		existing.UnsubscribedAt = nil
		existing.UnsubscribeToken = newToken()
		sub, err := s.repo.Restore(ctx, existing)
		if err != nil {
			return nil, mapRepoErr(err)
		}
		s.welcome(ctx, sub)
		return sub, nil

	case errors.Is(err, repository.ErrNotFound):
		sub, err := s.repo.Create(ctx, &model.NewsletterSubscription{
			Email:            email,
			Status:           model.NewsletterSubscribed,
			UnsubscribeToken: newToken(),
			SubscribedAt:     now,
		})
		if err != nil {
			return nil, mapRepoErr(err)
		}
		s.welcome(ctx, sub)
		return sub, nil

	default:
		return nil, err
	}
}

func (s *newsletterService) welcome(ctx context.Context, sub *model.NewsletterSubscription) {
	if s.mail == nil {
		return
	}
	link := fmt.Sprintf("%s/newsletter/unsubscribe?token=%s", s.siteURL, url.QueryEscape(sub.UnsubscribeToken))
	msg, err := mailer.NewsletterWelcome(sub.Email, link)
	if err == nil {
		err = s.mail.Send(ctx, msg)
	}
	if err != nil {
		s.hooks.lggr.Warn("newsletter_welcome_failed", zap.String("subscription_id", sub.ID), zap.Error(err))
	}
}

func (s *newsletterService) Unsubscribe(ctx context.Context, in UnsubscribeInput) error {
	if err := Validate(in); err != nil {
		return err
	}
	sub, err := s.repo.FindOne(ctx, map[string]any{"unsubscribe_token": in.Token})
	if err != nil {
		return mapRepoErr(err)
	}
	if sub.Status == model.NewsletterUnsubscribed {
		return nil
	}
	now := time.Now().UTC()
	sub.Status = model.NewsletterUnsubscribed
	sub.UnsubscribedAt = &now
	if _, err := s.repo.Update(ctx, sub); err != nil {
		return mapRepoErr(err)
	}
	return nil
}

func (s *newsletterService) List(ctx context.Context, params ListParams) (*ListResult[model.NewsletterSubscription], error) {
	res, err := s.repo.List(ctx, params.query([]string{"status"}, []string{"email"}))
	if err != nil {
		return nil, err
	}
	return toResult(res), nil
}

func (s *newsletterService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoErr(err)
	}
	s.hooks.changed(ctx, model.AuditDelete, "newsletter_subscription", id, nil)
	return nil
}

func (s *newsletterService) Export(ctx context.Context, status string, w io.Writer) error {
	subs, err := s.repo.ListAll(ctx, status)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"email", "status", "subscribed_at", "unsubscribed_at"}); err != nil {
		return err
	}
	for _, sub := range subs {
		unsub := ""
		if sub.UnsubscribedAt != nil {
			unsub = sub.UnsubscribedAt.UTC().Format(time.RFC3339)
		}
		row := []string{sub.Email, sub.Status, sub.SubscribedAt.UTC().Format(time.RFC3339), unsub}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func newToken() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
