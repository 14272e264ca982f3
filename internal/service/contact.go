package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"sitecms/internal/mailer"
	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// ContactService handles the public contact form and its backoffice inbox.
type ContactService interface {
	// Submit stores a submission as pending and notifies the site owner by email.
	// Mail failures are logged, never returned.
	Submit(ctx context.Context, in ContactInput, ip string) (*model.ContactSubmission, error)

	// List returns submissions newest first. Supported filter: status.
	List(ctx context.Context, params ListParams) (*ListResult[model.ContactSubmission], error)

	Get(ctx context.Context, id string) (*model.ContactSubmission, error)

	// UpdateStatus moves a submission to another status; entering replied stamps replied_at.
	UpdateStatus(ctx context.Context, id string, in ContactStatusInput) (*model.ContactSubmission, error)

	Delete(ctx context.Context, id string) error
}

type contactService struct {
	repo     repository.Store[model.ContactSubmission]
	mail     mailer.Mailer
	notifyTo string
	hooks    changeHooks
}

// NewContactService constructs a new ContactService. notifyTo may be empty to skip notifications.
func NewContactService(repo repository.Store[model.ContactSubmission], mail mailer.Mailer, notifyTo string, deps Deps) ContactService {
	return &contactService{repo: repo, mail: mail, notifyTo: notifyTo, hooks: deps.hooks("contact")}
}

func (s *contactService) Submit(ctx context.Context, in ContactInput, ip string) (*model.ContactSubmission, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	sub := &model.ContactSubmission{
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     in.Phone,
		Subject:   in.Subject,
		Message:   in.Message,
		Status:    model.ContactPending,
		IPAddress: ip,
	}
	stored, err := s.repo.Create(ctx, sub)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	s.notify(ctx, stored)
	return stored, nil
}

func (s *contactService) notify(ctx context.Context, sub *model.ContactSubmission) {
	if s.mail == nil || s.notifyTo == "" {
		return
	}
	msg, err := mailer.ContactNotification(s.notifyTo, mailer.ContactData{
		Name:    sub.Name,
		Email:   sub.Email,
		Phone:   sub.Phone,
		Subject: sub.Subject,
		Message: sub.Message,
	})
	if err == nil {
		err = s.mail.Send(ctx, msg)
	}
	if err != nil {
		s.hooks.lggr.Warn("contact_notification_failed", zap.String("contact_id", sub.ID), zap.Error(err))
	}
}

func (s *contactService) List(ctx context.Context, params ListParams) (*ListResult[model.ContactSubmission], error) {
	if st, ok := params.Filters["status"]; ok && st != "" && !validContactStatus(st) {
		return nil, invalidField("status", "oneof")
	}
	res, err := s.repo.List(ctx, params.query([]string{"status"}, []string{"name", "email", "subject"}))
	if err != nil {
		return nil, err
	}
	return toResult(res), nil
}

func (s *contactService) Get(ctx context.Context, id string) (*model.ContactSubmission, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return sub, nil
}

func (s *contactService) UpdateStatus(ctx context.Context, id string, in ContactStatusInput) (*model.ContactSubmission, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if err := Validate(in); err != nil {
		return nil, err
	}
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	from := sub.Status
	sub.Status = in.Status
	if in.Status == model.ContactReplied && from != model.ContactReplied {
		now := time.Now().UTC()
		sub.RepliedAt = &now
	}
	updated, err := s.repo.Update(ctx, sub)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	s.hooks.changed(ctx, model.AuditStatus, "contact", id, map[string]any{"from": from, "to": in.Status})
	return updated, nil
}

func (s *contactService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoErr(err)
	}
	s.hooks.changed(ctx, model.AuditDelete, "contact", id, nil)
	return nil
}

func validContactStatus(s string) bool {
	for _, st := range model.ContactStatuses {
		if s == st {
			return true
		}
	}
	return false
}
