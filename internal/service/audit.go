package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"sitecms/internal/auth"
	"sitecms/internal/model"
	"sitecms/internal/repository"
	"sitecms/internal/revalidate"
)

// AuditService records and lists backoffice changes.
type AuditService interface {
	// Record stores one audit entry attributed to the principal in ctx, if any.
	Record(ctx context.Context, action, entity, entityID string, details map[string]any) error

	// List returns audit entries newest first. Supported filters: entity, action, user_id.
	List(ctx context.Context, params ListParams) (*ListResult[model.AuditLog], error)
}

type auditService struct {
	repo repository.Store[model.AuditLog]
}

// NewAuditService constructs a new AuditService.
func NewAuditService(repo repository.Store[model.AuditLog]) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) Record(ctx context.Context, action, entity, entityID string, details map[string]any) error {
	entry := &model.AuditLog{
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Details:  details,
	}
	if p, ok := auth.FromContext(ctx); ok {
		if p.UserID != "" {
			uid := p.UserID
			entry.UserID = &uid
		}
		entry.IPAddress = p.IPAddress
	}
	if _, err := s.repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("record audit %s %s: %w", action, entity, err)
	}
	return nil
}

func (s *auditService) List(ctx context.Context, params ListParams) (*ListResult[model.AuditLog], error) {
	res, err := s.repo.List(ctx, params.query([]string{"entity", "action", "user_id"}, nil))
	if err != nil {
		return nil, err
	}
	return toResult(res), nil
}

// changeHooks runs the side effects of a successful backoffice write.
// Neither an audit failure nor a revalidation failure fails the write.
type changeHooks struct {
	audit AuditService
	reval revalidate.Revalidator
	lggr  *zap.Logger
}

func (h changeHooks) changed(ctx context.Context, action, entity, entityID string, details map[string]any, tags ...string) {
	if h.audit != nil {
		if err := h.audit.Record(ctx, action, entity, entityID, details); err != nil {
			h.lggr.Error("audit_record_failed",
				zap.String("entity", entity),
				zap.String("entity_id", entityID),
				zap.Error(err),
			)
		}
	}
	if h.reval != nil && len(tags) > 0 {
		if err := h.reval.Revalidate(ctx, tags...); err != nil {
			h.lggr.Warn("revalidate_failed", zap.Strings("tags", tags), zap.Error(err))
		}
	}
}
