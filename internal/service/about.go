package service

import (
	"context"
	"errors"

	"sitecms/internal/model"
	"sitecms/internal/repository"
	"sitecms/internal/revalidate"
)

// AboutService reads and replaces the singleton about block.
type AboutService interface {
	// Get returns the about block, or an empty one if none was saved yet.
	Get(ctx context.Context) (*model.AboutContent, error)
	Update(ctx context.Context, in AboutInput) (*model.AboutContent, error)
}

type aboutService struct {
	repo  repository.Store[model.AboutContent]
	hooks changeHooks
}

// NewAboutService constructs a new AboutService.
func NewAboutService(repo repository.Store[model.AboutContent], deps Deps) AboutService {
	return &aboutService{repo: repo, hooks: deps.hooks("about")}
}

func (s *aboutService) Get(ctx context.Context) (*model.AboutContent, error) {
	a, err := s.repo.FindOne(ctx, nil)
	if errors.Is(err, repository.ErrNotFound) {
		return &model.AboutContent{}, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *aboutService) Update(ctx context.Context, in AboutInput) (*model.AboutContent, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	existing, err := s.repo.FindOne(ctx, nil)
	var out *model.AboutContent
	switch {
	case errors.Is(err, repository.ErrNotFound):
		a := &model.AboutContent{}
		in.Apply(a)
		out, err = s.repo.Create(ctx, a)
	case err != nil:
		return nil, err
	default:
		in.Apply(existing)
		out, err = s.repo.Update(ctx, existing)
	}
	if err != nil {
		return nil, mapRepoErr(err)
	}
	s.hooks.changed(ctx, model.AuditUpdate, "about", out.ID, nil, revalidate.TagAbout)
	return out, nil
}
