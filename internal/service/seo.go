package service

import (
	"context"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// SEOService manages per-page metadata.
type SEOService interface {
	ContentService[model.SEO, SEOInput]

	// GetByPath returns the metadata for a page path such as "/services".
	GetByPath(ctx context.Context, path string) (*model.SEO, error)
}

type seoService struct {
	*contentService[model.SEO, SEOInput]
}

// NewSEOService constructs a new SEOService.
func NewSEOService(repo repository.Store[model.SEO], deps Deps) SEOService {
	return &seoService{contentService: newContentService[model.SEO, SEOInput](repo, SEOContent, deps)}
}

func (s *seoService) GetByPath(ctx context.Context, path string) (*model.SEO, error) {
	if path == "" {
		return nil, invalidField("path", "required")
	}
	out, err := s.repo.FindOne(ctx, map[string]any{"page_path": path})
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return out, nil
}
