package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// DashboardStats are the headline counts of the backoffice home page.
type DashboardStats struct {
	Services          int64 `json:"services"`
	Packages          int64 `json:"packages"`
	Projects          int64 `json:"projects"`
	PublishedProjects int64 `json:"published_projects"`
	Reviews           int64 `json:"reviews"`
	PendingReviews    int64 `json:"pending_reviews"`
	GalleryItems      int64 `json:"gallery_items"`
	FAQs              int64 `json:"faqs"`
	PendingContacts   int64 `json:"pending_contacts"`
	Subscribers       int64 `json:"subscribers"`
}

// DashboardService aggregates counts across content types.
type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
}

// DashboardRepos are the stores the dashboard counts rows in.
type DashboardRepos struct {
	Services   repository.Store[model.Service]
	Packages   repository.Store[model.Package]
	Projects   repository.Store[model.Project]
	Reviews    repository.Store[model.Review]
	Gallery    repository.Store[model.GalleryItem]
	FAQs       repository.Store[model.FAQ]
	Contacts   repository.Store[model.ContactSubmission]
	Newsletter repository.Store[model.NewsletterSubscription]
}

type dashboardService struct {
	repos DashboardRepos
}

// NewDashboardService constructs a new DashboardService.
func NewDashboardService(repos DashboardRepos) DashboardService {
	return &dashboardService{repos: repos}
}

type counter func(ctx context.Context, where map[string]any) (int64, error)

func (s *dashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	var out DashboardStats
	counts := []struct {
		name  string
		count counter
		where map[string]any
		dst   *int64
	}{
		{"services", s.repos.Services.Count, map[string]any{"is_active": true}, &out.Services},
		{"packages", s.repos.Packages.Count, map[string]any{"is_active": true}, &out.Packages},
		{"projects", s.repos.Projects.Count, nil, &out.Projects},
		{"published projects", s.repos.Projects.Count, map[string]any{"is_published": true}, &out.PublishedProjects},
		{"reviews", s.repos.Reviews.Count, map[string]any{"is_published": true}, &out.Reviews},
		{"pending reviews", s.repos.Reviews.Count, map[string]any{"is_published": false}, &out.PendingReviews},
		{"gallery", s.repos.Gallery.Count, map[string]any{"is_published": true}, &out.GalleryItems},
		{"faqs", s.repos.FAQs.Count, map[string]any{"is_active": true}, &out.FAQs},
		{"pending contacts", s.repos.Contacts.Count, map[string]any{"status": model.ContactPending}, &out.PendingContacts},
		{"subscribers", s.repos.Newsletter.Count, map[string]any{"status": model.NewsletterSubscribed}, &out.Subscribers},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, c := range counts {
		g.Go(func() error {
			n, err := c.count(gctx, c.where)
			if err != nil {
				return fmt.Errorf("count %s: %w", c.name, err)
			}
			*c.dst = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
