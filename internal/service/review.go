package service

import (
	"context"
	"strings"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// ReviewService manages testimonials and accepts public submissions.
type ReviewService interface {
	ContentService[model.Review, ReviewInput]

	// Submit stores a visitor's review unpublished, pending moderation.
	Submit(ctx context.Context, in ReviewSubmission) (*model.Review, error)
}

type reviewService struct {
	*contentService[model.Review, ReviewInput]
}

// NewReviewService constructs a new ReviewService.
func NewReviewService(repo repository.Store[model.Review], deps Deps) ReviewService {
	return &reviewService{contentService: newContentService[model.Review, ReviewInput](repo, ReviewContent, deps)}
}

func (s *reviewService) Submit(ctx context.Context, in ReviewSubmission) (*model.Review, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	review := &model.Review{
		AuthorName:  strings.TrimSpace(in.AuthorName),
		AuthorTitle: in.AuthorTitle,
		Company:     in.Company,
		Content:     in.Content,
		Rating:      in.Rating,
		IsPublished: false,
	}
	stored, err := s.repo.Create(ctx, review)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return stored, nil
}
