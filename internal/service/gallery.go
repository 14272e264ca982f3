package service

import (
	"context"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// GalleryUploadInput holds the form fields sent with a gallery upload.
type GalleryUploadInput struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"max=1000"`
	Category    string `json:"category" validate:"max=100"`
}

// GalleryService manages gallery items, including direct image uploads.
type GalleryService interface {
	ContentService[model.GalleryItem, GalleryInput]

	// Upload stores the image and creates a published item for it.
	// The object is removed again if the row cannot be saved.
	Upload(ctx context.Context, up Upload, in GalleryUploadInput) (*model.GalleryItem, error)
}

type galleryService struct {
	*contentService[model.GalleryItem, GalleryInput]
	media MediaService
}

// NewGalleryService constructs a new GalleryService.
func NewGalleryService(repo repository.Store[model.GalleryItem], media MediaService, deps Deps) GalleryService {
	return &galleryService{
		contentService: newContentService[model.GalleryItem, GalleryInput](repo, GalleryContent, deps),
		media:          media,
	}
}

func (s *galleryService) Upload(ctx context.Context, up Upload, in GalleryUploadInput) (*model.GalleryItem, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	obj, err := s.media.Upload(ctx, "gallery", up)
	if err != nil {
		return nil, err
	}

	item := &model.GalleryItem{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		ImageURL:    obj.URL,
		StorageKey:  obj.Key,
		IsPublished: true,
	}
	stored, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, rollbackUpload(ctx, s.media, obj.Key, mapRepoErr(err))
	}
	s.hooks.changed(ctx, model.AuditCreate, s.opts.Entity, stored.ID, map[string]any{"storage_key": obj.Key}, s.opts.Tags...)
	return stored, nil
}
