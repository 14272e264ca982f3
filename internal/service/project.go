package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// ProjectService manages portfolio projects and their image galleries.
type ProjectService interface {
	ContentService[model.Project, ProjectInput]

	// AddImage attaches an already hosted image to a project.
	AddImage(ctx context.Context, projectID string, in ProjectImageInput) (*model.ProjectImage, error)

	// UploadImage stores an image and attaches it to a project.
	UploadImage(ctx context.Context, projectID string, up Upload, caption string) (*model.ProjectImage, error)

	// RemoveImage detaches an image and deletes its stored object, if any.
	RemoveImage(ctx context.Context, projectID, imageID string) error

	// ReorderImages sets the display order of a project's images. Every ID must belong to the project.
	ReorderImages(ctx context.Context, projectID string, ids []string) error
}

type projectService struct {
	*contentService[model.Project, ProjectInput]
	projects repository.ProjectRepository
	images   repository.Store[model.ProjectImage]
	services repository.Store[model.Service]
	media    MediaService
}

// NewProjectService constructs a new ProjectService.
func NewProjectService(
	projects repository.ProjectRepository,
	images repository.Store[model.ProjectImage],
	services repository.Store[model.Service],
	media MediaService,
	deps Deps,
) ProjectService {
	s := &projectService{
		contentService: newContentService[model.Project, ProjectInput](projects, ProjectContent, deps),
		projects:       projects,
		images:         images,
		services:       services,
		media:          media,
	}
	s.check = s.checkService
	return s
}

// checkService rejects references to services that do not exist.
func (s *projectService) checkService(ctx context.Context, in ProjectInput) error {
	if in.ServiceID == nil || *in.ServiceID == "" {
		return nil
	}
	if _, err := s.services.FindByID(ctx, *in.ServiceID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return invalidField("service_id", "exists")
		}
		return err
	}
	return nil
}

// ListPublic lists published projects. The "service" filter matches the service slug.
func (s *projectService) ListPublic(ctx context.Context, params ListParams) (*ListResult[model.Project], error) {
	q := params.query([]string{"is_featured"}, s.opts.SearchColumns)
	q.Where = mergeWhere(q.Where, s.opts.PublicWhere)
	res, err := s.projects.ListByService(ctx, params.Filters["service"], q)
	if err != nil {
		return nil, err
	}
	return toResult(res), nil
}

// Get returns a project with its images.
func (s *projectService) Get(ctx context.Context, id string) (*model.Project, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	p, err := s.projects.FindWithImages(ctx, map[string]any{"id": id})
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return p, nil
}

// GetBySlug returns a published project with its images.
func (s *projectService) GetBySlug(ctx context.Context, slug string) (*model.Project, error) {
	if slug == "" {
		return nil, ErrNotFound
	}
	p, err := s.projects.FindWithImages(ctx, mergeWhere(map[string]any{"slug": slug}, s.opts.PublicWhere))
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return p, nil
}

func (s *projectService) AddImage(ctx context.Context, projectID string, in ProjectImageInput) (*model.ProjectImage, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	if err := s.exists(ctx, projectID); err != nil {
		return nil, err
	}
	img, err := s.images.Create(ctx, &model.ProjectImage{
		ProjectID: projectID,
		URL:       in.URL,
		Caption:   in.Caption,
		Sortable:  model.Sortable{SortOrder: in.SortOrder},
	})
	if err != nil {
		return nil, mapRepoErr(err)
	}
	s.hooks.changed(ctx, model.AuditCreate, "project_image", img.ID, map[string]any{"project_id": projectID}, s.opts.Tags...)
	return img, nil
}

func (s *projectService) UploadImage(ctx context.Context, projectID string, up Upload, caption string) (*model.ProjectImage, error) {
	if len(caption) > 255 {
		return nil, invalidField("caption", "max")
	}
	if err := s.exists(ctx, projectID); err != nil {
		return nil, err
	}
	count, err := s.images.Count(ctx, map[string]any{"project_id": projectID})
	if err != nil {
		return nil, err
	}

	obj, err := s.media.Upload(ctx, "projects/"+projectID, up)
	if err != nil {
		return nil, err
	}
	img, err := s.images.Create(ctx, &model.ProjectImage{
		ProjectID:  projectID,
		URL:        obj.URL,
		StorageKey: obj.Key,
		Caption:    caption,
		Sortable:   model.Sortable{SortOrder: int(count)},
	})
	if err != nil {
		return nil, rollbackUpload(ctx, s.media, obj.Key, mapRepoErr(err))
	}
	s.hooks.changed(ctx, model.AuditUpload, "project_image", img.ID, map[string]any{"project_id": projectID, "storage_key": obj.Key}, s.opts.Tags...)
	return img, nil
}

func (s *projectService) RemoveImage(ctx context.Context, projectID, imageID string) error {
	if projectID == "" || imageID == "" {
		return ErrIDRequired
	}
	img, err := s.images.FindOne(ctx, map[string]any{"id": imageID, "project_id": projectID})
	if err != nil {
		return mapRepoErr(err)
	}
	if err := s.images.Delete(ctx, img.ID); err != nil {
		return mapRepoErr(err)
	}
	if img.StorageKey != "" {
		// the row is gone; an orphaned object is only wasted space
		if err := s.media.Remove(ctx, img.StorageKey); err != nil {
			s.hooks.lggr.Warn("project_image_object_delete_failed",
				zap.String("key", img.StorageKey),
				zap.Error(err),
			)
		}
	}
	s.hooks.changed(ctx, model.AuditDelete, "project_image", imageID, map[string]any{"project_id": projectID}, s.opts.Tags...)
	return nil
}

func (s *projectService) ReorderImages(ctx context.Context, projectID string, ids []string) error {
	if projectID == "" {
		return ErrIDRequired
	}
	if err := Validate(ReorderInput{IDs: ids}); err != nil {
		return err
	}
	n, err := s.images.Count(ctx, map[string]any{"project_id": projectID, "id": ids})
	if err != nil {
		return err
	}
	if int(n) != len(ids) {
		return invalidField("ids", "project_image")
	}
	if err := s.images.Reorder(ctx, ids); err != nil {
		return mapRepoErr(err)
	}
	s.hooks.changed(ctx, model.AuditReorder, "project_image", projectID, map[string]any{"ids": ids}, s.opts.Tags...)
	return nil
}

func (s *projectService) exists(ctx context.Context, projectID string) error {
	if projectID == "" {
		return ErrIDRequired
	}
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("find project: %w", err)
	}
	return nil
}
