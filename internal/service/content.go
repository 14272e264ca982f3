package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"sitecms/internal/model"
	"sitecms/internal/repository"
	"sitecms/internal/revalidate"
)

// Input is a validated request payload that knows how to write itself onto an entity.
// Apply overwrites every field the payload carries (PUT is a full replace).
type Input[T any] interface {
	Apply(*T)
}

// ContentService is the CRUD use case shared by every piece of site content.
type ContentService[T any, I Input[T]] interface {
	// List returns every live row for the backoffice.
	List(ctx context.Context, params ListParams) (*ListResult[T], error)

	// ListPublic returns only rows visible on the site, in display order.
	ListPublic(ctx context.Context, params ListParams) (*ListResult[T], error)

	// Get returns a row by ID.
	Get(ctx context.Context, id string) (*T, error)

	// GetBySlug returns a publicly visible row by slug.
	GetBySlug(ctx context.Context, slug string) (*T, error)

	Create(ctx context.Context, in I) (*T, error)
	Update(ctx context.Context, id string, in I) (*T, error)

	// Delete soft-deletes a row.
	Delete(ctx context.Context, id string) error

	// Reorder sets the display order to the order of ids.
	Reorder(ctx context.Context, ids []string) error
}

// ContentOptions describe one content type.
type ContentOptions struct {
	// Entity is the audit log entity name.
	Entity string
	// Tags are the cache tags invalidated after every write.
	Tags []string
	// PublicWhere restricts public reads (e.g. is_active = true).
	PublicWhere map[string]any
	// Filters are the columns list operations may filter on.
	Filters       []string
	SearchColumns []string
	Sortable      bool
}

// Content types served by the generic service.
var (
	ServiceContent = ContentOptions{
		Entity:        "service",
		Tags:          []string{revalidate.TagServices},
		PublicWhere:   map[string]any{"is_active": true},
		Filters:       []string{"is_active"},
		SearchColumns: []string{"title", "summary"},
		Sortable:      true,
	}
	PackageContent = ContentOptions{
		Entity:        "package",
		Tags:          []string{revalidate.TagPackages},
		PublicWhere:   map[string]any{"is_active": true},
		Filters:       []string{"is_active", "is_featured"},
		SearchColumns: []string{"name", "description"},
		Sortable:      true,
	}
	ProjectContent = ContentOptions{
		Entity:        "project",
		Tags:          []string{revalidate.TagProjects},
		PublicWhere:   map[string]any{"is_published": true},
		Filters:       []string{"is_published", "is_featured", "service_id"},
		SearchColumns: []string{"title", "client", "summary"},
		Sortable:      true,
	}
	ReviewContent = ContentOptions{
		Entity:        "review",
		Tags:          []string{revalidate.TagReviews},
		PublicWhere:   map[string]any{"is_published": true},
		Filters:       []string{"is_published", "rating"},
		SearchColumns: []string{"author_name", "company", "content"},
		Sortable:      true,
	}
	GalleryContent = ContentOptions{
		Entity:        "gallery_item",
		Tags:          []string{revalidate.TagGallery},
		PublicWhere:   map[string]any{"is_published": true},
		Filters:       []string{"category", "is_published"},
		SearchColumns: []string{"title", "description"},
		Sortable:      true,
	}
	StatContent = ContentOptions{
		Entity:   "stat",
		Tags:     []string{revalidate.TagStats},
		Sortable: true,
	}
	FAQContent = ContentOptions{
		Entity:        "faq",
		Tags:          []string{revalidate.TagFAQs},
		PublicWhere:   map[string]any{"is_active": true},
		Filters:       []string{"category", "is_active"},
		SearchColumns: []string{"question", "answer"},
		Sortable:      true,
	}
	SEOContent = ContentOptions{
		Entity:        "seo",
		Tags:          []string{revalidate.TagSEO},
		SearchColumns: []string{"page_path", "title"},
	}
)

// Deps are the collaborators every write path needs.
type Deps struct {
	Audit       AuditService
	Revalidator revalidate.Revalidator
	Logger      *zap.Logger
}

func (d Deps) hooks(name string) changeHooks {
	lggr := d.Logger
	if lggr == nil {
		lggr = zap.NewNop()
	}
	return changeHooks{audit: d.Audit, reval: d.Revalidator, lggr: lggr.Named(name)}
}

// ReorderInput is the body of a reorder request.
type ReorderInput struct {
	IDs []string `json:"ids" validate:"required,min=1,unique,dive,uuid"`
}

type contentService[T any, I Input[T]] struct {
	repo  repository.Store[T]
	opts  ContentOptions
	hooks changeHooks
	// check runs after validation and before any write.
	check func(ctx context.Context, in I) error
}

// NewContentService constructs a ContentService for one content type.
func NewContentService[T any, I Input[T]](repo repository.Store[T], opts ContentOptions, deps Deps) ContentService[T, I] {
	return newContentService[T, I](repo, opts, deps)
}

func newContentService[T any, I Input[T]](repo repository.Store[T], opts ContentOptions, deps Deps) *contentService[T, I] {
	return &contentService[T, I]{repo: repo, opts: opts, hooks: deps.hooks(opts.Entity)}
}

func (s *contentService[T, I]) List(ctx context.Context, params ListParams) (*ListResult[T], error) {
	res, err := s.repo.List(ctx, params.query(s.opts.Filters, s.opts.SearchColumns))
	if err != nil {
		return nil, err
	}
	return toResult(res), nil
}

func (s *contentService[T, I]) ListPublic(ctx context.Context, params ListParams) (*ListResult[T], error) {
	q := params.query(s.opts.Filters, s.opts.SearchColumns)
	q.Where = mergeWhere(q.Where, s.opts.PublicWhere)
	res, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return toResult(res), nil
}

func (s *contentService[T, I]) Get(ctx context.Context, id string) (*T, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	out, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return out, nil
}

func (s *contentService[T, I]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	if slug == "" {
		return nil, ErrNotFound
	}
	out, err := s.repo.FindOne(ctx, mergeWhere(map[string]any{"slug": slug}, s.opts.PublicWhere))
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return out, nil
}

func (s *contentService[T, I]) Create(ctx context.Context, in I) (*T, error) {
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}
	entity := new(T)
	in.Apply(entity)
	stored, err := s.repo.Create(ctx, entity)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	s.hooks.changed(ctx, model.AuditCreate, s.opts.Entity, idOf(stored), nil, s.opts.Tags...)
	return stored, nil
}

func (s *contentService[T, I]) Update(ctx context.Context, id string, in I) (*T, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	in.Apply(existing)
	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	s.hooks.changed(ctx, model.AuditUpdate, s.opts.Entity, id, nil, s.opts.Tags...)
	return updated, nil
}

func (s *contentService[T, I]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoErr(err)
	}
	s.hooks.changed(ctx, model.AuditDelete, s.opts.Entity, id, nil, s.opts.Tags...)
	return nil
}

func (s *contentService[T, I]) Reorder(ctx context.Context, ids []string) error {
	if !s.opts.Sortable {
		return invalidField("ids", "not_sortable")
	}
	if err := Validate(ReorderInput{IDs: ids}); err != nil {
		return err
	}
	if err := s.repo.Reorder(ctx, ids); err != nil {
		return mapRepoErr(err)
	}
	s.hooks.changed(ctx, model.AuditReorder, s.opts.Entity, "", map[string]any{"ids": ids}, s.opts.Tags...)
	return nil
}

func (s *contentService[T, I]) validate(ctx context.Context, in I) error {
	if err := Validate(in); err != nil {
		return err
	}
	if s.check != nil {
		return s.check(ctx, in)
	}
	return nil
}

// mergeWhere returns a new map holding a overlaid with b.
func mergeWhere(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func idOf(entity any) string {
	if pk, ok := entity.(interface{ PrimaryKey() string }); ok {
		return pk.PrimaryKey()
	}
	return ""
}

// isNotFound reports whether err is a missing-row error from either layer.
func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, repository.ErrNotFound)
}
