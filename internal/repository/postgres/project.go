package postgres

import (
	"context"

	"gorm.io/gorm"

	"sitecms/internal/model"
	"sitecms/internal/repository"
)

// ProjectPostgres is a PostgreSQL implementation of repository.ProjectRepository.
type ProjectPostgres struct {
	*Store[model.Project]
	db *gorm.DB
}

// NewProjectPostgres creates a new ProjectPostgres repository.
func NewProjectPostgres(db *gorm.DB) *ProjectPostgres {
	return &ProjectPostgres{
		Store: NewStore[model.Project](db, WithDefaultOrder(SortedOrder)),
		db:    db,
	}
}

var _ repository.ProjectRepository = (*ProjectPostgres)(nil)

// FindWithImages loads one project with its ordered images and joined service.
func (r *ProjectPostgres) FindWithImages(ctx context.Context, where map[string]any) (*model.Project, error) {
	var p model.Project
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).
		Joins("Service").
		Where(qualify("projects", where)).
		Take(&p).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

// ListByService returns projects LEFT JOINed to their service, optionally filtered by service slug.
func (r *ProjectPostgres) ListByService(ctx context.Context, serviceSlug string, lq repository.ListQuery) (*repository.PageResult[model.Project], error) {
	q := r.db.WithContext(ctx).Model(&model.Project{}).Joins("Service")
	if len(lq.Where) > 0 {
		q = q.Where(qualify("projects", lq.Where))
	}
	if serviceSlug != "" {
		q = q.Where(`"Service"."slug" = ?`, serviceSlug)
	}
	if lq.Search != "" {
		cols := make([]string, 0, len(lq.SearchColumns))
		for _, c := range lq.SearchColumns {
			cols = append(cols, "projects."+c)
		}
		q = applyFilters(q, repository.ListQuery{Search: lq.Search, SearchColumns: cols})
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, mapErr(err)
	}

	order := lq.Order
	if order == "" {
		order = "projects.sort_order ASC, projects.created_at DESC"
	}
	q = q.Order(order)
	if lq.Limit > 0 {
		q = q.Limit(lq.Limit)
	}
	if lq.Offset > 0 {
		q = q.Offset(lq.Offset)
	}

	items := make([]model.Project, 0)
	if err := q.Find(&items).Error; err != nil {
		return nil, mapErr(err)
	}
	return &repository.PageResult[model.Project]{Items: items, Total: int(total)}, nil
}

// qualify prefixes bare column names with table to keep them unambiguous inside JOINs.
func qualify(table string, where map[string]any) map[string]any {
	out := make(map[string]any, len(where))
	for k, v := range where {
		out[table+"."+k] = v
	}
	return out
}
