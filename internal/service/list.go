package service

import (
	"strings"

	"sitecms/internal/repository"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ListParams are the paging and filtering options accepted by list operations.
type ListParams struct {
	Limit  int
	Offset int
	Search string
	// Filters are equality filters on whitelisted columns, e.g. category.
	Filters map[string]string
}

// ListResult is the service-level DTO for paginated lists.
type ListResult[T any] struct {
	Items []T `json:"data"`
	Total int `json:"total"`
}

func (p ListParams) page() repository.PageQuery {
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}
	return repository.PageQuery{Limit: limit, Offset: offset}
}

// query builds a repository query keeping only filters named in allowed.
func (p ListParams) query(allowed []string, searchColumns []string) repository.ListQuery {
	lq := repository.ListQuery{
		PageQuery:     p.page(),
		Search:        strings.TrimSpace(p.Search),
		SearchColumns: searchColumns,
	}
	for _, col := range allowed {
		if v, ok := p.Filters[col]; ok && v != "" {
			if lq.Where == nil {
				lq.Where = map[string]any{}
			}
			lq.Where[col] = filterValue(v)
		}
	}
	return lq
}

// filterValue keeps boolean filters typed so they compare against boolean columns.
func filterValue(v string) any {
	switch strings.ToLower(v) {
	case "true":
		return true
	case "false":
		return false
	default:
		return v
	}
}

func toResult[T any](res *repository.PageResult[T]) *ListResult[T] {
	return &ListResult[T]{Items: res.Items, Total: res.Total}
}
