package repository

import (
	"context"
	"errors"
)

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres) inside this directory.
// No business logic here: strictly persistence operations.

var (
	// ErrNotFound is returned when no live (non soft-deleted) row matches.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}

// ListQuery describes a filtered, searched and ordered page of rows.
type ListQuery struct {
	PageQuery
	// Where holds column equality filters.
	Where map[string]any
	// Search is matched case-insensitively against SearchColumns.
	Search        string
	SearchColumns []string
	// Order overrides the store's default ordering.
	Order   string
	Preload []string
}

// Store is the CRUD contract shared by every persisted entity.
type Store[T any] interface {
	// Create inserts a new row and returns the stored record.
	Create(ctx context.Context, entity *T) (*T, error)

	// FindByID returns a live row by its primary key.
	FindByID(ctx context.Context, id string, preload ...string) (*T, error)

	// FindOne returns the first live row matching all equality conditions.
	FindOne(ctx context.Context, where map[string]any, preload ...string) (*T, error)

	// List returns a page of live rows and the total count for the filter.
	List(ctx context.Context, q ListQuery) (*PageResult[T], error)

	// Update writes every column of entity, including zero values.
	Update(ctx context.Context, entity *T) (*T, error)

	// Delete removes a row by ID; entities with a deleted_at column are soft-deleted.
	// Returns ErrNotFound when no live row matched.
	Delete(ctx context.Context, id string) error

	// Reorder sets sort_order to each ID's position in ids, atomically.
	Reorder(ctx context.Context, ids []string) error

	// Count returns the number of live rows matching all equality conditions.
	Count(ctx context.Context, where map[string]any) (int64, error)
}
