package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sitecms/internal/repository"
)

const uniqueViolation = "23505"

// Store is a gorm implementation of repository.Store for any entity type.
// It contains no business logic.
type Store[T any] struct {
	db           *gorm.DB
	defaultOrder string
}

// StoreOption customises a Store.
type StoreOption func(*storeOptions)

type storeOptions struct {
	defaultOrder string
}

// WithDefaultOrder sets the ORDER BY used when a ListQuery does not provide one.
func WithDefaultOrder(order string) StoreOption {
	return func(o *storeOptions) { o.defaultOrder = order }
}

// NewStore creates a new gorm-backed Store.
func NewStore[T any](db *gorm.DB, opts ...StoreOption) *Store[T] {
	o := storeOptions{defaultOrder: "created_at DESC, id DESC"}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[T]{db: db, defaultOrder: o.defaultOrder}
}

// SortedOrder is the ordering for manually sorted content.
const SortedOrder = "sort_order ASC, created_at DESC"

// Create inserts a new row and returns the stored record.
func (s *Store[T]) Create(ctx context.Context, entity *T) (*T, error) {
	if err := s.db.WithContext(ctx).Create(entity).Error; err != nil {
		return nil, mapErr(err)
	}
	return entity, nil
}

// FindByID fetches a single live row by its ID.
func (s *Store[T]) FindByID(ctx context.Context, id string, preload ...string) (*T, error) {
	return s.FindOne(ctx, map[string]any{"id": id}, preload...)
}

// FindOne fetches the first live row matching where.
func (s *Store[T]) FindOne(ctx context.Context, where map[string]any, preload ...string) (*T, error) {
	q := s.db.WithContext(ctx)
	for _, p := range preload {
		q = q.Preload(p)
	}
	if len(where) > 0 {
		q = q.Where(where)
	}
	var out T
	if err := q.Take(&out).Error; err != nil {
		return nil, mapErr(err)
	}
	return &out, nil
}

// List returns rows using LIMIT/OFFSET pagination and a total count.
func (s *Store[T]) List(ctx context.Context, lq repository.ListQuery) (*repository.PageResult[T], error) {
	q := applyFilters(s.db.WithContext(ctx).Model(new(T)), lq)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, mapErr(err)
	}

	order := lq.Order
	if order == "" {
		order = s.defaultOrder
	}
	q = q.Order(order)
	for _, p := range lq.Preload {
		q = q.Preload(p)
	}
	if lq.Limit > 0 {
		q = q.Limit(lq.Limit)
	}
	if lq.Offset > 0 {
		q = q.Offset(lq.Offset)
	}

	items := make([]T, 0)
	if err := q.Find(&items).Error; err != nil {
		return nil, mapErr(err)
	}

	return &repository.PageResult[T]{
		Items: items,
		Total: int(total),
	}, nil
}

// Update writes every column of entity, including zero values. Associations are left untouched.
func (s *Store[T]) Update(ctx context.Context, entity *T) (*T, error) {
	res := s.db.WithContext(ctx).
		Model(entity).
		Select("*").
		Omit("id", "created_at", "deleted_at", clause.Associations).
		Updates(entity)
	if res.Error != nil {
		return nil, mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, repository.ErrNotFound
	}
	return entity, nil
}

// Delete removes (or soft-deletes) a row by ID.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Reorder assigns sort_order by position inside a single transaction.
func (s *Store[T]) Reorder(ctx context.Context, ids []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			res := tx.Model(new(T)).Where("id = ?", id).Update("sort_order", i)
			if res.Error != nil {
				return mapErr(res.Error)
			}
			if res.RowsAffected == 0 {
				return repository.ErrNotFound
			}
		}
		return nil
	})
}

// Count returns the number of live rows matching where.
func (s *Store[T]) Count(ctx context.Context, where map[string]any) (int64, error) {
	q := s.db.WithContext(ctx).Model(new(T))
	if len(where) > 0 {
		q = q.Where(where)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, mapErr(err)
	}
	return n, nil
}

func applyFilters(q *gorm.DB, lq repository.ListQuery) *gorm.DB {
	if len(lq.Where) > 0 {
		q = q.Where(lq.Where)
	}
	if term := strings.TrimSpace(lq.Search); term != "" && len(lq.SearchColumns) > 0 {
		pattern := "%" + escapeLike(term) + "%"
		parts := make([]string, 0, len(lq.SearchColumns))
		args := make([]any, 0, len(lq.SearchColumns))
		for _, col := range lq.SearchColumns {
			parts = append(parts, col+" ILIKE ?")
			args = append(args, pattern)
		}
		q = q.Where("("+strings.Join(parts, " OR ")+")", args...)
	}
	return q
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// mapErr translates driver and gorm errors into repository sentinels.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", repository.ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}
