// Package store holds the GORM-backed generic repository shared by every
// resource module.
package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/simp-lee/agencyhub/internal/domain"
	"github.com/simp-lee/agencyhub/internal/pkg"
)

// Repository is a typed collection over one table.
type Repository[T any] struct {
	db     *gorm.DB
	entity string
}

// New creates a repository for T. entity names the record in not-found
// messages, e.g. "project".
func New[T any](db *gorm.DB, entity string) *Repository[T] {
	return &Repository[T]{db: db, entity: entity}
}

// WithTx returns a copy of the repository bound to tx.
func (r *Repository[T]) WithTx(tx *gorm.DB) *Repository[T] {
	return &Repository[T]{db: tx, entity: r.entity}
}

func (r *Repository[T]) model(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(new(T))
}

// Create inserts a new record.
func (r *Repository[T]) Create(ctx context.Context, v *T) error {
	if err := r.db.WithContext(ctx).Create(v).Error; err != nil {
		return r.mapError(err)
	}
	return nil
}

// Get retrieves a record by its id.
func (r *Repository[T]) Get(ctx context.Context, id string) (*T, error) {
	var v T
	if err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		return nil, r.mapError(err)
	}
	return &v, nil
}

// FindOne returns the first record matching q.
func (r *Repository[T]) FindOne(ctx context.Context, q pkg.Query) (*T, error) {
	var v T
	if err := r.model(ctx).Scopes(pkg.Where(q), pkg.Sort(q)).First(&v).Error; err != nil {
		return nil, r.mapError(err)
	}
	return &v, nil
}

// Exists reports whether a record other than excludeID has column = value.
func (r *Repository[T]) Exists(ctx context.Context, column string, value any, excludeID string) (bool, error) {
	q := pkg.Query{}.Eq(column, value)
	db := r.model(ctx).Scopes(pkg.Where(q))
	if excludeID != "" {
		db = db.Where("id <> ?", excludeID)
	}
	var n int64
	if err := db.Limit(1).Count(&n).Error; err != nil {
		return false, r.mapError(err)
	}
	return n > 0, nil
}

// List returns one page of records matching q. Count and fetch share the
// same predicate.
func (r *Repository[T]) List(ctx context.Context, q pkg.Query, p pkg.PageParams) (*domain.PageResult[T], error) {
	var total int64
	base := r.model(ctx).Scopes(pkg.Where(q))

	if err := base.Count(&total).Error; err != nil {
		return nil, r.mapError(err)
	}

	var items []T
	if err := base.Scopes(pkg.Sort(q), pkg.Paginate(p)).Find(&items).Error; err != nil {
		return nil, r.mapError(err)
	}

	return pkg.NewPageResult(items, total, p), nil
}

// Find returns records matching q. A non-positive limit returns all of them.
func (r *Repository[T]) Find(ctx context.Context, q pkg.Query, limit int) ([]T, error) {
	db := r.model(ctx).Scopes(pkg.Where(q), pkg.Sort(q))
	if limit > 0 {
		db = db.Limit(limit)
	}
	var items []T
	if err := db.Find(&items).Error; err != nil {
		return nil, r.mapError(err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Save writes every column of an existing record except the omitted ones,
// which keeps counters maintained by Increment intact.
func (r *Repository[T]) Save(ctx context.Context, v *T, omit ...string) error {
	db := r.db.WithContext(ctx)
	if len(omit) > 0 {
		db = db.Omit(omit...)
	}
	if err := db.Save(v).Error; err != nil {
		return r.mapError(err)
	}
	return nil
}

// Delete removes a record by id.
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if result.Error != nil {
		return r.mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFound(r.entity)
	}
	return nil
}

// Count returns the number of records matching q.
func (r *Repository[T]) Count(ctx context.Context, q pkg.Query) (int64, error) {
	var n int64
	if err := r.model(ctx).Scopes(pkg.Where(q)).Count(&n).Error; err != nil {
		return 0, r.mapError(err)
	}
	return n, nil
}

// Increment adds by to a numeric column without touching updatedAt.
func (r *Repository[T]) Increment(ctx context.Context, id, column string, by int) error {
	result := r.model(ctx).Where("id = ?", id).UpdateColumn(column, gorm.Expr(column+" + ?", by))
	if result.Error != nil {
		return r.mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFound(r.entity)
	}
	return nil
}

// Reorder writes each item's position to column inside one transaction.
// Every id must exist; otherwise nothing changes and NotFound is returned.
func (r *Repository[T]) Reorder(ctx context.Context, column string, items []pkg.ReorderItem) error {
	return pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		for _, it := range items {
			result := tx.Model(new(T)).Where("id = ?", it.ID).UpdateColumn(column, it.Order)
			if result.Error != nil {
				return r.mapError(result.Error)
			}
			if result.RowsAffected == 0 {
				return domain.NewNotFound(r.entity)
			}
		}
		return nil
	})
}

type groupRow struct {
	Grp string
	N   int64
}

// GroupCount counts records matching q per distinct value of column.
func (r *Repository[T]) GroupCount(ctx context.Context, column string, q pkg.Query) (map[string]int64, error) {
	var rows []groupRow
	err := r.model(ctx).Scopes(pkg.Where(q)).
		Select(column + " AS grp, COUNT(*) AS n").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, r.mapError(err)
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Grp] = row.N
	}
	return out, nil
}

// Average returns AVG(column) over records matching q, or 0 when none match.
func (r *Repository[T]) Average(ctx context.Context, column string, q pkg.Query) (float64, error) {
	var avg sql.NullFloat64
	row := r.model(ctx).Scopes(pkg.Where(q)).Select("AVG(" + column + ")").Row()
	if err := row.Scan(&avg); err != nil {
		return 0, r.mapError(err)
	}
	return avg.Float64, nil
}

func (r *Repository[T]) mapError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NewNotFound(r.entity)
	}
	return MapError(err)
}

// MapError converts GORM errors to domain errors.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err) {
		return domain.NewAppError(domain.CodeAlreadyExists, "already exists", err)
	}
	return domain.NewAppError(domain.CodeInternal, "database error", err)
}

// isDuplicateKeyError detects unique constraint violations by examining the
// error message. Not every dialector translates driver errors to
// gorm.ErrDuplicatedKey (the pure-Go SQLite driver does not).
func isDuplicateKeyError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}
