// file: internals/databases/repository/repository.go
package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound sengaja sama dengan gorm supaya errors.Is(err, gorm.ErrRecordNotFound)
// tetap jalan untuk implementasi in-memory.
var ErrNotFound = gorm.ErrRecordNotFound

// Filter is an equality filter on column names (the gorm column tags).
type Filter struct {
	Eq          map[string]any
	In          map[string][]any
	ExcludeID   *uuid.UUID // dipakai saat cek unik pada update
	WithDeleted bool
	OnlyDeleted bool
	OrderBy     string // kolom, default urutan primary key / insert
}

func Where(col string, v any) Filter {
	return Filter{Eq: map[string]any{col: v}}
}

// And returns a copy of f with one more equality condition.
func (f Filter) And(col string, v any) Filter {
	eq := make(map[string]any, len(f.Eq)+1)
	for k, x := range f.Eq {
		eq[k] = x
	}
	eq[col] = v
	f.Eq = eq
	return f
}

// Repository is the storage contract every feature uses. Delete is always a
// soft delete; Purge is the development-only hard wipe.
type Repository[T any] interface {
	List(ctx context.Context, f Filter) ([]T, error)
	Get(ctx context.Context, id uuid.UUID) (*T, error)
	GetUnscoped(ctx context.Context, id uuid.UUID) (*T, error)
	First(ctx context.Context, f Filter) (*T, error)
	Count(ctx context.Context, f Filter) (int64, error)
	Create(ctx context.Context, ent *T) error
	Save(ctx context.Context, ent *T) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) (*T, error)
	Purge(ctx context.Context) error
}

// Exists: helper kecil untuk cek unik.
func Exists[T any](ctx context.Context, r Repository[T], f Filter) (bool, error) {
	n, err := r.Count(ctx, f)
	return n > 0, err
}
