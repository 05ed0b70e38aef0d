// file: internals/databases/repository/gorm.go
package repository

import (
	"context"
	"log"
	"reflect"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRepository implements Repository on top of a gorm model with a
// gorm.DeletedAt soft-delete column.
type GormRepository[T any] struct {
	DB         *gorm.DB
	deletedCol string
	createdCol string
}

var deletedAtType = reflect.TypeOf(gorm.DeletedAt{})

func NewGorm[T any](db *gorm.DB) *GormRepository[T] {
	r := &GormRepository[T]{DB: db}

	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(new(T)); err != nil {
		log.Printf("[ERROR] repository: parse schema %T: %v", *new(T), err)
		return r
	}
	for _, f := range stmt.Schema.Fields {
		if f.FieldType == deletedAtType {
			r.deletedCol = f.DBName
		}
		if f.AutoCreateTime > 0 && r.createdCol == "" {
			r.createdCol = f.DBName
		}
	}
	return r
}

func (r *GormRepository[T]) query(ctx context.Context, f Filter) *gorm.DB {
	q := r.DB.WithContext(ctx).Model(new(T))
	if f.WithDeleted || f.OnlyDeleted {
		q = q.Unscoped()
	}
	if f.OnlyDeleted && r.deletedCol != "" {
		q = q.Where(clause.Neq{Column: clause.Column{Name: r.deletedCol}, Value: nil})
	}

	keys := make([]string, 0, len(f.Eq))
	for k := range f.Eq {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		q = q.Where(clause.Eq{Column: clause.Column{Name: k}, Value: f.Eq[k]})
	}
	for k, vals := range f.In {
		q = q.Where(clause.IN{Column: clause.Column{Name: k}, Values: vals})
	}
	if f.ExcludeID != nil {
		q = q.Where(clause.Neq{Column: clause.PrimaryColumn, Value: *f.ExcludeID})
	}
	return q
}

func (r *GormRepository[T]) order(q *gorm.DB, f Filter) *gorm.DB {
	col := f.OrderBy
	if col == "" {
		col = r.createdCol
	}
	if col == "" {
		return q
	}
	return q.Order(clause.OrderByColumn{Column: clause.Column{Name: col}})
}

func (r *GormRepository[T]) List(ctx context.Context, f Filter) ([]T, error) {
	var out []T
	if err := r.order(r.query(ctx, f), f).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepository[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	var ent T
	if err := r.DB.WithContext(ctx).
		Where(clause.Eq{Column: clause.PrimaryColumn, Value: id}).
		First(&ent).Error; err != nil {
		return nil, err
	}
	return &ent, nil
}

func (r *GormRepository[T]) GetUnscoped(ctx context.Context, id uuid.UUID) (*T, error) {
	var ent T
	if err := r.DB.WithContext(ctx).Unscoped().
		Where(clause.Eq{Column: clause.PrimaryColumn, Value: id}).
		First(&ent).Error; err != nil {
		return nil, err
	}
	return &ent, nil
}

func (r *GormRepository[T]) First(ctx context.Context, f Filter) (*T, error) {
	var ent T
	if err := r.order(r.query(ctx, f), f).First(&ent).Error; err != nil {
		return nil, err
	}
	return &ent, nil
}

func (r *GormRepository[T]) Count(ctx context.Context, f Filter) (int64, error) {
	var n int64
	err := r.query(ctx, f).Count(&n).Error
	return n, err
}

func (r *GormRepository[T]) Create(ctx context.Context, ent *T) error {
	return r.DB.WithContext(ctx).Create(ent).Error
}

func (r *GormRepository[T]) Save(ctx context.Context, ent *T) error {
	return r.DB.WithContext(ctx).Save(ent).Error
}

func (r *GormRepository[T]) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).
		Where(clause.Eq{Column: clause.PrimaryColumn, Value: id}).
		Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepository[T]) Restore(ctx context.Context, id uuid.UUID) (*T, error) {
	if r.deletedCol == "" {
		return r.Get(ctx, id)
	}
	res := r.DB.WithContext(ctx).Unscoped().Model(new(T)).
		Where(clause.Eq{Column: clause.PrimaryColumn, Value: id}).
		Update(r.deletedCol, nil)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *GormRepository[T]) Purge(ctx context.Context) error {
	return r.DB.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Unscoped().
		Delete(new(T)).Error
}
