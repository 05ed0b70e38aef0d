// file: internals/databases/repository/memory.go
package repository

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemoryRepository is the in-memory Repository used by tests and the dev
// console. Columns are resolved from the gorm `column:` tags of T, so the
// same Filter works against both implementations.
type MemoryRepository[T any] struct {
	mu   sync.RWMutex
	rows []*T // urutan insert
	meta memMeta
	Now  func() time.Time
}

type memMeta struct {
	pk      int
	deleted int
	created int
	updated int
	columns map[string]int
}

func NewMemory[T any]() *MemoryRepository[T] {
	return &MemoryRepository[T]{meta: parseMeta(reflect.TypeOf(*new(T))), Now: time.Now}
}

func parseMeta(t reflect.Type) memMeta {
	m := memMeta{pk: -1, deleted: -1, created: -1, updated: -1, columns: map[string]int{}}
	if t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("repository: %s is not a struct", t))
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		col := ""
		for _, part := range strings.Split(f.Tag.Get("gorm"), ";") {
			kv := strings.SplitN(strings.TrimSpace(part), ":", 2)
			switch strings.ToLower(kv[0]) {
			case "column":
				if len(kv) == 2 {
					col = kv[1]
				}
			case "primarykey":
				m.pk = i
			case "autocreatetime":
				m.created = i
			case "autoupdatetime":
				m.updated = i
			}
		}
		if f.Type == deletedAtType {
			m.deleted = i
		}
		if col != "" {
			m.columns[col] = i
		}
	}
	return m
}

func (r *MemoryRepository[T]) id(ent *T) uuid.UUID {
	if r.meta.pk < 0 {
		return uuid.Nil
	}
	v, _ := reflect.ValueOf(ent).Elem().Field(r.meta.pk).Interface().(uuid.UUID)
	return v
}

func (r *MemoryRepository[T]) isDeleted(ent *T) bool {
	if r.meta.deleted < 0 {
		return false
	}
	d, _ := reflect.ValueOf(ent).Elem().Field(r.meta.deleted).Interface().(gorm.DeletedAt)
	return d.Valid
}

func (r *MemoryRepository[T]) setTime(ent *T, idx int, t time.Time) {
	if idx < 0 {
		return
	}
	f := reflect.ValueOf(ent).Elem().Field(idx)
	if f.Type() == reflect.TypeOf(time.Time{}) {
		f.Set(reflect.ValueOf(t))
	}
}

func (r *MemoryRepository[T]) setDeleted(ent *T, d gorm.DeletedAt) {
	if r.meta.deleted >= 0 {
		reflect.ValueOf(ent).Elem().Field(r.meta.deleted).Set(reflect.ValueOf(d))
	}
}

func plain(v any) any {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}

// sameValue: string-kinded types (mis. type FormStatus string) dibandingkan
// sebagai string biasa, sisanya DeepEqual.
func sameValue(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.IsValid() && vb.IsValid() && va.Kind() == reflect.String && vb.Kind() == reflect.String {
		return va.String() == vb.String()
	}
	return reflect.DeepEqual(a, b)
}

func (r *MemoryRepository[T]) column(ent *T, col string) (any, bool) {
	idx, ok := r.meta.columns[col]
	if !ok {
		return nil, false
	}
	return plain(reflect.ValueOf(ent).Elem().Field(idx).Interface()), true
}

func (r *MemoryRepository[T]) match(ent *T, f Filter) bool {
	deleted := r.isDeleted(ent)
	switch {
	case f.OnlyDeleted && !deleted:
		return false
	case !f.OnlyDeleted && !f.WithDeleted && deleted:
		return false
	}
	if f.ExcludeID != nil && r.id(ent) == *f.ExcludeID {
		return false
	}
	for col, want := range f.Eq {
		got, ok := r.column(ent, col)
		if !ok || !sameValue(got, plain(want)) {
			return false
		}
	}
	for col, vals := range f.In {
		got, ok := r.column(ent, col)
		if !ok {
			return false
		}
		hit := false
		for _, v := range vals {
			if sameValue(got, plain(v)) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

type beforeSaver interface {
	BeforeSave(tx *gorm.DB) error
}

// runHooks menjalankan BeforeSave model (normalisasi/validasi) seperti gorm.
func runHooks[T any](ent *T) error {
	if h, ok := any(ent).(beforeSaver); ok {
		return h.BeforeSave(nil)
	}
	return nil
}

func (r *MemoryRepository[T]) find(id uuid.UUID) *T {
	for _, row := range r.rows {
		if r.id(row) == id {
			return row
		}
	}
	return nil
}

func (r *MemoryRepository[T]) List(_ context.Context, f Filter) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]T, 0, len(r.rows))
	for _, row := range r.rows {
		if r.match(row, f) {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *MemoryRepository[T]) Get(_ context.Context, id uuid.UUID) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	row := r.find(id)
	if row == nil || r.isDeleted(row) {
		return nil, ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (r *MemoryRepository[T]) GetUnscoped(_ context.Context, id uuid.UUID) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	row := r.find(id)
	if row == nil {
		return nil, ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (r *MemoryRepository[T]) First(ctx context.Context, f Filter) (*T, error) {
	rows, _ := r.List(ctx, f)
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (r *MemoryRepository[T]) Count(ctx context.Context, f Filter) (int64, error) {
	rows, _ := r.List(ctx, f)
	return int64(len(rows)), nil
}

func (r *MemoryRepository[T]) Create(_ context.Context, ent *T) error {
	if err := runHooks(ent); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.meta.pk >= 0 && r.id(ent) == uuid.Nil {
		reflect.ValueOf(ent).Elem().Field(r.meta.pk).Set(reflect.ValueOf(uuid.New()))
	}
	if r.find(r.id(ent)) != nil {
		return gorm.ErrDuplicatedKey
	}
	now := r.Now()
	r.setTime(ent, r.meta.created, now)
	r.setTime(ent, r.meta.updated, now)
	cp := *ent
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *MemoryRepository[T]) Save(ctx context.Context, ent *T) error {
	if err := runHooks(ent); err != nil {
		return err
	}
	r.mu.Lock()
	row := r.find(r.id(ent))
	if row == nil {
		r.mu.Unlock()
		return r.Create(ctx, ent)
	}
	defer r.mu.Unlock()
	r.setTime(ent, r.meta.updated, r.Now())
	*row = *ent
	return nil
}

func (r *MemoryRepository[T]) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row := r.find(id)
	if row == nil || r.isDeleted(row) {
		return ErrNotFound
	}
	r.setDeleted(row, gorm.DeletedAt{Time: r.Now(), Valid: true})
	return nil
}

func (r *MemoryRepository[T]) Restore(ctx context.Context, id uuid.UUID) (*T, error) {
	r.mu.Lock()
	row := r.find(id)
	if row == nil {
		r.mu.Unlock()
		return nil, ErrNotFound
	}
	r.setDeleted(row, gorm.DeletedAt{})
	r.mu.Unlock()
	return r.Get(ctx, id)
}

func (r *MemoryRepository[T]) Purge(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = nil
	return nil
}
