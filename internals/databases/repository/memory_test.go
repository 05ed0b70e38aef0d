package repository_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"reflectify_backend/internals/databases/repository"
)

type level string

type widget struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;column:widget_id"`
	Name      string         `gorm:"column:widget_name"`
	Level     level          `gorm:"column:widget_level"`
	Parent    *uuid.UUID     `gorm:"column:widget_parent_id"`
	CreatedAt time.Time      `gorm:"autoCreateTime;column:widget_created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime;column:widget_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:widget_deleted_at;index"`
}

func (w *widget) BeforeSave(*gorm.DB) error {
	w.Name = strings.TrimSpace(w.Name)
	if w.Name == "" {
		return errors.New("name required")
	}
	return nil
}

func TestMemoryCreateAssignsIDAndTimestamps(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	repo := repository.NewMemory[widget]()
	repo.Now = func() time.Time { return fixed }

	w := &widget{Name: "  gear  "}
	require.NoError(t, repo.Create(ctx, w))
	assert.NotEqual(t, uuid.Nil, w.ID)
	assert.Equal(t, "gear", w.Name)
	assert.Equal(t, fixed, w.CreatedAt)

	assert.Error(t, repo.Create(ctx, &widget{Name: " "}), "hooks run before insert")
	assert.ErrorIs(t, repo.Create(ctx, &widget{ID: w.ID, Name: "dup"}), gorm.ErrDuplicatedKey)

	// hasil Get adalah salinan
	got, err := repo.Get(ctx, w.ID)
	require.NoError(t, err)
	got.Name = "changed"
	again, err := repo.Get(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "gear", again.Name)
}

func TestMemoryFilters(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory[widget]()
	parent := uuid.New()

	a := &widget{Name: "a", Level: "HIGH", Parent: &parent}
	b := &widget{Name: "b", Level: "LOW"}
	c := &widget{Name: "c", Level: "HIGH"}
	for _, w := range []*widget{a, b, c} {
		require.NoError(t, repo.Create(ctx, w))
	}

	rows, err := repo.List(ctx, repository.Where("widget_level", "HIGH"))
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = repo.List(ctx, repository.Where("widget_level", level("HIGH")).And("widget_parent_id", parent))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, a.ID, rows[0].ID)

	rows, err = repo.List(ctx, repository.Filter{In: map[string][]any{"widget_name": {"b", "c"}}})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	f := repository.Where("widget_level", "HIGH")
	f.ExcludeID = &a.ID
	n, err := repo.Count(ctx, f)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	ok, err := repository.Exists[widget](ctx, repo, repository.Where("widget_name", "zzz"))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.First(ctx, repository.Where("no_such_column", 1))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMemorySoftDeleteRestorePurge(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory[widget]()
	w := &widget{Name: "gone"}
	keep := &widget{Name: "kept"}
	require.NoError(t, repo.Create(ctx, w))
	require.NoError(t, repo.Create(ctx, keep))

	require.NoError(t, repo.SoftDelete(ctx, w.ID))
	assert.ErrorIs(t, repo.SoftDelete(ctx, w.ID), repository.ErrNotFound)

	_, err := repo.Get(ctx, w.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	got, err := repo.GetUnscoped(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, got.DeletedAt.Valid)

	rows, _ := repo.List(ctx, repository.Filter{})
	assert.Len(t, rows, 1)
	rows, _ = repo.List(ctx, repository.Filter{OnlyDeleted: true})
	require.Len(t, rows, 1)
	assert.Equal(t, w.ID, rows[0].ID)
	rows, _ = repo.List(ctx, repository.Filter{WithDeleted: true})
	assert.Len(t, rows, 2)

	restored, err := repo.Restore(ctx, w.ID)
	require.NoError(t, err)
	assert.False(t, restored.DeletedAt.Valid)

	_, err = repo.Restore(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Purge(ctx))
	n, _ := repo.Count(ctx, repository.Filter{WithDeleted: true})
	assert.Zero(t, n)
}

func TestMemorySaveUpserts(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory[widget]()
	w := &widget{Name: "first"}
	require.NoError(t, repo.Save(ctx, w))
	assert.NotEqual(t, uuid.Nil, w.ID)

	w.Name = "second"
	require.NoError(t, repo.Save(ctx, w))
	rows, _ := repo.List(ctx, repository.Filter{})
	require.Len(t, rows, 1)
	assert.Equal(t, "second", rows[0].Name)
}
