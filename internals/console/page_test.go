package console_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reflectify_backend/internals/console"
	"reflectify_backend/internals/console/client"
	"reflectify_backend/internals/helpers/datatable"
)

type item struct {
	ID    uuid.UUID
	Name  string
	Level int
}

type itemDraft struct {
	Name  string
	Level string
}

type fakeStore struct {
	mu      sync.Mutex
	rows    []item
	fetchFn func() error
	calls   []string

	// block, kalau diisi, menahan Create sampai ditutup
	block   chan struct{}
	started chan struct{}
	failOn  error
}

func (s *fakeStore) Fetch(context.Context) ([]item, error) {
	if s.fetchFn != nil {
		if err := s.fetchFn(); err != nil {
			return nil, err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]item(nil), s.rows...), nil
}

func (s *fakeStore) record(call string) {
	s.mu.Lock()
	s.calls = append(s.calls, call)
	s.mu.Unlock()
}

func (s *fakeStore) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *fakeStore) Create(_ context.Context, d itemDraft) (item, error) {
	s.record("create")
	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.block != nil {
		<-s.block
	}
	if s.failOn != nil {
		return item{}, s.failOn
	}
	it := item{ID: uuid.New(), Name: d.Name}
	fmt.Sscan(d.Level, &it.Level)
	s.mu.Lock()
	s.rows = append(s.rows, it)
	s.mu.Unlock()
	return it, nil
}

func (s *fakeStore) Update(_ context.Context, id uuid.UUID, d itemDraft) (item, error) {
	s.record("update")
	if s.failOn != nil {
		return item{}, s.failOn
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows[i].Name = d.Name
			return s.rows[i], nil
		}
	}
	return item{}, &client.APIError{Status: 404, Message: "not found"}
}

func (s *fakeStore) SoftDelete(_ context.Context, id uuid.UUID) error {
	s.record("delete")
	if s.failOn != nil {
		return s.failOn
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return &client.APIError{Status: 404, Message: "not found"}
}

func seedItems(n int) []item {
	out := make([]item, n)
	for i := range out {
		out[i] = item{ID: uuid.New(), Name: fmt.Sprintf("item %02d", i+1), Level: i % 3}
	}
	return out
}

func newItemPage(store *fakeStore, readOnly bool) (*console.Page[item, itemDraft], *console.RecordingNotifier) {
	n := &console.RecordingNotifier{}
	cfg := console.PageConfig[item, itemDraft]{
		Name:     "items",
		Singular: "Item",
		PageSize: 15,
		Columns: []datatable.Column[item]{
			{Key: "name", Header: "Name", Sortable: true, Field: func(i item) any { return i.Name }},
			{Key: "level", Header: "Level", Sortable: true, Align: datatable.AlignRight, Field: func(i item) any { return i.Level }},
		},
		Fetcher: store,
		ID:      func(i item) uuid.UUID { return i.ID },
		Label:   func(i item) string { return i.Name },
		DraftFrom: func(i item) itemDraft {
			return itemDraft{Name: i.Name, Level: fmt.Sprint(i.Level)}
		},
		SetField: func(d *itemDraft, field, value string) error {
			switch field {
			case "name":
				d.Name = value
			case "level":
				d.Level = value
			default:
				return &console.ValidationError{Field: field, Message: "unknown field"}
			}
			return nil
		},
		GetField: func(d itemDraft, field string) string {
			if field == "name" {
				return d.Name
			}
			return d.Level
		},
		Fields: []string{"name", "level"},
		Validate: func(d itemDraft) error {
			if strings.TrimSpace(d.Name) == "" {
				return console.Required("name")
			}
			return nil
		},
		Stats: func(rows []item) []console.Stat {
			return []console.Stat{{Label: "rows", Counts: []console.Count{{Key: "all", N: len(rows)}}}}
		},
	}
	if !readOnly {
		cfg.Mutations = store
	}
	return console.NewPage(cfg, n), n
}

func TestPageStartsIdleAndLoads(t *testing.T) {
	store := &fakeStore{rows: seedItems(17)}
	p, _ := newItemPage(store, false)

	assert.Equal(t, console.LoadIdle, p.LoadState())
	assert.Equal(t, "idle", console.ModeName(p.Mode()))

	require.NoError(t, p.Refresh(context.Background()))
	assert.Equal(t, console.Loaded, p.LoadState())
	v := p.View()
	assert.Len(t, v.Rows, 15)
	assert.Equal(t, 17, v.Total)
	assert.Equal(t, 2, v.TotalPages)
	assert.Len(t, p.AllRows(), 17)
	assert.Equal(t, 17, p.Stats()[0].Counts[0].N)
}

func TestPageModesAreExclusive(t *testing.T) {
	store := &fakeStore{rows: seedItems(3)}
	p, _ := newItemPage(store, false)
	require.NoError(t, p.Refresh(context.Background()))
	first := store.rows[0]

	require.NoError(t, p.StartAdd())
	assert.IsType(t, console.Adding{}, p.Mode())

	require.NoError(t, p.StartEdit(first.ID))
	m, ok := p.Mode().(console.Editing[item])
	require.True(t, ok)
	assert.Equal(t, first.ID, m.Entity.ID)
	assert.Equal(t, first.Name, p.Draft().Name)

	require.NoError(t, p.StartDelete(first.ID))
	assert.IsType(t, console.ConfirmingDelete[item]{}, p.Mode())
	assert.ErrorIs(t, p.Set("name", "x"), console.ErrWrongMode)
	assert.ErrorIs(t, p.Submit(context.Background()), console.ErrWrongMode)

	p.Cancel()
	assert.IsType(t, console.Idle{}, p.Mode())
	assert.Equal(t, itemDraft{}, p.Draft())
	assert.ErrorIs(t, p.ConfirmDelete(context.Background()), console.ErrWrongMode)

	assert.ErrorIs(t, p.StartEdit(uuid.New()), console.ErrNotFound)
	assert.Empty(t, store.Calls())
}

func TestSubmitValidatesBeforeSending(t *testing.T) {
	store := &fakeStore{}
	p, n := newItemPage(store, false)
	ctx := context.Background()
	require.NoError(t, p.Refresh(ctx))

	require.NoError(t, p.StartAdd())
	require.NoError(t, p.Set("level", "2"))

	err := p.Submit(ctx)
	var ve *console.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)
	assert.Empty(t, store.Calls(), "no request for an invalid draft")
	assert.IsType(t, console.Adding{}, p.Mode(), "draft kept for correction")
	assert.Equal(t, "2", p.Draft().Level)

	last, ok := n.Last()
	require.True(t, ok)
	assert.Equal(t, console.Error, last.Kind)

	require.NoError(t, p.Set("name", "new item"))
	require.NoError(t, p.Submit(ctx))
	assert.Equal(t, []string{"create"}, store.Calls())
	assert.IsType(t, console.Idle{}, p.Mode())
	assert.Equal(t, 1, p.View().Total, "refreshed after create")

	last, _ = n.Last()
	assert.Equal(t, console.Notification{Kind: console.Success, Message: "Item created"}, last)
}

func TestSubmitUpdateAndDelete(t *testing.T) {
	store := &fakeStore{rows: seedItems(2)}
	p, n := newItemPage(store, false)
	ctx := context.Background()
	require.NoError(t, p.Refresh(ctx))

	id, err := p.Resolve("1")
	require.NoError(t, err)
	require.NoError(t, p.StartEdit(id))
	require.NoError(t, p.Set("name", "renamed"))
	require.NoError(t, p.Submit(ctx))
	assert.Equal(t, "renamed", p.AllRows()[0].Name)

	require.NoError(t, p.StartDelete(id))
	require.NoError(t, p.ConfirmDelete(ctx))
	assert.Len(t, p.AllRows(), 1)
	assert.IsType(t, console.Idle{}, p.Mode())

	last, _ := n.Last()
	assert.Equal(t, "Item deleted", last.Message)
}

func TestMutationErrorKeepsModeAndShowsServerMessage(t *testing.T) {
	store := &fakeStore{rows: seedItems(1)}
	p, n := newItemPage(store, false)
	ctx := context.Background()
	require.NoError(t, p.Refresh(ctx))

	store.failOn = &client.APIError{Status: 409, Code: "CONFLICT", Message: "Email sudah digunakan"}
	require.NoError(t, p.StartAdd())
	require.NoError(t, p.Set("name", "dup"))
	assert.Error(t, p.Submit(ctx))
	assert.IsType(t, console.Adding{}, p.Mode())
	last, _ := n.Last()
	assert.Equal(t, console.Notification{Kind: console.Error, Message: "Email sudah digunakan"}, last)

	store.failOn = errors.New("dial tcp 127.0.0.1:3000: connection refused")
	require.NoError(t, p.StartDelete(store.rows[0].ID))
	assert.Error(t, p.ConfirmDelete(ctx))
	assert.IsType(t, console.ConfirmingDelete[item]{}, p.Mode())
	last, _ = n.Last()
	assert.Equal(t, console.Notification{Kind: console.Error, Message: "dial tcp 127.0.0.1:3000: connection refused"}, last)
}

func TestPendingGuardRejectsSecondSubmit(t *testing.T) {
	store := &fakeStore{block: make(chan struct{}), started: make(chan struct{}, 1)}
	p, _ := newItemPage(store, false)
	ctx := context.Background()
	require.NoError(t, p.Refresh(ctx))
	require.NoError(t, p.StartAdd())
	require.NoError(t, p.Set("name", "slow"))

	done := make(chan error, 1)
	go func() { done <- p.Submit(ctx) }()

	select {
	case <-store.started:
	case <-time.After(2 * time.Second):
		t.Fatal("create was not called")
	}
	assert.True(t, p.Pending(console.MutationCreate))
	assert.False(t, p.Pending(console.MutationDelete))
	assert.ErrorIs(t, p.Submit(ctx), console.ErrPending)

	close(store.block)
	require.NoError(t, <-done)
	assert.False(t, p.Pending(console.MutationCreate))
	assert.Equal(t, []string{"create"}, store.Calls())
}

func TestRefreshFailureStates(t *testing.T) {
	fail := errors.New("boom")
	var broken bool
	store := &fakeStore{rows: seedItems(2), fetchFn: func() error {
		if broken {
			return fail
		}
		return nil
	}}

	p, n := newItemPage(store, false)
	broken = true
	assert.ErrorIs(t, p.Refresh(context.Background()), fail)
	assert.Equal(t, console.LoadFailed, p.LoadState())
	last, _ := n.Last()
	assert.Equal(t, console.Error, last.Kind)

	broken = false
	require.NoError(t, p.Refresh(context.Background()))
	broken = true
	assert.Error(t, p.Refresh(context.Background()))
	assert.Equal(t, console.LoadStale, p.LoadState())
	assert.Len(t, p.View().Rows, 2, "cached rows stay visible")
	last, _ = n.Last()
	assert.Equal(t, console.Warning, last.Kind)

	var buf bytes.Buffer
	require.NoError(t, console.Render(&buf, p))
	assert.Contains(t, buf.String(), "Showing cached data")
	assert.Contains(t, buf.String(), "item 01")
}

func TestReadOnlyPage(t *testing.T) {
	store := &fakeStore{rows: seedItems(1)}
	p, _ := newItemPage(store, true)
	require.NoError(t, p.Refresh(context.Background()))

	assert.True(t, p.ReadOnly())
	assert.ErrorIs(t, p.StartAdd(), console.ErrReadOnly)
	assert.ErrorIs(t, p.StartEdit(store.rows[0].ID), console.ErrReadOnly)
	assert.ErrorIs(t, p.DeleteRef("1"), console.ErrReadOnly)
}

func TestResolve(t *testing.T) {
	store := &fakeStore{rows: seedItems(20)}
	p, _ := newItemPage(store, false)
	require.NoError(t, p.Refresh(context.Background()))

	id, err := p.Resolve("2")
	require.NoError(t, err)
	assert.Equal(t, store.rows[1].ID, id)

	require.True(t, p.SetPage(2))
	id, err = p.Resolve("1")
	require.NoError(t, err)
	assert.Equal(t, store.rows[15].ID, id, "row numbers are relative to the visible page")

	raw := uuid.New()
	id, err = p.Resolve(raw.String())
	require.NoError(t, err)
	assert.Equal(t, raw, id)

	for _, ref := range []string{"0", "6", "abc", ""} {
		_, err := p.Resolve(ref)
		assert.ErrorIs(t, err, console.ErrNotFound, ref)
	}
}

func TestRenderTableAndFooter(t *testing.T) {
	store := &fakeStore{rows: seedItems(17)}
	p, _ := newItemPage(store, false)

	var buf bytes.Buffer
	require.NoError(t, console.Render(&buf, p))
	assert.Contains(t, buf.String(), "Loading items")

	require.NoError(t, p.Refresh(context.Background()))
	buf.Reset()
	require.NoError(t, console.Render(&buf, p))
	out := buf.String()
	assert.Contains(t, out, "item 15")
	assert.NotContains(t, out, "item 16")
	assert.Contains(t, out, "Showing 1-15 of 17 (page 1/2)")

	p.Sort("level")
	p.Sort("level")
	buf.Reset()
	require.NoError(t, console.Render(&buf, p))
	assert.Contains(t, buf.String(), "↓")

	p.Search("item 1")
	assert.Equal(t, "Showing 1-8 of 8 (page 1/1), filtered from 17", console.Footer(p.View()))

	p.Search("nothing here")
	buf.Reset()
	require.NoError(t, console.Render(&buf, p))
	assert.Equal(t, "No items match \"nothing here\".\n", buf.String())
}

func TestRenderFailedAndEmpty(t *testing.T) {
	store := &fakeStore{fetchFn: func() error {
		return &client.APIError{Status: 500, Message: "Gagal mengambil data"}
	}}
	p, _ := newItemPage(store, false)
	_ = p.Refresh(context.Background())

	var buf bytes.Buffer
	require.NoError(t, console.Render(&buf, p))
	assert.Contains(t, buf.String(), "Could not load items: Gagal mengambil data")
	assert.NotContains(t, buf.String(), "Showing")

	empty, _ := newItemPage(&fakeStore{}, false)
	require.NoError(t, empty.Refresh(context.Background()))
	buf.Reset()
	require.NoError(t, console.Render(&buf, empty))
	assert.Equal(t, "No items yet.\n", buf.String())
}

func TestRenderDraftAndStats(t *testing.T) {
	store := &fakeStore{rows: seedItems(1)}
	p, _ := newItemPage(store, false)
	require.NoError(t, p.Refresh(context.Background()))

	require.NoError(t, p.StartAdd())
	require.NoError(t, p.Set("name", "draft one"))
	var buf bytes.Buffer
	console.RenderDraft(&buf, p)
	assert.Contains(t, buf.String(), "New Item:")
	assert.Contains(t, buf.String(), "draft one")
	assert.Contains(t, buf.String(), "level  -")

	require.NoError(t, p.StartDelete(store.rows[0].ID))
	buf.Reset()
	console.RenderDraft(&buf, p)
	assert.Contains(t, buf.String(), "Delete item 01?")

	buf.Reset()
	require.NoError(t, console.RenderStats(&buf, p.Stats()))
	assert.Contains(t, buf.String(), "ROWS")
}
