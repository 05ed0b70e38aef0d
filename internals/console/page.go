// file: internals/console/page.go
package console

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"reflectify_backend/internals/console/client"
	"reflectify_backend/internals/helpers/datatable"
)

// Fetcher loads every row of a page.
type Fetcher[T any] interface {
	Fetch(ctx context.Context) ([]T, error)
}

// FetchFunc adapts a function to Fetcher.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

func (f FetchFunc[T]) Fetch(ctx context.Context) ([]T, error) { return f(ctx) }

// Mutations: operasi tulis ke API. Error membawa pesan yang bisa dibaca
// (client.APIError.Message).
type Mutations[T any, D any] interface {
	Create(ctx context.Context, draft D) (T, error)
	Update(ctx context.Context, id uuid.UUID, draft D) (T, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// Stat: satu kelompok hitungan, mis. "by designation".
type Stat struct {
	Label  string
	Counts []Count
}

type Count struct {
	Key string
	N   int
}

// PageConfig menggambarkan satu halaman CRUD.
type PageConfig[T any, D any] struct {
	Name      string
	Singular  string
	Columns   []datatable.Column[T]
	PageSize  int
	Fetcher   Fetcher[T]
	Mutations Mutations[T, D] // nil = read-only
	ID        func(T) uuid.UUID
	Label     func(T) string

	NewDraft  func() D
	DraftFrom func(T) D
	SetField  func(d *D, field, value string) error
	GetField  func(d D, field string) string
	Fields    []string
	Validate  func(D) error

	Stats func(rows []T) []Stat
}

// Page: controller generik satu layar (tabel + form + konfirmasi hapus).
// Satu goroutine yang menggerakkan page; flag pending dijaga mutex supaya
// mutasi jenis sama yang datang bersamaan ditolak.
type Page[T any, D any] struct {
	cfg      PageConfig[T, D]
	notifier Notifier

	table   *datatable.Table[T]
	rows    []T
	draft   D
	mode    ViewMode
	load    LoadState
	loadErr error

	mu      sync.Mutex
	pending map[MutationKind]bool
}

func NewPage[T any, D any](cfg PageConfig[T, D], n Notifier) *Page[T, D] {
	if n == nil {
		n = LogNotifier{}
	}
	if cfg.Singular == "" {
		cfg.Singular = cfg.Name
	}
	p := &Page[T, D]{
		cfg:      cfg,
		notifier: n,
		table:    datatable.New[T](nil, cfg.Columns, datatable.Options{PageSize: cfg.PageSize}),
		mode:     Idle{},
		pending:  map[MutationKind]bool{},
	}
	p.draft = p.newDraft()
	return p
}

func (p *Page[T, D]) newDraft() D {
	if p.cfg.NewDraft != nil {
		return p.cfg.NewDraft()
	}
	var d D
	return d
}

/* ===================== readers ===================== */

func (p *Page[T, D]) Name() string                   { return p.cfg.Name }
func (p *Page[T, D]) Mode() ViewMode                 { return p.mode }
func (p *Page[T, D]) Draft() D                       { return p.draft }
func (p *Page[T, D]) DraftFields() []string          { return p.cfg.Fields }
func (p *Page[T, D]) LoadState() LoadState           { return p.load }
func (p *Page[T, D]) LoadError() error               { return p.loadErr }
func (p *Page[T, D]) Columns() []datatable.Column[T] { return p.table.Columns() }
func (p *Page[T, D]) View() datatable.View[T]        { return p.table.Snapshot() }
func (p *Page[T, D]) ReadOnly() bool                 { return p.cfg.Mutations == nil }

// AllRows: semua baris hasil fetch terakhir (tanpa filter).
func (p *Page[T, D]) AllRows() []T { return p.rows }

func (p *Page[T, D]) Pending(kind MutationKind) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending[kind]
}

// Stats dihitung dari semua baris, bukan hanya halaman aktif.
func (p *Page[T, D]) Stats() []Stat {
	if p.cfg.Stats == nil {
		return nil
	}
	return p.cfg.Stats(p.rows)
}

/* ===================== table ===================== */

func (p *Page[T, D]) Search(term string) { p.table.SetSearchTerm(term) }
func (p *Page[T, D]) Sort(key string)    { p.table.SetSort(key) }
func (p *Page[T, D]) SetPage(n int) bool { return p.table.SetPage(n) }

// Refresh mengambil ulang data. Kalau gagal, baris lama tetap dipakai
// (LoadStale) atau halaman masuk LoadFailed kalau belum ada baris.
func (p *Page[T, D]) Refresh(ctx context.Context) error {
	p.load = Loading
	rows, err := p.cfg.Fetcher.Fetch(ctx)
	if err != nil {
		p.loadErr = err
		if len(p.rows) > 0 {
			p.load = LoadStale
			p.notifier.Notify(Warning, "Showing cached "+p.cfg.Name+": "+client.Message(err))
		} else {
			p.load = LoadFailed
			p.notifier.Notify(Error, "Failed to load "+p.cfg.Name+": "+client.Message(err))
		}
		return err
	}
	p.rows = rows
	p.loadErr = nil
	p.load = Loaded
	p.table.SetRows(rows)
	return nil
}

/* ===================== mode transitions ===================== */

func (p *Page[T, D]) find(id uuid.UUID) (T, bool) {
	for _, r := range p.rows {
		if p.cfg.ID(r) == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// Resolve menerima UUID atau nomor baris (1-based) di halaman aktif.
func (p *Page[T, D]) Resolve(ref string) (uuid.UUID, error) {
	ref = strings.TrimSpace(ref)
	if id, err := uuid.Parse(ref); err == nil {
		return id, nil
	}
	n, err := strconv.Atoi(ref)
	if err != nil {
		return uuid.Nil, ErrNotFound
	}
	visible := p.table.VisibleRows()
	if n < 1 || n > len(visible) {
		return uuid.Nil, ErrNotFound
	}
	return p.cfg.ID(visible[n-1]), nil
}

func (p *Page[T, D]) StartAdd() error {
	if p.ReadOnly() {
		return ErrReadOnly
	}
	p.draft = p.newDraft()
	p.mode = Adding{}
	return nil
}

func (p *Page[T, D]) StartEdit(id uuid.UUID) error {
	if p.ReadOnly() {
		return ErrReadOnly
	}
	row, ok := p.find(id)
	if !ok {
		return ErrNotFound
	}
	if p.cfg.DraftFrom != nil {
		p.draft = p.cfg.DraftFrom(row)
	} else {
		p.draft = p.newDraft()
	}
	p.mode = Editing[T]{Entity: row}
	return nil
}

func (p *Page[T, D]) StartDelete(id uuid.UUID) error {
	if p.ReadOnly() {
		return ErrReadOnly
	}
	row, ok := p.find(id)
	if !ok {
		return ErrNotFound
	}
	p.mode = ConfirmingDelete[T]{Entity: row}
	return nil
}

// Cancel kembali ke Idle dan membuang draft.
func (p *Page[T, D]) Cancel() {
	p.mode = Idle{}
	p.draft = p.newDraft()
}

// Set mengubah satu field draft (hanya saat Adding / Editing).
func (p *Page[T, D]) Set(field, value string) error {
	switch p.mode.(type) {
	case Adding, Editing[T]:
	default:
		return ErrWrongMode
	}
	if p.cfg.SetField == nil {
		return ErrReadOnly
	}
	return p.cfg.SetField(&p.draft, strings.TrimSpace(field), value)
}

/* ===================== mutations ===================== */

func (p *Page[T, D]) acquire(kind MutationKind) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pending[kind] {
		return false
	}
	p.pending[kind] = true
	return true
}

func (p *Page[T, D]) release(kind MutationKind) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.pending, kind)
}

// Submit: Adding → Create, Editing → Update. Draft divalidasi dulu; kalau
// gagal tidak ada request dan state tidak berubah.
func (p *Page[T, D]) Submit(ctx context.Context) error {
	var kind MutationKind
	var editing Editing[T]
	switch m := p.mode.(type) {
	case Adding:
		kind = MutationCreate
	case Editing[T]:
		kind = MutationUpdate
		editing = m
	default:
		return ErrWrongMode
	}

	if p.cfg.Validate != nil {
		if err := p.cfg.Validate(p.draft); err != nil {
			p.notifier.Notify(Error, err.Error())
			return err
		}
	}

	if !p.acquire(kind) {
		return ErrPending
	}
	defer p.release(kind)

	var err error
	if kind == MutationCreate {
		_, err = p.cfg.Mutations.Create(ctx, p.draft)
	} else {
		_, err = p.cfg.Mutations.Update(ctx, p.cfg.ID(editing.Entity), p.draft)
	}
	if err != nil {
		p.notifier.Notify(Error, errorMessage(err))
		return err
	}

	if kind == MutationCreate {
		p.notifier.Notify(Success, p.cfg.Singular+" created")
	} else {
		p.notifier.Notify(Success, p.cfg.Singular+" updated")
	}
	p.mode = Idle{}
	p.draft = p.newDraft()
	_ = p.Refresh(ctx)
	return nil
}

// ConfirmDelete menjalankan soft delete untuk entity di ConfirmingDelete.
func (p *Page[T, D]) ConfirmDelete(ctx context.Context) error {
	m, ok := p.mode.(ConfirmingDelete[T])
	if !ok {
		return ErrWrongMode
	}
	if !p.acquire(MutationDelete) {
		return ErrPending
	}
	defer p.release(MutationDelete)

	if err := p.cfg.Mutations.SoftDelete(ctx, p.cfg.ID(m.Entity)); err != nil {
		p.notifier.Notify(Error, errorMessage(err))
		return err
	}
	p.notifier.Notify(Success, p.cfg.Singular+" deleted")
	p.mode = Idle{}
	_ = p.Refresh(ctx)
	return nil
}

// errorMessage: error validasi lokal ditampilkan apa adanya, sisanya lewat
// client.Message (pesan API, teks error, atau "Request failed").
func errorMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return client.Message(err)
}

// Label untuk konfirmasi hapus.
func (p *Page[T, D]) Label(row T) string {
	if p.cfg.Label != nil {
		return p.cfg.Label(row)
	}
	return p.cfg.ID(row).String()
}
