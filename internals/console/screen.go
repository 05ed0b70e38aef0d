// file: internals/console/screen.go
package console

import (
	"context"
	"io"
)

// Screen adalah Page tanpa parameter tipe, supaya shell bisa memegang
// semua halaman dalam satu map.
type Screen interface {
	Name() string
	ReadOnly() bool
	ModeName() string
	LoadState() LoadState
	DraftFields() []string

	Refresh(ctx context.Context) error
	Search(term string)
	Sort(key string)
	SetPage(n int) bool

	StartAdd() error
	EditRef(ref string) error
	DeleteRef(ref string) error
	Set(field, value string) error
	Submit(ctx context.Context) error
	ConfirmDelete(ctx context.Context) error
	Cancel()

	Render(w io.Writer) error
	RenderDraft(w io.Writer)
	RenderStats(w io.Writer) error
}

var _ Screen = (*Page[struct{}, struct{}])(nil)

func (p *Page[T, D]) ModeName() string { return ModeName(p.mode) }

// EditRef: ref = UUID atau nomor baris di halaman aktif.
func (p *Page[T, D]) EditRef(ref string) error {
	id, err := p.Resolve(ref)
	if err != nil {
		return err
	}
	return p.StartEdit(id)
}

func (p *Page[T, D]) DeleteRef(ref string) error {
	id, err := p.Resolve(ref)
	if err != nil {
		return err
	}
	return p.StartDelete(id)
}

func (p *Page[T, D]) Render(w io.Writer) error      { return Render(w, p) }
func (p *Page[T, D]) RenderDraft(w io.Writer)       { RenderDraft(w, p) }
func (p *Page[T, D]) RenderStats(w io.Writer) error { return RenderStats(w, p.Stats()) }
