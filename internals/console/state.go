// file: internals/console/state.go
package console

import (
	"errors"
	"fmt"
)

var (
	// ErrPending: mutasi jenis yang sama masih berjalan (tombol "disabled").
	ErrPending = errors.New("another request of this kind is still running")
	// ErrWrongMode: aksi tidak berlaku di mode sekarang.
	ErrWrongMode = errors.New("action not available in the current mode")
	ErrReadOnly  = errors.New("this page is read-only")
	ErrNotFound  = errors.New("row not found")
)

// ValidationError: draft belum lengkap, dicek sebelum request dikirim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Required returns a ValidationError for an empty required field.
func Required(field string) error {
	return &ValidationError{Field: field, Message: "is required"}
}

/* =========================================================
   ViewMode: tepat satu aktif per page
========================================================= */

type ViewMode interface {
	modeName() string
}

type Idle struct{}

type Adding struct{}

type Editing[T any] struct{ Entity T }

type ConfirmingDelete[T any] struct{ Entity T }

func (Idle) modeName() string                { return "idle" }
func (Adding) modeName() string              { return "adding" }
func (Editing[T]) modeName() string          { return "editing" }
func (ConfirmingDelete[T]) modeName() string { return "confirming-delete" }

// ModeName: nama mode untuk prompt REPL.
func ModeName(m ViewMode) string {
	if m == nil {
		return Idle{}.modeName()
	}
	return m.modeName()
}

/* =========================================================
   LoadState
========================================================= */

type LoadState int

const (
	LoadIdle LoadState = iota
	Loading
	Loaded
	// LoadStale: fetch gagal tapi masih ada baris lama yang ditampilkan.
	LoadStale
	// LoadFailed: fetch gagal dan tidak ada baris sama sekali.
	LoadFailed
)

func (s LoadState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case LoadStale:
		return "stale"
	case LoadFailed:
		return "failed"
	}
	return "idle"
}

/* =========================================================
   Mutation kinds
========================================================= */

type MutationKind int

const (
	MutationCreate MutationKind = iota
	MutationUpdate
	MutationDelete
)

func (k MutationKind) String() string {
	switch k {
	case MutationUpdate:
		return "update"
	case MutationDelete:
		return "delete"
	}
	return "create"
}
