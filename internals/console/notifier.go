// file: internals/console/notifier.go
package console

import (
	"fmt"
	"io"
	"log"
	"sync"
)

type NotifyKind int

const (
	Success NotifyKind = iota
	Error
	Warning
	Info
)

func (k NotifyKind) String() string {
	switch k {
	case Success:
		return "success"
	case Error:
		return "error"
	case Warning:
		return "warning"
	}
	return "info"
}

func (k NotifyKind) icon() string {
	switch k {
	case Success:
		return "✅"
	case Error:
		return "❌"
	case Warning:
		return "⚠️"
	}
	return "ℹ️"
}

// Notifier menampilkan toast ke user.
type Notifier interface {
	Notify(kind NotifyKind, message string)
}

// TerminalNotifier: satu baris per notifikasi ke W (stdout REPL).
type TerminalNotifier struct {
	W io.Writer
}

func (n TerminalNotifier) Notify(kind NotifyKind, message string) {
	fmt.Fprintf(n.W, "%s %s\n", kind.icon(), message)
}

// LogNotifier: ke log standar, dipakai saat console jalan non-interaktif.
type LogNotifier struct {
	Logger *log.Logger
}

func (n LogNotifier) Notify(kind NotifyKind, message string) {
	l := n.Logger
	if l == nil {
		l = log.Default()
	}
	l.Printf("[%s] %s", kind, message)
}

type Notification struct {
	Kind    NotifyKind
	Message string
}

// RecordingNotifier menyimpan semua notifikasi (test).
type RecordingNotifier struct {
	mu     sync.Mutex
	events []Notification
}

func (n *RecordingNotifier) Notify(kind NotifyKind, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, Notification{Kind: kind, Message: message})
}

func (n *RecordingNotifier) Events() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.events...)
}

// Last returns the latest notification, ok=false when none.
func (n *RecordingNotifier) Last() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.events) == 0 {
		return Notification{}, false
	}
	return n.events[len(n.events)-1], true
}
