// file: internals/console/shell.go
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/sendgrid/rest"

	"reflectify_backend/internals/console/client"
)

// LineReader: *readline.Instance memenuhi interface ini.
type LineReader interface {
	Readline() (string, error)
}

// ActionScreen: halaman dengan aksi tambahan (publish / close).
type ActionScreen interface {
	Screen
	Actions() []string
	Run(ctx context.Context, action, ref string) error
}

// ErrQuit dikembalikan Exec untuk "quit" / "exit".
var ErrQuit = errors.New("quit")

// Shell adalah REPL admin di atas halaman-halaman console.
type Shell struct {
	Client   *client.Client
	Out      io.Writer
	Notifier Notifier
	Lookups  *Lookups

	// IsDevelopment mengaktifkan perintah purge.
	IsDevelopment bool

	pages   map[string]Screen
	forms   *FormPage
	current Screen
}

// NewShell menyiapkan semua halaman; belum ada request sampai "use".
func NewShell(c *client.Client, out io.Writer, n Notifier, isDev bool) *Shell {
	if n == nil {
		n = TerminalNotifier{W: out}
	}
	l := NewLookups(c)
	forms := NewFeedbackFormPage(c, l, n)
	return &Shell{
		Client:        c,
		Out:           out,
		Notifier:      n,
		Lookups:       l,
		IsDevelopment: isDev,
		forms:         forms,
		pages: map[string]Screen{
			"faculties": NewFacultyPage(c, l, n),
			"semesters": NewSemesterPage(c, l, n),
			"subjects":  NewSubjectPage(c, l, n),
			"forms":     forms,
		},
	}
}

// Prompt: "reflectify:faculties(adding)> ".
func (s *Shell) Prompt() string {
	if s.current == nil {
		return "reflectify> "
	}
	if m := s.current.ModeName(); m != "idle" {
		return fmt.Sprintf("reflectify:%s(%s)> ", s.current.Name(), m)
	}
	return "reflectify:" + s.current.Name() + "> "
}

// Run membaca baris sampai EOF atau quit.
func (s *Shell) Run(ctx context.Context, r LineReader) error {
	fmt.Fprintln(s.Out, "Type 'help' for commands.")
	for {
		line, err := r.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := s.Exec(ctx, line); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			fmt.Fprintln(s.Out, "❌", errorMessage(err))
		}
	}
}

// Exec menjalankan satu baris perintah.
func (s *Shell) Exec(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	cmd, arg, _ := strings.Cut(line, " ")
	cmd = strings.ToLower(cmd)
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "help", "?":
		s.help()
		return nil
	case "quit", "exit":
		return ErrQuit
	case "use":
		return s.use(ctx, arg)
	case "purge":
		return s.purge(ctx, arg)
	}

	if s.current == nil {
		return errors.New("no page selected, try 'use faculties'")
	}
	p := s.current

	switch cmd {
	case "list", "ls", "show":
		return p.Render(s.Out)
	case "refresh":
		_ = p.Refresh(ctx)
		return p.Render(s.Out)
	case "search":
		p.Search(arg)
		return p.Render(s.Out)
	case "sort":
		if arg == "" {
			return errors.New("usage: sort <column key>")
		}
		p.Sort(arg)
		return p.Render(s.Out)
	case "page":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return errors.New("usage: page <number>")
		}
		if !p.SetPage(n) {
			return fmt.Errorf("page %d is out of range", n)
		}
		return p.Render(s.Out)
	case "add":
		if err := p.StartAdd(); err != nil {
			return err
		}
		p.RenderDraft(s.Out)
		return nil
	case "edit":
		if err := p.EditRef(arg); err != nil {
			return err
		}
		p.RenderDraft(s.Out)
		return nil
	case "set":
		field, value, ok := strings.Cut(arg, "=")
		if !ok {
			return errors.New("usage: set <field>=<value>")
		}
		if err := p.Set(strings.ToLower(strings.TrimSpace(field)), strings.TrimSpace(value)); err != nil {
			return err
		}
		p.RenderDraft(s.Out)
		return nil
	case "draft":
		p.RenderDraft(s.Out)
		return nil
	case "save", "submit":
		if err := p.Submit(ctx); err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				// sudah dinotifikasi oleh page
				return nil
			}
			return err
		}
		return p.Render(s.Out)
	case "delete", "rm":
		if err := p.DeleteRef(arg); err != nil {
			return err
		}
		p.RenderDraft(s.Out)
		return nil
	case "confirm", "yes":
		if err := p.ConfirmDelete(ctx); err != nil {
			return err
		}
		return p.Render(s.Out)
	case "cancel":
		p.Cancel()
		return nil
	case "stats":
		return p.RenderStats(s.Out)
	case "students":
		return s.useStudents(ctx, arg)
	}

	if as, ok := p.(ActionScreen); ok {
		for _, a := range as.Actions() {
			if a == cmd {
				if err := as.Run(ctx, cmd, arg); err != nil {
					return err
				}
				return p.Render(s.Out)
			}
		}
	}
	return fmt.Errorf("unknown command %q, type 'help'", cmd)
}

func (s *Shell) pageNames() []string {
	names := make([]string, 0, len(s.pages))
	for n := range s.pages {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (s *Shell) use(ctx context.Context, name string) error {
	p, ok := s.pages[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("unknown page %q (pages: %s)", name, strings.Join(s.pageNames(), ", "))
	}
	s.current = p
	if p.LoadState() == LoadIdle {
		_ = p.Refresh(ctx)
	}
	return p.Render(s.Out)
}

// useStudents membuka daftar override students untuk form ref (dari
// halaman forms).
func (s *Shell) useStudents(ctx context.Context, ref string) error {
	if s.forms.LoadState() == LoadIdle {
		if err := s.forms.Refresh(ctx); err != nil {
			return err
		}
	}
	id, err := s.forms.Resolve(ref)
	if err != nil {
		return err
	}
	p := NewOverrideStudentsPage(s.Client, id, s.Notifier)
	s.current = p
	_ = p.Refresh(ctx)
	return p.Render(s.Out)
}

// purge: hapus semua data domain, hanya saat development dan harus
// dikonfirmasi dengan "purge yes".
func (s *Shell) purge(ctx context.Context, arg string) error {
	if !s.IsDevelopment {
		return errors.New("purge is only available in development")
	}
	if arg != "yes" {
		fmt.Fprintln(s.Out, "⚠️  This deletes every department, faculty, semester, subject, form and response.")
		fmt.Fprintln(s.Out, "   Type 'purge yes' to continue.")
		return nil
	}
	var out struct {
		Tables []string `json:"tables"`
	}
	if err := s.Client.Do(ctx, rest.Delete, "/api/a/dev/all-data", nil, nil, &out); err != nil {
		s.Notifier.Notify(Error, client.Message(err))
		return nil
	}
	s.Notifier.Notify(Success, "Purged: "+strings.Join(out.Tables, ", "))
	for _, p := range s.pages {
		if p.LoadState() != LoadIdle {
			_ = p.Refresh(ctx)
		}
	}
	return nil
}

func (s *Shell) help() {
	fmt.Fprintln(s.Out, `Pages: `+strings.Join(s.pageNames(), ", ")+`
  use <page>               open a page
  students <form #|id>     override students of a form (read-only)
  list | refresh           show / reload rows
  search <term>            filter rows (empty clears)
  sort <key>               sort by column, again to flip direction
  page <n>                 go to page n
  add | edit <#|id>        open the form
  set <field>=<value>      fill a field
  save | cancel            submit or discard
  delete <#|id> , confirm  soft delete with confirmation
  stats                    counts for this page
  publish | close <#|id>   form lifecycle (forms page)
  purge                    delete all data (development only)
  quit`)
}
