package console_test

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reflectify_backend/internals/console"
	"reflectify_backend/internals/console/client"
	database "reflectify_backend/internals/databases"
	"reflectify_backend/internals/databases/repository"
	deptModel "reflectify_backend/internals/features/academics/departments/model"
	semModel "reflectify_backend/internals/features/academics/semesters/model"
	formService "reflectify_backend/internals/features/feedback/forms/service"
	authModel "reflectify_backend/internals/features/users/auth/model"
	authService "reflectify_backend/internals/features/users/auth/service"
	routes "reflectify_backend/internals/route"
	"reflectify_backend/internals/services/mail"
)

type shellEnv struct {
	Shell   *console.Shell
	Out     *bytes.Buffer
	Notes   *console.RecordingNotifier
	Stores  *database.Stores
	ctx     context.Context
	t       *testing.T
	devMode atomic.Bool
}

// newShellEnv menjalankan API asli (memory store) di httptest server lalu
// login lewat client seperti perintah console.
func newShellEnv(t *testing.T) *shellEnv {
	t.Helper()
	ctx := context.Background()
	env := &shellEnv{Out: &bytes.Buffer{}, Notes: &console.RecordingNotifier{}, Stores: database.NewMemoryStores(), ctx: ctx, t: t}

	tokens := authService.NewTokenService("shell-secret", time.Hour)
	app := fiber.New(fiber.Config{JSONEncoder: sonic.Marshal, JSONDecoder: sonic.Unmarshal})
	routes.SetupRoutes(app, routes.Dependencies{
		Stores:        env.Stores,
		Tokens:        tokens,
		Blacklist:     authService.NewBlacklist(env.Stores.Blacklist, tokens),
		Forms:         formService.NewFormService(env.Stores.Forms, env.Stores.OverrideStudents, mail.NewConsoleServiceMock(), "Reflectify", "http://front.test"),
		IsDevelopment: func() bool { return env.devMode.Load() },
		Environment:   "test",
	})
	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)

	_, err := authService.CreateAdmin(ctx, env.Stores.Admins, "root@reflectify.test", "Root", "password123", authModel.RoleSuperAdmin)
	require.NoError(t, err)

	dept := &deptModel.DepartmentModel{DepartmentName: "Computer Engineering", DepartmentAbbreviation: "CE"}
	require.NoError(t, env.Stores.Departments.Create(ctx, dept))
	require.NoError(t, env.Stores.Semesters.Create(ctx, &semModel.SemesterModel{
		SemesterDepartmentID: dept.DepartmentID,
		SemesterNumber:       3,
		SemesterAcademicYear: "2024-25",
		SemesterType:         semModel.SemesterTypeOdd,
	}))

	c := client.New(srv.URL, 5*time.Second)
	_, err = c.Login(ctx, "root@reflectify.test", "password123")
	require.NoError(t, err)

	env.Shell = console.NewShell(c, env.Out, env.Notes, false)
	return env
}

func (e *shellEnv) exec(lines ...string) string {
	e.t.Helper()
	e.Out.Reset()
	for _, l := range lines {
		require.NoError(e.t, e.Shell.Exec(e.ctx, l), l)
	}
	return e.Out.String()
}

func (e *shellEnv) lastNote() console.Notification {
	e.t.Helper()
	n, ok := e.Notes.Last()
	require.True(e.t, ok, "no notification")
	return n
}

func TestShellFacultyCRUD(t *testing.T) {
	env := newShellEnv(t)

	out := env.exec("use faculties")
	assert.Contains(t, out, "No faculties yet.")
	assert.Equal(t, "reflectify:faculties> ", env.Shell.Prompt())

	env.exec("add")
	assert.Equal(t, "reflectify:faculties(adding)> ", env.Shell.Prompt())
	out = env.exec(
		"set name=Alice Smith",
		"set email=Alice@Uni.test",
		"set designation=hod",
		"set department=ce",
		"set seniority=12",
		"save",
	)
	assert.Equal(t, console.Notification{Kind: console.Success, Message: "Faculty created"}, env.lastNote())
	assert.Contains(t, out, "Alice Smith")
	assert.Contains(t, out, "alice@uni.test")
	assert.Contains(t, out, "CE")
	assert.Contains(t, out, "Showing 1-1 of 1 (page 1/1)")
	assert.Equal(t, "reflectify:faculties> ", env.Shell.Prompt())

	env.exec("edit 1", "set name=Alice Jones", "save")
	assert.Equal(t, "Faculty updated", env.lastNote().Message)

	out = env.exec("stats")
	assert.Contains(t, out, "BY DESIGNATION")
	assert.Contains(t, out, "HOD")

	env.exec("delete 1")
	assert.Equal(t, "reflectify:faculties(confirming-delete)> ", env.Shell.Prompt())
	out = env.exec("confirm")
	assert.Equal(t, "Faculty deleted", env.lastNote().Message)
	assert.Contains(t, out, "No faculties yet.")

	n, err := env.Stores.Faculties.Count(env.ctx, repository.Filter{OnlyDeleted: true})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n, "delete is a soft delete")
}

func TestShellInvalidDraftSendsNothing(t *testing.T) {
	env := newShellEnv(t)
	env.exec("use faculties", "add", "set name=Bob", "set email=bob@uni.test", "set designation=Wizard", "set department=CE", "save")

	note := env.lastNote()
	assert.Equal(t, console.Error, note.Kind)
	assert.Equal(t, "designation: unknown designation", note.Message)
	assert.Equal(t, "reflectify:faculties(adding)> ", env.Shell.Prompt())

	n, err := env.Stores.Faculties.Count(env.ctx, repository.Filter{WithDeleted: true})
	require.NoError(t, err)
	assert.Zero(t, n)

	env.exec("cancel")
	assert.Equal(t, "reflectify:faculties> ", env.Shell.Prompt())
}

func TestShellServerErrorIsShown(t *testing.T) {
	env := newShellEnv(t)
	create := func(email string) {
		env.exec("add", "set name=Dup", "set email="+email, "set designation=Professor", "set department=CE")
		_ = env.Shell.Exec(env.ctx, "save")
	}
	env.exec("use faculties")
	create("dup@uni.test")
	create("dup@uni.test")

	note := env.lastNote()
	assert.Equal(t, console.Error, note.Kind)
	assert.NotEqual(t, client.FallbackMessage, note.Message)
	assert.Equal(t, "reflectify:faculties(adding)> ", env.Shell.Prompt())
}

func TestShellFormLifecycle(t *testing.T) {
	env := newShellEnv(t)
	env.exec(
		"use forms",
		"add",
		"set title=Mid Semester Feedback",
		"set semester=CE-3",
		"set division=a",
		"set end_date=2099-12-31",
		"set questions=rating:Teaching quality; text:Comments",
		"save",
	)
	assert.Equal(t, "Feedback form created", env.lastNote().Message)

	out := env.exec("publish 1")
	assert.Contains(t, env.lastNote().Message, `Published "Mid Semester Feedback"`)
	assert.Contains(t, out, "ACTIVE")

	env.exec("close 1")
	assert.Equal(t, `Closed "Mid Semester Feedback"`, env.lastNote().Message)

	err := env.Shell.Exec(env.ctx, "publish 1")
	require.Error(t, err)
	assert.Equal(t, console.Error, env.lastNote().Kind)
}

func TestShellCommandsAndPurgeGuard(t *testing.T) {
	env := newShellEnv(t)

	assert.Error(t, env.Shell.Exec(env.ctx, "list"), "no page selected")
	assert.Error(t, env.Shell.Exec(env.ctx, "use nowhere"))
	assert.ErrorIs(t, env.Shell.Exec(env.ctx, "quit"), console.ErrQuit)

	env.exec("use semesters")
	assert.Error(t, env.Shell.Exec(env.ctx, "page 9"))
	assert.Error(t, env.Shell.Exec(env.ctx, "frobnicate"))
	assert.Error(t, env.Shell.Exec(env.ctx, "set nonsense"))

	assert.Error(t, env.Shell.Exec(env.ctx, "purge yes"), "purge outside development")

	env.Shell.IsDevelopment = true
	out := env.exec("purge")
	assert.Contains(t, out, "Type 'purge yes'")

	// server juga menolak kalau bukan development
	env.exec("purge yes")
	assert.Equal(t, console.Error, env.lastNote().Kind)

	env.devMode.Store(true)
	env.exec("purge yes")
	assert.True(t, strings.HasPrefix(env.lastNote().Message, "Purged: "))
	n, err := env.Stores.Semesters.Count(env.ctx, repository.Filter{WithDeleted: true})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestShellRunStopsOnQuit(t *testing.T) {
	env := newShellEnv(t)
	r := &scriptReader{lines: []string{"help", "use semesters", "bogus", "quit", "use faculties"}}
	require.NoError(t, env.Shell.Run(env.ctx, r))
	assert.Equal(t, 4, r.pos, "lines after quit are not read")
	assert.Contains(t, env.Out.String(), "unknown command")
	assert.Contains(t, env.Out.String(), "2024-25")
}

func TestShellRunPrintsLocalErrors(t *testing.T) {
	env := newShellEnv(t)
	r := &scriptReader{lines: []string{"list", "use semesters", "page 9", "confirm"}}
	require.NoError(t, env.Shell.Run(env.ctx, r))

	out := env.Out.String()
	assert.Contains(t, out, "❌ no page selected, try 'use faculties'")
	assert.Contains(t, out, "❌ page 9 is out of range")
	assert.Contains(t, out, "❌ "+console.ErrWrongMode.Error())
	assert.NotContains(t, out, client.FallbackMessage)
}

type scriptReader struct {
	lines []string
	pos   int
}

func (r *scriptReader) Readline() (string, error) {
	if r.pos >= len(r.lines) {
		return "", io.EOF
	}
	l := r.lines[r.pos]
	r.pos++
	return l, nil
}
