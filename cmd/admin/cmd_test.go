package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	database "reflectify_backend/internals/databases"
	"reflectify_backend/internals/databases/repository"
	authModel "reflectify_backend/internals/features/users/auth/model"
	authService "reflectify_backend/internals/features/users/auth/service"
)

func newTestCLI(t *testing.T, dev bool) (*commandLine, *database.Stores, *bytes.Buffer) {
	t.Helper()
	st := database.NewMemoryStores()
	out := &bytes.Buffer{}
	cli := &commandLine{
		openStores: func() (*database.Stores, func(), error) { return st, func() {}, nil },
		isDev:      func() bool { return dev },
		stdout:     out,
	}
	return cli, st, out
}

func mockPassword(t *testing.T, pwd string, err error) {
	t.Helper()
	orig := readPasswordFunc
	readPasswordFunc = func(int) ([]byte, error) { return []byte(pwd), err }
	t.Cleanup(func() { readPasswordFunc = orig })
}

func TestUsage(t *testing.T) {
	cli, _, out := newTestCLI(t, false)
	assert.ErrorIs(t, cli.run([]string{"admin"}), errHelp)
	assert.Contains(t, out.String(), "createadmin")
	assert.ErrorIs(t, cli.run([]string{"admin", "nope"}), errHelp)
}

func TestCreateAdmin(t *testing.T) {
	cli, st, out := newTestCLI(t, false)
	mockPassword(t, "supersecret\n", nil)

	err := cli.run([]string{"admin", "createadmin", "-email", "Ops@Uni.test", "-name", "Ops", "-role", "super_admin"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "ops@uni.test (super_admin)")

	u, err := st.Admins.First(context.Background(), repository.Where("admin_user_email", "ops@uni.test"))
	require.NoError(t, err)
	assert.Equal(t, authModel.RoleSuperAdmin, u.AdminUserRole)
	assert.NoError(t, authService.CheckPasswordHash(u.AdminUserPassword, "supersecret"))

	err = cli.run([]string{"admin", "createadmin", "-email", "ops@uni.test", "-name", "Again"})
	assert.ErrorIs(t, err, authService.ErrEmailTaken)
}

func TestCreateAdminNeedsFlagsAndPassword(t *testing.T) {
	cli, _, _ := newTestCLI(t, false)

	mockPassword(t, "", nil)
	assert.ErrorIs(t, cli.run([]string{"admin", "createadmin", "-email", "a@uni.test"}), errHelp)
	assert.ErrorIs(t, cli.run([]string{"admin", "createadmin", "-email", "a@uni.test", "-name", "A"}), errHelp)

	boom := errors.New("no tty")
	mockPassword(t, "", boom)
	assert.ErrorIs(t, cli.run([]string{"admin", "createadmin", "-email", "a@uni.test", "-name", "A"}), boom)
}

func TestSeedThenResetDev(t *testing.T) {
	cli, st, out := newTestCLI(t, true)
	ctx := context.Background()

	require.NoError(t, cli.run([]string{"admin", "seed"}))
	n, err := st.Departments.Count(ctx, repository.Filter{})
	require.NoError(t, err)
	require.Positive(t, n)

	require.NoError(t, cli.run([]string{"admin", "reset-dev"}))
	assert.Contains(t, out.String(), "departments")

	n, err = st.Departments.Count(ctx, repository.Filter{WithDeleted: true})
	require.NoError(t, err)
	assert.Zero(t, n)
	admins, err := st.Admins.Count(ctx, repository.Filter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, admins, "admins survive reset-dev")
}

func TestResetDevRefusedOutsideDevelopment(t *testing.T) {
	cli, st, _ := newTestCLI(t, false)
	ctx := context.Background()
	require.NoError(t, cli.run([]string{"admin", "seed"}))

	assert.Error(t, cli.run([]string{"admin", "reset-dev"}))
	n, err := st.Departments.Count(ctx, repository.Filter{})
	require.NoError(t, err)
	assert.Positive(t, n)
}
