package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reflectify_backend/internals/databases/repository"
	authModel "reflectify_backend/internals/features/users/auth/model"
	"reflectify_backend/internals/features/users/auth/service"
)

func TestCreateAdminAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory[authModel.AdminUserModel]()

	_, err := service.CreateAdmin(ctx, repo, "Ops@Uni.test", "Ops", "short", "")
	assert.ErrorIs(t, err, service.ErrWeakPassword)

	u, err := service.CreateAdmin(ctx, repo, " Ops@Uni.test ", "Ops", "password123", "whatever")
	require.NoError(t, err)
	assert.Equal(t, "ops@uni.test", u.AdminUserEmail)
	assert.Equal(t, authModel.RoleAdmin, u.AdminUserRole)
	assert.NotEqual(t, "password123", u.AdminUserPassword)

	_, err = service.CreateAdmin(ctx, repo, "ops@uni.test", "Dup", "password123", "")
	assert.ErrorIs(t, err, service.ErrEmailTaken)

	got, err := service.Authenticate(ctx, repo, "OPS@uni.test", "password123")
	require.NoError(t, err)
	assert.NotNil(t, got.AdminUserLastLoginAt)

	_, err = service.Authenticate(ctx, repo, "ops@uni.test", "wrong-password")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	_, err = service.Authenticate(ctx, repo, "nobody@uni.test", "password123")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	got.AdminUserIsActive = false
	require.NoError(t, repo.Save(ctx, got))
	_, err = service.Authenticate(ctx, repo, "ops@uni.test", "password123")
	assert.ErrorIs(t, err, service.ErrInactiveAccount)
}
