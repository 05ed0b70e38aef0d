package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reflectify_backend/internals/databases/repository"
	authModel "reflectify_backend/internals/features/users/auth/model"
	"reflectify_backend/internals/features/users/auth/service"
)

func admin() *authModel.AdminUserModel {
	return &authModel.AdminUserModel{
		AdminUserID:    uuid.New(),
		AdminUserEmail: "root@reflectify.test",
		AdminUserName:  "Root",
		AdminUserRole:  authModel.RoleSuperAdmin,
	}
}

func TestIssueAndParse(t *testing.T) {
	ts := service.NewTokenService("secret", time.Hour)
	u := admin()

	raw, exp, err := ts.Issue(u)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := ts.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, u.AdminUserID.String(), claims.UserID)
	assert.Equal(t, u.AdminUserEmail, claims.Email)
	assert.Equal(t, authModel.RoleSuperAdmin, claims.Role)
}

func TestParseRejectsExpiredAndForeignTokens(t *testing.T) {
	issuedAt := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	ts := service.NewTokenService("secret", time.Hour)
	ts.Now = func() time.Time { return issuedAt }

	raw, _, err := ts.Issue(admin())
	require.NoError(t, err)

	ts.Now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	_, err = ts.Parse(raw)
	assert.ErrorIs(t, err, service.ErrTokenExpired)

	other := service.NewTokenService("another-secret", time.Hour)
	other.Now = func() time.Time { return issuedAt }
	_, err = other.Parse(raw)
	assert.ErrorIs(t, err, service.ErrTokenInvalid)

	_, err = ts.Parse("not-a-jwt")
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
}

func TestMissingSecret(t *testing.T) {
	ts := service.NewTokenService("", 0)
	assert.Equal(t, 12*time.Hour, ts.TTL)
	_, _, err := ts.Issue(admin())
	assert.ErrorIs(t, err, service.ErrMissingSecret)
}

func TestBlacklist(t *testing.T) {
	ctx := context.Background()
	ts := service.NewTokenService("secret", time.Hour)
	repo := repository.NewMemory[authModel.TokenBlacklistModel]()
	bl := service.NewBlacklist(repo, ts)

	raw, exp, err := ts.Issue(admin())
	require.NoError(t, err)

	listed, err := bl.IsBlacklisted(ctx, raw)
	require.NoError(t, err)
	assert.False(t, listed)

	require.NoError(t, bl.Add(ctx, raw, exp))
	listed, err = bl.IsBlacklisted(ctx, raw)
	require.NoError(t, err)
	assert.True(t, listed)

	rows, err := repo.List(ctx, repository.Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.NotContains(t, rows[0].TokenBlacklistToken, raw[:20], "only the hash is stored")
	assert.Len(t, rows[0].TokenBlacklistToken, 64)

	n, err := bl.PurgeExpired(ctx, exp.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	listed, err = bl.IsBlacklisted(ctx, raw)
	require.NoError(t, err)
	assert.False(t, listed)

	// token yang sama masuk lagi: baris lama dihidupkan
	require.NoError(t, bl.Add(ctx, raw, exp.Add(time.Hour)))
	listed, err = bl.IsBlacklisted(ctx, raw)
	require.NoError(t, err)
	assert.True(t, listed)
	rows, err = repo.List(ctx, repository.Filter{WithDeleted: true})
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	require.NoError(t, bl.Add(ctx, "   ", exp))
	listed, err = bl.IsBlacklisted(ctx, "")
	require.NoError(t, err)
	assert.False(t, listed)
}
