// internals/features/users/auth/service/blacklist_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"reflectify_backend/internals/databases/repository"
	authModel "reflectify_backend/internals/features/users/auth/model"
)

type Blacklist struct {
	Repo   repository.Repository[authModel.TokenBlacklistModel]
	Tokens *TokenService
}

func NewBlacklist(repo repository.Repository[authModel.TokenBlacklistModel], tokens *TokenService) *Blacklist {
	return &Blacklist{Repo: repo, Tokens: tokens}
}

// Add: simpan hash token. Baris lama (termasuk yang sudah di-soft delete)
// dihidupkan lagi dengan expiry baru.
func (b *Blacklist) Add(ctx context.Context, raw string, expiresAt time.Time) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	hash := b.Tokens.Hash(raw)
	f := repository.Where("token_blacklist_token", hash)
	f.WithDeleted = true

	existing, err := b.Repo.First(ctx, f)
	switch {
	case err == nil:
		existing.TokenBlacklistExpiredAt = expiresAt
		existing.TokenBlacklistDeletedAt = gorm.DeletedAt{}
		return b.Repo.Save(ctx, existing)
	case errors.Is(err, repository.ErrNotFound):
		return b.Repo.Create(ctx, &authModel.TokenBlacklistModel{
			TokenBlacklistToken:     hash,
			TokenBlacklistExpiredAt: expiresAt,
		})
	default:
		return err
	}
}

func (b *Blacklist) IsBlacklisted(ctx context.Context, raw string) (bool, error) {
	if strings.TrimSpace(raw) == "" {
		return false, nil
	}
	return repository.Exists(ctx, b.Repo, repository.Where("token_blacklist_token", b.Tokens.Hash(raw)))
}

// PurgeExpired soft-deletes entries whose expiry is before cutoff and
// returns how many were removed.
func (b *Blacklist) PurgeExpired(ctx context.Context, cutoff time.Time) (int, error) {
	rows, err := b.Repo.List(ctx, repository.Filter{})
	if err != nil {
		return 0, err
	}
	n := 0
	for _, r := range rows {
		if !r.TokenBlacklistExpiredAt.Before(cutoff) {
			continue
		}
		if err := b.Repo.SoftDelete(ctx, r.TokenBlacklistID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return n, err
		}
		n++
	}
	return n, nil
}
