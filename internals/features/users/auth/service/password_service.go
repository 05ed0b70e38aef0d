package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"reflectify_backend/internals/databases/repository"
	authModel "reflectify_backend/internals/features/users/auth/model"
)

var (
	ErrInvalidCredentials = errors.New("email atau password salah")
	ErrInactiveAccount    = errors.New("akun dinonaktifkan")
	ErrEmailTaken         = errors.New("email sudah terdaftar")
	ErrWeakPassword       = errors.New("password minimal 8 karakter")
)

const MinPasswordLen = 8

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPasswordHash(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

// Authenticate cek email + password; LastLoginAt ikut diupdate.
func Authenticate(ctx context.Context, repo repository.Repository[authModel.AdminUserModel], email, password string) (*authModel.AdminUserModel, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := repo.First(ctx, repository.Where("admin_user_email", email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := CheckPasswordHash(u.AdminUserPassword, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.AdminUserIsActive {
		return nil, ErrInactiveAccount
	}
	now := time.Now()
	u.AdminUserLastLoginAt = &now
	if err := repo.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// CreateAdmin dipakai CLI createadmin dan seed.
func CreateAdmin(ctx context.Context, repo repository.Repository[authModel.AdminUserModel], email, name, password, role string) (*authModel.AdminUserModel, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(password) < MinPasswordLen {
		return nil, ErrWeakPassword
	}
	taken, err := repository.Exists(ctx, repo, repository.Where("admin_user_email", email))
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	if role != authModel.RoleSuperAdmin {
		role = authModel.RoleAdmin
	}
	u := &authModel.AdminUserModel{
		AdminUserEmail:    email,
		AdminUserName:     name,
		AdminUserPassword: hash,
		AdminUserRole:     role,
		AdminUserIsActive: true,
	}
	if err := repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
