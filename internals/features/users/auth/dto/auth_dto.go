package dto

import (
	"time"

	authModel "reflectify_backend/internals/features/users/auth/model"

	"github.com/google/uuid"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AdminUserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"user_name"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

type LoginResponse struct {
	AccessToken string            `json:"access_token"`
	ExpiresAt   time.Time         `json:"expires_at"`
	User        AdminUserResponse `json:"user"`
}

func FromModel(u *authModel.AdminUserModel) AdminUserResponse {
	return AdminUserResponse{
		ID:          u.AdminUserID,
		Email:       u.AdminUserEmail,
		Name:        u.AdminUserName,
		Role:        u.AdminUserRole,
		IsActive:    u.AdminUserIsActive,
		LastLoginAt: u.AdminUserLastLoginAt,
	}
}
