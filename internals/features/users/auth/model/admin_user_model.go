// file: internals/features/users/auth/model/admin_user_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// AdminUserModel: akun dashboard. Mahasiswa tidak login, mereka hanya
// mengisi form publik lewat slug.
type AdminUserModel struct {
	AdminUserID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:admin_user_id" json:"admin_user_id"`
	AdminUserEmail    string    `gorm:"type:text;not null;uniqueIndex:uq_admin_user_email,where:admin_user_deleted_at IS NULL;column:admin_user_email" json:"admin_user_email"`
	AdminUserName     string    `gorm:"type:text;not null;column:admin_user_name" json:"admin_user_name"`
	AdminUserPassword string    `gorm:"type:text;not null;column:admin_user_password" json:"-"`
	AdminUserRole     string    `gorm:"type:varchar(20);not null;default:'admin';column:admin_user_role" json:"admin_user_role"`
	AdminUserIsActive bool      `gorm:"not null;default:true;column:admin_user_is_active" json:"admin_user_is_active"`

	AdminUserLastLoginAt *time.Time `gorm:"type:timestamptz;column:admin_user_last_login_at" json:"admin_user_last_login_at,omitempty"`

	AdminUserCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:admin_user_created_at" json:"admin_user_created_at"`
	AdminUserUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:admin_user_updated_at" json:"admin_user_updated_at"`
	AdminUserDeletedAt gorm.DeletedAt `gorm:"column:admin_user_deleted_at;index" json:"admin_user_deleted_at,omitempty"`
}

func (AdminUserModel) TableName() string { return "admin_users" }

func (m *AdminUserModel) BeforeSave(tx *gorm.DB) error {
	m.AdminUserEmail = strings.ToLower(strings.TrimSpace(m.AdminUserEmail))
	m.AdminUserName = strings.TrimSpace(m.AdminUserName)
	if m.AdminUserRole == "" {
		m.AdminUserRole = RoleAdmin
	}
	return nil
}
