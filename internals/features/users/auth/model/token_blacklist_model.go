package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenBlacklistModel menyimpan HMAC-SHA256(access token) dalam hex, bukan
// token mentah.
type TokenBlacklistModel struct {
	TokenBlacklistID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:token_blacklist_id" json:"token_blacklist_id"`
	TokenBlacklistToken     string         `gorm:"type:text;not null;uniqueIndex;column:token_blacklist_token" json:"-"`
	TokenBlacklistExpiredAt time.Time      `gorm:"type:timestamptz;not null;index;column:token_blacklist_expired_at" json:"token_blacklist_expired_at"`
	TokenBlacklistCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:token_blacklist_created_at" json:"token_blacklist_created_at"`
	TokenBlacklistDeletedAt gorm.DeletedAt `gorm:"column:token_blacklist_deleted_at;index" json:"token_blacklist_deleted_at,omitempty"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (TokenBlacklistModel) TableName() string {
	return "token_blacklist"
}
