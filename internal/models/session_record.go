package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionRecord is the durable storage scope for "remember me" sessions.
// SecretHash is the sha256 of the session secret; the secret itself is
// never stored.
type SessionRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SecretHash string    `gorm:"size:64;not null;uniqueIndex" json:"-"`
	AuthToken  string    `gorm:"type:text;not null" json:"-"`
	UserEmail  string    `gorm:"size:255;not null" json:"user_email"`
	UserName   string    `gorm:"size:255" json:"user_name"`
	RoleID     int64     `gorm:"not null" json:"role_id"`
	UserID     int64     `gorm:"not null;index" json:"user_id"`
	ExpiresAt  time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
