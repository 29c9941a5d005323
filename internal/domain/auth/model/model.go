package model

import (
	"time"

	"github.com/google/uuid"
)

// User is the persisted account record. CurrentRefreshToken holds the
// SHA-256 hex digest of the most recently issued refresh token; nil means
// the user is logged out. At most one refresh token is valid per user.
type User struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email               string    `gorm:"uniqueIndex;not null"`
	PasswordHash        string    `gorm:"not null"`
	Name                string
	DateOfBirth         string
	CurrentRefreshToken *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type TokenPair struct {
	AccessToken     string
	RefreshToken    string
	AccessTTL       time.Duration
	RefreshTTL      time.Duration
	UserID          uuid.UUID
	RefreshTokenJTI string
}
