package users

import (
	"time"
)

type User struct {
	ID           uint    `gorm:"primaryKey"`
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`

	IsAdmin    bool
	IsVerified bool

	// Seller identity. Publishing slots requires a verified business
	// unless the account is an admin.
	BusinessVerified bool
	BusinessName     *string
	Siret            *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type VerificationToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	Token     string `gorm:"uniqueIndex;not null"`
	Purpose   string `gorm:"type:varchar(30);not null;default:'verify_email'"`
	ExpiresAt time.Time
	CreatedAt time.Time
}
