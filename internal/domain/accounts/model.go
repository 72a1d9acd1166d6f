package accounts

import (
	"time"
)

type Account struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Email    string  `gorm:"not null;uniqueIndex:idx_accounts_email" json:"email"`
	Username string  `gorm:"not null;uniqueIndex:idx_accounts_username" json:"username"`
	Password *string `gorm:"" json:"-"`

	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'" json:"-"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_accounts_google_sub" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
