package entity

import "time"

const (
	TokenPurposeResetPassword = "reset_password"
	TokenPurposeSetPassword   = "set_password"
)

// DbPasswordResetToken stores the sha256 of a one-time credential token. The
// raw token is only ever sent to the user, never persisted. The same table
// backs both the reset-password and the first-time set-password flows,
// discriminated by purpose.
type DbPasswordResetToken struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	UserID    uint       `gorm:"column:user_id;index;not null" json:"user_id"`
	TokenHash string     `gorm:"column:token_hash;type:varchar(128);uniqueIndex;not null" json:"-"`
	Purpose   string     `gorm:"column:purpose;type:varchar(50);index;not null" json:"purpose"`
	ExpiresAt time.Time  `gorm:"column:expires_at;not null" json:"expires_at"`
	UsedAt    *time.Time `gorm:"column:used_at" json:"used_at,omitempty"`
}

func (DbPasswordResetToken) TableName() string {
	return "password_reset_token"
}

// Expired reports whether the token is past its expiry at the given instant.
func (t *DbPasswordResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// Used reports whether the token has already been consumed.
func (t *DbPasswordResetToken) Used() bool {
	return t.UsedAt != nil
}
