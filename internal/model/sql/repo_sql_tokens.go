package sql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jalanmon/internal/entity"
)

// CreateResetToken persists a one-time token record.
func (r *GormRepository) CreateResetToken(ctx context.Context, token *entity.DbPasswordResetToken) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if token == nil {
		return fmt.Errorf("token is nil")
	}
	return r.db.WithContext(ctx).Create(token).Error
}

// GetResetToken loads a token record by its hash.
func (r *GormRepository) GetResetToken(ctx context.Context, tokenHash string) (*entity.DbPasswordResetToken, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(tokenHash)
	if trimmed == "" {
		return nil, fmt.Errorf("token hash is empty")
	}
	var token entity.DbPasswordResetToken
	if err := r.db.WithContext(ctx).Where("token_hash = ?", trimmed).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// SupersedeResetTokens marks every outstanding unused token of the user for
// the given purpose as used, so at most one token is live at a time.
func (r *GormRepository) SupersedeResetTokens(ctx context.Context, userID uint, purpose string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if userID == 0 {
		return fmt.Errorf("invalid user")
	}
	return r.db.WithContext(ctx).Model(&entity.DbPasswordResetToken{}).
		Where("user_id = ? AND purpose = ? AND used_at IS NULL", userID, purpose).
		Updates(map[string]interface{}{"used_at": time.Now().UTC()}).Error
}

// ConsumeResetToken marks the token used with an update-if-unused write, so
// two concurrent consumers cannot both succeed. Returns false when the token
// was already consumed.
func (r *GormRepository) ConsumeResetToken(ctx context.Context, id uint) (bool, error) {
	if r == nil || r.db == nil {
		return false, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return false, fmt.Errorf("invalid token id")
	}
	result := r.db.WithContext(ctx).Model(&entity.DbPasswordResetToken{}).
		Where("id = ? AND used_at IS NULL", id).
		Updates(map[string]interface{}{"used_at": time.Now().UTC()})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
