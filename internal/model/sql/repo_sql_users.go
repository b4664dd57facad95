package sql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jalanmon/internal/entity"

	"gorm.io/gorm"
)

// CreateUser persists a new user record.
func (r *GormRepository) CreateUser(ctx context.Context, user *entity.DbUser) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if user == nil {
		return fmt.Errorf("user is nil")
	}
	return r.db.WithContext(ctx).Create(user).Error
}

// GetUserByID loads a user by ID.
func (r *GormRepository) GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	var user entity.DbUser
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail loads a user by email, case-insensitively.
func (r *GormRepository) GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return nil, fmt.Errorf("email is empty")
	}

	var user entity.DbUser
	if err := r.db.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(trimmed)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername loads a user by username.
func (r *GormRepository) GetUserByUsername(ctx context.Context, username string) (*entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return nil, fmt.Errorf("username is empty")
	}
	var user entity.DbUser
	if err := r.db.WithContext(ctx).Where("username = ?", trimmed).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByNIP loads a user by the personnel identifier.
func (r *GormRepository) GetUserByNIP(ctx context.Context, nip string) (*entity.DbUser, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(nip)
	if trimmed == "" {
		return nil, fmt.Errorf("nip is empty")
	}
	var user entity.DbUser
	if err := r.db.WithContext(ctx).Where("nip = ?", trimmed).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies a partial column update.
func (r *GormRepository) UpdateUser(ctx context.Context, id uint, updates map[string]interface{}) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid user")
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entity.DbUser{}).Where("id = ?", id).Updates(updates).Error
}

// IncrementTokenVersion bumps the revocation counter, invalidating every
// outstanding bearer token of the account.
func (r *GormRepository) IncrementTokenVersion(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid user")
	}
	// Updates, not UpdateColumn, so updated_at is maintained.
	return r.db.WithContext(ctx).Model(&entity.DbUser{}).Where("id = ?", id).
		Updates(map[string]interface{}{"token_version": gorm.Expr("token_version + 1")}).Error
}

// TouchLastActivity stamps the inactivity-tracking timestamp.
func (r *GormRepository) TouchLastActivity(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid user")
	}
	return r.db.WithContext(ctx).Model(&entity.DbUser{}).Where("id = ?", id).
		UpdateColumn("last_activity", time.Now().UTC()).Error
}

// ListUsers returns paginated users, newest first, with case-insensitive
// substring search and optional role filter.
func (r *GormRepository) ListUsers(ctx context.Context, params *entity.UserQuery) ([]entity.DbUser, int64, error) {
	if r == nil || r.db == nil {
		return nil, 0, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbUser{})

	page := 0
	limit := 0
	if params != nil {
		page = params.Page
		limit = params.Limit

		if keyword := strings.TrimSpace(params.Search); keyword != "" {
			kw := "%" + strings.ToLower(keyword) + "%"
			query = query.Where(
				"LOWER(full_name) LIKE ? OR LOWER(username) LIKE ? OR LOWER(email) LIKE ? OR LOWER(nip) LIKE ? OR LOWER(jabatan) LIKE ? OR LOWER(organization) LIKE ?",
				kw, kw, kw, kw, kw, kw,
			)
		}
		if role := strings.TrimSpace(params.Role); role != "" {
			query = query.Where("role_name = ?", role)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	_, limit, offset := normalisePage(page, limit)

	var users []entity.DbUser
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// ListPendingUsers returns accounts awaiting verification, newest first.
func (r *GormRepository) ListPendingUsers(ctx context.Context, limit, offset int) ([]entity.DbUser, int64, error) {
	if r == nil || r.db == nil {
		return nil, 0, fmt.Errorf("repository not initialised")
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := r.db.WithContext(ctx).Model(&entity.DbUser{}).
		Where("status_verifikasi = ?", entity.VerificationPending)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []entity.DbUser
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
