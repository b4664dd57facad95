package sql

import (
	"context"
	"fmt"

	"jalanmon/internal/entity"
)

// ListRoles returns all roles ordered by name.
func (r *GormRepository) ListRoles(ctx context.Context) ([]entity.DbRole, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	var roles []entity.DbRole
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// CreateRole persists a role record.
func (r *GormRepository) CreateRole(ctx context.Context, role *entity.DbRole) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if role == nil {
		return fmt.Errorf("role is nil")
	}
	return r.db.WithContext(ctx).Create(role).Error
}
