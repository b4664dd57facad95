package model

import (
	"context"

	"jalanmon/internal/entity"
)

// Repository defines the storage boundary. No business rules live behind it;
// callers enforce state invariants before mutating.
type Repository interface {
	// users
	CreateUser(ctx context.Context, user *entity.DbUser) error
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error)
	GetUserByUsername(ctx context.Context, username string) (*entity.DbUser, error)
	GetUserByNIP(ctx context.Context, nip string) (*entity.DbUser, error)
	UpdateUser(ctx context.Context, id uint, updates map[string]interface{}) error
	IncrementTokenVersion(ctx context.Context, id uint) error
	TouchLastActivity(ctx context.Context, id uint) error
	ListUsers(ctx context.Context, params *entity.UserQuery) ([]entity.DbUser, int64, error)
	ListPendingUsers(ctx context.Context, limit, offset int) ([]entity.DbUser, int64, error)

	// roles
	ListRoles(ctx context.Context) ([]entity.DbRole, error)
	CreateRole(ctx context.Context, role *entity.DbRole) error

	// one-time credential tokens
	CreateResetToken(ctx context.Context, token *entity.DbPasswordResetToken) error
	GetResetToken(ctx context.Context, tokenHash string) (*entity.DbPasswordResetToken, error)
	SupersedeResetTokens(ctx context.Context, userID uint, purpose string) error
	ConsumeResetToken(ctx context.Context, id uint) (bool, error)
}
