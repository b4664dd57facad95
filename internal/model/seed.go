package model

import (
	"context"

	"jalanmon/internal/entity"
)

// SeedDefaultRoles ensures the two permitted roles exist in the database.
func SeedDefaultRoles(ctx context.Context, repo Repository) error {
	if repo == nil {
		return nil
	}

	seeds := []entity.DbRole{
		{Name: entity.RoleSuperAdmin, Description: "Administrator dengan akses penuh manajemen pengguna"},
		{Name: entity.RoleEksekutif, Description: "Pengguna eksekutif dashboard monitoring"},
	}

	existing, err := repo.ListRoles(ctx)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, role := range existing {
		have[role.Name] = true
	}

	for _, seed := range seeds {
		if have[seed.Name] {
			continue
		}
		role := seed
		if err := repo.CreateRole(ctx, &role); err != nil {
			return err
		}
	}
	return nil
}
