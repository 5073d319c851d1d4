package repositories

import (
	"context"

	"appraiser-auth.backend/internal/domain/entities"
)

// TenantRepository resolves banks and branches
type TenantRepository interface {
	GetBankByID(ctx context.Context, id int64) (*entities.Bank, error)
	GetBankByCode(ctx context.Context, code string) (*entities.Bank, error)
	// GetOrCreateBank registers the bank on first use; shortName may be empty
	GetOrCreateBank(ctx context.Context, code, name, shortName string) (*entities.Bank, bool, error)
	GetBranchByID(ctx context.Context, id int64) (*entities.Branch, error)
	GetBranchByCode(ctx context.Context, bankID int64, code string) (*entities.Branch, error)
	GetOrCreateBranch(ctx context.Context, bankID int64, code, name string) (*entities.Branch, bool, error)
}
