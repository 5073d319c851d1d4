package repositories

import (
	"context"

	"appraiser-auth.backend/internal/domain/entities"
)

// AuthorizationRepository is the tenant authorization map
type AuthorizationRepository interface {
	// Upsert activates the (appraiser, bank, branch) mapping, creating it when missing
	Upsert(ctx context.Context, appraiserID string, bankID, branchID int64) (*entities.AuthorizationMapping, bool, error)
	// Get returns the mapping row whether active or revoked
	Get(ctx context.Context, appraiserID string, bankID, branchID int64) (*entities.AuthorizationMapping, error)
	ListActiveByAppraiser(ctx context.Context, appraiserID string) ([]*entities.AuthorizationMapping, error)
	// Deactivate soft deletes an active mapping
	Deactivate(ctx context.Context, appraiserID string, bankID, branchID int64) error
}
