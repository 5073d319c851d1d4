package repositories

import (
	"context"

	"appraiser-auth.backend/internal/domain/entities"
)

// ThresholdStore holds the versioned similarity threshold
type ThresholdStore interface {
	Current(ctx context.Context) (entities.ThresholdConfig, error)
	// Set stores value and returns the previous and the new snapshot
	Set(ctx context.Context, value float64) (entities.ThresholdConfig, entities.ThresholdConfig, error)
}
