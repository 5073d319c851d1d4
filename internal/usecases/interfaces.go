package usecases

import (
	"context"

	"appraiser-auth.backend/internal/domain/entities"
)

// FaceExtractor is the external detection + embedding service
type FaceExtractor interface {
	Detect(ctx context.Context, image []byte) ([]entities.DetectedFace, error)
	Health(ctx context.Context) error
}
