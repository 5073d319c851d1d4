package usecases

import (
	"context"
	"fmt"

	"appraiser-auth.backend/internal/domain/entities"
	domainerrors "appraiser-auth.backend/internal/domain/errors"
)

// detectSingleFace requires exactly one face in the image with a usable embedding
func detectSingleFace(ctx context.Context, extractor FaceExtractor, image []byte) (*entities.DetectedFace, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: image is required", domainerrors.ErrInvalidInput)
	}
	faces, err := extractor.Detect(ctx, image)
	if err != nil {
		return nil, err
	}
	switch len(faces) {
	case 0:
		return nil, domainerrors.ErrNoFaceDetected
	case 1:
		if err := faces[0].Embedding.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", domainerrors.ErrInvalidImage, err)
		}
		if faces[0].Embedding.Norm() == 0 {
			return nil, fmt.Errorf("%w: zero length face embedding", domainerrors.ErrInvalidImage)
		}
		return &faces[0], nil
	default:
		return nil, fmt.Errorf("%w: found %d", domainerrors.ErrMultipleFacesDetected, len(faces))
	}
}
