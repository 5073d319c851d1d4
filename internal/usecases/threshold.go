package usecases

import (
	"fmt"
	"math"

	domainerrors "appraiser-auth.backend/internal/domain/errors"
)

// ValidateThreshold accepts values in [0, 1]
func ValidateThreshold(v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return fmt.Errorf("%w: got %v", domainerrors.ErrInvalidThreshold, v)
	}
	return nil
}
