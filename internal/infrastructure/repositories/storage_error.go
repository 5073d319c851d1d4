package repositories

import (
	"fmt"

	domainerrors "appraiser-auth.backend/internal/domain/errors"
)

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domainerrors.ErrStorage, op, err)
}
