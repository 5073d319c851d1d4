package repositories

import (
	"context"

	"appraiser-auth.backend/internal/domain/entities"
)

// AppraiserRepository is the identity store, keyed by the external appraiser id
type AppraiserRepository interface {
	GetByAppraiserID(ctx context.Context, appraiserID string) (*entities.Appraiser, error)
	// Upsert inserts or overwrites the identity in place; created reports which happened
	Upsert(ctx context.Context, appraiser *entities.Appraiser) (created bool, err error)
	// FindByName matches names case-insensitively, oldest enrollment first
	FindByName(ctx context.Context, name string) ([]*entities.Appraiser, error)
	// ListGallery returns every registered identity with an embedding, oldest enrollment first
	ListGallery(ctx context.Context) ([]*entities.GalleryEntry, error)
	CountGallery(ctx context.Context) (int64, error)
	List(ctx context.Context, limit, offset int) ([]*entities.Appraiser, int64, error)
	ClearFaceEncoding(ctx context.Context, appraiserID string) error
	// ListUnmappedLegacy returns identities whose primary tenant has no mapping row yet
	ListUnmappedLegacy(ctx context.Context, limit int) ([]*entities.Appraiser, error)
}
