package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"appraiser-auth.backend/internal/domain/entities"
	domainerrors "appraiser-auth.backend/internal/domain/errors"
	"appraiser-auth.backend/internal/infrastructure/models"
	"appraiser-auth.backend/pkg/utils"
)

type AuthorizationRepository struct {
	db *gorm.DB
}

func NewAuthorizationRepository(db *gorm.DB) *AuthorizationRepository {
	return &AuthorizationRepository{db: db}
}

func (r *AuthorizationRepository) Upsert(ctx context.Context, appraiserID string, bankID, branchID int64) (*entities.AuthorizationMapping, bool, error) {
	existing, err := r.Get(ctx, appraiserID, bankID, branchID)
	switch {
	case err == nil:
		if existing.IsActive {
			return existing, false, nil
		}
		now := time.Now()
		if err := GetDB(ctx, r.db).
			Model(&models.AuthorizationMapping{}).
			Where("id = ?", existing.ID).
			Updates(map[string]interface{}{"is_active": true, "updated_at": now}).Error; err != nil {
			return nil, false, storageError("reactivate authorization", err)
		}
		existing.IsActive = true
		existing.UpdatedAt = now
		return existing, false, nil
	case errors.Is(err, domainerrors.ErrNotFound):
	default:
		return nil, false, err
	}

	now := time.Now()
	m := &models.AuthorizationMapping{
		ID:          utils.GenerateUUIDv7(),
		AppraiserID: appraiserID,
		BankID:      bankID,
		BranchID:    branchID,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "appraiser_id"}, {Name: "bank_id"}, {Name: "branch_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"is_active": true, "updated_at": now}),
	}).Create(m).Error
	if err != nil {
		return nil, false, storageError("create authorization", err)
	}
	return r.toEntity(m), true, nil
}

func (r *AuthorizationRepository) Get(ctx context.Context, appraiserID string, bankID, branchID int64) (*entities.AuthorizationMapping, error) {
	var m models.AuthorizationMapping
	if err := GetDB(ctx, r.db).
		Where("appraiser_id = ? AND bank_id = ? AND branch_id = ?", appraiserID, bankID, branchID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, storageError("get authorization", err)
	}
	return r.toEntity(&m), nil
}

func (r *AuthorizationRepository) ListActiveByAppraiser(ctx context.Context, appraiserID string) ([]*entities.AuthorizationMapping, error) {
	var ms []models.AuthorizationMapping
	if err := GetDB(ctx, r.db).
		Where("appraiser_id = ? AND is_active = ?", appraiserID, true).
		Order("created_at ASC, id ASC").
		Find(&ms).Error; err != nil {
		return nil, storageError("list authorizations", err)
	}

	items := make([]*entities.AuthorizationMapping, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *AuthorizationRepository) Deactivate(ctx context.Context, appraiserID string, bankID, branchID int64) error {
	result := GetDB(ctx, r.db).
		Model(&models.AuthorizationMapping{}).
		Where("appraiser_id = ? AND bank_id = ? AND branch_id = ? AND is_active = ?", appraiserID, bankID, branchID, true).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()})
	if result.Error != nil {
		return storageError("revoke authorization", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *AuthorizationRepository) toEntity(m *models.AuthorizationMapping) *entities.AuthorizationMapping {
	return &entities.AuthorizationMapping{
		ID:          m.ID,
		AppraiserID: m.AppraiserID,
		BankID:      m.BankID,
		BranchID:    m.BranchID,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
