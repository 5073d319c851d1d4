package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"appraiser-auth.backend/internal/domain/entities"
	domainerrors "appraiser-auth.backend/internal/domain/errors"
	"appraiser-auth.backend/internal/infrastructure/models"
	"appraiser-auth.backend/pkg/utils"
)

const galleryColumns = "id, appraiser_id, name, face_encoding, bank_id, branch_id, created_at"

type AppraiserRepository struct {
	db *gorm.DB
}

func NewAppraiserRepository(db *gorm.DB) *AppraiserRepository {
	return &AppraiserRepository{db: db}
}

func (r *AppraiserRepository) GetByAppraiserID(ctx context.Context, appraiserID string) (*entities.Appraiser, error) {
	var m models.Appraiser
	if err := GetDB(ctx, r.db).Where("appraiser_id = ?", appraiserID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, storageError("get appraiser", err)
	}
	return r.toEntity(&m), nil
}

func (r *AppraiserRepository) Upsert(ctx context.Context, appraiser *entities.Appraiser) (bool, error) {
	db := GetDB(ctx, r.db)
	now := time.Now()
	if appraiser.Status == "" {
		appraiser.Status = entities.IdentityStatusRegistered
	}

	var existing models.Appraiser
	err := db.Select("id, created_at").Where("appraiser_id = ?", appraiser.AppraiserID).First(&existing).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"name":          appraiser.Name,
			"email":         appraiser.Email,
			"phone":         appraiser.Phone,
			"face_encoding": appraiser.FaceEncoding,
			"image_data":    appraiser.ImageData,
			"bank_id":       appraiser.BankID,
			"branch_id":     appraiser.BranchID,
			"status":        string(appraiser.Status),
			"updated_at":    now,
		}
		if err := GetDB(ctx, r.db).Model(&models.Appraiser{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
			return false, storageError("update appraiser", err)
		}
		appraiser.ID = existing.ID
		appraiser.CreatedAt = existing.CreatedAt
		appraiser.UpdatedAt = now
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return false, storageError("lookup appraiser", err)
	}

	if appraiser.ID == uuid.Nil {
		appraiser.ID = utils.GenerateUUIDv7()
	}
	m := r.toModel(appraiser)
	m.CreatedAt = now
	m.UpdatedAt = now
	// a concurrent enrollment of the same appraiser_id turns into an overwrite
	err = GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "appraiser_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "email", "phone", "face_encoding", "image_data", "bank_id", "branch_id", "status", "updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		return false, storageError("create appraiser", err)
	}
	appraiser.CreatedAt = m.CreatedAt
	appraiser.UpdatedAt = m.UpdatedAt
	return true, nil
}

func (r *AppraiserRepository) FindByName(ctx context.Context, name string) ([]*entities.Appraiser, error) {
	var ms []models.Appraiser
	if err := GetDB(ctx, r.db).
		Where("LOWER(name) = LOWER(?) AND status = ?", strings.TrimSpace(name), string(entities.IdentityStatusRegistered)).
		Order("created_at ASC, id ASC").
		Find(&ms).Error; err != nil {
		return nil, storageError("find appraisers by name", err)
	}

	items := make([]*entities.Appraiser, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *AppraiserRepository) ListGallery(ctx context.Context) ([]*entities.GalleryEntry, error) {
	var ms []models.Appraiser
	if err := r.galleryQuery(ctx).
		Select(galleryColumns).
		Order("created_at ASC, id ASC").
		Find(&ms).Error; err != nil {
		return nil, storageError("load gallery", err)
	}

	items := make([]*entities.GalleryEntry, 0, len(ms))
	for i := range ms {
		items = append(items, &entities.GalleryEntry{
			ID:           ms[i].ID,
			AppraiserID:  ms[i].AppraiserID,
			Name:         ms[i].Name,
			FaceEncoding: ms[i].FaceEncoding.String,
			BankID:       ms[i].BankID,
			BranchID:     ms[i].BranchID,
			CreatedAt:    ms[i].CreatedAt,
		})
	}
	return items, nil
}

func (r *AppraiserRepository) CountGallery(ctx context.Context) (int64, error) {
	var count int64
	if err := r.galleryQuery(ctx).Count(&count).Error; err != nil {
		return 0, storageError("count gallery", err)
	}
	return count, nil
}

func (r *AppraiserRepository) List(ctx context.Context, limit, offset int) ([]*entities.Appraiser, int64, error) {
	query := GetDB(ctx, r.db).Model(&models.Appraiser{}).Where("status = ?", string(entities.IdentityStatusRegistered))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, storageError("count appraisers", err)
	}

	var ms []models.Appraiser
	if err := query.Order("created_at ASC, id ASC").Limit(limit).Offset(offset).Find(&ms).Error; err != nil {
		return nil, 0, storageError("list appraisers", err)
	}

	items := make([]*entities.Appraiser, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, total, nil
}

func (r *AppraiserRepository) ClearFaceEncoding(ctx context.Context, appraiserID string) error {
	result := GetDB(ctx, r.db).
		Model(&models.Appraiser{}).
		Where("appraiser_id = ?", appraiserID).
		Updates(map[string]interface{}{
			"face_encoding": gorm.Expr("NULL"),
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return storageError("clear face encoding", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *AppraiserRepository) ListUnmappedLegacy(ctx context.Context, limit int) ([]*entities.Appraiser, error) {
	mapped := GetDB(ctx, r.db).
		Table(models.AuthorizationMapping{}.TableName() + " AS m").
		Select("1").
		Where("m.appraiser_id = appraisers.appraiser_id AND m.bank_id = appraisers.bank_id AND m.branch_id = appraisers.branch_id")

	query := GetDB(ctx, r.db).
		Model(&models.Appraiser{}).
		Where("appraisers.bank_id IS NOT NULL AND appraisers.branch_id IS NOT NULL").
		Where("appraisers.status = ?", string(entities.IdentityStatusRegistered)).
		Where("NOT EXISTS (?)", mapped).
		Order("appraisers.created_at ASC, appraisers.id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var ms []models.Appraiser
	if err := query.Find(&ms).Error; err != nil {
		return nil, storageError("list unmapped legacy appraisers", err)
	}

	items := make([]*entities.Appraiser, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *AppraiserRepository) galleryQuery(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).
		Model(&models.Appraiser{}).
		Where("face_encoding IS NOT NULL AND face_encoding <> '' AND status = ?", string(entities.IdentityStatusRegistered))
}

func (r *AppraiserRepository) toEntity(m *models.Appraiser) *entities.Appraiser {
	return &entities.Appraiser{
		ID:           m.ID,
		AppraiserID:  m.AppraiserID,
		Name:         m.Name,
		Email:        m.Email,
		Phone:        m.Phone,
		FaceEncoding: m.FaceEncoding,
		ImageData:    m.ImageData,
		BankID:       m.BankID,
		BranchID:     m.BranchID,
		Status:       entities.IdentityStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (r *AppraiserRepository) toModel(e *entities.Appraiser) *models.Appraiser {
	return &models.Appraiser{
		ID:           e.ID,
		AppraiserID:  e.AppraiserID,
		Name:         e.Name,
		Email:        e.Email,
		Phone:        e.Phone,
		FaceEncoding: e.FaceEncoding,
		ImageData:    e.ImageData,
		BankID:       e.BankID,
		BranchID:     e.BranchID,
		Status:       string(e.Status),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
