package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"appraiser-auth.backend/internal/domain/entities"
	domainerrors "appraiser-auth.backend/internal/domain/errors"
	"appraiser-auth.backend/internal/infrastructure/models"
)

type TenantRepository struct {
	db *gorm.DB
}

func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

func (r *TenantRepository) GetBankByID(ctx context.Context, id int64) (*entities.Bank, error) {
	return r.firstBank(ctx, "id = ?", id)
}

func (r *TenantRepository) GetBankByCode(ctx context.Context, code string) (*entities.Bank, error) {
	return r.firstBank(ctx, "bank_code = ?", code)
}

// GetOrCreateBank inserts with ON CONFLICT DO NOTHING and re-reads, so concurrent first use converges on one row
func (r *TenantRepository) GetOrCreateBank(ctx context.Context, code, name, shortName string) (*entities.Bank, bool, error) {
	bank, err := r.GetBankByCode(ctx, code)
	if err == nil {
		return bank, false, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, false, err
	}

	now := time.Now()
	m := &models.Bank{Code: code, Name: name, IsActive: true, CreatedAt: now, UpdatedAt: now}
	if shortName != "" {
		m.ShortName = null.StringFrom(shortName)
	}
	result := GetDB(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(m)
	if result.Error != nil {
		return nil, false, storageError("create bank", result.Error)
	}

	bank, err = r.GetBankByCode(ctx, code)
	if err != nil {
		return nil, false, err
	}
	return bank, result.RowsAffected > 0, nil
}

func (r *TenantRepository) GetBranchByID(ctx context.Context, id int64) (*entities.Branch, error) {
	return r.firstBranch(ctx, "id = ?", id)
}

func (r *TenantRepository) GetBranchByCode(ctx context.Context, bankID int64, code string) (*entities.Branch, error) {
	return r.firstBranch(ctx, "bank_id = ? AND branch_code = ?", bankID, code)
}

func (r *TenantRepository) GetOrCreateBranch(ctx context.Context, bankID int64, code, name string) (*entities.Branch, bool, error) {
	branch, err := r.GetBranchByCode(ctx, bankID, code)
	if err == nil {
		return branch, false, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, false, err
	}

	now := time.Now()
	m := &models.Branch{BankID: bankID, Code: code, Name: name, IsActive: true, CreatedAt: now, UpdatedAt: now}
	result := GetDB(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(m)
	if result.Error != nil {
		return nil, false, storageError("create branch", result.Error)
	}

	branch, err = r.GetBranchByCode(ctx, bankID, code)
	if err != nil {
		return nil, false, err
	}
	return branch, result.RowsAffected > 0, nil
}

func (r *TenantRepository) firstBank(ctx context.Context, query string, args ...interface{}) (*entities.Bank, error) {
	var m models.Bank
	if err := GetDB(ctx, r.db).Where(query, args...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, storageError("get bank", err)
	}
	return &entities.Bank{
		ID:        m.ID,
		Code:      m.Code,
		Name:      m.Name,
		ShortName: m.ShortName,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

func (r *TenantRepository) firstBranch(ctx context.Context, query string, args ...interface{}) (*entities.Branch, error) {
	var m models.Branch
	if err := GetDB(ctx, r.db).Where(query, args...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, storageError("get branch", err)
	}
	return &entities.Branch{
		ID:        m.ID,
		BankID:    m.BankID,
		Code:      m.Code,
		Name:      m.Name,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}
