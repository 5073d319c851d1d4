package models

import (
	"time"

	"github.com/google/uuid"
)

type AuthorizationMapping struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	AppraiserID string    `gorm:"column:appraiser_id;type:varchar(64);not null;uniqueIndex:idx_appraiser_bank_branch"`
	BankID      int64     `gorm:"not null;uniqueIndex:idx_appraiser_bank_branch;index"`
	BranchID    int64     `gorm:"not null;uniqueIndex:idx_appraiser_bank_branch"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (AuthorizationMapping) TableName() string {
	return "appraiser_bank_branch_map"
}
