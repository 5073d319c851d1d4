package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type Appraiser struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey"`
	AppraiserID  string      `gorm:"column:appraiser_id;type:varchar(64);uniqueIndex;not null"`
	Name         string      `gorm:"type:varchar(255);not null;index"`
	Email        null.String `gorm:"type:varchar(255)"`
	Phone        null.String `gorm:"type:varchar(32)"`
	FaceEncoding null.String `gorm:"type:text"`
	ImageData    string      `gorm:"type:text"`
	BankID       null.Int64  `gorm:"index"`
	BranchID     null.Int64  `gorm:"index"`
	Status       string      `gorm:"type:varchar(32);not null;default:registered;index"`
	CreatedAt    time.Time   `gorm:"index"`
	UpdatedAt    time.Time
}

func (Appraiser) TableName() string {
	return "appraisers"
}
