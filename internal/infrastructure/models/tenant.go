package models

import (
	"time"

	"github.com/volatiletech/null/v8"
)

type Bank struct {
	ID        int64       `gorm:"primaryKey;autoIncrement"`
	Code      string      `gorm:"column:bank_code;type:varchar(20);uniqueIndex;not null"`
	Name      string      `gorm:"column:bank_name;type:varchar(255);not null"`
	ShortName null.String `gorm:"column:bank_short_name;type:varchar(50)"`
	IsActive  bool        `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Bank) TableName() string {
	return "banks"
}

type Branch struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	BankID    int64  `gorm:"not null;uniqueIndex:idx_bank_branch_code"`
	Code      string `gorm:"column:branch_code;type:varchar(20);not null;uniqueIndex:idx_bank_branch_code"`
	Name      string `gorm:"column:branch_name;type:varchar(255);not null"`
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Branch) TableName() string {
	return "branches"
}

// All lists every model managed by AutoMigrate
func All() []interface{} {
	return []interface{}{&Bank{}, &Branch{}, &Appraiser{}, &AuthorizationMapping{}}
}
