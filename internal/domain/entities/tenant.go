package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Bank is a top-level tenant
type Bank struct {
	ID        int64       `json:"id"`
	Code      string      `json:"bankCode"`
	Name      string      `json:"bankName"`
	ShortName null.String `json:"bankShortName,omitempty"`
	IsActive  bool        `json:"isActive"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Branch is a sub-tenant under a bank
type Branch struct {
	ID        int64     `json:"id"`
	BankID    int64     `json:"bankId"`
	Code      string    `json:"branchCode"`
	Name      string    `json:"branchName"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TenantRef identifies a (bank, branch) pair, with display names when known
type TenantRef struct {
	BankID     int64  `json:"bankId"`
	BranchID   int64  `json:"branchId"`
	BankName   string `json:"bankName,omitempty"`
	BranchName string `json:"branchName,omitempty"`
}
