package entities

import (
	"time"

	"github.com/google/uuid"
)

// AuthorizationMapping grants one appraiser access to one (bank, branch) pair.
// (AppraiserID, BankID, BranchID) is unique; deletion only flips IsActive.
type AuthorizationMapping struct {
	ID          uuid.UUID `json:"id"`
	AppraiserID string    `json:"appraiserId"`
	BankID      int64     `json:"bankId"`
	BranchID    int64     `json:"branchId"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AuthorizationStatus is the outcome kind of a name based authorization check
type AuthorizationStatus string

const (
	AuthorizationStatusAuthorized          AuthorizationStatus = "authorized"
	AuthorizationStatusNotRegistered       AuthorizationStatus = "not_registered"
	AuthorizationStatusRegisteredElsewhere AuthorizationStatus = "registered_elsewhere"
)

// AuthorizationSource tells which path granted access
type AuthorizationSource string

const (
	AuthorizationSourceMapping AuthorizationSource = "mapping"
	AuthorizationSourceLegacy  AuthorizationSource = "legacy"
)

// VerifyInput asks whether an appraiser called Name may operate at (BankID, BranchID)
type VerifyInput struct {
	Name     string `json:"name" form:"name" binding:"required"`
	BankID   int64  `json:"bank_id" form:"bank_id" binding:"required"`
	BranchID int64  `json:"branch_id" form:"branch_id" binding:"required"`
	// MigrateLegacy writes the missing mapping row when access came from the legacy location
	MigrateLegacy bool `json:"-" form:"-"`
}

// AuthorizedAppraiser is the identity that satisfied an authorization check
type AuthorizedAppraiser struct {
	ID          uuid.UUID `json:"id"`
	AppraiserID string    `json:"appraiserId"`
	Name        string    `json:"name"`
	BankID      int64     `json:"bankId"`
	BranchID    int64     `json:"branchId"`
	BankName    string    `json:"bankName,omitempty"`
	BranchName  string    `json:"branchName,omitempty"`
}

// AuthorizationResult answers VerifyInput.
// NotRegistered and RegisteredElsewhere are distinct outcomes, never errors.
type AuthorizationResult struct {
	Status       AuthorizationStatus  `json:"status"`
	Exists       bool                 `json:"exists"`
	Authorized   bool                 `json:"authorized"`
	Message      string               `json:"message"`
	Appraiser    *AuthorizedAppraiser `json:"appraiser,omitempty"`
	Source       AuthorizationSource  `json:"source,omitempty"`
	Migrated     bool                 `json:"migrated"`
	RegisteredAt []TenantRef          `json:"registeredAt,omitempty"`
}

// MigrationResult reports an explicit legacy authorization migration
type MigrationResult struct {
	AppraiserID string    `json:"appraiserId"`
	Migrated    bool      `json:"migrated"`
	Tenant      TenantRef `json:"tenant"`
	Message     string    `json:"message"`
}
