package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// IdentityStatus discriminates enrolled identities from other rows; it is not a lifecycle state
type IdentityStatus string

const (
	IdentityStatusRegistered IdentityStatus = "registered"
)

// Appraiser is one enrolled field appraiser identity.
// Name is a display string and is not unique across tenants.
type Appraiser struct {
	ID          uuid.UUID   `json:"id"`
	AppraiserID string      `json:"appraiserId"`
	Name        string      `json:"name"`
	Email       null.String `json:"email,omitempty"`
	Phone       null.String `json:"phone,omitempty"`
	// FaceEncoding is the stored embedding, null until enrollment completes
	FaceEncoding null.String    `json:"-"`
	ImageData    string         `json:"-"`
	BankID       null.Int64     `json:"bankId,omitempty"`
	BranchID     null.Int64     `json:"branchId,omitempty"`
	Status       IdentityStatus `json:"status"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// Column limits of the appraisers table
const (
	MaxAppraiserIDLength = 64
	MaxNameLength        = 255
)

// NormalizeAppraiserID trims and uppercases the external identifier
func NormalizeAppraiserID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// HasFaceEncoding reports whether the appraiser carries an embedding
func (a *Appraiser) HasFaceEncoding() bool {
	return a.FaceEncoding.Valid && strings.TrimSpace(a.FaceEncoding.String) != ""
}

// InGallery reports whether the appraiser participates in 1:N matching
func (a *Appraiser) InGallery() bool {
	return a.HasFaceEncoding() && a.Status == IdentityStatusRegistered
}

// PrimaryTenant returns the tenant active at enrollment time (the legacy location)
func (a *Appraiser) PrimaryTenant() (TenantRef, bool) {
	if !a.BankID.Valid || !a.BranchID.Valid {
		return TenantRef{}, false
	}
	return TenantRef{BankID: a.BankID.Int64, BranchID: a.BranchID.Int64}, true
}

// HasPrimaryTenant reports whether the legacy location equals the given bank/branch
func (a *Appraiser) HasPrimaryTenant(bankID, branchID int64) bool {
	ref, ok := a.PrimaryTenant()
	return ok && ref.BankID == bankID && ref.BranchID == branchID
}

// RegisteredAppraiser is the listing view of an enrolled appraiser
type RegisteredAppraiser struct {
	ID              uuid.UUID  `json:"id"`
	AppraiserID     string     `json:"appraiserId"`
	Name            string     `json:"name"`
	BankID          null.Int64 `json:"bankId,omitempty"`
	BranchID        null.Int64 `json:"branchId,omitempty"`
	HasFaceEncoding bool       `json:"hasFaceEncoding"`
	CreatedAt       time.Time  `json:"createdAt"`
}
