package entities

import (
	"github.com/google/uuid"
)

// EnrollInput carries one appraiser enrollment.
// BankID/BranchID win over the human readable Bank/Branch names when both are given.
type EnrollInput struct {
	Name        string
	AppraiserID string
	// Image is the decoded capture sent to the extractor; ImageRef is what gets stored as profile image
	Image    []byte
	ImageRef string
	Bank     string
	Branch   string
	BankID   int64
	BranchID int64
	Email    string
	Phone    string
}

// EnrollmentResult is returned on successful enrollment
type EnrollmentResult struct {
	Success        bool        `json:"success"`
	Message        string      `json:"message"`
	AppraiserID    string      `json:"appraiserId"`
	DBID           uuid.UUID   `json:"dbId"`
	BBox           BoundingBox `json:"bbox"`
	BankID         *int64      `json:"bankId,omitempty"`
	BranchID       *int64      `json:"branchId,omitempty"`
	Updated        bool        `json:"updated"`
	MappingCreated bool        `json:"mappingCreated"`
}
