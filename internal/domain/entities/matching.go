package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

const NoMatchMessage = "No matching appraiser found"

// ThresholdConfig is a versioned snapshot of the similarity threshold.
// Identify reads it once per call.
type ThresholdConfig struct {
	Value     float64   `json:"value"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ThresholdUpdate reports a threshold change
type ThresholdUpdate struct {
	Success      bool    `json:"success"`
	Message      string  `json:"message"`
	OldThreshold float64 `json:"oldThreshold"`
	NewThreshold float64 `json:"newThreshold"`
	Version      int64   `json:"version"`
}

// GalleryEntry is one matchable identity with its still-encoded embedding.
// Decoding happens per entry so one corrupt row cannot fail the whole scan.
type GalleryEntry struct {
	ID           uuid.UUID
	AppraiserID  string
	Name         string
	FaceEncoding string
	BankID       null.Int64
	BranchID     null.Int64
	CreatedAt    time.Time
}

// MatchedAppraiser is the best gallery candidate above threshold
type MatchedAppraiser struct {
	DBID        uuid.UUID  `json:"dbId"`
	AppraiserID string     `json:"appraiserId"`
	Name        string     `json:"name"`
	Similarity  float64    `json:"similarity"`
	BankID      null.Int64 `json:"bankId,omitempty"`
	BranchID    null.Int64 `json:"branchId,omitempty"`
}

// MatchResult is the outcome of a 1:N identification. Recognized=false is a valid negative result.
type MatchResult struct {
	Recognized       bool              `json:"recognized"`
	Message          string            `json:"message,omitempty"`
	Appraiser        *MatchedAppraiser `json:"appraiser,omitempty"`
	BBox             BoundingBox       `json:"bbox"`
	Threshold        float64           `json:"threshold"`
	ThresholdVersion int64             `json:"thresholdVersion"`
	GallerySize      int               `json:"gallerySize"`
	Skipped          int               `json:"skipped"`
}
