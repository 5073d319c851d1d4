package usecases

import (
	"errors"
	"fmt"
	"math"

	"appraiser-auth.backend/internal/domain/entities"
)

var (
	errDimensionMismatch = errors.New("embedding dimension mismatch")
	errZeroNorm          = errors.New("embedding has zero norm")
)

// CosineSimilarity returns a·b / (|a||b|), in [-1, 1]
func CosineSimilarity(a, b entities.Embedding) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", errDimensionMismatch, len(a), len(b))
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0, errZeroNorm
	}
	sim := dot / (math.Sqrt(na) * math.Sqrt(nb))
	// rounding can push identical vectors slightly past 1
	return math.Max(-1, math.Min(1, sim)), nil
}

// SkippedEntry is a gallery row that could not be compared
type SkippedEntry struct {
	Entry *entities.GalleryEntry
	Err   error
}

// Match is the best candidate found by BestMatch
type Match struct {
	Entry      *entities.GalleryEntry
	Similarity float64
}

// BestMatch scans the gallery in order. A candidate replaces the current best only when its
// similarity is strictly greater than both the best so far and the threshold, so on ties the
// earliest entry wins and a similarity equal to the threshold never matches.
func BestMatch(probe entities.Embedding, gallery []*entities.GalleryEntry, threshold float64) (*Match, []SkippedEntry) {
	var (
		best    *Match
		maxSim  = math.Inf(-1)
		skipped []SkippedEntry
	)

	for _, entry := range gallery {
		candidate, err := entities.DecodeEmbedding(entry.FaceEncoding)
		if err != nil {
			skipped = append(skipped, SkippedEntry{Entry: entry, Err: err})
			continue
		}
		sim, err := CosineSimilarity(probe, candidate)
		if err != nil {
			skipped = append(skipped, SkippedEntry{Entry: entry, Err: err})
			continue
		}
		if sim > maxSim && sim > threshold {
			maxSim = sim
			best = &Match{Entry: entry, Similarity: sim}
		}
	}
	return best, skipped
}
