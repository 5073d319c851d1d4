package entities

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	domainerrors "appraiser-auth.backend/internal/domain/errors"
)

// Embedding is the fixed-length face feature vector produced by the extractor
type Embedding []float64

// Encode serializes the embedding for storage as a JSON array
func (e Embedding) Encode() (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	b, err := json.Marshal([]float64(e))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Validate rejects empty vectors and non-finite components
func (e Embedding) Validate() error {
	if len(e) == 0 {
		return fmt.Errorf("%w: empty vector", domainerrors.ErrInvalidEmbedding)
	}
	for i, v := range e {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: component %d is not finite", domainerrors.ErrInvalidEmbedding, i)
		}
	}
	return nil
}

// Norm returns the euclidean length
func (e Embedding) Norm() float64 {
	var sum float64
	for _, v := range e {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// DecodeEmbedding parses a stored embedding.
// Legacy rows written as comma separated floats are accepted too.
func DecodeEmbedding(raw string) (Embedding, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty value", domainerrors.ErrInvalidEmbedding)
	}

	var out Embedding
	if strings.HasPrefix(raw, "[") {
		var values []float64
		if err := json.Unmarshal([]byte(raw), &values); err != nil {
			return nil, fmt.Errorf("%w: %v", domainerrors.ErrInvalidEmbedding, err)
		}
		out = Embedding(values)
	} else {
		parts := strings.Split(raw, ",")
		out = make(Embedding, 0, len(parts))
		for _, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", domainerrors.ErrInvalidEmbedding, err)
			}
			out = append(out, v)
		}
	}

	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}
