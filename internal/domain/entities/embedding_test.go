package entities

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "appraiser-auth.backend/internal/domain/errors"
)

func TestEmbedding_EncodeDecode(t *testing.T) {
	e := Embedding{0.25, -1.5, 3}
	raw, err := e.Encode()
	require.NoError(t, err)
	assert.Equal(t, "[0.25,-1.5,3]", raw)

	got, err := DecodeEmbedding(raw)
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestDecodeEmbedding_LegacyCommaSeparated(t *testing.T) {
	got, err := DecodeEmbedding(" 0.1, 0.2 ,-0.3")
	require.NoError(t, err)
	assert.Equal(t, Embedding{0.1, 0.2, -0.3}, got)
}

func TestDecodeEmbedding_Corrupt(t *testing.T) {
	for _, raw := range []string{"", "   ", "[1,2", "1.0,abc", "[]", "1.5x,2", `["a"]`} {
		_, err := DecodeEmbedding(raw)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidEmbedding, raw)
	}
}

func TestEmbedding_ValidateRejectsNonFinite(t *testing.T) {
	assert.ErrorIs(t, Embedding{1, math.NaN()}.Validate(), domainerrors.ErrInvalidEmbedding)
	assert.ErrorIs(t, Embedding{math.Inf(1)}.Validate(), domainerrors.ErrInvalidEmbedding)
	_, err := Embedding{}.Encode()
	assert.ErrorIs(t, err, domainerrors.ErrInvalidEmbedding)
}

func TestEmbedding_Norm(t *testing.T) {
	assert.InDelta(t, 5.0, Embedding{3, 4}.Norm(), 1e-12)
	assert.Equal(t, 0.0, Embedding{0, 0}.Norm())
}
