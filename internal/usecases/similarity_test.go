package usecases

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appraiser-auth.backend/internal/domain/entities"
)

func TestCosineSimilarity(t *testing.T) {
	sim, err := CosineSimilarity(entities.Embedding{1, 2, 3}, entities.Embedding{1, 2, 3})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 1e-9)

	sim, err = CosineSimilarity(entities.Embedding{1, 0}, entities.Embedding{0, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, sim, 1e-9)

	sim, err = CosineSimilarity(entities.Embedding{1, 0}, entities.Embedding{-1, 0})
	require.NoError(t, err)
	assert.InDelta(t, -1.0, sim, 1e-9)

	_, err = CosineSimilarity(entities.Embedding{1, 0}, entities.Embedding{1, 0, 0})
	assert.ErrorIs(t, err, errDimensionMismatch)

	_, err = CosineSimilarity(entities.Embedding{0, 0}, entities.Embedding{1, 0})
	assert.ErrorIs(t, err, errZeroNorm)
}

func galleryEntry(appraiserID, encoding string) *entities.GalleryEntry {
	return &entities.GalleryEntry{ID: uuid.New(), AppraiserID: appraiserID, Name: appraiserID, FaceEncoding: encoding}
}

// vecAt returns a unit vector whose cosine against (1, 0) is sim
func vecAt(sim float64) string {
	y := math.Sqrt(1 - sim*sim)
	return "[" + formatFloat(sim) + "," + formatFloat(y) + "]"
}

func formatFloat(f float64) string {
	b, _ := entities.Embedding{f}.Encode()
	return b[1 : len(b)-1]
}

func TestBestMatch_StrictThresholdAndTieBreak(t *testing.T) {
	probe := entities.Embedding{1, 0}

	t.Run("picks highest", func(t *testing.T) {
		gallery := []*entities.GalleryEntry{
			galleryEntry("A", vecAt(0.6)),
			galleryEntry("B", vecAt(0.9)),
			galleryEntry("C", vecAt(0.7)),
		}
		best, skipped := BestMatch(probe, gallery, 0.5)
		require.NotNil(t, best)
		assert.Equal(t, "B", best.Entry.AppraiserID)
		assert.Empty(t, skipped)
	})

	t.Run("equal to threshold is no match", func(t *testing.T) {
		gallery := []*entities.GalleryEntry{galleryEntry("A", "[1,1]")}
		sim, err := CosineSimilarity(probe, entities.Embedding{1, 1})
		require.NoError(t, err)
		best, _ := BestMatch(probe, gallery, sim)
		assert.Nil(t, best)
	})

	t.Run("first of equals wins", func(t *testing.T) {
		gallery := []*entities.GalleryEntry{
			galleryEntry("FIRST", "[1,1]"),
			galleryEntry("SECOND", "[2,2]"),
		}
		best, _ := BestMatch(probe, gallery, 0.5)
		require.NotNil(t, best)
		assert.Equal(t, "FIRST", best.Entry.AppraiserID)
	})

	t.Run("empty gallery", func(t *testing.T) {
		best, skipped := BestMatch(probe, nil, 0.5)
		assert.Nil(t, best)
		assert.Empty(t, skipped)
	})

	t.Run("threshold one never matches", func(t *testing.T) {
		best, _ := BestMatch(probe, []*entities.GalleryEntry{galleryEntry("A", "[1,0]")}, 1.0)
		assert.Nil(t, best)
	})
}

func TestBestMatch_SkipsUncomparableRows(t *testing.T) {
	probe := entities.Embedding{1, 0}
	gallery := []*entities.GalleryEntry{
		galleryEntry("CORRUPT", "[1,"),
		galleryEntry("SHORT", "[1]"),
		galleryEntry("ZERO", "[0,0]"),
		galleryEntry("LEGACY", "0.9, 0.1"),
	}
	best, skipped := BestMatch(probe, gallery, 0.5)
	require.NotNil(t, best)
	assert.Equal(t, "LEGACY", best.Entry.AppraiserID)
	require.Len(t, skipped, 3)
	assert.Equal(t, "CORRUPT", skipped[0].Entry.AppraiserID)
	assert.ErrorIs(t, skipped[1].Err, errDimensionMismatch)
	assert.ErrorIs(t, skipped[2].Err, errZeroNorm)
}

func TestNormalizeTenantCode(t *testing.T) {
	cases := map[string]string{
		"State Bank":                   "STATE_BANK",
		"  state bank of india ":       "STATE_BANK_OF_INDIA",
		"STATE  BANK":                  "STATE__BANK",
		"":                             "",
		"   ":                          "",
		"Punjab National Bank Limited": "PUNJAB_NATIONAL_BANK",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeTenantCode(in, 20), "input %q", in)
	}
	assert.Equal(t, "ÉCOLE_BANQUE", NormalizeTenantCode("école banque", 0))
	assert.Equal(t, "ÉCO", NormalizeTenantCode("école", 3))
}

func TestBankShortName(t *testing.T) {
	assert.Equal(t, "State Bank", BankShortName("  State Bank "))
	assert.Equal(t, "Punjab National Bank", BankShortName("Punjab National Bank Limited"))
	assert.Equal(t, "", BankShortName(""))
}

func TestValidateThreshold(t *testing.T) {
	for _, ok := range []float64{0, 0.5, 1} {
		assert.NoError(t, ValidateThreshold(ok))
	}
	for _, bad := range []float64{-0.01, 1.01, math.NaN(), math.Inf(1)} {
		assert.Error(t, ValidateThreshold(bad))
	}
}
