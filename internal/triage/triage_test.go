package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edrostering/edflow/internal/entity"
)

// TestCTASBoundaryCodes pins the three codes called out by the boundary
// scenario: CTAS codes 3, 4, 5 map to RED, BLUE, ORANGE respectively.
func TestCTASBoundaryCodes(t *testing.T) {
	cases := []struct {
		code     int
		expected entity.TriageLevel
	}{
		{3, entity.TriageRed},
		{4, entity.TriageBlue},
		{5, entity.TriageOrange},
	}
	for _, c := range cases {
		level, err := Classify(entity.ClassifierCTAS, c.code)
		require.NoError(t, err)
		assert.Equal(t, c.expected, level, "CTAS code %d", c.code)
	}
}

// TestAllClassifiersCoverFullRange checks every variant returns a valid
// level for every code in 1..17, with no panics or unknown-diagnosis errors.
func TestAllClassifiersCoverFullRange(t *testing.T) {
	variants := []entity.ClassifierVariant{entity.ClassifierCTAS, entity.ClassifierESI, entity.ClassifierMTS}
	for _, v := range variants {
		for code := 1; code <= 17; code++ {
			level, err := Classify(v, code)
			require.NoErrorf(t, err, "variant %s code %d", v, code)
			assert.Containsf(t, entity.AllTriageLevels, level, "variant %s code %d produced invalid level", v, code)
		}
	}
}

func TestClassifyRejectsOutOfRangeCode(t *testing.T) {
	_, err := Classify(entity.ClassifierCTAS, 0)
	assert.ErrorIs(t, err, entity.ErrUnknownDiagnosis)

	_, err = Classify(entity.ClassifierCTAS, 18)
	assert.ErrorIs(t, err, entity.ErrUnknownDiagnosis)
}

func TestClassifyRejectsUnknownVariant(t *testing.T) {
	_, err := Classify(entity.ClassifierVariant("ATS"), 5)
	assert.Error(t, err)
}

func TestClassifyIsDeterministic(t *testing.T) {
	for code := 1; code <= 17; code++ {
		a, err := Classify(entity.ClassifierESI, code)
		require.NoError(t, err)
		b, err := Classify(entity.ClassifierESI, code)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestMustClassifyPanicsOnInvalidCode(t *testing.T) {
	assert.Panics(t, func() {
		MustClassify(entity.ClassifierCTAS, 99)
	})
}
