package arrival

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edrostering/edflow/internal/entity"
)

func TestCompileAndEvaluateConstant(t *testing.T) {
	fn, err := Compile("flat", "5")
	require.NoError(t, err)

	rate, err := fn.RateAt(0)
	require.NoError(t, err)
	assert.Equal(t, 5.0, rate)

	rate, err = fn.RateAt(23)
	require.NoError(t, err)
	assert.Equal(t, 5.0, rate)
}

func TestCompileAndEvaluateTrig(t *testing.T) {
	fn, err := Compile("daily_peak", "6 + 3*cos((t-14)*pi/12)")
	require.NoError(t, err)

	at14, err := fn.RateAt(14)
	require.NoError(t, err)
	assert.InDelta(t, 9.0, at14, 1e-9)

	at2, err := fn.RateAt(2)
	require.NoError(t, err)
	assert.InDelta(t, 6+3*math.Cos((2-14)*math.Pi/12), at2, 1e-9)
}

func TestRateAtNonPositiveReturnsSentinel(t *testing.T) {
	fn, err := Compile("negative", "t - 100")
	require.NoError(t, err)

	_, err = fn.RateAt(5)
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrArrivalRateNonPositive)
}

func TestCompileRejectsMalformedExpression(t *testing.T) {
	_, err := Compile("broken", "3 + cos(t")
	assert.Error(t, err)
}

func TestRegistryFallsBackToDefault(t *testing.T) {
	reg, err := NewRegistry(map[string]string{
		"weekday": "8",
		"weekend": "4",
	}, "weekday")
	require.NoError(t, err)

	assert.Equal(t, "weekday", reg.Default().Name())
	assert.Equal(t, "weekend", reg.Get("weekend").Name())
	// unknown name falls back to default rather than returning nil
	assert.Equal(t, "weekday", reg.Get("nonexistent").Name())
}

func TestNewRegistryRejectsUnknownDefault(t *testing.T) {
	_, err := NewRegistry(map[string]string{"weekday": "8"}, "missing")
	assert.Error(t, err)
}

func TestNewRegistryPropagatesCompileError(t *testing.T) {
	_, err := NewRegistry(map[string]string{"broken": "3 + cos(t"}, "broken")
	assert.Error(t, err)
}
