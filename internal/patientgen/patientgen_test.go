package patientgen

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edrostering/edflow/internal/entity"
)

func testAvgMins() AvgServiceMinutes {
	return AvgServiceMinutes{
		entity.TriageRed:    180,
		entity.TriageOrange: 120,
		entity.TriageYellow: 90,
		entity.TriageGreen:  45,
		entity.TriageBlue:   15,
	}
}

func TestNextProducesValidPatient(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	gen := NewGenerator(entity.ClassifierCTAS, testAvgMins(), rng)

	p, err := gen.Next(5 * time.Minute)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, p.Diagnosis, 1)
	assert.LessOrEqual(t, p.Diagnosis, 17)
	assert.GreaterOrEqual(t, p.Age, minAge)
	assert.LessOrEqual(t, p.Age, maxAge)
	assert.Contains(t, entity.AllTriageLevels, p.Triage)
	assert.GreaterOrEqual(t, p.ServiceTime, minServiceTime)
	assert.Equal(t, 5*time.Minute, p.ArrivalTime)
}

func TestNextAssignsIncrementingIDs(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	gen := NewGenerator(entity.ClassifierESI, testAvgMins(), rng)

	p1, err := gen.Next(0)
	require.NoError(t, err)
	p2, err := gen.Next(time.Minute)
	require.NoError(t, err)

	assert.Equal(t, p1.ID+1, p2.ID)
}

func TestServiceTimeNeverBelowFloor(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	avg := AvgServiceMinutes{entity.TriageBlue: 0.01} // tiny mean, likely to dip negative
	gen := NewGenerator(entity.ClassifierMTS, avg, rng)

	for i := 0; i < 500; i++ {
		d := gen.sampleServiceTime(entity.TriageBlue)
		assert.GreaterOrEqual(t, d, minServiceTime)
	}
}

func TestSampleDiagnosisCodeAlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	gen := NewGenerator(entity.ClassifierCTAS, testAvgMins(), rng)

	for i := 0; i < 10000; i++ {
		code := gen.sampleDiagnosisCode()
		assert.GreaterOrEqual(t, code, 1)
		assert.LessOrEqual(t, code, 17)
	}
}

func TestDeterministicGivenSameSeed(t *testing.T) {
	rngA := rand.New(rand.NewSource(123))
	rngB := rand.New(rand.NewSource(123))
	genA := NewGenerator(entity.ClassifierCTAS, testAvgMins(), rngA)
	genB := NewGenerator(entity.ClassifierCTAS, testAvgMins(), rngB)

	pA, err := genA.Next(0)
	require.NoError(t, err)
	pB, err := genB.Next(0)
	require.NoError(t, err)

	assert.Equal(t, pA.Diagnosis, pB.Diagnosis)
	assert.Equal(t, pA.Age, pB.Age)
	assert.Equal(t, pA.Triage, pB.Triage)
	assert.Equal(t, pA.ServiceTime, pB.ServiceTime)
}
