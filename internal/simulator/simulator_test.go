package simulator

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edrostering/edflow/internal/arrival"
	"github.com/edrostering/edflow/internal/edstate"
	"github.com/edrostering/edflow/internal/entity"
	"github.com/edrostering/edflow/internal/patientgen"
)

func testRequirements() StaffRequirements {
	req := map[entity.TriageLevel]float64{}
	for _, l := range entity.AllTriageLevels {
		req[l] = 1
	}
	return StaffRequirements{
		Nurses:     req,
		Physicians: req,
		Residents:  req,
	}
}

func newTestSimulator(t *testing.T, rooms int, waitCap int, seed int64) *Simulator {
	t.Helper()
	fn, err := arrival.Compile("flat", "4")
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(seed))
	avg := patientgen.AvgServiceMinutes{
		entity.TriageRed:    180,
		entity.TriageOrange: 120,
		entity.TriageYellow: 90,
		entity.TriageGreen:  45,
		entity.TriageBlue:   15,
	}
	gen := patientgen.NewGenerator(entity.ClassifierCTAS, avg, rng)
	state := edstate.New(waitCap, rooms, edstate.StaffCounts{Nurses: 10, Physicians: 10, Residents: 10})

	return New(state, gen, fn, 10*time.Minute, testRequirements(), rng)
}

func TestRunProcessesArrivalsWithinCycle(t *testing.T) {
	sim := newTestSimulator(t, 5, 50, 1)

	result, err := sim.Run(0, 24*time.Hour)
	require.NoError(t, err)

	assert.Greater(t, result.TotalArrivals, 0)
	assert.Equal(t, result.TotalArrivals, result.TotalERAdmissions+result.PatientsRejected)
	assert.LessOrEqual(t, result.PatientsTreated, result.TotalERAdmissions)
	assert.Len(t, result.HourlyRows, 24)

	var triageTotal int
	for _, n := range result.TriageCounts {
		triageTotal += n
	}
	assert.Equal(t, result.TotalArrivals, triageTotal)
}

func TestRunIsDeterministicGivenSameSeed(t *testing.T) {
	simA := newTestSimulator(t, 5, 50, 7)
	simB := newTestSimulator(t, 5, 50, 7)

	resA, err := simA.Run(0, 24*time.Hour)
	require.NoError(t, err)
	resB, err := simB.Run(0, 24*time.Hour)
	require.NoError(t, err)

	assert.Equal(t, resA.TotalArrivals, resB.TotalArrivals)
	assert.Equal(t, resA.PatientsTreated, resB.PatientsTreated)
	assert.Equal(t, resA.PatientsRejected, resB.PatientsRejected)
	assert.Equal(t, resA.TotalWaitTime, resB.TotalWaitTime)
}

func TestRunRejectsWhenWaitingRoomFull(t *testing.T) {
	// Zero waiting capacity and zero rooms: every arrival is rejected outright.
	sim := newTestSimulator(t, 0, 0, 3)

	result, err := sim.Run(0, 6*time.Hour)
	require.NoError(t, err)

	assert.Greater(t, result.TotalArrivals, 0)
	assert.Equal(t, result.TotalArrivals, result.PatientsRejected)
	assert.Equal(t, 0, result.TotalERAdmissions)
}

func TestHourlyRowsCumulativeArrivalsMatchTotal(t *testing.T) {
	sim := newTestSimulator(t, 5, 50, 11)

	result, err := sim.Run(0, 12*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, result.HourlyRows)

	last := result.HourlyRows[len(result.HourlyRows)-1]
	assert.Equal(t, result.TotalArrivals, last.TotalArrivalsCum)
}
