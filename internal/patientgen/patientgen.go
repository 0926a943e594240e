// Package patientgen samples one patient at a time: a diagnosis code from a
// fixed 17-entry distribution, a triage level (with a small chance of
// up-escalation), an age, and a service-time duration. All randomness flows
// through a single caller-supplied *rand.Rand so a full run is reproducible
// from one seed.
package patientgen

import (
	"fmt"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/edrostering/edflow/internal/entity"
	"github.com/edrostering/edflow/internal/triage"
)

// diagnosisProbabilities is the fixed 17-entry distribution over diagnosis
// codes 1..17, indexed 0..16. Entries sum to ~1.0; the rounding tail is
// absorbed by the final bucket, per the documented fallback.
var diagnosisProbabilities = [17]float64{
	0.012, 0.018, 0.025, 0.031, 0.040,
	0.052, 0.068, 0.081, 0.095, 0.102,
	0.098, 0.087, 0.071, 0.058, 0.043,
	0.030, 0.089,
}

const (
	minAge = 5
	maxAge = 99

	upEscalationProbability = 0.05

	minServiceTime = time.Minute
)

// AvgServiceMinutes gives the mean service time per triage level in
// minutes, read from configuration; the std-dev is always 0.25 of the mean.
type AvgServiceMinutes map[entity.TriageLevel]float64

// Generator produces patients for one classifier variant and one set of
// average service times.
type Generator struct {
	variant     entity.ClassifierVariant
	avgMins     AvgServiceMinutes
	rng         *rand.Rand
	nextID      entity.PatientID
	forcedLevel *entity.TriageLevel
}

// NewGenerator builds a generator. rng must not be shared concurrently with
// other callers — the simulator owns one RNG stream and calls C3 from a
// single goroutine, per spec.md §4.3/§4.5.
func NewGenerator(variant entity.ClassifierVariant, avgMins AvgServiceMinutes, rng *rand.Rand) *Generator {
	return &Generator{variant: variant, avgMins: avgMins, rng: rng}
}

// WithForcedLevel pins every patient this generator produces to level,
// replacing the diagnosis-driven level and skipping up-escalation (a
// diagnosis code is still sampled and classified) — used by the
// simulator playground's optional triageLevel request field to isolate one
// triage class's behavior.
func (g *Generator) WithForcedLevel(level entity.TriageLevel) *Generator {
	g.forcedLevel = &level
	return g
}

// sampleDiagnosisCode draws r uniformly in [0,1) and returns the smallest i
// such that the cumulative distribution up to i is >= r. Code 17 is the
// rounding-tail fallback if float accumulation falls just short of r.
func (g *Generator) sampleDiagnosisCode() int {
	r := g.rng.Float64()
	cumulative := 0.0
	for i, p := range diagnosisProbabilities {
		cumulative += p
		if cumulative >= r {
			return i + 1
		}
	}
	return 17
}

func (g *Generator) sampleAge() int {
	return minAge + g.rng.Intn(maxAge-minAge+1)
}

// sampleServiceTime draws from Normal(mean, 0.25*mean) and clamps any
// non-positive tail sample up to minServiceTime (spec.md §9: the source
// sometimes clamps, sometimes doesn't; this implementation always clamps).
func (g *Generator) sampleServiceTime(level entity.TriageLevel) time.Duration {
	mean := g.avgMins[level]
	dist := distuv.Normal{Mu: mean, Sigma: 0.25 * mean, Src: g.rng}
	minutes := dist.Rand()
	if minutes <= 0 {
		return minServiceTime
	}
	d := time.Duration(minutes * float64(time.Minute))
	if d < minServiceTime {
		return minServiceTime
	}
	return d
}

// Next produces one patient. arrivalTime is set by the caller (the
// simulator loop), per spec.md §4.3 step 6.
func (g *Generator) Next(arrivalTime time.Duration) (*entity.Patient, error) {
	code := g.sampleDiagnosisCode()
	level, err := triage.Classify(g.variant, code)
	if err != nil {
		return nil, fmt.Errorf("patientgen: %w", err)
	}

	if g.forcedLevel != nil {
		level = *g.forcedLevel
	} else if g.rng.Float64() < upEscalationProbability {
		level = level.Escalate()
	}

	g.nextID++
	p := &entity.Patient{
		ID:          g.nextID,
		Age:         g.sampleAge(),
		Diagnosis:   code,
		Triage:      level,
		ArrivalTime: arrivalTime,
		ServiceTime: g.sampleServiceTime(level),
	}
	return p, nil
}
