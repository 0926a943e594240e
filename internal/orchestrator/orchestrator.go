// Package orchestrator drives the cyclic demand -> optimize -> simulate ->
// adjust loop described in spec.md §4.10: each cycle solves a fresh roster
// for every staff class, simulates patient flow against it, and feeds the
// outcome's rejection rate and wait time into the next cycle's demand.
package orchestrator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/edrostering/edflow/internal/arrival"
	"github.com/edrostering/edflow/internal/config"
	"github.com/edrostering/edflow/internal/demand"
	"github.com/edrostering/edflow/internal/edstate"
	"github.com/edrostering/edflow/internal/entity"
	"github.com/edrostering/edflow/internal/feedback"
	"github.com/edrostering/edflow/internal/patientgen"
	"github.com/edrostering/edflow/internal/roster"
	"github.com/edrostering/edflow/internal/simulator"
	"github.com/edrostering/edflow/internal/validation"
)

// CycleReport is one cycle's full output: the roster solved for every
// staff class and the simulation result produced against it.
type CycleReport struct {
	CycleIndex  int
	HorizonDays int
	Schedules   map[entity.RoleClass]*entity.OptimizedSchedule
	Simulation  *entity.CycleResult
	Diagnostics *validation.Result
}

// Report is the full output of one orchestrator run: one CycleReport per
// scheduling period within the requested total duration.
type Report struct {
	Cycles []CycleReport
}

// Orchestrator holds everything one multi-cycle run needs: configuration,
// the resolved arrival-rate function, the staff roster, the shift catalog,
// and the shared RNG stream.
type Orchestrator struct {
	cfg        *config.Config
	arrivalFn  *arrival.Function
	classifier entity.ClassifierVariant
	catalog    *entity.ShiftCatalog
	staff      []entity.StaffMember
	rng        *rand.Rand
}

// New builds an Orchestrator. staff is the full roster across all four
// classes; staffInClass partitions it per solve. arrivalFn is resolved once
// by the caller (typically via an arrival.Registry lookup) so a single run
// can be pinned to a specific arrival-rate function for its whole duration.
func New(cfg *config.Config, arrivalFn *arrival.Function, classifier entity.ClassifierVariant, catalog *entity.ShiftCatalog, staff []entity.StaffMember, rng *rand.Rand) *Orchestrator {
	return &Orchestrator{
		cfg:        cfg,
		arrivalFn:  arrivalFn,
		classifier: classifier,
		catalog:    catalog,
		staff:      staff,
		rng:        rng,
	}
}

func staffInClass(staff []entity.StaffMember, class entity.RoleClass) []entity.StaffMember {
	var out []entity.StaffMember
	for _, s := range staff {
		if s.Class() == class {
			out = append(out, s)
		}
	}
	return out
}

func demandForClass(records []entity.DemandRecord, class entity.RoleClass) []entity.DemandRecord {
	var out []entity.DemandRecord
	for _, r := range records {
		if r.Role.Class() == class {
			out = append(out, r)
		}
	}
	return out
}

func (o *Orchestrator) baseDemandInputs(horizonDays int) demand.Inputs {
	return demand.Inputs{
		Day:      demand.DayPartVolume{Trauma: o.cfg.EstTraumaPatientsDay, NonTrauma: o.cfg.EstNonTraumaPatientsDay},
		Evening:  demand.DayPartVolume{Trauma: o.cfg.EstTraumaPatientsEvening, NonTrauma: o.cfg.EstNonTraumaPatientsEvening},
		Night:    demand.DayPartVolume{Trauma: o.cfg.EstTraumaPatientsNight, NonTrauma: o.cfg.EstNonTraumaPatientsNight},
		LPNRatio: o.cfg.LPNRatio,
		CNARatio: o.cfg.CNARatio,
		NumDays:  horizonDays,
	}
}

func (o *Orchestrator) staffRequirements() simulator.StaffRequirements {
	return simulator.StaffRequirements{
		Nurses:     o.cfg.TriageNurseRequirements,
		Physicians: o.cfg.TriagePhysicianRequirements,
		Residents:  o.cfg.TriageRPRequirements,
	}
}

// Run executes every cycle of length cfg.SchedulingPeriodDays within
// totalDays, feeding each cycle's outcome into the next cycle's demand
// adjustment factor (spec.md §4.9/§4.10). This is the "inline" execution
// path of §4.12; the "queued" path (internal/job) calls BaseDemand,
// SolveClass, and Simulate directly against the same per-cycle logic.
func (o *Orchestrator) Run(totalDays int) (*Report, error) {
	report := &Report{}
	period := o.cfg.SchedulingPeriodDays
	if period <= 0 {
		return nil, fmt.Errorf("orchestrator: scheduling period must be positive, got %d", period)
	}

	factor := 1.0
	t := 0
	cycleIndex := 0

	for t < totalDays {
		horizon := period
		if t+horizon > totalDays {
			horizon = totalDays - t
		}

		diag := validation.NewResult()
		adjustedDemand := feedback.Adjust(o.BaseDemand(horizon), factor)

		schedules := make(map[entity.RoleClass]*entity.OptimizedSchedule, len(entity.AllRoleClasses))
		for _, class := range entity.AllRoleClasses {
			schedule, classDiag := o.SolveClass(class, adjustedDemand, horizon)
			diag.AddMessages(classDiag.Messages...)
			schedules[class] = schedule
		}

		simResult, err := o.Simulate(t, horizon)
		if err != nil {
			return report, fmt.Errorf("orchestrator: cycle %d simulation failed: %w", cycleIndex, err)
		}

		report.Cycles = append(report.Cycles, CycleReport{
			CycleIndex:  cycleIndex,
			HorizonDays: horizon,
			Schedules:   schedules,
			Simulation:  simResult,
			Diagnostics: diag,
		})

		factor = feedback.Factor(*simResult)
		t += horizon
		cycleIndex++
	}

	return report, nil
}

// SchedulingPeriodDays returns the configured cycle length, exposed so the
// job orchestration component can compute a cycle's day offset without
// reaching into configuration directly.
func (o *Orchestrator) SchedulingPeriodDays() int {
	return o.cfg.SchedulingPeriodDays
}

// BaseDemand generates the unadjusted demand list for a horizon of the given
// length, ready to be scaled by a feedback factor via feedback.Adjust.
func (o *Orchestrator) BaseDemand(horizonDays int) []entity.DemandRecord {
	return demand.Generate(o.baseDemandInputs(horizonDays))
}

// SolveClass runs one ILP roster solve for a single staff class against an
// already-adjusted demand list.
func (o *Orchestrator) SolveClass(class entity.RoleClass, demandRecords []entity.DemandRecord, horizonDays int) (*entity.OptimizedSchedule, *validation.Result) {
	in := entity.OptimizationInput{
		Staff:                  staffInClass(o.staff, class),
		Catalog:                o.catalog,
		Demand:                 demandForClass(demandRecords, class),
		NumDays:                horizonDays,
		NumWeeks:               (horizonDays + 6) / 7,
		MaxHoursPerDay:         o.cfg.MaxHoursPerDay,
		MaxRegularHoursPerWeek: o.cfg.MaxRegularHoursPerWeek,
		MaxTotalHoursPerWeek:   o.cfg.MaxTotalHoursPerWeek,
	}
	return roster.Solve(class, in)
}

// Simulate runs one DEPFS simulation over [startDay, startDay+horizonDays)
// days, in whole-day units relative to the orchestrator's epoch.
func (o *Orchestrator) Simulate(startDay, horizonDays int) (*entity.CycleResult, error) {
	gen := patientgen.NewGenerator(o.classifier, patientgen.AvgServiceMinutes(o.cfg.AvgTreatmentTimesMins), o.rng)
	staffCounts := edstate.InitialStaffCounts(o.cfg.StaffCounts)
	state := edstate.New(o.cfg.ERCapacity, o.cfg.ERTreatmentRooms, staffCounts)
	tau0 := time.Duration(o.cfg.InterarrivalTimeMins * float64(time.Minute))

	sim := simulator.New(state, gen, o.arrivalFn, tau0, o.staffRequirements(), o.rng)

	cycleStart := time.Duration(startDay) * 24 * time.Hour
	cycleEnd := time.Duration(startDay+horizonDays) * 24 * time.Hour
	return sim.Run(cycleStart, cycleEnd)
}
