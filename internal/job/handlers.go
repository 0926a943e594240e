package job

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/edrostering/edflow/internal/entity"
	"github.com/edrostering/edflow/internal/feedback"
	"github.com/edrostering/edflow/internal/orchestrator"
	"github.com/edrostering/edflow/internal/repository"
)

// JobHandlers executes queued cycle work against the same per-cycle logic
// the inline orchestrator uses (BaseDemand/SolveClass/Simulate), persisting
// results through the repository layer instead of returning them directly.
type JobHandlers struct {
	orch              *orchestrator.Orchestrator
	simulationRuns    repository.SimulationRunRepository
	rosterRuns        repository.RosterRunRepository
	demandAdjustments repository.DemandAdjustmentRepository
}

// NewJobHandlers creates a new job handlers instance.
func NewJobHandlers(orch *orchestrator.Orchestrator, simulationRuns repository.SimulationRunRepository, rosterRuns repository.RosterRunRepository, demandAdjustments repository.DemandAdjustmentRepository) *JobHandlers {
	return &JobHandlers{
		orch:              orch,
		simulationRuns:    simulationRuns,
		rosterRuns:        rosterRuns,
		demandAdjustments: demandAdjustments,
	}
}

// RegisterHandlers registers all job handlers with the asynq mux.
func (h *JobHandlers) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeRosterOptimize, h.HandleRosterOptimize)
	mux.HandleFunc(TypeCycleSimulate, h.HandleCycleSimulate)
}

// HandleRosterOptimize solves one staff class's ILP roster for one cycle and
// persists the result as a roster run record.
func (h *JobHandlers) HandleRosterOptimize(ctx context.Context, t *asynq.Task) error {
	var payload RosterOptimizePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	log.Printf("roster:optimize run=%s cycle=%d class=%s", payload.SimulationRunID, payload.CycleIndex, payload.RoleClass)

	factor, err := h.adjustmentFactorForCycle(ctx, payload.SimulationRunID, payload.CycleIndex)
	if err != nil {
		return fmt.Errorf("failed to resolve demand factor: %w", err)
	}

	horizon := h.orch.SchedulingPeriodDays()
	demandRecords := feedback.Adjust(h.orch.BaseDemand(horizon), factor)
	schedule, _ := h.orch.SolveClass(payload.RoleClass, demandRecords, horizon)

	run := &entity.RosterRun{
		SimulationRunID: payload.SimulationRunID,
		RoleClass:       payload.RoleClass,
		CycleIndex:      payload.CycleIndex,
		Feasible:        schedule.Feasible,
		TotalCost:       schedule.TotalCost,
		SolverStatus:    schedule.SolverStatus,
	}
	if err := h.rosterRuns.Create(ctx, run); err != nil {
		return fmt.Errorf("failed to persist roster run: %w", err)
	}

	return nil
}

// HandleCycleSimulate waits for all staff-class roster solves of a cycle to
// land, then runs the DEPFS simulation for that cycle's window.
func (h *JobHandlers) HandleCycleSimulate(ctx context.Context, t *asynq.Task) error {
	var payload CycleSimulatePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	landed, err := h.rosterRuns.ListByCycle(ctx, payload.SimulationRunID, payload.CycleIndex)
	if err != nil {
		return fmt.Errorf("failed to check roster runs for cycle %d: %w", payload.CycleIndex, err)
	}
	if len(landed) < len(entity.AllRoleClasses) {
		return fmt.Errorf("cycle %d: only %d/%d roster runs landed, retrying", payload.CycleIndex, len(landed), len(entity.AllRoleClasses))
	}

	horizon := h.orch.SchedulingPeriodDays()
	simResult, err := h.orch.Simulate(payload.CycleIndex*horizon, horizon)
	if err != nil {
		return fmt.Errorf("cycle %d simulation failed: %w", payload.CycleIndex, err)
	}

	adj := &entity.DemandAdjustment{
		SimulationRunID: payload.SimulationRunID,
		CycleIndex:      payload.CycleIndex,
		RejectionRate:   simResult.RejectionRate(),
		AvgWaitMinutes:  simResult.AvgWaitMinutes(),
		Factor:          feedback.Factor(*simResult),
		Timestamp:       time.Now().UTC(),
	}
	if err := h.demandAdjustments.Create(ctx, adj); err != nil {
		return fmt.Errorf("failed to persist demand adjustment: %w", err)
	}

	run, err := h.simulationRuns.GetByID(ctx, payload.SimulationRunID)
	if err != nil {
		return fmt.Errorf("failed to load simulation run: %w", err)
	}
	run.PatientsTreated += int64(simResult.PatientsTreated)
	run.PatientsRejected += int64(simResult.PatientsRejected)
	run.AvgWaitMinutes = simResult.AvgWaitMinutes()
	if err := h.simulationRuns.Update(ctx, run); err != nil {
		return fmt.Errorf("failed to update simulation run: %w", err)
	}

	log.Printf("cycle:simulate run=%s cycle=%d treated=%d rejected=%d", payload.SimulationRunID, payload.CycleIndex, simResult.PatientsTreated, simResult.PatientsRejected)

	return nil
}

// adjustmentFactorForCycle returns the demand adjustment factor the previous
// cycle produced, or 1.0 for the first cycle of a run.
func (h *JobHandlers) adjustmentFactorForCycle(ctx context.Context, simulationRunID uuid.UUID, cycleIndex int) (float64, error) {
	if cycleIndex == 0 {
		return 1.0, nil
	}
	entries, err := h.demandAdjustments.ListBySimulationRun(ctx, simulationRunID)
	if err != nil {
		return 0, err
	}
	for _, e := range entries {
		if e.CycleIndex == cycleIndex-1 {
			return e.Factor, nil
		}
	}
	return 1.0, nil
}
