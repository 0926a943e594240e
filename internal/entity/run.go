package entity

import (
	"time"

	"github.com/google/uuid"
)

// SimulationRun is one orchestrator invocation: the cyclic demand -> roster
// -> simulate -> feedback loop run end to end over some number of cycles.
type SimulationRun struct {
	ID               uuid.UUID
	StartedAt        time.Time
	FinishedAt       time.Time
	ConfigHash       string
	CycleCount       int
	PatientsTreated  int64
	PatientsRejected int64
	AvgWaitMinutes   float64
}

// RosterRun is one per-class ILP solve within one cycle of a simulation run.
type RosterRun struct {
	ID              uuid.UUID
	SimulationRunID uuid.UUID
	RoleClass       RoleClass
	CycleIndex      int
	Feasible        bool
	TotalCost       float64
	SolverStatus    string
}

// DemandAdjustment records one C9 feedback decision: the rejection rate and
// wait time a cycle produced, and the multiplicative factor derived from them.
type DemandAdjustment struct {
	SimulationRunID uuid.UUID
	CycleIndex      int
	RejectionRate   float64
	AvgWaitMinutes  float64
	Factor          float64
	Timestamp       time.Time
}
