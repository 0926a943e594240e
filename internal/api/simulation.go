// Package api implements the HTTP surface (spec.md §6) over an in-process
// DEPFS simulator, in the teacher's Echo handler style: a handler struct
// wraps the business logic, binds the request body, and replies through
// SuccessResponse/ErrorResponseWithCode.
package api

import (
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/edrostering/edflow/internal/arrival"
	"github.com/edrostering/edflow/internal/config"
	"github.com/edrostering/edflow/internal/edstate"
	"github.com/edrostering/edflow/internal/entity"
	"github.com/edrostering/edflow/internal/patientgen"
	"github.com/edrostering/edflow/internal/simulator"
)

// SimulationHandler runs ad hoc DEPFS simulations (C1–C5) against a base
// configuration, overridable per request. Only one simulation runs at a
// time (spec.md §5's exclusivity rule); the most recent run's result backs
// the chartdata/utilities/triage read endpoints until the next run replaces
// it.
type SimulationHandler struct {
	baseCfg  *config.Config
	registry *arrival.Registry

	mu         sync.Mutex
	lastResult *entity.CycleResult
	lastDays   int
}

// NewSimulationHandler builds a handler over the given base configuration
// and compiled arrival-function registry.
func NewSimulationHandler(baseCfg *config.Config, registry *arrival.Registry) *SimulationHandler {
	return &SimulationHandler{baseCfg: baseCfg, registry: registry}
}

// RunRequest is the body of POST /api/simulation/run. TriageLevel, when set,
// pins every generated patient to that level instead of the classifier's
// diagnosis-driven distribution.
type RunRequest struct {
	Days             int     `json:"days"`
	ArrivalFunction  string  `json:"arrivalFunction,omitempty"`
	TriageClassifier string  `json:"triageClassifier,omitempty"`
	TriageLevel      string  `json:"triageLevel,omitempty"`
	Hyperparameters  *struct {
		InterarrivalTime  *float64 `json:"interarrivalTime,omitempty"`
		TreatmentCapacity *int     `json:"treatmentCapacity,omitempty"`
		WaitingCapacity   *int     `json:"waitingCapacity,omitempty"`
	} `json:"hyperparameters,omitempty"`
}

// RunResponse is the body of a successful POST /api/simulation/run.
type RunResponse struct {
	Success           bool    `json:"success"`
	PatientsProcessed int     `json:"patientsProcessed"`
	PatientsRejected  int     `json:"patientsRejected"`
	SimulationTime    float64 `json:"simulationTime"`
	HasChartData      bool    `json:"hasChartData"`
}

var validClassifiers = map[string]entity.ClassifierVariant{
	"CTAS": entity.ClassifierCTAS,
	"ESI":  entity.ClassifierESI,
	"MTS":  entity.ClassifierMTS,
}

// RunSimulation handles POST /api/simulation/run.
func (h *SimulationHandler) RunSimulation(c echo.Context) error {
	var req RunRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode(
			"INVALID_REQUEST", "invalid request body: "+err.Error()))
	}
	if req.Days <= 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponseWithCode(
			"INVALID_DAYS", "days must be > 0"))
	}

	classifier := entity.ClassifierCTAS
	if req.TriageClassifier != "" {
		variant, ok := validClassifiers[req.TriageClassifier]
		if !ok {
			return c.JSON(http.StatusBadRequest, ErrorResponseWithCode(
				"INVALID_TRIAGE_CLASSIFIER", fmt.Sprintf("unknown triageClassifier %q", req.TriageClassifier)))
		}
		classifier = variant
	}

	var forcedLevel *entity.TriageLevel
	if req.TriageLevel != "" {
		var level entity.TriageLevel
		if err := level.UnmarshalText([]byte(req.TriageLevel)); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponseWithCode(
				"INVALID_TRIAGE_LEVEL", fmt.Sprintf("unknown triageLevel %q", req.TriageLevel)))
		}
		forcedLevel = &level
	}

	cfg := *h.baseCfg
	if req.Hyperparameters != nil {
		if req.Hyperparameters.InterarrivalTime != nil {
			cfg.InterarrivalTimeMins = *req.Hyperparameters.InterarrivalTime
		}
		if req.Hyperparameters.TreatmentCapacity != nil {
			cfg.ERTreatmentRooms = *req.Hyperparameters.TreatmentCapacity
		}
		if req.Hyperparameters.WaitingCapacity != nil {
			cfg.ERCapacity = *req.Hyperparameters.WaitingCapacity
		}
	}

	arrivalFn := h.registry.Get(req.ArrivalFunction)

	h.mu.Lock()
	defer h.mu.Unlock()

	result, err := h.runLocked(&cfg, classifier, arrivalFn, forcedLevel, req.Days)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponseWithCode(
			"SIMULATION_FAILED", "simulation failed: "+err.Error()))
	}

	h.lastResult = result
	h.lastDays = req.Days

	return c.JSON(http.StatusOK, SuccessResponse(RunResponse{
		Success:           true,
		PatientsProcessed: result.PatientsTreated,
		PatientsRejected:  result.PatientsRejected,
		SimulationTime:    float64(req.Days) * 24,
		HasChartData:      true,
	}))
}

func (h *SimulationHandler) runLocked(cfg *config.Config, classifier entity.ClassifierVariant, arrivalFn *arrival.Function, forcedLevel *entity.TriageLevel, days int) (*entity.CycleResult, error) {
	rng := rand.New(rand.NewSource(cfg.RandomSeed))
	gen := patientgen.NewGenerator(classifier, patientgen.AvgServiceMinutes(cfg.AvgTreatmentTimesMins), rng)
	if forcedLevel != nil {
		gen = gen.WithForcedLevel(*forcedLevel)
	}
	staffCounts := edstate.InitialStaffCounts(cfg.StaffCounts)
	state := edstate.New(cfg.ERCapacity, cfg.ERTreatmentRooms, staffCounts)
	tau0 := time.Duration(cfg.InterarrivalTimeMins * float64(time.Minute))

	req := simulator.StaffRequirements{
		Nurses:     cfg.TriageNurseRequirements,
		Physicians: cfg.TriagePhysicianRequirements,
		Residents:  cfg.TriageRPRequirements,
	}
	sim := simulator.New(state, gen, arrivalFn, tau0, req, rng)
	return sim.Run(0, time.Duration(days)*24*time.Hour)
}

// ChartDataResponse is the body of GET /api/simulation/chartdata.
type ChartDataResponse struct {
	Hours     []int `json:"hours"`
	Arrivals  []int `json:"arrivals"`
	Waiting   []int `json:"waiting"`
	Treating  []int `json:"treating"`
	OpenRooms []int `json:"openRooms"`
}

// ChartData handles GET /api/simulation/chartdata.
func (h *SimulationHandler) ChartData(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.lastResult == nil {
		return c.JSON(http.StatusNotFound, ErrorResponseWithCode(
			"NO_SIMULATION_RUN", "no simulation has been run yet"))
	}

	resp := ChartDataResponse{}
	for _, row := range h.lastResult.HourlyRows {
		resp.Hours = append(resp.Hours, row.HourIndex)
		resp.Arrivals = append(resp.Arrivals, row.ArrivalsThisHour)
		resp.Waiting = append(resp.Waiting, row.WaitingSize)
		resp.Treating = append(resp.Treating, row.TreatingSize)
		resp.OpenRooms = append(resp.OpenRooms, row.AvailableRooms)
	}
	return c.JSON(http.StatusOK, SuccessResponse(resp))
}

// UtilitiesResponse is the body of GET /api/simulation/utilities.
type UtilitiesResponse struct {
	RoomUtilization float64 `json:"roomUtilization"`
	Throughput      float64 `json:"throughput"`
	RejectionRate   float64 `json:"rejectionRate"`
}

// Utilities handles GET /api/simulation/utilities.
func (h *SimulationHandler) Utilities(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.lastResult == nil {
		return c.JSON(http.StatusNotFound, ErrorResponseWithCode(
			"NO_SIMULATION_RUN", "no simulation has been run yet"))
	}

	var totalRooms, occupiedSum int
	for _, row := range h.lastResult.HourlyRows {
		totalRooms += row.AvailableRooms + row.TreatingSize
		occupiedSum += row.TreatingSize
	}
	roomUtilization := 0.0
	if totalRooms > 0 {
		roomUtilization = float64(occupiedSum) / float64(totalRooms) * 100
	}

	throughput := 0.0
	if h.lastResult.TotalArrivals > 0 {
		throughput = float64(h.lastResult.PatientsTreated) / float64(h.lastResult.TotalArrivals) * 100
	}

	return c.JSON(http.StatusOK, SuccessResponse(UtilitiesResponse{
		RoomUtilization: roomUtilization,
		Throughput:      throughput,
		RejectionRate:   h.lastResult.RejectionRate() * 100,
	}))
}

// TriageResponse is the body of GET /api/patients/triage.
type TriageResponse struct {
	TriageCounts map[string]int `json:"triageCounts"`
}

// TriageCounts handles GET /api/patients/triage.
func (h *SimulationHandler) TriageCounts(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.lastResult == nil {
		return c.JSON(http.StatusNotFound, ErrorResponseWithCode(
			"NO_SIMULATION_RUN", "no simulation has been run yet"))
	}

	counts := make(map[string]int, len(entity.AllTriageLevels))
	for _, level := range entity.AllTriageLevels {
		counts[level.String()] = h.lastResult.TriageCounts[level]
	}
	return c.JSON(http.StatusOK, SuccessResponse(TriageResponse{TriageCounts: counts}))
}
