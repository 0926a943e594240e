package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edrostering/edflow/internal/config"
	"github.com/edrostering/edflow/internal/entity"
)

// ConfigHandler exposes read-only introspection over the loaded
// configuration document, for a client to populate a scenario picker
// without hardcoding the server's hyperparameters.
type ConfigHandler struct {
	cfg *config.Config
}

// NewConfigHandler builds a handler over the given configuration.
func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{cfg: cfg}
}

// HyperparametersResponse is the body of GET /api/config/hyperparameters.
type HyperparametersResponse struct {
	InterarrivalTimeMins float64 `json:"interarrivalTimeMins"`
	TreatmentCapacity    int     `json:"treatmentCapacity"`
	WaitingCapacity      int     `json:"waitingCapacity"`
}

// Hyperparameters handles GET /api/config/hyperparameters.
func (h *ConfigHandler) Hyperparameters(c echo.Context) error {
	return c.JSON(http.StatusOK, SuccessResponse(HyperparametersResponse{
		InterarrivalTimeMins: h.cfg.InterarrivalTimeMins,
		TreatmentCapacity:    h.cfg.ERTreatmentRooms,
		WaitingCapacity:      h.cfg.ERCapacity,
	}))
}

// Scenarios handles GET /api/config/scenarios, listing the configured
// arrival-rate functions a client may pass as RunRequest.ArrivalFunction.
func (h *ConfigHandler) Scenarios(c echo.Context) error {
	names := make([]string, 0, len(h.cfg.PatientArrivalFunctions))
	for name := range h.cfg.PatientArrivalFunctions {
		names = append(names, name)
	}
	return c.JSON(http.StatusOK, SuccessResponse(map[string]interface{}{
		"scenarios": names,
		"default":   h.cfg.DefaultArrivalFunction,
	}))
}

// TriageLevels handles GET /api/config/triage-levels.
func (h *ConfigHandler) TriageLevels(c echo.Context) error {
	levels := make([]map[string]interface{}, 0, len(entity.AllTriageLevels))
	for _, level := range entity.AllTriageLevels {
		levels = append(levels, map[string]interface{}{
			"name":        level.String(),
			"priority":    level.Priority(),
			"description": level.Description(),
		})
	}
	return c.JSON(http.StatusOK, SuccessResponse(map[string]interface{}{"triageLevels": levels}))
}

// TriageClassifiers handles GET /api/config/triage-classifiers.
func (h *ConfigHandler) TriageClassifiers(c echo.Context) error {
	names := make([]string, 0, len(validClassifiers))
	for name := range validClassifiers {
		names = append(names, name)
	}
	return c.JSON(http.StatusOK, SuccessResponse(map[string]interface{}{"triageClassifiers": names}))
}
