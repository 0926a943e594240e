package api

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/edrostering/edflow/internal/arrival"
	"github.com/edrostering/edflow/internal/config"
)

// Router wires the echo instance together with the simulation and config
// handlers.
type Router struct {
	echo       *echo.Echo
	simulation *SimulationHandler
	configInfo *ConfigHandler
}

// NewRouter builds a Router over a loaded configuration and its compiled
// arrival-function registry.
func NewRouter(cfg *config.Config, registry *arrival.Registry) *Router {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST},
		AllowHeaders: []string{echo.HeaderContentType},
	}))

	r := &Router{
		echo:       e,
		simulation: NewSimulationHandler(cfg, registry),
		configInfo: NewConfigHandler(cfg),
	}
	r.registerRoutes()
	return r
}

func (r *Router) registerRoutes() {
	r.echo.GET("/api/health", healthCheck)

	simGroup := r.echo.Group("/api/simulation")
	simGroup.POST("/run", r.simulation.RunSimulation)
	simGroup.GET("/chartdata", r.simulation.ChartData)
	simGroup.GET("/utilities", r.simulation.Utilities)

	r.echo.GET("/api/patients/triage", r.simulation.TriageCounts)

	configGroup := r.echo.Group("/api/config")
	configGroup.GET("/hyperparameters", r.configInfo.Hyperparameters)
	configGroup.GET("/scenarios", r.configInfo.Scenarios)
	configGroup.GET("/triage-levels", r.configInfo.TriageLevels)
	configGroup.GET("/triage-classifiers", r.configInfo.TriageClassifiers)
}

func healthCheck(c echo.Context) error {
	return c.JSON(200, map[string]string{"status": "UP"})
}

// Start starts the HTTP server.
func (r *Router) Start(addr string) error {
	return r.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (r *Router) Shutdown(ctx context.Context) error {
	return r.echo.Shutdown(ctx)
}
