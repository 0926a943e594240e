// Command edflow runs one cyclic-orchestrator pass (C10: demand -> roster
// -> simulate -> feedback, repeated every scheduling period) against a
// configuration file, writes the final cycle's hourly metrics to a CSV
// file, and exits with the code spec.md §6 specifies: 0 on success,
// non-zero for a fatal configuration or solver-native-library error.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/edrostering/edflow/internal/arrival"
	"github.com/edrostering/edflow/internal/config"
	"github.com/edrostering/edflow/internal/entity"
	"github.com/edrostering/edflow/internal/metrics"
	"github.com/edrostering/edflow/internal/orchestrator"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config.json", "path to the JSON configuration document")
	days := flag.Int("days", 28, "total number of days to simulate across all scheduling cycles")
	outDir := flag.String("out", ".", "directory to write the per-run CSV metrics log into")
	flag.Parse()

	cfg, validationResult, err := config.Load(*configPath)
	if err != nil {
		log.Printf("fatal: failed to load config %s: %v", *configPath, err)
		if validationResult != nil {
			log.Printf("validation: %s", validationResult.Summary())
		}
		return 1
	}

	registry, err := arrival.NewRegistry(cfg.PatientArrivalFunctions, cfg.DefaultArrivalFunction)
	if err != nil {
		log.Printf("fatal: failed to compile arrival functions: %v", err)
		return 1
	}

	staff := cfg.BuildStaffRoster()
	catalog := config.DefaultShiftCatalog()
	rng := rand.New(rand.NewSource(cfg.RandomSeed))
	orch := orchestrator.New(cfg, registry.Default(), entity.ClassifierCTAS, catalog, staff, rng)

	report, err := orch.Run(*days)
	if err != nil {
		log.Printf("fatal: orchestrator run failed: %v", err)
		return 1
	}

	for _, cycle := range report.Cycles {
		log.Printf("cycle %d (%d days): treated=%d rejected=%d avgWaitMin=%.1f",
			cycle.CycleIndex, cycle.HorizonDays, cycle.Simulation.PatientsTreated,
			cycle.Simulation.PatientsRejected, cycle.Simulation.AvgWaitMinutes())
		if cycle.Diagnostics.HasErrors() {
			log.Printf("cycle %d diagnostics: %s", cycle.CycleIndex, cycle.Diagnostics.Summary())
		}
	}

	if len(report.Cycles) == 0 {
		fmt.Println("no cycles run: days must be > 0")
		return 0
	}

	last := report.Cycles[len(report.Cycles)-1]
	path, err := metrics.WriteCSV(*outDir, last.Simulation.HourlyRows, time.Now())
	if err != nil {
		log.Printf("fatal: failed to write metrics CSV: %v", err)
		return 1
	}
	log.Printf("wrote hourly metrics for final cycle to %s", path)

	return 0
}
