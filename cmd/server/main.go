// Command server boots the HTTP surface (internal/api) and the asynq
// worker pool (internal/job) against a loaded configuration, backed by
// either the in-memory or PostgreSQL repository implementation depending on
// whether DATABASE_URL is set.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/edrostering/edflow/internal/api"
	"github.com/edrostering/edflow/internal/arrival"
	"github.com/edrostering/edflow/internal/config"
	"github.com/edrostering/edflow/internal/entity"
	"github.com/edrostering/edflow/internal/job"
	"github.com/edrostering/edflow/internal/orchestrator"
	"github.com/edrostering/edflow/internal/repository"
	"github.com/edrostering/edflow/internal/repository/memory"
	"github.com/edrostering/edflow/internal/repository/postgres"
)

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func main() {
	configPath := flag.String("config", "config.json", "path to the JSON configuration document")
	addr := flag.String("addr", getEnvOrDefault("SERVER_ADDR", ":8080"), "HTTP listen address")
	redisAddr := flag.String("redis", getEnvOrDefault("REDIS_ADDR", "localhost:6379"), "Redis address for the asynq queue")
	flag.Parse()

	cfg, validationResult, err := config.Load(*configPath)
	if err != nil {
		if validationResult != nil {
			log.Fatalf("failed to load config: %v (%s)", err, validationResult.Summary())
		}
		log.Fatalf("failed to load config: %v", err)
	}

	registry, err := arrival.NewRegistry(cfg.PatientArrivalFunctions, cfg.DefaultArrivalFunction)
	if err != nil {
		log.Fatalf("failed to compile arrival functions: %v", err)
	}

	db := openDatabase()
	defer db.Close()

	staff := cfg.BuildStaffRoster()
	catalog := config.DefaultShiftCatalog()
	rng := rand.New(rand.NewSource(cfg.RandomSeed))
	orch := orchestrator.New(cfg, registry.Default(), entity.ClassifierCTAS, catalog, staff, rng)

	handlers := job.NewJobHandlers(orch, db.SimulationRunRepository(), db.RosterRunRepository(), db.DemandAdjustmentRepository())
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	asynqSrv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: *redisAddr},
		asynq.Config{Concurrency: 4},
	)
	go func() {
		log.Printf("starting asynq worker pool against redis %s", *redisAddr)
		if err := asynqSrv.Run(mux); err != nil {
			log.Fatalf("asynq worker pool failed: %v", err)
		}
	}()
	defer asynqSrv.Shutdown()

	router := api.NewRouter(cfg, registry)
	go func() {
		log.Printf("starting HTTP server on %s", *addr)
		if err := router.Start(*addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := router.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown error: %v", err)
	}
}

func openDatabase() repository.Database {
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		store, err := postgres.NewStore(connStr)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		return store
	}
	return memory.NewStore()
}
