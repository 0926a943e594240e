// Package config loads and validates the JSON configuration document
// described in spec.md §6. Loading happens once at startup; a loaded Config
// is treated as immutable for the rest of the process, per spec.md §5's
// "shared config object must be immutable after construction" rule.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/edrostering/edflow/internal/entity"
	"github.com/edrostering/edflow/internal/validation"
)

// TriageRequirements maps a triage level to a fractional staffing
// requirement. Values are float64 because the source's per-triage staff
// requirements are fractional (spec.md §9).
type TriageRequirements map[entity.TriageLevel]float64

// TriageMinutes maps a triage level to an average treatment time in minutes.
type TriageMinutes map[entity.TriageLevel]float64

// Config is the fully parsed, validated application configuration.
type Config struct {
	PopulationSize       int     `json:"populationSize"`
	ERName               string  `json:"ERName"`
	ERCapacity           int     `json:"ERCapacity"`
	ERTreatmentRooms     int     `json:"ERTreatmentRooms"`
	InterarrivalTimeMins float64 `json:"interarrivalTimeMins"`

	MaxHoursPerDay         int     `json:"maxHoursPerDay"`
	MaxRegularHoursPerWeek int     `json:"maxRegularHoursPerWeek"`
	MaxTotalHoursPerWeek   int     `json:"maxTotalHoursPerWeek"`
	OvertimeMultiplier     float64 `json:"overtimeMultiplier"`

	StaffCounts map[entity.Role]int     `json:"staffCounts"`
	HourlyWages map[entity.Role]float64 `json:"hourlyWages"`
	CNARatio    float64                 `json:"CNARatio"`
	LPNRatio    float64                 `json:"LPNRatio"`

	EstTraumaPatientsDay        int `json:"estTraumaPatientsDay"`
	EstTraumaPatientsEvening    int `json:"estTraumaPatientsEvening"`
	EstTraumaPatientsNight      int `json:"estTraumaPatientsNight"`
	EstNonTraumaPatientsDay     int `json:"estNonTraumaPatientsDay"`
	EstNonTraumaPatientsEvening int `json:"estNonTraumaPatientsEvening"`
	EstNonTraumaPatientsNight   int `json:"estNonTraumaPatientsNight"`

	TriageNurseRequirements     TriageRequirements `json:"triageNurseRequirements"`
	TriagePhysicianRequirements TriageRequirements `json:"triagePhysicianRequirements"`
	TriageRPRequirements        TriageRequirements `json:"triageRPRequirements"`
	AvgTreatmentTimesMins       TriageMinutes      `json:"avgTreatmentTimesMins"`

	PatientArrivalFunctions map[string]string `json:"patientArrivalFunctions"`
	DefaultArrivalFunction  string            `json:"defaultArrivalFunction"`

	PatientMinAge int `json:"patientMinAge"`
	PatientMaxAge int `json:"patientMaxAge"`

	// SchedulingPeriodDays is the cyclic orchestrator's cycle length
	// (spec.md §4.10). Defaults to 28 when zero.
	SchedulingPeriodDays int `json:"schedulingPeriodDays"`

	// RandomSeed seeds the single RNG stream (spec.md §4.3/§4.5). Defaults
	// to a fixed constant when zero, so an all-zero config is still
	// deterministic rather than accidentally unseeded.
	RandomSeed int64 `json:"randomSeed"`
}

// Load reads and validates a configuration document from path.
func Load(path string) (*Config, *validation.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	return LoadFrom(f)
}

// LoadFrom reads and validates a configuration document from an arbitrary
// reader, so tests and the HTTP bootstrap path don't need a real file.
func LoadFrom(r io.Reader) (*Config, *validation.Result, error) {
	var cfg Config
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, nil, fmt.Errorf("config: parse: %w", err)
	}

	applyDefaults(&cfg)

	result := validate(&cfg)
	if result.HasErrors() {
		return nil, result, fmt.Errorf("config: invalid: %s", result.Summary())
	}
	return &cfg, result, nil
}

func applyDefaults(cfg *Config) {
	if cfg.SchedulingPeriodDays == 0 {
		cfg.SchedulingPeriodDays = 28
	}
	if cfg.RandomSeed == 0 {
		cfg.RandomSeed = 1
	}
	if cfg.StaffCounts == nil {
		cfg.StaffCounts = map[entity.Role]int{}
	}
	if cfg.HourlyWages == nil {
		cfg.HourlyWages = map[entity.Role]float64{}
	}
}

// validate checks the required-keys and semantic constraints from spec.md
// §6/§7. A missing required key, an out-of-range value, or an unknown
// defaultArrivalFunction is a fatal configuration error (reported as
// SeverityError); a missing avgTreatmentTimesMins entry is only a warning.
// Arrival expressions are not parsed here; arrival.NewRegistry compiles them.
func validate(cfg *Config) *validation.Result {
	r := validation.NewResult()

	if cfg.PopulationSize < 0 {
		r.AddError(validation.CodeInvalidConfig, "populationSize must be >= 0")
	}
	if cfg.ERCapacity <= 0 {
		r.AddError(validation.CodeInvalidConfig, "ERCapacity must be > 0")
	}
	if cfg.ERTreatmentRooms <= 0 {
		r.AddError(validation.CodeInvalidConfig, "ERTreatmentRooms must be > 0")
	}
	if cfg.InterarrivalTimeMins <= 0 {
		r.AddError(validation.CodeInvalidConfig, "interarrivalTimeMins must be > 0")
	}
	if cfg.MaxHoursPerDay <= 0 {
		r.AddError(validation.CodeInvalidConfig, "maxHoursPerDay must be > 0")
	}
	if cfg.MaxRegularHoursPerWeek <= 0 || cfg.MaxTotalHoursPerWeek <= 0 {
		r.AddError(validation.CodeInvalidConfig, "maxRegularHoursPerWeek and maxTotalHoursPerWeek must be > 0")
	}
	if cfg.MaxRegularHoursPerWeek > cfg.MaxTotalHoursPerWeek {
		r.AddError(validation.CodeInvalidConfig, "maxRegularHoursPerWeek cannot exceed maxTotalHoursPerWeek")
	}
	if cfg.PatientMinAge <= 0 || cfg.PatientMaxAge <= 0 || cfg.PatientMinAge > cfg.PatientMaxAge {
		r.AddError(validation.CodeInvalidConfig, "patientMinAge/patientMaxAge must form a valid non-empty range")
	}

	if len(cfg.PatientArrivalFunctions) == 0 {
		r.AddError(validation.CodeMissingRequiredKey, "patientArrivalFunctions must not be empty")
	}
	if cfg.DefaultArrivalFunction == "" {
		r.AddError(validation.CodeMissingRequiredKey, "defaultArrivalFunction is required")
	} else if _, ok := cfg.PatientArrivalFunctions[cfg.DefaultArrivalFunction]; !ok {
		r.AddError(validation.CodeUnknownArrivalFunction,
			fmt.Sprintf("defaultArrivalFunction %q is not present in patientArrivalFunctions", cfg.DefaultArrivalFunction))
	}

	for _, level := range entity.AllTriageLevels {
		if _, ok := cfg.AvgTreatmentTimesMins[level]; !ok {
			r.AddWarning(validation.CodeMissingRequiredKey,
				fmt.Sprintf("avgTreatmentTimesMins missing entry for %s, caller must supply a default", level))
		}
	}

	return r
}

// StaffClassCount sums the configured counts for every role in a class.
func (c *Config) StaffClassCount(class entity.RoleClass) int {
	total := 0
	for _, role := range entity.RolesInClass(class) {
		total += c.StaffCounts[role]
	}
	return total
}
