// Package entity holds the shared domain types for the ED simulator and
// roster optimizer: triage levels, staff roles, shift definitions, patients,
// events, and the data shapes that pass between the two engines.
package entity

import (
	"fmt"
)

// TriageLevel is a clinical urgency tier. Lower Priority is more urgent.
type TriageLevel int

const (
	TriageRed TriageLevel = iota
	TriageOrange
	TriageYellow
	TriageGreen
	TriageBlue
)

// triageInfo pairs each level with its priority and description. Priority
// equals the enum ordinal today but is kept explicit because the waiting
// heap orders on it, not on iota identity.
var triageInfo = map[TriageLevel]struct {
	priority    int
	description string
}{
	TriageRed:    {1, "Immediate, life-threatening"},
	TriageOrange: {2, "Very urgent"},
	TriageYellow: {3, "Urgent"},
	TriageGreen:  {4, "Standard"},
	TriageBlue:   {5, "Non-urgent"},
}

// Priority returns the level's queue priority; lower sorts first.
func (l TriageLevel) Priority() int {
	return triageInfo[l].priority
}

// Description returns a human-readable description of the level.
func (l TriageLevel) Description() string {
	return triageInfo[l].description
}

func (l TriageLevel) String() string {
	switch l {
	case TriageRed:
		return "RED"
	case TriageOrange:
		return "ORANGE"
	case TriageYellow:
		return "YELLOW"
	case TriageGreen:
		return "GREEN"
	case TriageBlue:
		return "BLUE"
	default:
		return fmt.Sprintf("TriageLevel(%d)", int(l))
	}
}

// Escalate moves a patient one level more urgent. RED is unchanged.
func (l TriageLevel) Escalate() TriageLevel {
	switch l {
	case TriageBlue:
		return TriageGreen
	case TriageGreen:
		return TriageYellow
	case TriageYellow:
		return TriageOrange
	case TriageOrange:
		return TriageRed
	default:
		return TriageRed
	}
}

// MarshalText renders the level as its name, so it can be used as a JSON
// map key in config documents ("RED", "ORANGE", ...).
func (l TriageLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText parses a level name back from a JSON map key.
func (l *TriageLevel) UnmarshalText(text []byte) error {
	switch string(text) {
	case "RED":
		*l = TriageRed
	case "ORANGE":
		*l = TriageOrange
	case "YELLOW":
		*l = TriageYellow
	case "GREEN":
		*l = TriageGreen
	case "BLUE":
		*l = TriageBlue
	default:
		return fmt.Errorf("unknown triage level %q", text)
	}
	return nil
}

// AllTriageLevels lists every level in priority order, most urgent first.
var AllTriageLevels = []TriageLevel{TriageRed, TriageOrange, TriageYellow, TriageGreen, TriageBlue}

// ClassifierVariant names one of the three fixed diagnosis classifiers.
type ClassifierVariant string

const (
	ClassifierCTAS ClassifierVariant = "CTAS"
	ClassifierESI  ClassifierVariant = "ESI"
	ClassifierMTS  ClassifierVariant = "MTS"
)
