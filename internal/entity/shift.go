package entity

// ShiftKind is one of the fixed catalog shapes a shift definition picks from.
type ShiftKind string

const (
	ShiftKind8Day      ShiftKind = "8H_DAY"
	ShiftKind8Evening  ShiftKind = "8H_EVENING"
	ShiftKind8Night    ShiftKind = "8H_NIGHT"
	ShiftKind10Day     ShiftKind = "10H_DAY"
	ShiftKind10Evening ShiftKind = "10H_EVENING"
	ShiftKind10Night   ShiftKind = "10H_NIGHT"
	ShiftKind12Day     ShiftKind = "12H_DAY"
	ShiftKind12Night   ShiftKind = "12H_NIGHT"
	ShiftKindOnCall    ShiftKind = "ON_CALL"
	ShiftKindFree      ShiftKind = "FREE"
)

// shiftKindSpec gives each kind its length and default start hour.
var shiftKindSpec = map[ShiftKind]struct {
	lengthHours    int
	defaultStart   int
	isOff          bool
}{
	ShiftKind8Day:      {8, 7, false},
	ShiftKind8Evening:  {8, 15, false},
	ShiftKind8Night:    {8, 23, false},
	ShiftKind10Day:     {10, 7, false},
	ShiftKind10Evening: {10, 13, false},
	ShiftKind10Night:   {10, 21, false},
	ShiftKind12Day:     {12, 7, false},
	ShiftKind12Night:   {12, 19, false},
	ShiftKindOnCall:    {0, 0, false},
	ShiftKindFree:      {0, 0, true},
}

// LengthHours returns the shift kind's length in hours.
func (k ShiftKind) LengthHours() int { return shiftKindSpec[k].lengthHours }

// DefaultStartHour returns the hour-of-day (0-23) the shift kind starts at.
func (k ShiftKind) DefaultStartHour() int { return shiftKindSpec[k].defaultStart }

// IsOff reports whether the kind represents time not worked.
func (k ShiftKind) IsOff() bool { return shiftKindSpec[k].isOff }

// ShiftDefinition pairs a short LP identifier with exactly one shift kind.
// LP ids are unique within one optimization instance.
type ShiftDefinition struct {
	LPShiftID string
	Kind      ShiftKind
	StartHour int // overrides Kind.DefaultStartHour when non-negative
}

// EffectiveStartHour returns the configured start hour, falling back to the
// shift kind's default when none was set.
func (d ShiftDefinition) EffectiveStartHour() int {
	if d.StartHour >= 0 {
		return d.StartHour
	}
	return d.Kind.DefaultStartHour()
}

// LengthHours is a convenience passthrough to the underlying kind.
func (d ShiftDefinition) LengthHours() int { return d.Kind.LengthHours() }

// IsOff is a convenience passthrough to the underlying kind.
func (d ShiftDefinition) IsOff() bool { return d.Kind.IsOff() }

// IsWork reports whether the shift is not flagged off. ON_CALL has zero
// length but is not "off", so it counts as a work shift: it adds zero hours
// to the K2/K4 hour sums, but is a distinct catalog entry from FREE.
func (d ShiftDefinition) IsWork() bool {
	return !d.IsOff()
}

// intervalEnd returns the shift's absolute end hour on its day, relative to
// the start of that day (exceeds 24 for a shift that runs past midnight, as
// the 8/10/12-hour night kinds do).
func (d ShiftDefinition) intervalEnd() int {
	return d.EffectiveStartHour() + d.LengthHours()
}

// Covers reports whether shift d, worked on the same day as other, covers
// other's time interval: other's interval must be fully contained in d's.
// Both must be work shifts. This is the containment relation K5 and the
// rest rule K6 both rely on (spec.md §9: containment, not LP-id equality).
func (d ShiftDefinition) Covers(other ShiftDefinition) bool {
	if !d.IsWork() || !other.IsWork() {
		return false
	}
	dStart, dEnd := d.EffectiveStartHour(), d.intervalEnd()
	oStart, oEnd := other.EffectiveStartHour(), other.intervalEnd()
	return dStart <= oStart && dEnd >= oEnd
}

// ShiftCatalog is the set of shift definitions available to one optimization
// instance, keyed by LP shift id.
type ShiftCatalog struct {
	defs map[string]ShiftDefinition
	ids  []string // insertion order, for deterministic iteration
}

// NewShiftCatalog builds a catalog from a list of definitions.
func NewShiftCatalog(defs ...ShiftDefinition) *ShiftCatalog {
	c := &ShiftCatalog{defs: make(map[string]ShiftDefinition, len(defs))}
	for _, d := range defs {
		if _, exists := c.defs[d.LPShiftID]; !exists {
			c.ids = append(c.ids, d.LPShiftID)
		}
		c.defs[d.LPShiftID] = d
	}
	return c
}

// Get looks up a shift definition by LP id.
func (c *ShiftCatalog) Get(lpShiftID string) (ShiftDefinition, bool) {
	d, ok := c.defs[lpShiftID]
	return d, ok
}

// IDs returns every LP shift id in the catalog, in insertion order.
func (c *ShiftCatalog) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// OffShiftID returns the LP id of the catalog's off-shift, if any. Per
// spec.md §9 the catalog must expose this via a predicate rather than a
// hard-coded identifier so resident/admin day-off rules can find it.
func (c *ShiftCatalog) OffShiftID() (string, bool) {
	for _, id := range c.ids {
		if c.defs[id].IsOff() {
			return id, true
		}
	}
	return "", false
}

// WorkShiftIDs returns the LP ids of every non-off shift in the catalog.
func (c *ShiftCatalog) WorkShiftIDs() []string {
	var out []string
	for _, id := range c.ids {
		if c.defs[id].IsWork() {
			out = append(out, id)
		}
	}
	return out
}
