package entity

import "time"

// PatientID identifies a patient for the lifetime of one simulation run.
type PatientID uint64

// Patient is one arrival through the ED, tracked from admit to discharge.
type Patient struct {
	ID               PatientID
	Name             string
	Age              int
	Diagnosis        int // 1..17
	Triage           TriageLevel
	ArrivalTime      time.Duration // since simulation epoch
	TreatmentStart   time.Duration
	DischargeTime    time.Duration
	ServiceTime      time.Duration // sampled duration of treatment
	inTreatment      bool
}

// MarkTreating records the start of treatment.
func (p *Patient) MarkTreating(now time.Duration) {
	p.TreatmentStart = now
	p.inTreatment = true
}

// MarkDischarged records the end of treatment.
func (p *Patient) MarkDischarged(now time.Duration) {
	p.DischargeTime = now
	p.inTreatment = false
}

// InTreatment reports whether the patient is currently occupying a room.
func (p *Patient) InTreatment() bool {
	return p.inTreatment
}

// WaitDuration is the time between arrival and treatment start. Only
// meaningful once MarkTreating has been called.
func (p *Patient) WaitDuration() time.Duration {
	return p.TreatmentStart - p.ArrivalTime
}
