package entity

// HourlyMetrics is one row of the simulator's per-hour metrics log
// (spec.md §4.10): ten columns summarizing activity and running totals as
// of the end of that hour.
type HourlyMetrics struct {
	HourIndex             int
	ArrivalsThisHour      int
	WaitingSize           int
	TreatingSize          int
	AvailableRooms        int
	TotalTreatmentSeconds float64
	AvgTreatmentSeconds   float64
	TotalWaitSeconds      float64
	AvgWaitSeconds        float64
	TotalArrivalsCum      int
}

// CycleResult summarizes one simulator run over a cycle window, used by the
// feedback controller (C9) and the HTTP/CLI surfaces.
type CycleResult struct {
	TotalArrivals      int
	TotalERAdmissions  int
	PatientsRejected   int
	PatientsTreated    int
	TotalTreatmentTime float64 // seconds
	TotalWaitTime      float64 // seconds
	TriageCounts       map[TriageLevel]int
	HourlyRows         []HourlyMetrics
}

// RejectionRate is patientsRejected / totalArrivals, or 0 if there were no
// arrivals to reject.
func (c CycleResult) RejectionRate() float64 {
	if c.TotalArrivals == 0 {
		return 0
	}
	return float64(c.PatientsRejected) / float64(c.TotalArrivals)
}

// AvgWaitMinutes is the mean wait time in minutes across treated patients,
// or 0 if nobody was treated.
func (c CycleResult) AvgWaitMinutes() float64 {
	if c.PatientsTreated == 0 {
		return 0
	}
	return (c.TotalWaitTime / float64(c.PatientsTreated)) / 60
}
