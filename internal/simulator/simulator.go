// Package simulator implements the discrete-event patient-flow loop: it
// pre-generates a Poisson arrival stream for a cycle window, then drains
// arrival/release events in non-decreasing time order against an
// internal/edstate.State, recording per-hour metrics as it goes.
package simulator

import (
	"container/heap"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/edrostering/edflow/internal/arrival"
	"github.com/edrostering/edflow/internal/edstate"
	"github.com/edrostering/edflow/internal/entity"
	"github.com/edrostering/edflow/internal/patientgen"
)

// StaffRequirements gives, per pooled group, the staff amount a treatment
// at each triage level consumes.
type StaffRequirements struct {
	Nurses     map[entity.TriageLevel]float64
	Physicians map[entity.TriageLevel]float64
	Residents  map[entity.TriageLevel]float64
}

const minInterarrival = time.Minute

// Simulator owns one ED state, one patient generator, and the event queue
// for a single cycle run. It is not safe for concurrent use; spec.md §5
// requires exclusive start-await-read access from callers.
type Simulator struct {
	state     *edstate.State
	gen       *patientgen.Generator
	arrivalFn *arrival.Function
	tau0      time.Duration
	req       StaffRequirements
	rng       *rand.Rand

	events   eventHeap
	sequence uint64
}

// New builds a simulator over an already-initialized ED state.
func New(state *edstate.State, gen *patientgen.Generator, arrivalFn *arrival.Function, tau0 time.Duration, req StaffRequirements, rng *rand.Rand) *Simulator {
	s := &Simulator{
		state:     state,
		gen:       gen,
		arrivalFn: arrivalFn,
		tau0:      tau0,
		req:       req,
		rng:       rng,
	}
	heap.Init(&s.events)
	return s
}

// pregenerateArrivals builds the full ahead-of-time arrival stream for
// [cycleStart, cycleEnd), per spec.md §4.5. Events come out already
// time-ordered because the cursor only advances forward.
func (s *Simulator) pregenerateArrivals(cycleStart, cycleEnd time.Duration) ([]*entity.Event, error) {
	var events []*entity.Event
	c := cycleStart
	for c < cycleEnd {
		hour := float64(c / time.Hour)
		rate, err := s.arrivalFn.RateAt(hour)
		if err != nil {
			return nil, err
		}
		meanMinutes := float64(s.tau0) / float64(time.Minute) / rate
		dist := distuv.Exponential{Rate: 1 / meanMinutes, Src: s.rng}
		delta := time.Duration(dist.Rand() * float64(time.Minute))
		if delta < minInterarrival {
			delta = minInterarrival
		}
		c += delta
		if c >= cycleEnd {
			break
		}
		p, err := s.gen.Next(c)
		if err != nil {
			return nil, err
		}
		s.sequence++
		events = append(events, &entity.Event{Time: c, Kind: entity.EventArrival, Patient: p, Sequence: s.sequence})
	}
	return events, nil
}

// canTreat reports whether a room and every pooled staff group required by
// the patient's triage level are currently available.
func (s *Simulator) canTreat(p *entity.Patient) bool {
	if !s.state.HasRoom() {
		return false
	}
	if s.req.Nurses[p.Triage] > s.state.AvailableStaff(edstate.Nurses) {
		return false
	}
	if s.req.Physicians[p.Triage] > s.state.AvailableStaff(edstate.Physicians) {
		return false
	}
	if s.req.Residents[p.Triage] > s.state.AvailableStaff(edstate.Residents) {
		return false
	}
	return true
}

// startTreatment assumes canTreat(p) was just checked true. It occupies the
// resources, marks the patient treating, and schedules its release.
func (s *Simulator) startTreatment(p *entity.Patient, now time.Duration) {
	p.MarkTreating(now)
	s.state.OccupyStaff(edstate.Nurses, s.req.Nurses[p.Triage])
	s.state.OccupyStaff(edstate.Physicians, s.req.Physicians[p.Triage])
	s.state.OccupyStaff(edstate.Residents, s.req.Residents[p.Triage])
	s.state.OccupyRoom()

	s.sequence++
	s.pushEvent(&entity.Event{Time: now + p.ServiceTime, Kind: entity.EventRelease, Patient: p, Sequence: s.sequence})
}

func (s *Simulator) pushEvent(ev *entity.Event) {
	heap.Push(&s.events, ev)
}

func avgOrZero(total float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// Run drains the event queue across [cycleStart, cycleEnd) and returns the
// cycle's aggregate and per-hour metrics. The loop halts when the queue is
// empty or the next event falls at or past cycleEnd.
func (s *Simulator) Run(cycleStart, cycleEnd time.Duration) (*entity.CycleResult, error) {
	arrivals, err := s.pregenerateArrivals(cycleStart, cycleEnd)
	if err != nil {
		return nil, err
	}
	for _, ev := range arrivals {
		s.pushEvent(ev)
	}

	totalHours := int((cycleEnd - cycleStart) / time.Hour)
	result := &entity.CycleResult{}
	currentHour := 0
	arrivalsThisHour := 0

	flushHour := func(hour int) {
		result.HourlyRows = append(result.HourlyRows, entity.HourlyMetrics{
			HourIndex:             hour,
			ArrivalsThisHour:      arrivalsThisHour,
			WaitingSize:           s.state.WaitingLen(),
			TreatingSize:          s.state.OccupiedRooms(),
			AvailableRooms:        s.state.TotalRooms() - s.state.OccupiedRooms(),
			TotalTreatmentSeconds: result.TotalTreatmentTime,
			AvgTreatmentSeconds:   avgOrZero(result.TotalTreatmentTime, result.PatientsTreated),
			TotalWaitSeconds:      result.TotalWaitTime,
			AvgWaitSeconds:        avgOrZero(result.TotalWaitTime, result.PatientsTreated),
			TotalArrivalsCum:      result.TotalArrivals,
		})
		arrivalsThisHour = 0
	}

	for s.events.Len() > 0 {
		next := s.events[0]
		if next.Time >= cycleEnd {
			break
		}
		hourOfEvent := int((next.Time - cycleStart) / time.Hour)
		for currentHour < hourOfEvent {
			flushHour(currentHour)
			currentHour++
		}

		ev := heap.Pop(&s.events).(*entity.Event)
		switch ev.Kind {
		case entity.EventArrival:
			arrivalsThisHour++
			s.handleArrival(ev, result)
		case entity.EventRelease:
			s.handleRelease(ev, result)
		}
	}

	for currentHour < totalHours {
		flushHour(currentHour)
		currentHour++
	}

	return result, nil
}

func (s *Simulator) handleArrival(ev *entity.Event, result *entity.CycleResult) {
	p := ev.Patient
	result.TotalArrivals++
	if result.TriageCounts == nil {
		result.TriageCounts = make(map[entity.TriageLevel]int, len(entity.AllTriageLevels))
	}
	result.TriageCounts[p.Triage]++

	if !s.state.TryAdmit(p) {
		result.PatientsRejected++
		return
	}
	result.TotalERAdmissions++

	if s.canTreat(p) {
		head := s.state.NextWaiting()
		if head != nil {
			s.startTreatment(head, ev.Time)
		}
	}
}

func (s *Simulator) handleRelease(ev *entity.Event, result *entity.CycleResult) {
	p := ev.Patient
	result.PatientsTreated++
	result.TotalTreatmentTime += p.ServiceTime.Seconds()
	result.TotalWaitTime += p.WaitDuration().Seconds()
	p.MarkDischarged(ev.Time)

	s.state.FreeStaff(edstate.Nurses, s.req.Nurses[p.Triage])
	s.state.FreeStaff(edstate.Physicians, s.req.Physicians[p.Triage])
	s.state.FreeStaff(edstate.Residents, s.req.Residents[p.Triage])
	s.state.FreeRoom()

	if head := s.state.PeekWaiting(); head != nil && s.canTreat(head) {
		s.startTreatment(s.state.NextWaiting(), ev.Time)
	}
}
