// Package edstate holds the mutable state of one running ED simulation: the
// bounded waiting-room heap, the treatment-room counter, and the pooled
// staff counters that gate treatment start. It has no notion of time or
// events; the simulator package drives it.
package edstate

import (
	"container/heap"

	"github.com/edrostering/edflow/internal/entity"
)

// StaffGroup names one of the three pooled counters used for treatment
// gating.
type StaffGroup int

const (
	Nurses StaffGroup = iota
	Physicians
	Residents
)

// waitingItem wraps a patient with the insertion sequence used to break
// priority ties FIFO.
type waitingItem struct {
	patient  *entity.Patient
	priority int
	sequence uint64
}

// waitingHeap is a container/heap priority queue ordered by (priority,
// sequence): lower priority value (more urgent triage) pops first; among
// equal priorities, earlier insertion pops first.
type waitingHeap []*waitingItem

func (h waitingHeap) Len() int { return len(h) }
func (h waitingHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].sequence < h[j].sequence
}
func (h waitingHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *waitingHeap) Push(x interface{}) {
	*h = append(*h, x.(*waitingItem))
}
func (h *waitingHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// State is the ED's runtime resource model: a bounded waiting room, a
// treatment-room counter, and three pooled staff counters.
type State struct {
	waiting  waitingHeap
	waitCap  int
	sequence uint64

	roomsOccupied int
	roomsTotal    int

	staff map[StaffGroup]float64
}

// StaffCounts gives the initial pooled counter value for each group.
type StaffCounts struct {
	Nurses     float64
	Physicians float64
	Residents  float64
}

// InitialStaffCounts derives the pooled-gating counters from configured
// per-role headcounts, matching the source's aggregation (spec.md §4.4/§9):
// Nurses sums every nurse-class role, Physicians counts only attending
// physicians, Residents counts only resident physicians. Surgeons,
// cardiologists and advanced-practice nurse roles are staffed and
// scheduled but never pooled for treatment gating.
func InitialStaffCounts(counts map[entity.Role]int) StaffCounts {
	sc := StaffCounts{}
	for _, role := range entity.RolesInClass(entity.RoleClassNurse) {
		sc.Nurses += float64(counts[role])
	}
	sc.Physicians = float64(counts[entity.RoleAttendingPhysician])
	sc.Residents = float64(counts[entity.RoleResidentPhysician])
	return sc
}

// New builds an ED state with waitingCapacity waiting slots, roomsTotal
// treatment rooms, and the given initial pooled staff counters.
func New(waitingCapacity, roomsTotal int, initial StaffCounts) *State {
	s := &State{
		waitCap:    waitingCapacity,
		roomsTotal: roomsTotal,
		staff: map[StaffGroup]float64{
			Nurses:     initial.Nurses,
			Physicians: initial.Physicians,
			Residents:  initial.Residents,
		},
	}
	heap.Init(&s.waiting)
	return s
}

// TryAdmit enqueues patient into the waiting heap iff under capacity.
// Returns false (with no side effects) if the waiting room is full.
func (s *State) TryAdmit(p *entity.Patient) bool {
	if len(s.waiting) >= s.waitCap {
		return false
	}
	s.sequence++
	heap.Push(&s.waiting, &waitingItem{patient: p, priority: p.Triage.Priority(), sequence: s.sequence})
	return true
}

// NextWaiting pops the highest-priority (most urgent, then earliest
// admitted) patient, or nil if the waiting room is empty.
func (s *State) NextWaiting() *entity.Patient {
	if len(s.waiting) == 0 {
		return nil
	}
	item := heap.Pop(&s.waiting).(*waitingItem)
	return item.patient
}

// PeekWaiting returns the head of the waiting heap without removing it, or
// nil if empty.
func (s *State) PeekWaiting() *entity.Patient {
	if len(s.waiting) == 0 {
		return nil
	}
	return s.waiting[0].patient
}

// WaitingLen reports how many patients are currently waiting.
func (s *State) WaitingLen() int {
	return len(s.waiting)
}

// HasRoom reports whether a treatment room is free.
func (s *State) HasRoom() bool {
	return s.roomsOccupied < s.roomsTotal
}

// OccupyRoom increments the occupied-room counter. A call past capacity is
// ignored rather than erroring, per spec.md §4.4.
func (s *State) OccupyRoom() {
	if s.roomsOccupied < s.roomsTotal {
		s.roomsOccupied++
	}
}

// FreeRoom decrements the occupied-room counter, floored at zero.
func (s *State) FreeRoom() {
	if s.roomsOccupied > 0 {
		s.roomsOccupied--
	}
}

// OccupiedRooms reports how many treatment rooms are currently in use.
func (s *State) OccupiedRooms() int {
	return s.roomsOccupied
}

// TotalRooms reports the total configured treatment-room count.
func (s *State) TotalRooms() int {
	return s.roomsTotal
}

// AvailableStaff returns the current free count for a pooled group.
func (s *State) AvailableStaff(group StaffGroup) float64 {
	return s.staff[group]
}

// OccupyStaff decrements a pooled counter by n, floored at zero (an
// over-decrement is a caller bug but must not corrupt downstream gating).
func (s *State) OccupyStaff(group StaffGroup, n float64) {
	remaining := s.staff[group] - n
	if remaining < 0 {
		remaining = 0
	}
	s.staff[group] = remaining
}

// FreeStaff increments a pooled counter by n.
func (s *State) FreeStaff(group StaffGroup, n float64) {
	s.staff[group] += n
}
