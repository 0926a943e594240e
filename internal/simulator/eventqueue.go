package simulator

import "github.com/edrostering/edflow/internal/entity"

// eventHeap is a container/heap priority queue over entity.Event, ordered by
// (Time, Sequence) so the loop drains events in strictly non-decreasing
// time order with FIFO tie-breaking.
type eventHeap []*entity.Event

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}
	return h[i].Sequence < h[j].Sequence
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x interface{}) {
	*h = append(*h, x.(*entity.Event))
}
func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
