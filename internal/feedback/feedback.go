// Package feedback adjusts the next cycle's demand list based on the
// rejection rate and average wait time observed in the cycle just
// completed (spec.md §4.9).
package feedback

import (
	"math"

	"github.com/edrostering/edflow/internal/entity"
)

const (
	highRejectionThreshold = 0.05
	highWaitThresholdMins  = 45
	lowRejectionThreshold  = 0.01
	lowWaitThresholdMins   = 15

	highRejectionBump = 0.15
	highWaitBump      = 0.10
	reliefFactor       = 0.90
)

// Factor computes the multiplicative demand adjustment for the next cycle
// from the just-completed cycle's outcome.
func Factor(result entity.CycleResult) float64 {
	rejectionRate := result.RejectionRate()
	avgWaitMinutes := result.AvgWaitMinutes()

	if rejectionRate > highRejectionThreshold || avgWaitMinutes > highWaitThresholdMins {
		factor := 1.0
		if rejectionRate > highRejectionThreshold {
			factor += highRejectionBump
		}
		if avgWaitMinutes > highWaitThresholdMins {
			factor += highWaitBump
		}
		return factor
	}
	if rejectionRate < lowRejectionThreshold && avgWaitMinutes < lowWaitThresholdMins {
		return reliefFactor
	}
	return 1.0
}

// Adjust scales every demand record's RequiredCount by factor, ceiling the
// result and flooring it at 1 whenever the original count was greater than 1
// (spec.md §4.9's "don't let demand collapse to zero" rule). An original
// count of 1 can still become 0 under a factor of 0.
func Adjust(demand []entity.DemandRecord, factor float64) []entity.DemandRecord {
	adjusted := make([]entity.DemandRecord, len(demand))
	for i, d := range demand {
		adjusted[i] = d
		newCount := int(math.Ceil(float64(d.RequiredCount) * factor))
		if d.RequiredCount > 1 && newCount == 0 {
			newCount = 1
		}
		adjusted[i].RequiredCount = newCount
	}
	return adjusted
}
