package elevstrategy

import (
	"slices"

	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevconsts"
)

// ByOrderMerge serves floors strictly in the order they were requested. It
// never reorders or deduplicates the queue, it only appends.
//
// Under adversarial request patterns the queue can keep growing with
// duplicate floors; nothing caps it.
type ByOrderMerge struct{}

func (ByOrderMerge) Merge(_ elevconsts.State, _ int, queue []int, fromFloor, toFloor int) []int {
	fromIdx := slices.Index(queue, fromFloor)
	toIdx := slices.Index(queue, toFloor)

	switch {
	case fromIdx != -1 && toIdx != -1:
		// Both queued. The destination must still come after the pickup.
		if toIdx < fromIdx {
			queue = append(queue, toFloor)
		}
	case fromIdx == -1:
		// toFloor is appended even if already queued, it has to follow fromFloor.
		queue = append(queue, fromFloor, toFloor)
	default:
		queue = append(queue, toFloor)
	}

	return queue
}
