package elevstrategy

import (
	"fmt"
	"slices"

	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevconsts"
	"github.com/szymonmasternak/TTK4145-Elevator-Simulator/internal/elevmodel"
)

const (
	NearestHeadingTowardsName = "nearest-heading-towards"
	RandomSelectionName       = "random"
	SimpleEmbarkationName     = "simple"
	ByOrderMergeName          = "by-order"
)

var elevatorSelections = map[string]elevmodel.ElevatorSelectionStrategy{
	NearestHeadingTowardsName: NearestHeadingTowards{},
	RandomSelectionName:       RandomSelection{},
}

var embarkations = map[string]elevmodel.EmbarkationStrategy{
	SimpleEmbarkationName: SimpleEmbarkation{},
}

var floorQueueMerges = map[string]elevmodel.FloorQueueMergeStrategy{
	ByOrderMergeName: ByOrderMerge{},
}

func LookupElevatorSelection(name string) (elevmodel.ElevatorSelectionStrategy, error) {
	return lookup(elevatorSelections, "elevator selection", name)
}

func LookupEmbarkation(name string) (elevmodel.EmbarkationStrategy, error) {
	return lookup(embarkations, "embarkation", name)
}

func LookupFloorQueueMerge(name string) (elevmodel.FloorQueueMergeStrategy, error) {
	return lookup(floorQueueMerges, "floor queue merge", name)
}

// Name returns the registered name of a strategy, or its Go type when it is not registered.
func Name(strategy any) string {
	switch s := strategy.(type) {
	case NearestHeadingTowards:
		return NearestHeadingTowardsName
	case RandomSelection:
		return RandomSelectionName
	case SimpleEmbarkation:
		return SimpleEmbarkationName
	case ByOrderMerge:
		return ByOrderMergeName
	default:
		return fmt.Sprintf("%T", s)
	}
}

func lookup[T any](registry map[string]T, kind, name string) (T, error) {
	strategy, ok := registry[name]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: unknown %s strategy %q, expected one of %v",
			elevconsts.ErrInvalidParameter, kind, name, names(registry))
	}
	return strategy, nil
}

func names[T any](registry map[string]T) []string {
	keys := make([]string, 0, len(registry))
	for key := range registry {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
