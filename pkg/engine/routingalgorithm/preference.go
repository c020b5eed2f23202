package routingalgorithm

import (
	"fmt"

	"campusnav/indoornav/pkg/datastructure"
)

// Preference how much a route should avoid or favour walking outside.
type Preference string

const (
	PreferenceBalanced Preference = "balanced"
	PreferenceIndoor   Preference = "indoor"
	PreferenceOutdoor  Preference = "outdoor"
)

func ParsePreference(s string) (Preference, error) {
	switch Preference(s) {
	case "", PreferenceBalanced:
		return PreferenceBalanced, nil
	case PreferenceIndoor:
		return PreferenceIndoor, nil
	case PreferenceOutdoor:
		return PreferenceOutdoor, nil
	default:
		return "", fmt.Errorf("unknown path preference %q", s)
	}
}

// OutdoorMultipliers cost multiplier for edges touching an outside floor, per preference.
// balanced is always 1.
type OutdoorMultipliers struct {
	Indoor  float64 `yaml:"indoor"`
	Outdoor float64 `yaml:"outdoor"`
}

func DefaultOutdoorMultipliers() OutdoorMultipliers {
	return OutdoorMultipliers{Indoor: 1000, Outdoor: 0.001}
}

func (m OutdoorMultipliers) factor(pref Preference) float64 {
	switch pref {
	case PreferenceIndoor:
		if m.Indoor > 0 {
			return m.Indoor
		}
	case PreferenceOutdoor:
		if m.Outdoor > 0 {
			return m.Outdoor
		}
	}
	return 1
}

// EdgeCost search cost of traversing e from -> to.
type EdgeCost func(from, to datastructure.Node, e datastructure.Edge) float64

func PhysicalCost(_, _ datastructure.Node, e datastructure.Edge) float64 {
	return e.Dist
}

func (m OutdoorMultipliers) EdgeCost(pref Preference) EdgeCost {
	f := m.factor(pref)
	if f == 1 {
		return PhysicalCost
	}
	return func(from, to datastructure.Node, e datastructure.Edge) float64 {
		if isOutdoorEdge(from, to, e) {
			return e.Dist * f
		}
		return e.Dist
	}
}

func isOutdoorEdge(from, to datastructure.Node, e datastructure.Edge) bool {
	if datastructure.IsOutsideFloor(from.FloorID) || datastructure.IsOutsideFloor(to.FloorID) {
		return true
	}
	return e.ToFloorInfo != nil && datastructure.IsOutsideFloor(e.ToFloorInfo.ToFloor)
}
