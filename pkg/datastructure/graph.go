package datastructure

import (
	"sort"
	"strings"
)

// OutsideFloorPrefix prefix floor id untuk jalan setapak di luar gedung (outside-1, outside-2, ...).
const OutsideFloorPrefix = "outside"

// Transition is present on an edge only when traversing it leaves the current floor.
type Transition struct {
	ToFloor string `json:"toFloor"`
	Type    string `json:"type"` // stairs, elevator, outside, ...
}

type Edge struct {
	Dist        float64     `json:"dist"`
	ToFloorInfo *Transition `json:"toFloorInfo,omitempty"`
}

type Node struct {
	ID         string          `json:"id,omitempty"`
	Pos        Point           `json:"pos"`
	Coordinate Coordinate      `json:"coordinate"`
	RoomID     string          `json:"roomId,omitempty"`
	FloorID    string          `json:"floor,omitempty"`
	Neighbors  map[string]Edge `json:"neighbors"`
}

// NeighborIDs returns neighbor ids in ascending order so that expansion order is reproducible.
func (n *Node) NeighborIDs() []string {
	ids := make([]string, 0, len(n.Neighbors))
	for id := range n.Neighbors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ConnectsInto reports whether any outgoing edge of n leads onto a floor of the given building.
func (n *Node) ConnectsInto(buildingCode string) bool {
	for _, id := range n.NeighborIDs() {
		tr := n.Neighbors[id].ToFloorInfo
		if tr != nil && BuildingCode(tr.ToFloor) == buildingCode {
			return true
		}
	}
	return false
}

// FloorGraph node id -> node, scoped ke satu floor id (BUILDING-LEVEL atau outside-N).
type FloorGraph map[string]Node

// SortedIDs node ids of the floor graph in ascending order.
func (g FloorGraph) SortedIDs() []string {
	ids := make([]string, 0, len(g))
	for id := range g {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FloorAdjacency floor id -> floor ids reachable through one transition.
type FloorAdjacency map[string][]string

func IsOutsideFloor(floorID string) bool {
	return strings.HasPrefix(floorID, OutsideFloorPrefix)
}

// BuildingCode returns the building part of a BUILDING-LEVEL floor id.
func BuildingCode(floorID string) string {
	code, _, found := strings.Cut(floorID, "-")
	if !found {
		return floorID
	}
	return code
}
