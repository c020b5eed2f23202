// Package guidance turns a computed route into things a person can follow: floor-change
// directions, a map polyline and its length on the map.
package guidance

import (
	"fmt"

	"campusnav/indoornav/pkg/datastructure"
	"campusnav/indoornav/pkg/util"
)

const (
	START          = 101
	FINISH         = 4
	TAKE_STAIRS    = 10
	TAKE_ELEVATOR  = 11
	CHANGE_FLOOR   = 12
	EXIT_BUILDING  = 13
	ENTER_BUILDING = 14
)

type Instruction struct {
	Sign     int                      `json:"sign"`
	Text     string                   `json:"text"`
	FloorID  string                   `json:"floor"`
	Point    datastructure.Coordinate `json:"point"`
	Distance float64                  `json:"distance"` // walked since the previous instruction
	Heading  string                   `json:"heading,omitempty"`
}

// GetDirections one instruction at the start, one per floor change along the path, one at the end.
func GetDirections(path []datastructure.Node) []Instruction {
	if len(path) == 0 {
		return []Instruction{}
	}

	first := path[0]
	ins := []Instruction{{
		Sign:    START,
		Text:    fmt.Sprintf("Start at %s", describe(first)),
		FloorID: first.FloorID,
		Point:   first.Coordinate,
		Heading: headingFrom(path, 0),
	}}

	walked := 0.0
	for i := 0; i+1 < len(path); i++ {
		from, to := path[i], path[i+1]
		edge := from.Neighbors[to.ID]
		walked += edge.Dist

		if edge.ToFloorInfo == nil && from.FloorID == to.FloorID {
			continue
		}
		sign, text := floorChange(from, to, edge.ToFloorInfo)
		ins = append(ins, Instruction{
			Sign:     sign,
			Text:     text,
			FloorID:  to.FloorID,
			Point:    from.Coordinate,
			Distance: util.RoundFloat(walked, 2),
		})
		walked = 0
	}

	last := path[len(path)-1]
	ins = append(ins, Instruction{
		Sign:     FINISH,
		Text:     fmt.Sprintf("Arrive at %s", describe(last)),
		FloorID:  last.FloorID,
		Point:    last.Coordinate,
		Distance: util.RoundFloat(walked, 2),
	})
	return ins
}

func floorChange(from, to datastructure.Node, tr *datastructure.Transition) (int, string) {
	target := to.FloorID
	kind := ""
	if tr != nil {
		kind = tr.Type
		if tr.ToFloor != "" {
			target = tr.ToFloor
		}
	}

	switch {
	case datastructure.IsOutsideFloor(target) && !datastructure.IsOutsideFloor(from.FloorID):
		return EXIT_BUILDING, fmt.Sprintf("Exit %s", datastructure.BuildingCode(from.FloorID))
	case datastructure.IsOutsideFloor(from.FloorID) && !datastructure.IsOutsideFloor(target):
		return ENTER_BUILDING, fmt.Sprintf("Enter %s on floor %s", datastructure.BuildingCode(target), target)
	case kind == "stairs":
		return TAKE_STAIRS, fmt.Sprintf("Take the stairs to %s", target)
	case kind == "elevator":
		return TAKE_ELEVATOR, fmt.Sprintf("Take the elevator to %s", target)
	default:
		return CHANGE_FLOOR, fmt.Sprintf("Continue to %s", target)
	}
}

func describe(n datastructure.Node) string {
	if n.RoomID != "" {
		return fmt.Sprintf("%s (%s)", n.RoomID, n.FloorID)
	}
	return n.FloorID
}
