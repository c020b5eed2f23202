package datastructure

import "fmt"

type WaypointKind string

const (
	WaypointRoom     WaypointKind = "room"
	WaypointBuilding WaypointKind = "building"
	WaypointPosition WaypointKind = "position"
)

// Waypoint caller supplied endpoint. Kind menentukan field mana yang terisi.
type Waypoint struct {
	Kind WaypointKind

	// room
	RoomID string
	// building
	BuildingCode string
	// room & building. for building it is the default floor.
	FloorID string
	// position
	Position Coordinate
}

func NewRoomWaypoint(roomID, floorID string) Waypoint {
	return Waypoint{Kind: WaypointRoom, RoomID: roomID, FloorID: floorID}
}

func NewBuildingWaypoint(code, defaultFloorID string) Waypoint {
	return Waypoint{Kind: WaypointBuilding, BuildingCode: code, FloorID: defaultFloorID}
}

func NewPositionWaypoint(pos Coordinate) Waypoint {
	return Waypoint{Kind: WaypointPosition, Position: pos}
}

func (w Waypoint) String() string {
	switch w.Kind {
	case WaypointRoom:
		return fmt.Sprintf("room %s (%s)", w.RoomID, w.FloorID)
	case WaypointBuilding:
		return fmt.Sprintf("building %s (%s)", w.BuildingCode, w.FloorID)
	case WaypointPosition:
		return fmt.Sprintf("position %.6f,%.6f", w.Position.Lat, w.Position.Lon)
	default:
		return "unknown waypoint"
	}
}

type Route struct {
	Path     []Node  `json:"path"`
	Distance float64 `json:"distance"`
}

// RouteResult either Route or Error is set, never both.
type RouteResult struct {
	Route *Route
	Error string
}

func NewRouteResult(r Route) RouteResult {
	return RouteResult{Route: &r}
}

func NewRouteError(err error) RouteResult {
	return RouteResult{Error: err.Error()}
}

func (r RouteResult) Found() bool {
	return r.Route != nil
}

type RecommendedPath struct {
	Fastest     RouteResult
	Alternative RouteResult
}
