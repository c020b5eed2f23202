package datastructure

// Coordinate geographic position, display only. solver never reads it.
type Coordinate struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

// Point local planar position inside a floor plan.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
