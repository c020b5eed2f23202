package guidance

import (
	"math"

	"campusnav/indoornav/pkg/datastructure"
)

var compassPoints = []string{"north", "north-east", "east", "south-east", "south", "south-west", "west", "north-west"}

/*
Bearing. sudut bearing dari p1 ke p2 dalam derajat, 0 = utara, searah jarum jam, [0,360).
https://www.movable-type.co.uk/scripts/latlong.html
*/
func Bearing(p1, p2 datastructure.Coordinate) float64 {
	dLon := degToRad(p2.Lon - p1.Lon)

	lat1 := degToRad(p1.Lat)
	lat2 := degToRad(p2.Lat)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) -
		math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	brng := radToDeg(math.Atan2(y, x))

	return math.Mod(brng+360, 360)
}

// Compass nearest of the eight compass points.
func Compass(bearing float64) string {
	idx := int(math.Round(bearing/45)) % len(compassPoints)
	return compassPoints[idx]
}

// headingFrom compass direction from path[i] toward the next node at a different spot, "" when
// the rest of the path has no usable coordinate.
func headingFrom(path []datastructure.Node, i int) string {
	from := path[i].Coordinate
	if from == (datastructure.Coordinate{}) {
		return ""
	}
	for _, n := range path[i+1:] {
		if n.Coordinate == (datastructure.Coordinate{}) || n.Coordinate == from {
			continue
		}
		return Compass(Bearing(from, n.Coordinate))
	}
	return ""
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180.0
}

func radToDeg(r float64) float64 {
	return 180.0 * r / math.Pi
}
