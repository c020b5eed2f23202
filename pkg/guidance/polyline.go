package guidance

import (
	"campusnav/indoornav/pkg/datastructure"

	"github.com/twpayne/go-polyline"
)

// RenderPath encoded polyline of the route's map coordinates.
func RenderPath(path []datastructure.Node) string {
	coords := make([][]float64, 0, len(path))
	for _, p := range path {
		if p.Coordinate == (datastructure.Coordinate{}) {
			continue
		}
		coords = append(coords, []float64{p.Coordinate.Lat, p.Coordinate.Lon})
	}
	return string(polyline.EncodeCoords(coords))
}
