package guidance

import (
	"campusnav/indoornav/pkg/datastructure"

	"github.com/golang/geo/s2"
)

const earthRadiusM = 6371008.8

// GeoLength panjang rute di peta (meter), dari coordinate tiap node. nodes without a coordinate are skipped.
func GeoLength(path []datastructure.Node) float64 {
	total := 0.0
	var prev *s2.LatLng
	for _, n := range path {
		if n.Coordinate == (datastructure.Coordinate{}) {
			continue
		}
		ll := s2.LatLngFromDegrees(n.Coordinate.Lat, n.Coordinate.Lon)
		if prev != nil {
			total += prev.Distance(ll).Radians() * earthRadiusM
		}
		prev = &ll
	}
	return total
}
