package guidance_test

import (
	"testing"

	"campusnav/indoornav/pkg/datastructure"
	"campusnav/indoornav/pkg/guidance"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(id, floor, room string, lat, lon float64, next string, e datastructure.Edge) datastructure.Node {
	n := datastructure.Node{
		ID: id, FloorID: floor, RoomID: room,
		Coordinate: datastructure.NewCoordinate(lat, lon),
		Neighbors:  map[string]datastructure.Edge{},
	}
	if next != "" {
		n.Neighbors[next] = e
	}
	return n
}

func samplePath() []datastructure.Node {
	return []datastructure.Node{
		node("a", "GHC-4", "GHC-4401", 40.44350, -79.94460, "s", datastructure.Edge{Dist: 5}),
		node("s", "GHC-4", "", 40.44352, -79.94460, "t", datastructure.Edge{Dist: 10, ToFloorInfo: &datastructure.Transition{ToFloor: "GHC-5", Type: "stairs"}}),
		node("t", "GHC-5", "", 40.44352, -79.94460, "d", datastructure.Edge{Dist: 2, ToFloorInfo: &datastructure.Transition{ToFloor: "outside-1", Type: "outside"}}),
		node("d", "outside-1", "", 40.44360, -79.94440, "w", datastructure.Edge{Dist: 40, ToFloorInfo: &datastructure.Transition{ToFloor: "WEH-5", Type: "outside"}}),
		node("w", "WEH-5", "WEH-5310", 40.44380, -79.94410, "", datastructure.Edge{}),
	}
}

func TestGetDirections(t *testing.T) {
	t.Run("floor changes along the path", func(t *testing.T) {
		ins := guidance.GetDirections(samplePath())
		require.Len(t, ins, 5)

		signs := make([]int, len(ins))
		for i, in := range ins {
			signs[i] = in.Sign
		}
		assert.Equal(t, []int{guidance.START, guidance.TAKE_STAIRS, guidance.EXIT_BUILDING, guidance.ENTER_BUILDING, guidance.FINISH}, signs)
		assert.Equal(t, "north", ins[0].Heading)
		assert.Equal(t, "Take the stairs to GHC-5", ins[1].Text)
		assert.Equal(t, 15.0, ins[1].Distance)
		assert.Equal(t, "Exit GHC", ins[2].Text)
		assert.Equal(t, "Enter WEH on floor WEH-5", ins[3].Text)
		assert.Equal(t, "Arrive at WEH-5310 (WEH-5)", ins[4].Text)
	})

	t.Run("single node path", func(t *testing.T) {
		ins := guidance.GetDirections(samplePath()[:1])
		require.Len(t, ins, 2)
		assert.Equal(t, guidance.START, ins[0].Sign)
		assert.Equal(t, guidance.FINISH, ins[1].Sign)
		assert.Zero(t, ins[1].Distance)
		assert.Empty(t, ins[0].Heading)
	})

	t.Run("empty path", func(t *testing.T) {
		assert.Empty(t, guidance.GetDirections(nil))
	})
}

func TestRenderPathAndGeoLength(t *testing.T) {
	path := samplePath()
	assert.NotEmpty(t, guidance.RenderPath(path))
	assert.Empty(t, guidance.RenderPath([]datastructure.Node{{ID: "x"}}))

	l := guidance.GeoLength(path)
	assert.Greater(t, l, 30.0)
	assert.Less(t, l, 80.0)
	assert.Zero(t, guidance.GeoLength(path[:1]))
}

func TestBearing(t *testing.T) {
	origin := datastructure.NewCoordinate(40.4435, -79.9446)
	tests := []struct {
		name string
		to   datastructure.Coordinate
		want string
	}{
		{"north", datastructure.NewCoordinate(40.4445, -79.9446), "north"},
		{"east", datastructure.NewCoordinate(40.4435, -79.9436), "east"},
		{"south", datastructure.NewCoordinate(40.4425, -79.9446), "south"},
		{"west", datastructure.NewCoordinate(40.4435, -79.9456), "west"},
		{"north-east", datastructure.NewCoordinate(40.4445, -79.9433), "north-east"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := guidance.Bearing(origin, tt.to)
			assert.GreaterOrEqual(t, b, 0.0)
			assert.Less(t, b, 360.0)
			assert.Equal(t, tt.want, guidance.Compass(b))
		})
	}
	assert.Equal(t, "north", guidance.Compass(359))
}
