package resolver_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"campusnav/indoornav/pkg/datastructure"
	"campusnav/indoornav/pkg/engine/graphloader"
	"campusnav/indoornav/pkg/engine/resolver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type buildings map[string][]string

func (b buildings) EntranceRooms(ctx context.Context, code string) ([]string, error) {
	rooms, ok := b[code]
	if !ok {
		return nil, datastructure.ErrBuildingNotFound
	}
	return rooms, nil
}

type brokenBuildings struct{}

func (brokenBuildings) EntranceRooms(ctx context.Context, code string) ([]string, error) {
	return nil, errors.New("decompress: corrupt value")
}

func campusGraph() *graphloader.MergedGraph {
	g := graphloader.NewMergedGraph()
	g.AddFloor("outside-1", datastructure.FloorGraph{
		"o1": {RoomID: "lawn", Neighbors: map[string]datastructure.Edge{
			"w1": {Dist: 10, ToFloorInfo: &datastructure.Transition{ToFloor: "WEH-1", Type: "outside"}},
		}},
		"o2": {RoomID: "weh-outline", Neighbors: map[string]datastructure.Edge{"o1": {Dist: 3}}},
	})
	g.AddFloor("GHC-4", datastructure.FloorGraph{
		"g1": {RoomID: "GHC-4401"},
		"g2": {RoomID: "GHC-4401"},
	})
	return g
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	g := campusGraph()

	t.Run("room resolves to the first node in that room", func(t *testing.T) {
		n, err := resolver.NewResolver(nil, nil).Resolve(ctx, g, datastructure.NewRoomWaypoint("GHC-4401", "GHC-4"), resolver.Start)
		require.NoError(t, err)
		assert.Equal(t, "g1", n.ID)
		assert.Equal(t, "GHC-4", n.FloorID)
	})

	t.Run("unknown room", func(t *testing.T) {
		r := resolver.NewResolver(nil, nil)
		_, err := r.Resolve(ctx, g, datastructure.NewRoomWaypoint("nope", "GHC-4"), resolver.Start)
		assert.ErrorIs(t, err, resolver.ErrStartNotFound)
		assert.EqualError(t, err, "Start room not found")

		_, err = r.Resolve(ctx, g, datastructure.NewRoomWaypoint("nope", "GHC-4"), resolver.End)
		assert.EqualError(t, err, "End room not found")
	})

	t.Run("building through outline room", func(t *testing.T) {
		r := resolver.NewResolver(buildings{"WEH": {"weh-outline"}}, nil)
		n, err := r.Resolve(ctx, g, datastructure.NewBuildingWaypoint("WEH", "WEH-1"), resolver.End)
		require.NoError(t, err)
		assert.Equal(t, "o2", n.ID)
	})

	t.Run("building falls back to a node connecting into it", func(t *testing.T) {
		for name, r := range map[string]*resolver.Resolver{
			"no index":        resolver.NewResolver(nil, nil),
			"unknown code":    resolver.NewResolver(buildings{}, nil),
			"room not loaded": resolver.NewResolver(buildings{"WEH": {"elsewhere"}}, nil),
		} {
			n, err := r.Resolve(ctx, g, datastructure.NewBuildingWaypoint("WEH", "WEH-1"), resolver.End)
			require.NoError(t, err, name)
			assert.Equal(t, "o1", n.ID, name)
		}
	})

	t.Run("building with nothing pointing at it", func(t *testing.T) {
		_, err := resolver.NewResolver(nil, nil).Resolve(ctx, g, datastructure.NewBuildingWaypoint("CUC", "CUC-1"), resolver.Start)
		assert.ErrorIs(t, err, resolver.ErrStartNotFound)
	})

	t.Run("building on its own floor without transitions into it", func(t *testing.T) {
		g := graphloader.NewMergedGraph()
		g.AddFloor("WEH-1", datastructure.FloorGraph{
			"w1": {RoomID: "WEH-100", Neighbors: map[string]datastructure.Edge{
				"o1": {Dist: 5, ToFloorInfo: &datastructure.Transition{ToFloor: "outside-1", Type: "outside"}},
			}},
			"w2": {RoomID: "WEH-101"},
		})

		n, err := resolver.NewResolver(buildings{}, nil).Resolve(ctx, g, datastructure.NewBuildingWaypoint("WEH", "WEH-1"), resolver.End)
		require.NoError(t, err)
		assert.Equal(t, "w1", n.ID)
		assert.Equal(t, "WEH-1", n.FloorID)

		_, err = resolver.NewResolver(nil, nil).Resolve(ctx, g, datastructure.NewBuildingWaypoint("WE", "WE-1"), resolver.End)
		assert.ErrorIs(t, err, resolver.ErrEndNotFound)
	})

	t.Run("broken building index is logged and skipped", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		n, err := resolver.NewResolver(brokenBuildings{}, logger).Resolve(ctx, g, datastructure.NewBuildingWaypoint("WEH", "WEH-1"), resolver.End)
		require.NoError(t, err)
		assert.Equal(t, "o1", n.ID)
		assert.Contains(t, buf.String(), "corrupt value")
		assert.Contains(t, buf.String(), "building=WEH")
	})

	t.Run("unknown building is not logged", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		_, err := resolver.NewResolver(buildings{}, logger).Resolve(ctx, g, datastructure.NewBuildingWaypoint("WEH", "WEH-1"), resolver.End)
		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})

	t.Run("position never resolves", func(t *testing.T) {
		_, err := resolver.NewResolver(nil, nil).Resolve(ctx, g, datastructure.NewPositionWaypoint(datastructure.NewCoordinate(40.44, -79.94)), resolver.End)
		assert.ErrorIs(t, err, resolver.ErrEndNotFound)
	})

	t.Run("empty graph", func(t *testing.T) {
		_, err := resolver.NewResolver(nil, nil).Resolve(ctx, graphloader.NewMergedGraph(), datastructure.NewRoomWaypoint("GHC-4401", "GHC-4"), resolver.Start)
		assert.ErrorIs(t, err, resolver.ErrStartNotFound)
	})
}
