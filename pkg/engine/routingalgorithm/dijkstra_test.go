package routingalgorithm_test

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"campusnav/indoornav/pkg/datastructure"
	"campusnav/indoornav/pkg/engine/graphloader"
	"campusnav/indoornav/pkg/engine/routingalgorithm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

type arc struct {
	from, to string
	dist     float64
}

func floorGraph(arcs ...arc) datastructure.FloorGraph {
	g := datastructure.FloorGraph{}
	for _, a := range arcs {
		for _, id := range []string{a.from, a.to} {
			if _, ok := g[id]; !ok {
				g[id] = datastructure.Node{RoomID: "room-" + id, Neighbors: map[string]datastructure.Edge{}}
			}
		}
		g[a.from].Neighbors[a.to] = datastructure.Edge{Dist: a.dist}
	}
	return g
}

// undirected mirrors every arc, the way floor data models two-way corridors.
func undirected(arcs ...arc) []arc {
	out := make([]arc, 0, 2*len(arcs))
	for _, a := range arcs {
		out = append(out, a, arc{a.to, a.from, a.dist})
	}
	return out
}

func merged(floors map[string]datastructure.FloorGraph, order ...string) *graphloader.MergedGraph {
	g := graphloader.NewMergedGraph()
	for _, f := range order {
		g.AddFloor(f, floors[f])
	}
	return g
}

func pathIDs(r datastructure.Route) []string {
	ids := make([]string, len(r.Path))
	for i, n := range r.Path {
		ids[i] = n.ID
	}
	return ids
}

func TestShortestPathDijkstra(t *testing.T) {
	rt := routingalgorithm.NewRouteAlgorithm(routingalgorithm.DefaultOutdoorMultipliers())

	t.Run("takes the detour when it is shorter", func(t *testing.T) {
		g := merged(map[string]datastructure.FloorGraph{
			"X-1": floorGraph(undirected(arc{"A", "B", 3}, arc{"B", "C", 4}, arc{"A", "C", 10})...),
		}, "X-1")

		route, err := rt.ShortestPathDijkstra(g, "A", "C", routingalgorithm.PreferenceBalanced)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, pathIDs(route))
		assert.Equal(t, 7.0, route.Distance)
	})

	t.Run("same start and end", func(t *testing.T) {
		g := merged(map[string]datastructure.FloorGraph{"X-1": floorGraph(arc{"A", "B", 3})}, "X-1")
		route, err := rt.ShortestPathDijkstra(g, "A", "A", routingalgorithm.PreferenceBalanced)
		require.NoError(t, err)
		assert.Equal(t, []string{"A"}, pathIDs(route))
		assert.Zero(t, route.Distance)
	})

	t.Run("disconnected", func(t *testing.T) {
		g := merged(map[string]datastructure.FloorGraph{
			"X-1": floorGraph(arc{"A", "B", 1}, arc{"C", "D", 1}),
		}, "X-1")
		route, err := rt.ShortestPathDijkstra(g, "A", "D", routingalgorithm.PreferenceBalanced)
		assert.ErrorIs(t, err, routingalgorithm.ErrPathNotFound)
		assert.EqualError(t, err, "Path not found")
		assert.Empty(t, route.Path)
	})

	t.Run("edges are directed as stored", func(t *testing.T) {
		g := merged(map[string]datastructure.FloorGraph{"X-1": floorGraph(arc{"A", "B", 1})}, "X-1")
		_, err := rt.ShortestPathDijkstra(g, "B", "A", routingalgorithm.PreferenceBalanced)
		assert.ErrorIs(t, err, routingalgorithm.ErrPathNotFound)
	})

	t.Run("unknown endpoint", func(t *testing.T) {
		g := merged(map[string]datastructure.FloorGraph{"X-1": floorGraph(arc{"A", "B", 1})}, "X-1")
		_, err := rt.ShortestPathDijkstra(g, "A", "Z", routingalgorithm.PreferenceBalanced)
		assert.ErrorIs(t, err, routingalgorithm.ErrNodeNotInGraph)
	})

	t.Run("neighbor on an unloaded floor is ignored", func(t *testing.T) {
		fg := floorGraph(undirected(arc{"A", "B", 1})...)
		fg["A"].Neighbors["ghost"] = datastructure.Edge{Dist: 0.1, ToFloorInfo: &datastructure.Transition{ToFloor: "X-9", Type: "stairs"}}
		g := merged(map[string]datastructure.FloorGraph{"X-1": fg}, "X-1")

		route, err := rt.ShortestPathDijkstra(g, "A", "B", routingalgorithm.PreferenceBalanced)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, pathIDs(route))
	})

	t.Run("equal cost ties resolve in insertion order", func(t *testing.T) {
		g := merged(map[string]datastructure.FloorGraph{
			"X-1": floorGraph(arc{"A", "C", 1}, arc{"A", "B", 1}, arc{"B", "D", 1}, arc{"C", "D", 1}),
		}, "X-1")
		for i := 0; i < 20; i++ {
			route, err := rt.ShortestPathDijkstra(g, "A", "D", routingalgorithm.PreferenceBalanced)
			require.NoError(t, err)
			assert.Equal(t, []string{"A", "B", "D"}, pathIDs(route))
		}
	})

	t.Run("crosses floors through the transition edge once", func(t *testing.T) {
		x1 := floorGraph(undirected(arc{"a", "s1", 5})...)
		x1["s1"].Neighbors["s2"] = datastructure.Edge{Dist: 12, ToFloorInfo: &datastructure.Transition{ToFloor: "X-2", Type: "stairs"}}
		x2 := floorGraph(undirected(arc{"s2", "b", 6})...)
		x2["s2"].Neighbors["s1"] = datastructure.Edge{Dist: 12, ToFloorInfo: &datastructure.Transition{ToFloor: "X-1", Type: "stairs"}}

		g := merged(map[string]datastructure.FloorGraph{"X-1": x1, "X-2": x2}, "X-1", "X-2")
		route, err := rt.ShortestPathDijkstra(g, "a", "b", routingalgorithm.PreferenceBalanced)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "s1", "s2", "b"}, pathIDs(route))
		assert.Equal(t, 23.0, route.Distance)

		changes := 0
		for i := 1; i < len(route.Path); i++ {
			if route.Path[i].FloorID != route.Path[i-1].FloorID {
				changes++
			}
		}
		assert.Equal(t, 1, changes)
	})

	t.Run("indoor preference avoids the outside shortcut", func(t *testing.T) {
		inside := floorGraph(undirected(arc{"a", "m", 50}, arc{"m", "b", 50})...)
		inside["a"].Neighbors["o"] = datastructure.Edge{Dist: 10, ToFloorInfo: &datastructure.Transition{ToFloor: "outside-1", Type: "outside"}}
		outside := datastructure.FloorGraph{
			"o": {Neighbors: map[string]datastructure.Edge{
				"b": {Dist: 10, ToFloorInfo: &datastructure.Transition{ToFloor: "X-1", Type: "outside"}},
			}},
		}
		g := merged(map[string]datastructure.FloorGraph{"X-1": inside, "outside-1": outside}, "X-1", "outside-1")

		route, err := rt.ShortestPathDijkstra(g, "a", "b", routingalgorithm.PreferenceBalanced)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "o", "b"}, pathIDs(route))

		route, err = rt.ShortestPathDijkstra(g, "a", "b", routingalgorithm.PreferenceIndoor)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "m", "b"}, pathIDs(route))
		assert.Equal(t, 100.0, route.Distance)
	})
}

// bruteForce minimum over every simple path.
func bruteForce(g datastructure.FloorGraph, from, to string) float64 {
	best := math.Inf(1)
	onPath := map[string]bool{}
	var dfs func(id string, d float64)
	dfs = func(id string, d float64) {
		if id == to {
			best = math.Min(best, d)
			return
		}
		onPath[id] = true
		for nID, e := range g[id].Neighbors {
			if !onPath[nID] {
				dfs(nID, d+e.Dist)
			}
		}
		onPath[id] = false
	}
	dfs(from, 0)
	return best
}

func randomFloor(rnd *rand.Rand, n int) (datastructure.FloorGraph, []arc) {
	var arcs []arc
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j && rnd.Float64() < 0.3 {
				arcs = append(arcs, arc{fmt.Sprintf("n%d", i), fmt.Sprintf("n%d", j), float64(rnd.Intn(20))})
			}
		}
	}
	g := floorGraph(arcs...)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("n%d", i)
		if _, ok := g[id]; !ok {
			g[id] = datastructure.Node{Neighbors: map[string]datastructure.Edge{}}
		}
	}
	return g, arcs
}

func TestShortestPathIsOptimal(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	rt := routingalgorithm.NewRouteAlgorithm(routingalgorithm.DefaultOutdoorMultipliers())

	for trial := 0; trial < 40; trial++ {
		n := 3 + rnd.Intn(5)
		fg, arcs := randomFloor(rnd, n)
		g := merged(map[string]datastructure.FloorGraph{"R-1": fg}, "R-1")

		oracle := simple.NewWeightedDirectedGraph(0, math.Inf(1))
		for i := 0; i < n; i++ {
			oracle.AddNode(simple.Node(int64(i)))
		}
		for _, a := range arcs {
			var f, to int64
			fmt.Sscanf(a.from, "n%d", &f)
			fmt.Sscanf(a.to, "n%d", &to)
			oracle.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(f), T: simple.Node(to), W: a.dist})
		}

		for s := 0; s < n; s++ {
			shortest := path.DijkstraFrom(simple.Node(int64(s)), oracle)
			for e := 0; e < n; e++ {
				from, to := fmt.Sprintf("n%d", s), fmt.Sprintf("n%d", e)
				want := bruteForce(fg, from, to)

				route, err := rt.ShortestPathDijkstra(g, from, to, routingalgorithm.PreferenceBalanced)
				if math.IsInf(want, 1) {
					assert.ErrorIs(t, err, routingalgorithm.ErrPathNotFound, "trial %d %s->%s", trial, from, to)
					continue
				}
				require.NoError(t, err, "trial %d %s->%s", trial, from, to)
				assert.Equal(t, want, route.Distance, "trial %d %s->%s", trial, from, to)
				assert.Equal(t, shortest.WeightTo(int64(e)), route.Distance, "gonum trial %d %s->%s", trial, from, to)

				sum := 0.0
				for i := 1; i < len(route.Path); i++ {
					sum += route.Path[i-1].Neighbors[route.Path[i].ID].Dist
				}
				assert.Equal(t, route.Distance, sum)

				again, err := rt.ShortestPathDijkstra(g, from, to, routingalgorithm.PreferenceBalanced)
				require.NoError(t, err)
				assert.Equal(t, route.Distance, again.Distance)
				assert.Equal(t, pathIDs(route), pathIDs(again))
			}
		}
	}
}

func TestParsePreference(t *testing.T) {
	p, err := routingalgorithm.ParsePreference("")
	require.NoError(t, err)
	assert.Equal(t, routingalgorithm.PreferenceBalanced, p)

	p, err = routingalgorithm.ParsePreference("indoor")
	require.NoError(t, err)
	assert.Equal(t, routingalgorithm.PreferenceIndoor, p)

	_, err = routingalgorithm.ParsePreference("scenic")
	assert.Error(t, err)
}
