// Package routingalgorithm shortest path search over a merged indoor graph.
package routingalgorithm

import (
	"container/heap"
	"errors"
	"fmt"

	"campusnav/indoornav/pkg/datastructure"
)

var (
	ErrPathNotFound   = errors.New("Path not found")
	ErrNodeNotInGraph = errors.New("node not in graph")
)

type Graph interface {
	Node(id string) (datastructure.Node, bool)
}

type RouteAlgorithm struct {
	outdoor OutdoorMultipliers
}

func NewRouteAlgorithm(outdoor OutdoorMultipliers) *RouteAlgorithm {
	return &RouteAlgorithm{outdoor: outdoor}
}

// ShortestPathDijkstra min cost path from -> to. nodes are settled when popped, so the first time
// `to` is popped its cost is minimal. termination compares node ids. equal costs pop in push order.
// Route.Distance is the sum of edge Dist along the path, independent of the preference weighting.
func (rt *RouteAlgorithm) ShortestPathDijkstra(g Graph, from, to string, pref Preference) (datastructure.Route, error) {
	return ShortestPath(g, from, to, rt.outdoor.EdgeCost(pref))
}

func ShortestPath(g Graph, from, to string, cost EdgeCost) (datastructure.Route, error) {
	if cost == nil {
		cost = PhysicalCost
	}
	start, ok := g.Node(from)
	if !ok {
		return datastructure.Route{}, fmt.Errorf("%w: %s", ErrNodeNotInGraph, from)
	}
	if _, ok := g.Node(to); !ok {
		return datastructure.Route{}, fmt.Errorf("%w: %s", ErrNodeNotInGraph, to)
	}

	if from == to {
		return datastructure.Route{Path: []datastructure.Node{start}, Distance: 0}, nil
	}

	visited := make(map[string]bool)
	pq := &priorityQueueDijkstra{}
	heap.Init(pq)

	var seq uint64
	heap.Push(pq, &dijkstraEntry{link: &pathLink{node: start}, seq: seq})

	for pq.Len() > 0 {
		curr := heap.Pop(pq).(*dijkstraEntry)
		node := curr.link.node

		if node.ID == to {
			return datastructure.Route{Path: curr.link.nodes(), Distance: curr.dist}, nil
		}
		if visited[node.ID] {
			continue
		}
		visited[node.ID] = true

		for _, nID := range node.NeighborIDs() {
			if visited[nID] {
				continue
			}
			next, ok := g.Node(nID)
			if !ok {
				// edge into a floor that was not merged
				continue
			}
			edge := node.Neighbors[nID]
			if edge.Dist < 0 {
				return datastructure.Route{}, fmt.Errorf("negative edge distance %s -> %s", node.ID, nID)
			}

			seq++
			heap.Push(pq, &dijkstraEntry{
				link: &pathLink{node: next, prev: curr.link},
				cost: curr.cost + cost(node, next, edge),
				dist: curr.dist + edge.Dist,
				seq:  seq,
			})
		}
	}

	return datastructure.Route{}, ErrPathNotFound
}

func (l *pathLink) nodes() []datastructure.Node {
	n := 0
	for p := l; p != nil; p = p.prev {
		n++
	}
	path := make([]datastructure.Node, n)
	for p := l; p != nil; p = p.prev {
		n--
		path[n] = p.node
	}
	return path
}
