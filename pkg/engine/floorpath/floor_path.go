// Package floorpath picks which sequences of floors a route may pass through,
// so only those floor graphs need to be loaded.
package floorpath

import "strings"

const DefaultMaxPaths = 2

type AdjacencyIndex interface {
	Neighbors(floorID string) []string
}

type Selector struct {
	adj      AdjacencyIndex
	maxPaths int
}

// NewSelector maxPaths below 2 is raised to 2, the route assembler always needs a fastest and an alternative slot.
func NewSelector(adj AdjacencyIndex, maxPaths int) *Selector {
	if maxPaths < DefaultMaxPaths {
		maxPaths = DefaultMaxPaths
	}
	return &Selector{adj: adj, maxPaths: maxPaths}
}

func (s *Selector) MaxPaths() int {
	return s.maxPaths
}

// Select returns exactly MaxPaths floor-paths from start to end, fewest floor hops first.
// bfs over the floor adjacency, a floor is explored the first time it is dequeued. reaching
// the end floor records the path. slots that bfs could not fill get the trivial path [start, end].
func (s *Selector) Select(start, end string) [][]string {
	found := make([][]string, 0, s.maxPaths)
	seen := make(map[string]struct{}, s.maxPaths)
	explored := make(map[string]bool)

	queue := [][]string{{start}}
	for len(queue) > 0 && len(found) < s.maxPaths {
		path := queue[0]
		queue = queue[1:]
		curr := path[len(path)-1]

		if curr == end {
			key := strings.Join(path, "\x00")
			if _, dup := seen[key]; !dup {
				seen[key] = struct{}{}
				found = append(found, path)
			}
			continue
		}

		if explored[curr] {
			continue
		}
		explored[curr] = true

		for _, next := range s.adj.Neighbors(curr) {
			if explored[next] || containsFloor(path, next) {
				continue
			}
			nextPath := make([]string, len(path), len(path)+1)
			copy(nextPath, path)
			queue = append(queue, append(nextPath, next))
		}
	}

	for len(found) < s.maxPaths {
		found = append(found, trivialPath(start, end))
	}
	return found
}

func trivialPath(start, end string) []string {
	if start == end {
		return []string{start}
	}
	return []string{start, end}
}

func containsFloor(path []string, floor string) bool {
	for _, f := range path {
		if f == floor {
			return true
		}
	}
	return false
}
