// Package floorindex holds the precomputed floor adjacency used to decide which
// floor graphs are worth loading for a route.
package floorindex

import (
	"fmt"
	"sort"

	"campusnav/indoornav/pkg/datastructure"

	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/btree"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Index read-only floor id -> adjacent floor ids. Safe for concurrent readers once built.
type Index struct {
	floors btree.Map[string, []string]
}

func NewIndex(adj datastructure.FloorAdjacency) *Index {
	idx := &Index{}
	for floor, neighbors := range adj {
		cp := make([]string, len(neighbors))
		copy(cp, neighbors)
		idx.floors.Set(floor, cp)
	}
	return idx
}

// Neighbors floors directly reachable from floorID, in stored order.
func (idx *Index) Neighbors(floorID string) []string {
	neighbors, ok := idx.floors.Get(floorID)
	if !ok {
		return nil
	}
	return neighbors
}

func (idx *Index) HasFloor(floorID string) bool {
	_, ok := idx.floors.Get(floorID)
	return ok
}

// Floors all floor ids in ascending order.
func (idx *Index) Floors() []string {
	return idx.floors.Keys()
}

func (idx *Index) Len() int {
	return idx.floors.Len()
}

// Adjacency returns a copy of the index as a plain map, used when persisting it.
func (idx *Index) Adjacency() datastructure.FloorAdjacency {
	adj := make(datastructure.FloorAdjacency, idx.floors.Len())
	idx.floors.Scan(func(floor string, neighbors []string) bool {
		cp := make([]string, len(neighbors))
		copy(cp, neighbors)
		adj[floor] = cp
		return true
	})
	return adj
}

// BuildAdjacency derives the floor adjacency from every transition edge of the given floor graphs.
// transitions are treated as walkable both ways, so both directions are recorded. neighbor lists are
// deduplicated and sorted.
func BuildAdjacency(graphs map[string]datastructure.FloorGraph) datastructure.FloorAdjacency {
	sets := make(map[string]map[string]struct{})
	add := func(from, to string) {
		if from == to {
			return
		}
		if sets[from] == nil {
			sets[from] = make(map[string]struct{})
		}
		sets[from][to] = struct{}{}
	}

	for floorID, graph := range graphs {
		for _, node := range graph {
			for _, edge := range node.Neighbors {
				if edge.ToFloorInfo == nil || edge.ToFloorInfo.ToFloor == "" {
					continue
				}
				add(floorID, edge.ToFloorInfo.ToFloor)
				add(edge.ToFloorInfo.ToFloor, floorID)
			}
		}
	}

	adj := make(datastructure.FloorAdjacency, len(sets))
	for floor, set := range sets {
		neighbors := make([]string, 0, len(set))
		for n := range set {
			neighbors = append(neighbors, n)
		}
		sort.Strings(neighbors)
		adj[floor] = neighbors
	}
	return adj
}

// ParseHighLevelFloorPlan decodes the high level floor map. entries are either plain floor ids
// or [floorId, transitionType] pairs.
func ParseHighLevelFloorPlan(data []byte) (datastructure.FloorAdjacency, error) {
	var raw map[string][]jsoniter.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode floor adjacency: %w", err)
	}

	adj := make(datastructure.FloorAdjacency, len(raw))
	for floor, entries := range raw {
		neighbors := make([]string, 0, len(entries))
		seen := make(map[string]struct{}, len(entries))
		for _, entry := range entries {
			to, err := parseAdjacencyEntry(entry)
			if err != nil {
				return nil, fmt.Errorf("floor %s: %w", floor, err)
			}
			if _, dup := seen[to]; dup {
				continue
			}
			seen[to] = struct{}{}
			neighbors = append(neighbors, to)
		}
		adj[floor] = neighbors
	}
	return adj, nil
}

func parseAdjacencyEntry(entry jsoniter.RawMessage) (string, error) {
	var id string
	if err := json.Unmarshal(entry, &id); err == nil {
		return id, nil
	}
	var pair []string
	if err := json.Unmarshal(entry, &pair); err != nil || len(pair) == 0 {
		return "", fmt.Errorf("invalid adjacency entry %s", string(entry))
	}
	return pair[0], nil
}
