// Package graphloader loads the floor graphs of a floor-path and unions them into
// one graph the solver can search.
package graphloader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"campusnav/indoornav/pkg/datastructure"
)

type FloorStore interface {
	// GetFloorGraph returns datastructure.ErrFloorNotFound when the floor has no graph.
	GetFloorGraph(ctx context.Context, floorID string) (datastructure.FloorGraph, error)
}

// MergedGraph union of the floor graphs of one floor-path. node order is floor-path order,
// then node id ascending.
type MergedGraph struct {
	nodes  map[string]datastructure.Node
	order  []string
	floors []string
}

func NewMergedGraph() *MergedGraph {
	return &MergedGraph{nodes: make(map[string]datastructure.Node)}
}

func (g *MergedGraph) Node(id string) (datastructure.Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Each visits nodes in merge order until fn returns false.
func (g *MergedGraph) Each(fn func(n datastructure.Node) bool) {
	for _, id := range g.order {
		if !fn(g.nodes[id]) {
			return
		}
	}
}

func (g *MergedGraph) Len() int {
	return len(g.order)
}

// Floors that actually contributed nodes.
func (g *MergedGraph) Floors() []string {
	return g.floors
}

// AddFloor stamps floorID and id on copies of the floor's nodes and adds them. the stored
// graph is not modified. ids are expected to be unique campus wide, a later floor wins on collision.
func (g *MergedGraph) AddFloor(floorID string, graph datastructure.FloorGraph) (collisions int) {
	for _, id := range graph.SortedIDs() {
		node := graph[id]
		node.ID = id
		node.FloorID = floorID
		if _, exists := g.nodes[id]; exists {
			collisions++
		} else {
			g.order = append(g.order, id)
		}
		g.nodes[id] = node
	}
	g.floors = append(g.floors, floorID)
	return collisions
}

type Loader struct {
	store FloorStore
	log   *slog.Logger
}

func NewLoader(store FloorStore, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{store: store, log: logger}
}

// Load builds a fresh merged graph for floorPath. floors without data are skipped.
func (l *Loader) Load(ctx context.Context, floorPath []string) (*MergedGraph, error) {
	merged := NewMergedGraph()
	loaded := make(map[string]bool, len(floorPath))

	for _, floorID := range floorPath {
		if loaded[floorID] {
			continue
		}
		loaded[floorID] = true

		graph, err := l.store.GetFloorGraph(ctx, floorID)
		if errors.Is(err, datastructure.ErrFloorNotFound) {
			l.log.Debug("floor has no graph, skipping", slog.String("floor", floorID))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load floor %s: %w", floorID, err)
		}

		if c := merged.AddFloor(floorID, graph); c > 0 {
			l.log.Warn("node id collision while merging floors", slog.String("floor", floorID), slog.Int("collisions", c))
		}
	}
	return merged, nil
}

// WithFloor returns floorPath with floorID appended unless it is already on it.
func WithFloor(floorPath []string, floorID string) []string {
	for _, f := range floorPath {
		if f == floorID {
			return floorPath
		}
	}
	out := make([]string, len(floorPath), len(floorPath)+1)
	copy(out, floorPath)
	return append(out, floorID)
}
