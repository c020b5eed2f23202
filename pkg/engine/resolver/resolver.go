// Package resolver maps request waypoints onto concrete nodes of a merged graph.
package resolver

import (
	"context"
	"errors"
	"log/slog"

	"campusnav/indoornav/pkg/datastructure"
)

type Role int

const (
	Start Role = iota
	End
)

var (
	ErrStartNotFound = errors.New("Start room not found")
	ErrEndNotFound   = errors.New("End room not found")
)

func (r Role) notFound() error {
	if r == Start {
		return ErrStartNotFound
	}
	return ErrEndNotFound
}

type Graph interface {
	Each(fn func(n datastructure.Node) bool)
}

// BuildingIndex rooms in the outdoor/building outline data that are named after a building.
type BuildingIndex interface {
	EntranceRooms(ctx context.Context, buildingCode string) ([]string, error)
}

type Resolver struct {
	buildings BuildingIndex
	log       *slog.Logger
}

// NewResolver buildings may be nil, building waypoints then resolve through transition edges
// and floor ids only.
func NewResolver(buildings BuildingIndex, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{buildings: buildings, log: logger}
}

func (r *Resolver) Resolve(ctx context.Context, g Graph, wp datastructure.Waypoint, role Role) (datastructure.Node, error) {
	var (
		node  datastructure.Node
		found bool
	)
	switch wp.Kind {
	case datastructure.WaypointRoom:
		node, found = firstNode(g, func(n datastructure.Node) bool {
			return n.RoomID == wp.RoomID
		})
	case datastructure.WaypointBuilding:
		node, found = r.resolveBuilding(ctx, g, wp.BuildingCode)
	default:
		// bare positions have no indoor node
	}

	if !found {
		return datastructure.Node{}, role.notFound()
	}
	return node, nil
}

// resolveBuilding first node inside one of the building's outline rooms, otherwise the first
// node with an edge leading onto one of the building's floors, otherwise the first node lying on
// one of the building's floors.
func (r *Resolver) resolveBuilding(ctx context.Context, g Graph, code string) (datastructure.Node, bool) {
	if code == "" {
		return datastructure.Node{}, false
	}

	if r.buildings != nil {
		rooms, err := r.buildings.EntranceRooms(ctx, code)
		switch {
		case err == nil && len(rooms) > 0:
			set := make(map[string]struct{}, len(rooms))
			for _, room := range rooms {
				set[room] = struct{}{}
			}
			node, found := firstNode(g, func(n datastructure.Node) bool {
				_, ok := set[n.RoomID]
				return ok
			})
			if found {
				return node, true
			}
		case err != nil && !errors.Is(err, datastructure.ErrBuildingNotFound):
			r.log.Warn("building entrance rooms", slog.String("building", code), slog.String("error", err.Error()))
		}
	}

	if node, found := firstNode(g, func(n datastructure.Node) bool {
		return n.ConnectsInto(code)
	}); found {
		return node, true
	}

	return firstNode(g, func(n datastructure.Node) bool {
		return datastructure.BuildingCode(n.FloorID) == code
	})
}

func firstNode(g Graph, match func(n datastructure.Node) bool) (datastructure.Node, bool) {
	var (
		res   datastructure.Node
		found bool
	)
	g.Each(func(n datastructure.Node) bool {
		if match(n) {
			res, found = n, true
			return false
		}
		return true
	})
	return res, found
}
