package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"campusnav/indoornav/pkg/datastructure"
	"campusnav/indoornav/pkg/engine/graphloader"
	"campusnav/indoornav/pkg/engine/resolver"
	"campusnav/indoornav/pkg/engine/routingalgorithm"
	"campusnav/indoornav/pkg/server"
)

type FloorIndex interface {
	Neighbors(floorID string) []string
	HasFloor(floorID string) bool
	Len() int
}

type FloorPathSelector interface {
	Select(start, end string) [][]string
}

type GraphLoader interface {
	Load(ctx context.Context, floorPath []string) (*graphloader.MergedGraph, error)
}

type EndpointResolver interface {
	Resolve(ctx context.Context, g resolver.Graph, wp datastructure.Waypoint, role resolver.Role) (datastructure.Node, error)
}

type RoutingAlgorithm interface {
	ShortestPathDijkstra(g routingalgorithm.Graph, from, to string, pref routingalgorithm.Preference) (datastructure.Route, error)
}

type NavigationService struct {
	floors       FloorIndex
	selector     FloorPathSelector
	loader       GraphLoader
	resolver     EndpointResolver
	routing      RoutingAlgorithm
	outsideFloor string
	log          *slog.Logger
}

func NewNavigationService(floors FloorIndex, selector FloorPathSelector, loader GraphLoader, res EndpointResolver,
	routing RoutingAlgorithm, outsideFloor string, logger *slog.Logger) *NavigationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NavigationService{
		floors:       floors,
		selector:     selector,
		loader:       loader,
		resolver:     res,
		routing:      routing,
		outsideFloor: outsideFloor,
		log:          logger,
	}
}

// FindPath route between exactly two waypoints. Fastest is computed over the first floor-path
// the selector returns, Alternative over the second. each slot fails on its own and carries either
// a route or an error message. the returned error is only set for a malformed request.
func (uc *NavigationService) FindPath(ctx context.Context, waypoints []datastructure.Waypoint,
	pref routingalgorithm.Preference) (datastructure.RecommendedPath, error) {
	if len(waypoints) != 2 {
		return datastructure.RecommendedPath{}, server.WrapErrorf(nil, server.ErrBadParamInput,
			"exactly two waypoints are required, got %d", len(waypoints))
	}
	src, dst := waypoints[0], waypoints[1]

	floorPaths := uc.selector.Select(src.FloorID, dst.FloorID)
	for len(floorPaths) < 2 {
		floorPaths = append(floorPaths, []string{src.FloorID, dst.FloorID})
	}
	if src.Kind == datastructure.WaypointBuilding && dst.Kind == datastructure.WaypointBuilding && uc.outsideFloor != "" {
		for i := range floorPaths {
			floorPaths[i] = graphloader.WithFloor(floorPaths[i], uc.outsideFloor)
		}
	}

	var (
		wg      sync.WaitGroup
		results [2]datastructure.RouteResult
	)
	for slot := range results {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			results[slot] = uc.route(ctx, floorPaths[slot], src, dst, pref)
		}(slot)
	}
	wg.Wait()

	uc.log.Info("find path",
		slog.String("from", src.String()),
		slog.String("to", dst.String()),
		slog.String("preference", string(pref)),
		slog.Bool("fastest_found", results[0].Found()),
		slog.Bool("alternative_found", results[1].Found()),
	)

	return datastructure.RecommendedPath{Fastest: results[0], Alternative: results[1]}, nil
}

// route load, resolve and solve for one floor-path on its own merged graph.
func (uc *NavigationService) route(ctx context.Context, floorPath []string, src, dst datastructure.Waypoint,
	pref routingalgorithm.Preference) datastructure.RouteResult {
	if src.Kind == datastructure.WaypointPosition {
		return datastructure.NewRouteError(resolver.ErrStartNotFound)
	}
	if dst.Kind == datastructure.WaypointPosition {
		return datastructure.NewRouteError(resolver.ErrEndNotFound)
	}

	g, err := uc.loader.Load(ctx, floorPath)
	if err != nil {
		uc.log.Error("load floor graphs", slog.Any("floor_path", floorPath), slog.String("error", err.Error()))
		return datastructure.NewRouteError(server.WrapErrorf(err, server.ErrInternalServerError, "failed to load floor graphs"))
	}

	start, err := uc.resolver.Resolve(ctx, g, src, resolver.Start)
	if err != nil {
		return datastructure.NewRouteError(err)
	}
	end, err := uc.resolver.Resolve(ctx, g, dst, resolver.End)
	if err != nil {
		return datastructure.NewRouteError(err)
	}

	route, err := uc.routing.ShortestPathDijkstra(g, start.ID, end.ID, pref)
	if err != nil {
		if !errors.Is(err, routingalgorithm.ErrPathNotFound) {
			uc.log.Warn("shortest path", slog.Any("floor_path", floorPath), slog.String("error", err.Error()))
		}
		return datastructure.NewRouteError(err)
	}
	return datastructure.NewRouteResult(route)
}

// FloorNeighbors floors directly reachable from floorID.
func (uc *NavigationService) FloorNeighbors(ctx context.Context, floorID string) ([]string, error) {
	if !uc.floors.HasFloor(floorID) {
		return nil, server.WrapErrorf(nil, server.ErrNotFound, "floor %s not found", floorID)
	}
	return uc.floors.Neighbors(floorID), nil
}

// Health fails with server.ErrUnavailable until a floor adjacency has been loaded.
func (uc *NavigationService) Health(ctx context.Context) error {
	if uc.floors.Len() == 0 {
		return server.WrapErrorf(nil, server.ErrUnavailable, "no floor adjacency loaded")
	}
	return nil
}
