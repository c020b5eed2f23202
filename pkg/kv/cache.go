package kv

import (
	"context"
	"errors"
	"sync"

	"campusnav/indoornav/pkg/datastructure"
)

type FloorGraphStore interface {
	GetFloorGraph(ctx context.Context, floorID string) (datastructure.FloorGraph, error)
}

// CachedFloorStore keeps decoded floor graphs for the process lifetime. floor data is static
// so there is no invalidation. cached graphs are shared between requests and must not be mutated.
type CachedFloorStore struct {
	store   FloorGraphStore
	mu      sync.RWMutex
	floors  map[string]datastructure.FloorGraph
	missing map[string]struct{}
}

func NewCachedFloorStore(store FloorGraphStore) *CachedFloorStore {
	return &CachedFloorStore{
		store:   store,
		floors:  make(map[string]datastructure.FloorGraph),
		missing: make(map[string]struct{}),
	}
}

func (c *CachedFloorStore) GetFloorGraph(ctx context.Context, floorID string) (datastructure.FloorGraph, error) {
	c.mu.RLock()
	g, ok := c.floors[floorID]
	_, miss := c.missing[floorID]
	c.mu.RUnlock()
	if ok {
		return g, nil
	}
	if miss {
		return nil, datastructure.ErrFloorNotFound
	}

	g, err := c.store.GetFloorGraph(ctx, floorID)
	switch {
	case errors.Is(err, datastructure.ErrFloorNotFound):
		c.mu.Lock()
		c.missing[floorID] = struct{}{}
		c.mu.Unlock()
		return nil, err
	case err != nil:
		return nil, err
	}

	c.mu.Lock()
	if cached, ok := c.floors[floorID]; ok {
		g = cached
	} else {
		c.floors[floorID] = g
	}
	c.mu.Unlock()
	return g, nil
}

func (c *CachedFloorStore) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.floors)
}
