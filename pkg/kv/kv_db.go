package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campusnav/indoornav/pkg/datastructure"

	"github.com/cockroachdb/pebble"
	"github.com/google/uuid"
)

const (
	floorKeyPrefix    = "floor/"
	buildingKeyPrefix = "building/"
	adjacencyKey      = "meta/adjacency"
	manifestKey       = "meta/manifest"
)

var ErrBuildingNotFound = datastructure.ErrBuildingNotFound

// Manifest describes one preprocessing run.
type Manifest struct {
	ID        uuid.UUID `json:"id"`
	Floors    int       `json:"floors"`
	Buildings int       `json:"buildings"`
	CreatedAt time.Time `json:"created_at"`
}

// KVDB pebble backed floor graph store. floor graphs, the floor adjacency and building
// entrance rooms are stored zstd compressed.
type KVDB struct {
	db *pebble.DB
}

func NewKVDB(db *pebble.DB) *KVDB {
	return &KVDB{db}
}

func floorKey(floorID string) []byte {
	return []byte(floorKeyPrefix + floorID)
}

func buildingKey(code string) []byte {
	return []byte(buildingKeyPrefix + code)
}

func (k *KVDB) SaveFloorGraph(floorID string, g datastructure.FloorGraph) error {
	val, err := EncodeFloorGraph(g)
	if err != nil {
		return fmt.Errorf("encode floor %s: %w", floorID, err)
	}
	return k.db.Set(floorKey(floorID), val, pebble.NoSync)
}

// GetFloorGraph returns datastructure.ErrFloorNotFound when the floor was never imported.
func (k *KVDB) GetFloorGraph(ctx context.Context, floorID string) (datastructure.FloorGraph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	val, closer, err := k.db.Get(floorKey(floorID))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, datastructure.ErrFloorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("floor %s: %w", floorID, err)
	}
	defer closer.Close()

	g, err := DecodeFloorGraph(val)
	if err != nil {
		return nil, fmt.Errorf("floor %s: %w", floorID, err)
	}
	return g, nil
}

func (k *KVDB) SaveAdjacency(adj datastructure.FloorAdjacency) error {
	return k.set([]byte(adjacencyKey), adj)
}

func (k *KVDB) GetAdjacency() (datastructure.FloorAdjacency, error) {
	var adj datastructure.FloorAdjacency
	if err := k.get([]byte(adjacencyKey), &adj); err != nil {
		return nil, fmt.Errorf("floor adjacency: %w", err)
	}
	return adj, nil
}

func (k *KVDB) SaveBuildingRooms(code string, rooms []string) error {
	return k.set(buildingKey(code), rooms)
}

// EntranceRooms rooms of the outdoor/building outline data named after the building.
func (k *KVDB) EntranceRooms(ctx context.Context, code string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rooms []string
	err := k.get(buildingKey(code), &rooms)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrBuildingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", code, err)
	}
	return rooms, nil
}

func (k *KVDB) SaveManifest(m Manifest) error {
	return k.set([]byte(manifestKey), m)
}

func (k *KVDB) GetManifest() (Manifest, error) {
	var m Manifest
	err := k.get([]byte(manifestKey), &m)
	return m, err
}

func (k *KVDB) set(key []byte, v interface{}) error {
	val, err := encode(v)
	if err != nil {
		return err
	}
	return k.db.Set(key, val, pebble.Sync)
}

func (k *KVDB) get(key []byte, v interface{}) error {
	val, closer, err := k.db.Get(key)
	if err != nil {
		return err
	}
	defer closer.Close()
	return decode(val, v)
}

func (k *KVDB) Flush() error {
	return k.db.Flush()
}

func (k *KVDB) Close() error {
	return k.db.Close()
}
