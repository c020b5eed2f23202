package kv

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"campusnav/indoornav/pkg/datastructure"
)

const floorGraphFileSuffix = "-graph.json"

// ReadFloorGraphFile decodes one <floorId>-graph.json file.
func ReadFloorGraphFile(path string) (datastructure.FloorGraph, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var g datastructure.FloorGraph
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return g, nil
}

// ReadBuildingRooms decodes the building code -> outline room ids file.
func ReadBuildingRooms(path string) (map[string][]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rooms map[string][]string
	if err := json.Unmarshal(raw, &rooms); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return rooms, nil
}

// DiscoverFloorGraphFiles walks dir for <floorId>-graph.json files, returns floor id -> path.
func DiscoverFloorGraphFiles(dir string) (map[string]string, error) {
	files := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), floorGraphFileSuffix) {
			return nil
		}
		floorID := strings.TrimSuffix(d.Name(), floorGraphFileSuffix)
		if prev, dup := files[floorID]; dup {
			return fmt.Errorf("floor %s defined twice: %s and %s", floorID, prev, path)
		}
		files[floorID] = path
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// FileStore reads floor graphs straight from a directory of json files on every call.
// wrap it in a CachedFloorStore for serving.
type FileStore struct {
	files     map[string]string
	buildings map[string][]string
}

// NewFileStore buildingsFile is optional.
func NewFileStore(dir, buildingsFile string) (*FileStore, error) {
	files, err := DiscoverFloorGraphFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("scan floor graphs in %s: %w", dir, err)
	}
	store := &FileStore{files: files, buildings: map[string][]string{}}
	if buildingsFile != "" {
		store.buildings, err = ReadBuildingRooms(buildingsFile)
		if err != nil {
			return nil, fmt.Errorf("read building rooms: %w", err)
		}
	}
	return store, nil
}

func (s *FileStore) GetFloorGraph(ctx context.Context, floorID string) (datastructure.FloorGraph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, ok := s.files[floorID]
	if !ok {
		return nil, datastructure.ErrFloorNotFound
	}
	return ReadFloorGraphFile(path)
}

func (s *FileStore) EntranceRooms(ctx context.Context, code string) ([]string, error) {
	rooms, ok := s.buildings[code]
	if !ok {
		return nil, ErrBuildingNotFound
	}
	return rooms, nil
}

// Floors ids of every floor with a graph file, ascending.
func (s *FileStore) Floors() []string {
	ids := make([]string, 0, len(s.files))
	for id := range s.files {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Files floor id -> json path.
func (s *FileStore) Files() map[string]string {
	return s.files
}
