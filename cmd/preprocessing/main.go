package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"

	"campusnav/indoornav/pkg/config"
	"campusnav/indoornav/pkg/floorindex"
	"campusnav/indoornav/pkg/kv"

	"github.com/cockroachdb/pebble"
)

// preprocessing imports a directory of <floorId>-graph.json files into the pebble db the server reads.
func main() {
	cfg, err := config.Load(os.Args[0], os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	logger := cfg.NewLogger(os.Stderr)

	if err := run(cfg, logger); err != nil {
		logger.Error("preprocessing", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) (err error) {
	files, err := kv.DiscoverFloorGraphFiles(cfg.DataDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no *-graph.json files found in %s", cfg.DataDir)
	}

	buildings := map[string][]string{}
	if cfg.BuildingsFile != "" {
		buildings, err = kv.ReadBuildingRooms(cfg.BuildingsFile)
		if err != nil {
			return err
		}
	}

	db, err := pebble.Open(cfg.DBPath, &pebble.Options{})
	if err != nil {
		return err
	}
	kvDB := kv.NewKVDB(db)
	defer func() {
		if cerr := kvDB.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", cfg.DBPath, cerr)
		}
	}()

	manifest, err := kvDB.ImportFloorPlans(files, buildings, runtime.NumCPU(), true)
	if err != nil {
		return fmt.Errorf("import floor plans: %w", err)
	}

	// a hand maintained high level floor plan replaces the adjacency derived from transitions
	if cfg.FloorPlanFile != "" {
		raw, err := os.ReadFile(cfg.FloorPlanFile)
		if err != nil {
			return err
		}
		adj, err := floorindex.ParseHighLevelFloorPlan(raw)
		if err != nil {
			return err
		}
		if err := kvDB.SaveAdjacency(adj); err != nil {
			return err
		}
		logger.Info("floor adjacency loaded from floor plan", "file", cfg.FloorPlanFile, "floors", len(adj))
	}

	fmt.Printf("\nimport %s done: %d floors, %d buildings -> %s\n", manifest.ID, manifest.Floors, manifest.Buildings, cfg.DBPath)
	return nil
}
