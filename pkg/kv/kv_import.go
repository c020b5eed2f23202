package kv

import (
	"fmt"
	"sort"
	"time"

	"campusnav/indoornav/pkg/concurrent"
	"campusnav/indoornav/pkg/datastructure"
	"campusnav/indoornav/pkg/floorindex"

	"github.com/google/uuid"
	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
)

// ImportFloorPlans decodes every floor graph file with a worker pool, stores them, derives the
// floor adjacency from their transitions and stores the building entrance rooms plus a manifest.
func (k *KVDB) ImportFloorPlans(files map[string]string, buildings map[string][]string, workers int, showProgress bool) (Manifest, error) {
	wp := concurrent.NewWorkerPool[concurrent.FloorFileJobItem, concurrent.FloorGraphResult](workers, len(files))
	for floorID, path := range files {
		wp.AddJob(concurrent.FloorFileJobItem{FloorID: floorID, Path: path})
	}
	wp.Close()

	bar := newBar(len(files), "[cyan][1/3][reset] decoding floor graphs...", showProgress)
	wp.Start(func(job concurrent.FloorFileJobItem) concurrent.FloorGraphResult {
		g, err := ReadFloorGraphFile(job.Path)
		bar.Add(1)
		return concurrent.FloorGraphResult{FloorID: job.FloorID, Graph: g, Err: err}
	})
	wp.Wait()

	graphs := make(map[string]datastructure.FloorGraph, len(files))
	for res := range wp.CollectResults() {
		if res.Err != nil {
			return Manifest{}, fmt.Errorf("floor %s: %w", res.FloorID, res.Err)
		}
		graphs[res.FloorID] = res.Graph
	}

	floorIDs := make([]string, 0, len(graphs))
	for id := range graphs {
		floorIDs = append(floorIDs, id)
	}
	sort.Strings(floorIDs)

	bar = newBar(len(floorIDs), "[cyan][2/3][reset] saving floor graphs to pebble db...", showProgress)
	for _, id := range floorIDs {
		if err := k.SaveFloorGraph(id, graphs[id]); err != nil {
			return Manifest{}, err
		}
		bar.Add(1)
	}

	bar = newBar(len(buildings)+1, "[cyan][3/3][reset] saving floor adjacency & buildings...", showProgress)
	if err := k.SaveAdjacency(floorindex.BuildAdjacency(graphs)); err != nil {
		return Manifest{}, fmt.Errorf("save floor adjacency: %w", err)
	}
	bar.Add(1)
	for code, rooms := range buildings {
		if err := k.SaveBuildingRooms(code, rooms); err != nil {
			return Manifest{}, fmt.Errorf("save building %s: %w", code, err)
		}
		bar.Add(1)
	}

	m := Manifest{
		ID:        uuid.New(),
		Floors:    len(graphs),
		Buildings: len(buildings),
		CreatedAt: time.Now().UTC(),
	}
	if err := k.SaveManifest(m); err != nil {
		return Manifest{}, fmt.Errorf("save manifest: %w", err)
	}
	if err := k.Flush(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

func newBar(n int, desc string, show bool) *progressbar.ProgressBar {
	if !show {
		return progressbar.DefaultSilent(int64(n), desc)
	}
	return progressbar.NewOptions(n,
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
