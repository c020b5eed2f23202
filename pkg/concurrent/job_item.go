package concurrent

import "campusnav/indoornav/pkg/datastructure"

// FloorFileJobItem one floor graph json file waiting to be decoded.
type FloorFileJobItem struct {
	FloorID string
	Path    string
}

// FloorGraphResult decoded floor graph, or the reason it could not be read.
type FloorGraphResult struct {
	FloorID string
	Graph   datastructure.FloorGraph
	Err     error
}

type JobI interface {
	FloorFileJobItem
}

type JobFunc[T JobI, G any] func(job T) G
