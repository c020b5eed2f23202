package datastructure

import "errors"

// ErrFloorNotFound returned by floor stores when a floor has no indoor graph.
var ErrFloorNotFound = errors.New("floor graph not found")

// ErrBuildingNotFound returned by building indexes for a code without entrance rooms.
var ErrBuildingNotFound = errors.New("building not found")
