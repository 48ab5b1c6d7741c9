package imageview

import (
	"errors"

	"github.com/gogpu/imageview/raster"
)

// Errors reported by View operations. All of them are recoverable; the
// view keeps its previous state when an operation is rejected.
var (
	// ErrInvalidFormat is returned for non-positive dimensions or an
	// unsupported pixel format.
	ErrInvalidFormat = raster.ErrInvalidFormat

	// ErrSizeMismatch is returned when a frame's byte count does not match
	// the declared contract. The concrete error is a *SizeMismatchError.
	ErrSizeMismatch = raster.ErrSizeMismatch

	// ErrMalformedGeometry is returned when a polyline or polygon has
	// fewer than two points.
	ErrMalformedGeometry = errors.New("imageview: polyline or polygon needs at least 2 points")

	// ErrNotFound is returned when a handle no longer refers to a live
	// shape. It is advisory: the shape was most likely removed already.
	ErrNotFound = errors.New("imageview: shape not found")
)

// SizeMismatchError carries the offending and the expected byte counts.
type SizeMismatchError = raster.SizeMismatchError
