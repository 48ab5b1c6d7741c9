package raster

import (
	"fmt"

	xdraw "golang.org/x/image/draw"
)

// InterpolationMode defines how a frame is resampled when scaled.
type InterpolationMode uint8

const (
	// InterpNearest selects the closest source pixel and copies its bytes
	// unchanged. Fast and exact for every format.
	InterpNearest InterpolationMode = iota

	// InterpBilinear interpolates between neighbouring pixels.
	InterpBilinear

	// InterpCatmullRom uses the Catmull-Rom cubic kernel.
	// Highest quality but slower than bilinear.
	InterpCatmullRom
)

// String returns a string representation of the interpolation mode.
func (m InterpolationMode) String() string {
	switch m {
	case InterpNearest:
		return "Nearest"
	case InterpBilinear:
		return "Bilinear"
	case InterpCatmullRom:
		return "CatmullRom"
	default:
		return "Unknown"
	}
}

// Scale resamples src so that it covers all of dst.
// Both buffers must share a pixel format; aspect ratio is not preserved.
// The result depends only on the inputs and mode.
func Scale(dst, src *Buffer, mode InterpolationMode) error {
	if dst.format != src.format {
		return fmt.Errorf("%w: cannot scale %s into %s", ErrInvalidFormat, src.format, dst.format)
	}
	if dst.width == src.width && dst.height == src.height {
		copy(dst.data, src.data)
		return nil
	}

	switch mode {
	case InterpBilinear:
		xdraw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	case InterpCatmullRom:
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	default:
		scaleNearest(dst, src)
	}
	return nil
}

// scaleNearest maps every destination pixel centre back onto the source
// grid and copies the raw pixel bytes found there.
func scaleNearest(dst, src *Buffer) {
	bpp := dst.format.BytesPerPixel()

	// Precompute source column offsets; they are identical for every row.
	cols := make([]int, dst.width)
	for x := range dst.width {
		cols[x] = ((2*x + 1) * src.width) / (2 * dst.width) * bpp
	}

	for y := range dst.height {
		sy := ((2*y + 1) * src.height) / (2 * dst.height)
		srcRow := src.data[sy*src.width*bpp : (sy+1)*src.width*bpp]
		dstRow := dst.data[y*dst.width*bpp : (y+1)*dst.width*bpp]
		for x, sx := range cols {
			copy(dstRow[x*bpp:(x+1)*bpp], srcRow[sx:sx+bpp])
		}
	}
}
