// Package raster provides the fixed-format pixel buffers that back an
// image view: pixel formats, the frame buffer itself, resampling and a
// buffer pool for composed output.
package raster

import "errors"

// Common errors for raster operations.
var (
	// ErrInvalidFormat is returned when width or height is non-positive
	// or the pixel format is not one of the supported encodings.
	ErrInvalidFormat = errors.New("raster: invalid format")

	// ErrSizeMismatch is returned when a frame's byte count does not match
	// the byte size of the declared dimensions and format.
	ErrSizeMismatch = errors.New("raster: frame size mismatch")
)

// Format represents a pixel storage format.
type Format uint8

const (
	// FormatInvalid is the zero value and is never accepted.
	FormatInvalid Format = iota

	// FormatGray8 is 8-bit grayscale (1 byte per pixel).
	FormatGray8

	// FormatGray16 is 16-bit grayscale, little endian (2 bytes per pixel).
	FormatGray16

	// FormatRGB565 is 16-bit packed RGB, little endian (2 bytes per pixel).
	FormatRGB565

	// FormatRGB8 is 24-bit RGB (3 bytes per pixel, no alpha).
	FormatRGB8

	// FormatRGBA8 is 32-bit non-premultiplied RGBA (4 bytes per pixel).
	FormatRGBA8

	// FormatBGRA8 is 32-bit non-premultiplied BGRA (4 bytes per pixel).
	// Common for camera drivers and window surfaces.
	FormatBGRA8

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// BytesPerPixel is the number of bytes per pixel.
	BytesPerPixel int

	// HasAlpha indicates if the format has an alpha channel.
	HasAlpha bool

	// IsGrayscale indicates if this is a grayscale format.
	IsGrayscale bool
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatGray8:  {BytesPerPixel: 1, IsGrayscale: true},
	FormatGray16: {BytesPerPixel: 2, IsGrayscale: true},
	FormatRGB565: {BytesPerPixel: 2},
	FormatRGB8:   {BytesPerPixel: 3},
	FormatRGBA8:  {BytesPerPixel: 4, HasAlpha: true},
	FormatBGRA8:  {BytesPerPixel: 4, HasAlpha: true},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if !f.IsValid() {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// BytesPerPixel returns the number of bytes per pixel for this format.
func (f Format) BytesPerPixel() int {
	return f.Info().BytesPerPixel
}

// HasAlpha returns true if this format has an alpha channel.
func (f Format) HasAlpha() bool {
	return f.Info().HasAlpha
}

// IsGrayscale returns true if this is a grayscale format.
func (f Format) IsGrayscale() bool {
	return f.Info().IsGrayscale
}

// IsValid returns true if the format is a supported encoding.
func (f Format) IsValid() bool {
	return f > FormatInvalid && f < formatCount
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatGray8:
		return "Gray8"
	case FormatGray16:
		return "Gray16"
	case FormatRGB565:
		return "RGB565"
	case FormatRGB8:
		return "RGB8"
	case FormatRGBA8:
		return "RGBA8"
	case FormatBGRA8:
		return "BGRA8"
	default:
		return "Unknown"
	}
}

// RowBytes calculates the number of bytes needed for a row of the given width.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// ImageBytes calculates the total number of bytes needed for an image.
func (f Format) ImageBytes(width, height int) int {
	return f.RowBytes(width) * height
}

// Validate reports ErrInvalidFormat unless width and height are positive
// and f is a supported format.
func Validate(width, height int, f Format) error {
	if width <= 0 || height <= 0 || !f.IsValid() {
		return ErrInvalidFormat
	}
	return nil
}
