package text

import (
	"fmt"

	gotext "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Face is a font at a fixed size used to draw overlay text.
//
// A Face built from font data (NewFace, GoRegular) is shaped with HarfBuzz;
// the bitmap Default face is positioned with its own advances.
type Face struct {
	face font.Face
	data []byte
	size float64

	// shapeFont is parsed on first use from data.
	shapeFont *gotext.Font
	shapeErr  error
}

var defaultFace = &Face{face: basicfont.Face7x13, size: 13}

// Default returns the built-in 7x13 bitmap face.
// It needs no font data and is shared; Close on it is a no-op.
func Default() *Face {
	return defaultFace
}

// GoRegular returns the Go Regular font at the given size in pixels.
func GoRegular(size float64) (*Face, error) {
	return NewFace(goregular.TTF, size)
}

// NewFace parses TrueType or OpenType data and returns a face of the
// given size in pixels (72 DPI).
func NewFace(data []byte, size float64) (*Face, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	otFace, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("text: failed to create face: %w", err)
	}
	return &Face{face: otFace, data: data, size: size}, nil
}

// Size returns the face size in pixels.
func (f *Face) Size() float64 {
	return f.size
}

// Ascent returns the distance from the top of a line to its baseline,
// rounded up to whole pixels.
func (f *Face) Ascent() int {
	return f.face.Metrics().Ascent.Ceil()
}

// LineHeight returns the recommended line height in whole pixels.
func (f *Face) LineHeight() int {
	return f.face.Metrics().Height.Ceil()
}

// Shaped reports whether glyph positions come from HarfBuzz shaping.
func (f *Face) Shaped() bool {
	return f.data != nil
}

// Close releases the underlying face.
func (f *Face) Close() error {
	if f == defaultFace {
		return nil
	}
	return f.face.Close()
}
