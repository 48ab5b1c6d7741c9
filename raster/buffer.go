package raster

import (
	"fmt"
	"image"
	"image/color"
)

// SizeMismatchError is returned when a frame holds a different number of
// bytes than its declared dimensions and format require.
// It matches ErrSizeMismatch with errors.Is.
type SizeMismatchError struct {
	Got  int
	Want int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("raster: frame size mismatch: got %d bytes, want %d", e.Got, e.Want)
}

// Is reports whether target is ErrSizeMismatch.
func (e *SizeMismatchError) Is(target error) bool {
	return target == ErrSizeMismatch
}

// Buffer is a tightly packed pixel buffer of fixed width, height and format.
//
// The length of the backing slice always equals Format.ImageBytes(width,
// height). Buffer implements draw.Image; Set outside the bounds is a no-op,
// so drawing code never has to clip by hand.
//
// Buffer is not safe for concurrent use.
type Buffer struct {
	data   []byte
	width  int
	height int
	format Format
}

// NewBuffer creates a zeroed buffer with the given dimensions and format.
func NewBuffer(width, height int, format Format) (*Buffer, error) {
	if err := Validate(width, height, format); err != nil {
		return nil, err
	}
	return &Buffer{
		data:   make([]byte, format.ImageBytes(width, height)),
		width:  width,
		height: height,
		format: format,
	}, nil
}

// FromBytes creates a buffer holding a copy of data.
// data must be exactly format.ImageBytes(width, height) bytes long.
func FromBytes(data []byte, width, height int, format Format) (*Buffer, error) {
	b, err := NewBuffer(width, height, format)
	if err != nil {
		return nil, err
	}
	if err := b.Replace(data); err != nil {
		return nil, err
	}
	return b, nil
}

// Wrap creates a buffer over data without copying.
// The caller must not modify data while the buffer is in use.
func Wrap(data []byte, width, height int, format Format) (*Buffer, error) {
	if err := Validate(width, height, format); err != nil {
		return nil, err
	}
	if want := format.ImageBytes(width, height); len(data) != want {
		return nil, &SizeMismatchError{Got: len(data), Want: want}
	}
	return &Buffer{data: data, width: width, height: height, format: format}, nil
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.height }

// Format returns the pixel format.
func (b *Buffer) Format() Format { return b.format }

// Data returns the raw pixel data. The slice aliases the buffer.
func (b *Buffer) Data() []byte { return b.data }

// ByteSize returns the total size of the pixel data in bytes.
func (b *Buffer) ByteSize() int { return len(b.data) }

// Matches reports whether the buffer has exactly the given contract.
func (b *Buffer) Matches(width, height int, format Format) bool {
	return b.width == width && b.height == height && b.format == format
}

// Replace overwrites the whole pixel content with data.
// Nothing is written unless len(data) equals ByteSize.
func (b *Buffer) Replace(data []byte) error {
	if len(data) != len(b.data) {
		return &SizeMismatchError{Got: len(data), Want: len(b.data)}
	}
	copy(b.data, data)
	return nil
}

// CopyFrom copies the pixels of src, which must have the same contract.
func (b *Buffer) CopyFrom(src *Buffer) error {
	if !b.Matches(src.width, src.height, src.format) {
		return fmt.Errorf("%w: %dx%d %s into %dx%d %s", ErrInvalidFormat,
			src.width, src.height, src.format, b.width, b.height, b.format)
	}
	copy(b.data, src.data)
	return nil
}

// Clone creates a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	data := make([]byte, len(b.data))
	copy(data, b.data)
	return &Buffer{data: data, width: b.width, height: b.height, format: b.format}
}

// Clear sets all pixels to zero.
func (b *Buffer) Clear() {
	clear(b.data)
}

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if coordinates are out of bounds.
func (b *Buffer) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return (y*b.width + x) * b.format.BytesPerPixel()
}

// PixelBytes returns the raw bytes for pixel (x, y), or nil when out of bounds.
func (b *Buffer) PixelBytes(x, y int) []byte {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return nil
	}
	return b.data[off : off+b.format.BytesPerPixel()]
}

// Bounds implements image.Image.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// ColorModel implements image.Image.
func (b *Buffer) ColorModel() color.Model {
	switch b.format {
	case FormatGray8:
		return color.GrayModel
	case FormatGray16:
		return color.Gray16Model
	case FormatRGBA8, FormatBGRA8:
		return color.NRGBAModel
	default:
		return color.RGBAModel
	}
}

// At implements image.Image.
func (b *Buffer) At(x, y int) color.Color {
	p := b.PixelBytes(x, y)
	if p == nil {
		return color.Transparent
	}
	switch b.format {
	case FormatGray8:
		return color.Gray{Y: p[0]}
	case FormatGray16:
		return color.Gray16{Y: uint16(p[0]) | uint16(p[1])<<8}
	case FormatRGB565:
		v := uint16(p[0]) | uint16(p[1])<<8
		r5, g6, b5 := uint8(v>>11), uint8(v>>5)&0x3f, uint8(v)&0x1f
		return color.RGBA{R: r5<<3 | r5>>2, G: g6<<2 | g6>>4, B: b5<<3 | b5>>2, A: 0xff}
	case FormatRGB8:
		return color.RGBA{R: p[0], G: p[1], B: p[2], A: 0xff}
	case FormatRGBA8:
		return color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
	case FormatBGRA8:
		return color.NRGBA{R: p[2], G: p[1], B: p[0], A: p[3]}
	default:
		return color.Transparent
	}
}

// Set implements draw.Image. The colour replaces the pixel; use Blend for
// source-over compositing. Coordinates outside the buffer are ignored.
func (b *Buffer) Set(x, y int, c color.Color) {
	p := b.PixelBytes(x, y)
	if p == nil {
		return
	}
	switch b.format {
	case FormatGray8:
		p[0] = color.GrayModel.Convert(c).(color.Gray).Y
	case FormatGray16:
		v := color.Gray16Model.Convert(c).(color.Gray16).Y
		p[0], p[1] = byte(v), byte(v>>8)
	case FormatRGB565:
		r, g, bl, _ := c.RGBA()
		v := uint16(r>>11)<<11 | uint16(g>>10)<<5 | uint16(bl>>11)
		p[0], p[1] = byte(v), byte(v>>8)
	case FormatRGB8:
		r, g, bl, _ := c.RGBA()
		p[0], p[1], p[2] = byte(r>>8), byte(g>>8), byte(bl>>8)
	case FormatRGBA8:
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		p[0], p[1], p[2], p[3] = n.R, n.G, n.B, n.A
	case FormatBGRA8:
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		p[0], p[1], p[2], p[3] = n.B, n.G, n.R, n.A
	}
}

// Blend composites c over the pixel at (x, y) (Porter-Duff source-over).
// Opaque colours are written directly; fully transparent ones are skipped.
func (b *Buffer) Blend(x, y int, c color.Color) {
	sr, sg, sb, sa := c.RGBA()
	switch sa {
	case 0:
		return
	case 0xffff:
		b.Set(x, y, c)
		return
	}
	if b.PixelOffset(x, y) < 0 {
		return
	}
	dr, dg, db, da := b.At(x, y).RGBA()
	inv := 0xffff - sa
	b.Set(x, y, color.RGBA64{
		R: uint16(sr + dr*inv/0xffff),
		G: uint16(sg + dg*inv/0xffff),
		B: uint16(sb + db*inv/0xffff),
		A: uint16(sa + da*inv/0xffff),
	})
}
