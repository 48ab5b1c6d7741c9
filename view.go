package imageview

import (
	"fmt"
	"image"
	"image/color"
	"iter"
	"log/slog"

	"github.com/gogpu/imageview/raster"
)

// View composites a stream of frames with a persistent set of overlay
// shapes.
//
// A View owns one frame buffer of a declared width, height and format.
// Frames replace the buffer wholesale; shapes stay registered and are drawn
// over every frame until removed. No method repaints: callers decide when
// to Compose, and Dirty tells them whether anything changed since the last
// call.
//
// View is not safe for concurrent use. Producers on other goroutines must
// hand frames to the goroutine that owns the view; the last accepted frame
// wins.
type View struct {
	width  int
	height int
	format raster.Format

	frame    *raster.Buffer
	cov      *coverage
	registry *Registry
	opts     options
	dirty    bool
}

// New creates a view for frames of the given dimensions and format.
// The initial frame is all zero bytes.
func New(width, height int, format raster.Format, opts ...Option) (*View, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	v := &View{registry: NewRegistry(), opts: o}
	if err := v.ChangeFormat(width, height, format); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *View) log() *slog.Logger {
	if v.opts.logger != nil {
		return v.opts.logger
	}
	return Logger()
}

// Width returns the declared frame width in pixels.
func (v *View) Width() int { return v.width }

// Height returns the declared frame height in pixels.
func (v *View) Height() int { return v.height }

// Format returns the declared pixel format.
func (v *View) Format() raster.Format { return v.format }

// FrameBytes returns the byte count AddImage expects.
func (v *View) FrameBytes() int { return v.format.ImageBytes(v.width, v.height) }

// Dirty reports whether frames or shapes changed since the last Compose.
func (v *View) Dirty() bool { return v.dirty }

// ChangeFormat replaces the declared contract and reallocates a zeroed
// frame buffer; the previous frame is discarded. Shapes and group state are
// kept at their original coordinates. On error the view is unchanged.
func (v *View) ChangeFormat(width, height int, format raster.Format) error {
	frame, err := raster.NewBuffer(width, height, format)
	if err != nil {
		v.log().Warn("imageview: format rejected",
			"width", width, "height", height, "format", format.String())
		return fmt.Errorf("imageview: change format to %dx%d %s: %w", width, height, format, err)
	}

	v.width, v.height, v.format = width, height, format
	v.frame = frame
	v.cov = newCoverage(width, height)
	v.dirty = true
	v.log().Debug("imageview: format changed",
		"width", width, "height", height, "format", format.String())
	return nil
}

// AddImage replaces the frame with data, which must hold exactly
// FrameBytes bytes in the declared format. A rejected frame leaves the
// previous frame untouched.
func (v *View) AddImage(data []byte) error {
	if err := v.frame.Replace(data); err != nil {
		v.log().Warn("imageview: frame rejected", "bytes", len(data), "want", v.FrameBytes())
		return err
	}
	v.dirty = true
	v.log().Debug("imageview: frame accepted", "bytes", len(data))
	return nil
}

// AddImageAndScale accepts a frame of origWidth x origHeight pixels in the
// declared format and resamples it to fill the declared dimensions. When
// the source dimensions already match it behaves exactly like AddImage.
func (v *View) AddImageAndScale(data []byte, origWidth, origHeight int) error {
	if origWidth == v.width && origHeight == v.height {
		return v.AddImage(data)
	}

	src, err := raster.Wrap(data, origWidth, origHeight, v.format)
	if err != nil {
		v.log().Warn("imageview: scaled frame rejected",
			"bytes", len(data), "width", origWidth, "height", origHeight, "error", err)
		return err
	}
	if err := raster.Scale(v.frame, src, v.opts.interp); err != nil {
		return err
	}
	v.dirty = true
	v.log().Debug("imageview: frame scaled",
		"from", image.Pt(origWidth, origHeight), "to", image.Pt(v.width, v.height),
		"interp", v.opts.interp.String())
	return nil
}

// AddItem registers s on top of all existing shapes and returns its handle.
func (v *View) AddItem(s Shape) Handle {
	v.dirty = true
	return v.registry.Add(s)
}

// AddText adds a text whose line box starts at (x, y). Unlike
// QPainter.drawText, y is the top of the line box, not the baseline; the
// baseline sits Face.Ascent pixels lower.
func (v *View) AddText(x, y, group int, c color.Color, s string) Handle {
	return v.AddItem(NewText(x, y, group, c, s))
}

// AddLine adds a line from (x, y) to (endX, endY).
func (v *View) AddLine(x, y, group int, c color.Color, endX, endY int) Handle {
	return v.AddItem(NewLine(x, y, group, c, endX, endY))
}

// AddEllipse adds an unfilled ellipse inscribed in the given rectangle.
func (v *View) AddEllipse(x, y, group int, c color.Color, width, height int) Handle {
	return v.AddItem(NewEllipse(x, y, group, c, width, height))
}

// AddRectangle adds an unfilled rectangle.
func (v *View) AddRectangle(x, y, group int, c color.Color, width, height int) Handle {
	return v.AddItem(NewRectangle(x, y, group, c, width, height))
}

// AddPolyline adds connected segments through points.
// Fewer than 2 points fail with ErrMalformedGeometry and add nothing.
func (v *View) AddPolyline(group int, c color.Color, points []image.Point) (Handle, error) {
	s, err := NewPolyline(group, c, points)
	if err != nil {
		return Handle{}, err
	}
	return v.AddItem(s), nil
}

// AddPolygon adds a closed polygon outline through points.
// Fewer than 2 points fail with ErrMalformedGeometry and add nothing.
func (v *View) AddPolygon(group int, c color.Color, points []image.Point) (Handle, error) {
	s, err := NewPolygon(group, c, points)
	if err != nil {
		return Handle{}, err
	}
	return v.AddItem(s), nil
}

// RemoveItem removes the shape referenced by h. Stale handles report
// ErrNotFound and change nothing.
func (v *View) RemoveItem(h Handle) error {
	if err := v.registry.Remove(h); err != nil {
		v.log().Warn("imageview: remove of unknown shape", "handle", h)
		return err
	}
	v.dirty = true
	return nil
}

// RemoveAll removes every shape of kind k and returns how many were removed.
func (v *View) RemoveAll(k Kind) int {
	n := v.registry.RemoveKind(k)
	if n > 0 {
		v.dirty = true
	}
	return n
}

// RemoveAllItems removes every shape. Group visibility is kept.
func (v *View) RemoveAllItems() {
	if v.registry.Len() > 0 {
		v.dirty = true
	}
	v.registry.Clear()
}

// SetGroupStatus shows (enable) or hides every shape of group.
// Ungrouped shapes are never affected.
func (v *View) SetGroupStatus(group int, enable bool) {
	if group != NoGroup && v.registry.GroupEnabled(group) != enable {
		v.dirty = true
	}
	v.registry.SetGroupEnabled(group, enable)
}

// ClearGroups makes every group visible again.
func (v *View) ClearGroups() {
	if len(v.registry.disabled) > 0 {
		v.dirty = true
	}
	v.registry.ClearGroups()
}

// GroupEnabled reports whether shapes of group are drawn.
func (v *View) GroupEnabled(group int) bool {
	return v.registry.GroupEnabled(group)
}

// Visible reports whether the shape referenced by h is live and would be
// drawn by the next Compose.
func (v *View) Visible(h Handle) bool {
	s, ok := v.registry.Lookup(h)
	return ok && v.registry.Visible(s)
}

// Len returns the number of registered shapes.
func (v *View) Len() int { return v.registry.Len() }

// Lookup returns the shape referenced by h.
func (v *View) Lookup(h Handle) (Shape, bool) { return v.registry.Lookup(h) }

// Items iterates over the registered shapes in paint order.
func (v *View) Items() iter.Seq2[Handle, Shape] { return v.registry.All() }

// Compose returns a new raster with the current frame and every visible
// shape drawn over it in insertion order. The buffer comes from the view's
// pool; hand it back with Release when done.
func (v *View) Compose() *raster.Buffer {
	dst, err := v.opts.pool.Get(v.width, v.height, v.format)
	if err != nil {
		// Unreachable: the contract was validated by ChangeFormat.
		dst = v.frame.Clone()
	}
	if err := v.ComposeInto(dst); err != nil {
		v.log().Warn("imageview: compose into pooled buffer failed", "error", err)
	}
	return dst
}

// ComposeInto composites into dst, which must match the declared contract.
func (v *View) ComposeInto(dst *raster.Buffer) error {
	if err := dst.CopyFrom(v.frame); err != nil {
		v.log().Warn("imageview: compose target rejected", "error", err)
		return err
	}

	drawn := 0
	for s := range v.registry.VisibleShapes() {
		drawShape(dst, v.cov, v.opts.face, s)
		drawn++
	}
	v.dirty = false
	v.log().Debug("imageview: composed", "shapes", v.registry.Len(), "drawn", drawn)
	return nil
}

// Release returns a buffer obtained from Compose to the view's pool.
func (v *View) Release(buf *raster.Buffer) {
	v.opts.pool.Put(buf)
}
