package imageview

import (
	"image"
	"image/color"
	"math"
	"math/bits"

	"golang.org/x/image/vector"

	"github.com/gogpu/imageview/raster"
	"github.com/gogpu/imageview/text"
)

// coverage is a reusable canvas-sized alpha mask. Each outline is first
// plotted into the mask and then composited once, so pixels shared by
// adjacent segments are not blended twice.
type coverage struct {
	mask  *image.Alpha
	dirty image.Rectangle
	fill  *vector.Rasterizer
}

func newCoverage(width, height int) *coverage {
	return &coverage{mask: image.NewAlpha(image.Rect(0, 0, width, height))}
}

// plot marks pixel (x, y) as fully covered. Pixels off the canvas are dropped.
func (c *coverage) plot(x, y int) {
	if !(image.Point{x, y}).In(c.mask.Rect) {
		return
	}
	c.mask.Pix[c.mask.PixOffset(x, y)] = 0xff
	c.dirty = c.dirty.Union(image.Rect(x, y, x+1, y+1))
}

// flush blends col into dst through the mask and clears the touched area.
func (c *coverage) flush(dst *raster.Buffer, col color.Color) {
	r, g, b, a := col.RGBA()
	for y := c.dirty.Min.Y; y < c.dirty.Max.Y; y++ {
		for x := c.dirty.Min.X; x < c.dirty.Max.X; x++ {
			off := c.mask.PixOffset(x, y)
			m := uint32(c.mask.Pix[off])
			if m == 0 {
				continue
			}
			c.mask.Pix[off] = 0
			if m == 0xff {
				dst.Blend(x, y, col)
				continue
			}
			m *= 0x101
			dst.Blend(x, y, color.RGBA64{
				R: uint16(r * m / 0xffff),
				G: uint16(g * m / 0xffff),
				B: uint16(b * m / 0xffff),
				A: uint16(a * m / 0xffff),
			})
		}
	}
	c.dirty = image.Rectangle{}
}

// line plots a one pixel wide Bresenham segment, endpoints included.
// Only the steps of the major axis that fall on the canvas are walked, so
// the cost is bounded by the canvas size however long the segment is.
func (c *coverage) line(x0, y0, x1, y1 int) {
	b := c.mask.Rect
	if (x0 < b.Min.X && x1 < b.Min.X) || (x0 >= b.Max.X && x1 >= b.Max.X) ||
		(y0 < b.Min.Y && y1 < b.Min.Y) || (y0 >= b.Max.Y && y1 >= b.Max.Y) {
		return
	}

	dx, sx := abs(x1-x0), sign(x1-x0)
	dy, sy := abs(y1-y0), sign(y1-y0)
	if dx >= dy {
		first, last := span(x0, sx, dx, b.Min.X, b.Max.X)
		if first > last {
			return
		}
		j, r := minorStep(first, dx, dy)
		for i := first; i <= last; i++ {
			c.plot(x0+sx*i, y0+sy*j)
			if r += 2 * dy; r >= 2*dx {
				r -= 2 * dx
				j++
			}
		}
		return
	}
	first, last := span(y0, sy, dy, b.Min.Y, b.Max.Y)
	if first > last {
		return
	}
	j, r := minorStep(first, dy, dx)
	for i := first; i <= last; i++ {
		c.plot(x0+sx*j, y0+sy*i)
		if r += 2 * dx; r >= 2*dy {
			r -= 2 * dy
			j++
		}
	}
}

// span returns the range of steps i in [0, n] for which p0 + s*i lies in
// [lo, hi). The range is empty when first > last.
func span(p0, s, n, lo, hi int) (first, last int) {
	first, last = 0, n
	switch {
	case s > 0:
		first = max(first, lo-p0)
		last = min(last, hi-1-p0)
	case s < 0:
		first = max(first, p0-(hi-1))
		last = min(last, p0-lo)
	}
	return first, last
}

// minorStep returns the minor-axis offset of a segment with major length n
// and minor length m at major step i, as floor((2*i*m + n) / (2*n)), and
// the remainder of that division. The product is taken in 128 bits.
func minorStep(i, n, m int) (j, r int) {
	if n == 0 {
		return 0, 0
	}
	hi, lo := bits.Mul64(uint64(2*i), uint64(m)) //nolint:gosec // i, m >= 0
	lo, carry := bits.Add64(lo, uint64(n), 0)    //nolint:gosec // n > 0
	q, rem := bits.Div64(hi+carry, lo, uint64(2*n))
	return int(q), int(rem) //nolint:gosec // q <= m, rem < 2n
}

// polyline plots segments between consecutive points; closed adds the edge
// from the last point back to the first.
func (c *coverage) polyline(pts []image.Point, closed bool) {
	for i := 1; i < len(pts); i++ {
		c.line(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y)
	}
	if closed && len(pts) > 2 {
		last := pts[len(pts)-1]
		c.line(last.X, last.Y, pts[0].X, pts[0].Y)
	}
}

// rect plots the outline of r, with Max inclusive.
func (c *coverage) rect(r image.Rectangle) {
	c.polyline([]image.Point{
		r.Min,
		{r.Max.X, r.Min.Y},
		r.Max,
		{r.Min.X, r.Max.Y},
	}, true)
}

// ellipse plots the outline of the ellipse inscribed in r, with Max
// inclusive. Each canvas column meeting the box gets the run of rows
// between its boundary row and its neighbours', which keeps the outline
// connected on steep arcs. The lower half mirrors the upper one.
func (c *coverage) ellipse(r image.Rectangle) {
	b := c.mask.Rect
	outer := image.Rectangle{Min: r.Min, Max: r.Max.Add(image.Pt(1, 1))}
	if !outer.Overlaps(b) {
		return
	}
	if r.Dx() == 0 || r.Dy() == 0 {
		c.line(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
		return
	}

	cx := (float64(r.Min.X) + float64(r.Max.X)) / 2
	cy := (float64(r.Min.Y) + float64(r.Max.Y)) / 2
	rx, ry := float64(r.Dx())/2, float64(r.Dy())/2
	mid := int(math.Floor(cy))
	top := func(x int) int {
		t := (float64(x) - cx) / rx
		h := ry * math.Sqrt(max(0, 1-t*t))
		return min(int(math.Floor(cy-h+0.5)), mid)
	}
	mirror := r.Min.Y + r.Max.Y

	for x := max(r.Min.X, b.Min.X); x <= min(r.Max.X, b.Max.X-1); x++ {
		y := top(x)
		end := y
		if x > r.Min.X {
			end = max(end, top(x-1)-1)
		}
		if x < r.Max.X {
			end = max(end, top(x+1)-1)
		}
		end = min(end, mid)

		for row := max(y, b.Min.Y); row <= min(end, b.Max.Y-1); row++ {
			c.plot(x, row)
		}
		for row := max(mirror-end, b.Min.Y); row <= min(mirror-y, b.Max.Y-1); row++ {
			c.plot(x, row)
		}
	}
}

// fillPolygon accumulates the interior of the polygon into the mask with
// anti-aliased coverage. Vertices sit on pixel centres so the fill lines up
// with the outline. The polygon is first clipped to a margin around the
// canvas so the rasterizer only sees small coordinates.
func (c *coverage) fillPolygon(pts []image.Point) {
	size := c.mask.Rect.Size()
	poly := make([]fpoint, len(pts))
	for i, p := range pts {
		poly[i] = fpoint{float64(p.X) + 0.5, float64(p.Y) + 0.5}
	}
	poly = clipPolygon(poly, -1, -1, float64(size.X)+1, float64(size.Y)+1)
	if len(poly) < 3 {
		return
	}

	if c.fill == nil {
		c.fill = vector.NewRasterizer(size.X, size.Y)
	} else {
		c.fill.Reset(size.X, size.Y)
	}
	z := c.fill
	z.MoveTo(float32(poly[0].x), float32(poly[0].y))
	for _, p := range poly[1:] {
		z.LineTo(float32(p.x), float32(p.y))
	}
	z.ClosePath()
	z.Draw(c.mask, c.mask.Rect, image.Opaque, image.Point{})

	// The rasterizer may touch any row; the bounding box of the vertices
	// clipped to the canvas bounds what it wrote.
	bounds := image.Rectangle{}
	for _, p := range pts {
		bounds = bounds.Union(image.Rect(p.X, p.Y, p.X+2, p.Y+2))
	}
	c.dirty = c.dirty.Union(bounds.Intersect(c.mask.Rect))
}

type fpoint struct{ x, y float64 }

// clipPolygon clips poly to the rectangle [x0, x1] x [y0, y1] one edge at a
// time (Sutherland-Hodgman). Winding numbers inside the rectangle are kept,
// so the non-zero fill of the result matches the original there.
func clipPolygon(poly []fpoint, x0, y0, x1, y1 float64) []fpoint {
	edges := []struct {
		inside func(fpoint) bool
		cross  func(a, b fpoint) fpoint
	}{
		{func(p fpoint) bool { return p.x >= x0 }, func(a, b fpoint) fpoint { return atX(a, b, x0) }},
		{func(p fpoint) bool { return p.x <= x1 }, func(a, b fpoint) fpoint { return atX(a, b, x1) }},
		{func(p fpoint) bool { return p.y >= y0 }, func(a, b fpoint) fpoint { return atY(a, b, y0) }},
		{func(p fpoint) bool { return p.y <= y1 }, func(a, b fpoint) fpoint { return atY(a, b, y1) }},
	}
	for _, e := range edges {
		if len(poly) == 0 {
			return nil
		}
		out := make([]fpoint, 0, len(poly)+4)
		prev := poly[len(poly)-1]
		for _, p := range poly {
			switch in, prevIn := e.inside(p), e.inside(prev); {
			case in && prevIn:
				out = append(out, p)
			case in:
				out = append(out, e.cross(prev, p), p)
			case prevIn:
				out = append(out, e.cross(prev, p))
			}
			prev = p
		}
		poly = out
	}
	return poly
}

func atX(a, b fpoint, x float64) fpoint {
	t := (x - a.x) / (b.x - a.x)
	return fpoint{x, a.y + t*(b.y-a.y)}
}

func atY(a, b fpoint, y float64) fpoint {
	t := (y - a.y) / (b.y - a.y)
	return fpoint{a.x + t*(b.x-a.x), y}
}

// drawShape renders s onto dst according to its kind.
func drawShape(dst *raster.Buffer, cov *coverage, face *text.Face, s Shape) {
	col := s.Color()
	switch s.kind {
	case KindText:
		p := s.points[0]
		text.Draw(dst, s.text, face, p.X, p.Y, col)
		return
	case KindLine:
		a, b := s.points[0], s.points[1]
		cov.line(a.X, a.Y, b.X, b.Y)
	case KindEllipse:
		cov.ellipse(s.box)
	case KindRectangle:
		cov.rect(s.box)
	case KindPolyline:
		cov.polyline(s.points, false)
	case KindPolygon:
		if s.filled {
			cov.fillPolygon(s.points)
		}
		cov.polyline(s.points, true)
	default:
		return
	}
	cov.flush(dst, col)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
