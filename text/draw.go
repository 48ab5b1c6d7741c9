package text

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/math/fixed"
)

// Draw renders s onto dst with the top-left corner of its line box at
// (x, y). The baseline sits Ascent pixels below y. Glyphs falling outside
// dst are clipped.
func Draw(dst draw.Image, s string, face *Face, x, y int, col color.Color) {
	if s == "" || face == nil {
		return
	}
	bounds := dst.Bounds()
	lh := face.LineHeight()
	if y-lh >= bounds.Max.Y || y+2*lh <= bounds.Min.Y || x >= bounds.Max.X {
		return
	}

	runes := []rune(Visual(s))
	pos := face.penPositions(runes)
	src := image.NewUniform(col)
	baseline := fixed.I(face.Ascent())

	// Glyphs are rasterized at a dot near the origin and moved into place,
	// so far-away coordinates never overflow 26.6 fixed point.
	for i, r := range runes {
		ix := math.Floor(pos[i])
		dot := fixed.Point26_6{X: floatToFixed(pos[i] - ix), Y: baseline}
		dr, mask, maskp, _, ok := face.face.Glyph(dot, r)
		if !ok {
			continue
		}
		dr = dr.Add(image.Pt(x+int(ix), y))
		if !dr.Overlaps(bounds) {
			continue
		}
		draw.DrawMask(dst, dr, src, image.Point{}, mask, maskp, draw.Over)
	}
}

// Measure returns the width and height in pixels of the line box that
// Draw would fill for s.
func Measure(s string, face *Face) (width, height int) {
	if s == "" || face == nil {
		return 0, 0
	}
	runes := []rune(Visual(s))
	pos := face.penPositions(runes)
	last, _ := face.face.GlyphAdvance(runes[len(runes)-1])
	w := floatToFixed(pos[len(pos)-1]) + last
	return w.Ceil(), face.LineHeight()
}
