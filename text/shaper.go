package text

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// HarfbuzzShaper keeps a mutable buffer and is not safe for concurrent
// use, so instances are pooled.
var shaperPool = sync.Pool{
	New: func() any {
		return &shaping.HarfbuzzShaper{}
	},
}

// penPositions returns the horizontal pen offset, in pixels, at which each
// rune of runes starts. The runes are expected in visual order.
func (f *Face) penPositions(runes []rune) []float64 {
	if len(runes) == 0 {
		return nil
	}
	if f.Shaped() {
		if pos, ok := f.shapedPositions(runes); ok {
			return pos
		}
	}
	return f.advancePositions(runes)
}

// advancePositions lays runes out with the x/image advances and kerning.
func (f *Face) advancePositions(runes []rune) []float64 {
	pos := make([]float64, len(runes))
	var x fixed.Int26_6
	prev := rune(-1)
	for i, r := range runes {
		if prev >= 0 {
			x += f.face.Kern(prev, r)
		}
		pos[i] = fixedToFloat(x)
		adv, _ := f.face.GlyphAdvance(r)
		x += adv
		prev = r
	}
	return pos
}

// shapedPositions runs HarfBuzz over runes. Runes merged into another
// rune's cluster (ligatures) are placed after their predecessor using the
// face advance.
func (f *Face) shapedPositions(runes []rune) ([]float64, bool) {
	font, err := f.shapingFont()
	if err != nil {
		return nil, false
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gotext.NewFace(font),
		Size:      floatToFixed(f.size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	shaperPool.Put(hb)

	pos := make([]float64, len(runes))
	placed := make([]bool, len(runes))
	var x float64
	for _, g := range output.Glyphs {
		idx := g.TextIndex()
		if idx >= 0 && idx < len(runes) && !placed[idx] {
			pos[idx] = x + fixedToFloat(g.XOffset)
			placed[idx] = true
		}
		x += fixedToFloat(g.Advance)
	}

	for i := range runes {
		if placed[i] || i == 0 {
			continue
		}
		adv, _ := f.face.GlyphAdvance(runes[i-1])
		pos[i] = pos[i-1] + fixedToFloat(adv)
	}
	return pos, true
}

// shapingFont parses the face data with go-text/typesetting once.
func (f *Face) shapingFont() (*gotext.Font, error) {
	if f.shapeFont != nil || f.shapeErr != nil {
		return f.shapeFont, f.shapeErr
	}
	face, err := gotext.ParseTTF(bytes.NewReader(f.data))
	if err != nil {
		f.shapeErr = err
		return nil, err
	}
	f.shapeFont = face.Font
	return f.shapeFont, nil
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
