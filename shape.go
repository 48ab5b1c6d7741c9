package imageview

import (
	"image"
	"image/color"
	"slices"
)

// Kind identifies the variant of a Shape.
type Kind uint8

const (
	// KindText is a string drawn with the view's face.
	KindText Kind = iota + 1

	// KindLine is a straight segment between two points.
	KindLine

	// KindEllipse is an unfilled ellipse inscribed in a bounding box.
	KindEllipse

	// KindRectangle is an unfilled rectangle.
	KindRectangle

	// KindPolyline is an open chain of segments.
	KindPolyline

	// KindPolygon is a closed chain of segments, optionally filled.
	KindPolygon
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindLine:
		return "Line"
	case KindEllipse:
		return "Ellipse"
	case KindRectangle:
		return "Rectangle"
	case KindPolyline:
		return "Polyline"
	case KindPolygon:
		return "Polygon"
	default:
		return "Unknown"
	}
}

// NoGroup is the group of shapes that ignore group visibility.
const NoGroup = 0

// Shape is an overlay primitive drawn on top of every frame until removed.
//
// Shape is a closed variant: Kind selects which geometry fields are
// meaningful. Shapes are immutable once constructed; build them with the
// New* functions.
type Shape struct {
	kind   Kind
	group  int
	color  color.Color
	text   string
	points []image.Point // text: origin; line: 2 ends; polyline, polygon: vertices
	box    image.Rectangle
	filled bool
}

// NewText returns a text shape whose line box starts at (x, y). y is the
// top of the line box, not the baseline as with QPainter.drawText.
func NewText(x, y, group int, c color.Color, s string) Shape {
	return Shape{kind: KindText, group: group, color: c, text: s, points: []image.Point{{x, y}}}
}

// NewLine returns a line from (x, y) to (endX, endY).
func NewLine(x, y, group int, c color.Color, endX, endY int) Shape {
	return Shape{kind: KindLine, group: group, color: c, points: []image.Point{{x, y}, {endX, endY}}}
}

// NewEllipse returns the outline of an ellipse inscribed in the rectangle
// with top-left (x, y) and the given width and height.
func NewEllipse(x, y, group int, c color.Color, width, height int) Shape {
	return Shape{kind: KindEllipse, group: group, color: c, box: image.Rect(x, y, x+width, y+height)}
}

// NewRectangle returns the outline of the rectangle with top-left (x, y)
// and the given width and height. Like a cosmetic pen, the right and bottom
// edges are drawn on column x+width and row y+height.
func NewRectangle(x, y, group int, c color.Color, width, height int) Shape {
	return Shape{kind: KindRectangle, group: group, color: c, box: image.Rect(x, y, x+width, y+height)}
}

// NewPolyline returns segments joining consecutive points.
// It fails with ErrMalformedGeometry for fewer than 2 points.
func NewPolyline(group int, c color.Color, points []image.Point) (Shape, error) {
	if len(points) < 2 {
		return Shape{}, ErrMalformedGeometry
	}
	return Shape{kind: KindPolyline, group: group, color: c, points: slices.Clone(points)}, nil
}

// NewPolygon returns the outline of the polygon through points, closed by
// an edge from the last point back to the first.
// It fails with ErrMalformedGeometry for fewer than 2 points.
func NewPolygon(group int, c color.Color, points []image.Point) (Shape, error) {
	if len(points) < 2 {
		return Shape{}, ErrMalformedGeometry
	}
	return Shape{kind: KindPolygon, group: group, color: c, points: slices.Clone(points)}, nil
}

// NewFilledPolygon is like NewPolygon but also fills the interior using the
// non-zero winding rule.
func NewFilledPolygon(group int, c color.Color, points []image.Point) (Shape, error) {
	s, err := NewPolygon(group, c, points)
	s.filled = err == nil
	return s, err
}

// Kind returns the shape variant.
func (s Shape) Kind() Kind { return s.kind }

// Group returns the group number; NoGroup means ungrouped.
func (s Shape) Group() int { return s.group }

// Color returns the drawing colour. A nil colour draws opaque black.
func (s Shape) Color() color.Color {
	if s.color == nil {
		return color.Black
	}
	return s.color
}

// Text returns the string of a text shape.
func (s Shape) Text() string { return s.text }

// Filled reports whether a polygon has its interior filled.
func (s Shape) Filled() bool { return s.filled }

// Points returns a copy of the shape's points: the origin of a text, the two
// ends of a line, or the vertices of a polyline or polygon.
func (s Shape) Points() []image.Point { return slices.Clone(s.points) }

// Box returns the bounding box of an ellipse or rectangle.
func (s Shape) Box() image.Rectangle { return s.box }

// Bounds returns the smallest rectangle containing every point of the
// shape's geometry, excluding the extent of text glyphs.
func (s Shape) Bounds() image.Rectangle {
	switch s.kind {
	case KindEllipse, KindRectangle:
		return image.Rectangle{Min: s.box.Min, Max: s.box.Max.Add(image.Pt(1, 1))}
	}
	if len(s.points) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: s.points[0], Max: s.points[0].Add(image.Pt(1, 1))}
	for _, p := range s.points[1:] {
		r = r.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
	}
	return r
}
