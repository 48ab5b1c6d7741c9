package imageview

import (
	"errors"
	"image"
	"image/color"
	"slices"
	"testing"
)

// texts returns the text of every live shape in paint order.
func texts(r *Registry) []string {
	var out []string
	for _, s := range r.All() {
		out = append(out, s.Text())
	}
	return out
}

func TestRegistry_AddLookup(t *testing.T) {
	r := NewRegistry()
	h := r.Add(NewText(1, 2, 3, color.White, "a"))
	if h.IsZero() {
		t.Fatal("Add() returned the zero handle")
	}
	s, ok := r.Lookup(h)
	if !ok {
		t.Fatal("Lookup() ok = false")
	}
	if s.Text() != "a" || s.Group() != 3 {
		t.Errorf("Lookup() = %+v", s)
	}
	if _, ok := r.Lookup(Handle{}); ok {
		t.Error("Lookup(zero handle) ok = true")
	}
}

func TestRegistry_RemovePreservesOrder(t *testing.T) {
	r := NewRegistry()
	var hs []Handle
	for _, s := range []string{"a", "b", "c", "d"} {
		hs = append(hs, r.Add(NewText(0, 0, NoGroup, nil, s)))
	}

	if err := r.Remove(hs[1]); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if got, want := texts(r), []string{"a", "c", "d"}; !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if err := r.Remove(hs[1]); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Remove() error = %v, want ErrNotFound", err)
	}
	if r.Contains(hs[1]) {
		t.Error("Contains(removed) = true")
	}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}
}

func TestRegistry_StaleHandleAfterReuse(t *testing.T) {
	r := NewRegistry()
	old := r.Add(NewText(0, 0, NoGroup, nil, "old"))
	if err := r.Remove(old); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	// The freed slot is recycled, but the old handle must not reach it.
	fresh := r.Add(NewText(0, 0, NoGroup, nil, "new"))
	if fresh == old {
		t.Fatal("handle was reissued")
	}
	if _, ok := r.Lookup(old); ok {
		t.Error("stale handle resolved to the new shape")
	}
	if err := r.Remove(old); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove(stale) error = %v, want ErrNotFound", err)
	}
	if got := texts(r); !slices.Equal(got, []string{"new"}) {
		t.Errorf("stale removal touched live shapes: %v", got)
	}
}

func TestRegistry_RemoveKind(t *testing.T) {
	r := NewRegistry()
	r.Add(NewText(0, 0, NoGroup, nil, "t1"))
	r.Add(NewLine(0, 0, NoGroup, nil, 1, 1))
	r.Add(NewText(0, 0, NoGroup, nil, "t2"))
	r.Add(NewEllipse(0, 0, NoGroup, nil, 2, 2))
	r.Add(NewLine(0, 0, NoGroup, nil, 2, 2))

	if n := r.RemoveKind(KindLine); n != 2 {
		t.Errorf("RemoveKind(Line) = %d, want 2", n)
	}
	var kinds []Kind
	for _, s := range r.All() {
		kinds = append(kinds, s.Kind())
	}
	if want := []Kind{KindText, KindText, KindEllipse}; !slices.Equal(kinds, want) {
		t.Errorf("kinds = %v, want %v", kinds, want)
	}
	if n := r.RemoveKind(KindPolygon); n != 0 {
		t.Errorf("RemoveKind(Polygon) = %d, want 0", n)
	}
}

func TestRegistry_ClearKeepsGroups(t *testing.T) {
	r := NewRegistry()
	h := r.Add(NewText(0, 0, 1, nil, "x"))
	r.SetGroupEnabled(1, false)

	r.Clear()
	r.Clear()
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
	if r.Contains(h) {
		t.Error("cleared handle still valid")
	}
	if r.GroupEnabled(1) {
		t.Error("Clear() re-enabled group 1")
	}
}

func TestRegistry_Groups(t *testing.T) {
	r := NewRegistry()
	grouped := NewLine(0, 0, 7, nil, 1, 1)
	ungrouped := NewLine(0, 0, NoGroup, nil, 1, 1)

	r.SetGroupEnabled(7, false)
	r.SetGroupEnabled(9, false)
	r.SetGroupEnabled(NoGroup, false)
	if r.Visible(grouped) {
		t.Error("shape of disabled group is visible")
	}
	if !r.Visible(ungrouped) {
		t.Error("ungrouped shape hidden by group operation")
	}
	if got, want := r.DisabledGroups(), []int{7, 9}; !slices.Equal(got, want) {
		t.Errorf("DisabledGroups() = %v, want %v", got, want)
	}

	r.SetGroupEnabled(7, true)
	if !r.Visible(grouped) {
		t.Error("re-enabled group still hidden")
	}

	r.SetGroupEnabled(7, false)
	r.ClearGroups()
	if len(r.DisabledGroups()) != 0 {
		t.Errorf("ClearGroups() left %v", r.DisabledGroups())
	}
}

func TestRegistry_VisibleShapes(t *testing.T) {
	r := NewRegistry()
	r.Add(NewText(0, 0, 1, nil, "one"))
	r.Add(NewText(0, 0, 2, nil, "two"))
	r.Add(NewText(0, 0, NoGroup, nil, "free"))
	r.SetGroupEnabled(1, false)

	var got []string
	for s := range r.VisibleShapes() {
		got = append(got, s.Text())
	}
	if want := []string{"two", "free"}; !slices.Equal(got, want) {
		t.Errorf("VisibleShapes() = %v, want %v", got, want)
	}
}

func TestRegistry_AllStopsEarly(t *testing.T) {
	r := NewRegistry()
	for range 5 {
		r.Add(NewLine(0, 0, NoGroup, nil, 1, 1))
	}
	n := 0
	for range r.All() {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("iterated %d shapes, want 2", n)
	}
}

func TestShape_Constructors(t *testing.T) {
	pts := []image.Point{{0, 0}, {5, 5}}

	if _, err := NewPolyline(1, nil, pts[:1]); !errors.Is(err, ErrMalformedGeometry) {
		t.Errorf("NewPolyline(1 point) error = %v, want ErrMalformedGeometry", err)
	}
	if _, err := NewPolygon(1, nil, nil); !errors.Is(err, ErrMalformedGeometry) {
		t.Errorf("NewPolygon(nil) error = %v, want ErrMalformedGeometry", err)
	}
	if _, err := NewFilledPolygon(1, nil, pts[:1]); !errors.Is(err, ErrMalformedGeometry) {
		t.Errorf("NewFilledPolygon(1 point) error = %v, want ErrMalformedGeometry", err)
	}

	s, err := NewPolyline(1, nil, pts)
	if err != nil {
		t.Fatalf("NewPolyline() error = %v", err)
	}
	pts[0] = image.Pt(99, 99)
	if s.Points()[0] != image.Pt(0, 0) {
		t.Error("shape shares the caller's point slice")
	}
	s.Points()[1] = image.Pt(42, 42)
	if s.Points()[1] != image.Pt(5, 5) {
		t.Error("Points() exposes internal storage")
	}

	if s.Color() != color.Black {
		t.Errorf("nil colour = %v, want black", s.Color())
	}

	fp, _ := NewFilledPolygon(0, nil, []image.Point{{0, 0}, {4, 0}, {0, 4}})
	if !fp.Filled() || fp.Kind() != KindPolygon {
		t.Errorf("NewFilledPolygon() = kind %v filled %v", fp.Kind(), fp.Filled())
	}
}

func TestShape_Bounds(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		want  image.Rectangle
	}{
		{"line", NewLine(3, 4, 0, nil, 1, 8), image.Rect(1, 4, 4, 9)},
		{"rectangle", NewRectangle(2, 2, 0, nil, 3, 4), image.Rect(2, 2, 6, 7)},
		{"negative size", NewEllipse(5, 5, 0, nil, -2, -2), image.Rect(3, 3, 6, 6)},
		{"text", NewText(7, 1, 0, nil, "abc"), image.Rect(7, 1, 8, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.shape.Bounds(); got != tt.want {
				t.Errorf("Bounds() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	for k := KindText; k <= KindPolygon; k++ {
		if k.String() == "Unknown" {
			t.Errorf("kind %d has no name", k)
		}
	}
	if Kind(0).String() != "Unknown" {
		t.Errorf("Kind(0).String() = %q", Kind(0).String())
	}
}
