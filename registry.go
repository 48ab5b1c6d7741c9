package imageview

import (
	"iter"
	"math"
	"slices"
)

// Handle is an opaque, non-owning reference to a shape held by a Registry.
//
// A handle stays valid until its shape is removed. Afterwards every
// operation reports ErrNotFound for it; handles are never reissued, so a
// stale handle cannot reach a newer shape. The zero Handle is never valid.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool {
	return h == Handle{}
}

// slot is one arena entry. gen is odd while the slot holds a live shape.
type slot struct {
	shape Shape
	gen   uint32
}

func (s *slot) live() bool { return s.gen&1 == 1 }

// Registry is the ordered set of live shapes plus the set of disabled
// groups. Insertion order is paint order: later shapes are drawn on top.
//
// Shapes live in an arena of slots addressed by index and generation; the
// paint order is kept as a dense slice of slot indices.
//
// Registry is not safe for concurrent use.
type Registry struct {
	slots    []slot
	free     []uint32
	order    []uint32
	disabled map[int]struct{}
}

// NewRegistry returns an empty registry with every group enabled.
func NewRegistry() *Registry {
	return &Registry{disabled: make(map[int]struct{})}
}

// Add appends s to the paint order and returns its handle.
func (r *Registry) Add(s Shape) Handle {
	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		r.slots = append(r.slots, slot{})
		idx = uint32(len(r.slots) - 1) //nolint:gosec // slot count is bounded by memory long before 2^32
	}

	sl := &r.slots[idx]
	sl.gen++
	sl.shape = s
	r.order = append(r.order, idx)
	return Handle{index: idx, gen: sl.gen}
}

// Lookup returns the shape referenced by h.
func (r *Registry) Lookup(h Handle) (Shape, bool) {
	sl := r.slot(h)
	if sl == nil {
		return Shape{}, false
	}
	return sl.shape, true
}

// Contains reports whether h refers to a live shape.
func (r *Registry) Contains(h Handle) bool {
	return r.slot(h) != nil
}

// Remove deletes the shape referenced by h, keeping the relative order of
// the remaining shapes. It returns ErrNotFound for stale or unknown handles.
func (r *Registry) Remove(h Handle) error {
	if r.slot(h) == nil {
		return ErrNotFound
	}
	i := slices.Index(r.order, h.index)
	r.order = slices.Delete(r.order, i, i+1)
	r.release(h.index)
	return nil
}

// RemoveKind deletes every shape of kind k and returns how many were
// removed. The order of the remaining shapes is preserved.
func (r *Registry) RemoveKind(k Kind) int {
	before := len(r.order)
	r.order = slices.DeleteFunc(r.order, func(idx uint32) bool {
		if r.slots[idx].shape.kind != k {
			return false
		}
		r.release(idx)
		return true
	})
	return before - len(r.order)
}

// Clear removes every shape. Group visibility is left untouched.
func (r *Registry) Clear() {
	for _, idx := range r.order {
		r.release(idx)
	}
	r.order = r.order[:0]
}

// Len returns the number of live shapes.
func (r *Registry) Len() int {
	return len(r.order)
}

// SetGroupEnabled shows (enable) or hides all shapes of group. NoGroup is
// never hidden.
func (r *Registry) SetGroupEnabled(group int, enable bool) {
	if group == NoGroup {
		return
	}
	if enable {
		delete(r.disabled, group)
		return
	}
	r.disabled[group] = struct{}{}
}

// GroupEnabled reports whether shapes of group are drawn.
func (r *Registry) GroupEnabled(group int) bool {
	_, off := r.disabled[group]
	return !off
}

// ClearGroups enables every group. The shapes themselves are untouched.
func (r *Registry) ClearGroups() {
	clear(r.disabled)
}

// DisabledGroups returns the disabled group numbers in ascending order.
func (r *Registry) DisabledGroups() []int {
	groups := make([]int, 0, len(r.disabled))
	for g := range r.disabled {
		groups = append(groups, g)
	}
	slices.Sort(groups)
	return groups
}

// Visible reports whether s would be drawn under the current group state.
func (r *Registry) Visible(s Shape) bool {
	return s.group == NoGroup || r.GroupEnabled(s.group)
}

// All iterates over the live shapes in paint order.
func (r *Registry) All() iter.Seq2[Handle, Shape] {
	return func(yield func(Handle, Shape) bool) {
		for _, idx := range r.order {
			sl := &r.slots[idx]
			if !yield(Handle{index: idx, gen: sl.gen}, sl.shape) {
				return
			}
		}
	}
}

// VisibleShapes iterates over the shapes that are drawn, in paint order.
func (r *Registry) VisibleShapes() iter.Seq[Shape] {
	return func(yield func(Shape) bool) {
		for _, idx := range r.order {
			s := r.slots[idx].shape
			if !r.Visible(s) {
				continue
			}
			if !yield(s) {
				return
			}
		}
	}
}

func (r *Registry) slot(h Handle) *slot {
	if int(h.index) >= len(r.slots) {
		return nil
	}
	sl := &r.slots[h.index]
	if !sl.live() || sl.gen != h.gen {
		return nil
	}
	return sl
}

// release ends the life of the shape in slot idx. The slot is recycled
// unless its generation counter is exhausted.
func (r *Registry) release(idx uint32) {
	sl := &r.slots[idx]
	sl.gen++
	sl.shape = Shape{}
	if sl.gen < math.MaxUint32-1 {
		r.free = append(r.free, idx)
	}
}
