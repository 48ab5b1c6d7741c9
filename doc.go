// Package imageview is the compositing core of an image display widget.
//
// # Overview
//
// A View holds one frame buffer of a declared width, height and pixel
// format, accepts a stream of replacement frames, and keeps a set of vector
// overlay shapes (text, lines, ellipses, rectangles, polylines, polygons)
// that are drawn over every frame until they are removed. Shapes carry a
// group number so whole groups can be hidden and shown again.
//
// # Quick Start
//
//	v, err := imageview.New(640, 480, raster.FormatGray8)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Overlays persist across frames.
//	h := v.AddLine(0, 0, 1, color.White, 639, 479)
//	v.AddText(8, 8, imageview.NoGroup, color.White, "range 40 m")
//
//	// Feed frames as they arrive.
//	if err := v.AddImage(frame); err != nil {
//	    log.Print(err)
//	}
//
//	// On repaint:
//	out := v.Compose()
//	defer v.Release(out)
//	png.Encode(w, out)
//
//	v.SetGroupStatus(1, false) // hide the line
//	_ = v.RemoveItem(h)        // or drop it for good
//
// # Repainting
//
// No method repaints or schedules a repaint. Mutations only set the flag
// reported by Dirty, so callers can batch frame and shape updates and
// composite once.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// Shapes keep their coordinates when the format changes; anything outside
// the frame is clipped when composited.
//
// # Concurrency
//
// A View is owned by a single goroutine. The package logger (SetLogger) and
// raster.Pool are safe for concurrent use.
package imageview
