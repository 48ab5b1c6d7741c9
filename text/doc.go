// Package text renders overlay strings onto raster buffers.
//
// The text pipeline has three stages:
//
//   - Bidi: the string is reordered into visual order (golang.org/x/text)
//   - Shaping: pen positions come from HarfBuzz shaping via
//     go-text/typesetting when the face was built from font data
//   - Drawing: glyph masks from a golang.org/x/image font.Face are
//     composited onto any draw.Image
//
// # Example usage
//
//	face, err := text.GoRegular(14)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer face.Close()
//
//	text.Draw(buf, "depth 12.5 m", face, 4, 4, color.White)
//
// Faces are not safe for concurrent use.
package text
