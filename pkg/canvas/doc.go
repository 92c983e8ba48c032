// Package canvas provides an offscreen 2-D drawing surface that can render
// text and serialize itself to a data URL.
//
// It is the Go counterpart of the browser canvas used by rendering-probe
// fingerprinting: text is rasterized with golang.org/x/image/font onto an
// NRGBA image and alpha-composited, then encoded as PNG.
//
// Two surface implementations are available:
//
//   - New allocates a real in-memory surface.
//   - Recorded replays a data URL captured elsewhere (for example by a
//     browser agent) and ignores drawing calls.
//
// Usage:
//
//	s, err := canvas.New(240, 60)
//	if err != nil {
//	    return err
//	}
//	_ = s.FillText("hello", 2, 15, color.Black)
//	url, err := s.DataURL()
package canvas
