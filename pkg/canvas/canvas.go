package canvas

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const dataURLPrefix = "data:image/png;base64,"

// Surface is an offscreen drawable capable of text rendering and
// data-URL serialization.
type Surface interface {
	// FillText draws text with its top-left corner at (x, y).
	FillText(text string, x, y int, fill color.Color) error
	// DataURL returns the PNG-encoded surface as a data URL.
	DataURL() (string, error)
}

// Factory allocates a surface of the given size.
type Factory func(width, height int) (Surface, error)

// Image is an in-memory surface backed by an NRGBA image.
type Image struct {
	img  *image.NRGBA
	face font.Face
}

// New allocates a transparent surface. It satisfies Factory.
func New(width, height int) (Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	return &Image{
		img:  image.NewNRGBA(image.Rect(0, 0, width, height)),
		face: basicfont.Face7x13,
	}, nil
}

// FillText composites text over the existing pixels, so overlapping draws
// with translucent colors blend the way a browser canvas does.
func (c *Image) FillText(text string, x, y int, fill color.Color) error {
	if fill == nil {
		return ErrNilColor
	}
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(fill),
		Face: c.face,
		// y is the top of the text box, the drawer expects a baseline
		Dot: fixed.P(x, y+c.face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
	return nil
}

// DataURL encodes the surface as PNG.
func (c *Image) DataURL() (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, c.img); err != nil {
		return "", errors.Join(ErrEncode, err)
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Pixels exposes the underlying image.
func (c *Image) Pixels() *image.NRGBA { return c.img }

type recorded struct {
	dataURL string
}

// Recorded returns a Factory whose surfaces replay dataURL.
// Drawing calls are accepted and ignored. An empty dataURL makes the
// factory fail with ErrNoRecording.
func Recorded(dataURL string) Factory {
	return func(width, height int) (Surface, error) {
		if dataURL == "" {
			return nil, ErrNoRecording
		}
		return recorded{dataURL: dataURL}, nil
	}
}

func (r recorded) FillText(string, int, int, color.Color) error { return nil }

func (r recorded) DataURL() (string, error) { return r.dataURL, nil }
