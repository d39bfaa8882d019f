package texgen

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
)

// ErrInvalidDimensions is returned when a texture is created with a
// non-positive width or height.
var ErrInvalidDimensions = errors.New("texgen: texture dimensions must be positive")

// Color is a 4-channel color with channels normalized to [0, 1].
// Kernels synthesize colors in this space; storage quantizes to RGBA8.
type Color struct {
	R, G, B, A float32
}

// RGBA8 returns the unorm quantization of the color: each channel is
// clamped to [0, 1] and stored as floor(c*255 + 0.5). Halves always round
// up; the WGSL kernel applies the same rule, so CPU and GPU output match
// exactly.
func (c Color) RGBA8() [4]uint8 {
	return [4]uint8{quantize(c.R), quantize(c.G), quantize(c.B), quantize(c.A)}
}

func quantize(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Floor(float64(v)*255 + 0.5))
}

// Texture is a 2D RGBA8 pixel buffer with the semantics of a storage image:
// it is created and owned by the caller, opened for concurrent writes by all
// invocations of a dispatch, and safe without locks because each invocation
// writes a disjoint pixel.
type Texture struct {
	width  int
	height int
	pix    []uint8 // RGBA, 4 bytes per pixel, row-major
}

// NewTexture creates a zero-filled texture with the given dimensions.
func NewTexture(width, height int) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Texture{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*4),
	}, nil
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.height }

// Pix returns the raw pixel data (RGBA, 4 bytes per pixel).
func (t *Texture) Pix() []uint8 { return t.pix }

// SetColor stores a quantized color at (x, y). Writes outside the texture
// are silently discarded, matching how a GPU drops out-of-bounds image
// stores when the dispatch grid exceeds the bound image.
func (t *Texture) SetColor(x, y int, c Color) {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return
	}
	rgba := c.RGBA8()
	i := (y*t.width + x) * 4
	t.pix[i+0] = rgba[0]
	t.pix[i+1] = rgba[1]
	t.pix[i+2] = rgba[2]
	t.pix[i+3] = rgba[3]
}

// RGBA8At returns the stored 8-bit channel values at (x, y).
// Out-of-range coordinates return the zero value.
func (t *Texture) RGBA8At(x, y int) [4]uint8 {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return [4]uint8{}
	}
	i := (y*t.width + x) * 4
	return [4]uint8{t.pix[i+0], t.pix[i+1], t.pix[i+2], t.pix[i+3]}
}

// ColorAt returns the color at (x, y) with channels mapped back to [0, 1].
func (t *Texture) ColorAt(x, y int) Color {
	rgba := t.RGBA8At(x, y)
	return Color{
		R: float32(rgba[0]) / 255,
		G: float32(rgba[1]) / 255,
		B: float32(rgba[2]) / 255,
		A: float32(rgba[3]) / 255,
	}
}

// Fill overwrites every pixel with the given color.
func (t *Texture) Fill(c Color) {
	rgba := c.RGBA8()
	for i := 0; i < len(t.pix); i += 4 {
		t.pix[i+0] = rgba[0]
		t.pix[i+1] = rgba[1]
		t.pix[i+2] = rgba[2]
		t.pix[i+3] = rgba[3]
	}
}

// Clone returns a deep copy of the texture.
func (t *Texture) Clone() *Texture {
	pix := make([]uint8, len(t.pix))
	copy(pix, t.pix)
	return &Texture{width: t.width, height: t.height, pix: pix}
}

// ToImage converts the texture to an image.RGBA.
func (t *Texture) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.width, t.height))
	copy(img.Pix, t.pix)
	return img
}

// SavePNG writes the texture to a PNG file.
func (t *Texture) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, t.ToImage())
}
