package imaging

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/math/f64"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrNoGreenChannel is returned for sources that have no green channel to invert.
var ErrNoGreenChannel = errors.New("image has no green channel")

const (
	maxSample8  = 255.0
	maxSample16 = 65535.0
)

// Normalize maps an 8-bit sample to [0.0, 1.0].
func Normalize(v uint8) float64 {
	return float64(v) / maxSample8
}

// InvertSample inverts a normalized sample.
func InvertSample(f float64) float64 {
	return 1.0 - f
}

// Denormalize maps a normalized sample back to [0,255], clamping out-of-range
// values and rounding to nearest.
func Denormalize(f float64) uint8 {
	return uint8(math.Round(f64.Clamp(f*maxSample8, 0, maxSample8)))
}

// invertPixel inverts the green sample of one RGB[A] pixel in place. Red and blue
// pass through the same normalize/denormalize round trip, which is exact for 8-bit
// values. Alpha is never touched.
func invertPixel(px []uint8) {
	c := colorful.Color{
		R: Normalize(px[0]),
		G: Normalize(px[1]),
		B: Normalize(px[2]),
	}
	c.G = InvertSample(c.G)
	px[0], px[1], px[2] = c.Clamped().RGB255()
}

// InvertGreen inverts channel 1 of every pixel in b.
func InvertGreen(b *Buffer) {
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			invertPixel(b.Pixel(y, x))
		}
	}
}

// InvertGreenImage returns a copy of img with the green channel inverted.
//
// Paletted images keep their palette layout and 16-bit images keep their depth.
// Everything else goes through a Buffer and comes back as *image.NRGBA.
func InvertGreenImage(img image.Image) (image.Image, error) {
	switch m := img.(type) {
	case *image.Paletted:
		return invertPaletted(m), nil
	case *image.NRGBA64, *image.RGBA64:
		return invertDeep(m), nil
	}

	buf, err := FromImage(img)
	if err != nil {
		return nil, err
	}
	InvertGreen(buf)
	return buf.Image(), nil
}

// invertPaletted inverts the green component of each palette entry.
func invertPaletted(src *image.Paletted) *image.Paletted {
	palette := make(color.Palette, len(src.Palette))
	for i, c := range src.Palette {
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		px := []uint8{n.R, n.G, n.B}
		invertPixel(px)
		palette[i] = color.NRGBA{R: px[0], G: px[1], B: px[2], A: n.A}
	}

	dst := image.NewPaletted(src.Rect, palette)
	copy(dst.Pix, src.Pix)
	return dst
}

// invertDeep inverts the green channel at 16-bit depth.
func invertDeep(src image.Image) *image.NRGBA64 {
	bounds := src.Bounds()
	var dst *image.NRGBA64
	if n, ok := src.(*image.NRGBA64); ok {
		// Copy samples directly; a draw round trip would premultiply them.
		dst = &image.NRGBA64{Pix: append([]uint8(nil), n.Pix...), Stride: n.Stride, Rect: n.Rect}
	} else {
		dst = image.NewNRGBA64(bounds)
		draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := dst.PixOffset(x, y) + 2
			g := uint16(dst.Pix[i])<<8 | uint16(dst.Pix[i+1])
			g = invertSample16(g)
			dst.Pix[i] = uint8(g >> 8)
			dst.Pix[i+1] = uint8(g)
		}
	}
	return dst
}

func invertSample16(v uint16) uint16 {
	f := InvertSample(float64(v) / maxSample16)
	return uint16(math.Round(f64.Clamp(f*maxSample16, 0, maxSample16)))
}
