package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Buffer is a decoded raster of 8-bit samples indexed as [row][column][channel].
//
// Channel order is R, G, B and, when Channels is 4, A. Pix holds
// Height*Width*Channels samples in row-major order.
type Buffer struct {
	// Width is the number of columns.
	Width int

	// Height is the number of rows.
	Height int

	// Channels is 3 for RGB sources and 4 for sources carrying alpha.
	Channels int

	// Pix holds the samples.
	Pix []uint8
}

// NewBuffer allocates a zeroed buffer.
func NewBuffer(width, height, channels int) *Buffer {
	return &Buffer{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}
}

// offset returns the index of the first sample of pixel (row, col).
func (b *Buffer) offset(row, col int) int {
	return (row*b.Width + col) * b.Channels
}

// At returns the sample at (row, col, ch).
func (b *Buffer) At(row, col, ch int) uint8 {
	return b.Pix[b.offset(row, col)+ch]
}

// Set stores v at (row, col, ch).
func (b *Buffer) Set(row, col, ch int, v uint8) {
	b.Pix[b.offset(row, col)+ch] = v
}

// Pixel returns the samples of pixel (row, col). The slice aliases Pix.
func (b *Buffer) Pixel(row, col int) []uint8 {
	i := b.offset(row, col)
	return b.Pix[i : i+b.Channels : i+b.Channels]
}

// FromImage copies img into a new Buffer.
//
// The channel count is 4 when the source carries alpha and 3 otherwise.
// Grayscale and CMYK sources return ErrNoGreenChannel.
func FromImage(img image.Image) (*Buffer, error) {
	channels, err := channelCount(img)
	if err != nil {
		return nil, err
	}

	// Clone always yields non-premultiplied 8-bit samples starting at (0,0).
	src := imaging.Clone(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()

	buf := NewBuffer(w, h, channels)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		for x := 0; x < w; x++ {
			copy(buf.Pixel(y, x), row[x*4:x*4+channels])
		}
	}
	return buf, nil
}

// Image converts the buffer back to an *image.NRGBA. Three-channel buffers are
// written fully opaque so encoders that check opacity keep the RGB layout.
func (b *Buffer) Image() *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			px := b.Pixel(y, x)
			i := dst.PixOffset(x, y)
			copy(dst.Pix[i:i+3], px[:3])
			if b.Channels == 4 {
				dst.Pix[i+3] = px[3]
			} else {
				dst.Pix[i+3] = 0xff
			}
		}
	}
	return dst
}

// channelCount reports how many channels a Buffer needs to hold img.
//
// An alpha channel is kept only when some pixel is translucent. Decoders return
// *image.RGBA or *image.NRGBA for RGB files too (BMP, TGA), and every encoder
// used here writes an opaque image without alpha, so opacity decides the layout
// for all formats alike.
func channelCount(img image.Image) (int, error) {
	switch m := img.(type) {
	case *image.Gray, *image.Gray16:
		return 0, fmt.Errorf("%w: grayscale image", ErrNoGreenChannel)
	case *image.CMYK:
		return 0, fmt.Errorf("%w: CMYK image", ErrNoGreenChannel)
	case *image.YCbCr:
		return 3, nil
	case interface{ Opaque() bool }:
		if m.Opaque() {
			return 3, nil
		}
		return 4, nil
	default:
		return 4, nil
	}
}
