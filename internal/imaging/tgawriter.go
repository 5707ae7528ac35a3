package imaging

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/disintegration/imaging"
)

const (
	tgaTypeTrueColor = 2
	tgaOriginTop     = 1 << 5
	tgaHeaderSize    = 18
)

// tgaFooter marks the file as TGA 2.0 with no extension or developer area.
var tgaFooter = append(make([]byte, 8), "TRUEVISION-XFILE.\x00"...)

// encodeTGA writes img as an uncompressed true-color TGA with a top-left origin.
// Opaque images are written at 24 bits per pixel (BGR), images with translucent
// pixels at 32 bits (BGRA with 8 alpha bits).
func encodeTGA(w io.Writer, img image.Image) error {
	src := imaging.Clone(img)
	width, height := src.Rect.Dx(), src.Rect.Dy()
	if width > math.MaxUint16 || height > math.MaxUint16 {
		return fmt.Errorf("cannot write %dx%d image as TGA", width, height)
	}

	channels := 3
	descriptor := byte(tgaOriginTop)
	if !src.Opaque() {
		channels = 4
		descriptor |= 8
	}

	header := make([]byte, tgaHeaderSize)
	header[2] = tgaTypeTrueColor
	binary.LittleEndian.PutUint16(header[12:], uint16(width))
	binary.LittleEndian.PutUint16(header[14:], uint16(height))
	header[16] = byte(channels * 8)
	header[17] = descriptor

	bw := bufio.NewWriter(w)
	bw.Write(header)

	row := make([]byte, width*channels)
	for y := 0; y < height; y++ {
		line := src.Pix[y*src.Stride : y*src.Stride+width*4]
		for x := 0; x < width; x++ {
			px := line[x*4 : x*4+4]
			o := x * channels
			row[o], row[o+1], row[o+2] = px[2], px[1], px[0]
			if channels == 4 {
				row[o+3] = px[3]
			}
		}
		if _, err := bw.Write(row); err != nil {
			return fmt.Errorf("failed to write TGA pixels: %w", err)
		}
	}

	bw.Write(tgaFooter)
	return bw.Flush()
}
