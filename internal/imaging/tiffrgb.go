package imaging

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"io"
	"math"
)

// TIFF tags written by encodeTIFFRGB.
const (
	tagImageWidth          = 256
	tagImageLength         = 257
	tagBitsPerSample       = 258
	tagCompression         = 259
	tagPhotometric         = 262
	tagStripOffsets        = 273
	tagSamplesPerPixel     = 277
	tagRowsPerStrip        = 278
	tagStripByteCounts     = 279
	tagXResolution         = 282
	tagYResolution         = 283
	tagPlanarConfiguration = 284
	tagResolutionUnit      = 296
)

// TIFF field types.
const (
	typeShort    = 3
	typeLong     = 4
	typeRational = 5
)

type ifdEntry struct {
	tag   uint16
	typ   uint16
	count uint32
	value uint32 // inline value or offset
}

// opaqueRGB reports whether img is a direct-color image without translucent
// pixels, i.e. one that must be written as 3-sample RGB.
func opaqueRGB(img image.Image) bool {
	switch m := img.(type) {
	case *image.NRGBA:
		return m.Opaque()
	case *image.NRGBA64:
		return m.Opaque()
	case *image.RGBA:
		return m.Opaque()
	case *image.RGBA64:
		return m.Opaque()
	}
	return false
}

// encodeTIFFRGB writes img as a baseline little-endian RGB TIFF with three
// samples per pixel, uncompressed, in a single strip. 16-bit images keep 16
// bits per sample; everything else is written at 8 bits.
//
// golang.org/x/image/tiff always adds an alpha sample for direct-color images,
// so opaque RGB sources go through here to keep their channel count.
func encodeTIFFRGB(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	deep := false
	switch img.(type) {
	case *image.NRGBA64, *image.RGBA64:
		deep = true
	}
	bytesPerSample := 1
	bitsPerSample := uint16(8)
	if deep {
		bytesPerSample = 2
		bitsPerSample = 16
	}

	stripBytes := uint64(width) * uint64(height) * 3 * uint64(bytesPerSample)
	if width == 0 || height == 0 || stripBytes > math.MaxUint32/2 {
		return fmt.Errorf("cannot write %dx%d image as TIFF", width, height)
	}

	const numEntries = 13
	const ifdOffset = 8
	bpsOffset := uint32(ifdOffset + 2 + numEntries*12 + 4)
	xResOffset := bpsOffset + 8 // 3 shorts padded to a word boundary
	yResOffset := xResOffset + 8
	dataOffset := yResOffset + 8

	entries := []ifdEntry{
		{tagImageWidth, typeLong, 1, uint32(width)},
		{tagImageLength, typeLong, 1, uint32(height)},
		{tagBitsPerSample, typeShort, 3, bpsOffset},
		{tagCompression, typeShort, 1, 1}, // none
		{tagPhotometric, typeShort, 1, 2}, // RGB
		{tagStripOffsets, typeLong, 1, dataOffset},
		{tagSamplesPerPixel, typeShort, 1, 3},
		{tagRowsPerStrip, typeLong, 1, uint32(height)},
		{tagStripByteCounts, typeLong, 1, uint32(stripBytes)},
		{tagXResolution, typeRational, 1, xResOffset},
		{tagYResolution, typeRational, 1, yResOffset},
		{tagPlanarConfiguration, typeShort, 1, 1}, // chunky
		{tagResolutionUnit, typeShort, 1, 2},      // inches
	}

	bw := bufio.NewWriter(w)
	le := binary.LittleEndian

	// Header: byte order, magic 42, offset of the first IFD.
	bw.Write([]byte{'I', 'I'})
	binary.Write(bw, le, uint16(42))
	binary.Write(bw, le, uint32(ifdOffset))

	binary.Write(bw, le, uint16(len(entries)))
	for _, e := range entries {
		binary.Write(bw, le, e.tag)
		binary.Write(bw, le, e.typ)
		binary.Write(bw, le, e.count)
		// Little-endian SHORT values sit in the low bytes of the value field.
		binary.Write(bw, le, e.value)
	}
	binary.Write(bw, le, uint32(0)) // no next IFD

	binary.Write(bw, le, [4]uint16{bitsPerSample, bitsPerSample, bitsPerSample, 0})
	binary.Write(bw, le, [2]uint32{72, 1})
	binary.Write(bw, le, [2]uint32{72, 1})

	row := make([]byte, width*3*bytesPerSample)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		i := 0
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b := rgbAt(img, x, y)
			if deep {
				le.PutUint16(row[i:], r)
				le.PutUint16(row[i+2:], g)
				le.PutUint16(row[i+4:], b)
				i += 6
			} else {
				row[i], row[i+1], row[i+2] = uint8(r>>8), uint8(g>>8), uint8(b>>8)
				i += 3
			}
		}
		if _, err := bw.Write(row); err != nil {
			return fmt.Errorf("failed to write TIFF strip: %w", err)
		}
	}
	return bw.Flush()
}

// rgbAt returns the 16-bit color samples of an opaque pixel. Opaque pixels are
// identical premultiplied and not, so the generic RGBA method is exact here.
func rgbAt(img image.Image, x, y int) (r, g, b uint16) {
	cr, cg, cb, _ := img.At(x, y).RGBA()
	return uint16(cr), uint16(cg), uint16(cb)
}
