package imaging

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// JPEGQuality is the quality used when re-encoding JPEG textures.
const JPEGQuality = 95

// Encode writes img to w in the given container format.
//
// Opaque direct-color images are written without an alpha channel in every
// format, so an RGB source comes back as RGB.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case TGA:
		return encodeTGA(w, img)
	case JPEG:
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality))
	case BMP:
		return imaging.Encode(w, img, imaging.BMP)
	case TIFF:
		if opaqueRGB(img) {
			return encodeTIFFRGB(w, img)
		}
		return imaging.Encode(w, img, imaging.TIFF)
	case PNG:
		return imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(png.DefaultCompression))
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// Save encodes img and writes it to path.
//
// The data is written to a temporary file next to path and renamed into place,
// so path either holds the complete new image or is left untouched.
func Save(img image.Image, path string, format Format) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := Encode(tmp, img, format); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to encode %s image: %w", format, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to set image permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write image: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move image into place: %w", err)
	}
	return nil
}
