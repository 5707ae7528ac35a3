package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned for file names without a recognized texture extension.
var ErrUnsupportedFormat = errors.New("unsupported texture format")

// Format is the container format of a texture file.
type Format int

// Supported container formats.
const (
	PNG Format = iota
	JPEG
	TGA
	BMP
	TIFF
)

var formatNames = map[Format]string{
	PNG:  "png",
	JPEG: "jpeg",
	TGA:  "tga",
	BMP:  "bmp",
	TIFF: "tiff",
}

// String returns the lower-case format name.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// Extensions maps every recognized file extension (lower case, with dot) to its format.
var Extensions = map[string]Format{
	".png":  PNG,
	".jpg":  JPEG,
	".jpeg": JPEG,
	".tga":  TGA,
	".bmp":  BMP,
	".tif":  TIFF,
	".tiff": TIFF,
}

// FormatFromName determines the container format from a file name's extension.
// Matching is case-insensitive.
func FormatFromName(name string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(name))
	f, ok := Extensions[ext]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return f, nil
}

// IsTexture reports whether name has a recognized texture extension.
func IsTexture(name string) bool {
	_, err := FormatFromName(name)
	return err == nil
}

// Decode loads the image at path with the decoder matching its extension.
//
// Decoders are picked explicitly rather than by content sniffing: TGA has no magic
// number, so it cannot take part in image.Decode's format detection.
//
// Returns:
//   - image.Image: The decoded image. Alpha is preserved where the file has it.
//   - Format: The container format, used to re-encode the result.
//   - error: Non-nil if the extension is not recognized, the file cannot be
//     opened, or its contents do not decode.
func Decode(path string) (image.Image, Format, error) {
	format, err := FormatFromName(path)
	if err != nil {
		return nil, 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, err := decoderFor(format)(f)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode %s image: %w", format, err)
	}
	return img, format, nil
}

func decoderFor(format Format) func(io.Reader) (image.Image, error) {
	switch format {
	case JPEG:
		return jpeg.Decode
	case TGA:
		return tga.Decode
	case BMP:
		return bmp.Decode
	case TIFF:
		return tiff.Decode
	default:
		return png.Decode
	}
}
