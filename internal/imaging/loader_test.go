package imaging

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

// createTestImage writes a solid-color RGBA image in the given format and returns its path.
func createTestImage(t *testing.T, dir, name string, width, height int, c color.Color, format Format) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := Encode(f, img, format); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestFormatFromName(t *testing.T) {
	tests := []struct {
		name   string
		format Format
	}{
		{"a.png", PNG},
		{"a.PNG", PNG},
		{"b.jpg", JPEG},
		{"b.jpeg", JPEG},
		{"c.TGA", TGA},
		{"d.bmp", BMP},
		{"e.tif", TIFF},
		{"e.Tiff", TIFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatFromName(tt.name)
			if err != nil {
				t.Fatalf("FormatFromName failed: %v", err)
			}
			if got != tt.format {
				t.Errorf("got %s, want %s", got, tt.format)
			}
		})
	}
}

func TestFormatFromName_Unsupported(t *testing.T) {
	for _, name := range []string{"notes.txt", "anim.gif", "noext", "archive.png.zip"} {
		if _, err := FormatFromName(name); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("FormatFromName(%q): got %v, want ErrUnsupportedFormat", name, err)
		}
		if IsTexture(name) {
			t.Errorf("IsTexture(%q) = true, want false", name)
		}
	}
}

func TestDecode_AllFormats(t *testing.T) {
	dir := t.TempDir()
	c := color.NRGBA{200, 40, 90, 255}

	tests := []struct {
		file   string
		format Format
	}{
		{"a.png", PNG},
		{"b.jpg", JPEG},
		{"c.tga", TGA},
		{"d.bmp", BMP},
		{"e.tiff", TIFF},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := createTestImage(t, dir, tt.file, 12, 8, c, tt.format)

			img, format, err := Decode(path)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if format != tt.format {
				t.Errorf("format: got %s, want %s", format, tt.format)
			}
			if img.Bounds().Dx() != 12 || img.Bounds().Dy() != 8 {
				t.Errorf("unexpected dimensions: got %dx%d, want 12x8", img.Bounds().Dx(), img.Bounds().Dy())
			}
		})
	}
}

func TestDecode_NonExistent(t *testing.T) {
	_, _, err := Decode("/nonexistent/path/to/image.png")
	if err == nil {
		t.Error("Decode should fail for non-existent file")
	}
}

func TestDecode_InvalidImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, _, err := Decode(path); err == nil {
		t.Error("Decode should fail for invalid image data")
	}
}

func TestDecode_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, _, err := Decode(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("got %v, want ErrUnsupportedFormat", err)
	}
}

func TestDecode_PreservesAlpha(t *testing.T) {
	path := createTestImage(t, t.TempDir(), "alpha.png", 4, 4, color.NRGBA{10, 20, 30, 128}, PNG)

	img, _, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	got := color.NRGBAModel.Convert(img.At(0, 0)).(color.NRGBA)
	if got.A != 128 {
		t.Errorf("alpha: got %d, want 128", got.A)
	}
}
