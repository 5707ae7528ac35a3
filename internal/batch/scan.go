package batch

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/ironsheep/normalmap-flip/internal/imaging"
)

// readBatch is the number of directory entries fetched per ReadDir call.
const readBatch = 64

// Candidate is a texture file selected for conversion.
type Candidate struct {
	// Name is the file name relative to the scanned directory.
	Name string

	// Ext is the lower-cased extension including the dot.
	Ext string
}

// Scan returns a lazy sequence of the texture files directly inside dir.
//
// Entries are yielded in directory listing order. Directories and files with
// unrecognized extensions are skipped. If the listing fails, the error is yielded
// once and the sequence ends. Each call starts a fresh listing.
func Scan(dir string) iter.Seq2[Candidate, error] {
	return func(yield func(Candidate, error) bool) {
		f, err := os.Open(dir)
		if err != nil {
			yield(Candidate{}, fmt.Errorf("failed to open directory: %w", err))
			return
		}
		defer f.Close()

		for {
			entries, err := f.ReadDir(readBatch)
			for _, e := range entries {
				if !imaging.IsTexture(e.Name()) || !isRegularFile(dir, e) {
					continue
				}
				c := Candidate{Name: e.Name(), Ext: strings.ToLower(filepath.Ext(e.Name()))}
				if !yield(c, nil) {
					return
				}
			}
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(Candidate{}, fmt.Errorf("failed to read directory: %w", err))
				return
			}
		}
	}
}

// isRegularFile reports whether e is a regular file, following symlinks.
func isRegularFile(dir string, e fs.DirEntry) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, e.Name()))
	return err == nil && info.Mode().IsRegular()
}
