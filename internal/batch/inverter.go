package batch

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/ironsheep/normalmap-flip/internal/imaging"
)

// OutputDirName is the subdirectory converted textures are written to.
const OutputDirName = "converted_textures"

var (
	// ErrOutputDir means the output directory could not be established. It is the
	// only error that aborts a run.
	ErrOutputDir = errors.New("output directory unavailable")

	// ErrDecode means a candidate could not be read as an image.
	ErrDecode = errors.New("decode failed")

	// ErrEncode means the converted image could not be written.
	ErrEncode = errors.New("encode failed")
)

// Summary counts the outcome of a run.
type Summary struct {
	Converted int
	Failed    int
}

// Inverter flips the green channel of every texture in a directory.
type Inverter struct {
	dir    string
	outDir string
	logger *log.Logger
}

// New creates an Inverter for dir. A nil logger discards all output.
func New(dir string, logger *log.Logger) *Inverter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Inverter{
		dir:    dir,
		outDir: filepath.Join(dir, OutputDirName),
		logger: logger,
	}
}

// OutputDir returns the directory converted textures are written to.
func (inv *Inverter) OutputDir() string {
	return inv.outDir
}

// PrepareOutputLocation creates the output directory if it does not exist and
// returns its path. Existing contents are left alone.
func (inv *Inverter) PrepareOutputLocation() (string, error) {
	if err := os.MkdirAll(inv.outDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %w", ErrOutputDir, err)
	}
	return inv.outDir, nil
}

// Candidates lists the texture files in the scanned directory.
func (inv *Inverter) Candidates() iter.Seq2[Candidate, error] {
	return Scan(inv.dir)
}

// ProcessFile converts one candidate and writes it to the output directory under
// the same name. The output directory must already exist.
func (inv *Inverter) ProcessFile(c Candidate) error {
	img, format, err := imaging.Decode(filepath.Join(inv.dir, c.Name))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, c.Name, err)
	}

	out, err := imaging.InvertGreenImage(img)
	if err != nil {
		return fmt.Errorf("failed to convert %s: %w", c.Name, err)
	}

	if err := imaging.Save(out, filepath.Join(inv.outDir, c.Name), format); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEncode, c.Name, err)
	}
	return nil
}

// Run prepares the output directory and converts every candidate in turn.
//
// Per-file failures are logged and counted; they never stop the run. The
// completion notice is logged after the last candidate regardless of failures.
// The returned error is non-nil only when the output directory is unavailable.
func (inv *Inverter) Run() (Summary, error) {
	if _, err := inv.PrepareOutputLocation(); err != nil {
		return Summary{}, err
	}

	var sum Summary
	for c, err := range inv.Candidates() {
		if err != nil {
			inv.logger.Error("failed to list textures", "dir", inv.dir, "err", err)
			break
		}

		if err := inv.ProcessFile(c); err != nil {
			sum.Failed++
			msg := "failed to convert texture"
			if errors.Is(err, ErrDecode) {
				msg = "failed to read image"
			}
			inv.logger.Error(msg, "file", c.Name, "err", err)
			continue
		}

		sum.Converted++
		inv.logger.Debug("converted texture", "file", c.Name, "output", filepath.Join(OutputDirName, c.Name))
	}

	inv.logger.Info("all textures converted", "converted", sum.Converted, "failed", sum.Failed)
	return sum, nil
}
