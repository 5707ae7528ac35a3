package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ironsheep/normalmap-flip/internal/batch"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Reporting goes to stderr; the tool never writes to stdout.
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.InfoLevel})

	if err := newRootCmd(logger).Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

// newRootCmd builds the command that converts the textures in the working directory.
func newRootCmd(logger *log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "normalflip",
		Short: "Invert the green channel of every texture in the current directory",
		Long: `normalflip converts normal maps between the OpenGL and DirectX conventions.

Every .png, .jpg, .jpeg, .tga, .bmp, .tif and .tiff file in the current
directory is decoded, its green channel inverted, and the result written
under the same name to ./` + batch.OutputDirName + `.`,
		Version:       fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to resolve working directory: %w", err)
			}

			logger.Debug("normalflip starting", "version", Version, "commit", GitCommit, "dir", wd)
			_, err = batch.New(wd, logger).Run()
			return err
		},
	}
}
