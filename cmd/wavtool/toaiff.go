package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	wav "github.com/cwbudde/pcmwav"
	"github.com/go-audio/aiff"
	"github.com/spf13/cobra"
)

func newToAIFFCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "toaiff <file>",
		Short: "Convert a WAV file into an AIFF file",
		Long:  "Convert a WAV file into an AIFF file stored next to the source unless --output is set.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			outPath := output
			if outPath == "" {
				outPath = aiffPath(args[0])
			}

			return convertToAIFF(args[0], outPath)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "destination path (default: source with .aif extension)")

	return cmd
}

func aiffPath(source string) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + ".aif"
}

func convertToAIFF(inPath, outPath string) (err error) {
	f, err := wav.ReadFile(inPath)
	if err != nil {
		return err
	}

	bitDepth := int(f.Format.BitsPerSample)

	buf, err := f.Channels.IntBuffer(int(f.Format.SampleRate), bitDepth)
	if err != nil {
		return fmt.Errorf("couldn't convert %s: %w", inPath, err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}

	defer func() {
		cerr := out.Close()
		if cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	encoder := aiff.NewEncoder(out, buf.Format.SampleRate, bitDepth, buf.Format.NumChannels)

	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to write audio buffer: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", outPath, err)
	}

	slog.Info("converted", "source", inPath, "output", outPath, "frames", f.SampleCount())

	return nil
}
