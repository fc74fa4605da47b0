package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	wav "github.com/cwbudde/pcmwav"
	"github.com/spf13/cobra"
)

func newMetadataCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metadata <file>",
		Short: "Print the format and INFO tags of a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printMetadata(args[0], cmd.OutOrStdout())
		},
	}
}

func printMetadata(path string, out io.Writer) error {
	f, err := wav.ReadFile(path)
	if err != nil {
		return err
	}

	if f.MetadataErr != nil {
		slog.Warn("ignoring unreadable metadata", "path", path, "error", f.MetadataErr)
	}

	var duration time.Duration
	if f.Format.SampleRate > 0 {
		duration = time.Duration(f.SampleCount()) * time.Second / time.Duration(f.Format.SampleRate)
	}

	fmt.Fprintf(out, "Format: %d channels, %d Hz, %d-bit, tag 0x%04x\n",
		f.Format.NumChannels, f.Format.SampleRate, f.Format.BitsPerSample, f.Format.FormatTag)
	fmt.Fprintf(out, "Samples: %d\n", f.SampleCount())
	fmt.Fprintf(out, "Duration: %s\n", duration)

	for _, c := range f.Skipped {
		fmt.Fprintf(out, "Skipped chunk: %s\n", c)
	}

	if f.Metadata.IsEmpty() {
		fmt.Fprintln(out, "No metadata present")
		return nil
	}

	fmt.Fprintf(out, "Title: %s\n", f.Metadata.Title)
	fmt.Fprintf(out, "Artist: %s\n", f.Metadata.Artist)
	fmt.Fprintf(out, "Album: %s\n", f.Metadata.Album)
	fmt.Fprintf(out, "Date: %s\n", f.Metadata.Date)
	fmt.Fprintf(out, "Genre: %s\n", f.Metadata.Genre)
	fmt.Fprintf(out, "Comment: %s\n", f.Metadata.Comment)

	return nil
}
