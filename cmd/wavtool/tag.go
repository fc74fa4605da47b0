package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	wav "github.com/cwbudde/pcmwav"
	"github.com/spf13/cobra"
)

var errNothingToTag = errors.New("pass --file or --dir to indicate what file or folder content to tag")

type tagOptions struct {
	file        string
	dir         string
	titleRegexp string
	meta        wav.Metadata
}

// newTagCmd copies WAV files into a wavtagger folder next to the originals
// with their INFO tags updated.
func newTagCmd() *cobra.Command {
	var opts tagOptions

	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Write INFO tags into copies of WAV files",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTag(opts)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&opts.file, "file", "", "Path to the wave file to tag")
	fs.StringVar(&opts.dir, "dir", "", "Directory containing all the wav files to tag")
	fs.StringVar(&opts.titleRegexp, "regexp", "", `submatch regexp extracting the title from the filename (without extension), example: 'my_files_\d\d_(.*)'`)
	fs.StringVar(&opts.meta.Title, "title", "", "File's title")
	fs.StringVar(&opts.meta.Artist, "artist", "", "File's artist")
	fs.StringVar(&opts.meta.Album, "album", "", "File's album")
	fs.StringVar(&opts.meta.Date, "date", "", "File's creation date")
	fs.StringVar(&opts.meta.Genre, "genre", "", "File's genre")
	fs.StringVar(&opts.meta.Comment, "comment", "", "File's comment")

	return cmd
}

func runTag(opts tagOptions) error {
	if opts.file == "" && opts.dir == "" {
		return errNothingToTag
	}

	var titleRe *regexp.Regexp

	if opts.titleRegexp != "" {
		re, err := regexp.Compile(opts.titleRegexp)
		if err != nil {
			return fmt.Errorf("invalid title regexp: %w", err)
		}

		titleRe = re
	}

	if opts.file != "" {
		if _, err := tagFile(opts.file, opts.meta, titleRe); err != nil {
			return fmt.Errorf("tagging %s: %w", opts.file, err)
		}
	}

	if opts.dir == "" {
		return nil
	}

	entries, err := os.ReadDir(opts.dir)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".wav") {
			continue
		}

		path := filepath.Join(opts.dir, e.Name())
		if _, err := tagFile(path, opts.meta, titleRe); err != nil {
			slog.Error("tagging failed", "path", path, "error", err)
		}
	}

	return nil
}

// tagFile writes a copy of path into the wavtagger folder beside it. Tags
// already present are kept unless overridden. It returns the new file's path.
func tagFile(path string, override wav.Metadata, titleRe *regexp.Regexp) (outPath string, err error) {
	in, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer in.Close()

	c, err := wav.ReadContainer(in)
	if err != nil {
		return "", err
	}

	meta, err := wav.ReadMetadata(in)
	if err != nil {
		slog.Warn("dropping unreadable metadata", "path", path, "error", err)

		meta = &wav.Metadata{}
	}

	if titleRe != nil {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if matches := titleRe.FindStringSubmatch(name); len(matches) > 1 {
			meta.Title = matches[1]
		} else {
			slog.Info("no title match", "regexp", titleRe.String(), "file", name)
		}
	}

	mergeMetadata(meta, override)

	outputDir := filepath.Join(filepath.Dir(path), "wavtagger")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	outPath = filepath.Join(outputDir, filepath.Base(path))

	out, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("couldn't create %s: %w", outPath, err)
	}

	defer func() {
		cerr := out.Close()
		if cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	if err := wav.WriteContainer(out, c, meta); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	slog.Info("tagged", "path", outPath)

	return outPath, nil
}

// mergeMetadata copies the non-empty fields of src into dst.
func mergeMetadata(dst *wav.Metadata, src wav.Metadata) {
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&dst.Title, src.Title},
		{&dst.Artist, src.Artist},
		{&dst.Album, src.Album},
		{&dst.Date, src.Date},
		{&dst.Genre, src.Genre},
		{&dst.Comment, src.Comment},
	} {
		if f.src != "" {
			*f.dst = f.src
		}
	}
}
