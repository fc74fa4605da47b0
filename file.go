package wav

import (
	"fmt"
	"io"
	"os"
)

// File is a fully decoded WAV file.
type File struct {
	Format   FormatDescriptor
	Channels Channels
	// Metadata is never nil; fields are empty when no INFO list was found.
	Metadata *Metadata
	// MetadataErr records why metadata could not be read. It never fails the
	// decode.
	MetadataErr error
	// Skipped lists the chunks between fmt and data.
	Skipped []ChunkInfo
}

// SampleCount is the frame count.
func (f *File) SampleCount() int {
	return f.Channels.NumFrames()
}

// DurationSeconds is the frame count divided by the sample rate.
func (f *File) DurationSeconds() float64 {
	if f.Format.SampleRate == 0 {
		return 0
	}

	return float64(f.SampleCount()) / float64(f.Format.SampleRate)
}

// Decode reads a whole WAV stream positioned at its start: format, samples
// and INFO metadata. Errors from r are returned unchanged.
func Decode(r io.ReadSeeker) (*File, error) {
	c, err := ReadContainer(r)
	if err != nil {
		return nil, err
	}

	channels, err := DecodeContainer(c)
	if err != nil {
		return nil, err
	}

	f := &File{
		Format:   c.Format,
		Channels: channels,
		Skipped:  c.Skipped,
	}

	f.Metadata, f.MetadataErr = ReadMetadata(r)
	if f.MetadataErr != nil {
		f.Metadata = &Metadata{}
	}

	return f, nil
}

// ReadFile decodes the WAV file at path.
func ReadFile(path string) (*File, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	return Decode(in)
}

// Encode writes channels as a PCM WAV stream. The format tag is always PCM,
// 32-bit float samples keep their IEEE bits; use EncodeSamplesFormat and
// WriteContainer for IEEE float tagged files. Nothing is written when the
// channels are invalid.
func Encode(w io.Writer, channels Channels, sampleRate, bitDepth int, meta *Metadata) error {
	c, err := encodeContainer(channels, sampleRate, bitDepth)
	if err != nil {
		return err
	}

	return WriteContainer(w, c, meta)
}

// WriteFile encodes channels into a new file at path. The file isn't created
// when encoding fails.
func WriteFile(path string, channels Channels, sampleRate, bitDepth int, meta *Metadata) (err error) {
	c, err := encodeContainer(channels, sampleRate, bitDepth)
	if err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}

	defer func() {
		cerr := out.Close()
		if cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if err := WriteContainer(out, c, meta); err != nil {
		return err
	}

	return out.Sync()
}

func encodeContainer(channels Channels, sampleRate, bitDepth int) (*Container, error) {
	payload, err := EncodeSamples(channels, bitDepth)
	if err != nil {
		return nil, err
	}

	return NewContainer(len(channels), sampleRate, bitDepth, payload), nil
}
