package wav

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-audio/riff"
)

// riffHeaderSize covers "RIFF", the overall size and the "WAVE" form type.
const riffHeaderSize = 12

// canonicalHeaderSize is the size of a RIFF/WAVE header with a 16 byte fmt
// chunk and the data chunk header.
const canonicalHeaderSize = riffHeaderSize + 8 + canonicalFmtSize + 8

// Container is a parsed WAV file: its format and the raw data chunk payload.
type Container struct {
	Format FormatDescriptor
	// Data is the data chunk payload, owned by the container.
	Data []byte
	// RiffSize is the size recorded in the RIFF header, kept as read.
	RiffSize uint32
	// Skipped lists the chunks found between fmt and data.
	Skipped []ChunkInfo
}

// NewContainer builds a PCM container for payload.
func NewContainer(numChans, sampleRate, bitDepth int, payload []byte) *Container {
	return &Container{
		Format: NewFormatDescriptor(numChans, sampleRate, bitDepth),
		Data:   payload,
	}
}

// ReadContainer parses r from its current position up to the end of the data
// chunk payload. The fmt chunk must directly follow the RIFF/WAVE header.
// A data chunk shorter than declared is reported as an I/O error.
func ReadContainer(r io.ReadSeeker) (*Container, error) {
	s, err := newReadStream(r)
	if err != nil {
		return nil, err
	}

	c := &Container{}

	id, err := s.ReadID()
	if err != nil {
		return nil, err
	}

	if id != riff.RiffID {
		return nil, &FormatError{Kind: NotRiff, Detail: fmt.Sprintf("%q", id[:]), Err: riff.ErrFmtNotSupported}
	}

	if c.RiffSize, err = s.ReadU32LE(); err != nil {
		return nil, err
	}

	if id, err = s.ReadID(); err != nil {
		return nil, err
	}

	if id != riff.WavFormatID {
		return nil, &FormatError{Kind: NotWave, Detail: fmt.Sprintf("%q", id[:]), Err: riff.ErrFmtNotSupported}
	}

	if id, err = s.ReadID(); err != nil {
		return nil, err
	}

	if id != riff.FmtID {
		return nil, formatErrorf(MissingFmtChunk, "found %q", id[:])
	}

	if c.Format, err = readFmtBody(s); err != nil {
		return nil, err
	}

	if err := c.readData(s); err != nil {
		return nil, err
	}

	return c, nil
}

func readFmtBody(s *readStream) (FormatDescriptor, error) {
	var f FormatDescriptor

	size, err := s.ReadU32LE()
	if err != nil {
		return f, err
	}

	if size < canonicalFmtSize {
		return f, formatErrorf(CorruptHeader, "fmt chunk of %d bytes", size)
	}

	if f.FormatTag, err = s.ReadU16LE(); err != nil {
		return f, err
	}

	if f.NumChannels, err = s.ReadU16LE(); err != nil {
		return f, err
	}

	if f.SampleRate, err = s.ReadU32LE(); err != nil {
		return f, err
	}

	if f.ByteRate, err = s.ReadU32LE(); err != nil {
		return f, err
	}

	if f.BlockAlign, err = s.ReadU16LE(); err != nil {
		return f, err
	}

	if f.BitsPerSample, err = s.ReadU16LE(); err != nil {
		return f, err
	}

	extra := int64(size) - canonicalFmtSize
	if extra > 0 {
		if extra > s.Remaining() {
			return f, formatErrorf(CorruptHeader, "fmt chunk extends %d bytes past the end", extra-s.Remaining())
		}

		if f.ExtraData, err = s.ReadExact(int(extra)); err != nil {
			return f, err
		}
	}

	if size%2 == 1 {
		if err := s.Skip(1); err != nil {
			return f, err
		}
	}

	return f, nil
}

// readData scans for the data chunk and reads its payload.
func (c *Container) readData(s *readStream) error {
	for {
		// a trailing fragment shorter than a chunk header can't hold data
		if s.Remaining() < 8 {
			return ErrNoDataChunk
		}

		offset := s.Position()

		id, err := s.ReadID()
		if err != nil {
			return err
		}

		size, err := s.ReadU32LE()
		if err != nil {
			return err
		}

		if id == riff.DataFormatID {
			if int64(size) > s.Remaining() {
				return io.ErrUnexpectedEOF
			}

			c.Data, err = s.ReadExact(int(size))

			return err
		}

		c.Skipped = append(c.Skipped, ChunkInfo{ID: id, Size: size, Offset: offset})

		if err := s.Skip(paddedSize(size)); err != nil {
			return err
		}
	}
}

// SampleCount is the number of frames in the payload.
func (c *Container) SampleCount() int {
	frameSize := c.Format.FrameSize()
	if frameSize == 0 {
		return 0
	}

	return len(c.Data) / frameSize
}

// DurationSeconds is SampleCount divided by the sample rate.
func (c *Container) DurationSeconds() float64 {
	if c.Format.SampleRate == 0 {
		return 0
	}

	return float64(c.SampleCount()) / float64(c.Format.SampleRate)
}

// Duration returns the playback duration.
func (c *Container) Duration() time.Duration {
	return time.Duration(c.DurationSeconds() * float64(time.Second))
}

// Validate checks that the payload holds a whole number of frames.
func (c *Container) Validate() error {
	if c.Format.NumChannels < 1 {
		return formatErrorf(CorruptHeader, "channel count %d", c.Format.NumChannels)
	}

	if rem := len(c.Data) % c.Format.FrameSize(); rem != 0 {
		return formatErrorf(CorruptHeader, "payload ends with a partial frame of %d bytes", rem)
	}

	return nil
}

// Clone returns a deep copy.
func (c *Container) Clone() *Container {
	if c == nil {
		return nil
	}

	out := *c
	out.Format = c.Format.Clone()
	out.Data = append([]byte(nil), c.Data...)
	out.Skipped = append([]ChunkInfo(nil), c.Skipped...)

	return &out
}

var (
	errNilContainer = errors.New("can't write a nil container")
	errNilWriter    = errors.New("can't write to a nil writer")
)

// WriteTo writes the canonical 44 byte header followed by the payload.
func (c *Container) WriteTo(w io.Writer) (int64, error) {
	return writeContainer(w, c, nil)
}

// WriteContainer writes c and, when meta has any field set, a trailing
// LIST/INFO chunk.
func WriteContainer(w io.Writer, c *Container, meta *Metadata) error {
	_, err := writeContainer(w, c, meta)

	return err
}

func writeContainer(w io.Writer, c *Container, meta *Metadata) (int64, error) {
	if c == nil {
		return 0, errNilContainer
	}

	if w == nil {
		return 0, errNilWriter
	}

	// rebuild the derived fields, keeping only the tag from the container
	f := NewFormatDescriptor(int(c.Format.NumChannels), int(c.Format.SampleRate), int(c.Format.BitsPerSample))
	f.FormatTag = c.Format.FormatTag

	if f.FormatTag == FormatExtensible {
		f.FormatTag = c.Format.EffectiveFormatTag()
	}

	info := encodeInfoChunk(meta)

	dataSize := uint32(len(c.Data))
	riffSize := uint32(canonicalHeaderSize-8) + uint32(paddedSize(dataSize))

	if len(info) > 0 {
		riffSize += 8 + uint32(paddedSize(uint32(len(info))))
	}

	ws := &writeStream{w: w}

	steps := []func() error{
		func() error { return ws.WriteID(riff.RiffID) },
		func() error { return ws.AddLE(riffSize) },
		func() error { return ws.WriteID(riff.WavFormatID) },
		func() error { return ws.WriteID(riff.FmtID) },
		func() error { return ws.AddLE(uint32(canonicalFmtSize)) },
		func() error { return ws.AddLE(f.FormatTag) },
		func() error { return ws.AddLE(f.NumChannels) },
		func() error { return ws.AddLE(f.SampleRate) },
		func() error { return ws.AddLE(f.ByteRate) },
		func() error { return ws.AddLE(f.BlockAlign) },
		func() error { return ws.AddLE(f.BitsPerSample) },
		func() error { return ws.WriteID(riff.DataFormatID) },
		func() error { return ws.AddLE(dataSize) },
		func() error { return ws.WriteExact(c.Data) },
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return int64(ws.WrittenBytes), fmt.Errorf("failed to write wav container: %w", err)
		}
	}

	if dataSize%2 == 1 {
		if err := ws.WriteExact([]byte{0}); err != nil {
			return int64(ws.WrittenBytes), fmt.Errorf("failed to write data padding: %w", err)
		}
	}

	if len(info) > 0 {
		if err := writeRawChunk(ws, CIDList, info); err != nil {
			return int64(ws.WrittenBytes), err
		}
	}

	return int64(ws.WrittenBytes), nil
}

func writeRawChunk(ws *writeStream, id [4]byte, data []byte) error {
	size := uint32(len(data))

	if err := ws.WriteID(id); err != nil {
		return fmt.Errorf("failed to write chunk id %q: %w", id[:], err)
	}

	if err := ws.AddLE(size); err != nil {
		return fmt.Errorf("failed to write chunk size %q: %w", id[:], err)
	}

	if err := ws.WriteExact(data); err != nil {
		return fmt.Errorf("failed to write chunk payload %q: %w", id[:], err)
	}

	if size%2 == 1 {
		if err := ws.WriteExact([]byte{0}); err != nil {
			return fmt.Errorf("failed to write chunk padding %q: %w", id[:], err)
		}
	}

	return nil
}
