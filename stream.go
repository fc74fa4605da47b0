package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// readStream is the seekable little-endian byte source the parsers walk.
// Errors from the underlying reader are returned as is.
type readStream struct {
	r   io.ReadSeeker
	pos int64
	end int64
	buf [4]byte
}

// newReadStream wraps r, keeping its current position as the starting point.
func newReadStream(r io.ReadSeeker) (*readStream, error) {
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}

	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}

	if _, err := r.Seek(pos, io.SeekStart); err != nil {
		return nil, err
	}

	return &readStream{r: r, pos: pos, end: end}, nil
}

// ReadExact reads exactly n bytes into a new buffer.
func (s *readStream) ReadExact(n int) ([]byte, error) {
	out := make([]byte, n)

	read, err := io.ReadFull(s.r, out)
	s.pos += int64(read)

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (s *readStream) fill(n int) error {
	read, err := io.ReadFull(s.r, s.buf[:n])
	s.pos += int64(read)

	return err
}

// ReadID reads a four character chunk identifier.
func (s *readStream) ReadID() ([4]byte, error) {
	if err := s.fill(4); err != nil {
		return [4]byte{}, err
	}

	return s.buf, nil
}

func (s *readStream) ReadU16LE() (uint16, error) {
	if err := s.fill(2); err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint16(s.buf[:2]), nil
}

func (s *readStream) ReadU32LE() (uint32, error) {
	if err := s.fill(4); err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(s.buf[:4]), nil
}

// Seek moves to an absolute position.
func (s *readStream) Seek(pos int64) error {
	if pos < 0 {
		return errNegativeSeek
	}

	if _, err := s.r.Seek(pos, io.SeekStart); err != nil {
		return err
	}

	s.pos = pos

	return nil
}

// Skip moves n bytes forward without reading them.
func (s *readStream) Skip(n int64) error {
	return s.Seek(s.pos + n)
}

func (s *readStream) Position() int64 { return s.pos }

func (s *readStream) End() int64 { return s.end }

func (s *readStream) Remaining() int64 {
	if s.pos >= s.end {
		return 0
	}

	return s.end - s.pos
}

// reader exposes the underlying reader limited to n bytes; the caller must
// Seek afterwards since reads through it don't update the position.
func (s *readStream) reader(n int64) io.Reader {
	return io.LimitReader(s.r, n)
}

var (
	errNegativeSeek = errors.New("seek before start")
	errSeekWhence   = errors.New("invalid seek whence")
)

// writeStream counts the bytes written to the underlying writer.
type writeStream struct {
	w            io.Writer
	WrittenBytes int
}

// AddLE serializes and adds the passed value using little endian.
func (s *writeStream) AddLE(src any) error {
	s.WrittenBytes += binary.Size(src)

	return binary.Write(s.w, binary.LittleEndian, src)
}

// WriteID writes a four character chunk identifier.
func (s *writeStream) WriteID(id [4]byte) error {
	return s.WriteExact(id[:])
}

func (s *writeStream) WriteExact(p []byte) error {
	n, err := s.w.Write(p)
	s.WrittenBytes += n

	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}

	return err
}

// SeekBuffer is an in-memory io.ReadWriteSeeker. Writing past the end grows
// the buffer; writing in the middle overwrites.
type SeekBuffer struct {
	data []byte
	pos  int
}

// NewSeekBuffer returns a buffer positioned at the start of data.
func NewSeekBuffer(data []byte) *SeekBuffer {
	return &SeekBuffer{data: data}
}

func (s *SeekBuffer) Write(p []byte) (int, error) {
	if need := s.pos + len(p); need > len(s.data) {
		if need > cap(s.data) {
			grown := make([]byte, len(s.data), need*2)
			copy(grown, s.data)
			s.data = grown
		}

		s.data = s.data[:need]
	}

	n := copy(s.data[s.pos:], p)
	s.pos += n

	return n, nil
}

func (s *SeekBuffer) Read(p []byte) (int, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}

	n := copy(p, s.data[s.pos:])
	s.pos += n

	return n, nil
}

func (s *SeekBuffer) Seek(offset int64, whence int) (int64, error) {
	var newPos int64

	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = int64(s.pos) + offset
	case io.SeekEnd:
		newPos = int64(len(s.data)) + offset
	default:
		return 0, fmt.Errorf("%w: %d", errSeekWhence, whence)
	}

	if newPos < 0 {
		return 0, errNegativeSeek
	}

	s.pos = int(newPos)

	return newPos, nil
}

// Bytes returns the buffer contents.
func (s *SeekBuffer) Bytes() []byte {
	return s.data
}
