package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

var (
	// CIDList is the chunk ID for a LIST chunk.
	CIDList = [4]byte{'L', 'I', 'S', 'T'}
	// CIDInfo is the list type of an INFO list.
	CIDInfo = [4]byte{'I', 'N', 'F', 'O'}

	// See http://bwfmetaedit.sourceforge.net/listinfo.html
	markerINAM = [4]byte{'I', 'N', 'A', 'M'}
	markerIART = [4]byte{'I', 'A', 'R', 'T'}
	markerIPRD = [4]byte{'I', 'P', 'R', 'D'}
	markerICRD = [4]byte{'I', 'C', 'R', 'D'}
	markerIGNR = [4]byte{'I', 'G', 'N', 'R'}
	markerICMT = [4]byte{'I', 'C', 'M', 'T'}

	errInfoFieldOverrun = errors.New("INFO field extends past its LIST chunk")
	errListOverrun      = errors.New("LIST chunk extends past the end of the stream")
)

// Metadata holds the text fields of a LIST/INFO chunk. An empty string means
// the field is absent.
type Metadata struct {
	// Title (INAM) of the subject of the file.
	Title string
	// Artist (IART) of the original subject of the file.
	Artist string
	// Album (IPRD), the product the file was intended for.
	Album string
	// Date (ICRD) the subject was created, in year-month-day format.
	Date string
	// Genre (IGNR) of the original work.
	Genre string
	// Comment (ICMT) holds general comments about the file.
	Comment string
}

// IsEmpty reports whether no field is set.
func (m *Metadata) IsEmpty() bool {
	return m == nil || *m == (Metadata{})
}

func (m *Metadata) fields() []struct {
	marker [4]byte
	value  *string
} {
	return []struct {
		marker [4]byte
		value  *string
	}{
		{markerINAM, &m.Title},
		{markerIART, &m.Artist},
		{markerIPRD, &m.Album},
		{markerICRD, &m.Date},
		{markerIGNR, &m.Genre},
		{markerICMT, &m.Comment},
	}
}

func (m *Metadata) set(id [4]byte, val string) {
	for _, field := range m.fields() {
		if field.marker == id {
			*field.value = val
			return
		}
	}
}

// ReadMetadata scans the chunks following the RIFF/WAVE header for LIST/INFO
// lists, independently of any container parse. The header itself is not
// validated.
func ReadMetadata(r io.ReadSeeker) (*Metadata, error) {
	s, err := newReadStream(r)
	if err != nil {
		return nil, err
	}

	if err := s.Seek(riffHeaderSize); err != nil {
		return nil, err
	}

	meta := &Metadata{}

	for s.Remaining() >= 8 {
		id, err := s.ReadID()
		if err != nil {
			return nil, err
		}

		size, err := s.ReadU32LE()
		if err != nil {
			return nil, err
		}

		bodyStart := s.Position()
		chunkEnd := bodyStart + int64(size)

		if id == CIDList {
			if chunkEnd > s.End() {
				return nil, errListOverrun
			}

			if err := readListChunk(s, meta, chunkEnd); err != nil {
				return nil, err
			}
		}

		next := bodyStart + paddedSize(size)
		if next >= s.End() {
			break
		}

		if err := s.Seek(next); err != nil {
			return nil, err
		}
	}

	return meta, nil
}

func readListChunk(s *readStream, meta *Metadata, chunkEnd int64) error {
	if chunkEnd-s.Position() < 4 {
		return nil
	}

	listType, err := s.ReadID()
	if err != nil {
		return err
	}

	if listType != CIDInfo {
		// TODO: support adtl lists (labels and notes attached to cue points)
		return nil
	}

	ch := &riff.Chunk{
		ID:   CIDInfo,
		Size: int(chunkEnd - s.Position()),
		R:    s.reader(chunkEnd - s.Position()),
	}

	return decodeInfoFields(ch, meta)
}

// decodeInfoFields walks the id/size/text triples of an INFO list.
func decodeInfoFields(ch *riff.Chunk, meta *Metadata) error {
	var (
		id   [4]byte
		size uint32
	)

	for ch.Size-ch.Pos >= 8 {
		if err := ch.ReadBE(&id); err != nil {
			return fmt.Errorf("failed to read INFO field ID: %w", err)
		}

		if err := ch.ReadLE(&size); err != nil {
			return fmt.Errorf("failed to read INFO field size: %w", err)
		}

		if size == 0 {
			continue
		}

		if int64(size) > int64(ch.Size-ch.Pos) {
			return fmt.Errorf("%w: %q declares %d bytes", errInfoFieldOverrun, id[:], size)
		}

		text := make([]byte, size)
		if _, err := io.ReadFull(ch, text); err != nil {
			return fmt.Errorf("failed to read INFO field %q: %w", id[:], err)
		}

		meta.set(id, trimTrailingNull(text))

		if size%2 == 1 && ch.Pos < ch.Size {
			var pad [1]byte
			if _, err := io.ReadFull(ch, pad[:]); err != nil {
				return fmt.Errorf("failed to read INFO field padding: %w", err)
			}
		}
	}

	ch.Drain()

	return nil
}

// encodeInfoChunk returns a LIST chunk payload ("INFO" and its fields), or nil
// when meta has nothing to write.
func encodeInfoChunk(meta *Metadata) []byte {
	if meta.IsEmpty() {
		return nil
	}

	buf := bytes.NewBuffer(nil)
	buf.Write(CIDInfo[:])

	for _, field := range meta.fields() {
		if *field.value == "" {
			continue
		}

		size := len(*field.value) + 1

		buf.Write(field.marker[:])
		binary.Write(buf, binary.LittleEndian, uint32(size))
		buf.WriteString(*field.value)
		buf.WriteByte(0)

		if size%2 == 1 {
			buf.WriteByte(0)
		}
	}

	return buf.Bytes()
}
