package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
)

type testChunk struct {
	id   string
	size uint32
	data []byte
}

var (
	errFileTooSmall         = errors.New("file too small")
	errInvalidRiffWaveHdr   = errors.New("invalid riff/wave header")
	errChunkExceedsFileSize = errors.New("chunk exceeds file size")
)

// parseWavChunks lists the top level chunks of a RIFF/WAVE file.
func parseWavChunks(data []byte) ([]testChunk, error) {
	if len(data) < 12 {
		return nil, errFileTooSmall
	}

	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, errInvalidRiffWaveHdr
	}

	chunks := make([]testChunk, 0)

	offset := 12
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := binary.LittleEndian.Uint32(data[offset+4 : offset+8])
		offset += 8

		end := offset + int(size)
		if end > len(data) {
			return nil, fmt.Errorf("%w: %q", errChunkExceedsFileSize, id)
		}

		payload := append([]byte(nil), data[offset:end]...)
		chunks = append(chunks, testChunk{id: id, size: size, data: payload})

		offset = end
		if size%2 == 1 {
			offset++
		}
	}

	return chunks, nil
}

func findChunk(chunks []testChunk, id string) (*testChunk, int) {
	for i := range chunks {
		if chunks[i].id == id {
			return &chunks[i], i
		}
	}

	return nil, -1
}

// rawChunk encodes a chunk header and body, adding the pad byte for odd sizes.
func rawChunk(id string, body []byte) []byte {
	out := make([]byte, 8, 8+len(body)+1)
	copy(out, id)
	binary.LittleEndian.PutUint32(out[4:], uint32(len(body)))
	out = append(out, body...)

	if len(body)%2 == 1 {
		out = append(out, 0)
	}

	return out
}

// fmtBody encodes a canonical 16 byte fmt chunk body.
func fmtBody(formatTag, numChans uint16, sampleRate uint32, bitDepth uint16) []byte {
	blockAlign := numChans * ((bitDepth + 7) / 8)

	out := make([]byte, 16)
	binary.LittleEndian.PutUint16(out[0:], formatTag)
	binary.LittleEndian.PutUint16(out[2:], numChans)
	binary.LittleEndian.PutUint32(out[4:], sampleRate)
	binary.LittleEndian.PutUint32(out[8:], sampleRate*uint32(blockAlign))
	binary.LittleEndian.PutUint16(out[12:], blockAlign)
	binary.LittleEndian.PutUint16(out[14:], bitDepth)

	return out
}

// buildWav wraps already encoded chunks in a RIFF/WAVE header.
func buildWav(chunks ...[]byte) []byte {
	body := []byte("WAVE")
	for _, ch := range chunks {
		body = append(body, ch...)
	}

	out := make([]byte, 8, 8+len(body))
	copy(out, "RIFF")
	binary.LittleEndian.PutUint32(out[4:], uint32(len(body)))

	return append(out, body...)
}

// infoList encodes a LIST/INFO chunk from id/text pairs, null terminating
// every text.
func infoList(pairs ...string) []byte {
	body := []byte("INFO")
	for i := 0; i+1 < len(pairs); i += 2 {
		body = append(body, rawChunk(pairs[i], append([]byte(pairs[i+1]), 0))...)
	}

	return rawChunk("LIST", body)
}
