package wav

import "fmt"

// ChunkInfo describes a chunk the container parser stepped over.
type ChunkInfo struct {
	ID [4]byte
	// Size is the declared size, without the pad byte.
	Size uint32
	// Offset is the position of the chunk header in the stream.
	Offset int64
}

func (c ChunkInfo) String() string {
	return fmt.Sprintf("%q (%d bytes at %d)", c.ID[:], c.Size, c.Offset)
}

// paddedSize returns the on-disk size of a chunk body, RIFF chunks being word
// aligned.
func paddedSize(size uint32) int64 {
	if size%2 == 1 {
		return int64(size) + 1
	}

	return int64(size)
}
