package wav

import "encoding/binary"

// Format tags found in the fmt chunk.
const (
	FormatPCM        uint16 = 1
	FormatIEEEFloat  uint16 = 3
	FormatALaw       uint16 = 6
	FormatMuLaw      uint16 = 7
	FormatExtensible uint16 = 0xFFFE
)

// canonicalFmtSize is the size of the fmt chunk body without extension.
const canonicalFmtSize = 16

// A WAVE_FORMAT_EXTENSIBLE extension is cbSize, valid bits, channel mask and
// the sub-format GUID; cbSize counts the 22 bytes after itself.
const (
	extensibleMinSize      = 22
	extensibleSubFormatPos = 8
)

// FormatDescriptor stores the parsed WAV fmt chunk.
type FormatDescriptor struct {
	FormatTag     uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	// ExtraData holds the fmt bytes past the canonical 16, uninterpreted.
	ExtraData []byte
}

// NewFormatDescriptor returns a PCM descriptor with the derived fields computed
// from the channel count, sample rate and bit depth.
func NewFormatDescriptor(numChans int, sampleRate int, bitDepth int) FormatDescriptor {
	f := FormatDescriptor{
		FormatTag:     FormatPCM,
		NumChannels:   uint16(numChans),
		SampleRate:    uint32(sampleRate),
		BitsPerSample: uint16(bitDepth),
	}
	f.recompute()

	return f
}

// WithFormatTag returns a copy using tag, with derived fields recomputed.
func (f FormatDescriptor) WithFormatTag(tag uint16) FormatDescriptor {
	out := f.Clone()
	out.FormatTag = tag
	out.recompute()

	return out
}

func (f *FormatDescriptor) recompute() {
	blockAlign := int(f.NumChannels) * bytesPerSample(int(f.BitsPerSample))
	f.BlockAlign = uint16(blockAlign)
	f.ByteRate = f.SampleRate * uint32(blockAlign)
}

// BytesPerSample is the storage width of a single sample.
func (f FormatDescriptor) BytesPerSample() int {
	return bytesPerSample(int(f.BitsPerSample))
}

// FrameSize is the number of bytes used by one sample of every channel.
func (f FormatDescriptor) FrameSize() int {
	return int(f.NumChannels) * f.BytesPerSample()
}

// EffectiveFormatTag resolves WAVE_FORMAT_EXTENSIBLE to its sub-format.
func (f FormatDescriptor) EffectiveFormatTag() uint16 {
	if f.FormatTag != FormatExtensible || len(f.ExtraData) < 2 {
		return f.FormatTag
	}

	cbSize := int(binary.LittleEndian.Uint16(f.ExtraData[:2]))
	if cbSize < extensibleMinSize || len(f.ExtraData) < extensibleSubFormatPos+2 {
		return f.FormatTag
	}

	// the first two bytes of the GUID carry the actual format tag
	return binary.LittleEndian.Uint16(f.ExtraData[extensibleSubFormatPos:])
}

// IsFloat reports whether samples are stored as IEEE floats.
func (f FormatDescriptor) IsFloat() bool {
	return f.EffectiveFormatTag() == FormatIEEEFloat
}

// Validate checks that the descriptor can be used by the sample codec.
func (f FormatDescriptor) Validate() error {
	if f.NumChannels < 1 {
		return formatErrorf(CorruptHeader, "channel count %d", f.NumChannels)
	}

	if !supportedBitDepth(int(f.BitsPerSample)) {
		return codecErrorf(UnsupportedBitDepth, "%d", f.BitsPerSample)
	}

	return nil
}

// Clone returns a deep copy.
func (f FormatDescriptor) Clone() FormatDescriptor {
	out := f
	out.ExtraData = append([]byte(nil), f.ExtraData...)

	if len(f.ExtraData) == 0 {
		out.ExtraData = nil
	}

	return out
}

func bytesPerSample(bitDepth int) int {
	return (bitDepth-1)/8 + 1
}

func supportedBitDepth(bitDepth int) bool {
	switch bitDepth {
	case 16, 24, 32:
		return true
	default:
		return false
	}
}
