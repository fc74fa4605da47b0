package wav

import (
	"encoding/binary"
	"math"

	"github.com/go-audio/audio"
)

// DecodeSamples de-interleaves a raw data chunk payload into one sample
// sequence per channel. 16 and 24-bit data always decodes to integers; 32-bit
// data decodes to floats when formatTag is FormatIEEEFloat.
func DecodeSamples(payload []byte, numChans int, bitDepth int, formatTag uint16) (Channels, error) {
	if numChans < 1 {
		return nil, codecErrorf(InvalidSampleData, "channel count %d", numChans)
	}

	decodeF, err := sampleDecodeFunc(bitDepth, formatTag)
	if err != nil {
		return nil, err
	}

	bPerSample := bytesPerSample(bitDepth)
	frameSize := numChans * bPerSample

	if len(payload)%frameSize != 0 {
		return nil, codecErrorf(InvalidSampleData, "%d payload bytes is not a whole number of %d byte frames", len(payload), frameSize)
	}

	frames := len(payload) / frameSize

	out := make(Channels, numChans)
	for ch := range out {
		out[ch] = make([]Sample, frames)
	}

	for i := 0; i < frames; i++ {
		frame := payload[i*frameSize : (i+1)*frameSize]
		for ch := 0; ch < numChans; ch++ {
			out[ch][i] = decodeF(frame[ch*bPerSample : (ch+1)*bPerSample])
		}
	}

	return out, nil
}

// DecodeContainer decodes the payload of c using its format descriptor.
func DecodeContainer(c *Container) (Channels, error) {
	if c == nil {
		return nil, codecErrorf(InvalidSampleData, "nil container")
	}

	return DecodeSamples(c.Data, int(c.Format.NumChannels), int(c.Format.BitsPerSample), c.Format.EffectiveFormatTag())
}

// EncodeSamples interleaves the channels into a PCM integer payload of the
// given bit depth. 32-bit float samples are written with their IEEE bits.
func EncodeSamples(channels Channels, bitDepth int) ([]byte, error) {
	return EncodeSamplesFormat(channels, NewFormatDescriptor(len(channels), 0, bitDepth))
}

// EncodeSamplesFormat interleaves the channels following f. When f is tagged
// IEEE float every sample is written as a normalized 32-bit float. Nothing is
// produced unless all channels have the same length.
func EncodeSamplesFormat(channels Channels, f FormatDescriptor) ([]byte, error) {
	if err := channels.Validate(); err != nil {
		return nil, err
	}

	if len(channels) != int(f.NumChannels) {
		return nil, codecErrorf(InvalidSampleData, "%d channels for a %d channel format", len(channels), f.NumChannels)
	}

	bitDepth := int(f.BitsPerSample)

	encodeF, err := sampleEncodeFunc(bitDepth, f.EffectiveFormatTag())
	if err != nil {
		return nil, err
	}

	numChans := len(channels)
	bPerSample := bytesPerSample(bitDepth)
	frames := channels.NumFrames()

	out := make([]byte, frames*numChans*bPerSample)

	pos := 0
	for i := 0; i < frames; i++ {
		for ch := 0; ch < numChans; ch++ {
			encodeF(out[pos:pos+bPerSample], channels[ch][i])
			pos += bPerSample
		}
	}

	return out, nil
}

func decodeInt24(b []byte) int32 {
	// place the three bytes in the top of a word, the arithmetic shift
	// replicates bit 23 into the high byte
	u := uint32(b[0])<<8 | uint32(b[1])<<16 | uint32(b[2])<<24

	return int32(u) >> 8
}

// sampleDecodeFunc returns a function converting one little-endian sample of
// buf into a Sample.
func sampleDecodeFunc(bitsPerSample int, formatTag uint16) (func([]byte) Sample, error) {
	switch formatTag {
	case FormatPCM, FormatIEEEFloat, FormatExtensible:
	default:
		return nil, codecErrorf(UnsupportedEncoding, "format tag %d", formatTag)
	}

	switch bitsPerSample {
	case 16:
		return func(buf []byte) Sample {
			return Int16(int16(binary.LittleEndian.Uint16(buf)))
		}, nil
	case 24:
		return func(buf []byte) Sample {
			return Sample{kind: KindInt24, i: decodeInt24(buf)}
		}, nil
	case 32:
		if formatTag == FormatIEEEFloat {
			return func(buf []byte) Sample {
				return Float32(math.Float32frombits(binary.LittleEndian.Uint32(buf)))
			}, nil
		}

		return func(buf []byte) Sample {
			return Int32(int32(binary.LittleEndian.Uint32(buf)))
		}, nil
	default:
		return nil, codecErrorf(UnsupportedBitDepth, "%d", bitsPerSample)
	}
}

// sampleEncodeFunc returns a function writing one sample into dst, which is
// exactly bytesPerSample(bitsPerSample) long.
func sampleEncodeFunc(bitsPerSample int, formatTag uint16) (func([]byte, Sample), error) {
	switch formatTag {
	case FormatPCM, FormatExtensible:
	case FormatIEEEFloat:
		if bitsPerSample != 32 {
			return nil, codecErrorf(UnsupportedBitDepth, "%d-bit float", bitsPerSample)
		}

		return func(dst []byte, s Sample) {
			binary.LittleEndian.PutUint32(dst, math.Float32bits(normalizeSample(s)))
		}, nil
	default:
		return nil, codecErrorf(UnsupportedEncoding, "format tag %d", formatTag)
	}

	convert, err := sampleConvertFunc(bitsPerSample)
	if err != nil {
		return nil, err
	}

	switch bitsPerSample {
	case 16:
		return func(dst []byte, s Sample) {
			binary.LittleEndian.PutUint16(dst, uint16(int16(convert(s))))
		}, nil
	case 24:
		return func(dst []byte, s Sample) {
			copy(dst, audio.Int32toInt24LEBytes(convert(s)))
		}, nil
	default:
		return func(dst []byte, s Sample) {
			if s.kind == KindFloat32 {
				binary.LittleEndian.PutUint32(dst, math.Float32bits(s.f))
				return
			}

			binary.LittleEndian.PutUint32(dst, uint32(convert(s)))
		}, nil
	}
}

// sampleConvertFunc returns the narrowing/widening conversion of any Sample to
// an integer of the target bit depth. Conversions truncate.
func sampleConvertFunc(bitDepth int) (func(Sample) int32, error) {
	switch bitDepth {
	case 16:
		return toInt16, nil
	case 24:
		return toInt24, nil
	case 32:
		return toInt32, nil
	default:
		return nil, codecErrorf(UnsupportedBitDepth, "%d", bitDepth)
	}
}

func toInt16(s Sample) int32 {
	switch s.kind {
	case KindInt16:
		return s.i
	case KindInt24:
		return s.i >> 8
	case KindInt32:
		return s.i >> 16
	default:
		return truncateScaled(s.f, fullScaleInt16)
	}
}

func toInt24(s Sample) int32 {
	switch s.kind {
	case KindInt16:
		return s.i << 8
	case KindInt24:
		return s.i
	case KindInt32:
		return s.i >> 8
	default:
		return truncateScaled(s.f, fullScaleInt24)
	}
}

func toInt32(s Sample) int32 {
	switch s.kind {
	case KindInt16:
		return s.i << 16
	case KindInt24:
		return s.i << 8
	case KindInt32:
		return s.i
	default:
		return truncateScaled(s.f, scalePCMInt32-1)
	}
}

// truncateScaled multiplies v, clamped to [-1, 1], by scale and drops the
// fraction.
func truncateScaled(v float32, scale float64) int32 {
	if math.IsNaN(float64(v)) {
		return 0
	}

	return int32(float64(clampFloat32(v, -1, 1)) * scale)
}
