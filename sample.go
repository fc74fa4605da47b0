package wav

import (
	"fmt"
	"math"

	"github.com/go-audio/audio"
)

// SampleKind identifies the active representation of a Sample.
type SampleKind uint8

const (
	KindInt16 SampleKind = iota
	KindInt24
	KindInt32
	KindFloat32
)

func (k SampleKind) String() string {
	switch k {
	case KindInt16:
		return "int16"
	case KindInt24:
		return "int24"
	case KindInt32:
		return "int32"
	case KindFloat32:
		return "float32"
	default:
		return fmt.Sprintf("SampleKind(%d)", uint8(k))
	}
}

// Sample holds one value in exactly one of four representations. 24-bit
// values are stored widened to int32.
type Sample struct {
	kind SampleKind
	i    int32
	f    float32
}

func Int16(v int16) Sample { return Sample{kind: KindInt16, i: int32(v)} }

// Int24 keeps the low 24 bits of v, sign extended.
func Int24(v int32) Sample { return Sample{kind: KindInt24, i: (v << 8) >> 8} }

func Int32(v int32) Sample { return Sample{kind: KindInt32, i: v} }

func Float32(v float32) Sample { return Sample{kind: KindFloat32, f: v} }

func (s Sample) Kind() SampleKind { return s.kind }

// Int returns the integer value, or the float value truncated.
func (s Sample) Int() int32 {
	if s.kind == KindFloat32 {
		return int32(s.f)
	}

	return s.i
}

// Float returns the float value, or the integer value as is (not normalized).
func (s Sample) Float() float32 {
	if s.kind == KindFloat32 {
		return s.f
	}

	return float32(s.i)
}

func (s Sample) String() string {
	if s.kind == KindFloat32 {
		return fmt.Sprintf("%s(%g)", s.kind, s.f)
	}

	return fmt.Sprintf("%s(%d)", s.kind, s.i)
}

// Channels holds one sample sequence per channel; all sequences have the
// frame count as length.
type Channels [][]Sample

// NumFrames returns the length of the first channel.
func (c Channels) NumFrames() int {
	if len(c) == 0 {
		return 0
	}

	return len(c[0])
}

// Validate checks that there is at least one channel and all channels have
// the same length.
func (c Channels) Validate() error {
	if len(c) == 0 {
		return codecErrorf(InvalidSampleData, "no channels")
	}

	frames := len(c[0])
	for i := 1; i < len(c); i++ {
		if len(c[i]) != frames {
			return codecErrorf(InvalidSampleData, "channel %d has %d samples, channel 0 has %d", i, len(c[i]), frames)
		}
	}

	return nil
}

// IntBuffer interleaves the channels into a go-audio buffer with every
// sample converted to bitDepth.
func (c Channels) IntBuffer(sampleRate, bitDepth int) (*audio.IntBuffer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	convert, err := sampleConvertFunc(bitDepth)
	if err != nil {
		return nil, err
	}

	numChans := len(c)
	frames := c.NumFrames()

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numChans, SampleRate: sampleRate},
		SourceBitDepth: bitDepth,
		Data:           make([]int, frames*numChans),
	}

	for i := 0; i < frames; i++ {
		for ch := 0; ch < numChans; ch++ {
			buf.Data[i*numChans+ch] = int(convert(c[ch][i]))
		}
	}

	return buf, nil
}

// Float32Buffer interleaves the channels into a go-audio float buffer in the
// [-1, 1] range.
func (c Channels) Float32Buffer(sampleRate int) (*audio.Float32Buffer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	numChans := len(c)
	frames := c.NumFrames()

	buf := &audio.Float32Buffer{
		Format: &audio.Format{NumChannels: numChans, SampleRate: sampleRate},
		Data:   make([]float32, frames*numChans),
	}

	for i := 0; i < frames; i++ {
		for ch := 0; ch < numChans; ch++ {
			buf.Data[i*numChans+ch] = normalizeSample(c[ch][i])
		}
	}

	return buf, nil
}

// ChannelsFromIntBuffer splits an interleaved go-audio buffer into channels,
// picking the sample kind from its SourceBitDepth.
func ChannelsFromIntBuffer(buf *audio.IntBuffer) (Channels, error) {
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, codecErrorf(InvalidSampleData, "nil buffer or format")
	}

	var wrap func(int) Sample

	switch buf.SourceBitDepth {
	case 16:
		wrap = func(v int) Sample { return Int16(int16(v)) }
	case 24:
		wrap = func(v int) Sample { return Int24(int32(v)) }
	case 32:
		wrap = func(v int) Sample { return Int32(int32(v)) }
	default:
		return nil, codecErrorf(UnsupportedBitDepth, "%d", buf.SourceBitDepth)
	}

	numChans := buf.Format.NumChannels
	if len(buf.Data)%numChans != 0 {
		return nil, codecErrorf(InvalidSampleData, "%d samples don't split into %d channels", len(buf.Data), numChans)
	}

	frames := len(buf.Data) / numChans

	out := make(Channels, numChans)
	for ch := range out {
		out[ch] = make([]Sample, frames)
	}

	for i, v := range buf.Data {
		out[i%numChans][i/numChans] = wrap(v)
	}

	return out, nil
}

func normalizeSample(s Sample) float32 {
	switch s.kind {
	case KindInt16:
		return normalizePCMInt(int(s.i), 16)
	case KindInt24:
		return normalizePCMInt(int(s.i), 24)
	case KindInt32:
		return normalizePCMInt(int(s.i), 32)
	default:
		if math.IsNaN(float64(s.f)) {
			return 0
		}

		return clampFloat32(s.f, -1, 1)
	}
}
