package wav

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEncodeDecodeFile(t *testing.T) {
	channels := Channels{
		{Int16(100), Int16(-100), Int16(32767)},
		{Int16(1), Int16(2), Int16(3)},
	}
	meta := &Metadata{Title: "Loop", Genre: "Ambient"}

	var buf bytes.Buffer
	if err := Encode(&buf, channels, 48000, 16, meta); err != nil {
		t.Fatal(err)
	}

	f, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	if f.Format.NumChannels != 2 || f.Format.SampleRate != 48000 || f.Format.BitsPerSample != 16 {
		t.Fatalf("unexpected format %+v", f.Format)
	}

	if f.SampleCount() != 3 {
		t.Fatalf("SampleCount()=%d, want 3", f.SampleCount())
	}

	if got, want := f.DurationSeconds(), 3.0/48000; got != want {
		t.Fatalf("DurationSeconds()=%g, want %g", got, want)
	}

	for ch := range channels {
		for i := range channels[ch] {
			if f.Channels[ch][i] != channels[ch][i] {
				t.Fatalf("channel %d frame %d: got %v, want %v", ch, i, f.Channels[ch][i], channels[ch][i])
			}
		}
	}

	if f.MetadataErr != nil {
		t.Fatalf("unexpected metadata error %v", f.MetadataErr)
	}

	if *f.Metadata != *meta {
		t.Fatalf("metadata=%+v, want %+v", f.Metadata, meta)
	}
}

func TestDecodeBrokenMetadataIsNotFatal(t *testing.T) {
	badList := append([]byte("INFOINAM"), 99, 0, 0, 0)

	data := buildWav(
		rawChunk("fmt ", fmtBody(1, 1, 8000, 16)),
		rawChunk("data", []byte{1, 0, 2, 0}),
		rawChunk("LIST", badList),
	)

	f, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("metadata errors must not fail decoding: %v", err)
	}

	if f.MetadataErr == nil {
		t.Fatal("expected the metadata error to be recorded")
	}

	if f.Metadata == nil || !f.Metadata.IsEmpty() {
		t.Fatalf("expected empty metadata, got %+v", f.Metadata)
	}

	if f.SampleCount() != 2 {
		t.Fatalf("SampleCount()=%d, want 2", f.SampleCount())
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("RIFF\x04\x00\x00\x00WAVX")))
	if !errors.Is(err, ErrNotWave) {
		t.Fatalf("expected ErrNotWave, got %v", err)
	}

	data := buildWav(rawChunk("fmt ", fmtBody(1, 1, 8000, 8)), rawChunk("data", []byte{1, 2}))

	_, err = Decode(bytes.NewReader(data))
	if !errors.Is(err, ErrUnsupportedBitDepth) {
		t.Fatalf("expected ErrUnsupportedBitDepth, got %v", err)
	}
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	channels := Channels{{Int24(-8388608), Int24(8388607), Int24(0)}}

	if err := WriteFile(path, channels, 96000, 24, nil); err != nil {
		t.Fatal(err)
	}

	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}

	// 44 byte header, 9 bytes of data and the pad byte
	if fi.Size() != 54 {
		t.Fatalf("file size=%d, want 54", fi.Size())
	}

	f, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	for i := range channels[0] {
		if f.Channels[0][i] != channels[0][i] {
			t.Fatalf("frame %d: got %v, want %v", i, f.Channels[0][i], channels[0][i])
		}
	}

	if !f.Metadata.IsEmpty() {
		t.Fatalf("expected no metadata, got %+v", f.Metadata)
	}
}

func TestWriteFileInvalidChannelsCreatesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "never.wav")

	err := WriteFile(path, Channels{{Int16(1)}, {}}, 8000, 16, nil)
	if !errors.Is(err, ErrInvalidSampleData) {
		t.Fatalf("expected ErrInvalidSampleData, got %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no file, stat returned %v", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, Channels{{Int16(1)}, {}}, 8000, 16, nil); err == nil || buf.Len() != 0 {
		t.Fatalf("expected an error and no output, got %v and %d bytes", err, buf.Len())
	}
}
