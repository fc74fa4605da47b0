package wav

import (
	"bytes"
	"fmt"
	"io"
	"log"
)

func ExampleEncode() {
	channels := Channels{
		{Int16(0), Int16(1000), Int16(-1000), Int16(0)},
		{Int16(0), Int16(-500), Int16(500), Int16(0)},
	}

	var buf bytes.Buffer
	if err := Encode(&buf, channels, 44100, 16, &Metadata{Title: "Click"}); err != nil {
		log.Fatal(err)
	}

	f, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%d channels, %d frames at %d Hz, title %q\n",
		f.Format.NumChannels, f.SampleCount(), f.Format.SampleRate, f.Metadata.Title)
	// Output: 2 channels, 4 frames at 44100 Hz, title "Click"
}

func ExampleReadContainer() {
	c := NewContainer(1, 8000, 24, make([]byte, 3*4000))

	out := NewSeekBuffer(nil)
	if _, err := c.WriteTo(out); err != nil {
		log.Fatal(err)
	}

	if _, err := out.Seek(0, io.SeekStart); err != nil {
		log.Fatal(err)
	}

	parsed, err := ReadContainer(out)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%d-bit, %d samples, %s\n", parsed.Format.BitsPerSample, parsed.SampleCount(), parsed.Duration())
	// Output: 24-bit, 4000 samples, 500ms
}

func ExampleDecodeSamples() {
	channels, err := DecodeSamples([]byte{0x00, 0x00, 0x80, 0xFF, 0xFF, 0x7F}, 1, 24, FormatPCM)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(channels[0][0], channels[0][1])
	// Output: int24(-8388608) int24(8388607)
}
