package main

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	wav "github.com/cwbudde/pcmwav"
)

func TestTagFileWritesMetadata(t *testing.T) {
	tmpDir := t.TempDir()
	inPath := writeTestWav(t, tmpDir, "sample_title.wav", &wav.Metadata{Genre: "Old", Comment: "kept"})

	override := wav.Metadata{Artist: "Test Artist", Genre: "Genre"}

	outPath, err := tagFile(inPath, override, regexp.MustCompile("^sample_(.*)$"))
	if err != nil {
		t.Fatalf("tagFile returned error: %v", err)
	}

	if want := filepath.Join(tmpDir, "wavtagger", "sample_title.wav"); outPath != want {
		t.Fatalf("outPath=%q, want %q", outPath, want)
	}

	f, err := wav.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read tagged file: %v", err)
	}

	want := wav.Metadata{Title: "title", Artist: "Test Artist", Genre: "Genre", Comment: "kept"}
	if *f.Metadata != want {
		t.Fatalf("metadata=%+v, want %+v", *f.Metadata, want)
	}

	if f.SampleCount() != 4 || f.Channels[0][1] != wav.Int16(1000) {
		t.Fatalf("audio not preserved: %v", f.Channels)
	}

	orig, err := wav.ReadFile(inPath)
	if err != nil {
		t.Fatal(err)
	}

	if orig.Metadata.Genre != "Old" {
		t.Fatalf("source file was modified: %+v", orig.Metadata)
	}
}

func TestRunTagDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTestWav(t, dir, "a.wav", nil)
	writeTestWav(t, dir, "b.WAV", nil)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "tag", "--dir", dir, "--album", "Sessions"); err != nil {
		t.Fatalf("tag failed: %v", err)
	}

	for _, name := range []string{"a.wav", "b.WAV"} {
		f, err := wav.ReadFile(filepath.Join(dir, "wavtagger", name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}

		if f.Metadata.Album != "Sessions" {
			t.Fatalf("%s album=%q, want %q", name, f.Metadata.Album, "Sessions")
		}
	}

	if _, err := os.Stat(filepath.Join(dir, "wavtagger", "notes.txt")); !os.IsNotExist(err) {
		t.Fatalf("non wav file was copied: %v", err)
	}
}

func TestRunTagRequiresTarget(t *testing.T) {
	if err := runTag(tagOptions{}); !errors.Is(err, errNothingToTag) {
		t.Fatalf("expected errNothingToTag, got %v", err)
	}
}

func TestRunTagInvalidRegexp(t *testing.T) {
	if err := runTag(tagOptions{file: "x.wav", titleRegexp: "("}); err == nil {
		t.Fatal("expected an error for an invalid regexp")
	}
}

func TestMergeMetadata(t *testing.T) {
	dst := wav.Metadata{Title: "a", Artist: "b"}
	mergeMetadata(&dst, wav.Metadata{Artist: "c", Date: "2024"})

	want := wav.Metadata{Title: "a", Artist: "c", Date: "2024"}
	if dst != want {
		t.Fatalf("merged=%+v, want %+v", dst, want)
	}
}
