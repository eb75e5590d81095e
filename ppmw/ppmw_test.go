package ppmw

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteProducesValidHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.ppm")

	width, height := 2, 1
	rgba := []byte{
		255, 0, 0, 255, // bottom-left (row 0, GL convention)
		0, 255, 0, 255, // bottom-right
	}

	if err := Write(path, width, height, rgba); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanWords)
	tokens := []string{}
	for scanner.Scan() {
		tokens = append(tokens, scanner.Text())
	}

	want := []string{"P3", "2", "1", "255", "255", "0", "0", "0", "255", "0"}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens %v, want %d tokens %v", len(tokens), tokens, len(want), want)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, tokens[i], want[i])
		}
	}
}

func TestWriteLeavesNoPartialFileOnSizeMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.ppm")

	err := Write(path, 4, 4, make([]byte, 3))
	if err == nil {
		t.Fatal("expected an error for a mismatched pixel buffer")
	}
	if _, statErr := os.Stat(path); statErr == nil {
		t.Error("Write left a partial file behind after failing")
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".ppmw-") {
			t.Errorf("temp file %q was not cleaned up", e.Name())
		}
	}
}
