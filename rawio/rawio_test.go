package rawio

import (
	"os"
	"path/filepath"
	"testing"

	"volumetrace/rendererr"
)

func TestReadAllReturnsExactBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "volume.raw")
	want := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if err := os.WriteFile(path, want, 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	got, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d bytes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("byte %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestReadAllMissingFileIsIORead(t *testing.T) {
	_, err := ReadAll(filepath.Join(t.TempDir(), "does-not-exist.raw"))
	if rendererr.KindOf(err) != rendererr.IORead {
		t.Fatalf("expected IORead, got %v", err)
	}
}
