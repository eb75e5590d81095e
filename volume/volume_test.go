package volume

import (
	"testing"

	"volumetrace/rendererr"
)

func TestResolveDimsExplicitMatch(t *testing.T) {
	explicit := &Dims{W: 4, H: 4, D: 4}
	dims, err := ResolveDims(64, explicit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dims != *explicit {
		t.Errorf("got %+v, want %+v", dims, *explicit)
	}
}

func TestResolveDimsExplicitMismatch(t *testing.T) {
	explicit := &Dims{W: 4, H: 4, D: 4}
	_, err := ResolveDims(63, explicit)
	if rendererr.KindOf(err) != rendererr.DimensionMismatch {
		t.Fatalf("expected DimensionMismatch, got %v", err)
	}
}

func TestResolveDimsAutoCube(t *testing.T) {
	dims, err := ResolveDims(8, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dims != (Dims{W: 2, H: 2, D: 2}) {
		t.Errorf("got %+v, want 2x2x2", dims)
	}
}

func TestResolveDimsAutoLargestCube(t *testing.T) {
	// 1000 = 10^3, but also factors that could mislead a naive search;
	// the largest valid cube root must be chosen.
	dims, err := ResolveDims(1000, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dims != (Dims{W: 10, H: 10, D: 10}) {
		t.Errorf("got %+v, want 10x10x10", dims)
	}
}

func TestResolveDimsAutoFailsWithoutCube(t *testing.T) {
	_, err := ResolveDims(10, nil)
	if rendererr.KindOf(err) != rendererr.AutoSizeFailed {
		t.Fatalf("expected AutoSizeFailed, got %v", err)
	}
}

func TestNewVolumeSizeMismatch(t *testing.T) {
	_, err := NewVolume(make([]byte, 10), Dims{W: 2, H: 2, D: 2}, false)
	if rendererr.KindOf(err) != rendererr.DimensionMismatch {
		t.Fatalf("expected DimensionMismatch, got %v", err)
	}
}

func TestNewTransferFunctionMalformedLength(t *testing.T) {
	_, err := NewTransferFunction([]byte{1, 2, 3})
	if rendererr.KindOf(err) != rendererr.TFMalformed {
		t.Fatalf("expected TFMalformed, got %v", err)
	}
}

func TestNewTransferFunctionTooFewEntries(t *testing.T) {
	_, err := NewTransferFunction([]byte{0, 0, 0, 255})
	if rendererr.KindOf(err) != rendererr.TFMalformed {
		t.Fatalf("expected TFMalformed, got %v", err)
	}
}
