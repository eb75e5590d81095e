package rendererr

import (
	"errors"
	"testing"
)

func TestExitCodes(t *testing.T) {
	cases := map[Kind]int{
		BadArguments:      1,
		DimensionMismatch: 1,
		AutoSizeFailed:    1,
		TFMalformed:       1,
		ToneConfig:        1,
		IORead:            2,
		IOWrite:           3,
		DeviceInit:        4,
		DeviceLost:        4,
		OutOfMemory:       4,
	}
	for kind, want := range cases {
		if got := kind.ExitCode(); got != want {
			t.Errorf("%v.ExitCode() = %d, want %d", kind, got, want)
		}
	}
}

func TestKindOfUnwraps(t *testing.T) {
	base := errors.New("disk full")
	err := Wrap(IOWrite, "writing output", base)
	if KindOf(err) != IOWrite {
		t.Errorf("KindOf() = %v, want IOWrite", KindOf(err))
	}
	if !errors.Is(err, base) {
		t.Errorf("errors.Is did not find wrapped cause")
	}
}

func TestKindOfNonRendererError(t *testing.T) {
	if KindOf(errors.New("plain error")) != BadArguments {
		t.Errorf("expected BadArguments default for an unclassified error")
	}
}

func TestNewHasNoWrappedCause(t *testing.T) {
	err := New(ToneConfig, "tones must be increasing")
	if errors.Unwrap(err) != nil {
		t.Errorf("New() error should not unwrap to a cause")
	}
}
