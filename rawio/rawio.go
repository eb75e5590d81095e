// Package rawio reads the two raw byte streams this renderer takes as
// input: the volume's scalar samples and the transfer function's RGBA8
// entries. Neither input has internal structure to parse, so this is a
// flat binary slurp (os.Open plus io.ReadAll, %w-wrapped errors).
package rawio

import (
	"io"
	"os"

	"volumetrace/rendererr"
)

// ReadAll reads the entire contents of path, classifying any failure as
// IORead.
func ReadAll(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, rendererr.Wrap(rendererr.IORead, "opening "+path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, rendererr.Wrap(rendererr.IORead, "reading "+path, err)
	}
	return data, nil
}
