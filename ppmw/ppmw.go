// Package ppmw writes the renderer's final image as an ASCII PPM (P3)
// file: write to a temp path in the output's directory and rename on
// success, so a failed or interrupted run never leaves a partial file at
// the requested path (bufio.Writer, %w-wrapped os errors).
package ppmw

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"volumetrace/rendererr"
)

// Write encodes an RGBA8 pixel buffer (row-major, bottom row first,
// left-to-right, 4 bytes per pixel as returned by gl.ReadPixels) as a PPM
// P3 file at path, emitting rows top-to-bottom. Only the RGB channels are
// emitted.
func Write(path string, width, height int, rgba []byte) error {
	if len(rgba) != width*height*4 {
		return rendererr.New(rendererr.IOWrite, "pixel buffer size does not match resolution")
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".ppmw-*.tmp")
	if err != nil {
		return rendererr.Wrap(rendererr.IOWrite, "creating temp output file", err)
	}
	tmpPath := tmp.Name()

	if err := encode(tmp, width, height, rgba); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return rendererr.Wrap(rendererr.IOWrite, "closing temp output file", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return rendererr.Wrap(rendererr.IOWrite, "renaming temp output file", err)
	}
	return nil
}

func encode(f *os.File, width, height int, rgba []byte) error {
	w := bufio.NewWriter(f)

	if _, err := fmt.Fprintf(w, "P3\n%d %d\n255\n", width, height); err != nil {
		return rendererr.Wrap(rendererr.IOWrite, "writing PPM header", err)
	}

	// gl.ReadPixels delivers row 0 at the bottom of the GL framebuffer;
	// PPM rows go top-to-bottom, so rows are walked in reverse.
	rowStride := width * 4
	for row := height - 1; row >= 0; row-- {
		base := row * rowStride
		for col := 0; col < width; col++ {
			p := base + col*4
			if _, err := fmt.Fprintf(w, "%d %d %d ", rgba[p], rgba[p+1], rgba[p+2]); err != nil {
				return rendererr.Wrap(rendererr.IOWrite, "writing PPM pixel data", err)
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			return rendererr.Wrap(rendererr.IOWrite, "writing PPM row terminator", err)
		}
	}

	if err := w.Flush(); err != nil {
		return rendererr.Wrap(rendererr.IOWrite, "flushing PPM output", err)
	}
	return nil
}
