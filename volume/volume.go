// Package volume owns the 3D density texture and the RGBA transfer-function
// LUT the render pass samples every substep, plus the samplers attached to
// each, generalizing an ordinary 2D image-texture cache to a single 3D
// scalar field and a 1D color ramp.
package volume

import (
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"volumetrace/rendererr"
)

// Dims is the (W,H,D) shape of the scalar field.
type Dims struct {
	W, H, D int
}

func (d Dims) Product() int { return d.W * d.H * d.D }

// ResolveDims validates or infers the volume's dimensions from the raw byte
// length.
//
// If explicit is non-nil, its product must equal length exactly
// (DimensionMismatch otherwise). If explicit is nil, the implementation
// picks the largest cube root c such that c*c*c == length (AutoSizeFailed
// if no such c exists).
func ResolveDims(length int, explicit *Dims) (Dims, error) {
	if explicit != nil {
		if explicit.Product() != length {
			return Dims{}, rendererr.New(rendererr.DimensionMismatch,
				"explicit volume dimensions do not match byte length")
		}
		return *explicit, nil
	}

	c := int(cbrtFloor(float64(length)))
	for candidate := c + 1; candidate >= 1; candidate-- {
		if candidate*candidate*candidate == length {
			return Dims{W: candidate, H: candidate, D: candidate}, nil
		}
	}
	return Dims{}, rendererr.New(rendererr.AutoSizeFailed,
		"volume byte length has no near-cube factorization")
}

func cbrtFloor(n float64) float64 {
	if n <= 0 {
		return 0
	}
	lo, hi := 0.0, n
	for i := 0; i < 64; i++ {
		mid := (lo + hi) / 2
		if mid*mid*mid <= n {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// Volume is the GL-resident 3D density field and its sampler.
type Volume struct {
	Texture    uint32
	Dims       Dims
	LinearSamp bool
}

// NewVolume uploads an 8-bit scalar field as a GL_TEXTURE_3D, X-fastest
// then Y then Z, matching the raw byte layout. Address mode is
// clamp-to-edge on every axis regardless of filter mode.
func NewVolume(data []byte, dims Dims, linear bool) (*Volume, error) {
	if dims.Product() != len(data) {
		return nil, rendererr.New(rendererr.DimensionMismatch,
			"volume texture upload size mismatch")
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_3D, tex)

	filter := int32(gl.NEAREST)
	if linear {
		filter = gl.LINEAR
	}
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_MAG_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)

	var dataPtr unsafe.Pointer
	if len(data) > 0 {
		dataPtr = unsafe.Pointer(&data[0])
	}
	gl.TexImage3D(gl.TEXTURE_3D, 0, gl.R8,
		int32(dims.W), int32(dims.H), int32(dims.D), 0,
		gl.RED, gl.UNSIGNED_BYTE, dataPtr)

	gl.BindTexture(gl.TEXTURE_3D, 0)

	return &Volume{Texture: tex, Dims: dims, LinearSamp: linear}, nil
}

func (v *Volume) Destroy() {
	if v.Texture != 0 {
		gl.DeleteTextures(1, &v.Texture)
		v.Texture = 0
	}
}

// TransferFunction is the RGBA8 LUT sampled linearly across the scalar
// range, stored as a one-row 2D texture.
type TransferFunction struct {
	Texture uint32
	Entries int
}

// DefaultTFBytes is the default two-stop ramp:
// (0,0,0,255) -> (255,0,0,255).
var DefaultTFBytes = []byte{0, 0, 0, 255, 255, 0, 0, 255}

// NewTransferFunction uploads a raw RGBA8 byte stream as a 1×N LUT. Length
// must be a multiple of 4 with at least two entries.
func NewTransferFunction(data []byte) (*TransferFunction, error) {
	if len(data) == 0 {
		data = DefaultTFBytes
	}
	if len(data)%4 != 0 {
		return nil, rendererr.New(rendererr.TFMalformed,
			"transfer function byte length is not a multiple of 4")
	}
	entries := len(data) / 4
	if entries < 2 {
		return nil, rendererr.New(rendererr.TFMalformed,
			"transfer function needs at least two entries")
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(entries), 1, 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&data[0]))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &TransferFunction{Texture: tex, Entries: entries}, nil
}

func (t *TransferFunction) Destroy() {
	if t.Texture != 0 {
		gl.DeleteTextures(1, &t.Texture)
		t.Texture = 0
	}
}
