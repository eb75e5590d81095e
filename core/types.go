package core

import gl "github.com/go-gl/gl/v4.1-core/gl"

// Viewport describes the GL viewport rectangle a pass draws into, and
// applies it with gl.Viewport.
type Viewport struct {
	X, Y, Width, Height int32
}

func (v Viewport) Apply() {
	gl.Viewport(v.X, v.Y, v.Width, v.Height)
}
