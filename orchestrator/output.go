package orchestrator

import (
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"volumetrace/core"
)

// outputTarget is the plain RGBA8 FBO the tone map pass renders into,
// sized to the run's output resolution, read back once at the end.
type outputTarget struct {
	fbo     uint32
	tex     uint32
	width   int32
	height  int32
}

func newOutputTarget(width, height int) (*outputTarget, error) {
	o := &outputTarget{width: int32(width), height: int32(height)}

	gl.GenTextures(1, &o.tex)
	gl.BindTexture(gl.TEXTURE_2D, o.tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, o.width, o.height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenFramebuffers(1, &o.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, o.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, o.tex, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		o.destroy()
		return nil, fmt.Errorf("output target incomplete: 0x%x", status)
	}
	return o, nil
}

func (o *outputTarget) bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, o.fbo)
	core.Viewport{Width: o.width, Height: o.height}.Apply()
}

// readPixels returns the RGBA8 image, row 0 at the bottom (GL convention);
// ppmw.Write accounts for this when emitting top-to-bottom PPM rows.
func (o *outputTarget) readPixels() []byte {
	gl.BindFramebuffer(gl.FRAMEBUFFER, o.fbo)
	buf := make([]byte, int(o.width)*int(o.height)*4)
	gl.ReadPixels(0, 0, o.width, o.height, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&buf[0]))
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return buf
}

func (o *outputTarget) destroy() {
	if o.fbo != 0 {
		gl.DeleteFramebuffers(1, &o.fbo)
		o.fbo = 0
	}
	if o.tex != 0 {
		gl.DeleteTextures(1, &o.tex)
		o.tex = 0
	}
}
