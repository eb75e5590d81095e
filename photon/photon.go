// Package photon owns the per-pixel photon state carried between host-level
// render iterations: four RGBA32F attachments bound to one FBO via
// gl.DrawBuffers, ping-ponged between two GBuffer instances so every pass
// reads last iteration's state from one buffer and writes this iteration's
// state to the other. The allocate-texture/attach-to-FBO/check-complete
// shape is the same one ordinary single-attachment FBOs use, generalized
// to a four-channel photon G-buffer and a rotating pair of buffers.
package photon

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"volumetrace/core"
)

// Attachment indices, matching the gl.DrawBuffers binding order and the
// sampler bindings every pass shader uses to read the previous state.
const (
	AttPosition     = 0 // xyz = world-space photon position, w unused
	AttDirection    = 1 // xyz = current travel direction, w unused
	AttTransmission = 2 // rgb = transmittance, a = accumulated sample count
	AttRadiance     = 3 // rgb = running-mean radiance, a = bounce count
)

const numAttachments = 4

// GBuffer is one complete photon-state snapshot: four RGBA32F textures
// bound to a single FBO's four color attachments.
type GBuffer struct {
	FBO      uint32
	Textures [numAttachments]uint32
	Width    int32
	Height   int32
}

func newGBuffer(width, height int32) (*GBuffer, error) {
	g := &GBuffer{Width: width, Height: height}

	gl.GenFramebuffers(1, &g.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, g.FBO)

	drawBuffers := make([]uint32, numAttachments)
	for i := 0; i < numAttachments; i++ {
		gl.GenTextures(1, &g.Textures[i])
		gl.BindTexture(gl.TEXTURE_2D, g.Textures[i])
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA32F, width, height, 0,
			gl.RGBA, gl.FLOAT, nil)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
		gl.BindTexture(gl.TEXTURE_2D, 0)

		attachment := uint32(gl.COLOR_ATTACHMENT0 + i)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, attachment, gl.TEXTURE_2D, g.Textures[i], 0)
		drawBuffers[i] = attachment
	}
	gl.DrawBuffers(int32(numAttachments), &drawBuffers[0])

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		g.Destroy()
		return nil, fmt.Errorf("photon G-buffer incomplete: 0x%x", status)
	}
	return g, nil
}

func (g *GBuffer) Destroy() {
	if g.FBO != 0 {
		gl.DeleteFramebuffers(1, &g.FBO)
		g.FBO = 0
	}
	for i := range g.Textures {
		if g.Textures[i] != 0 {
			gl.DeleteTextures(1, &g.Textures[i])
			g.Textures[i] = 0
		}
	}
}

// Bind makes this buffer the draw target, sized to its own dimensions.
func (g *GBuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, g.FBO)
	core.Viewport{Width: g.Width, Height: g.Height}.Apply()
}

// BindTextures binds every attachment to consecutive texture units starting
// at unit, for a shader reading the previous iteration's state.
func (g *GBuffer) BindTextures(unit int32) {
	for i, tex := range g.Textures {
		gl.ActiveTexture(uint32(gl.TEXTURE0 + unit + int32(i)))
		gl.BindTexture(gl.TEXTURE_2D, tex)
	}
}

// Swap is the two-buffer photon state: one buffer holds the state the last
// completed iteration wrote, the other is free to become the next
// iteration's write target. Reset writes the first iteration's target;
// every render iteration after that reads Front and writes Back, then
// flips.
type Swap struct {
	buffers [2]*GBuffer
	front   int
}

// NewSwap allocates both ping-pong G-buffers at the render resolution.
func NewSwap(width, height int) (*Swap, error) {
	s := &Swap{}
	for i := range s.buffers {
		g, err := newGBuffer(int32(width), int32(height))
		if err != nil {
			s.Destroy()
			return nil, err
		}
		s.buffers[i] = g
	}
	return s, nil
}

func (s *Swap) Destroy() {
	for i := range s.buffers {
		if s.buffers[i] != nil {
			s.buffers[i].Destroy()
			s.buffers[i] = nil
		}
	}
}

// Front is the G-buffer holding the most recently completed iteration's
// state: what the next pass should read from.
func (s *Swap) Front() *GBuffer { return s.buffers[s.front] }

// Back is the G-buffer the next pass should write into.
func (s *Swap) Back() *GBuffer { return s.buffers[1-s.front] }

// Flip promotes Back to Front after a pass finishes writing it.
func (s *Swap) Flip() { s.front = 1 - s.front }

// BeginWrite binds Back as the draw target and Front's attachments as
// input textures starting at the given unit, the shape every render pass
// invocation follows (the reset pass reads no input and binds Back alone).
func (s *Swap) BeginWrite(inputUnit int32) {
	s.Back().Bind()
	s.Front().BindTextures(inputUnit)
}
