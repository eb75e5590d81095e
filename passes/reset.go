package passes

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"volumetrace/internal/opengl"
)

// resetFragGLSL runs one fullscreen-triangle invocation per pixel, no
// input G-buffer, writing the four photon attachments fresh.
const resetFragGLSL = `
uniform uint uSeed;

layout(location = 0) out vec4 outPosition;
layout(location = 1) out vec4 outDirection;
layout(location = 2) out vec4 outTransmission;
layout(location = 3) out vec4 outRadiance;

void main() {
    vec2 ndc = pixelNDC();
    uint rngState = rngSeed(floatBitsToUint(ndc.x), floatBitsToUint(ndc.y), uSeed);

    vec3 position, direction, transmittance, radiance;
    float samples, bounces;
    initPhoton(ndc, rngState, position, direction, transmittance, samples, radiance, bounces);

    outPosition = vec4(position, 0.0);
    outDirection = vec4(direction, 0.0);
    outTransmission = vec4(transmittance, samples);
    outRadiance = vec4(radiance, bounces);
}
`

// ResetPass compiles and runs the reset stage, writing every pixel's
// initial photon into a G-buffer's attachments with no prior state to
// read.
type ResetPass struct {
	prog       uint32
	vao        uint32
	invMVPLoc  int32
	invResLoc  int32
	seedLoc    int32
}

func NewResetPass() (*ResetPass, error) {
	src := buildShaderGLSL("", resetFragGLSL)
	prog, err := opengl.NewProgram(opengl.FullscreenTriangleVert, src)
	if err != nil {
		return nil, fmt.Errorf("reset pass shader: %w", err)
	}
	return &ResetPass{
		prog:      prog,
		vao:       opengl.NewFullscreenVAO(),
		invMVPLoc: gl.GetUniformLocation(prog, gl.Str("uInvMVP\x00")),
		invResLoc: gl.GetUniformLocation(prog, gl.Str("uInvResolution\x00")),
		seedLoc:   gl.GetUniformLocation(prog, gl.Str("uSeed\x00")),
	}, nil
}

// Run writes a fresh photon for every pixel of the target G-buffer, sized
// width x height, using invMVP (column-major) and a per-run seed.
func (p *ResetPass) Run(invMVP [16]float32, width, height int, seed uint32) {
	gl.UseProgram(p.prog)
	gl.UniformMatrix4fv(p.invMVPLoc, 1, false, &invMVP[0])
	gl.Uniform2f(p.invResLoc, 1.0/float32(width), 1.0/float32(height))
	gl.Uniform1ui(p.seedLoc, seed)
	opengl.DrawFullscreenTriangle(p.vao)
}

func (p *ResetPass) Destroy() {
	if p.prog != 0 {
		gl.DeleteProgram(p.prog)
		p.prog = 0
	}
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
		p.vao = 0
	}
}
