package passes

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"volumetrace/internal/opengl"
)

// renderFragGLSL is the delta-tracking / Russian-roulette inner loop, run
// for `uSteps` substeps per invocation, reading the previous iteration's
// photon from the four uPrev* samplers and writing the updated photon to
// this iteration's G-buffer.
const renderFragGLSL = `
uniform sampler2D uPrevPosition;
uniform sampler2D uPrevDirection;
uniform sampler2D uPrevTransmission;
uniform sampler2D uPrevRadiance;

uniform sampler3D uVolume;
uniform sampler2D uTransferFunction;

uniform uint uSeed;
uniform int uSteps;
uniform int uMaxBounces;
uniform float uExtinction;
uniform float uAnisotropy;

layout(location = 0) out vec4 outPosition;
layout(location = 1) out vec4 outDirection;
layout(location = 2) out vec4 outTransmission;
layout(location = 3) out vec4 outRadiance;

// henyeyGreenstein draws a new direction biased by anisotropy g around
// the current direction d.
vec3 henyeyGreenstein(float g, vec3 d, inout uint rngState) {
    if (abs(g) < 1e-5) {
        return rngSphere(rngState);
    }
    float u = rngU(rngState);
    float denom = 1.0 - g + 2.0 * g * u;
    float term = (1.0 - g * g) / denom;
    float cosTheta = (1.0 + g * g - term * term) / (2.0 * g);
    vec3 s = rngSphere(rngState);
    float lambda = cosTheta - dot(d, s);
    return normalize(s + lambda * d);
}

void main() {
    ivec2 texel = ivec2(gl_FragCoord.xy);

    vec3 position = texelFetch(uPrevPosition, texel, 0).xyz;
    vec3 direction = texelFetch(uPrevDirection, texel, 0).xyz;
    vec4 transmissionSamples = texelFetch(uPrevTransmission, texel, 0);
    vec4 radianceBounces = texelFetch(uPrevRadiance, texel, 0);

    vec3 transmittance = transmissionSamples.xyz;
    float samples = transmissionSamples.w;
    vec3 radiance = radianceBounces.xyz;
    int bounces = int(round(radianceBounces.w + 0.5));

    vec2 ndc = pixelNDC();
    uint rngState = rngSeed(floatBitsToUint(ndc.x), floatBitsToUint(ndc.y), uSeed);

    for (int step = 0; step < uSteps; step++) {
        float d = rngExp(rngState, uExtinction);
        position += d * direction;

        if (any(lessThan(position, vec3(0.0))) || any(greaterThan(position, vec3(1.0)))) {
            vec3 contrib = transmittance;
            samples += 1.0;
            radiance += (contrib - radiance) / samples;

            vec3 newPos, newDir, newTrans, newRad;
            float newSamples, newBounces;
            initPhoton(ndc, rngState, newPos, newDir, newTrans, newSamples, newRad, newBounces);
            position = newPos;
            direction = newDir;
            transmittance = newTrans;
            // radiance and samples are the running-mean accumulators: samples
            // stays monotonically non-decreasing and radiance keeps the mean
            // so far; only the geometric photon state resets when a path
            // completes.
            bounces = 0;
            continue;
        }

        float density = texture(uVolume, position).r;
        vec4 c = texture(uTransferFunction, vec2(density, 0.5));

        float pNull = 1.0 - c.a;
        float pScat = bounces < uMaxBounces ? c.a * max(c.r, max(c.g, c.b)) : 0.0;
        float pAbs = 1.0 - pNull - pScat;

        float u = rngU(rngState);
        if (u < pAbs) {
            samples += 1.0;
            radiance += (vec3(0.0) - radiance) / samples;

            vec3 newPos, newDir, newTrans, newRad;
            float newSamples, newBounces;
            initPhoton(ndc, rngState, newPos, newDir, newTrans, newSamples, newRad, newBounces);
            position = newPos;
            direction = newDir;
            transmittance = newTrans;
            bounces = 0;
        } else if (u < pAbs + pScat) {
            transmittance *= c.rgb;
            direction = henyeyGreenstein(uAnisotropy, direction, rngState);
            bounces += 1;
        }
        // else: null collision, position already advanced, no other state change.
    }

    outPosition = vec4(position, 0.0);
    outDirection = vec4(direction, 0.0);
    outTransmission = vec4(transmittance, samples);
    outRadiance = vec4(radiance, float(bounces));
}
`

// RenderPass compiles and runs the render stage.
type RenderPass struct {
	prog uint32
	vao  uint32

	invMVPLoc    int32
	invResLoc    int32
	seedLoc      int32
	stepsLoc     int32
	maxBouncesLoc int32
	extinctionLoc int32
	anisotropyLoc int32
	volumeLoc    int32
	tfLoc        int32
	prevPosLoc   int32
	prevDirLoc   int32
	prevTransLoc int32
	prevRadLoc   int32
}

// Texture unit layout: 0-3 are the previous G-buffer's four attachments
// (see photon.Swap.BeginWrite), 4 is the volume, 5 is the transfer function.
const (
	unitVolume = 4
	unitTF     = 5
)

func NewRenderPass() (*RenderPass, error) {
	src := buildShaderGLSL("", renderFragGLSL)
	prog, err := opengl.NewProgram(opengl.FullscreenTriangleVert, src)
	if err != nil {
		return nil, fmt.Errorf("render pass shader: %w", err)
	}

	rp := &RenderPass{
		prog:          prog,
		vao:           opengl.NewFullscreenVAO(),
		invMVPLoc:     gl.GetUniformLocation(prog, gl.Str("uInvMVP\x00")),
		invResLoc:     gl.GetUniformLocation(prog, gl.Str("uInvResolution\x00")),
		seedLoc:       gl.GetUniformLocation(prog, gl.Str("uSeed\x00")),
		stepsLoc:      gl.GetUniformLocation(prog, gl.Str("uSteps\x00")),
		maxBouncesLoc: gl.GetUniformLocation(prog, gl.Str("uMaxBounces\x00")),
		extinctionLoc: gl.GetUniformLocation(prog, gl.Str("uExtinction\x00")),
		anisotropyLoc: gl.GetUniformLocation(prog, gl.Str("uAnisotropy\x00")),
		volumeLoc:     gl.GetUniformLocation(prog, gl.Str("uVolume\x00")),
		tfLoc:         gl.GetUniformLocation(prog, gl.Str("uTransferFunction\x00")),
		prevPosLoc:    gl.GetUniformLocation(prog, gl.Str("uPrevPosition\x00")),
		prevDirLoc:    gl.GetUniformLocation(prog, gl.Str("uPrevDirection\x00")),
		prevTransLoc:  gl.GetUniformLocation(prog, gl.Str("uPrevTransmission\x00")),
		prevRadLoc:    gl.GetUniformLocation(prog, gl.Str("uPrevRadiance\x00")),
	}

	gl.UseProgram(prog)
	gl.Uniform1i(rp.prevPosLoc, 0)
	gl.Uniform1i(rp.prevDirLoc, 1)
	gl.Uniform1i(rp.prevTransLoc, 2)
	gl.Uniform1i(rp.prevRadLoc, 3)
	gl.Uniform1i(rp.volumeLoc, unitVolume)
	gl.Uniform1i(rp.tfLoc, unitTF)

	return rp, nil
}

// Params bundles one iteration's render-pass uniforms.
type Params struct {
	InvMVP     [16]float32
	Width      int
	Height     int
	Seed       uint32
	Steps      int
	MaxBounces int
	Extinction float32
	Anisotropy float32
}

// Run executes one host-level iteration (uSteps GPU substeps) over every
// pixel, reading the previous G-buffer (already bound to texture units
// 0-3 by the caller via photon.Swap.BeginWrite) and the given volume and
// transfer-function textures.
func (p *RenderPass) Run(params Params, volumeTex, tfTex uint32) {
	gl.UseProgram(p.prog)
	gl.UniformMatrix4fv(p.invMVPLoc, 1, false, &params.InvMVP[0])
	gl.Uniform2f(p.invResLoc, 1.0/float32(params.Width), 1.0/float32(params.Height))
	gl.Uniform1ui(p.seedLoc, params.Seed)
	gl.Uniform1i(p.stepsLoc, int32(params.Steps))
	gl.Uniform1i(p.maxBouncesLoc, int32(params.MaxBounces))
	gl.Uniform1f(p.extinctionLoc, params.Extinction)
	gl.Uniform1f(p.anisotropyLoc, params.Anisotropy)

	gl.ActiveTexture(gl.TEXTURE0 + unitVolume)
	gl.BindTexture(gl.TEXTURE_3D, volumeTex)
	gl.ActiveTexture(gl.TEXTURE0 + unitTF)
	gl.BindTexture(gl.TEXTURE_2D, tfTex)

	opengl.DrawFullscreenTriangle(p.vao)
}

func (p *RenderPass) Destroy() {
	if p.prog != 0 {
		gl.DeleteProgram(p.prog)
		p.prog = 0
	}
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
		p.vao = 0
	}
}
