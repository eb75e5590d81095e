// Package passes holds the three GLSL fragment-shader stages the
// orchestrator runs over the photon G-buffer: reset, render, and tone
// mapping. Each stage is a Go string constant compiled via
// opengl.NewProgram and drawn with opengl.DrawFullscreenTriangle.
package passes

import "volumetrace/rng"

// versionHeader opens every fragment shader this package compiles.
const versionHeader = "#version 410 core\n"

// commonUniforms declares the camera and resolution uniforms shared by the
// reset and render passes (both need to re-derive a pixel's NDC ray).
const commonUniforms = `
uniform mat4 uInvMVP;
uniform vec2 uInvResolution;
`

// commonFuncsGLSL holds the shared unprojection and AABB-slab-intersection
// math, used by both the reset pass (to seed a photon) and the render pass
// (to reseed a photon inline when a path terminates mid-dispatch, since
// render iterations never re-invoke a separate reset pass for a pixel that
// finishes early).
const commonFuncsGLSL = `
// unprojectPoint maps an NDC xy (plus a fixed z) through the inverse MVP,
// returning the resulting world-space point after the homogeneous divide.
vec3 unprojectPoint(vec2 ndc, float z) {
    vec4 clip = vec4(ndc, z, 1.0);
    vec4 world = uInvMVP * clip;
    return world.xyz / world.w;
}

// aabbSlab intersects a ray with the unit cube [0,1]^3, returning
// (tNear, tFar) with tNear clamped to >= 0. Tolerates zero direction
// components: division by zero yields +-inf, which the min/max reduction
// still resolves to a finite tFar.
vec2 aabbSlab(vec3 origin, vec3 dir) {
    vec3 invDir = 1.0 / dir;
    vec3 t0 = (vec3(0.0) - origin) * invDir;
    vec3 t1 = (vec3(1.0) - origin) * invDir;
    vec3 tMin = min(t0, t1);
    vec3 tMax = max(t0, t1);
    float tNear = max(max(tMin.x, tMin.y), tMin.z);
    float tFar = min(min(tMax.x, tMax.y), tMax.z);
    return vec2(max(tNear, 0.0), tFar);
}

// initPhoton unprojects the near/far points (jittered by one RNG square
// draw for antialiasing), derives the entry position, and resets the
// running accumulators. pixelNDC is the pixel's unjittered NDC coordinate.
void initPhoton(vec2 pixelNDC, inout uint rngState,
                 out vec3 position, out vec3 direction,
                 out vec3 transmittance, out float samples,
                 out vec3 radiance, out float bounces) {
    vec2 jitter = (rngSquare(rngState) * 2.0 - 1.0) * uInvResolution;

    vec3 nearPt = unprojectPoint(pixelNDC, -1.0);
    vec3 farPt = unprojectPoint(pixelNDC + jitter, 1.0);

    direction = normalize(farPt - nearPt);
    vec2 tBounds = aabbSlab(nearPt, direction);

    position = nearPt + tBounds.x * direction;
    transmittance = vec3(1.0);
    samples = 0.0;
    radiance = vec3(0.0);
    bounces = 0.0;
}
`

// pixelNDCGLSL derives a pixel's unjittered NDC coordinate from
// gl_FragCoord, so both the reset and render passes agree on which NDC
// point a given pixel represents regardless of which pass recomputes it.
const pixelNDCGLSL = `
vec2 pixelNDC() {
    return (gl_FragCoord.xy * uInvResolution) * 2.0 - 1.0;
}
`

// buildShaderGLSL concatenates the version header, shared uniform block,
// the RNG primitives, the shared unprojection helpers, and a stage's own
// body into one compilable fragment shader source.
func buildShaderGLSL(extraUniforms, body string) string {
	return versionHeader + commonUniforms + extraUniforms +
		rng.GLSL + pixelNDCGLSL + commonFuncsGLSL + body + "\x00"
}
