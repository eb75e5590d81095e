package passes

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"volumetrace/internal/opengl"
	"volumetrace/rendererr"
)

// toneMapFragGLSL is the Artistic tone mapper: low/mid/high keying, a
// saturation blend toward a luminance proxy, then a gamma exponent
// derived from the mid key.
const toneMapFragGLSL = `
#version 410 core
in vec2 fragUV;
out vec4 outColor;

uniform sampler2D uRadiance;
uniform float uLow;
uniform float uMid;
uniform float uHigh;
uniform float uSaturation;
uniform float uGamma;

void main() {
    vec3 radiance = texture(uRadiance, fragUV).rgb;

    vec3 c = (radiance - uLow) / (uHigh - uLow);

    vec3 g = normalize(vec3(1.0));
    float luma = dot(c, g);
    c = mix(luma * g, c, uSaturation);

    float m = (uMid - uLow) / (uHigh - uLow);
    float e = -log2(m);
    c = sign(c) * pow(abs(c), vec3(e / uGamma));

    outColor = vec4(clamp(c, 0.0, 1.0), 1.0);
}
` + "\x00"

// ToneMapPass compiles and runs the tone mapping stage.
type ToneMapPass struct {
	prog uint32
	vao  uint32

	radianceLoc   int32
	lowLoc        int32
	midLoc        int32
	highLoc       int32
	saturationLoc int32
	gammaLoc      int32
}

// Tones bundles the tone mapper's knobs; defaults are (0.0, 0.5, 1.0),
// saturation 1.0, gamma 2.2.
type Tones struct {
	Low, Mid, High float32
	Saturation     float32
	Gamma          float32
}

// Validate enforces that tones are strictly increasing, which is what
// keeps m = (mid-low)/(high-low) strictly inside (0,1) and e = -log2(m)
// finite. The default low=0.0 is otherwise a valid value, so the lower
// bound is not pinned above zero.
func (t Tones) Validate() error {
	if !(t.Low < t.Mid && t.Mid < t.High) {
		return rendererr.New(rendererr.ToneConfig, "tones must satisfy low < mid < high")
	}
	return nil
}

func NewToneMapPass() (*ToneMapPass, error) {
	prog, err := opengl.NewProgram(opengl.FullscreenTriangleVert, toneMapFragGLSL)
	if err != nil {
		return nil, fmt.Errorf("tone map pass shader: %w", err)
	}

	tm := &ToneMapPass{
		prog:          prog,
		vao:           opengl.NewFullscreenVAO(),
		radianceLoc:   gl.GetUniformLocation(prog, gl.Str("uRadiance\x00")),
		lowLoc:        gl.GetUniformLocation(prog, gl.Str("uLow\x00")),
		midLoc:        gl.GetUniformLocation(prog, gl.Str("uMid\x00")),
		highLoc:       gl.GetUniformLocation(prog, gl.Str("uHigh\x00")),
		saturationLoc: gl.GetUniformLocation(prog, gl.Str("uSaturation\x00")),
		gammaLoc:      gl.GetUniformLocation(prog, gl.Str("uGamma\x00")),
	}
	gl.UseProgram(prog)
	gl.Uniform1i(tm.radianceLoc, 0)
	return tm, nil
}

// Run reads the radiance attachment of the final photon G-buffer and
// writes the tone-mapped sRGB image to whatever framebuffer is currently
// bound (the orchestrator binds a plain RGBA8 target before calling this).
func (tm *ToneMapPass) Run(radianceTex uint32, tones Tones) {
	gl.UseProgram(tm.prog)
	gl.Uniform1f(tm.lowLoc, tones.Low)
	gl.Uniform1f(tm.midLoc, tones.Mid)
	gl.Uniform1f(tm.highLoc, tones.High)
	gl.Uniform1f(tm.saturationLoc, tones.Saturation)
	gl.Uniform1f(tm.gammaLoc, tones.Gamma)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, radianceTex)

	opengl.DrawFullscreenTriangle(tm.vao)
}

func (tm *ToneMapPass) Destroy() {
	if tm.prog != 0 {
		gl.DeleteProgram(tm.prog)
		tm.prog = 0
	}
	if tm.vao != 0 {
		gl.DeleteVertexArrays(1, &tm.vao)
		tm.vao = 0
	}
}
