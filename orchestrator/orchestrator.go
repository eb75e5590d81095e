// Package orchestrator sequences the whole render: bring up the headless
// GL context, run Reset once, Render `iterations` times, Tone map once,
// read back, and hand the pixel buffer to the caller for PPM emission.
// The render-loop shape (core.Window ownership, GL resource lifetime,
// single fence-then-readback) is a single offline run rather than a
// per-frame interactive loop.
package orchestrator

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"volumetrace/camera"
	"volumetrace/core"
	"volumetrace/passes"
	"volumetrace/photon"
	"volumetrace/rendererr"
	"volumetrace/rng"
	"volumetrace/volume"
)

// Config bundles every parameter the orchestrator needs beyond the raw
// volume/TF bytes, mirroring the CLI surface.
type Config struct {
	OutWidth, OutHeight int
	Steps               int
	Iterations          int
	Anisotropy          float32
	Extinction          float32
	MaxBounces          int
	Seed                uint32
	Tones               passes.Tones
}

// Run executes one full render: bring up a headless GL context, build the
// volume/TF/photon resources, sequence the passes, and return the final
// tone-mapped image as an RGBA8 buffer in gl.ReadPixels order (bottom row
// first, left-to-right within a row).
func Run(cfg Config, volumeData []byte, dims volume.Dims, tfData []byte, linear bool, cam camera.Camera) ([]byte, error) {
	if err := cfg.Tones.Validate(); err != nil {
		return nil, err
	}

	win, err := core.NewWindow(cfg.OutWidth, cfg.OutHeight)
	if err != nil {
		return nil, rendererr.Wrap(rendererr.DeviceInit, "bringing up GL context", err)
	}
	defer win.Destroy()

	if err := gl.Init(); err != nil {
		return nil, rendererr.Wrap(rendererr.DeviceInit, "loading GL function pointers", err)
	}

	vol, err := volume.NewVolume(volumeData, dims, linear)
	if err != nil {
		return nil, err
	}
	defer vol.Destroy()

	tf, err := volume.NewTransferFunction(tfData)
	if err != nil {
		return nil, err
	}
	defer tf.Destroy()

	swap, err := photon.NewSwap(cfg.OutWidth, cfg.OutHeight)
	if err != nil {
		return nil, rendererr.Wrap(rendererr.DeviceInit, "allocating photon G-buffer", err)
	}
	defer swap.Destroy()

	resetPass, err := passes.NewResetPass()
	if err != nil {
		return nil, rendererr.Wrap(rendererr.DeviceInit, "compiling reset pass", err)
	}
	defer resetPass.Destroy()

	renderPass, err := passes.NewRenderPass()
	if err != nil {
		return nil, rendererr.Wrap(rendererr.DeviceInit, "compiling render pass", err)
	}
	defer renderPass.Destroy()

	toneMapPass, err := passes.NewToneMapPass()
	if err != nil {
		return nil, rendererr.Wrap(rendererr.DeviceInit, "compiling tone map pass", err)
	}
	defer toneMapPass.Destroy()

	output, err := newOutputTarget(cfg.OutWidth, cfg.OutHeight)
	if err != nil {
		return nil, rendererr.Wrap(rendererr.DeviceInit, "allocating output target", err)
	}
	defer output.destroy()

	invMVP := cam.InverseMVP.GLColumnMajor()

	seedStream := rng.State(cfg.Seed)

	swap.Back().Bind()
	resetPass.Run(invMVP, cfg.OutWidth, cfg.OutHeight, seedStream.Next())
	if err := checkGL("reset pass"); err != nil {
		return nil, err
	}
	swap.Flip()

	for i := 0; i < cfg.Iterations; i++ {
		swap.BeginWrite(0)
		renderPass.Run(passes.Params{
			InvMVP:     invMVP,
			Width:      cfg.OutWidth,
			Height:     cfg.OutHeight,
			Seed:       seedStream.Next(),
			Steps:      cfg.Steps,
			MaxBounces: cfg.MaxBounces,
			Extinction: cfg.Extinction,
			Anisotropy: cfg.Anisotropy,
		}, vol.Texture, tf.Texture)
		if err := checkGL("render pass"); err != nil {
			return nil, err
		}
		swap.Flip()
	}

	output.bind()
	toneMapPass.Run(swap.Front().Textures[photon.AttRadiance], cfg.Tones)
	if err := checkGL("tone map pass"); err != nil {
		return nil, err
	}

	gl.Finish()

	return output.readPixels(), nil
}

// checkGL surfaces an accumulated GL error: GL_OUT_OF_MEMORY becomes an
// OutOfMemory failure, and any other error code a DeviceLost failure.
func checkGL(stage string) error {
	switch code := gl.GetError(); code {
	case gl.NO_ERROR:
		return nil
	case gl.OUT_OF_MEMORY:
		return rendererr.New(rendererr.OutOfMemory, stage+": device out of memory")
	default:
		return rendererr.New(rendererr.DeviceLost, fmt.Sprintf("%s: GL error 0x%x", stage, code))
	}
}
