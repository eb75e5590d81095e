// Command voltrace renders a 2D image from a 3D scalar volume via
// GPU-accelerated volumetric path tracing and writes a PPM file. Run
// with --help for the list of CLI flags.
package main

import (
	"fmt"
	"os"

	"volumetrace/camera"
	"volumetrace/config"
	"volumetrace/orchestrator"
	"volumetrace/passes"
	"volumetrace/ppmw"
	"volumetrace/rawio"
	"volumetrace/rendererr"
	vmath "volumetrace/math"
	"volumetrace/volume"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "voltrace:", err)
		os.Exit(rendererr.KindOf(err).ExitCode())
	}
}

func run(argv []string) error {
	cfg, err := config.Load(argv)
	if err != nil {
		return err
	}

	volumeBytes, err := rawio.ReadAll(cfg.Data.Volume)
	if err != nil {
		return err
	}

	var explicitDims *volume.Dims
	if len(cfg.Data.VolumeDimensions) == 3 {
		explicitDims = &volume.Dims{
			W: cfg.Data.VolumeDimensions[0],
			H: cfg.Data.VolumeDimensions[1],
			D: cfg.Data.VolumeDimensions[2],
		}
	}
	dims, err := volume.ResolveDims(len(volumeBytes), explicitDims)
	if err != nil {
		return err
	}

	var tfBytes []byte
	if cfg.Data.TF != "" {
		tfBytes, err = rawio.ReadAll(cfg.Data.TF)
		if err != nil {
			return err
		}
	}

	if len(cfg.Rendering.OutResolution) != 2 {
		return rendererr.New(rendererr.BadArguments, "--out-resolution W H is required")
	}
	outW, outH := cfg.Rendering.OutResolution[0], cfg.Rendering.OutResolution[1]

	if cfg.Output == "" {
		return rendererr.New(rendererr.BadArguments, "--output is required")
	}

	cam, err := buildCamera(cfg, outW, outH)
	if err != nil {
		return err
	}

	if len(cfg.ToneMapping.Tones) != 3 {
		return rendererr.New(rendererr.BadArguments, "--tones L M H is required")
	}

	// Seed defaults to 0 (via config.Defaults) rather than a time-based
	// value, so a run repeated without --seed is itself reproducible.
	seed := cfg.Rendering.Seed

	orchCfg := orchestrator.Config{
		OutWidth:   outW,
		OutHeight:  outH,
		Steps:      cfg.Rendering.Steps,
		Iterations: cfg.Rendering.Iterations,
		Anisotropy: float32(cfg.Rendering.Anisotropy),
		Extinction: float32(cfg.Rendering.Extinction),
		MaxBounces: cfg.Rendering.Bounces,
		Seed:       uint32(seed),
		Tones: passes.Tones{
			Low:        float32(cfg.ToneMapping.Tones[0]),
			Mid:        float32(cfg.ToneMapping.Tones[1]),
			High:       float32(cfg.ToneMapping.Tones[2]),
			Saturation: float32(cfg.ToneMapping.Saturation),
			Gamma:      float32(cfg.ToneMapping.Gamma),
		},
	}

	if cfg.Verbose {
		fmt.Printf("voltrace: volume %dx%dx%d, output %dx%d, %d iterations x %d steps\n",
			dims.W, dims.H, dims.D, outW, outH, cfg.Rendering.Iterations, cfg.Rendering.Steps)
	}

	pixels, err := orchestrator.Run(orchCfg, volumeBytes, dims, tfBytes, cfg.Rendering.Linear, cam)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		fmt.Printf("voltrace: writing %s\n", cfg.Output)
	}
	return ppmw.Write(cfg.Output, outW, outH, pixels)
}

// buildCamera resolves the camera either from an explicit inverse-MVP
// matrix or from a position/focal-length pair.
func buildCamera(cfg config.Config, outW, outH int) (camera.Camera, error) {
	if len(cfg.Rendering.MVPMatrix) == 16 {
		var values [16]float32
		for i, v := range cfg.Rendering.MVPMatrix {
			values[i] = float32(v)
		}
		return camera.FromExplicitInverseMVP(values), nil
	}

	if len(cfg.Rendering.CameraPosition) != 3 {
		return camera.Camera{}, rendererr.New(rendererr.BadArguments,
			"either --mvp-matrix or --camera-position is required")
	}
	if cfg.Rendering.FocalLength <= 0 {
		return camera.Camera{}, rendererr.New(rendererr.BadArguments,
			"--focal-length must be positive")
	}

	pos := vmath.Vec3{
		X: float32(cfg.Rendering.CameraPosition[0]),
		Y: float32(cfg.Rendering.CameraPosition[1]),
		Z: float32(cfg.Rendering.CameraPosition[2]),
	}
	aspect := float32(outW) / float32(outH)
	return camera.FromPositionFocal(pos, float32(cfg.Rendering.FocalLength), aspect), nil
}
