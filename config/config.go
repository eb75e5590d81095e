// Package config merges the renderer's three input layers: built-in
// defaults, an optional TOML config file, then CLI flags, in that
// precedence order. BurntSushi/toml decodes the file (struct-tag driven)
// and spf13/pflag parses GNU-style double-dash flags.
package config

import (
	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"volumetrace/rendererr"
)

// Data mirrors the TOML [data] section and the --volume/--tf/--*-dimensions
// flags.
type Data struct {
	Volume           string `toml:"volume"`
	VolumeDimensions []int  `toml:"volume_dimensions"`
	TF               string `toml:"tf"`
}

// Rendering mirrors the TOML [rendering] section.
type Rendering struct {
	CameraPosition []float64 `toml:"camera_position"`
	FocalLength    float64   `toml:"focal_length"`
	MVPMatrix      []float64 `toml:"mvp_matrix"`
	OutResolution  []int     `toml:"out_resolution"`
	Steps          int       `toml:"steps"`
	Iterations     int       `toml:"iterations"`
	Anisotropy     float64   `toml:"anisotropy"`
	Extinction     float64   `toml:"extinction"`
	Bounces        int       `toml:"bounces"`
	Linear         bool      `toml:"linear"`
	Seed           int64     `toml:"seed"`
}

// ToneMapping mirrors the TOML [tone_mapping] section.
type ToneMapping struct {
	Tones      []float64 `toml:"tones"`
	Saturation float64   `toml:"saturation"`
	Gamma      float64   `toml:"gamma"`
}

// Config is the fully resolved set of render parameters.
type Config struct {
	Output  string `toml:"output"`
	Verbose bool   `toml:"verbose"`

	Data        Data        `toml:"data"`
	Rendering   Rendering   `toml:"rendering"`
	ToneMapping ToneMapping `toml:"tone_mapping"`
}

// Defaults returns the built-in baseline every config/CLI layer overrides
// onto.
func Defaults() Config {
	return Config{
		Rendering: Rendering{
			Steps:       1,
			Iterations:  1,
			Extinction:  1.0,
			Bounces:     8,
			FocalLength: 1.0,
		},
		ToneMapping: ToneMapping{
			Tones:      []float64{0.0, 0.5, 1.0},
			Saturation: 1.0,
			Gamma:      2.2,
		},
	}
}

// flagSet mirrors the full CLI surface, including the --seed and --verbose
// flags.
type flagSet struct {
	configPath string

	volume           string
	volumeDimensions []int
	tf               string

	cameraPosition []float64
	focalLength    float64
	mvpMatrix      []float64
	outResolution  []int
	output         string

	steps      int
	iterations int
	anisotropy float64
	extinction float64
	bounces    int
	linear     bool

	tones      []float64
	saturation float64
	gamma      float64

	seed    int64
	verbose bool
}

// Load parses argv, merges (defaults < config file < CLI), and returns the
// resolved Config. argv excludes the program name (os.Args[1:]).
func Load(argv []string) (Config, error) {
	fs := pflag.NewFlagSet("volumetrace", pflag.ContinueOnError)
	flags := &flagSet{}

	fs.StringVar(&flags.configPath, "config", "", "path to a TOML config file")
	fs.StringVar(&flags.volume, "volume", "", "path to the raw volume byte stream (required)")
	fs.IntSliceVar(&flags.volumeDimensions, "volume-dimensions", nil, "explicit W,H,D")
	fs.StringVar(&flags.tf, "tf", "", "path to the raw RGBA8 transfer function")
	fs.Float64SliceVar(&flags.cameraPosition, "camera-position", nil, "X,Y,Z")
	fs.Float64Var(&flags.focalLength, "focal-length", 0, "projection-plane distance")
	fs.Float64SliceVar(&flags.mvpMatrix, "mvp-matrix", nil, "16 comma-separated floats, row-major on column vectors")
	fs.IntSliceVar(&flags.outResolution, "out-resolution", nil, "W,H")
	fs.StringVar(&flags.output, "output", "", "output PPM path")
	fs.IntVar(&flags.steps, "steps", 0, "substeps per render iteration")
	fs.IntVar(&flags.iterations, "iterations", 0, "host-level render iterations")
	fs.Float64Var(&flags.anisotropy, "anisotropy", 0, "Henyey-Greenstein g")
	fs.Float64Var(&flags.extinction, "extinction", 0, "delta-tracking majorant rate")
	fs.IntVar(&flags.bounces, "bounces", 0, "max scattering bounces")
	fs.BoolVar(&flags.linear, "linear", false, "trilinear volume filtering")
	fs.Float64SliceVar(&flags.tones, "tones", nil, "low,mid,high")
	fs.Float64Var(&flags.saturation, "saturation", 0, "tone mapper saturation blend")
	fs.Float64Var(&flags.gamma, "gamma", 0, "tone mapper gamma")
	fs.Int64Var(&flags.seed, "seed", 0, "host RNG seed for per-iteration draws")
	fs.BoolVar(&flags.verbose, "verbose", false, "log a run summary and the output path")

	if err := fs.Parse(argv); err != nil {
		return Config{}, rendererr.Wrap(rendererr.BadArguments, "parsing flags", err)
	}

	cfg := Defaults()

	if flags.configPath != "" {
		if _, err := toml.DecodeFile(flags.configPath, &cfg); err != nil {
			return Config{}, rendererr.Wrap(rendererr.BadArguments, "decoding config file", err)
		}
	}

	applyCLIOverrides(&cfg, fs, flags)

	if cfg.Data.Volume == "" {
		return Config{}, rendererr.New(rendererr.BadArguments, "--volume is required")
	}
	return cfg, nil
}

// applyCLIOverrides copies every flag the user actually set (fs.Changed)
// onto cfg, so unset flags never clobber a value the config file supplied.
func applyCLIOverrides(cfg *Config, fs *pflag.FlagSet, flags *flagSet) {
	set := func(name string) bool { return fs.Changed(name) }

	if set("volume") {
		cfg.Data.Volume = flags.volume
	}
	if set("volume-dimensions") {
		cfg.Data.VolumeDimensions = flags.volumeDimensions
	}
	if set("tf") {
		cfg.Data.TF = flags.tf
	}
	if set("camera-position") {
		cfg.Rendering.CameraPosition = flags.cameraPosition
	}
	if set("focal-length") {
		cfg.Rendering.FocalLength = flags.focalLength
	}
	if set("mvp-matrix") {
		cfg.Rendering.MVPMatrix = flags.mvpMatrix
	}
	if set("out-resolution") {
		cfg.Rendering.OutResolution = flags.outResolution
	}
	if set("output") {
		cfg.Output = flags.output
	}
	if set("steps") {
		cfg.Rendering.Steps = flags.steps
	}
	if set("iterations") {
		cfg.Rendering.Iterations = flags.iterations
	}
	if set("anisotropy") {
		cfg.Rendering.Anisotropy = flags.anisotropy
	}
	if set("extinction") {
		cfg.Rendering.Extinction = flags.extinction
	}
	if set("bounces") {
		cfg.Rendering.Bounces = flags.bounces
	}
	if set("linear") {
		cfg.Rendering.Linear = flags.linear
	}
	if set("seed") {
		cfg.Rendering.Seed = flags.seed
	}
	if set("tones") {
		cfg.ToneMapping.Tones = flags.tones
	}
	if set("saturation") {
		cfg.ToneMapping.Saturation = flags.saturation
	}
	if set("gamma") {
		cfg.ToneMapping.Gamma = flags.gamma
	}
	if set("verbose") {
		cfg.Verbose = flags.verbose
	}
}
