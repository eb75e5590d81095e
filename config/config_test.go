package config

import (
	"os"
	"path/filepath"
	"testing"

	"volumetrace/rendererr"
)

func TestLoadRequiresVolume(t *testing.T) {
	_, err := Load([]string{"--out-resolution", "64,64"})
	if rendererr.KindOf(err) != rendererr.BadArguments {
		t.Fatalf("expected BadArguments, got %v", err)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load([]string{"--volume", "v.raw"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Rendering.Extinction != 1.0 {
		t.Errorf("default extinction = %v, want 1.0", cfg.Rendering.Extinction)
	}
	if cfg.ToneMapping.Gamma != 2.2 {
		t.Errorf("default gamma = %v, want 2.2", cfg.ToneMapping.Gamma)
	}
	if len(cfg.ToneMapping.Tones) != 3 || cfg.ToneMapping.Tones[1] != 0.5 {
		t.Errorf("default tones = %v, want [0 0.5 1]", cfg.ToneMapping.Tones)
	}
}

func TestLoadCLIOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "voltrace.toml")
	contents := `
output = "from-config.ppm"

[rendering]
steps = 4
iterations = 10
`
	if err := os.WriteFile(cfgPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	cfg, err := Load([]string{
		"--config", cfgPath,
		"--volume", "v.raw",
		"--iterations", "99",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output != "from-config.ppm" {
		t.Errorf("config-file value was overwritten: output = %v", cfg.Output)
	}
	if cfg.Rendering.Steps != 4 {
		t.Errorf("config-file value was overwritten: steps = %v", cfg.Rendering.Steps)
	}
	if cfg.Rendering.Iterations != 99 {
		t.Errorf("CLI flag did not override config file: iterations = %v", cfg.Rendering.Iterations)
	}
}
