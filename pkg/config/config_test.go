package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/df07/go-tiled-pathtracer/pkg/film"
	"github.com/df07/go-tiled-pathtracer/pkg/filter"
	"github.com/df07/go-tiled-pathtracer/pkg/integrator"
	"github.com/df07/go-tiled-pathtracer/pkg/renderer"
	"github.com/df07/go-tiled-pathtracer/pkg/sampler"
	"github.com/df07/go-tiled-pathtracer/pkg/scene"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default config should be valid, got %v", err)
	}
	if diff := cmp.Diff(renderer.DefaultConfig(), Default().Renderer()); diff != "" {
		t.Errorf("Default renderer settings mismatch (-want +got):\n%s", diff)
	}
}

func TestParse(t *testing.T) {
	input := `
scene: spheres
width: 320
height: 180
spp: 64
seed: 42
crop: {x: 10, y: 20, width: 100, height: 50}
integrator:
  name: direct
  max_depth: 8
  emitter_samples: 4
render:
  mode: wavefront
  block_size: 16
  samples_per_pass: 8
  timeout: 90s
output:
  path: out/spheres.tiff
`
	config, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	want := Default()
	want.Scene = "spheres"
	want.Width, want.Height = 320, 180
	want.Samples = 64
	want.Seed = 42
	want.Crop = Crop{X: 10, Y: 20, Width: 100, Height: 50}
	want.Integrator.Name = "direct"
	want.Integrator.MaxDepth = 8
	want.Integrator.EmitterSamples = 4
	want.Render = Render{Mode: renderer.ModeWavefront, BlockSize: 16, SamplesPerPass: 8, Timeout: 90 * time.Second}
	want.Output.Path = "out/spheres.tiff"

	if diff := cmp.Diff(want, config); diff != "" {
		t.Errorf("Parsed config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmpty(t *testing.T) {
	config, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), config); diff != "" {
		t.Errorf("Empty input should yield the defaults (-want +got):\n%s", diff)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	if _, err := Parse(strings.NewReader("samples_per_pixel: 4\n")); err == nil {
		t.Error("Expected an error for an unknown key")
	}
}

func TestLoadAndMarshal(t *testing.T) {
	config := Default()
	config.Scene = "emitter"
	config.Render.Timeout = 5 * time.Minute
	config.Crop = Crop{Width: 10, Height: 10}

	data, err := config.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "render.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(config, loaded); diff != "" {
		t.Errorf("Loaded config mismatch (-want +got):\n%s", diff)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, ErrInvalidSize},
		{"negative samples", func(c *Config) { c.Samples = -1 }, ErrInvalidSamples},
		{"zero gamma", func(c *Config) { c.Output.Gamma = 0 }, ErrInvalidOutput},
		{"crop outside film", func(c *Config) { c.Crop = Crop{X: 300, Width: 200, Height: 10} }, film.ErrInvalidCrop},
		{"empty crop size", func(c *Config) { c.Crop = Crop{X: 10, Y: 10} }, film.ErrInvalidCrop},
		{"unknown filter", func(c *Config) { c.Filter.Name = "sinc" }, filter.ErrUnknownFilter},
		{"unknown sampler", func(c *Config) { c.Sampler = "sobol" }, sampler.ErrUnknownSampler},
		{"bad block size", func(c *Config) { c.Render.BlockSize = 48 }, renderer.ErrInvalidBlockSize},
		{"bad rr depth", func(c *Config) { c.Integrator.RRDepth = 0 }, integrator.ErrInvalidRRDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			tt.modify(&config)
			if err := config.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	config := Default()
	config.Scene = "emitter"
	config.Width, config.Height = 64, 32
	config.Crop = Crop{X: 8, Y: 0, Width: 16, Height: 16}

	s, effective, err := config.Build()
	if err != nil {
		t.Fatal(err)
	}

	// The emitter scene recommends 16 samples per pixel
	if effective.Samples != 16 || s.Sensor.Sampler().SampleCount() != 16 {
		t.Errorf("Expected the scene's 16 samples, got %d and %d", effective.Samples, s.Sensor.Sampler().SampleCount())
	}
	f := s.Sensor.Film()
	if f.Size().X != 64 || f.CropSize().X != 16 || f.CropOffset().X != 8 {
		t.Errorf("Film size %v, crop %v at %v", f.Size(), f.CropSize(), f.CropOffset())
	}

	config.Samples = 4
	s, effective, err = config.Build()
	if err != nil {
		t.Fatal(err)
	}
	if effective.Samples != 4 || s.Sensor.Sampler().SampleCount() != 4 {
		t.Error("Configured sample count should win over the scene's")
	}

	config.Scene = "teapot"
	if _, _, err := config.Build(); !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}
