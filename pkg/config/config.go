// Package config loads render settings from YAML files and turns them into
// the film, sampler, scene and renderer of a render.
package config

import (
	"bytes"
	"image"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-tiled-pathtracer/pkg/film"
	"github.com/df07/go-tiled-pathtracer/pkg/filter"
	"github.com/df07/go-tiled-pathtracer/pkg/renderer"
	"github.com/df07/go-tiled-pathtracer/pkg/sampler"
	"github.com/df07/go-tiled-pathtracer/pkg/scene"
)

var (
	ErrInvalidSize    = errors.New("config: image size must be positive")
	ErrInvalidSamples = errors.New("config: sample count must not be negative")
	ErrInvalidOutput  = errors.New("config: invalid output settings")
)

// Crop selects a window of the film. A zero size renders the full film.
type Crop struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Filter names the reconstruction filter
type Filter struct {
	Name   string  `yaml:"name"`
	Radius float64 `yaml:"radius,omitempty"` // 0 uses the filter default
}

// Integrator holds the light transport settings
type Integrator struct {
	Name           string `yaml:"name"`
	MaxDepth       int    `yaml:"max_depth"`
	RRDepth        int    `yaml:"rr_depth"`
	HideEmitters   bool   `yaml:"hide_emitters,omitempty"`
	EmitterSamples int    `yaml:"emitter_samples,omitempty"`
	BSDFSamples    int    `yaml:"bsdf_samples,omitempty"`
}

// Render holds the work distribution settings
type Render struct {
	Mode           renderer.Mode `yaml:"mode"`
	BlockSize      int           `yaml:"block_size"`
	SamplesPerPass int           `yaml:"samples_per_pass,omitempty"`
	Workers        int           `yaml:"workers,omitempty"`
	Timeout        time.Duration `yaml:"timeout,omitempty"`
}

// Output describes the developed image
type Output struct {
	Path     string  `yaml:"path"`
	Exposure float64 `yaml:"exposure"`
	Gamma    float64 `yaml:"gamma"`
}

// Config is the complete description of a render
type Config struct {
	Scene      string     `yaml:"scene"`
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Crop       Crop       `yaml:"crop,omitempty"`
	Samples    int        `yaml:"spp,omitempty"` // 0 uses the scene's recommendation
	Seed       uint64     `yaml:"seed"`
	Sampler    string     `yaml:"sampler"`
	Filter     Filter     `yaml:"filter"`
	Integrator Integrator `yaml:"integrator"`
	Render     Render     `yaml:"render"`
	Output     Output     `yaml:"output"`
	LogLevel   string     `yaml:"log_level,omitempty"`
}

// Default returns the settings used when no file is given
func Default() Config {
	rc := renderer.DefaultConfig()
	return Config{
		Scene:   "cornell",
		Width:   400,
		Height:  400,
		Sampler: "independent",
		Filter:  Filter{Name: "tent"},
		Integrator: Integrator{
			Name:     rc.Integrator,
			MaxDepth: rc.MaxDepth,
			RRDepth:  rc.RRDepth,
		},
		Render: Render{
			Mode:      rc.Mode,
			BlockSize: rc.BlockSize,
		},
		Output: Output{
			Path:     "output/render.png",
			Exposure: 1,
			Gamma:    2.2,
		},
	}
}

// Parse reads YAML settings over the defaults. Unknown keys are errors.
func Parse(r io.Reader) (Config, error) {
	config := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "config: decoding yaml")
	}
	return config, nil
}

// Load reads a YAML file over the defaults
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "config: reading file")
	}
	config, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, errors.Wrapf(err, "%s", path)
	}
	return config, nil
}

// Marshal encodes the settings as YAML
func (c Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, errors.Wrap(err, "config: encoding yaml")
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Validate checks the settings that can be verified without building the
// scene
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Wrapf(ErrInvalidSize, "%dx%d", c.Width, c.Height)
	}
	if c.Samples < 0 {
		return errors.Wrapf(ErrInvalidSamples, "got %d", c.Samples)
	}
	if c.Output.Gamma <= 0 || c.Output.Exposure < 0 {
		return errors.Wrapf(ErrInvalidOutput, "exposure %g, gamma %g", c.Output.Exposure, c.Output.Gamma)
	}
	if c.Crop != (Crop{}) {
		window := image.Rect(c.Crop.X, c.Crop.Y, c.Crop.X+c.Crop.Width, c.Crop.Y+c.Crop.Height)
		if c.Crop.Width <= 0 || c.Crop.Height <= 0 || !window.In(image.Rect(0, 0, c.Width, c.Height)) {
			return errors.Wrapf(film.ErrInvalidCrop, "%v in %dx%d", window, c.Width, c.Height)
		}
	}
	if _, err := filter.New(c.Filter.Name, c.Filter.Radius); err != nil {
		return err
	}
	if _, err := sampler.New(c.Sampler, 1, c.Seed); err != nil {
		return err
	}
	return c.Renderer().Validate()
}

// Renderer returns the renderer settings
func (c Config) Renderer() renderer.Config {
	return renderer.Config{
		Integrator:     c.Integrator.Name,
		MaxDepth:       c.Integrator.MaxDepth,
		RRDepth:        c.Integrator.RRDepth,
		HideEmitters:   c.Integrator.HideEmitters,
		EmitterSamples: c.Integrator.EmitterSamples,
		BSDFSamples:    c.Integrator.BSDFSamples,
		SamplesPerPass: c.Render.SamplesPerPass,
		BlockSize:      c.Render.BlockSize,
		Timeout:        c.Render.Timeout,
		Workers:        c.Render.Workers,
		Mode:           c.Render.Mode,
	}
}

// NewFilm creates the film with the configured size, crop and filter
func (c Config) NewFilm() (*film.HDRFilm, error) {
	f, err := filter.New(c.Filter.Name, c.Filter.Radius)
	if err != nil {
		return nil, err
	}
	var opts []film.Option
	if c.Crop != (Crop{}) {
		opts = append(opts, film.WithCrop(image.Pt(c.Crop.X, c.Crop.Y), image.Pt(c.Crop.Width, c.Crop.Height)))
	}
	return film.New(image.Pt(c.Width, c.Height), f, opts...)
}

// Build creates the film, sampler and scene. When no sample count is
// configured the scene's recommendation is used; the returned config holds
// the effective values.
func (c Config) Build() (*scene.Scene, Config, error) {
	if err := c.Validate(); err != nil {
		return nil, c, err
	}
	f, err := c.NewFilm()
	if err != nil {
		return nil, c, err
	}
	smp, err := sampler.New(c.Sampler, max(1, c.Samples), c.Seed)
	if err != nil {
		return nil, c, err
	}
	s, err := scene.Build(c.Scene, f, smp)
	if err != nil {
		return nil, c, err
	}
	if c.Samples == 0 {
		c.Samples = max(1, s.SamplingConfig.SamplesPerPixel)
		smp.SetSampleCount(c.Samples)
	}
	return s, c, nil
}

