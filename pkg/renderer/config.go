package renderer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/df07/go-tiled-pathtracer/pkg/integrator"
	"github.com/df07/go-tiled-pathtracer/pkg/scheduler"
)

var (
	ErrInvalidBlockSize      = errors.New("renderer: block size must be a positive power of two")
	ErrInvalidSamplesPerPass = errors.New("renderer: sample count must be a multiple of samples per pass")
	ErrInvalidMode           = errors.New("renderer: unknown render mode")
	ErrInvalidWorkers        = errors.New("renderer: worker count must not be negative")
)

// Mode selects how work is distributed
type Mode string

const (
	// ModeTiled renders blocks of the image on parallel workers
	ModeTiled Mode = "tiled"
	// ModeWavefront advances every path of a pass one bounce at a time
	ModeWavefront Mode = "wavefront"
)

// Config contains the settings of a render
type Config struct {
	Integrator     string // path or direct
	MaxDepth       int    // -1 for unlimited
	RRDepth        int
	HideEmitters   bool
	EmitterSamples int // Direct integrator only
	BSDFSamples    int // Direct integrator only

	SamplesPerPass int           // 0 renders all samples in one pass
	BlockSize      int           // Edge length of a tile, a power of two
	Timeout        time.Duration // Zero or negative disables the timeout
	Workers        int           // 0 uses one worker per CPU
	Mode           Mode
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Integrator: "path",
		MaxDepth:   -1,
		RRDepth:    5,
		BlockSize:  32,
		Mode:       ModeTiled,
	}
}

// IntegratorConfig returns the integrator settings
func (c Config) IntegratorConfig() integrator.Config {
	return integrator.Config{
		MaxDepth:       c.MaxDepth,
		RRDepth:        c.RRDepth,
		HideEmitters:   c.HideEmitters,
		EmitterSamples: c.EmitterSamples,
		BSDFSamples:    c.BSDFSamples,
	}
}

// Validate checks every setting that does not depend on the scene
func (c Config) Validate() error {
	if err := c.IntegratorConfig().Validate(); err != nil {
		return err
	}
	if c.BlockSize <= 0 || scheduler.RoundToPowerOfTwo(c.BlockSize) != c.BlockSize {
		return errors.Wrapf(ErrInvalidBlockSize, "got %d", c.BlockSize)
	}
	if c.SamplesPerPass < 0 {
		return errors.Wrapf(ErrInvalidSamplesPerPass, "samples per pass %d", c.SamplesPerPass)
	}
	if c.Workers < 0 {
		return errors.Wrapf(ErrInvalidWorkers, "got %d", c.Workers)
	}
	switch c.Mode {
	case ModeTiled, ModeWavefront:
	default:
		return errors.Wrapf(ErrInvalidMode, "%q", c.Mode)
	}
	return nil
}

// Passes splits a per pixel sample count into passes. It returns the
// number of samples per pixel in each pass and the pass count.
func (c Config) Passes(sampleCount int) (samplesPerPass, passes int, err error) {
	if c.SamplesPerPass == 0 || c.SamplesPerPass >= sampleCount {
		return sampleCount, 1, nil
	}
	if sampleCount%c.SamplesPerPass != 0 {
		return 0, 0, errors.Wrapf(ErrInvalidSamplesPerPass, "sample count %d, samples per pass %d", sampleCount, c.SamplesPerPass)
	}
	return c.SamplesPerPass, sampleCount / c.SamplesPerPass, nil
}
