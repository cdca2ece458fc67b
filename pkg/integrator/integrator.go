// Package integrator turns camera rays into radiance estimates.
package integrator

import (
	"github.com/pkg/errors"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

var (
	ErrUnknownIntegrator = errors.New("integrator: unknown integrator")
	ErrInvalidRRDepth    = errors.New("integrator: rr_depth must be positive")
	ErrInvalidMaxDepth   = errors.New("integrator: max_depth must be -1 or non-negative")
)

// SamplingIntegrator estimates the radiance arriving along a camera ray.
// The boolean reports whether the ray hit scene geometry and drives the
// alpha channel.
type SamplingIntegrator interface {
	Sample(scene core.Scene, sampler core.Sampler, ray core.Ray) (core.Vec3, bool)
}

// WavefrontIntegrator advances a path one bounce at a time, so that many
// paths can be traced in lock step
type WavefrontIntegrator interface {
	SamplingIntegrator
	// Begin intersects the primary ray and returns the initial path state
	Begin(scene core.Scene, sampler core.Sampler, ray core.Ray) PathState
	// Bounce extends an active path by one vertex
	Bounce(scene core.Scene, sampler core.Sampler, state *PathState)
}

// Config holds the settings shared by all integrators
type Config struct {
	MaxDepth       int  // Longest path, -1 for unlimited
	RRDepth        int  // Depth from which Russian roulette may end paths
	HideEmitters   bool // Skip emitters seen directly by the camera
	EmitterSamples int  // Direct integrator only
	BSDFSamples    int  // Direct integrator only
}

// Validate checks the depth settings
func (c Config) Validate() error {
	if c.RRDepth <= 0 {
		return errors.Wrapf(ErrInvalidRRDepth, "got %d", c.RRDepth)
	}
	if c.MaxDepth < -1 {
		return errors.Wrapf(ErrInvalidMaxDepth, "got %d", c.MaxDepth)
	}
	return nil
}

// New creates an integrator by name
func New(name string, cfg Config) (WavefrontIntegrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch name {
	case "", "path":
		return NewPathIntegrator(cfg.MaxDepth, cfg.RRDepth, cfg.HideEmitters), nil
	case "direct":
		return NewDirectIntegrator(cfg.EmitterSamples, cfg.BSDFSamples, cfg.HideEmitters), nil
	}
	return nil, errors.Wrapf(ErrUnknownIntegrator, "%q", name)
}

// PathState is the loop state of one path. Lanes of a wavefront each own
// one.
type PathState struct {
	Ray         core.Ray
	Interaction core.SurfaceInteraction
	Throughput  core.Vec3 // Product of sampled BSDF weights
	Result      core.Vec3 // Radiance gathered so far
	Eta         float64   // Product of relative indices of refraction
	Depth       int       // Number of path vertices
	Active      bool
	ValidRay    bool // Primary ray hit geometry
}

func newPathState(ray core.Ray) PathState {
	return PathState{
		Ray:         ray,
		Interaction: core.NewMissInteraction(ray),
		Throughput:  core.Splat(1),
		Eta:         1,
		Depth:       1,
	}
}
