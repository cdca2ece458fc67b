// Package renderer schedules camera samples over workers and accumulates
// them into the film.
package renderer

import (
	"context"
	"image"
	"runtime"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/imageblock"
	"github.com/df07/go-tiled-pathtracer/pkg/integrator"
	"github.com/df07/go-tiled-pathtracer/pkg/log"
)

// Renderer drives an integrator over every pixel of a sensor's film
type Renderer struct {
	config     Config
	integrator integrator.WavefrontIntegrator
	logger     log.Logger
	progress   ProgressReporter

	current atomic.Pointer[RenderContext]
	stats   Stats
}

// Option configures a Renderer
type Option func(*Renderer)

// WithLogger overrides the renderer logger
func WithLogger(logger log.Logger) Option {
	return func(r *Renderer) { r.logger = logger }
}

// WithProgress installs a progress reporter
func WithProgress(progress ProgressReporter) Option {
	return func(r *Renderer) { r.progress = progress }
}

// WithIntegrator replaces the integrator built from the config
func WithIntegrator(integ integrator.WavefrontIntegrator) Option {
	return func(r *Renderer) { r.integrator = integ }
}

// New validates the config and creates a renderer. Configuration errors
// are reported here, before any work starts.
func New(config Config, opts ...Option) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	r := &Renderer{
		config:   config,
		logger:   log.New("renderer"),
		progress: noProgress{},
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.integrator == nil {
		integ, err := integrator.New(config.Integrator, config.IntegratorConfig())
		if err != nil {
			return nil, err
		}
		r.integrator = integ
	}
	return r, nil
}

// Config returns the renderer configuration
func (r *Renderer) Config() Config { return r.config }

// Stats returns the statistics of the last render
func (r *Renderer) Stats() Stats { return r.stats }

// Cancel stops the render in progress, if any. Render returns false.
func (r *Renderer) Cancel() {
	if rc := r.current.Load(); rc != nil {
		rc.Stop("cancelled")
	}
}

func (r *Renderer) workers() int {
	if r.config.Workers > 0 {
		return r.config.Workers
	}
	return runtime.NumCPU()
}

// Render renders the sensor's film. It returns false when the render was
// cancelled or timed out; the film then holds a valid but less converged
// image. Errors are configuration or content errors.
func (r *Renderer) Render(ctx context.Context, scene core.Scene, sensor Sensor, seed uint64) (bool, error) {
	film := sensor.Film()
	sampler := sensor.Sampler()
	if film == nil || sampler == nil {
		return false, errors.New("renderer: sensor without film or sampler")
	}

	spp, passes, err := r.config.Passes(sampler.SampleCount())
	if err != nil {
		return false, err
	}
	if err := film.Prepare(Channels); err != nil {
		return false, err
	}

	rc := newRenderContext(ctx, r.config.Timeout, r.progress, r.logger)
	r.current.Store(rc)
	defer r.current.Store(nil)

	r.stats = Stats{
		Mode:           r.config.Mode,
		Passes:         passes,
		SamplesPerPass: spp,
	}
	r.logger.Noticef("Rendering %v crop of %v film, %d samples per pixel in %d pass(es), %s mode",
		film.CropSize(), film.Size(), spp*passes, passes, r.config.Mode)

	switch r.config.Mode {
	case ModeWavefront:
		err = r.renderWavefront(rc, scene, sensor, seed, spp, passes)
	default:
		err = r.renderTiled(rc, scene, sensor, seed, spp, passes)
	}

	r.stats.Blocks = int(rc.blocks.Load())
	r.stats.Samples = rc.samples.Load()
	r.stats.Rejected = rc.rejected.Load()
	r.stats.Elapsed = rc.Elapsed()
	r.stats.Completed = err == nil && !rc.Stopped()
	r.stats.StopReason = rc.Reason()
	if err != nil {
		return false, err
	}

	if r.stats.Completed {
		r.logger.Noticef("Render finished in %v", r.stats.Elapsed)
	} else {
		r.logger.Warningf("Render incomplete after %v (%s)", r.stats.Elapsed, r.stats.StopReason)
	}
	if r.stats.Rejected > 0 {
		r.logger.Warningf("%d samples rejected for invalid values", r.stats.Rejected)
	}
	return r.stats.Completed, nil
}

// cameraSample holds the primary ray of one camera sample
type cameraSample struct {
	position core.Vec2 // Continuous image position
	ray      core.Ray
	weight   core.Vec3
}

// sampleCamera draws the film position, aperture, time and wavelength of a
// sample at pixel pos and generates its primary ray
func (r *Renderer) sampleCamera(sensor Sensor, sampler core.Sampler, pos image.Point) cameraSample {
	position := core.NewVec2(float64(pos.X), float64(pos.Y)).Add(sampler.Next2D())

	aperture := core.NewVec2(0.5, 0.5)
	if sensor.NeedsApertureSample() {
		aperture = sampler.Next2D()
	}

	time := sensor.ShutterOpen()
	if sensor.ShutterOpenTime() > 0 {
		time += sampler.Next1D() * sensor.ShutterOpenTime()
	}

	wavelength := sampler.Next1D()

	size := sensor.Film().Size()
	filmPos := core.NewVec2(position.X/float64(size.X), position.Y/float64(size.Y))
	// Integrators trace plain rays; the differentials are not used
	ray, weight := sensor.SampleRayDifferential(time, wavelength, filmPos, aperture)

	return cameraSample{position: position, ray: ray.Ray, weight: weight}
}

// put splats a finished sample into the block as {R, G, B, A, W}
func put(block *imageblock.ImageBlock, position core.Vec2, radiance core.Vec3, valid bool) bool {
	alpha := 0.0
	if valid {
		alpha = 1
	}
	return block.Put(position, []float64{radiance.X, radiance.Y, radiance.Z, alpha, 1})
}

// RenderSample traces one camera sample through pixel pos and splats it
// into block. It returns false if the sample was rejected for invalid
// values.
func (r *Renderer) RenderSample(scene core.Scene, sensor Sensor, sampler core.Sampler, block *imageblock.ImageBlock, pos image.Point) bool {
	cs := r.sampleCamera(sensor, sampler, pos)
	radiance, valid := r.integrator.Sample(scene, sampler, cs.ray)
	return put(block, cs.position, radiance.MultiplyVec(cs.weight), valid)
}

// newBlock allocates an image block matching the film channels
func (r *Renderer) newBlock(film Film, size image.Point) *imageblock.ImageBlock {
	return imageblock.New(size, len(Channels), film.Filter(),
		imageblock.WithAlpha(alphaChannel),
		imageblock.WithLogger(r.logger),
	)
}

// streamKey derives the sampler key of work unit id in the render with the
// given seed. Keys are hashed so that renders with neighbouring seeds do not
// share streams.
func streamKey(seed, id uint64) uint64 {
	z := seed*0xd1342543de82ef95 + id + 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
