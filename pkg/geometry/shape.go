// Package geometry provides the reference shapes used by the built-in scenes.
package geometry

import "github.com/df07/go-tiled-pathtracer/pkg/core"

// Surface holds the BSDF and emitter attached to a shape
type Surface struct {
	bsdf    core.BSDF
	emitter core.Emitter
}

// BSDF returns the scattering model, nil for pure emitters
func (s *Surface) BSDF() core.BSDF { return s.bsdf }

// Emitter returns the area emitter, nil when the shape does not emit
func (s *Surface) Emitter() core.Emitter { return s.emitter }

// SetBSDF replaces the scattering model
func (s *Surface) SetBSDF(bsdf core.BSDF) { s.bsdf = bsdf }

// SetEmitter attaches an area emitter
func (s *Surface) SetEmitter(emitter core.Emitter) { s.emitter = emitter }

// interaction fills the fields every shape computes the same way
func interaction(ray core.Ray, t float64, normal core.Vec3, uv core.Vec2, shape core.Shape) core.SurfaceInteraction {
	si := core.SurfaceInteraction{
		T:           t,
		Point:       ray.At(t),
		Normal:      normal,
		Shading:     core.NewFrame(normal),
		UV:          uv,
		Time:        ray.Time,
		Wavelengths: ray.Wavelengths,
		Shape:       shape,
	}
	si.Wi = si.ToLocal(ray.Direction.Negate())
	return si
}
