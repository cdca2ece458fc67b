// Package lights provides the emitters used by the built-in scenes.
package lights

import (
	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// AreaLight emits constant radiance from the front face of a shape
type AreaLight struct {
	Shape    core.Shape
	Radiance core.Vec3
}

// NewAreaLight creates an area light and attaches it to the shape
func NewAreaLight(shape Attachable, radiance core.Vec3) *AreaLight {
	light := &AreaLight{Shape: shape, Radiance: radiance}
	shape.SetEmitter(light)
	return light
}

// Attachable is a shape that can carry an emitter
type Attachable interface {
	core.Shape
	SetEmitter(core.Emitter)
}

// Flags marks the light as a surface emitter
func (l *AreaLight) Flags() core.EmitterFlags {
	return core.EmitterSurface
}

// Eval returns the radiance leaving the front face towards Wi
func (l *AreaLight) Eval(si *core.SurfaceInteraction) core.Vec3 {
	if core.CosTheta(si.Wi) <= 0 {
		return core.Vec3{}
	}
	return l.Radiance
}

// SampleDirection samples a point uniformly on the shape's area and converts
// the density to solid angle as seen from ref
func (l *AreaLight) SampleDirection(ref *core.SurfaceInteraction, sample core.Vec2) (core.DirectionSample, core.Vec3) {
	ps := l.Shape.SamplePosition(ref.Time, sample)
	ds := core.DirectionSample{PositionSample: ps, Emitter: l}

	toLight := ps.Point.Subtract(ref.Point)
	distSq := toLight.LengthSquared()
	ds.Distance = toLight.Length()
	if ds.Distance == 0 {
		ds.PDF = 0
		return ds, core.Vec3{}
	}
	ds.Direction = toLight.Multiply(1 / ds.Distance)

	// Back faces do not emit
	cosLight := -ds.Direction.Dot(ps.Normal)
	if cosLight <= 0 {
		ds.PDF = 0
		return ds, core.Vec3{}
	}

	// Convert area PDF to solid angle PDF
	ds.PDF = ps.PDF * distSq / cosLight
	return ds, l.Radiance.Multiply(1 / ds.PDF)
}

// PDFDirection evaluates the solid angle density of SampleDirection
func (l *AreaLight) PDFDirection(ref *core.SurfaceInteraction, ds core.DirectionSample) float64 {
	cosLight := -ds.Direction.Dot(ds.Normal)
	if cosLight <= 0 {
		return 0
	}
	return l.Shape.PDFPosition(ds.PositionSample) * ds.Distance * ds.Distance / cosLight
}
