package lights

import (
	"math"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// UniformInfiniteLight represents a uniform infinite area light (constant
// emission in all directions)
type UniformInfiniteLight struct {
	Emission core.Vec3
}

// NewUniformInfiniteLight creates a new uniform infinite light
func NewUniformInfiniteLight(emission core.Vec3) *UniformInfiniteLight {
	return &UniformInfiniteLight{Emission: emission}
}

// Flags marks the light as infinitely distant
func (l *UniformInfiniteLight) Flags() core.EmitterFlags {
	return core.EmitterInfinite
}

// Eval returns the same radiance for every escaping ray
func (l *UniformInfiniteLight) Eval(si *core.SurfaceInteraction) core.Vec3 {
	return l.Emission
}

// SampleDirection samples the full sphere of directions uniformly
func (l *UniformInfiniteLight) SampleDirection(ref *core.SurfaceInteraction, sample core.Vec2) (core.DirectionSample, core.Vec3) {
	d := core.SquareToUniformSphere(sample)
	ds := core.DirectionSample{
		PositionSample: core.PositionSample{
			Point:  ref.Point.Add(d),
			Normal: d.Negate(),
			Time:   ref.Time,
			PDF:    core.UniformSpherePDF(),
		},
		Direction: d,
		Distance:  math.Inf(1),
		Emitter:   l,
	}
	return ds, l.Emission.Multiply(1 / ds.PDF)
}

// PDFDirection is the uniform sphere density
func (l *UniformInfiniteLight) PDFDirection(ref *core.SurfaceInteraction, ds core.DirectionSample) float64 {
	return core.UniformSpherePDF()
}
