package lights

import (
	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// PointLight is an isotropic point source. It can only be reached through
// emitter sampling.
type PointLight struct {
	Position  core.Vec3
	Intensity core.Vec3
}

// NewPointLight creates a point light
func NewPointLight(position, intensity core.Vec3) *PointLight {
	return &PointLight{Position: position, Intensity: intensity}
}

// Flags marks the light as a delta position emitter
func (l *PointLight) Flags() core.EmitterFlags {
	return core.EmitterDeltaPosition
}

// Eval is zero: no ray can hit a point
func (l *PointLight) Eval(si *core.SurfaceInteraction) core.Vec3 {
	return core.Vec3{}
}

// SampleDirection returns the only direction to the light with inverse
// square falloff
func (l *PointLight) SampleDirection(ref *core.SurfaceInteraction, sample core.Vec2) (core.DirectionSample, core.Vec3) {
	ds := core.DirectionSample{
		PositionSample: core.PositionSample{
			Point: l.Position,
			Time:  ref.Time,
			PDF:   1,
			Delta: true,
		},
		Emitter: l,
	}

	toLight := l.Position.Subtract(ref.Point)
	distSq := toLight.LengthSquared()
	if distSq == 0 {
		ds.PDF = 0
		return ds, core.Vec3{}
	}
	ds.Distance = toLight.Length()
	ds.Direction = toLight.Multiply(1 / ds.Distance)
	ds.Normal = ds.Direction.Negate()
	return ds, l.Intensity.Multiply(1 / distSq)
}

// PDFDirection is zero for a delta emitter
func (l *PointLight) PDFDirection(ref *core.SurfaceInteraction, ds core.DirectionSample) float64 {
	return 0
}
