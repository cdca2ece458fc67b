package core

import "math"

// SurfaceInteraction describes a ray-scene intersection. An infinite T
// marks a miss.
type SurfaceInteraction struct {
	T           float64     // Hit distance along the ray
	Point       Vec3        // Position of the hit
	Normal      Vec3        // Geometric normal, facing outwards
	Shading     Frame       // Shading frame
	UV          Vec2        // Surface parameterization
	Wi          Vec3        // Incident direction in the local shading frame
	Time        float64     // Shutter time of the ray
	Wavelengths Wavelengths // Wavelengths of the ray
	Shape       Shape       // Intersected shape, read only
}

// NewMissInteraction returns the interaction for a ray that escaped the scene.
// The shading frame is the identity, so ToWorld(Wi) is the reversed ray direction.
func NewMissInteraction(ray Ray) SurfaceInteraction {
	return SurfaceInteraction{
		T:           math.Inf(1),
		Shading:     IdentityFrame(),
		Wi:          ray.Direction.Negate(),
		Time:        ray.Time,
		Wavelengths: ray.Wavelengths,
	}
}

// IsValid reports whether the ray hit geometry
func (si *SurfaceInteraction) IsValid() bool {
	return !math.IsInf(si.T, 1)
}

// ToLocal converts a world direction into the shading frame
func (si *SurfaceInteraction) ToLocal(v Vec3) Vec3 {
	return si.Shading.ToLocal(v)
}

// ToWorld converts a shading frame direction into world space
func (si *SurfaceInteraction) ToWorld(v Vec3) Vec3 {
	return si.Shading.ToWorld(v)
}

// BSDF returns the scattering model of the intersected shape
func (si *SurfaceInteraction) BSDF() BSDF {
	if si.Shape == nil {
		return nil
	}
	return si.Shape.BSDF()
}

// Emitter returns the emitter seen by this interaction: the shape's area
// emitter on a hit, the scene environment on a miss.
func (si *SurfaceInteraction) Emitter(scene Scene) Emitter {
	if !si.IsValid() {
		return scene.Environment()
	}
	if si.Shape == nil {
		return nil
	}
	return si.Shape.Emitter()
}

// offsetOrigin pushes the hit point off the surface on the side of d
func (si *SurfaceInteraction) offsetOrigin(d Vec3) Vec3 {
	mag := (1 + max(math.Abs(si.Point.X), math.Abs(si.Point.Y), math.Abs(si.Point.Z))) * RayEpsilon
	offset := si.Normal.Multiply(mag)
	if d.Dot(si.Normal) < 0 {
		offset = offset.Negate()
	}
	return si.Point.Add(offset)
}

// SpawnRay creates a ray leaving the surface in direction d
func (si *SurfaceInteraction) SpawnRay(d Vec3) Ray {
	return Ray{
		Origin:      si.offsetOrigin(d),
		Direction:   d,
		Time:        si.Time,
		Wavelengths: si.Wavelengths,
		MinT:        0,
		MaxT:        math.Inf(1),
	}
}

// SpawnRayTo creates a ray from the surface that stops just short of p
func (si *SurfaceInteraction) SpawnRayTo(p Vec3) Ray {
	origin := si.offsetOrigin(p.Subtract(si.Point))
	d := p.Subtract(origin)
	dist := d.Length()
	return Ray{
		Origin:      origin,
		Direction:   d.Multiply(1 / dist),
		Time:        si.Time,
		Wavelengths: si.Wavelengths,
		MinT:        0,
		MaxT:        dist * (1 - ShadowEpsilon),
	}
}

// PositionSample is a sampled point on a surface
type PositionSample struct {
	Point  Vec3
	Normal Vec3
	UV     Vec2
	Time   float64
	PDF    float64 // Area density, or 1 with Delta set
	Delta  bool    // Sample drawn from a degenerate distribution
}

// DirectionSample is a sampled point on an emitter seen from a reference point
type DirectionSample struct {
	PositionSample
	Direction Vec3    // Unit direction from the reference point to the sample
	Distance  float64 // Distance from the reference point, infinite for environments
	Emitter   Emitter // Emitter the sample lies on
}

// IsActive reports whether the sample may contribute
func (ds DirectionSample) IsActive() bool {
	return ds.PDF != 0
}

// NewDirectionSampleFromHit describes a surface hit as if it had been
// produced by emitter sampling from ref, so the emitter density of the
// same direction can be evaluated.
func NewDirectionSampleFromHit(si *SurfaceInteraction, ref *SurfaceInteraction, emitter Emitter) DirectionSample {
	ds := DirectionSample{
		PositionSample: PositionSample{
			Point:  si.Point,
			Normal: si.Normal,
			UV:     si.UV,
			Time:   si.Time,
		},
		Emitter: emitter,
	}
	if !si.IsValid() {
		ds.Direction = si.ToWorld(si.Wi).Negate()
		ds.Distance = math.Inf(1)
		return ds
	}
	d := si.Point.Subtract(ref.Point)
	ds.Distance = d.Length()
	ds.Direction = d.Multiply(1 / ds.Distance)
	return ds
}
