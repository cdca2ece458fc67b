package core

import "math"

// RayEpsilon is the relative offset used when spawning rays off a surface
const RayEpsilon = 1e-4

// ShadowEpsilon shortens shadow rays so they stop just before their target
const ShadowEpsilon = 1e-3

// Wavelengths is the set of wavelengths carried by a ray. RGB rendering
// leaves it empty.
type Wavelengths []float64

// Ray represents a ray with an origin and direction
type Ray struct {
	Origin      Vec3
	Direction   Vec3
	Time        float64
	Wavelengths Wavelengths
	MinT        float64
	MaxT        float64
}

// NewRay creates a new ray with an unbounded extent
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, MinT: RayEpsilon, MaxT: math.Inf(1)}
}

// NewRayWithTime creates a ray at a given shutter time
func NewRayWithTime(origin, direction Vec3, time float64, wavelengths Wavelengths) Ray {
	r := NewRay(origin, direction)
	r.Time = time
	r.Wavelengths = wavelengths
	return r
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// RayDifferential is a ray with footprint derivatives for the neighbouring
// pixels in x and y
type RayDifferential struct {
	Ray
	DxOrigin         Vec3
	DyOrigin         Vec3
	DxDirection      Vec3
	DyDirection      Vec3
	HasDifferentials bool
}

// NewRayDifferential wraps a ray without differentials
func NewRayDifferential(r Ray) RayDifferential {
	return RayDifferential{Ray: r}
}

// ScaleDifferential scales the footprint, typically by 1/sqrt(spp)
func (r *RayDifferential) ScaleDifferential(amount float64) {
	if !r.HasDifferentials {
		return
	}
	r.DxOrigin = r.Origin.Add(r.DxOrigin.Subtract(r.Origin).Multiply(amount))
	r.DyOrigin = r.Origin.Add(r.DyOrigin.Subtract(r.Origin).Multiply(amount))
	r.DxDirection = r.Direction.Add(r.DxDirection.Subtract(r.Direction).Multiply(amount))
	r.DyDirection = r.Direction.Add(r.DyDirection.Subtract(r.Direction).Multiply(amount))
}
