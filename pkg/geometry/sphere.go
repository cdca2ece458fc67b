package geometry

import (
	"math"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Surface
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, bsdf core.BSDF) *Sphere {
	s := &Sphere{Center: center, Radius: radius}
	s.SetBSDF(bsdf)
	return s
}

// Intersect tests if a ray intersects with the sphere
func (s *Sphere) Intersect(ray core.Ray) (core.SurfaceInteraction, bool) {
	// Quadratic equation coefficients: at² + bt + c = 0
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return core.SurfaceInteraction{}, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root < ray.MinT || root > ray.MaxT {
		root = (-halfB + sqrtD) / a
		if root < ray.MinT || root > ray.MaxT {
			return core.SurfaceInteraction{}, false
		}
	}

	// Outward normal (from center to hit point)
	normal := ray.At(root).Subtract(s.Center).Multiply(1 / s.Radius)
	return interaction(ray, root, normal, sphereUV(normal), s), true
}

// sphereUV maps a unit direction to spherical coordinates in [0, 1]^2
func sphereUV(n core.Vec3) core.Vec2 {
	phi := math.Atan2(-n.Z, n.X) + math.Pi
	theta := math.Acos(math.Max(-1, math.Min(1, -n.Y)))
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}

// SamplePosition draws a point uniformly over the surface
func (s *Sphere) SamplePosition(time float64, sample core.Vec2) core.PositionSample {
	n := core.SquareToUniformSphere(sample)
	return core.PositionSample{
		Point:  s.Center.Add(n.Multiply(s.Radius)),
		Normal: n,
		UV:     sphereUV(n),
		Time:   time,
		PDF:    1 / s.SurfaceArea(),
	}
}

// PDFPosition is the area density of SamplePosition
func (s *Sphere) PDFPosition(ps core.PositionSample) float64 {
	return 1 / s.SurfaceArea()
}

// SurfaceArea returns 4πr²
func (s *Sphere) SurfaceArea() float64 {
	return 4 * math.Pi * s.Radius * s.Radius
}

// BoundingBox returns the cube enclosing the sphere
func (s *Sphere) BoundingBox() core.AABB {
	r := core.Splat(s.Radius)
	return core.NewAABB(s.Center.Subtract(r), s.Center.Add(r))
}
