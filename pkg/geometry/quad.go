package geometry

import (
	"math"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// Quad represents a parallelogram defined by a corner and two edge vectors.
// Its normal is U × V, normalized.
type Quad struct {
	Surface
	Corner core.Vec3 // One corner of the quad
	U      core.Vec3 // First edge vector
	V      core.Vec3 // Second edge vector
	Normal core.Vec3
	D      float64   // Plane equation constant: normal · p = d
	W      core.Vec3 // Cached for barycentric coordinates
	area   float64
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, bsdf core.BSDF) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()
	q := &Quad{
		Corner: corner,
		U:      u,
		V:      v,
		Normal: normal,
		D:      normal.Dot(corner),
		W:      normal.Multiply(1 / normal.Dot(cross)),
		area:   cross.Length(),
	}
	q.SetBSDF(bsdf)
	return q
}

// Intersect tests if a ray intersects with the quad
func (q *Quad) Intersect(ray core.Ray) (core.SurfaceInteraction, bool) {
	denominator := ray.Direction.Dot(q.Normal)

	// Ray parallel to the plane
	if math.Abs(denominator) < 1e-8 {
		return core.SurfaceInteraction{}, false
	}

	t := (q.D - ray.Origin.Dot(q.Normal)) / denominator
	if t < ray.MinT || t > ray.MaxT {
		return core.SurfaceInteraction{}, false
	}

	hitVector := ray.At(t).Subtract(q.Corner)
	alpha := q.W.Dot(hitVector.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(hitVector))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return core.SurfaceInteraction{}, false
	}

	return interaction(ray, t, q.Normal, core.NewVec2(alpha, beta), q), true
}

// SamplePosition draws a point uniformly over the quad
func (q *Quad) SamplePosition(time float64, sample core.Vec2) core.PositionSample {
	return core.PositionSample{
		Point:  q.Corner.Add(q.U.Multiply(sample.X)).Add(q.V.Multiply(sample.Y)),
		Normal: q.Normal,
		UV:     sample,
		Time:   time,
		PDF:    1 / q.area,
	}
}

// PDFPosition is the area density of SamplePosition
func (q *Quad) PDFPosition(ps core.PositionSample) float64 {
	return 1 / q.area
}

// SurfaceArea returns |U × V|
func (q *Quad) SurfaceArea() float64 {
	return q.area
}

// BoundingBox returns the box around the four corners, padded so flat
// quads keep a non-zero extent
func (q *Quad) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(
		q.Corner,
		q.Corner.Add(q.U),
		q.Corner.Add(q.V),
		q.Corner.Add(q.U).Add(q.V),
	).Expand(1e-4)
}
