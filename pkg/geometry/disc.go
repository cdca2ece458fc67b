package geometry

import (
	"math"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// Disc is a one-sided circular disc facing along Normal
type Disc struct {
	Surface
	Center core.Vec3
	Normal core.Vec3
	Radius float64
	frame  core.Frame // Tangents of the disc plane
}

// NewDisc creates a disc of the given radius around center
func NewDisc(center, normal core.Vec3, radius float64, bsdf core.BSDF) *Disc {
	n := normal.Normalize()
	d := &Disc{
		Center: center,
		Normal: n,
		Radius: radius,
		frame:  core.NewFrame(n),
	}
	d.SetBSDF(bsdf)
	return d
}

// Intersect tests the ray against the plane of the disc and the radius
func (d *Disc) Intersect(ray core.Ray) (core.SurfaceInteraction, bool) {
	denom := d.Normal.Dot(ray.Direction)
	if math.Abs(denom) < 1e-8 {
		return core.SurfaceInteraction{}, false
	}

	t := d.Normal.Dot(d.Center.Subtract(ray.Origin)) / denom
	if t < ray.MinT || t > ray.MaxT {
		return core.SurfaceInteraction{}, false
	}

	local := d.frame.ToLocal(ray.At(t).Subtract(d.Center))
	r2 := local.X*local.X + local.Y*local.Y
	if r2 > d.Radius*d.Radius {
		return core.SurfaceInteraction{}, false
	}

	// u is the normalized radius, v the angle
	phi := math.Atan2(local.Y, local.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	uv := core.NewVec2(math.Sqrt(r2)/d.Radius, phi/(2*math.Pi))
	return interaction(ray, t, d.Normal, uv, d), true
}

// SamplePosition draws a point uniformly over the disc
func (d *Disc) SamplePosition(time float64, sample core.Vec2) core.PositionSample {
	p := core.SquareToUniformDiskConcentric(sample)
	offset := d.frame.ToWorld(core.NewVec3(p.X*d.Radius, p.Y*d.Radius, 0))
	return core.PositionSample{
		Point:  d.Center.Add(offset),
		Normal: d.Normal,
		UV:     sample,
		Time:   time,
		PDF:    1 / d.SurfaceArea(),
	}
}

// PDFPosition is the area density of SamplePosition
func (d *Disc) PDFPosition(ps core.PositionSample) float64 {
	return 1 / d.SurfaceArea()
}

// SurfaceArea returns πr²
func (d *Disc) SurfaceArea() float64 {
	return math.Pi * d.Radius * d.Radius
}

// BoundingBox returns the box around the disc's rim
func (d *Disc) BoundingBox() core.AABB {
	// Extent along each axis is r·sqrt(1 - n²)
	extent := core.NewVec3(
		d.Radius*math.Sqrt(math.Max(0, 1-d.Normal.X*d.Normal.X)),
		d.Radius*math.Sqrt(math.Max(0, 1-d.Normal.Y*d.Normal.Y)),
		d.Radius*math.Sqrt(math.Max(0, 1-d.Normal.Z*d.Normal.Z)),
	)
	return core.NewAABB(d.Center.Subtract(extent), d.Center.Add(extent)).Expand(1e-4)
}
