// Package scene assembles shapes, emitters and a sensor into a renderable
// scene and provides the built-in scenes.
package scene

import (
	"math"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/geometry"
	"github.com/df07/go-tiled-pathtracer/pkg/renderer"
)

// Shape is geometry that can be placed in the BVH
type Shape interface {
	core.Shape
	BoundingBox() core.AABB
}

// Scene contains all the elements needed for rendering. Preprocess must be
// called after the last shape or emitter is added.
type Scene struct {
	Sensor         renderer.Sensor
	Shapes         []Shape        // Objects in the scene
	Emitters       []core.Emitter // Every emitter, including area lights and the environment
	SamplingConfig SamplingConfig

	lights      []core.Emitter // Emitters that are not attached to shapes
	environment core.Emitter
	bvh         *BVH
}

// SamplingConfig holds the settings a scene renders best with
type SamplingConfig struct {
	SamplesPerPixel int
	MaxDepth        int
	RRDepth         int
}

// New creates an empty scene seen through sensor
func New(sensor renderer.Sensor) *Scene {
	return &Scene{Sensor: sensor}
}

// Add places shapes in the scene
func (s *Scene) Add(shapes ...Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// AddEmitter adds an emitter that has no shape, such as a point light
func (s *Scene) AddEmitter(emitter core.Emitter) {
	s.lights = append(s.lights, emitter)
}

// SetEnvironment sets the emitter seen by escaping rays
func (s *Scene) SetEnvironment(emitter core.Emitter) {
	s.environment = emitter
}

// NewGroundQuad creates a horizontal quad centered at the given point with
// normal pointing up (0,1,0)
func NewGroundQuad(center core.Vec3, size float64, bsdf core.BSDF) *geometry.Quad {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// u × v = (0,0,size) × (size,0,0) = (0,size²,0)
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewQuad(corner, u, v, bsdf)
}

// Preprocess builds the BVH and collects the emitters
func (s *Scene) Preprocess() {
	s.bvh = NewBVH(s.Shapes)

	s.Emitters = s.Emitters[:0]
	for _, shape := range s.Shapes {
		if emitter := shape.Emitter(); emitter != nil {
			s.Emitters = append(s.Emitters, emitter)
		}
	}
	s.Emitters = append(s.Emitters, s.lights...)
	if s.environment != nil {
		s.Emitters = append(s.Emitters, s.environment)
	}
}

// RayIntersect finds the closest intersection along the ray. Misses return
// an interaction with infinite T.
func (s *Scene) RayIntersect(ray core.Ray) core.SurfaceInteraction {
	if si, ok := s.bvh.Intersect(ray); ok {
		return si
	}
	return core.NewMissInteraction(ray)
}

// RayTest reports whether anything blocks the ray
func (s *Scene) RayTest(ray core.Ray) bool {
	return s.bvh.Occluded(ray)
}

// SampleEmitterDirection picks an emitter uniformly and samples a direction
// towards it. The first sample dimension is reused after the pick.
func (s *Scene) SampleEmitterDirection(ref *core.SurfaceInteraction, sample core.Vec2, testVisibility bool) (core.DirectionSample, core.Vec3) {
	n := len(s.Emitters)
	if n == 0 {
		return core.DirectionSample{}, core.Vec3{}
	}

	scaled := sample.X * float64(n)
	index := min(int(scaled), n-1)
	sample.X = math.Min(scaled-float64(index), math.Nextafter(1, 0))

	ds, value := s.Emitters[index].SampleDirection(ref, sample)
	if !ds.IsActive() {
		return ds, core.Vec3{}
	}
	ds.PDF /= float64(n)
	value = value.Multiply(float64(n))

	if testVisibility {
		var ray core.Ray
		if math.IsInf(ds.Distance, 1) {
			ray = ref.SpawnRay(ds.Direction)
		} else {
			ray = ref.SpawnRayTo(ds.Point)
		}
		if s.RayTest(ray) {
			value = core.Vec3{}
		}
	}
	return ds, value
}

// PDFEmitterDirection evaluates the density of SampleEmitterDirection for
// the emitter the sample refers to
func (s *Scene) PDFEmitterDirection(ref *core.SurfaceInteraction, ds core.DirectionSample) float64 {
	if ds.Emitter == nil || len(s.Emitters) == 0 {
		return 0
	}
	return ds.Emitter.PDFDirection(ref, ds) / float64(len(s.Emitters))
}

// Environment returns the emitter seen by escaping rays, or nil
func (s *Scene) Environment() core.Emitter {
	return s.environment
}

// Bounds returns the box around every shape
func (s *Scene) Bounds() core.AABB {
	return s.bvh.Bounds()
}
