package scene

import (
	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/geometry"
	"github.com/df07/go-tiled-pathtracer/pkg/lights"
	"github.com/df07/go-tiled-pathtracer/pkg/renderer"
)

// EmitterRadiance is the radiance of the quad in the emitter scene
var EmitterRadiance = core.NewVec3(1, 1, 1)

// NewEmitterScene creates a single 2x2 emitting quad at z=0 facing a camera
// at z=-5. With a 30 degree field of view the quad covers the middle three
// quarters of the film height; everything around it is black.
func NewEmitterScene(film renderer.Film, sampler core.Sampler) *Scene {
	config := renderer.CameraConfig{
		Center: core.NewVec3(0, 0, -5),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   30.0,
	}

	s := New(renderer.NewCamera(config, film, sampler))
	s.SamplingConfig = SamplingConfig{SamplesPerPixel: 16, MaxDepth: -1, RRDepth: 5}

	// (0,2,0) × (2,0,0) = (0,0,-4): facing the camera
	quad := geometry.NewQuad(core.NewVec3(-1, -1, 0), core.NewVec3(0, 2, 0), core.NewVec3(2, 0, 0), nil)
	lights.NewAreaLight(quad, EmitterRadiance)
	s.Add(quad)

	s.Preprocess()
	return s
}
