package scene

import (
	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/geometry"
	"github.com/df07/go-tiled-pathtracer/pkg/lights"
	"github.com/df07/go-tiled-pathtracer/pkg/material"
	"github.com/df07/go-tiled-pathtracer/pkg/renderer"
)

// NewCornellScene creates a classic Cornell box scene with quad walls and area lighting
func NewCornellScene(film renderer.Film, sampler core.Sampler) *Scene {
	config := renderer.CameraConfig{
		Center: core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt: core.NewVec3(278, 278, 0),    // Look at the center of the box
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40.0,
	}

	s := New(renderer.NewCamera(config, film, sampler))
	s.SamplingConfig = SamplingConfig{
		SamplesPerPixel: 256,
		MaxDepth:        40,
		RRDepth:         4,
	}

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	// Cornell box dimensions (standard 555x555x555 units)
	boxSize := 555.0

	// Floor (white) - XZ plane at y=0
	floor := geometry.NewQuad(
		core.NewVec3(0, 0, 0),       // corner
		core.NewVec3(boxSize, 0, 0), // u vector (X direction)
		core.NewVec3(0, 0, boxSize), // v vector (Z direction)
		white,
	)

	// Ceiling (white) - XZ plane at y=boxSize
	ceiling := geometry.NewQuad(
		core.NewVec3(0, boxSize, 0),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
		white,
	)

	// Back wall (white) - XY plane at z=boxSize
	backWall := geometry.NewQuad(
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, boxSize, 0),
		white,
	)

	// Left wall (red) - YZ plane at x=0
	leftWall := geometry.NewQuad(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(0, boxSize, 0),
		red,
	)

	// Right wall (green) - YZ plane at x=boxSize
	rightWall := geometry.NewQuad(
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, boxSize, 0),
		core.NewVec3(0, 0, boxSize),
		green,
	)

	s.Add(floor, ceiling, backWall, leftWall, rightWall)

	// Ceiling light, slightly below the ceiling and facing down
	lightSize := 130.0
	lightOffset := (boxSize - lightSize) / 2.0
	light := geometry.NewQuad(
		core.NewVec3(lightOffset, boxSize-1, lightOffset),
		core.NewVec3(lightSize, 0, 0),
		core.NewVec3(0, 0, lightSize),
		nil,
	)
	lights.NewAreaLight(light, core.NewVec3(15.0, 15.0, 15.0))
	s.Add(light)

	// Left sphere (metal), right sphere (glass)
	leftSphere := geometry.NewSphere(core.NewVec3(185, 82.5, 169), 82.5, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9)))
	rightSphere := geometry.NewSphere(core.NewVec3(370, 90, 351), 90, material.NewDielectric(1.5))
	s.Add(leftSphere, rightSphere)

	s.Preprocess()
	return s
}
