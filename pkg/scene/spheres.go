package scene

import (
	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/geometry"
	"github.com/df07/go-tiled-pathtracer/pkg/lights"
	"github.com/df07/go-tiled-pathtracer/pkg/material"
	"github.com/df07/go-tiled-pathtracer/pkg/renderer"
)

// NewSpheresScene creates spheres of every material on a checkered ground
// under a sky, lit by a spherical and a disc area light and a point light
func NewSpheresScene(film renderer.Film, sampler core.Sampler) *Scene {
	config := renderer.CameraConfig{
		Center:   core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt:   core.NewVec3(0, 0.5, -1), // Look at the sphere center
		Up:       core.NewVec3(0, 1, 0),
		VFov:     40.0,
		Aperture: 0.05,
	}

	s := New(renderer.NewCamera(config, film, sampler))
	s.SamplingConfig = SamplingConfig{
		SamplesPerPixel: 64,
		MaxDepth:        50,
		RRDepth:         20, // Need a lot of bounces for glass
	}

	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	lambertianRed := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	metalSilver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8))
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2))
	glass := material.NewDielectric(1.5)
	checker := material.NewTexturedLambertian(material.NewCheckerboard(
		400, core.NewVec3(0.48, 0.48, 0.0), core.NewVec3(0.9, 0.9, 0.9),
	))

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, lambertianRed),
		geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, metalSilver),
		geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold),
		geometry.NewSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, glass),
		geometry.NewSphere(core.NewVec3(-0.5, 0.2, -0.4), 0.2, lambertianBlue),
		// Large but finite ground
		NewGroundQuad(core.NewVec3(0, 0, 0), 100.0, checker),
	)

	sun := geometry.NewSphere(core.NewVec3(30, 30.5, 15), 10, nil)
	lights.NewAreaLight(sun, core.NewVec3(15.0, 14.0, 13.0))
	s.Add(sun)

	// Warm disc light low on the left, facing the spheres
	lamp := geometry.NewDisc(core.NewVec3(-2.5, 1, 0), core.NewVec3(1, -0.2, -0.6), 0.3, nil)
	lights.NewAreaLight(lamp, core.NewVec3(6, 4, 2))
	s.Add(lamp)

	s.AddEmitter(lights.NewPointLight(core.NewVec3(-2, 3, 1), core.NewVec3(4, 4, 4)))
	s.SetEnvironment(lights.NewUniformInfiniteLight(core.NewVec3(0.5, 0.7, 1.0).Multiply(0.4)))

	s.Preprocess()
	return s
}
