package renderer

import (
	"image"
	"math"
	"testing"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/film"
	"github.com/df07/go-tiled-pathtracer/pkg/filter"
	"github.com/df07/go-tiled-pathtracer/pkg/sampler"
)

func newTestCamera(t *testing.T, size image.Point, config CameraConfig) *Camera {
	t.Helper()
	f, err := film.New(size, filter.NewBox(0.5))
	if err != nil {
		t.Fatal(err)
	}
	return NewCamera(config, f, sampler.NewIndependent(1, 0))
}

func forwardConfig() CameraConfig {
	return CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   90.0,
	}
}

func TestCameraForward(t *testing.T) {
	camera := newTestCamera(t, image.Pt(4, 4), forwardConfig())

	forward := camera.Forward()
	expected := core.NewVec3(0, 0, -1)
	if forward.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected forward direction %v, got %v", expected, forward)
	}
}

func TestCameraFilmMapping(t *testing.T) {
	// 90 degree fov on a 2:1 film: the focal plane at distance 1 spans
	// x in [-2, 2] and y in [-1, 1]
	camera := newTestCamera(t, image.Pt(8, 4), forwardConfig())

	tests := []struct {
		name    string
		filmPos core.Vec2
		target  core.Vec3
	}{
		{"center", core.NewVec2(0.5, 0.5), core.NewVec3(0, 0, -1)},
		{"top left", core.NewVec2(0, 0), core.NewVec3(-2, 1, -1)},
		{"bottom right", core.NewVec2(1, 1), core.NewVec3(2, -1, -1)},
		{"right edge", core.NewVec2(1, 0.5), core.NewVec3(2, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray, weight := camera.SampleRayDifferential(0, 0.5, tt.filmPos, core.NewVec2(0.5, 0.5))
			expected := tt.target.Normalize()
			if ray.Direction.Subtract(expected).Length() > 1e-9 {
				t.Errorf("Expected direction %v, got %v", expected, ray.Direction)
			}
			if weight != core.Splat(1) {
				t.Errorf("Expected unit weight, got %v", weight)
			}
			if ray.Origin != (core.Vec3{}) {
				t.Errorf("Pinhole rays should start at the camera center, got %v", ray.Origin)
			}
		})
	}
}

func TestCameraDifferentials(t *testing.T) {
	camera := newTestCamera(t, image.Pt(4, 4), forwardConfig())

	ray, _ := camera.SampleRayDifferential(0, 0.5, core.NewVec2(0.5, 0.5), core.NewVec2(0.5, 0.5))
	if !ray.HasDifferentials {
		t.Fatal("Expected differentials")
	}
	// One pixel to the right on a 2 unit wide plane of 4 pixels
	expectedDx := core.NewVec3(0.5, 0, -1).Normalize()
	if ray.DxDirection.Subtract(expectedDx).Length() > 1e-9 {
		t.Errorf("Expected dx direction %v, got %v", expectedDx, ray.DxDirection)
	}
	expectedDy := core.NewVec3(0, -0.5, -1).Normalize()
	if ray.DyDirection.Subtract(expectedDy).Length() > 1e-9 {
		t.Errorf("Expected dy direction %v, got %v", expectedDy, ray.DyDirection)
	}

	ray.ScaleDifferential(0.5)
	if ray.DxDirection.Subtract(ray.Direction).Length() >= expectedDx.Subtract(ray.Direction).Length() {
		t.Error("Scaling should shrink the footprint")
	}
}

func TestCameraThinLens(t *testing.T) {
	config := forwardConfig()
	config.Aperture = 0.2
	config.FocusDistance = 2
	camera := newTestCamera(t, image.Pt(4, 4), config)

	if !camera.NeedsApertureSample() {
		t.Fatal("Camera with an aperture should request lens samples")
	}

	// Every lens position converges on the same focal point
	focal := core.NewVec3(0, 0, -2)
	for _, u := range []core.Vec2{{X: 0, Y: 0}, {X: 0.9, Y: 0.1}, {X: 0.3, Y: 0.7}} {
		ray, _ := camera.SampleRayDifferential(0, 0.5, core.NewVec2(0.5, 0.5), u)
		if math.Hypot(ray.Origin.X, ray.Origin.Y) > 0.1+1e-9 {
			t.Errorf("Origin %v outside the lens", ray.Origin)
		}
		tHit := (focal.Z - ray.Origin.Z) / ray.Direction.Z
		if ray.At(tHit).Subtract(focal).Length() > 1e-9 {
			t.Errorf("Ray from %v misses the focal point", ray.Origin)
		}
	}

	if newTestCamera(t, image.Pt(4, 4), forwardConfig()).NeedsApertureSample() {
		t.Error("Pinhole camera should not request lens samples")
	}
}
