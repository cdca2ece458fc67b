package renderer

import (
	"math"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// CameraConfig contains the placement and lens of a perspective camera
type CameraConfig struct {
	Center          core.Vec3 // Camera position
	LookAt          core.Vec3 // Point the camera is looking at
	Up              core.Vec3 // Up direction (usually 0,1,0)
	VFov            float64   // Vertical field of view in degrees
	Aperture        float64   // Lens diameter, 0 for a pinhole
	FocusDistance   float64   // Distance to the focal plane, 0 focuses on LookAt
	ShutterOpen     float64
	ShutterOpenTime float64
}

// Camera is a perspective sensor with an optional thin lens. Film position
// (0, 0) is the top left corner of the film.
type Camera struct {
	config  CameraConfig
	film    Film
	sampler core.Sampler

	origin     core.Vec3
	upperLeft  core.Vec3 // Top left corner of the focal plane
	horizontal core.Vec3 // Focal plane extent along the film's x axis
	vertical   core.Vec3 // Focal plane extent along the film's y axis, pointing down
	u, v, w    core.Vec3 // Camera basis
	lensRadius float64
}

// NewCamera creates a camera whose aspect ratio follows the film size
func NewCamera(config CameraConfig, film Film, sampler core.Sampler) *Camera {
	size := film.Size()
	aspectRatio := float64(size.X) / float64(size.Y)

	theta := config.VFov * math.Pi / 180
	viewportHeight := 2 * math.Tan(theta/2)
	viewportWidth := aspectRatio * viewportHeight

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	focus := config.FocusDistance
	if focus <= 0 {
		focus = config.Center.Subtract(config.LookAt).Length()
	}

	horizontal := u.Multiply(viewportWidth * focus)
	vertical := v.Multiply(-viewportHeight * focus)
	upperLeft := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focus))

	return &Camera{
		config:     config,
		film:       film,
		sampler:    sampler,
		origin:     config.Center,
		upperLeft:  upperLeft,
		horizontal: horizontal,
		vertical:   vertical,
		u:          u,
		v:          v,
		w:          w,
		lensRadius: config.Aperture / 2,
	}
}

// SampleRayDifferential generates the ray through filmPos. The weight is
// always one.
func (c *Camera) SampleRayDifferential(time, wavelengthSample float64, filmPos, apertureSample core.Vec2) (core.RayDifferential, core.Vec3) {
	origin := c.origin
	if c.lensRadius > 0 {
		lens := core.SquareToUniformDiskConcentric(apertureSample).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(lens.X)).Add(c.v.Multiply(lens.Y))
	}

	target := c.upperLeft.Add(c.horizontal.Multiply(filmPos.X)).Add(c.vertical.Multiply(filmPos.Y))
	ray := core.NewRayDifferential(core.NewRayWithTime(origin, target.Subtract(origin).Normalize(), time, nil))

	// Neighbouring pixels
	size := c.film.Size()
	dx := c.horizontal.Multiply(1 / float64(size.X))
	dy := c.vertical.Multiply(1 / float64(size.Y))
	ray.DxOrigin = origin
	ray.DyOrigin = origin
	ray.DxDirection = target.Add(dx).Subtract(origin).Normalize()
	ray.DyDirection = target.Add(dy).Subtract(origin).Normalize()
	ray.HasDifferentials = true

	return ray, core.Splat(1)
}

// Forward returns the viewing direction
func (c *Camera) Forward() core.Vec3 {
	return c.w.Negate()
}

func (c *Camera) Film() Film { return c.film }

func (c *Camera) Sampler() core.Sampler { return c.sampler }

func (c *Camera) ShutterOpen() float64 { return c.config.ShutterOpen }

func (c *Camera) ShutterOpenTime() float64 { return c.config.ShutterOpenTime }

// NeedsApertureSample reports whether rays start on a lens
func (c *Camera) NeedsApertureSample() bool { return c.lensRadius > 0 }
