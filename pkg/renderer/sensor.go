package renderer

import (
	"image"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/filter"
	"github.com/df07/go-tiled-pathtracer/pkg/imageblock"
)

// Film receives finished image blocks. Put must be safe for concurrent use.
type Film interface {
	Prepare(channels []string) error
	Put(block *imageblock.ImageBlock) error
	Size() image.Point
	CropSize() image.Point
	CropOffset() image.Point
	Filter() filter.Filter
}

// Sensor generates primary rays and owns the film and sampler they feed
type Sensor interface {
	// SampleRayDifferential returns a primary ray and its importance weight.
	// filmPos is in [0, 1]^2 over the full film.
	SampleRayDifferential(time, wavelengthSample float64, filmPos, apertureSample core.Vec2) (core.RayDifferential, core.Vec3)
	Film() Film
	Sampler() core.Sampler
	ShutterOpen() float64
	ShutterOpenTime() float64
	NeedsApertureSample() bool
}

// Channels are the film channels written by the renderer
var Channels = []string{"R", "G", "B", "A", "W"}

const alphaChannel = 3
