// Package filter implements separable reconstruction filters used to splat
// samples into image blocks.
package filter

import (
	"math"

	"github.com/pkg/errors"
)

// ErrUnknownFilter is returned by New for unsupported filter names
var ErrUnknownFilter = errors.New("filter: unknown filter")

// Filter is a 1-D reconstruction kernel. Image blocks apply it separably.
type Filter interface {
	// Radius is the half-width of the support in pixels
	Radius() float64
	// Eval returns the kernel value at offset x from the center
	Eval(x float64) float64
}

// New creates a filter by name. A non-positive radius selects the
// filter's default.
func New(name string, radius float64) (Filter, error) {
	switch name {
	case "box":
		return NewBox(radius), nil
	case "", "tent":
		return NewTent(radius), nil
	case "gaussian":
		return NewGaussian(radius / 4), nil
	case "mitchell":
		return NewMitchell(1.0/3.0, 1.0/3.0), nil
	case "catmullrom":
		return NewCatmullRom(), nil
	case "lanczos":
		return NewLanczos(int(math.Round(radius))), nil
	}
	return nil, errors.Wrapf(ErrUnknownFilter, "%q", name)
}

// Box weights every sample within the radius equally
type Box struct {
	radius float64
}

// NewBox creates a box filter, half a pixel wide by default
func NewBox(radius float64) *Box {
	if radius <= 0 {
		radius = 0.5
	}
	return &Box{radius: radius}
}

func (f *Box) Radius() float64 { return f.radius }

func (f *Box) Eval(x float64) float64 {
	if math.Abs(x) <= f.radius {
		return 1
	}
	return 0
}

// Tent is a linear falloff to zero at the radius
type Tent struct {
	radius float64
}

// NewTent creates a tent filter, one pixel wide by default
func NewTent(radius float64) *Tent {
	if radius <= 0 {
		radius = 1
	}
	return &Tent{radius: radius}
}

func (f *Tent) Radius() float64 { return f.radius }

func (f *Tent) Eval(x float64) float64 {
	return math.Max(0, 1-math.Abs(x)/f.radius)
}

// Gaussian is a truncated Gaussian shifted to reach zero at four standard
// deviations
type Gaussian struct {
	stddev float64
	radius float64
	alpha  float64
	bias   float64
}

// NewGaussian creates a gaussian filter with the given standard deviation
// (0.5 by default)
func NewGaussian(stddev float64) *Gaussian {
	if stddev <= 0 {
		stddev = 0.5
	}
	radius := 4 * stddev
	alpha := -1 / (2 * stddev * stddev)
	return &Gaussian{
		stddev: stddev,
		radius: radius,
		alpha:  alpha,
		bias:   math.Exp(alpha * radius * radius),
	}
}

func (f *Gaussian) Radius() float64 { return f.radius }

func (f *Gaussian) Eval(x float64) float64 {
	return math.Max(0, math.Exp(f.alpha*x*x)-f.bias)
}

// Mitchell is the Mitchell-Netravali cubic with two pixels of support
type Mitchell struct {
	b, c float64
}

// NewMitchell creates a Mitchell-Netravali filter with parameters B and C
func NewMitchell(b, c float64) *Mitchell {
	return &Mitchell{b: b, c: c}
}

// NewCatmullRom is the Mitchell-Netravali filter with B=0, C=1/2
func NewCatmullRom() *Mitchell {
	return NewMitchell(0, 0.5)
}

func (f *Mitchell) Radius() float64 { return 2 }

func (f *Mitchell) Eval(x float64) float64 {
	x = math.Abs(x)
	x2 := x * x
	x3 := x2 * x
	b, c := f.b, f.c

	switch {
	case x < 1:
		return ((12-9*b-6*c)*x3 + (-18+12*b+6*c)*x2 + (6 - 2*b)) / 6
	case x < 2:
		return ((-b-6*c)*x3 + (6*b+30*c)*x2 + (-12*b-48*c)*x + (8*b + 24*c)) / 6
	}
	return 0
}

// Lanczos is a sinc windowed by a wider sinc
type Lanczos struct {
	lobes int
}

// NewLanczos creates a Lanczos filter with the given number of lobes (3 by default)
func NewLanczos(lobes int) *Lanczos {
	if lobes <= 0 {
		lobes = 3
	}
	return &Lanczos{lobes: lobes}
}

func (f *Lanczos) Radius() float64 { return float64(f.lobes) }

func (f *Lanczos) Eval(x float64) float64 {
	x = math.Abs(x)
	if x >= float64(f.lobes) {
		return 0
	}
	if x < 1e-5 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px * math.Sin(px/float64(f.lobes)) / (px / float64(f.lobes))
}
