// Package material provides the scattering models used by the built-in scenes.
package material

import (
	"math"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns color at given UV coordinates and 3D point
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// Checkerboard alternates two colors over a grid in UV space
type Checkerboard struct {
	Even, Odd core.Vec3
	Checks    float64 // Checks along each UV axis
}

// NewCheckerboard creates a procedural checkerboard
func NewCheckerboard(checks int, even, odd core.Vec3) *Checkerboard {
	return &Checkerboard{Even: even, Odd: odd, Checks: float64(max(1, checks))}
}

// Evaluate picks the color of the check containing uv
func (c *Checkerboard) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	x := int(math.Floor(uv.X * c.Checks))
	y := int(math.Floor(uv.Y * c.Checks))
	if (x+y)%2 == 0 {
		return c.Even
	}
	return c.Odd
}
