package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

func TestDisc_Intersect(t *testing.T) {
	disc := NewDisc(core.NewVec3(0, 1, 0), core.NewVec3(0, 2, 0), 1.0, nil)

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		hit       bool
		expectedT float64
	}{
		{"center from above", core.NewVec3(0, 3, 0), core.NewVec3(0, -1, 0), true, 2},
		{"center from below", core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), true, 2},
		{"inside radius", core.NewVec3(0.6, 3, 0.6), core.NewVec3(0, -1, 0), true, 2},
		{"outside radius", core.NewVec3(0.8, 3, 0.8), core.NewVec3(0, -1, 0), false, 0},
		{"parallel", core.NewVec3(0, 1, -3), core.NewVec3(0, 0, 1), false, 0},
		{"pointing away", core.NewVec3(0, 3, 0), core.NewVec3(0, 1, 0), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			si, hit := disc.Intersect(core.NewRay(tt.origin, tt.direction))
			if hit != tt.hit {
				t.Fatalf("Expected hit=%t, got %t", tt.hit, hit)
			}
			if !hit {
				return
			}
			if math.Abs(si.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, si.T)
			}
			if !vecNear(si.Normal, core.NewVec3(0, 1, 0), 1e-12) {
				t.Errorf("Normal should stay (0, 1, 0), got %v", si.Normal)
			}
			if si.UV.X < 0 || si.UV.X > 1 || si.UV.Y < 0 || si.UV.Y > 1 {
				t.Errorf("UV out of range: %v", si.UV)
			}
		})
	}
}

func TestDisc_SamplePosition(t *testing.T) {
	disc := NewDisc(core.NewVec3(1, 2, 3), core.NewVec3(1, 1, 0), 2.0, nil)
	area := 4 * math.Pi
	if math.Abs(disc.SurfaceArea()-area) > 1e-12 {
		t.Errorf("Expected area %f, got %f", area, disc.SurfaceArea())
	}

	bounds := disc.BoundingBox()
	for _, sample := range []core.Vec2{{X: 0.5, Y: 0.5}, {X: 0, Y: 0}, {X: 0.99, Y: 0.2}, {X: 0.3, Y: 0.999}} {
		ps := disc.SamplePosition(0, sample)
		offset := ps.Point.Subtract(disc.Center)
		if math.Abs(offset.Dot(disc.Normal)) > 1e-9 {
			t.Errorf("Sample %v is off the disc plane", sample)
		}
		if offset.Length() > disc.Radius+1e-9 {
			t.Errorf("Sample %v is outside the radius: %f", sample, offset.Length())
		}
		if !bounds.Contains(ps.Point) {
			t.Errorf("Sample %v outside bounding box", sample)
		}
		if math.Abs(ps.PDF-1/area) > 1e-12 || ps.PDF != disc.PDFPosition(ps) {
			t.Errorf("Expected pdf %f, got %f", 1/area, ps.PDF)
		}
	}
}
