package filter

import (
	"errors"
	"math"
	"testing"
)

func TestFilterSupport(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		radius float64
	}{
		{name: "box", filter: NewBox(0), radius: 0.5},
		{name: "tent", filter: NewTent(0), radius: 1},
		{name: "gaussian", filter: NewGaussian(0), radius: 2},
		{name: "mitchell", filter: NewMitchell(1.0/3.0, 1.0/3.0), radius: 2},
		{name: "catmullrom", filter: NewCatmullRom(), radius: 2},
		{name: "lanczos", filter: NewLanczos(0), radius: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Radius(); got != tt.radius {
				t.Fatalf("radius %g, expected %g", got, tt.radius)
			}
			if v := tt.filter.Eval(tt.radius + 0.01); v != 0 {
				t.Errorf("expected zero outside support, got %g", v)
			}
			if v := tt.filter.Eval(0); v <= 0 {
				t.Errorf("expected positive center weight, got %g", v)
			}
			for _, x := range []float64{0.1, 0.3, 0.7, 1.2} {
				if math.Abs(tt.filter.Eval(x)-tt.filter.Eval(-x)) > 1e-12 {
					t.Errorf("filter not symmetric at %g", x)
				}
			}
		})
	}
}

func TestTentValues(t *testing.T) {
	f := NewTent(1)
	if v := f.Eval(0.5); math.Abs(v-0.5) > 1e-12 {
		t.Errorf("tent(0.5) = %g, expected 0.5", v)
	}
	if v := f.Eval(1); v != 0 {
		t.Errorf("tent(1) = %g, expected 0", v)
	}
}

func TestGaussianReachesZero(t *testing.T) {
	f := NewGaussian(0.5)
	if v := f.Eval(f.Radius()); math.Abs(v) > 1e-12 {
		t.Errorf("expected zero at the radius, got %g", v)
	}
}

func TestMitchellPartitionOfUnity(t *testing.T) {
	// Integer shifts of the Mitchell kernel sum to one
	f := NewCatmullRom()
	for _, offset := range []float64{0, 0.25, 0.5} {
		sum := 0.0
		for k := -3; k <= 3; k++ {
			sum += f.Eval(float64(k) + offset)
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("shifted sum at offset %g is %g", offset, sum)
		}
	}
}

func TestNewFilter(t *testing.T) {
	for _, name := range []string{"box", "tent", "gaussian", "mitchell", "catmullrom", "lanczos", ""} {
		if _, err := New(name, 0); err != nil {
			t.Errorf("New(%q) failed: %v", name, err)
		}
	}
	if _, err := New("sinc", 1); !errors.Is(err, ErrUnknownFilter) {
		t.Errorf("expected ErrUnknownFilter, got %v", err)
	}
}
