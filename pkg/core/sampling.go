package core

import (
	"math"
)

// SquareToCosineHemisphere maps a uniform sample to a cosine-weighted
// direction around +Z
func SquareToCosineHemisphere(sample Vec2) Vec3 {
	p := SquareToUniformDiskConcentric(sample)
	z := math.Sqrt(math.Max(0, 1-p.X*p.X-p.Y*p.Y))
	return NewVec3(p.X, p.Y, z)
}

// SquareToCosineHemispherePDF is the density of SquareToCosineHemisphere
func SquareToCosineHemispherePDF(v Vec3) float64 {
	if v.Z <= 0 {
		return 0
	}
	return v.Z / math.Pi
}

// SampleCosineHemisphere generates a cosine-weighted direction in the hemisphere around normal
func SampleCosineHemisphere(normal Vec3, sample Vec2) Vec3 {
	return NewFrame(normal).ToWorld(SquareToCosineHemisphere(sample))
}

// SquareToUniformSphere generates a uniform direction on the unit sphere
func SquareToUniformSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// UniformSpherePDF is the density of SquareToUniformSphere
func UniformSpherePDF() float64 {
	return 1 / (4 * math.Pi)
}

// SquareToUniformCone samples a direction uniformly within a cone around +Z
func SquareToUniformCone(sample Vec2, cosCutoff float64) Vec3 {
	cosTheta := 1.0 - sample.X*(1.0-cosCutoff)
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))
	phi := 2.0 * math.Pi * sample.Y
	return NewVec3(sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta)
}

// UniformConePDF is the density of SquareToUniformCone
func UniformConePDF(cosCutoff float64) float64 {
	return 1 / (2 * math.Pi * (1 - cosCutoff))
}

// SquareToUniformDiskConcentric maps the square to the unit disk with
// Shirley's concentric mapping
func SquareToUniformDiskConcentric(sample Vec2) Vec2 {
	// Map sample to [-1,1]² and handle degeneracy at the origin
	x := 2*sample.X - 1
	y := 2*sample.Y - 1
	if x == 0 && y == 0 {
		return Vec2{}
	}

	var theta, r float64
	if math.Abs(x) > math.Abs(y) {
		r = x
		theta = math.Pi / 4 * (y / x)
	} else {
		r = y
		theta = math.Pi/2 - math.Pi/4*(x/y)
	}

	return NewVec2(r*math.Cos(theta), r*math.Sin(theta))
}

// SquareToTent maps a uniform sample to the tent distribution on [-1, 1]^2
func SquareToTent(sample Vec2) Vec2 {
	return NewVec2(intervalToTent(sample.X), intervalToTent(sample.Y))
}

func intervalToTent(u float64) float64 {
	u = 2*u - 1
	if u < 0 {
		return math.Sqrt(1+u) - 1
	}
	return 1 - math.Sqrt(1-u)
}

// MISWeight combines two competing sampling techniques with the
// power heuristic (exponent 2). It is 0 when both densities are 0.
func MISWeight(pdfA, pdfB float64) float64 {
	a := pdfA * pdfA
	b := pdfB * pdfB
	if a+b == 0 {
		return 0
	}
	w := a / (a + b)
	if !isFinite(w) {
		return 0
	}
	return w
}

// PowerHeuristic implements the power heuristic with beta=2 for MIS
func PowerHeuristic(nf int, fPdf float64, ng int, gPdf float64) float64 {
	return MISWeight(float64(nf)*fPdf, float64(ng)*gPdf)
}

// BalanceHeuristic implements the balance heuristic for MIS
func BalanceHeuristic(nf int, fPdf float64, ng int, gPdf float64) float64 {
	f := float64(nf) * fPdf
	g := float64(ng) * gPdf
	if f+g == 0 {
		return 0
	}
	return f / (f + g)
}
