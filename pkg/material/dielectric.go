package material

import (
	"math"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// Dielectric represents a smooth interface between two transparent media
// like air and glass. Light is either reflected or refracted, chosen in
// proportion to the Fresnel reflectance.
type Dielectric struct {
	RefractiveIndex float64 // Interior over exterior index (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Flags reports delta reflection and delta transmission lobes
func (d *Dielectric) Flags() core.BSDFFlags {
	return core.DeltaReflection | core.DeltaTransmission
}

// Sample picks reflection or refraction. The returned Eta is the relative
// index along the sampled direction, 1 for reflection.
func (d *Dielectric) Sample(ctx core.BSDFContext, si *core.SurfaceInteraction, sample1 float64, sample2 core.Vec2) (core.BSDFSample, core.Vec3) {
	hasReflection := ctx.IsEnabled(core.DeltaReflection, 0)
	hasTransmission := ctx.IsEnabled(core.DeltaTransmission, 1)
	if !hasReflection && !hasTransmission {
		return core.BSDFSample{}, core.Vec3{}
	}

	cosThetaI := core.CosTheta(si.Wi)
	r, cosThetaT, etaIT, etaTI := Fresnel(cosThetaI, d.RefractiveIndex)
	t := 1 - r

	var selectedR bool
	var pdf, weight float64
	switch {
	case hasReflection && hasTransmission:
		selectedR = sample1 <= r
		if selectedR {
			pdf = r
		} else {
			pdf = t
		}
		weight = 1
	case hasReflection:
		selectedR, pdf, weight = true, 1, r
	default:
		selectedR, pdf, weight = false, 1, t
	}
	if pdf == 0 {
		return core.BSDFSample{}, core.Vec3{}
	}

	var bs core.BSDFSample
	if selectedR {
		bs = core.NewBSDFSample(reflect(si.Wi))
		bs.SampledType = core.DeltaReflection
		bs.SampledComponent = 0
	} else {
		bs = core.NewBSDFSample(refract(si.Wi, cosThetaT, etaTI))
		bs.SampledType = core.DeltaTransmission
		bs.SampledComponent = 1
		bs.Eta = etaIT
		// Radiance is compressed into the smaller solid angle
		if ctx.Mode == core.Radiance {
			weight *= etaTI * etaTI
		}
	}
	bs.PDF = pdf
	return bs, core.Splat(weight)
}

// EvalPDF is zero everywhere: both lobes are Dirac distributions
func (d *Dielectric) EvalPDF(ctx core.BSDFContext, si *core.SurfaceInteraction, wo core.Vec3) (core.Vec3, float64) {
	return core.Vec3{}, 0
}

// Fresnel computes the unpolarized Fresnel reflectance of a smooth
// interface. cosThetaI is signed: negative values mean the light arrives
// from inside. It returns the reflectance, the signed cosine of the
// transmitted direction, and the relative indices eta_it and eta_ti.
// Total internal reflection yields a reflectance of 1.
func Fresnel(cosThetaI, eta float64) (r, cosThetaT, etaIT, etaTI float64) {
	outside := cosThetaI >= 0
	etaIT, etaTI = eta, 1/eta
	if !outside {
		etaIT, etaTI = etaTI, etaIT
	}

	// Snell's law
	cosThetaTSqr := 1 - etaTI*etaTI*(1-cosThetaI*cosThetaI)
	cosThetaIAbs := math.Abs(cosThetaI)
	cosThetaTAbs := math.Sqrt(math.Max(0, cosThetaTSqr))

	switch {
	case eta == 1:
		r = 0
	case cosThetaIAbs == 0:
		r = 1
	default:
		aS := (-etaIT*cosThetaTAbs + cosThetaIAbs) / (etaIT*cosThetaTAbs + cosThetaIAbs)
		aP := (-etaIT*cosThetaIAbs + cosThetaTAbs) / (etaIT*cosThetaIAbs + cosThetaTAbs)
		r = 0.5 * (aS*aS + aP*aP)
	}

	// Transmitted direction lies on the opposite side
	cosThetaT = -math.Copysign(cosThetaTAbs, cosThetaI)
	return r, cosThetaT, etaIT, etaTI
}

// refract bends a local direction through the interface
func refract(wi core.Vec3, cosThetaT, etaTI float64) core.Vec3 {
	return core.NewVec3(-etaTI*wi.X, -etaTI*wi.Y, cosThetaT)
}
