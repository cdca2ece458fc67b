package material

import (
	"math"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material. It reflects on
// whichever side of the surface the light arrives from.
type Lambertian struct {
	Albedo ColorSource // Base color/reflectance (can be solid or textured)
}

// NewLambertian creates a new lambertian material with solid color
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: NewSolidColor(albedo)}
}

// NewTexturedLambertian creates a new lambertian material with texture
func NewTexturedLambertian(albedoTexture ColorSource) *Lambertian {
	return &Lambertian{Albedo: albedoTexture}
}

// Flags reports a single diffuse reflection lobe
func (l *Lambertian) Flags() core.BSDFFlags {
	return core.DiffuseReflection
}

// Sample draws a cosine-weighted direction on the side of Wi
func (l *Lambertian) Sample(ctx core.BSDFContext, si *core.SurfaceInteraction, sample1 float64, sample2 core.Vec2) (core.BSDFSample, core.Vec3) {
	cosThetaI := core.CosTheta(si.Wi)
	if !ctx.IsEnabled(core.DiffuseReflection, 0) || cosThetaI == 0 {
		return core.BSDFSample{}, core.Vec3{}
	}

	wo := core.SquareToCosineHemisphere(sample2)
	if cosThetaI < 0 {
		wo.Z = -wo.Z
	}

	bs := core.NewBSDFSample(wo)
	bs.PDF = math.Abs(wo.Z) / math.Pi
	bs.SampledType = core.DiffuseReflection
	if bs.PDF == 0 {
		return core.BSDFSample{}, core.Vec3{}
	}

	// albedo/π · cos / (cos/π)
	return bs, l.Albedo.Evaluate(si.UV, si.Point)
}

// EvalPDF returns albedo/π · |cos| and the cosine hemisphere density
func (l *Lambertian) EvalPDF(ctx core.BSDFContext, si *core.SurfaceInteraction, wo core.Vec3) (core.Vec3, float64) {
	if !ctx.IsEnabled(core.DiffuseReflection, 0) || si.Wi.Z*wo.Z <= 0 {
		return core.Vec3{}, 0
	}
	cosThetaO := math.Abs(wo.Z)
	albedo := l.Albedo.Evaluate(si.UV, si.Point)
	return albedo.Multiply(cosThetaO / math.Pi), cosThetaO / math.Pi
}
