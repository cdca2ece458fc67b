package material

import (
	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// Metal represents a perfect mirror tinted by its albedo
type Metal struct {
	Albedo core.Vec3 // Metal color
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3) *Metal {
	return &Metal{Albedo: albedo}
}

// Flags reports a single delta reflection lobe
func (m *Metal) Flags() core.BSDFFlags {
	return core.DeltaReflection
}

// Sample reflects Wi about the shading normal
func (m *Metal) Sample(ctx core.BSDFContext, si *core.SurfaceInteraction, sample1 float64, sample2 core.Vec2) (core.BSDFSample, core.Vec3) {
	if !ctx.IsEnabled(core.DeltaReflection, 0) || si.Wi.Z == 0 {
		return core.BSDFSample{}, core.Vec3{}
	}
	bs := core.NewBSDFSample(reflect(si.Wi))
	bs.PDF = 1
	bs.SampledType = core.DeltaReflection
	return bs, m.Albedo
}

// EvalPDF is zero everywhere: a Dirac lobe cannot be evaluated
func (m *Metal) EvalPDF(ctx core.BSDFContext, si *core.SurfaceInteraction, wo core.Vec3) (core.Vec3, float64) {
	return core.Vec3{}, 0
}

// reflect mirrors a local direction about +Z
func reflect(wi core.Vec3) core.Vec3 {
	return core.NewVec3(-wi.X, -wi.Y, wi.Z)
}
