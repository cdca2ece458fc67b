package core

// BSDFFlags classifies the lobes of a scattering model
type BSDFFlags uint32

const (
	DiffuseReflection BSDFFlags = 1 << iota
	DiffuseTransmission
	GlossyReflection
	GlossyTransmission
	DeltaReflection
	DeltaTransmission

	// Smooth lobes have a density that can be evaluated for any direction
	Smooth = DiffuseReflection | DiffuseTransmission | GlossyReflection | GlossyTransmission
	// Delta lobes are Dirac distributions
	Delta = DeltaReflection | DeltaTransmission
	// All lobes
	AllLobes = Smooth | Delta
)

// HasSmooth reports whether any lobe can be evaluated directly
func (f BSDFFlags) HasSmooth() bool {
	return f&Smooth != 0
}

// HasDelta reports whether any lobe is a Dirac distribution
func (f BSDFFlags) HasDelta() bool {
	return f&Delta != 0
}

// TransportMode selects radiance or importance transport
type TransportMode int

const (
	Radiance TransportMode = iota
	Importance
)

// BSDFContext carries the transport mode and the lobes a query may use
type BSDFContext struct {
	Mode      TransportMode
	TypeMask  BSDFFlags
	Component int // -1 selects every component
}

// NewBSDFContext returns a radiance context enabling every lobe
func NewBSDFContext() BSDFContext {
	return BSDFContext{Mode: Radiance, TypeMask: AllLobes, Component: -1}
}

// IsEnabled reports whether a lobe of the given type may be used
func (ctx BSDFContext) IsEnabled(lobe BSDFFlags, component int) bool {
	return ctx.TypeMask&lobe != 0 && (ctx.Component == -1 || ctx.Component == component)
}

// BSDFSample is the outcome of sampling a scattering model
type BSDFSample struct {
	Wo               Vec3      // Sampled direction in the local shading frame
	PDF              float64   // Solid angle density, 1 for delta lobes
	Eta              float64   // Relative index of refraction along the sampled direction
	SampledType      BSDFFlags // Lobe that produced the sample
	SampledComponent int
}

// NewBSDFSample returns an empty sample with unit eta
func NewBSDFSample(wo Vec3) BSDFSample {
	return BSDFSample{Wo: wo, Eta: 1}
}

// IsDelta reports whether the sample came from a Dirac lobe
func (bs BSDFSample) IsDelta() bool {
	return bs.SampledType&Delta != 0
}

// EmitterFlags classifies light sources
type EmitterFlags uint32

const (
	EmitterDeltaPosition EmitterFlags = 1 << iota
	EmitterDeltaDirection
	EmitterInfinite
	EmitterSurface
)

// IsDelta reports whether the emitter is sampled from a degenerate distribution
func (f EmitterFlags) IsDelta() bool {
	return f&(EmitterDeltaPosition|EmitterDeltaDirection) != 0
}
