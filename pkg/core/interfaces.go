package core

// Sampler is a per-pixel stream of uniform variates. Seeding with the same
// key reproduces the same stream; clones carry independent state.
type Sampler interface {
	// Seed resets the sampler to the stream identified by key
	Seed(key uint64)
	// Next1D returns a variate in [0, 1)
	Next1D() float64
	// Next2D returns a pair of variates in [0, 1)^2
	Next2D() Vec2
	// Advance moves to the next sample of the current stream
	Advance()
	// Clone returns a sampler with the same configuration and fresh state
	Clone() Sampler
	// SampleCount is the number of samples taken per pixel
	SampleCount() int
	SetSampleCount(n int)
	// WavefrontSize is the number of lanes a seed covers
	WavefrontSize() int
	SetWavefrontSize(n int)
}

// Scene answers visibility and light sampling queries
type Scene interface {
	// RayIntersect finds the closest intersection along the ray
	RayIntersect(ray Ray) SurfaceInteraction
	// RayTest reports whether anything blocks the ray
	RayTest(ray Ray) bool
	// SampleEmitterDirection samples a direction toward an emitter and returns
	// the sample together with the emitted radiance divided by its density.
	// With testVisibility set, occluded samples return zero radiance.
	SampleEmitterDirection(ref *SurfaceInteraction, sample Vec2, testVisibility bool) (DirectionSample, Vec3)
	// PDFEmitterDirection evaluates the density of SampleEmitterDirection
	PDFEmitterDirection(ref *SurfaceInteraction, ds DirectionSample) float64
	// Environment returns the emitter seen by escaping rays, or nil
	Environment() Emitter
}

// Shape is intersectable geometry with optional BSDF and emitter
type Shape interface {
	// Intersect tests the ray against the shape within [ray.MinT, ray.MaxT]
	Intersect(ray Ray) (SurfaceInteraction, bool)
	BSDF() BSDF
	Emitter() Emitter
	// SamplePosition draws a point uniformly on the surface
	SamplePosition(time float64, sample Vec2) PositionSample
	// PDFPosition evaluates the area density of SamplePosition
	PDFPosition(ps PositionSample) float64
	SurfaceArea() float64
}

// BSDF is a scattering model. All directions are in the local shading frame.
type BSDF interface {
	Flags() BSDFFlags
	// Sample draws an outgoing direction and returns it with the weight
	// bsdf * cos / pdf
	Sample(ctx BSDFContext, si *SurfaceInteraction, sample1 float64, sample2 Vec2) (BSDFSample, Vec3)
	// EvalPDF returns bsdf * cos and the sampling density for direction wo
	EvalPDF(ctx BSDFContext, si *SurfaceInteraction, wo Vec3) (Vec3, float64)
}

// Emitter is a light source
type Emitter interface {
	Flags() EmitterFlags
	// Eval returns the radiance leaving si towards si.ToWorld(si.Wi)
	Eval(si *SurfaceInteraction) Vec3
	// SampleDirection samples a point on the emitter as seen from ref and
	// returns the emitted radiance divided by the solid angle density
	SampleDirection(ref *SurfaceInteraction, sample Vec2) (DirectionSample, Vec3)
	// PDFDirection evaluates the solid angle density of SampleDirection
	PDFDirection(ref *SurfaceInteraction, ds DirectionSample) float64
}
