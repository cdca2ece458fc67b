package integrator

import (
	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// DirectIntegrator computes direct illumination only. Emitter and BSDF
// samples are combined with multiple importance sampling.
type DirectIntegrator struct {
	EmitterSamples int
	BSDFSamples    int
	HideEmitters   bool
}

// NewDirectIntegrator creates a direct illumination integrator. With both
// sample counts zero it takes one sample of each.
func NewDirectIntegrator(emitterSamples, bsdfSamples int, hideEmitters bool) *DirectIntegrator {
	if emitterSamples <= 0 && bsdfSamples <= 0 {
		emitterSamples, bsdfSamples = 1, 1
	}
	return &DirectIntegrator{
		EmitterSamples: max(0, emitterSamples),
		BSDFSamples:    max(0, bsdfSamples),
		HideEmitters:   hideEmitters,
	}
}

// Sample estimates direct illumination at the first hit
func (d *DirectIntegrator) Sample(scene core.Scene, sampler core.Sampler, ray core.Ray) (core.Vec3, bool) {
	state := d.Begin(scene, sampler, ray)
	return state.Result, state.ValidRay
}

// Begin does all the work; the returned state is never active
func (d *DirectIntegrator) Begin(scene core.Scene, sampler core.Sampler, ray core.Ray) PathState {
	state := newPathState(ray)
	si := scene.RayIntersect(ray)
	state.Interaction = si
	state.ValidRay = si.IsValid()

	if !d.HideEmitters {
		if emitter := si.Emitter(scene); emitter != nil {
			state.Result = emitter.Eval(&si)
		}
	}
	if !si.IsValid() {
		return state
	}
	bsdf := si.BSDF()
	if bsdf == nil {
		return state
	}

	total := float64(d.EmitterSamples + d.BSDFSamples)
	fracEmitter := float64(d.EmitterSamples) / total
	fracBSDF := float64(d.BSDFSamples) / total
	ctx := core.NewBSDFContext()

	if bsdf.Flags().HasSmooth() {
		for i := 0; i < d.EmitterSamples; i++ {
			ds, emitterValue := scene.SampleEmitterDirection(&si, sampler.Next2D(), true)
			if !ds.IsActive() {
				continue
			}
			bsdfValue, bsdfPDF := bsdf.EvalPDF(ctx, &si, si.ToLocal(ds.Direction))
			if ds.Delta {
				bsdfPDF = 0
			}
			weight := core.MISWeight(ds.PDF*fracEmitter, bsdfPDF*fracBSDF) / float64(d.EmitterSamples)
			state.Result = state.Result.Add(bsdfValue.MultiplyVec(emitterValue).Multiply(weight))
		}
	}

	for i := 0; i < d.BSDFSamples; i++ {
		bs, bsdfWeight := bsdf.Sample(ctx, &si, sampler.Next1D(), sampler.Next2D())
		if bsdfWeight.IsBlack() || !bsdfWeight.IsFinite() {
			continue
		}
		next := scene.RayIntersect(si.SpawnRay(si.ToWorld(bs.Wo)))
		emitter := next.Emitter(scene)
		if emitter == nil {
			continue
		}
		emitterPDF := 0.0
		if !bs.IsDelta() {
			emitterPDF = scene.PDFEmitterDirection(&si, core.NewDirectionSampleFromHit(&next, &si, emitter))
		}
		weight := core.MISWeight(bs.PDF*fracBSDF, emitterPDF*fracEmitter) / float64(d.BSDFSamples)
		state.Result = state.Result.Add(bsdfWeight.MultiplyVec(emitter.Eval(&next)).Multiply(weight))
	}
	return state
}

// Bounce is a no-op; direct illumination finishes in Begin
func (d *DirectIntegrator) Bounce(scene core.Scene, sampler core.Sampler, state *PathState) {
	state.Active = false
}
