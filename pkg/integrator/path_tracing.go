package integrator

import (
	"math"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// maxContinuation caps the Russian roulette survival probability so that
// paths stuck in total internal reflection still terminate
const maxContinuation = 0.95

// PathIntegrator implements unidirectional path tracing with next event
// estimation, multiple importance sampling and Russian roulette
type PathIntegrator struct {
	MaxDepth     int
	RRDepth      int
	HideEmitters bool
}

// NewPathIntegrator creates a new path tracing integrator
func NewPathIntegrator(maxDepth, rrDepth int, hideEmitters bool) *PathIntegrator {
	return &PathIntegrator{
		MaxDepth:     maxDepth,
		RRDepth:      rrDepth,
		HideEmitters: hideEmitters,
	}
}

// Sample traces a full path for the given ray
func (pt *PathIntegrator) Sample(scene core.Scene, sampler core.Sampler, ray core.Ray) (core.Vec3, bool) {
	state := pt.Begin(scene, sampler, ray)
	for state.Active {
		pt.Bounce(scene, sampler, &state)
	}
	return state.Result, state.ValidRay
}

// Begin intersects the primary ray. Emitters seen directly are added with
// weight one since no other technique can produce them.
func (pt *PathIntegrator) Begin(scene core.Scene, sampler core.Sampler, ray core.Ray) PathState {
	state := newPathState(ray)
	if pt.MaxDepth == 0 {
		return state
	}

	state.Interaction = scene.RayIntersect(ray)
	state.ValidRay = state.Interaction.IsValid()
	state.Active = true

	if !pt.HideEmitters {
		if emitter := state.Interaction.Emitter(scene); emitter != nil {
			state.Result = emitter.Eval(&state.Interaction)
		}
	}

	pt.settle(sampler, &state)
	return state
}

// Bounce samples the emitters and the BSDF at the current vertex and moves
// the path to the next one
func (pt *PathIntegrator) Bounce(scene core.Scene, sampler core.Sampler, state *PathState) {
	if !state.Active {
		return
	}

	si := &state.Interaction
	bsdf := si.BSDF()
	if bsdf == nil {
		state.Active = false
		return
	}
	ctx := core.NewBSDFContext()

	// Next event estimation
	if bsdf.Flags().HasSmooth() {
		ds, emitterValue := scene.SampleEmitterDirection(si, sampler.Next2D(), true)
		if ds.IsActive() {
			bsdfValue, bsdfPDF := bsdf.EvalPDF(ctx, si, si.ToLocal(ds.Direction))
			weight := 1.0
			if !ds.Delta {
				weight = core.MISWeight(ds.PDF, bsdfPDF)
			}
			state.Result = state.Result.Add(
				state.Throughput.MultiplyVec(bsdfValue).MultiplyVec(emitterValue).Multiply(weight))
		}
	}

	// BSDF sampling
	bs, bsdfWeight := bsdf.Sample(ctx, si, sampler.Next1D(), sampler.Next2D())
	state.Throughput = state.Throughput.MultiplyVec(bsdfWeight)
	if state.Throughput.IsBlack() || !state.Throughput.IsFinite() {
		state.Active = false
		return
	}
	state.Eta *= bs.Eta

	state.Ray = si.SpawnRay(si.ToWorld(bs.Wo))
	next := scene.RayIntersect(state.Ray)

	// Emitter hit by the BSDF sample, weighted against emitter sampling
	if emitter := next.Emitter(scene); emitter != nil {
		emitterPDF := 0.0
		if !bs.IsDelta() {
			ds := core.NewDirectionSampleFromHit(&next, si, emitter)
			emitterPDF = scene.PDFEmitterDirection(si, ds)
		}
		weight := core.MISWeight(bs.PDF, emitterPDF)
		state.Result = state.Result.Add(
			state.Throughput.MultiplyVec(emitter.Eval(&next)).Multiply(weight))
	}

	state.Interaction = next
	state.Depth++
	pt.settle(sampler, state)
}

// settle applies the termination rules at a freshly reached vertex
func (pt *PathIntegrator) settle(sampler core.Sampler, state *PathState) {
	state.Active = state.Active && state.Interaction.IsValid()

	if state.Active && state.Depth > pt.RRDepth {
		state.Throughput, state.Active = RussianRoulette(state.Throughput, state.Eta, sampler.Next1D())
	}

	if pt.MaxDepth >= 0 && state.Depth >= pt.MaxDepth {
		state.Active = false
	}
}

// ContinuationProbability is the Russian roulette survival probability.
// The eta² factor undoes the radiance scaling at refractive boundaries so
// that paths inside dense media are not killed early.
func ContinuationProbability(throughput core.Vec3, eta float64) float64 {
	return math.Min(throughput.MaxComponent()*eta*eta, maxContinuation)
}

// RussianRoulette decides whether a path survives given a uniform variate
// u. Survivors have their throughput divided by the survival probability.
func RussianRoulette(throughput core.Vec3, eta, u float64) (core.Vec3, bool) {
	q := ContinuationProbability(throughput, eta)
	if !(u < q) {
		return throughput, false
	}
	return throughput.Multiply(1 / q), true
}
