package integrator

import (
	"testing"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/sampler"
)

func TestDirectIntegratorCombinesStrategies(t *testing.T) {
	light := &fakeEmitter{radiance: core.Splat(2)}
	bsdf := &fakeBSDF{
		flags:     core.DiffuseReflection,
		weight:    core.Splat(0.5),
		pdf:       0.25,
		evalValue: core.Splat(0.3),
		evalPDF:   0.25,
	}
	nee := core.DirectionSample{Direction: core.NewVec3(0, 0, 1)}
	nee.PDF = 0.75

	tests := []struct {
		name             string
		emitter, bsdfSPP int
		expect           float64
	}{
		{
			name: "emitter only", emitter: 1, bsdfSPP: 0,
			expect: 0.3 * 4,
		},
		{
			name: "bsdf only", emitter: 0, bsdfSPP: 1,
			expect: 0.5 * 2,
		},
		{
			name: "both", emitter: 1, bsdfSPP: 1,
			expect: 0.3*4*core.MISWeight(0.75*0.5, 0.25*0.5) + 0.5*2*core.MISWeight(0.25*0.5, 0.75*0.5),
		},
		{
			name: "several", emitter: 2, bsdfSPP: 2,
			expect: 0.3*4*core.MISWeight(0.75*0.5, 0.25*0.5) + 0.5*2*core.MISWeight(0.25*0.5, 0.75*0.5),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Every BSDF sample hits the emitter after the primary hit
			hits := []*fakeShape{{bsdf: bsdf}}
			for i := 0; i < tt.bsdfSPP; i++ {
				hits = append(hits, &fakeShape{emitter: light})
			}
			sc := &fakeScene{hits: hits, nee: nee, neeValue: core.Splat(4), emitterPDF: 0.75}

			d := NewDirectIntegrator(tt.emitter, tt.bsdfSPP, false)
			result, valid := d.Sample(sc, sampler.NewIndependent(1, 0), primaryRay())
			if !approxEqual(result, core.Splat(tt.expect)) {
				t.Errorf("expected %g, got %v", tt.expect, result)
			}
			if !valid {
				t.Error("expected valid primary ray")
			}
		})
	}
}

func TestDirectIntegratorNeverBounces(t *testing.T) {
	light := &fakeEmitter{radiance: core.Splat(1)}
	sc := &fakeScene{hits: []*fakeShape{{emitter: light}}}
	d := NewDirectIntegrator(0, 0, false)

	state := d.Begin(sc, sampler.NewIndependent(1, 0), primaryRay())
	if state.Active {
		t.Error("direct integrator left the path active")
	}
	if state.Result != core.Splat(1) {
		t.Errorf("expected visible emission, got %v", state.Result)
	}
	if d.EmitterSamples != 1 || d.BSDFSamples != 1 {
		t.Errorf("expected one sample per strategy by default, got %d/%d", d.EmitterSamples, d.BSDFSamples)
	}
}
