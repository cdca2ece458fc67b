package sampler

import (
	"pgregory.net/rand"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// Independent draws uncorrelated uniform variates
type Independent struct {
	base
	rng *rand.Rand
}

// NewIndependent creates an independent sampler. baseSeed offsets every
// key passed to Seed.
func NewIndependent(sampleCount int, baseSeed uint64) *Independent {
	s := &Independent{base: newBase(sampleCount, baseSeed)}
	s.Seed(0)
	return s
}

// Seed resets the stream to the one identified by key
func (s *Independent) Seed(key uint64) {
	s.reset(key)
	s.rng = rand.New(mixSeed(s.baseSeed, key))
}

// Next1D returns a variate in [0, 1)
func (s *Independent) Next1D() float64 {
	s.dimension++
	return s.rng.Float64()
}

// Next2D returns a pair of variates in [0, 1)^2
func (s *Independent) Next2D() core.Vec2 {
	s.dimension += 2
	return core.NewVec2(s.rng.Float64(), s.rng.Float64())
}

// Clone returns an unseeded copy with the same configuration
func (s *Independent) Clone() core.Sampler {
	return NewIndependent(s.sampleCount, s.baseSeed)
}
