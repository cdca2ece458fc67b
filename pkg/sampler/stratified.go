package sampler

import (
	"math"

	"pgregory.net/rand"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// Stratified jitters samples within strata. Consecutive groups of
// SampleCount samples (one pixel's worth) cover every stratum of every
// dimension exactly once, in an order permuted per group and dimension.
// The sample count is rounded up to a square so 2D strata form a grid.
type Stratified struct {
	base
	resolution int
	rng        *rand.Rand
}

// NewStratified creates a stratified sampler
func NewStratified(sampleCount int, baseSeed uint64) *Stratified {
	s := &Stratified{base: newBase(sampleCount, baseSeed)}
	s.SetSampleCount(sampleCount)
	s.Seed(0)
	return s
}

// SetSampleCount rounds n up to the next square
func (s *Stratified) SetSampleCount(n int) {
	s.resolution = int(math.Ceil(math.Sqrt(float64(max(1, n)))))
	s.sampleCount = s.resolution * s.resolution
}

// Seed resets the stream to the one identified by key
func (s *Stratified) Seed(key uint64) {
	s.reset(key)
	s.rng = rand.New(mixSeed(s.baseSeed, key))
}

// stratum returns the permuted stratum index of the current sample
func (s *Stratified) stratum() uint32 {
	group := uint64(s.sampleIndex / s.sampleCount)
	index := uint32(s.sampleIndex % s.sampleCount)
	seed := uint32(mixSeed(s.key^uint64(s.dimension)<<32, group+s.baseSeed))
	return permute(index, uint32(s.sampleCount), seed)
}

// Next1D returns a variate in [0, 1)
func (s *Stratified) Next1D() float64 {
	p := s.stratum()
	s.dimension++
	v := (float64(p) + s.rng.Float64()) / float64(s.sampleCount)
	return math.Min(v, oneMinusEpsilon)
}

// Next2D returns a pair of variates in [0, 1)^2
func (s *Stratified) Next2D() core.Vec2 {
	p := s.stratum()
	s.dimension += 2
	res := uint32(s.resolution)
	inv := 1 / float64(s.resolution)
	x := (float64(p%res) + s.rng.Float64()) * inv
	y := (float64(p/res) + s.rng.Float64()) * inv
	return core.NewVec2(math.Min(x, oneMinusEpsilon), math.Min(y, oneMinusEpsilon))
}

// Clone returns an unseeded copy with the same configuration
func (s *Stratified) Clone() core.Sampler {
	return NewStratified(s.sampleCount, s.baseSeed)
}

const oneMinusEpsilon = 0x1.fffffffffffffp-1

// permute maps i to a pseudo-random position in [0, l), a bijection for a
// fixed seed p (Kensler, "Correlated Multi-Jittered Sampling")
func permute(i, l, p uint32) uint32 {
	if l <= 1 {
		return 0
	}
	w := l - 1
	w |= w >> 1
	w |= w >> 2
	w |= w >> 4
	w |= w >> 8
	w |= w >> 16
	for {
		i ^= p
		i *= 0xe170893d
		i ^= p >> 16
		i ^= (i & w) >> 4
		i ^= p >> 8
		i *= 0x0929eb3f
		i ^= p >> 23
		i ^= (i & w) >> 1
		i *= 1 | p>>27
		i *= 0x6935fa69
		i ^= (i & w) >> 11
		i *= 0x74dcb303
		i ^= (i & w) >> 2
		i *= 0x9e501cc3
		i ^= (i & w) >> 2
		i *= 0xc860a3df
		i &= w
		i ^= i >> 5
		if i < l {
			break
		}
	}
	return (i + p%l) % l
}
