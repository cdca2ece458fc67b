// Package sampler provides the per-pixel random number streams used by the
// render driver. Every stream is fully determined by the base seed and the
// key passed to Seed.
package sampler

import (
	"github.com/pkg/errors"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// ErrUnknownSampler is returned by New for unsupported sampler names
var ErrUnknownSampler = errors.New("sampler: unknown sampler")

// New creates a sampler by name
func New(name string, sampleCount int, baseSeed uint64) (core.Sampler, error) {
	switch name {
	case "", "independent":
		return NewIndependent(sampleCount, baseSeed), nil
	case "stratified":
		return NewStratified(sampleCount, baseSeed), nil
	}
	return nil, errors.Wrapf(ErrUnknownSampler, "%q", name)
}

// base holds the bookkeeping shared by all samplers
type base struct {
	sampleCount   int
	wavefrontSize int
	baseSeed      uint64
	key           uint64
	sampleIndex   int
	dimension     int
}

func newBase(sampleCount int, baseSeed uint64) base {
	return base{
		sampleCount:   max(1, sampleCount),
		wavefrontSize: 1,
		baseSeed:      baseSeed,
	}
}

func (b *base) reset(key uint64) {
	b.key = key
	b.sampleIndex = 0
	b.dimension = 0
}

// Advance moves to the next sample
func (b *base) Advance() {
	b.sampleIndex++
	b.dimension = 0
}

// SampleCount is the number of samples per pixel
func (b *base) SampleCount() int {
	return b.sampleCount
}

// SetSampleCount changes the number of samples per pixel
func (b *base) SetSampleCount(n int) {
	b.sampleCount = max(1, n)
}

// WavefrontSize is the number of lanes a seed covers
func (b *base) WavefrontSize() int {
	return b.wavefrontSize
}

// SetWavefrontSize changes the number of lanes a seed covers
func (b *base) SetWavefrontSize(n int) {
	b.wavefrontSize = max(1, n)
}

// mixSeed combines a base seed and a key with the splitmix64 finalizer so
// that neighbouring keys give unrelated streams
func mixSeed(baseSeed, key uint64) uint64 {
	z := baseSeed + (key+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
