// Package imageblock implements the accumulation buffers that receive
// filtered samples. A block covers a rectangle of the image plus a border
// wide enough to hold the support of the reconstruction filter; merging
// blocks is plain addition, so blocks can be combined in any order.
package imageblock

import (
	"image"
	"math"

	"github.com/pkg/errors"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/filter"
	"github.com/df07/go-tiled-pathtracer/pkg/log"
)

var (
	ErrChannelMismatch = errors.New("imageblock: channel count mismatch")
	ErrNoFilter        = errors.New("imageblock: no reconstruction filter")
)

// filterResolution is the number of table entries per unit of filter radius
const filterResolution = 32

// epsilon keeps taps that sit exactly on the edge of the filter support out
// of the footprint
const epsilon = 1e-4

// ImageBlock is an accumulation buffer for a rectangular part of an image.
// Pixels are stored row major with interleaved channels; the last channel
// holds the accumulated filter weight.
type ImageBlock struct {
	offset     image.Point
	size       image.Point
	borderSize int
	channels   int
	data       []float64

	filter   filter.Filter
	radius   float64
	profile  []float64 // filter evaluated at filterResolution steps over [0, radius]
	weightsX []float64
	weightsY []float64

	warn          bool
	allowNegative bool
	alphaChannel  int // -1 when the block has no alpha channel
	logger        log.Logger
}

// Option configures an ImageBlock
type Option func(*ImageBlock)

// WithWarn logs a warning for every rejected sample
func WithWarn(warn bool) Option {
	return func(b *ImageBlock) { b.warn = warn }
}

// WithBorder disables the filter border when false. Blocks without a border
// drop filter overflow at their edges.
func WithBorder(border bool) Option {
	return func(b *ImageBlock) {
		if !border {
			b.borderSize = 0
		}
	}
}

// WithAlpha marks a channel as alpha, which must never be negative
func WithAlpha(channel int) Option {
	return func(b *ImageBlock) { b.alphaChannel = channel }
}

// WithAllowNegative accepts negative color values
func WithAllowNegative(allow bool) Option {
	return func(b *ImageBlock) { b.allowNegative = allow }
}

// WithLogger overrides the logger used for warnings
func WithLogger(logger log.Logger) Option {
	return func(b *ImageBlock) { b.logger = logger }
}

// BorderSize returns the border needed to hold the support of f
func BorderSize(f filter.Filter) int {
	if f == nil {
		return 0
	}
	return int(math.Ceil(f.Radius() - 0.5 - 2*epsilon))
}

// New creates a cleared block with the given interior size and channel
// count. The border is derived from the filter radius.
func New(size image.Point, channels int, f filter.Filter, opts ...Option) *ImageBlock {
	b := &ImageBlock{
		size:         size,
		channels:     channels,
		filter:       f,
		borderSize:   BorderSize(f),
		alphaChannel: -1,
		logger:       log.New("imageblock"),
	}

	if f != nil {
		b.radius = f.Radius()
		b.profile = make([]float64, filterResolution+1)
		for i := range b.profile {
			x := b.radius * float64(i) / filterResolution
			b.profile[i] = f.Eval(x)
		}
		// The last entry sits on the edge of the support
		b.profile[filterResolution] = 0

		taps := b.tapCount()
		b.weightsX = make([]float64, taps)
		b.weightsY = make([]float64, taps)
	}

	for _, opt := range opts {
		opt(b)
	}

	b.allocate()
	return b
}

func (b *ImageBlock) allocate() {
	w, h := b.size.X+2*b.borderSize, b.size.Y+2*b.borderSize
	n := max(0, w*h*b.channels)
	if cap(b.data) >= n {
		b.data = b.data[:n]
		b.Clear()
		return
	}
	b.data = make([]float64, n)
}

// tapCount is the number of pixels a splat can touch along one axis
func (b *ImageBlock) tapCount() int {
	return max(1, int(math.Ceil((b.radius-2*epsilon)*2)))
}

// evalDiscretized looks up the filter profile
func (b *ImageBlock) evalDiscretized(x float64) float64 {
	i := int(math.Abs(x) * filterResolution / b.radius)
	if i >= filterResolution {
		return 0
	}
	return b.profile[i]
}

// Offset is the position of the block interior in the full image
func (b *ImageBlock) Offset() image.Point { return b.offset }

// SetOffset moves the block within the full image
func (b *ImageBlock) SetOffset(offset image.Point) { b.offset = offset }

// Size is the interior size of the block
func (b *ImageBlock) Size() image.Point { return b.size }

// SetSize resizes the block, reusing storage when possible. The contents
// are cleared.
func (b *ImageBlock) SetSize(size image.Point) {
	if size == b.size {
		return
	}
	b.size = size
	b.allocate()
}

// BorderSize is the number of extra pixels on each side
func (b *ImageBlock) BorderSize() int { return b.borderSize }

// ChannelCount is the number of channels per pixel
func (b *ImageBlock) ChannelCount() int { return b.channels }

// Filter is the reconstruction filter used by Put
func (b *ImageBlock) Filter() filter.Filter { return b.filter }

// Warn reports whether rejected samples are logged
func (b *ImageBlock) Warn() bool { return b.warn }

// SetWarn toggles logging of rejected samples
func (b *ImageBlock) SetWarn(warn bool) { b.warn = warn }

// Data returns the bordered pixel buffer
func (b *ImageBlock) Data() []float64 { return b.data }

// bordered returns the size including the border
func (b *ImageBlock) bordered() image.Point {
	return image.Pt(b.size.X+2*b.borderSize, b.size.Y+2*b.borderSize)
}

// Value returns a channel of an interior pixel, addressed relative to the
// block offset
func (b *ImageBlock) Value(x, y, channel int) float64 {
	w := b.bordered().X
	idx := ((y+b.borderSize)*w + x + b.borderSize) * b.channels
	return b.data[idx+channel]
}

// Clear resets every channel to zero
func (b *ImageBlock) Clear() {
	clear(b.data)
}

// Clone returns a deep copy of the block
func (b *ImageBlock) Clone() *ImageBlock {
	c := *b
	c.data = append([]float64(nil), b.data...)
	c.weightsX = make([]float64, len(b.weightsX))
	c.weightsY = make([]float64, len(b.weightsY))
	return &c
}

// validate reports whether a sample may be accumulated
func (b *ImageBlock) validate(values []float64) bool {
	last := len(values) - 1
	for k, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
		if v < 0 && (k == last || k == b.alphaChannel || !b.allowNegative) {
			return false
		}
	}
	return true
}

// Put splats a sample at a continuous image position (pixel centers at
// +0.5) into the block. values must hold one entry per channel; the last
// channel is the sample weight. Samples with NaN, infinite or invalid
// negative values are dropped and Put returns false.
func (b *ImageBlock) Put(pos core.Vec2, values []float64) bool {
	if len(values) != b.channels {
		return false
	}
	if !b.validate(values) {
		if b.warn {
			b.logger.Warningf("invalid sample value at (%.2f, %.2f): %v", pos.X, pos.Y, values)
		}
		return false
	}
	if b.filter == nil {
		if b.warn {
			b.logger.Warning(ErrNoFilter.Error())
		}
		return false
	}

	size := b.bordered()
	// Position within the bordered block
	px := pos.X - float64(b.offset.X-b.borderSize) - 0.5
	py := pos.Y - float64(b.offset.Y-b.borderSize) - 0.5

	if b.radius <= 0.5+epsilon {
		x := int(math.Ceil(px - 0.5))
		y := int(math.Ceil(py - 0.5))
		if x < 0 || y < 0 || x >= size.X || y >= size.Y {
			return true
		}
		idx := (y*size.X + x) * b.channels
		for k, v := range values {
			b.data[idx+k] += v
		}
		return true
	}

	loX := max(int(math.Ceil(px-b.radius)), 0)
	loY := max(int(math.Ceil(py-b.radius)), 0)
	hiX := min(int(math.Floor(px+b.radius)), size.X-1)
	hiY := min(int(math.Floor(py+b.radius)), size.Y-1)

	n := len(b.weightsX)
	for i := 0; i < n; i++ {
		b.weightsX[i] = b.evalDiscretized(float64(loX+i) - px)
		b.weightsY[i] = b.evalDiscretized(float64(loY+i) - py)
	}

	for yr := 0; yr < n; yr++ {
		y := loY + yr
		if y > hiY {
			break
		}
		for xr := 0; xr < n; xr++ {
			x := loX + xr
			if x > hiX {
				break
			}
			weight := b.weightsY[yr] * b.weightsX[xr]
			if weight == 0 {
				continue
			}
			idx := (y*size.X + x) * b.channels
			for k, v := range values {
				b.data[idx+k] += v * weight
			}
		}
	}
	return true
}

// PutBlock adds another block into this one at their relative offset.
// The parts of other that fall outside this block are dropped.
func (b *ImageBlock) PutBlock(other *ImageBlock) error {
	if other.channels != b.channels {
		return errors.Wrapf(ErrChannelMismatch, "%d != %d", other.channels, b.channels)
	}

	// Origin of other's bordered buffer within this bordered buffer
	dx := other.offset.X - other.borderSize - (b.offset.X - b.borderSize)
	dy := other.offset.Y - other.borderSize - (b.offset.Y - b.borderSize)

	src := other.bordered()
	dst := b.bordered()

	x0 := max(0, -dx)
	y0 := max(0, -dy)
	x1 := min(src.X, dst.X-dx)
	y1 := min(src.Y, dst.Y-dy)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	rowLen := (x1 - x0) * b.channels
	for y := y0; y < y1; y++ {
		srcRow := other.data[(y*src.X+x0)*b.channels:]
		dstRow := b.data[((y+dy)*dst.X+x0+dx)*b.channels:]
		for i := 0; i < rowLen; i++ {
			dstRow[i] += srcRow[i]
		}
	}
	return nil
}
