// Package film holds the persistent framebuffer that completed image blocks
// are merged into.
package film

import (
	"image"
	"sync"

	"github.com/pkg/errors"

	"github.com/df07/go-tiled-pathtracer/pkg/filter"
	"github.com/df07/go-tiled-pathtracer/pkg/imageblock"
)

var (
	ErrNotPrepared      = errors.New("film: not prepared")
	ErrMissingWeight    = errors.New("film: last channel must be the weight channel")
	ErrInvalidCrop      = errors.New("film: crop window outside film")
	ErrUnsupportedImage = errors.New("film: unsupported output format")
)

// WeightChannel is the name of the channel holding accumulated filter weights
const WeightChannel = "W"

// HDRFilm accumulates high dynamic range radiance in a full-frame image
// block. Put is safe for concurrent use.
type HDRFilm struct {
	size       image.Point
	cropOffset image.Point
	cropSize   image.Point
	filter     filter.Filter

	mu       sync.Mutex
	channels []string
	storage  *imageblock.ImageBlock
}

// Option configures an HDRFilm
type Option func(*HDRFilm)

// WithCrop restricts rendering to a window of the film
func WithCrop(offset, size image.Point) Option {
	return func(f *HDRFilm) {
		f.cropOffset = offset
		f.cropSize = size
	}
}

// New creates a film of the given size. The reconstruction filter is used
// by the image blocks the renderer splats into.
func New(size image.Point, f filter.Filter, opts ...Option) (*HDRFilm, error) {
	film := &HDRFilm{
		size:     size,
		cropSize: size,
		filter:   f,
	}
	for _, opt := range opts {
		opt(film)
	}

	crop := image.Rectangle{Min: film.cropOffset, Max: film.cropOffset.Add(film.cropSize)}
	if crop.Empty() || !crop.In(image.Rectangle{Max: size}) {
		return nil, errors.Wrapf(ErrInvalidCrop, "crop %v, film %v", crop, size)
	}
	return film, nil
}

// Size is the full film resolution
func (f *HDRFilm) Size() image.Point { return f.size }

// CropSize is the size of the rendered window
func (f *HDRFilm) CropSize() image.Point { return f.cropSize }

// CropOffset is the position of the rendered window
func (f *HDRFilm) CropOffset() image.Point { return f.cropOffset }

// Filter is the reconstruction filter
func (f *HDRFilm) Filter() filter.Filter { return f.filter }

// Channels returns the channel names passed to Prepare
func (f *HDRFilm) Channels() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.channels...)
}

// Prepare allocates and clears the storage for the given channels. The
// last channel must be the weight channel.
func (f *HDRFilm) Prepare(channels []string) error {
	if len(channels) == 0 || channels[len(channels)-1] != WeightChannel {
		return errors.Wrapf(ErrMissingWeight, "channels %v", channels)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.channels = append([]string(nil), channels...)
	f.storage = imageblock.New(f.cropSize, len(channels), f.filter, imageblock.WithBorder(false))
	f.storage.SetOffset(f.cropOffset)
	return nil
}

// Put merges a block into the film. This is the only point where rendering
// workers share mutable state.
func (f *HDRFilm) Put(block *imageblock.ImageBlock) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.storage == nil {
		return ErrNotPrepared
	}
	return f.storage.PutBlock(block)
}

// Clear resets the accumulated values
func (f *HDRFilm) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.storage != nil {
		f.storage.Clear()
	}
}

// Develop normalizes the accumulated channels by the weight channel and
// returns the crop window as an image. Pixels without weight are zero.
func (f *HDRFilm) Develop() (*Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.storage == nil {
		return nil, ErrNotPrepared
	}

	channels := len(f.channels)
	out := NewImage(f.cropSize, f.channels[:channels-1])
	data := f.storage.Data()
	for i, o := 0, 0; i < len(data); i, o = i+channels, o+channels-1 {
		w := data[i+channels-1]
		if w == 0 {
			continue
		}
		inv := 1 / w
		for k := 0; k < channels-1; k++ {
			out.Pix[o+k] = data[i+k] * inv
		}
	}
	return out, nil
}
