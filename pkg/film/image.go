package film

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// Image is a developed floating point image with interleaved channels
type Image struct {
	Width, Height int
	Channels      []string
	Pix           []float64
}

// NewImage allocates a zeroed image
func NewImage(size image.Point, channels []string) *Image {
	return &Image{
		Width:    size.X,
		Height:   size.Y,
		Channels: append([]string(nil), channels...),
		Pix:      make([]float64, size.X*size.Y*len(channels)),
	}
}

// ChannelIndex returns the position of a named channel, or -1
func (img *Image) ChannelIndex(name string) int {
	for i, c := range img.Channels {
		if c == name {
			return i
		}
	}
	return -1
}

// At returns the channels of pixel (x, y)
func (img *Image) At(x, y int) []float64 {
	n := len(img.Channels)
	i := (y*img.Width + x) * n
	return img.Pix[i : i+n]
}

// RGB returns the first three channels of pixel (x, y) as a color
func (img *Image) RGB(x, y int) core.Vec3 {
	p := img.At(x, y)
	if len(p) < 3 {
		return core.Splat(p[0])
	}
	return core.NewVec3(p[0], p[1], p[2])
}

// Alpha returns the alpha channel of pixel (x, y), or 1 when absent
func (img *Image) Alpha(x, y int) float64 {
	a := img.ChannelIndex("A")
	if a < 0 {
		return 1
	}
	return img.At(x, y)[a]
}

// Mean returns the average color over the whole image
func (img *Image) Mean() core.Vec3 {
	var total core.Vec3
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			total = total.Add(img.RGB(x, y))
		}
	}
	return total.Multiply(1 / float64(img.Width*img.Height))
}

// toColor converts a linear color to 8 bit with exposure and gamma
func toColor(c core.Vec3, alpha, exposure, gamma float64) color.NRGBA {
	c = c.Multiply(math.Exp2(exposure)).Clamp(0, 1).GammaCorrect(gamma)
	alpha = max(0, min(1, alpha))
	return color.NRGBA{
		R: uint8(255*c.X + 0.5),
		G: uint8(255*c.Y + 0.5),
		B: uint8(255*c.Z + 0.5),
		A: uint8(255*alpha + 0.5),
	}
}

// ToNRGBA tone maps the image to 8 bits per channel. exposure is in stops.
func (img *Image) ToNRGBA(exposure, gamma float64) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			out.SetNRGBA(x, y, toColor(img.RGB(x, y), img.Alpha(x, y), exposure, gamma))
		}
	}
	return out
}

// Encode writes the tone mapped image in the format named by ext
func Encode(w io.Writer, ext string, img image.Image) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, img)
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case ".bmp":
		return bmp.Encode(w, img)
	}
	return errors.Wrapf(ErrUnsupportedImage, "%q", ext)
}

// Write tone maps img and saves it, picking the encoder from the file extension
func Write(path string, img *Image, exposure, gamma float64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "film: creating output directory")
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "film: creating output file")
	}
	defer file.Close()

	if err := Encode(file, filepath.Ext(path), img.ToNRGBA(exposure, gamma)); err != nil {
		return err
	}
	return file.Close()
}
