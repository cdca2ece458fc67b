package renderer

import (
	"image"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/imageblock"
	"github.com/df07/go-tiled-pathtracer/pkg/scheduler"
)

// renderTiled lets workers pull blocks from a spiral until it is exhausted
// or the render is stopped
func (r *Renderer) renderTiled(rc *RenderContext, scene core.Scene, sensor Sensor, seed uint64, spp, passes int) error {
	film := sensor.Film()
	spiral := scheduler.NewSpiral(film.CropSize(), film.CropOffset(), r.config.BlockSize, passes)
	total := spiral.BlockCount() * passes
	workers := max(1, min(r.workers(), total))

	r.stats.Workers = workers
	r.stats.TotalBlocks = total
	r.logger.Infof("Tiling into %d blocks of %dpx over %d workers", total, spiral.BlockSize(), workers)

	return runWorkers(rc, workers, func(id int) error {
		// Per worker sampler and block, reused across tiles
		sampler := sensor.Sampler().Clone()
		sampler.SetSampleCount(spp)
		block := r.newBlock(film, image.Pt(spiral.BlockSize(), spiral.BlockSize()))

		for {
			b, ok := spiral.NextBlock()
			if !ok || rc.ShouldStop() {
				return nil
			}

			block.SetSize(b.Size)
			block.SetOffset(b.Offset)
			block.Clear()
			sampler.Seed(streamKey(seed, uint64(b.ID)))

			r.renderBlock(rc, scene, sensor, sampler, block, b.Bounds(), spp)

			// Partial blocks of a stopped render are merged too
			if err := film.Put(block); err != nil {
				return err
			}
			done := rc.blocks.Add(1)
			rc.progress.Update(int(done), total, rc.Elapsed())
		}
	})
}

// renderBlock takes spp samples in every pixel of bounds. Stopping is
// checked between pixels.
func (r *Renderer) renderBlock(rc *RenderContext, scene core.Scene, sensor Sensor, sampler core.Sampler, block *imageblock.ImageBlock, bounds image.Rectangle, spp int) {
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if rc.ShouldStop() {
				return
			}
			pos := image.Pt(x, y)
			for i := 0; i < spp; i++ {
				if !r.RenderSample(scene, sensor, sampler, block, pos) {
					rc.rejected.Add(1)
				}
				sampler.Advance()
			}
			rc.samples.Add(int64(spp))
		}
	}
}
