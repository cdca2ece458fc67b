package renderer

import (
	"image"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/integrator"
)

// wavefront is the lane storage reused by every wavefront of a render.
// Global lane l traces sample l%spp of pixel l/spp of the crop window.
type wavefront struct {
	samplers []core.Sampler
	states   []integrator.PathState
	camera   []cameraSample
}

func newWavefront(base core.Sampler, lanes, spp int) *wavefront {
	wf := &wavefront{
		samplers: make([]core.Sampler, lanes),
		states:   make([]integrator.PathState, lanes),
		camera:   make([]cameraSample, lanes),
	}
	for i := range wf.samplers {
		s := base.Clone()
		s.SetSampleCount(spp)
		s.SetWavefrontSize(lanes)
		wf.samplers[i] = s
	}
	return wf
}

// maxWavefront bounds the number of lanes in flight
const maxWavefront = 1 << 18

// renderWavefront renders passes sequentially. A pass is split into
// wavefronts of at most maxWavefront lanes; every path of a wavefront
// advances one bounce at a time until no lane is active. Stopping is
// checked between wavefronts.
func (r *Renderer) renderWavefront(rc *RenderContext, scene core.Scene, sensor Sensor, seed uint64, spp, passes int) error {
	film := sensor.Film()
	crop, offset := film.CropSize(), film.CropOffset()
	lanes := crop.X * crop.Y * spp
	size := min(lanes, maxWavefront)
	workers := max(1, min(r.workers(), size))

	r.stats.Workers = workers
	r.stats.TotalBlocks = passes
	r.logger.Infof("Wavefronts of %d lanes over %d workers", size, workers)

	wf := newWavefront(sensor.Sampler(), size, spp)
	block := r.newBlock(film, crop)
	block.SetOffset(offset)

	for pass := 0; pass < passes && !rc.ShouldStop(); pass++ {
		block.Clear()
		for first := 0; first < lanes; first += size {
			if rc.ShouldStop() {
				break
			}
			n := min(size, lanes-first)
			// Lanes are seeded from a counter running over all passes
			counter := uint64(pass)*uint64(lanes) + uint64(first)
			if err := r.traceWavefront(rc, wf, scene, sensor, workers, n, first, seed, counter, spp); err != nil {
				return err
			}

			// Splatting is sequential since neighbouring lanes share pixels
			for i := 0; i < n; i++ {
				cs := wf.camera[i]
				if !put(block, cs.position, wf.states[i].Result.MultiplyVec(cs.weight), wf.states[i].ValidRay) {
					rc.rejected.Add(1)
				}
			}
			rc.samples.Add(int64(n))
		}

		// Partial passes of a stopped render are merged too
		if err := film.Put(block); err != nil {
			return err
		}
		done := rc.blocks.Add(1)
		rc.progress.Update(int(done), passes, rc.Elapsed())
	}
	return nil
}

// traceWavefront starts n lanes at global lane index first and bounces
// them until every path has terminated
func (r *Renderer) traceWavefront(rc *RenderContext, wf *wavefront, scene core.Scene, sensor Sensor, workers, n, first int, seed, counter uint64, spp int) error {
	crop, offset := sensor.Film().CropSize(), sensor.Film().CropOffset()
	states := wf.states[:n]

	err := splitLanes(rc, workers, n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			s := wf.samplers[i]
			s.Seed(streamKey(seed, counter+uint64(i)))
			pixel := (first + i) / spp
			pos := image.Pt(offset.X+pixel%crop.X, offset.Y+pixel/crop.X)
			wf.camera[i] = r.sampleCamera(sensor, s, pos)
			states[i] = r.integrator.Begin(scene, s, wf.camera[i].ray)
		}
	})
	if err != nil {
		return err
	}

	for countActive(states) > 0 {
		err := splitLanes(rc, workers, n, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				if states[i].Active {
					r.integrator.Bounce(scene, wf.samplers[i], &states[i])
				}
			}
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func countActive(states []integrator.PathState) int {
	n := 0
	for i := range states {
		if states[i].Active {
			n++
		}
	}
	return n
}
