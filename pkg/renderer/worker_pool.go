package renderer

import (
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// runWorkers starts n workers and waits for them. The first error stops
// the others through the render context. Collaborators that panic with
// core.ErrNotImplemented fail the render with that error.
func runWorkers(rc *RenderContext, n int, work func(id int) error) error {
	var g errgroup.Group
	for id := 0; id < n; id++ {
		g.Go(func() (err error) {
			defer func() {
				if v := recover(); v != nil {
					e, ok := v.(error)
					if !ok || !errors.Is(e, core.ErrNotImplemented) {
						panic(v)
					}
					err = e
				}
				if err != nil {
					rc.Stop(fmt.Sprintf("worker %d failed", id))
				}
			}()
			return work(id)
		})
	}
	return g.Wait()
}

// splitLanes runs fn over [0, n) in contiguous chunks, one per worker
func splitLanes(rc *RenderContext, workers, n int, fn func(lo, hi int)) error {
	workers = max(1, min(workers, n))
	chunk := (n + workers - 1) / workers
	return runWorkers(rc, workers, func(id int) error {
		lo := id * chunk
		hi := min(n, lo+chunk)
		if lo < hi {
			fn(lo, hi)
		}
		return nil
	})
}
