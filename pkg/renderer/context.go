package renderer

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/df07/go-tiled-pathtracer/pkg/log"
)

// RenderContext is the state shared by the workers of one render. Workers
// poll ShouldStop between pixels; stopping is cooperative and a sample in
// flight always completes.
type RenderContext struct {
	ctx      context.Context
	start    time.Time
	deadline time.Time // Zero without timeout
	stopped  atomic.Bool
	reason   atomic.Value // string

	progress ProgressReporter
	logger   log.Logger

	blocks   atomic.Int64
	samples  atomic.Int64
	rejected atomic.Int64
}

func newRenderContext(ctx context.Context, timeout time.Duration, progress ProgressReporter, logger log.Logger) *RenderContext {
	rc := &RenderContext{
		ctx:      ctx,
		start:    time.Now(),
		progress: progress,
		logger:   logger,
	}
	if timeout > 0 {
		rc.deadline = rc.start.Add(timeout)
	}
	return rc
}

// Stop asks the workers to finish their current sample and return
func (rc *RenderContext) Stop(reason string) {
	if rc.stopped.CompareAndSwap(false, true) {
		rc.reason.Store(reason)
		rc.logger.Noticef("Stopping render: %s", reason)
	}
}

// ShouldStop reports whether sampling must end, checking cancellation of
// the parent context and the timeout
func (rc *RenderContext) ShouldStop() bool {
	if rc.stopped.Load() {
		return true
	}
	if err := rc.ctx.Err(); err != nil {
		rc.Stop(err.Error())
		return true
	}
	if !rc.deadline.IsZero() && time.Now().After(rc.deadline) {
		rc.Stop("timeout")
		return true
	}
	return false
}

// Stopped reports whether the render was interrupted
func (rc *RenderContext) Stopped() bool {
	return rc.stopped.Load()
}

// Reason returns why the render was interrupted
func (rc *RenderContext) Reason() string {
	if r, ok := rc.reason.Load().(string); ok {
		return r
	}
	return ""
}

// Elapsed is the time since the render started
func (rc *RenderContext) Elapsed() time.Duration {
	return time.Since(rc.start)
}
