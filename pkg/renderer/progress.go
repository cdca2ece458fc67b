package renderer

import (
	"sync"
	"time"

	"github.com/df07/go-tiled-pathtracer/pkg/log"
)

// ProgressReporter is told about finished work units. Reports are advisory
// and may arrive from several workers at once.
type ProgressReporter interface {
	Update(completed, total int, elapsed time.Duration)
}

// LogReporter logs progress every Step percent
type LogReporter struct {
	Step   int
	logger log.Logger

	mu   sync.Mutex
	last int // Last reported step
}

// NewLogReporter creates a reporter logging through logger
func NewLogReporter(logger log.Logger, step int) *LogReporter {
	if step <= 0 {
		step = 10
	}
	return &LogReporter{Step: step, logger: logger, last: -1}
}

// Update implements ProgressReporter
func (lr *LogReporter) Update(completed, total int, elapsed time.Duration) {
	if total <= 0 {
		return
	}
	percent := completed * 100 / total
	step := percent / lr.Step

	lr.mu.Lock()
	defer lr.mu.Unlock()
	if step <= lr.last {
		return
	}
	lr.last = step
	lr.logger.Infof("Rendered %d/%d (%d%%) in %v", completed, total, percent, elapsed.Round(time.Millisecond))
}

type noProgress struct{}

func (noProgress) Update(int, int, time.Duration) {}
