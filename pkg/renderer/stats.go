package renderer

import (
	"time"
)

// Stats contains statistics about the rendering process
type Stats struct {
	Mode           Mode
	Workers        int           // Goroutines used for tracing
	Passes         int           // Passes requested
	SamplesPerPass int           // Samples per pixel in each pass
	Blocks         int           // Work units merged into the film
	TotalBlocks    int           // Work units planned
	Samples        int64         // Camera samples traced
	Rejected       int64         // Samples dropped by the image block
	Elapsed        time.Duration // Wall clock time
	Completed      bool          // False after cancellation or timeout
	StopReason     string
}

// SamplesPerSecond is the sample throughput of the render
func (s Stats) SamplesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Samples) / s.Elapsed.Seconds()
}

// RejectedFraction is the fraction of samples with invalid values
func (s Stats) RejectedFraction() float64 {
	if s.Samples == 0 {
		return 0
	}
	return float64(s.Rejected) / float64(s.Samples)
}
