package renderer

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/df07/go-tiled-pathtracer/pkg/log"
)

// recordingLogger keeps every formatted message
type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

var _ log.Logger = (*recordingLogger)(nil)

func (l *recordingLogger) record(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf(format, v...))
}

func (l *recordingLogger) Debug(v ...interface{})                   { l.record("%s", fmt.Sprint(v...)) }
func (l *recordingLogger) Debugf(format string, v ...interface{})   { l.record(format, v...) }
func (l *recordingLogger) Notice(v ...interface{})                  { l.record("%s", fmt.Sprint(v...)) }
func (l *recordingLogger) Noticef(format string, v ...interface{})  { l.record(format, v...) }
func (l *recordingLogger) Info(v ...interface{})                    { l.record("%s", fmt.Sprint(v...)) }
func (l *recordingLogger) Infof(format string, v ...interface{})    { l.record(format, v...) }
func (l *recordingLogger) Warning(v ...interface{})                 { l.record("%s", fmt.Sprint(v...)) }
func (l *recordingLogger) Warningf(format string, v ...interface{}) { l.record(format, v...) }
func (l *recordingLogger) Error(v ...interface{})                   { l.record("%s", fmt.Sprint(v...)) }
func (l *recordingLogger) Errorf(format string, v ...interface{})   { l.record(format, v...) }

func TestLogReporterSteps(t *testing.T) {
	tests := []struct {
		name  string
		step  int
		total int
		want  int
	}{
		// 0% through 100% in steps of 10
		{"default step", 0, 100, 11},
		{"quarters", 25, 100, 5},
		{"fewer units than steps", 10, 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &recordingLogger{}
			reporter := NewLogReporter(logger, tt.step)
			for i := 1; i <= tt.total; i++ {
				reporter.Update(i, tt.total, time.Duration(i)*time.Millisecond)
			}
			if len(logger.messages) != tt.want {
				t.Errorf("Expected %d reports, got %d: %v", tt.want, len(logger.messages), logger.messages)
			}
		})
	}
}

func TestLogReporterIgnoresEmptyRenders(t *testing.T) {
	logger := &recordingLogger{}
	NewLogReporter(logger, 10).Update(0, 0, 0)
	if len(logger.messages) != 0 {
		t.Errorf("Expected no reports, got %v", logger.messages)
	}
}

func TestLogReporterConcurrent(t *testing.T) {
	logger := &recordingLogger{}
	reporter := NewLogReporter(logger, 50)

	var wg sync.WaitGroup
	for i := 1; i <= 100; i++ {
		wg.Add(1)
		go func(done int) {
			defer wg.Done()
			reporter.Update(done, 100, 0)
		}(i)
	}
	wg.Wait()

	// Each of the steps 0, 1 and 2 is reported at most once
	if len(logger.messages) == 0 || len(logger.messages) > 3 {
		t.Errorf("Expected between 1 and 3 reports, got %d", len(logger.messages))
	}
}

func TestStats(t *testing.T) {
	stats := Stats{Samples: 2000, Rejected: 50, Elapsed: 2 * time.Second}
	if got := stats.SamplesPerSecond(); got != 1000 {
		t.Errorf("Expected 1000 samples/s, got %f", got)
	}
	if got := stats.RejectedFraction(); got != 0.025 {
		t.Errorf("Expected rejected fraction 0.025, got %f", got)
	}

	var empty Stats
	if empty.SamplesPerSecond() != 0 || empty.RejectedFraction() != 0 {
		t.Error("Empty stats should report zero rates")
	}
}
