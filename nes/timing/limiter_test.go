package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameTiming(t *testing.T) {
	assert.InDelta(t, 60.0, TargetFPS(), 0.1)
	assert.InDelta(t, float64(16640*time.Microsecond), float64(FrameDuration()), float64(50*time.Microsecond))
}

func TestNoOpLimiter(t *testing.T) {
	l := NewNoOpLimiter()
	start := time.Now()
	for rangeIdx := 0; rangeIdx < 100; rangeIdx++ {
		l.WaitForNextFrame()
	}
	l.Reset()
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestTickerLimiter(t *testing.T) {
	l := NewTickerLimiter()
	defer l.Stop()

	start := time.Now()
	l.WaitForNextFrame()
	l.WaitForNextFrame()
	assert.GreaterOrEqual(t, time.Since(start), FrameDuration())
}
