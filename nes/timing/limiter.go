package timing

import "time"

// Limiter paces the front-end loop to the console frame rate.
type Limiter interface {
	// WaitForNextFrame blocks until it's time for the next frame.
	WaitForNextFrame()

	// Reset resets the timing state, useful after pauses.
	Reset()
}

// NewNoOpLimiter returns a limiter that doesn't limit (for headless mode).
func NewNoOpLimiter() Limiter {
	return &noOpLimiter{}
}

type noOpLimiter struct{}

func (n *noOpLimiter) WaitForNextFrame() {}
func (n *noOpLimiter) Reset()            {}

// NTSC timing
const (
	CPUFrequency = 1789773
	// CyclesPerFrame is rounded up from 29780.5, the odd frame skips a dot.
	CyclesPerFrame = 29781
)

// TargetFPS returns the NTSC frame rate.
func TargetFPS() float64 {
	return float64(CPUFrequency) / float64(CyclesPerFrame)
}

// FrameDuration returns the target duration of a single frame.
func FrameDuration() time.Duration {
	return time.Duration(float64(time.Second) / TargetFPS())
}
