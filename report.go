package reflector

import "time"

// Report summarises one observation window.
type Report struct {
	// Device is the device the run executed on.
	Device string
	// StartedAt is when the monitor loop began.
	StartedAt time.Time
	// FinishedAt is when the monitor loop ended.
	FinishedAt time.Time
	// WindowSeconds is the configured observation window length.
	WindowSeconds int
	// TotalPackets is the final cumulative counter value observed.
	TotalPackets uint64
	// PerSecond holds the packet delta attributed to each elapsed
	// second, from second 0 through the last second that received an
	// observation. Idle seconds between observations stay zero.
	PerSecond []uint64
	// Interrupted is true when the run ended on a shutdown signal
	// rather than the window elapsing.
	Interrupted bool
}

// Average returns the mean packets per second over the configured
// window. The divisor is the full window length even on an
// interrupted run.
func (r Report) Average() float64 {
	if r.WindowSeconds == 0 {
		return 0
	}
	return float64(r.TotalPackets) / float64(r.WindowSeconds)
}
