// Package monitor implements the runtime supervision loop: it polls
// the accelerator's processed-packet counter, attributes deltas to
// elapsed wall-clock seconds, and produces the end-of-window report.
package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	reflector "github.com/i-rong/l2-reflector"
	"github.com/i-rong/l2-reflector/remote"
)

// Gateway is the slice of the remote call channel the monitor needs.
type Gateway interface {
	Call(ctx context.Context, function uint32, arg uint64) (uint64, error)
}

// StopSignal is the slice of the shutdown coordinator the monitor
// needs: a non-blocking flag and a selectable channel.
type StopSignal interface {
	Requested() bool
	Done() <-chan struct{}
}

// Monitor collects a per-second throughput series over one bounded
// observation window.
//
// The accounting is delta-on-observation: a counter change is
// attributed in full to the second in which it was observed, and idle
// seconds between observations stay zero.
type Monitor struct {
	gw            Gateway
	windowSeconds int
	idleInterval  time.Duration
	logger        *slog.Logger

	// Injectable for tests.
	now   func() time.Time
	sleep func(ctx context.Context, stop StopSignal, d time.Duration) bool

	// Live counters read by the metrics collector.
	total     atomic.Uint64
	lastDelta atomic.Uint64
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Monitor) { m.logger = logger }
}

// WithIdleInterval sets how long to wait between polls while the
// counter is not moving.
func WithIdleInterval(d time.Duration) Option {
	return func(m *Monitor) { m.idleInterval = d }
}

// New builds a Monitor for one observation window of windowSeconds.
func New(gw Gateway, windowSeconds int, opts ...Option) (*Monitor, error) {
	if windowSeconds <= 0 {
		return nil, fmt.Errorf("window must be positive, got %d seconds", windowSeconds)
	}
	m := &Monitor{
		gw:            gw,
		windowSeconds: windowSeconds,
		idleInterval:  2 * time.Second,
		logger:        slog.Default(),
		now:           time.Now,
		sleep:         cooperativeSleep,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With("component", "monitor")
	return m, nil
}

// Run executes the supervision loop until the window elapses, a stop
// is requested, or a poll fails. A poll failure is terminal: no report
// is produced and the caller is expected to tear the run down.
func (m *Monitor) Run(ctx context.Context, stop StopSignal) (reflector.Report, error) {
	window := time.Duration(m.windowSeconds) * time.Second
	series := make([]uint64, m.windowSeconds)

	var (
		last        uint64 // counter value at the last attributed delta
		final       uint64 // most recently polled counter value
		currentIdx  int
		interrupted bool
	)

	start := m.now()
	for {
		if stop.Requested() || ctx.Err() != nil {
			interrupted = true
			break
		}
		elapsed := m.now().Sub(start)
		if elapsed >= window {
			break
		}

		total, err := m.gw.Call(ctx, remote.FuncProcessedPackets, 0)
		if err != nil {
			return reflector.Report{}, fmt.Errorf("poll packet counter: %w", err)
		}
		final = total
		m.total.Store(total)

		if total == last {
			// Idle stall: nothing to attribute. Wait a bounded
			// interval (never past the window edge), note progress,
			// and poll again. The wait observes the stop signal so a
			// shutdown during a stall stays responsive.
			wait := m.idleInterval
			if remaining := window - m.now().Sub(start); remaining < wait {
				wait = remaining
			}
			if wait > 0 && !m.sleep(ctx, stop, wait) {
				continue
			}
			m.logger.Info("accelerator progress", "processed_packets", total)
			continue
		}

		// The delta lands entirely in the second it was observed in.
		s := int(m.now().Sub(start) / time.Second)
		if s >= m.windowSeconds {
			break
		}
		if s != currentIdx {
			series[s] = 0
			currentIdx = s
		}
		delta := total - last
		series[s] = delta
		last = total
		m.lastDelta.Store(delta)
		m.logger.Debug("attributed delta", "second", s, "packets", delta, "total", total)
	}

	finished := m.now()
	return reflector.Report{
		StartedAt:     start,
		FinishedAt:    finished,
		WindowSeconds: m.windowSeconds,
		TotalPackets:  final,
		PerSecond:     append([]uint64(nil), series[:currentIdx+1]...),
		Interrupted:   interrupted,
	}, nil
}

// Snapshot returns the live cumulative total and the most recently
// attributed per-second delta.
func (m *Monitor) Snapshot() (total, lastDelta uint64) {
	return m.total.Load(), m.lastDelta.Load()
}

// cooperativeSleep waits for d, returning early (false) when a stop is
// requested or the context ends.
func cooperativeSleep(ctx context.Context, stop StopSignal, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-stop.Done():
		return false
	case <-ctx.Done():
		return false
	}
}
