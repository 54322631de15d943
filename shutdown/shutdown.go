// Package shutdown implements the process-wide graceful-stop flag.
//
// The first termination signal sets the flag exactly once; repeated
// signals are absorbed. The flag is never cleared. All consumers poll
// Requested at loop boundaries or select on Done; cancellation is
// cooperative only, so an in-flight remote call is not preempted.
package shutdown

import (
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// Coordinator owns the stop flag and the signal subscription that
// feeds it.
type Coordinator struct {
	requested atomic.Bool
	once      sync.Once
	done      chan struct{}
	sigCh     chan os.Signal
	logger    *slog.Logger
}

// Install subscribes to the given signals (SIGINT and SIGTERM when
// none are named) and returns the coordinator. Callers must Stop it
// to release the subscription.
func Install(logger *slog.Logger, signals ...os.Signal) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	if len(signals) == 0 {
		signals = []os.Signal{unix.SIGINT, unix.SIGTERM}
	}
	c := &Coordinator{
		done:   make(chan struct{}),
		sigCh:  make(chan os.Signal, 1),
		logger: logger.With("component", "shutdown"),
	}
	signal.Notify(c.sigCh, signals...)
	go func() {
		for sig := range c.sigCh {
			c.logger.Info("signal received, preparing to exit", "signal", sig.String())
			c.Trigger()
		}
	}()
	return c
}

// New returns a coordinator with no signal subscription. Useful for
// tests and for callers that trigger the stop themselves.
func New() *Coordinator {
	return &Coordinator{done: make(chan struct{}), logger: slog.Default()}
}

// Trigger sets the stop flag. Safe to call repeatedly from any
// goroutine; only the first call has any effect.
func (c *Coordinator) Trigger() {
	c.once.Do(func() {
		c.requested.Store(true)
		close(c.done)
	})
}

// Requested reports whether a stop has been requested. Never blocks.
func (c *Coordinator) Requested() bool { return c.requested.Load() }

// Done returns a channel closed when a stop has been requested.
func (c *Coordinator) Done() <-chan struct{} { return c.done }

// Stop releases the signal subscription. The flag keeps its value.
func (c *Coordinator) Stop() {
	if c.sigCh != nil {
		signal.Stop(c.sigCh)
	}
}
