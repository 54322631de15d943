package manager

import (
	"errors"
	"log/slog"
)

// releaseEntry pairs a release closure with the name of the resource
// it releases, for logging.
type releaseEntry struct {
	name string
	fn   func() error
}

// releaseStack accumulates release closures as acquisition stages
// succeed. Unwinding releases them in reverse order of acquisition,
// which is the only order the driver accepts. One closure per
// committed resource; a stage that failed before committing anything
// pushes nothing.
type releaseStack struct {
	entries []releaseEntry
	done    bool
}

// push records a release closure for a just-acquired resource.
func (s *releaseStack) push(name string, fn func() error) {
	s.entries = append(s.entries, releaseEntry{name: name, fn: fn})
}

// unwind releases every recorded resource in reverse order, logging
// and collecting failures. A release failure does not stop the
// unwind; the remaining resources are still released. Repeated calls
// are no-ops, so a run can never release a resource twice.
func (s *releaseStack) unwind(logger *slog.Logger) error {
	if s.done {
		return nil
	}
	s.done = true
	var errs []error
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		logger.Debug("releasing", "resource", e.name)
		if err := e.fn(); err != nil {
			logger.Error("release failed", "resource", e.name, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
