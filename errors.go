package reflector

import "fmt"

// StageError is returned when a resource-acquisition stage fails.
// All stages acquired before the failing one have already been
// released, in reverse order, by the time the caller sees this error.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("acquire %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// CallError is returned when a remote invocation on the accelerator
// did not complete. A CallError is terminal for the run: neither the
// init call nor counter polling is retried.
type CallError struct {
	Function uint32
	Timeout  bool
	Err      error
}

func (e *CallError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("remote call %d timed out: %v", e.Function, e.Err)
	}
	return fmt.Sprintf("remote call %d failed: %v", e.Function, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }
