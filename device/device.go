// Package device defines the contract with the offload device driver:
// opaque handles for each acquired hardware/software resource and the
// Operations interface the lifecycle controller drives. The package
// also ships a simulated backend; hardware-backed implementations live
// out of tree with the vendor SDK.
package device

import (
	"context"
	"errors"
	"net"
)

// Errors shared by backends.
var (
	ErrDeviceNotFound   = errors.New("device not found")
	ErrNotOpen          = errors.New("device context is not open")
	ErrAlreadyReleased  = errors.New("resource already released")
	ErrProcessNotFound  = errors.New("offload process not found")
	ErrHandlerNotUnique = errors.New("event handler already running for process")
)

// Context is an opened device context together with its protection
// domain. Released via Operations.CloseDevice.
type Context struct {
	// Device is the name the context was opened with.
	Device string

	id uint64
}

// Process is a created offload-process context with its working
// memory. Released via Operations.DestroyProcess.
type Process struct {
	// RuntimeTarget is the gRPC target of the process's call endpoint,
	// dialled by the remote gateway.
	RuntimeTarget string

	id uint64
}

// Resources covers the work queues, completion queues, and the
// device-resident data region of one process. Released via
// Operations.ReleaseResources.
type Resources struct {
	// DataAddr is the device address of the allocated data region,
	// passed to the one-time init call.
	DataAddr uint64

	id uint64
}

// RuleDirection distinguishes the two steering rules.
type RuleDirection string

const (
	RuleRx RuleDirection = "rx"
	RuleTx RuleDirection = "tx"
)

// SteeringRule is one installed steering rule. Released via
// Operations.RemoveRule.
type SteeringRule struct {
	Direction RuleDirection

	id uint64
}

// EventHandler is a started device event handler; starting it is what
// activates accelerator-side packet processing. Released via
// Operations.StopEventHandler.
type EventHandler struct {
	id uint64
}

// RuleSpec parameterises steering-rule installation. The MAC is the
// uplink netdev's hardware address: the RX rule matches traffic
// destined to it, the TX rule traffic sourced from it. A nil MAC lets
// the backend fall back to the device's own address.
type RuleSpec struct {
	MAC net.HardwareAddr
}

// Operations is the driver collaborator. Each method either succeeds,
// producing a handle the caller now owns, or fails without side
// effects. Callers release handles in exact reverse order of
// acquisition; backends may reject out-of-order or repeated releases.
type Operations interface {
	OpenDevice(ctx context.Context, name string) (*Context, error)
	CloseDevice(dc *Context) error

	CreateProcess(ctx context.Context, dc *Context) (*Process, error)
	DestroyProcess(p *Process) error

	AllocateResources(ctx context.Context, p *Process) (*Resources, error)
	ReleaseResources(r *Resources) error

	InstallRxRule(ctx context.Context, dc *Context, res *Resources, spec RuleSpec) (*SteeringRule, error)
	InstallTxRule(ctx context.Context, dc *Context, res *Resources, spec RuleSpec) (*SteeringRule, error)
	RemoveRule(rule *SteeringRule) error

	RunEventHandler(ctx context.Context, p *Process) (*EventHandler, error)
	StopEventHandler(h *EventHandler) error
}
