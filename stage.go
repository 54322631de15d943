// Package reflector holds the shared domain types for the L2 reflector
// host control plane: lifecycle stages, failure kinds, and the run report.
package reflector

// Stage identifies one checkpoint in the ordered resource-acquisition
// sequence. Stages are acquired strictly in declaration order and
// released in exact reverse order.
type Stage int

const (
	// StageNone means no resource has been acquired yet.
	StageNone Stage = iota
	// StageDevice covers the IB device context and protection domain.
	StageDevice
	// StageProcess covers the offload-process context and its working memory.
	StageProcess
	// StageResources covers work queues, completion queues, and the
	// device-resident data region.
	StageResources
	// StageDeviceInit is the one-time remote initialisation call.
	StageDeviceInit
	// StageRxRule is the RX steering rule.
	StageRxRule
	// StageTxRule is the TX steering rule.
	StageTxRule
	// StageEventHandler is the device event handler that activates
	// accelerator-side processing.
	StageEventHandler
	// StageRunning means every stage completed and packet processing
	// is live on the accelerator.
	StageRunning
)

func (s Stage) String() string {
	switch s {
	case StageNone:
		return "none"
	case StageDevice:
		return "device"
	case StageProcess:
		return "process"
	case StageResources:
		return "resources"
	case StageDeviceInit:
		return "device-init"
	case StageRxRule:
		return "rx-steering"
	case StageTxRule:
		return "tx-steering"
	case StageEventHandler:
		return "event-handler"
	case StageRunning:
		return "running"
	default:
		return "unknown"
	}
}
