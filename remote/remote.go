// Package remote is the only channel through which the host invokes
// functions resident on the accelerator. A call names a registered
// device function, carries one 64-bit argument, and returns one 64-bit
// result. Whether a function is idempotent is a property of the
// function, not of the channel; the packet-counter poll is, the
// one-time init is not.
package remote

// Device function identifiers registered by the reflector device
// program.
const (
	// FuncDeviceInit performs one-time initialisation of the
	// accelerator-side reflector. The argument is the address of the
	// allocated device data region.
	FuncDeviceInit uint32 = 1
	// FuncProcessedPackets returns the cumulative count of packets the
	// accelerator has processed since init. The argument is ignored.
	FuncProcessedPackets uint32 = 2
)
