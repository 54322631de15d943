// Package manager drives the resource lifecycle of one reflector run:
// the ordered acquisition of device resources, the hand-off to the
// accelerator, the supervision loop, and the mirrored reverse-order
// teardown on every exit path.
//
// # Acquisition model
//
// Stages run in a fixed order, each depending on its predecessor:
// device context, offload process, queue/memory resources, the
// one-time remote init call, the RX then TX steering rules, and the
// event handler whose start activates accelerator-side processing.
// Every committed resource pushes its release closure onto a stack;
// a failure at any stage unwinds exactly the stages already acquired,
// in reverse order, and surfaces as *reflector.StageError. There is no
// retry: the only recovery is deterministic teardown and a failed
// exit.
//
// Normal completion (window elapsed or shutdown signalled) takes the
// identical teardown path as a failure after the final stage.
package manager

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	reflector "github.com/i-rong/l2-reflector"
	"github.com/i-rong/l2-reflector/config"
	"github.com/i-rong/l2-reflector/device"
	"github.com/i-rong/l2-reflector/monitor"
	"github.com/i-rong/l2-reflector/remote"
)

// Gateway is the call channel the manager owns for the run: the
// monitor's polling surface plus the connection lifetime.
type Gateway interface {
	monitor.Gateway
	Close() error
}

// DialFunc opens a gateway to a process runtime endpoint. The default
// dials over gRPC; tests substitute fakes.
type DialFunc func(target string) (Gateway, error)

// Store persists run reports. Satisfied by store/sqlite.
type Store interface {
	SaveReport(ctx context.Context, rep reflector.Report) (int64, error)
}

// Manager orchestrates one run at a time.
type Manager struct {
	cfg    config.Config
	dev    device.Operations
	store  Store
	root   *slog.Logger
	logger *slog.Logger

	dial            DialFunc
	probeNetdev     func(name string) (device.NetdevInfo, error)
	monitorObserver func(*monitor.Monitor)
}

// Option configures a Manager.
type Option func(*Manager)

// WithStore enables run-report persistence.
func WithStore(st Store) Option {
	return func(m *Manager) { m.store = st }
}

// WithDialer overrides how the gateway connects to the process
// runtime endpoint.
func WithDialer(dial DialFunc) Option {
	return func(m *Manager) { m.dial = dial }
}

// WithMonitorObserver registers a callback invoked with the monitor
// once it exists, before the supervision loop starts. The metrics
// endpoint uses this to attach its sample source.
func WithMonitorObserver(fn func(*monitor.Monitor)) Option {
	return func(m *Manager) { m.monitorObserver = fn }
}

// New creates a Manager. The logger is the daemon root logger;
// component attribution happens here and in the subsystems the
// manager constructs.
func New(cfg config.Config, dev device.Operations, logger *slog.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		cfg:         cfg,
		dev:         dev,
		root:        logger,
		logger:      logger.With("component", "manager"),
		probeNetdev: device.ProbeNetdev,
	}
	m.dial = func(target string) (Gateway, error) {
		client, err := remote.Dial(target,
			remote.WithTimeout(cfg.CallTimeout.Std()),
			remote.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// running holds the handles of a fully acquired run. Ownership stays
// with the manager; nothing else releases them.
type running struct {
	dc       *device.Context
	proc     *device.Process
	res      *device.Resources
	gw       Gateway
	releases releaseStack
}

// Run executes one full reflector run: acquire, supervise until the
// observation window elapses or stop is signalled, tear down, report.
func (m *Manager) Run(ctx context.Context, stop monitor.StopSignal) (reflector.Report, error) {
	var ruleMAC net.HardwareAddr
	if m.cfg.NetDev != "" {
		info, err := m.probeNetdev(m.cfg.NetDev)
		if err != nil {
			return reflector.Report{}, fmt.Errorf("probe uplink netdev: %w", err)
		}
		ruleMAC = info.MAC
		m.logger.Info("uplink netdev resolved",
			"netdev", info.Name,
			"ifindex", info.Index,
			"mac", info.MAC.String(),
			"mtu", info.MTU,
			"state", info.OperState)
	}

	run, err := m.acquire(ctx, ruleMAC)
	if err != nil {
		return reflector.Report{}, err
	}
	defer func() {
		m.logger.Info("tearing down", "device", m.cfg.Device)
		if relErr := run.releases.unwind(m.logger); relErr != nil {
			m.logger.Error("teardown incomplete", "error", relErr)
		}
	}()

	m.logger.Info("l2 reflector started",
		"device", m.cfg.Device,
		"window_seconds", m.cfg.WindowSeconds)

	mon, err := monitor.New(run.gw, m.cfg.WindowSeconds,
		monitor.WithIdleInterval(m.cfg.IdleInterval.Std()),
		monitor.WithLogger(m.root))
	if err != nil {
		return reflector.Report{}, err
	}
	if m.monitorObserver != nil {
		m.monitorObserver(mon)
	}

	rep, err := mon.Run(ctx, stop)
	if err != nil {
		return reflector.Report{}, err
	}
	rep.Device = m.cfg.Device

	if m.store != nil {
		// Persistence is best-effort: the run itself succeeded and
		// its report is already in hand.
		if id, err := m.store.SaveReport(ctx, rep); err != nil {
			m.logger.Warn("failed to persist run report", "error", err)
		} else {
			m.logger.Info("run report persisted", "run_id", id)
		}
	}
	return rep, nil
}

// acquire walks the stage sequence. On failure it unwinds the stages
// already acquired and returns a *reflector.StageError for the stage
// that failed.
func (m *Manager) acquire(ctx context.Context, ruleMAC net.HardwareAddr) (*running, error) {
	run := &running{}
	fail := func(stage reflector.Stage, err error) (*running, error) {
		m.logger.Error("acquisition failed", "stage", stage.String(), "error", err)
		if relErr := run.releases.unwind(m.logger); relErr != nil {
			m.logger.Error("unwind incomplete", "error", relErr)
		}
		return nil, &reflector.StageError{Stage: stage, Err: err}
	}

	dc, err := m.dev.OpenDevice(ctx, m.cfg.Device)
	if err != nil {
		return fail(reflector.StageDevice, err)
	}
	run.dc = dc
	run.releases.push("device", func() error { return m.dev.CloseDevice(dc) })
	m.logger.Info("device context open", "device", m.cfg.Device)

	proc, err := m.dev.CreateProcess(ctx, dc)
	if err != nil {
		return fail(reflector.StageProcess, err)
	}
	run.proc = proc
	run.releases.push("process", func() error { return m.dev.DestroyProcess(proc) })
	m.logger.Info("offload process created", "runtime", proc.RuntimeTarget)

	res, err := m.dev.AllocateResources(ctx, proc)
	if err != nil {
		return fail(reflector.StageResources, err)
	}
	run.res = res
	run.releases.push("resources", func() error { return m.dev.ReleaseResources(res) })
	m.logger.Info("device resources allocated", "data_addr", fmt.Sprintf("%#x", res.DataAddr))

	gw, err := m.dial(proc.RuntimeTarget)
	if err != nil {
		return fail(reflector.StageDeviceInit, err)
	}
	run.gw = gw
	run.releases.push("gateway", gw.Close)

	if _, err := gw.Call(ctx, remote.FuncDeviceInit, res.DataAddr); err != nil {
		return fail(reflector.StageDeviceInit, err)
	}
	m.logger.Info("device init complete")

	rx, err := m.dev.InstallRxRule(ctx, dc, res, device.RuleSpec{MAC: ruleMAC})
	if err != nil {
		return fail(reflector.StageRxRule, err)
	}
	run.releases.push("rx-steering", func() error { return m.dev.RemoveRule(rx) })

	tx, err := m.dev.InstallTxRule(ctx, dc, res, device.RuleSpec{MAC: ruleMAC})
	if err != nil {
		return fail(reflector.StageTxRule, err)
	}
	run.releases.push("tx-steering", func() error { return m.dev.RemoveRule(tx) })
	m.logger.Info("steering rules installed")

	h, err := m.dev.RunEventHandler(ctx, proc)
	if err != nil {
		return fail(reflector.StageEventHandler, err)
	}
	run.releases.push("event-handler", func() error { return m.dev.StopEventHandler(h) })
	m.logger.Info("event handler running, accelerator processing live")

	return run, nil
}
