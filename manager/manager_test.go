package manager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reflector "github.com/i-rong/l2-reflector"
	"github.com/i-rong/l2-reflector/config"
	"github.com/i-rong/l2-reflector/device"
	"github.com/i-rong/l2-reflector/remote"
	"github.com/i-rong/l2-reflector/shutdown"
)

// testLogger returns a logger for tests. By default it discards all
// output. Set L2RD_TEST_VERBOSE=1 to enable logging.
func testLogger() *slog.Logger {
	if os.Getenv("L2RD_TEST_VERBOSE") != "" {
		return slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// opLog records the interleaved operation sequence across the fake
// device and fake gateway, so tests can assert exact ordering.
type opLog struct {
	ops []string
}

func (l *opLog) add(op string) { l.ops = append(l.ops, op) }

// fakeDevice implements device.Operations, recording every call and
// failing on demand.
type fakeDevice struct {
	log    *opLog
	failOn map[string]error

	rxSpec device.RuleSpec
	txSpec device.RuleSpec
}

func newFakeDevice(log *opLog) *fakeDevice {
	return &fakeDevice{log: log, failOn: make(map[string]error)}
}

func (d *fakeDevice) step(op string) error {
	d.log.add(op)
	return d.failOn[op]
}

func (d *fakeDevice) OpenDevice(_ context.Context, name string) (*device.Context, error) {
	if err := d.step("open-device"); err != nil {
		return nil, err
	}
	return &device.Context{Device: name}, nil
}

func (d *fakeDevice) CloseDevice(*device.Context) error {
	return d.step("close-device")
}

func (d *fakeDevice) CreateProcess(_ context.Context, _ *device.Context) (*device.Process, error) {
	if err := d.step("create-process"); err != nil {
		return nil, err
	}
	return &device.Process{RuntimeTarget: "fake:runtime"}, nil
}

func (d *fakeDevice) DestroyProcess(*device.Process) error {
	return d.step("destroy-process")
}

func (d *fakeDevice) AllocateResources(_ context.Context, _ *device.Process) (*device.Resources, error) {
	if err := d.step("alloc-resources"); err != nil {
		return nil, err
	}
	return &device.Resources{DataAddr: 0xdead0000}, nil
}

func (d *fakeDevice) ReleaseResources(*device.Resources) error {
	return d.step("release-resources")
}

func (d *fakeDevice) InstallRxRule(_ context.Context, _ *device.Context, _ *device.Resources, spec device.RuleSpec) (*device.SteeringRule, error) {
	d.rxSpec = spec
	if err := d.step("install-rx"); err != nil {
		return nil, err
	}
	return &device.SteeringRule{Direction: device.RuleRx}, nil
}

func (d *fakeDevice) InstallTxRule(_ context.Context, _ *device.Context, _ *device.Resources, spec device.RuleSpec) (*device.SteeringRule, error) {
	d.txSpec = spec
	if err := d.step("install-tx"); err != nil {
		return nil, err
	}
	return &device.SteeringRule{Direction: device.RuleTx}, nil
}

func (d *fakeDevice) RemoveRule(rule *device.SteeringRule) error {
	return d.step("remove-rule:" + string(rule.Direction))
}

func (d *fakeDevice) RunEventHandler(_ context.Context, _ *device.Process) (*device.EventHandler, error) {
	if err := d.step("run-handler"); err != nil {
		return nil, err
	}
	return &device.EventHandler{}, nil
}

func (d *fakeDevice) StopEventHandler(*device.EventHandler) error {
	return d.step("stop-handler")
}

// fakeGateway implements Gateway, recording calls into the shared log.
type fakeGateway struct {
	log     *opLog
	initErr error
	pollErr error
	counter uint64
}

func (g *fakeGateway) Call(_ context.Context, function uint32, _ uint64) (uint64, error) {
	g.log.add(fmt.Sprintf("call:%d", function))
	switch function {
	case remote.FuncDeviceInit:
		return 0, g.initErr
	case remote.FuncProcessedPackets:
		return g.counter, g.pollErr
	}
	return 0, fmt.Errorf("unknown function %d", function)
}

func (g *fakeGateway) Close() error {
	g.log.add("gw-close")
	return nil
}

// fakeStore records SaveReport invocations.
type fakeStore struct {
	reports []reflector.Report
	err     error
}

func (s *fakeStore) SaveReport(_ context.Context, rep reflector.Report) (int64, error) {
	s.reports = append(s.reports, rep)
	return int64(len(s.reports)), s.err
}

type fixture struct {
	mgr     *Manager
	dev     *fakeDevice
	gw      *fakeGateway
	log     *opLog
	dialErr error
}

func newFixture(t *testing.T, mutate func(*fixture)) *fixture {
	t.Helper()
	log := &opLog{}
	f := &fixture{
		dev: newFakeDevice(log),
		gw:  &fakeGateway{log: log},
		log: log,
	}
	if mutate != nil {
		mutate(f)
	}
	cfg := config.Default()
	cfg.WindowSeconds = 3
	f.mgr = New(cfg, f.dev, testLogger(), WithDialer(func(target string) (Gateway, error) {
		log.add("dial")
		if f.dialErr != nil {
			return nil, f.dialErr
		}
		return f.gw, nil
	}))
	return f
}

func TestAcquireFailureUnwindsAcquiredStages(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name      string
		mutate    func(*fixture)
		wantStage reflector.Stage
		wantOps   []string
	}{
		{
			name:      "device open fails",
			mutate:    func(f *fixture) { f.dev.failOn["open-device"] = boom },
			wantStage: reflector.StageDevice,
			wantOps:   []string{"open-device"},
		},
		{
			name:      "process creation fails",
			mutate:    func(f *fixture) { f.dev.failOn["create-process"] = boom },
			wantStage: reflector.StageProcess,
			wantOps: []string{
				"open-device", "create-process",
				"close-device",
			},
		},
		{
			name:      "resource allocation fails",
			mutate:    func(f *fixture) { f.dev.failOn["alloc-resources"] = boom },
			wantStage: reflector.StageResources,
			wantOps: []string{
				"open-device", "create-process", "alloc-resources",
				"destroy-process", "close-device",
			},
		},
		{
			name:      "gateway dial fails",
			mutate:    func(f *fixture) { f.dialErr = boom },
			wantStage: reflector.StageDeviceInit,
			wantOps: []string{
				"open-device", "create-process", "alloc-resources", "dial",
				"release-resources", "destroy-process", "close-device",
			},
		},
		{
			name:      "device init call fails",
			mutate:    func(f *fixture) { f.gw.initErr = boom },
			wantStage: reflector.StageDeviceInit,
			wantOps: []string{
				"open-device", "create-process", "alloc-resources", "dial", "call:1",
				"gw-close", "release-resources", "destroy-process", "close-device",
			},
		},
		{
			name:      "rx rule install fails",
			mutate:    func(f *fixture) { f.dev.failOn["install-rx"] = boom },
			wantStage: reflector.StageRxRule,
			wantOps: []string{
				"open-device", "create-process", "alloc-resources", "dial", "call:1",
				"install-rx",
				"gw-close", "release-resources", "destroy-process", "close-device",
			},
		},
		{
			name:      "tx rule install fails",
			mutate:    func(f *fixture) { f.dev.failOn["install-tx"] = boom },
			wantStage: reflector.StageTxRule,
			wantOps: []string{
				"open-device", "create-process", "alloc-resources", "dial", "call:1",
				"install-rx", "install-tx",
				"remove-rule:rx", "gw-close", "release-resources", "destroy-process", "close-device",
			},
		},
		{
			name:      "event handler start fails",
			mutate:    func(f *fixture) { f.dev.failOn["run-handler"] = boom },
			wantStage: reflector.StageEventHandler,
			wantOps: []string{
				"open-device", "create-process", "alloc-resources", "dial", "call:1",
				"install-rx", "install-tx", "run-handler",
				"remove-rule:tx", "remove-rule:rx", "gw-close", "release-resources", "destroy-process", "close-device",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, tc.mutate)
			stop := shutdown.New()

			_, err := f.mgr.Run(context.Background(), stop)
			require.Error(t, err)

			var stageErr *reflector.StageError
			require.ErrorAs(t, err, &stageErr)
			assert.Equal(t, tc.wantStage, stageErr.Stage)
			assert.ErrorIs(t, err, boom)
			assert.Equal(t, tc.wantOps, f.log.ops)
		})
	}
}

func TestRunTearsDownAfterShutdownRequest(t *testing.T) {
	f := newFixture(t, nil)
	stop := shutdown.New()
	stop.Trigger()

	rep, err := f.mgr.Run(context.Background(), stop)
	require.NoError(t, err)
	assert.True(t, rep.Interrupted)
	assert.Equal(t, f.mgr.cfg.Device, rep.Device)

	want := []string{
		"open-device", "create-process", "alloc-resources", "dial", "call:1",
		"install-rx", "install-tx", "run-handler",
		"stop-handler", "remove-rule:tx", "remove-rule:rx", "gw-close",
		"release-resources", "destroy-process", "close-device",
	}
	assert.Equal(t, want, f.log.ops)
}

func TestRunTearsDownAfterPollFailure(t *testing.T) {
	pollErr := errors.New("channel fault")
	f := newFixture(t, func(f *fixture) { f.gw.pollErr = pollErr })
	stop := shutdown.New()

	_, err := f.mgr.Run(context.Background(), stop)
	require.Error(t, err)
	assert.ErrorIs(t, err, pollErr)

	want := []string{
		"open-device", "create-process", "alloc-resources", "dial", "call:1",
		"install-rx", "install-tx", "run-handler",
		"call:2",
		"stop-handler", "remove-rule:tx", "remove-rule:rx", "gw-close",
		"release-resources", "destroy-process", "close-device",
	}
	assert.Equal(t, want, f.log.ops)
}

func TestRunPersistsReport(t *testing.T) {
	f := newFixture(t, nil)
	st := &fakeStore{}
	WithStore(st)(f.mgr)
	stop := shutdown.New()
	stop.Trigger()

	rep, err := f.mgr.Run(context.Background(), stop)
	require.NoError(t, err)
	require.Len(t, st.reports, 1)
	assert.Equal(t, rep, st.reports[0])
	assert.Equal(t, f.mgr.cfg.Device, st.reports[0].Device)
}

func TestRunSurvivesPersistFailure(t *testing.T) {
	f := newFixture(t, nil)
	st := &fakeStore{err: errors.New("disk full")}
	WithStore(st)(f.mgr)
	stop := shutdown.New()
	stop.Trigger()

	_, err := f.mgr.Run(context.Background(), stop)
	require.NoError(t, err)
	require.Len(t, st.reports, 1)
}

func TestRunProbesNetdevForSteeringMAC(t *testing.T) {
	f := newFixture(t, nil)
	mac, err := net.ParseMAC("02:00:5e:10:00:01")
	require.NoError(t, err)
	f.mgr.cfg.NetDev = "eth0"
	f.mgr.probeNetdev = func(name string) (device.NetdevInfo, error) {
		require.Equal(t, "eth0", name)
		return device.NetdevInfo{Name: name, Index: 7, MAC: mac, MTU: 1500, OperState: "up"}, nil
	}
	stop := shutdown.New()
	stop.Trigger()

	_, err = f.mgr.Run(context.Background(), stop)
	require.NoError(t, err)
	assert.Equal(t, mac, f.dev.rxSpec.MAC)
	assert.Equal(t, mac, f.dev.txSpec.MAC)
}

func TestRunNetdevProbeFailureIsFatalBeforeAcquisition(t *testing.T) {
	f := newFixture(t, nil)
	f.mgr.cfg.NetDev = "eth0"
	f.mgr.probeNetdev = func(string) (device.NetdevInfo, error) {
		return device.NetdevInfo{}, errors.New("no such link")
	}
	stop := shutdown.New()

	_, err := f.mgr.Run(context.Background(), stop)
	require.Error(t, err)
	assert.Empty(t, f.log.ops)
}

func TestRunContextCancelInterrupts(t *testing.T) {
	f := newFixture(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stop := shutdown.New()

	rep, err := f.mgr.Run(ctx, stop)
	require.NoError(t, err)
	assert.True(t, rep.Interrupted)
	assert.Contains(t, f.log.ops, "close-device")
}
