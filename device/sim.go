package device

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"slices"
	"sync"
	"time"

	"github.com/i-rong/l2-reflector/remote"
)

// Simulated is an in-memory device backend. It honours the full
// Operations contract, including ordering and double-release checks,
// and each created process serves a real runtime call endpoint on the
// loopback interface, so the daemon exercises the same wire path it
// uses against hardware. Processed-packet counts advance at a fixed
// synthetic rate once the event handler runs.
type Simulated struct {
	devices []string
	rate    uint64
	logger  *slog.Logger

	mu        sync.Mutex
	nextID    uint64
	contexts  map[uint64]string
	processes map[uint64]*simProcess
	resources map[uint64]uint64
	rules     map[uint64]RuleDirection
	handlers  map[uint64]uint64
}

// SimOption configures the simulated backend.
type SimOption func(*Simulated)

// WithSimLogger sets the logger.
func WithSimLogger(logger *slog.Logger) SimOption {
	return func(s *Simulated) { s.logger = logger }
}

// WithSimRate sets the synthetic packet rate in packets per second.
func WithSimRate(pps uint64) SimOption {
	return func(s *Simulated) { s.rate = pps }
}

// WithSimDevices sets the device names the backend will open.
func WithSimDevices(names ...string) SimOption {
	return func(s *Simulated) { s.devices = names }
}

// NewSimulated builds a simulated backend. By default it exposes a
// single device named "mlx5_0" processing 1000 packets per second.
func NewSimulated(opts ...SimOption) *Simulated {
	s := &Simulated{
		devices:   []string{"mlx5_0"},
		rate:      1000,
		logger:    slog.Default(),
		contexts:  make(map[uint64]string),
		processes: make(map[uint64]*simProcess),
		resources: make(map[uint64]uint64),
		rules:     make(map[uint64]RuleDirection),
		handlers:  make(map[uint64]uint64),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "device")
	return s
}

func (s *Simulated) id() uint64 {
	s.nextID++
	return s.nextID
}

func (s *Simulated) OpenDevice(_ context.Context, name string) (*Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.devices, name) {
		return nil, fmt.Errorf("open %s: %w", name, ErrDeviceNotFound)
	}
	dc := &Context{Device: name, id: s.id()}
	s.contexts[dc.id] = name
	s.logger.Debug("opened device context", "device", name)
	return dc, nil
}

func (s *Simulated) CloseDevice(dc *Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contexts[dc.id]; !ok {
		return fmt.Errorf("close %s: %w", dc.Device, ErrAlreadyReleased)
	}
	delete(s.contexts, dc.id)
	s.logger.Debug("closed device context", "device", dc.Device)
	return nil
}

func (s *Simulated) CreateProcess(_ context.Context, dc *Context) (*Process, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contexts[dc.id]; !ok {
		return nil, fmt.Errorf("create process on %s: %w", dc.Device, ErrNotOpen)
	}

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("create process runtime endpoint: %w", err)
	}
	proc := &simProcess{rate: s.rate}
	proc.srv = remote.NewServer(proc, s.logger)
	proc.lis = lis
	go proc.srv.Serve(lis)

	p := &Process{RuntimeTarget: lis.Addr().String(), id: s.id()}
	s.processes[p.id] = proc
	s.logger.Debug("created offload process", "device", dc.Device, "runtime", p.RuntimeTarget)
	return p, nil
}

func (s *Simulated) DestroyProcess(p *Process) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	proc, ok := s.processes[p.id]
	if !ok {
		return fmt.Errorf("destroy process: %w", ErrProcessNotFound)
	}
	proc.srv.Stop()
	delete(s.processes, p.id)
	s.logger.Debug("destroyed offload process", "runtime", p.RuntimeTarget)
	return nil
}

func (s *Simulated) AllocateResources(_ context.Context, p *Process) (*Resources, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.processes[p.id]; !ok {
		return nil, fmt.Errorf("allocate resources: %w", ErrProcessNotFound)
	}
	r := &Resources{id: s.id()}
	// A stable fake device address; the init call rejects zero.
	r.DataAddr = 0x1000_0000 + r.id
	s.resources[r.id] = p.id
	s.logger.Debug("allocated device resources", "data_addr", r.DataAddr)
	return r, nil
}

func (s *Simulated) ReleaseResources(r *Resources) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resources[r.id]; !ok {
		return fmt.Errorf("release resources: %w", ErrAlreadyReleased)
	}
	delete(s.resources, r.id)
	return nil
}

func (s *Simulated) InstallRxRule(_ context.Context, dc *Context, res *Resources, spec RuleSpec) (*SteeringRule, error) {
	return s.installRule(dc, res, spec, RuleRx)
}

func (s *Simulated) InstallTxRule(_ context.Context, dc *Context, res *Resources, spec RuleSpec) (*SteeringRule, error) {
	return s.installRule(dc, res, spec, RuleTx)
}

func (s *Simulated) installRule(dc *Context, res *Resources, spec RuleSpec, dir RuleDirection) (*SteeringRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contexts[dc.id]; !ok {
		return nil, fmt.Errorf("install %s rule: %w", dir, ErrNotOpen)
	}
	if _, ok := s.resources[res.id]; !ok {
		return nil, fmt.Errorf("install %s rule: %w", dir, ErrAlreadyReleased)
	}
	rule := &SteeringRule{Direction: dir, id: s.id()}
	s.rules[rule.id] = dir
	s.logger.Debug("installed steering rule", "direction", dir, "mac", spec.MAC)
	return rule, nil
}

func (s *Simulated) RemoveRule(rule *SteeringRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rules[rule.id]; !ok {
		return fmt.Errorf("remove %s rule: %w", rule.Direction, ErrAlreadyReleased)
	}
	delete(s.rules, rule.id)
	return nil
}

func (s *Simulated) RunEventHandler(_ context.Context, p *Process) (*EventHandler, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	proc, ok := s.processes[p.id]
	if !ok {
		return nil, fmt.Errorf("run event handler: %w", ErrProcessNotFound)
	}
	for _, pid := range s.handlers {
		if pid == p.id {
			return nil, fmt.Errorf("run event handler: %w", ErrHandlerNotUnique)
		}
	}
	if err := proc.start(); err != nil {
		return nil, fmt.Errorf("run event handler: %w", err)
	}
	h := &EventHandler{id: s.id()}
	s.handlers[h.id] = p.id
	s.logger.Debug("event handler running")
	return h, nil
}

func (s *Simulated) StopEventHandler(h *EventHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pid, ok := s.handlers[h.id]
	if !ok {
		return fmt.Errorf("stop event handler: %w", ErrAlreadyReleased)
	}
	if proc, ok := s.processes[pid]; ok {
		proc.stop()
	}
	delete(s.handlers, h.id)
	return nil
}

// simProcess is the accelerator-resident half of one simulated
// process: the call handler behind its runtime endpoint.
type simProcess struct {
	lis net.Listener
	srv *remote.Server

	mu          sync.Mutex
	rate        uint64
	dataAddr    uint64
	initialised bool
	running     bool
	startedAt   time.Time
}

func (p *simProcess) start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialised {
		return fmt.Errorf("process not initialised")
	}
	p.running = true
	p.startedAt = time.Now()
	return nil
}

func (p *simProcess) stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.running = false
}

// HandleCall implements remote.CallHandler.
func (p *simProcess) HandleCall(function uint32, arg uint64) (uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch function {
	case remote.FuncDeviceInit:
		if p.initialised {
			return 0, fmt.Errorf("already initialised")
		}
		if arg == 0 {
			return 0, fmt.Errorf("data address is zero")
		}
		p.dataAddr = arg
		p.initialised = true
		return 0, nil
	case remote.FuncProcessedPackets:
		if !p.running {
			return 0, nil
		}
		elapsed := time.Since(p.startedAt).Seconds()
		return uint64(elapsed * float64(p.rate)), nil
	default:
		return 0, fmt.Errorf("unknown function %d", function)
	}
}
