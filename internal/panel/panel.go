package panel

import (
	"context"
	"fmt"
	"time"

	"github.com/muurk/keypad/internal/keypad"
	"github.com/muurk/keypad/internal/logging"
	"github.com/muurk/keypad/internal/protocol"
	"github.com/muurk/keypad/internal/scheduler"
	"github.com/muurk/keypad/internal/transport"
	"go.uber.org/zap"
)

const (
	// DefaultTickInterval is the loop period.
	DefaultTickInterval = 10 * time.Millisecond

	// DefaultPublishInterval is how often the state document is published.
	DefaultPublishInterval = 10 * time.Minute

	stateTaskName = "publish-state"
)

// Transport is what the panel needs from the network side.
type Transport interface {
	keypad.CodeSink
	Connect(ctx context.Context) error
	Events() <-chan transport.Event
	PublishState(state protocol.State)
	Close()
}

var _ Transport = (*transport.Client)(nil)

// Options configures a Panel.
type Options struct {
	Digits          int
	LockDuration    time.Duration
	PublishInterval time.Duration
	TickInterval    time.Duration

	Clock     keypad.Clock
	Keys      keypad.KeySource
	Pixels    keypad.PixelSink
	Transport Transport

	Host    HostInfo
	Version string

	// Signal reports the radio signal level for the state document. The
	// field is omitted when it is nil or returns "".
	Signal func() string
}

// Panel is a running keypad.
type Panel struct {
	opts      Options
	clock     keypad.Clock
	start     time.Time
	transport Transport
	sched     *scheduler.Scheduler
	stateTask *scheduler.Task
	ctrl      *keypad.Controller
	published uint64
}

// New builds a panel. The keypad starts in Waiting until the transport
// reports its first connection.
func New(opts Options) *Panel {
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.PublishInterval <= 0 {
		opts.PublishInterval = DefaultPublishInterval
	}
	if opts.Clock == nil {
		opts.Clock = keypad.SystemClock{}
	}

	p := &Panel{
		opts:      opts,
		clock:     opts.Clock,
		start:     opts.Clock.Now(),
		transport: opts.Transport,
		sched:     scheduler.New(),
	}
	p.stateTask = p.sched.Every(stateTaskName, opts.PublishInterval, p.publishState)

	var codes keypad.CodeSink
	if opts.Transport != nil {
		codes = opts.Transport
	}
	p.ctrl = keypad.NewController(keypad.Config{
		Digits:       opts.Digits,
		LockDuration: opts.LockDuration,
		StartWaiting: true,
		Clock:        opts.Clock,
		Keys:         opts.Keys,
		Codes:        codes,
		Pixels:       opts.Pixels,
		Periodic:     p.sched,
	})
	return p
}

// Controller exposes the keypad controller for inspection.
func (p *Panel) Controller() *keypad.Controller {
	return p.ctrl
}

// Uptime returns the time since the panel was created.
func (p *Panel) Uptime() time.Duration {
	return p.clock.Now().Sub(p.start)
}

// Published returns how many state documents were published.
func (p *Panel) Published() uint64 {
	return p.published
}

// Boot shows the power-on frame.
func (p *Panel) Boot() {
	p.ctrl.Boot()
}

// Step applies pending transport events and runs one loop iteration.
func (p *Panel) Step() {
	p.drainEvents()
	p.ctrl.Tick()
}

// Start shows the boot frame and starts connecting the transport.
func (p *Panel) Start(ctx context.Context) error {
	p.Boot()

	if p.transport != nil {
		if err := p.transport.Connect(ctx); err != nil {
			p.ctrl.Shutdown()
			return fmt.Errorf("failed to start transport: %w", err)
		}
	}
	return nil
}

// Run starts the panel and ticks until ctx is cancelled. Indicators are
// turned off and the transport closed on return.
func (p *Panel) Run(ctx context.Context) error {
	if err := p.Start(ctx); err != nil {
		return err
	}

	logging.Info("Keypad running",
		zap.Int("digits", p.ctrl.Digits()),
		zap.Duration("tick", p.opts.TickInterval),
		zap.Duration("publish_interval", p.opts.PublishInterval),
	)

	ticker := time.NewTicker(p.opts.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.Shutdown()
			return nil
		case <-ticker.C:
			p.Step()
		}
	}
}

// Shutdown clears the indicators and closes the transport.
func (p *Panel) Shutdown() {
	logging.Info("Keypad shutting down", zap.Uint64("ticks", p.ctrl.Ticks()))
	p.ctrl.Shutdown()
	if p.transport != nil {
		p.transport.Close()
	}
}

// State builds the current state document.
func (p *Panel) State() protocol.State {
	var rssi string
	if p.opts.Signal != nil {
		rssi = p.opts.Signal()
	}
	return protocol.NewState(p.opts.Host.IP, p.opts.Host.MAC, rssi, p.Uptime(), p.opts.Version)
}

func (p *Panel) publishState() {
	if p.transport == nil || !p.ctrl.LinkUp() {
		return
	}
	p.transport.PublishState(p.State())
	p.published++
}

func (p *Panel) drainEvents() {
	if p.transport == nil {
		return
	}
	events := p.transport.Events()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			p.handle(ev)
		default:
			return
		}
	}
}

func (p *Panel) handle(ev transport.Event) {
	logging.Debug("Transport event", zap.String("event", ev.Kind.String()))

	switch ev.Kind {
	case transport.EventConnected:
		p.ctrl.OnConnected()
		// Publish the state document on every (re)connect.
		p.sched.Trigger(p.stateTask)
	case transport.EventDisconnected:
		p.ctrl.OnDisconnected()
	case transport.EventCommand:
		p.ctrl.OnCommand(ev.Command)
	}
}
