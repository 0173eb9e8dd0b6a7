package keypad

import (
	"time"

	"github.com/muurk/keypad/internal/codebuf"
	"github.com/muurk/keypad/internal/logging"
	"go.uber.org/zap"
)

const (
	// DefaultDigits is the code length of the stock keypad.
	DefaultDigits = 4

	// DefaultLockDuration applies when a lock command carries no duration.
	DefaultLockDuration = 60 * time.Second

	// CommandLock is the only remote command the keypad reacts to.
	CommandLock = "lock"
)

// Command is a decoded remote command.
type Command struct {
	Name string
	// Duration is only honoured when HasDuration is set. Zero is valid and
	// ends any lock on the next iteration.
	Duration    time.Duration
	HasDuration bool
}

// Config configures a Controller.
type Config struct {
	// Digits is the code capacity and number of indicators.
	Digits int

	// LockDuration is used for lock commands without a duration.
	LockDuration time.Duration

	// StartWaiting starts the keypad in Waiting until the first connect.
	StartWaiting bool

	Clock    Clock
	Keys     KeySource
	Codes    CodeSink
	Pixels   PixelSink
	Periodic PeriodicRunner
}

// Controller ties the code buffer, entry controller, overlay and animation
// together. It must only be used from the control loop goroutine.
type Controller struct {
	clock    Clock
	start    time.Time
	keys     KeySource
	pixels   PixelSink
	periodic PeriodicRunner

	buf     *codebuf.Buffer
	entry   *Entry
	overlay *Overlay
	frame   Frame

	lockDuration time.Duration
	ticks        uint64
}

// NewController creates a controller. The clock's current time becomes the
// origin for every animation and lock deadline.
func NewController(cfg Config) *Controller {
	digits := cfg.Digits
	if digits < 1 {
		digits = DefaultDigits
	}
	lockDuration := cfg.LockDuration
	if lockDuration <= 0 {
		lockDuration = DefaultLockDuration
	}
	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock{}
	}

	buf := codebuf.New(digits)
	c := &Controller{
		clock:        clock,
		start:        clock.Now(),
		keys:         cfg.Keys,
		pixels:       cfg.Pixels,
		periodic:     cfg.Periodic,
		buf:          buf,
		entry:        NewEntry(buf, cfg.Codes),
		overlay:      NewOverlay(),
		frame:        NewFrame(digits),
		lockDuration: lockDuration,
	}

	if cfg.StartWaiting {
		c.overlay.Disconnected(0)
	}
	return c
}

// Tick runs one iteration of the control loop.
func (c *Controller) Tick() {
	now := c.clock.Now()
	elapsed := c.elapsed(now)
	c.ticks++

	// 1. periodic callbacks
	if c.periodic != nil {
		c.periodic.RunDue(now)
	}

	// 2. time-driven transitions
	c.apply(c.overlay.Expire(elapsed), "lock expired")

	// 3. animation
	mode := c.overlay.Mode()
	Render(c.frame, mode, elapsed-c.overlay.Since())

	// 4. input
	if mode == ModeNormal {
		if c.keys != nil {
			if key, ok := c.keys.PollKey(); ok {
				c.entry.Handle(key)
			}
		}
		RenderFill(c.frame, c.buf.Len())
	} else {
		c.discardKeys(mode)
	}

	// 5. output
	c.push()
}

// OnConnected handles the transport connect signal.
func (c *Controller) OnConnected() {
	c.apply(c.overlay.Connected(c.elapsed(c.clock.Now())), "transport connected")
}

// OnDisconnected handles the transport disconnect signal.
func (c *Controller) OnDisconnected() {
	c.apply(c.overlay.Disconnected(c.elapsed(c.clock.Now())), "transport disconnected")
}

// OnCommand handles a decoded remote command. Only "lock" has an effect.
func (c *Controller) OnCommand(cmd Command) {
	if cmd.Name != CommandLock {
		logging.Warn("Unknown command", zap.String("command", cmd.Name))
		return
	}

	d := c.lockDuration
	if cmd.HasDuration {
		d = cmd.Duration
	}
	logging.Info("Locking keypad", zap.Duration("duration", d))
	c.apply(c.overlay.Lock(c.elapsed(c.clock.Now()), d), "lock command")
}

// Boot shows the power-on frame (all indicators white) before the loop runs.
func (c *Controller) Boot() {
	c.frame.Fill(ColorBoot)
	c.push()
}

// Shutdown turns all indicators off.
func (c *Controller) Shutdown() {
	c.frame.Clear()
	c.push()
}

// Mode returns the active overlay mode.
func (c *Controller) Mode() Mode {
	return c.overlay.Mode()
}

// LinkUp reports the last connectivity signal.
func (c *Controller) LinkUp() bool {
	return c.overlay.LinkUp()
}

// LockRemaining returns how long the current lock still lasts.
func (c *Controller) LockRemaining() time.Duration {
	end, ok := c.overlay.LockEnd()
	if !ok {
		return 0
	}
	remaining := end - c.elapsed(c.clock.Now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CodeLength returns how many digits are buffered.
func (c *Controller) CodeLength() int {
	return c.buf.Len()
}

// Digits returns the code capacity.
func (c *Controller) Digits() int {
	return c.buf.Cap()
}

// Frame returns a copy of the last rendered frame.
func (c *Controller) Frame() Frame {
	return c.frame.Clone()
}

// Ticks returns the number of iterations run so far.
func (c *Controller) Ticks() uint64 {
	return c.ticks
}

func (c *Controller) elapsed(now time.Time) time.Duration {
	return now.Sub(c.start)
}

func (c *Controller) apply(t Transition, reason string) {
	if !t.Changed() {
		return
	}
	logging.LogModeChange(t.From.String(), t.To.String(), reason)
	if t.To == ModeNormal {
		// Drop whatever animation frame was showing.
		c.frame.Clear()
	}
}

// discardKeys drops presses buffered by the key source outside Normal mode.
func (c *Controller) discardKeys(mode Mode) {
	f, ok := c.keys.(KeyFlusher)
	if !ok {
		return
	}
	if n := f.FlushKeys(); n > 0 {
		logging.Debug("Ignoring keys outside normal mode",
			zap.Int("count", n),
			zap.String("mode", mode.String()),
		)
	}
}

func (c *Controller) push() {
	if c.pixels == nil {
		return
	}
	for i, color := range c.frame {
		c.pixels.SetIndicator(i, color)
	}
	c.pixels.Show()
}
