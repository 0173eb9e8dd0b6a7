package sim

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muurk/keypad/internal/keypad"
	"github.com/muurk/keypad/internal/panel"
	"github.com/muurk/keypad/internal/protocol"
)

// AppName is the title shown above the strip.
const AppName = "KEYPAD SIMULATOR"

// ShortLockDuration is the lock length sent by the short lock control.
const ShortLockDuration = 5 * time.Second

type tickMsg time.Time

// keyQueue is the simulator's KeySource. Key presses from bubbletea are
// queued and the panel takes one per step.
type keyQueue struct {
	keys []byte
}

func (q *keyQueue) press(scanning bool, k byte) {
	if scanning {
		q.keys = append(q.keys, k)
	}
}

// FlushKeys drops presses still queued when the keypad leaves Normal mode.
func (q *keyQueue) FlushKeys() int {
	n := len(q.keys)
	q.keys = nil
	return n
}

func (q *keyQueue) PollKey() (byte, bool) {
	if len(q.keys) == 0 {
		return 0, false
	}
	k := q.keys[0]
	q.keys = q.keys[1:]
	return k, true
}

// recorder wraps the transport to keep the last submitted code on screen.
type recorder struct {
	panel.Transport
	last  string
	count int
}

func (r *recorder) SubmitCode(code string) {
	r.last = code
	r.count++
	r.Transport.SubmitCode(code)
}

// Options configures the simulator.
type Options struct {
	// Panel settings. Keys and Pixels are provided by the simulator.
	Panel panel.Options

	// Loopback enables the offline controls. It is used as the transport
	// when Panel.Transport is nil.
	Loopback *Loopback
}

// Model is the bubbletea model of the simulator.
type Model struct {
	panel    *panel.Panel
	keys     *keyQueue
	pixels   *panel.LogPixels
	codes    *recorder
	loopback *Loopback
	interval time.Duration

	Width  int
	Height int

	Help     help.Model
	KeyMap   keyMap
	quitting bool
}

// New builds the simulator and its panel.
func New(opts Options) Model {
	po := opts.Panel
	if po.Transport == nil && opts.Loopback != nil {
		po.Transport = opts.Loopback
	}
	if po.Digits < 1 {
		po.Digits = keypad.DefaultDigits
	}
	if po.TickInterval <= 0 {
		po.TickInterval = panel.DefaultTickInterval
	}

	m := Model{
		keys:     &keyQueue{},
		pixels:   panel.NewLogPixels(po.Digits),
		loopback: opts.Loopback,
		interval: po.TickInterval,
		Help:     help.New(),
		KeyMap:   newKeyMap(false),
	}
	if po.Transport != nil {
		m.codes = &recorder{Transport: po.Transport}
		po.Transport = m.codes
	}
	if opts.Loopback != nil {
		m.KeyMap.enableOffline()
	}

	po.Keys = m.keys
	po.Pixels = m.pixels
	m.panel = panel.New(po)
	return m
}

// Start boots the panel and starts the transport. Call before running the
// program.
func (m Model) Start(ctx context.Context) error {
	return m.panel.Start(ctx)
}

// Shutdown turns the indicators off and closes the transport.
func (m Model) Shutdown() {
	m.panel.Shutdown()
}

// Panel returns the simulated panel.
func (m Model) Panel() *panel.Panel {
	return m.panel
}

// Frame returns the last frame pushed to the strip.
func (m Model) Frame() keypad.Frame {
	return m.pixels.Frame()
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles key presses and ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.panel.Step()
		return m, m.tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A key matrix is only scanned in Normal mode; presses at any other
	// time are lost.
	scanning := m.panel.Controller().Mode() == keypad.ModeNormal

	switch {
	case key.Matches(msg, m.KeyMap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.KeyMap.Digit):
		m.keys.press(scanning, msg.String()[0])

	case key.Matches(msg, m.KeyMap.Submit):
		m.keys.press(scanning, keypad.KeySubmit)

	case key.Matches(msg, m.KeyMap.Backspace):
		m.keys.press(scanning, keypad.KeyBackspace)

	case key.Matches(msg, m.KeyMap.Link):
		m.loopback.SetLink(!m.loopback.LinkUp())

	case key.Matches(msg, m.KeyMap.Lock):
		m.loopback.Lock(0)

	case key.Matches(msg, m.KeyMap.ShortLock):
		m.loopback.Lock(ShortLockDuration)
	}
	return m, nil
}

// View renders the strip, status and help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	ctrl := m.panel.Controller()

	var b strings.Builder
	b.WriteString(TitleStyle.Render(AppName))
	b.WriteString("\n\n")
	b.WriteString(RenderStrip(m.Frame()))
	b.WriteString("\n\n")

	mode := ctrl.Mode()
	b.WriteString(row("Mode", modeStyle(mode).Render(mode.String())))
	link := "down"
	if ctrl.LinkUp() {
		link = "up"
	}
	b.WriteString(row("Link", linkStyle(ctrl.LinkUp()).Render(link)))
	b.WriteString(row("Code", fmt.Sprintf("%s (%d/%d)",
		strings.Repeat("•", ctrl.CodeLength()), ctrl.CodeLength(), ctrl.Digits())))
	if mode == keypad.ModeLocked {
		b.WriteString(row("Lock", fmt.Sprintf("%s remaining", ctrl.LockRemaining().Round(100*time.Millisecond))))
	}
	if m.codes != nil && m.codes.count > 0 {
		b.WriteString(row("Last code", fmt.Sprintf("%s (%d sent)", m.codes.last, m.codes.count)))
	}
	b.WriteString(row("Uptime", protocol.FormatUptime(m.panel.Uptime())))
	if m.loopback != nil {
		b.WriteString(row("State docs", fmt.Sprintf("%d", m.loopback.StatesPublished())))
	}

	content := ContainerStyle.Render(strings.TrimRight(b.String(), "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, content, m.Help.View(m.KeyMap))
}

func row(label, value string) string {
	return LabelStyle.Render(label+":") + ValueStyle.Render(value) + "\n"
}
