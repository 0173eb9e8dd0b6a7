package keypad

import "time"

var epoch = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// keyQueue is a KeySource fed by tests.
type keyQueue struct {
	keys []byte
}

func (q *keyQueue) push(s string) {
	q.keys = append(q.keys, []byte(s)...)
}

func (q *keyQueue) PollKey() (byte, bool) {
	if len(q.keys) == 0 {
		return 0, false
	}
	k := q.keys[0]
	q.keys = q.keys[1:]
	return k, true
}

func (q *keyQueue) FlushKeys() int {
	n := len(q.keys)
	q.keys = nil
	return n
}

// codeRecorder is a CodeSink that records submissions.
type codeRecorder struct {
	codes []string
}

func (r *codeRecorder) SubmitCode(code string) {
	r.codes = append(r.codes, code)
}

// strip is a PixelSink that keeps the last committed frame.
type strip struct {
	pending Frame
	shown   Frame
	shows   int
}

func newStrip(n int) *strip {
	return &strip{pending: NewFrame(n)}
}

func (s *strip) SetIndicator(position int, color RGB) {
	s.pending[position] = color
}

func (s *strip) Show() {
	s.shown = s.pending.Clone()
	s.shows++
}

type rig struct {
	clock *ManualClock
	keys  *keyQueue
	codes *codeRecorder
	strip *strip
	ctl   *Controller
}

func newRig(cfg Config) *rig {
	if cfg.Digits == 0 {
		cfg.Digits = 4
	}
	r := &rig{
		clock: NewManualClock(epoch),
		keys:  &keyQueue{},
		codes: &codeRecorder{},
		strip: newStrip(cfg.Digits),
	}
	cfg.Clock = r.clock
	cfg.Keys = r.keys
	cfg.Codes = r.codes
	cfg.Pixels = r.strip
	r.ctl = NewController(cfg)
	return r
}

// typeKeys runs one tick per key, advancing the clock 10ms each time.
func (r *rig) typeKeys(s string) {
	r.keys.push(s)
	for range s {
		r.ctl.Tick()
		r.clock.Advance(10 * time.Millisecond)
	}
}
