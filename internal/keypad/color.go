package keypad

import "fmt"

// RGB is the color of one indicator.
type RGB struct {
	R, G, B uint8
}

// Indicator colors.
var (
	ColorOff     = RGB{0, 0, 0}
	ColorFill    = RGB{0, 150, 0}
	ColorWaiting = RGB{0, 0, 255}
	ColorAlert   = RGB{255, 0, 0}
	ColorBoot    = RGB{255, 255, 255}
)

// Hex returns the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// IsOff reports whether the indicator is dark.
func (c RGB) IsOff() bool {
	return c == ColorOff
}

// Frame holds one color per indicator position.
type Frame []RGB

// NewFrame returns a dark frame of n indicators.
func NewFrame(n int) Frame {
	return make(Frame, n)
}

// Fill sets every position to c.
func (f Frame) Fill(c RGB) {
	for i := range f {
		f[i] = c
	}
}

// Clear turns every position off.
func (f Frame) Clear() {
	f.Fill(ColorOff)
}

// Clone returns a copy of the frame.
func (f Frame) Clone() Frame {
	out := make(Frame, len(f))
	copy(out, f)
	return out
}
