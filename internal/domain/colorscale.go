package domain

import (
	"fmt"
	"math"
	"sort"
)

// Color is an 8-bit sRGB color.
type Color struct {
	R, G, B uint8
}

// Hex renders the color as #RRGGBB.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// CSS renders the color as rgb(r, g, b).
func (c Color) CSS() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// MarshalText encodes the color as #RRGGBB.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnknownColor is used for parcels without a balance. It does not occur in
// the breakpoint table.
var UnknownColor = hexColor(0xBEC2CF)

// Breakpoint anchors a balance value to a color.
type Breakpoint struct {
	Value float64
	Color Color
}

// breakpoints is the balance color table, highest balance first.
var breakpoints = []Breakpoint{
	{1000, hexColor(0x07FE1E)},
	{500, hexColor(0x31F51D)},
	{0, hexColor(0x57ED1D)},
	{-50, hexColor(0x7BE41C)},
	{-100, hexColor(0xA0DC1B)},
	{-200, hexColor(0xC4D41B)},
	{-300, hexColor(0xE0CC19)},
	{-400, hexColor(0xE5C716)},
	{-500, hexColor(0xE8C113)},
	{-600, hexColor(0xECBC10)},
	{-700, hexColor(0xF1B60C)},
	{-800, hexColor(0xF6AF08)},
	{-900, hexColor(0xFAAA05)},
	{-1000, hexColor(0xFDA401)},
	{-1100, hexColor(0xFF9400)},
	{-1500, hexColor(0xFF7F00)},
	{-2000, hexColor(0xFF6801)},
	{-3000, hexColor(0xFF5001)},
	{-5000, hexColor(0xFF3B00)},
	{-10000, hexColor(0xFF2800)},
	{-15000, hexColor(0xFF1101)},
	{-20000, hexColor(0xFD0101)},
	{-25000, hexColor(0xE30000)},
	{-30000, hexColor(0xCF0101)},
	{-35000, hexColor(0xB40000)},
	{-40000, hexColor(0x9F0000)},
	{-45000, hexColor(0x840101)},
	{-50000, hexColor(0x6C0000)},
}

// ascending is the breakpoint table sorted by value, lowest first.
var ascending = func() []Breakpoint {
	out := append([]Breakpoint(nil), breakpoints...)
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}()

// Breakpoints returns a copy of the color table, highest balance first.
func Breakpoints() []Breakpoint {
	return append([]Breakpoint(nil), breakpoints...)
}

// ColorFor maps a balance to its color. A nil or NaN balance yields
// UnknownColor; values outside the table clamp to its end colors.
func ColorFor(balance *float64) Color {
	if balance == nil || math.IsNaN(*balance) {
		return UnknownColor
	}
	return ColorForValue(*balance)
}

// ColorForValue interpolates each RGB channel linearly between the two
// breakpoints that bracket v.
func ColorForValue(v float64) Color {
	if math.IsNaN(v) {
		return UnknownColor
	}

	lo, hi := ascending[0], ascending[len(ascending)-1]
	if v <= lo.Value {
		return lo.Color
	}
	if v >= hi.Value {
		return hi.Color
	}

	// First breakpoint strictly above v; the segment is [i-1, i].
	i := sort.Search(len(ascending), func(k int) bool { return ascending[k].Value > v })
	a, b := ascending[i-1], ascending[i]
	t := (v - a.Value) / (b.Value - a.Value)

	return Color{
		R: lerpChannel(a.Color.R, b.Color.R, t),
		G: lerpChannel(a.Color.G, b.Color.G, t),
		B: lerpChannel(a.Color.B, b.Color.B, t),
	}
}

// lerpChannel interpolates one channel and rounds half up.
func lerpChannel(a, b uint8, t float64) uint8 {
	x := float64(a)*(1-t) + float64(b)*t
	x = math.Floor(x + 0.5)
	switch {
	case x < 0:
		return 0
	case x > 255:
		return 255
	}
	return uint8(x)
}

func hexColor(rgb uint32) Color {
	return Color{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb)}
}
