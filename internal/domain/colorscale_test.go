package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestColorFor_Anchors(t *testing.T) {
	tests := []struct {
		name     string
		balance  *float64
		expected string
	}{
		{"zero", ptr(0), "#57ED1D"},
		{"top anchor", ptr(1000), "#07FE1E"},
		{"above top clamps", ptr(1e6), "#07FE1E"},
		{"500", ptr(500), "#31F51D"},
		{"-1100", ptr(-1100), "#FF9400"},
		{"-20000", ptr(-20000), "#FD0101"},
		{"bottom anchor", ptr(-50000), "#6C0000"},
		{"below bottom clamps", ptr(-1e9), "#6C0000"},
		{"nil is unknown", nil, "#BEC2CF"},
		{"nan is unknown", ptr(math.NaN()), "#BEC2CF"},
		{"+inf clamps high", ptr(math.Inf(1)), "#07FE1E"},
		{"-inf clamps low", ptr(math.Inf(-1)), "#6C0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ColorFor(tt.balance).Hex())
		})
	}
}

func TestColorFor_EveryBreakpointIsExact(t *testing.T) {
	for _, bp := range Breakpoints() {
		assert.Equal(t, bp.Color, ColorForValue(bp.Value), "value %v", bp.Value)
	}
}

func TestColorForValue_Interpolates(t *testing.T) {
	// Halfway between -50 (#7BE41C) and 0 (#57ED1D).
	assert.Equal(t, Color{R: 105, G: 233, B: 29}, ColorForValue(-25))

	// Halfway between -50000 (#6C0000) and -45000 (#840101).
	assert.Equal(t, Color{R: 120, G: 1, B: 1}, ColorForValue(-47500))
}

func TestColorForValue_ChannelsStayBetweenNeighbours(t *testing.T) {
	table := Breakpoints()
	for i := 0; i+1 < len(table); i++ {
		hi, lo := table[i], table[i+1]
		for _, frac := range []float64{0.1, 0.33, 0.5, 0.9} {
			v := lo.Value + (hi.Value-lo.Value)*frac
			c := ColorForValue(v)
			assertBetween(t, c.R, lo.Color.R, hi.Color.R)
			assertBetween(t, c.G, lo.Color.G, hi.Color.G)
			assertBetween(t, c.B, lo.Color.B, hi.Color.B)
		}
	}
}

func assertBetween(t *testing.T, got, a, b uint8) {
	t.Helper()
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	assert.GreaterOrEqual(t, got, lo)
	assert.LessOrEqual(t, got, hi)
}

func TestColorFor_Deterministic(t *testing.T) {
	first := ColorForValue(-1234.5)
	for range 100 {
		require.Equal(t, first, ColorForValue(-1234.5))
	}
}

func TestBreakpoints_Table(t *testing.T) {
	table := Breakpoints()
	require.Len(t, table, 28)
	assert.Equal(t, 1000.0, table[0].Value)
	assert.Equal(t, -50000.0, table[len(table)-1].Value)
	for i := 1; i < len(table); i++ {
		assert.Less(t, table[i].Value, table[i-1].Value)
		assert.NotEqual(t, UnknownColor, table[i].Color)
	}

	table[0].Value = 42
	assert.Equal(t, 1000.0, Breakpoints()[0].Value, "Breakpoints returns a copy")
}

func TestColor_Renderings(t *testing.T) {
	c := Color{R: 0x57, G: 0xED, B: 0x1D}
	assert.Equal(t, "#57ED1D", c.Hex())
	assert.Equal(t, "rgb(87, 237, 29)", c.CSS())

	data, err := json.Marshal(map[string]Color{"fill": c})
	require.NoError(t, err)
	assert.JSONEq(t, `{"fill":"#57ED1D"}`, string(data))
}
