package legend

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/couchcryptid/parcel-balance-map/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, 4*vg.Inch, 1*vg.Inch))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	b := img.Bounds()
	assert.Positive(t, b.Dx())
	assert.Greater(t, b.Dx(), b.Dy())
}

func TestBands(t *testing.T) {
	bps := ascendingBreakpoints()
	got := bands(bps, 4)

	require.Len(t, got, (len(bps)-1)*4)
	assert.InDelta(t, 0.0, got[0].x0, 1e-12)
	assert.InDelta(t, float64(len(bps)-1), got[len(got)-1].x1, 1e-12)

	for i := 1; i < len(got); i++ {
		assert.InDelta(t, got[i-1].x1, got[i].x0, 1e-12, "bands must tile the axis")
	}

	// The darkest red sits at the indebted end, the brightest green at the other.
	assert.Equal(t, domain.ColorForValue(-50000+(-45000+50000)/8.0), got[0].color)
	assert.Equal(t, domain.ColorForValue(1000-(1000-500)/8.0), got[len(got)-1].color)
}

func TestBreakpointTicks(t *testing.T) {
	ticks := breakpointTicks(ascendingBreakpoints()).Ticks(0, 27)

	require.Len(t, ticks, 28)
	assert.Equal(t, "-50k", ticks[0].Label)
	assert.Equal(t, "-1100", ticks[13].Label)
	assert.Equal(t, "0", ticks[25].Label)
	assert.Equal(t, "1k", ticks[27].Label)
}

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{-50, "-50"},
		{500, "500"},
		{1000, "1k"},
		{-1500, "-1500"},
		{-25000, "-25k"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatCompact(tt.in))
	}
}
