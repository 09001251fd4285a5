// Package legend renders the balance color scale as a PNG strip.
package legend

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"sort"

	"github.com/couchcryptid/parcel-balance-map/internal/domain"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	// DefaultWidth and DefaultHeight size the legend served by the API.
	DefaultWidth  = 9 * vg.Inch
	DefaultHeight = 1.6 * vg.Inch

	stepsPerSegment = 8
)

// band is one filled slice of the strip. The x axis runs over breakpoint
// indices so every segment of the scale gets the same width.
type band struct {
	x0, x1 float64
	color  domain.Color
}

// WritePNG renders the legend and writes it to w.
func WritePNG(w io.Writer, width, height vg.Length) error {
	p, err := newPlot()
	if err != nil {
		return err
	}

	c := vgimg.New(width, height)
	p.Draw(draw.New(c))

	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(w); err != nil {
		return fmt.Errorf("write legend png: %w", err)
	}
	return nil
}

func newPlot() (*plot.Plot, error) {
	bps := ascendingBreakpoints()

	p := plot.New()
	p.Title.Text = "Баланс, руб."
	p.BackgroundColor = color.White
	p.HideY()

	for _, b := range bands(bps, stepsPerSegment) {
		poly, err := plotter.NewPolygon(plotter.XYs{
			{X: b.x0, Y: 0},
			{X: b.x1, Y: 0},
			{X: b.x1, Y: 1},
			{X: b.x0, Y: 1},
		})
		if err != nil {
			return nil, fmt.Errorf("legend band: %w", err)
		}
		poly.Color = rgba(b.color)
		poly.LineStyle.Width = 0
		p.Add(poly)
	}

	p.X.Min = 0
	p.X.Max = float64(len(bps) - 1)
	p.Y.Min = 0
	p.Y.Max = 1
	p.X.Tick.Marker = breakpointTicks(bps)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.Font.Size = vg.Points(7)

	return p, nil
}

// bands samples the scale at the midpoint of steps slices per segment.
func bands(bps []domain.Breakpoint, steps int) []band {
	out := make([]band, 0, (len(bps)-1)*steps)
	for i := 0; i+1 < len(bps); i++ {
		lo, hi := bps[i].Value, bps[i+1].Value
		for s := 0; s < steps; s++ {
			f0 := float64(s) / float64(steps)
			f1 := float64(s+1) / float64(steps)
			mid := lo + (hi-lo)*(f0+f1)/2
			out = append(out, band{
				x0:    float64(i) + f0,
				x1:    float64(i) + f1,
				color: domain.ColorForValue(mid),
			})
		}
	}
	return out
}

type breakpointTicks []domain.Breakpoint

// Ticks labels every breakpoint index with its balance.
func (bt breakpointTicks) Ticks(_, _ float64) []plot.Tick {
	ticks := make([]plot.Tick, len(bt))
	for i, b := range bt {
		ticks[i] = plot.Tick{Value: float64(i), Label: formatCompact(b.Value)}
	}
	return ticks
}

func ascendingBreakpoints() []domain.Breakpoint {
	bps := domain.Breakpoints()
	sort.Slice(bps, func(i, j int) bool { return bps[i].Value < bps[j].Value })
	return bps
}

func formatCompact(v float64) string {
	if math.Abs(v) >= 1000 && math.Mod(v, 1000) == 0 {
		return fmt.Sprintf("%.0fk", v/1000)
	}
	return fmt.Sprintf("%.0f", v)
}

func rgba(c domain.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}
