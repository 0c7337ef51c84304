package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/dustin/go-humanize"

	"github.com/Sumatoshi-tech/locradar/pkg/linecount"
)

const (
	// labelGap is the distance in pixels between the outer ring and an axis label.
	labelGap = 14

	// titleBand is the vertical space reserved above the chart for the title.
	titleBand = 48
)

type point struct{ x, y int }

// radarGeometry places n axes evenly around a center, the first one pointing up.
type radarGeometry struct {
	cx, cy int
	radius float64
	n      int
}

func newRadarGeometry(width, height, n int) radarGeometry {
	// Leave room for the labels on every side.
	side := min(width, height-titleBand)

	return radarGeometry{
		cx:     width / 2,
		cy:     titleBand + (height-titleBand)/2,
		radius: float64(side)/2 - 4*labelGap,
		n:      n,
	}
}

func (g radarGeometry) angle(i int) float64 {
	return -math.Pi/2 + 2*math.Pi*float64(i)/float64(g.n)
}

// at returns the point at fraction f (0..1) of the radius along axis i.
func (g radarGeometry) at(i int, f float64) point {
	a := g.angle(i)
	r := g.radius * f

	return point{
		x: g.cx + int(math.Round(r*math.Cos(a))),
		y: g.cy + int(math.Round(r*math.Sin(a))),
	}
}

func (g radarGeometry) polygon(fractions func(i int) float64) ([]int, []int) {
	xs := make([]int, g.n)
	ys := make([]int, g.n)

	for i := range g.n {
		p := g.at(i, fractions(i))
		xs[i], ys[i] = p.x, p.y
	}

	return xs, ys
}

func anchorFor(x, cx int) string {
	switch {
	case x < cx-2:
		return "end"
	case x > cx+2:
		return "start"
	default:
		return "middle"
	}
}

// WriteRadarSVG draws entries as a radar chart. Each entry gets one axis;
// rings are scaled to the largest count among entries.
func WriteRadarSVG(w io.Writer, entries []linecount.Entry, opts ChartOptions) error {
	peak := linecount.MaxLines(entries)
	if len(entries) == 0 || peak == 0 {
		return ErrNothingToRender
	}

	opts = opts.withDefaults()
	pal := paletteFor(opts.Theme)
	geo := newRadarGeometry(opts.Width, opts.Height, len(entries))

	ew := &errWriter{w: w}
	canvas := svg.New(ew)

	canvas.Start(opts.Width, opts.Height)
	canvas.Title(opts.Title)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:"+pal.Background)

	canvas.Text(opts.Width/2, titleBand/2, opts.Title,
		fmt.Sprintf("text-anchor:middle;font-family:sans-serif;font-size:18px;fill:%s", pal.Text))

	if opts.Subtitle != "" {
		canvas.Text(opts.Width/2, titleBand/2+16, opts.Subtitle,
			fmt.Sprintf("text-anchor:middle;font-family:sans-serif;font-size:11px;fill:%s", pal.TextMuted))
	}

	canvas.Gstyle(fmt.Sprintf("fill:none;stroke:%s;stroke-width:1", pal.Grid))

	for ring := 1; ring <= ringCount; ring++ {
		f := float64(ring) / ringCount

		if geo.n < 3 {
			canvas.Circle(geo.cx, geo.cy, int(math.Round(geo.radius*f)))

			continue
		}

		xs, ys := geo.polygon(func(int) float64 { return f })
		canvas.Polygon(xs, ys)
	}

	canvas.Gend()

	canvas.Gstyle(fmt.Sprintf("stroke:%s;stroke-width:1", pal.Axis))

	for i := range entries {
		tip := geo.at(i, 1)
		canvas.Line(geo.cx, geo.cy, tip.x, tip.y)
	}

	canvas.Gend()

	canvas.Gstyle(fmt.Sprintf("font-family:sans-serif;font-size:10px;fill:%s", pal.TextMuted))

	for ring := 1; ring <= ringCount; ring++ {
		value := int64(math.Round(float64(peak) * float64(ring) / ringCount))
		canvas.Text(geo.cx+3, geo.cy-int(math.Round(geo.radius*float64(ring)/ringCount))-2, humanize.Comma(value))
	}

	canvas.Gend()

	xs, ys := geo.polygon(func(i int) float64 { return float64(entries[i].Lines) / float64(peak) })
	canvas.Polygon(xs, ys,
		fmt.Sprintf("fill:%s;fill-opacity:0.35;stroke:%s;stroke-width:2", pal.Series, pal.Series))

	for i := range entries {
		canvas.Circle(xs[i], ys[i], 3, "fill:"+pal.Series)
	}

	canvas.Gstyle(fmt.Sprintf("font-family:sans-serif;font-size:12px;fill:%s", pal.Text))

	for i, e := range entries {
		p := geo.at(i, 1+labelGap/geo.radius)
		canvas.Text(p.x, p.y+4, fmt.Sprintf("%s (%s)", e.Language, humanize.Comma(int64(e.Lines))),
			"text-anchor:"+anchorFor(p.x, geo.cx))
	}

	canvas.Gend()
	canvas.End()

	if ew.err != nil {
		return fmt.Errorf("write svg: %w", ew.err)
	}

	return nil
}
