package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/locradar/pkg/linecount"
)

const (
	radarAreaOpacity = 0.35
	radarLineWidth   = 2
	seriesName       = "lines"
)

// newRadarChart builds the interactive radar for entries.
func newRadarChart(entries []linecount.Entry, o ChartOptions) *charts.Radar {
	pal := paletteFor(o.Theme)
	peak := linecount.MaxLines(entries)

	indicators := make([]*opts.Indicator, len(entries))
	values := make([]float64, len(entries))

	for i, e := range entries {
		indicators[i] = &opts.Indicator{Name: e.Language, Max: float32(peak)}
		values[i] = float64(e.Lines)
	}

	radar := charts.NewRadar()
	radar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       o.Title,
			Width:           strconv.Itoa(o.Width) + "px",
			Height:          strconv.Itoa(o.Height) + "px",
			BackgroundColor: pal.Background,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:         o.Title,
			Subtitle:      o.Subtitle,
			Left:          "center",
			TitleStyle:    &opts.TextStyle{Color: pal.Text},
			SubtitleStyle: &opts.TextStyle{Color: pal.TextMuted},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
		charts.WithRadarComponentOpts(opts.RadarComponent{
			Indicator:   indicators,
			Shape:       "polygon",
			SplitNumber: ringCount,
			SplitLine:   &opts.SplitLine{Show: opts.Bool(true), LineStyle: &opts.LineStyle{Color: pal.Grid}},
			SplitArea:   &opts.SplitArea{Show: opts.Bool(true)},
			AxisLine:    &opts.AxisLine{Show: opts.Bool(true), LineStyle: &opts.LineStyle{Color: pal.Axis}},
			AxisName:    &opts.AxisName{Color: pal.TextMuted},
		}),
	)

	radar.AddSeries(seriesName, []opts.RadarData{{Name: seriesName, Value: values}},
		charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(radarAreaOpacity), Color: pal.Series}),
		charts.WithLineStyleOpts(opts.LineStyle{Width: radarLineWidth, Color: pal.Series}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: pal.Series}),
	)

	return radar
}

// WriteRadarHTML writes a standalone HTML page with an interactive radar.
func WriteRadarHTML(w io.Writer, entries []linecount.Entry, o ChartOptions) error {
	if len(entries) == 0 || linecount.MaxLines(entries) == 0 {
		return ErrNothingToRender
	}

	o = o.withDefaults()

	if err := newRadarChart(entries, o).Render(w); err != nil {
		return fmt.Errorf("render html radar: %w", err)
	}

	return nil
}
