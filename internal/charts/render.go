package charts

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"market_dashboard/internal/layout"
	"market_dashboard/internal/models"
)

var (
	// ErrNoData means the series is empty or all-zero; callers render nothing.
	ErrNoData = errors.New("charts: no data to render")

	// ErrUnknownChart is returned for a chart type outside the known five.
	ErrUnknownChart = errors.New("charts: unknown chart type")
)

// Options shapes the rendered output.
type Options struct {
	OtherThreshold float64
	TopSkills      int
	ColumnWidth    int
	RowHeight      int
}

// DefaultOptions returns the layout used by the dashboard page.
func DefaultOptions() Options {
	return Options{
		OtherThreshold: DefaultOtherThreshold,
		TopSkills:      DefaultTopSkills,
		ColumnWidth:    100,
		RowHeight:      320,
	}
}

type renderFunc func(w io.Writer, cfg layout.ChartConfig, data *models.DashboardData, opts Options) error

// rendererFor maps every chart type to its renderer; nil means render nothing.
func rendererFor(t layout.ChartType) renderFunc {
	switch t {
	case layout.ChartTrend:
		return renderTrend
	case layout.ChartSkills:
		return renderSkills
	case layout.ChartRegions:
		return renderRegions
	case layout.ChartIndustries:
		return renderIndustries
	case layout.ChartSalary:
		return renderSalary
	default:
		return nil
	}
}

// Render writes cfg's chart for data as PNG.
func Render(w io.Writer, cfg layout.ChartConfig, data *models.DashboardData, opts Options) error {
	render := rendererFor(cfg.Type)
	if render == nil {
		return fmt.Errorf("%w: %q", ErrUnknownChart, cfg.Type)
	}
	if data == nil {
		return ErrNoData
	}
	return render(w, cfg, data, opts)
}

func size(cfg layout.ChartConfig, opts Options) (int, int) {
	return cfg.ColSpan * opts.ColumnWidth, cfg.Rows() * opts.RowHeight
}

func hex(c string) drawing.Color {
	return drawing.ColorFromHex(c)
}

// valueRange pads the top so bars and lines never touch the frame, and
// never collapses to a zero-height range.
func valueRange(values []float64) *chart.ContinuousRange {
	var max float64
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		max = 1
	}
	return &chart.ContinuousRange{Min: 0, Max: max * 1.1}
}

func parseDate(s string) (time.Time, bool) {
	if len(s) >= 10 {
		s = s[:10]
	}
	t, err := time.Parse("2006-01-02", s)
	return t, err == nil
}

func renderTrend(w io.Writer, cfg layout.ChartConfig, data *models.DashboardData, opts Options) error {
	var (
		dates    []time.Time
		counts   []float64
		salaries []float64
	)
	for _, p := range data.Trend {
		d, ok := parseDate(p.Date)
		if !ok {
			continue
		}
		dates = append(dates, d)
		counts = append(counts, float64(p.JobCount))
		salaries = append(salaries, p.AvgSalary)
	}
	if len(dates) == 0 {
		return ErrNoData
	}

	minT, maxT := dates[0], dates[len(dates)-1]
	if !maxT.After(minT) {
		minT, maxT = minT.Add(-12*time.Hour), maxT.Add(12*time.Hour)
	}

	width, height := size(cfg, opts)
	ch := chart.Chart{
		Title:      cfg.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
			Range:          &chart.ContinuousRange{Min: chart.TimeToFloat64(minT), Max: chart.TimeToFloat64(maxT)},
		},
		YAxis:          chart.YAxis{Name: "職缺數", Range: valueRange(counts)},
		YAxisSecondary: chart.YAxis{Name: "avg salary", Range: valueRange(salaries)},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "職缺數",
				Style:   chart.Style{StrokeColor: hex(layout.ColorPrimary), StrokeWidth: 2, FillColor: hex(layout.ColorPrimary).WithAlpha(48)},
				XValues: dates,
				YValues: counts,
			},
			chart.TimeSeries{
				Name:    "平均薪資",
				YAxis:   chart.YAxisSecondary,
				Style:   chart.Style{StrokeColor: hex(layout.ColorAccent), StrokeWidth: 2, StrokeDashArray: []float64{4, 4}},
				XValues: dates,
				YValues: salaries,
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}

func bars(points []models.CategoryPoint) ([]chart.Value, []float64) {
	values := make([]chart.Value, 0, len(points))
	raw := make([]float64, 0, len(points))
	for i, p := range points {
		color := hex(layout.PaletteAt(i))
		values = append(values, chart.Value{
			Label: p.Label,
			Value: p.Value,
			Style: chart.Style{FillColor: color, StrokeColor: color},
		})
		raw = append(raw, p.Value)
	}
	return values, raw
}

func renderBars(w io.Writer, cfg layout.ChartConfig, points []models.CategoryPoint, opts Options) error {
	if len(points) == 0 {
		return ErrNoData
	}
	values, raw := bars(points)

	width, height := size(cfg, opts)
	barWidth := (width - 80) / (2 * len(values))
	if barWidth < 8 {
		barWidth = 8
	}
	bc := chart.BarChart{
		Title:      cfg.Title,
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		Background: chart.Style{Padding: chart.Box{Top: 40, Bottom: 24}},
		YAxis:      chart.YAxis{Range: valueRange(raw)},
		Bars:       values,
	}
	return bc.Render(chart.PNG, w)
}

func renderSkills(w io.Writer, cfg layout.ChartConfig, data *models.DashboardData, opts Options) error {
	return renderBars(w, cfg, TopN(data.Skills, opts.TopSkills), opts)
}

func renderRegions(w io.Writer, cfg layout.ChartConfig, data *models.DashboardData, opts Options) error {
	return renderBars(w, cfg, data.Regions, opts)
}

func renderIndustries(w io.Writer, cfg layout.ChartConfig, data *models.DashboardData, opts Options) error {
	grouped := GroupSmall(data.Industries, opts.OtherThreshold)

	var total float64
	values := make([]chart.Value, 0, len(grouped))
	for i, p := range grouped {
		total += p.Value
		color := hex(layout.PaletteAt(i))
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", p.Label, p.Share()),
			Value: p.Value,
			Style: chart.Style{FillColor: color, StrokeColor: drawing.ColorWhite},
		})
	}
	if total == 0 {
		return ErrNoData
	}

	width, height := size(cfg, opts)
	dc := chart.DonutChart{
		Title:  cfg.Title,
		Width:  width,
		Height: height,
		Values: values,
	}
	return dc.Render(chart.PNG, w)
}

func renderSalary(w io.Writer, cfg layout.ChartConfig, data *models.DashboardData, opts Options) error {
	points := data.SalaryDist
	if len(points) == 0 {
		return ErrNoData
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	// Blank edge ticks keep the x-range non-zero when there is one bucket;
	// go-chart derives the range from the ticks when they are set.
	n := float64(len(points))
	ticks := make([]chart.Tick, 0, len(points)+2)
	ticks = append(ticks, chart.Tick{Value: -0.5})
	for i, p := range points {
		xs[i] = float64(i)
		ys[i] = p.Value
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: p.Label})
	}
	yRange := valueRange(ys)
	ticks = append(ticks, chart.Tick{Value: n - 0.5})
	idx := MedianIndex(points)
	median := float64(idx)

	width, height := size(cfg, opts)
	ch := chart.Chart{
		Title:      cfg.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: -0.5, Max: n - 0.5},
		},
		YAxis: chart.YAxis{Name: "職缺數", Range: yRange},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "職缺數",
				Style:   chart.Style{StrokeColor: hex(layout.ColorSuccess), StrokeWidth: 2, FillColor: hex(layout.ColorSuccess).WithAlpha(80)},
				XValues: xs,
				YValues: ys,
			},
			chart.ContinuousSeries{
				Name:    "中位數",
				Style:   chart.Style{StrokeColor: hex(layout.ColorAccent), StrokeWidth: 2, StrokeDashArray: []float64{5, 5}},
				XValues: []float64{median, median},
				YValues: []float64{0, yRange.Max},
			},
			chart.AnnotationSeries{
				Annotations: []chart.Value2{{
					XValue: median,
					YValue: yRange.Max,
					Label:  "中位數 " + strings.TrimSpace(points[idx].Label),
				}},
			},
		},
	}
	return ch.Render(chart.PNG, w)
}
