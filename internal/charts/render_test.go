package charts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market_dashboard/internal/layout"
	"market_dashboard/internal/models"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func fixture() *models.DashboardData {
	return &models.DashboardData{
		Meta: models.DashboardMeta{LastUpdated: "2025-01-10T08:00:00", TotalJobs: 360},
		Trend: []models.TimeSeriesPoint{
			{Date: "2025-01-08", JobCount: 100, AvgSalary: 45000},
			{Date: "2025-01-09", JobCount: 120, AvgSalary: 47000},
			{Date: "2025-01-10", JobCount: 140, AvgSalary: 46000},
		},
		Skills: []models.CategoryPoint{
			pt("Python", 90), pt("JavaScript", 80), pt("SQL", 60), pt("Go", 30),
		},
		Regions: []models.CategoryPoint{
			pt("台北市", 200, 55.6), pt("新北市", 100, 27.8), pt("台中市", 60, 16.6),
		},
		Industries: []models.CategoryPoint{
			pt("軟體", 250, 69.4), pt("半導體", 90, 25), pt("教育", 12, 3.3), pt("餐飲", 8, 2.2),
		},
		SalaryDist: []models.CategoryPoint{
			pt("20-30K", 60, 16.7), pt("30-40K", 180, 50), pt("40-50K", 120, 33.3),
		},
	}
}

func TestRenderEveryConfiguredChart(t *testing.T) {
	data := fixture()

	for _, cfg := range layout.Dashboard {
		t.Run(cfg.ID, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, cfg, data, DefaultOptions()))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
		})
	}
}

func TestEveryChartTypeHasRenderer(t *testing.T) {
	for _, ct := range layout.ChartTypes {
		assert.NotNil(t, rendererFor(ct), ct)
	}
	assert.Nil(t, rendererFor("heatmap"))
}

func TestRenderUnknownTypeRendersNothing(t *testing.T) {
	var buf bytes.Buffer

	err := Render(&buf, layout.ChartConfig{ID: "x", ColSpan: 4, Type: "heatmap"}, fixture(), DefaultOptions())

	assert.ErrorIs(t, err, ErrUnknownChart)
	assert.Zero(t, buf.Len())
}

func TestRenderWithoutData(t *testing.T) {
	empty := &models.DashboardData{}

	for _, cfg := range layout.Dashboard {
		t.Run(cfg.ID, func(t *testing.T) {
			var buf bytes.Buffer
			assert.ErrorIs(t, Render(&buf, cfg, nil, DefaultOptions()), ErrNoData)
			assert.ErrorIs(t, Render(&buf, cfg, empty, DefaultOptions()), ErrNoData)
			assert.Zero(t, buf.Len())
		})
	}
}

func TestRenderSinglePointSeries(t *testing.T) {
	data := &models.DashboardData{
		Trend:      []models.TimeSeriesPoint{{Date: "2025-01-10", JobCount: 5, AvgSalary: 40000}},
		SalaryDist: []models.CategoryPoint{pt("30-40K", 5)},
	}

	for _, id := range []string{"hero-trend", "salary-dist"} {
		cfg, ok := layout.Lookup(id)
		require.True(t, ok)

		var buf bytes.Buffer
		require.NoError(t, Render(&buf, cfg, data, DefaultOptions()), id)
		assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
	}
}

func TestSummarize(t *testing.T) {
	opts := DefaultOptions()
	opts.TopSkills = 2

	s := Summarize(fixture(), opts)

	assert.Equal(t, 360, s.Meta.TotalJobs)
	assert.Equal(t, "2025-01-08", s.TrendFrom)
	assert.Equal(t, "2025-01-10", s.TrendTo)
	assert.Equal(t, []string{"Python", "JavaScript"}, labels(s.TopSkills))
	assert.Equal(t, []string{"軟體", "半導體", OtherLabel}, labels(s.Industries))
	assert.Equal(t, "30-40K", s.SalaryMedian)

	assert.Equal(t, Summary{}, Summarize(nil, opts))
}

func labels(points []models.CategoryPoint) []string {
	out := make([]string, len(points))
	for i, p := range points {
		out[i] = p.Label
	}
	return out
}
