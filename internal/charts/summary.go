package charts

import "market_dashboard/internal/models"

// Summary is the chart-ready view of one DashboardData document.
type Summary struct {
	Meta         models.DashboardMeta   `json:"meta"`
	TrendFrom    string                 `json:"trendFrom,omitempty"`
	TrendTo      string                 `json:"trendTo,omitempty"`
	TopSkills    []models.CategoryPoint `json:"topSkills"`
	Regions      []models.CategoryPoint `json:"regions"`
	Industries   []models.CategoryPoint `json:"industries"`
	SalaryMedian string                 `json:"salaryMedian,omitempty"`
}

// Summarize applies the same transforms the charts use.
func Summarize(data *models.DashboardData, opts Options) Summary {
	if data == nil {
		return Summary{}
	}

	s := Summary{
		Meta:       data.Meta,
		TopSkills:  TopN(data.Skills, opts.TopSkills),
		Regions:    data.Regions,
		Industries: GroupSmall(data.Industries, opts.OtherThreshold),
	}
	if n := len(data.Trend); n > 0 {
		s.TrendFrom = data.Trend[0].Date
		s.TrendTo = data.Trend[n-1].Date
	}
	if label, ok := MedianLabel(data.SalaryDist); ok {
		s.SalaryMedian = label
	}
	return s
}
