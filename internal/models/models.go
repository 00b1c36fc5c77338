package models

import "fmt"

// DashboardData is the aggregate returned by GET /api/dashboard.
type DashboardData struct {
	Meta       DashboardMeta     `json:"meta"`
	Trend      []TimeSeriesPoint `json:"trend"`
	Skills     []CategoryPoint   `json:"skills"`
	Regions    []CategoryPoint   `json:"regions"`
	Industries []CategoryPoint   `json:"industries"`
	SalaryDist []CategoryPoint   `json:"salaryDist"`
}

// DashboardMeta carries freshness and volume of the dataset.
type DashboardMeta struct {
	LastUpdated string `json:"lastUpdated"`
	TotalJobs   int    `json:"totalJobs"`
}

// TimeSeriesPoint is one day of postings, oldest first.
type TimeSeriesPoint struct {
	Date      string  `json:"date"`
	JobCount  int     `json:"jobCount"`
	AvgSalary float64 `json:"avgSalary"`
}

// CategoryPoint is one bucket of a category or histogram series.
type CategoryPoint struct {
	Label      string   `json:"label"`
	Value      float64  `json:"value"`
	Percentage *float64 `json:"percentage,omitempty"`
}

// Share returns the percentage, or 0 when the API omitted it.
func (p CategoryPoint) Share() float64 {
	if p.Percentage == nil {
		return 0
	}
	return *p.Percentage
}

// Percent is a helper for building CategoryPoint literals.
func Percent(v float64) *float64 {
	return &v
}

// Validate rejects payloads that decode but break the value invariants.
func (d *DashboardData) Validate() error {
	if d.Meta.TotalJobs < 0 {
		return fmt.Errorf("meta.totalJobs is negative: %d", d.Meta.TotalJobs)
	}
	for i, p := range d.Trend {
		if p.JobCount < 0 || p.AvgSalary < 0 {
			return fmt.Errorf("trend[%d] has a negative value", i)
		}
	}
	series := []struct {
		name   string
		points []CategoryPoint
	}{
		{"skills", d.Skills},
		{"regions", d.Regions},
		{"industries", d.Industries},
		{"salaryDist", d.SalaryDist},
	}
	for _, s := range series {
		for i, p := range s.points {
			if p.Value < 0 {
				return fmt.Errorf("%s[%d] has a negative value", s.name, i)
			}
		}
	}
	return nil
}

// ErrorResponse standard error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}
