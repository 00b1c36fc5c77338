package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardDataDecodesAPIFieldNames(t *testing.T) {
	body := `{
		"meta": {"lastUpdated": "2025-01-10T08:00:00", "totalJobs": 1234},
		"trend": [{"date": "2025-01-09", "jobCount": 40, "avgSalary": 52000.5}],
		"skills": [{"label": "Python", "value": 120}],
		"regions": [{"label": "台北市", "value": 600, "percentage": 48.6}],
		"industries": [],
		"salaryDist": [{"label": "30-40K", "value": 12, "percentage": 100}]
	}`

	var data DashboardData
	require.NoError(t, json.Unmarshal([]byte(body), &data))

	assert.Equal(t, 1234, data.Meta.TotalJobs)
	assert.Equal(t, "2025-01-09", data.Trend[0].Date)
	assert.Equal(t, 52000.5, data.Trend[0].AvgSalary)
	assert.Nil(t, data.Skills[0].Percentage)
	assert.Equal(t, 0.0, data.Skills[0].Share())
	assert.Equal(t, 48.6, data.Regions[0].Share())
	assert.Empty(t, data.Industries)
	assert.NoError(t, data.Validate())
}

func TestValidateRejectsNegativeValues(t *testing.T) {
	tests := []struct {
		name string
		data DashboardData
	}{
		{"total jobs", DashboardData{Meta: DashboardMeta{TotalJobs: -1}}},
		{"trend", DashboardData{Trend: []TimeSeriesPoint{{Date: "2025-01-01", JobCount: -3}}}},
		{"industries", DashboardData{Industries: []CategoryPoint{{Label: "IT", Value: -1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.data.Validate())
		})
	}
}
