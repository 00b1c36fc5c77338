package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market_dashboard/internal/config"
	"market_dashboard/internal/marketdata"
)

const snapshotPayload = `{
  "meta": {"lastUpdated": "2025-01-10T08:00:00", "totalJobs": 50},
  "trend": [{"date": "2025-01-09", "jobCount": 20, "avgSalary": 45000}, {"date": "2025-01-10", "jobCount": 30, "avgSalary": 47000}],
  "skills": [{"label": "Python", "value": 30}, {"label": "Go", "value": 20}],
  "regions": [{"label": "台北市", "value": 50, "percentage": 100}],
  "industries": [{"label": "軟體", "value": 45, "percentage": 90}, {"label": "餐飲", "value": 5, "percentage": 10}, {"label": "教育", "value": 1, "percentage": 2}],
  "salaryDist": [{"label": "20-30K", "value": 10}, {"label": "30-40K", "value": 30}, {"label": "40-50K", "value": 10}]
}`

func snapshotConfig() *config.Config {
	return &config.Config{FetchTimeout: 2 * time.Second, OtherThreshold: 5, TopSkills: 1}
}

func TestRunSnapshot(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(snapshotPayload))
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := runSnapshot(&out, snapshotConfig(), marketdata.NewClient(srv.URL, time.Second), " Python ")
	require.NoError(t, err)
	assert.Equal(t, "job_name=Python", gotQuery)

	var printed struct {
		Filter  string `json:"filter"`
		Summary struct {
			Meta struct {
				TotalJobs int `json:"totalJobs"`
			} `json:"meta"`
			TrendFrom    string `json:"trendFrom"`
			TrendTo      string `json:"trendTo"`
			SalaryMedian string `json:"salaryMedian"`
			TopSkills    []struct {
				Label string `json:"label"`
			} `json:"topSkills"`
			Industries []struct {
				Label string  `json:"label"`
				Value float64 `json:"value"`
			} `json:"industries"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &printed))

	assert.Equal(t, "Python", printed.Filter)
	assert.Equal(t, 50, printed.Summary.Meta.TotalJobs)
	assert.Equal(t, "2025-01-09", printed.Summary.TrendFrom)
	assert.Equal(t, "2025-01-10", printed.Summary.TrendTo)
	assert.Equal(t, "30-40K", printed.Summary.SalaryMedian)
	require.Len(t, printed.Summary.TopSkills, 1)
	assert.Equal(t, "Python", printed.Summary.TopSkills[0].Label)
	require.Len(t, printed.Summary.Industries, 3)
	assert.Equal(t, "其他", printed.Summary.Industries[2].Label)
	assert.InDelta(t, 1.0, printed.Summary.Industries[2].Value, 1e-9)
}

func TestRunSnapshotFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := runSnapshot(&out, snapshotConfig(), marketdata.NewClient(srv.URL, time.Second), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP error! status: 500")
	assert.Zero(t, out.Len())
}
