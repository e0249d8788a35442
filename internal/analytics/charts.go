package analytics

import (
	"fmt"

	"mailmeter/internal/core"
)

// ChartPoint is one plotted value.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartSeries is a named sequence of points.
type ChartSeries struct {
	Name string       `json:"name"`
	Data []ChartPoint `json:"data"`
}

// ChartConfig is a renderer-agnostic chart specification consumed by the
// dashboard frontend.
type ChartConfig struct {
	ChartType string        `json:"chartType"` // "line" or "bar"
	Title     string        `json:"title"`
	XAxis     string        `json:"xAxis"`
	YAxis     string        `json:"yAxis"`
	YMax      float64       `json:"yMax"`
	Series    []ChartSeries `json:"series"`
}

// Charts bundles the three dashboard figures for one dataset and period.
type Charts struct {
	TimeSeries *ChartConfig `json:"timeSeries"`
	Averages   *ChartConfig `json:"averages"`
	AfterHours *ChartConfig `json:"afterHours"`
}

// YAxisUpper clamps the Y-axis upper bound to avoid degenerate scales: at
// least 20, at most proportional to the observed maximum, with fixed
// headroom added.
func YAxisUpper(maxCount int) float64 {
	scaled := float64(maxCount) * 1.2
	if scaled > 100 {
		scaled = 100
	}
	inner := scaled
	if inner < 20 {
		inner = 20
	}
	upper := float64(maxCount) + 10
	if inner > upper {
		upper = inner
	}
	return upper
}

// BuildAll produces the three dashboard charts for records at the given
// granularity.
func BuildAll(records []core.MailRecord, p Period) Charts {
	buckets := Resample(records, p)
	upper := YAxisUpper(maxCount(buckets))
	return Charts{
		TimeSeries: buildTimeSeries(buckets, p, upper),
		Averages:   buildAverages(buckets, p, upper),
		AfterHours: buildAfterHours(records),
	}
}

func buildTimeSeries(buckets []Bucket, p Period, upper float64) *ChartConfig {
	series := ChartSeries{Name: "Emails"}
	for _, b := range buckets {
		series.Data = append(series.Data, ChartPoint{
			Label: bucketLabel(b, p),
			Value: float64(b.Count),
		})
	}
	return &ChartConfig{
		ChartType: "line",
		Title:     fmt.Sprintf("Emails Received Per %s", p.Label()),
		XAxis:     "Date",
		YAxis:     "Count",
		YMax:      upper,
		Series:    []ChartSeries{series},
	}
}

// buildAverages computes the average chart: one overall bar at monthly
// granularity, otherwise one bar per calendar month.
func buildAverages(buckets []Bucket, p Period, upper float64) *ChartConfig {
	cfg := &ChartConfig{
		ChartType: "bar",
		YAxis:     "Average Count",
		YMax:      upper,
	}
	if p == PeriodMonth {
		cfg.Title = fmt.Sprintf("Average Emails Received Per %s", p.Label())
		cfg.XAxis = "Interval"
		cfg.Series = []ChartSeries{{
			Name: "Average",
			Data: []ChartPoint{{Label: p.Label(), Value: OverallAverage(buckets)}},
		}}
		return cfg
	}

	cfg.Title = fmt.Sprintf("Average Emails Received Per %s in each Month", p.Label())
	cfg.XAxis = "Month"
	series := ChartSeries{Name: "Average"}
	for _, ma := range MonthlyAverages(buckets) {
		series.Data = append(series.Data, ChartPoint{Label: ma.Month, Value: ma.Average})
	}
	cfg.Series = []ChartSeries{series}
	return cfg
}

func buildAfterHours(records []core.MailRecord) *ChartConfig {
	buckets := Resample(AfterHours(records), PeriodDay)
	series := ChartSeries{Name: "After Hours"}
	for _, b := range buckets {
		series.Data = append(series.Data, ChartPoint{
			Label: bucketLabel(b, PeriodDay),
			Value: float64(b.Count),
		})
	}
	return &ChartConfig{
		ChartType: "bar",
		Title:     "Emails Received After 13:30 Per Day",
		XAxis:     "Date",
		YAxis:     "Count",
		YMax:      float64(maxCount(buckets) + 5),
		Series:    []ChartSeries{series},
	}
}

func bucketLabel(b Bucket, p Period) string {
	if p == PeriodMonth {
		return b.Start.Format("2006-01")
	}
	return b.Start.Format("2006-01-02")
}

func maxCount(buckets []Bucket) int {
	m := 0
	for _, b := range buckets {
		if b.Count > m {
			m = b.Count
		}
	}
	return m
}
