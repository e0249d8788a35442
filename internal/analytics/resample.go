package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"mailmeter/internal/core"
)

// Period is the bucket width used when resampling records.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// ParsePeriod accepts both the long form and the single-letter form used by
// the dashboard dropdown (D/W/M).
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "d":
		return PeriodDay, nil
	case "week", "w":
		return PeriodWeek, nil
	case "month", "m", "":
		return PeriodMonth, nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// Label returns the human-readable period name used in chart titles.
func (p Period) Label() string {
	switch p {
	case PeriodDay:
		return "Day"
	case PeriodWeek:
		return "Week"
	default:
		return "Month"
	}
}

// Bucket is one fixed-width time window with its record count.
type Bucket struct {
	Start time.Time
	Count int
}

// MonthAverage is the mean bucket count within one calendar month.
type MonthAverage struct {
	Month   string // "2006-01"
	Average float64
}

// afterHoursCutoff is the minutes-past-midnight boundary: records delivered
// later than 13:30 count as after-hours.
const afterHoursCutoff = 13*60 + 30

// Resample buckets records by date into a continuous range of fixed-width
// windows from the earliest to the latest record, zero-filling empty
// buckets. Records without a parseable date are skipped.
func Resample(records []core.MailRecord, p Period) []Bucket {
	counts := make(map[time.Time]int)
	var first, last time.Time
	for _, r := range records {
		if !r.HasDate() {
			continue
		}
		start := bucketStart(r.Date, p)
		counts[start]++
		if first.IsZero() || start.Before(first) {
			first = start
		}
		if start.After(last) {
			last = start
		}
	}
	if len(counts) == 0 {
		return nil
	}

	var buckets []Bucket
	for t := first; !t.After(last); t = nextBucket(t, p) {
		buckets = append(buckets, Bucket{Start: t, Count: counts[t]})
	}
	return buckets
}

// TotalCount sums bucket counts. Always equals the number of records with a
// parseable date.
func TotalCount(buckets []Bucket) int {
	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	return total
}

// OverallAverage is the mean count across all buckets.
func OverallAverage(buckets []Bucket) float64 {
	if len(buckets) == 0 {
		return 0
	}
	return float64(TotalCount(buckets)) / float64(len(buckets))
}

// MonthlyAverages computes the mean bucket count per calendar month, ordered
// chronologically. Zero-filled buckets participate in the mean.
func MonthlyAverages(buckets []Bucket) []MonthAverage {
	type acc struct {
		sum int
		n   int
	}
	byMonth := make(map[string]*acc)
	for _, b := range buckets {
		key := b.Start.Format("2006-01")
		a, ok := byMonth[key]
		if !ok {
			a = &acc{}
			byMonth[key] = a
		}
		a.sum += b.Count
		a.n++
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]MonthAverage, 0, len(months))
	for _, m := range months {
		a := byMonth[m]
		out = append(out, MonthAverage{Month: m, Average: float64(a.sum) / float64(a.n)})
	}
	return out
}

// AfterHours returns the subset of records delivered later than 13:30 on
// their day.
func AfterHours(records []core.MailRecord) []core.MailRecord {
	var out []core.MailRecord
	for _, r := range records {
		if !r.HasDate() {
			continue
		}
		minutes := r.Date.Hour()*60 + r.Date.Minute()
		if minutes > afterHoursCutoff || (minutes == afterHoursCutoff && (r.Date.Second() > 0 || r.Date.Nanosecond() > 0)) {
			out = append(out, r)
		}
	}
	return out
}

// bucketStart floors a timestamp to its containing window. Weeks are ISO
// weeks starting Monday.
func bucketStart(t time.Time, p Period) time.Time {
	y, m, d := t.Date()
	switch p {
	case PeriodDay:
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	case PeriodWeek:
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
		return day.AddDate(0, 0, -offset)
	default:
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	}
}

func nextBucket(t time.Time, p Period) time.Time {
	switch p {
	case PeriodDay:
		return t.AddDate(0, 0, 1)
	case PeriodWeek:
		return t.AddDate(0, 0, 7)
	default:
		return t.AddDate(0, 1, 0)
	}
}
