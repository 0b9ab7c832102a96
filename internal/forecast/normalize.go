// Package forecast turns the raw 3-hour forecast series into render-ready
// views: a one-sample-per-day outlook and a 24-hour chart record set. All
// date bucketing and hour comparison happens in UTC, matching the
// provider's epoch timestamps.
package forecast

import (
	"math"
	"time"

	"github.com/Mani-Chandra65/Weather-App/internal/owm"
)

const (
	maxDailyEntries = 5
	maxChartRecords = 8
	// referenceHour is the preferred local hour for a day's representative
	// sample.
	referenceHour = 12
)

// DailyEntry is one day of the multi-day outlook: a display label plus the
// representative sample chosen for that calendar day.
type DailyEntry struct {
	Label  string             `json:"label"`
	Sample owm.ForecastSample `json:"sample"`
}

// Daily reduces the series to at most five entries, one per calendar day in
// first-seen order. A day's representative starts as its first sample and
// is replaced by any later sample landing on the noon hour. The first entry
// is labeled "Today"; the rest carry weekday short names.
func Daily(samples []owm.ForecastSample) []DailyEntry {
	type bucket struct {
		date   string
		sample owm.ForecastSample
	}

	index := make(map[string]int)
	var buckets []bucket

	for _, s := range samples {
		t := time.Unix(s.Dt, 0).UTC()
		date := t.Format("2006-01-02")

		i, seen := index[date]
		if !seen {
			index[date] = len(buckets)
			buckets = append(buckets, bucket{date: date, sample: s})
			continue
		}
		if t.Hour() == referenceHour {
			buckets[i].sample = s
		}
	}

	if len(buckets) > maxDailyEntries {
		buckets = buckets[:maxDailyEntries]
	}

	entries := make([]DailyEntry, 0, len(buckets))
	for i, b := range buckets {
		label := "Today"
		if i > 0 {
			label = time.Unix(b.sample.Dt, 0).UTC().Format("Mon")
		}
		entries = append(entries, DailyEntry{Label: label, Sample: b.sample})
	}
	return entries
}

// ChartRecord is one unit-converted point of the 24-hour chart series.
type ChartRecord struct {
	Time          string  `json:"time"`
	Temperature   int     `json:"temperature"`
	Humidity      int     `json:"humidity"`
	Pressure      float64 `json:"pressure"`
	WindSpeed     int     `json:"windSpeed"`
	Precipitation float64 `json:"precipitation"`
}

// Hourly takes the first eight samples (roughly 24 hours at 3-hour spacing)
// verbatim, in order, and converts each for charting.
func Hourly(samples []owm.ForecastSample) []ChartRecord {
	n := len(samples)
	if n > maxChartRecords {
		n = maxChartRecords
	}

	records := make([]ChartRecord, 0, n)
	for _, s := range samples[:n] {
		records = append(records, ChartRecord{
			Time:          time.Unix(s.Dt, 0).UTC().Format("Jan 2, 03:04 PM"),
			Temperature:   int(math.Round(s.Main.Temp)),
			Humidity:      s.Main.Humidity,
			Pressure:      s.Main.Pressure,
			WindSpeed:     KmhFromMps(s.Wind.Speed),
			Precipitation: precipitation(s),
		})
	}
	return records
}

// precipitation reports the 3-hour rain volume if present, else the 3-hour
// snow volume, else zero.
func precipitation(s owm.ForecastSample) float64 {
	if s.Rain != nil && s.Rain.ThreeH > 0 {
		return s.Rain.ThreeH
	}
	if s.Snow != nil && s.Snow.ThreeH > 0 {
		return s.Snow.ThreeH
	}
	return 0
}
