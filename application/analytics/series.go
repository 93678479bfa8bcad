package analytics

import (
	"math"
	"time"
)

// recentWindowMonths bounds which records are bucketed into a monthly
// series. Only the most recent six calendar months are ever counted, even
// for twelve-bucket series; older buckets stay at zero.
const recentWindowMonths = 6

// PercentageChange expresses current as a rounded percentage of previous.
// A zero previous is treated as infinite growth, approximated as
// current * 100. This is percentage-of-base, not a delta: 150 against 100
// yields 150, not 50. The dashboard has always displayed it that way.
func PercentageChange(current, previous float64) float64 {
	if previous == 0 {
		return current * 100
	}
	return math.Round(current / previous * 100)
}

// Sample is one record contributing to a monthly series.
type Sample struct {
	At    time.Time
	Value float64
}

// MonthlySums buckets samples into a fixed-length series of monthly
// accumulators. Index 0 is the oldest bucket and the last index is the
// current month. A sample lands in bucket length-monthDiff-1, where
// monthDiff is its calendar-month distance from today modulo twelve.
func MonthlySums(length int, today time.Time, samples []Sample) []float64 {
	data := make([]float64, length)

	for _, s := range samples {
		monthDiff := (int(today.Month()) - int(s.At.Month()) + 12) % 12
		if monthDiff < recentWindowMonths {
			data[length-monthDiff-1] += s.Value
		}
	}

	return data
}

// MonthlyCounts buckets creation timestamps, counting one per record.
func MonthlyCounts(length int, today time.Time, createdAt []time.Time) []float64 {
	samples := make([]Sample, 0, len(createdAt))
	for _, at := range createdAt {
		samples = append(samples, Sample{At: at, Value: 1})
	}
	return MonthlySums(length, today, samples)
}
