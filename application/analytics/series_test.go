package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPercentageChange(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     float64
	}{
		{name: "both zero", current: 0, previous: 0, want: 0},
		{name: "zero previous scales current", current: 50, previous: 0, want: 5000},
		{name: "percentage of base", current: 150, previous: 100, want: 150},
		{name: "rounds to nearest", current: 1, previous: 3, want: 33},
		{name: "shrinking", current: 50, previous: 100, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PercentageChange(tt.current, tt.previous))
		})
	}
}

func TestMonthlySums(t *testing.T) {
	today := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	t.Run("buckets by month distance", func(t *testing.T) {
		samples := []Sample{
			{At: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), Value: 10},
			{At: time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC), Value: 5},
			{At: time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), Value: 3},
		}

		got := MonthlySums(6, today, samples)

		assert.Equal(t, []float64{0, 0, 0, 3, 5, 10}, got)
	})

	t.Run("accumulates within a bucket", func(t *testing.T) {
		samples := []Sample{
			{At: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), Value: 2},
			{At: time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC), Value: 7},
		}

		got := MonthlySums(6, today, samples)

		assert.Equal(t, 9.0, got[5])
	})

	t.Run("only recent months count even for twelve buckets", func(t *testing.T) {
		samples := []Sample{
			{At: time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC), Value: 100},
			{At: time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC), Value: 4},
		}

		got := MonthlySums(12, today, samples)

		// June is nine months back and stays out; December is three back.
		assert.Equal(t, 0.0, got[2])
		assert.Equal(t, 4.0, got[8])
	})
}

func TestMonthlyCounts(t *testing.T) {
	today := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	created := []time.Time{
		time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
	}

	got := MonthlyCounts(6, today, created)

	assert.Equal(t, []float64{0, 0, 0, 1, 0, 2}, got)
}
