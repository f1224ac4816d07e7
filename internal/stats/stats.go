// Package stats computes descriptive statistics and linear spending trends.
//
// Statistics run on float64: they describe spending rather than account for
// it, so exact decimal arithmetic stops at the aggregation boundary.
package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/budgetbuddy-dev/budgetbuddy/internal/model"
)

// Description summarizes a sample.
type Description struct {
	N      int
	Mean   float64
	Median float64
	StdDev float64 // population
	Min    float64
	Max    float64
}

// Describe computes mean, median, population standard deviation, min and
// max. An empty sample fails with ErrEmptyInput.
func Describe(values []float64) (Description, error) {
	if len(values) == 0 {
		return Description{}, fmt.Errorf("%w: no values to describe", model.ErrEmptyInput)
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	n := float64(len(sorted))
	mean := sum / n

	sq := 0.0
	for _, v := range sorted {
		d := v - mean
		sq += d * d
	}

	mid := len(sorted) / 2
	median := sorted[mid]
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	}

	return Description{
		N:      len(sorted),
		Mean:   mean,
		Median: median,
		StdDev: math.Sqrt(sq / n),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}, nil
}
