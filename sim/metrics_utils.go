// sim/metrics_utils.go
package sim

import (
	"math"
	"sort"
)

type IntOrFloat64 interface {
	int | int64 | float64
}

// CalculatePercentile returns the p-th percentile of data, linearly
// interpolated between ranks. data must be sorted ascending. Returns 0 for
// empty data. Values keep their unit (ticks).
func CalculatePercentile[T IntOrFloat64](data []T, p float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}

	rank := p / 100.0 * float64(n-1)
	lowerIdx := int(math.Floor(rank))
	upperIdx := int(math.Ceil(rank))
	if upperIdx >= n {
		return float64(data[n-1])
	}
	if lowerIdx == upperIdx {
		return float64(data[lowerIdx])
	}
	lowerVal, upperVal := float64(data[lowerIdx]), float64(data[upperIdx])
	return lowerVal + (upperVal-lowerVal)*(rank-float64(lowerIdx))
}

// CalculateMean returns the arithmetic mean of numbers, 0 when empty.
func CalculateMean[T IntOrFloat64](numbers []T) float64 {
	if len(numbers) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, number := range numbers {
		sum += float64(number)
	}

	return sum / float64(len(numbers))
}

// Distribution summarizes a set of per-ship durations in ticks.
type Distribution struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	P50   float64 `json:"p50"`
	P90   float64 `json:"p90"`
	P99   float64 `json:"p99"`
	Max   float64 `json:"max"`
}

// NewDistribution summarizes the values of a per-ship map.
func NewDistribution(byShip map[string]int64) Distribution {
	values := make([]int64, 0, len(byShip))
	for _, v := range byShip {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	d := Distribution{
		Count: len(values),
		Mean:  CalculateMean(values),
		P50:   CalculatePercentile(values, 50),
		P90:   CalculatePercentile(values, 90),
		P99:   CalculatePercentile(values, 99),
	}
	if len(values) > 0 {
		d.Max = float64(values[len(values)-1])
	}
	return d
}
