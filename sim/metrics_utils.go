// sim/metrics_utils.go
package sim

import (
	"slices"

	"gonum.org/v1/gonum/stat"
)

type IntOrFloat64 interface {
	int | int64 | float64
}

func toFloat64s[T IntOrFloat64](data []T) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = float64(v)
	}
	return out
}

// CalculateMean is a util function that calculates the mean of a data list.
// Returns 0 for an empty list.
func CalculateMean[T IntOrFloat64](numbers []T) float64 {
	if len(numbers) == 0 {
		return 0.0
	}
	return stat.Mean(toFloat64s(numbers), nil)
}

// CalculateMedian returns the middle value of data. For an even count it is the
// average of the two middle values. The input is not modified.
// Returns 0 for an empty list.
func CalculateMedian[T IntOrFloat64](data []T) float64 {
	n := len(data)
	if n == 0 {
		return 0.0
	}
	sorted := slices.Clone(data)
	slices.Sort(sorted)
	if n%2 == 0 {
		m := n / 2
		return (float64(sorted[m-1]) + float64(sorted[m])) / 2.0
	}
	return float64(sorted[n/2])
}

// MaxOf returns the largest element of data, or empty if data has no elements.
func MaxOf[T IntOrFloat64](data []T, empty T) T {
	if len(data) == 0 {
		return empty
	}
	return slices.Max(data)
}

// CountAbove counts the elements strictly greater than threshold.
func CountAbove[T IntOrFloat64](data []T, threshold T) int {
	count := 0
	for _, v := range data {
		if v > threshold {
			count++
		}
	}
	return count
}
