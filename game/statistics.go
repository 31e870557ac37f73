package game

import (
	"math"
	"slices"
)

// Series accumulates samples of a per-frame quantity, such as the horizontal speed of a player.
// The zero value is an empty series.
type Series struct {
	samples []float64
}

// Add appends a sample.
func (s *Series) Add(v float32) {
	s.samples = append(s.samples, float64(v))
}

// Len returns the amount of samples.
func (s *Series) Len() int {
	return len(s.samples)
}

// Sum ...
func (s *Series) Sum() (result float64) {
	for _, v := range s.samples {
		result += v
	}
	return result
}

// Mean ...
func (s *Series) Mean() float64 {
	if len(s.samples) == 0 {
		return 0
	}
	return s.Sum() / float64(len(s.samples))
}

// Median returns the middle sample, or the mean of the two middle samples for an even count.
func (s *Series) Median() float64 {
	count := len(s.samples)
	if count == 0 {
		return 0
	}
	sorted := slices.Clone(s.samples)
	slices.Sort(sorted)
	if count%2 != 0 {
		return sorted[count/2]
	}
	return (sorted[count/2-1] + sorted[count/2]) * 0.5
}

// Variance returns the population variance of the samples.
func (s *Series) Variance() (variance float64) {
	if len(s.samples) == 0 {
		return 0
	}
	mean := s.Mean()
	for _, v := range s.samples {
		variance += (v - mean) * (v - mean)
	}
	return variance / float64(len(s.samples))
}

// StandardDeviation ...
func (s *Series) StandardDeviation() float64 {
	return math.Sqrt(s.Variance())
}

// Max returns the largest sample, or zero for an empty series.
func (s *Series) Max() float64 {
	if len(s.samples) == 0 {
		return 0
	}
	return slices.Max(s.samples)
}
