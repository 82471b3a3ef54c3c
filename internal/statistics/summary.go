package statistics

import (
	"math"
	"sort"
)

// Summary accumulates a series of per-round money deltas for one seat
type Summary struct {
	Rounds int       `json:"rounds"`
	Sum    float64   `json:"sum"`
	SumSq  float64   `json:"-"` // sum of squares for variance
	Values []float64 `json:"-"`
}

// Add incorporates one round's delta
func (s *Summary) Add(delta float64) {
	s.Rounds++
	s.Sum += delta
	s.SumSq += delta * delta
	s.Values = append(s.Values, delta)
}

// Mean returns the average delta per round
func (s *Summary) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.Sum / float64(s.Rounds)
}

// Variance returns the sample variance
func (s *Summary) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	v := (s.SumSq - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
	return math.Max(v, 0)
}

// StdDev returns the sample standard deviation
func (s *Summary) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Summary) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Summary) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median delta
func (s *Summary) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the linearly interpolated value at p (0.0 to 1.0)
func (s *Summary) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
