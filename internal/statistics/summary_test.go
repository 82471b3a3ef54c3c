package statistics

import (
	"math"
	"testing"
)

func TestSummary_Empty(t *testing.T) {
	var s Summary
	if s.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty summary, got %f", s.Mean())
	}
	if s.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty summary, got %f", s.Variance())
	}
	if s.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty summary, got %f", s.StdError())
	}
	if s.Median() != 0 {
		t.Errorf("Expected median of 0 for empty summary, got %f", s.Median())
	}
}

func TestSummary_KnownValues(t *testing.T) {
	var s Summary
	for _, v := range []float64{-20, 10, 30, -10, 40} {
		s.Add(v)
	}

	if s.Rounds != 5 {
		t.Fatalf("Expected 5 rounds, got %d", s.Rounds)
	}
	if s.Mean() != 10 {
		t.Errorf("Expected mean 10, got %f", s.Mean())
	}
	// deviations: -30, 0, 20, -20, 30 -> squares sum 2600, /4
	if math.Abs(s.Variance()-650) > 1e-9 {
		t.Errorf("Expected variance 650, got %f", s.Variance())
	}
	if s.Median() != 10 {
		t.Errorf("Expected median 10, got %f", s.Median())
	}
	if s.Percentile(0) != -20 || s.Percentile(1) != 40 {
		t.Errorf("Unexpected extremes %f / %f", s.Percentile(0), s.Percentile(1))
	}
	if got := s.Percentile(0.25); got != -10 {
		t.Errorf("Expected 25th percentile -10, got %f", got)
	}

	lo, hi := s.ConfidenceInterval95()
	if lo >= s.Mean() || hi <= s.Mean() {
		t.Errorf("Confidence interval [%f, %f] should straddle the mean", lo, hi)
	}
	margin := 1.96 * math.Sqrt(650) / math.Sqrt(5)
	if math.Abs((hi-lo)/2-margin) > 1e-9 {
		t.Errorf("Expected margin %f, got %f", margin, (hi-lo)/2)
	}
}
