package param

import (
	"math"
	"testing"
)

func TestConstantGet(t *testing.T) {
	p := NewConstant(0, 42.0)
	for _, tt := range []float64{-1, 0, 5, 100} {
		if got := p.Get(tt); got != 42.0 {
			t.Fatalf("Get(%g) = %g, want 42.0", tt, got)
		}
	}
}

func TestSeriesRejectsNonIncreasingTimes(t *testing.T) {
	_, err := NewSeries(1, []float64{0, 1, 1}, []float64{0, 1, 0}, false)
	if err == nil {
		t.Fatal("expected error for non-increasing times")
	}
}

func TestSeriesRejectsLengthMismatch(t *testing.T) {
	_, err := NewSeries(1, []float64{0, 1}, []float64{0, 1, 2}, false)
	if err == nil {
		t.Fatal("expected error for length mismatch")
	}
}

func TestPeriodicRequiresClosure(t *testing.T) {
	_, err := NewSeries(1, []float64{0, 0.5, 1}, []float64{0, 1, 0.5}, true)
	if err == nil {
		t.Fatal("expected error: periodic series must close (values[0] == values[last])")
	}
}

func TestPeriodicInterpolationAndWrap(t *testing.T) {
	// Scenario S4: triangular waveform, period 1.0.
	p, err := NewSeries(1, []float64{0, 0.5, 1.0}, []float64{0, 1, 0}, true)
	if err != nil {
		t.Fatalf("NewSeries: %v", err)
	}
	if got := p.Get(0.25); math.Abs(got - 0.5) > 1e-12 {
		t.Fatalf("Get(0.25) = %g, want 0.5", got)
	}
	if got := p.Get(1.25); math.Abs(got - 0.5) > 1e-12 {
		t.Fatalf("Get(1.25) = %g, want 0.5 (period wrap)", got)
	}
	if p.CyclePeriod() != 1.0 {
		t.Fatalf("CyclePeriod() = %g, want 1.0", p.CyclePeriod())
	}
}

func TestPeriodicFidelityP5(t *testing.T) {
	p, err := NewSeries(1, []float64{0, 0.3, 0.7, 1.0}, []float64{2, 5, -1, 2}, true)
	if err != nil {
		t.Fatalf("NewSeries: %v", err)
	}
	period := p.CyclePeriod()
	for _, tt := range []float64{0.1, 0.5, 0.9, 1.4} {
		a, b := p.Get(tt), p.Get(tt+period)
		if a != b {
			t.Fatalf("Get(%g)=%g != Get(%g)=%g, periodic fidelity violated", tt, a, tt+period, b)
		}
	}
}

func TestNonPeriodicClamps(t *testing.T) {
	p, err := NewSeries(1, []float64{0, 1, 2}, []float64{10, 20, 5}, false)
	if err != nil {
		t.Fatalf("NewSeries: %v", err)
	}
	if got := p.Get(-5); got != 10 {
		t.Fatalf("Get(-5) = %g, want clamp to 10", got)
	}
	if got := p.Get(50); got != 5 {
		t.Fatalf("Get(50) = %g, want clamp to 5", got)
	}
}

func TestSteadyRoundTripP6(t *testing.T) {
	p, err := NewSeries(1, []float64{0, 0.5, 1.0}, []float64{0, 2, 0}, true)
	if err != nil {
		t.Fatalf("NewSeries: %v", err)
	}
	before := make([]float64, 0, 5)
	for _, tt := range []float64{0, 0.1, 0.4, 0.6, 0.99} {
		before = append(before, p.Get(tt))
	}
	p.ToSteady()
	if p.IsSeries() {
		t.Fatal("expected ToSteady to collapse the series to a constant")
	}
	p.ToUnsteady()
	if !p.IsSeries() {
		t.Fatal("expected ToUnsteady to restore the series")
	}
	for i, tt := range []float64{0, 0.1, 0.4, 0.6, 0.99} {
		if got := p.Get(tt); got != before[i] {
			t.Fatalf("Get(%g) after round-trip = %g, want %g", tt, got, before[i])
		}
	}
}

func TestConstantSteadyRoundTrip(t *testing.T) {
	p := NewConstant(0, 7.0)
	p.ToSteady()
	if got := p.Get(0); got != 7.0 {
		t.Fatalf("Get during steady = %g, want 7.0", got)
	}
	p.ToUnsteady()
	if got := p.Get(0); got != 7.0 {
		t.Fatalf("Get after unsteady = %g, want 7.0", got)
	}
}

func TestTrapezoidalMean(t *testing.T) {
	// Triangular wave 0 -> 1 -> 0 over period 1: mean should be 0.5.
	p, err := NewSeries(1, []float64{0, 0.5, 1.0}, []float64{0, 1, 0}, true)
	if err != nil {
		t.Fatalf("NewSeries: %v", err)
	}
	p.ToSteady()
	if got := p.Get(0); math.Abs(got - 0.5) > 1e-12 {
		t.Fatalf("steady mean = %g, want 0.5", got)
	}
}
