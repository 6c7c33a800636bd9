// Package param implements Parameter, the scalar or time-dependent
// coefficient described in spec §3/§4.A. A Parameter is either a
// constant scalar or a periodic (or non-periodic) time series sampled
// with linear interpolation.
package param

import (
	"fmt"
	"math"

	"zerod0d/zerr"
)

// ID identifies a Parameter within a Model's parameter table.
type ID int

// Parameter is a constant scalar or a piecewise-linear time series,
// optionally periodic.
type Parameter struct {
	id ID

	times  []float64
	values []float64

	periodic     bool
	cyclePeriod  float64 // times[last] - times[0], only meaningful when len(times) > 0
	isSeries     bool
	constant     float64
	steadyCache  float64 // original constant value, valid only while steady
	steadyActive bool
}

// NewConstant builds a constant-valued Parameter.
func NewConstant(id ID, v float64) *Parameter {
	return &Parameter{id: id, constant: v}
}

// NewSeries builds a periodic or non-periodic time series Parameter.
// It fails if times is not strictly increasing, if the two slices
// differ in length, or if periodic and values[0] != values[last].
func NewSeries(id ID, times, values []float64, periodic bool) (*Parameter, error) {
	if len(times) != len(values) {
		return nil, zerr.Configurationf("parameter %d: times and values length mismatch (%d vs %d)", id, len(times), len(values))
	}
	if len(times) < 2 {
		return nil, zerr.Configurationf("parameter %d: series needs at least two samples", id)
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return nil, zerr.Configurationf("parameter %d: times must be strictly increasing (index %d)", id, i)
		}
	}
	if periodic && values[0] != values[len(values)-1] {
		return nil, zerr.Configurationf("parameter %d: periodic series requires values[0] == values[last] for continuity across the period", id)
	}
	p := &Parameter{
		id:          id,
		times:       append([]float64(nil), times...),
		values:      append([]float64(nil), values...),
		periodic:    periodic,
		cyclePeriod: times[len(times)-1] - times[0],
		isSeries:    true,
	}
	return p, nil
}

// ID returns the parameter's identifier.
func (p *Parameter) ID() ID { return p.id }

// IsPeriodic reports whether this is a periodic time series.
func (p *Parameter) IsPeriodic() bool { return p.isSeries && p.periodic }

// IsSeries reports whether this parameter is a time series (as
// opposed to a plain constant).
func (p *Parameter) IsSeries() bool { return p.isSeries }

// CyclePeriod returns times[last] - times[0] for a series parameter,
// or 0 for a constant.
func (p *Parameter) CyclePeriod() float64 {
	if !p.isSeries {
		return 0
	}
	return p.cyclePeriod
}

// Get returns the value of the parameter at time t. Constants ignore
// t. Periodic series first reduce t into [t0, tn) by subtracting
// floor((t-t0)/period)*period, then linearly interpolate. Non-periodic
// series clamp to the endpoints outside [t0, tn].
func (p *Parameter) Get(t float64) float64 {
	if !p.isSeries {
		return p.constant
	}
	t0, tn := p.times[0], p.times[len(p.times)-1]
	if p.periodic {
		period := p.cyclePeriod
		if period > 0 {
			t = t - math.Floor((t-t0)/period)*period
		}
	} else {
		if t <= t0 {
			return p.values[0]
		}
		if t >= tn {
			return p.values[len(p.values)-1]
		}
	}
	// Binary search for the bracketing interval.
	lo, hi := 0, len(p.times)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if p.times[mid] <= t {
			lo = mid
		} else {
			hi = mid
		}
	}
	t1, t2 := p.times[lo], p.times[hi]
	v1, v2 := p.values[lo], p.values[hi]
	if t2 == t1 {
		return v1
	}
	frac := (t - t1) / (t2 - t1)
	return v1 + frac*(v2-v1)
}

// ToSteady replaces the parameter's effective value with the
// trapezoidal time-mean over one canonical period, remembering the
// original for ToUnsteady. Constants are unaffected (their "mean" is
// themselves) but are still marked steady so ToUnsteady is a no-op
// pair either way.
func (p *Parameter) ToSteady() {
	if p.steadyActive {
		return
	}
	if !p.isSeries {
		p.steadyCache = p.constant
		p.steadyActive = true
		return
	}
	mean := p.trapezoidalMean()
	p.steadyCache = p.constant
	p.steadyActive = true
	p.constant = mean
	p.isSeries = false
}

// ToUnsteady restores the parameter to its pre-ToSteady state.
func (p *Parameter) ToUnsteady() {
	if !p.steadyActive {
		return
	}
	if len(p.times) > 0 {
		p.isSeries = true
	}
	p.constant = p.steadyCache
	p.steadyActive = false
}

// Update replaces the constant value in place (used to restore a
// cached steady-state value, e.g. the Windkessel-capacitance cache in
// model.Model).
func (p *Parameter) Update(v float64) {
	p.constant = v
}

// trapezoidalMean integrates the series over its canonical period
// using the trapezoidal rule and divides by the period length.
func (p *Parameter) trapezoidalMean() float64 {
	integral := 0.0
	for i := 1; i < len(p.times); i++ {
		dt := p.times[i] - p.times[i-1]
		integral += 0.5 * dt * (p.values[i] + p.values[i-1])
	}
	if p.cyclePeriod == 0 {
		return p.values[0]
	}
	return integral / p.cyclePeriod
}

func (p *Parameter) String() string {
	if !p.isSeries {
		return fmt.Sprintf("Parameter(%d, const=%g)", p.id, p.constant)
	}
	return fmt.Sprintf("Parameter(%d, series n=%d, periodic=%v, period=%g)", p.id, len(p.times), p.periodic, p.cyclePeriod)
}
