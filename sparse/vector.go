package sparse

import "gonum.org/v1/gonum/floats"

// InfNorm returns the infinity norm (max absolute value) of v, used by
// the Newton convergence test in integrator.Integrator.Step (spec
// property P1). Delegates to gonum/floats rather than a hand-rolled
// loop, matching the domain-stack decision recorded in DESIGN.md.
func InfNorm(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	abs := absAll(v)
	return abs[floats.MaxIdx(abs)]
}

func absAll(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		if x < 0 {
			out[i] = -x
		} else {
			out[i] = x
		}
	}
	return out
}
