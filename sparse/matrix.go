// Package sparse implements the fixed-pattern sparse matrix and
// vector types backing sparse.System (spec §4.C), grounded on the
// CSR sparse matrix and LU-with-reused-permutation patterns in
// _examples/RuiCat-circuit/maths/sparseMatrix.go and
// _examples/RuiCat-circuit/maths/lu.go, adapted to the assembly
// discipline the spec requires: the nonzero pattern is fixed after
// the first full stamping pass (Freeze), and every update after that
// may only overwrite existing coordinates.
package sparse

import "fmt"

type coord struct{ row, col int }

// Matrix is a square sparse matrix stored in compressed-row form once
// frozen. Before Freeze, Set/Add accumulate into a builder map and may
// introduce any coordinate; after Freeze, Set/Add may only touch
// coordinates already present in the pattern.
type Matrix struct {
	n int

	frozen bool

	// builder state, valid only before Freeze.
	builder map[coord]float64

	// frozen CSR-like state.
	rowStart []int // len n+1
	colIdx   []int // len nnz, sorted within each row
	values   []float64
	index    map[coord]int // (row,col) -> position in values/colIdx
}

// NewMatrix returns an empty n x n sparse matrix in the building
// phase.
func NewMatrix(n int) *Matrix {
	return &Matrix{n: n, builder: make(map[coord]float64)}
}

// N returns the matrix dimension.
func (m *Matrix) N() int { return m.n }

// Reserve is a capacity hint mirroring spec §4.C's
// reserve(triplets_F, triplets_E, triplets_D); it preallocates the
// builder map.
func (m *Matrix) Reserve(nnzHint int) {
	if m.builder == nil {
		return
	}
	if len(m.builder) == 0 && nnzHint > 0 {
		m.builder = make(map[coord]float64, nnzHint)
	}
}

func (m *Matrix) checkBounds(i, j int) {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		panic(fmt.Sprintf("sparse.Matrix: index (%d,%d) out of range for %dx%d matrix", i, j, m.n, m.n))
	}
}

// Set assigns the value at (i,j), overwriting any previous value.
// Before Freeze this may introduce a new structural nonzero; after
// Freeze, (i,j) must already be part of the pattern.
func (m *Matrix) Set(i, j int, v float64) {
	m.checkBounds(i, j)
	if !m.frozen {
		m.builder[coord{i, j}] = v
		return
	}
	pos, ok := m.index[coord{i, j}]
	if !ok {
		panic(fmt.Sprintf("sparse.Matrix: Set(%d,%d) introduces a new coordinate after Freeze", i, j))
	}
	m.values[pos] = v
}

// Add increments the value at (i,j) by v.
func (m *Matrix) Add(i, j int, v float64) {
	m.checkBounds(i, j)
	if !m.frozen {
		m.builder[coord{i, j}] += v
		return
	}
	pos, ok := m.index[coord{i, j}]
	if !ok {
		panic(fmt.Sprintf("sparse.Matrix: Add(%d,%d) introduces a new coordinate after Freeze", i, j))
	}
	m.values[pos] += v
}

// Get returns the value at (i,j), or 0 if not part of the pattern.
func (m *Matrix) Get(i, j int) float64 {
	m.checkBounds(i, j)
	if !m.frozen {
		return m.builder[coord{i, j}]
	}
	if pos, ok := m.index[coord{i, j}]; ok {
		return m.values[pos]
	}
	return 0
}

// Zero clears all values but keeps the pattern (once frozen) or the
// accumulated coordinate set (before Freeze).
func (m *Matrix) Zero() {
	if !m.frozen {
		for k := range m.builder {
			m.builder[k] = 0
		}
		return
	}
	for i := range m.values {
		m.values[i] = 0
	}
}

// Freeze finalizes the nonzero pattern from everything stamped so
// far, building the CSR arrays and the (row,col)->position index.
// Freeze is idempotent: calling it when already frozen is a no-op.
// After Freeze, a Set or Add at a coordinate outside the pattern
// panics, matching the one-shot "pattern is fixed after assembly"
// contract in spec §4.C.
func (m *Matrix) Freeze() {
	if m.frozen {
		return
	}
	m.rowStart = make([]int, m.n+1)
	counts := make([]int, m.n)
	for c := range m.builder {
		counts[c.row]++
	}
	for i := 0; i < m.n; i++ {
		m.rowStart[i+1] = m.rowStart[i] + counts[i]
	}
	nnz := m.rowStart[m.n]
	m.colIdx = make([]int, nnz)
	m.values = make([]float64, nnz)
	cursor := append([]int(nil), m.rowStart[:m.n]...)
	m.index = make(map[coord]int, nnz)
	for c, v := range m.builder {
		pos := cursor[c.row]
		cursor[c.row]++
		m.colIdx[pos] = c.col
		m.values[pos] = v
		m.index[c] = pos
	}
	// sort each row's columns for stable, cache-friendlier iteration.
	for r := 0; r < m.n; r++ {
		start, end := m.rowStart[r], m.rowStart[r+1]
		insertionSortRow(m.colIdx[start:end], m.values[start:end])
		for k := start; k < end; k++ {
			m.index[coord{r, m.colIdx[k]}] = k
		}
	}
	m.builder = nil
	m.frozen = true
}

func insertionSortRow(cols []int, vals []float64) {
	for i := 1; i < len(cols); i++ {
		c, v := cols[i], vals[i]
		j := i - 1
		for j >= 0 && cols[j] > c {
			cols[j+1] = cols[j]
			vals[j+1] = vals[j]
			j--
		}
		cols[j+1] = c
		vals[j+1] = v
	}
}

// Frozen reports whether the pattern has been fixed.
func (m *Matrix) Frozen() bool { return m.frozen }

// NNZ returns the number of structural nonzeros (post-Freeze only).
func (m *Matrix) NNZ() int { return len(m.values) }

// Row returns the column indices and values of the nonzeros in row r
// (post-Freeze only). The returned slices alias internal storage and
// must not be retained across further mutation.
func (m *Matrix) Row(r int) ([]int, []float64) {
	start, end := m.rowStart[r], m.rowStart[r+1]
	return m.colIdx[start:end], m.values[start:end]
}

// Dense materializes the matrix into a row-major dense slice of
// length n*n, used to hand the Jacobian to gonum's dense LU.
func (m *Matrix) Dense(out []float64) {
	for i := range out {
		out[i] = 0
	}
	if !m.frozen {
		for c, v := range m.builder {
			out[c.row*m.n+c.col] = v
		}
		return
	}
	for r := 0; r < m.n; r++ {
		cols, vals := m.Row(r)
		for k, c := range cols {
			out[r*m.n+c] = vals[k]
		}
	}
}

// AddScaled adds alpha*other into m, in place, at coordinates already
// present in m's pattern. Used to compose the Jacobian
// F + dE + dF + dC + e_coeff*E without re-deriving every stamp.
func (m *Matrix) AddScaled(alpha float64, other *Matrix) {
	if alpha == 0 {
		return
	}
	if other.frozen {
		for r := 0; r < other.n; r++ {
			cols, vals := other.Row(r)
			for k, c := range cols {
				m.Add(r, c, alpha*vals[k])
			}
		}
		return
	}
	for c, v := range other.builder {
		m.Add(c.row, c.col, alpha*v)
	}
}
