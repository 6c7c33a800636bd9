package sparse

import "testing"

func TestLUSolveIdentity(t *testing.T) {
	m := NewMatrix(3)
	for i := 0; i < 3; i++ {
		m.Set(i, i, 1)
	}
	m.Freeze()

	lu := NewLU(3)
	if err := lu.Factorize(m); err != nil {
		t.Fatalf("Factorize: %v", err)
	}
	b := []float64{1, 2, 3}
	x := make([]float64, 3)
	if err := lu.Solve(b, x); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	for i := range b {
		if x[i] != b[i] {
			t.Fatalf("x[%d] = %g, want %g", i, x[i], b[i])
		}
	}
}

func TestLUSolveGeneral(t *testing.T) {
	// A = [[2,3,1],[1,2,3],[3,1,2]], b = [9,6,8]
	// expected x = [35/18, 29/18, 5/18]
	m := NewMatrix(3)
	a := [][]float64{{2, 3, 1}, {1, 2, 3}, {3, 1, 2}}
	for i := range a {
		for j := range a[i] {
			m.Set(i, j, a[i][j])
		}
	}
	m.Freeze()

	lu := NewLU(3)
	if err := lu.Factorize(m); err != nil {
		t.Fatalf("Factorize: %v", err)
	}
	b := []float64{9, 6, 8}
	x := make([]float64, 3)
	if err := lu.Solve(b, x); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	want := []float64{35.0 / 18.0, 29.0 / 18.0, 5.0 / 18.0}
	for i := range want {
		if diff := x[i] - want[i]; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("x[%d] = %g, want %g", i, x[i], want[i])
		}
	}
}

func TestLUReusesScratchAcrossFactorize(t *testing.T) {
	m := NewMatrix(2)
	m.Set(0, 0, 2)
	m.Set(1, 1, 2)
	m.Freeze()

	lu := NewLU(2)
	if err := lu.Factorize(m); err != nil {
		t.Fatalf("Factorize (1st): %v", err)
	}
	scratch := lu.dense

	m.Set(0, 0, 4)
	if err := lu.Factorize(m); err != nil {
		t.Fatalf("Factorize (2nd): %v", err)
	}
	if &lu.dense[0] != &scratch[0] {
		t.Fatal("Factorize reallocated the scratch buffer on the second call")
	}

	x := make([]float64, 2)
	if err := lu.Solve([]float64{4, 2}, x); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if x[0] != 1 || x[1] != 1 {
		t.Fatalf("x = %v, want [1 1]", x)
	}
}

func TestLUDetectsSingular(t *testing.T) {
	m := NewMatrix(2)
	m.Set(0, 0, 0)
	m.Set(0, 1, 0)
	m.Set(1, 0, 0)
	m.Set(1, 1, 0)
	m.Freeze()

	lu := NewLU(2)
	if err := lu.Factorize(m); err == nil {
		t.Fatal("expected LinearSolveError for singular matrix")
	}
}
