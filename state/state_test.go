package state

import "testing"

func TestZeroAllocatesZeroedVectors(t *testing.T) {
	s := Zero(4)
	if s.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", s.Len())
	}
	for i := 0; i < 4; i++ {
		if s.Y.AtVec(i) != 0 || s.Ydot.AtVec(i) != 0 {
			t.Fatalf("Zero(4) not zeroed at index %d", i)
		}
	}
}

func TestCloneDoesNotAliasBackingArrays(t *testing.T) {
	s := Zero(3)
	s.Y.SetVec(0, 1.5)
	s.Ydot.SetVec(1, 2.5)

	c := s.Clone()
	c.Y.SetVec(0, 9)
	c.Ydot.SetVec(1, 9)

	if s.Y.AtVec(0) != 1.5 {
		t.Fatalf("mutating clone's Y affected original: got %g, want 1.5", s.Y.AtVec(0))
	}
	if s.Ydot.AtVec(1) != 2.5 {
		t.Fatalf("mutating clone's Ydot affected original: got %g, want 2.5", s.Ydot.AtVec(1))
	}
}

func TestCloneCopiesValues(t *testing.T) {
	s := Zero(2)
	s.Y.SetVec(0, 4)
	s.Y.SetVec(1, 5)
	s.Ydot.SetVec(0, 6)
	s.Ydot.SetVec(1, 7)

	c := s.Clone()
	for i := 0; i < 2; i++ {
		if c.Y.AtVec(i) != s.Y.AtVec(i) || c.Ydot.AtVec(i) != s.Ydot.AtVec(i) {
			t.Fatalf("Clone did not copy values at index %d", i)
		}
	}
}
