package telemetry

import "testing"

func TestRecordStepAccumulatesAndTracksMax(t *testing.T) {
	var n Newton
	n.RecordStep(3)
	n.RecordStep(7)
	n.RecordStep(2)

	if n.Steps != 3 {
		t.Fatalf("Steps = %d, want 3", n.Steps)
	}
	if n.TotalIters != 12 {
		t.Fatalf("TotalIters = %d, want 12", n.TotalIters)
	}
	if n.MaxItersOnStep != 7 {
		t.Fatalf("MaxItersOnStep = %d, want 7", n.MaxItersOnStep)
	}
}

func TestMeanItersIsZeroBeforeAnySteps(t *testing.T) {
	var n Newton
	if got := n.MeanIters(); got != 0 {
		t.Fatalf("MeanIters() = %g, want 0", got)
	}
}

func TestMeanItersDividesTotalBySteps(t *testing.T) {
	var n Newton
	n.RecordStep(4)
	n.RecordStep(6)
	if got := n.MeanIters(); got != 5 {
		t.Fatalf("MeanIters() = %g, want 5", got)
	}
}
