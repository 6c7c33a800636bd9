package resultio

import (
	"bytes"
	"strings"
	"testing"

	"zerod0d/block"
	"zerod0d/model"
	"zerod0d/param"
	"zerod0d/state"
)

func buildModel(t *testing.T) *model.Model {
	t.Helper()
	m := model.New()
	q := m.AddParameter(1.0)
	p := m.AddParameter(0.0)
	r := m.AddParameter(1.0)
	c := m.AddParameter(1.0)
	l := m.AddParameter(0.0)
	s := m.AddParameter(0.0)

	src, err := m.AddBlock(block.NewFlowReferenceBC("src", q), false)
	if err != nil {
		t.Fatalf("AddBlock(src): %v", err)
	}
	v, err := m.AddBlock(block.NewVessel("v0", []param.ID{r, c, l, s}), false)
	if err != nil {
		t.Fatalf("AddBlock(v0): %v", err)
	}
	snk, err := m.AddBlock(block.NewPressureReferenceBC("snk", p), false)
	if err != nil {
		t.Fatalf("AddBlock(snk): %v", err)
	}
	m.AddNode(src, v, "src:v0")
	m.AddNode(v, snk, "v0:snk")

	if err := m.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	return m
}

func sampleHistory(m *model.Model, n int) ([]float64, []state.State) {
	size := m.DOF().Size()
	times := make([]float64, n)
	history := make([]state.State, n)
	for i := 0; i < n; i++ {
		times[i] = float64(i) * 0.1
		s := state.Zero(size)
		s.Y.SetVec(0, float64(i))
		history[i] = s
	}
	return times, history
}

func TestCollectByVesselProducesFourTracesPerVessel(t *testing.T) {
	m := buildModel(t)
	times, history := sampleHistory(m, 5)
	rows := Collect(m, times, history, Options{})

	if len(rows) != 5 {
		t.Fatalf("len(rows) = %d, want 5", len(rows))
	}
	for _, k := range []string{"v0:pressure_in", "v0:flow_in", "v0:pressure_out", "v0:flow_out"} {
		if _, ok := rows[0].Values[k]; !ok {
			t.Fatalf("missing traced quantity %q", k)
		}
	}
}

func TestCollectVariableBasedUsesDOFLabels(t *testing.T) {
	m := buildModel(t)
	times, history := sampleHistory(m, 3)
	rows := Collect(m, times, history, Options{VariableBased: true})

	labels := m.DOF().Variables()
	for _, l := range labels {
		if _, ok := rows[0].Values[l]; !ok {
			t.Fatalf("variable-based row missing DOF label %q", l)
		}
	}
}

func TestCollectMeanOnlyReturnsSingleRow(t *testing.T) {
	m := buildModel(t)
	times, history := sampleHistory(m, 4)
	rows := Collect(m, times, history, Options{MeanOnly: true})
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
}

func TestCollectAllCyclesFalseSkipsToLastCycle(t *testing.T) {
	m := buildModel(t)
	times, history := sampleHistory(m, 21)
	rows := Collect(m, times, history, Options{PtsPerCycle: 11, NumCycles: 2})
	if len(rows) != 11 {
		t.Fatalf("len(rows) = %d, want 11 (only the final cycle)", len(rows))
	}
}

func TestWriteCSVRoundTripsHeaderAndRows(t *testing.T) {
	m := buildModel(t)
	times, history := sampleHistory(m, 2)
	rows := Collect(m, times, history, Options{})

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 { // header + 2 rows
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "time,cycle,") {
		t.Fatalf("header = %q, want time,cycle,... prefix", lines[0])
	}
}

func TestWriteJSONProducesValidDocument(t *testing.T) {
	m := buildModel(t)
	times, history := sampleHistory(m, 2)
	rows := Collect(m, times, history, Options{})

	var buf bytes.Buffer
	if err := WriteJSON(&buf, rows); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !strings.Contains(buf.String(), "\"time\"") {
		t.Fatal("expected JSON document to contain a time field")
	}
}

func TestWriteByExtensionRejectsUnknownExtension(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteByExtension(&buf, "out.xyz", nil); err == nil {
		t.Fatal("expected an error for an unsupported extension")
	}
}

func TestWriteByExtensionDispatchesCSVAndJSON(t *testing.T) {
	m := buildModel(t)
	times, history := sampleHistory(m, 1)
	rows := Collect(m, times, history, Options{})

	var csvBuf, jsonBuf bytes.Buffer
	if err := WriteByExtension(&csvBuf, "out.csv", rows); err != nil {
		t.Fatalf("WriteByExtension(csv): %v", err)
	}
	if err := WriteByExtension(&jsonBuf, "out.json", rows); err != nil {
		t.Fatalf("WriteByExtension(json): %v", err)
	}
	if csvBuf.Len() == 0 || jsonBuf.Len() == 0 {
		t.Fatal("expected both writers to produce output")
	}
}
