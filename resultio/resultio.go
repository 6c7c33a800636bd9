// Package resultio writes simulation output as CSV or JSON (spec §7),
// grounded on the field layout _examples/original_source's result
// writer produces (per-vessel flow_in/flow_out/pressure_in/
// pressure_out rows keyed by time and cycle), using encoding/csv and
// encoding/json since no example repo in the pack imports a
// third-party CSV or JSON library — see DESIGN.md.
package resultio

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"zerod0d/block"
	"zerod0d/model"
	"zerod0d/state"
)

// Options controls which rows Collect produces, mirroring the
// output_mean_only/output_variable_based/output_all_cycles simulation
// parameters (spec §6/§7).
type Options struct {
	MeanOnly       bool
	VariableBased  bool
	AllCycles      bool
	PtsPerCycle    int
	NumCycles      int
}

// Row is one time sample of every vessel's four traces (or, in
// variable-based mode, every DOF's value).
type Row struct {
	Time   float64
	Cycle  int
	Values map[string]float64
}

// Collect walks the recorded time history and produces the Rows to
// write, applying AllCycles/MeanOnly/VariableBased selection.
func Collect(m *model.Model, times []float64, history []state.State, opt Options) []Row {
	dofHandler := m.DOF()
	labels := dofHandler.Variables()

	vessels := make([]block.Block, 0)
	for _, b := range m.Blocks() {
		if b.Base().Class == block.ClassVessel {
			vessels = append(vessels, b)
		}
	}

	firstIdx := 0
	if !opt.AllCycles && opt.PtsPerCycle > 1 && opt.NumCycles > 1 {
		firstIdx = (opt.NumCycles - 1) * (opt.PtsPerCycle - 1)
	}

	rows := make([]Row, 0, len(times)-firstIdx)
	for i := firstIdx; i < len(times); i++ {
		y := history[i].Y.RawVector().Data
		values := make(map[string]float64)
		if opt.VariableBased {
			for j, label := range labels {
				values[label] = y[j]
			}
		} else {
			for _, v := range vessels {
				g := v.Base().GlobalVarIDs
				name := v.Base().Name
				values[name+":pressure_in"] = y[g[0]]
				values[name+":flow_in"] = y[g[1]]
				values[name+":pressure_out"] = y[g[2]]
				values[name+":flow_out"] = y[g[3]]
			}
		}
		cycle := 0
		if opt.PtsPerCycle > 1 {
			cycle = i / (opt.PtsPerCycle - 1)
		}
		rows = append(rows, Row{Time: times[i], Cycle: cycle, Values: values})
	}

	if opt.MeanOnly {
		rows = []Row{meanRow(rows)}
	}
	return rows
}

func meanRow(rows []Row) Row {
	sums := make(map[string]float64)
	for _, r := range rows {
		for k, v := range r.Values {
			sums[k] += v
		}
	}
	n := float64(len(rows))
	for k := range sums {
		sums[k] /= n
	}
	return Row{Values: sums}
}

func sortedKeys(rows []Row) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, r := range rows {
		for k := range r.Values {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

// WriteCSV writes rows in wide format: one column per traced
// quantity, plus time and cycle.
func WriteCSV(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	keys := sortedKeys(rows)
	cw := csv.NewWriter(w)
	header := append([]string{"time", "cycle"}, keys...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		rec := make([]string, 0, len(header))
		rec = append(rec, strconv.FormatFloat(r.Time, 'g', -1, 64))
		rec = append(rec, strconv.Itoa(r.Cycle))
		for _, k := range keys {
			rec = append(rec, strconv.FormatFloat(r.Values[k], 'g', -1, 64))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type jsonDoc struct {
	Time   []float64            `json:"time"`
	Cycle  []int                `json:"cycle"`
	Values map[string][]float64 `json:"values"`
}

// WriteJSON writes rows as one time-indexed array per traced
// quantity.
func WriteJSON(w io.Writer, rows []Row) error {
	keys := sortedKeys(rows)
	doc := jsonDoc{Values: make(map[string][]float64, len(keys))}
	for _, k := range keys {
		doc.Values[k] = make([]float64, 0, len(rows))
	}
	for _, r := range rows {
		doc.Time = append(doc.Time, r.Time)
		doc.Cycle = append(doc.Cycle, r.Cycle)
		for _, k := range keys {
			doc.Values[k] = append(doc.Values[k], r.Values[k])
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteByExtension dispatches to WriteCSV or WriteJSON based on path's
// suffix, matching main.cpp's extension-based output format choice.
func WriteByExtension(w io.Writer, path string, rows []Row) error {
	switch ext(path) {
	case "csv":
		return WriteCSV(w, rows)
	case "json":
		return WriteJSON(w, rows)
	default:
		return fmt.Errorf("resultio: unsupported output extension for %q", path)
	}
}

func ext(path string) string {
	for i := len(path) - 1; i >= 0 && path[i] != '/'; i-- {
		if path[i] == '.' {
			return path[i+1:]
		}
	}
	return ""
}
