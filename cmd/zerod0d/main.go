// Command zerod0d runs a 0D lumped-parameter hemodynamics simulation
// from a JSON configuration file (spec §7), grounded on
// _examples/san-kum-dynsim/cmd/dynsim/main.go's cobra command
// structure.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zerod0d/config"
	"zerod0d/report"
	"zerod0d/resultio"
	"zerod0d/sim"
)

var (
	steadyInitial bool
	noSteady      bool
	validateOnly  bool
	reportPath    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "zerod0d <config.json> <output.{csv|json}>",
		Short: "0D lumped-parameter hemodynamics solver",
		Args:  cobra.ExactArgs(2),
		RunE:  runSolve,
	}
	rootCmd.Flags().BoolVar(&steadyInitial, "steady-initial", false, "force steady-state initialization on")
	rootCmd.Flags().BoolVar(&noSteady, "no-steady-initial", false, "force steady-state initialization off")
	rootCmd.Flags().BoolVar(&validateOnly, "validate-only", false, "parse and finalize the model, then exit without solving")
	rootCmd.Flags().StringVar(&reportPath, "report", "", "write an HTML diagnostics report to this path")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSolve(cmd *cobra.Command, args []string) error {
	configPath, outputPath := args[0], args[1]

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	cfg, err := config.Load(data)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if validateOnly {
		fmt.Printf("model OK: %d variables, %d blocks\n", cfg.Model.DOF().Size(), len(cfg.Model.Blocks()))
		return nil
	}

	var override *bool
	switch {
	case cmd.Flags().Changed("steady-initial"):
		override = &steadyInitial
	case cmd.Flags().Changed("no-steady-initial"):
		v := false
		override = &v
	}

	run, err := sim.Execute(cfg, override)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	rows := resultio.Collect(run.Model, run.Times, run.History, resultio.Options{
		MeanOnly:      cfg.Sim.OutputMeanOnly,
		VariableBased: cfg.Sim.OutputVariableBased,
		AllCycles:     cfg.Sim.OutputAllCycles,
		PtsPerCycle:   cfg.Sim.NumberOfTimePtsPerCardiacCycle,
		NumCycles:     cfg.Sim.NumberOfCardiacCycles,
	})

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()
	if err := resultio.WriteByExtension(out, outputPath, rows); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}

	fmt.Printf("solved %d time steps, mean Newton iterations/step: %.2f\n", run.Telemetry.Steps, run.Telemetry.MeanIters())

	if reportPath != "" {
		rf, err := os.Create(reportPath)
		if err != nil {
			return fmt.Errorf("creating report file: %w", err)
		}
		defer rf.Close()
		rep := &report.Report{Rows: rows, Newton: run.Telemetry, StepIters: run.StepIters}
		if err := rep.Render(rf); err != nil {
			return fmt.Errorf("rendering report: %w", err)
		}
	}

	return nil
}
