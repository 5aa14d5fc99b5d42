package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/careassist/medeval/internal/models"
	"github.com/careassist/medeval/internal/orchestration"
	"github.com/careassist/medeval/internal/reporting"
)

var (
	runCasesPath     string
	runProvidersPath string
	runOutputPath    string
	runOnly          []string
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every enabled provider against the test suite",
		Long: `Run every enabled provider against the test suite and write the raw
results CSV (model, case_id, status, raw_json), one row per call.

Rows are appended as calls complete, so an interrupted run still leaves
a readable prefix. Individual call failures become status="error" rows;
only configuration and output-writing errors abort the run.`,
		Args: cobra.NoArgs,
		RunE: runCommandE,
	}

	cmd.Flags().StringVar(&runCasesPath, "cases", "evaluation/test_cases.json", "Test case suite (JSON)")
	cmd.Flags().StringVar(&runProvidersPath, "providers", "evaluation/models.yaml", "Provider configuration (YAML)")
	cmd.Flags().StringVarP(&runOutputPath, "output", "o", "", "Output CSV path (default: results/raw_results_<ts>.csv)")
	cmd.Flags().StringArrayVar(&runOnly, "only", nil, "Subset of provider names to run (can be repeated)")

	return cmd
}

func runCommandE(cmd *cobra.Command, args []string) error {
	cases, err := models.LoadTestCases(runCasesPath)
	if err != nil {
		return err
	}

	specs, err := models.LoadProviderSpecs(runProvidersPath)
	if err != nil {
		return err
	}

	runner, err := orchestration.NewRunner(specs, cases,
		orchestration.WithOnly(runOnly...),
		orchestration.WithProgress(progressPrinter(cmd.OutOrStdout())),
	)
	if err != nil {
		return err
	}

	outputPath := runOutputPath
	if outputPath == "" {
		outputPath = filepath.Join("results", timestampedName("raw_results"))
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	sink, err := reporting.NewRawWriter(f)
	if err != nil {
		f.Close() //nolint:errcheck
		return err
	}

	runErr := runner.Run(cmd.Context(), sink)
	closeErr := f.Close()
	if runErr != nil {
		return runErr
	}
	if closeErr != nil {
		return fmt.Errorf("closing output file: %w", closeErr)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Raw results written to %s\n", outputPath)
	return nil
}

var (
	okLabel    = color.New(color.FgGreen).SprintFunc()
	errorLabel = color.New(color.FgRed).SprintFunc()
)

// progressPrinter renders per-call progress on the command's output
// stream, so tests can capture it.
func progressPrinter(w io.Writer) orchestration.ProgressListener {
	return func(event orchestration.ProgressEvent) {
		label := okLabel("[ok]")
		if event.Status != models.StatusOK {
			label = errorLabel("[error]")
		}
		fmt.Fprintf(w, "%s %s :: %s\n", label, event.Provider, event.CaseID)
	}
}

// timestampedName builds the default artifact file name, UTC so runs
// from different machines sort consistently.
func timestampedName(prefix string) string {
	return fmt.Sprintf("%s_%s.csv", prefix, time.Now().UTC().Format("20060102_150405"))
}
