package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/careassist/medeval/internal/charts"
	"github.com/careassist/medeval/internal/reporting"
)

var (
	visualizeInputPath string
	visualizeOutputDir string
)

func newVisualizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visualize",
		Short: "Render charts from a summary artifact",
		Args:  cobra.NoArgs,
		RunE:  visualizeCommandE,
	}

	cmd.Flags().StringVarP(&visualizeInputPath, "input", "i", "", "Summary scores CSV from a score step (required)")
	cmd.Flags().StringVar(&visualizeOutputDir, "output-dir", "results", "Directory for the chart HTML files")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func visualizeCommandE(cmd *cobra.Command, args []string) error {
	summaries, err := reporting.ReadSummary(visualizeInputPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(visualizeOutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	renderers := []struct {
		name   string
		render func(f *os.File) error
	}{
		{"summary_scores.html", func(f *os.File) error { return charts.RenderSummary(f, summaries) }},
		{"error_rates.html", func(f *os.File) error { return charts.RenderErrorRates(f, summaries) }},
	}

	for _, r := range renderers {
		path := filepath.Join(visualizeOutputDir, r.name)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating chart file: %w", err)
		}

		renderErr := r.render(f)
		closeErr := f.Close()
		if renderErr != nil {
			return fmt.Errorf("rendering %s: %w", path, renderErr)
		}
		if closeErr != nil {
			return fmt.Errorf("closing %s: %w", path, closeErr)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Chart written to %s\n", path)
	}

	return nil
}
