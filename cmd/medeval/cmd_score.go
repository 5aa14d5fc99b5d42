package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/careassist/medeval/internal/models"
	"github.com/careassist/medeval/internal/reporting"
	"github.com/careassist/medeval/internal/scoring"
)

var (
	scoreInputPath    string
	scoreMetadataPath string
	scoreOutputDir    string
)

func newScoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a raw results artifact into per-case and summary CSVs",
		Long: `Score a raw results artifact into the scored-cases and summary CSVs.

Scoring is deterministic and offline: every row of the raw artifact is
graded against the case metadata, then aggregated per provider, ranked
descending by mean overall score.`,
		Args: cobra.NoArgs,
		RunE: scoreCommandE,
	}

	cmd.Flags().StringVarP(&scoreInputPath, "input", "i", "", "Raw results CSV from a run (required)")
	cmd.Flags().StringVar(&scoreMetadataPath, "metadata", "evaluation/case_meta.json", "Case metadata (JSON)")
	cmd.Flags().StringVar(&scoreOutputDir, "output-dir", "results", "Directory for the scored and summary CSVs")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func scoreCommandE(cmd *cobra.Command, args []string) error {
	raws, err := reporting.ReadRawResults(scoreInputPath)
	if err != nil {
		return err
	}

	meta, err := models.LoadMetadata(scoreMetadataPath)
	if err != nil {
		return err
	}

	scores := make([]models.CaseScore, 0, len(raws))
	for _, raw := range raws {
		scores = append(scores, scoring.Score(raw, meta.For(raw.CaseID)))
	}
	summaries := reporting.Aggregate(scores)

	if err := os.MkdirAll(scoreOutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	scoredPath := filepath.Join(scoreOutputDir, timestampedName("scored_cases"))
	summaryPath := filepath.Join(scoreOutputDir, timestampedName("summary_scores"))

	if err := reporting.WriteScored(scoredPath, scores); err != nil {
		return err
	}
	if err := reporting.WriteSummary(summaryPath, summaries); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Scored cases -> %s\n", scoredPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Summary scores -> %s\n", summaryPath)
	return nil
}
