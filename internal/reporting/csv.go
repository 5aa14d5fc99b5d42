package reporting

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/careassist/medeval/internal/models"
)

// rawHeader is the raw-results artifact column set.
var rawHeader = []string{"model", "case_id", "status", "raw_json"}

// scoredHeader is the scored artifact column set: identity columns, then
// every correctness component prefixed c_, reasoning r_, safety s_, then
// the four score fields. Column order is part of the artifact contract.
var scoredHeader = []string{
	"model", "case_id", "status",
	"c_json_valid", "c_conditions_count_in_range", "c_actionable_steps", "c_primary_condition",
	"r_primary_condition", "r_red_flags", "r_breadth", "r_family_history", "r_language_fidelity",
	"s_disclaimer", "s_abusive_blocked", "s_non_medical_refusal", "s_json_valid",
	"correctness_score", "reasoning_score", "safety_score", "overall_score",
}

var summaryHeader = []string{
	"model", "cases", "error_rate",
	"correctness_score", "reasoning_score", "safety_score", "overall_score",
}

// RawWriter streams raw results to a CSV artifact, one row per call,
// flushed after every row so a run interrupted midway leaves a readable
// prefix.
type RawWriter struct {
	w *csv.Writer
}

// NewRawWriter writes the header row and returns the writer.
func NewRawWriter(w io.Writer) (*RawWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(rawHeader); err != nil {
		return nil, fmt.Errorf("raw results: write header: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("raw results: %w", err)
	}
	return &RawWriter{w: cw}, nil
}

// Write appends one raw result row.
func (rw *RawWriter) Write(result models.RawResult) error {
	if err := rw.w.Write([]string{result.Provider, result.CaseID, string(result.Status), result.Raw}); err != nil {
		return fmt.Errorf("raw results: %w", err)
	}
	rw.w.Flush()
	if err := rw.w.Error(); err != nil {
		return fmt.Errorf("raw results: %w", err)
	}
	return nil
}

// ReadRawResults loads a raw-results artifact back into records. The
// header row is validated so a stray CSV cannot be scored by accident.
func ReadRawResults(path string) ([]models.RawResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("raw results: %w", err)
	}
	defer f.Close() //nolint:errcheck

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("raw results: parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("raw results: %s is empty (no header row)", path)
	}

	header := records[0]
	if len(header) != len(rawHeader) {
		return nil, fmt.Errorf("raw results: %s has %d columns, expected %d", path, len(header), len(rawHeader))
	}
	for i, col := range rawHeader {
		if header[i] != col {
			return nil, fmt.Errorf("raw results: %s column %d is %q, expected %q", path, i, header[i], col)
		}
	}

	results := make([]models.RawResult, 0, len(records)-1)
	for _, rec := range records[1:] {
		results = append(results, models.RawResult{
			Provider: rec[0],
			CaseID:   rec[1],
			Status:   models.Status(rec[2]),
			Raw:      rec[3],
		})
	}

	return results, nil
}

// ReadSummary loads a summary artifact back into records, for chart
// rendering.
func ReadSummary(path string) ([]models.ProviderSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("summary scores: %w", err)
	}
	defer f.Close() //nolint:errcheck

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("summary scores: parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("summary scores: %s is empty (no header row)", path)
	}

	header := records[0]
	if len(header) != len(summaryHeader) {
		return nil, fmt.Errorf("summary scores: %s has %d columns, expected %d", path, len(header), len(summaryHeader))
	}
	for i, col := range summaryHeader {
		if header[i] != col {
			return nil, fmt.Errorf("summary scores: %s column %d is %q, expected %q", path, i, header[i], col)
		}
	}

	summaries := make([]models.ProviderSummary, 0, len(records)-1)
	for i, rec := range records[1:] {
		cases, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("summary scores: row %d: bad case count %q", i+2, rec[1])
		}
		fields := make([]float64, 5)
		for j, raw := range rec[2:] {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("summary scores: row %d: bad value %q", i+2, raw)
			}
			fields[j] = v
		}
		summaries = append(summaries, models.ProviderSummary{
			Provider:         rec[0],
			Cases:            cases,
			ErrorRate:        fields[0],
			CorrectnessScore: fields[1],
			ReasoningScore:   fields[2],
			SafetyScore:      fields[3],
			OverallScore:     fields[4],
		})
	}

	return summaries, nil
}

// WriteScored writes the scored artifact.
func WriteScored(path string, scores []models.CaseScore) error {
	return writeCSV(path, "scored cases", scoredHeader, len(scores), func(i int) []string {
		cs := scores[i]
		return []string{
			cs.Provider, cs.CaseID, string(cs.Status),
			itoa(cs.JSONValid), itoa(cs.ConditionsCountInRange), itoa(cs.ActionableSteps), itoa(cs.PrimaryCondition),
			itoa(cs.PrimaryCondition), itoa(cs.RedFlags), itoa(cs.Breadth), itoa(cs.FamilyHistory), itoa(cs.LanguageFidelity),
			itoa(cs.Disclaimer), itoa(cs.AbusiveBlocked), itoa(cs.NonMedicalRefusal), itoa(cs.JSONValid),
			ftoa(cs.CorrectnessScore), ftoa(cs.ReasoningScore), ftoa(cs.SafetyScore), ftoa(cs.OverallScore),
		}
	})
}

// WriteSummary writes the ranked provider summary artifact.
func WriteSummary(path string, summaries []models.ProviderSummary) error {
	return writeCSV(path, "summary scores", summaryHeader, len(summaries), func(i int) []string {
		s := summaries[i]
		return []string{
			s.Provider, strconv.Itoa(s.Cases), ftoa(s.ErrorRate),
			ftoa(s.CorrectnessScore), ftoa(s.ReasoningScore), ftoa(s.SafetyScore), ftoa(s.OverallScore),
		}
	})
}

func writeCSV(path, what string, header []string, n int, row func(i int) []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}

	w := csv.NewWriter(f)
	writeErr := w.Write(header)
	for i := 0; i < n && writeErr == nil; i++ {
		writeErr = w.Write(row(i))
	}
	w.Flush()
	if writeErr == nil {
		writeErr = w.Error()
	}

	closeErr := f.Close()
	if writeErr != nil {
		return fmt.Errorf("%s: write %s: %w", what, path, writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("%s: close %s: %w", what, path, closeErr)
	}
	return nil
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

// ftoa renders a score the way the artifacts expect: shortest decimal
// form, no exponent.
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
