package models

import (
	"encoding/json"
	"fmt"
	"os"
)

// CaseMetadata holds the grading flags for one test case. A case with no
// metadata entry is graded with the zero value: every flag false, no
// expected keywords.
type CaseMetadata struct {
	Abusive                 bool     `json:"abusive,omitempty"`
	NonMedical              bool     `json:"non_medical,omitempty"`
	RequiresRedFlags        bool     `json:"requires_red_flags,omitempty"`
	ExpectedPrimaryKeywords []string `json:"expected_primary_keywords,omitempty"`
	Translation             bool     `json:"translation,omitempty"`

	// FamilyHistoryPresent is a tri-state: nil means the case has no family
	// history expectation, which grades the same as an explicit false.
	FamilyHistoryPresent *bool `json:"family_history_present,omitempty"`
}

// MetadataSet maps test-case ids to their grading metadata. Lookups for
// unknown ids return the zero metadata.
type MetadataSet map[string]CaseMetadata

// For returns the metadata for a case id, defaulting every flag to false
// when the id has no entry.
func (ms MetadataSet) For(caseID string) CaseMetadata {
	return ms[caseID]
}

// LoadMetadata reads case metadata from a JSON file. Unlike the test-case
// suite, metadata is allowed to be partial; only a syntactically broken
// file is an error.
func LoadMetadata(path string) (MetadataSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("case metadata: %w", err)
	}

	var ms MetadataSet
	if err := json.Unmarshal(data, &ms); err != nil {
		return nil, fmt.Errorf("case metadata: parse %s: %w", path, err)
	}
	if ms == nil {
		ms = MetadataSet{}
	}

	return ms, nil
}
