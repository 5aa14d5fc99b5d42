package models

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/text/language"
)

// TestCase is one grading scenario: a symptom description plus optional
// family history, answered in the target language.
type TestCase struct {
	ID            string `json:"id"`
	Symptoms      string `json:"symptoms"`
	FamilyHistory string `json:"family_history,omitempty"`
	Language      string `json:"language,omitempty"`
}

// LoadTestCases reads an ordered test-case suite from a JSON file.
// A malformed file, a missing id/symptoms field, or a duplicate id is a
// load-time error - the suite is the ground truth for a run and a broken
// suite aborts it.
func LoadTestCases(path string) ([]TestCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("test cases: %w", err)
	}

	var cases []TestCase
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("test cases: parse %s: %w", path, err)
	}

	seen := make(map[string]bool, len(cases))
	for i := range cases {
		tc := &cases[i]
		if tc.ID == "" {
			return nil, fmt.Errorf("test cases: entry %d has no id", i)
		}
		if seen[tc.ID] {
			return nil, fmt.Errorf("test cases: duplicate id %q", tc.ID)
		}
		seen[tc.ID] = true

		if tc.Symptoms == "" {
			return nil, fmt.Errorf("test cases: %q has no symptoms text", tc.ID)
		}

		if tc.Language == "" {
			tc.Language = "en"
		} else if _, err := language.Parse(tc.Language); err != nil {
			return nil, fmt.Errorf("test cases: %q has invalid language %q: %w", tc.ID, tc.Language, err)
		}
	}

	return cases, nil
}
