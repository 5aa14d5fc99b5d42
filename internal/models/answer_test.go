package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAnswer_Valid(t *testing.T) {
	pa := ParseAnswer(`{"probable_conditions":["Influenza","Common cold"],"recommendations":"Rest; hydrate; monitor","disclaimer":"For educational purposes only."}`)

	require.True(t, pa.Valid)
	require.Equal(t, []string{"Influenza", "Common cold"}, pa.ProbableConditions)
	require.Equal(t, "Rest; hydrate; monitor", pa.Recommendations)
	require.Equal(t, "For educational purposes only.", pa.Disclaimer)
}

func TestParseAnswer_EmptyConditionsIsValid(t *testing.T) {
	// A refusal may legitimately report zero conditions; that is a scoring
	// matter, not a parse failure.
	pa := ParseAnswer(`{"probable_conditions":[],"recommendations":"I cannot provide advice on that","disclaimer":"x"}`)
	require.True(t, pa.Valid)
	require.Empty(t, pa.ProbableConditions)
}

func TestParseAnswer_ExtraKeysAreValid(t *testing.T) {
	pa := ParseAnswer(`{"probable_conditions":["a","b"],"recommendations":"x","disclaimer":"y","confidence":0.9}`)
	require.True(t, pa.Valid)
}

func TestParseAnswer_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "connection refused"},
		{"empty string", ""},
		{"json but not object", `["a","b"]`},
		{"missing probable_conditions", `{"recommendations":"x","disclaimer":"y"}`},
		{"missing recommendations", `{"probable_conditions":["a"],"disclaimer":"y"}`},
		{"missing disclaimer", `{"probable_conditions":["a"],"recommendations":"x"}`},
		{"conditions not an array", `{"probable_conditions":"flu","recommendations":"x","disclaimer":"y"}`},
		{"conditions not strings", `{"probable_conditions":[1,2],"recommendations":"x","disclaimer":"y"}`},
		{"recommendations not a string", `{"probable_conditions":["a"],"recommendations":42,"disclaimer":"y"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pa := ParseAnswer(tt.raw)
			require.False(t, pa.Valid)
			require.Empty(t, pa.ProbableConditions)
			require.Empty(t, pa.Recommendations)
			require.Empty(t, pa.Disclaimer)
		})
	}
}
