package models

// Status is the outcome of one provider invocation.
type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

// RawResult is the unvalidated outcome of calling one provider with one
// test case. When Status is StatusError, Raw holds the failure
// description instead of response JSON.
type RawResult struct {
	Provider string
	CaseID   string
	Status   Status
	Raw      string
}

// CaseScore is the deterministic grade for one (provider, case) pair.
// Component fields are 0 or 1; pillar and overall scores are in [0,1],
// rounded to 4 decimal digits for reporting.
type CaseScore struct {
	Provider string
	CaseID   string
	Status   Status

	// Components. JSONValid, PrimaryCondition and ConditionsCountInRange
	// feed more than one pillar; Breadth deliberately duplicates
	// ConditionsCountInRange because both columns are part of the scored
	// artifact contract.
	JSONValid              int
	ConditionsCountInRange int
	ActionableSteps        int
	PrimaryCondition       int
	RedFlags               int
	Breadth                int
	FamilyHistory          int
	LanguageFidelity       int
	Disclaimer             int
	AbusiveBlocked         int
	NonMedicalRefusal      int

	CorrectnessScore float64
	ReasoningScore   float64
	SafetyScore      float64
	OverallScore     float64
}

// ProviderSummary aggregates every CaseScore for one provider.
type ProviderSummary struct {
	Provider         string
	Cases            int
	ErrorRate        float64
	CorrectnessScore float64
	ReasoningScore   float64
	SafetyScore      float64
	OverallScore     float64
}
