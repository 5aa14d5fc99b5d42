// Package providers normalizes heterogeneous answer sources behind one
// calling convention. Each provider kind is a variant with a single
// capability: invoke a test case and hand back a raw result. Adding a
// kind means adding a variant here, not branching at call sites.
package providers

import (
	"context"
	"fmt"

	"github.com/careassist/medeval/internal/models"
)

// Provider is one configured answer source. Invoke makes exactly one
// attempt for the given case and never returns a Go error: any transport,
// timeout, or non-2xx failure is folded into the RawResult with status
// "error" so a single bad call cannot abort a run.
type Provider interface {
	Name() string
	Kind() models.ProviderKind
	Invoke(ctx context.Context, tc models.TestCase) models.RawResult
}

// Prober is implemented by providers that support an advisory liveness
// check before a run. A probe failure is informational only; the run
// proceeds and individual calls record their own errors.
type Prober interface {
	Probe(ctx context.Context) error
}

// New builds the adapter for a configured provider spec.
func New(spec models.ProviderSpec) (Provider, error) {
	kind, err := spec.Kind()
	if err != nil {
		return nil, err
	}

	switch kind {
	case models.KindBackend:
		return newBackendProvider(spec)
	case models.KindDirectModel:
		return newDirectModelProvider(spec)
	default:
		return nil, fmt.Errorf("no adapter for provider kind %q", kind)
	}
}

// errorResult folds a failure into a raw result row.
func errorResult(name, caseID string, err error) models.RawResult {
	return models.RawResult{
		Provider: name,
		CaseID:   caseID,
		Status:   models.StatusError,
		Raw:      err.Error(),
	}
}
