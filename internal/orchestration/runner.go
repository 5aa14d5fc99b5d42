// Package orchestration drives providers across the test suite. The
// runner is strictly sequential: one call at a time, provider-major and
// case-minor, so the persisted raw-results record is deterministic and
// append-safe given stable input ordering.
package orchestration

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/careassist/medeval/internal/models"
	"github.com/careassist/medeval/internal/providers"
)

// RawSink receives raw results as they are produced. A sink write
// failure is fatal for the run: a partial artifact must never pass as a
// complete one.
type RawSink interface {
	Write(result models.RawResult) error
}

// ProgressEvent describes one completed (provider, case) call.
type ProgressEvent struct {
	Provider string
	CaseID   string
	Status   models.Status
}

// ProgressListener receives an event after each call.
type ProgressListener func(event ProgressEvent)

// Runner executes every enabled provider against every test case.
type Runner struct {
	providers []providers.Provider
	cases     []models.TestCase
	listener  ProgressListener
}

// RunnerOption configures a Runner.
type RunnerOption func(*runnerOptions)

type runnerOptions struct {
	only     []string
	listener ProgressListener
}

// WithOnly restricts the run to the named providers. Matching zero
// configured providers is a configuration error.
func WithOnly(names ...string) RunnerOption {
	return func(o *runnerOptions) {
		o.only = names
	}
}

// WithProgress installs a per-call progress listener.
func WithProgress(listener ProgressListener) RunnerOption {
	return func(o *runnerOptions) {
		o.listener = listener
	}
}

// NewRunner builds the adapters for every enabled provider spec,
// applying the optional allow-list. Disabled entries are skipped
// silently; an allow-list that matches nothing aborts before any call.
func NewRunner(specs []models.ProviderSpec, cases []models.TestCase, opts ...RunnerOption) (*Runner, error) {
	var options runnerOptions
	for _, opt := range opts {
		opt(&options)
	}

	wanted := make(map[string]bool, len(options.only))
	for _, name := range options.only {
		wanted[name] = true
	}

	var adapters []providers.Provider
	for _, spec := range specs {
		if !spec.IsEnabled() {
			continue
		}
		if len(wanted) > 0 && !wanted[spec.Name] {
			continue
		}

		p, err := providers.New(spec)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, p)
	}

	if len(options.only) > 0 && len(adapters) == 0 {
		return nil, fmt.Errorf("no providers match selection: %s", strings.Join(options.only, ", "))
	}
	if len(adapters) == 0 {
		return nil, fmt.Errorf("no enabled providers configured")
	}

	return &Runner{
		providers: adapters,
		cases:     cases,
		listener:  options.listener,
	}, nil
}

// Providers returns the resolved adapters in execution order.
func (r *Runner) Providers() []providers.Provider {
	return r.providers
}

// Run produces exactly one raw result per (provider, case) pair and
// streams each to the sink. A failing call becomes an error row and the
// run continues; only sink write failures propagate.
func (r *Runner) Run(ctx context.Context, sink RawSink) error {
	r.probe(ctx)

	for _, p := range r.providers {
		for _, tc := range r.cases {
			result := invoke(ctx, p, tc)

			if err := sink.Write(result); err != nil {
				return fmt.Errorf("writing raw result for %s/%s: %w", result.Provider, result.CaseID, err)
			}

			if r.listener != nil {
				r.listener(ProgressEvent{
					Provider: result.Provider,
					CaseID:   result.CaseID,
					Status:   result.Status,
				})
			}
		}
	}

	return nil
}

// probe runs the advisory liveness checks. Failures are logged and
// otherwise ignored: the per-case calls will record their own errors.
func (r *Runner) probe(ctx context.Context) {
	for _, p := range r.providers {
		prober, ok := p.(providers.Prober)
		if !ok {
			continue
		}
		if err := prober.Probe(ctx); err != nil {
			slog.Warn("provider failed liveness probe; subsequent calls likely to error",
				"provider", p.Name(), "error", err)
		}
	}
}

// invoke shields the run from a misbehaving adapter: a panic during a
// single call is folded into an error row like any other failure.
func invoke(ctx context.Context, p providers.Provider, tc models.TestCase) (result models.RawResult) {
	defer func() {
		if rec := recover(); rec != nil {
			result = models.RawResult{
				Provider: p.Name(),
				CaseID:   tc.ID,
				Status:   models.StatusError,
				Raw:      fmt.Sprintf("panic during invocation: %v", rec),
			}
		}
	}()

	return p.Invoke(ctx, tc)
}
