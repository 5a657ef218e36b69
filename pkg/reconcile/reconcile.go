// Package reconcile folds a sequence of captures into one combined record.
// Folding is deterministic: capture arrival order is the only recency
// signal, and recomputing over the same sequence always produces identical
// output. Noisy upstream data is discarded element by element, never
// escalated to an error.
package reconcile

import (
	"context"
	"sort"

	"github.com/agentstation/docfold/pkg/capture"
	"github.com/agentstation/docfold/pkg/errors"
	"github.com/agentstation/docfold/pkg/logging"
	"github.com/agentstation/docfold/pkg/schema"
	"github.com/agentstation/docfold/pkg/similarity"
)

// Reconciler computes combined records for a fixed schema and matcher
// configuration. Safe for concurrent use; all per-computation state lives
// in the fold.
type Reconciler struct {
	schema  *schema.Schema
	matcher *similarity.Matcher
}

// New creates a Reconciler for the given schema.
func New(s *schema.Schema, opts ...Option) (*Reconciler, error) {
	if s == nil {
		return nil, errors.ErrSchemaRequired
	}
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	matcher := options.matcher
	if matcher == nil {
		matcher = similarity.New(options.threshold)
	}

	return &Reconciler{
		schema:  s,
		matcher: matcher,
	}, nil
}

// Schema returns the schema the reconciler folds against.
func (r *Reconciler) Schema() *schema.Schema {
	return r.schema
}

// Reconcile folds the captures in sequence-index order and returns the
// combined record with fold statistics. The input is not mutated.
func (r *Reconciler) Reconcile(ctx context.Context, captures []capture.Capture) *Result {
	logger := logging.FromContext(ctx)
	result := NewResult()

	ordered := make([]capture.Capture, len(captures))
	copy(ordered, captures)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Index < ordered[j].Index
	})

	m := newMerger(r.schema, r.matcher, &result.Metadata.Stats)
	issues := []capture.Issue{}

	for _, c := range ordered {
		if c.Failed() {
			// A failed capture contributes only its labeled error.
			issues = append(issues, capture.Issue{Label: c.Label, Error: c.Err})
			result.Metadata.Stats.CapturesFailed++
			continue
		}
		m.fold(c)
		result.Metadata.Stats.CapturesFolded++
	}
	result.Metadata.Stats.CapturesProcessed = len(ordered)

	fields := m.finalize()
	r.repair(fields)

	result.Record = capture.CombinedRecord{
		Fields: fields,
		Errors: issues,
	}
	result.Finalize()

	logger.Debug().
		Int("captures", len(ordered)).
		Int("failed", result.Metadata.Stats.CapturesFailed).
		Int("fields_merged", result.Metadata.Stats.FieldsMerged).
		Int("duplicates_dropped", result.Metadata.Stats.DuplicatesDropped).
		Msg("Reconciled capture sequence")

	return result
}

// repair enforces cross-field invariants after the fold: a presence enum
// must agree with whether its paired detail field holds an informative
// value, regardless of which capture supplied which half.
func (r *Reconciler) repair(fields map[string]any) {
	for _, field := range r.schema.Fields() {
		if field.DetailField == "" {
			continue
		}
		detail, ok := r.schema.Field(field.DetailField)
		if !ok {
			continue
		}
		if r.schema.Informative(detail, fields[field.DetailField]) {
			fields[field.Name] = r.schema.Positive()
		} else {
			fields[field.Name] = r.schema.Negative()
		}
	}
}
