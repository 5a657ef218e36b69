// Package docfold maintains a live reconciliation session over a sequence
// of document captures. Captures are appended as they arrive and the
// combined record is recomputed in full after every change, so readers
// always observe a complete, consistent view.
package docfold

import (
	"github.com/agentstation/docfold/pkg/capture"
	"github.com/agentstation/docfold/pkg/reconcile"
	"github.com/agentstation/docfold/pkg/schema"
)

// Session accumulates captures and exposes the reconciled record. A
// session is safe for one writer and any number of concurrent readers.
type Session interface {
	// Append adds a successful capture to the sequence and recomputes the
	// combined record. An empty label gets the default positional label.
	Append(record map[string]any, label string) capture.Capture

	// AppendFailure adds a failed capture. It contributes only its labeled
	// error to the combined record.
	AppendFailure(label string, err error) capture.Capture

	// Edit writes a value into the most recent capture and recomputes. A
	// field name outside the schema or a value that cannot serve the
	// field's kind is rejected without modifying the session.
	Edit(field string, value any) error

	// Reset discards all captures and restores the default record.
	Reset()

	// Record returns a deep copy of the current combined record.
	Record() capture.CombinedRecord

	// Result returns the full fold result, including statistics.
	Result() reconcile.Result

	// Captures returns a deep copy of the capture sequence.
	Captures() []capture.Capture

	// Schema returns the field schema the session reconciles against.
	Schema() *schema.Schema
}

// New creates a Session. Without options it uses the mortgage document
// schema and the default similarity threshold.
func New(opts ...Option) (Session, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	reconciler, err := reconcile.New(options.schema, options.reconcileOpts...)
	if err != nil {
		return nil, err
	}

	s := &session{
		reconciler: reconciler,
		logger:     options.logger,
	}
	s.recompute()
	return s, nil
}
