// Package capture defines the units of session state: a Capture holds one
// completed extraction attempt, and a CombinedRecord holds the reconciled
// view of every attempt so far.
package capture

import (
	"encoding/json"
	"fmt"
)

// Capture is one completed extraction attempt, successful or failed. A
// failed capture contributes no field values; only its labeled error
// appears in the combined view.
type Capture struct {
	// Index is the monotonic arrival position within the session.
	Index int `json:"index"`

	// Label identifies the capture for display and error attribution.
	Label string `json:"label"`

	// Record maps field names to extracted values. Fields the attempt did
	// not read are simply absent.
	Record map[string]any `json:"record,omitempty"`

	// Summary is optional display metadata from the extraction service.
	// It is carried per capture and never merged.
	Summary string `json:"summary,omitempty"`

	// Err is the opaque failure text for a failed attempt.
	Err string `json:"error,omitempty"`
}

// Failed reports whether the capture carries an error.
func (c Capture) Failed() bool {
	return c.Err != ""
}

// Clone returns a deep copy of the capture so session state cannot be
// mutated through values handed to callers.
func (c Capture) Clone() Capture {
	out := c
	out.Record = cloneRecord(c.Record)
	return out
}

// DefaultLabel returns the label assigned to the capture at the given
// arrival position when the caller supplies none.
func DefaultLabel(index int) string {
	return fmt.Sprintf("Document_%d", index+1)
}

// Issue is one labeled capture failure reported alongside the combined
// record, in capture arrival order.
type Issue struct {
	Label string `json:"label"`
	Error string `json:"error"`
}

// CombinedRecord is the reconciled view of a capture sequence: one merged
// value per schema field plus the ordered failures. It is a pure function
// of the capture sequence and is recomputed in full on every change.
type CombinedRecord struct {
	Fields map[string]any `json:"fields"`
	Errors []Issue        `json:"errors"`
}

// NewCombinedRecord creates an empty combined record.
func NewCombinedRecord() CombinedRecord {
	return CombinedRecord{
		Fields: make(map[string]any),
		Errors: []Issue{},
	}
}

// Field returns the merged value for a field name, or nil.
func (r CombinedRecord) Field(name string) any {
	return r.Fields[name]
}

// Clone returns a deep copy of the combined record.
func (r CombinedRecord) Clone() CombinedRecord {
	out := CombinedRecord{
		Fields: cloneRecord(r.Fields),
		Errors: make([]Issue, len(r.Errors)),
	}
	copy(out.Errors, r.Errors)
	return out
}

// JSON serializes the combined record to an indented JSON document. Map
// keys marshal in sorted order, so output is byte-identical across
// recomputes of the same capture sequence.
func (r CombinedRecord) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
