// Package extract turns document images into capture records by asking a
// vision model to read the mortgage recording fields off the page. The
// output shape matches what a reconciliation session appends, so a failed
// extraction becomes a failed capture rather than an aborted session.
package extract

import "context"

// Document is one scanned document to extract from.
type Document struct {
	// Data is the raw file content (PDF or image bytes).
	Data []byte

	// MIMEType identifies the content, e.g. "application/pdf" or
	// "image/png".
	MIMEType string

	// Label names the document in combined-record error reports. Optional;
	// callers usually assign positional labels.
	Label string
}

// Result is a completed extraction. Exactly one of Record or Err is
// meaningful: a non-empty Err marks the extraction as failed.
type Result struct {
	// Record holds field values keyed by schema field name.
	Record map[string]any `json:"record,omitempty"`

	// Summary is the model's one-paragraph description of the document.
	Summary string `json:"summary,omitempty"`

	// Err is the failure message for an extraction that produced no usable
	// record.
	Err string `json:"error,omitempty"`
}

// Failed reports whether the extraction produced no usable record.
func (r *Result) Failed() bool {
	return r.Err != ""
}

// Extractor reads document fields from a scanned document.
type Extractor interface {
	Extract(ctx context.Context, doc Document) (*Result, error)
}
