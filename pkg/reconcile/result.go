package reconcile

import (
	"fmt"
	"time"

	"github.com/agentstation/docfold/pkg/capture"
)

// Result holds the combined record produced by one fold pass together with
// metadata about the pass. Only Record participates in deterministic
// output; Metadata carries timing for logs and summaries.
type Result struct {
	Record   capture.CombinedRecord `json:"record"`
	Metadata Metadata               `json:"metadata"`
}

// Metadata describes a single fold pass.
type Metadata struct {
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
	Stats     Statistics    `json:"statistics"`
}

// Statistics counts what the fold did.
type Statistics struct {
	CapturesProcessed int `json:"captures_processed"`
	CapturesFolded    int `json:"captures_folded"`
	CapturesFailed    int `json:"captures_failed"`
	FieldsMerged      int `json:"fields_merged"`
	DuplicatesDropped int `json:"duplicates_dropped"`
}

// NewResult creates a Result with the start time stamped.
func NewResult() *Result {
	return &Result{
		Record: capture.NewCombinedRecord(),
		Metadata: Metadata{
			StartTime: time.Now(),
		},
	}
}

// Finalize stamps the end time and computes the duration.
func (r *Result) Finalize() {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
}

// Summary returns a one-line description of the fold pass.
func (r *Result) Summary() string {
	s := r.Metadata.Stats
	return fmt.Sprintf("folded %d/%d captures (%d failed): %d fields merged, %d duplicates dropped in %v",
		s.CapturesFolded, s.CapturesProcessed, s.CapturesFailed,
		s.FieldsMerged, s.DuplicatesDropped, r.Metadata.Duration.Round(time.Millisecond))
}
