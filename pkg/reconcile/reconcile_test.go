package reconcile

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/docfold/pkg/capture"
	"github.com/agentstation/docfold/pkg/constants"
	"github.com/agentstation/docfold/pkg/errors"
	"github.com/agentstation/docfold/pkg/schema"
	"github.com/agentstation/docfold/pkg/similarity"
)

func testSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.New(nil,
		schema.Field{Name: "Address", Kind: schema.ScalarText},
		schema.Field{Name: "Amount", Kind: schema.ScalarText, Currency: true},
		schema.Field{Name: "Names", Kind: schema.ListOfText},
		schema.Field{Name: "Riders", Kind: schema.ListOfStructured, EntryKey: "Name"},
		schema.Field{Name: "Signatures", Kind: schema.MapTextToEnum},
		schema.Field{Name: "LegalPresent", Kind: schema.ScalarEnum, Presence: true, DetailField: "LegalDetail"},
		schema.Field{Name: "LegalDetail", Kind: schema.ScalarText},
	)
	require.NoError(t, err)
	return s
}

func newCapture(index int, record map[string]any) capture.Capture {
	return capture.Capture{
		Index:  index,
		Label:  capture.DefaultLabel(index),
		Record: record,
	}
}

func TestReconcileEmptySequence(t *testing.T) {
	r, err := New(testSchema(t))
	require.NoError(t, err)

	result := r.Reconcile(context.Background(), nil)

	want := map[string]any{
		"Address":      "N/A",
		"Amount":       "N/A",
		"Names":        []string{},
		"Riders":       []map[string]string{},
		"Signatures":   map[string]string{},
		"LegalPresent": "No",
		"LegalDetail":  "N/A",
	}
	if diff := cmp.Diff(want, result.Record.Fields); diff != "" {
		t.Errorf("empty sequence fields mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, result.Record.Errors)
}

func TestReconcileLastInformativeWins(t *testing.T) {
	tests := []struct {
		name   string
		values []any
		want   string
	}{
		{
			name:   "informative value survives trailing sentinel",
			values: []any{"N/A", "123 Main St", "N/A"},
			want:   "123 Main St",
		},
		{
			name:   "later informative value replaces earlier",
			values: []any{"123 Main St", "125 Main St"},
			want:   "125 Main St",
		},
		{
			name:   "sentinel-only sequence keeps the sentinel",
			values: []any{"Not Listed", "N/A"},
			want:   "Not Listed",
		},
		{
			name:   "malformed value is dropped",
			values: []any{"123 Main St", []int{1, 2}},
			want:   "123 Main St",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(testSchema(t))
			require.NoError(t, err)

			captures := make([]capture.Capture, 0, len(tt.values))
			for i, v := range tt.values {
				captures = append(captures, newCapture(i, map[string]any{"Address": v}))
			}

			result := r.Reconcile(context.Background(), captures)
			assert.Equal(t, tt.want, result.Record.Fields["Address"])
		})
	}
}

func TestReconcileCurrencyNormalization(t *testing.T) {
	r, err := New(testSchema(t))
	require.NoError(t, err)

	result := r.Reconcile(context.Background(), []capture.Capture{
		newCapture(0, map[string]any{"Amount": "$45,000"}),
	})
	assert.Equal(t, "45000", result.Record.Fields["Amount"])

	// Sentinels pass through the currency path untouched.
	result = r.Reconcile(context.Background(), []capture.Capture{
		newCapture(0, map[string]any{"Amount": "Not Listed"}),
	})
	assert.Equal(t, "Not Listed", result.Record.Fields["Amount"])
}

func TestReconcileScalarTruncationKeepsValidUTF8(t *testing.T) {
	r, err := New(testSchema(t))
	require.NoError(t, err)

	// 4500 bytes of a 3-byte rune; the byte cap is not a multiple of 3, so
	// a byte-boundary cut would split a rune.
	long := strings.Repeat("界", 1500)
	result := r.Reconcile(context.Background(), []capture.Capture{
		newCapture(0, map[string]any{"Address": long}),
	})

	got, ok := result.Record.Fields["Address"].(string)
	require.True(t, ok)
	assert.LessOrEqual(t, len(got), constants.MaxFieldValueLength)
	assert.True(t, utf8.ValidString(got))
	assert.NotEmpty(t, got)
}

func TestReconcileTextListDeduplication(t *testing.T) {
	r, err := New(testSchema(t))
	require.NoError(t, err)

	result := r.Reconcile(context.Background(), []capture.Capture{
		newCapture(0, map[string]any{"Names": []string{"John A. Doe", "Jane Roe"}}),
		newCapture(1, map[string]any{"Names": []any{"john a doe", "N/A", "Richard Miles"}}),
	})

	want := []string{"Jane Roe", "John A. Doe", "Richard Miles"}
	if diff := cmp.Diff(want, result.Record.Fields["Names"]); diff != "" {
		t.Errorf("deduplicated list mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, result.Metadata.Stats.DuplicatesDropped)
}

func TestReconcileStructuredListUpsert(t *testing.T) {
	r, err := New(testSchema(t))
	require.NoError(t, err)

	result := r.Reconcile(context.Background(), []capture.Capture{
		newCapture(0, map[string]any{"Riders": []map[string]string{
			{"Name": "Rider A", "Signed": "No"},
			{"Name": "Rider B", "Signed": "Yes"},
		}}),
		newCapture(1, map[string]any{"Riders": []any{
			map[string]any{"Name": "Rider A", "Signed": "Yes"},
			map[string]any{"Signed": "Yes"}, // no key, dropped
		}}),
	})

	want := []map[string]string{
		{"Name": "Rider A", "Signed": "Yes"},
		{"Name": "Rider B", "Signed": "Yes"},
	}
	if diff := cmp.Diff(want, result.Record.Fields["Riders"]); diff != "" {
		t.Errorf("upserted entries mismatch (-want +got):\n%s", diff)
	}
}

func TestReconcileEnumMapMerge(t *testing.T) {
	r, err := New(testSchema(t))
	require.NoError(t, err)

	result := r.Reconcile(context.Background(), []capture.Capture{
		newCapture(0, map[string]any{"Signatures": map[string]string{"John A. Doe": "No"}}),
		newCapture(1, map[string]any{"Signatures": map[string]any{
			"John A. Doe": "Yes",
			"Jane Roe":    "Yes",
		}}),
	})

	want := map[string]string{
		"John A. Doe": "Yes",
		"Jane Roe":    "Yes",
	}
	if diff := cmp.Diff(want, result.Record.Fields["Signatures"]); diff != "" {
		t.Errorf("merged map mismatch (-want +got):\n%s", diff)
	}
}

func TestReconcileConsistencyRepair(t *testing.T) {
	tests := []struct {
		name    string
		records []map[string]any
		want    string
	}{
		{
			name: "detail from a later capture forces presence positive",
			records: []map[string]any{
				{"LegalPresent": "No", "LegalDetail": "N/A"},
				{"LegalDetail": "Lot 4, Block 2, Sunrise Addition"},
			},
			want: "Yes",
		},
		{
			name: "positive claim without detail is repaired to negative",
			records: []map[string]any{
				{"LegalPresent": "Yes", "LegalDetail": "N/A"},
			},
			want: "No",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(testSchema(t))
			require.NoError(t, err)

			captures := make([]capture.Capture, 0, len(tt.records))
			for i, rec := range tt.records {
				captures = append(captures, newCapture(i, rec))
			}

			result := r.Reconcile(context.Background(), captures)
			assert.Equal(t, tt.want, result.Record.Fields["LegalPresent"])
		})
	}
}

func TestReconcileFailedCaptureContributesOnlyError(t *testing.T) {
	r, err := New(testSchema(t))
	require.NoError(t, err)

	result := r.Reconcile(context.Background(), []capture.Capture{
		newCapture(0, map[string]any{"Address": "123 Main St"}),
		{
			Index:  1,
			Label:  capture.DefaultLabel(1),
			Record: map[string]any{"Address": "999 Wrong St"},
			Err:    "analysis timed out",
		},
	})

	assert.Equal(t, "123 Main St", result.Record.Fields["Address"])
	require.Len(t, result.Record.Errors, 1)
	assert.Equal(t, "Document_2", result.Record.Errors[0].Label)
	assert.Equal(t, "analysis timed out", result.Record.Errors[0].Error)
	assert.Equal(t, 1, result.Metadata.Stats.CapturesFailed)
}

func TestReconcileDeterministic(t *testing.T) {
	r, err := New(schema.Mortgage())
	require.NoError(t, err)

	captures := []capture.Capture{
		newCapture(0, map[string]any{
			"BorrowerNames": []string{"John A. Doe", "Jane Roe"},
			"LoanAmount":    "$250,000",
			"RidersPresent": []map[string]string{{"Name": "MERS Rider", "Signed": "Yes"}},
		}),
		newCapture(1, map[string]any{
			"BorrowerNames":   []string{"john a doe"},
			"PropertyAddress": "123 Main St, Springfield",
		}),
	}

	first := r.Reconcile(context.Background(), captures)
	second := r.Reconcile(context.Background(), captures)

	firstJSON, err := first.Record.JSON()
	require.NoError(t, err)
	secondJSON, err := second.Record.JSON()
	require.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON))

	// Every schema field must be present in the output.
	assert.Len(t, first.Record.Fields, schema.Mortgage().Len())
}

func TestReconcileDoesNotMutateInput(t *testing.T) {
	r, err := New(testSchema(t))
	require.NoError(t, err)

	record := map[string]any{"Names": []string{"John A. Doe"}}
	captures := []capture.Capture{newCapture(0, record)}

	_ = r.Reconcile(context.Background(), captures)

	if diff := cmp.Diff(map[string]any{"Names": []string{"John A. Doe"}}, record); diff != "" {
		t.Errorf("input record mutated (-want +got):\n%s", diff)
	}
}

func TestNewOptionValidation(t *testing.T) {
	s := testSchema(t)

	_, err := New(nil)
	assert.ErrorIs(t, err, errors.ErrSchemaRequired)

	_, err = New(s, WithThreshold(1.5))
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = New(s, WithMatcher(nil))
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	r, err := New(s, WithMatcher(similarity.New(0.9)))
	require.NoError(t, err)
	assert.NotNil(t, r)
}
