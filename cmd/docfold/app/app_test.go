package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/docfold"
	"github.com/agentstation/docfold/pkg/schema"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{name: "default", config: Config{}, want: "info"},
		{name: "verbose", config: Config{Verbose: true}, want: "debug"},
		{name: "quiet", config: Config{Quiet: true}, want: "warn"},
		{name: "quiet wins over verbose", config: Config{Verbose: true, Quiet: true}, want: "warn"},
		{name: "explicit level wins", config: Config{Verbose: true, LogLevel: "error"}, want: "error"},
		{name: "invalid level falls back", config: Config{LogLevel: "loud"}, want: "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, determineLogLevel(&tt.config))
		})
	}
}

func TestReadCaptureFile(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("saved capture shape", func(t *testing.T) {
		path := write("capture.json", `{"label": "Document_1", "record": {"LenderName": "Bank"}}`)
		cf, err := readCaptureFile(path)
		require.NoError(t, err)
		assert.Equal(t, "Document_1", cf.Label)
		assert.Equal(t, "Bank", cf.Record["LenderName"])
	})

	t.Run("failed capture shape", func(t *testing.T) {
		path := write("failed.json", `{"label": "Document_2", "error": "analysis timed out"}`)
		cf, err := readCaptureFile(path)
		require.NoError(t, err)
		assert.Equal(t, "analysis timed out", cf.Error)
	})

	t.Run("bare field map", func(t *testing.T) {
		path := write("flat.json", `{"LenderName": "Bank", "LoanAmount": "$250,000"}`)
		cf, err := readCaptureFile(path)
		require.NoError(t, err)
		assert.Empty(t, cf.Label)
		assert.Equal(t, "Bank", cf.Record["LenderName"])
	})

	t.Run("invalid json", func(t *testing.T) {
		path := write("bad.json", `not json`)
		_, err := readCaptureFile(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := readCaptureFile(filepath.Join(dir, "nope.json"))
		assert.Error(t, err)
	})
}

func TestApplyEdit(t *testing.T) {
	session, err := docfold.New()
	require.NoError(t, err)

	require.NoError(t, applyEdit(session, "LenderName=First National Bank"))
	assert.Equal(t, "First National Bank", session.Record().Fields["LenderName"])

	require.NoError(t, applyEdit(session, `BorrowerNames=["John A. Doe", "Jane Roe"]`))
	assert.Len(t, session.Record().Fields["BorrowerNames"], 2)

	assert.Error(t, applyEdit(session, "NoEqualsSign"))
	assert.Error(t, applyEdit(session, "NoSuchField=value"))
}

func TestRenderRecordFormats(t *testing.T) {
	session, err := docfold.New()
	require.NoError(t, err)
	session.Append(map[string]any{"LenderName": "First National Bank"}, "")

	s := schema.Mortgage()

	var jsonBuf bytes.Buffer
	require.NoError(t, renderRecord(&jsonBuf, s, session.Record(), "json"))
	assert.Contains(t, jsonBuf.String(), `"LenderName": "First National Bank"`)

	var yamlBuf bytes.Buffer
	require.NoError(t, renderRecord(&yamlBuf, s, session.Record(), "yaml"))
	assert.Contains(t, yamlBuf.String(), "First National Bank")

	var tableBuf bytes.Buffer
	require.NoError(t, renderRecord(&tableBuf, s, session.Record(), "table"))
	assert.Contains(t, tableBuf.String(), "First National Bank")
	// Display names are used in table output.
	assert.Contains(t, tableBuf.String(), "APN / Parcel ID")

	var badBuf bytes.Buffer
	assert.Error(t, renderRecord(&badBuf, s, session.Record(), "xml"))
}

func TestFoldCommand(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")
	out := filepath.Join(dir, "combined.json")

	require.NoError(t, os.WriteFile(first, []byte(`{"record": {"LenderName": "First National Bank", "LoanAmount": "$250,000"}}`), 0o644))
	require.NoError(t, os.WriteFile(second, []byte(`{"record": {"LenderName": "N/A", "PropertyAddress": "123 Main St"}}`), 0o644))

	application, err := New("test", "none", "today")
	require.NoError(t, err)

	ctx, cancel := Context()
	defer cancel()

	err = application.Execute(ctx, []string{"fold", first, second, "--set", "RecordingCost=Not Listed", "-o", out, "-q"})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	combined := string(data)
	assert.Contains(t, combined, `"LenderName": "First National Bank"`)
	assert.Contains(t, combined, `"LoanAmount": "250000"`)
	assert.Contains(t, combined, `"PropertyAddress": "123 Main St"`)
	assert.True(t, strings.Contains(combined, `"RecordingCost": "Not Listed"`))
}
