package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestFromContextDefault(t *testing.T) {
	if FromContext(nil) != Default() { //nolint:staticcheck // nil context is part of the contract
		t.Error("Expected default logger for nil context")
	}
	if FromContext(context.Background()) != Default() {
		t.Error("Expected default logger for empty context")
	}
}

func TestWithLoggerRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)

	ctx := WithLogger(context.Background(), &logger)
	got := FromContext(ctx)

	got.Info().Msg("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("Expected log output to contain message, got %q", buf.String())
	}
}

func TestWithCaptureField(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.InfoLevel)

	ctx := WithLogger(context.Background(), &logger)
	ctx = WithCapture(ctx, "Document_2")

	FromContext(ctx).Info().Msg("appended")
	if !strings.Contains(buf.String(), `"capture":"Document_2"`) {
		t.Errorf("Expected capture field in output, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"off", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.expected {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}
