package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/docfold"
	"github.com/agentstation/docfold/pkg/capture"
	"github.com/agentstation/docfold/pkg/constants"
	"github.com/agentstation/docfold/pkg/errors"
	"github.com/agentstation/docfold/pkg/schema"
)

// writeRecord renders the session's combined record in the configured
// format, to a file when outFile is set and stdout otherwise.
func (a *App) writeRecord(session docfold.Session, outFile string) error {
	var buf bytes.Buffer
	if err := renderRecord(&buf, session.Schema(), session.Record(), a.config.Format); err != nil {
		return err
	}

	if outFile != "" {
		if err := os.WriteFile(outFile, buf.Bytes(), constants.FilePermissions); err != nil {
			return errors.WrapIO("write", outFile, err)
		}
		a.logger.Info().Str("file", outFile).Msg("Wrote combined record")
		return nil
	}

	_, err := os.Stdout.Write(buf.Bytes())
	return err
}

func renderRecord(w io.Writer, s *schema.Schema, record capture.CombinedRecord, format string) error {
	switch format {
	case "", "json":
		data, err := record.JSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case "yaml":
		data, err := yaml.Marshal(record)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "table":
		return renderRecordTable(w, s, record)
	default:
		return fmt.Errorf("%w: unknown output format %q", errors.ErrInvalidInput, format)
	}
}

// renderRecordTable prints fields in schema order with display names, the
// same order every run.
func renderRecordTable(w io.Writer, s *schema.Schema, record capture.CombinedRecord) error {
	width := 0
	for _, field := range s.Fields() {
		if n := len(s.DisplayName(field.Name)); n > width {
			width = n
		}
	}

	for _, field := range s.Fields() {
		name := s.DisplayName(field.Name)
		value := formatValue(record.Fields[field.Name])
		if _, err := fmt.Fprintf(w, "%-*s  %s\n", width, name, value); err != nil {
			return err
		}
	}

	if len(record.Errors) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Errors:")
		for _, issue := range record.Errors {
			fmt.Fprintf(w, "  %s: %s\n", issue.Label, issue.Error)
		}
	}

	return nil
}

func formatValue(v any) string {
	switch value := v.(type) {
	case nil:
		return constants.NotFound
	case string:
		return value
	case []string:
		if len(value) == 0 {
			return constants.NotFound
		}
		return strings.Join(value, "; ")
	case []map[string]string:
		if len(value) == 0 {
			return constants.NotFound
		}
		parts := make([]string, 0, len(value))
		for _, entry := range value {
			parts = append(parts, formatEntry(entry))
		}
		return strings.Join(parts, "; ")
	case map[string]string:
		if len(value) == 0 {
			return constants.NotFound
		}
		return formatEntry(value)
	default:
		return fmt.Sprintf("%v", value)
	}
}

// formatEntry renders map pairs in sorted key order for stable output.
func formatEntry(entry map[string]string) string {
	keys := make([]string, 0, len(entry))
	for k := range entry {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, entry[k]))
	}
	return strings.Join(parts, ", ")
}

func renderSchema(w io.Writer, s *schema.Schema, format string) error {
	switch format {
	case "", "table":
		width := 0
		for _, field := range s.Fields() {
			if len(field.Name) > width {
				width = len(field.Name)
			}
		}
		for _, field := range s.Fields() {
			extra := ""
			if field.Currency {
				extra = " (currency)"
			}
			if field.DetailField != "" {
				extra = fmt.Sprintf(" (detail: %s)", field.DetailField)
			}
			if _, err := fmt.Fprintf(w, "%-*s  %s%s\n", width, field.Name, field.Kind, extra); err != nil {
				return err
			}
		}
		return nil
	case "json":
		data, err := json.MarshalIndent(s.Fields(), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case "yaml":
		data, err := yaml.Marshal(s.Fields())
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("%w: unknown output format %q", errors.ErrInvalidInput, format)
	}
}
