package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/docfold/internal/extract"
	"github.com/agentstation/docfold/pkg/capture"
	"github.com/agentstation/docfold/pkg/errors"
)

// captureFile is the on-disk shape of a saved capture. Files may also hold
// a bare field map, which is treated as a successful capture record.
type captureFile struct {
	Label   string         `json:"label,omitempty"`
	Record  map[string]any `json:"record,omitempty"`
	Summary string         `json:"summary,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// NewFoldCommand creates the fold command.
func (a *App) NewFoldCommand() *cobra.Command {
	var (
		outFile string
		edits   []string
	)

	cmd := &cobra.Command{
		Use:   "fold <capture.json>...",
		Short: "Reconcile saved capture files into one combined record",
		Long: `Fold reads capture files in argument order and reconciles them into a
single combined record.

Each file holds either a saved capture ({"label": ..., "record": {...}})
or a bare field map. A capture with an "error" value contributes only its
labeled error to the combined record.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.Session()
			if err != nil {
				return err
			}

			for _, path := range args {
				cf, err := readCaptureFile(path)
				if err != nil {
					return err
				}
				if cf.Error != "" {
					session.AppendFailure(cf.Label, fmt.Errorf("%s", cf.Error))
					continue
				}
				session.Append(cf.Record, cf.Label)
			}

			for _, edit := range edits {
				if err := applyEdit(session, edit); err != nil {
					return err
				}
			}

			return a.writeRecord(session, outFile)
		},
	}

	cmd.Flags().StringVarP(&outFile, "out", "o", "", "write the combined record to a file instead of stdout")
	cmd.Flags().StringArrayVar(&edits, "set", nil, "override a field after folding, as Field=Value (value may be JSON)")

	return cmd
}

// NewExtractCommand creates the extract command.
func (a *App) NewExtractCommand() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "extract <document>...",
		Short: "Extract fields from scanned documents and reconcile them",
		Long: `Extract sends each document to the Gemini API, collects the extracted
fields as captures, and reconciles them into one combined record.

Requires GEMINI_API_KEY (or GOOGLE_API_KEY) to be set. A document the
model cannot read becomes a failed capture; its error is reported in the
combined record without blocking the others.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			extractor, err := a.Extractor()
			if err != nil {
				return err
			}
			session, err := a.Session()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			for i, path := range args {
				label := capture.DefaultLabel(i)

				data, err := os.ReadFile(path)
				if err != nil {
					return errors.WrapIO("read", path, err)
				}

				result, err := extractor.Extract(ctx, extract.Document{
					Data:     data,
					MIMEType: mimeTypeFor(path),
					Label:    label,
				})
				if err != nil {
					return err
				}
				if result.Failed() {
					session.AppendFailure(label, fmt.Errorf("%s", result.Err))
					continue
				}
				session.Append(result.Record, label)

				a.logger.Info().
					Str("label", label).
					Str("file", filepath.Base(path)).
					Msg("Extracted document")
			}

			return a.writeRecord(session, outFile)
		},
	}

	cmd.Flags().StringVarP(&outFile, "out", "o", "", "write the combined record to a file instead of stdout")

	return cmd
}

// NewSchemaCommand creates the schema command.
func (a *App) NewSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the mortgage document field schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := a.Session()
			if err != nil {
				return err
			}
			return renderSchema(cmd.OutOrStdout(), session.Schema(), a.config.Format)
		},
	}
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "docfold %s (commit %s, built %s)\n", a.version, a.commit, a.date)
		},
	}
}

// readCaptureFile parses a capture file, accepting both the saved capture
// shape and a bare field map.
func readCaptureFile(path string) (*captureFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var cf captureFile
	if err := json.Unmarshal(data, &cf); err == nil && (cf.Record != nil || cf.Error != "") {
		return &cf, nil
	}

	var flat map[string]any
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return &captureFile{Record: flat}, nil
}

// applyEdit parses a Field=Value override. Values starting with a JSON
// bracket are decoded first so lists and maps can be set from the command
// line.
func applyEdit(session interface{ Edit(string, any) error }, edit string) error {
	field, raw, ok := strings.Cut(edit, "=")
	if !ok {
		return fmt.Errorf("%w: --set %q is not Field=Value", errors.ErrInvalidInput, edit)
	}

	var value any = raw
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
		var decoded any
		if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil {
			value = decoded
		}
	}

	return session.Edit(strings.TrimSpace(field), value)
}

func mimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".tif", ".tiff":
		return "image/tiff"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
