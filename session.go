package docfold

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/docfold/pkg/capture"
	"github.com/agentstation/docfold/pkg/errors"
	"github.com/agentstation/docfold/pkg/logging"
	"github.com/agentstation/docfold/pkg/reconcile"
	"github.com/agentstation/docfold/pkg/schema"
)

// session is the Session implementation. A single mutex guards both the
// capture sequence and the cached fold result, so readers never see a
// record that lags the sequence.
type session struct {
	mu         sync.RWMutex
	reconciler *reconcile.Reconciler
	captures   []capture.Capture
	result     *reconcile.Result
	logger     *zerolog.Logger
}

func (s *session) Append(record map[string]any, label string) capture.Capture {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := capture.Capture{
		Index:  len(s.captures),
		Label:  label,
		Record: record,
	}
	if c.Label == "" {
		c.Label = capture.DefaultLabel(c.Index)
	}
	c = c.Clone()

	s.captures = append(s.captures, c)
	s.recompute()

	s.logger.Debug().
		Str("label", c.Label).
		Int("index", c.Index).
		Msg("Appended capture")

	return c.Clone()
}

func (s *session) AppendFailure(label string, err error) capture.Capture {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := capture.Capture{
		Index: len(s.captures),
		Label: label,
		Err:   failureMessage(err),
	}
	if c.Label == "" {
		c.Label = capture.DefaultLabel(c.Index)
	}

	s.captures = append(s.captures, c)
	s.recompute()

	s.logger.Warn().
		Err(errors.NewCaptureError(c.Label, c.Err, err)).
		Msg("Appended failed capture")

	return c.Clone()
}

func (s *session) Edit(field string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	def, ok := s.reconciler.Schema().Field(field)
	if !ok {
		return errors.NewUnknownFieldError(field)
	}

	coerced, err := coerceEdit(def, value)
	if err != nil {
		return err
	}

	// An edit against an empty session lands in a fresh capture so the
	// correction survives a later append. A failed capture never folds, so
	// an edit after a failure also gets a fresh capture.
	if n := len(s.captures); n == 0 || s.captures[n-1].Failed() {
		s.captures = append(s.captures, capture.Capture{
			Index:  n,
			Label:  capture.DefaultLabel(n),
			Record: map[string]any{},
		})
	}

	latest := &s.captures[len(s.captures)-1]
	if latest.Record == nil {
		latest.Record = map[string]any{}
	}
	latest.Record[field] = coerced
	s.recompute()

	s.logger.Debug().
		Str("field", field).
		Str("label", latest.Label).
		Msg("Applied edit")

	return nil
}

func (s *session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.captures = nil
	s.recompute()

	s.logger.Debug().Msg("Reset session")
}

func (s *session) Record() capture.CombinedRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result.Record.Clone()
}

func (s *session) Result() reconcile.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := *s.result
	out.Record = s.result.Record.Clone()
	return out
}

func (s *session) Captures() []capture.Capture {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]capture.Capture, len(s.captures))
	for i, c := range s.captures {
		out[i] = c.Clone()
	}
	return out
}

func (s *session) Schema() *schema.Schema {
	return s.reconciler.Schema()
}

// recompute folds the full capture sequence from scratch. Callers must
// hold the write lock (or be the constructor, before the session is
// shared).
func (s *session) recompute() {
	ctx := logging.WithLogger(context.Background(), s.logger)
	s.result = s.reconciler.Reconcile(ctx, s.captures)
}

// failureMessage extracts the display text for a failed capture. A
// CaptureError already carries the label separately, so only its message is
// stored; any other error is stored verbatim.
func failureMessage(err error) string {
	var capErr *errors.CaptureError
	switch {
	case errors.As(err, &capErr):
		return capErr.Message
	case err != nil:
		return err.Error()
	default:
		return "analysis failed"
	}
}

// coerceEdit validates an edit value against the field's kind. Unlike the
// fold path, which drops malformed data silently, an explicit edit with an
// unusable value is an error.
func coerceEdit(def schema.Field, value any) (any, error) {
	switch def.Kind {
	case schema.ScalarText, schema.ScalarEnum:
		text, ok := schema.CoerceString(value)
		if !ok {
			return nil, errors.NewTypeMismatchError(def.Name, def.Kind.String(), value)
		}
		return text, nil
	case schema.ListOfText:
		if text, ok := value.(string); ok {
			return []string{text}, nil
		}
		items, ok := schema.CoerceStrings(value)
		if !ok {
			return nil, errors.NewTypeMismatchError(def.Name, def.Kind.String(), value)
		}
		return items, nil
	case schema.ListOfStructured:
		entries, ok := schema.CoerceEntries(value)
		if !ok {
			return nil, errors.NewTypeMismatchError(def.Name, def.Kind.String(), value)
		}
		return entries, nil
	case schema.MapTextToEnum:
		values, ok := schema.CoerceStringMap(value)
		if !ok {
			return nil, errors.NewTypeMismatchError(def.Name, def.Kind.String(), value)
		}
		return values, nil
	default:
		return nil, errors.NewTypeMismatchError(def.Name, def.Kind.String(), value)
	}
}
