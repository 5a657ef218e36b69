package docfold

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/docfold/pkg/errors"
	"github.com/agentstation/docfold/pkg/logging"
	"github.com/agentstation/docfold/pkg/reconcile"
	"github.com/agentstation/docfold/pkg/schema"
	"github.com/agentstation/docfold/pkg/similarity"
)

// Option configures a Session.
type Option func(*options) error

type options struct {
	schema        *schema.Schema
	logger        *zerolog.Logger
	reconcileOpts []reconcile.Option
}

func newOptions(opts ...Option) (*options, error) {
	o := &options{
		schema: schema.Mortgage(),
		logger: logging.Default(),
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithSchema replaces the default mortgage document schema.
func WithSchema(s *schema.Schema) Option {
	return func(o *options) error {
		if s == nil {
			return errors.ErrSchemaRequired
		}
		o.schema = s
		return nil
	}
}

// WithThreshold sets the fuzzy-deduplication similarity threshold.
func WithThreshold(threshold float64) Option {
	return func(o *options) error {
		o.reconcileOpts = append(o.reconcileOpts, reconcile.WithThreshold(threshold))
		return nil
	}
}

// WithMatcher supplies a pre-built similarity matcher.
func WithMatcher(matcher *similarity.Matcher) Option {
	return func(o *options) error {
		o.reconcileOpts = append(o.reconcileOpts, reconcile.WithMatcher(matcher))
		return nil
	}
}

// WithLogger sets the logger used for session and fold events.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return errors.ErrInvalidInput
		}
		o.logger = logger
		return nil
	}
}
