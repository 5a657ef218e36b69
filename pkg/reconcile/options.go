package reconcile

import (
	"fmt"

	"github.com/agentstation/docfold/pkg/constants"
	"github.com/agentstation/docfold/pkg/errors"
	"github.com/agentstation/docfold/pkg/similarity"
)

// Option configures a Reconciler.
type Option func(*options) error

type options struct {
	threshold float64
	matcher   *similarity.Matcher
}

func newOptions(opts ...Option) (*options, error) {
	o := &options{
		threshold: constants.DefaultSimilarityThreshold,
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithThreshold sets the similarity threshold used for fuzzy
// deduplication of text-list entries. Must be in (0, 1].
func WithThreshold(threshold float64) Option {
	return func(o *options) error {
		if threshold <= 0 || threshold > 1 {
			return fmt.Errorf("%w: similarity threshold %v outside (0, 1]", errors.ErrInvalidInput, threshold)
		}
		o.threshold = threshold
		return nil
	}
}

// WithMatcher supplies a pre-built matcher, overriding WithThreshold.
func WithMatcher(matcher *similarity.Matcher) Option {
	return func(o *options) error {
		if matcher == nil {
			return fmt.Errorf("%w: matcher must not be nil", errors.ErrInvalidInput)
		}
		o.matcher = matcher
		return nil
	}
}
