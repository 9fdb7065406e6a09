package filter

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/steadysun/steadysun-go/pvsystem"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*Evaluator)

// WithStrict makes the evaluator fail on the first evaluation error instead
// of skipping the system
func WithStrict() EvaluatorOption {
	return func(e *Evaluator) {
		e.strict = true
	}
}

// Evaluator applies a compiled filter to a list of PV systems
type Evaluator struct {
	logger zerolog.Logger
	strict bool
}

var _ SystemEvaluator = (*Evaluator)(nil)

// NewEvaluator creates a new evaluator
func NewEvaluator(logger zerolog.Logger, opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{logger: logger}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate returns the systems matching filter, in their original order.
func (e *Evaluator) Evaluate(ctx context.Context, filter CompiledFilter, systems []pvsystem.PVSystem) ([]pvsystem.PVSystem, error) {
	matches := make([]pvsystem.PVSystem, 0, len(systems))

	for i := range systems {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ok, err := filter.Evaluate(&systems[i])
		if err != nil {
			if e.strict {
				return nil, err
			}
			var evalErr *EvaluationError
			if errors.As(err, &evalErr) {
				e.logger.Debug().
					Str("filter", evalErr.Expression).
					Str("system", evalErr.System).
					Err(evalErr.Err).
					Msg("Skipping system, filter evaluation failed")
			}
			continue
		}
		if ok {
			matches = append(matches, systems[i])
		}
	}

	e.logger.Debug().
		Str("filter", filter.Expression()).
		Int("total", len(systems)).
		Int("matched", len(matches)).
		Msg("Filter evaluated")

	return matches, nil
}
