// Package filter selects PV systems with expr-lang expressions such as
//
//	PeakPower > 5000 and icontains(Name, "roof")
//	PVType == "fixed" and hasRequestedField(13)
//	Installed > parseDate("2023-01-01")
package filter

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/steadysun/steadysun-go/pvsystem"
)

var defaultCompiler = NewExprCompiler(WithCache(100))

// CompileFilter compiles expression with the shared caching compiler
func CompileFilter(expression string) (CompiledFilter, error) {
	return defaultCompiler.Compile(expression)
}

// Apply compiles expression and returns the matching systems. Systems the
// expression cannot be evaluated on are skipped.
func Apply(ctx context.Context, expression string, systems []pvsystem.PVSystem, logger zerolog.Logger) ([]pvsystem.PVSystem, error) {
	filter, err := CompileFilter(expression)
	if err != nil {
		return nil, err
	}
	return NewEvaluator(logger).Evaluate(ctx, filter, systems)
}
