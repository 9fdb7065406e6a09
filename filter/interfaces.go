package filter

import (
	"context"

	"github.com/steadysun/steadysun-go/pvsystem"
)

// Filter defines the basic interface for PV system filters
type Filter interface {
	// Evaluate checks if a system matches the filter criteria
	Evaluate(system *pvsystem.PVSystem) (bool, error)
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}

// SystemEvaluator selects the systems matching a filter
type SystemEvaluator interface {
	Evaluate(ctx context.Context, filter CompiledFilter, systems []pvsystem.PVSystem) ([]pvsystem.PVSystem, error)
}
