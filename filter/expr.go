package filter

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	lru "github.com/hashicorp/golang-lru"

	"github.com/steadysun/steadysun-go/pvsystem"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size <= 0 {
			return
		}
		cache, err := lru.New(size)
		if err == nil {
			c.cache = cache
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: make(map[string]any, 16),
	}
	addHelperFunctions(c.helperFuncs)

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// exprCompiler implements CachingCompiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lru.Cache
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached.(CompiledFilter), nil
		}
	}

	// The zero system gives the checker the type of every variable, so
	// misspelled fields fail here instead of at evaluation.
	env := createRuntimeEnvironment(&pvsystem.PVSystem{})
	maps.Copy(env, c.helperFuncs)

	program, err := expr.Compile(expression,
		expr.Env(env),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		helpers:    c.helperFuncs,
	}

	if c.cache != nil {
		c.cache.Add(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Purge()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Len()
	}
	return 0
}

// Evaluate evaluates the filter against a PV system
func (f *exprFilter) Evaluate(system *pvsystem.PVSystem) (bool, error) {
	env := createRuntimeEnvironment(system)
	maps.Copy(env, f.helpers)

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			System:     system.Name,
			Reason:     "expression failed",
			Err:        err,
		}
	}

	// AsBool guarantees the result type
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// addHelperFunctions adds the system-independent helpers to env
func addHelperFunctions(env map[string]any) {
	// Date helpers
	env["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	env["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	env["yearsAgo"] = func(years int) time.Time {
		return time.Now().AddDate(-years, 0, 0)
	}
	env["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.Parse(time.DateOnly, dateStr)
		return t
	}
	// Case-insensitive string helpers. The plain names are expr operators.
	env["icontains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["istartsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["iendsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	env["now"] = time.Now
}

// createRuntimeEnvironment exposes the fields of system to expressions
func createRuntimeEnvironment(system *pvsystem.PVSystem) map[string]any {
	env := make(map[string]any, 32)

	expert := system.ExpertParams
	installed, _ := time.Parse(time.DateOnly, expert.InstallationDate)

	env["System"] = system
	env["UUID"] = system.UUID.String()
	env["Name"] = system.Name
	env["Title"] = system.Title
	env["Altitude"] = system.Altitude
	env["Lon"] = system.Location.Lon()
	env["Lat"] = system.Location.Lat()
	env["PVType"] = system.PVType.String()
	env["RequestedFields"] = system.RequestedFields
	env["Arrays"] = expert.Arrays
	env["ArrayCount"] = len(expert.Arrays)
	env["PeakPower"] = system.PeakPower()
	env["InstallationDate"] = expert.InstallationDate
	env["Installed"] = installed
	env["HasTracker"] = expert.TrackerConfig != nil
	env["IsBifacial"] = expert.BifacialConfig != nil

	env["hasRequestedField"] = createHasRequestedFieldFunc(system.RequestedFields)
	env["hasMaterial"] = createHasMaterialFunc(expert.Arrays)

	return env
}

func createHasRequestedFieldFunc(fields []int) func(int) bool {
	return func(field int) bool {
		return slices.Contains(fields, field)
	}
}

func createHasMaterialFunc(arrays []pvsystem.Array) func(string) bool {
	return func(name string) bool {
		for _, a := range arrays {
			if strings.EqualFold(a.ModuleMaterial.String(), name) {
				return true
			}
		}
		return false
	}
}
