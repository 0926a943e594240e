// Package arrival compiles and evaluates the hourly patient arrival-rate
// expressions from the configuration document. Expressions are arbitrary
// functions of the hour index t since the simulation epoch, e.g.
// "6 + 3*cos((t-14)*pi/12)".
package arrival

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/PaesslerAG/gval"

	"github.com/edrostering/edflow/internal/entity"
)

// language is the shared gval dialect: arithmetic plus the small set of
// trig/comparison helpers the arrival functions are written against. t and
// pi are passed in as evaluation parameters rather than bound into the
// language, so one compiled Evaluable is safe to reuse concurrently at
// different t values.
var language = gval.NewLanguage(
	gval.Full(),
	gval.Function("cos", func(x float64) float64 { return math.Cos(x) }),
	gval.Function("sin", func(x float64) float64 { return math.Sin(x) }),
	gval.Function("min", func(a, b float64) float64 { return math.Min(a, b) }),
	gval.Function("max", func(a, b float64) float64 { return math.Max(a, b) }),
	gval.Function("abs", func(x float64) float64 { return math.Abs(x) }),
)

// Function is a compiled arrival-rate expression, safe for concurrent use.
type Function struct {
	name string
	expr string
	eval gval.Evaluable
}

// Compile parses expr once. A malformed expression is returned as a wrapped
// error naming the function; callers decide whether to surface it as a
// validation.Result entry or bail immediately.
func Compile(name, expr string) (*Function, error) {
	eval, err := language.NewEvaluable(expr)
	if err != nil {
		return nil, fmt.Errorf("arrival: compile %q: %w", name, err)
	}
	return &Function{name: name, expr: expr, eval: eval}, nil
}

// Name returns the arrival function's configured key.
func (f *Function) Name() string { return f.name }

// RateAt evaluates the expression at hour index t. The simulator passes the
// whole hours since the simulation epoch, not reduced modulo 24. Returns
// entity.ErrArrivalRateNonPositive if the
// result is zero or negative, since a non-positive Poisson rate has no
// meaningful interarrival-time sample.
func (f *Function) RateAt(t float64) (float64, error) {
	params := map[string]interface{}{
		"t":  t,
		"pi": math.Pi,
	}
	val, err := f.eval.EvalFloat64(context.Background(), params)
	if err != nil {
		return 0, fmt.Errorf("arrival: evaluate %q at t=%v: %w", f.name, t, err)
	}
	if val <= 0 {
		return 0, fmt.Errorf("%w: %q produced %v at t=%v", entity.ErrArrivalRateNonPositive, f.name, val, t)
	}
	return val, nil
}

// Registry holds every compiled arrival function from the configuration,
// keyed by name, plus the default function returned when a lookup names no
// known function.
type Registry struct {
	mu       sync.RWMutex
	byName   map[string]*Function
	defaultF string
}

// NewRegistry compiles every entry in defs. The compilation itself is not
// guarded by the registry's mutex since it only runs once at startup,
// before the registry is shared across goroutines.
func NewRegistry(defs map[string]string, defaultName string) (*Registry, error) {
	r := &Registry{byName: make(map[string]*Function, len(defs)), defaultF: defaultName}
	for name, expr := range defs {
		fn, err := Compile(name, expr)
		if err != nil {
			return nil, err
		}
		r.byName[name] = fn
	}
	if _, ok := r.byName[defaultName]; !ok {
		return nil, fmt.Errorf("arrival: default function %q not found among %d compiled functions", defaultName, len(defs))
	}
	return r, nil
}

// Get returns the named function, falling back to the registry's default
// when name is empty or unknown.
func (r *Registry) Get(name string) *Function {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if fn, ok := r.byName[name]; ok {
		return fn
	}
	return r.byName[r.defaultF]
}

// Default returns the registry's default arrival function.
func (r *Registry) Default() *Function {
	return r.Get(r.defaultF)
}
