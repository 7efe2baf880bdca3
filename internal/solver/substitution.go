package solver

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// Substitution solves two-variable problems by eliminating the linear
// equality: the second variable is expressed in terms of the first, the
// remaining bound interval is mapped onto the real line, and the reduced
// one-dimensional problem goes to gonum's Nelder-Mead.
//
// Because the constraint is satisfied by construction, convergence depends
// only on the inner solve, and the reduction stays well conditioned across
// decreasing, constant and increasing returns-to-scale objectives.
type Substitution struct{}

// NewSubstitution returns a minimizer for two-variable problems.
func NewSubstitution() *Substitution {
	return &Substitution{}
}

// Minimize reduces the problem to one dimension and solves it. An infeasible
// bound interval reports Converged=false rather than an error.
func (s *Substitution) Minimize(p Problem) (Result, error) {
	if p.Objective == nil {
		return Result{}, fmt.Errorf("solver: problem needs an objective")
	}
	if len(p.Init) != 2 || len(p.Constraint.Coeffs) != 2 {
		return Result{}, fmt.Errorf("solver: substitution minimizer handles exactly two variables")
	}
	if p.LowerBounds != nil && len(p.LowerBounds) != 2 {
		return Result{}, fmt.Errorf("solver: bounds/init dimension mismatch: %d vs 2", len(p.LowerBounds))
	}
	a0, a1 := p.Constraint.Coeffs[0], p.Constraint.Coeffs[1]
	if a0 == 0 || a1 == 0 {
		return Result{}, fmt.Errorf("solver: constraint must involve both variables")
	}

	// The second variable follows from the constraint once the first is set.
	second := func(x0 float64) float64 {
		return (p.Constraint.RHS - a0*x0) / a1
	}

	lo := math.Inf(-1)
	hi := math.Inf(1)
	if p.LowerBounds != nil {
		lo = p.LowerBounds[0]
		// The eliminated variable's bound folds into the interval for x0.
		t := (p.Constraint.RHS - a1*p.LowerBounds[1]) / a0
		if (a0 > 0) == (a1 > 0) {
			hi = t
		} else {
			lo = math.Max(lo, t)
		}
		if hi <= lo {
			return Result{Converged: false}, nil
		}
	}

	toX0 := intervalTransform(lo, hi)
	objective := func(z []float64) float64 {
		x0 := toX0(z[0])
		return p.Objective([]float64{x0, second(x0)})
	}

	settings := &optimize.Settings{
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-12,
			Relative:   1e-12,
			Iterations: 100,
		},
	}

	res, err := optimize.Minimize(
		optimize.Problem{Func: objective},
		[]float64{initialZ(p.Init[0], lo, hi)},
		settings,
		&optimize.NelderMead{},
	)
	if err != nil {
		return Result{Converged: false}, nil
	}

	x0 := toX0(res.X[0])
	x := []float64{x0, second(x0)}
	return Result{
		X:          x,
		Value:      p.Objective(x),
		Converged:  res.Status != optimize.Failure,
		Iterations: res.Stats.MajorIterations,
	}, nil
}

// intervalTransform maps the real line onto the open interval (lo, hi);
// either end may be infinite.
func intervalTransform(lo, hi float64) func(float64) float64 {
	switch {
	case math.IsInf(lo, -1) && math.IsInf(hi, 1):
		return func(z float64) float64 { return z }
	case math.IsInf(hi, 1):
		return func(z float64) float64 { return lo + math.Exp(z) }
	case math.IsInf(lo, -1):
		return func(z float64) float64 { return hi - math.Exp(z) }
	default:
		return func(z float64) float64 { return lo + (hi-lo)/(1+math.Exp(-z)) }
	}
}

// initialZ inverts the interval transform at the starting point, nudging it
// inside the interval when it sits on or past an edge.
func initialZ(x0, lo, hi float64) float64 {
	switch {
	case math.IsInf(lo, -1) && math.IsInf(hi, 1):
		return x0
	case math.IsInf(hi, 1):
		d := x0 - lo
		if d <= 0 {
			d = 1e-6 * math.Max(1, math.Abs(lo))
		}
		return math.Log(d)
	case math.IsInf(lo, -1):
		d := hi - x0
		if d <= 0 {
			d = 1e-6 * math.Max(1, math.Abs(hi))
		}
		return math.Log(d)
	default:
		r := (x0 - lo) / (hi - lo)
		r = math.Min(math.Max(r, 1e-6), 1-1e-6)
		return math.Log(r / (1 - r))
	}
}
