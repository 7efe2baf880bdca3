// Package solver provides constrained minimization behind a narrow interface.
//
// The economic models describe their optimization problems as plain closures
// and never import the numerical backend directly, so the backend can be
// swapped without touching model code.
package solver

// LinearConstraint is the equality sum(Coeffs[i] * x[i]) = RHS.
type LinearConstraint struct {
	Coeffs []float64
	RHS    float64
}

// Problem is a smooth minimization problem with one linear equality
// constraint and optional per-variable lower bounds.
type Problem struct {
	// Objective is the function to minimize.
	Objective func(x []float64) float64

	// Constraint must hold with equality at any feasible point.
	Constraint LinearConstraint

	// LowerBounds holds per-variable lower bounds; nil means unbounded.
	LowerBounds []float64

	// Init is the starting point.
	Init []float64
}

// Result is the outcome of a minimization run.
type Result struct {
	X          []float64
	Value      float64
	Converged  bool
	Iterations int
}

// Minimizer solves constrained minimization problems.
type Minimizer interface {
	Minimize(p Problem) (Result, error)
}
