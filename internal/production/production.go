// Package production implements the Cobb-Douglas production model:
// Y = A * K^alpha * L^beta.
package production

import (
	"fmt"
	"math"

	"econ-api/internal/solver"
	econerrors "econ-api/pkg/errors"
	"econ-api/pkg/util"
)

// Defaults applied when a caller omits model parameters.
const (
	DefaultTFP   = 1.0
	DefaultAlpha = 0.3
	DefaultBeta  = 0.7
)

// allocationFloor keeps the optimizer's decision variables away from the
// zero-power singularity.
const allocationFloor = 0.01

// Model is one production function instance. Immutable once constructed.
type Model struct {
	A     float64 // total factor productivity
	Alpha float64 // capital elasticity
	Beta  float64 // labor elasticity

	minimizer solver.Minimizer
}

// New creates a model with the given parameters.
func New(tfp, alpha, beta float64) *Model {
	return &Model{A: tfp, Alpha: alpha, Beta: beta, minimizer: solver.NewSubstitution()}
}

// WithMinimizer overrides the optimization backend.
func (m *Model) WithMinimizer(min solver.Minimizer) *Model {
	m.minimizer = min
	return m
}

// Allocation is the result of budget-constrained output maximization.
// Capital, Labor and Output are rounded to 2 decimals, the marginal
// products to 4.
type Allocation struct {
	Capital float64 `json:"capital"`
	Labor   float64 `json:"labor"`
	Output  float64 `json:"output"`
	MPK     float64 `json:"mpk"`
	MPL     float64 `json:"mpl"`
}

// Output computes A * K^alpha * L^beta.
func (m *Model) Output(capital, labor float64) (float64, error) {
	if err := checkInputs(capital, labor); err != nil {
		return 0, err
	}
	return m.output(capital, labor), nil
}

// MarginalProductCapital computes dY/dK.
func (m *Model) MarginalProductCapital(capital, labor float64) (float64, error) {
	if err := checkInputs(capital, labor); err != nil {
		return 0, err
	}
	return m.mpk(capital, labor), nil
}

// MarginalProductLabor computes dY/dL.
func (m *Model) MarginalProductLabor(capital, labor float64) (float64, error) {
	if err := checkInputs(capital, labor); err != nil {
		return 0, err
	}
	return m.mpl(capital, labor), nil
}

// ReturnsToScale reports alpha + beta. A sum of 1 means doubling both inputs
// doubles output.
func (m *Model) ReturnsToScale() float64 {
	return m.Alpha + m.Beta
}

// OptimalAllocation maximizes output subject to
// capitalPrice*K + laborPrice*L = budget with K, L >= 0.01.
//
// The solver minimizes negated output from an even 50/50 budget split.
// Non-convergence is surfaced as a SOLVER_NOT_CONVERGED error, never as a
// plausible-looking optimum.
func (m *Model) OptimalAllocation(budget, capitalPrice, laborPrice float64) (*Allocation, error) {
	switch {
	case budget <= 0:
		return nil, econerrors.NewNonPositiveInputError("budget")
	case capitalPrice <= 0:
		return nil, econerrors.NewNonPositiveInputError("capital_price")
	case laborPrice <= 0:
		return nil, econerrors.NewNonPositiveInputError("labor_price")
	}

	res, err := m.minimizer.Minimize(solver.Problem{
		Objective: func(x []float64) float64 {
			return -m.output(x[0], x[1])
		},
		Constraint: solver.LinearConstraint{
			Coeffs: []float64{capitalPrice, laborPrice},
			RHS:    budget,
		},
		LowerBounds: []float64{allocationFloor, allocationFloor},
		Init: []float64{
			initialGuess(budget, capitalPrice),
			initialGuess(budget, laborPrice),
		},
	})
	if err != nil {
		return nil, err
	}
	if !res.Converged {
		return nil, econerrors.NewSolverError(fmt.Sprintf("after %d iterations", res.Iterations))
	}

	k, l := res.X[0], res.X[1]
	return &Allocation{
		Capital: util.Round2(k),
		Labor:   util.Round2(l),
		Output:  util.Round2(m.output(k, l)),
		MPK:     util.Round4(m.mpk(k, l)),
		MPL:     util.Round4(m.mpl(k, l)),
	}, nil
}

func (m *Model) output(capital, labor float64) float64 {
	return m.A * math.Pow(capital, m.Alpha) * math.Pow(labor, m.Beta)
}

func (m *Model) mpk(capital, labor float64) float64 {
	return m.Alpha * m.A * math.Pow(capital, m.Alpha-1) * math.Pow(labor, m.Beta)
}

func (m *Model) mpl(capital, labor float64) float64 {
	return m.Beta * m.A * math.Pow(capital, m.Alpha) * math.Pow(labor, m.Beta-1)
}

// initialGuess is half the budget converted to quantity, clamped above the
// floor so the solver's bound transform stays defined for tiny budgets.
func initialGuess(budget, price float64) float64 {
	return math.Max(budget/(2*price), 2*allocationFloor)
}

func checkInputs(capital, labor float64) error {
	if capital <= 0 {
		return econerrors.NewNonPositiveInputError("capital")
	}
	if labor <= 0 {
		return econerrors.NewNonPositiveInputError("labor")
	}
	return nil
}
