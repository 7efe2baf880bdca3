package production

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"econ-api/internal/solver"
	econerrors "econ-api/pkg/errors"
)

func TestOutputMatchesFormula(t *testing.T) {
	cases := []struct {
		name             string
		tfp, alpha, beta float64
		capital, labor   float64
	}{
		{"standard", 1.0, 0.3, 0.7, 100, 50},
		{"scaled tfp", 2.5, 0.3, 0.7, 100, 50},
		{"symmetric", 1.0, 0.5, 0.5, 64, 36},
		{"increasing returns", 1.2, 0.6, 0.6, 10, 20},
		{"small inputs", 1.0, 0.3, 0.7, 0.5, 0.25},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := New(tc.tfp, tc.alpha, tc.beta)
			got, err := m.Output(tc.capital, tc.labor)
			require.NoError(t, err)
			want := tc.tfp * math.Pow(tc.capital, tc.alpha) * math.Pow(tc.labor, tc.beta)
			require.InEpsilon(t, want, got, 1e-12)
		})
	}
}

func TestOutputKnownValue(t *testing.T) {
	m := New(1.0, 0.3, 0.7)
	got, err := m.Output(100, 50)
	require.NoError(t, err)
	// 100^0.3 * 50^0.7
	require.InDelta(t, 61.5572, got, 1e-3)
}

func TestOutputRejectsNonPositiveInputs(t *testing.T) {
	m := New(1.0, 0.3, 0.7)

	for _, in := range [][2]float64{{0, 50}, {-1, 50}, {100, 0}, {100, -5}} {
		_, err := m.Output(in[0], in[1])
		require.Error(t, err)

		var ee *econerrors.EconError
		require.True(t, errors.As(err, &ee))
		require.Equal(t, econerrors.ErrCodeNonPositiveInput, ee.Code)
	}
}

func TestMarginalProductsMatchFormulas(t *testing.T) {
	m := New(1.5, 0.4, 0.6)
	k, l := 80.0, 120.0

	mpk, err := m.MarginalProductCapital(k, l)
	require.NoError(t, err)
	require.InEpsilon(t, 0.4*1.5*math.Pow(k, -0.6)*math.Pow(l, 0.6), mpk, 1e-12)

	mpl, err := m.MarginalProductLabor(k, l)
	require.NoError(t, err)
	require.InEpsilon(t, 0.6*1.5*math.Pow(k, 0.4)*math.Pow(l, -0.4), mpl, 1e-12)
}

func TestEulerTheoremUnderConstantReturns(t *testing.T) {
	// For alpha + beta = 1, MPK*K + MPL*L must equal total output.
	m := New(1.0, 0.3, 0.7)
	k, l := 100.0, 50.0

	output, err := m.Output(k, l)
	require.NoError(t, err)
	mpk, err := m.MarginalProductCapital(k, l)
	require.NoError(t, err)
	mpl, err := m.MarginalProductLabor(k, l)
	require.NoError(t, err)

	require.InEpsilon(t, output, mpk*k+mpl*l, 1e-9)
	require.InDelta(t, 1.0, m.ReturnsToScale(), 1e-12)
}

func TestOptimalAllocationMatchesClosedForm(t *testing.T) {
	// For Cobb-Douglas under a linear budget, the optimum is the
	// elasticity-weighted budget share: K* = alpha/(alpha+beta) * B/pK.
	m := New(1.0, 0.3, 0.7)
	budget, pk, pl := 1000.0, 10.0, 5.0

	alloc, err := m.OptimalAllocation(budget, pk, pl)
	require.NoError(t, err)

	require.InDelta(t, 30.0, alloc.Capital, 0.05)
	require.InDelta(t, 140.0, alloc.Labor, 0.05)
	require.InDelta(t, 88.19, alloc.Output, 0.05)
	require.InDelta(t, 0.8819, alloc.MPK, 2e-3)
	require.InDelta(t, 0.4409, alloc.MPL, 2e-3)

	// budget exhausted
	require.InDelta(t, budget, pk*alloc.Capital+pl*alloc.Labor, 1.0)

	// equimarginal principle: MPK/pK == MPL/pL at the optimum
	require.InDelta(t, alloc.MPK/pk, alloc.MPL/pl, 1e-3)
}

func TestOptimalAllocationSymmetric(t *testing.T) {
	m := New(1.0, 0.5, 0.5)
	alloc, err := m.OptimalAllocation(100, 1, 1)
	require.NoError(t, err)
	require.InDelta(t, 50.0, alloc.Capital, 0.05)
	require.InDelta(t, 50.0, alloc.Labor, 0.05)
	require.InDelta(t, 50.0, alloc.Output, 0.05)
}

func TestOptimalAllocationAcrossReturnsRegimes(t *testing.T) {
	// The elasticity-weighted budget share K* = alpha/(alpha+beta) * B/pK
	// holds for any alpha, beta > 0, so allocation must work under
	// decreasing, constant and increasing returns to scale alike.
	cases := []struct {
		name           string
		alpha, beta    float64
		budget, pk, pl float64
	}{
		{"decreasing returns", 0.2, 0.3, 500, 5, 4},
		{"constant returns", 0.3, 0.7, 1000, 10, 5},
		{"increasing returns", 0.6, 0.6, 1000, 10, 5},
		{"increasing asymmetric", 0.8, 0.4, 600, 3, 2},
		{"strongly increasing", 0.9, 0.9, 100, 1, 1},
		{"just past constant", 0.7, 0.5, 1000, 10, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := New(1.0, tc.alpha, tc.beta)
			alloc, err := m.OptimalAllocation(tc.budget, tc.pk, tc.pl)
			require.NoError(t, err)

			share := tc.alpha / (tc.alpha + tc.beta)
			require.InDelta(t, share*tc.budget/tc.pk, alloc.Capital, 0.05)
			require.InDelta(t, (1-share)*tc.budget/tc.pl, alloc.Labor, 0.05)
			require.InDelta(t, tc.budget, tc.pk*alloc.Capital+tc.pl*alloc.Labor, 1.0)
		})
	}
}

func TestOptimalAllocationRejectsNonPositiveInputs(t *testing.T) {
	m := New(1.0, 0.3, 0.7)

	cases := []struct {
		budget, pk, pl float64
		field          string
	}{
		{0, 10, 5, "budget"},
		{1000, 0, 5, "capital_price"},
		{1000, 10, -1, "labor_price"},
	}
	for _, tc := range cases {
		_, err := m.OptimalAllocation(tc.budget, tc.pk, tc.pl)
		require.Error(t, err)

		var ee *econerrors.EconError
		require.True(t, errors.As(err, &ee))
		require.Equal(t, tc.field, ee.Field)
	}
}

// stuckMinimizer never converges.
type stuckMinimizer struct{}

func (stuckMinimizer) Minimize(p solver.Problem) (solver.Result, error) {
	return solver.Result{X: p.Init, Converged: false, Iterations: 42}, nil
}

func TestOptimalAllocationSurfacesNonConvergence(t *testing.T) {
	m := New(1.0, 0.3, 0.7).WithMinimizer(stuckMinimizer{})

	_, err := m.OptimalAllocation(1000, 10, 5)
	require.Error(t, err)

	var ee *econerrors.EconError
	require.True(t, errors.As(err, &ee))
	require.Equal(t, econerrors.ErrCodeSolverFailed, ee.Code)
}
