// Package demand implements constant-elasticity demand, revenue, and markup
// pricing. All operations are stateless: elasticity and the reference point
// are plain arguments.
package demand

import (
	"math"

	econerrors "econ-api/pkg/errors"
	"econ-api/pkg/util"
)

// Defaults for the reference point on the demand curve.
const (
	DefaultBasePrice    = 100.0
	DefaultBaseQuantity = 1000.0
)

// Markup is the result of the profit-maximizing markup formula, both fields
// rounded to 2 decimals.
type Markup struct {
	OptimalPrice     float64 `json:"optimal_price"`
	MarkupPercentage float64 `json:"markup_percentage"`
}

// Quantity computes Q = Q0 * (P/P0)^elasticity.
func Quantity(price, elasticity, basePrice, baseQuantity float64) (float64, error) {
	switch {
	case price <= 0:
		return 0, econerrors.NewNonPositiveInputError("price")
	case basePrice <= 0:
		return 0, econerrors.NewNonPositiveInputError("base_price")
	case baseQuantity <= 0:
		return 0, econerrors.NewNonPositiveInputError("base_quantity")
	}
	return baseQuantity * math.Pow(price/basePrice, elasticity), nil
}

// Revenue computes price times quantity demanded at that price.
func Revenue(price, elasticity, basePrice, baseQuantity float64) (float64, error) {
	quantity, err := Quantity(price, elasticity, basePrice, baseQuantity)
	if err != nil {
		return 0, err
	}
	return price * quantity, nil
}

// OptimalPrice computes the profit-maximizing markup price
// P* = MC / (1 + 1/elasticity).
//
// Requires elasticity < 0. For elasticity in (-1, 0) the formula itself
// produces a negative price; that degenerate output is returned as-is.
func OptimalPrice(elasticity, marginalCost float64) (*Markup, error) {
	if elasticity >= 0 {
		return nil, econerrors.NewElasticityError()
	}
	if marginalCost <= 0 {
		return nil, econerrors.NewNonPositiveInputError("marginal_cost")
	}

	price := marginalCost / (1 + 1/elasticity)
	return &Markup{
		OptimalPrice:     util.Round2(price),
		MarkupPercentage: util.Round2((price - marginalCost) / marginalCost * 100),
	}, nil
}
