// Package api defines the request and response contracts for the economic
// model operations. The structs carry the exact wire field names; validation
// mirrors the range checks the service performs before touching the models.
package api

import econerrors "econ-api/pkg/errors"

// ProductionRequest asks for Cobb-Douglas output at a given input mix.
// TFP, Alpha and Beta default to 1.0, 0.3 and 0.7 when omitted.
type ProductionRequest struct {
	Capital float64  `json:"capital"`
	Labor   float64  `json:"labor"`
	TFP     *float64 `json:"tfp,omitempty"`
	Alpha   *float64 `json:"alpha,omitempty"`
	Beta    *float64 `json:"beta,omitempty"`
}

func (r *ProductionRequest) Validate() error {
	if r.Capital <= 0 {
		return econerrors.NewNonPositiveInputError("capital")
	}
	if r.Labor <= 0 {
		return econerrors.NewNonPositiveInputError("labor")
	}
	return nil
}

// OptimizationRequest asks for the budget-constrained optimal allocation.
type OptimizationRequest struct {
	Budget       float64  `json:"budget"`
	CapitalPrice float64  `json:"capital_price"`
	LaborPrice   float64  `json:"labor_price"`
	TFP          *float64 `json:"tfp,omitempty"`
	Alpha        *float64 `json:"alpha,omitempty"`
	Beta         *float64 `json:"beta,omitempty"`
}

func (r *OptimizationRequest) Validate() error {
	if r.Budget <= 0 {
		return econerrors.NewNonPositiveInputError("budget")
	}
	if r.CapitalPrice <= 0 {
		return econerrors.NewNonPositiveInputError("capital_price")
	}
	if r.LaborPrice <= 0 {
		return econerrors.NewNonPositiveInputError("labor_price")
	}
	return nil
}

// DemandRequest asks for quantity demanded and revenue at a price point.
// BasePrice and BaseQuantity default to 100 and 1000 when omitted.
type DemandRequest struct {
	Price        float64  `json:"price"`
	Elasticity   float64  `json:"elasticity"`
	BasePrice    *float64 `json:"base_price,omitempty"`
	BaseQuantity *float64 `json:"base_quantity,omitempty"`
}

func (r *DemandRequest) Validate() error {
	if r.Price <= 0 {
		return econerrors.NewNonPositiveInputError("price")
	}
	if r.BasePrice != nil && *r.BasePrice <= 0 {
		return econerrors.NewNonPositiveInputError("base_price")
	}
	if r.BaseQuantity != nil && *r.BaseQuantity <= 0 {
		return econerrors.NewNonPositiveInputError("base_quantity")
	}
	return nil
}

// OptimalPriceRequest asks for the profit-maximizing markup price.
// The elasticity sign precondition is checked by the demand model itself.
type OptimalPriceRequest struct {
	Elasticity   float64 `json:"elasticity"`
	MarginalCost float64 `json:"marginal_cost"`
}

func (r *OptimalPriceRequest) Validate() error {
	if r.MarginalCost <= 0 {
		return econerrors.NewNonPositiveInputError("marginal_cost")
	}
	return nil
}

// FloatOrDefault returns *p, or def when p is nil.
func FloatOrDefault(p *float64, def float64) float64 {
	if p != nil {
		return *p
	}
	return def
}
