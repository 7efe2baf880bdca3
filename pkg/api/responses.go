package api

// ProductionResponse reports Cobb-Douglas output and its partial derivatives.
// Output is rounded to 2 decimals, the marginal products to 4;
// returns_to_scale is alpha + beta, unrounded.
type ProductionResponse struct {
	Output                 float64 `json:"output"`
	MarginalProductCapital float64 `json:"marginal_product_capital"`
	MarginalProductLabor   float64 `json:"marginal_product_labor"`
	ReturnsToScale         float64 `json:"returns_to_scale"`
}

// OptimizationResponse reports the converged allocation.
type OptimizationResponse struct {
	Capital float64 `json:"capital"`
	Labor   float64 `json:"labor"`
	Output  float64 `json:"output"`
	MPK     float64 `json:"mpk"`
	MPL     float64 `json:"mpl"`
}

// DemandResponse echoes the price point and reports quantity and revenue,
// both rounded to 2 decimals.
type DemandResponse struct {
	Price            float64 `json:"price"`
	QuantityDemanded float64 `json:"quantity_demanded"`
	TotalRevenue     float64 `json:"total_revenue"`
	Elasticity       float64 `json:"elasticity"`
}

// OptimalPriceResponse reports the markup price, both fields rounded to
// 2 decimals.
type OptimalPriceResponse struct {
	OptimalPrice     float64 `json:"optimal_price"`
	MarkupPercentage float64 `json:"markup_percentage"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
