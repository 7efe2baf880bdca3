// econapi CLI - Economic Model Service
//
// Usage:
//   econapi serve [--port 8000]
//   econapi production --capital 100 --labor 50
//   econapi optimize --budget 1000 --capital-price 10 --labor-price 5
//   econapi demand --price 120 --elasticity -1.5
//   econapi optimal-price --elasticity -2 --marginal-cost 10
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"econ-api/api"
	"econ-api/internal/demand"
	"econ-api/internal/production"
	apiv1 "econ-api/pkg/api"
	"econ-api/pkg/platform"
	"econ-api/pkg/util"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	app := &cli.App{
		Name:    "econapi",
		Usage:   "Economic Model Service - Cobb-Douglas production and demand elasticity",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"ECON_API_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "json",
				Usage:   "Output format (json, table)",
			},
		},

		Commands: []*cli.Command{
			serveCommand(),
			productionCommand(),
			optimizeCommand(),
			demandCommand(),
			optimalPriceCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// SERVE COMMAND
// =============================================================================

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   8000,
				Usage:   "Listen port",
				EnvVars: []string{"ECON_API_PORT"},
			},
		},
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	log := platform.InitLogger(
		c.String("log-level"),
		platform.GetEnvBool("ECON_API_PRETTY_LOG", false),
	)

	cfg := api.DefaultConfig()
	cfg.Port = c.Int("port")
	cfg.RequestTimeout = time.Duration(platform.GetEnvInt("ECON_API_REQUEST_TIMEOUT_SECONDS", 60)) * time.Second
	cfg.CORSOrigins = strings.Split(platform.GetEnv("ECON_API_CORS_ORIGINS", "*"), ",")

	return api.NewServer(cfg, log).StartWithGracefulShutdown()
}

// =============================================================================
// PRODUCTION COMMAND
// =============================================================================

func productionCommand() *cli.Command {
	return &cli.Command{
		Name:  "production",
		Usage: "Evaluate Cobb-Douglas output and marginal products",
		Flags: append(modelFlags(),
			&cli.Float64Flag{
				Name:     "capital",
				Aliases:  []string{"k"},
				Usage:    "Capital input",
				Required: true,
			},
			&cli.Float64Flag{
				Name:     "labor",
				Aliases:  []string{"l"},
				Usage:    "Labor input",
				Required: true,
			},
		),
		Action: runProduction,
	}
}

func runProduction(c *cli.Context) error {
	req := apiv1.ProductionRequest{
		Capital: c.Float64("capital"),
		Labor:   c.Float64("labor"),
	}
	if err := req.Validate(); err != nil {
		return err
	}

	model := production.New(c.Float64("tfp"), c.Float64("alpha"), c.Float64("beta"))
	output, err := model.Output(req.Capital, req.Labor)
	if err != nil {
		return err
	}
	mpk, err := model.MarginalProductCapital(req.Capital, req.Labor)
	if err != nil {
		return err
	}
	mpl, err := model.MarginalProductLabor(req.Capital, req.Labor)
	if err != nil {
		return err
	}

	return render(c, apiv1.ProductionResponse{
		Output:                 util.Round2(output),
		MarginalProductCapital: util.Round4(mpk),
		MarginalProductLabor:   util.Round4(mpl),
		ReturnsToScale:         model.ReturnsToScale(),
	})
}

// =============================================================================
// OPTIMIZE COMMAND
// =============================================================================

func optimizeCommand() *cli.Command {
	return &cli.Command{
		Name:  "optimize",
		Usage: "Find the optimal capital/labor allocation under a budget",
		Flags: append(modelFlags(),
			&cli.Float64Flag{
				Name:     "budget",
				Aliases:  []string{"b"},
				Usage:    "Total budget to allocate",
				Required: true,
			},
			&cli.Float64Flag{
				Name:     "capital-price",
				Usage:    "Price per unit of capital",
				Required: true,
			},
			&cli.Float64Flag{
				Name:     "labor-price",
				Usage:    "Price per unit of labor",
				Required: true,
			},
		),
		Action: runOptimize,
	}
}

func runOptimize(c *cli.Context) error {
	req := apiv1.OptimizationRequest{
		Budget:       c.Float64("budget"),
		CapitalPrice: c.Float64("capital-price"),
		LaborPrice:   c.Float64("labor-price"),
	}
	if err := req.Validate(); err != nil {
		return err
	}

	model := production.New(c.Float64("tfp"), c.Float64("alpha"), c.Float64("beta"))
	alloc, err := model.OptimalAllocation(req.Budget, req.CapitalPrice, req.LaborPrice)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "💰 Budget %.2f split across capital (%.2f) and labor (%.2f)\n",
		req.Budget, req.CapitalPrice*alloc.Capital, req.LaborPrice*alloc.Labor)

	return render(c, apiv1.OptimizationResponse{
		Capital: alloc.Capital,
		Labor:   alloc.Labor,
		Output:  alloc.Output,
		MPK:     alloc.MPK,
		MPL:     alloc.MPL,
	})
}

// =============================================================================
// DEMAND COMMAND
// =============================================================================

func demandCommand() *cli.Command {
	return &cli.Command{
		Name:  "demand",
		Usage: "Evaluate quantity demanded and revenue at a price point",
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:     "price",
				Usage:    "Price level",
				Required: true,
			},
			&cli.Float64Flag{
				Name:     "elasticity",
				Aliases:  []string{"e"},
				Usage:    "Price elasticity of demand (negative for normal goods)",
				Required: true,
			},
			&cli.Float64Flag{
				Name:  "base-price",
				Value: demand.DefaultBasePrice,
				Usage: "Reference price",
			},
			&cli.Float64Flag{
				Name:  "base-quantity",
				Value: demand.DefaultBaseQuantity,
				Usage: "Reference quantity",
			},
		},
		Action: runDemand,
	}
}

func runDemand(c *cli.Context) error {
	price := c.Float64("price")
	elasticity := c.Float64("elasticity")
	basePrice := c.Float64("base-price")
	baseQuantity := c.Float64("base-quantity")

	quantity, err := demand.Quantity(price, elasticity, basePrice, baseQuantity)
	if err != nil {
		return err
	}
	revenue, err := demand.Revenue(price, elasticity, basePrice, baseQuantity)
	if err != nil {
		return err
	}

	return render(c, apiv1.DemandResponse{
		Price:            price,
		QuantityDemanded: util.Round2(quantity),
		TotalRevenue:     util.Round2(revenue),
		Elasticity:       elasticity,
	})
}

// =============================================================================
// OPTIMAL PRICE COMMAND
// =============================================================================

func optimalPriceCommand() *cli.Command {
	return &cli.Command{
		Name:  "optimal-price",
		Usage: "Compute the profit-maximizing markup price",
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:     "elasticity",
				Aliases:  []string{"e"},
				Usage:    "Price elasticity of demand (must be negative)",
				Required: true,
			},
			&cli.Float64Flag{
				Name:     "marginal-cost",
				Aliases:  []string{"c"},
				Usage:    "Marginal cost per unit",
				Required: true,
			},
		},
		Action: runOptimalPrice,
	}
}

func runOptimalPrice(c *cli.Context) error {
	markup, err := demand.OptimalPrice(c.Float64("elasticity"), c.Float64("marginal-cost"))
	if err != nil {
		return err
	}

	return render(c, apiv1.OptimalPriceResponse{
		OptimalPrice:     markup.OptimalPrice,
		MarkupPercentage: markup.MarkupPercentage,
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func modelFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{
			Name:  "tfp",
			Value: production.DefaultTFP,
			Usage: "Total factor productivity",
		},
		&cli.Float64Flag{
			Name:  "alpha",
			Value: production.DefaultAlpha,
			Usage: "Capital elasticity",
		},
		&cli.Float64Flag{
			Name:  "beta",
			Value: production.DefaultBeta,
			Usage: "Labor elasticity",
		},
	}
}

func render(c *cli.Context, v any) error {
	if c.String("format") == "table" {
		return renderTable(v)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderTable prints the response as aligned key/value lines, using the wire
// field names so table and json output stay comparable.
func renderTable(v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var fields map[string]float64
	if err := json.Unmarshal(raw, &fields); err != nil {
		return err
	}

	width := 0
	for name := range fields {
		if len(name) > width {
			width = len(name)
		}
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("%-*s  %g\n", width, name, fields[name])
	}
	return nil
}
