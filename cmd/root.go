package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"portfoliosim/internal/app"
	"portfoliosim/internal/domain"
	"portfoliosim/internal/logger"
	"portfoliosim/internal/roulette"
	"portfoliosim/internal/util"
	"portfoliosim/pkg/valuechart"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var defaultSymbols = []string{"CBA.AX", "BHP.AX", "TLS.AX", "NAB.AX", "WBC.AX", "STO.AX"}

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "portfoliosim",
		Short:         "Roulette and portfolio Monte Carlo simulations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logger.WithLogger(ctx, logger.New()))
		},
	}
	root.AddCommand(newRouletteCommand(), newMonteCarloCommand())
	return root
}

func newRouletteCommand() *cobra.Command {
	var (
		trials int
		pocket int
		wager  string
		seed   uint64
	)
	cmd := &cobra.Command{
		Use:   "roulette",
		Short: "Bet on one pocket of a fair roulette wheel over many spins",
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(wager)
			if err != nil {
				return fmt.Errorf("invalid wager %q: %w", wager, err)
			}
			if !cmd.Flags().Changed("seed") {
				seed = uint64(time.Now().UnixNano())
			}
			log := logger.FromContext(cmd.Context())
			log.Infow("playing roulette", "trials", trials, "pocket", pocket, "wager", amount.String(), "seed", seed)

			result, err := roulette.PlayTrials(roulette.NewWheel(seed), pocket, amount, trials)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Report())
			return nil
		},
	}
	cmd.Flags().IntVar(&trials, "trials", 1000000, "number of spins")
	cmd.Flags().IntVar(&pocket, "pocket", 7, "pocket to bet on (1-36)")
	cmd.Flags().StringVar(&wager, "wager", "10", "amount bet on every spin")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed, defaults to the current time")
	return cmd
}

type monteCarloFlags struct {
	symbols        []string
	start          string
	end            string
	lookbackDays   int
	horizon        int
	numSimulations int
	capital        float64
	seed           uint64
	weights        []float64
	alpha          float64
	provider       string
	pricesCsv      string
	outCsv         string
	outChart       string
	printProfile   bool
}

func (f monteCarloFlags) dateRange(now time.Time) (time.Time, time.Time, error) {
	end := util.DateOnly(now)
	if f.end != "" {
		t, err := time.Parse(time.DateOnly, f.end)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end date: %w", err)
		}
		end = t
	}
	start := end.AddDate(0, 0, -f.lookbackDays)
	if f.start != "" {
		t, err := time.Parse(time.DateOnly, f.start)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start date: %w", err)
		}
		start = t
	}
	return start, end, nil
}

func newMonteCarloCommand() *cobra.Command {
	f := monteCarloFlags{}
	cmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "Simulate future portfolio values from historical returns",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				f.seed = uint64(time.Now().UnixNano())
			}
			return runMonteCarlo(cmd.Context(), cmd.OutOrStdout(), f)
		},
	}
	cmd.Flags().StringSliceVar(&f.symbols, "symbols", defaultSymbols, "securities in the portfolio")
	cmd.Flags().StringVar(&f.start, "start", "", "first day of price history (YYYY-MM-DD), overrides --lookback-days")
	cmd.Flags().StringVar(&f.end, "end", "", "last day of price history (YYYY-MM-DD), defaults to today")
	cmd.Flags().IntVar(&f.lookbackDays, "lookback-days", 300, "days of price history before end")
	cmd.Flags().IntVar(&f.horizon, "horizon", app.DefaultHorizon, "days to simulate")
	cmd.Flags().IntVar(&f.numSimulations, "simulations", app.DefaultNumSimulations, "number of simulated paths")
	cmd.Flags().Float64Var(&f.capital, "capital", app.DefaultInitialCapital, "initial portfolio value")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed, defaults to the current time")
	cmd.Flags().Float64SliceVar(&f.weights, "weights", nil, "fixed weights in symbol order, random when omitted")
	cmd.Flags().Float64Var(&f.alpha, "alpha", app.DefaultVarAlphaPct, "tail percentile for VaR and CVaR")
	cmd.Flags().StringVar(&f.provider, "provider", ProviderYahoo, "price provider: yahoo, alpaca or csv")
	cmd.Flags().StringVar(&f.pricesCsv, "prices-csv", "", "date,symbol,price file for the csv provider")
	cmd.Flags().StringVar(&f.outCsv, "out-csv", "", "write simulated values to this csv file")
	cmd.Flags().StringVar(&f.outChart, "out-chart", "", "write a png chart of the simulated paths to this file")
	cmd.Flags().BoolVar(&f.printProfile, "profile", false, "print stage timings")
	return cmd
}

func runMonteCarlo(ctx context.Context, out io.Writer, f monteCarloFlags) error {
	log := logger.FromContext(ctx)

	start, end, err := f.dateRange(time.Now())
	if err != nil {
		return err
	}

	deps, err := InitializeDependencies(DependencyOptions{
		Provider:  f.provider,
		PricesCsv: f.pricesCsv,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	ctx, profile := domain.NewCtxWithProfile(ctx)
	log.Infow("starting monte carlo simulation", "symbols", f.symbols, "start", start.Format(time.DateOnly), "end", end.Format(time.DateOnly), "seed", f.seed)

	result, err := deps.PortfolioSimulationApp.Run(ctx, app.PortfolioSimulationInput{
		Symbols:        f.symbols,
		Start:          start,
		End:            end,
		Horizon:        f.horizon,
		NumSimulations: f.numSimulations,
		InitialCapital: f.capital,
		Seed:           f.seed,
		Weights:        f.weights,
		VarAlphaPct:    f.alpha,
	})
	if err != nil {
		return err
	}

	printSummary(out, result)

	if f.outCsv != "" {
		file, err := os.Create(f.outCsv)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", f.outCsv, err)
		}
		defer file.Close()
		if err := deps.SimulationExportRepository.Export(file, result.Simulation); err != nil {
			return err
		}
		log.Infow("wrote simulated values", "path", f.outCsv)
	}

	if f.outChart != "" {
		png, err := valuechart.Render(result.Simulation.Values, "Monte Carlo Simulation of Portfolio Value")
		if err != nil {
			return err
		}
		if err := os.WriteFile(f.outChart, png, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.outChart, err)
		}
		log.Infow("wrote chart", "path", f.outChart)
	}

	if f.printProfile {
		profile.End()
		bytes, err := profile.ToJsonBytes()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(bytes))
	}

	return nil
}

func printSummary(out io.Writer, result *app.PortfolioSimulationResult) {
	stats := result.Statistics
	sim := result.Simulation
	metrics := result.Metrics

	fmt.Fprintf(out, "Run %s (seed %d)\n", sim.RunID, sim.Seed)
	fmt.Fprintf(out, "%d trading days from %s to %s\n",
		len(stats.TradingDays),
		stats.TradingDays[0].Format(time.DateOnly),
		stats.TradingDays[len(stats.TradingDays)-1].Format(time.DateOnly),
	)
	for i, symbol := range stats.Symbols {
		fmt.Fprintf(out, "  %-8s mean return %.6f  weight %.4f\n", symbol, stats.MeanReturns[i], sim.Weights[i])
	}
	fmt.Fprintf(out, "%d simulations over %d days from %s\n", sim.NumSimulations, sim.Horizon, decimal.NewFromFloat(sim.InitialCapital).StringFixed(2))
	fmt.Fprintf(out, "Terminal value: mean %.2f, stdev %.2f, p5 %.2f, median %.2f, p95 %.2f\n",
		metrics.Mean, metrics.Stdev, metrics.Percentile5, metrics.Median, metrics.Percentile95)
	alpha := decimal.NewFromFloat(metrics.AlphaPct).String()
	fmt.Fprintf(out, "VaR(%s%%) %.2f, CVaR(%s%%) %.2f\n", alpha, metrics.ValueAtRisk, alpha, metrics.ConditionalValueAtRisk)
}
