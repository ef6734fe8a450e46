package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"portfoliosim/internal/calculator"
	"portfoliosim/internal/domain"
	"portfoliosim/internal/logger"
	"portfoliosim/internal/repository"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultHorizon        = 100
	DefaultNumSimulations = 100
	DefaultInitialCapital = 10000
	DefaultVarAlphaPct    = 5
)

// PortfolioSimulationApp runs a Monte Carlo simulation of a portfolio's
// value, from fetching historical closes through to terminal risk metrics.
// A run either produces every path or fails as a whole.
type PortfolioSimulationApp interface {
	Run(ctx context.Context, in PortfolioSimulationInput) (*PortfolioSimulationResult, error)
}

type portfolioSimulationAppHandler struct {
	PriceRepository repository.PriceRepository
	NewShockSampler func(src rand.Source) calculator.ShockSampler
}

func NewPortfolioSimulationApp(priceRepository repository.PriceRepository) PortfolioSimulationApp {
	return portfolioSimulationAppHandler{
		PriceRepository: priceRepository,
		NewShockSampler: calculator.NewNormalShockSampler,
	}
}

type PortfolioSimulationInput struct {
	Symbols []string
	Start   time.Time
	End     time.Time

	Horizon        int
	NumSimulations int
	InitialCapital float64
	Seed           uint64
	// Weights fixes the allocation, in Symbols order. Random weights are
	// drawn when empty.
	Weights     []float64
	VarAlphaPct float64
}

func (in PortfolioSimulationInput) withDefaults() PortfolioSimulationInput {
	if in.Horizon == 0 {
		in.Horizon = DefaultHorizon
	}
	if in.NumSimulations == 0 {
		in.NumSimulations = DefaultNumSimulations
	}
	if in.InitialCapital == 0 {
		in.InitialCapital = DefaultInitialCapital
	}
	if in.VarAlphaPct == 0 {
		in.VarAlphaPct = DefaultVarAlphaPct
	}
	return in
}

func (in PortfolioSimulationInput) validate() error {
	if len(in.Symbols) == 0 {
		return fmt.Errorf("cannot simulate portfolio with 0 symbols")
	}
	seen := map[string]bool{}
	for _, symbol := range in.Symbols {
		if symbol == "" {
			return fmt.Errorf("symbols cannot be empty")
		}
		if seen[symbol] {
			return fmt.Errorf("duplicate symbol %s", symbol)
		}
		seen[symbol] = true
	}
	if !in.Start.Before(in.End) {
		return fmt.Errorf("start %s must be before end %s", in.Start.Format(time.DateOnly), in.End.Format(time.DateOnly))
	}
	if in.Horizon < 0 || in.NumSimulations < 0 || in.InitialCapital < 0 {
		return fmt.Errorf("horizon, simulations and capital must be positive")
	}
	if in.VarAlphaPct <= 0 || in.VarAlphaPct >= 100 {
		return fmt.Errorf("var alpha must be between 0 and 100, got %f", in.VarAlphaPct)
	}
	return nil
}

type PortfolioSimulationResult struct {
	Statistics domain.ReturnStatistics
	Simulation domain.SimulationResult
	Metrics    calculator.TerminalMetrics
}

func (h portfolioSimulationAppHandler) Run(ctx context.Context, in PortfolioSimulationInput) (*PortfolioSimulationResult, error) {
	profile, endProfile := domain.GetProfile(ctx)
	defer endProfile()

	in = in.withDefaults()
	if err := in.validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation input: %w", err)
	}

	runID := uuid.New()
	log := logger.FromContext(ctx).With("runID", runID.String())

	profile.StartNewSpan("fetch closing prices")
	prices, err := h.PriceRepository.ListClosingPrices(ctx, in.Symbols, in.Start, in.End)
	if err != nil {
		return nil, fmt.Errorf("failed to get closing prices: %w", err)
	}

	profile.StartNewSpan("calculate return statistics")
	stats, err := calculator.CalculateReturnStatistics(in.Symbols, prices)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate return statistics: %w", err)
	}
	log.Infow("calculated return statistics",
		"symbols", stats.Symbols,
		"tradingDays", len(stats.TradingDays),
		"meanReturns", stats.MeanReturns,
	)

	src := calculator.NewSource(in.Seed)

	weights := in.Weights
	if len(weights) == 0 {
		weights, err = calculator.RandomWeights(rand.New(src), stats.NumAssets())
		if err != nil {
			return nil, fmt.Errorf("failed to assign weights: %w", err)
		}
	}
	log.Infow("assigned weights", "weights", weights)

	profile.StartNewSpan("simulate paths")
	returns, values, err := calculator.SimulatePortfolio(calculator.SimulatePortfolioInput{
		MeanReturns:    stats.MeanReturns,
		Covariance:     stats.Covariance,
		Weights:        weights,
		Horizon:        in.Horizon,
		NumSimulations: in.NumSimulations,
		InitialCapital: in.InitialCapital,
	}, h.NewShockSampler(src))
	if err != nil {
		return nil, fmt.Errorf("failed to simulate portfolio: %w", err)
	}

	simulation := domain.SimulationResult{
		RunID:          runID,
		Seed:           in.Seed,
		InitialCapital: in.InitialCapital,
		Horizon:        in.Horizon,
		NumSimulations: in.NumSimulations,
		Weights:        weights,
		Returns:        returns,
		Values:         values,
	}

	profile.StartNewSpan("calculate terminal metrics")
	metrics, err := calculator.CalculateTerminalMetrics(simulation, in.VarAlphaPct)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate terminal metrics: %w", err)
	}
	log.Infow("simulation complete",
		"simulations", in.NumSimulations,
		"horizon", in.Horizon,
		"meanTerminalValue", metrics.Mean,
		"valueAtRisk", metrics.ValueAtRisk,
	)

	return &PortfolioSimulationResult{
		Statistics: *stats,
		Simulation: simulation,
		Metrics:    *metrics,
	}, nil
}
