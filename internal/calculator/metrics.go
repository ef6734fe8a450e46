package calculator

import (
	"fmt"
	"math"
	"portfoliosim/internal/domain"

	"github.com/montanaflynn/stats"
)

type TerminalMetrics struct {
	InitialCapital float64
	Mean           float64
	Stdev          float64
	Percentile5    float64
	Median         float64
	Percentile95   float64

	// AlphaPct is the tail percentile used for the risk measures below,
	// e.g. 5 for a 95% confidence level
	AlphaPct float64
	// ValueAtRisk is the loss from initial capital at the alpha percentile
	// of terminal values
	ValueAtRisk float64
	// ConditionalValueAtRisk is the loss from initial capital averaged
	// over every terminal value at or below the alpha percentile
	ConditionalValueAtRisk float64
}

// CalculateTerminalMetrics summarizes the distribution of final portfolio
// values across every simulated path
func CalculateTerminalMetrics(result domain.SimulationResult, alphaPct float64) (*TerminalMetrics, error) {
	if alphaPct <= 0 || alphaPct >= 100 {
		return nil, fmt.Errorf("alpha must be between 0 and 100, got %f", alphaPct)
	}
	if result.Values == nil || result.Horizon == 0 {
		return nil, fmt.Errorf("cannot calculate metrics on empty simulation")
	}

	terminalValues := stats.Float64Data(result.TerminalValues())

	mean, err := stats.Mean(terminalValues)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate mean terminal value: %w", err)
	}

	// a single path has no sample stdev
	stdev := 0.0
	if len(terminalValues) > 1 {
		stdev, err = stats.StandardDeviationSample(terminalValues)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate terminal value stdev: %w", err)
		}
	}

	percentiles := map[float64]float64{}
	for _, p := range []float64{alphaPct, 5, 50, 95} {
		v, err := stats.PercentileNearestRank(terminalValues, p)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate %f percentile: %w", p, err)
		}
		percentiles[p] = v
	}

	cutoff := percentiles[alphaPct]
	tail := stats.Float64Data{}
	for _, v := range terminalValues {
		if v <= cutoff {
			tail = append(tail, v)
		}
	}
	tailMean, err := stats.Mean(tail)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate tail mean: %w", err)
	}

	if math.IsNaN(mean) || math.IsNaN(tailMean) {
		return nil, fmt.Errorf("terminal values contain NaN")
	}

	return &TerminalMetrics{
		InitialCapital:         result.InitialCapital,
		Mean:                   mean,
		Stdev:                  stdev,
		Percentile5:            percentiles[5],
		Median:                 percentiles[50],
		Percentile95:           percentiles[95],
		AlphaPct:               alphaPct,
		ValueAtRisk:            result.InitialCapital - cutoff,
		ConditionalValueAtRisk: result.InitialCapital - tailMean,
	}, nil
}
