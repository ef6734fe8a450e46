package domain

import (
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"
)

// ReturnStatistics summarizes the historical daily returns of a set of
// assets. Vector and matrix indices follow the order of Symbols.
type ReturnStatistics struct {
	Symbols     []string
	TradingDays []time.Time
	// one row per trading day after the first, one column per symbol
	Returns     *mat.Dense
	MeanReturns []float64
	Covariance  *mat.SymDense
}

func (s ReturnStatistics) NumAssets() int {
	return len(s.Symbols)
}

// SimulationResult holds every simulated path of one Monte Carlo run. Both
// matrices are Horizon x NumSimulations, one column per path.
type SimulationResult struct {
	RunID          uuid.UUID
	Seed           uint64
	InitialCapital float64
	Horizon        int
	NumSimulations int
	Weights        []float64

	Returns *mat.Dense
	Values  *mat.Dense
}

// Path returns the portfolio values of simulation m
func (r SimulationResult) Path(m int) []float64 {
	return mat.Col(nil, m, r.Values)
}

// TerminalValues returns the last portfolio value of every simulation
func (r SimulationResult) TerminalValues() []float64 {
	return mat.Row(nil, r.Horizon-1, r.Values)
}
