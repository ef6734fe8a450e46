package calculator

import (
	"portfoliosim/internal/domain"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestCalculateTerminalMetrics(t *testing.T) {
	t.Run("hundred paths", func(t *testing.T) {
		values := mat.NewDense(2, 100, nil)
		for m := 0; m < 100; m++ {
			values.Set(0, m, 10000)
			// terminal values 10000, 9900, ..., 100
			values.Set(1, m, float64(100*(100-m)))
		}
		result := domain.SimulationResult{
			InitialCapital: 10000,
			Horizon:        2,
			NumSimulations: 100,
			Values:         values,
		}

		metrics, err := CalculateTerminalMetrics(result, 5)
		require.NoError(t, err)

		require.InDelta(t, 5050, metrics.Mean, 1e-9)
		require.InDelta(t, 2901.1491975882016, metrics.Stdev, 1e-6)
		require.Equal(t, 500.0, metrics.Percentile5)
		require.Equal(t, 5000.0, metrics.Median)
		require.Equal(t, 9500.0, metrics.Percentile95)
		require.Equal(t, 9500.0, metrics.ValueAtRisk)
		require.InDelta(t, 9700, metrics.ConditionalValueAtRisk, 1e-9)
	})

	t.Run("single path", func(t *testing.T) {
		result := domain.SimulationResult{
			InitialCapital: 10000,
			Horizon:        1,
			NumSimulations: 1,
			Values:         mat.NewDense(1, 1, []float64{10500}),
		}
		metrics, err := CalculateTerminalMetrics(result, 5)
		require.NoError(t, err)
		require.Equal(t, 10500.0, metrics.Mean)
		require.Equal(t, 0.0, metrics.Stdev)
		require.Equal(t, -500.0, metrics.ValueAtRisk)
		require.Equal(t, -500.0, metrics.ConditionalValueAtRisk)
	})

	t.Run("invalid alpha", func(t *testing.T) {
		result := domain.SimulationResult{
			Horizon: 1,
			Values:  mat.NewDense(1, 1, []float64{10500}),
		}
		_, err := CalculateTerminalMetrics(result, 0)
		require.Error(t, err)
		_, err = CalculateTerminalMetrics(result, 100)
		require.Error(t, err)
	})
}
