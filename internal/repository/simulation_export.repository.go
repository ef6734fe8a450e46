package repository

import (
	"fmt"
	"io"
	"portfoliosim/internal/domain"

	"github.com/gocarina/gocsv"
)

type SimulationExportRepository interface {
	Export(w io.Writer, result domain.SimulationResult) error
}

type simulationValueRow struct {
	Day        int     `csv:"day"`
	Simulation int     `csv:"simulation"`
	Value      float64 `csv:"value"`
}

type simulationExportRepositoryHandler struct{}

func NewSimulationExportRepository() SimulationExportRepository {
	return simulationExportRepositoryHandler{}
}

// Export writes the value matrix in long format, one row per day and
// simulation. Days and simulations are 1-indexed.
func (h simulationExportRepositoryHandler) Export(w io.Writer, result domain.SimulationResult) error {
	if result.Values == nil {
		return fmt.Errorf("simulation %s has no values", result.RunID)
	}

	rows := make([]simulationValueRow, 0, result.Horizon*result.NumSimulations)
	for m := 0; m < result.NumSimulations; m++ {
		for day, value := range result.Path(m) {
			rows = append(rows, simulationValueRow{
				Day:        day + 1,
				Simulation: m + 1,
				Value:      value,
			})
		}
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write simulation %s: %w", result.RunID, err)
	}
	return nil
}
