package cmd

import (
	"fmt"
	"portfoliosim/internal/app"
	"portfoliosim/internal/repository"
	"portfoliosim/internal/util"
)

const (
	ProviderYahoo  = "yahoo"
	ProviderAlpaca = "alpaca"
	ProviderCsv    = "csv"
)

type Dependencies struct {
	PriceRepository            repository.PriceRepository
	SimulationExportRepository repository.SimulationExportRepository
	PortfolioSimulationApp     app.PortfolioSimulationApp
}

type DependencyOptions struct {
	Provider  string
	PricesCsv string
}

func newPriceRepository(opts DependencyOptions) (repository.PriceRepository, error) {
	switch opts.Provider {
	case ProviderYahoo, "":
		return repository.NewYahooPriceRepository(), nil
	case ProviderAlpaca:
		secrets, err := util.LoadSecrets()
		if err != nil {
			return nil, fmt.Errorf("failed to load secrets: %w", err)
		}
		if !secrets.Alpaca.IsSet() {
			return nil, fmt.Errorf("ALPACA_API_KEY and ALPACA_API_SECRET must be set to use the alpaca provider")
		}
		return repository.NewAlpacaPriceRepository(secrets.Alpaca.ApiKey, secrets.Alpaca.ApiSecret, secrets.Alpaca.Endpoint), nil
	case ProviderCsv:
		if opts.PricesCsv == "" {
			return nil, fmt.Errorf("--prices-csv is required for the csv provider")
		}
		return repository.NewCsvPriceRepository(opts.PricesCsv), nil
	}
	return nil, fmt.Errorf("unknown price provider %q", opts.Provider)
}

func InitializeDependencies(opts DependencyOptions) (*Dependencies, error) {
	priceRepository, err := newPriceRepository(opts)
	if err != nil {
		return nil, err
	}

	return &Dependencies{
		PriceRepository:            priceRepository,
		SimulationExportRepository: repository.NewSimulationExportRepository(),
		PortfolioSimulationApp:     app.NewPortfolioSimulationApp(priceRepository),
	}, nil
}
