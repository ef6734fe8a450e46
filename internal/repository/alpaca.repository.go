package repository

import (
	"context"
	"fmt"
	"portfoliosim/internal/domain"
	"portfoliosim/internal/logger"
	"portfoliosim/internal/util"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
)

type alpacaBarsClient interface {
	GetMultiBars(symbols []string, req marketdata.GetBarsRequest) (map[string][]marketdata.Bar, error)
}

// NewAlpacaPriceRepository reads split and dividend adjusted daily bars
// from the Alpaca market data api. An empty endpoint uses the client's
// default data host.
func NewAlpacaPriceRepository(apiKey, apiSecret string, endpoint string) PriceRepository {
	mdClient := marketdata.NewClient(marketdata.ClientOpts{
		BaseURL:   endpoint,
		APIKey:    apiKey,
		APISecret: apiSecret,
	})

	return &alpacaRepositoryHandler{
		MdClient: mdClient,
	}
}

type alpacaRepositoryHandler struct {
	MdClient alpacaBarsClient
}

func (h alpacaRepositoryHandler) ListClosingPrices(ctx context.Context, symbols []string, start, end time.Time) (map[string][]domain.AssetPrice, error) {
	log := logger.FromContext(ctx)

	if len(symbols) == 0 {
		return map[string][]domain.AssetPrice{}, nil
	}

	results, err := h.MdClient.GetMultiBars(symbols, marketdata.GetBarsRequest{
		TimeFrame:  marketdata.OneDay,
		Adjustment: marketdata.All,
		Start:      start,
		End:        end.AddDate(0, 0, 1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get bars for %v: %w", symbols, err)
	}

	pricesBySymbol := map[string][]domain.AssetPrice{}
	for symbol, bars := range results {
		prices := []domain.AssetPrice{}
		for _, bar := range bars {
			if bar.Close == 0 {
				return nil, fmt.Errorf("failed to get price for %s: got 0 close on %s", symbol, bar.Timestamp.Format(time.DateOnly))
			}
			prices = append(prices, domain.AssetPrice{
				Symbol: symbol,
				Price:  bar.Close,
				Date:   util.DateOnly(bar.Timestamp),
			})
		}
		log.Debugw("fetched alpaca bars", "symbol", symbol, "count", len(prices))
		pricesBySymbol[symbol] = prices
	}

	return finalizePrices(symbols, pricesBySymbol, start, end)
}
