package repository

//go:generate mockgen -source=price.repository.go -destination=mocks/mock_price.repository.go

import (
	"context"
	"errors"
	"fmt"
	"portfoliosim/internal/domain"
	"portfoliosim/internal/util"
	"sort"
	"strings"
	"time"
)

var ErrNoPriceData = errors.New("no price data")

// PriceRepository retrieves daily closing prices from a market data
// provider. Every requested symbol must come back with at least one price
// in [start, end], otherwise the whole call fails with ErrNoPriceData.
type PriceRepository interface {
	ListClosingPrices(ctx context.Context, symbols []string, start, end time.Time) (map[string][]domain.AssetPrice, error)
}

// finalizePrices restricts every series to [start, end], orders it by date
// and fails if any symbol ended up empty
func finalizePrices(symbols []string, pricesBySymbol map[string][]domain.AssetPrice, start, end time.Time) (map[string][]domain.AssetPrice, error) {
	out := map[string][]domain.AssetPrice{}
	missing := []string{}
	for _, symbol := range symbols {
		prices := []domain.AssetPrice{}
		for _, p := range pricesBySymbol[symbol] {
			if util.DateGte(p.Date, start) && util.DateLte(p.Date, end) {
				prices = append(prices, p)
			}
		}
		if len(prices) == 0 {
			missing = append(missing, symbol)
			continue
		}
		sort.Slice(prices, func(i, j int) bool {
			return prices[i].Date.Before(prices[j].Date)
		})
		out[symbol] = prices
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf(
			"%w for %s between %s and %s",
			ErrNoPriceData,
			strings.Join(missing, ", "),
			start.Format(time.DateOnly),
			end.Format(time.DateOnly),
		)
	}

	return out, nil
}
