package repository

import (
	"context"
	"fmt"
	"portfoliosim/internal/domain"
	"portfoliosim/internal/logger"
	"portfoliosim/internal/util"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
)

type yahooPriceRepositoryHandler struct {
	fetchBars func(symbol string, start, end time.Time) ([]domain.AssetPrice, error)
}

func NewYahooPriceRepository() PriceRepository {
	return yahooPriceRepositoryHandler{
		fetchBars: getYahooDailyCloses,
	}
}

func getYahooDailyCloses(symbol string, start, end time.Time) ([]domain.AssetPrice, error) {
	// the chart api treats end as exclusive
	inclusiveEnd := end.AddDate(0, 0, 1)
	params := &chart.Params{
		Start:    datetime.New(&start),
		End:      datetime.New(&inclusiveEnd),
		Symbol:   symbol,
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)
	if err := iter.Err(); err != nil {
		return nil, err
	}
	loc := exchangeLocation(iter.Meta())

	prices := []domain.AssetPrice{}
	for iter.Next() {
		bar := iter.Bar()
		if bar.Close.IsZero() {
			continue
		}
		prices = append(prices, domain.AssetPrice{
			Symbol: symbol,
			Price:  bar.Close.InexactFloat64(),
			Date:   barDate(bar.Timestamp, loc),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	return prices, nil
}

// exchangeLocation resolves the exchange's time zone, falling back to its
// reported utc offset and then to utc.
func exchangeLocation(meta finance.ChartMeta) *time.Location {
	if meta.ExchangeTimezoneName != "" {
		if loc, err := time.LoadLocation(meta.ExchangeTimezoneName); err == nil {
			return loc
		}
	}
	if meta.Gmtoffset != 0 {
		return time.FixedZone(meta.Timezone, meta.Gmtoffset)
	}
	return time.UTC
}

// yahoo stamps daily bars at the local session open, so the trading day
// is the calendar date on the exchange's clock
func barDate(timestamp int, loc *time.Location) time.Time {
	return util.DateOnlyIn(time.Unix(int64(timestamp), 0), loc)
}

func (h yahooPriceRepositoryHandler) ListClosingPrices(ctx context.Context, symbols []string, start, end time.Time) (map[string][]domain.AssetPrice, error) {
	log := logger.FromContext(ctx)

	pricesBySymbol := map[string][]domain.AssetPrice{}
	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		prices, err := h.fetchBars(symbol, start, end)
		if err != nil {
			return nil, fmt.Errorf("failed to get prices for %s: %w", symbol, err)
		}
		log.Debugw("fetched yahoo closes", "symbol", symbol, "count", len(prices))
		pricesBySymbol[symbol] = prices
	}

	return finalizePrices(symbols, pricesBySymbol, start, end)
}
