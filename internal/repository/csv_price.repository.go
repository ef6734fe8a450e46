package repository

import (
	"context"
	"fmt"
	"os"
	"portfoliosim/internal/domain"
	"time"

	"github.com/gocarina/gocsv"
)

type csvPriceRow struct {
	Date   string  `csv:"date"`
	Symbol string  `csv:"symbol"`
	Price  float64 `csv:"price"`
}

type csvPriceRepositoryHandler struct {
	Path string
}

// NewCsvPriceRepository reads closes from a local file with a
// date,symbol,price header. Dates use the YYYY-MM-DD layout.
func NewCsvPriceRepository(path string) PriceRepository {
	return csvPriceRepositoryHandler{
		Path: path,
	}
}

func (h csvPriceRepositoryHandler) ListClosingPrices(ctx context.Context, symbols []string, start, end time.Time) (map[string][]domain.AssetPrice, error) {
	f, err := os.Open(h.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open price file: %w", err)
	}
	defer f.Close()

	rows := []csvPriceRow{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse price file %s: %w", h.Path, err)
	}

	wanted := map[string]bool{}
	for _, symbol := range symbols {
		wanted[symbol] = true
	}

	pricesBySymbol := map[string][]domain.AssetPrice{}
	for i, row := range rows {
		if !wanted[row.Symbol] {
			continue
		}
		date, err := time.Parse(time.DateOnly, row.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date on row %d of %s: %w", i+1, h.Path, err)
		}
		pricesBySymbol[row.Symbol] = append(pricesBySymbol[row.Symbol], domain.AssetPrice{
			Symbol: row.Symbol,
			Price:  row.Price,
			Date:   date,
		})
	}

	return finalizePrices(symbols, pricesBySymbol, start, end)
}
