package calculator

import (
	"errors"
	"fmt"
	"math"
	"portfoliosim/internal/domain"
	"portfoliosim/internal/util"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrInsufficientPrices        = errors.New("insufficient price observations")
	ErrCovarianceNotDecomposable = errors.New("covariance matrix is not positive definite")
)

// AlignPrices builds a days x symbols matrix of closing prices, keeping
// only the days on which every symbol has a close
func AlignPrices(symbols []string, pricesBySymbol map[string][]domain.AssetPrice) ([]time.Time, *mat.Dense, error) {
	if len(symbols) == 0 {
		return nil, nil, fmt.Errorf("cannot align prices for 0 symbols")
	}

	closesByDay := map[time.Time]map[string]float64{}
	for _, symbol := range symbols {
		prices := pricesBySymbol[symbol]
		if len(prices) < 2 {
			return nil, nil, fmt.Errorf("%w: %s has %d price(s), need at least 2", ErrInsufficientPrices, symbol, len(prices))
		}
		for _, p := range prices {
			if p.Price <= 0 || math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
				return nil, nil, fmt.Errorf("invalid price %f for %s on %s", p.Price, symbol, p.Date.Format(time.DateOnly))
			}
			day := util.DateOnly(p.Date)
			if _, ok := closesByDay[day]; !ok {
				closesByDay[day] = map[string]float64{}
			}
			closesByDay[day][symbol] = p.Price
		}
	}

	days := []time.Time{}
	for day, closes := range closesByDay {
		if len(closes) == len(symbols) {
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})

	// two returns are the minimum for a sample covariance
	if len(days) < 3 {
		return nil, nil, fmt.Errorf("%w: only %d day(s) have a price for every symbol, need at least 3", ErrInsufficientPrices, len(days))
	}

	prices := mat.NewDense(len(days), len(symbols), nil)
	for i, day := range days {
		for j, symbol := range symbols {
			prices.Set(i, j, closesByDay[day][symbol])
		}
	}

	return days, prices, nil
}

// DailyReturns converts a days x symbols price matrix into simple daily
// returns, (p_t - p_t-1) / p_t-1
func DailyReturns(prices mat.Matrix) *mat.Dense {
	numDays, numSymbols := prices.Dims()
	returns := mat.NewDense(numDays-1, numSymbols, nil)
	for i := 1; i < numDays; i++ {
		for j := 0; j < numSymbols; j++ {
			prev := prices.At(i-1, j)
			returns.Set(i-1, j, (prices.At(i, j)-prev)/prev)
		}
	}
	return returns
}

func CalculateReturnStatistics(symbols []string, pricesBySymbol map[string][]domain.AssetPrice) (*domain.ReturnStatistics, error) {
	days, prices, err := AlignPrices(symbols, pricesBySymbol)
	if err != nil {
		return nil, fmt.Errorf("failed to align prices: %w", err)
	}

	returns := DailyReturns(prices)

	meanReturns := make([]float64, len(symbols))
	for j, symbol := range symbols {
		mean, err := stats.Mean(mat.Col(nil, j, returns))
		if err != nil {
			return nil, fmt.Errorf("failed to calculate mean return for %s: %w", symbol, err)
		}
		meanReturns[j] = mean
	}

	var covariance mat.SymDense
	stat.CovarianceMatrix(&covariance, returns, nil)

	return &domain.ReturnStatistics{
		Symbols:     symbols,
		TradingDays: days,
		Returns:     returns,
		MeanReturns: meanReturns,
		Covariance:  &covariance,
	}, nil
}

// CholeskyLower returns L such that L * L^T = covariance
func CholeskyLower(covariance mat.Symmetric) (*mat.TriDense, error) {
	var chol mat.Cholesky
	if ok := chol.Factorize(covariance); !ok {
		return nil, ErrCovarianceNotDecomposable
	}

	var l mat.TriDense
	chol.LTo(&l)
	return &l, nil
}
