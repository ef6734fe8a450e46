package roulette

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type TrialsResult struct {
	Game              string
	NumTrials         int
	Pocket            int
	Wager             decimal.Decimal
	TotalReturn       decimal.Decimal
	ExpectedReturnPct float64
}

// PlayTrials spins the wheel numTrials times, betting amount on pocket
// after every spin
func PlayTrials(wheel *Wheel, pocket int, amount decimal.Decimal, numTrials int) (*TrialsResult, error) {
	if numTrials <= 0 {
		return nil, fmt.Errorf("number of trials must be greater than 0, got %d", numTrials)
	}

	totalReturn := decimal.Zero
	for i := 0; i < numTrials; i++ {
		wheel.Spin()
		ret, err := wheel.Bet(pocket, amount)
		if err != nil {
			return nil, fmt.Errorf("failed to bet on trial %d: %w", i, err)
		}
		totalReturn = totalReturn.Add(ret)
	}

	totalWagered := amount.Mul(decimal.NewFromInt(int64(numTrials)))
	expectedReturnPct := decimal.NewFromInt(100).Mul(totalReturn).Div(totalWagered).InexactFloat64()

	return &TrialsResult{
		Game:              wheel.String(),
		NumTrials:         numTrials,
		Pocket:            pocket,
		Wager:             amount,
		TotalReturn:       totalReturn,
		ExpectedReturnPct: expectedReturnPct,
	}, nil
}

func (r TrialsResult) Report() string {
	return fmt.Sprintf(
		"%d spins of %s\nExpected return betting %d = %s%%",
		r.NumTrials,
		r.Game,
		r.Pocket,
		decimal.NewFromFloat(r.ExpectedReturnPct).StringFixed(4),
	)
}
