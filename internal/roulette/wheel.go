package roulette

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/shopspring/decimal"
)

const numPockets = 36

var (
	ErrWheelNotSpun  = errors.New("wheel has not been spun")
	ErrInvalidPocket = errors.New("pocket is not on the wheel")
	ErrInvalidWager  = errors.New("wager must be greater than 0")
)

// Wheel is a fair roulette wheel. A winning bet pays one unit less than
// the number of pockets, so the expected return of any bet is zero.
type Wheel struct {
	pockets          []int
	ball             *int
	payoutMultiplier decimal.Decimal
	rng              *rand.Rand
}

func NewWheel(seed uint64) *Wheel {
	pockets := make([]int, 0, numPockets)
	for i := 1; i <= numPockets; i++ {
		pockets = append(pockets, i)
	}
	return &Wheel{
		pockets:          pockets,
		payoutMultiplier: decimal.NewFromInt(int64(len(pockets) - 1)),
		rng:              rand.New(rand.NewPCG(seed, seed)),
	}
}

func (w *Wheel) Spin() {
	pocket := w.pockets[w.rng.IntN(len(w.pockets))]
	w.ball = &pocket
}

// Ball returns the pocket the ball landed in, and false if the wheel
// was never spun
func (w *Wheel) Ball() (int, bool) {
	if w.ball == nil {
		return 0, false
	}
	return *w.ball, true
}

func (w *Wheel) PayoutMultiplier() decimal.Decimal {
	return w.payoutMultiplier
}

func (w *Wheel) hasPocket(pocket int) bool {
	return pocket >= w.pockets[0] && pocket <= w.pockets[len(w.pockets)-1]
}

// Bet returns the payout of wagering amount on pocket against the last
// spin. Losing bets return the negated amount.
func (w *Wheel) Bet(pocket int, amount decimal.Decimal) (decimal.Decimal, error) {
	if !w.hasPocket(pocket) {
		return decimal.Zero, fmt.Errorf("%w: %d", ErrInvalidPocket, pocket)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w, got %s", ErrInvalidWager, amount.String())
	}
	if w.ball == nil {
		return decimal.Zero, ErrWheelNotSpun
	}

	if pocket == *w.ball {
		return amount.Mul(w.payoutMultiplier), nil
	}
	return amount.Neg(), nil
}

func (w *Wheel) String() string {
	return "Fair Roulette"
}
