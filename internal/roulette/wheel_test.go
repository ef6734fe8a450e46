package roulette

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestWheel_Spin(t *testing.T) {
	wheel := NewWheel(1)
	_, ok := wheel.Ball()
	require.False(t, ok)

	seen := map[int]bool{}
	for i := 0; i < 5000; i++ {
		wheel.Spin()
		ball, ok := wheel.Ball()
		require.True(t, ok)
		require.GreaterOrEqual(t, ball, 1)
		require.LessOrEqual(t, ball, 36)
		seen[ball] = true
	}
	require.Len(t, seen, 36)
}

func TestWheel_Bet(t *testing.T) {
	t.Run("pays multiplier on hit and loses wager on miss", func(t *testing.T) {
		wheel := NewWheel(1)
		amount := decimal.NewFromInt(10)
		require.True(t, wheel.PayoutMultiplier().Equal(decimal.NewFromInt(35)))

		for ball := 1; ball <= 36; ball++ {
			b := ball
			wheel.ball = &b
			for pocket := 1; pocket <= 36; pocket++ {
				ret, err := wheel.Bet(pocket, amount)
				require.NoError(t, err)
				if pocket == ball {
					require.True(t, ret.Equal(decimal.NewFromInt(350)), "pocket %d ball %d got %s", pocket, ball, ret)
				} else {
					require.True(t, ret.Equal(decimal.NewFromInt(-10)), "pocket %d ball %d got %s", pocket, ball, ret)
				}
			}
		}
	})

	t.Run("bet does not move the ball", func(t *testing.T) {
		wheel := NewWheel(3)
		wheel.Spin()
		before, _ := wheel.Ball()
		_, err := wheel.Bet(7, decimal.NewFromInt(1))
		require.NoError(t, err)
		after, _ := wheel.Ball()
		require.Equal(t, before, after)
	})

	t.Run("bet before spin", func(t *testing.T) {
		wheel := NewWheel(1)
		_, err := wheel.Bet(7, decimal.NewFromInt(10))
		require.ErrorIs(t, err, ErrWheelNotSpun)
	})

	t.Run("invalid pocket", func(t *testing.T) {
		wheel := NewWheel(1)
		wheel.Spin()
		_, err := wheel.Bet(0, decimal.NewFromInt(10))
		require.ErrorIs(t, err, ErrInvalidPocket)
		_, err = wheel.Bet(37, decimal.NewFromInt(10))
		require.ErrorIs(t, err, ErrInvalidPocket)
	})

	t.Run("invalid wager", func(t *testing.T) {
		wheel := NewWheel(1)
		wheel.Spin()
		_, err := wheel.Bet(7, decimal.Zero)
		require.ErrorIs(t, err, ErrInvalidWager)
	})
}

func TestPlayTrials(t *testing.T) {
	t.Run("fair wheel converges to zero", func(t *testing.T) {
		if testing.Short() {
			t.Skip()
		}
		result, err := PlayTrials(NewWheel(42), 2, decimal.NewFromInt(1), 1000000)
		require.NoError(t, err)
		require.Equal(t, 1000000, result.NumTrials)
		// stdev of the mean per unit wager is ~0.6%
		require.Less(t, math.Abs(result.ExpectedReturnPct), 4.0)
	})

	t.Run("seed makes runs reproducible", func(t *testing.T) {
		a, err := PlayTrials(NewWheel(7), 7, decimal.NewFromInt(10), 1000)
		require.NoError(t, err)
		b, err := PlayTrials(NewWheel(7), 7, decimal.NewFromInt(10), 1000)
		require.NoError(t, err)
		require.True(t, a.TotalReturn.Equal(b.TotalReturn))
		require.Equal(t, a.ExpectedReturnPct, b.ExpectedReturnPct)
	})

	t.Run("total return matches percentage", func(t *testing.T) {
		result, err := PlayTrials(NewWheel(11), 17, decimal.NewFromInt(5), 360)
		require.NoError(t, err)
		expected := result.TotalReturn.Div(decimal.NewFromInt(5 * 360)).Mul(decimal.NewFromInt(100)).InexactFloat64()
		require.InDelta(t, expected, result.ExpectedReturnPct, 1e-9)
	})

	t.Run("zero trials", func(t *testing.T) {
		_, err := PlayTrials(NewWheel(1), 7, decimal.NewFromInt(10), 0)
		require.Error(t, err)
	})
}

func TestTrialsResult_Report(t *testing.T) {
	r := TrialsResult{
		Game:              "Fair Roulette",
		NumTrials:         100,
		Pocket:            2,
		ExpectedReturnPct: -28,
	}
	require.Equal(t, "100 spins of Fair Roulette\nExpected return betting 2 = -28.0000%", r.Report())
}
