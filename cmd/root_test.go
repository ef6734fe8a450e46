package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"portfoliosim/internal/util"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRouletteCommand(t *testing.T) {
	t.Run("reports expected return", func(t *testing.T) {
		out := &bytes.Buffer{}
		root := NewRootCommand()
		root.SetOut(out)
		root.SetArgs([]string{"roulette", "--trials", "100", "--pocket", "2", "--wager", "1", "--seed", "3"})

		require.NoError(t, root.Execute())
		require.True(t, strings.HasPrefix(out.String(), "100 spins of Fair Roulette\nExpected return betting 2 = "))
	})

	t.Run("invalid wager", func(t *testing.T) {
		root := NewRootCommand()
		root.SetOut(&bytes.Buffer{})
		root.SetArgs([]string{"roulette", "--wager", "ten"})
		require.ErrorContains(t, root.Execute(), "invalid wager")
	})

	t.Run("invalid pocket", func(t *testing.T) {
		root := NewRootCommand()
		root.SetOut(&bytes.Buffer{})
		root.SetArgs([]string{"roulette", "--trials", "10", "--pocket", "40"})
		require.Error(t, root.Execute())
	})
}

const samplePricesCsv = `date,symbol,price
2024-01-02,AAA,100
2024-01-02,BBB,50
2024-01-03,AAA,102
2024-01-03,BBB,49
2024-01-04,AAA,101
2024-01-04,BBB,51
2024-01-05,AAA,104
2024-01-05,BBB,52
2024-01-08,AAA,103
2024-01-08,BBB,50
2024-01-09,AAA,105
2024-01-09,BBB,51
`

func TestMonteCarloCommand(t *testing.T) {
	t.Run("csv provider with outputs", func(t *testing.T) {
		dir := t.TempDir()
		pricesPath := filepath.Join(dir, "prices.csv")
		require.NoError(t, os.WriteFile(pricesPath, []byte(samplePricesCsv), 0o600))
		csvPath := filepath.Join(dir, "values.csv")
		chartPath := filepath.Join(dir, "values.png")

		out := &bytes.Buffer{}
		root := NewRootCommand()
		root.SetOut(out)
		root.SetArgs([]string{
			"montecarlo",
			"--provider", "csv",
			"--prices-csv", pricesPath,
			"--symbols", "AAA,BBB",
			"--start", "2024-01-01",
			"--end", "2024-01-31",
			"--horizon", "5",
			"--simulations", "3",
			"--seed", "1",
			"--out-csv", csvPath,
			"--out-chart", chartPath,
			"--profile",
		})
		require.NoError(t, root.Execute())

		require.Contains(t, out.String(), "(seed 1)")
		require.Contains(t, out.String(), "6 trading days from 2024-01-02 to 2024-01-09")
		require.Contains(t, out.String(), "3 simulations over 5 days from 10000.00")
		require.Contains(t, out.String(), `"name":"simulate paths"`)

		values, err := os.ReadFile(csvPath)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(values)), "\n")
		require.Equal(t, "day,simulation,value", lines[0])
		require.Len(t, lines, 1+5*3)

		png, err := os.ReadFile(chartPath)
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
	})

	t.Run("missing symbol in provider", func(t *testing.T) {
		pricesPath := filepath.Join(t.TempDir(), "prices.csv")
		require.NoError(t, os.WriteFile(pricesPath, []byte(samplePricesCsv), 0o600))

		root := NewRootCommand()
		root.SetOut(&bytes.Buffer{})
		root.SetArgs([]string{
			"montecarlo",
			"--provider", "csv",
			"--prices-csv", pricesPath,
			"--symbols", "AAA,CCC",
			"--start", "2024-01-01",
			"--end", "2024-01-31",
		})
		err := root.Execute()
		require.ErrorContains(t, err, "CCC between 2024-01-01 and 2024-01-31")
	})

	t.Run("unknown provider", func(t *testing.T) {
		root := NewRootCommand()
		root.SetOut(&bytes.Buffer{})
		root.SetArgs([]string{"montecarlo", "--provider", "bloomberg"})
		require.ErrorContains(t, root.Execute(), `unknown price provider "bloomberg"`)
	})

	t.Run("csv provider needs a file", func(t *testing.T) {
		root := NewRootCommand()
		root.SetOut(&bytes.Buffer{})
		root.SetArgs([]string{"montecarlo", "--provider", "csv"})
		require.ErrorContains(t, root.Execute(), "--prices-csv is required")
	})
}

func Test_monteCarloFlags_dateRange(t *testing.T) {
	now := time.Date(2024, 6, 30, 15, 0, 0, 0, time.UTC)

	t.Run("lookback from today", func(t *testing.T) {
		start, end, err := monteCarloFlags{lookbackDays: 300}.dateRange(now)
		require.NoError(t, err)
		require.Equal(t, util.NewDate(2024, 6, 30), end)
		require.Equal(t, util.NewDate(2023, 9, 4), start)
	})

	t.Run("explicit dates", func(t *testing.T) {
		start, end, err := monteCarloFlags{start: "2024-01-01", end: "2024-02-01", lookbackDays: 300}.dateRange(now)
		require.NoError(t, err)
		require.Equal(t, util.NewDate(2024, 1, 1), start)
		require.Equal(t, util.NewDate(2024, 2, 1), end)
	})

	t.Run("bad date", func(t *testing.T) {
		_, _, err := monteCarloFlags{end: "June"}.dateRange(now)
		require.Error(t, err)
	})
}
