package calculator

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ShockSampler draws matrices of independent standard normal shocks
type ShockSampler interface {
	Sample(rows, cols int) *mat.Dense
}

type normalShockSampler struct {
	dist distuv.Normal
}

func NewSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed)
}

func NewNormalShockSampler(src rand.Source) ShockSampler {
	return normalShockSampler{
		dist: distuv.Normal{
			Mu:    0,
			Sigma: 1,
			Src:   src,
		},
	}
}

func (s normalShockSampler) Sample(rows, cols int) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = s.dist.Rand()
	}
	return mat.NewDense(rows, cols, data)
}

type SimulatePathInput struct {
	MeanReturns    []float64
	CholeskyFactor mat.Triangular
	Weights        []float64
	Horizon        int
	InitialCapital float64
}

// SimulatePath simulates one portfolio path. Independent shocks are
// correlated through the Cholesky factor, shifted by the mean returns and
// collapsed into portfolio returns by the weights. Values compound from
// the initial capital.
func SimulatePath(in SimulatePathInput, shocks ShockSampler) (returns []float64, values []float64) {
	numAssets := len(in.MeanReturns)

	z := shocks.Sample(in.Horizon, numAssets)

	// row t of z * L^T is L * z_t
	var deviations mat.Dense
	deviations.Mul(z, in.CholeskyFactor.T())

	returns = make([]float64, in.Horizon)
	values = make([]float64, in.Horizon)
	value := in.InitialCapital
	for t := 0; t < in.Horizon; t++ {
		portfolioReturn := 0.0
		for i := 0; i < numAssets; i++ {
			assetReturn := in.MeanReturns[i] + deviations.At(t, i)
			portfolioReturn += in.Weights[i] * assetReturn
		}
		value *= 1 + portfolioReturn
		returns[t] = portfolioReturn
		values[t] = value
	}

	return returns, values
}

type SimulatePortfolioInput struct {
	MeanReturns    []float64
	Covariance     mat.Symmetric
	Weights        []float64
	Horizon        int
	NumSimulations int
	InitialCapital float64
}

func (in SimulatePortfolioInput) validate() error {
	n := len(in.MeanReturns)
	if n == 0 {
		return fmt.Errorf("cannot simulate portfolio with 0 assets")
	}
	if in.Covariance == nil || in.Covariance.SymmetricDim() != n {
		return fmt.Errorf("covariance matrix must be %dx%d", n, n)
	}
	if err := ValidateWeights(in.Weights, n); err != nil {
		return fmt.Errorf("invalid weights: %w", err)
	}
	if in.Horizon <= 0 {
		return fmt.Errorf("horizon must be greater than 0, got %d", in.Horizon)
	}
	if in.NumSimulations <= 0 {
		return fmt.Errorf("number of simulations must be greater than 0, got %d", in.NumSimulations)
	}
	if in.InitialCapital <= 0 {
		return fmt.Errorf("initial capital must be greater than 0, got %f", in.InitialCapital)
	}
	return nil
}

// SimulatePortfolio runs NumSimulations independent paths. The returned
// matrices are Horizon x NumSimulations with one column per path.
func SimulatePortfolio(in SimulatePortfolioInput, shocks ShockSampler) (returns *mat.Dense, values *mat.Dense, err error) {
	if err := in.validate(); err != nil {
		return nil, nil, err
	}

	chol, err := CholeskyLower(in.Covariance)
	if err != nil {
		return nil, nil, err
	}

	pathInput := SimulatePathInput{
		MeanReturns:    in.MeanReturns,
		CholeskyFactor: chol,
		Weights:        in.Weights,
		Horizon:        in.Horizon,
		InitialCapital: in.InitialCapital,
	}

	returns = mat.NewDense(in.Horizon, in.NumSimulations, nil)
	values = mat.NewDense(in.Horizon, in.NumSimulations, nil)
	for m := 0; m < in.NumSimulations; m++ {
		pathReturns, pathValues := SimulatePath(pathInput, shocks)
		returns.SetCol(m, pathReturns)
		values.SetCol(m, pathValues)
	}

	return returns, values, nil
}
