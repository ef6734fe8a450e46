package valuechart

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/vicanso/go-charts/v2"
	"gonum.org/v1/gonum/mat"
)

// Render draws every column of values (days x simulations) as one line
// and returns the chart as PNG bytes
func Render(values mat.Matrix, title string) ([]byte, error) {
	if values == nil {
		return nil, errors.New("no values to render")
	}
	numDays, numSimulations := values.Dims()
	if numDays == 0 || numSimulations == 0 {
		return nil, errors.New("no values to render")
	}

	series := make([][]float64, numSimulations)
	yMin, yMax := values.At(0, 0), values.At(0, 0)
	for m := 0; m < numSimulations; m++ {
		series[m] = mat.Col(nil, m, values)
		for _, v := range series[m] {
			if v < yMin {
				yMin = v
			}
			if v > yMax {
				yMax = v
			}
		}
	}
	pad := (yMax - yMin) * 0.05
	yMin -= pad
	yMax += pad

	days := make([]string, numDays)
	for i := range days {
		days[i] = strconv.Itoa(i + 1)
	}

	painter, err := charts.LineRender(series,
		charts.PNGTypeOption(),
		charts.TitleTextOptionFunc(title, "Portfolio Value ($) by Day"),
		charts.XAxisDataOptionFunc(days),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	return painter.Bytes()
}
