package analysis

import (
	"fmt"
	"math"

	"lifelens/domain/health"
	"lifelens/internal/errors"

	"gonum.org/v1/gonum/stat"
)

// Fit is the least-squares line y = Slope*x + Intercept over
// pairwise-complete rows.
type Fit struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`
	N         int     `json:"n"`
}

// FitOLS fits an ordinary least-squares line. Fewer than two distinct x
// values leave the fit undefined (a vertical line), which surfaces as
// INSUFFICIENT_DATA for the caller to recover from.
func FitOLS(rows []health.Record, x, y health.NumericColumn) (Fit, error) {
	xs, ys := pairwiseComplete(rows, x, y)
	if distinctCount(xs) < 2 {
		return Fit{}, errors.InsufficientData(fmt.Sprintf("regression of %s on %s needs at least 2 distinct x values, have %d usable rows", y, x, len(xs)))
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	r2 := stat.RSquared(xs, ys, nil, alpha, beta)

	return Fit{
		Slope:     beta,
		Intercept: alpha,
		RSquared:  r2,
		N:         len(xs),
	}, nil
}

// Correlation returns the Pearson coefficient between two columns over
// pairwise-complete rows.
func Correlation(rows []health.Record, x, y health.NumericColumn) (float64, error) {
	xs, ys := pairwiseComplete(rows, x, y)
	if len(xs) < 2 {
		return 0, errors.InsufficientData(fmt.Sprintf("correlation of %s and %s needs at least 2 complete pairs, have %d", x, y, len(xs)))
	}
	return stat.Correlation(xs, ys, nil), nil
}

// CorrelationMatrix is a symmetric Pearson matrix over a column set. Entries
// involving a zero-variance or data-starved pair are NaN; the diagonal is
// exactly 1.
type CorrelationMatrix struct {
	Columns []string
	Values  [][]float64
}

// PearsonMatrix computes the pairwise-complete correlation matrix. Each pair
// uses its own complete rows, so entries can rest on different sample sizes.
func PearsonMatrix(rows []health.Record, cols []health.NumericColumn) (*CorrelationMatrix, error) {
	if len(cols) < 2 {
		return nil, errors.InsufficientData("correlation matrix needs at least 2 variables")
	}

	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = string(c)
	}

	values := make([][]float64, len(cols))
	for i := range values {
		values[i] = make([]float64, len(cols))
		values[i][i] = 1.0
	}

	for i := 0; i < len(cols); i++ {
		for j := i + 1; j < len(cols); j++ {
			r := math.NaN()
			xs, ys := pairwiseComplete(rows, cols[i], cols[j])
			if len(xs) >= 2 {
				r = stat.Correlation(xs, ys, nil)
			}
			values[i][j] = r
			values[j][i] = r
		}
	}

	return &CorrelationMatrix{Columns: names, Values: values}, nil
}

func distinctCount(values []float64) int {
	seen := make(map[float64]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}
