package analysis

import (
	"math"
	"testing"

	"lifelens/domain/health"
	"lifelens/internal/errors"
)

func points(pairs ...[2]float64) []health.Record {
	rows := make([]health.Record, len(pairs))
	for i, p := range pairs {
		rows[i] = health.Record{SleepHours: p[0], HappinessScore: p[1]}
	}
	return rows
}

func TestFitOLSPerfectLine(t *testing.T) {
	rows := points([2]float64{1, 2}, [2]float64{2, 4}, [2]float64{3, 6})

	fit, err := FitOLS(rows, health.ColSleepHours, health.ColHappiness)
	if err != nil {
		t.Fatalf("FitOLS: %v", err)
	}
	if math.Abs(fit.Slope-2) > 1e-9 {
		t.Errorf("slope = %v, want 2", fit.Slope)
	}
	if math.Abs(fit.Intercept) > 1e-9 {
		t.Errorf("intercept = %v, want 0", fit.Intercept)
	}
	if math.Abs(fit.RSquared-1) > 1e-9 {
		t.Errorf("r-squared = %v, want 1", fit.RSquared)
	}
	if fit.N != 3 {
		t.Errorf("n = %d, want 3", fit.N)
	}
}

func TestFitOLSDegenerateX(t *testing.T) {
	rows := points([2]float64{5, 1}, [2]float64{5, 2}, [2]float64{5, 3})

	_, err := FitOLS(rows, health.ColSleepHours, health.ColHappiness)
	if errors.GetCode(err) != errors.CodeInsufficientData {
		t.Fatalf("got %v, want INSUFFICIENT_DATA", err)
	}
}

func TestFitOLSSkipsMissingPairs(t *testing.T) {
	rows := points([2]float64{1, 2}, [2]float64{2, 4})
	rows = append(rows, health.Record{SleepHours: 3, HappinessScore: math.NaN()})

	fit, err := FitOLS(rows, health.ColSleepHours, health.ColHappiness)
	if err != nil {
		t.Fatalf("FitOLS: %v", err)
	}
	if fit.N != 2 {
		t.Errorf("n = %d, want 2 (incomplete pair dropped)", fit.N)
	}
}

func TestCorrelation(t *testing.T) {
	rows := points([2]float64{1, 2}, [2]float64{2, 4}, [2]float64{3, 6})

	r, err := Correlation(rows, health.ColSleepHours, health.ColHappiness)
	if err != nil {
		t.Fatalf("Correlation: %v", err)
	}
	if math.Abs(r-1) > 1e-9 {
		t.Errorf("r = %v, want 1", r)
	}

	_, err = Correlation(rows[:1], health.ColSleepHours, health.ColHappiness)
	if errors.GetCode(err) != errors.CodeInsufficientData {
		t.Errorf("single pair should be INSUFFICIENT_DATA, got %v", err)
	}
}

func TestPearsonMatrix(t *testing.T) {
	rows := []health.Record{
		{SleepHours: 1, HappinessScore: 2, SocialInteractionScore: 9},
		{SleepHours: 2, HappinessScore: 4, SocialInteractionScore: 4},
		{SleepHours: 3, HappinessScore: 6, SocialInteractionScore: 7},
	}
	cols := []health.NumericColumn{health.ColSleepHours, health.ColHappiness, health.ColSocialInteraction}

	matrix, err := PearsonMatrix(rows, cols)
	if err != nil {
		t.Fatalf("PearsonMatrix: %v", err)
	}
	if len(matrix.Values) != 3 {
		t.Fatalf("got %d rows, want 3", len(matrix.Values))
	}

	for i := range matrix.Values {
		if matrix.Values[i][i] != 1.0 {
			t.Errorf("diagonal [%d][%d] = %v, want exactly 1", i, i, matrix.Values[i][i])
		}
		for j := range matrix.Values {
			if matrix.Values[i][j] != matrix.Values[j][i] {
				t.Errorf("matrix not symmetric at [%d][%d]", i, j)
			}
		}
	}
	if math.Abs(matrix.Values[0][1]-1) > 1e-9 {
		t.Errorf("sleep/happiness r = %v, want 1", matrix.Values[0][1])
	}
}

func TestPearsonMatrixDataStarvedPair(t *testing.T) {
	// Social is present on only one row, so that pair has a single
	// complete observation.
	rows := []health.Record{
		{SleepHours: 1, HappinessScore: 2, SocialInteractionScore: 5},
		{SleepHours: 2, HappinessScore: 4, SocialInteractionScore: math.NaN()},
		{SleepHours: 3, HappinessScore: 6, SocialInteractionScore: math.NaN()},
	}
	cols := []health.NumericColumn{health.ColSleepHours, health.ColSocialInteraction}

	matrix, err := PearsonMatrix(rows, cols)
	if err != nil {
		t.Fatalf("PearsonMatrix: %v", err)
	}
	if !math.IsNaN(matrix.Values[0][1]) {
		t.Errorf("starved pair = %v, want NaN", matrix.Values[0][1])
	}
	if matrix.Values[0][0] != 1 || matrix.Values[1][1] != 1 {
		t.Error("diagonal must stay 1 even for starved columns")
	}
}

func TestPearsonMatrixNeedsTwoColumns(t *testing.T) {
	_, err := PearsonMatrix(nil, []health.NumericColumn{health.ColSleepHours})
	if errors.GetCode(err) != errors.CodeInsufficientData {
		t.Fatalf("got %v, want INSUFFICIENT_DATA", err)
	}
}
