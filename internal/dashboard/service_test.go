package dashboard

import (
	"encoding/json"
	"math"
	"testing"

	"lifelens/domain/health"
	"lifelens/internal"
	"lifelens/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureRecord(country, gender, exercise, diet, condition string, stress health.StressLevel, age int, sleep, happiness float64) health.Record {
	return health.Record{
		Country:                country,
		Gender:                 gender,
		Age:                    age,
		ExerciseLevel:          exercise,
		DietType:               diet,
		SleepHours:             sleep,
		StressLevel:            stress,
		StressLevelNumeric:     stress.Numeric(),
		MentalHealthCondition:  condition,
		HappinessScore:         happiness,
		SocialInteractionScore: 5,
		WorkHoursPerWeek:       40,
		ScreenTimePerDay:       4,
	}
}

func fixtureService() *Service {
	ds := health.NewDataset([]health.Record{
		fixtureRecord("Japan", "Female", "High", "Vegan", "None", health.StressLow, 22, 8, 9),
		fixtureRecord("Japan", "Male", "Low", "Keto", "Anxiety", health.StressHigh, 31, 5, 4),
		fixtureRecord("Brazil", "Female", "Moderate", "Balanced", "None", health.StressModerate, 45, 7, 7),
		fixtureRecord("Brazil", "Male", "High", "Vegan", "Depression", health.StressHigh, 58, 3, 3),
		fixtureRecord("Canada", "Non-binary", "Low", "Vegetarian", "None", health.StressLow, 27, 6.5, 8),
	})
	return NewService(ds, internal.DefaultLogger, nil)
}

func TestOptions(t *testing.T) {
	opts := fixtureService().Options()

	assert.Equal(t, []string{"Brazil", "Canada", "Japan"}, opts.Countries)
	assert.Equal(t, 5, opts.Total)
	assert.Len(t, opts.NumericColumns, 7)
	assert.Equal(t, []string{"stacked", "grouped"}, opts.ChartTypes)
	assert.Equal(t, "Mental Health Condition", opts.CompareBy[0])
}

func TestRenderFullSelection(t *testing.T) {
	svc := fixtureService()
	view, err := svc.Render(Request{})
	require.NoError(t, err)

	assert.Equal(t, 5, view.Matched)
	assert.Equal(t, 5, view.Total)
	assert.False(t, view.Empty)
	require.NotNil(t, view.Overview)
	require.NotNil(t, view.MentalHealth)
	require.NotNil(t, view.Lifestyle)

	// Every crosstab row is normalized to 100.
	for _, rl := range view.MentalHealth.ByCountry.RowLabels {
		sum := 0.0
		for _, cl := range view.MentalHealth.ByCountry.ColLabels {
			sum += view.MentalHealth.ByCountry.Percent[rl][cl]
		}
		assert.InDelta(t, 100, sum, 1e-6, "row %s", rl)
	}

	assert.Equal(t, "stacked", view.MentalHealth.ChartType)
	assert.Equal(t, "Mental Health Condition", view.Lifestyle.CompareBy)
}

func TestRenderFilters(t *testing.T) {
	svc := fixtureService()
	view, err := svc.Render(Request{
		Filters: FilterRequest{Countries: []string{"Japan"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, view.Matched)
	assert.Equal(t, 5, view.Total)
}

func TestRenderEmptySelection(t *testing.T) {
	svc := fixtureService()
	view, err := svc.Render(Request{
		Filters: FilterRequest{Countries: []string{}},
	})
	require.NoError(t, err)

	assert.True(t, view.Empty)
	assert.Equal(t, 0, view.Matched)
	assert.Equal(t, "No data matches your filter criteria. Please adjust your selections.", view.Message)
	assert.Nil(t, view.Overview)
	assert.Nil(t, view.MentalHealth)
	assert.Nil(t, view.Lifestyle)
}

func TestRenderSleepBinOrdering(t *testing.T) {
	svc := fixtureService()
	view, err := svc.Render(Request{})
	require.NoError(t, err)

	labels := make([]string, len(view.Lifestyle.HappinessBySleepBins))
	for i, row := range view.Lifestyle.HappinessBySleepBins {
		labels[i] = row.Label
	}
	// Bin order, not alphabetical.
	assert.Equal(t, []string{"<4 hrs", "4-6 hrs", "6-8 hrs", ">8 hrs"}, labels)
}

func TestRenderInvalidInputs(t *testing.T) {
	svc := fixtureService()

	_, err := svc.Render(Request{CompareBy: "Shoe Size"})
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = svc.Render(Request{ChartType: "spiral"})
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestCorrelationsDefaultVariables(t *testing.T) {
	svc := fixtureService()
	view, err := svc.Correlations(CorrelationsRequest{})
	require.NoError(t, err)

	assert.Len(t, view.Columns, 7)
	assert.Len(t, view.Values, 7)
	for i := range view.Values {
		assert.Equal(t, Float(1), view.Values[i][i])
	}
}

func TestCorrelationsTooFewVariables(t *testing.T) {
	svc := fixtureService()
	view, err := svc.Correlations(CorrelationsRequest{Variables: []string{"Age"}})
	require.NoError(t, err)

	assert.Equal(t, "Please select at least 2 variables.", view.Warning)
	assert.Nil(t, view.Values)
}

func TestCorrelationsUnknownVariable(t *testing.T) {
	svc := fixtureService()
	_, err := svc.Correlations(CorrelationsRequest{Variables: []string{"Aura"}})
	assert.Equal(t, errors.CodeSchemaError, errors.GetCode(err))
}

func TestCorrelationsEmptySelection(t *testing.T) {
	svc := fixtureService()
	view, err := svc.Correlations(CorrelationsRequest{
		Filters: FilterRequest{Genders: []string{}},
	})
	require.NoError(t, err)
	assert.True(t, view.Empty)
}

func TestRegression(t *testing.T) {
	svc := fixtureService()
	view, err := svc.Regression(RegressionRequest{X: "Sleep Hours", Y: "Happiness Score"})
	require.NoError(t, err)

	require.NotNil(t, view.Fit)
	assert.Positive(t, float64(view.Fit.Slope))
	assert.Equal(t, 5, view.Fit.N)
	require.NotNil(t, view.Pearson)
	assert.Len(t, view.Points, 5)
	// Default coloring is by condition.
	assert.Contains(t, []string{"None", "Anxiety", "Depression"}, view.Points[0].Group)
}

func TestRegressionSameColumn(t *testing.T) {
	svc := fixtureService()
	_, err := svc.Regression(RegressionRequest{X: "Age", Y: "Age"})
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestRegressionDegenerate(t *testing.T) {
	ds := health.NewDataset([]health.Record{
		fixtureRecord("Japan", "Female", "High", "Vegan", "None", health.StressLow, 22, 7, 9),
		fixtureRecord("Japan", "Male", "Low", "Keto", "Anxiety", health.StressHigh, 31, 7, 4),
	})
	svc := NewService(ds, internal.DefaultLogger, nil)

	view, err := svc.Regression(RegressionRequest{X: "Sleep Hours", Y: "Happiness Score"})
	require.NoError(t, err)

	assert.NotEmpty(t, view.Warning)
	assert.Nil(t, view.Fit)
	assert.Len(t, view.Points, 2, "scatter points survive a degenerate fit")
}

func TestRegressionEmptySelection(t *testing.T) {
	svc := fixtureService()
	view, err := svc.Regression(RegressionRequest{
		Filters: FilterRequest{Conditions: []string{}},
		X:       "Age",
		Y:       "Happiness Score",
	})
	require.NoError(t, err)
	assert.True(t, view.Empty)
	assert.Empty(t, view.Points)
}

func TestFloatMarshalsNaNAsNull(t *testing.T) {
	out, err := json.Marshal(struct {
		A Float `json:"a"`
		B Float `json:"b"`
	}{A: Float(math.NaN()), B: Float(1.5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": null, "b": 1.5}`, string(out))
}
