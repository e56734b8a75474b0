package dashboard

import (
	"math"
	"strconv"

	"lifelens/internal/analysis"
)

// Float marshals NaN and infinities as JSON null. Pairwise-complete
// statistics legitimately produce NaN (zero variance, no complete pairs)
// and encoding/json refuses to encode those as numbers.
type Float float64

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

// OptionsView enumerates every control domain the UI needs to build its
// widgets.
type OptionsView struct {
	Countries      []string `json:"countries"`
	Genders        []string `json:"genders"`
	ExerciseLevels []string `json:"exercise_levels"`
	DietTypes      []string `json:"diet_types"`
	Conditions     []string `json:"conditions"`
	NumericColumns []string `json:"numeric_columns"`
	CompareBy      []string `json:"compare_by"`
	ColorBy        []string `json:"color_by"`
	ChartTypes     []string `json:"chart_types"`
	Total          int      `json:"total"`
}

// GroupMeanRow is one labeled bar of a group-mean chart.
type GroupMeanRow struct {
	Label string `json:"label"`
	Mean  Float  `json:"mean"`
}

// SummaryView carries the Overview tab's headline metrics.
type SummaryView struct {
	AvgHappiness Float `json:"avg_happiness"`
	AvgStress    Float `json:"avg_stress"`
	AvgSocial    Float `json:"avg_social"`
	AvgSleep     Float `json:"avg_sleep"`
}

// OverviewView is the Overview tab payload.
type OverviewView struct {
	Summary            SummaryView         `json:"summary"`
	HappinessByCountry []GroupMeanRow      `json:"happiness_by_country"`
	GenderCounts       []analysis.CountRow `json:"gender_counts"`
	DietCounts         []analysis.CountRow `json:"diet_counts"`
	ExerciseCounts     []analysis.CountRow `json:"exercise_counts"`
	ConditionCounts    []analysis.CountRow `json:"condition_counts"`
}

// CrosstabView is a chart-ready row-normalized contingency table.
type CrosstabView struct {
	RowLabels []string                      `json:"row_labels"`
	ColLabels []string                      `json:"col_labels"`
	Percent   map[string]map[string]float64 `json:"percent"`
	RowTotals map[string]int                `json:"row_totals"`
}

func crosstabView(ct analysis.Crosstab) CrosstabView {
	return CrosstabView{
		RowLabels: ct.RowLabels,
		ColLabels: ct.ColLabels,
		Percent:   ct.Percent,
		RowTotals: ct.RowTotals,
	}
}

// MentalHealthView is the Mental Health tab payload. ChartType is echoed
// back as a presentation hint; the underlying table is identical for the
// stacked and grouped renderings.
type MentalHealthView struct {
	ChartType  string       `json:"chart_type"`
	ByCountry  CrosstabView `json:"by_country"`
	ByGender   CrosstabView `json:"by_gender"`
	ByAgeGroup CrosstabView `json:"by_age_group"`
}

// LifestyleView is the Lifestyle tab payload.
type LifestyleView struct {
	CompareBy            string                    `json:"compare_by"`
	MetricsByGroup       map[string][]GroupMeanRow `json:"metrics_by_group"`
	HappinessByExercise  []GroupMeanRow            `json:"happiness_by_exercise"`
	HappinessByDiet      []GroupMeanRow            `json:"happiness_by_diet"`
	HappinessBySleepBins []GroupMeanRow            `json:"happiness_by_sleep_bins"`
}

// View is the full dashboard payload for one interaction. When Empty is set
// only Matched/Total/Message are populated; the tabs are nil and no
// aggregation ran.
type View struct {
	Matched      int               `json:"matched"`
	Total        int               `json:"total"`
	Empty        bool              `json:"empty"`
	Message      string            `json:"message,omitempty"`
	Overview     *OverviewView     `json:"overview,omitempty"`
	MentalHealth *MentalHealthView `json:"mental_health,omitempty"`
	Lifestyle    *LifestyleView    `json:"lifestyle,omitempty"`
}

// CorrelationsView is the correlation matrix payload. Warning is set (and
// the matrix nil) when fewer than two variables were requested.
type CorrelationsView struct {
	Matched int       `json:"matched"`
	Total   int       `json:"total"`
	Empty   bool      `json:"empty"`
	Warning string    `json:"warning,omitempty"`
	Columns []string  `json:"columns,omitempty"`
	Values  [][]Float `json:"values,omitempty"`
}

// FitView is a least-squares fit rendered for the UI.
type FitView struct {
	Slope     Float `json:"slope"`
	Intercept Float `json:"intercept"`
	RSquared  Float `json:"r_squared"`
	N         int   `json:"n"`
}

// ScatterPoint is one record in the regression explorer, tagged with its
// color-by group.
type ScatterPoint struct {
	X     Float  `json:"x"`
	Y     Float  `json:"y"`
	Group string `json:"group"`
}

// RegressionView is the regression explorer payload. A degenerate fit is
// reported through Warning with the scatter points still present.
type RegressionView struct {
	Matched int            `json:"matched"`
	Total   int            `json:"total"`
	Empty   bool           `json:"empty"`
	Warning string         `json:"warning,omitempty"`
	Fit     *FitView       `json:"fit,omitempty"`
	Pearson *Float         `json:"pearson,omitempty"`
	Points  []ScatterPoint `json:"points,omitempty"`
}
