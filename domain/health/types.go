package health

import (
	"fmt"
	"math"
	"sort"

	"lifelens/internal/errors"
)

// StressLevel is the ordinal stress label carried by the source data.
type StressLevel string

const (
	StressLow      StressLevel = "Low"
	StressModerate StressLevel = "Moderate"
	StressHigh     StressLevel = "High"
)

// stressNumeric maps the ordinal labels to their 1-3 encoding.
var stressNumeric = map[StressLevel]int{
	StressLow:      1,
	StressModerate: 2,
	StressHigh:     3,
}

// ParseStressLevel validates a raw stress label. Labels outside the fixed
// Low/Moderate/High domain are a schema violation, not a missing value.
func ParseStressLevel(raw string) (StressLevel, error) {
	level := StressLevel(raw)
	if _, ok := stressNumeric[level]; !ok {
		return "", errors.SchemaError(fmt.Sprintf("stress level %q is not one of Low/Moderate/High", raw))
	}
	return level, nil
}

// Numeric returns the 1-3 ordinal encoding of the stress level.
func (s StressLevel) Numeric() int {
	return stressNumeric[s]
}

// Record is one individual in the dataset. Numeric fields use NaN for a
// missing value; categorical fields are never empty after load.
type Record struct {
	Country                string
	Gender                 string
	Age                    int
	ExerciseLevel          string
	DietType               string
	SleepHours             float64
	StressLevel            StressLevel
	StressLevelNumeric     int
	MentalHealthCondition  string
	HappinessScore         float64
	SocialInteractionScore float64
	WorkHoursPerWeek       float64
	ScreenTimePerDay       float64
}

// CategoricalColumn identifies a string-valued column usable for filtering
// or grouping.
type CategoricalColumn string

const (
	ColCountry               CategoricalColumn = "Country"
	ColGender                CategoricalColumn = "Gender"
	ColExerciseLevel         CategoricalColumn = "Exercise Level"
	ColDietType              CategoricalColumn = "Diet Type"
	ColMentalHealthCondition CategoricalColumn = "Mental Health Condition"
	ColStressLevel           CategoricalColumn = "Stress Level"
)

// FilterColumns are the five columns the selection model filters on.
// Stress Level is groupable but not filterable.
var FilterColumns = []CategoricalColumn{
	ColCountry,
	ColGender,
	ColExerciseLevel,
	ColDietType,
	ColMentalHealthCondition,
}

// GroupColumns are the columns offered as compare-by / color-by choices.
var GroupColumns = []CategoricalColumn{
	ColMentalHealthCondition,
	ColExerciseLevel,
	ColStressLevel,
	ColDietType,
	ColCountry,
	ColGender,
}

// ParseCategoricalColumn rejects unknown column names at the boundary.
func ParseCategoricalColumn(name string) (CategoricalColumn, error) {
	col := CategoricalColumn(name)
	switch col {
	case ColCountry, ColGender, ColExerciseLevel, ColDietType,
		ColMentalHealthCondition, ColStressLevel:
		return col, nil
	}
	return "", errors.SchemaError(fmt.Sprintf("unknown categorical column %q", name))
}

// Value extracts the column's value from a record.
func (c CategoricalColumn) Value(r Record) string {
	switch c {
	case ColCountry:
		return r.Country
	case ColGender:
		return r.Gender
	case ColExerciseLevel:
		return r.ExerciseLevel
	case ColDietType:
		return r.DietType
	case ColMentalHealthCondition:
		return r.MentalHealthCondition
	case ColStressLevel:
		return string(r.StressLevel)
	}
	return ""
}

// NumericColumn identifies a numeric column usable in correlation and
// regression.
type NumericColumn string

const (
	ColAge               NumericColumn = "Age"
	ColSleepHours        NumericColumn = "Sleep Hours"
	ColWorkHours         NumericColumn = "Work Hours per Week"
	ColScreenTime        NumericColumn = "Screen Time per Day (Hours)"
	ColSocialInteraction NumericColumn = "Social Interaction Score"
	ColHappiness         NumericColumn = "Happiness Score"
	ColStressNumeric     NumericColumn = "Stress Level Numeric"
)

// NumericColumns is the fixed variable set for the correlation matrix and
// the regression explorer, in display order.
var NumericColumns = []NumericColumn{
	ColAge,
	ColSleepHours,
	ColWorkHours,
	ColScreenTime,
	ColSocialInteraction,
	ColHappiness,
	ColStressNumeric,
}

// ParseNumericColumn rejects unknown column names at the boundary.
func ParseNumericColumn(name string) (NumericColumn, error) {
	col := NumericColumn(name)
	for _, known := range NumericColumns {
		if col == known {
			return col, nil
		}
	}
	return "", errors.SchemaError(fmt.Sprintf("unknown numeric column %q", name))
}

// Value extracts the column's value from a record. Missing values are NaN.
func (c NumericColumn) Value(r Record) float64 {
	switch c {
	case ColAge:
		return float64(r.Age)
	case ColSleepHours:
		return r.SleepHours
	case ColWorkHours:
		return r.WorkHoursPerWeek
	case ColScreenTime:
		return r.ScreenTimePerDay
	case ColSocialInteraction:
		return r.SocialInteractionScore
	case ColHappiness:
		return r.HappinessScore
	case ColStressNumeric:
		return float64(r.StressLevelNumeric)
	}
	return math.NaN()
}

// Dataset is the immutable, ordered record collection shared read-only by
// everything downstream of the loader. Filter domains are computed once at
// construction.
type Dataset struct {
	records []Record
	domains map[CategoricalColumn][]string
}

// NewDataset builds a dataset and precomputes the sorted value domain of
// every filterable column.
func NewDataset(records []Record) *Dataset {
	domains := make(map[CategoricalColumn][]string, len(FilterColumns))
	for _, col := range FilterColumns {
		seen := make(map[string]struct{})
		for _, r := range records {
			seen[col.Value(r)] = struct{}{}
		}
		values := make([]string, 0, len(seen))
		for v := range seen {
			values = append(values, v)
		}
		sort.Strings(values)
		domains[col] = values
	}
	return &Dataset{records: records, domains: domains}
}

// Records returns the backing slice. Callers must not mutate it.
func (d *Dataset) Records() []Record {
	return d.records
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Domain returns the sorted distinct values of a filterable column.
func (d *Dataset) Domain(col CategoricalColumn) []string {
	return d.domains[col]
}
