package health

import (
	"math"
	"sort"
	"testing"

	"lifelens/internal/errors"
)

func TestParseStressLevel(t *testing.T) {
	for raw, want := range map[string]int{"Low": 1, "Moderate": 2, "High": 3} {
		level, err := ParseStressLevel(raw)
		if err != nil {
			t.Fatalf("ParseStressLevel(%q): %v", raw, err)
		}
		if level.Numeric() != want {
			t.Errorf("%s.Numeric() = %d, want %d", level, level.Numeric(), want)
		}
	}

	for _, raw := range []string{"Extreme", "low", ""} {
		_, err := ParseStressLevel(raw)
		if errors.GetCode(err) != errors.CodeSchemaError {
			t.Errorf("ParseStressLevel(%q) = %v, want SCHEMA_ERROR", raw, err)
		}
	}
}

func TestParseColumns(t *testing.T) {
	if _, err := ParseCategoricalColumn("Country"); err != nil {
		t.Errorf("Country should parse: %v", err)
	}
	if _, err := ParseCategoricalColumn("Favorite Color"); errors.GetCode(err) != errors.CodeSchemaError {
		t.Errorf("unknown categorical column should be SCHEMA_ERROR, got %v", err)
	}

	if _, err := ParseNumericColumn("Happiness Score"); err != nil {
		t.Errorf("Happiness Score should parse: %v", err)
	}
	if _, err := ParseNumericColumn("Country"); errors.GetCode(err) != errors.CodeSchemaError {
		t.Errorf("categorical name should be SCHEMA_ERROR for numeric parse, got %v", err)
	}
}

func TestNumericColumnMissingValue(t *testing.T) {
	r := Record{SleepHours: math.NaN(), HappinessScore: 7.5}
	if !math.IsNaN(ColSleepHours.Value(r)) {
		t.Error("missing sleep should stay NaN")
	}
	if ColHappiness.Value(r) != 7.5 {
		t.Errorf("happiness = %v, want 7.5", ColHappiness.Value(r))
	}
}

func TestDatasetDomains(t *testing.T) {
	ds := NewDataset([]Record{
		{Country: "Japan", Gender: "Female"},
		{Country: "Brazil", Gender: "Male"},
		{Country: "Japan", Gender: "Female"},
	})

	countries := ds.Domain(ColCountry)
	if len(countries) != 2 || !sort.StringsAreSorted(countries) {
		t.Errorf("country domain = %v, want sorted [Brazil Japan]", countries)
	}
	if ds.Len() != 3 {
		t.Errorf("Len = %d, want 3", ds.Len())
	}
}
