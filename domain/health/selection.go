package health

// ValueSet is a set of allowed values for one filterable column.
type ValueSet map[string]struct{}

// NewValueSet builds a set from a value list.
func NewValueSet(values ...string) ValueSet {
	set := make(ValueSet, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// Contains reports membership.
func (s ValueSet) Contains(v string) bool {
	_, ok := s[v]
	return ok
}

// Covers reports whether the set includes every value in domain. A covering
// set makes the column's predicate a no-op.
func (s ValueSet) Covers(domain []string) bool {
	for _, v := range domain {
		if !s.Contains(v) {
			return false
		}
	}
	return true
}

// Selection holds the five independent per-column inclusion sets. A record
// passes when its value for every column is a member of that column's set
// (AND across columns). An empty set yields an empty result; the UI defaults
// every set to the full domain, so that state is reached only deliberately.
type Selection struct {
	Countries      ValueSet
	Genders        ValueSet
	ExerciseLevels ValueSet
	DietTypes      ValueSet
	Conditions     ValueSet
}

// AllOf returns the default selection covering every value observed in the
// dataset.
func AllOf(d *Dataset) Selection {
	return Selection{
		Countries:      NewValueSet(d.Domain(ColCountry)...),
		Genders:        NewValueSet(d.Domain(ColGender)...),
		ExerciseLevels: NewValueSet(d.Domain(ColExerciseLevel)...),
		DietTypes:      NewValueSet(d.Domain(ColDietType)...),
		Conditions:     NewValueSet(d.Domain(ColMentalHealthCondition)...),
	}
}

// Set returns the value set for a filterable column.
func (sel Selection) Set(col CategoricalColumn) ValueSet {
	switch col {
	case ColCountry:
		return sel.Countries
	case ColGender:
		return sel.Genders
	case ColExerciseLevel:
		return sel.ExerciseLevels
	case ColDietType:
		return sel.DietTypes
	case ColMentalHealthCondition:
		return sel.Conditions
	}
	return nil
}

// Matches reports whether a record passes all five column predicates.
func (sel Selection) Matches(r Record) bool {
	for _, col := range FilterColumns {
		if !sel.Set(col).Contains(col.Value(r)) {
			return false
		}
	}
	return true
}
