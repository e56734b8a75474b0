package testkit

import (
	"math"
	"math/rand"

	"lifelens/domain/health"
)

// GeneratorConfig configures the synthetic population generator
type GeneratorConfig struct {
	Size int   `json:"size"`
	Seed int64 `json:"seed"`
}

// DefaultGeneratorConfig returns sensible defaults for synthetic data generation
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Size: 3000,
		Seed: 42,
	}
}

var (
	countries = []string{"Australia", "Brazil", "Canada", "Germany", "India", "Japan", "USA"}
	genders   = []string{"Female", "Male", "Non-binary"}
	exercise  = []string{"Low", "Moderate", "High"}
	diets     = []string{"Balanced", "Junk Food", "Keto", "Vegan", "Vegetarian"}
	// "None" is a legitimate condition value, not a missing marker.
	conditions = []string{"None", "Anxiety", "Depression", "Bipolar", "PTSD"}
	stresses   = []health.StressLevel{health.StressLow, health.StressModerate, health.StressHigh}
)

// Generator produces a deterministic synthetic population with plausible
// lifestyle/outcome structure, so the dashboard runs without a dataset file.
type Generator struct {
	config GeneratorConfig
	rng    *rand.Rand
}

// NewGenerator creates a new population generator
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate produces the full synthetic population. Same config, same output.
func (g *Generator) Generate() []health.Record {
	records := make([]health.Record, g.config.Size)
	for i := range records {
		records[i] = g.individual()
	}
	return records
}

// individual draws one person. Sleep, exercise and social interaction pull
// happiness up; stress and screen time pull it down. The effects are noisy
// enough that nothing downstream can treat them as deterministic.
func (g *Generator) individual() health.Record {
	stress := stresses[g.rng.Intn(len(stresses))]
	exerciseLevel := exercise[g.rng.Intn(len(exercise))]

	sleep := clamp(g.rng.NormFloat64()*1.5+6.8, 2, 11)
	social := clamp(g.rng.NormFloat64()*2.2+5.5, 0, 10)
	work := clamp(g.rng.NormFloat64()*9+41, 10, 80)
	screen := clamp(g.rng.NormFloat64()*2.1+5.2, 0.5, 14)

	happiness := 5.2 +
		0.35*(sleep-6.8) +
		0.18*(social-5.5) -
		0.75*float64(stress.Numeric()-2) -
		0.12*(screen-5.2) +
		exerciseBoost(exerciseLevel) +
		g.rng.NormFloat64()*1.1
	happiness = clamp(happiness, 0, 10)

	return health.Record{
		Country:                countries[g.rng.Intn(len(countries))],
		Gender:                 genders[g.rng.Intn(len(genders))],
		Age:                    18 + g.rng.Intn(47), // 18-64, inside the fixed age brackets
		ExerciseLevel:          exerciseLevel,
		DietType:               diets[g.rng.Intn(len(diets))],
		SleepHours:             round1(sleep),
		StressLevel:            stress,
		StressLevelNumeric:     stress.Numeric(),
		MentalHealthCondition:  g.condition(stress),
		HappinessScore:         round1(happiness),
		SocialInteractionScore: round1(social),
		WorkHoursPerWeek:       round1(work),
		ScreenTimePerDay:       round1(screen),
	}
}

// condition skews diagnosis frequency with stress: high stress roughly
// doubles the odds of any condition versus low stress.
func (g *Generator) condition(stress health.StressLevel) string {
	pAny := 0.25 + 0.12*float64(stress.Numeric()-1)
	if g.rng.Float64() >= pAny {
		return "None"
	}
	return conditions[1+g.rng.Intn(len(conditions)-1)]
}

func exerciseBoost(level string) float64 {
	switch level {
	case "High":
		return 0.5
	case "Moderate":
		return 0.25
	}
	return 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
