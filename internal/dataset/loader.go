package dataset

import (
	"fmt"
	"math"
	"strconv"
	"sync"

	"lifelens/adapters/tabular"
	"lifelens/domain/health"
	"lifelens/internal/errors"
)

// requiredColumns must all be present in the source file. Stress Level
// Numeric is derived, never read.
var requiredColumns = []string{
	"Country",
	"Gender",
	"Age",
	"Exercise Level",
	"Diet Type",
	"Sleep Hours",
	"Stress Level",
	"Mental Health Condition",
	"Happiness Score",
	"Social Interaction Score",
	"Work Hours per Week",
	"Screen Time per Day (Hours)",
}

// Loader owns the process-wide dataset singleton. The first Load reads and
// decodes the file; every later call returns the cached dataset. The cache
// is invalidated only by process restart.
type Loader struct {
	mu     sync.Mutex
	path   string
	loaded bool
	ds     *health.Dataset
	err    error
}

// New creates a loader for a CSV or XLSX file path.
func New(path string) *Loader {
	return &Loader{path: path}
}

// NewFromRecords creates a pre-loaded loader, used with the synthetic
// generator and in tests.
func NewFromRecords(records []health.Record) *Loader {
	return &Loader{loaded: true, ds: health.NewDataset(records)}
}

// Load returns the cached dataset, reading the file on first call. A failed
// load is cached too: load-time errors are fatal to startup, so retrying on
// a later request would only mask a broken deployment.
func (l *Loader) Load() (*health.Dataset, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded {
		return l.ds, l.err
	}

	l.ds, l.err = l.read()
	l.loaded = true
	return l.ds, l.err
}

func (l *Loader) read() (*health.Dataset, error) {
	table, err := tabular.NewReader(l.path).Read()
	if err != nil {
		return nil, err
	}

	for _, col := range requiredColumns {
		if !table.HasColumn(col) {
			return nil, errors.SchemaError(fmt.Sprintf("required column %q is missing", col))
		}
	}

	records := make([]health.Record, 0, len(table.Rows))
	for i, row := range table.Rows {
		record, err := decodeRecord(row)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i+2) // +2: header row, 1-indexed
		}
		records = append(records, record)
	}

	return health.NewDataset(records), nil
}

// decodeRecord maps a raw row onto the typed record, deriving the stress
// numeric column. An out-of-domain stress label fails hard rather than
// silently producing a missing value.
func decodeRecord(row tabular.RawRow) (health.Record, error) {
	stress, err := health.ParseStressLevel(row["Stress Level"])
	if err != nil {
		return health.Record{}, err
	}

	age, err := parseInt(row, "Age")
	if err != nil {
		return health.Record{}, err
	}

	sleep, err := parseFloat(row, "Sleep Hours")
	if err != nil {
		return health.Record{}, err
	}
	happiness, err := parseFloat(row, "Happiness Score")
	if err != nil {
		return health.Record{}, err
	}
	social, err := parseFloat(row, "Social Interaction Score")
	if err != nil {
		return health.Record{}, err
	}
	work, err := parseFloat(row, "Work Hours per Week")
	if err != nil {
		return health.Record{}, err
	}
	screen, err := parseFloat(row, "Screen Time per Day (Hours)")
	if err != nil {
		return health.Record{}, err
	}

	return health.Record{
		Country:                row["Country"],
		Gender:                 row["Gender"],
		Age:                    age,
		ExerciseLevel:          row["Exercise Level"],
		DietType:               row["Diet Type"],
		SleepHours:             sleep,
		StressLevel:            stress,
		StressLevelNumeric:     stress.Numeric(),
		MentalHealthCondition:  row["Mental Health Condition"],
		HappinessScore:         happiness,
		SocialInteractionScore: social,
		WorkHoursPerWeek:       work,
		ScreenTimePerDay:       screen,
	}, nil
}

// parseFloat treats an empty cell as a missing value (NaN) and a
// non-numeric cell as a schema violation.
func parseFloat(row tabular.RawRow, col string) (float64, error) {
	raw := row[col]
	if raw == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.SchemaError(fmt.Sprintf("column %q has non-numeric value %q", col, raw))
	}
	return v, nil
}

func parseInt(row tabular.RawRow, col string) (int, error) {
	raw := row[col]
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.SchemaError(fmt.Sprintf("column %q has non-integer value %q", col, raw))
	}
	return v, nil
}
