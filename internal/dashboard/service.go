package dashboard

import (
	"sort"
	"time"

	"lifelens/domain/health"
	"lifelens/internal"
	"lifelens/internal/analysis"
	"lifelens/internal/errors"
	"lifelens/internal/metrics"

	"golang.org/x/sync/errgroup"
)

// compareColumns are the Lifestyle tab's compare-by choices, in display
// order.
var compareColumns = []health.CategoricalColumn{
	health.ColMentalHealthCondition,
	health.ColExerciseLevel,
	health.ColStressLevel,
	health.ColDietType,
}

// lifestyleMetrics are the numeric columns broken down by the compare-by
// group on the Lifestyle tab.
var lifestyleMetrics = []health.NumericColumn{
	health.ColSleepHours,
	health.ColScreenTime,
	health.ColSocialInteraction,
	health.ColWorkHours,
}

// ChartTypes are the accepted crosstab presentation hints.
var ChartTypes = []string{"stacked", "grouped"}

// Service runs the synchronous filter-and-aggregate pipeline for each user
// interaction. The dataset is loaded once and shared read-only, so the
// service is safe for concurrent handlers.
type Service struct {
	ds      *health.Dataset
	log     *internal.Logger
	metrics *metrics.Metrics
}

// NewService creates a dashboard service over a loaded dataset. metrics may
// be nil when exposition is disabled.
func NewService(ds *health.Dataset, logger *internal.Logger, m *metrics.Metrics) *Service {
	return &Service{ds: ds, log: logger, metrics: m}
}

// FilterRequest carries the five multi-select lists. A nil list means "all
// values" (the UI default); an explicitly empty list is an empty inclusion
// set and matches nothing.
type FilterRequest struct {
	Countries      []string `json:"countries"`
	Genders        []string `json:"genders"`
	ExerciseLevels []string `json:"exercise_levels"`
	DietTypes      []string `json:"diet_types"`
	Conditions     []string `json:"conditions"`
}

// selection resolves the request against the dataset's observed domains.
func (f FilterRequest) selection(ds *health.Dataset) health.Selection {
	resolve := func(values []string, col health.CategoricalColumn) health.ValueSet {
		if values == nil {
			return health.NewValueSet(ds.Domain(col)...)
		}
		return health.NewValueSet(values...)
	}
	return health.Selection{
		Countries:      resolve(f.Countries, health.ColCountry),
		Genders:        resolve(f.Genders, health.ColGender),
		ExerciseLevels: resolve(f.ExerciseLevels, health.ColExerciseLevel),
		DietTypes:      resolve(f.DietTypes, health.ColDietType),
		Conditions:     resolve(f.Conditions, health.ColMentalHealthCondition),
	}
}

// Request is one dashboard interaction.
type Request struct {
	Filters   FilterRequest `json:"filters"`
	CompareBy string        `json:"compare_by"`
	ChartType string        `json:"chart_type"`
}

// Options enumerates the control domains for the UI.
func (s *Service) Options() OptionsView {
	compare := make([]string, len(compareColumns))
	for i, c := range compareColumns {
		compare[i] = string(c)
	}
	color := make([]string, len(health.GroupColumns))
	for i, c := range health.GroupColumns {
		color[i] = string(c)
	}
	numeric := make([]string, len(health.NumericColumns))
	for i, c := range health.NumericColumns {
		numeric[i] = string(c)
	}
	return OptionsView{
		Countries:      s.ds.Domain(health.ColCountry),
		Genders:        s.ds.Domain(health.ColGender),
		ExerciseLevels: s.ds.Domain(health.ColExerciseLevel),
		DietTypes:      s.ds.Domain(health.ColDietType),
		Conditions:     s.ds.Domain(health.ColMentalHealthCondition),
		NumericColumns: numeric,
		CompareBy:      compare,
		ColorBy:        color,
		ChartTypes:     ChartTypes,
		Total:          s.ds.Len(),
	}
}

// Render runs the full pipeline for the three fixed tabs. The tabs are
// independent pure aggregations, so they fan out on an errgroup and join
// before the response is assembled.
func (s *Service) Render(req Request) (*View, error) {
	compareBy, err := s.compareColumn(req.CompareBy)
	if err != nil {
		return nil, err
	}
	chartType, err := s.chartType(req.ChartType)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows := analysis.Filter(s.ds, req.Filters.selection(s.ds))
	if view, done := s.observe(len(rows)); done {
		return view, nil
	}

	view := &View{Matched: len(rows), Total: s.ds.Len()}

	var g errgroup.Group
	g.Go(func() error {
		view.Overview = s.overview(rows)
		return nil
	})
	g.Go(func() error {
		view.MentalHealth = s.mentalHealth(rows, chartType)
		return nil
	})
	g.Go(func() error {
		view.Lifestyle = s.lifestyle(rows, compareBy)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.PipelineDuration.Observe(time.Since(start).Seconds())
	}
	s.log.Debug("dashboard render: %d/%d rows in %s", len(rows), s.ds.Len(), time.Since(start))
	return view, nil
}

// observe records subset-size metrics and short-circuits the empty terminal
// state before any aggregation runs.
func (s *Service) observe(matched int) (*View, bool) {
	if s.metrics != nil {
		s.metrics.FilteredRows.Observe(float64(matched))
	}
	if matched > 0 {
		return nil, false
	}
	if s.metrics != nil {
		s.metrics.EmptyResults.Inc()
	}
	return &View{
		Matched: 0,
		Total:   s.ds.Len(),
		Empty:   true,
		Message: "No data matches your filter criteria. Please adjust your selections.",
	}, true
}

func (s *Service) overview(rows []health.Record) *OverviewView {
	summary := analysis.SummaryMetrics(rows)
	return &OverviewView{
		Summary: SummaryView{
			AvgHappiness: Float(summary.AvgHappiness),
			AvgStress:    Float(summary.AvgStress),
			AvgSocial:    Float(summary.AvgSocial),
			AvgSleep:     Float(summary.AvgSleep),
		},
		HappinessByCountry: sortedGroupMeans(analysis.GroupMean(rows, analysis.ByColumn(health.ColCountry), health.ColHappiness)),
		GenderCounts:       analysis.ValueCounts(rows, health.ColGender),
		DietCounts:         analysis.ValueCounts(rows, health.ColDietType),
		ExerciseCounts:     analysis.ValueCounts(rows, health.ColExerciseLevel),
		ConditionCounts:    analysis.ValueCounts(rows, health.ColMentalHealthCondition),
	}
}

func (s *Service) mentalHealth(rows []health.Record, chartType string) *MentalHealthView {
	condition := analysis.ByColumn(health.ColMentalHealthCondition)
	return &MentalHealthView{
		ChartType:  chartType,
		ByCountry:  crosstabView(analysis.CrosstabRowNormalized(rows, analysis.ByColumn(health.ColCountry), condition)),
		ByGender:   crosstabView(analysis.CrosstabRowNormalized(rows, analysis.ByColumn(health.ColGender), condition)),
		ByAgeGroup: crosstabView(analysis.CrosstabRowNormalized(rows, analysis.ByBins(health.ColAge, health.AgeGroups), condition)),
	}
}

func (s *Service) lifestyle(rows []health.Record, compareBy health.CategoricalColumn) *LifestyleView {
	byGroup := make(map[string][]GroupMeanRow, len(lifestyleMetrics))
	for _, metric := range lifestyleMetrics {
		byGroup[string(metric)] = sortedGroupMeans(analysis.GroupMean(rows, analysis.ByColumn(compareBy), metric))
	}
	return &LifestyleView{
		CompareBy:            string(compareBy),
		MetricsByGroup:       byGroup,
		HappinessByExercise:  sortedGroupMeans(analysis.GroupMean(rows, analysis.ByColumn(health.ColExerciseLevel), health.ColHappiness)),
		HappinessByDiet:      sortedGroupMeans(analysis.GroupMean(rows, analysis.ByColumn(health.ColDietType), health.ColHappiness)),
		HappinessBySleepBins: orderedGroupMeans(analysis.GroupMean(rows, analysis.ByBins(health.ColSleepHours, health.SleepBins), health.ColHappiness), health.SleepBins.Labels),
	}
}

// CorrelationsRequest selects the variables of the matrix display.
type CorrelationsRequest struct {
	Filters   FilterRequest `json:"filters"`
	Variables []string      `json:"variables"`
}

// Correlations computes the pairwise-complete Pearson matrix over the
// chosen variables; nil variables means the full numeric set. Fewer than
// two variables is the scatter-matrix warning state, not an error.
func (s *Service) Correlations(req CorrelationsRequest) (*CorrelationsView, error) {
	cols := health.NumericColumns
	if req.Variables != nil {
		cols = make([]health.NumericColumn, 0, len(req.Variables))
		for _, name := range req.Variables {
			col, err := health.ParseNumericColumn(name)
			if err != nil {
				return nil, err
			}
			cols = append(cols, col)
		}
	}

	rows := analysis.Filter(s.ds, req.Filters.selection(s.ds))
	if len(rows) == 0 {
		return &CorrelationsView{Total: s.ds.Len(), Empty: true}, nil
	}

	view := &CorrelationsView{Matched: len(rows), Total: s.ds.Len()}
	if len(cols) < 2 {
		view.Warning = "Please select at least 2 variables."
		return view, nil
	}

	matrix, err := analysis.PearsonMatrix(rows, cols)
	if err != nil {
		return nil, err
	}
	view.Columns = matrix.Columns
	view.Values = make([][]Float, len(matrix.Values))
	for i, row := range matrix.Values {
		view.Values[i] = make([]Float, len(row))
		for j, v := range row {
			view.Values[i][j] = Float(v)
		}
	}
	return view, nil
}

// RegressionRequest picks the explorer's axes and point coloring.
type RegressionRequest struct {
	Filters FilterRequest `json:"filters"`
	X       string        `json:"x"`
	Y       string        `json:"y"`
	ColorBy string        `json:"color_by"`
}

// Regression fits the least-squares line for the explorer. A degenerate fit
// (fewer than 2 distinct x values) is recovered locally: the scatter points
// are still returned with a warning and no fit metrics.
func (s *Service) Regression(req RegressionRequest) (*RegressionView, error) {
	x, err := health.ParseNumericColumn(req.X)
	if err != nil {
		return nil, err
	}
	y, err := health.ParseNumericColumn(req.Y)
	if err != nil {
		return nil, err
	}
	if x == y {
		return nil, errors.InvalidInput("regression requires distinct x and y variables")
	}
	colorBy := health.ColMentalHealthCondition
	if req.ColorBy != "" {
		colorBy, err = health.ParseCategoricalColumn(req.ColorBy)
		if err != nil {
			return nil, err
		}
	}

	rows := analysis.Filter(s.ds, req.Filters.selection(s.ds))
	if len(rows) == 0 {
		return &RegressionView{Total: s.ds.Len(), Empty: true}, nil
	}

	view := &RegressionView{
		Matched: len(rows),
		Total:   s.ds.Len(),
		Points:  scatterPoints(rows, x, y, colorBy),
	}

	fit, err := analysis.FitOLS(rows, x, y)
	if err != nil {
		if errors.GetCode(err) == errors.CodeInsufficientData {
			view.Warning = err.Error()
			return view, nil
		}
		return nil, err
	}
	view.Fit = &FitView{
		Slope:     Float(fit.Slope),
		Intercept: Float(fit.Intercept),
		RSquared:  Float(fit.RSquared),
		N:         fit.N,
	}

	if r, err := analysis.Correlation(rows, x, y); err == nil {
		pearson := Float(r)
		view.Pearson = &pearson
	}
	return view, nil
}

func (s *Service) compareColumn(name string) (health.CategoricalColumn, error) {
	if name == "" {
		return health.ColMentalHealthCondition, nil
	}
	for _, col := range compareColumns {
		if string(col) == name {
			return col, nil
		}
	}
	return "", errors.InvalidInput("compare_by must be one of Mental Health Condition, Exercise Level, Stress Level, Diet Type")
}

func (s *Service) chartType(name string) (string, error) {
	if name == "" {
		return "stacked", nil
	}
	for _, t := range ChartTypes {
		if t == name {
			return t, nil
		}
	}
	return "", errors.InvalidInput("chart_type must be stacked or grouped")
}

// sortedGroupMeans renders a group-mean map sorted by label.
func sortedGroupMeans(means map[string]float64) []GroupMeanRow {
	labels := make([]string, 0, len(means))
	for label := range means {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	rows := make([]GroupMeanRow, len(labels))
	for i, label := range labels {
		rows[i] = GroupMeanRow{Label: label, Mean: Float(means[label])}
	}
	return rows
}

// orderedGroupMeans renders a group-mean map in an explicit label order
// (bin labels are not alphabetical). Absent groups are skipped, not zeroed.
func orderedGroupMeans(means map[string]float64, order []string) []GroupMeanRow {
	rows := make([]GroupMeanRow, 0, len(order))
	for _, label := range order {
		if mean, ok := means[label]; ok {
			rows = append(rows, GroupMeanRow{Label: label, Mean: Float(mean)})
		}
	}
	return rows
}

func scatterPoints(rows []health.Record, x, y health.NumericColumn, colorBy health.CategoricalColumn) []ScatterPoint {
	points := make([]ScatterPoint, 0, len(rows))
	for _, r := range rows {
		xv := x.Value(r)
		yv := y.Value(r)
		if isMissing(xv) || isMissing(yv) {
			continue
		}
		points = append(points, ScatterPoint{X: Float(xv), Y: Float(yv), Group: colorBy.Value(r)})
	}
	return points
}

func isMissing(v float64) bool {
	return v != v
}
