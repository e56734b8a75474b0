package analysis

import (
	"math"
	"sort"

	"lifelens/domain/health"

	"github.com/montanaflynn/stats"
)

// Key extracts a grouping label from a record. The bool is false when the
// record has no label (e.g. a value outside every bin) and must be dropped
// from the grouping.
type Key func(r health.Record) (string, bool)

// ByColumn groups on a categorical column.
func ByColumn(col health.CategoricalColumn) Key {
	return func(r health.Record) (string, bool) {
		return col.Value(r), true
	}
}

// ByBins groups a numeric column through a binning.
func ByBins(col health.NumericColumn, b health.Binning) Key {
	return func(r health.Record) (string, bool) {
		v := col.Value(r)
		if math.IsNaN(v) {
			return "", false
		}
		return b.Bin(v)
	}
}

// GroupMean returns the arithmetic mean of a numeric column per group.
// Groups with no rows are absent from the output, and rows with a missing
// value do not contribute.
func GroupMean(rows []health.Record, key Key, value health.NumericColumn) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range rows {
		label, ok := key(r)
		if !ok {
			continue
		}
		v := value.Value(r)
		if math.IsNaN(v) {
			continue
		}
		sums[label] += v
		counts[label]++
	}

	means := make(map[string]float64, len(counts))
	for label, n := range counts {
		means[label] = sums[label] / float64(n)
	}
	return means
}

// CountRow is one bar of a categorical distribution.
type CountRow struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// ValueCounts returns the distribution of a categorical column, most
// frequent first with ties broken alphabetically.
func ValueCounts(rows []health.Record, col health.CategoricalColumn) []CountRow {
	counts := make(map[string]int)
	for _, r := range rows {
		counts[col.Value(r)]++
	}

	out := make([]CountRow, 0, len(counts))
	for v, n := range counts {
		out = append(out, CountRow{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// Crosstab is a row-normalized contingency table: Percent[r][c] is the share
// (0-100) of rows with row label r whose column label is c. Each row sums to
// 100 within floating-point tolerance.
type Crosstab struct {
	RowLabels []string                      `json:"row_labels"`
	ColLabels []string                      `json:"col_labels"`
	Percent   map[string]map[string]float64 `json:"percent"`
	RowTotals map[string]int                `json:"row_totals"`
}

// CrosstabRowNormalized cross-tabulates two keys and rescales each row's
// counts to percentages.
func CrosstabRowNormalized(rows []health.Record, rowKey, colKey Key) Crosstab {
	counts := make(map[string]map[string]int)
	totals := make(map[string]int)
	colSet := make(map[string]struct{})

	for _, r := range rows {
		rl, ok := rowKey(r)
		if !ok {
			continue
		}
		cl, ok := colKey(r)
		if !ok {
			continue
		}
		if counts[rl] == nil {
			counts[rl] = make(map[string]int)
		}
		counts[rl][cl]++
		totals[rl]++
		colSet[cl] = struct{}{}
	}

	rowLabels := make([]string, 0, len(counts))
	for rl := range counts {
		rowLabels = append(rowLabels, rl)
	}
	sort.Strings(rowLabels)

	colLabels := make([]string, 0, len(colSet))
	for cl := range colSet {
		colLabels = append(colLabels, cl)
	}
	sort.Strings(colLabels)

	percent := make(map[string]map[string]float64, len(rowLabels))
	for _, rl := range rowLabels {
		percent[rl] = make(map[string]float64, len(colLabels))
		for _, cl := range colLabels {
			percent[rl][cl] = float64(counts[rl][cl]) / float64(totals[rl]) * 100
		}
	}

	return Crosstab{
		RowLabels: rowLabels,
		ColLabels: colLabels,
		Percent:   percent,
		RowTotals: totals,
	}
}

// Summary holds the Overview tab's headline means.
type Summary struct {
	AvgHappiness float64 `json:"avg_happiness"`
	AvgStress    float64 `json:"avg_stress"`
	AvgSocial    float64 `json:"avg_social"`
	AvgSleep     float64 `json:"avg_sleep"`
}

// SummaryMetrics computes the four headline means over the filtered subset.
func SummaryMetrics(rows []health.Record) Summary {
	return Summary{
		AvgHappiness: columnMean(rows, health.ColHappiness),
		AvgStress:    columnMean(rows, health.ColStressNumeric),
		AvgSocial:    columnMean(rows, health.ColSocialInteraction),
		AvgSleep:     columnMean(rows, health.ColSleepHours),
	}
}

// columnMean averages the present values of a numeric column. NaN when no
// value is present.
func columnMean(rows []health.Record, col health.NumericColumn) float64 {
	values := presentValues(rows, col)
	if len(values) == 0 {
		return math.NaN()
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return math.NaN()
	}
	return mean
}

// presentValues collects the non-missing values of a column.
func presentValues(rows []health.Record, col health.NumericColumn) []float64 {
	out := make([]float64, 0, len(rows))
	for _, r := range rows {
		if v := col.Value(r); !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// pairwiseComplete collects value pairs where both columns are present.
func pairwiseComplete(rows []health.Record, x, y health.NumericColumn) (xs, ys []float64) {
	xs = make([]float64, 0, len(rows))
	ys = make([]float64, 0, len(rows))
	for _, r := range rows {
		xv := x.Value(r)
		yv := y.Value(r)
		if math.IsNaN(xv) || math.IsNaN(yv) {
			continue
		}
		xs = append(xs, xv)
		ys = append(ys, yv)
	}
	return xs, ys
}
