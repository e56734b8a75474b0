package health

import (
	"fmt"

	"lifelens/internal/errors"
)

// Binning maps a numeric value onto labeled half-open intervals
// [edges[i], edges[i+1]). Values outside every interval have no bin and are
// dropped from subsequent grouping.
type Binning struct {
	Edges  []float64
	Labels []string
}

// NewBinning validates that edges are strictly increasing and that there is
// one label per interval.
func NewBinning(edges []float64, labels []string) (Binning, error) {
	if len(edges) < 2 {
		return Binning{}, errors.InvalidInput("binning needs at least two edges")
	}
	if len(labels) != len(edges)-1 {
		return Binning{}, errors.InvalidInput(fmt.Sprintf("binning needs %d labels for %d edges, got %d", len(edges)-1, len(edges), len(labels)))
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			return Binning{}, errors.InvalidInput("binning edges must be strictly increasing")
		}
	}
	return Binning{Edges: edges, Labels: labels}, nil
}

// mustBinning panics on an invalid definition; used for the fixed package
// bins below.
func mustBinning(edges []float64, labels []string) Binning {
	b, err := NewBinning(edges, labels)
	if err != nil {
		panic(err)
	}
	return b
}

// Bin returns the label of the interval containing v, or false when v falls
// outside all intervals (including the right edge, which is excluded).
func (b Binning) Bin(v float64) (string, bool) {
	for i := 0; i < len(b.Labels); i++ {
		if v >= b.Edges[i] && v < b.Edges[i+1] {
			return b.Labels[i], true
		}
	}
	return "", false
}

// AgeGroups are the dashboard's fixed age brackets.
var AgeGroups = mustBinning(
	[]float64{15, 25, 35, 45, 55, 65},
	[]string{"18-25", "26-35", "36-45", "46-55", "56-65"},
)

// SleepBins bucket nightly sleep hours for the happiness comparison.
var SleepBins = mustBinning(
	[]float64{0, 4, 6, 8, 12},
	[]string{"<4 hrs", "4-6 hrs", "6-8 hrs", ">8 hrs"},
)
