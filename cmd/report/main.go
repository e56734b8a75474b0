package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"lifelens/domain/health"
	"lifelens/internal/analysis"
	"lifelens/internal/dataset"
	"lifelens/internal/errors"
	"lifelens/internal/testkit"

	"github.com/spf13/cobra"
)

// report is a headless view of the dashboard aggregations, for quick checks
// of a dataset file without starting the web server.

var (
	datasetFile string
	seed        int64
	size        int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "report",
		Short: "Print lifestyle/mental-health dataset aggregations to the terminal",
	}
	rootCmd.PersistentFlags().StringVar(&datasetFile, "dataset", "", "CSV or XLSX dataset path (synthetic population when empty)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 42, "Seed for the synthetic population")
	rootCmd.PersistentFlags().IntVar(&size, "size", 3000, "Size of the synthetic population")

	rootCmd.AddCommand(
		newSummaryCmd(),
		newCorrelationsCmd(),
		newRegressionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadDataset() (*health.Dataset, error) {
	if datasetFile != "" {
		return dataset.New(datasetFile).Load()
	}
	gen := testkit.NewGenerator(testkit.GeneratorConfig{Size: size, Seed: seed})
	return dataset.NewFromRecords(gen.Generate()).Load()
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Headline means and happiness breakdowns",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset()
			if err != nil {
				return err
			}
			rows := ds.Records()
			s := analysis.SummaryMetrics(rows)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "records\t%d\n", len(rows))
			fmt.Fprintf(w, "avg happiness\t%.2f\n", s.AvgHappiness)
			fmt.Fprintf(w, "avg stress (1-3)\t%.2f\n", s.AvgStress)
			fmt.Fprintf(w, "avg social score\t%.2f\n", s.AvgSocial)
			fmt.Fprintf(w, "avg sleep hours\t%.2f\n", s.AvgSleep)
			fmt.Fprintln(w)

			printGroupMeans(w, "happiness by country", analysis.GroupMean(rows, analysis.ByColumn(health.ColCountry), health.ColHappiness))
			printGroupMeans(w, "happiness by exercise", analysis.GroupMean(rows, analysis.ByColumn(health.ColExerciseLevel), health.ColHappiness))
			printGroupMeans(w, "happiness by diet", analysis.GroupMean(rows, analysis.ByColumn(health.ColDietType), health.ColHappiness))
			return w.Flush()
		},
	}
}

func newCorrelationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "correlations",
		Short: "Pairwise-complete Pearson matrix over all numeric columns",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset()
			if err != nil {
				return err
			}
			matrix, err := analysis.PearsonMatrix(ds.Records(), health.NumericColumns)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprint(w, "\t")
			for _, col := range matrix.Columns {
				fmt.Fprintf(w, "%s\t", col)
			}
			fmt.Fprintln(w)
			for i, col := range matrix.Columns {
				fmt.Fprintf(w, "%s\t", col)
				for _, v := range matrix.Values[i] {
					if v != v {
						fmt.Fprint(w, "n/a\t")
						continue
					}
					fmt.Fprintf(w, "%.3f\t", v)
				}
				fmt.Fprintln(w)
			}
			return w.Flush()
		},
	}
}

func newRegressionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regression [x-column] [y-column]",
		Short: "Least-squares fit between two numeric columns",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := health.ParseNumericColumn(args[0])
			if err != nil {
				return err
			}
			y, err := health.ParseNumericColumn(args[1])
			if err != nil {
				return err
			}
			if x == y {
				return errors.InvalidInput("regression requires distinct x and y columns")
			}

			ds, err := loadDataset()
			if err != nil {
				return err
			}
			fit, err := analysis.FitOLS(ds.Records(), x, y)
			if err != nil {
				return err
			}
			r, _ := analysis.Correlation(ds.Records(), x, y)

			fmt.Fprintf(cmd.OutOrStdout(), "%s ~ %s\n", y, x)
			fmt.Fprintf(cmd.OutOrStdout(), "slope      %.4f\n", fit.Slope)
			fmt.Fprintf(cmd.OutOrStdout(), "intercept  %.4f\n", fit.Intercept)
			fmt.Fprintf(cmd.OutOrStdout(), "r-squared  %.4f\n", fit.RSquared)
			fmt.Fprintf(cmd.OutOrStdout(), "pearson r  %.4f\n", r)
			fmt.Fprintf(cmd.OutOrStdout(), "n          %d\n", fit.N)
			return nil
		},
	}
}

func printGroupMeans(w *tabwriter.Writer, title string, means map[string]float64) {
	labels := make([]string, 0, len(means))
	for label := range means {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	fmt.Fprintf(w, "%s\n", title)
	for _, label := range labels {
		fmt.Fprintf(w, "  %s\t%.2f\n", label, means[label])
	}
	fmt.Fprintln(w)
}
