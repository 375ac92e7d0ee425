package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/happydash/internal/analysis"
	"github.com/KaramelBytes/happydash/internal/dataset"
)

var (
	sumRegion   string
	sumCorr     bool
	sumMarkdown bool
	sumOutput   string
	sumTopPairs int
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize the dataset per metric and region",
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable()
		if err != nil {
			return err
		}
		if sumRegion != "" && !t.HasRegion(sumRegion) {
			return errors.Errorf("unknown region %q", sumRegion)
		}
		rep := analysis.Summarize(filepath.Base(cfg.DataPath), t, analysis.Options{Region: sumRegion, Correlations: sumCorr})

		if sumMarkdown || sumOutput != "" {
			md := rep.Markdown()
			if sumOutput != "" {
				return writeOutput(cmd.OutOrStdout(), sumOutput, []byte(md))
			}
			fmt.Fprintln(cmd.OutOrStdout(), md)
			return nil
		}
		printSummary(cmd.OutOrStdout(), rep)
		return nil
	},
}

var headingStyle = lipgloss.NewStyle().
	Bold(true).
	Border(lipgloss.RoundedBorder()).
	Padding(0, 1)

func printSummary(w io.Writer, rep *analysis.Report) {
	fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("%s: %d countries", rep.Name, rep.Rows)))
	fmt.Fprintln(w)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Count", "Missing", "Min", "Max", "Mean", "Std"})
	for _, m := range rep.Metrics {
		table.Append([]string{
			m.Metric.Label(), strconv.Itoa(m.Count), strconv.Itoa(m.Missing),
			num(m.Min), num(m.Max), num(m.Mean), num(m.Std),
		})
	}
	table.Render()
	fmt.Fprintln(w)

	headers := []string{"Region", "Countries"}
	for _, m := range dataset.Metrics {
		headers = append(headers, string(m))
	}
	table = tablewriter.NewWriter(w)
	table.SetHeader(headers)
	for _, g := range rep.Groups {
		row := []string{g.Region, strconv.Itoa(g.Size)}
		for _, m := range dataset.Metrics {
			row = append(row, num(g.Means[m]))
		}
		table.Append(row)
	}
	table.Render()

	if rep.Corr == nil {
		return
	}
	fmt.Fprintln(w)
	table = tablewriter.NewWriter(w)
	table.SetHeader([]string{"Pair", "r", "n"})
	for _, p := range rep.Corr.TopPairs(sumTopPairs) {
		table.Append([]string{p.A + " ~ " + p.B, num(p.R), strconv.Itoa(p.N)})
	}
	table.Render()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringVar(&sumRegion, "region", "", "limit the summary to one region")
	summaryCmd.Flags().BoolVar(&sumCorr, "correlations", false, "include Pearson correlations among metrics")
	summaryCmd.Flags().IntVar(&sumTopPairs, "top-pairs", 10, "number of strongest correlation pairs to list")
	summaryCmd.Flags().BoolVar(&sumMarkdown, "markdown", false, "print a Markdown report instead of tables")
	summaryCmd.Flags().StringVarP(&sumOutput, "output", "o", "", "write the Markdown report to a file")
}
