package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vestigehq/vestige/internal/output"
	"github.com/vestigehq/vestige/pkg/detector"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show summary of the last detection run",
	Long: `Reads the persisted snapshot and reports aggregate counts from the last
detection run without re-scanning.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	d := detector.New(cfg, detector.NewLogger(verbose))
	status := d.Status()

	formatter, err := output.NewFormatter(output.ParseFormat(formatFlag), outputFile, true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if status.ResultsCount == 0 {
		formatter.Info("No stored results. Run 'vestige detect' first.")
		return nil
	}

	if status.LastAnalysis != nil && formatter.Format() == output.FormatText {
		fmt.Fprintf(formatter.Writer(), "Last analysis: %s\n\n", status.LastAnalysis.Format("2006-01-02 15:04:05"))
	}

	return formatter.Output(output.SummaryTable(d.Summary()))
}
