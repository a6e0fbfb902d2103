package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/vestigehq/vestige/internal/cleanup"
	"github.com/vestigehq/vestige/internal/output"
	"github.com/vestigehq/vestige/pkg/detector"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup <file>",
	Short: "Apply automated cleanup to a previously analyzed file",
	Long: `Applies the automatable recommendations from the last detection run to a
single file. Dry-run by default: pass --apply to write changes. With
--safe-only (the default) recommendations carrying any listed risk are
skipped.

The detection run must cover the file first:
  vestige detect ./src
  vestige cleanup src/utils.ts --apply`,
	Args: cobra.ExactArgs(1),
	RunE: runCleanup,
}

func init() {
	cleanupCmd.Flags().Bool("safe-only", true, "Skip recommendations with listed risks")
	cleanupCmd.Flags().Bool("apply", false, "Write changes to disk (default is dry-run)")
	cleanupCmd.Flags().String("root", ".", "Root path to analyze before cleanup")
	cleanupCmd.Flags().Bool("no-detect", false, "Use the persisted snapshot instead of re-running detection")

	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	file := args[0]
	safeOnly, _ := cmd.Flags().GetBool("safe-only")
	apply, _ := cmd.Flags().GetBool("apply")
	root, _ := cmd.Flags().GetString("root")
	noDetect, _ := cmd.Flags().GetBool("no-detect")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	d := detector.New(cfg, detector.NewLogger(verbose))
	if !noDetect {
		if _, err := d.Detect(root, nil); err != nil {
			return fmt.Errorf("detection failed: %w", err)
		}
	}

	result := d.ResultFor(file)
	if result == nil {
		return fmt.Errorf("no findings for %s", file)
	}

	formatter, err := output.NewFormatter(output.ParseFormat(formatFlag), outputFile, true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatText {
		if err := formatter.Output(output.RecommendationTable(result)); err != nil {
			return err
		}
	}

	res, err := d.Cleanup(file, cleanup.Options{SafeOnly: safeOnly, DryRun: !apply})
	if err != nil {
		return err
	}

	if formatter.Format() != output.FormatText {
		return formatter.Output(res)
	}

	if !res.Success {
		for _, w := range res.Warnings {
			formatter.Error("%s", w)
		}
		return fmt.Errorf("cleanup failed")
	}

	if len(res.Changes) == 0 {
		formatter.Info("Nothing automatable for %s", file)
		return nil
	}
	for _, change := range res.Changes {
		fmt.Fprintf(formatter.Writer(), "  %s\n", change)
	}
	if apply {
		color.Green("Applied %d change(s) to %s", len(res.Changes), file)
	} else {
		color.Yellow("Dry run: %d change(s) would be applied (use --apply)", len(res.Changes))
	}
	return nil
}
