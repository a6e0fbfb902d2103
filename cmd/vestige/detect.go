package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/vestigehq/vestige/internal/output"
	"github.com/vestigehq/vestige/internal/progress"
	"github.com/vestigehq/vestige/pkg/config"
	"github.com/vestigehq/vestige/pkg/detector"
	"github.com/vestigehq/vestige/pkg/watch"
)

var detectCmd = &cobra.Command{
	Use:     "detect [path]",
	Aliases: []string{"scan"},
	Short:   "Detect unused variables, imports, exports, and dead code",
	RunE:    runDetect,
}

func init() {
	detectCmd.Flags().Float64("confidence", 0, "Minimum confidence threshold (0.0-1.0, overrides config)")
	detectCmd.Flags().String("risk", "", "Maximum risk level to report: low, medium, high (overrides config)")
	detectCmd.Flags().Bool("no-type-only", false, "Skip type-only imports")
	detectCmd.Flags().Bool("watch", false, "Re-run detection when files change")
	detectCmd.Flags().Duration("debounce", 500*time.Millisecond, "Debounce window in watch mode")

	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	root := getRoot(args)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if conf, _ := cmd.Flags().GetFloat64("confidence"); conf > 0 {
		cfg.Thresholds.Confidence = conf
	}
	if risk, _ := cmd.Flags().GetString("risk"); risk != "" {
		cfg.Thresholds.Risk = risk
	}
	if noTypeOnly, _ := cmd.Flags().GetBool("no-type-only"); noTypeOnly {
		cfg.Detection.TypeOnly = false
	}

	d := detector.New(cfg, detector.NewLogger(verbose))

	if watchMode, _ := cmd.Flags().GetBool("watch"); watchMode {
		debounce, _ := cmd.Flags().GetDuration("debounce")
		return runDetectWatch(d, root, cfg, debounce)
	}

	return detectOnce(d, root, true)
}

func detectOnce(d *detector.Detector, root string, showProgress bool) error {
	var tracker *progress.Tracker
	var progressFn detector.ProgressFunc

	if showProgress {
		progressFn = func(done, total int, path string) {
			if tracker == nil {
				tracker = progress.NewTracker("Analyzing files...", total)
			}
			tracker.Tick()
		}
	}

	results, err := d.Detect(root, progressFn)
	if tracker != nil {
		tracker.FinishSuccess()
	}
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	formatter, err := output.NewFormatter(output.ParseFormat(formatFlag), outputFile, true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if len(results) == 0 {
		formatter.Success("No unused code found")
		return nil
	}

	return formatter.Output(output.DetectionReport(results, d.Summary()))
}

func runDetectWatch(d *detector.Detector, root string, cfg *config.Config, debounce time.Duration) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	if err := detectOnce(d, absRoot, true); err != nil {
		color.Red("initial run: %v", err)
	}

	watcher, err := watch.NewWatcher(absRoot, cfg, debounce)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Stop()

	watcher.SetCallback(func(changed []string) {
		color.Yellow("\n%d file(s) changed, re-analyzing", len(changed))
		if err := detectOnce(d, absRoot, false); err != nil {
			color.Red("re-analysis: %v", err)
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nStopping watch...")
		cancel()
	}()

	return watcher.Start(ctx)
}
