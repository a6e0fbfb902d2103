package main

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	formatFlag string
	outputFile string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "vestige",
	Short: "Unused code detector for TypeScript projects",
	Long: `Vestige scans TypeScript codebases for unused variables, unused imports,
unused exports, and unreachable code, then produces prioritized cleanup
recommendations with confidence and risk scores. Safe removals can be
applied automatically.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to config file (TOML, YAML, or JSON)")
	rootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: text, json, markdown")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Write output to file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose output")
}
