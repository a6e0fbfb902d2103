package main

import (
	"github.com/vestigehq/vestige/pkg/config"
)

// getRoot returns the scan root from args, defaulting to ".".
func getRoot(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}

// loadConfig loads the configured file or falls back to defaults.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.LoadOrDefault(), nil
}
