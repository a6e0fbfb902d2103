package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for vestige.
type Config struct {
	// Detection toggles which finding categories run.
	Detection DetectionConfig `koanf:"detection"`

	// Thresholds for confidence and risk filtering.
	Thresholds ThresholdConfig `koanf:"thresholds"`

	// File exclusion patterns.
	Exclude ExcludeConfig `koanf:"exclude"`

	// Snapshot persistence settings.
	Snapshot SnapshotConfig `koanf:"snapshot"`

	// Output settings.
	Output OutputConfig `koanf:"output"`
}

// DetectionConfig controls which detectors run and how cleanup behaves.
type DetectionConfig struct {
	Variables  bool `koanf:"variables"`
	Imports    bool `koanf:"imports"`
	Exports    bool `koanf:"exports"`
	DeadCode   bool `koanf:"dead_code"`
	TypeOnly   bool `koanf:"type_only"` // include type-only imports in findings
	Automation bool `koanf:"automation"`
	Safety     bool `koanf:"safety"` // restrict automated cleanup to risk-free recommendations
}

// ThresholdConfig defines filtering thresholds.
type ThresholdConfig struct {
	Confidence float64 `koanf:"confidence"` // findings below this are dropped
	Risk       string  `koanf:"risk"`       // low, medium, high
}

// ExcludeConfig defines file exclusion rules.
type ExcludeConfig struct {
	Patterns  []string `koanf:"patterns"` // doublestar globs or plain substrings
	Dirs      []string `koanf:"dirs"`
	Gitignore bool     `koanf:"gitignore"`
}

// SnapshotConfig controls the persisted results snapshot.
type SnapshotConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, json, markdown
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Detection: DetectionConfig{
			Variables:  true,
			Imports:    true,
			Exports:    true,
			DeadCode:   true,
			TypeOnly:   true,
			Automation: false,
			Safety:     true,
		},
		Thresholds: ThresholdConfig{
			Confidence: 0.7,
			Risk:       "medium",
		},
		Exclude: ExcludeConfig{
			Patterns: []string{
				"*.d.ts",
				"*.test.ts",
				"*.test.tsx",
				"*.spec.ts",
				"*.spec.tsx",
				"*.min.js",
			},
			Dirs: []string{
				"node_modules",
				".git",
				".next",
				"dist",
				"build",
				"out",
				"coverage",
				"__tests__",
				".vestige",
			},
			Gitignore: true,
		},
		Snapshot: SnapshotConfig{
			Enabled: true,
			Path:    ".vestige/snapshot.json",
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file, picking the parser by extension.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries standard config locations and falls back to defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"vestige.toml",
		"vestige.yaml",
		"vestige.yml",
		"vestige.json",
		".vestige.toml",
		".vestige.yaml",
		".vestige.yml",
		".vestige.json",
	}

	searchDirs := []string{".", ".vestige"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				if cfg, err := Load(path); err == nil {
					return cfg
				}
			}
		}
	}

	return DefaultConfig()
}
