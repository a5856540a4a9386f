// Package config holds process-wide constants and the optional
// on-disk CLI configuration for the minijs host binary.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Version is the current minijs version.
var Version = "0.1.0"

// SourceFileExt is the recognized script file extension.
const SourceFileExt = ".mjs"

// REPLConfig is the optional host configuration, loaded from a
// ".minijsrc.yaml" file in the current directory if present.
type REPLConfig struct {
	// Prompt overrides the REPL's primary prompt string.
	Prompt string `yaml:"prompt,omitempty"`

	// ContinuationPrompt overrides the REPL's prompt for incomplete
	// multi-line input.
	ContinuationPrompt string `yaml:"continuation_prompt,omitempty"`

	// NoColor is read from the file but has no effect: the REPL
	// prints no ANSI coloring.
	NoColor bool `yaml:"no_color,omitempty"`
}

// DefaultREPLConfig returns the configuration used when no
// ".minijsrc.yaml" file is present or it fails to parse.
func DefaultREPLConfig() REPLConfig {
	return REPLConfig{Prompt: "> ", ContinuationPrompt: "... "}
}

// LoadREPLConfig reads the config file at path (the REPL passes
// ".minijsrc.yaml", resolved against the current directory).
// A missing file is not an error: it yields the defaults. A malformed
// file returns the defaults alongside the parse error, so the host can
// warn without refusing to start.
func LoadREPLConfig(path string) (REPLConfig, error) {
	cfg := DefaultREPLConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultREPLConfig(), err
	}
	if cfg.Prompt == "" {
		cfg.Prompt = "> "
	}
	if cfg.ContinuationPrompt == "" {
		cfg.ContinuationPrompt = "... "
	}
	return cfg, nil
}
