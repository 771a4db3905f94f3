// Package project loads the optional plc.yaml project configuration: the
// entry source file, the default driver mode, and emitter options.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/plclang/plc/internal/config"
)

const ConfigFileName = "plc.yaml"

// Config is the top-level plc.yaml configuration.
type Config struct {
	// Entry is the source file the driver runs when none is given on the
	// command line.
	Entry string `yaml:"entry,omitempty"`

	// Mode is the default driver mode: lex, parse, analyze, run, or emit.
	Mode string `yaml:"mode,omitempty"`

	// Emit configures the emitter.
	Emit EmitConfig `yaml:"emit,omitempty"`
}

// EmitConfig configures the target-source emitter.
type EmitConfig struct {
	// Class is the name of the emitted wrapper class. Defaults to Main.
	Class string `yaml:"class,omitempty"`

	// Out is the file the emitted source is written to. Defaults to
	// standard output.
	Out string `yaml:"out,omitempty"`
}

var validModes = map[string]bool{
	"lex":     true,
	"parse":   true,
	"analyze": true,
	"run":     true,
	"emit":    true,
}

// Load reads plc.yaml from dir. A missing file yields the zero
// configuration; a present but invalid one is an error.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Mode != "" && !validModes[c.Mode] {
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if c.Entry != "" && !strings.HasSuffix(c.Entry, config.SourceFileExt) {
		return fmt.Errorf("entry %q must have the %s extension", c.Entry, config.SourceFileExt)
	}
	if c.Emit.Class != "" && !isIdentifier(c.Emit.Class) {
		return fmt.Errorf("emit class %q is not a valid class name", c.Emit.Class)
	}
	return nil
}

func isIdentifier(s string) bool {
	for i, r := range s {
		letter := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if i == 0 && !letter {
			return false
		}
		if !letter && !(r >= '0' && r <= '9') {
			return false
		}
	}
	return s != ""
}
