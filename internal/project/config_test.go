package project

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("missing config should not error: %v", err)
	}
	if cfg.Entry != "" || cfg.Mode != "" || cfg.Emit.Class != "" {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestLoadFullConfig(t *testing.T) {
	entry := fmt.Sprintf("prog-%s.plc", uuid.NewString()[:8])
	dir := writeConfig(t, fmt.Sprintf(`entry: %s
mode: emit
emit:
  class: Program
  out: Program.java
`, entry))

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Entry != entry || cfg.Mode != "emit" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Emit.Class != "Program" || cfg.Emit.Out != "Program.java" {
		t.Errorf("unexpected emit config: %+v", cfg.Emit)
	}
}

func TestLoadInvalid(t *testing.T) {
	testCases := []struct {
		name     string
		contents string
	}{
		{"bad_yaml", "mode: [unclosed"},
		{"unknown_mode", "mode: transpile"},
		{"bad_entry_ext", "entry: main.txt"},
		{"bad_class", "emit:\n  class: 9Lives"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.contents)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := Config{Entry: "main.plc", Mode: "run", Emit: EmitConfig{Class: "Main"}}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
	if err := (&Config{Emit: EmitConfig{Class: ""}}).Validate(); err != nil {
		t.Errorf("empty class should be allowed: %v", err)
	}
}
