package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type sample struct {
	Name  string `yaml:"name"`
	Port  int    `yaml:"port"`
	Extra string `yaml:"extra"`
}

func (s *sample) Validate() error {
	if s.Port == 0 {
		return errors.New("port is required")
	}
	return nil
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("FOLIO_CFG_SET", "value")
	t.Setenv("FOLIO_CFG_EMPTY", "")

	tests := []struct {
		in, want string
	}{
		{"${FOLIO_CFG_SET}", "value"},
		{"$FOLIO_CFG_SET", "value"},
		{"${FOLIO_CFG_UNSET}", ""},
		{"${FOLIO_CFG_UNSET:-fallback}", "fallback"},
		{"${FOLIO_CFG_EMPTY:-fallback}", "fallback"},
		{"${FOLIO_CFG_SET:-fallback}", "value"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := ExpandEnv(tt.in); got != tt.want {
			t.Errorf("ExpandEnv(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("FOLIO_CFG_PORT", "9000")
	path := filepath.Join(t.TempDir(), "c.yaml")
	if err := os.WriteFile(path, []byte("name: ${FOLIO_CFG_NAME:-folio}\nport: ${FOLIO_CFG_PORT}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := sample{Extra: "kept"}
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "folio" || cfg.Port != 9000 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Extra != "kept" {
		t.Errorf("default overwritten: %q", cfg.Extra)
	}
}

func TestLoad_ValidationAndErrors(t *testing.T) {
	var cfg sample
	err := Parse([]byte("name: x\n"), "inline", &cfg)
	if err == nil || !strings.Contains(err.Error(), "port is required") {
		t.Errorf("expected validation error, got %v", err)
	}

	if err := Parse([]byte("name: [unclosed"), "inline", &cfg); err == nil {
		t.Error("expected parse error")
	}

	if err := Load(filepath.Join(t.TempDir(), "missing.yaml"), &cfg); err == nil {
		t.Error("expected read error")
	}
}
