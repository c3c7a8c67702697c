package bootstrap

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"kundli/internal/config"
	"kundli/internal/domain"
)

const fixture = `
ayanamsa = 24.0
ascendant = 100.0

[bodies]
sun = { longitude = 10.0, speed = 1.0 }
moon = { longitude = 20.0, speed = 13.0 }
mars = { longitude = 30.0, speed = 0.5 }
mercury = { longitude = 40.0, speed = 1.2 }
jupiter = { longitude = 50.0, speed = 0.1 }
venus = { longitude = 60.0, speed = 1.1 }
saturn = { longitude = 70.0, speed = 0.03 }
rahu = { longitude = 80.0, speed = -0.05 }
`

func baseConfig() config.Config {
	return config.Config{
		Provider:    "meeus",
		Ayanamsa:    "lahiri",
		Timezone:    "+05:30",
		HouseSystem: "w",
		Timeout:     time.Second,
	}
}

func TestNewProvider(t *testing.T) {
	dir := t.TempDir()
	fixturePath := filepath.Join(dir, "fixture.toml")
	if err := os.WriteFile(fixturePath, []byte(fixture), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		provider string
		static   string
		wantName string
		wantErr  bool
	}{
		{"meeus", "meeus", "", "meeus", false},
		{"swetest", "swetest", "", "swetest", false},
		{"static", "static", fixturePath, "static", false},
		{"static missing file", "static", filepath.Join(dir, "nope.toml"), "", true},
		{"unknown", "jpl", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			cfg.Provider = tt.provider
			cfg.StaticFile = tt.static

			p, err := NewProvider(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewProvider() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && p.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", p.Name(), tt.wantName)
			}
		})
	}
}

func TestNewEngine(t *testing.T) {
	cfg := baseConfig()
	cfg.Ayanamsa = "raman"
	p, _ := NewProvider(cfg)

	e, err := NewEngine(cfg, p, NewLogger(io.Discard, false))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if e.Ayanamsa() != domain.AyanamsaRaman {
		t.Errorf("Ayanamsa() = %v", e.Ayanamsa())
	}

	cfg.Ayanamsa = "bogus"
	if _, err := NewEngine(cfg, p, NewLogger(io.Discard, false)); err == nil {
		t.Error("expected error for unknown ayanamsa")
	}
}

func TestBuild_CacheDisabled(t *testing.T) {
	cfg := baseConfig()
	cfg.Cache = false

	app, err := Build(cfg, NewLogger(io.Discard, false))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	defer app.Close()

	if app.Store != nil {
		t.Errorf("Store = %#v, want untyped nil", app.Store)
	}
}

func TestBuild_CacheEnabled(t *testing.T) {
	cfg := baseConfig()
	cfg.Cache = true
	cfg.DBPath = filepath.Join(t.TempDir(), "charts.db")

	app, err := Build(cfg, NewLogger(io.Discard, false))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	defer app.Close()

	if app.Store == nil {
		t.Fatal("expected a chart store")
	}
	if _, err := os.Stat(cfg.DBPath); err != nil {
		t.Errorf("database not created: %v", err)
	}
}

func TestBuild_InstallsDefaultLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	cfg := baseConfig()
	cfg.Cache = false

	app, err := Build(cfg, NewLogger(&buf, false))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	defer app.Close()

	slog.Warn("cache lookup failed", "key", "abc")
	if !strings.Contains(buf.String(), "cache lookup failed") {
		t.Errorf("default logger not installed, output = %q", buf.String())
	}
}

func TestNewLogger_Verbose(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, true).Debug("hello", "k", "v")
	if !strings.Contains(buf.String(), "level=DEBUG") {
		t.Errorf("verbose logger dropped debug record: %q", buf.String())
	}

	buf.Reset()
	NewLogger(&buf, false).Debug("hello")
	if buf.Len() != 0 {
		t.Errorf("quiet logger wrote %q", buf.String())
	}
}
