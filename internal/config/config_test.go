package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	tempoerrors "github.com/tempo-ui/tempo/internal/errors"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Serve.Addr != DefaultAddr {
		t.Errorf("addr %q", cfg.Serve.Addr)
	}
	if cfg.Serve.FlushCap != DefaultFlushCap {
		t.Errorf("flush cap %d", cfg.Serve.FlushCap)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("log defaults %+v", cfg.Log)
	}
}

func TestLoadPartialConfigFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"name": "demo", "serve": {"addr": ":9000"}}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Name != "demo" {
		t.Errorf("name %q", cfg.Name)
	}
	if cfg.Serve.Addr != ":9000" {
		t.Errorf("addr %q", cfg.Serve.Addr)
	}
	if cfg.Serve.FlushCap != DefaultFlushCap {
		t.Errorf("flush cap not defaulted: %d", cfg.Serve.FlushCap)
	}
	if cfg.Metrics.Namespace != DefaultMetricsNamespace {
		t.Errorf("namespace not defaulted: %q", cfg.Metrics.Namespace)
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"serve": {`)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected error")
	}
	var te *tempoerrors.TempoError
	if !stderrors.As(err, &te) || te.Code != "T101" {
		t.Errorf("expected T101, got %v", err)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name, content string
	}{
		{"negative flush cap", `{"serve": {"flushCap": -1}}`},
		{"bad log level", `{"log": {"level": "loud"}}`},
		{"bad log format", `{"log": {"format": "xml"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tc.content)

			_, err := Load(dir)
			var te *tempoerrors.TempoError
			if !stderrors.As(err, &te) || te.Code != "T102" {
				t.Errorf("expected T102, got %v", err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Name = "roundtrip"
	cfg.Serve.Addr = ":7070"
	cfg.Metrics.Enabled = true

	if err := cfg.Save(dir); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Name != "roundtrip" || loaded.Serve.Addr != ":7070" || !loaded.Metrics.Enabled {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}
