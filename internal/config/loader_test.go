package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte(`
animation:
  removal_ticks: 12
autoplay:
  strategy: "random"
  max_ticks: 500
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Animation.RemovalTicks != 12 {
		t.Errorf("removal ticks = %d, want 12", cfg.Animation.RemovalTicks)
	}
	if cfg.Autoplay.Strategy != "random" || cfg.Autoplay.MaxTicks != 500 {
		t.Errorf("autoplay = %+v, want random/500", cfg.Autoplay)
	}

	// Unset fields fall back to defaults.
	def := DefaultConfig()
	if cfg.Animation.TransferTicks != def.Animation.TransferTicks {
		t.Errorf("transfer ticks = %d, want default %d",
			cfg.Animation.TransferTicks, def.Animation.TransferTicks)
	}
	if cfg.UI.TickRate != def.UI.TickRate {
		t.Errorf("tick rate = %d, want default %d", cfg.UI.TickRate, def.UI.TickRate)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Load with missing custom path succeeded, want error")
	}
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	if len(GetDefaultYAML()) == 0 {
		t.Fatal("embedded default YAML is empty")
	}

	def := DefaultConfig()
	if def.Animation.RemovalTicks <= 0 || def.Autoplay.MaxTicks <= 0 ||
		def.UI.TickRate <= 0 || def.Server.Port <= 0 {
		t.Errorf("hardcoded defaults incomplete: %+v", def)
	}
}
