package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"pipe-stock/internal/stock/model"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir()) // без .env
	for _, k := range []string{"PORT", "HOST", "NEAREST_THICKNESS", "DATA_DIR", "WEIGHT_FILE", "STOCK_GLOB", "STOCK_UNIT", "STOCK_CONFIG", "REFRESH_INTERVAL", "ALLOW_ORIGINS"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr() != "127.0.0.1:8082" {
		t.Fatalf("addr=%s", cfg.Addr())
	}
	if cfg.StockUnit != model.UnitTons || cfg.RefreshInterval != time.Minute {
		t.Fatalf("unit=%s interval=%v", cfg.StockUnit, cfg.RefreshInterval)
	}
	if cfg.Datasets.Stock.Path != filepath.Join("data", "stock_*.xlsx") || cfg.Datasets.Weight.Path != "" {
		t.Fatalf("datasets=%+v", cfg.Datasets)
	}
	if len(cfg.AllowOrigins) != 1 || cfg.AllowOrigins[0] != "*" {
		t.Fatalf("origins=%v", cfg.AllowOrigins)
	}
	if !cfg.NearestThickness || cfg.EngineOptions().ExactThickness {
		t.Fatalf("nearest thickness must be on by default: %+v", cfg.EngineOptions())
	}
}

func TestLoadEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("STOCK_UNIT", "MT")
	t.Setenv("NEAREST_THICKNESS", "no")
	t.Setenv("REFRESH_INTERVAL", "30")
	t.Setenv("DENSITY_KG_M3", "7850")
	t.Setenv("PIPE_LENGTH_M", "12")
	t.Setenv("MASS_FACTOR", "")
	t.Setenv("STOCK_CONFIG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 9000 || cfg.NearestThickness || cfg.RefreshInterval != 30*time.Second {
		t.Fatalf("cfg=%+v", cfg)
	}
	opt := cfg.EngineOptions()
	if opt.MassFactor < 0.0941 || opt.MassFactor > 0.0943 || !opt.ExactThickness {
		t.Fatalf("opt=%+v", opt)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	yml := `datasets:
  weight:
    path: weights.xlsx
    header_row: 2
  stock:
    path: /srv/stock/daily_*.csv
    category: item|size
`
	p := filepath.Join(dir, "stock.yaml")
	if err := os.WriteFile(p, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STOCK_CONFIG", p)
	t.Setenv("DATA_DIR", "in")
	t.Setenv("WIDTH_FILE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	ds := cfg.Datasets
	if ds.Weight.Path != filepath.Join("in", "weights.xlsx") || ds.Weight.HeaderRow != 2 {
		t.Fatalf("weight=%+v", ds.Weight)
	}
	if ds.Stock.Path != "/srv/stock/daily_*.csv" || ds.Stock.Category != "item|size" {
		t.Fatalf("stock=%+v", ds.Stock)
	}
	if ds.Width.Path != filepath.Join("in", "strip_width.xlsx") {
		t.Fatalf("width=%+v", ds.Width)
	}
}

func TestLoadOverlayMissing(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STOCK_CONFIG", "nope.yaml")
	if _, err := Load(); err == nil {
		t.Fatal("expected error")
	}
}

// chdir: аналог t.Chdir (Go 1.24+) для более старых тулчейнов.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
