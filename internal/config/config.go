package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"pipe-stock/internal/stock/model"
	"pipe-stock/internal/stock/service"
	"pipe-stock/internal/stock/table"
)

// Dataset: откуда и как читать одну таблицу.
// Для остатков Path: glob ("stock_*.xlsx"), берется самый свежий файл.
type Dataset struct {
	Path         string `yaml:"path"`
	table.Layout `yaml:",inline"`
}

type Datasets struct {
	Weight Dataset `yaml:"weight"` // может отсутствовать
	Width  Dataset `yaml:"width"`
	Stock  Dataset `yaml:"stock"`
}

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	MaxBodyMB    int
	LogFile      string

	DataDir  string
	Datasets Datasets

	StockUnit        model.Unit
	MassFactor       float64
	DensityKgM3      float64
	PipeLengthM      float64
	NearestThickness bool
	EnableFuzzy      bool
	FuzzyThreshold   float64
	WeightTolerance  float64

	RefreshInterval time.Duration
	RateLimitRPS    float64
	RateLimitBurst  int
}

// Load читает .env (если есть) и переменные окружения; YAML из STOCK_CONFIG накладывается поверх датасетов.
func Load() (Config, error) {
	_ = godotenv.Load()

	dataDir := getenv("DATA_DIR", "data")
	cfg := Config{
		Host:         getenv("HOST", "127.0.0.1"),
		Port:         getEnvInt("PORT", 8082),
		AllowOrigins: splitCSV(getenv("ALLOW_ORIGINS", "*")),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		MaxBodyMB:    getEnvInt("MAX_BODY_MB", 16),
		LogFile:      getenv("LOG_FILE", "logs/pipe-stock.log"),

		DataDir: dataDir,
		Datasets: Datasets{
			Weight: Dataset{Path: dataPath(dataDir, getenv("WEIGHT_FILE", ""))},
			Width:  Dataset{Path: dataPath(dataDir, getenv("WIDTH_FILE", "strip_width.xlsx"))},
			Stock:  Dataset{Path: dataPath(dataDir, getenv("STOCK_GLOB", "stock_*.xlsx"))},
		},

		StockUnit:        model.ParseUnit(getenv("STOCK_UNIT", "tons")),
		MassFactor:       getEnvFloat("MASS_FACTOR", 0),
		DensityKgM3:      getEnvFloat("DENSITY_KG_M3", 0),
		PipeLengthM:      getEnvFloat("PIPE_LENGTH_M", 0),
		NearestThickness: getEnvBool("NEAREST_THICKNESS", true),
		EnableFuzzy:      getEnvBool("ENABLE_FUZZY", false),
		FuzzyThreshold:   getEnvFloat("FUZZY_THRESHOLD", 0.83),
		WeightTolerance:  getEnvFloat("WEIGHT_TOLERANCE", 0),

		RefreshInterval: getEnvDuration("REFRESH_INTERVAL", time.Minute),
		RateLimitRPS:    getEnvFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst:  getEnvInt("RATE_LIMIT_BURST", 40),
	}

	if p := getenv("STOCK_CONFIG", ""); p != "" {
		if err := cfg.overlay(p); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// overlay накладывает YAML-файл с описанием датасетов; заданные поля заменяют значения из окружения.
func (c *Config) overlay(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	var doc struct {
		Datasets Datasets `yaml:"datasets"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	c.Datasets.Weight = mergeDataset(c.Datasets.Weight, doc.Datasets.Weight, c.DataDir)
	c.Datasets.Width = mergeDataset(c.Datasets.Width, doc.Datasets.Width, c.DataDir)
	c.Datasets.Stock = mergeDataset(c.Datasets.Stock, doc.Datasets.Stock, c.DataDir)
	return nil
}

func mergeDataset(base, over Dataset, dir string) Dataset {
	if over.Path != "" {
		base.Path = dataPath(dir, over.Path)
	}
	if over.HeaderRow > 0 {
		base.HeaderRow = over.HeaderRow
	}
	if over.Category != "" {
		base.Category = over.Category
	}
	if over.Value != "" {
		base.Value = over.Value
	}
	return base
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// EngineOptions собирает настройки движка. K из MASS_FACTOR, иначе из плотности и длины трубы.
func (c Config) EngineOptions() model.Options {
	return model.Options{
		StockUnit:       c.StockUnit,
		MassFactor:      c.massFactor(),
		ExactThickness:  !c.NearestThickness,
		EnableFuzzy:     c.EnableFuzzy,
		FuzzyThreshold:  c.FuzzyThreshold,
		WeightTolerance: c.WeightTolerance,
	}
}

func (c Config) massFactor() float64 {
	if c.MassFactor > 0 {
		return c.MassFactor
	}
	if c.DensityKgM3 > 0 || c.PipeLengthM > 0 {
		d, l := c.DensityKgM3, c.PipeLengthM
		if d <= 0 {
			d = service.DefaultDensity
		}
		if l <= 0 {
			l = service.DefaultLength
		}
		return service.MassFactorFor(d, l)
	}
	return 0 // движок подставит значение по умолчанию
}

func dataPath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) || dir == "" {
		return p
	}
	return filepath.Join(dir, p)
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	v, err := strconv.Atoi(getenv(k, ""))
	if err != nil {
		return def
	}
	return v
}

func getEnvFloat(k string, def float64) float64 {
	v, err := strconv.ParseFloat(getenv(k, ""), 64)
	if err != nil {
		return def
	}
	return v
}

func getEnvBool(k string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(getenv(k, ""))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}

func getEnvDuration(k string, def time.Duration) time.Duration {
	v := getenv(k, "")
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	// голое число: секунды
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}
