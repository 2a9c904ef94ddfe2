// Package config loads service settings from the environment and an optional
// YAML file of optimizer tunables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"logistics-route-service/internal/forecast"
	"logistics-route-service/internal/genetic"
	"logistics-route-service/internal/geo"
	"logistics-route-service/internal/search"
)

type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string
	SeedPath    string

	// OptimizerFile is the YAML overlay path. A missing file is not an error.
	OptimizerFile string

	// OptimizeTimeout is the ceiling for a single optimization request.
	OptimizeTimeout time.Duration

	RateRPS   float64
	RateBurst int

	Optimizer Optimizer
}

type Optimizer struct {
	SpeedKmh           float64        `yaml:"speed_kmh"`
	StopServiceMinutes float64        `yaml:"stop_service_minutes"`
	AStar              AStar          `yaml:"astar"`
	Forecast           Forecast       `yaml:"forecast"`
	Genetic            genetic.Config `yaml:"genetic"`
}

type AStar struct {
	HeuristicWeight float64 `yaml:"heuristic_weight"`
}

type Forecast struct {
	Window int `yaml:"window"`
}

func DefaultOptimizer() Optimizer {
	return Optimizer{
		SpeedKmh:           geo.DefaultSpeedKmh,
		StopServiceMinutes: 15,
		AStar:              AStar{HeuristicWeight: search.DefaultHeuristicWeight},
		Forecast:           Forecast{Window: forecast.DefaultWindow},
		Genetic:            genetic.DefaultConfig(),
	}
}

// StopServiceTime is the time spent at each delivery stop.
func (o Optimizer) StopServiceTime() time.Duration {
	return time.Duration(o.StopServiceMinutes * float64(time.Minute))
}

// Load reads defaults, then the YAML overlay, then environment overrides.
func Load() (Config, error) {
	cfg := Config{
		Port:            Get("PORT", "8080"),
		DatabaseURL:     Get("DATABASE_URL", ""),
		RedisURL:        Get("REDIS_URL", ""),
		SeedPath:        Get("SEED_PATH", "data/seeds/catalog.json"),
		OptimizerFile:   Get("OPTIMIZER_CONFIG", "configs/optimizer.yaml"),
		OptimizeTimeout: getDurationEnv("OPTIMIZE_TIMEOUT", 10*time.Second),
		RateRPS:         getFloatEnv("RATE_RPS", 20),
		RateBurst:       getIntEnv("RATE_BURST", 40),
		Optimizer:       DefaultOptimizer(),
	}

	if err := loadOptimizerFile(cfg.OptimizerFile, &cfg.Optimizer); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	cfg.Optimizer.SpeedKmh = getFloatEnv("AVERAGE_SPEED_KMH", cfg.Optimizer.SpeedKmh)
	cfg.Optimizer.StopServiceMinutes = getFloatEnv("STOP_SERVICE_MINUTES", cfg.Optimizer.StopServiceMinutes)
	cfg.Optimizer.Forecast.Window = getIntEnv("FORECAST_WINDOW", cfg.Optimizer.Forecast.Window)
	cfg.Optimizer.Genetic.Seed = int64(getIntEnv("GENETIC_SEED", int(cfg.Optimizer.Genetic.Seed)))

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// LoadOptimizer reads only the optimizer tunables from a YAML file.
func LoadOptimizer(path string) (Optimizer, error) {
	opt := DefaultOptimizer()
	if err := loadOptimizerFile(path, &opt); err != nil {
		return Optimizer{}, err
	}
	if err := opt.Validate(); err != nil {
		return Optimizer{}, err
	}
	return opt, nil
}

func loadOptimizerFile(path string, opt *Optimizer) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("optimizer config not found path=%s (using defaults)", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read optimizer config %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, opt); err != nil {
		return fmt.Errorf("parse optimizer config %q: %w", path, err)
	}
	return nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("PORT must not be empty")
	}
	if c.OptimizeTimeout <= 0 {
		return fmt.Errorf("OPTIMIZE_TIMEOUT must be positive, got %v", c.OptimizeTimeout)
	}
	if c.RateRPS <= 0 || c.RateBurst <= 0 {
		return fmt.Errorf("RATE_RPS and RATE_BURST must be positive, got %v and %d", c.RateRPS, c.RateBurst)
	}
	return c.Optimizer.Validate()
}

func (o Optimizer) Validate() error {
	if o.SpeedKmh <= 0 {
		return fmt.Errorf("speed_kmh must be positive, got %v", o.SpeedKmh)
	}
	if o.StopServiceMinutes < 0 {
		return fmt.Errorf("stop_service_minutes must not be negative, got %v", o.StopServiceMinutes)
	}
	if o.AStar.HeuristicWeight < 0 {
		return fmt.Errorf("astar.heuristic_weight must not be negative, got %v", o.AStar.HeuristicWeight)
	}
	if o.Forecast.Window < 1 {
		return fmt.Errorf("forecast.window must be at least 1, got %d", o.Forecast.Window)
	}
	return o.Genetic.WithDefaults().Validate()
}

// Get reads an environment variable or returns fallback when it is unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: invalid int key=%s value=%q (using %d)", key, v, fallback)
		return fallback
	}
	return n
}

func getFloatEnv(key string, fallback float64) float64 {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("config: invalid float key=%s value=%q (using %v)", key, v, fallback)
		return fallback
	}
	return f
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: invalid duration key=%s value=%q (using %v)", key, v, fallback)
		return fallback
	}
	return d
}
