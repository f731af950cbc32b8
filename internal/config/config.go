package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Paper  PaperConfig  `yaml:"paper"`
	Checks ChecksConfig `yaml:"checks"`
	Report ReportConfig `yaml:"report"`
	Daemon DaemonConfig `yaml:"daemon"`
}

// PaperConfig describes the LaTeX source and how to compile it.
type PaperConfig struct {
	Source    string   `yaml:"source"`               // main .tex file
	OutputDir string   `yaml:"output_dir,omitempty"` // where latexmk places artifacts; empty = source dir
	Latexmk   string   `yaml:"latexmk,omitempty"`    // binary name/path, default "latexmk"
	ExtraArgs []string `yaml:"extra_args,omitempty"` // appended after the standard flags
}

// ChecksConfig configures the validation check pipeline.
type ChecksConfig struct {
	Order       []string          `yaml:"order,omitempty"` // check names in execution order
	DataDir     string            `yaml:"data_dir,omitempty"`
	Tolerance   float64           `yaml:"tolerance,omitempty"` // |F2| below this counts as vanishing
	HealthyBand HealthyBandConfig `yaml:"healthy_band,omitempty"`
	Spin2       Spin2Config       `yaml:"spin2,omitempty"`
}

// HealthyBandConfig is the (P', P'') scan grid at fixed background X0.
type HealthyBandConfig struct {
	X0          float64 `yaml:"x0,omitempty"`
	PprimeMin   float64 `yaml:"pprime_min,omitempty"`
	PprimeMax   float64 `yaml:"pprime_max,omitempty"`
	PprimeStep  float64 `yaml:"pprime_step,omitempty"`
	P2primeMin  float64 `yaml:"p2prime_min,omitempty"`
	P2primeMax  float64 `yaml:"p2prime_max,omitempty"`
	P2primeStep float64 `yaml:"p2prime_step,omitempty"`
}

// Spin2Config is the sample momentum grid for the projector contraction probe.
type Spin2Config struct {
	Q0     float64   `yaml:"q0,omitempty"`
	Omegas []float64 `yaml:"omegas,omitempty"`
	Kxs    []float64 `yaml:"kxs,omitempty"`
	Kys    []float64 `yaml:"kys,omitempty"`
	Kzs    []float64 `yaml:"kzs,omitempty"`
}

// ReportConfig controls where generated tables and summaries land.
type ReportConfig struct {
	ResultsDir string `yaml:"results_dir,omitempty"`
}

// DaemonConfig configures watch mode. Duration fields are strings in
// time.ParseDuration format; Validate resolves them into the Parsed* fields.
type DaemonConfig struct {
	Listen        string     `yaml:"listen,omitempty"`
	Watch         []string   `yaml:"watch,omitempty"` // glob patterns relative to working dir
	Debounce      string     `yaml:"debounce,omitempty"`
	CheckInterval string     `yaml:"check_interval,omitempty"` // "0" disables scheduled check runs
	Metrics       bool       `yaml:"metrics"`
	StorePath     string     `yaml:"store_path,omitempty"` // sqlite run ledger; empty = in-memory
	NATS          NATSConfig `yaml:"nats,omitempty"`

	ParsedDebounce      time.Duration `yaml:"-"`
	ParsedCheckInterval time.Duration `yaml:"-"`
}

// NATSConfig configures optional run event publishing.
type NATSConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// Load loads configuration from the specified file, applying .env files,
// defaults, and validation.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s", configPath)
		}
		return nil, fmt.Errorf("read configuration: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a fully-defaulted configuration without reading any file.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	// Defaults always validate; this resolves the parsed duration fields.
	_ = cfg.Validate()
	return cfg
}
