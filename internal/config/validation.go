package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks the configuration after defaults have been applied.
func (c *Config) Validate() error {
	if !strings.HasSuffix(c.Paper.Source, ".tex") {
		return fmt.Errorf("paper.source must be a .tex file, got %q", c.Paper.Source)
	}

	known := map[string]bool{
		CheckHealthyBand:    true,
		CheckSpin2Structure: true,
	}
	seen := map[string]bool{}
	for _, name := range c.Checks.Order {
		if !known[name] {
			return fmt.Errorf("unknown check %q in checks.order", name)
		}
		if seen[name] {
			return fmt.Errorf("duplicate check %q in checks.order", name)
		}
		seen[name] = true
	}

	if c.Checks.HealthyBand.PprimeStep <= 0 || c.Checks.HealthyBand.P2primeStep <= 0 {
		return fmt.Errorf("healthy_band scan steps must be positive")
	}
	if c.Checks.HealthyBand.PprimeMax < c.Checks.HealthyBand.PprimeMin {
		return fmt.Errorf("healthy_band pprime range is inverted")
	}
	if c.Checks.HealthyBand.P2primeMax < c.Checks.HealthyBand.P2primeMin {
		return fmt.Errorf("healthy_band p2prime range is inverted")
	}
	if c.Checks.HealthyBand.X0 <= 0 {
		return fmt.Errorf("healthy_band x0 must be positive")
	}
	if c.Checks.Spin2.Q0 == 0 {
		return fmt.Errorf("spin2 q0 must be nonzero (q must be timelike)")
	}

	debounce, err := time.ParseDuration(c.Daemon.Debounce)
	if err != nil {
		return fmt.Errorf("daemon.debounce: %w", err)
	}
	if debounce <= 0 {
		return fmt.Errorf("daemon.debounce must be positive, got %s", c.Daemon.Debounce)
	}
	c.Daemon.ParsedDebounce = debounce

	interval, err := time.ParseDuration(c.Daemon.CheckInterval)
	if err != nil {
		return fmt.Errorf("daemon.check_interval: %w", err)
	}
	if interval < 0 {
		return fmt.Errorf("daemon.check_interval cannot be negative, got %s", c.Daemon.CheckInterval)
	}
	c.Daemon.ParsedCheckInterval = interval

	if c.Daemon.NATS.Enabled && c.Daemon.NATS.URL == "" {
		return fmt.Errorf("daemon.nats.url is required when NATS publishing is enabled")
	}
	return nil
}
