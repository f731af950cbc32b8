package config

// Check names recognized by the pipeline, in their canonical order.
const (
	CheckHealthyBand    = "healthy-band"
	CheckSpin2Structure = "spin2-structure"
)

// DefaultCheckOrder is the fixed order used when the config does not override it.
var DefaultCheckOrder = []string{CheckHealthyBand, CheckSpin2Structure}

const (
	defaultSource        = "main.tex"
	defaultLatexmk       = "latexmk"
	defaultDataDir       = "data"
	defaultResultsDir    = "results"
	defaultTolerance     = 1e-12
	defaultListen        = ":8787"
	defaultDebounce      = "2s"
	defaultCheckInterval = "1h"
	defaultNATSSubject   = "paperbuild.runs"
)

func (c *Config) applyDefaults() {
	if c.Paper.Source == "" {
		c.Paper.Source = defaultSource
	}
	if c.Paper.Latexmk == "" {
		c.Paper.Latexmk = defaultLatexmk
	}

	if len(c.Checks.Order) == 0 {
		c.Checks.Order = append([]string(nil), DefaultCheckOrder...)
	}
	if c.Checks.DataDir == "" {
		c.Checks.DataDir = defaultDataDir
	}
	if c.Checks.Tolerance <= 0 {
		c.Checks.Tolerance = defaultTolerance
	}
	c.Checks.HealthyBand.applyDefaults()
	c.Checks.Spin2.applyDefaults()

	if c.Report.ResultsDir == "" {
		c.Report.ResultsDir = defaultResultsDir
	}

	if c.Daemon.Listen == "" {
		c.Daemon.Listen = defaultListen
	}
	if len(c.Daemon.Watch) == 0 {
		c.Daemon.Watch = []string{"*.tex"}
	}
	if c.Daemon.Debounce == "" {
		c.Daemon.Debounce = defaultDebounce
	}
	if c.Daemon.CheckInterval == "" {
		c.Daemon.CheckInterval = defaultCheckInterval
	}
	if c.Daemon.NATS.Subject == "" {
		c.Daemon.NATS.Subject = defaultNATSSubject
	}
}

func (h *HealthyBandConfig) applyDefaults() {
	if h.X0 == 0 {
		h.X0 = 1.0
	}
	if h.PprimeMin == 0 && h.PprimeMax == 0 {
		h.PprimeMin, h.PprimeMax = -2.0, 2.0
	}
	if h.PprimeStep == 0 {
		h.PprimeStep = 0.1
	}
	if h.P2primeMin == 0 && h.P2primeMax == 0 {
		h.P2primeMin, h.P2primeMax = -2.0, 2.0
	}
	if h.P2primeStep == 0 {
		h.P2primeStep = 0.1
	}
}

func (s *Spin2Config) applyDefaults() {
	if s.Q0 == 0 {
		s.Q0 = 1.0
	}
	if len(s.Omegas) == 0 {
		s.Omegas = []float64{0.5, 1.0, 1.5, 2.0}
	}
	if len(s.Kxs) == 0 {
		s.Kxs = []float64{0.5, 1.0, 1.5}
	}
	if len(s.Kys) == 0 {
		s.Kys = []float64{0.0}
	}
	if len(s.Kzs) == 0 {
		s.Kzs = []float64{0.0}
	}
}
