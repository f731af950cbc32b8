package checks

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"git.home.luguber.info/inful/paperbuild/internal/config"
	"git.home.luguber.info/inful/paperbuild/internal/physics"
)

// HealthyBandFile is the CSV artifact written by the healthy-band check.
const HealthyBandFile = "healthy_band_scan.csv"

// HealthyBandCheck scans the (P', P'') grid for the healthy band and writes
// the scan as CSV. The check fails when no grid point satisfies both
// stability conditions.
type HealthyBandCheck struct {
	Grid    physics.BandScanGrid
	DataDir string
}

// NewHealthyBandCheck builds the check from configuration.
func NewHealthyBandCheck(cfg config.ChecksConfig) *HealthyBandCheck {
	return &HealthyBandCheck{
		Grid: physics.BandScanGrid{
			X0:          cfg.HealthyBand.X0,
			PprimeMin:   cfg.HealthyBand.PprimeMin,
			PprimeMax:   cfg.HealthyBand.PprimeMax,
			PprimeStep:  cfg.HealthyBand.PprimeStep,
			P2primeMin:  cfg.HealthyBand.P2primeMin,
			P2primeMax:  cfg.HealthyBand.P2primeMax,
			P2primeStep: cfg.HealthyBand.P2primeStep,
		},
		DataDir: cfg.DataDir,
	}
}

func (c *HealthyBandCheck) Name() string { return config.CheckHealthyBand }

func (c *HealthyBandCheck) Run(ctx context.Context) (Result, error) {
	points := physics.ScanHealthyBand(c.Grid)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	healthy := physics.CountHealthy(points)
	if healthy == 0 {
		return Result{}, fmt.Errorf("no healthy band: none of %d scanned points satisfy both stability conditions", len(points))
	}

	outPath := filepath.Join(c.DataDir, HealthyBandFile)
	if err := writeBandCSV(outPath, points); err != nil {
		return Result{}, err
	}

	return Result{
		Summary:   fmt.Sprintf("Written healthy-band scan to %s (%d points, %d healthy)", outPath, len(points), healthy),
		Artifacts: []string{outPath},
	}, nil
}

func writeBandCSV(path string, points []physics.BandPoint) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Pprime", "P2prime", "Zs", "Zt", "cs2", "ghost_ok", "grad_ok"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range points {
		cs2 := ""
		if p.HasCs2 {
			cs2 = strconv.FormatFloat(p.Cs2, 'f', 3, 64)
		}
		record := []string{
			strconv.FormatFloat(p.Pprime, 'f', 3, 64),
			strconv.FormatFloat(p.P2prime, 'f', 3, 64),
			strconv.FormatFloat(p.Zs, 'f', 3, 64),
			strconv.FormatFloat(p.Zt, 'f', 3, 64),
			cs2,
			boolFlag(p.GhostOK),
			boolFlag(p.GradOK),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
