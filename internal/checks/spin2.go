package checks

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"git.home.luguber.info/inful/paperbuild/internal/config"
	"git.home.luguber.info/inful/paperbuild/internal/physics"
)

// Spin2File is the CSV artifact written by the spin2-structure check.
const Spin2File = "spin2_F2_samples.csv"

// Spin2Check numerically probes the spin-2 projector contraction F2(q,k) for
// timelike q and the configured sample momenta, writing the samples as CSV.
// The check fails when a sample is non-finite or F2 vanishes within
// tolerance: the contraction must be nonzero with a definite sign per sample.
type Spin2Check struct {
	Grid      physics.Spin2Grid
	DataDir   string
	Tolerance float64
}

// NewSpin2Check builds the check from configuration.
func NewSpin2Check(cfg config.ChecksConfig) *Spin2Check {
	return &Spin2Check{
		Grid: physics.Spin2Grid{
			Q0:     cfg.Spin2.Q0,
			Omegas: cfg.Spin2.Omegas,
			Kxs:    cfg.Spin2.Kxs,
			Kys:    cfg.Spin2.Kys,
			Kzs:    cfg.Spin2.Kzs,
		},
		DataDir:   cfg.DataDir,
		Tolerance: cfg.Tolerance,
	}
}

func (c *Spin2Check) Name() string { return config.CheckSpin2Structure }

func (c *Spin2Check) Run(ctx context.Context) (Result, error) {
	samples, err := physics.Spin2Samples(c.Grid)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	for _, s := range samples {
		if math.IsNaN(s.F2) || math.IsInf(s.F2, 0) {
			return Result{}, fmt.Errorf("non-finite F2 at omega=%g kx=%g ky=%g kz=%g", s.Omega, s.Kx, s.Ky, s.Kz)
		}
		if math.Abs(s.F2) < c.Tolerance {
			return Result{}, fmt.Errorf("F2 vanishes at omega=%g kx=%g ky=%g kz=%g (|F2|=%g below tolerance %g)",
				s.Omega, s.Kx, s.Ky, s.Kz, math.Abs(s.F2), c.Tolerance)
		}
	}

	outPath := filepath.Join(c.DataDir, Spin2File)
	if err := writeSpin2CSV(outPath, samples); err != nil {
		return Result{}, err
	}

	pos, neg := physics.SignCounts(samples)
	summary := fmt.Sprintf("Wrote %d spin-2 projector samples to %s\nF2>0 in %d samples, F2<0 in %d samples.",
		len(samples), outPath, pos, neg)
	return Result{
		Summary:   summary,
		Artifacts: []string{outPath},
	}, nil
}

func writeSpin2CSV(path string, samples []physics.Spin2Sample) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"omega", "kx", "ky", "kz", "k2", "F2"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, s := range samples {
		record := []string{
			formatFloat(s.Omega),
			formatFloat(s.Kx),
			formatFloat(s.Ky),
			formatFloat(s.Kz),
			formatFloat(s.K2),
			formatFloat(s.F2),
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

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
