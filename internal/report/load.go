// Package report turns the CSV artifacts written by the check pipeline into
// LaTeX statistics tables and a rendered run summary.
package report

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
)

// BandStats summarizes the healthy-band scan CSV.
type BandStats struct {
	Total    int
	Stable   int
	Fraction float64
}

// Spin2Stats summarizes the spin-2 sample CSV.
type Spin2Stats struct {
	Total int
	Pos   int
	Neg   int
	Zero  int // |F2| < 1e-12
	Min   float64
	Max   float64
	Mean  float64
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s not found: run `paperbuild check` first", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("%s is empty", path)
	}
	return records, nil
}

func column(header []string, name string) (int, error) {
	for i, h := range header {
		if h == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("column %q missing", name)
}

// LoadBandStats reads the healthy-band scan CSV and computes its summary.
func LoadBandStats(path string) (BandStats, error) {
	records, err := readCSV(path)
	if err != nil {
		return BandStats{}, err
	}

	ghostIdx, err := column(records[0], "ghost_ok")
	if err != nil {
		return BandStats{}, fmt.Errorf("%s: %w", path, err)
	}
	gradIdx, err := column(records[0], "grad_ok")
	if err != nil {
		return BandStats{}, fmt.Errorf("%s: %w", path, err)
	}

	stats := BandStats{}
	for _, rec := range records[1:] {
		stats.Total++
		if rec[ghostIdx] == "1" && rec[gradIdx] == "1" {
			stats.Stable++
		}
	}
	if stats.Total > 0 {
		stats.Fraction = float64(stats.Stable) / float64(stats.Total)
	} else {
		stats.Fraction = math.NaN()
	}
	return stats, nil
}

// LoadSpin2Stats reads the spin-2 sample CSV and computes its summary.
func LoadSpin2Stats(path string) (Spin2Stats, error) {
	records, err := readCSV(path)
	if err != nil {
		return Spin2Stats{}, err
	}

	f2Idx, err := column(records[0], "F2")
	if err != nil {
		return Spin2Stats{}, fmt.Errorf("%s: %w", path, err)
	}

	stats := Spin2Stats{Min: math.Inf(1), Max: math.Inf(-1)}
	sum := 0.0
	for _, rec := range records[1:] {
		f2, err := strconv.ParseFloat(rec[f2Idx], 64)
		if err != nil {
			return Spin2Stats{}, fmt.Errorf("%s: bad F2 value %q: %w", path, rec[f2Idx], err)
		}
		stats.Total++
		sum += f2
		switch {
		case math.Abs(f2) < 1e-12:
			stats.Zero++
		case f2 > 0:
			stats.Pos++
		default:
			stats.Neg++
		}
		stats.Min = math.Min(stats.Min, f2)
		stats.Max = math.Max(stats.Max, f2)
	}
	if stats.Total == 0 {
		return Spin2Stats{}, fmt.Errorf("%s contains no samples", path)
	}
	stats.Mean = sum / float64(stats.Total)
	return stats, nil
}
