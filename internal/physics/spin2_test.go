package physics

import (
	"errors"
	"math"
	"testing"
)

func TestSpin2SamplesDefaultGrid(t *testing.T) {
	samples, err := Spin2Samples(DefaultSpin2Grid())
	if err != nil {
		t.Fatalf("spin2 samples: %v", err)
	}

	// 4x3 grid points, of which three sit on the light cone and are skipped:
	// (0.5,0.5), (1.0,1.0), (1.5,1.5).
	if len(samples) != 9 {
		t.Fatalf("expected 9 samples, got %d", len(samples))
	}

	pos, neg := SignCounts(samples)
	if pos != 9 || neg != 0 {
		t.Fatalf("expected definite positive sign, got pos=%d neg=%d", pos, neg)
	}

	for _, s := range samples {
		if math.IsNaN(s.F2) || math.IsInf(s.F2, 0) {
			t.Fatalf("non-finite F2 at omega=%g kx=%g", s.Omega, s.Kx)
		}
		wantK2 := -s.Omega*s.Omega + s.Kx*s.Kx + s.Ky*s.Ky + s.Kz*s.Kz
		if !almostEqual(s.K2, wantK2, 1e-12) {
			t.Errorf("k2 mismatch at omega=%g kx=%g: got %g want %g", s.Omega, s.Kx, s.K2, wantK2)
		}
	}
}

func TestSpin2SamplesKnownValues(t *testing.T) {
	samples, err := Spin2Samples(DefaultSpin2Grid())
	if err != nil {
		t.Fatalf("spin2 samples: %v", err)
	}

	want := map[[2]float64]float64{
		{1.0, 0.5}: 1.1851851851851847,
		{0.5, 1.0}: 4.74074074074074,
		{1.5, 1.0}: 15.36,
		{2.0, 1.5}: 70.53061224489795,
	}
	found := 0
	for _, s := range samples {
		if f2, ok := want[[2]float64{s.Omega, s.Kx}]; ok {
			found++
			if !almostEqual(s.F2, f2, 1e-9) {
				t.Errorf("F2(omega=%g, kx=%g): got %v want %v", s.Omega, s.Kx, s.F2, f2)
			}
		}
	}
	if found != len(want) {
		t.Fatalf("expected %d reference samples in grid, found %d", len(want), found)
	}
}

func TestSpin2SamplesEmptyGrid(t *testing.T) {
	// Every point lightlike: all skipped.
	grid := Spin2Grid{
		Q0:     1.0,
		Omegas: []float64{1.0},
		Kxs:    []float64{1.0},
		Kys:    []float64{0.0},
		Kzs:    []float64{0.0},
	}
	_, err := Spin2Samples(grid)
	if !errors.Is(err, ErrNoSamples) {
		t.Fatalf("expected ErrNoSamples, got %v", err)
	}
}
