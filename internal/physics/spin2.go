package physics

import (
	"errors"
	"math"
)

// Spin2Sample is one evaluation of the spin-2 projector contraction
// F2(q,k) = P^{(2) mu nu rho sigma} N_{mu nu rho sigma} for a sample momentum.
type Spin2Sample struct {
	Omega float64
	Kx    float64
	Ky    float64
	Kz    float64
	K2    float64
	F2    float64
}

// Spin2Grid describes the sample momenta probed against a fixed timelike q.
type Spin2Grid struct {
	Q0     float64
	Omegas []float64
	Kxs    []float64
	Kys    []float64
	Kzs    []float64
}

// DefaultSpin2Grid matches the sample set documented in Appendix C of the paper.
func DefaultSpin2Grid() Spin2Grid {
	return Spin2Grid{
		Q0:     1.0,
		Omegas: []float64{0.5, 1.0, 1.5, 2.0},
		Kxs:    []float64{0.5, 1.0, 1.5},
		Kys:    []float64{0.0},
		Kzs:    []float64{0.0},
	}
}

// sampleK2Epsilon skips sample momenta whose k^2 sits too close to the light cone.
const sampleK2Epsilon = 1e-8

// ErrNoSamples is returned when every grid point was skipped (lightlike or
// projector-singular momenta).
var ErrNoSamples = errors.New("no spin-2 samples produced")

// Spin2Samples evaluates F2 over the grid for q = (Q0, 0, 0, 0). Grid points
// with |k^2| below threshold or a singular projector are skipped.
func Spin2Samples(grid Spin2Grid) ([]Spin2Sample, error) {
	q := Vec4{grid.Q0, 0, 0, 0}
	var samples []Spin2Sample
	for _, omega := range grid.Omegas {
		for _, kx := range grid.Kxs {
			for _, ky := range grid.Kys {
				for _, kz := range grid.Kzs {
					k := Vec4{omega, kx, ky, kz}
					k2 := MinkowskiSquare(k)
					if math.Abs(k2) < sampleK2Epsilon {
						continue
					}
					p2, err := SpinTwoProjector(k)
					if err != nil {
						continue
					}
					f2 := Contract(p2, SourceTensor(q, k))
					samples = append(samples, Spin2Sample{
						Omega: omega,
						Kx:    kx,
						Ky:    ky,
						Kz:    kz,
						K2:    k2,
						F2:    f2,
					})
				}
			}
		}
	}
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	return samples, nil
}

// SignCounts returns how many samples have F2 strictly positive and strictly negative.
func SignCounts(samples []Spin2Sample) (pos, neg int) {
	for _, s := range samples {
		switch {
		case s.F2 > 0:
			pos++
		case s.F2 < 0:
			neg++
		}
	}
	return pos, neg
}
