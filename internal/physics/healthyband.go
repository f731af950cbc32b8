package physics

// BandPoint is a single grid point of the healthy-band scan with its
// stability diagnostics:
//
//	Zs  = P'(X0)
//	Zt  = P'(X0) + 2 X0 P''(X0)
//	cs2 = Zs / Zt (defined only when Zt > 0)
type BandPoint struct {
	Pprime  float64
	P2prime float64
	Zs      float64
	Zt      float64
	Cs2     float64
	HasCs2  bool
	GhostOK bool // Zt > 0
	GradOK  bool // Zs > 0
}

// Healthy reports whether the point sits inside the healthy band.
func (p BandPoint) Healthy() bool { return p.GhostOK && p.GradOK }

// BandScanGrid describes the (P', P'') grid scanned at fixed background X0.
type BandScanGrid struct {
	X0          float64
	PprimeMin   float64
	PprimeMax   float64
	PprimeStep  float64
	P2primeMin  float64
	P2primeMax  float64
	P2primeStep float64
}

// DefaultBandScanGrid is the grid used for the published scan.
func DefaultBandScanGrid() BandScanGrid {
	return BandScanGrid{
		X0:          1.0,
		PprimeMin:   -2.0,
		PprimeMax:   2.0,
		PprimeStep:  0.1,
		P2primeMin:  -2.0,
		P2primeMax:  2.0,
		P2primeStep: 0.1,
	}
}

// rangeValues enumerates start..stop inclusive with a generous end condition
// to absorb floating point drift in the step accumulation.
func rangeValues(start, stop, step float64) []float64 {
	var vals []float64
	for x := start; x <= stop+1e-9; x += step {
		vals = append(vals, x)
	}
	return vals
}

// ScanHealthyBand evaluates the stability conditions over the whole grid.
// The scan itself does not assume a specific P(X); P' and P'' are treated as
// free parameters at the background point.
func ScanHealthyBand(grid BandScanGrid) []BandPoint {
	var points []BandPoint
	for _, pprime := range rangeValues(grid.PprimeMin, grid.PprimeMax, grid.PprimeStep) {
		for _, p2prime := range rangeValues(grid.P2primeMin, grid.P2primeMax, grid.P2primeStep) {
			zs := pprime
			zt := pprime + 2.0*grid.X0*p2prime
			pt := BandPoint{
				Pprime:  pprime,
				P2prime: p2prime,
				Zs:      zs,
				Zt:      zt,
				GhostOK: zt > 0,
				GradOK:  zs > 0,
			}
			if pt.GhostOK {
				pt.Cs2 = zs / zt
				pt.HasCs2 = true
			}
			points = append(points, pt)
		}
	}
	return points
}

// CountHealthy returns the number of points inside the healthy band.
func CountHealthy(points []BandPoint) int {
	n := 0
	for _, p := range points {
		if p.Healthy() {
			n++
		}
	}
	return n
}
