package physics

import (
	"errors"
	"fmt"
	"math"
)

// Vec4 is a covariant four-vector in Minkowski signature (-,+,+,+).
type Vec4 [4]float64

// Tensor2 is a rank-2 tensor with both indices down.
type Tensor2 [4][4]float64

// Tensor4 is a rank-4 tensor with all indices down.
type Tensor4 [4][4][4][4]float64

// Eta is the Minkowski metric with signature (-,+,+,+).
var Eta = Tensor2{
	{-1, 0, 0, 0},
	{0, 1, 0, 0},
	{0, 0, 1, 0},
	{0, 0, 0, 1},
}

// ErrLightlikeMomentum is returned when k^2 is too close to zero for the
// transverse projector to be defined.
var ErrLightlikeMomentum = errors.New("k^2 too close to zero for projector definition")

// projectorK2Epsilon bounds |k^2| below which the theta projector is singular.
const projectorK2Epsilon = 1e-10

// MinkowskiSquare returns k^2 = eta^{mu nu} k_mu k_nu.
func MinkowskiSquare(k Vec4) float64 {
	return -k[0]*k[0] + k[1]*k[1] + k[2]*k[2] + k[3]*k[3]
}

// Dot returns the Minkowski inner product eta^{mu nu} a_mu b_nu.
func Dot(a, b Vec4) float64 {
	return -a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
}

// Theta returns the transverse projector theta_{mu nu} = eta_{mu nu} - k_mu k_nu / k^2.
func Theta(k Vec4) (Tensor2, error) {
	k2 := MinkowskiSquare(k)
	if math.Abs(k2) < projectorK2Epsilon {
		return Tensor2{}, fmt.Errorf("%w: k2=%g", ErrLightlikeMomentum, k2)
	}
	var theta Tensor2
	for mu := range 4 {
		for nu := range 4 {
			theta[mu][nu] = Eta[mu][nu] - k[mu]*k[nu]/k2
		}
	}
	return theta, nil
}

// SpinTwoProjector constructs P^{(2)}_{mu nu rho sigma} from the transverse
// projector theta:
//
//	P^{(2)} = (1/2)(theta_{mu rho} theta_{nu sigma} + theta_{mu sigma} theta_{nu rho})
//	        - (1/3) theta_{mu nu} theta_{rho sigma}
func SpinTwoProjector(k Vec4) (Tensor4, error) {
	theta, err := Theta(k)
	if err != nil {
		return Tensor4{}, err
	}
	var p2 Tensor4
	for mu := range 4 {
		for nu := range 4 {
			for rho := range 4 {
				for sigma := range 4 {
					sym := 0.5 * (theta[mu][rho]*theta[nu][sigma] + theta[mu][sigma]*theta[nu][rho])
					trace := (1.0 / 3.0) * theta[mu][nu] * theta[rho][sigma]
					p2[mu][nu][rho][sigma] = sym - trace
				}
			}
		}
	}
	return p2, nil
}

// SourceTensor builds N_{mu nu rho sigma} = (q_mu k_nu + q_nu k_mu)(q_rho k_sigma + q_sigma k_rho).
func SourceTensor(q, k Vec4) Tensor4 {
	var n Tensor4
	for mu := range 4 {
		for nu := range 4 {
			a := q[mu]*k[nu] + q[nu]*k[mu]
			for rho := range 4 {
				for sigma := range 4 {
					b := q[rho]*k[sigma] + q[sigma]*k[rho]
					n[mu][nu][rho][sigma] = a * b
				}
			}
		}
	}
	return n
}

// Contract sums a_{mu nu rho sigma} b_{mu nu rho sigma} over all indices.
func Contract(a, b Tensor4) float64 {
	var val float64
	for mu := range 4 {
		for nu := range 4 {
			for rho := range 4 {
				for sigma := range 4 {
					val += a[mu][nu][rho][sigma] * b[mu][nu][rho][sigma]
				}
			}
		}
	}
	return val
}
