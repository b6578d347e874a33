package piston

import (
	"fmt"
	"math"
)

// Fourier reconstructs the piecewise schedule as a truncated Fourier series,
//
//	a(t) ~ a0/2 + sum_{n=1..N} [ a_n cos(2 pi n t / T) + b_n sin(2 pi n t / T) ]
//
// The coefficient table is static data derived from the Schedule segments by
// analytic integration over each constant piece; it is computed once at
// construction and never touched by the integrator.
type Fourier struct {
	A0     float64 // DC coefficient, the series constant term is A0/2
	A, B   []float64
	period float64
}

// DefaultOrder retains 50 harmonics
const DefaultOrder = 50

func NewFourier(order int) (f *Fourier, err error) {
	if order < 1 {
		err = fmt.Errorf("fourier order %d must be at least 1", order)
		return
	}
	f = &Fourier{
		A:      make([]float64, order),
		B:      make([]float64, order),
		period: Period,
	}
	// a0 = (2/T) Int_0^T a(t) dt
	for _, s := range Schedule {
		f.A0 += s.Value * (s.T1 - s.T0)
	}
	f.A0 *= 2 / f.period
	// a_n = (2/T) Int a(t) cos(w_n t) dt, b_n likewise with sin; each
	// integral has a closed form over a constant segment
	for n := 1; n <= order; n++ {
		var (
			w      = 2 * math.Pi * float64(n) / f.period
			an, bn float64
		)
		for _, s := range Schedule {
			an += s.Value * (math.Sin(w*s.T1) - math.Sin(w*s.T0)) / w
			bn += -s.Value * (math.Cos(w*s.T1) - math.Cos(w*s.T0)) / w
		}
		f.A[n-1] = an * 2 / f.period
		f.B[n-1] = bn * 2 / f.period
	}
	return
}

func (f *Fourier) Acceleration(t float64) float64 {
	var (
		tw  = wrap(t, f.period)
		sum = f.A0 / 2
	)
	for n := 1; n <= len(f.A); n++ {
		w := 2 * math.Pi * float64(n) / f.period
		sum += f.A[n-1]*math.Cos(w*tw) + f.B[n-1]*math.Sin(w*tw)
	}
	return sum
}

// Order is the highest harmonic retained
func (f *Fourier) Order() int {
	return len(f.A)
}
