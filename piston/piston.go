package piston

import (
	"fmt"
	"math"
)

/*
	Piston forcing models for the 1D piston driven gas column.

	The boundary acceleration a(t) is a piecewise constant schedule over one
	60 second period. Two interchangeable models are provided: the exact
	piecewise schedule, and a truncated Fourier reconstruction of it whose
	smoothness composes better with the second order Taylor expansion in the
	field update (the piecewise jumps are invisible to the expansion until
	they are crossed).
*/

// Model produces the piston acceleration at simulated time t. Implementations
// are pure functions of t, defined for all real t, with no side effects.
type Model interface {
	Acceleration(t float64) float64
}

// Segment is one constant piece of the acceleration schedule,
// a(t) = Value for T0 <= t < T1
type Segment struct {
	T0, T1, Value float64
}

// Period of the reference schedule in seconds
const Period = 60.0

// Schedule is the reference piston acceleration history. Outside [0, Period)
// both models treat it as periodic.
var Schedule = []Segment{
	{0, 10, 3},
	{10, 30, 0},
	{30, 40, 1},
	{40, 60, 0},
}

// wrap reduces t into [0, period) with a floored modulo, so negative times
// wrap forward
func wrap(t, period float64) (tw float64) {
	tw = math.Mod(t, period)
	if tw < 0 {
		tw += period
	}
	return
}

// Piecewise evaluates the schedule directly
type Piecewise struct {
	segments []Segment
	period   float64
}

func NewPiecewise() *Piecewise {
	return &Piecewise{
		segments: Schedule,
		period:   Period,
	}
}

func (p *Piecewise) Acceleration(t float64) float64 {
	tw := wrap(t, p.period)
	for _, s := range p.segments {
		if tw >= s.T0 && tw < s.T1 {
			return s.Value
		}
	}
	return 0
}

// NewModel selects a forcing model by name: "piecewise" or "fourier".
// order is the highest harmonic retained by the Fourier model.
func NewModel(name string, order int) (m Model, err error) {
	switch name {
	case "piecewise":
		m = NewPiecewise()
	case "fourier":
		m, err = NewFourier(order)
	default:
		err = fmt.Errorf("unknown piston forcing model %q", name)
	}
	return
}
