package piston

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPiecewiseSchedule(t *testing.T) {
	p := NewPiecewise()
	assert.Equal(t, 3.0, p.Acceleration(0))
	assert.Equal(t, 3.0, p.Acceleration(5))
	assert.Equal(t, 0.0, p.Acceleration(10))
	assert.Equal(t, 0.0, p.Acceleration(20))
	assert.Equal(t, 1.0, p.Acceleration(30))
	assert.Equal(t, 1.0, p.Acceleration(35))
	assert.Equal(t, 0.0, p.Acceleration(40))
	assert.Equal(t, 0.0, p.Acceleration(50))
	// Periodic extension beyond one period, and floored wrap for negative t
	assert.Equal(t, 3.0, p.Acceleration(60))
	assert.Equal(t, 3.0, p.Acceleration(65))
	assert.Equal(t, 1.0, p.Acceleration(95))
	assert.Equal(t, 0.0, p.Acceleration(-5))  // wraps to t=55
	assert.Equal(t, 1.0, p.Acceleration(-25)) // wraps to t=35
}

func TestFourierDCTerm(t *testing.T) {
	f, err := NewFourier(DefaultOrder)
	require.NoError(t, err)
	// Time average of the schedule over one period is (3*10 + 1*10)/60 = 2/3
	assert.InDelta(t, 2./3., f.A0/2, 1.e-12)
	assert.Equal(t, DefaultOrder, f.Order())
}

func TestFourierMatchesPiecewise(t *testing.T) {
	var (
		f, err = NewFourier(DefaultOrder)
		p      = NewPiecewise()
	)
	require.NoError(t, err)
	// Mid-segment samples: tight away from the jumps, but still subject to
	// truncation ripple at N=50
	for _, tc := range []struct {
		t, want float64
	}{
		{5, 3}, {20, 0}, {35, 1}, {50, 0},
	} {
		assert.InDelta(t, tc.want, f.Acceleration(tc.t), 0.15,
			"t=%v", tc.t)
		assert.Equal(t, tc.want, p.Acceleration(tc.t))
	}
}

func TestFourierPeriodicity(t *testing.T) {
	f, err := NewFourier(DefaultOrder)
	require.NoError(t, err)
	for _, tt := range []float64{0, 0.5, 13.7, 29.99, 42, 59.5, -3.25} {
		assert.InDelta(t, f.Acceleration(tt), f.Acceleration(tt+Period), 1.e-9)
	}
}

func TestFourierMeanOverPeriod(t *testing.T) {
	// The reconstruction integrates to the same mean as the schedule
	f, err := NewFourier(DefaultOrder)
	require.NoError(t, err)
	var (
		n    = 6000
		dt   = Period / float64(n)
		mean float64
	)
	for i := 0; i < n; i++ {
		mean += f.Acceleration((float64(i) + 0.5) * dt)
	}
	mean /= float64(n)
	assert.InDelta(t, 2./3., mean, 1.e-3)
}

func TestNewModel(t *testing.T) {
	m, err := NewModel("piecewise", 0)
	require.NoError(t, err)
	assert.IsType(t, &Piecewise{}, m)
	m, err = NewModel("fourier", 25)
	require.NoError(t, err)
	assert.IsType(t, &Fourier{}, m)
	_, err = NewModel("sawtooth", 0)
	assert.Error(t, err)
	_, err = NewModel("fourier", 0)
	assert.Error(t, err)
}
