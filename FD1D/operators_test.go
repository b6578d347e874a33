package FD1D

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGridValidation(t *testing.T) {
	var err error
	_, err = NewGrid1D(3, 1.e-3)
	assert.Error(t, err)
	_, err = NewGrid1D(100, 0)
	assert.Error(t, err)
	_, err = NewGrid1D(100, -1.e-3)
	assert.Error(t, err)
	g, err := NewGrid1D(4, 0.5)
	assert.NoError(t, err)
	assert.Equal(t, 4, g.NX)
	assert.Equal(t, 1.5, g.X(3))
}

func TestFirstDeriv(t *testing.T) {
	var (
		nx   = 16
		dx   = 0.25
		g, _ = NewGrid1D(nx, dx)
		f    = make([]float64, nx)
	)
	// A linear field is differentiated exactly by every first derivative
	// stencil, one-sided ones included
	for i := range f {
		f[i] = 3.5*g.X(i) - 2.0
	}
	for i := 0; i < nx; i++ {
		assert.InDelta(t, 3.5, g.FirstDeriv(f, i), 1.e-12)
	}
	// Interior central stencil is exact on quadratics as well
	for i := range f {
		x := g.X(i)
		f[i] = x*x + x
	}
	for i := 1; i < nx-1; i++ {
		assert.InDelta(t, 2*g.X(i)+1, g.FirstDeriv(f, i), 1.e-12)
	}
}

func TestSecondDerivQuadratic(t *testing.T) {
	var (
		nx   = 12
		dx   = 1.e-3
		g, _ = NewGrid1D(nx, dx)
		f    = make([]float64, nx)
	)
	// rho(x) = x^2 has constant second derivative 2; both the central and
	// the one-sided boundary stencils must reproduce it to rounding
	for i := range f {
		f[i] = g.X(i) * g.X(i)
	}
	for i := 0; i < nx; i++ {
		assert.InDelta(t, 2.0, g.SecondDeriv(f, i), 1.e-6)
	}
}

func TestSecondDerivMinimumGrid(t *testing.T) {
	// NX = 4 is the smallest grid where the one-sided stencils fit
	var (
		g, _ = NewGrid1D(4, 0.1)
		f    = make([]float64, 4)
	)
	for i := range f {
		f[i] = g.X(i) * g.X(i)
	}
	assert.InDelta(t, 2.0, g.SecondDeriv(f, 0), 1.e-10)
	assert.InDelta(t, 2.0, g.SecondDeriv(f, 3), 1.e-10)
}
