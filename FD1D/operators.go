package FD1D

/*
	Boundary aware finite difference stencils, applied pointwise to a field
	stored as a flat slice over the grid.

	Interior points use central differences, second order accurate. The
	boundaries fall back to one-sided stencils: first order for the first
	derivative, second order (three points inward) for the second derivative.
*/

// FirstDeriv approximates df/dx at index i
func (g *Grid1D) FirstDeriv(f []float64, i int) float64 {
	switch {
	case i == 0:
		return (f[1] - f[0]) / g.Dx
	case i == g.NX-1:
		return (f[g.NX-1] - f[g.NX-2]) / g.Dx
	default:
		return (f[i+1] - f[i-1]) / (2 * g.Dx)
	}
}

// SecondDeriv approximates d2f/dx2 at index i
func (g *Grid1D) SecondDeriv(f []float64, i int) float64 {
	var (
		dx2 = g.Dx * g.Dx
		n   = g.NX
	)
	switch {
	case i == 0:
		return (2*f[0] - 5*f[1] + 4*f[2] - f[3]) / dx2
	case i == n-1:
		return (2*f[n-1] - 5*f[n-2] + 4*f[n-3] - f[n-4]) / dx2
	default:
		return (f[i+1] - 2*f[i] + f[i-1]) / dx2
	}
}
