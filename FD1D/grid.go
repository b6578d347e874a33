package FD1D

import "fmt"

// Grid1D is a uniform 1D finite difference grid. Index 0 is the left
// (piston face) boundary, index NX-1 is the right (outflow) boundary.
type Grid1D struct {
	NX int     // Number of grid points
	Dx float64 // Grid spacing
}

func NewGrid1D(nx int, dx float64) (g *Grid1D, err error) {
	// The one-sided second derivative stencils reach three points inward,
	// which sets the minimum grid size
	if nx < 4 {
		err = fmt.Errorf("grid size NX = %d is below the minimum of 4 required by the boundary stencils", nx)
		return
	}
	if dx <= 0 {
		err = fmt.Errorf("grid spacing DX = %v must be positive", dx)
		return
	}
	g = &Grid1D{
		NX: nx,
		Dx: dx,
	}
	return
}

func (g *Grid1D) X(i int) float64 {
	return float64(i) * g.Dx
}

// Coordinates returns the full axis, useful for plotting and snapshots
func (g *Grid1D) Coordinates() (x []float64) {
	x = make([]float64, g.NX)
	for i := range x {
		x[i] = g.X(i)
	}
	return
}
