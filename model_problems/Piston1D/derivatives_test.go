package Piston1D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/piston1d/piston"
)

// smoothField builds a gently varying periodic test state consistent with
// the equation of state
func smoothField(c *Piston1D) (q *FlowField) {
	var (
		nx = c.Grid.NX
		L  = float64(nx) * c.Grid.Dx
		k  = 2 * math.Pi / L
	)
	q = NewFlowField(nx)
	q.Time = 5.0
	for i := 0; i < nx; i++ {
		x := c.Grid.X(i)
		q.Rho[i] = c.Gas.RhoInit() + 0.01*math.Sin(k*x)
		q.Vel[i] = 0.05 * math.Sin(k*x+0.7)
		q.Pres[i] = c.Gas.Pressure(q.Rho[i])
	}
	return
}

// referenceSecondDerivs transcribes the fully expanded forms of the second
// time derivatives term by term, without the shared mixed-derivative
// factoring the production assembler uses. Both must agree to rounding.
func referenceSecondDerivs(c *Piston1D, q *FlowField, i int, acc float64) (rhoTT, velTT float64) {
	var (
		g     = c.Grid
		K     = c.K
		v     = q.Vel[i]
		rho   = q.Rho[i]
		vx    = g.FirstDeriv(q.Vel, i)
		rhox  = g.FirstDeriv(q.Rho, i)
		vxx   = g.SecondDeriv(q.Vel, i)
		rhoxx = g.SecondDeriv(q.Rho, i)
	)
	velTT = -(-v*vx-K/rho*rhox-acc)*vx -
		v*(-vx*vx-v*vxx+K*(rhox/rho)*(rhox/rho)-K/rho*rhoxx) +
		K/(rho*rho)*(-v*rhox-rho*vx)*rhox -
		K/rho*(-vx*rhox-v*rhoxx-rhox*vx-rho*vxx)
	rhoTT = -(-v*vx-K/rho*rhox-acc)*rhox -
		v*(-vx*rhox-v*rhoxx-rhox*vx-rho*vxx) -
		(-v*rhox-rho*vx)*vx -
		rho*(-vx*vx-v*vxx+K*(rhox/rho)*(rhox/rho)-K/rho*rhoxx)
	return
}

func TestAssembleMatchesExpandedForm(t *testing.T) {
	var (
		c   = newSolver(t, 64, 0.01, 1.e-6, piston.NewPiecewise(), 1)
		q   = smoothField(c)
		acc = c.Forcing.Acceleration(q.Time)
	)
	for i := 0; i < c.Grid.NX; i++ {
		d := c.Assemble(q, i)
		refRhoTT, refVelTT := referenceSecondDerivs(c, q, i, acc)
		assert.InDelta(t, refRhoTT, d.RhoTT, math.Abs(refRhoTT)*1.e-9+1.e-9, "rhoTT at %d", i)
		assert.InDelta(t, refVelTT, d.VelTT, math.Abs(refVelTT)*1.e-9+1.e-9, "velTT at %d", i)
	}
}

func TestFirstDerivsGoverningEquations(t *testing.T) {
	var (
		c   = newSolver(t, 64, 0.01, 1.e-6, piston.NewPiecewise(), 1)
		q   = smoothField(c)
		acc = c.Forcing.Acceleration(q.Time)
		g   = c.Grid
	)
	require.Equal(t, 3.0, acc) // t=5 sits in the first schedule segment
	for _, i := range []int{0, 1, 17, 40, 63} {
		var (
			d    = c.Assemble(q, i)
			vx   = g.FirstDeriv(q.Vel, i)
			rhox = g.FirstDeriv(q.Rho, i)
		)
		assert.InDelta(t, -q.Vel[i]*rhox-q.Rho[i]*vx, d.RhoT, 1.e-12)
		assert.InDelta(t, -q.Vel[i]*vx-c.K/q.Rho[i]*rhox-acc, d.VelT, 1.e-9)
	}
}

// The second time derivatives must be the time derivatives of the first:
// micro-advance the whole field with the first derivatives alone and
// difference. The check is approximate because the assembler expands the
// mixed derivatives analytically while the differenced value applies the
// discrete product rule, a gap of the same order as the stencil truncation.
func TestSecondDerivsAreTimeDerivsOfFirst(t *testing.T) {
	var (
		c   = newSolver(t, 64, 0.01, 1.e-6, piston.NewPiecewise(), 1)
		q   = smoothField(c)
		acc = c.Forcing.Acceleration(q.Time)
		eps = 1.e-8
		nx  = c.Grid.NX
		qe  = NewFlowField(nx)
	)
	qe.Time = q.Time
	for j := 0; j < nx; j++ {
		rhoT, velT := c.firstTimeDerivs(q, j, acc)
		qe.Rho[j] = q.Rho[j] + eps*rhoT
		qe.Vel[j] = q.Vel[j] + eps*velT
		qe.Pres[j] = c.Gas.Pressure(qe.Rho[j])
	}
	// The gap between the analytic product rule and the discrete one does
	// not vanish at zero crossings of the second derivative, so the error
	// budget scales with the field-wide magnitude rather than pointwise
	var (
		maxRhoTT, maxVelTT float64
		fdRhoTT            = make([]float64, nx)
		fdVelTT            = make([]float64, nx)
	)
	for i := 8; i < nx-8; i++ {
		var (
			rhoT0, velT0 = c.firstTimeDerivs(q, i, acc)
			rhoT1, velT1 = c.firstTimeDerivs(qe, i, acc)
		)
		fdRhoTT[i] = (rhoT1 - rhoT0) / eps
		fdVelTT[i] = (velT1 - velT0) / eps
		maxRhoTT = math.Max(maxRhoTT, math.Abs(fdRhoTT[i]))
		maxVelTT = math.Max(maxVelTT, math.Abs(fdVelTT[i]))
	}
	for i := 8; i < nx-8; i++ {
		d := c.Assemble(q, i)
		assert.InDelta(t, fdRhoTT[i], d.RhoTT, 0.02*maxRhoTT+1.0, "rhoTT at %d", i)
		assert.InDelta(t, fdVelTT[i], d.VelTT, 0.02*maxVelTT+1.0, "velTT at %d", i)
	}
}

func TestAssembleUniformState(t *testing.T) {
	var (
		c = newSolver(t, 32, 1.e-3, 1.e-6, piston.NewPiecewise(), 1)
		q = c.Initialize()
	)
	// All spatial gradients vanish: only the forcing survives, and only in
	// the first velocity derivative
	for _, i := range []int{0, 1, 15, 30, 31} {
		d := c.Assemble(q, i)
		assert.Equal(t, 0.0, d.RhoT)
		assert.Equal(t, 0.0, d.RhoTT)
		assert.Equal(t, -3.0, d.VelT)
		assert.Equal(t, 0.0, d.VelTT)
	}
}
