package Piston1D

import "github.com/notargets/piston1d/utils"

/*
	Time derivative assembly for the second order Taylor expansion.

	First time derivatives come straight from the continuity and momentum
	equations. Second time derivatives differentiate those expressions again
	in t, substituting the first derivatives back in via the chain rule:

		rho_tt = -v_t rho_x - v rho_xt - rho_t v_x - rho v_xt
		v_tt   = -v_t v_x - v v_xt + (K/rho^2) rho_t rho_x - (K/rho) rho_xt

	The mixed derivatives rho_xt and v_xt are the x derivatives of the
	governing equations (t and x derivatives commute):

		rho_xt = -2 v_x rho_x - v rho_xx - rho v_xx
		v_xt   = -v_x^2 - v v_xx + K (rho_x/rho)^2 - (K/rho) rho_xx

	a(t) is uniform in space so it drops out of both mixed derivatives, and
	it is treated as frozen over the step, so no da/dt term appears in v_tt.
	Every term here must be reproduced exactly: a sign error does not crash,
	it shows up later as numerical instability.
*/

// TimeDerivatives are the four assembled derivatives at one grid index
type TimeDerivatives struct {
	RhoT, RhoTT float64
	VelT, VelTT float64
}

// Assemble produces the time derivatives of density and velocity at index i
// from the frozen snapshot q, evaluating the forcing at q.Time. The per-step
// kernels use the split internal forms below so the forcing is evaluated
// once per step rather than once per index.
func (c *Piston1D) Assemble(q *FlowField, i int) (d TimeDerivatives) {
	acc := c.Forcing.Acceleration(q.Time)
	d.RhoT, d.VelT = c.firstTimeDerivs(q, i, acc)
	d.RhoTT, d.VelTT = c.secondTimeDerivs(q, i, acc)
	return
}

func (c *Piston1D) firstTimeDerivs(q *FlowField, i int, acc float64) (rhoT, velT float64) {
	var (
		g      = c.Grid
		v, rho = q.Vel[i], q.Rho[i]
		vx     = g.FirstDeriv(q.Vel, i)
		rhox   = g.FirstDeriv(q.Rho, i)
	)
	rhoT = -v*rhox - rho*vx
	velT = -v*vx - c.K/rho*rhox - acc
	return
}

func (c *Piston1D) secondTimeDerivs(q *FlowField, i int, acc float64) (rhoTT, velTT float64) {
	var (
		g      = c.Grid
		K      = c.K
		v, rho = q.Vel[i], q.Rho[i]
		vx     = g.FirstDeriv(q.Vel, i)
		rhox   = g.FirstDeriv(q.Rho, i)
		vxx    = g.SecondDeriv(q.Vel, i)
		rhoxx  = g.SecondDeriv(q.Rho, i)
	)
	var (
		rhoT = -v*rhox - rho*vx
		velT = -v*vx - K/rho*rhox - acc
		// x derivatives of the governing equations
		rhoXT = -2*vx*rhox - v*rhoxx - rho*vxx
		velXT = -utils.POW(vx, 2) - v*vxx + K*utils.POW(rhox/rho, 2) - K/rho*rhoxx
	)
	rhoTT = -velT*rhox - v*rhoXT - rhoT*vx - rho*velXT
	velTT = -velT*vx - v*velXT + K/utils.POW(rho, 2)*rhoT*rhox - K/rho*rhoXT
	return
}
