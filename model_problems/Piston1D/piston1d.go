package Piston1D

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/piston1d/FD1D"
	"github.com/notargets/piston1d/piston"
	"github.com/notargets/piston1d/utils"
)

/*
	Explicit solver for the 1D unsteady inviscid isothermal gas column driven
	by an accelerating piston, in the piston frame of reference.

	Governing equations (K = R*T/Mu is the isothermal sound speed squared):
		drho/dt = -v drho/dx - rho dv/dx
		dv/dt   = -v dv/dx - (K/rho) drho/dx - a(t)
	Pressure is algebraic, P = K*rho, there is no energy equation.

	Each step advances density and velocity with a second order Taylor
	expansion in time, using the time derivative assembler in derivatives.go,
	then closes pressure from the equation of state.
*/

// GasProperties fixes the isothermal ideal gas for a run
type GasProperties struct {
	R         float64 // Gas constant (J/(mol K))
	MolarMass float64 // Mean molar mass (kg/mol)
	PInit     float64 // Initial pressure (Pa)
	TInit     float64 // Temperature, constant for the run (K)
}

// DefaultGas is air at ambient conditions, the reference configuration
func DefaultGas() GasProperties {
	return GasProperties{
		R:         8.31,
		MolarMass: 0.029,
		PInit:     101325.0,
		TInit:     293.15,
	}
}

// K is the isothermal sound speed squared coefficient R*T/Mu
func (gp GasProperties) K() float64 {
	return gp.R * gp.TInit / gp.MolarMass
}

// SoundSpeed is sqrt(K), constant under the isothermal assumption
func (gp GasProperties) SoundSpeed() float64 {
	return math.Sqrt(gp.K())
}

// RhoInit is the rest density from the ideal gas law
func (gp GasProperties) RhoInit() float64 {
	return gp.PInit * gp.MolarMass / (gp.R * gp.TInit)
}

// Pressure closes the state from density via the equation of state
func (gp GasProperties) Pressure(rho float64) float64 {
	return gp.R / gp.MolarMass * rho * gp.TInit
}

// FlowField is one snapshot of the discretized fields at time Time. It is
// replaced wholesale each step, never mutated in place while stencils read
// it, so a step always sees a frozen pre-step state.
type FlowField struct {
	Time           float64
	Rho, Vel, Pres []float64
}

func NewFlowField(nx int) *FlowField {
	return &FlowField{
		Rho:  make([]float64, nx),
		Vel:  make([]float64, nx),
		Pres: make([]float64, nx),
	}
}

// Mass is the discrete integral of density over the domain
func (q *FlowField) Mass(dx float64) float64 {
	return floats.Sum(q.Rho) * dx
}

type Piston1D struct {
	Grid      *FD1D.Grid1D
	Gas       GasProperties
	Dt        float64
	FinalTime float64
	Forcing   piston.Model
	K         float64 // Gas.K(), hoisted out of the inner loops

	halfDt2 float64
	pm      *utils.PartitionMap
	spare   *FlowField // recycled output buffer for Step
}

func NewPiston1D(g *FD1D.Grid1D, gas GasProperties, dt, finalTime float64,
	forcing piston.Model, parallelDegree int) (c *Piston1D, err error) {
	if g == nil {
		err = fmt.Errorf("nil grid")
		return
	}
	if dt <= 0 {
		err = fmt.Errorf("time step DT = %v must be positive", dt)
		return
	}
	if forcing == nil {
		forcing = piston.NewPiecewise()
	}
	c = &Piston1D{
		Grid:      g,
		Gas:       gas,
		Dt:        dt,
		FinalTime: finalTime,
		Forcing:   forcing,
		K:         gas.K(),
		halfDt2:   dt * dt / 2,
		pm:        utils.NewPartitionMap(parallelDegree, g.NX-2),
	}
	return
}

// MaxSteps is the number of steps needed to reach FinalTime
func (c *Piston1D) MaxSteps() int {
	return int(math.Ceil(c.FinalTime/c.Dt)) + 1
}

// MaxStableDt is the CFL style stability bound cfl*dx/max(|v|+a) for the
// given snapshot. The solver does not enforce it, the driver should check
// its configured Dt against the rest state bound before running.
func (c *Piston1D) MaxStableDt(q *FlowField, cfl float64) float64 {
	var (
		vmax   = math.Max(math.Abs(floats.Max(q.Vel)), math.Abs(floats.Min(q.Vel)))
		signal = vmax + c.Gas.SoundSpeed()
	)
	return cfl * c.Grid.Dx / signal
}

// Initialize produces the uniform rest state at t=0
func (c *Piston1D) Initialize() (q *FlowField) {
	var (
		nx  = c.Grid.NX
		gas = c.Gas
	)
	q = &FlowField{
		Time: 0,
		Rho:  utils.ConstArray(nx, gas.RhoInit()),
		Vel:  utils.ConstArray(nx, 0),
		Pres: utils.ConstArray(nx, gas.Pressure(gas.RhoInit())),
	}
	return
}

// Step advances one time step and returns the new snapshot. The input is
// retired and recycled as the output buffer of the step after next, so the
// caller must treat it as dead once Step returns.
func (c *Piston1D) Step(q *FlowField) (qn *FlowField) {
	qn = c.spare
	if qn == nil {
		qn = NewFlowField(c.Grid.NX)
	}
	c.spare = q
	c.StepInto(q, qn)
	return
}

// StepInto populates qn from the frozen snapshot q. Interior points are
// advanced by the second order Taylor expansion, split across the partition
// map workers; each worker owns a disjoint slice of qn and only reads q.
func (c *Piston1D) StepInto(q, qn *FlowField) {
	if q == qn {
		panic("in-place step would let stencils read updated neighbors")
	}
	var (
		t   = q.Time
		acc = c.Forcing.Acceleration(t)
		wg  sync.WaitGroup
	)
	for n := 0; n < c.pm.ParallelDegree; n++ {
		kMin, kMax := c.pm.GetBucketRange(n)
		wg.Add(1)
		go func(iMin, iMax int) {
			defer wg.Done()
			// Partitions cover [0, NX-2), shift one right for the interior
			for i := iMin + 1; i < iMax+1; i++ {
				c.updateInterior(q, qn, i, acc)
			}
		}(kMin, kMax)
	}
	c.updateLeftBoundary(q, qn)
	c.updateRightBoundary(q, qn, acc)
	wg.Wait()
	qn.Time = t + c.Dt
}

func (c *Piston1D) updateInterior(q, qn *FlowField, i int, acc float64) {
	var (
		rhoT, velT   = c.firstTimeDerivs(q, i, acc)
		rhoTT, velTT = c.secondTimeDerivs(q, i, acc)
	)
	qn.Rho[i] = q.Rho[i] + c.Dt*rhoT + c.halfDt2*rhoTT
	qn.Vel[i] = q.Vel[i] + c.Dt*velT + c.halfDt2*velTT
	qn.Pres[i] = c.Gas.Pressure(qn.Rho[i])
}

// updateLeftBoundary applies the piston face conditions: no penetration for
// velocity, and a density update from the continuity equation alone using
// the one-sided velocity gradient, which keeps the face density consistent
// with mass conservation (v[0] = 0 kills the advection term).
func (c *Piston1D) updateLeftBoundary(q, qn *FlowField) {
	qn.Vel[0] = 0
	qn.Rho[0] = q.Rho[0] - q.Rho[0]*c.Dt*((q.Vel[1]-q.Vel[0])/c.Grid.Dx)
	qn.Pres[0] = c.Gas.Pressure(qn.Rho[0])
}

// updateRightBoundary advances the outflow end first order in time with
// backward differences only: there is no point beyond it for a one-sided
// second derivative of matching order, so the scheme degrades gracefully
// to first order here. The momentum update uses the pressure gradient
// between the last two points with the piston pseudo force -rho*a(t).
func (c *Piston1D) updateRightBoundary(q, qn *FlowField, acc float64) {
	var (
		i    = c.Grid.NX - 1
		dx   = c.Grid.Dx
		dvdx = (q.Vel[i] - q.Vel[i-1]) / dx
		drdx = (q.Rho[i] - q.Rho[i-1]) / dx
		dpdx = (q.Pres[i] - q.Pres[i-1]) / dx
		fx   = -q.Rho[i] * acc
	)
	qn.Rho[i] = q.Rho[i] + c.Dt*(-q.Rho[i]*dvdx-q.Vel[i]*drdx)
	qn.Vel[i] = q.Vel[i] + c.Dt*((fx-dpdx)/q.Rho[i]-q.Vel[i]*dvdx)
	qn.Pres[i] = c.Gas.Pressure(qn.Rho[i])
}

// CheckState scans a snapshot for numerical divergence: non finite or non
// positive density or pressure. The solver never self corrects, the driver
// is expected to call this after each step and abort on error.
func CheckState(q *FlowField) error {
	for i := range q.Rho {
		switch {
		case math.IsNaN(q.Rho[i]) || math.IsInf(q.Rho[i], 0) ||
			math.IsNaN(q.Vel[i]) || math.IsInf(q.Vel[i], 0):
			return fmt.Errorf("non-finite state at index %d, t=%.8f", i, q.Time)
		case q.Rho[i] <= 0:
			return fmt.Errorf("non-positive density %v at index %d, t=%.8f",
				q.Rho[i], i, q.Time)
		case q.Pres[i] <= 0:
			return fmt.Errorf("non-positive pressure %v at index %d, t=%.8f",
				q.Pres[i], i, q.Time)
		}
	}
	return nil
}
