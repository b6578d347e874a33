/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/notargets/piston1d/FD1D"
	"github.com/notargets/piston1d/InputParameters"
	"github.com/notargets/piston1d/model_problems/Piston1D"
	"github.com/notargets/piston1d/piston"
	"github.com/notargets/piston1d/server"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Advance the piston driven gas column to FinalTime",
	Long: `
Initializes the uniform rest state and advances it with the second order
explicit scheme, writing CSV snapshots and terminal progress as it goes,

piston1d run -i input.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		ip := InputParameters.NewInputParameters()
		if inputFile, _ := cmd.Flags().GetString("input"); inputFile != "" {
			data, err := os.ReadFile(inputFile)
			if err != nil {
				log.Fatalf("unable to read input file: %v", err)
			}
			if err = ip.Parse(data); err != nil {
				log.Fatalf("unable to parse input file: %v", err)
			}
		}
		overrideFromFlags(cmd, ip)
		ip.Print()

		graph, _ := cmd.Flags().GetBool("graph")
		delay, _ := cmd.Flags().GetInt("delay")
		serveAddr, _ := cmd.Flags().GetString("serve")
		if prof, _ := cmd.Flags().GetBool("profile"); prof {
			defer profile.Start(profile.CPUProfile).Stop()
		}
		RunSimulation(ip, graph, time.Duration(delay)*time.Millisecond, serveAddr)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("input", "i", "", "YAML input parameter file")
	runCmd.Flags().Int("nx", 0, "number of grid points")
	runCmd.Flags().Float64("dx", 0, "grid spacing (m)")
	runCmd.Flags().Float64("dt", 0, "time step (s)")
	runCmd.Flags().Float64("finalTime", 0, "target end time for the sim (s)")
	runCmd.Flags().StringP("forcing", "f", "", "piston forcing model: piecewise or fourier")
	runCmd.Flags().Int("np", 0, "parallel degree for the interior sweep (default NumCPU)")
	runCmd.Flags().BoolP("graph", "g", false, "display a live graph while computing the solution")
	runCmd.Flags().IntP("delay", "d", 0, "milliseconds of delay for plotting")
	runCmd.Flags().String("serve", "", "broadcast snapshots to monitors over websocket, e.g. :9000")
	runCmd.Flags().Bool("profile", false, "write a CPU profile for the run")
}

func overrideFromFlags(cmd *cobra.Command, ip *InputParameters.InputParameters) {
	if cmd.Flags().Changed("nx") {
		ip.NX, _ = cmd.Flags().GetInt("nx")
	}
	if cmd.Flags().Changed("dx") {
		ip.DX, _ = cmd.Flags().GetFloat64("dx")
	}
	if cmd.Flags().Changed("dt") {
		ip.DT, _ = cmd.Flags().GetFloat64("dt")
	}
	if cmd.Flags().Changed("finalTime") {
		ip.FinalTime, _ = cmd.Flags().GetFloat64("finalTime")
	}
	if cmd.Flags().Changed("forcing") {
		ip.Forcing, _ = cmd.Flags().GetString("forcing")
	}
	if cmd.Flags().Changed("np") {
		ip.ParallelDegree, _ = cmd.Flags().GetInt("np")
	}
	if ip.ParallelDegree <= 0 {
		ip.ParallelDegree = runtime.NumCPU()
	}
}

// NewSolver wires an InputParameters set into a solver instance
func NewSolver(ip *InputParameters.InputParameters) (c *Piston1D.Piston1D, err error) {
	g, err := FD1D.NewGrid1D(ip.NX, ip.DX)
	if err != nil {
		return
	}
	forcing, err := piston.NewModel(ip.Forcing, ip.FourierOrder)
	if err != nil {
		return
	}
	gas := Piston1D.GasProperties{
		R:         ip.GasConstant,
		MolarMass: ip.MolarMass,
		PInit:     ip.InitialPressure,
		TInit:     ip.InitialTemperature,
	}
	return Piston1D.NewPiston1D(g, gas, ip.DT, ip.FinalTime, forcing, ip.ParallelDegree)
}

// RunSimulation is the driving loop: it owns progress reporting, snapshot
// serialization and divergence detection, while the solver owns the physics
func RunSimulation(ip *InputParameters.InputParameters, graph bool,
	graphDelay time.Duration, serveAddr string) {
	c, err := NewSolver(ip)
	if err != nil {
		log.Fatalf("configuration rejected: %v", err)
	}
	var (
		q        = c.Initialize()
		maxSteps = c.MaxSteps()
		nextSnap = ip.SnapshotInterval
		plotter  *livePlot
		hub      *server.Hub
	)
	log.Infof("flow field initialized: NX=%d, DX=%.3e m, DT=%.3e s, %d steps to t=%.1f s",
		ip.NX, ip.DX, ip.DT, maxSteps, ip.FinalTime)
	if bound := c.MaxStableDt(q, 0.8); c.Dt > bound {
		log.Warnf("DT=%.3e exceeds the CFL bound %.3e at rest, expect divergence", c.Dt, bound)
	}
	if serveAddr != "" {
		hub = server.NewHub(serveAddr)
		hub.Serve()
	}
	if graph {
		plotter = newLivePlot(c)
	}
	for step := 0; step < maxSteps; step++ {
		q = c.Step(q)
		if err = Piston1D.CheckState(q); err != nil {
			log.Fatalf("numerical divergence: %v", err)
		}
		if step%ip.PrintAfterSteps == 0 {
			log.Infof("t=%.8f step=%d rho[0]=%.8f vel[0]=%.8f pres[0]=%.8f",
				q.Time, step, q.Rho[0], q.Vel[0], q.Pres[0])
		}
		if q.Time > nextSnap {
			nextSnap += ip.SnapshotInterval
			if err = writeSnapshot(ip.SnapshotDir, c, q); err != nil {
				log.Warnf("cannot save snapshot: %v, continuing without CSV output", err)
			}
			if hub != nil {
				hub.Broadcast(server.NewSnapshot(c.Grid.Coordinates(), q))
			}
			if plotter != nil {
				plotter.update(q)
				time.Sleep(graphDelay)
			}
		}
	}
	log.Infof("run complete at t=%.8f, total mass %.6f kg/m^2", q.Time, q.Mass(c.Grid.Dx))
}

// writeSnapshot serializes (time, idx, rho, vel, pres) rows, thinned to at
// most 1000 points per file
func writeSnapshot(dir string, c *Piston1D.Piston1D, q *Piston1D.FlowField) (err error) {
	if err = os.MkdirAll(dir, 0755); err != nil {
		return
	}
	fname := filepath.Join(dir, fmt.Sprintf("snapshot_%.6e.csv", q.Time))
	f, err := os.Create(fname)
	if err != nil {
		return
	}
	defer f.Close()
	var (
		w      = csv.NewWriter(f)
		stride = c.Grid.NX / 1000
	)
	if stride < 1 {
		stride = 1
	}
	if err = w.Write([]string{"time", "idx", "rho", "vel", "pres"}); err != nil {
		return
	}
	for i := 0; i < c.Grid.NX; i += stride {
		err = w.Write([]string{
			strconv.FormatFloat(q.Time, 'f', 6, 64),
			strconv.Itoa(i),
			strconv.FormatFloat(q.Rho[i], 'e', 12, 64),
			strconv.FormatFloat(q.Vel[i], 'e', 12, 64),
			strconv.FormatFloat(q.Pres[i], 'e', 12, 64),
		})
		if err != nil {
			return
		}
	}
	w.Flush()
	return w.Error()
}

// livePlot charts the normalized fields while the run progresses
type livePlot struct {
	c        *Piston1D.Piston1D
	x        []float64
	chart    *chart2d.Chart2D
	colorMap *utils2.ColorMap
	plotOnce sync.Once
}

func newLivePlot(c *Piston1D.Piston1D) *livePlot {
	return &livePlot{
		c: c,
		x: c.Grid.Coordinates(),
	}
}

func (lp *livePlot) update(q *Piston1D.FlowField) {
	var (
		c          = lp.c
		fmin, fmax = float32(-1.5), float32(2.5)
	)
	lp.plotOnce.Do(func() {
		lp.chart = chart2d.NewChart2D(1920, 1280, float32(lp.x[0]), float32(lp.x[len(lp.x)-1]), fmin, fmax)
		lp.colorMap = utils2.NewColorMap(-1, 1, 1)
		go lp.chart.Plot()
	})
	var (
		rho0 = c.Gas.RhoInit()
		p0   = c.Gas.Pressure(rho0)
		a0   = c.Gas.SoundSpeed()
		nx   = c.Grid.NX
	)
	norm := func(f []float64, scale float64) (o []float64) {
		o = make([]float64, nx)
		for i := range f {
			o[i] = f[i] / scale
		}
		return
	}
	pSeries := func(field []float64, name string, color float32) {
		if err := lp.chart.AddSeries(name, lp.x, field,
			chart2d.NoGlyph, chart2d.Solid, lp.colorMap.GetRGB(color)); err != nil {
			panic("unable to add graph series")
		}
	}
	pSeries(norm(q.Rho, rho0), "Rho/Rho0", -0.7)
	pSeries(norm(q.Vel, a0), "Vel/c", 0.0)
	pSeries(norm(q.Pres, p0), "Pres/P0", 0.7)
}
