package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title              string  `yaml:"Title"`
	GasConstant        float64 `yaml:"GasConstant"`        // J/(mol K)
	MolarMass          float64 `yaml:"MolarMass"`          // kg/mol
	InitialPressure    float64 `yaml:"InitialPressure"`    // Pa
	InitialTemperature float64 `yaml:"InitialTemperature"` // K
	NX                 int     `yaml:"NX"`
	DX                 float64 `yaml:"DX"` // m
	DT                 float64 `yaml:"DT"` // s
	FinalTime          float64 `yaml:"FinalTime"`
	SnapshotInterval   float64 `yaml:"SnapshotInterval"` // Simulated seconds between CSV snapshots
	SnapshotDir        string  `yaml:"SnapshotDir"`
	PrintAfterSteps    int     `yaml:"PrintAfterSteps"` // Terminal progress cadence
	Forcing            string  `yaml:"Forcing"`         // "piecewise" or "fourier"
	FourierOrder       int     `yaml:"FourierOrder"`
	ParallelDegree     int     `yaml:"ParallelDegree"`
}

// NewInputParameters carries the reference configuration: ambient air, a
// 5 m column at 5 mm spacing, and the 60 second piston schedule
func NewInputParameters() *InputParameters {
	return &InputParameters{
		Title:              "Piston driven isothermal gas column",
		GasConstant:        8.31,
		MolarMass:          0.029,
		InitialPressure:    101325.0,
		InitialTemperature: 293.15,
		NX:                 1000,
		DX:                 5.e-3,
		DT:                 1.e-5,
		FinalTime:          60.0,
		SnapshotInterval:   0.1,
		SnapshotDir:        "build",
		PrintAfterSteps:    1000,
		Forcing:            "fourier",
		FourierOrder:       50,
		ParallelDegree:     4,
	}
}

func (ip *InputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%8.5f\t\t= GasConstant\n", ip.GasConstant)
	fmt.Printf("%8.5f\t\t= MolarMass\n", ip.MolarMass)
	fmt.Printf("%8.1f\t\t= InitialPressure\n", ip.InitialPressure)
	fmt.Printf("%8.2f\t\t= InitialTemperature\n", ip.InitialTemperature)
	fmt.Printf("[%d]\t\t\t= NX\n", ip.NX)
	fmt.Printf("%8.2e\t\t= DX\n", ip.DX)
	fmt.Printf("%8.2e\t\t= DT\n", ip.DT)
	fmt.Printf("%8.2f\t\t= FinalTime\n", ip.FinalTime)
	fmt.Printf("%8.2f\t\t= SnapshotInterval\n", ip.SnapshotInterval)
	fmt.Printf("[%s]\t\t= Forcing\n", ip.Forcing)
	fmt.Printf("[%d]\t\t\t= FourierOrder\n", ip.FourierOrder)
	fmt.Printf("[%d]\t\t\t= ParallelDegree\n", ip.ParallelDegree)
}
