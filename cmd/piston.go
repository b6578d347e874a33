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
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/notargets/piston1d/piston"
)

// pistonCmd represents the piston command
var pistonCmd = &cobra.Command{
	Use:   "piston",
	Short: "Inspect the piston forcing profile a(t)",
	Long: `
Evaluates the piston acceleration model over one period without running a
simulation, for logging or regenerating the harmonic table,

piston1d piston -f fourier --coeffs coeffs_50.csv`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			name, _    = cmd.Flags().GetString("forcing")
			order, _   = cmd.Flags().GetInt("order")
			samples, _ = cmd.Flags().GetInt("samples")
			export, _  = cmd.Flags().GetString("export")
			coeffs, _  = cmd.Flags().GetString("coeffs")
		)
		m, err := piston.NewModel(name, order)
		if err != nil {
			log.Fatalln(err)
		}
		pw := piston.NewPiecewise()
		fmt.Printf("Period T = %v\n", piston.Period)
		fmt.Printf("t,schedule,%s\n", name)
		rows := make([][]string, 0, samples)
		for i := 0; i < samples; i++ {
			t := float64(i) * piston.Period / float64(samples-1)
			fmt.Printf("%8.3f,%4.1f,%10.6f\n", t, pw.Acceleration(t), m.Acceleration(t))
			rows = append(rows, []string{
				strconv.FormatFloat(t, 'f', 3, 64),
				strconv.FormatFloat(pw.Acceleration(t), 'f', 1, 64),
				strconv.FormatFloat(m.Acceleration(t), 'e', 12, 64),
			})
		}
		if export != "" {
			if err = writeCSV(export, []string{"t", "schedule", name}, rows); err != nil {
				log.Fatalln(err)
			}
			log.Infof("profile exported to %s", export)
		}
		if coeffs != "" {
			f, ok := m.(*piston.Fourier)
			if !ok {
				log.Fatalln("--coeffs requires the fourier forcing model")
			}
			crows := make([][]string, f.Order())
			for n := 1; n <= f.Order(); n++ {
				crows[n-1] = []string{
					strconv.Itoa(n),
					strconv.FormatFloat(f.A[n-1], 'e', 12, 64),
					strconv.FormatFloat(f.B[n-1], 'e', 12, 64),
				}
			}
			if err = writeCSV(coeffs, []string{"n", "a_n", "b_n"}, crows); err != nil {
				log.Fatalln(err)
			}
			log.Infof("coefficients exported to %s", coeffs)
		}
	},
}

func init() {
	rootCmd.AddCommand(pistonCmd)
	pistonCmd.Flags().StringP("forcing", "f", "fourier", "forcing model: piecewise or fourier")
	pistonCmd.Flags().IntP("order", "n", piston.DefaultOrder, "highest harmonic retained by the fourier model")
	pistonCmd.Flags().Int("samples", 13, "number of sample times over one period")
	pistonCmd.Flags().String("export", "", "CSV output path for the sampled profile")
	pistonCmd.Flags().String("coeffs", "", "CSV output path for the (a_n, b_n) coefficient table")
}

func writeCSV(path string, header []string, rows [][]string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err = w.Write(header); err != nil {
		return
	}
	for _, row := range rows {
		if err = w.Write(row); err != nil {
			return
		}
	}
	w.Flush()
	return w.Error()
}
