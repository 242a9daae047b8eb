// Package plot draws figures of a mass budget with matplotlib.
package plot

import (
	"fmt"
	"os/exec"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/cadtools/massbudget/io"
)

// Cumulative returns the running geometric mass after each part of r, in
// the order the parts were applied. xs holds part IDs.
func Cumulative(r *io.Report) (xs, ys []float64) {
	xs, ys = make([]float64, len(r.Parts)), make([]float64, len(r.Parts))
	sum := 0.0
	for i, p := range r.Parts {
		sum += p.GeomMass
		xs[i], ys[i] = float64(p.ID), sum
	}
	return xs, ys
}

// CumulativeMass saves a plot of the running assembly mass to fname. The
// extra loads are drawn as a horizontal line above the final dry mass.
func CumulativeMass(r *io.Report, fname string) (err error) {
	if len(r.Parts) == 0 {
		return fmt.Errorf("Report for design '%s' has no parts to plot.", r.Design)
	}
	if _, err := exec.LookPath("python"); err != nil {
		return err
	}
	defer func() {
		if x := recover(); x != nil {
			err = fmt.Errorf("Could not plot to '%s': %v", fname, x)
		}
	}()

	xs, ys := Cumulative(r)
	x0, x1 := xs[0]-0.5, xs[len(xs)-1]+0.5

	plt.Reset()
	plt.Figure(plt.FigSize(8, 6))
	plt.Plot(xs, ys, "o-", plt.LW(2), plt.C("k"))
	if r.Totals.ExtraMass > 0 {
		plt.Plot(
			[]float64{x0, x1},
			[]float64{r.Totals.TotalMass, r.Totals.TotalMass},
			"--", plt.LW(2), plt.C("r"),
		)
	}
	plt.Title(fmt.Sprintf("%s: %.1f kg", r.Design, r.Totals.TotalMass))
	plt.XLabel("Part ID", plt.FontSize(16))
	plt.YLabel("Cumulative mass [kg]", plt.FontSize(16))
	plt.XLim(x0, x1)
	plt.YLim(0, 1.1*r.Totals.TotalMass)
	plt.Grid(plt.Axis("y"))
	plt.SaveFig(fname)
	plt.Execute()

	return nil
}
