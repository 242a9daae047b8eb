package main

import (
	"fmt"
	stdio "io"
	"os"

	"go.uber.org/zap"

	"github.com/cadtools/massbudget"
	"github.com/cadtools/massbudget/design"
	"github.com/cadtools/massbudget/geom"
	"github.com/cadtools/massbudget/io"
	"github.com/cadtools/massbudget/plot"
)

// runBudget builds the configured design, accounts for every part in build
// order and writes the requested outputs. The report goes to stdout unless
// the config names an Output file.
func runBudget(
	wrap *io.BudgetWrapper, showParts bool, stdout stdio.Writer,
	logger *zap.Logger,
) (*io.Report, error) {
	con := &wrap.Budget

	d, err := design.Lookup(con.Design)
	if err != nil {
		return nil, err
	}
	p, err := d.Defaults().Merge(wrap.Params())
	if err != nil {
		return nil, err
	}

	es, err := d.Build(p, geom.Kernel{Resolution: con.Resolution})
	if err != nil {
		return nil, fmt.Errorf("Could not build design '%s': %w", d.Name(), err)
	}
	parts := make([]massbudget.Part, len(es))
	for i := range es {
		parts[i] = es[i].Part()
	}
	logger.Info("Built design",
		zap.String("design", d.Name()), zap.Int("parts", len(parts)),
		zap.Int("resolution", con.Resolution),
	)

	if con.VolumesFile != "" {
		vols, err := io.ReadVolumes(con.VolumesFile)
		if err != nil {
			return nil, err
		}
		n, err := io.ApplyVolumes(parts, vols)
		if err != nil {
			return nil, err
		}
		logger.Info("Replaced part volumes",
			zap.String("file", con.VolumesFile), zap.Int("parts", n),
		)
	}

	tabs := wrap.Override(d.Tables())
	if err := tabs.Materials.Check(); err != nil {
		return nil, err
	} else if err := tabs.Assignments.Check(); err != nil {
		return nil, err
	}

	a := massbudget.NewAccountant(
		tabs.Materials, tabs.Assignments, tabs.Tolerances,
		massbudget.Strict(con.StrictMaterials),
		massbudget.WithDefaultDensity(con.DefaultDensity),
	)
	for _, part := range parts {
		props, err := a.Apply(part)
		if err != nil {
			return nil, err
		}
		if props.Fallback {
			logger.Warn("Material not in density table, using default density",
				zap.String("part", part.Name),
				zap.String("material", props.Material),
				zap.Float64("density", props.Density),
			)
		}
		logger.Debug("Applied part",
			zap.Int("id", part.ID), zap.String("part", part.Name),
			zap.Float64("volume_mm3", part.Volume),
			zap.Float64("mass_kg", props.GeomMass),
		)
	}
	for _, x := range tabs.Extras {
		props, err := a.AddExtra(x)
		if err != nil {
			return nil, err
		}
		logger.Debug("Added extra mass",
			zap.String("part", x.Part), zap.String("label", x.Label),
			zap.Float64("wet_mass_kg", *props.WetMass),
		)
	}

	r := io.NewReport(d.Name(), a)
	logger.Info("Mass budget complete",
		zap.String("run_id", r.RunID),
		zap.Float64("total_mass_kg", r.Totals.TotalMass),
	)

	if err := writeReport(r, con, showParts, stdout); err != nil {
		return nil, err
	}

	if con.Spreadsheet != "" {
		if err := writeFile(con.Spreadsheet, r.WriteXLSX); err != nil {
			return nil, err
		}
	}

	if con.PlotFile != "" {
		if err := plot.CumulativeMass(r, con.PlotFile); err != nil {
			logger.Warn("Skipping plot", zap.Error(err))
		}
	}

	return r, nil
}

func writeReport(
	r *io.Report, con *io.BudgetConfig, showParts bool, stdout stdio.Writer,
) error {
	write := func(w stdio.Writer) error {
		if con.Format == "yaml" {
			return r.WriteYAML(w)
		}
		return r.WriteText(w, showParts)
	}
	if con.Output == "" {
		return write(stdout)
	}
	return writeFile(con.Output, write)
}

func writeFile(fname string, write func(stdio.Writer) error) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
