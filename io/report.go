package io

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/cadtools/massbudget"
)

// PartReport is one row of a Report.
type PartReport struct {
	ID         int      `yaml:"id"`
	Name       string   `yaml:"name"`
	Category   string   `yaml:"category"`
	Material   string   `yaml:"material"`
	Density    float64  `yaml:"density_kg_m3"`
	Fraction   float64  `yaml:"fraction"`
	Volume     float64  `yaml:"volume_mm3"`
	Tolerance  float64  `yaml:"tolerance"`
	GeomMass   float64  `yaml:"geom_mass_kg"`
	ExtraLabel string   `yaml:"extra_label,omitempty"`
	ExtraMass  *float64 `yaml:"extra_mass_kg,omitempty"`
	WetMass    *float64 `yaml:"wet_mass_kg,omitempty"`
	Fallback   bool     `yaml:"fallback_density,omitempty"`
}

type TotalsReport struct {
	GeomMass  float64 `yaml:"geom_mass_kg"`
	ExtraMass float64 `yaml:"extra_mass_kg"`
	TotalMass float64 `yaml:"total_mass_kg"`
}

// Report is the result of a mass accounting run.
type Report struct {
	RunID  string       `yaml:"run_id"`
	Design string       `yaml:"design"`
	Parts  []PartReport `yaml:"parts"`
	Totals TotalsReport `yaml:"totals"`
}

// NewReport collects the parts applied to a, in the order they were applied,
// under a fresh run ID.
func NewReport(designName string, a *massbudget.Accountant) *Report {
	r := &Report{RunID: uuid.NewString(), Design: designName}

	for _, part := range a.Parts() {
		p, _ := a.Properties(part.Name)
		r.Parts = append(r.Parts, PartReport{
			ID:         part.ID,
			Name:       part.Name,
			Category:   part.Category,
			Material:   p.Material,
			Density:    p.Density,
			Fraction:   p.Fraction,
			Volume:     part.Volume,
			Tolerance:  p.Tolerance,
			GeomMass:   p.GeomMass,
			ExtraLabel: p.ExtraLabel,
			ExtraMass:  p.ExtraMass,
			WetMass:    p.WetMass,
			Fallback:   p.Fallback,
		})
	}

	tot := a.Totals()
	r.Totals = TotalsReport{tot.GeomMass, tot.ExtraMass, tot.TotalMass}
	return r
}

// WriteText writes the mass summary with one decimal place. If parts is
// true, a per-part table follows it.
func (r *Report) WriteText(w io.Writer, parts bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "=== Mass summary ===")
	fmt.Fprintf(tw, "Total geometric mass [kg]: %.1f\n", r.Totals.GeomMass)
	fmt.Fprintf(
		tw, "Total mass with extra loads [kg]: %.1f\n", r.Totals.TotalMass,
	)
	for _, p := range r.Parts {
		if p.ExtraMass == nil {
			continue
		}
		fmt.Fprintf(
			tw, "%s (dry) [kg]: %.1f | %s [kg]: %.1f | Wet [kg]: %.1f\n",
			p.Name, p.GeomMass, p.ExtraLabel, *p.ExtraMass, *p.WetMass,
		)
	}

	if parts {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw,
			"ID\tName\tMaterial\tDensity\tFraction\tVolume [mm3]\tMass [kg]\tTol\t",
		)
		for _, p := range r.Parts {
			mat := p.Material
			if p.Fallback {
				mat += "*"
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%g\t%g\t%.4g\t%.1f\t%g\t\n",
				p.ID, p.Name, mat, p.Density, p.Fraction, p.Volume,
				p.GeomMass, p.Tolerance,
			)
		}
	}

	return tw.Flush()
}

// WriteYAML writes the full report as a YAML document.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// ReadYAML reads a report written by WriteYAML.
func ReadYAML(rd io.Reader) (*Report, error) {
	r := &Report{}
	if err := yaml.NewDecoder(rd).Decode(r); err != nil {
		return nil, err
	}
	return r, nil
}
