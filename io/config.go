package io

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/cadtools/massbudget"
	"github.com/cadtools/massbudget/design"
	"github.com/cadtools/massbudget/geom"
)

const (
	ExampleBudgetHeader = `[Budget]

#######################
# Required Parameters #
#######################

# Name of the parametric design to account for. Run "massbudget designs" to
# see the recognized designs.
Design = %s

#######################
# Optional Parameters #
#######################

# If true, a part whose material is missing from the density table stops the
# run. Otherwise the part is weighed with DefaultDensity and a warning is
# logged.
# StrictMaterials = false
# DefaultDensity = 1000

# Number of sample cells per axis used to measure the overlap of fused and
# cut solids. Higher is slower and more accurate.
# Resolution = 96

# Whitespace-separated table of part IDs and volumes in mm^3, as exported
# from a full CAD kernel. Listed parts use these volumes instead of the
# built-in geometry.
# VolumesFile = path/to/volumes.txt

# Report format, either "text" or "yaml", and where to write it. The report
# goes to stdout if Output isn't set.
# Format = text
# Output = path/to/report.txt

# Optional outputs. The plot needs a working python with matplotlib.
# Spreadsheet = path/to/budget.xlsx
# PlotFile = path/to/cumulative.png
# LogFile = log.out
`
)

// Fraction is a config value which remembers whether it was set, since zero
// is a legal fraction.
type Fraction struct {
	Value float64
	Set   bool
}

func (f *Fraction) UnmarshalText(text []byte) error {
	x, err := strconv.ParseFloat(strings.TrimSpace(string(text)), 64)
	if err != nil {
		return err
	}
	f.Value, f.Set = x, true
	return nil
}

type BudgetConfig struct {
	// Required
	Design string

	// Optional
	StrictMaterials bool
	DefaultDensity  float64
	Resolution      int

	VolumesFile string
	Format      string
	Output      string
	Spreadsheet string
	PlotFile    string
	LogFile     string
}

func (con *BudgetConfig) ValidDesign() bool {
	_, err := design.Lookup(con.Design)
	return err == nil
}
func (con *BudgetConfig) ValidDefaultDensity() bool {
	return con.DefaultDensity > 0 && !math.IsInf(con.DefaultDensity, 0)
}
func (con *BudgetConfig) ValidResolution() bool {
	return con.Resolution > 0
}
func (con *BudgetConfig) ValidFormat() bool {
	return con.Format == "text" || con.Format == "yaml"
}

type MaterialConfig struct {
	Density float64
}

func (mat *MaterialConfig) CheckInit(name string) error {
	if !(mat.Density > 0) || math.IsInf(mat.Density, 0) {
		return fmt.Errorf(
			"Need to specify a positive Density for Material '%s', but got %g.",
			name, mat.Density,
		)
	}
	return nil
}

type ToleranceConfig struct {
	Value float64
}

func (tol *ToleranceConfig) CheckInit(name string) error {
	if tol.Value < 0 || math.IsNaN(tol.Value) {
		return fmt.Errorf(
			"Tolerance '%s' given a negative Value, %g.", name, tol.Value,
		)
	}
	return nil
}

type PartConfig struct {
	// Optional
	Material string
	Fraction Fraction
}

func (part *PartConfig) CheckInit(name string) error {
	if part.Material == "" && !part.Fraction.Set {
		return fmt.Errorf(
			"Part '%s' must set a Material, a Fraction or both.", name,
		)
	}
	if f := part.Fraction; f.Set && !(f.Value >= 0 && f.Value <= 1) {
		return fmt.Errorf(
			"Fraction of Part '%s' must be in range [0, 1], but is %g.",
			name, f.Value,
		)
	}
	return nil
}

type ExtraMassConfig struct {
	// Required
	Mass float64

	// Optional
	Label string
}

func (extra *ExtraMassConfig) CheckInit(name string) error {
	if extra.Mass < 0 || math.IsNaN(extra.Mass) || math.IsInf(extra.Mass, 0) {
		return fmt.Errorf(
			"ExtraMass '%s' given an invalid Mass, %g.", name, extra.Mass,
		)
	}
	if extra.Label == "" {
		extra.Label = "Extra"
	}
	return nil
}

type ParameterConfig struct {
	Value float64
}

type BudgetWrapper struct {
	Budget    BudgetConfig
	Material  map[string]*MaterialConfig
	Tolerance map[string]*ToleranceConfig
	Part      map[string]*PartConfig
	ExtraMass map[string]*ExtraMassConfig
	Parameter map[string]*ParameterConfig
}

func DefaultBudgetWrapper() *BudgetWrapper {
	con := BudgetConfig{}
	con.DefaultDensity = massbudget.DefaultDensity
	con.Resolution = geom.DefaultResolution
	con.Format = "text"
	return &BudgetWrapper{Budget: con}
}

// ReadBudgetConfig reads and checks the config file at fname.
func ReadBudgetConfig(fname string) (*BudgetWrapper, error) {
	wrap := DefaultBudgetWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	if err := wrap.CheckInit(); err != nil {
		return nil, err
	}
	return wrap, nil
}

// ReadBudgetString is ReadBudgetConfig for an in-memory config.
func ReadBudgetString(str string) (*BudgetWrapper, error) {
	wrap := DefaultBudgetWrapper()
	if err := gcfg.ReadStringInto(wrap, str); err != nil {
		return nil, err
	}
	if err := wrap.CheckInit(); err != nil {
		return nil, err
	}
	return wrap, nil
}

func (wrap *BudgetWrapper) CheckInit() error {
	con := &wrap.Budget
	switch {
	case !con.ValidDesign():
		return fmt.Errorf(
			"Design '%s' is not recognized. Recognized designs are %v.",
			con.Design, design.Names(),
		)
	case !con.ValidDefaultDensity():
		return fmt.Errorf(
			"DefaultDensity must be positive, but is %g.", con.DefaultDensity,
		)
	case !con.ValidResolution():
		return fmt.Errorf(
			"Resolution must be positive, but is %d.", con.Resolution,
		)
	case !con.ValidFormat():
		return fmt.Errorf(
			"Format must be 'text' or 'yaml', but is '%s'.", con.Format,
		)
	}

	for _, name := range sortedKeys(wrap.Material) {
		if err := wrap.Material[name].CheckInit(name); err != nil {
			return err
		}
	}
	for _, name := range sortedKeys(wrap.Tolerance) {
		if err := wrap.Tolerance[name].CheckInit(name); err != nil {
			return err
		}
	}
	for _, name := range sortedKeys(wrap.Part) {
		if err := wrap.Part[name].CheckInit(name); err != nil {
			return err
		}
	}
	for _, name := range sortedKeys(wrap.ExtraMass) {
		if err := wrap.ExtraMass[name].CheckInit(name); err != nil {
			return err
		}
	}
	return nil
}

// Params returns the parameter overrides given in the config.
func (wrap *BudgetWrapper) Params() design.Params {
	p := design.Params{}
	for name, par := range wrap.Parameter {
		p[name] = par.Value
	}
	return p
}

// Override applies the config's tables on top of a design's built-in tables.
// An ExtraMass section replaces any built-in extra mass on the same part.
func (wrap *BudgetWrapper) Override(t design.Tables) design.Tables {
	out := design.Tables{
		Materials:   massbudget.MaterialTable{},
		Tolerances:  massbudget.ToleranceTable{},
		Assignments: massbudget.Assignments{},
	}
	for k, v := range t.Materials {
		out.Materials[k] = v
	}
	for k, v := range t.Tolerances {
		out.Tolerances[k] = v
	}
	for k, v := range t.Assignments {
		out.Assignments[k] = v
	}

	for name, mat := range wrap.Material {
		out.Materials[name] = mat.Density
	}
	for name, tol := range wrap.Tolerance {
		out.Tolerances[name] = tol.Value
	}
	for name, part := range wrap.Part {
		as, ok := out.Assignments[name]
		if !ok {
			as = massbudget.Assignment{Fraction: massbudget.DefaultFraction}
		}
		if part.Material != "" {
			as.Material = part.Material
		}
		if part.Fraction.Set {
			as.Fraction = part.Fraction.Value
		}
		out.Assignments[name] = as
	}

	for _, x := range t.Extras {
		if _, ok := wrap.ExtraMass[x.Part]; !ok {
			out.Extras = append(out.Extras, x)
		}
	}
	for _, name := range sortedKeys(wrap.ExtraMass) {
		x := wrap.ExtraMass[name]
		out.Extras = append(out.Extras, massbudget.ExtraMass{
			Part: name, Label: x.Label, Mass: x.Mass,
		})
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ExampleConfig returns a complete config file for d that reproduces its
// built-in tables and default parameters.
func ExampleConfig(d design.Design) string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, ExampleBudgetHeader, d.Name())

	t := d.Tables()
	fmt.Fprintf(sb, "\n# Densities in kg/m^3.\n")
	for _, name := range t.Materials.Keys() {
		fmt.Fprintf(sb, "[Material \"%s\"]\nDensity = %g\n", name, t.Materials[name])
	}

	fmt.Fprintf(sb, "\n# Relative tolerance of each part category.\n")
	tols := make([]string, 0, len(t.Tolerances))
	for name := range t.Tolerances {
		tols = append(tols, name)
	}
	sort.Strings(tols)
	for _, name := range tols {
		fmt.Fprintf(sb, "[Tolerance \"%s\"]\nValue = %g\n", name, t.Tolerances[name])
	}

	if len(t.Assignments) > 0 {
		fmt.Fprintf(sb, "\n# Material and solid fraction of individual parts.\n")
	}
	parts := make([]string, 0, len(t.Assignments))
	for name := range t.Assignments {
		parts = append(parts, name)
	}
	sort.Strings(parts)
	for _, name := range parts {
		as := t.Assignments[name]
		fmt.Fprintf(sb, "[Part \"%s\"]\n", name)
		if as.Material != "" {
			fmt.Fprintf(sb, "Material = %s\n", as.Material)
		}
		fmt.Fprintf(sb, "Fraction = %g\n", as.Fraction)
	}

	if len(t.Extras) > 0 {
		fmt.Fprintf(sb, "\n# Extra masses in kg.\n")
	}
	for _, x := range t.Extras {
		fmt.Fprintf(
			sb, "[ExtraMass \"%s\"]\nMass = %g\nLabel = %s\n",
			x.Part, x.Mass, x.Label,
		)
	}

	fmt.Fprintf(sb, "\n# Design parameters. Lengths in mm, switches are 0 or 1.\n")
	p := d.Defaults()
	for _, name := range p.Keys() {
		fmt.Fprintf(sb, "[Parameter \"%s\"]\nValue = %g\n", name, p[name])
	}
	return sb.String()
}
