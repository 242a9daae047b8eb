package massbudget

import (
	"fmt"
	"math"
	"sort"
)

const (
	// DefaultDensity is substituted for unresolved material keys when the
	// accountant is not strict.
	DefaultDensity = 1000.0
	// DefaultTolerance is used for part categories missing from a
	// ToleranceTable.
	DefaultTolerance = 1.0
	// DefaultFraction is the effective-density multiplier of a fully solid
	// part.
	DefaultFraction = 1.0
)

// MaterialTable maps material keys to densities in kg/m^3.
type MaterialTable map[string]float64

// Density returns the density of the given material and whether it was
// present in the table.
func (mt MaterialTable) Density(key string) (float64, bool) {
	d, ok := mt[key]
	return d, ok
}

// Keys returns the table's material keys in sorted order.
func (mt MaterialTable) Keys() []string {
	keys := make([]string, 0, len(mt))
	for k := range mt {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Check returns an error if any density is non-positive or non-finite.
func (mt MaterialTable) Check() error {
	for _, k := range mt.Keys() {
		d := mt[k]
		if !(d > 0) || math.IsInf(d, 0) {
			return fmt.Errorf(
				"Material '%s' must have a positive density, but has %g.", k, d,
			)
		}
	}
	return nil
}

// Assignment pairs a material with the fraction of the part's volume that is
// actually solid material.
type Assignment struct {
	Material string
	Fraction float64
}

// Assignments maps part names to material assignments.
type Assignments map[string]Assignment

// Resolve returns the material key and fraction for the named part. Parts
// without an assignment use defaultMaterial at full density.
func (as Assignments) Resolve(name, defaultMaterial string) (string, float64) {
	a, ok := as[name]
	if !ok {
		return defaultMaterial, DefaultFraction
	}
	if a.Material == "" {
		a.Material = defaultMaterial
	}
	return a.Material, a.Fraction
}

// Check returns an error if any fraction lies outside [0, 1].
func (as Assignments) Check() error {
	names := make([]string, 0, len(as))
	for name := range as {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		f := as[name].Fraction
		if !(f >= 0 && f <= 1) {
			return fmt.Errorf(
				"Part '%s' given a fraction of %g, which is outside [0, 1].",
				name, f,
			)
		}
	}
	return nil
}

// ToleranceTable maps part categories to manufacturing tolerances in mm.
// Tolerances are informational and never enter a mass computation.
type ToleranceTable map[string]float64

// Tolerance returns the tolerance for the given category, or
// DefaultTolerance if the category is absent.
func (tt ToleranceTable) Tolerance(category string) float64 {
	if tol, ok := tt[category]; ok {
		return tol
	}
	return DefaultTolerance
}
