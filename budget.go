// Package massbudget computes the mass budget of a parametric assembly.
//
// Every finished part is given a material, a density, an effective-density
// fraction and a tolerance, and its geometric mass is derived from its volume.
// An Accountant threads the running assembly total through these computations
// explicitly, so the total only depends on the set of parts applied, not on
// the order they were applied in.
package massbudget

import (
	"errors"
	"fmt"
	"math"
)

// MM3ToM3 converts cubic millimeters to cubic meters.
const MM3ToM3 = 1e-9

var (
	ErrUnknownMaterial = errors.New("unknown material")
	ErrDuplicatePart   = errors.New("part already applied")
	ErrUnknownPart     = errors.New("part not applied")
	ErrExtraAlreadySet = errors.New("extra mass already set")
	ErrInvalidVolume   = errors.New("invalid volume")
	ErrInvalidFraction = errors.New("invalid fraction")
	ErrInvalidMass     = errors.New("invalid extra mass")
)

// Mass returns the mass in kg of volumeMM3 cubic millimeters of a material
// with the given density in kg/m^3, scaled by fraction. No validation is
// performed.
func Mass(volumeMM3, density, fraction float64) float64 {
	return density * (volumeMM3 * MM3ToM3) * fraction
}

// WetMass returns the mass of a part with a supplemental load.
func WetMass(dry, extra float64) float64 {
	return dry + extra
}

// Sum adds masses together.
func Sum(masses ...float64) float64 {
	sum := 0.0
	for _, m := range masses {
		sum += m
	}
	return sum
}

// Option configures an Accountant.
type Option func(*Accountant)

// Strict makes unresolved material keys an error instead of substituting
// the default density.
func Strict(strict bool) Option {
	return func(a *Accountant) { a.strict = strict }
}

// WithDefaultDensity sets the density used for unresolved material keys.
func WithDefaultDensity(density float64) Option {
	return func(a *Accountant) { a.defaultDensity = density }
}

// Validate controls whether volumes and fractions are checked before a mass
// is computed. It is on by default.
func Validate(validate bool) Option {
	return func(a *Accountant) { a.validate = validate }
}

// Accountant accumulates the mass budget of an assembly. It is not safe for
// concurrent use.
type Accountant struct {
	materials   MaterialTable
	assignments Assignments
	tolerances  ToleranceTable

	strict         bool
	validate       bool
	defaultDensity float64

	parts     []Part
	props     map[string]*Properties
	fallbacks []string
	totals    Totals
}

// NewAccountant creates an Accountant over the given tables. The tables are
// not copied and must not be modified while the Accountant is in use.
func NewAccountant(
	materials MaterialTable, assignments Assignments,
	tolerances ToleranceTable, opts ...Option,
) *Accountant {
	a := &Accountant{
		materials:      materials,
		assignments:    assignments,
		tolerances:     tolerances,
		validate:       true,
		defaultDensity: DefaultDensity,
		props:          map[string]*Properties{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Apply computes the properties of part and adds its geometric mass to the
// running total. Each part name may only be applied once.
func (a *Accountant) Apply(part Part) (Properties, error) {
	if _, ok := a.props[part.Name]; ok {
		return Properties{}, fmt.Errorf("%w: '%s'", ErrDuplicatePart, part.Name)
	}

	key, fraction := a.assignments.Resolve(part.Name, part.DefaultMaterial)

	if a.validate {
		if math.IsNaN(part.Volume) || math.IsInf(part.Volume, 0) ||
			part.Volume < 0 {
			return Properties{}, fmt.Errorf(
				"%w: part '%s' has volume %g", ErrInvalidVolume,
				part.Name, part.Volume,
			)
		} else if !(fraction >= 0 && fraction <= 1) {
			return Properties{}, fmt.Errorf(
				"%w: part '%s' has fraction %g", ErrInvalidFraction,
				part.Name, fraction,
			)
		}
	}

	density, ok := a.materials.Density(key)
	fallback := false
	if !ok {
		if a.strict {
			return Properties{}, fmt.Errorf(
				"%w: part '%s' uses material '%s'", ErrUnknownMaterial,
				part.Name, key,
			)
		}
		density, fallback = a.defaultDensity, true
		a.fallbacks = append(a.fallbacks, part.Name)
	}

	p := &Properties{
		Material:  key,
		Density:   density,
		Fraction:  fraction,
		Tolerance: a.tolerances.Tolerance(part.Category),
		GeomMass:  Mass(part.Volume, density, fraction),
		Fallback:  fallback,
	}

	a.props[part.Name] = p
	a.parts = append(a.parts, part)
	a.totals.GeomMass += p.GeomMass
	a.totals.TotalMass += p.GeomMass

	return *p, nil
}

// AddExtra attaches a supplemental mass to an already applied part and sets
// its wet mass. It may be called once per part.
func (a *Accountant) AddExtra(extra ExtraMass) (Properties, error) {
	p, ok := a.props[extra.Part]
	if !ok {
		return Properties{}, fmt.Errorf("%w: '%s'", ErrUnknownPart, extra.Part)
	} else if p.HasExtra() {
		return Properties{}, fmt.Errorf(
			"%w: '%s'", ErrExtraAlreadySet, extra.Part,
		)
	} else if a.validate && (!(extra.Mass >= 0) || math.IsInf(extra.Mass, 0)) {
		return Properties{}, fmt.Errorf(
			"%w: part '%s' given %g kg", ErrInvalidMass, extra.Part, extra.Mass,
		)
	}

	m, wet := extra.Mass, WetMass(p.GeomMass, extra.Mass)
	p.ExtraLabel = extra.Label
	p.ExtraMass, p.WetMass = &m, &wet

	a.totals.ExtraMass += m
	a.totals.TotalMass += m

	return *p, nil
}

// Properties returns the properties of the named part.
func (a *Accountant) Properties(name string) (Properties, bool) {
	p, ok := a.props[name]
	if !ok {
		return Properties{}, false
	}
	return *p, true
}

// Parts returns the applied parts in the order they were applied.
func (a *Accountant) Parts() []Part {
	out := make([]Part, len(a.parts))
	copy(out, a.parts)
	return out
}

// Fallbacks returns the names of parts whose material did not resolve and
// which were given the default density.
func (a *Accountant) Fallbacks() []string {
	out := make([]string, len(a.fallbacks))
	copy(out, a.fallbacks)
	return out
}

// Totals returns the current assembly totals.
func (a *Accountant) Totals() Totals {
	return a.totals
}
