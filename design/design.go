// Package design contains the parametric assemblies that massbudget can
// account for. A Design turns a parameter table into a list of named solids and
// supplies the material, tolerance and extra-mass tables that go with them.
package design

import (
	"fmt"
	"math"
	"sort"

	"github.com/cadtools/massbudget"
	"github.com/cadtools/massbudget/geom"
)

// Params is a design's parameter table. Lengths are in mm.
type Params map[string]float64

// Merge returns a copy of p with the values in over replacing those in p.
// Every key in over must already exist in p.
func (p Params) Merge(over Params) (Params, error) {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range over {
		if _, ok := p[k]; !ok {
			return nil, fmt.Errorf("Parameter '%s' is not recognized.", k)
		}
		out[k] = v
	}
	return out, nil
}

// Keys returns the parameter names in sorted order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Flag interprets a parameter as a boolean switch.
func (p Params) Flag(key string) bool {
	return p[key] != 0
}

// Element is one named solid of an assembly.
type Element struct {
	ID       int
	Name     string
	Category string
	Material string
	Solid    geom.Solid
}

// Part returns the accounting view of the element.
func (e *Element) Part() massbudget.Part {
	return massbudget.Part{
		ID:              e.ID,
		Name:            e.Name,
		Category:        e.Category,
		DefaultMaterial: e.Material,
		Volume:          e.Solid.Volume(),
	}
}

// Tables are the built-in property tables of a design.
type Tables struct {
	Materials   massbudget.MaterialTable
	Tolerances  massbudget.ToleranceTable
	Assignments massbudget.Assignments
	Extras      []massbudget.ExtraMass
}

// Design is a parametric assembly.
type Design interface {
	Name() string
	Description() string
	// Defaults returns a fresh copy of the default parameter table.
	Defaults() Params
	// Tables returns a fresh copy of the design's property tables.
	Tables() Tables
	// Build constructs the assembly's elements in accounting order.
	Build(p Params, k geom.Kernel) ([]Element, error)
}

var designs = map[string]Design{}

func register(d Design) {
	designs[d.Name()] = d
}

func init() {
	register(Fusion{})
	register(CubeSat{})
	register(MicroHall{})
}

// Lookup returns the design with the given name.
func Lookup(name string) (Design, error) {
	d, ok := designs[name]
	if !ok {
		return nil, fmt.Errorf(
			"Design '%s' is not recognized. Recognized designs are %v.",
			name, Names(),
		)
	}
	return d, nil
}

// Names returns the names of all registered designs in sorted order.
func Names() []string {
	names := make([]string, 0, len(designs))
	for name := range designs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// numbered assigns sequential IDs starting from 1 in slice order.
func numbered(es []Element) []Element {
	for i := range es {
		es[i].ID = i + 1
	}
	return es
}

// cylAlongX is a cylinder whose axis runs along +X from baseX, centered on
// (y, z).
func cylAlongX(r, length, baseX, y, z float64) geom.Solid {
	cyl := &geom.Cylinder{Radius: r, Height: length}
	return geom.Translate(geom.AlongX(cyl), geom.Vec{baseX, y, z})
}

// coneAlongX is a frustum along +X from baseX, centered on (y, z).
func coneAlongX(r1, r2, length, baseX, y, z float64) geom.Solid {
	cone := &geom.Cone{R1: r1, R2: r2, Height: length}
	return geom.Translate(geom.AlongX(cone), geom.Vec{baseX, y, z})
}

// tubeAlongX is a hollow cylinder along +X from baseX, centered on (y, z).
func tubeAlongX(outer, inner, length, baseX, y, z float64) (geom.Solid, error) {
	tube, err := geom.NewTube(geom.Vec{}, outer, inner, length)
	if err != nil {
		return nil, err
	}
	return geom.Translate(geom.AlongX(tube), geom.Vec{baseX, y, z}), nil
}

// maxCount bounds hole and bolt counts.
const maxCount = 360

// checkPositive returns an error naming the first listed parameter that is
// not positive.
func checkPositive(p Params, keys ...string) error {
	for _, k := range keys {
		if !(p[k] > 0) {
			return fmt.Errorf(
				"Parameter '%s' must be positive, but is %g.", k, p[k],
			)
		}
	}
	return nil
}

// checkCount returns an error naming the first listed parameter that is not
// a non-negative integer.
func checkCount(p Params, keys ...string) error {
	for _, k := range keys {
		if n := p[k]; !(n >= 0) || n != math.Trunc(n) || n > maxCount {
			return fmt.Errorf(
				"Parameter '%s' must be a whole number in range [0, %d], but is %g.",
				k, maxCount, n,
			)
		}
	}
	return nil
}
