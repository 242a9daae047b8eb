package massbudget

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func testTables() (MaterialTable, Assignments, ToleranceTable) {
	mt := MaterialTable{
		"Al7075": 2810, "Ti": 4430, "AlLi": 2600, "W": 19300,
	}
	as := Assignments{
		"Radiador_L": {"Ti", 0.7},
		"Reactor":    {"W", 0.7},
	}
	tt := ToleranceTable{"Bus": 2.0, "Radiador": 3.0}
	return mt, as, tt
}

func TestMass(t *testing.T) {
	assert.InDelta(t, 2810.0, Mass(1e9, 2810, 1.0), eps, "1 m^3 of Al7075")
	assert.InDelta(t, 0.0, Mass(0, 2810, 1.0), eps, "empty volume")
	assert.InDelta(t, 2810.0*0.7, Mass(1e9, 2810, 0.7), eps, "porous")

	vs := []float64{0, 1, 12.5, 1e6, 3.3e9}
	ds := []float64{50, 1600, 19300}
	fs := []float64{0, 0.25, 0.7, 1}
	for _, v := range vs {
		for _, d := range ds {
			for _, f := range fs {
				want := d * v * 1e-9 * f
				assert.InDelta(t, want, Mass(v, d, f), 1e-9*math.Max(1, want))
			}
		}
	}
}

func TestMassMonotonic(t *testing.T) {
	prev := Mass(0, 2810, 1)
	for v := 1e6; v < 1e10; v *= 3 {
		m := Mass(v, 2810, 1)
		assert.GreaterOrEqual(t, m, prev, "volume %g", v)
		prev = m
	}

	prev = Mass(1e9, 1, 1)
	for d := 10.0; d < 3e4; d *= 2 {
		m := Mass(1e9, d, 1)
		assert.GreaterOrEqual(t, m, prev, "density %g", d)
		prev = m
	}
}

func TestWetMass(t *testing.T) {
	assert.Equal(t, 1700.0, WetMass(500, 1200))
	assert.Equal(t, WetMass(500, 1200), WetMass(500, 1200))
	assert.Equal(t, 42.0, WetMass(42, 0))
}

func TestApplyTotals(t *testing.T) {
	mt, as, tt := testTables()
	a := NewAccountant(mt, as, tt)

	p, err := a.Apply(Part{
		ID: 1, Name: "Bus", Category: "Bus",
		DefaultMaterial: "Al7075", Volume: 1e9,
	})
	require.NoError(t, err)
	assert.Equal(t, "Al7075", p.Material)
	assert.Equal(t, 2810.0, p.Density)
	assert.Equal(t, 1.0, p.Fraction)
	assert.Equal(t, 2.0, p.Tolerance)
	assert.InDelta(t, 2810.0, p.GeomMass, eps)
	assert.False(t, p.HasExtra())

	p, err = a.Apply(Part{
		ID: 2, Name: "Radiador_L", Category: "Radiador",
		DefaultMaterial: "Al7075", Volume: 2e8,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ti", p.Material, "assignment overrides default")
	assert.InDelta(t, 4430*0.2*0.7, p.GeomMass, eps)

	tot := a.Totals()
	assert.InDelta(t, 2810+4430*0.2*0.7, tot.GeomMass, eps)
	assert.Equal(t, tot.GeomMass, tot.TotalMass)
	assert.Zero(t, tot.ExtraMass)
}

func TestTotalsTwoParts(t *testing.T) {
	mt := MaterialTable{"unit": 1e9}
	a := NewAccountant(mt, nil, nil)
	_, err := a.Apply(Part{Name: "a", DefaultMaterial: "unit", Volume: 100})
	require.NoError(t, err)
	_, err = a.Apply(Part{Name: "b", DefaultMaterial: "unit", Volume: 250.5})
	require.NoError(t, err)
	assert.InDelta(t, 350.5, a.Totals().GeomMass, eps)
}

func TestTotalsOrderIndependent(t *testing.T) {
	mt, as, tt := testTables()
	parts := []Part{
		{Name: "Bus", Category: "Bus", DefaultMaterial: "Al7075", Volume: 1.2e9},
		{Name: "Reactor", DefaultMaterial: "W", Volume: 1.5e9},
		{Name: "Radiador_L", DefaultMaterial: "Ti", Volume: 4.8e7},
		{Name: "Tanque", DefaultMaterial: "AlLi", Volume: 6.28e9},
	}

	forward := NewAccountant(mt, as, tt)
	masses := []float64{}
	for _, p := range parts {
		props, err := forward.Apply(p)
		require.NoError(t, err)
		masses = append(masses, props.GeomMass)
	}

	backward := NewAccountant(mt, as, tt)
	for i := len(parts) - 1; i >= 0; i-- {
		_, err := backward.Apply(parts[i])
		require.NoError(t, err)
	}

	assert.InDelta(t, Sum(masses...), forward.Totals().GeomMass, 1e-6)
	assert.InDelta(t,
		forward.Totals().GeomMass, backward.Totals().GeomMass, 1e-6,
	)
}

func TestFallbackDensity(t *testing.T) {
	mt, as, tt := testTables()
	a := NewAccountant(mt, as, tt)

	p, err := a.Apply(Part{Name: "Tobera", DefaultMaterial: "Inconnel", Volume: 1e9})
	require.NoError(t, err)
	assert.True(t, p.Fallback)
	assert.Equal(t, 1000.0, p.Density)
	assert.InDelta(t, 1000.0, p.GeomMass, eps)
	assert.Equal(t, []string{"Tobera"}, a.Fallbacks())
	assert.Equal(t, DefaultTolerance, p.Tolerance, "missing category")

	a = NewAccountant(mt, as, tt, WithDefaultDensity(500))
	p, err = a.Apply(Part{Name: "Tobera", DefaultMaterial: "Inconnel", Volume: 1e9})
	require.NoError(t, err)
	assert.InDelta(t, 500.0, p.GeomMass, eps)
}

func TestStrictMaterials(t *testing.T) {
	mt, as, tt := testTables()
	a := NewAccountant(mt, as, tt, Strict(true))

	_, err := a.Apply(Part{Name: "Tobera", DefaultMaterial: "Inconnel", Volume: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownMaterial))
	assert.Zero(t, a.Totals().GeomMass)
	assert.Empty(t, a.Parts())
}

func TestApplyValidation(t *testing.T) {
	mt, _, tt := testTables()
	bad := Assignments{"Lattice": {"Ti", 1.3}}
	a := NewAccountant(mt, bad, tt)

	_, err := a.Apply(Part{Name: "Neg", DefaultMaterial: "Ti", Volume: -1})
	assert.True(t, errors.Is(err, ErrInvalidVolume))
	_, err = a.Apply(Part{Name: "NaN", DefaultMaterial: "Ti", Volume: math.NaN()})
	assert.True(t, errors.Is(err, ErrInvalidVolume))
	_, err = a.Apply(Part{Name: "Lattice", DefaultMaterial: "Ti", Volume: 1})
	assert.True(t, errors.Is(err, ErrInvalidFraction))

	// Without validation the raw arithmetic propagates.
	a = NewAccountant(mt, nil, tt, Validate(false))
	p, err := a.Apply(Part{Name: "Neg", DefaultMaterial: "Ti", Volume: -1e9})
	require.NoError(t, err)
	assert.InDelta(t, -4430.0, p.GeomMass, eps)
}

func TestDuplicatePart(t *testing.T) {
	mt, as, tt := testTables()
	a := NewAccountant(mt, as, tt)
	part := Part{Name: "Bus", DefaultMaterial: "Al7075", Volume: 1e9}

	_, err := a.Apply(part)
	require.NoError(t, err)
	_, err = a.Apply(part)
	assert.True(t, errors.Is(err, ErrDuplicatePart))
	assert.InDelta(t, 2810.0, a.Totals().GeomMass, eps)
}

func TestAddExtra(t *testing.T) {
	mt := MaterialTable{"AlLi": 2600}
	a := NewAccountant(mt, nil, nil)

	_, err := a.AddExtra(ExtraMass{Part: "Tanque", Mass: 1200})
	assert.True(t, errors.Is(err, ErrUnknownPart))

	// 500 kg of AlLi.
	vol := 500.0 / 2600 / MM3ToM3
	_, err = a.Apply(Part{Name: "Tanque", DefaultMaterial: "AlLi", Volume: vol})
	require.NoError(t, err)

	p, err := a.AddExtra(ExtraMass{Part: "Tanque", Label: "Propellant", Mass: 1200})
	require.NoError(t, err)
	require.True(t, p.HasExtra())
	assert.InDelta(t, 500.0, p.GeomMass, 1e-6)
	assert.Equal(t, 1200.0, *p.ExtraMass)
	assert.InDelta(t, 1700.0, *p.WetMass, 1e-6)
	assert.Equal(t, "Propellant", p.ExtraLabel)

	_, err = a.AddExtra(ExtraMass{Part: "Tanque", Mass: 1200})
	assert.True(t, errors.Is(err, ErrExtraAlreadySet))

	tot := a.Totals()
	assert.InDelta(t, 500.0, tot.GeomMass, 1e-6)
	assert.Equal(t, 1200.0, tot.ExtraMass)
	assert.InDelta(t, 1700.0, tot.TotalMass, 1e-6)

	stored, ok := a.Properties("Tanque")
	require.True(t, ok)
	assert.InDelta(t, 1700.0, *stored.WetMass, 1e-6)
}
