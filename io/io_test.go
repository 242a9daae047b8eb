package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cadtools/massbudget"
	"github.com/cadtools/massbudget/design"
)

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fname, []byte(body), 0644))
	return fname
}

const testConfig = `[Budget]
Design = fusion
StrictMaterials = true
Resolution = 32
Format = yaml

[Material "Unobtainium"]
Density = 12345

[Tolerance "Bus"]
Value = 0.25

[Part "Bus"]
Material = Unobtainium

[Part "Radiador_L"]
Fraction = 0

[ExtraMass "Bus"]
Mass = 10
Label = Avionics

[Parameter "BUS_LEN"]
Value = 2000
`

func TestReadBudgetConfig(t *testing.T) {
	wrap, err := ReadBudgetConfig(writeTemp(t, "budget.ini", testConfig))
	require.NoError(t, err)

	con := wrap.Budget
	assert.Equal(t, "fusion", con.Design)
	assert.True(t, con.StrictMaterials)
	assert.Equal(t, 32, con.Resolution)
	assert.Equal(t, "yaml", con.Format)
	assert.Equal(t, massbudget.DefaultDensity, con.DefaultDensity)

	assert.Equal(t, design.Params{"BUS_LEN": 2000}, wrap.Params())

	d, err := design.Lookup(con.Design)
	require.NoError(t, err)
	tabs := wrap.Override(d.Tables())

	assert.Equal(t, 12345.0, tabs.Materials["Unobtainium"])
	assert.Equal(t, 2810.0, tabs.Materials["Al7075"])
	assert.Equal(t, 0.25, tabs.Tolerances["Bus"])
	assert.Equal(t,
		massbudget.Assignment{Material: "Unobtainium", Fraction: 1},
		tabs.Assignments["Bus"],
	)
	assert.Equal(t,
		massbudget.Assignment{Material: "Ti", Fraction: 0},
		tabs.Assignments["Radiador_L"],
	)

	want := []massbudget.ExtraMass{
		{Part: "Tanque", Label: "Propellant", Mass: design.PropellantKg},
		{Part: "Bus", Label: "Avionics", Mass: 10},
	}
	if diff := cmp.Diff(want, tabs.Extras); diff != "" {
		t.Errorf("Extras mismatch (-want +got):\n%s", diff)
	}

	// The design's own tables are untouched.
	assert.Equal(t, 0.7, d.Tables().Assignments["Radiador_L"].Fraction)
}

func TestReadBudgetConfigErrors(t *testing.T) {
	tests := []struct {
		name, body string
	}{
		{"no design", "[Budget]\nResolution = 10\n"},
		{"bad design", "[Budget]\nDesign = warp\n"},
		{"bad format", "[Budget]\nDesign = fusion\nFormat = pdf\n"},
		{"bad resolution", "[Budget]\nDesign = fusion\nResolution = 0\n"},
		{"bad density", "[Budget]\nDesign = fusion\nDefaultDensity = -1\n"},
		{"zero material",
			"[Budget]\nDesign = fusion\n[Material \"X\"]\nDensity = 0\n"},
		{"negative tolerance",
			"[Budget]\nDesign = fusion\n[Tolerance \"Bus\"]\nValue = -1\n"},
		{"empty part", "[Budget]\nDesign = fusion\n[Part \"Bus\"]\n"},
		{"big fraction",
			"[Budget]\nDesign = fusion\n[Part \"Bus\"]\nFraction = 1.5\n"},
		{"negative extra",
			"[Budget]\nDesign = fusion\n[ExtraMass \"Bus\"]\nMass = -3\n"},
		{"unknown key", "[Budget]\nDesign = fusion\nColour = red\n"},
	}

	for i, test := range tests {
		_, err := ReadBudgetString(test.body)
		assert.Error(t, err, "%d) %s", i, test.name)
	}
}

func TestCheckInitErrorOrder(t *testing.T) {
	body := `[Budget]
Design = fusion
[Part "Tobera"]
Fraction = 2
[Part "Bus"]
Fraction = 3
[Part "Reactor"]
Fraction = 4
`
	// Sections are checked in name order, so the same one is always reported.
	for i := 0; i < 20; i++ {
		_, err := ReadBudgetString(body)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "'Bus'", "%d) wrong section reported", i)
	}
}

func TestExtraMassDefaultLabel(t *testing.T) {
	wrap, err := ReadBudgetString(
		"[Budget]\nDesign = cubesat\n[ExtraMass \"BusShell\"]\nMass = 0.5\n",
	)
	require.NoError(t, err)
	assert.Equal(t, "Extra", wrap.ExtraMass["BusShell"].Label)
}

func TestExampleConfigRoundTrip(t *testing.T) {
	for _, name := range design.Names() {
		d, err := design.Lookup(name)
		require.NoError(t, err)

		wrap, err := ReadBudgetString(ExampleConfig(d))
		require.NoError(t, err, name)
		assert.Equal(t, name, wrap.Budget.Design)

		// A config which restates the built-in tables changes nothing.
		want := d.Tables()
		got := wrap.Override(want)
		if diff := cmp.Diff(want.Materials, got.Materials); diff != "" {
			t.Errorf("%s materials (-want +got):\n%s", name, diff)
		}
		if diff := cmp.Diff(want.Tolerances, got.Tolerances); diff != "" {
			t.Errorf("%s tolerances (-want +got):\n%s", name, diff)
		}
		if diff := cmp.Diff(want.Assignments, got.Assignments); diff != "" {
			t.Errorf("%s assignments (-want +got):\n%s", name, diff)
		}
		assert.ElementsMatch(t, want.Extras, got.Extras, name)

		p, err := d.Defaults().Merge(wrap.Params())
		require.NoError(t, err)
		assert.Equal(t, d.Defaults(), p, name)
	}
}

func TestReadVolumes(t *testing.T) {
	fname := writeTemp(t, "volumes.txt", "1 1e9\n3 2500.5\n")
	vols, err := ReadVolumes(fname)
	require.NoError(t, err)
	assert.Equal(t, map[int]float64{1: 1e9, 3: 2500.5}, vols)

	parts := []massbudget.Part{
		{ID: 1, Name: "a", Volume: 1},
		{ID: 2, Name: "b", Volume: 2},
		{ID: 3, Name: "c", Volume: 3},
	}
	n, err := ApplyVolumes(parts, vols)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []float64{1e9, 2, 2500.5}, []float64{
		parts[0].Volume, parts[1].Volume, parts[2].Volume,
	})

	_, err = ApplyVolumes(parts, map[int]float64{7: 1})
	assert.Error(t, err)
}

func TestReadVolumesErrors(t *testing.T) {
	for i, body := range []string{
		"1.5 100\n",
		"0 100\n",
		"1 100\n1 200\n",
		"1 -100\n",
	} {
		_, err := ReadVolumes(writeTemp(t, "volumes.txt", body))
		assert.Error(t, err, "%d) %q", i, body)
	}
}

func tankAccountant(t *testing.T) *massbudget.Accountant {
	t.Helper()
	a := massbudget.NewAccountant(
		massbudget.MaterialTable{"AlLi": 2600, "Al7075": 2810},
		massbudget.Assignments{},
		massbudget.ToleranceTable{"Tanque": 4},
	)
	for _, part := range []massbudget.Part{
		{ID: 1, Name: "Bus", Category: "Bus", DefaultMaterial: "Al7075",
			Volume: 1e9},
		{ID: 2, Name: "Tanque", Category: "Tanque", DefaultMaterial: "AlLi",
			Volume: 2e8},
		{ID: 3, Name: "Mystery", Category: "Bus", DefaultMaterial: "Kryptonite",
			Volume: 1e8},
	} {
		_, err := a.Apply(part)
		require.NoError(t, err)
	}
	_, err := a.AddExtra(massbudget.ExtraMass{
		Part: "Tanque", Label: "Propellant", Mass: 1200,
	})
	require.NoError(t, err)
	return a
}

func TestWriteText(t *testing.T) {
	r := NewReport("fusion", tankAccountant(t))

	buf := &bytes.Buffer{}
	require.NoError(t, r.WriteText(buf, false))
	want := `=== Mass summary ===
Total geometric mass [kg]: 3430.0
Total mass with extra loads [kg]: 4630.0
Tanque (dry) [kg]: 520.0 | Propellant [kg]: 1200.0 | Wet [kg]: 1720.0
`
	assert.Equal(t, want, buf.String())

	buf.Reset()
	require.NoError(t, r.WriteText(buf, true))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 9)
	assert.True(t, strings.HasPrefix(lines[5], "ID"))
	assert.Contains(t, lines[8], "Kryptonite*")
	assert.Contains(t, lines[8], "100.0")
}

func TestWriteYAML(t *testing.T) {
	r := NewReport("fusion", tankAccountant(t))
	_, err := uuid.Parse(r.RunID)
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	require.NoError(t, r.WriteYAML(buf))
	assert.Contains(t, buf.String(), "run_id: "+r.RunID)
	assert.Contains(t, buf.String(), "extra_label: Propellant")

	got, err := ReadYAML(buf)
	require.NoError(t, err)
	if diff := cmp.Diff(r, got); diff != "" {
		t.Errorf("YAML report mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, got.Parts[0].ExtraMass)
	assert.True(t, got.Parts[2].Fallback)
}

func TestWriteXLSX(t *testing.T) {
	r := NewReport("fusion", tankAccountant(t))

	buf := &bytes.Buffer{}
	require.NoError(t, r.WriteXLSX(buf))

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "id", rows[0][0])
	assert.Equal(t, []string{"2", "Tanque"}, rows[2][:2])
	assert.Equal(t, "Propellant", rows[2][9])
	assert.Equal(t, "1200", rows[2][10])

	totals, err := f.GetRows(TotalsSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"run_id", r.RunID}, totals[0])
	assert.Equal(t, []string{"total_mass_kg", "4630"}, totals[4])
}
