package io

import (
	"io"

	"github.com/xuri/excelize/v2"
)

// TotalsSheet is the name of the spreadsheet sheet holding assembly totals.
const TotalsSheet = "Totals"

var xlsxHeader = []interface{}{
	"id", "name", "category", "material", "density_kg_m3", "fraction",
	"volume_mm3", "tolerance", "geom_mass_kg", "extra_label",
	"extra_mass_kg", "wet_mass_kg", "fallback_density",
}

// WriteXLSX writes the report as a spreadsheet: one row per part on the
// first sheet and the totals on a second sheet.
func (r *Report) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetRow(sheet, "A1", &xlsxHeader); err != nil {
		return err
	}

	for i, p := range r.Parts {
		row := []interface{}{
			p.ID, p.Name, p.Category, p.Material, p.Density, p.Fraction,
			p.Volume, p.Tolerance, p.GeomMass, p.ExtraLabel, nil, nil,
			p.Fallback,
		}
		if p.ExtraMass != nil {
			row[10], row[11] = *p.ExtraMass, *p.WetMass
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(TotalsSheet); err != nil {
		return err
	}
	totals := [][]interface{}{
		{"run_id", r.RunID},
		{"design", r.Design},
		{"geom_mass_kg", r.Totals.GeomMass},
		{"extra_mass_kg", r.Totals.ExtraMass},
		{"total_mass_kg", r.Totals.TotalMass},
	}
	for i := range totals {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(TotalsSheet, cell, &totals[i]); err != nil {
			return err
		}
	}

	return f.Write(w)
}
