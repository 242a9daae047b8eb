package design

import (
	"fmt"

	"github.com/cadtools/massbudget"
	"github.com/cadtools/massbudget/geom"
)

// PropellantKg is the propellant load carried by the fusion ship's tank.
const PropellantKg = 1200.0

// Fusion is a fusion-propulsion ship laid out along +X: bus, fusion shell
// with a dome ring and reactor, propellant tank, magnetic nozzle, a pair of
// radiators and a pair of solar panel wings.
type Fusion struct{}

func (Fusion) Name() string { return "fusion" }

func (Fusion) Description() string {
	return "Fusion-propulsion ship with propellant tank and magnetic nozzle."
}

func (Fusion) Defaults() Params {
	return Params{
		"BUS_LEN": 1000.0,
		"BUS_W":   1200.0,
		"BUS_H":   1000.0,

		"DOME_LEN": 200.0,
		"DOME_OD":  1200.0,
		"DOME_ID":  800.0,

		"FUSION_LEN":     4000.0,
		"FUSION_D":       800.0,
		"REACTOR_LEN":    3000.0,
		"REACTOR_D":      800.0,
		"REACTOR_OFFSET": 500.0,

		"TANK_LEN": 8000.0,
		"TANK_D":   1000.0,

		"RAD_LEN":      3000.0,
		"RAD_W":        800.0,
		"RAD_T":        20.0,
		"RAD_CENTER_Y": 800.0,
		"RAD_BASE_Z":   200.0,
		"RAD_H":        1000.0,

		"PV_THICK_X":   30.0,
		"PV_H":         1200.0,
		"PV_HALF_SPAN": 4000.0,
		"PV_MOUNT_X":   500.0,

		"NOZZLE_LEN":   1500.0,
		"NOZZLE_D_OUT": 2000.0,
		"NOZZLE_D_IN":  800.0,

		"X_BUS_START":    0.0,
		"X_FUSION_START": 1000.0,
		"X_TANK_START":   5000.0,
		"X_NOZZLE_START": 11500.0,
	}
}

func (Fusion) Tables() Tables {
	return Tables{
		Materials: massbudget.MaterialTable{
			"Al7075":   2810.0,
			"CFRP":     1600.0,
			"Ti":       4430.0,
			"Graphite": 1850.0,
			"W":        19300.0,
			"B4C":      2520.0,
			"Inconel":  8440.0,
			"AlLi":     2600.0,
			"MLI":      50.0,
		},
		Tolerances: massbudget.ToleranceTable{
			"Bus":         2.0,
			"PanelSolar":  5.0,
			"Radiador":    3.0,
			"Reactor":     0.5,
			"Tobera":      1.0,
			"Tanque":      4.0,
			"Domo":        0.5,
			"FusionShell": 1.0,
		},
		// Radiators and the tungsten parts are lattices, not solid metal.
		Assignments: massbudget.Assignments{
			"Bus":          {Material: "Al7075", Fraction: 1.0},
			"PanelSolar_L": {Material: "CFRP", Fraction: 1.0},
			"PanelSolar_R": {Material: "CFRP", Fraction: 1.0},
			"Radiador_L":   {Material: "Ti", Fraction: 0.7},
			"Radiador_R":   {Material: "Ti", Fraction: 0.7},
			"FusionShell":  {Material: "Inconel", Fraction: 1.0},
			"Reactor":      {Material: "W", Fraction: 0.7},
			"Domo":         {Material: "W", Fraction: 0.7},
			"Tanque":       {Material: "AlLi", Fraction: 1.0},
			"Tobera":       {Material: "Inconel", Fraction: 1.0},
		},
		Extras: []massbudget.ExtraMass{
			{Part: "Tanque", Label: "Propellant", Mass: PropellantKg},
		},
	}
}

func (Fusion) Build(p Params, k geom.Kernel) ([]Element, error) {
	err := checkPositive(p,
		"BUS_LEN", "BUS_W", "BUS_H", "DOME_LEN", "DOME_OD", "DOME_ID",
		"FUSION_LEN", "FUSION_D", "REACTOR_LEN", "REACTOR_D", "TANK_LEN",
		"TANK_D", "RAD_LEN", "RAD_W", "RAD_T", "PV_THICK_X", "PV_H",
		"NOZZLE_LEN", "NOZZLE_D_OUT", "NOZZLE_D_IN",
	)
	if err != nil {
		return nil, err
	}
	if p["DOME_ID"] >= p["DOME_OD"] {
		return nil, fmt.Errorf(
			"DOME_ID (%g) must be smaller than DOME_OD (%g).",
			p["DOME_ID"], p["DOME_OD"],
		)
	}

	pvSpan := p["PV_HALF_SPAN"] - p["BUS_W"]/2
	if pvSpan <= 0 {
		return nil, fmt.Errorf(
			"PV_HALF_SPAN (%g) must reach past the side of the bus (%g).",
			p["PV_HALF_SPAN"], p["BUS_W"]/2,
		)
	}

	zAxis := p["BUS_H"] / 2

	bus := geom.NewBox(
		p["BUS_LEN"], p["BUS_W"], p["BUS_H"],
		geom.Vec{p["X_BUS_START"], -p["BUS_W"] / 2, 0},
	)
	shell := cylAlongX(
		p["FUSION_D"]/2, p["FUSION_LEN"], p["X_FUSION_START"], 0, zAxis,
	)
	dome, err := tubeAlongX(
		p["DOME_OD"]/2, p["DOME_ID"]/2, p["DOME_LEN"],
		p["X_FUSION_START"], 0, zAxis,
	)
	if err != nil {
		return nil, err
	}
	reactor := cylAlongX(
		p["REACTOR_D"]/2, p["REACTOR_LEN"],
		p["X_FUSION_START"]+p["REACTOR_OFFSET"], 0, zAxis,
	)
	tank := cylAlongX(p["TANK_D"]/2, p["TANK_LEN"], p["X_TANK_START"], 0, zAxis)

	radiator := func(sign float64) geom.Solid {
		x0 := p["X_FUSION_START"] + (p["FUSION_LEN"]-p["RAD_LEN"])/2
		y0 := sign * (p["RAD_CENTER_Y"] - p["RAD_W"]/2)
		return geom.NewBox(
			p["RAD_LEN"], p["RAD_W"], p["RAD_T"],
			geom.Vec{x0, y0, p["RAD_BASE_Z"]},
		)
	}

	// Each wing grows along +Y, so the -Y wing starts a full span outboard.
	panel := func(sign float64) geom.Solid {
		x0 := p["PV_MOUNT_X"] - p["PV_THICK_X"]/2
		y0 := p["BUS_W"] / 2
		if sign < 0 {
			y0 = -p["BUS_W"]/2 - pvSpan
		}
		return geom.NewBox(
			p["PV_THICK_X"], pvSpan, p["PV_H"], geom.Vec{x0, y0, 0},
		)
	}

	nozzle := coneAlongX(
		p["NOZZLE_D_OUT"]/2, p["NOZZLE_D_IN"]/2, p["NOZZLE_LEN"],
		p["X_NOZZLE_START"], 0, zAxis,
	)

	return numbered([]Element{
		{Name: "Bus", Category: "Bus", Material: "Al7075", Solid: bus},
		{Name: "PanelSolar_L", Category: "PanelSolar", Material: "CFRP",
			Solid: panel(+1)},
		{Name: "PanelSolar_R", Category: "PanelSolar", Material: "CFRP",
			Solid: panel(-1)},
		{Name: "Radiador_L", Category: "Radiador", Material: "Ti",
			Solid: radiator(+1)},
		{Name: "Radiador_R", Category: "Radiador", Material: "Ti",
			Solid: radiator(-1)},
		{Name: "FusionShell", Category: "FusionShell", Material: "Inconel",
			Solid: shell},
		{Name: "Reactor", Category: "Reactor", Material: "W", Solid: reactor},
		{Name: "Domo", Category: "Domo", Material: "W", Solid: dome},
		{Name: "Tanque", Category: "Tanque", Material: "AlLi", Solid: tank},
		{Name: "Tobera", Category: "Tobera", Material: "Inconel",
			Solid: nozzle},
	}), nil
}
