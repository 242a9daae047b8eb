package design

import (
	"fmt"
	"math"

	"github.com/cadtools/massbudget"
	"github.com/cadtools/massbudget/geom"
)

// MicroHall is a 2U CubeSat built around a central cylinder between two
// circular bulkheads, with a micro Hall thruster on its +Z face and a support
// plate inside the +X wall. Units are mm.
//
// Edge fillets on the bus shell are not modelled.
type MicroHall struct{}

func (MicroHall) Name() string { return "microhall" }

func (MicroHall) Description() string {
	return "2U CubeSat with a central cylinder and a micro Hall thruster."
}

func (MicroHall) Defaults() Params {
	return Params{
		"BUS_L": 227.0,
		"BUS_W": 100.0,
		"BUS_H": 100.0,
		"WALL":  1.6,

		"CYL_D":    74.0,
		"CYL_L":    190.0,
		"CYL_WALL": 1.2,

		"BULK_D":   94.0,
		"BULK_THK": 2.5,

		"CAN_D":         60.0,
		"CAN_L":         50.0,
		"FLANGE_D":      76.0,
		"FLANGE_THK":    3.0,
		"NOZZLE_EXIT_D": 10.0,
		"NOZZLE_L":      30.0,
		"COIL_R":        35.0,
		"COIL_MINOR_R":  5.0,

		"PLATE_THK":    5.0,
		"PLATE_MARGIN": 10.0,
	}
}

func (MicroHall) Tables() Tables {
	return Tables{
		Materials: massbudget.MaterialTable{
			"Al6061": 2700.0,
			"CFRP":   1600.0,
			"Ti":     4430.0,
		},
		Tolerances: massbudget.ToleranceTable{
			"Bus":      0.1,
			"Cylinder": 0.2,
			"Bulkhead": 0.1,
			"Thruster": 0.05,
			"Plate":    0.1,
		},
		// The coil is wound wire, not solid metal.
		Assignments: massbudget.Assignments{
			"Thruster": {Material: "Ti", Fraction: 0.85},
		},
	}
}

func (MicroHall) Build(p Params, k geom.Kernel) ([]Element, error) {
	err := checkPositive(p,
		"BUS_L", "BUS_W", "BUS_H", "WALL", "CYL_D", "CYL_L", "CYL_WALL",
		"BULK_D", "BULK_THK", "CAN_D", "CAN_L", "FLANGE_D", "FLANGE_THK",
		"NOZZLE_L", "COIL_R", "COIL_MINOR_R", "PLATE_THK",
	)
	if err != nil {
		return nil, err
	}
	if p["NOZZLE_EXIT_D"] < 0 {
		return nil, fmt.Errorf(
			"NOZZLE_EXIT_D must not be negative, but is %g.", p["NOZZLE_EXIT_D"],
		)
	}
	w, h, l, wall := p["BUS_W"], p["BUS_H"], p["BUS_L"], p["WALL"]
	cx, cy := w/2, h/2

	shell, err := geom.NewHollowBox(geom.Vec{}, geom.Vec{w, h, l}, wall)
	if err != nil {
		return nil, fmt.Errorf("Bad bus shell: %w", err)
	}

	cylL := p["CYL_L"]
	if cylL > l-2*wall {
		return nil, fmt.Errorf(
			"CYL_L (%g) is longer than the inside of the bus (%g).",
			cylL, l-2*wall,
		)
	}
	z0 := (l - cylL) / 2
	cyl, err := geom.NewTube(
		geom.Vec{cx, cy, z0}, p["CYL_D"]/2, p["CYL_D"]/2-p["CYL_WALL"], cylL,
	)
	if err != nil {
		return nil, fmt.Errorf("CYL_WALL (%g) does not fit CYL_D (%g): %w",
			p["CYL_WALL"], p["CYL_D"], err)
	}

	bulkD, bulkThk := p["BULK_D"], p["BULK_THK"]
	if inside := math.Min(w, h) - 2*wall; bulkD > inside {
		return nil, fmt.Errorf(
			"BULK_D (%g) does not fit inside the bus (%g).", bulkD, inside,
		)
	} else if 2*bulkThk > cylL {
		return nil, fmt.Errorf(
			"Two bulkheads of BULK_THK (%g) do not fit on CYL_L (%g).",
			bulkThk, cylL,
		)
	}
	bulkhead := func(z float64) geom.Solid {
		return &geom.Cylinder{
			Base: geom.Vec{cx, cy, z}, Radius: bulkD / 2, Height: bulkThk,
		}
	}

	margin, plateThk := p["PLATE_MARGIN"], p["PLATE_THK"]
	if margin < 0 || 2*margin >= h || plateThk >= w {
		return nil, fmt.Errorf(
			"A %g mm support plate with PLATE_MARGIN %g does not fit a %g mm bus.",
			plateThk, margin, h,
		)
	}
	// The plate is square, sized from the bus height on both sides.
	plate := geom.NewBox(
		plateThk, h-2*margin, h-2*margin, geom.Vec{w - plateThk, margin, margin},
	)

	return numbered([]Element{
		{Name: "BusShell", Category: "Bus", Material: "Al6061", Solid: shell},
		{Name: "CentralCylinder", Category: "Cylinder", Material: "CFRP",
			Solid: cyl},
		{Name: "BulkheadFront", Category: "Bulkhead", Material: "Al6061",
			Solid: bulkhead(z0)},
		{Name: "BulkheadRear", Category: "Bulkhead", Material: "Al6061",
			Solid: bulkhead(z0 + cylL - bulkThk)},
		{Name: "Thruster", Category: "Thruster", Material: "Ti",
			Solid: microHallThruster(p, k, cx, cy)},
		{Name: "SupportPlate", Category: "Plate", Material: "Al6061",
			Solid: plate},
	}), nil
}

// microHallThruster fuses the plasma chamber, cone nozzle, mounting flange
// and X-axis coil. The flange sits under the +Z face of the bus.
func microHallThruster(p Params, k geom.Kernel, cx, cy float64) geom.Solid {
	l := p["BUS_L"]
	canR, canL := p["CAN_D"]/2, p["CAN_L"]

	chamber := &geom.Cylinder{
		Base: geom.Vec{cx, cy, l}, Radius: canR, Height: canL,
	}
	nozzle := &geom.Cone{
		Base: geom.Vec{cx, cy, l + canL},
		R1:   canR, R2: p["NOZZLE_EXIT_D"] / 2, Height: p["NOZZLE_L"],
	}
	flange := &geom.Cylinder{
		Base:   geom.Vec{cx, cy, l - p["FLANGE_THK"]},
		Radius: p["FLANGE_D"] / 2, Height: p["FLANGE_THK"],
	}
	coil := &geom.Torus{
		Center: geom.Vec{cx, cy, l + canL/2},
		Major:  p["COIL_R"], Minor: p["COIL_MINOR_R"], Axis: geom.X,
	}
	return k.Fuse(chamber, nozzle, flange, coil)
}
