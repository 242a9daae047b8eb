package design

import (
	"fmt"
	"math"

	"github.com/cadtools/massbudget"
	"github.com/cadtools/massbudget/geom"
)

// CubeSat is a 2U CubeSat bus carrying an electric micro-thruster on its +Z
// face. Units are mm. The thruster is an ion engine (two grids) unless
// HALL_THRUSTER is set, in which case it gets a Hall channel and lip.
//
// Edge fillets on the bus shell are not modelled.
type CubeSat struct{}

// nozzleSegments is the number of straight segments the spline nozzle wall
// is sampled into.
const nozzleSegments = 48

func (CubeSat) Name() string { return "cubesat" }

func (CubeSat) Description() string {
	return "2U CubeSat with an ion or Hall micro-thruster."
}

func (CubeSat) Defaults() Params {
	return Params{
		"BUS_W": 100.0,
		"BUS_H": 100.0,
		"BUS_L": 227.0,
		"WALL":  1.6,

		"BULK_THK":      3.0,
		"BULK_Z_OFFSET": 16.0,
		"FEED_PCD":      24.0,
		"FEED_HOLES":    4,
		"FEED_DIAM":     6.0,

		"USE_CENTRAL_TUBE": 1,
		"TUBE_OD":          70.0,
		"TUBE_WALL":        1.2,
		"TUBE_L":           160.0,

		"HALL_THRUSTER": 0,
		"CHAMBER_OD":    60.0,
		"CHAMBER_L":     50.0,
		"FLANGE_OD":     78.0,
		"FLANGE_THK":    3.0,
		"PCD":           66.0,
		"PCD_N":         6,
		"BOLT_D":        3.0,
		"CBORE_D":       6.0,
		"CBORE_DEPTH":   1.5,

		"GRID_SCREEN_THK": 1.2,
		"GRID_ACCEL_THK":  1.2,
		"GRID_GAP":        1.5,
		"GRID_OPENING":    0.65,

		"HALL_CHANNEL_OD":  72.0,
		"HALL_CHANNEL_ID":  52.0,
		"HALL_CHANNEL_LEN": 12.0,
		"HALL_LIP":         2.0,

		"USE_NOZZLE":          1,
		"NOZZLE_LEN":          32.0,
		"NOZZLE_INLET_RATIO":  0.95,
		"NOZZLE_THROAT_RATIO": 0.55,
		"NOZZLE_EXIT_D":       14.0,

		"COIL_R":            34.0,
		"COIL_MINOR_R":      4.0,
		"COIL_OFFSET_RATIO": 0.45,

		"STRUT_W":           6.0,
		"STRUT_T":           3.0,
		"STRUT_CLEAR":       6.0,
		"SIDE_STRUT_OFFSET": 18.0,

		"PANEL_RECESS":       1,
		"PANEL_RECESS_DEPTH": 0.8,
		"RAIL_KEEP":          8.5,
		"END_KEEP":           8.0,

		"ADD_RADIATOR":    1,
		"RAD_THK":         2.0,
		"RAD_L_RATIO":     0.6,
		"STANDOFF_D":      6.0,
		"STANDOFF_HOLE_D": 3.0,
		"STANDOFF_MARGIN": 10.0,

		"EPS": 0.2,
	}
}

func (CubeSat) Tables() Tables {
	return Tables{
		Materials: massbudget.MaterialTable{
			"Al6061": 2700.0,
			"Al7075": 2810.0,
			"CFRP":   1600.0,
			"Ti":     4430.0,
			"Mo":     10220.0,
		},
		Tolerances: massbudget.ToleranceTable{
			"Bus":      0.1,
			"Bulkhead": 0.1,
			"Tube":     0.2,
			"Thruster": 0.05,
			"Strut":    0.1,
			"Radiator": 0.2,
		},
		// Grids and coil are mostly hollow or wound; treat the fused
		// thruster as 80% dense.
		Assignments: massbudget.Assignments{
			"ThrusterAssembly": {Material: "Ti", Fraction: 0.8},
		},
	}
}

func (CubeSat) Build(p Params, k geom.Kernel) ([]Element, error) {
	err := checkPositive(p,
		"BUS_W", "BUS_H", "BUS_L", "WALL", "BULK_THK", "CHAMBER_OD",
		"CHAMBER_L", "FLANGE_OD", "FLANGE_THK", "STRUT_W", "STRUT_T",
	)
	if err != nil {
		return nil, err
	} else if err := checkCount(p, "FEED_HOLES", "PCD_N"); err != nil {
		return nil, err
	}
	w, h, l, wall := p["BUS_W"], p["BUS_H"], p["BUS_L"], p["WALL"]
	shell, err := geom.NewHollowBox(geom.Vec{}, geom.Vec{w, h, l}, wall)
	if err != nil {
		return nil, fmt.Errorf("Bad bus shell: %w", err)
	}
	if err := checkFits(p, "FEED_PCD", "FEED_DIAM",
		math.Min(w, h)-2*wall, "the bus interior"); err != nil {
		return nil, err
	} else if err := checkFits(p, "PCD", "BOLT_D", p["FLANGE_OD"],
		"FLANGE_OD"); err != nil {
		return nil, err
	} else if err := checkFits(p, "PCD", "CBORE_D", p["FLANGE_OD"],
		"FLANGE_OD"); err != nil {
		return nil, err
	}

	cx, cy := w/2, h/2
	eps := p["EPS"]
	frontInnerZ := l - wall

	es := []Element{}

	// Bus shell, optionally with shallow recesses for the body-mounted
	// solar panels on the four long faces.
	var bus geom.Solid = shell
	if p.Flag("PANEL_RECESS") {
		d, rk, ek := p["PANEL_RECESS_DEPTH"], p["RAIL_KEEP"], p["END_KEEP"]
		bus = k.Cut(bus,
			geom.NewBox(d, h-2*rk, l-2*ek, geom.Vec{w - d, rk, ek}),
			geom.NewBox(d, h-2*rk, l-2*ek, geom.Vec{0, rk, ek}),
			geom.NewBox(w-2*rk, d, l-2*ek, geom.Vec{rk, h - d, ek}),
			geom.NewBox(w-2*rk, d, l-2*ek, geom.Vec{rk, 0, ek}),
		)
	}
	es = append(es, Element{
		Name: "BusShell", Category: "Bus", Material: "Al6061", Solid: bus,
	})

	// Inner bulkhead with feedthrough holes on a bolt circle.
	bulkThk := p["BULK_THK"]
	bulkZ := frontInnerZ - p["BULK_Z_OFFSET"] - bulkThk
	bulk := geom.NewBox(
		w-2*wall, h-2*wall, bulkThk, geom.Vec{wall, wall, bulkZ},
	)
	feeds := boltCircle(
		cx, cy, p["FEED_PCD"], int(p["FEED_HOLES"]), p["FEED_DIAM"],
		bulkThk+eps, bulkZ-eps/2,
	)
	es = append(es, Element{
		Name: "BulkheadInner", Category: "Bulkhead", Material: "Al6061",
		Solid: k.Cut(bulk, feeds...),
	})

	if p.Flag("USE_CENTRAL_TUBE") {
		if err := checkPositive(p, "TUBE_OD", "TUBE_WALL", "TUBE_L"); err != nil {
			return nil, err
		}
		tubeZ := frontInnerZ - p["BULK_Z_OFFSET"] - p["TUBE_L"]
		tube, err := geom.NewTube(
			geom.Vec{cx, cy, tubeZ}, p["TUBE_OD"]/2,
			p["TUBE_OD"]/2-p["TUBE_WALL"], p["TUBE_L"],
		)
		if err != nil {
			return nil, fmt.Errorf("TUBE_WALL (%g) does not fit TUBE_OD (%g): %w",
				p["TUBE_WALL"], p["TUBE_OD"], err)
		}
		es = append(es, Element{
			Name: "CentralTube", Category: "Tube", Material: "CFRP",
			Solid: tube,
		})
	}

	thruster, err := cubeSatThruster(p, k, cx, cy, frontInnerZ)
	if err != nil {
		return nil, err
	}
	es = append(es, Element{
		Name: "ThrusterAssembly", Category: "Thruster", Material: "Ti",
		Solid: thruster,
	})

	es = append(es, Element{
		Name: "ThrusterStruts", Category: "Strut", Material: "Al6061",
		Solid: cubeSatStruts(p, cx, bulkZ+bulkThk, frontInnerZ),
	})

	if p.Flag("ADD_RADIATOR") {
		rad, err := cubeSatRadiator(p, k)
		if err != nil {
			return nil, err
		}
		es = append(es, Element{
			Name: "RadiatorY-", Category: "Radiator", Material: "Al6061",
			Solid: rad,
		})
	}

	return numbered(es), nil
}

// checkFits returns an error unless holes of diameter p[diaKey] on a circle
// of diameter p[pcdKey] lie within a disk of diameter outer.
func checkFits(p Params, pcdKey, diaKey string, outer float64, what string) error {
	if pcd, dia := p[pcdKey], p[diaKey]; pcd+dia > outer {
		return fmt.Errorf(
			"%s (%g) plus %s (%g) does not fit within %s (%g).",
			pcdKey, pcd, diaKey, dia, what, outer,
		)
	}
	return nil
}

// boltCircle returns n vertical cylinders of the given diameter and height,
// evenly spaced on a circle of diameter pcd around (cx, cy), with their
// bases at z0.
func boltCircle(
	cx, cy, pcd float64, n int, dia, height, z0 float64,
) []geom.Solid {
	holes := make([]geom.Solid, n)
	for i := range holes {
		ang := 2 * math.Pi * float64(i) / float64(n)
		holes[i] = &geom.Cylinder{
			Base: geom.Vec{
				cx + pcd/2*math.Cos(ang), cy + pcd/2*math.Sin(ang), z0,
			},
			Radius: dia / 2,
			Height: height,
		}
	}
	return holes
}

func cubeSatThruster(
	p Params, k geom.Kernel, cx, cy, frontInnerZ float64,
) (geom.Solid, error) {
	eps := p["EPS"]
	chamberOD, chamberL := p["CHAMBER_OD"], p["CHAMBER_L"]
	chamberZ := p["BUS_L"]
	topZ := chamberZ + chamberL

	chamber := &geom.Cylinder{
		Base: geom.Vec{cx, cy, chamberZ}, Radius: chamberOD / 2,
		Height: chamberL,
	}

	// Mounting flange with bolt holes and counterbores. The bolt holes start
	// at the inner face of the front wall.
	flangeThk := p["FLANGE_THK"]
	flange := &geom.Cylinder{
		Base:   geom.Vec{cx, cy, frontInnerZ - flangeThk},
		Radius: p["FLANGE_OD"] / 2, Height: flangeThk + eps,
	}
	n := int(p["PCD_N"])
	tools := boltCircle(
		cx, cy, p["PCD"], n, p["BOLT_D"],
		flangeThk+2*eps+eps, frontInnerZ-eps/2,
	)
	if depth := p["CBORE_DEPTH"]; p["CBORE_D"] > 0 && depth > 0 {
		tools = append(tools, boltCircle(
			cx, cy, p["PCD"], n, p["CBORE_D"],
			depth+eps, frontInnerZ-(depth+eps),
		)...)
	}
	parts := []geom.Solid{k.Cut(flange, tools...)}

	if p.Flag("HALL_THRUSTER") {
		chLen, lip := p["HALL_CHANNEL_LEN"], p["HALL_LIP"]
		od, id := p["HALL_CHANNEL_OD"], p["HALL_CHANNEL_ID"]
		if id >= od {
			return nil, fmt.Errorf(
				"HALL_CHANNEL_ID (%g) must be smaller than HALL_CHANNEL_OD (%g).",
				id, od,
			)
		}
		channel, err := geom.NewTube(
			geom.Vec{cx, cy, topZ - chLen}, od/2, id/2, chLen,
		)
		if err != nil {
			return nil, fmt.Errorf("Bad Hall channel: %w", err)
		}
		lipRing, err := geom.NewTube(geom.Vec{cx, cy, topZ}, od/2, 0.95*id/2, lip)
		if err != nil {
			return nil, fmt.Errorf("Bad Hall lip: %w", err)
		}
		parts = append(parts, channel, lipRing)
	} else {
		if o := p["GRID_OPENING"]; !(o >= 0 && o < 1) {
			return nil, fmt.Errorf(
				"GRID_OPENING must be in range [0, 1), but is %g.", o,
			)
		}
		freeD := chamberOD * p["GRID_OPENING"]
		screenThk, accelThk := p["GRID_SCREEN_THK"], p["GRID_ACCEL_THK"]
		screenZ := topZ - screenThk
		accelZ := screenZ + screenThk + p["GRID_GAP"]
		screen, err := geom.NewTube(
			geom.Vec{cx, cy, screenZ}, chamberOD/2, freeD/2, screenThk,
		)
		if err != nil {
			return nil, fmt.Errorf("Bad screen grid: %w", err)
		}
		accel, err := geom.NewTube(
			geom.Vec{cx, cy, accelZ}, chamberOD/2, 0.9*freeD/2, accelThk,
		)
		if err != nil {
			return nil, fmt.Errorf("Bad accel grid: %w", err)
		}
		parts = append(parts, screen, accel)
	}

	parts = append(parts, &geom.Torus{
		Center: geom.Vec{cx, cy, chamberZ + chamberL*p["COIL_OFFSET_RATIO"]},
		Major:  p["COIL_R"], Minor: p["COIL_MINOR_R"], Axis: geom.X,
	})

	if p.Flag("USE_NOZZLE") {
		nozzle, err := nozzleRevolve(
			topZ, p["NOZZLE_LEN"],
			chamberOD*p["NOZZLE_INLET_RATIO"],
			chamberOD*p["NOZZLE_THROAT_RATIO"],
			p["NOZZLE_EXIT_D"],
		)
		if err != nil {
			return nil, err
		}
		parts = append(parts, geom.Translate(nozzle, geom.Vec{cx, cy, 0}))
	}

	return k.Fuse(chamber, parts...), nil
}

// nozzleRevolve builds a converging-diverging nozzle plug starting at z0: a
// spline wall through inlet, throat and exit radii, closed along the axis and
// revolved about Z.
func nozzleRevolve(z0, length, dInlet, dThroat, dExit float64) (geom.Solid, error) {
	rIn, rTh, rEx := dInlet/2, dThroat/2, dExit/2
	z1 := z0 + length
	knots := []geom.RZ{
		{R: rIn, Z: z0},
		{R: (rIn + rTh) * 0.6, Z: z0 + 0.22*length},
		{R: rTh, Z: z0 + 0.35*length},
		{R: (rTh + rEx) * 0.5, Z: z0 + 0.70*length},
		{R: rEx, Z: z1},
	}
	wall, err := geom.SplineWall(knots, nozzleSegments)
	if err != nil {
		return nil, err
	}
	profile := append(wall, geom.RZ{R: 0, Z: z1}, geom.RZ{R: 0, Z: z0})
	return geom.NewRevolved(profile)
}

// cubeSatStruts returns the four corner struts and two side struts which
// carry the thruster loads from the bulkhead to the front wall.
func cubeSatStruts(p Params, cx, z0, frontInnerZ float64) geom.Solid {
	w, h, wall := p["BUS_W"], p["BUS_H"], p["WALL"]
	sw, st, clear := p["STRUT_W"], p["STRUT_T"], p["STRUT_CLEAR"]
	length := frontInnerZ - z0 - 0.5

	x0, y0 := wall+clear, wall+clear
	x1, y1 := w-wall-clear-sw, h-wall-clear-sw

	struts := []geom.Solid{}
	for _, x := range []float64{x0, x1} {
		for _, y := range []float64{y0, y1} {
			struts = append(struts, geom.NewBox(sw, st, length, geom.Vec{x, y, z0}))
		}
	}
	off := p["SIDE_STRUT_OFFSET"]
	struts = append(struts,
		geom.NewBox(st, sw, length, geom.Vec{cx - off, wall + clear, z0}),
		geom.NewBox(st, sw, length, geom.Vec{cx + off - st, h - wall - clear - sw, z0}),
	)
	return geom.Compound(struts...)
}

// cubeSatRadiator returns the -Y radiator plate with its four drilled
// standoffs.
func cubeSatRadiator(p Params, k geom.Kernel) (geom.Solid, error) {
	if hole, d := p["STANDOFF_HOLE_D"], p["STANDOFF_D"]; !(hole >= 0 && hole < d) {
		return nil, fmt.Errorf(
			"STANDOFF_HOLE_D (%g) must be in range [0, STANDOFF_D = %g).",
			hole, d,
		)
	}
	w, l, wall := p["BUS_W"], p["BUS_L"], p["WALL"]
	rk := p["RAIL_KEEP"]
	thk, radW, radL := p["RAD_THK"], w-2*rk, l*p["RAD_L_RATIO"]
	z0, x0 := (l-radL)/2, rk
	standoffH := thk + wall + 1
	margin := p["STANDOFF_MARGIN"]

	plate := geom.NewBox(radW, thk, radL, geom.Vec{x0, -thk, z0})
	standoffs, holes := []geom.Solid{}, []geom.Solid{}
	for _, dx := range []float64{margin, radW - margin} {
		for _, dz := range []float64{margin, radL - margin} {
			standoffs = append(standoffs, &geom.Cylinder{
				Base:   geom.Vec{x0 + dx, -(standoffH - wall), z0 + dz},
				Radius: p["STANDOFF_D"] / 2, Height: standoffH,
			})
			holes = append(holes, &geom.Cylinder{
				Base:   geom.Vec{x0 + dx, -thk - 1, z0 + dz},
				Radius: p["STANDOFF_HOLE_D"] / 2, Height: thk + wall + 2,
			})
		}
	}
	return k.Cut(k.Fuse(plate, geom.Compound(standoffs...)), holes...), nil
}
