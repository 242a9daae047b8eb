package massbudget

// Part is a finished solid ready for mass accounting. Volume is in cubic
// millimeters, the native unit of the geometry kernel.
type Part struct {
	ID       int
	Name     string
	Category string
	// DefaultMaterial is used when no Assignment exists for Name.
	DefaultMaterial string
	Volume          float64
}

// Properties is the design record attached to a Part once it has been
// accounted for. ExtraMass and WetMass are nil unless the part carries a
// supplemental load.
type Properties struct {
	Material  string
	Density   float64 // kg/m^3
	Fraction  float64
	Tolerance float64 // mm
	GeomMass  float64 // kg

	ExtraLabel string
	ExtraMass  *float64
	WetMass    *float64

	// Fallback is true if Material did not resolve and Density is the
	// accountant's default density.
	Fallback bool
}

// HasExtra returns true if an extra mass has been attached to the part.
func (p *Properties) HasExtra() bool {
	return p.ExtraMass != nil
}

// ExtraMass is a fixed supplemental mass, e.g. a propellant load, carried by
// exactly one part.
type ExtraMass struct {
	Part  string
	Label string
	Mass  float64 // kg
}

// Totals are the assembly-wide sums. They are only meaningful once every
// part has been applied exactly once.
type Totals struct {
	GeomMass  float64
	ExtraMass float64
	TotalMass float64
}
