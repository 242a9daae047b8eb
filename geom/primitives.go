package geom

import (
	"fmt"
	"math"
)

// Solid is a closed region of space.
type Solid interface {
	// Volume returns the volume of the solid in mm^3.
	Volume() float64
	// Contains returns true if p lies inside the solid.
	Contains(p Vec) bool
	// Bounds returns a box which contains the solid.
	Bounds() AABB
}

// Axis is one of the three coordinate axes.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

var (
	_ Solid = &Box{}
	_ Solid = &Cylinder{}
	_ Solid = &Cone{}
	_ Solid = &Torus{}
	_ Solid = &Tube{}
	_ Solid = &HollowBox{}
)

// Box is a rectangular block with its lowermost corner at Origin.
type Box struct {
	Origin Vec
	Size   Vec
}

// NewBox is the equivalent of makeBox(w, h, l, origin).
func NewBox(w, h, l float64, origin Vec) *Box {
	return &Box{origin, Vec{w, h, l}}
}

func (b *Box) Volume() float64 {
	return b.Size[0] * b.Size[1] * b.Size[2]
}

func (b *Box) Contains(p Vec) bool {
	return b.Bounds().Contains(p)
}

func (b *Box) Bounds() AABB {
	return AABB{b.Origin, b.Origin.Add(b.Size)}
}

// Cylinder is a solid cylinder whose axis points along +Z from the center of
// its base.
type Cylinder struct {
	Base   Vec
	Radius float64
	Height float64
}

func (c *Cylinder) Volume() float64 {
	return math.Pi * c.Radius * c.Radius * c.Height
}

func (c *Cylinder) Contains(p Vec) bool {
	dz := p[2] - c.Base[2]
	if dz < 0 || dz > c.Height {
		return false
	}
	dx, dy := p[0]-c.Base[0], p[1]-c.Base[1]
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

func (c *Cylinder) Bounds() AABB {
	r := c.Radius
	return AABB{
		c.Base.Sub(Vec{r, r, 0}),
		c.Base.Add(Vec{r, r, c.Height}),
	}
}

// Cone is a conical frustum along +Z with radius R1 at its base and R2 at its
// top. Either radius may be zero.
type Cone struct {
	Base   Vec
	R1, R2 float64
	Height float64
}

func (c *Cone) Volume() float64 {
	return math.Pi * c.Height / 3 * (c.R1*c.R1 + c.R1*c.R2 + c.R2*c.R2)
}

func (c *Cone) Contains(p Vec) bool {
	dz := p[2] - c.Base[2]
	if dz < 0 || dz > c.Height {
		return false
	}
	r := c.R1 + (c.R2-c.R1)*dz/c.Height
	dx, dy := p[0]-c.Base[0], p[1]-c.Base[1]
	return dx*dx+dy*dy <= r*r
}

func (c *Cone) Bounds() AABB {
	r := math.Max(c.R1, c.R2)
	return AABB{
		c.Base.Sub(Vec{r, r, 0}),
		c.Base.Add(Vec{r, r, c.Height}),
	}
}

// Torus is a ring with the given major and minor radii, centered on Center
// and symmetric about the given axis.
type Torus struct {
	Center       Vec
	Major, Minor float64
	Axis         Axis
}

func (t *Torus) Volume() float64 {
	return 2 * math.Pi * math.Pi * t.Major * t.Minor * t.Minor
}

func (t *Torus) Contains(p Vec) bool {
	d := p.Sub(t.Center)
	a := d[t.Axis]
	rho2 := d[0]*d[0] + d[1]*d[1] + d[2]*d[2] - a*a
	rho := math.Sqrt(rho2)
	return (rho-t.Major)*(rho-t.Major)+a*a <= t.Minor*t.Minor
}

func (t *Torus) Bounds() AABB {
	ext := t.Major + t.Minor
	half := Vec{ext, ext, ext}
	half[t.Axis] = t.Minor
	return AABB{t.Center.Sub(half), t.Center.Add(half)}
}

// Tube is a hollow cylinder along +Z. It is the exact form of cutting a
// coaxial cylinder of radius Inner out of one of radius Outer.
type Tube struct {
	Base         Vec
	Outer, Inner float64
	Height       float64
}

// NewTube returns a tube with its base centered on base. It is an error
// unless 0 <= inner < outer and height > 0.
func NewTube(base Vec, outer, inner, height float64) (*Tube, error) {
	if !(inner >= 0 && inner < outer) {
		return nil, fmt.Errorf(
			"Tube inner radius %g must be in range [0, %g).", inner, outer,
		)
	} else if !(height > 0) {
		return nil, fmt.Errorf("Tube height must be positive, but is %g.", height)
	}
	return &Tube{base, outer, inner, height}, nil
}

func (t *Tube) Volume() float64 {
	return math.Pi * t.Height * (t.Outer*t.Outer - t.Inner*t.Inner)
}

func (t *Tube) Contains(p Vec) bool {
	dz := p[2] - t.Base[2]
	if dz < 0 || dz > t.Height {
		return false
	}
	dx, dy := p[0]-t.Base[0], p[1]-t.Base[1]
	r2 := dx*dx + dy*dy
	return r2 <= t.Outer*t.Outer && r2 >= t.Inner*t.Inner
}

func (t *Tube) Bounds() AABB {
	r := t.Outer
	return AABB{
		t.Base.Sub(Vec{r, r, 0}),
		t.Base.Add(Vec{r, r, t.Height}),
	}
}

// HollowBox is a closed box shell with uniform wall thickness. It is the
// exact form of cutting a box inset by Wall on every side out of a box.
type HollowBox struct {
	Origin Vec
	Size   Vec
	Wall   float64
}

// NewHollowBox returns a shell with its lowermost corner at origin. It is an
// error unless the wall is positive and thinner than half of every side.
func NewHollowBox(origin, size Vec, wall float64) (*HollowBox, error) {
	for i := 0; i < 3; i++ {
		if !(wall > 0 && 2*wall < size[i]) {
			return nil, fmt.Errorf(
				"Wall thickness %g does not fit a %g x %g x %g box.",
				wall, size[0], size[1], size[2],
			)
		}
	}
	return &HollowBox{origin, size, wall}, nil
}

func (h *HollowBox) Volume() float64 {
	w := 2 * h.Wall
	inner := (h.Size[0] - w) * (h.Size[1] - w) * (h.Size[2] - w)
	return h.Size[0]*h.Size[1]*h.Size[2] - inner
}

func (h *HollowBox) Contains(p Vec) bool {
	if !h.Bounds().Contains(p) {
		return false
	}
	for i := 0; i < 3; i++ {
		d := p[i] - h.Origin[i]
		if d < h.Wall || d > h.Size[i]-h.Wall {
			return true
		}
	}
	return false
}

func (h *HollowBox) Bounds() AABB {
	return AABB{h.Origin, h.Origin.Add(h.Size)}
}
