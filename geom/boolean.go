package geom

// DefaultResolution is the number of sample cells per axis used to measure
// the overlap of two solids.
const DefaultResolution = 96

// Kernel builds boolean combinations of solids.
type Kernel struct {
	// Resolution is the number of sample cells per axis used when operand
	// bounds overlap. Zero means DefaultResolution.
	Resolution int
}

func (k Kernel) resolution() int {
	if k.Resolution <= 0 {
		return DefaultResolution
	}
	return k.Resolution
}

// Overlap returns the volume of the intersection of a and b. It is exactly
// zero if their bounds do not overlap.
func (k Kernel) Overlap(a, b Solid) float64 {
	if c, ok := b.(*compound); ok && c.disjoint() {
		sum := 0.0
		for _, s := range c.parts {
			sum += k.Overlap(a, s)
		}
		return sum
	}
	return k.sample(a, b)
}

// sample measures the overlap of a and b with midpoint sampling over the
// intersection of their bounds.
func (k Kernel) sample(a, b Solid) float64 {
	box, ok := a.Bounds().Intersect(b.Bounds())
	if !ok {
		return 0
	}

	n := k.resolution()
	size := box.Size()
	d := size.Scale(1 / float64(n))

	count := 0
	p := Vec{}
	for i := 0; i < n; i++ {
		p[0] = box.Min[0] + (float64(i)+0.5)*d[0]
		for j := 0; j < n; j++ {
			p[1] = box.Min[1] + (float64(j)+0.5)*d[1]
			for l := 0; l < n; l++ {
				p[2] = box.Min[2] + (float64(l)+0.5)*d[2]
				if a.Contains(p) && b.Contains(p) {
					count++
				}
			}
		}
	}

	return float64(count) * d[0] * d[1] * d[2]
}

type fused struct {
	parts  []Solid
	volume float64
	bounds AABB
}

// Fuse returns the union of a and bs.
func (k Kernel) Fuse(a Solid, bs ...Solid) Solid {
	f := &fused{parts: []Solid{a}, volume: a.Volume(), bounds: a.Bounds()}
	for _, b := range expand(bs) {
		// Measure the overlap against everything fused so far.
		f.volume += b.Volume() - k.Overlap(f, b)
		f.parts = append(f.parts, b)
		f.bounds = f.bounds.Union(b.Bounds())
	}
	return f
}

func (f *fused) Volume() float64 { return f.volume }
func (f *fused) Bounds() AABB    { return f.bounds }

func (f *fused) Contains(p Vec) bool {
	if !f.bounds.Contains(p) {
		return false
	}
	for _, s := range f.parts {
		if s.Contains(p) {
			return true
		}
	}
	return false
}

type cut struct {
	base   Solid
	tools  Solid
	volume float64
}

// Cut returns base with every tool removed from it.
func (k Kernel) Cut(base Solid, tools ...Solid) Solid {
	if len(tools) == 0 {
		return base
	}
	c := &cut{base: base, tools: Compound(tools...)}
	c.volume = base.Volume() - k.Overlap(base, c.tools)
	return c
}

func (c *cut) Volume() float64 { return c.volume }
func (c *cut) Bounds() AABB    { return c.base.Bounds() }

func (c *cut) Contains(p Vec) bool {
	return c.base.Contains(p) && !c.tools.Contains(p)
}

type compound struct {
	parts  []Solid
	bounds AABB
}

// Compound groups solids without merging them. Its volume is the sum of its
// members' volumes, so overlapping members are counted more than once.
func Compound(ss ...Solid) Solid {
	c := &compound{parts: ss}
	for i, s := range ss {
		if i == 0 {
			c.bounds = s.Bounds()
		} else {
			c.bounds = c.bounds.Union(s.Bounds())
		}
	}
	return c
}

// disjoint returns true if no two members have overlapping bounds.
func (c *compound) disjoint() bool {
	for i := range c.parts {
		for j := i + 1; j < len(c.parts); j++ {
			_, ok := c.parts[i].Bounds().Intersect(c.parts[j].Bounds())
			if ok {
				return false
			}
		}
	}
	return true
}

// expand replaces every compound with pairwise disjoint members by its
// members, so that each one gets its own tight sampling region.
func expand(ss []Solid) []Solid {
	out := make([]Solid, 0, len(ss))
	for _, s := range ss {
		if c, ok := s.(*compound); ok && c.disjoint() {
			out = append(out, expand(c.parts)...)
		} else {
			out = append(out, s)
		}
	}
	return out
}

func (c *compound) Volume() float64 {
	sum := 0.0
	for _, s := range c.parts {
		sum += s.Volume()
	}
	return sum
}

func (c *compound) Bounds() AABB { return c.bounds }

func (c *compound) Contains(p Vec) bool {
	if !c.bounds.Contains(p) {
		return false
	}
	for _, s := range c.parts {
		if s.Contains(p) {
			return true
		}
	}
	return false
}
