package geom

// translated is a solid moved rigidly by an offset.
type translated struct {
	s   Solid
	off Vec
}

// Translate returns s moved by v.
func Translate(s Solid, v Vec) Solid {
	if t, ok := s.(*translated); ok {
		return &translated{t.s, t.off.Add(v)}
	}
	return &translated{s, v}
}

func (t *translated) Volume() float64     { return t.s.Volume() }
func (t *translated) Contains(p Vec) bool { return t.s.Contains(p.Sub(t.off)) }
func (t *translated) Bounds() AABB        { return t.s.Bounds().Translate(t.off) }

// alongX is a solid rotated by +90 degrees about the Y axis, so that its
// local +Z axis points along the global +X axis.
type alongX struct {
	s Solid
}

// AlongX rotates s by +90 degrees about the Y axis through the origin.
// Cylinders and cones, which are built along +Z, end up pointing along +X.
func AlongX(s Solid) Solid {
	return &alongX{s}
}

func (a *alongX) Volume() float64 { return a.s.Volume() }

// Contains maps p back through the inverse rotation (x, y, z) -> (-z, y, x).
func (a *alongX) Contains(p Vec) bool {
	return a.s.Contains(Vec{-p[2], p[1], p[0]})
}

func (a *alongX) Bounds() AABB {
	b := a.s.Bounds()
	return AABB{
		Vec{b.Min[2], b.Min[1], -b.Max[0]},
		Vec{b.Max[2], b.Max[1], -b.Min[0]},
	}
}
