// Package geom is a small constructive solid geometry kernel. It provides the
// primitives a parametric CAD macro uses (boxes, cylinders, cones, tori and
// revolved profiles), rigid placement, and boolean combination, and it reports
// the volume of the result in cubic millimeters.
//
// Primitive volumes are closed-form. Booleans are exact when their operands'
// bounding boxes are disjoint and otherwise correct for the overlap by
// sampling the overlapping region on a regular grid.
package geom

import (
	"math"
)

// Vec is a point or displacement in millimeters.
type Vec [3]float64

// Add returns v + u.
func (v Vec) Add(u Vec) Vec {
	return Vec{v[0] + u[0], v[1] + u[1], v[2] + u[2]}
}

// Sub returns v - u.
func (v Vec) Sub(u Vec) Vec {
	return Vec{v[0] - u[0], v[1] - u[1], v[2] - u[2]}
}

// Scale returns k*v.
func (v Vec) Scale(k float64) Vec {
	return Vec{k * v[0], k * v[1], k * v[2]}
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max Vec
}

// Size returns the widths of the box along each axis.
func (b AABB) Size() Vec {
	return b.Max.Sub(b.Min)
}

// Volume returns the volume of the box.
func (b AABB) Volume() float64 {
	s := b.Size()
	return s[0] * s[1] * s[2]
}

// Intersect returns the overlap of two boxes and true if they overlap with
// a non-zero volume.
func (b AABB) Intersect(c AABB) (AABB, bool) {
	out := AABB{}
	for i := 0; i < 3; i++ {
		out.Min[i] = math.Max(b.Min[i], c.Min[i])
		out.Max[i] = math.Min(b.Max[i], c.Max[i])
		if out.Max[i] <= out.Min[i] {
			return AABB{}, false
		}
	}
	return out, true
}

// Union returns the smallest box containing both boxes.
func (b AABB) Union(c AABB) AABB {
	out := AABB{}
	for i := 0; i < 3; i++ {
		out.Min[i] = math.Min(b.Min[i], c.Min[i])
		out.Max[i] = math.Max(b.Max[i], c.Max[i])
	}
	return out
}

// Translate returns the box shifted by v.
func (b AABB) Translate(v Vec) AABB {
	return AABB{b.Min.Add(v), b.Max.Add(v)}
}

// Contains returns true if p is inside the box or on its boundary.
func (b AABB) Contains(p Vec) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}
