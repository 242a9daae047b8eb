package geom

import (
	"fmt"
	"math"
)

// RZ is a point in a half-plane containing the Z axis: R is the distance
// from the axis and Z the height.
type RZ struct {
	R, Z float64
}

// Revolved is a closed (R, Z) profile revolved 360 degrees about the Z axis
// through the origin.
type Revolved struct {
	Profile []RZ
	bounds  AABB
	volume  float64
}

var _ Solid = &Revolved{}

// NewRevolved creates the solid of revolution of a closed polygonal profile.
// The last point is implicitly joined to the first. All radii must be
// non-negative.
func NewRevolved(profile []RZ) (*Revolved, error) {
	if len(profile) < 3 {
		return nil, fmt.Errorf(
			"Revolved profile needs at least 3 points, but has %d.",
			len(profile),
		)
	}

	rMax := 0.0
	zMin, zMax := math.Inf(+1), math.Inf(-1)
	for i, p := range profile {
		if p.R < 0 {
			return nil, fmt.Errorf(
				"Point %d of revolved profile has negative radius %g.", i, p.R,
			)
		}
		rMax = math.Max(rMax, p.R)
		zMin, zMax = math.Min(zMin, p.Z), math.Max(zMax, p.Z)
	}

	rv := &Revolved{Profile: append([]RZ(nil), profile...)}
	rv.bounds = AABB{Vec{-rMax, -rMax, zMin}, Vec{rMax, rMax, zMax}}
	rv.volume = pappus(rv.Profile)
	return rv, nil
}

// pappus computes 2*pi times the first moment of the profile's area about the
// axis, which is the volume swept by revolving it.
func pappus(profile []RZ) float64 {
	moment := 0.0
	for i := range profile {
		p, q := profile[i], profile[(i+1)%len(profile)]
		cross := p.R*q.Z - q.R*p.Z
		moment += (p.R + q.R) * cross
	}
	return 2 * math.Pi * math.Abs(moment) / 6
}

func (rv *Revolved) Volume() float64 { return rv.volume }
func (rv *Revolved) Bounds() AABB    { return rv.bounds }

// Contains tests the point's (R, Z) coordinates against the profile with an
// even-odd ray cast.
func (rv *Revolved) Contains(p Vec) bool {
	if !rv.bounds.Contains(p) {
		return false
	}
	r, z := math.Hypot(p[0], p[1]), p[2]

	inside := false
	n := len(rv.Profile)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := rv.Profile[i], rv.Profile[j]
		if (a.Z > z) != (b.Z > z) {
			rCross := a.R + (z-a.Z)*(b.R-a.R)/(b.Z-a.Z)
			if r < rCross {
				inside = !inside
			}
		}
	}
	return inside
}

// SplineWall returns n+1 points sampled from the natural cubic spline r(z)
// through the given knots, from the first knot to the last. It is used to
// turn a handful of control radii into a smooth wall for a revolved profile.
func SplineWall(knots []RZ, n int) ([]RZ, error) {
	if n < 1 {
		return nil, fmt.Errorf("SplineWall needs n >= 1, but got %d.", n)
	}
	zs, rs := make([]float64, len(knots)), make([]float64, len(knots))
	for i, k := range knots {
		zs[i], rs[i] = k.Z, k.R
	}
	sp, err := NewSpline(zs, rs)
	if err != nil {
		return nil, err
	}

	z0, z1 := zs[0], zs[len(zs)-1]
	out := make([]RZ, n+1)
	for i := range out {
		z := z0 + (z1-z0)*float64(i)/float64(n)
		out[i] = RZ{math.Max(0, sp.Eval(z)), z}
	}
	out[n] = knots[len(knots)-1]
	return out, nil
}
