package geom

import (
	"fmt"
)

type splineCoeff struct {
	a, b, c, d float64
}

// Spline is a natural cubic spline through a table of points with strictly
// increasing x values.
type Spline struct {
	xs, ys, y2s []float64
	coeffs      []splineCoeff
}

// NewSpline creates a spline which interpolates the given points. xs must be
// strictly increasing.
func NewSpline(xs, ys []float64) (*Spline, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf(
			"Table given to NewSpline() has len(xs) = %d but len(ys) = %d.",
			len(xs), len(ys),
		)
	} else if len(xs) <= 1 {
		return nil, fmt.Errorf(
			"Table given to NewSpline() has length of %d.", len(xs),
		)
	}
	for i := 0; i < len(xs)-1; i++ {
		if !(xs[i+1] > xs[i]) {
			return nil, fmt.Errorf(
				"Table given to NewSpline() not strictly increasing at %d.", i,
			)
		}
	}

	sp := &Spline{
		xs:     append([]float64(nil), xs...),
		ys:     append([]float64(nil), ys...),
		y2s:    make([]float64, len(xs)),
		coeffs: make([]splineCoeff, len(xs)-1),
	}
	sp.calcY2s()
	sp.calcCoeffs()
	return sp, nil
}

// Eval computes the value of the spline at x. Points outside the table are
// extrapolated from the nearest segment.
func (sp *Spline) Eval(x float64) float64 {
	i := sp.bsearch(x)
	dx := x - sp.xs[i]
	co := &sp.coeffs[i]
	return ((co.a*dx+co.b)*dx+co.c)*dx + co.d
}

// bsearch returns the index of the segment containing x.
func (sp *Spline) bsearch(x float64) int {
	lo, hi := 0, len(sp.xs)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if x >= sp.xs[mid] {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// calcY2s solves for the second derivative at every knot. The boundary
// second derivatives are zero.
func (sp *Spline) calcY2s() {
	n := len(sp.xs)
	if n < 3 {
		return
	}
	as, bs := make([]float64, n-2), make([]float64, n-2)
	cs, rs := make([]float64, n-2), make([]float64, n-2)

	xs, ys := sp.xs, sp.ys
	for i := range rs {
		j := i + 1
		as[i] = (xs[j] - xs[j-1]) / 6
		bs[i] = (xs[j+1] - xs[j-1]) / 3
		cs[i] = (xs[j+1] - xs[j]) / 6
		rs[i] = (ys[j+1]-ys[j])/(xs[j+1]-xs[j]) -
			(ys[j]-ys[j-1])/(xs[j]-xs[j-1])
	}

	triDiagAt(as, bs, cs, rs, sp.y2s[1:n-1])
}

func (sp *Spline) calcCoeffs() {
	xs, ys, y2s := sp.xs, sp.ys, sp.y2s
	for i := range sp.coeffs {
		h := xs[i+1] - xs[i]
		sp.coeffs[i] = splineCoeff{
			a: (y2s[i+1] - y2s[i]) / (6 * h),
			b: y2s[i] / 2,
			c: (ys[i+1]-ys[i])/h - h*(2*y2s[i]+y2s[i+1])/6,
			d: ys[i],
		}
	}
}

// triDiagAt solves the tridiagonal system
//
// | b0 c0 ..       |   | out0 |   | r0 |
// | a1 b1 c1 ..    |   | out1 |   | r1 |
// | ..             | * | ..   | = | .. |
// | ..       an bn |   | outn |   | rn |
//
// in place. The system built by calcY2s is diagonally dominant, so the
// pivots never vanish.
func triDiagAt(as, bs, cs, rs, out []float64) {
	tmp := make([]float64, len(as))

	beta := bs[0]
	out[0] = rs[0] / beta
	for i := 1; i < len(out); i++ {
		tmp[i] = cs[i-1] / beta
		beta = bs[i] - as[i]*tmp[i]
		out[i] = (rs[i] - as[i]*out[i-1]) / beta
	}

	for i := len(out) - 2; i >= 0; i-- {
		out[i] -= tmp[i+1] * out[i+1]
	}
}
