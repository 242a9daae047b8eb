package plot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cadtools/massbudget/io"
)

func TestCumulative(t *testing.T) {
	r := &io.Report{Parts: []io.PartReport{
		{ID: 1, GeomMass: 100},
		{ID: 2, GeomMass: 250.5},
		{ID: 3, GeomMass: 0},
	}}
	xs, ys := Cumulative(r)
	assert.Equal(t, []float64{1, 2, 3}, xs)
	assert.Equal(t, []float64{100, 350.5, 350.5}, ys)
}

func TestCumulativeMassEmpty(t *testing.T) {
	err := CumulativeMass(&io.Report{Design: "fusion"}, "never.png")
	assert.Error(t, err)
}
