package massbudget

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaterialTableCheck(t *testing.T) {
	assert.NoError(t, MaterialTable{"Al7075": 2810, "MLI": 50}.Check())
	assert.Error(t, MaterialTable{"Void": 0}.Check())
	assert.Error(t, MaterialTable{"Bad": -3}.Check())
	assert.Error(t, MaterialTable{"Bad": math.NaN()}.Check())
	assert.Error(t, MaterialTable{"Bad": math.Inf(1)}.Check())

	assert.Equal(t,
		[]string{"Al7075", "MLI", "W"},
		MaterialTable{"W": 1, "MLI": 1, "Al7075": 1}.Keys(),
	)
}

func TestAssignmentsResolve(t *testing.T) {
	as := Assignments{
		"Domo":  {"W", 0.7},
		"Plain": {"", 0.5},
	}

	m, f := as.Resolve("Domo", "Al7075")
	assert.Equal(t, "W", m)
	assert.Equal(t, 0.7, f)

	m, f = as.Resolve("Bus", "Al7075")
	assert.Equal(t, "Al7075", m)
	assert.Equal(t, 1.0, f)

	m, f = as.Resolve("Plain", "CFRP")
	assert.Equal(t, "CFRP", m)
	assert.Equal(t, 0.5, f)

	var nilAs Assignments
	m, f = nilAs.Resolve("Bus", "Al7075")
	assert.Equal(t, "Al7075", m)
	assert.Equal(t, 1.0, f)
}

func TestAssignmentsCheck(t *testing.T) {
	assert.NoError(t, Assignments{"a": {"Ti", 0}, "b": {"Ti", 1}}.Check())
	assert.Error(t, Assignments{"a": {"Ti", -0.1}}.Check())
	assert.Error(t, Assignments{"a": {"Ti", 1.01}}.Check())
	assert.Error(t, Assignments{"a": {"Ti", math.NaN()}}.Check())
}

func TestToleranceTable(t *testing.T) {
	tt := ToleranceTable{"Reactor": 0.5}
	assert.Equal(t, 0.5, tt.Tolerance("Reactor"))
	assert.Equal(t, DefaultTolerance, tt.Tolerance("Antenna"))

	var empty ToleranceTable
	assert.Equal(t, DefaultTolerance, empty.Tolerance("Bus"))
}
