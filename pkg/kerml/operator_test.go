package kerml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnionOperands(t *testing.T) {
	u := NewUnion("u1", "CarOrTruck")
	u.AddOperand("car")
	u.AddOperand("truck")
	u.AddOperand("car") // repeat is a no-op

	assert.Equal(t, []string{"car", "truck"}, u.OperandIDs)

	assert.True(t, u.RemoveOperand("car"))
	assert.False(t, u.RemoveOperand("car"))
	assert.Equal(t, []string{"truck"}, u.OperandIDs)
}

func TestIntersectOperands(t *testing.T) {
	in := NewIntersect("i1", "WheeledAndPowered")
	in.AddOperand("wheeled")
	in.AddOperand("powered")
	in.AddOperand("wheeled")

	assert.Equal(t, []string{"wheeled", "powered"}, in.OperandIDs)
	assert.True(t, in.RemoveOperand("powered"))
	assert.Equal(t, []string{"wheeled"}, in.OperandIDs)
}

func TestDifferenceUpdateOperands(t *testing.T) {
	d := NewDifference("d1", "NonElectricVehicle")
	d.UpdateOperands("vehicle", "electric")
	assert.Equal(t, "vehicle", d.FirstOperandID)
	assert.Equal(t, "electric", d.SecondOperandID)

	d.UpdateOperands("machine", "")
	assert.Equal(t, "machine", d.FirstOperandID)
	assert.Empty(t, d.SecondOperandID)
}

func TestOperatorsAreTypes(t *testing.T) {
	var e Element = NewUnion("u1", "U")
	assert.NotNil(t, TypeOf(e))
	e = NewIntersect("i1", "I")
	assert.NotNil(t, TypeOf(e))
	e = NewDifference("d1", "D")
	assert.NotNil(t, TypeOf(e))
}
