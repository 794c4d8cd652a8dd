package shoplist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate_SumsByNameAndUnit(t *testing.T) {
	items := Aggregate([]Line{
		{Name: "flour", MeasurementUnit: "g", Amount: 200},
		{Name: "sugar", MeasurementUnit: "g", Amount: 100},
		{Name: "flour", MeasurementUnit: "g", Amount: 300},
	})

	assert.Equal(t, []Item{
		{Name: "flour", MeasurementUnit: "g", Amount: 500},
		{Name: "sugar", MeasurementUnit: "g", Amount: 100},
	}, items)
}

func TestAggregate_TiesAndUnits(t *testing.T) {
	items := Aggregate([]Line{
		{Name: "milk", MeasurementUnit: "ml", Amount: 100},
		{Name: "eggs", MeasurementUnit: "pcs", Amount: 100},
		{Name: "milk", MeasurementUnit: "cup", Amount: 100},
		{Name: "salt", MeasurementUnit: "g", Amount: 5},
	})

	assert.Equal(t, []Item{
		{Name: "eggs", MeasurementUnit: "pcs", Amount: 100},
		{Name: "milk", MeasurementUnit: "cup", Amount: 100},
		{Name: "milk", MeasurementUnit: "ml", Amount: 100},
		{Name: "salt", MeasurementUnit: "g", Amount: 5},
	}, items)
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
}
